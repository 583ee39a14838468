package main

import (
	"errors"
	"net/http"

	"hros/src/db"
	"hros/src/models"
	"hros/src/types"
	"hros/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func employeeHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/departments", func(ctx *gin.Context) {
			var departments []models.Department
			db := db.GetDb()
			if err := db.Find(&departments).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": departments, "count": len(departments)})
		}).
		POST("/departments", func(ctx *gin.Context) {
			var body types.CreateDepartmentRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			department := models.Department{
				Name: body.Name,
				Code: body.Code,
			}
			db := db.GetDb()
			if err := db.Transaction(func(tx *gorm.DB) error {
				return tx.Create(&department).Error
			}); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": department})
		}).
		GET("/employees", func(ctx *gin.Context) {
			var employees []models.Employee
			db := db.GetDb()
			tx := db.
				Model(&models.Employee{}).
				Preload("Department").
				Order("id asc")
			if department := ctx.Query("department"); department != "" {
				tx = tx.Where("department_id = ?", department)
			}
			if err := tx.Find(&employees).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": employees, "count": len(employees)})
		}).
		GET("/employees/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			employee, err := utils.GetEmployee(params.ID)
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": employee})
		}).
		POST("/employees", func(ctx *gin.Context) {
			var body types.CreateEmployeeRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			employee := models.Employee{
				FirstName:    body.FirstName,
				LastName:     body.LastName,
				Position:     body.Position,
				Status:       types.EMPLOYEE_ACTIVE,
				DepartmentID: body.DepartmentID,
				SupervisorID: body.SupervisorID,
				UserID:       body.UserID,
			}
			db := db.GetDb()
			if err := db.Transaction(func(tx *gorm.DB) error {
				if body.DepartmentID != nil {
					var count int64
					if err := tx.Model(&models.Department{}).Where("id = ?", *body.DepartmentID).Count(&count).Error; err != nil {
						return err
					}
					if count == 0 {
						return errors.New("department does not exist")
					}
				}
				if body.SupervisorID != nil {
					var count int64
					if err := tx.Model(&models.Employee{}).Where("id = ?", *body.SupervisorID).Count(&count).Error; err != nil {
						return err
					}
					if count == 0 {
						return errors.New("supervisor does not exist")
					}
				}
				return tx.Create(&employee).Error
			}); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": employee})
		}).
		PUT("/employees/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateEmployeeRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updates := map[string]any{}
			if body.Position != nil {
				updates["position"] = *body.Position
			}
			if body.Status != nil {
				updates["status"] = *body.Status
			}
			if body.DepartmentID != nil {
				updates["department_id"] = *body.DepartmentID
			}
			if body.SupervisorID != nil {
				updates["supervisor_id"] = *body.SupervisorID
			}
			if len(updates) == 0 {
				ctx.Status(http.StatusNoContent)
				return
			}
			db := db.GetDb()
			result := db.
				Model(&models.Employee{}).
				Where("id = ?", params.ID).
				Updates(updates)
			if result.Error != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": result.Error.Error()})
				return
			}
			if result.RowsAffected == 0 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
				return
			}
			ctx.Status(http.StatusOK)
		})
	return g
}
