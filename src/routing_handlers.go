package main

import (
	"errors"
	"net/http"
	"strings"

	"hros/src/db"
	"hros/src/models"
	"hros/src/types"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func routingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/routing/rules", func(ctx *gin.Context) {
			var rules []models.RoutingRule
			db := db.GetDb()
			if err := db.
				Model(&models.RoutingRule{}).
				Order("created_at desc").
				Preload("Routes").
				Preload("Routes.Recipient").
				Find(&rules).
				Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": rules, "count": len(rules)})
		}).
		POST("/routing/rules", func(ctx *gin.Context) {
			var body types.CreateRoutingRuleRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			active := true
			if body.Active != nil {
				active = *body.Active
			}
			rule := models.RoutingRule{
				Name:     body.Name,
				Trigger:  strings.ToUpper(body.Trigger),
				IsActive: active,
			}
			for _, route := range body.Routes {
				r := models.Route{RecipientID: route.RecipientID}
				if route.Condition != nil {
					cond := route.Condition
					r.Condition = &cond
				}
				rule.Routes = append(rule.Routes, r)
			}
			db := db.GetDb()
			if err := db.Transaction(func(tx *gorm.DB) error {
				for _, route := range body.Routes {
					var count int64
					if err := tx.Model(&models.User{}).Where("id = ?", route.RecipientID).Count(&count).Error; err != nil {
						return err
					}
					if count == 0 {
						return errors.New("route recipient does not reference an existing user")
					}
				}
				return tx.Create(&rule).Error
			}); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": rule})
		}).
		PUT("/routing/rules/:id/activate", func(ctx *gin.Context) {
			setRuleActive(ctx, true)
		}).
		PUT("/routing/rules/:id/deactivate", func(ctx *gin.Context) {
			setRuleActive(ctx, false)
		}).
		POST("/routing/rules/:id/routes", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.CreateRouteRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			route := models.Route{
				RoutingRuleID: params.ID,
				RecipientID:   body.RecipientID,
			}
			if body.Condition != nil {
				cond := body.Condition
				route.Condition = &cond
			}
			db := db.GetDb()
			if err := db.Transaction(func(tx *gorm.DB) error {
				var rule models.RoutingRule
				if err := tx.Where(&models.RoutingRule{ID: params.ID}).First(&rule).Error; err != nil {
					return errors.New("routing rule not found")
				}
				return tx.Create(&route).Error
			}); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": route})
		}).
		DELETE("/routing/rules/:id/routes/:routeId", func(ctx *gin.Context) {
			var params struct {
				ID      uint `uri:"id" binding:"required"`
				RouteID uint `uri:"routeId" binding:"required"`
			}
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			if err := db.
				Where("routing_rule_id = ?", params.ID).
				Delete(&models.Route{}, params.RouteID).
				Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		DELETE("/routing/rules/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			if err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.Where("routing_rule_id = ?", params.ID).Delete(&models.Route{}).Error; err != nil {
					return err
				}
				return tx.Delete(&models.RoutingRule{}, params.ID).Error
			}); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}

func setRuleActive(ctx *gin.Context, active bool) {
	var params types.SimpleRequestParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.Status(http.StatusBadRequest)
		return
	}
	db := db.GetDb()
	result := db.
		Model(&models.RoutingRule{}).
		Where("id = ?", params.ID).
		Update("is_active", active)
	if result.Error != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "routing rule not found"})
		return
	}
	ctx.Status(http.StatusOK)
}
