package main

import (
	"errors"
	"log"
	"net/http"
	"time"

	"hros/src/config"
	"hros/src/db"
	"hros/src/models"
	"hros/src/notify"
	"hros/src/types"
	"hros/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var notifWriter = notify.NewWriter()
var notifRouter = notify.NewRouter(notifWriter)

func notificationHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/notifications", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			var query types.NotificationQueryFilters
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var data []models.Notification
			db := db.GetDb()
			tx := db.
				Model(&models.Notification{}).
				Where("recipient_id = ?", userId).
				Order("created_at desc")
			if query.Unread {
				tx = tx.Where("is_read = ?", false)
			}
			if query.Type != "" {
				tx = tx.Where("type = ?", query.Type)
			}
			if err := tx.Find(&data).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": data, "count": len(data)})
		}).
		GET("/notifications/unread_count", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			count, err := utils.GetUnreadCount(userId)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"count": count})
		}).
		GET("/notifications/:id", func(ctx *gin.Context) {
			notification, err := findOwnNotification(ctx)
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": notification})
		}).
		POST("/notifications", func(ctx *gin.Context) {
			var body types.CreateNotificationRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			policy := notify.PolicyFor(body.Type)
			priority := types.Priority(body.Priority)
			if priority == "" {
				priority = policy.PriorityDefault
			}
			deadline := time.Now().Add(policy.DeadlineOffset)
			if body.Deadline != nil {
				parsed, err := time.Parse(config.TIME_PARSE_FORMAT, *body.Deadline)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				deadline = parsed
			}
			sender := notify.SystemSender()
			if body.SenderID != nil {
				sender = notify.UserSender(*body.SenderID)
			}
			notification, err := notifWriter.Create(notify.CreateParams{
				Title:       body.Title,
				Message:     body.Message,
				Type:        types.NotificationType(body.Type),
				Priority:    priority,
				RecipientID: body.RecipientID,
				EmployeeID:  body.EmployeeID,
				Sender:      sender,
				Deadline:    &deadline,
				ActionURL:   body.ActionURL,
				Metadata:    types.JSONB(body.Metadata),
			})
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": notification})
		}).
		POST("/notifications/route", func(ctx *gin.Context) {
			var body types.RouteNotificationRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			created, err := notifRouter.Route(body.Trigger, body.EmployeeID, body.Metadata)
			if err != nil {
				log.Printf("[routing] Error routing trigger [%s] for employee [%d]: %s\n", body.Trigger, body.EmployeeID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": created, "count": len(created)})
		}).
		PUT("/notifications/:id/read", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			notification, err := findNotificationByParam(ctx)
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			if notification.RecipientID == nil || *notification.RecipientID != userId {
				ctx.JSON(http.StatusForbidden, gin.H{"error": "notification does not belong to this user"})
				return
			}
			db := db.GetDb()
			if err := db.Transaction(func(tx *gorm.DB) error {
				return tx.
					Model(&models.Notification{}).
					Where("id = ?", notification.ID).
					Update("is_read", true).
					Error
			}); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			go utils.InvalidateUnreadCount(userId)
			notification.IsRead = true
			ctx.JSON(http.StatusOK, gin.H{"data": notification})
		}).
		PUT("/notifications/:id/status", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			var body types.UpdateNotificationStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			notification, err := findNotificationByParam(ctx)
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			status := types.NotificationStatus(body.Status)
			updates := map[string]any{"status": status}
			if status == types.NOTIFICATION_ACKNOWLEDGED {
				if notification.RecipientID == nil || *notification.RecipientID != userId {
					ctx.JSON(http.StatusForbidden, gin.H{"error": "notification does not belong to this user"})
					return
				}
				now := time.Now()
				updates["acknowledged_at"] = &now
			}
			db := db.GetDb()
			if err := db.Transaction(func(tx *gorm.DB) error {
				return tx.
					Model(&models.Notification{}).
					Where("id = ?", notification.ID).
					Updates(updates).
					Error
			}); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := db.Where("id = ?", notification.ID).First(&notification).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": notification})
		})
	return g
}

func findNotificationByParam(ctx *gin.Context) (*models.Notification, error) {
	idParam := ctx.Params.ByName("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return nil, errors.New("notification not found")
	}
	var notification models.Notification
	db := db.GetDb()
	if err := db.
		Model(&models.Notification{}).
		Where("id = ?", id).
		First(&notification).
		Error; err != nil {
		return nil, errors.New("notification not found")
	}
	return &notification, nil
}

func findOwnNotification(ctx *gin.Context) (*models.Notification, error) {
	userId := ctx.GetUint("id")
	notification, err := findNotificationByParam(ctx)
	if err != nil {
		return nil, err
	}
	if notification.RecipientID == nil || *notification.RecipientID != userId {
		return nil, errors.New("notification not found")
	}
	return notification, nil
}
