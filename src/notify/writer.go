package notify

import (
	"fmt"
	"log"
	"time"

	"hros/src/db"
	"hros/src/models"
	"hros/src/types"
	"hros/src/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateParams struct {
	Title       string
	Message     string
	Type        types.NotificationType
	Priority    types.Priority
	RecipientID *uint
	EmployeeID  *uint
	Sender      Sender
	Deadline    *time.Time
	ActionURL   *string
	Metadata    types.JSONB
}

// Writer persists notifications and hands the delivery off to a dispatch
// hook after the row is committed. The hook runs on its own goroutine; its
// outcome never reaches the caller.
type Writer struct {
	dispatch DispatchFunc
}

func NewWriter() *Writer {
	return &Writer{dispatch: DeliverEmail}
}

// WithDispatch swaps the delivery hook. Used by tests to observe or fail
// the asynchronous phase deterministically.
func (w *Writer) WithDispatch(fn DispatchFunc) *Writer {
	w.dispatch = fn
	return w
}

// Create validates every referenced id before any write so callers get a
// named diagnostic instead of a constraint violation from the database.
func (w *Writer) Create(params CreateParams) (*models.Notification, error) {
	dbi := db.GetDb()

	if params.EmployeeID != nil {
		var count int64
		if err := dbi.Model(&models.Employee{}).Where("id = ?", *params.EmployeeID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, fmt.Errorf("employee [%d] does not exist", *params.EmployeeID)
		}
	}
	if params.RecipientID != nil {
		var count int64
		if err := dbi.Model(&models.User{}).Where("id = ?", *params.RecipientID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, fmt.Errorf("recipient user [%d] does not exist", *params.RecipientID)
		}
	}
	if !params.Sender.IsSystem() {
		var count int64
		if err := dbi.Model(&models.User{}).Where("id = ?", *params.Sender.UserID()).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, fmt.Errorf("sender user [%d] does not exist", *params.Sender.UserID())
		}
	}

	priority := params.Priority
	if priority == "" {
		priority = types.PRIORITY_NORMAL
	}
	notification := models.Notification{
		ID:          uuid.New(),
		Title:       params.Title,
		Message:     params.Message,
		Type:        params.Type,
		Priority:    priority,
		Status:      types.NOTIFICATION_PENDING,
		IsRead:      false,
		RecipientID: params.RecipientID,
		EmployeeID:  params.EmployeeID,
		SenderID:    params.Sender.UserID(),
		Deadline:    params.Deadline,
		ActionURL:   params.ActionURL,
	}
	if params.Metadata != nil {
		notification.Metadata = &params.Metadata
	}

	if err := dbi.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&notification).Error; err != nil {
			return err
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if notification.RecipientID != nil {
		go utils.InvalidateUnreadCount(*notification.RecipientID)
		w.deliver(&notification)
	}

	return &notification, nil
}

// deliver resolves the recipient email and schedules the best-effort send.
// Everything past this point is invisible to the create call.
func (w *Writer) deliver(notification *models.Notification) {
	recipient, err := utils.GetUser(*notification.RecipientID)
	if err != nil {
		log.Printf("[notify] Could not resolve recipient for notification [%s]: %s\n", notification.ID.String(), err.Error())
		return
	}
	if recipient.Email == "" {
		log.Printf("[notify] Recipient [%d] has no email address, skipping delivery\n", recipient.ID)
		return
	}
	employeeName := ""
	if notification.EmployeeID != nil {
		if employee, err := utils.GetEmployee(*notification.EmployeeID); err == nil {
			employeeName = employee.FullName()
		}
	}
	delivery := Delivery{
		Type:         notification.Type,
		ToEmail:      recipient.Email,
		ToName:       recipient.Name,
		Title:        notification.Title,
		Message:      notification.Message,
		ActionURL:    notification.ActionURL,
		EmployeeName: employeeName,
		Deadline:     notification.Deadline,
		Priority:     notification.Priority,
	}
	go w.dispatch(delivery)
}
