package models

import (
	"time"

	"hros/src/types"

	"github.com/google/uuid"
)

type Notification struct {
	ID       uuid.UUID                `gorm:"primarykey;type:uuid" json:"id"`
	Title    string                   `json:"title"`
	Message  string                   `json:"message"`
	Type     types.NotificationType   `json:"type"`
	Priority types.Priority           `gorm:"default:'normal'" json:"priority"`
	Status   types.NotificationStatus `gorm:"default:'pending'" json:"status"`
	IsRead   bool                     `gorm:"default:false" json:"is_read"`

	RecipientID *uint     `json:"recipient_id,omitempty"`
	Recipient   *User     `gorm:"foreignKey:recipient_id" json:"recipient,omitempty"`
	EmployeeID  *uint     `json:"employee_id,omitempty"`
	Employee    *Employee `gorm:"foreignKey:employee_id" json:"employee,omitempty"`
	SenderID    *uint     `json:"sender_id,omitempty"`
	Sender      *User     `gorm:"foreignKey:sender_id" json:"sender,omitempty"`

	Deadline       *time.Time   `json:"deadline,omitempty"`
	ActionURL      *string      `json:"action_url,omitempty"`
	Metadata       *types.JSONB `gorm:"type:jsonb" json:"metadata,omitempty"`
	AcknowledgedAt *time.Time   `json:"acknowledged_at,omitempty"`

	types.Timestamps
}
