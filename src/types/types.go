package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type Metadata map[string]any

func (a Metadata) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *Metadata) Scan(value any) error {
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type NotificationType string

const (
	NOTIF_PERFORMANCE_PLAN NotificationType = "PERFORMANCE_PLAN"
	NOTIF_APPRAISAL        NotificationType = "APPRAISAL"
	NOTIF_TRAINING         NotificationType = "TRAINING"
	NOTIF_DEADLINE         NotificationType = "DEADLINE"
	NOTIF_ESCALATION       NotificationType = "ESCALATION"
	NOTIF_APPROVAL         NotificationType = "APPROVAL"
	NOTIF_GENERAL          NotificationType = "GENERAL"
)

type Priority string

const (
	PRIORITY_LOW      Priority = "low"
	PRIORITY_NORMAL   Priority = "normal"
	PRIORITY_HIGH     Priority = "high"
	PRIORITY_CRITICAL Priority = "critical"
)

type NotificationStatus string

const (
	NOTIFICATION_PENDING      NotificationStatus = "pending"
	NOTIFICATION_ACKNOWLEDGED NotificationStatus = "acknowledged"
	NOTIFICATION_DISMISSED    NotificationStatus = "dismissed"
	NOTIFICATION_ARCHIVED     NotificationStatus = "archived"
)

type EmployeeStatus string

const (
	EMPLOYEE_ACTIVE   EmployeeStatus = "active"
	EMPLOYEE_ONLEAVE  EmployeeStatus = "on_leave"
	EMPLOYEE_ARCHIVED EmployeeStatus = "archived"
)

type CreateDepartmentRequestBody struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code,omitempty"`
}

type CreateEmployeeRequestBody struct {
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	Position     string `json:"position,omitempty"`
	DepartmentID *uint  `json:"department,omitempty"`
	SupervisorID *uint  `json:"supervisor,omitempty"`
	UserID       *uint  `json:"user,omitempty"`
}

type UpdateEmployeeRequestBody struct {
	Position     *string `json:"position,omitempty"`
	Status       *string `json:"status,omitempty"`
	DepartmentID *uint   `json:"department,omitempty"`
	SupervisorID *uint   `json:"supervisor,omitempty"`
}

type CreateNotificationRequestBody struct {
	Title       string   `json:"title" binding:"required"`
	Message     string   `json:"message" binding:"required"`
	Type        string   `json:"type" binding:"required,notiftype"`
	Priority    string   `json:"priority,omitempty"`
	RecipientID *uint    `json:"recipient,omitempty"`
	EmployeeID  *uint    `json:"employee,omitempty"`
	SenderID    *uint    `json:"sender,omitempty"`
	ActionURL   *string  `json:"action_url,omitempty"`
	Deadline    *string  `json:"deadline,omitempty" time_format:"2006-01-02 15:04:05 -07:00"`
	Metadata    Metadata `json:"metadata,omitempty"`
}

type RouteNotificationRequestBody struct {
	Trigger    string   `json:"trigger" binding:"required"`
	EmployeeID uint     `json:"employee" binding:"required"`
	Metadata   Metadata `json:"metadata,omitempty"`
}

type UpdateNotificationStatusRequestBody struct {
	Status string `json:"status" binding:"required"`
}

type CreateRoutingRuleRequestBody struct {
	Name    string                   `json:"name" binding:"required"`
	Trigger string                   `json:"trigger" binding:"required,notiftype"`
	Active  *bool                    `json:"active,omitempty"`
	Routes  []CreateRouteRequestBody `json:"routes,omitempty"`
}

type CreateRouteRequestBody struct {
	RecipientID uint  `json:"recipient" binding:"required"`
	Condition   JSONB `json:"condition,omitempty"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type NotificationQueryFilters struct {
	Unread bool   `form:"unread,omitempty"`
	Type   string `form:"type,omitempty"`
}

type Claims struct {
	Username    string   `json:"username"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}
