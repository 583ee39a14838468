package models

import (
	"hros/src/types"
)

type User struct {
	ID       uint            `gorm:"primarykey" json:"id"`
	Name     string          `json:"name,omitempty"`
	Email    string          `json:"email,omitempty"`
	Role     string          `json:"role,omitempty"`
	Metadata *types.Metadata `gorm:"type:jsonb" json:"metadata,omitempty"`

	Notifications []Notification `gorm:"foreignKey:recipient_id" json:"notifications,omitempty"`

	types.Timestamps
}
