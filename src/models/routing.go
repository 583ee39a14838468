package models

import (
	"hros/src/types"
)

// RoutingRule binds a trigger (a notification type) to one or more routes.
// Triggers are stored uppercase; matching is case-insensitive on the way in.
type RoutingRule struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	Name     string `json:"name,omitempty"`
	Trigger  string `gorm:"index" json:"trigger"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	Routes []Route `gorm:"foreignKey:routing_rule_id" json:"routes,omitempty"`

	types.Timestamps
}

// Route is one recipient binding inside a rule. Condition, when set, gates
// the route against the employee being routed (department/position/metadata).
type Route struct {
	ID            uint         `gorm:"primarykey" json:"id"`
	RoutingRuleID uint         `json:"routing_rule_id"`
	RecipientID   uint         `json:"recipient_id"`
	Recipient     *User        `gorm:"foreignKey:recipient_id" json:"recipient,omitempty"`
	Condition     *types.JSONB `gorm:"type:jsonb" json:"condition,omitempty"`

	types.Timestamps
}
