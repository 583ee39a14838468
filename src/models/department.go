package models

import (
	"hros/src/types"
)

type Department struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `json:"name,omitempty"`
	Code string `json:"code,omitempty"`

	Employees []Employee `gorm:"foreignKey:department_id" json:"employees,omitempty"`

	types.Timestamps
}
