package models

import (
	"fmt"
	"hros/src/types"
)

type Employee struct {
	ID        uint                 `gorm:"primarykey" json:"id"`
	FirstName string               `json:"first_name,omitempty"`
	LastName  string               `json:"last_name,omitempty"`
	Position  string               `json:"position,omitempty"`
	Status    types.EmployeeStatus `gorm:"default:'active'" json:"status,omitempty"`

	DepartmentID *uint       `json:"department_id,omitempty"`
	Department   *Department `gorm:"foreignKey:department_id" json:"department,omitempty"`
	SupervisorID *uint       `json:"supervisor_id,omitempty"`
	Supervisor   *Employee   `gorm:"foreignKey:supervisor_id" json:"supervisor,omitempty"`
	UserID       *uint       `json:"user_id,omitempty"`
	User         *User       `gorm:"foreignKey:user_id" json:"user,omitempty"`

	types.Timestamps
}

func (e *Employee) FullName() string {
	return fmt.Sprintf("%s %s", e.FirstName, e.LastName)
}

// DepartmentName resolves the relation first and falls back to a placeholder
// so composed messages never render an empty department.
func (e *Employee) DepartmentName() string {
	if e.Department != nil && e.Department.Name != "" {
		return e.Department.Name
	}
	return "Unknown Department"
}
