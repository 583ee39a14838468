package utils

import (
	"fmt"
	"testing"
	"time"

	"hros/src/db"
	"hros/src/models"
	"hros/src/types"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("error opening test database: %s", err.Error())
	}
	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Department{},
		&models.Employee{},
		&models.RoutingRule{},
		&models.Route{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("error migrating test database: %s", err.Error())
	}
	db.NewDB(gdb)
	return gdb
}

func TestGetEmployeePreloadsRelations(t *testing.T) {
	gdb := setupTestDB(t)

	department := models.Department{Name: "Engineering", Code: "ENG"}
	gdb.Create(&department)
	supervisorUser := models.User{Name: "Sam Boss", Email: "sam@example.com"}
	gdb.Create(&supervisorUser)
	supervisor := models.Employee{FirstName: "Sam", LastName: "Boss", UserID: &supervisorUser.ID}
	gdb.Create(&supervisor)
	employee := models.Employee{
		FirstName:    "Jane",
		LastName:     "Doe",
		DepartmentID: &department.ID,
		SupervisorID: &supervisor.ID,
	}
	gdb.Create(&employee)

	got, err := GetEmployee(employee.ID)
	assert.Nil(t, err)
	assert.Equal(t, "Jane Doe", got.FullName())
	assert.Equal(t, "Engineering", got.DepartmentName())
	assert.NotNil(t, got.Supervisor)
	assert.NotNil(t, got.Supervisor.User)
	assert.Equal(t, "sam@example.com", got.Supervisor.User.Email)

	_, err = GetEmployee(42)
	assert.EqualError(t, err, "employee [42] not found")
}

func TestFindHRContact(t *testing.T) {
	gdb := setupTestDB(t)

	hr, err := FindHRContact()
	assert.Nil(t, err)
	assert.Nil(t, hr)

	// Archived staff never qualify.
	gdb.Create(&models.Employee{
		FirstName: "Gone",
		LastName:  "Person",
		Position:  "HR Manager",
		Status:    types.EMPLOYEE_ARCHIVED,
	})
	hr, err = FindHRContact()
	assert.Nil(t, err)
	assert.Nil(t, hr)

	hrUser := models.User{Name: "Harper Reeves", Email: "hr@example.com"}
	gdb.Create(&hrUser)
	gdb.Create(&models.Employee{
		FirstName: "Harper",
		LastName:  "Reeves",
		Position:  "Human Resources Specialist",
		Status:    types.EMPLOYEE_ACTIVE,
		UserID:    &hrUser.ID,
	})

	hr, err = FindHRContact()
	assert.Nil(t, err)
	assert.NotNil(t, hr)
	assert.Equal(t, "Harper Reeves", hr.FullName())
	assert.NotNil(t, hr.User)
	assert.Equal(t, "hr@example.com", hr.User.Email)
}

func TestFindHRContactByDepartment(t *testing.T) {
	gdb := setupTestDB(t)

	department := models.Department{Name: "HR", Code: "HR"}
	gdb.Create(&department)
	gdb.Create(&models.Employee{
		FirstName:    "Dana",
		LastName:     "Ops",
		Position:     "Operations Coordinator",
		Status:       types.EMPLOYEE_ACTIVE,
		DepartmentID: &department.ID,
	})

	hr, err := FindHRContact()
	assert.Nil(t, err)
	assert.NotNil(t, hr)
	assert.Equal(t, "Dana Ops", hr.FullName())
}

func TestFindActiveRoutingRules(t *testing.T) {
	gdb := setupTestDB(t)

	recipient := models.User{Name: "Watcher", Email: "watcher@example.com"}
	gdb.Create(&recipient)

	now := time.Now()
	older := models.RoutingRule{
		Name:       "older",
		Trigger:    "ESCALATION",
		IsActive:   true,
		Routes:     []models.Route{{RecipientID: recipient.ID}},
		Timestamps: types.Timestamps{CreatedAt: now.Add(-time.Hour)},
	}
	gdb.Create(&older)
	newer := models.RoutingRule{
		Name:       "newer",
		Trigger:    "escalation",
		IsActive:   true,
		Routes:     []models.Route{{RecipientID: recipient.ID}},
		Timestamps: types.Timestamps{CreatedAt: now},
	}
	gdb.Create(&newer)
	disabled := models.RoutingRule{
		Name:     "disabled",
		Trigger:  "ESCALATION",
		IsActive: false,
		Routes:   []models.Route{{RecipientID: recipient.ID}},
	}
	gdb.Create(&disabled)
	gdb.Create(&models.RoutingRule{
		Name:     "other trigger",
		Trigger:  "TRAINING",
		IsActive: true,
	})

	rules, err := FindActiveRoutingRules("EsCaLaTiOn")
	assert.Nil(t, err)
	assert.Len(t, rules, 2)
	assert.Equal(t, "newer", rules[0].Name)
	assert.Equal(t, "older", rules[1].Name)
	assert.Len(t, rules[0].Routes, 1)
	assert.NotNil(t, rules[0].Routes[0].Recipient)
}

func TestGetUnreadCount(t *testing.T) {
	gdb := setupTestDB(t)

	user := models.User{Name: "Alex", Email: "alex@example.com"}
	gdb.Create(&user)

	for i, read := range []bool{false, false, true} {
		n := models.Notification{
			ID:          uuid.New(),
			Title:       fmt.Sprintf("n%d", i),
			Message:     "m",
			Type:        types.NOTIF_GENERAL,
			Priority:    types.PRIORITY_NORMAL,
			Status:      types.NOTIFICATION_PENDING,
			IsRead:      read,
			RecipientID: &user.ID,
		}
		gdb.Create(&n)
	}

	count, err := GetUnreadCount(user.ID)
	assert.Nil(t, err)
	assert.EqualValues(t, 2, count)
}
