package notify

import (
	"testing"
	"time"

	"hros/src/models"
	"hros/src/types"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func seedDirectory(t *testing.T, gdb *gorm.DB) (models.Department, models.Employee) {
	t.Helper()
	department := models.Department{Name: "Engineering", Code: "ENG"}
	if err := gdb.Create(&department).Error; err != nil {
		t.Fatalf("error seeding department: %s", err.Error())
	}
	employee := seedEmployee(t, gdb, models.Employee{
		FirstName:    "Jane",
		LastName:     "Doe",
		Position:     "Software Engineer",
		Status:       types.EMPLOYEE_ACTIVE,
		DepartmentID: &department.ID,
	})
	return department, employee
}

func seedRule(t *testing.T, gdb *gorm.DB, rule models.RoutingRule) models.RoutingRule {
	t.Helper()
	if err := gdb.Create(&rule).Error; err != nil {
		t.Fatalf("error seeding routing rule: %s", err.Error())
	}
	return rule
}

func newTestRouter() *Router {
	return NewRouter(NewWriter().WithDispatch(func(Delivery) {}))
}

func TestRouteFanOut(t *testing.T) {
	gdb := setupTestDB(t)
	_, employee := seedDirectory(t, gdb)
	u1 := seedUser(t, gdb, "First", "first@example.com")
	u2 := seedUser(t, gdb, "Second", "second@example.com")
	u3 := seedUser(t, gdb, "Third", "third@example.com")

	now := time.Now()
	seedRule(t, gdb, models.RoutingRule{
		Name:       "older escalation rule",
		Trigger:    "ESCALATION",
		IsActive:   true,
		Routes:     []models.Route{{RecipientID: u3.ID}},
		Timestamps: types.Timestamps{CreatedAt: now.Add(-time.Hour)},
	})
	seedRule(t, gdb, models.RoutingRule{
		Name:       "newer escalation rule",
		Trigger:    "ESCALATION",
		IsActive:   true,
		Routes:     []models.Route{{RecipientID: u1.ID}, {RecipientID: u2.ID}},
		Timestamps: types.Timestamps{CreatedAt: now},
	})

	created, err := newTestRouter().Route("escalation", employee.ID, types.Metadata{"severity": "sev1"})
	assert.Nil(t, err)
	assert.Len(t, created, 3)

	// Newest rule expands first, routes in stored order.
	assert.Equal(t, u1.ID, *created[0].RecipientID)
	assert.Equal(t, u2.ID, *created[1].RecipientID)
	assert.Equal(t, u3.ID, *created[2].RecipientID)

	for _, n := range created {
		assert.Equal(t, types.NOTIF_ESCALATION, n.Type)
		assert.Equal(t, types.PRIORITY_CRITICAL, n.Priority)
		assert.Equal(t, "Escalation - Jane Doe", n.Title)
		assert.NotNil(t, n.Deadline)
		assert.WithinDuration(t, time.Now().Add(2*time.Hour), *n.Deadline, time.Minute)
		md := *n.Metadata
		assert.Equal(t, "sev1", md["severity"])
		assert.NotNil(t, md["routingRuleId"])
		assert.NotNil(t, md["routeId"])
	}
	assert.EqualValues(t, 3, notificationCount(t, gdb))
}

func TestRouteConditionsGateRoutes(t *testing.T) {
	gdb := setupTestDB(t)
	_, employee := seedDirectory(t, gdb)
	u1 := seedUser(t, gdb, "Dept Watcher", "dept@example.com")
	u2 := seedUser(t, gdb, "Manager Watcher", "mgr@example.com")

	deptCond := types.JSONB{"department": "ENG"}
	posCond := types.JSONB{"position": "manager"}
	seedRule(t, gdb, models.RoutingRule{
		Name:     "conditional rule",
		Trigger:  "APPROVAL",
		IsActive: true,
		Routes: []models.Route{
			{RecipientID: u1.ID, Condition: &deptCond},
			{RecipientID: u2.ID, Condition: &posCond},
		},
	})

	created, err := newTestRouter().Route("APPROVAL", employee.ID, nil)
	assert.Nil(t, err)
	assert.Len(t, created, 1)
	assert.Equal(t, u1.ID, *created[0].RecipientID)
}

func TestRouteIgnoresInactiveRules(t *testing.T) {
	gdb := setupTestDB(t)
	_, employee := seedDirectory(t, gdb)
	watcher := seedUser(t, gdb, "Watcher", "watcher@example.com")
	supervisorUser := seedUser(t, gdb, "Supervisor", "supervisor@example.com")
	supervisor := seedEmployee(t, gdb, models.Employee{
		FirstName: "Sam",
		LastName:  "Boss",
		Position:  "Engineering Manager",
		UserID:    &supervisorUser.ID,
	})
	gdb.Model(&models.Employee{}).Where("id = ?", employee.ID).Update("supervisor_id", supervisor.ID)

	seedRule(t, gdb, models.RoutingRule{
		Name:     "disabled rule",
		Trigger:  "DEADLINE",
		IsActive: false,
		Routes:   []models.Route{{RecipientID: watcher.ID}},
	})

	created, err := newTestRouter().Route("DEADLINE", employee.ID, nil)
	assert.Nil(t, err)
	assert.Len(t, created, 1)
	assert.Equal(t, supervisorUser.ID, *created[0].RecipientID)
	md := *created[0].Metadata
	assert.Equal(t, true, md["isDefault"])
}

func TestRouteDefaultSupervisor(t *testing.T) {
	gdb := setupTestDB(t)
	_, employee := seedDirectory(t, gdb)
	supervisorUser := seedUser(t, gdb, "Supervisor", "supervisor@example.com")
	supervisor := seedEmployee(t, gdb, models.Employee{
		FirstName: "Sam",
		LastName:  "Boss",
		UserID:    &supervisorUser.ID,
	})
	gdb.Model(&models.Employee{}).Where("id = ?", employee.ID).Update("supervisor_id", supervisor.ID)

	created, err := newTestRouter().Route("TRAINING", employee.ID, nil)
	assert.Nil(t, err)
	assert.Len(t, created, 1)

	n := created[0]
	assert.Equal(t, supervisorUser.ID, *n.RecipientID)
	assert.Equal(t, types.PRIORITY_LOW, n.Priority)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), *n.Deadline, time.Minute)
	assert.Equal(t, true, (*n.Metadata)["isDefault"])
}

func TestRouteDefaultFallsBackToHRContact(t *testing.T) {
	gdb := setupTestDB(t)
	_, employee := seedDirectory(t, gdb)
	hrUser := seedUser(t, gdb, "HR Person", "hr@example.com")
	seedEmployee(t, gdb, models.Employee{
		FirstName: "Harper",
		LastName:  "Reeves",
		Position:  "HR Manager",
		Status:    types.EMPLOYEE_ACTIVE,
		UserID:    &hrUser.ID,
	})

	created, err := newTestRouter().Route("APPRAISAL", employee.ID, nil)
	assert.Nil(t, err)
	assert.Len(t, created, 1)
	assert.Equal(t, hrUser.ID, *created[0].RecipientID)
}

func TestRouteDefaultHRWithoutAccount(t *testing.T) {
	gdb := setupTestDB(t)
	_, employee := seedDirectory(t, gdb)
	// An HR employee with no linked account is not a delivery candidate.
	seedEmployee(t, gdb, models.Employee{
		FirstName: "Harper",
		LastName:  "Reeves",
		Position:  "HR Manager",
		Status:    types.EMPLOYEE_ACTIVE,
	})

	created, err := newTestRouter().Route("APPRAISAL", employee.ID, nil)
	assert.Nil(t, err)
	assert.Len(t, created, 1)
	assert.Nil(t, created[0].RecipientID)
}

func TestRouteEscalationWithNoCandidates(t *testing.T) {
	gdb := setupTestDB(t)
	_, employee := seedDirectory(t, gdb)

	created, err := newTestRouter().Route("ESCALATION", employee.ID, nil)
	assert.Nil(t, err)
	assert.Len(t, created, 1)

	n := created[0]
	assert.Nil(t, n.RecipientID)
	assert.Equal(t, types.PRIORITY_CRITICAL, n.Priority)
	assert.Equal(t, types.NOTIFICATION_PENDING, n.Status)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), *n.Deadline, time.Minute)
	assert.EqualValues(t, 1, notificationCount(t, gdb))
}

func TestRouteMissingEmployee(t *testing.T) {
	gdb := setupTestDB(t)

	created, err := newTestRouter().Route("ESCALATION", 999, nil)
	assert.EqualError(t, err, "employee [999] not found")
	assert.Nil(t, created)
	assert.EqualValues(t, 0, notificationCount(t, gdb))
}

func TestRoutePartialFailureKeepsEarlierWrites(t *testing.T) {
	gdb := setupTestDB(t)
	_, employee := seedDirectory(t, gdb)
	u1 := seedUser(t, gdb, "First", "first@example.com")

	now := time.Now()
	// The older rule points at a user that no longer exists.
	seedRule(t, gdb, models.RoutingRule{
		Name:       "stale rule",
		Trigger:    "APPROVAL",
		IsActive:   true,
		Routes:     []models.Route{{RecipientID: 999}},
		Timestamps: types.Timestamps{CreatedAt: now.Add(-time.Hour)},
	})
	seedRule(t, gdb, models.RoutingRule{
		Name:       "current rule",
		Trigger:    "APPROVAL",
		IsActive:   true,
		Routes:     []models.Route{{RecipientID: u1.ID}},
		Timestamps: types.Timestamps{CreatedAt: now},
	})

	created, err := newTestRouter().Route("APPROVAL", employee.ID, nil)
	assert.EqualError(t, err, "recipient user [999] does not exist")
	assert.Nil(t, created)
	assert.EqualValues(t, 1, notificationCount(t, gdb))
}
