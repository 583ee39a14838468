package notify

import (
	"strings"
	"time"

	"hros/src/types"
)

// TypePolicy is the per-type routing/composition configuration. Adding a
// notification type is a single entry here.
type TypePolicy struct {
	PriorityDefault types.Priority
	DeadlineOffset  time.Duration
	TitleTemplate   string
	MessageTemplate string
	ActionPath      string
	ButtonText      string
}

var typePolicies = map[types.NotificationType]TypePolicy{
	types.NOTIF_PERFORMANCE_PLAN: {
		PriorityDefault: types.PRIORITY_NORMAL,
		DeadlineOffset:  7 * 24 * time.Hour,
		TitleTemplate:   "Performance Plan Due - %s",
		MessageTemplate: "A performance plan for %s in %s is due and requires your attention.",
		ActionPath:      "/hr/performance/plans/%d",
		ButtonText:      "View Plan",
	},
	types.NOTIF_APPRAISAL: {
		PriorityDefault: types.PRIORITY_NORMAL,
		DeadlineOffset:  14 * 24 * time.Hour,
		TitleTemplate:   "Appraisal Scheduled - %s",
		MessageTemplate: "An appraisal for %s in %s has been scheduled.",
		ActionPath:      "/hr/appraisals/%d",
		ButtonText:      "View Appraisal",
	},
	types.NOTIF_TRAINING: {
		PriorityDefault: types.PRIORITY_LOW,
		DeadlineOffset:  30 * 24 * time.Hour,
		TitleTemplate:   "Training Assigned - %s",
		MessageTemplate: "A training program has been assigned to %s in %s.",
		ActionPath:      "/hr/training/%d",
		ButtonText:      "View Training",
	},
	types.NOTIF_DEADLINE: {
		PriorityDefault: types.PRIORITY_HIGH,
		DeadlineOffset:  24 * time.Hour,
		TitleTemplate:   "Deadline Approaching - %s",
		MessageTemplate: "A deadline concerning %s in %s is approaching.",
		ActionPath:      "/hr/tasks/%d",
		ButtonText:      "View Deadline",
	},
	types.NOTIF_ESCALATION: {
		PriorityDefault: types.PRIORITY_CRITICAL,
		DeadlineOffset:  2 * time.Hour,
		TitleTemplate:   "Escalation - %s",
		MessageTemplate: "An issue concerning %s in %s has been escalated and needs an immediate response.",
		ActionPath:      "/hr/escalations/%d",
		ButtonText:      "Respond Now",
	},
	types.NOTIF_APPROVAL: {
		PriorityDefault: types.PRIORITY_HIGH,
		DeadlineOffset:  3 * 24 * time.Hour,
		TitleTemplate:   "Approval Required - %s",
		MessageTemplate: "A request from %s in %s is waiting for your approval.",
		ActionPath:      "/hr/approvals/%d",
		ButtonText:      "Review & Approve",
	},
}

var defaultPolicy = TypePolicy{
	PriorityDefault: types.PRIORITY_NORMAL,
	DeadlineOffset:  7 * 24 * time.Hour,
	TitleTemplate:   "HR Notification - %s",
	MessageTemplate: "HR action required for %s in %s.",
	ActionPath:      "/hr/employees/%d",
	ButtonText:      "View Notification",
}

// PolicyFor looks up the policy for a type. Unknown types degrade to the
// generic policy instead of failing.
func PolicyFor(typ string) TypePolicy {
	if p, ok := typePolicies[types.NotificationType(strings.ToUpper(typ))]; ok {
		return p
	}
	return defaultPolicy
}
