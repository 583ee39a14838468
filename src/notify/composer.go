package notify

import (
	"fmt"
	"strings"
	"time"

	"hros/src/models"
	"hros/src/types"
)

type Composed struct {
	Title     string
	Message   string
	Priority  types.Priority
	Deadline  time.Time
	ActionURL string
}

// Compose maps (type, employee, metadata) to the business content of a
// notification. It has no side effects and no error paths.
func Compose(typ string, employee *models.Employee, metadata types.Metadata, delayMinutes int) Composed {
	return ComposeAt(time.Now(), typ, employee, metadata, delayMinutes)
}

// ComposeAt is Compose with an explicit clock so callers can pin "now".
func ComposeAt(now time.Time, typ string, employee *models.Employee, metadata types.Metadata, delayMinutes int) Composed {
	policy := PolicyFor(typ)
	name := employee.FullName()
	department := employee.DepartmentName()

	priority := policy.PriorityDefault
	if v, ok := metadata["priority"].(string); ok && v != "" {
		priority = types.Priority(strings.ToLower(v))
	}

	deadline := now.Add(time.Duration(delayMinutes) * time.Minute).Add(policy.DeadlineOffset)

	return Composed{
		Title:     fmt.Sprintf(policy.TitleTemplate, name),
		Message:   fmt.Sprintf(policy.MessageTemplate, name, department),
		Priority:  priority,
		Deadline:  deadline,
		ActionURL: fmt.Sprintf(policy.ActionPath, employee.ID),
	}
}
