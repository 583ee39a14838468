package notify

import (
	"log"
	"strings"

	"hros/src/models"
	"hros/src/types"
	"hros/src/utils"
)

// Router fans a trigger out to every matching route of every active rule.
// Every event reaches at least one recipient: when no rule produces a
// notification the default routing path runs exactly once.
type Router struct {
	writer *Writer
}

func NewRouter(writer *Writer) *Router {
	return &Router{writer: writer}
}

// Route resolves the employee, expands all active matching rules and
// persists one notification per matching route. A missing employee is fatal
// to the call; everything written before a failing create stays written.
func (r *Router) Route(trigger string, employeeId uint, metadata types.Metadata) ([]*models.Notification, error) {
	employee, err := utils.GetEmployee(employeeId)
	if err != nil {
		return nil, err
	}

	rules, err := utils.FindActiveRoutingRules(trigger)
	if err != nil {
		return nil, err
	}

	notifType := types.NotificationType(strings.ToUpper(trigger))
	created := []*models.Notification{}
	for _, rule := range rules {
		for _, route := range rule.Routes {
			if !RouteMatches(route.Condition, employee, metadata) {
				continue
			}
			composed := Compose(trigger, employee, metadata, 0)
			md := types.JSONB{}
			for k, v := range metadata {
				md[k] = v
			}
			md["routingRuleId"] = rule.ID
			md["routeId"] = route.ID

			recipientId := route.RecipientID
			notification, err := r.writer.Create(CreateParams{
				Title:       composed.Title,
				Message:     composed.Message,
				Type:        notifType,
				Priority:    composed.Priority,
				RecipientID: &recipientId,
				EmployeeID:  &employee.ID,
				Sender:      SystemSender(),
				Deadline:    &composed.Deadline,
				ActionURL:   &composed.ActionURL,
				Metadata:    md,
			})
			if err != nil {
				return nil, err
			}
			created = append(created, notification)
		}
	}

	if len(created) == 0 {
		log.Printf("[routing] No active rule matched trigger [%s] for employee [%d], using default routing\n", trigger, employeeId)
		notification, err := r.routeDefault(trigger, employee, metadata)
		if err != nil {
			return nil, err
		}
		created = append(created, notification)
	}

	return created, nil
}
