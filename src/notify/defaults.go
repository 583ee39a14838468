package notify

import (
	"log"
	"strings"

	"hros/src/models"
	"hros/src/types"
	"hros/src/utils"
)

// routeDefault is the fallback recipient selection: the employee's
// supervisor, else the first HR contact in the directory. An HR employee
// without a linked account counts as no candidate. When neither resolves the
// notification is still created, with a null recipient, and flagged in the
// log so operators can fix the directory data.
func (r *Router) routeDefault(trigger string, employee *models.Employee, metadata types.Metadata) (*models.Notification, error) {
	var recipientId *uint

	if employee.Supervisor != nil && employee.Supervisor.UserID != nil {
		recipientId = employee.Supervisor.UserID
	} else {
		hr, err := utils.FindHRContact()
		if err != nil {
			return nil, err
		}
		if hr != nil && hr.UserID != nil {
			recipientId = hr.UserID
		}
	}

	if recipientId == nil {
		log.Printf("[routing] No supervisor or HR contact for employee [%d]; creating undeliverable notification (check directory data)\n", employee.ID)
	}

	composed := Compose(trigger, employee, metadata, 0)
	md := types.JSONB{}
	for k, v := range metadata {
		md[k] = v
	}
	md["isDefault"] = true

	return r.writer.Create(CreateParams{
		Title:       composed.Title,
		Message:     composed.Message,
		Type:        types.NotificationType(strings.ToUpper(trigger)),
		Priority:    composed.Priority,
		RecipientID: recipientId,
		EmployeeID:  &employee.ID,
		Sender:      SystemSender(),
		Deadline:    &composed.Deadline,
		ActionURL:   &composed.ActionURL,
		Metadata:    md,
	})
}
