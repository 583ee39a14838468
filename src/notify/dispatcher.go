package notify

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"hros/src/lib"
	"hros/src/types"
)

// deliveryTimeout bounds a single SMTP attempt so a hung transport cannot
// leak dispatch goroutines.
const deliveryTimeout = 15 * time.Second

type Delivery struct {
	Type         types.NotificationType
	ToEmail      string
	ToName       string
	Title        string
	Message      string
	ActionURL    *string
	EmployeeName string
	Deadline     *time.Time
	Priority     types.Priority
}

type DispatchFunc func(d Delivery)

// DeliverEmail is the production dispatch hook: best effort, never
// propagates. A failed send leaves the in-app notification untouched.
func DeliverEmail(d Delivery) {
	subject, body := BuildEmail(d)
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()
	input := &lib.SendMailInput{
		From:     os.Getenv("SMTP_FROM"),
		FromName: "noreply",
		To:       []string{d.ToEmail},
		Subject:  subject,
		Body:     body,
		Html:     true,
	}
	if err := lib.SendMailWithContext(ctx, input); err != nil {
		log.Printf("[mailer] Error sending notification email to [%s]: %s\n", d.ToEmail, err.Error())
		return
	}
}

// BuildEmail elaborates the composed title/message into a mail subject and
// body. Presentation only; the business content comes from the composer.
func BuildEmail(d Delivery) (string, string) {
	var b strings.Builder

	if d.Priority == types.PRIORITY_HIGH || d.Priority == types.PRIORITY_CRITICAL {
		fmt.Fprintf(&b, "<p><b>[%s PRIORITY]</b></p>", strings.ToUpper(string(d.Priority)))
	}
	fmt.Fprintf(&b, "<p>Hi %s,</p>", d.ToName)
	fmt.Fprintf(&b, "<p>%s</p>", d.Message)
	if d.EmployeeName != "" {
		fmt.Fprintf(&b, "<p>Employee: %s</p>", d.EmployeeName)
	}
	if d.Deadline != nil {
		fmt.Fprintf(&b, "<p>Due by: %s</p>", d.Deadline.Format("Mon, 02 Jan 2006 15:04 MST"))
	}
	if d.ActionURL != nil {
		fmt.Fprintf(&b, `<p><a href="%s%s">%s</a></p>`, os.Getenv("APP_HOST"), *d.ActionURL, ButtonLabel(d.Type))
	}
	b.WriteString("<p>This is a system-generated message. Do not reply to this email.</p>")

	return d.Title, b.String()
}

// ButtonLabel picks the action button text for a notification type.
func ButtonLabel(typ types.NotificationType) string {
	return PolicyFor(string(typ)).ButtonText
}
