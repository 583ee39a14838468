package notify

import (
	"fmt"
	"strings"

	"hros/src/models"
	"hros/src/types"
)

// RouteMatches evaluates a route's optional condition against the employee
// being routed. A route without a condition always matches.
//
// Supported keys:
//
//	department: equals the employee's department name or code (case-insensitive)
//	position:   substring of the employee's position (case-insensitive)
//	metadata:   map whose entries must all equal the trigger metadata values
func RouteMatches(condition *types.JSONB, employee *models.Employee, metadata types.Metadata) bool {
	if condition == nil || len(*condition) == 0 {
		return true
	}
	cond := *condition

	if want, ok := cond["department"].(string); ok && want != "" {
		name := ""
		code := ""
		if employee.Department != nil {
			name = employee.Department.Name
			code = employee.Department.Code
		}
		if !strings.EqualFold(want, name) && !strings.EqualFold(want, code) {
			return false
		}
	}

	if want, ok := cond["position"].(string); ok && want != "" {
		if !strings.Contains(strings.ToLower(employee.Position), strings.ToLower(want)) {
			return false
		}
	}

	if want, ok := cond["metadata"].(map[string]any); ok {
		for key, value := range want {
			got, present := metadata[key]
			if !present {
				return false
			}
			if fmt.Sprintf("%v", got) != fmt.Sprintf("%v", value) {
				return false
			}
		}
	}

	return true
}
