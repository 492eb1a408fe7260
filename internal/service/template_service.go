// internal/service/template_service.go
package service

import (
	"strings"

	"github.com/unclebandit/simple-crm/internal/model"
)

var activityTemplates = map[model.EventType]string{
	model.EventCustomerCreated:       "{name} was added as {new_status}",
	model.EventCustomerStatusChanged: "{name} moved from {old_status} to {new_status}",
	model.EventCustomerDeleted:       "{name} was deleted",
}

func RenderTemplate(template string, data map[string]string) string {
	result := template
	for k, v := range data {
		result = strings.ReplaceAll(result, "{"+k+"}", v)
	}
	return result
}

// RenderActivity turns a customer event into the human-readable line stored in the activity log.
func RenderActivity(ev model.CustomerEvent) string {
	template, ok := activityTemplates[ev.Type]
	if !ok {
		template = "{name}: " + string(ev.Type)
	}

	name := ev.Name
	if name == "" {
		name = "<unknown>"
	}
	return RenderTemplate(template, map[string]string{
		"name":       name,
		"old_status": string(ev.OldStatus),
		"new_status": string(ev.NewStatus),
	})
}
