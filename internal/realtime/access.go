package realtime

import (
	"errors"
	"strconv"

	"mavinci/internal/domain/navigation"
)

var (
	ErrUnknownTable = errors.New("table is not available for subscriptions")
	ErrForbidden    = errors.New("no access to this table")
)

const recipientsTable = "notification_recipients"

// tableModules maps each published table to the module that guards it. The
// recipients table is open to everyone but always scoped to the subscriber.
var tableModules = map[string]string{
	"offers":                  "offers",
	"offer_items":             "offers",
	"offer_products":          "offers",
	"offer_product_equipment": "offers",
	"tasks":                   "tasks",
	"task_assignees":          "tasks",
	"task_comments":           "tasks",
	"task_attachments":        "tasks",
	"events":                  "events",
	"event_folders":           "events",
	"event_files":             "events",
	"organizations":           "clients",
	"contacts":                "clients",
	"contact_organizations":   "clients",
	"equipment_categories":    "equipment",
	"equipment_items":         "equipment",
	"equipment_units":         "equipment",
	"employees":               "employees",
	recipientsTable:           "",
}

// authorize checks sub against the subscriber's access and returns the
// subscription that will actually be stored.
func authorize(access navigation.Access, employeeID int64, sub Subscription) (Subscription, error) {
	module, ok := tableModules[sub.Table]
	if !ok {
		return sub, ErrUnknownTable
	}
	if !access.Can(module) {
		return sub, ErrForbidden
	}
	if sub.Table != recipientsTable {
		return sub, nil
	}

	self := strconv.FormatInt(employeeID, 10)
	switch {
	case sub.Filter == nil:
		sub.Filter = &Filter{Column: "employee_id", Value: self}
	case sub.Filter.Column != "employee_id" || sub.Filter.Value != self:
		return sub, ErrForbidden
	}
	return sub, nil
}
