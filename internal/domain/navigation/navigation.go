// Package navigation decides which sidebar entries an employee sees and in
// what order. The same rule gates the API routes behind each entry.
package navigation

// Item is one sidebar entry. An empty Module means always visible.
type Item struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	Href   string `json:"href"`
	Module string `json:"module,omitempty"`
}

const RoleAdmin = "admin"

// Access is what an employee is allowed to see.
type Access struct {
	IsAdmin     bool
	Permissions map[string]struct{}
}

func NewAccess(role string, permissions []string) Access {
	a := Access{
		IsAdmin:     role == RoleAdmin,
		Permissions: make(map[string]struct{}, len(permissions)),
	}
	for _, p := range permissions {
		a.Permissions[p] = struct{}{}
	}
	return a
}

func (a Access) Can(module string) bool {
	if a.IsAdmin || module == "" {
		return true
	}
	_, ok := a.Permissions[module]
	return ok
}

// Master is the full menu in default order.
var Master = []Item{
	{Key: "dashboard", Name: "Pulpit", Href: "/crm"},
	{Key: "calendar", Name: "Kalendarz", Href: "/crm/calendar", Module: "calendar"},
	{Key: "events", Name: "Wydarzenia", Href: "/crm/events", Module: "events"},
	{Key: "clients", Name: "Klienci", Href: "/crm/clients", Module: "clients"},
	{Key: "offers", Name: "Oferty", Href: "/crm/offers", Module: "offers"},
	{Key: "equipment", Name: "Magazyn", Href: "/crm/equipment", Module: "equipment"},
	{Key: "tasks", Name: "Zadania", Href: "/crm/tasks", Module: "tasks"},
	{Key: "employees", Name: "Pracownicy", Href: "/crm/employees", Module: "employees"},
	{Key: "notifications", Name: "Powiadomienia", Href: "/crm/notifications"},
	{Key: "settings", Name: "Ustawienia", Href: "/crm/settings"},
}

// Filter returns the visible subset of master. Without a custom order the
// master order is kept; with one, ordered keys come first in the given order
// (unknown, repeated and hidden keys are skipped) followed by the remaining
// visible entries in master order.
func Filter(master []Item, access Access, order []string) []Item {
	visible := make([]Item, 0, len(master))
	byKey := make(map[string]int, len(master))
	for _, item := range master {
		if access.Can(item.Module) {
			byKey[item.Key] = len(visible)
			visible = append(visible, item)
		}
	}
	if len(order) == 0 {
		return visible
	}

	out := make([]Item, 0, len(visible))
	placed := make(map[string]bool, len(visible))
	for _, key := range order {
		idx, ok := byKey[key]
		if !ok || placed[key] {
			continue
		}
		placed[key] = true
		out = append(out, visible[idx])
	}
	for _, item := range visible {
		if !placed[item.Key] {
			out = append(out, item)
		}
	}
	return out
}

// NormalizeOrder drops keys that are not in master and repeated keys.
func NormalizeOrder(master []Item, order []string) []string {
	known := make(map[string]bool, len(master))
	for _, item := range master {
		known[item.Key] = true
	}
	out := make([]string, 0, len(order))
	seen := make(map[string]bool, len(order))
	for _, key := range order {
		if known[key] && !seen[key] {
			seen[key] = true
			out = append(out, key)
		}
	}
	return out
}
