// Package permission answers per-module, per-action authorization checks.
package permission

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

type Module string

const (
	ModuleAppointments  Module = "appointments"
	ModuleClients       Module = "clients"
	ModuleProfessionals Module = "professionals"
	ModuleStock         Module = "stock"
	ModuleSuppliers     Module = "suppliers"
	ModuleReports       Module = "reports"
	ModuleSettings      Module = "settings"
)

var Modules = []Module{
	ModuleAppointments,
	ModuleClients,
	ModuleProfessionals,
	ModuleStock,
	ModuleSuppliers,
	ModuleReports,
	ModuleSettings,
}

type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Grant is either full access to a module or a set of allowed actions.
type Grant struct {
	full    bool
	actions map[Action]struct{}
}

func Full() Grant { return Grant{full: true} }

func Actions(actions ...Action) Grant {
	g := Grant{actions: make(map[Action]struct{}, len(actions))}
	for _, a := range actions {
		g.actions[a] = struct{}{}
	}
	return g
}

func (g Grant) Allows(a Action) bool {
	if g.full {
		return true
	}
	_, ok := g.actions[a]
	return ok
}

func (g Grant) IsFull() bool { return g.full }

// MarshalJSON writes true for full access, false for nothing, and
// {"view": true, ...} otherwise.
func (g Grant) MarshalJSON() ([]byte, error) {
	if g.full {
		return []byte("true"), nil
	}
	if len(g.actions) == 0 {
		return []byte("false"), nil
	}
	m := make(map[Action]bool, len(g.actions))
	for a := range g.actions {
		m[a] = true
	}
	return json.Marshal(m)
}

// UnmarshalJSON accepts a boolean or an object of action -> boolean.
func (g *Grant) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "true":
		*g = Full()
		return nil
	case "false", "null":
		*g = Grant{}
		return nil
	}

	var m map[Action]bool
	if err := json.Unmarshal(b, &m); err != nil {
		return fmt.Errorf("permission grant: %w", err)
	}
	granted := make([]Action, 0, len(m))
	for a, ok := range m {
		if ok {
			granted = append(granted, a)
		}
	}
	*g = Actions(granted...)
	return nil
}

// Set maps modules to grants. Modules without an entry are denied.
type Set map[Module]Grant

// Admin grants full access to every module.
func Admin() Set {
	s := make(Set, len(Modules))
	for _, m := range Modules {
		s[m] = Full()
	}
	return s
}

func (s Set) HasPermission(m Module, a Action) bool {
	g, ok := s[m]
	return ok && g.Allows(a)
}

// Allowed lists the modules the set grants any access to.
func (s Set) Allowed() []Module {
	out := make([]Module, 0, len(s))
	for m, g := range s {
		if g.full || len(g.actions) > 0 {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

const (
	RoleOwner        = "owner"
	RoleAdmin        = "admin"
	RoleReceptionist = "receptionist"
	RoleProfessional = "professional"
)

// ForRole returns the default set for a role name.
func ForRole(role string) Set {
	switch role {
	case RoleAdmin, RoleOwner:
		return Admin()
	case RoleReceptionist:
		return Set{
			ModuleAppointments:  Full(),
			ModuleClients:       Actions(ActionView, ActionCreate, ActionEdit),
			ModuleProfessionals: Actions(ActionView),
		}
	case RoleProfessional:
		return Set{
			ModuleAppointments: Actions(ActionView, ActionEdit),
			ModuleClients:      Actions(ActionView),
		}
	}
	return Set{}
}

// Parse decodes a stored permissions document. Unknown modules are kept.
func Parse(data []byte) (Set, error) {
	s := Set{}
	if len(bytes.TrimSpace(data)) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return s, nil
}
