// Package menu holds the portal's navigation registry: an ordered forest of
// menu nodes gated by workspace role, plus the pure lookups the shell uses to
// decide what is visible and what is active.
package menu

import (
	"errors"
	"fmt"
	"strings"
)

// Role is the closed set of workspace roles a node can admit.
type Role string

const (
	RoleBuyer            Role = "BUYER"
	RoleVendor           Role = "VENDOR"
	RoleFreightForwarder Role = "FREIGHT_FORWARDER"
	RoleCustomsBroker    Role = "CUSTOMS_BROKER"
	RoleWarehouse        Role = "WAREHOUSE"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleBuyer, RoleVendor, RoleFreightForwarder, RoleCustomsBroker, RoleWarehouse}

var ErrUnknownRole = errors.New("unknown role")

// ParseRole accepts a role name in any case.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Roles {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// Initial is the one-letter badge shown in the workspace switcher.
func (r Role) Initial() string {
	if r == "" {
		return "?"
	}
	return string(r[0])
}

// Label is the human form, e.g. "Freight Forwarder".
func (r Role) Label() string {
	parts := strings.Split(strings.ToLower(string(r)), "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

// Kind is the interaction contract of a node, derived from its flags.
type Kind int

const (
	// KindLeaf is an online node without children; the only selectable kind.
	KindLeaf Kind = iota
	// KindBranch is an online node with children; it toggles a disclosure.
	KindBranch
	// KindOffline is any node whose service is down, with or without children.
	KindOffline
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindBranch:
		return "branch"
	case KindOffline:
		return "offline"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Node is one entry of the registry. Children are owned by their parent.
type Node struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Icon        string `yaml:"icon"`
	ServiceID   string `yaml:"service_id"`
	Online      bool   `yaml:"online"`
	Roles       []Role `yaml:"roles"`
	StatusLabel string `yaml:"status_label,omitempty"`
	Children    []Node `yaml:"children,omitempty"`
}

// Kind classifies the node once; renderers switch on the result.
func (n Node) Kind() Kind {
	if !n.Online {
		return KindOffline
	}
	if len(n.Children) > 0 {
		return KindBranch
	}
	return KindLeaf
}

// Selectable reports whether a click on the node changes the active menu.
func (n Node) Selectable() bool {
	return n.Kind() == KindLeaf
}

// Admits reports whether the node is visible to a workspace with role r.
func (n Node) Admits(r Role) bool {
	for _, role := range n.Roles {
		if role == r {
			return true
		}
	}
	return false
}

// Forest is an ordered list of root nodes.
type Forest []Node

// FirstRootID is the well-known default active id, or "" for an empty forest.
func (f Forest) FirstRootID() string {
	if len(f) == 0 {
		return ""
	}
	return f[0].ID
}

// Len counts every node in the forest.
func (f Forest) Len() int {
	count := 0
	Walk(f, func(Node, int) bool {
		count++
		return true
	})
	return count
}
