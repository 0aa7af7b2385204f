package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/b/plouto/pkg/menu"
)

var (
	ErrUnknownWorkspace = errors.New("workspace not found")
	ErrNoWorkspaces     = errors.New("user has no workspaces")
	ErrInvalidLayout    = errors.New("invalid layout")
)

// Layout is the user's preferred shell arrangement.
type Layout string

const (
	LayoutSidebar Layout = "sidebar"
	LayoutTopbar  Layout = "topbar"
)

func ParseLayout(s string) (Layout, error) {
	switch l := Layout(strings.ToLower(strings.TrimSpace(s))); l {
	case LayoutSidebar, LayoutTopbar:
		return l, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLayout, s)
}

// Toggle returns the other layout.
func (l Layout) Toggle() Layout {
	if l == LayoutSidebar {
		return LayoutTopbar
	}
	return LayoutSidebar
}

// Workspace is a role-scoped tenant context.
type Workspace struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Role        menu.Role `json:"role"`
	CompanyName string    `json:"company_name"`
}

type User struct {
	ID                 string      `json:"id"`
	Name               string      `json:"name"`
	Email              string      `json:"email"`
	Workspaces         []Workspace `json:"workspaces"`
	DefaultWorkspaceID string      `json:"default_workspace_id"`
	PreferredLayout    Layout      `json:"preferred_layout"`
}

// Workspace looks up one of the user's workspaces by id.
func (u User) Workspace(id string) (Workspace, bool) {
	for _, ws := range u.Workspaces {
		if ws.ID == id {
			return ws, true
		}
	}
	return Workspace{}, false
}

// DefaultWorkspace returns the configured default, or the first workspace when
// the default id is missing or stale. The bool reports whether the fallback
// was taken.
func (u User) DefaultWorkspace() (Workspace, bool, error) {
	if len(u.Workspaces) == 0 {
		return Workspace{}, false, ErrNoWorkspaces
	}
	if ws, ok := u.Workspace(u.DefaultWorkspaceID); ok {
		return ws, false, nil
	}
	return u.Workspaces[0], true, nil
}

// Initials is used for the avatar badge.
func (u User) Initials() string {
	var out []rune
	for _, part := range strings.Fields(u.Name) {
		out = append(out, []rune(strings.ToUpper(part))[0])
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "?"
	}
	return string(out)
}

// MockUser is the demo account the login stub signs in.
func MockUser() User {
	return User{
		ID:    "u1",
		Name:  "Alex Rivera",
		Email: "alex.rivera@global-logistics.com",
		Workspaces: []Workspace{
			{ID: "ws1", Name: "Global Import Ops", Role: menu.RoleBuyer, CompanyName: "Oceanic Retail Ltd"},
			{ID: "ws2", Name: "Factory Export Unit", Role: menu.RoleVendor, CompanyName: "Eastern Mfg Group"},
			{ID: "ws3", Name: "Liaison Forwarding", Role: menu.RoleFreightForwarder, CompanyName: "FastTrack Logistics"},
		},
		DefaultWorkspaceID: "ws1",
		PreferredLayout:    LayoutTopbar,
	}
}
