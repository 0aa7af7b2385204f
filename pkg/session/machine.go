// Package session is the portal's navigation state machine: who is signed in,
// which workspace is active and what the content area shows.
package session

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/b/plouto/pkg/menu"
)

var (
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrAlreadyAuthenticated = errors.New("already authenticated")
)

type State int

const (
	LoggedOut State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "logged_out"
}

// Snapshot is a read-only view of the machine handed to renderers and the
// content router.
type Snapshot struct {
	State        State
	Workspace    Workspace
	ActiveMenuID string
	ShowProfile  bool
	// Epoch changes on login and on every workspace switch. Renderers drop
	// their disclosure state when it moves.
	Epoch uint64
}

// Machine owns navigation state for one session. It is not safe for
// concurrent use; the shell serializes access.
type Machine struct {
	registry menu.Forest
	user     User
	logger   *zap.Logger

	state        State
	workspace    Workspace
	activeMenuID string
	showProfile  bool
	epoch        uint64

	activity *ActivityLog
}

// NewMachine starts logged out. The registry is shared read-only.
func NewMachine(registry menu.Forest, user User, activity *ActivityLog, logger *zap.Logger) *Machine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if activity == nil {
		activity = NewActivityLog(nil)
	}
	return &Machine{
		registry: registry,
		user:     user,
		logger:   logger.Named("session"),
		activity: activity,
	}
}

func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		State:        m.state,
		Workspace:    m.workspace,
		ActiveMenuID: m.activeMenuID,
		ShowProfile:  m.showProfile,
		Epoch:        m.epoch,
	}
}

func (m *Machine) State() State           { return m.state }
func (m *Machine) User() User             { return m.user }
func (m *Machine) Registry() menu.Forest  { return m.registry }
func (m *Machine) Activity() *ActivityLog { return m.activity }

// VisibleRoots is the role-filtered navigation for the active workspace.
func (m *Machine) VisibleRoots() menu.Forest {
	if m.state != Authenticated {
		return menu.Forest{}
	}
	return menu.FilterRoots(m.registry, m.workspace.Role)
}

// Login enters the authenticated state on the user's default workspace.
func (m *Machine) Login() error {
	if m.state == Authenticated {
		return ErrAlreadyAuthenticated
	}
	ws, fellBack, err := m.user.DefaultWorkspace()
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if fellBack {
		m.logger.Warn("default workspace not found, using first",
			zap.String("default_workspace_id", m.user.DefaultWorkspaceID),
			zap.String("workspace_id", ws.ID))
	}
	m.state = Authenticated
	m.workspace = ws
	m.resetNavigation()
	m.activity.Record(ActivityLogin, "Logged in as "+m.user.Email)
	m.logger.Debug("login", zap.String("workspace_id", ws.ID), zap.String("role", string(ws.Role)))
	return nil
}

// SelectMenu makes id the active menu and leaves the profile. The id is not
// checked; an unknown id renders as the default root.
func (m *Machine) SelectMenu(id string) error {
	if m.state != Authenticated {
		return ErrNotAuthenticated
	}
	m.activeMenuID = id
	m.showProfile = false
	if _, ok := menu.FindByID(m.registry, id); !ok {
		m.logger.Warn("selected menu id does not resolve", zap.String("menu_id", id))
	}
	m.activity.Record(ActivityMenuSelect, id)
	m.logger.Debug("select menu", zap.String("menu_id", id))
	return nil
}

// SwitchWorkspace activates ws and always resets navigation, even when ws is
// already active.
func (m *Machine) SwitchWorkspace(ws Workspace) error {
	if m.state != Authenticated {
		return ErrNotAuthenticated
	}
	m.workspace = ws
	m.resetNavigation()
	m.activity.Record(ActivityWorkspaceSwitch, "Switched to "+ws.Name)
	m.logger.Debug("switch workspace", zap.String("workspace_id", ws.ID), zap.String("role", string(ws.Role)))
	return nil
}

// SwitchWorkspaceByID resolves id against the user's workspaces.
func (m *Machine) SwitchWorkspaceByID(id string) error {
	ws, ok := m.user.Workspace(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownWorkspace, id)
	}
	return m.SwitchWorkspace(ws)
}

func (m *Machine) OpenProfile() error {
	if m.state != Authenticated {
		return ErrNotAuthenticated
	}
	m.showProfile = true
	m.activity.Record(ActivityProfile, "Opened account settings")
	return nil
}

// CloseProfile returns to the selection that was active before the profile.
func (m *Machine) CloseProfile() error {
	if m.state != Authenticated {
		return ErrNotAuthenticated
	}
	m.showProfile = false
	return nil
}

// Logout discards all navigation state.
func (m *Machine) Logout() error {
	if m.state != Authenticated {
		return ErrNotAuthenticated
	}
	m.logger.Debug("logout", zap.String("workspace_id", m.workspace.ID))
	m.activity.Record(ActivityLogout, "Signed out of "+m.workspace.Name)
	m.state = LoggedOut
	m.workspace = Workspace{}
	m.activeMenuID = ""
	m.showProfile = false
	return nil
}

// SetDefaultWorkspace changes which workspace the next login lands on. The
// active workspace is left alone.
func (m *Machine) SetDefaultWorkspace(id string) error {
	if m.state != Authenticated {
		return ErrNotAuthenticated
	}
	ws, ok := m.user.Workspace(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownWorkspace, id)
	}
	m.user.DefaultWorkspaceID = id
	m.activity.Record(ActivityDefaultWorkspace, "Default workspace set to "+ws.Name)
	return nil
}

func (m *Machine) SetPreferredLayout(l Layout) error {
	if m.state != Authenticated {
		return ErrNotAuthenticated
	}
	if _, err := ParseLayout(string(l)); err != nil {
		return err
	}
	m.user.PreferredLayout = l
	m.activity.Record(ActivityLayoutChange, "Layout set to "+string(l))
	return nil
}

func (m *Machine) resetNavigation() {
	m.activeMenuID = m.registry.FirstRootID()
	m.showProfile = false
	m.epoch++
}
