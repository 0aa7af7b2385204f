package session

import (
	"time"

	"github.com/google/uuid"
)

// ActivityType tags an activity entry.
type ActivityType string

const (
	ActivityLogin            ActivityType = "LOGIN"
	ActivityLogout           ActivityType = "LOGOUT"
	ActivityWorkspaceSwitch  ActivityType = "WORKSPACE_SWITCH"
	ActivityMenuSelect       ActivityType = "MENU_SELECT"
	ActivityProfile          ActivityType = "PROFILE_OPEN"
	ActivityLayoutChange     ActivityType = "LAYOUT_CHANGE"
	ActivityDefaultWorkspace ActivityType = "DEFAULT_WORKSPACE"
	ActivityOrder            ActivityType = "ORDER"
)

const maxActivity = 50

type Activity struct {
	ID        string       `json:"id"`
	Type      ActivityType `json:"type"`
	Timestamp time.Time    `json:"timestamp"`
	Details   string       `json:"details"`
}

// ActivityLog keeps the newest entries first. It lives as long as the
// machine, so entries from earlier sign-ins stay visible after a new login.
type ActivityLog struct {
	entries []Activity
	now     func() time.Time
}

func NewActivityLog(now func() time.Time) *ActivityLog {
	if now == nil {
		now = time.Now
	}
	return &ActivityLog{now: now}
}

func (l *ActivityLog) Record(t ActivityType, details string) Activity {
	a := Activity{
		ID:        uuid.NewString(),
		Type:      t,
		Timestamp: l.now(),
		Details:   details,
	}
	l.entries = append([]Activity{a}, l.entries...)
	if len(l.entries) > maxActivity {
		l.entries = l.entries[:maxActivity]
	}
	return a
}

// Entries returns a copy, newest first.
func (l *ActivityLog) Entries() []Activity {
	out := make([]Activity, len(l.entries))
	copy(out, l.entries)
	return out
}
