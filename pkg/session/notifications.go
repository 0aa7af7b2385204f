package session

import "time"

type NotificationType string

const (
	NotifyInfo    NotificationType = "INFO"
	NotifySuccess NotificationType = "SUCCESS"
	NotifyWarning NotificationType = "WARNING"
	NotifyError   NotificationType = "ERROR"
)

type Notification struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Content   string           `json:"content"`
	Type      NotificationType `json:"type"`
	Read      bool             `json:"read"`
	Timestamp time.Time        `json:"timestamp"`
}

// Inbox is the header bell's list.
type Inbox struct {
	items []Notification
}

func NewInbox(items ...Notification) *Inbox {
	return &Inbox{items: append([]Notification(nil), items...)}
}

// MockNotifications seeds the demo inbox.
func MockNotifications() []Notification {
	return []Notification{{
		ID:        "n1",
		Title:     "Order #SC-9821 Shipped",
		Content:   "Departure from Origin Port.",
		Type:      NotifySuccess,
		Timestamp: time.Date(2023, 11, 20, 10, 0, 0, 0, time.UTC),
	}}
}

func (i *Inbox) Items() []Notification {
	return append([]Notification(nil), i.items...)
}

func (i *Inbox) Unread() int {
	n := 0
	for _, item := range i.items {
		if !item.Read {
			n++
		}
	}
	return n
}

func (i *Inbox) MarkAllRead() {
	for idx := range i.items {
		i.items[idx].Read = true
	}
}

func (i *Inbox) Push(n Notification) {
	i.items = append([]Notification{n}, i.items...)
}
