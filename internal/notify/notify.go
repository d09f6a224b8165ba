// Package notify tells the desktop when a session ends on its own.
package notify

import "time"

// Urgency is a freedesktop notification urgency level.
type Urgency byte

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

const defaultTimeout = 8 * time.Second

// Notification is one desktop notification.
type Notification struct {
	Title      string
	Body       string
	Icon       string        // freedesktop icon name
	Timeout    time.Duration // 0 leaves it to the server
	ReplacesID uint32        // id of a notification to replace in place
	Urgency    Urgency
}

// Notifier delivers notifications. Implementations must be safe to call from
// one goroutine at a time.
type Notifier interface {
	Notify(n Notification) (id uint32, err error)
	Dismiss(id uint32) error
}
