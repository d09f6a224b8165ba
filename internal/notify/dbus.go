//go:build linux

package notify

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	appName = "ambience"

	notificationsName = "org.freedesktop.Notifications"
	notificationsPath = dbus.ObjectPath("/org/freedesktop/Notifications")
)

type desktop struct {
	obj dbus.BusObject
}

// New connects to the notification daemon on the session bus.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("session bus: %w", err)
	}
	return &desktop{obj: conn.Object(notificationsName, notificationsPath)}, nil
}

func (d *desktop) Notify(n Notification) (uint32, error) {
	timeout := int32(-1)
	if n.Timeout > 0 {
		timeout = int32(n.Timeout.Milliseconds())
	}

	var id uint32
	err := d.obj.Call(notificationsName+".Notify", 0,
		appName,
		n.ReplacesID,
		n.Icon,
		n.Title,
		n.Body,
		[]string{},
		hints(n),
		timeout,
	).Store(&id)
	if err != nil {
		return 0, fmt.Errorf("notify: %w", err)
	}
	return id, nil
}

func (d *desktop) Dismiss(id uint32) error {
	if id == 0 {
		return nil
	}
	return d.obj.Call(notificationsName+".CloseNotification", 0, id).Err
}

// hints marks everything but critical notifications transient so they do not
// pile up in the notification history.
func hints(n Notification) map[string]dbus.Variant {
	h := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry": dbus.MakeVariant(appName),
		"category":      dbus.MakeVariant("x-ambience.session"),
	}
	if n.Urgency != UrgencyCritical {
		h["transient"] = dbus.MakeVariant(true)
	}
	return h
}
