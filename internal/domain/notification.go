package domain

import "time"

// NotificationType is the severity of a notification.
type NotificationType string

// Notification type constants.
const (
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationInfo    NotificationType = "info"
	NotificationError   NotificationType = "error"
)

// Notification is a transient user-facing message.
type Notification struct {
	ID        string           `json:"id"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	CreatedAt time.Time        `json:"createdAt"`
	ExpiresAt time.Time        `json:"expiresAt"`
}

// Expired reports whether n has expired at now.
func (n Notification) Expired(now time.Time) bool {
	return !now.Before(n.ExpiresAt)
}
