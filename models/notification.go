package models

// Notification event types, also used as asynq task type suffixes.
const (
	NotificationConfirmation = "confirmation"
	NotificationCancellation = "cancellation"
	NotificationStatusChange = "status_change"
	NotificationReminder     = "reminder"
)

// Notification is the queued, delivery-ready message for one recipient.
type Notification struct {
	Type          string            `json:"type"`
	Target        string            `json:"target"` // "user" or "authority"
	TargetID      string            `json:"targetId"`
	AppointmentID string            `json:"appointmentId,omitempty"`
	Title         string            `json:"title"`
	Body          string            `json:"body"`
	Data          map[string]string `json:"data,omitempty"`
}

// StatusChange describes a transition reported through NotifyStatusChange.
type StatusChange struct {
	Subject  string `json:"subject"` // "appointment" or "issue"
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Previous string `json:"previous"`
	Next     string `json:"next"`
}
