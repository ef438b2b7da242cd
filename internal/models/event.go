package models

import "time"

// Event types published to Kafka on user lifecycle changes.
const (
	EventUserRegistered    = "user.registered"
	EventUserPasswordReset = "user.password_reset"
)

// UserEvent is the payload published for user lifecycle events
type UserEvent struct {
	Type       string    `json:"type"`        // One of the Event* constants
	UserID     int64     `json:"user_id"`     // Subject of the event
	Email      string    `json:"email"`       // Email at the time of the event
	OccurredAt time.Time `json:"occurred_at"` // Event timestamp
}
