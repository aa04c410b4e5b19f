package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserCreated EventType = "user.created"
	EventUserUpdated EventType = "user.updated"
	EventUserDeleted EventType = "user.deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	Type      EventType `json:"type"`
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// UserMutationPayload carries the attributes recorded for user mutations.
type UserMutationPayload struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}
