package domain

import "time"

// User is the canonical representation of a stored user. The identifier and
// both timestamps are assigned by the store, never by callers.
type User struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
