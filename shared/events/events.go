package events

import "time"

// Event types
const (
	UserRegistered = "user.registered"
	AccountOpened  = "account.opened"
)

// Stream names
const (
	UserEventsStream    = "user.events"
	AccountEventsStream = "account.events"
)

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type UserRegisteredEvent struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// AccountOpenedEvent carries the opening balance as a decimal string.
type AccountOpenedEvent struct {
	AccountNumber  int64  `json:"accountNumber"`
	UserID         string `json:"userId"`
	InitialBalance string `json:"initialBalance"`
}
