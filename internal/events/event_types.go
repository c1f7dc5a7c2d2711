package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketSaved   EventType = "ticket_saved"
	EventTicketDeleted EventType = "ticket_deleted"
)

// Event represents a store-level event emitted after a successful mutation.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketSavedPayload payload.
type TicketSavedPayload struct {
	Title    string `json:"title"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
	Type     string `json:"type"`
}

// TicketDeletedPayload payload.
type TicketDeletedPayload struct {
	Remaining int `json:"remaining"`
}
