package domain

import (
	"strings"

	"github.com/google/uuid"

	"github.com/spec-kit/ticket-core/pkg/util"
)

// TicketID identifies a ticket: 8 lowercase hexadecimal characters.
type TicketID string

const ticketIDLength = 8

// NewTicketID generates a fresh random id.
func NewTicketID() TicketID {
	return TicketID(strings.ReplaceAll(uuid.NewString(), "-", "")[:ticketIDLength])
}

// ParseTicketID validates and normalizes a caller-supplied id. An empty
// input yields a generated id.
func ParseTicketID(raw string) (TicketID, error) {
	if strings.TrimSpace(raw) == "" {
		return NewTicketID(), nil
	}
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if !isHexID(normalized) {
		return "", util.NewValidationError("id", raw, "ticket id must be 8 lowercase hexadecimal characters")
	}
	return TicketID(normalized), nil
}

func isHexID(s string) bool {
	if len(s) != ticketIDLength {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

func (id TicketID) String() string {
	return string(id)
}
