package domain

import (
	"strings"

	"github.com/spec-kit/ticket-core/pkg/util"
)

// Status enumerates lifecycle states for tickets.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusArchived   Status = "archived"
)

// allowedTransitions is the directed transition graph. Archived is terminal.
var allowedTransitions = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusArchived},
	StatusInProgress: {StatusPending, StatusCompleted, StatusArchived},
	StatusCompleted:  {StatusInProgress, StatusArchived},
	StatusArchived:   {},
}

// NewStatus validates a status value.
func NewStatus(raw string) (Status, error) {
	switch s := Status(strings.ToLower(strings.TrimSpace(raw))); s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusArchived:
		return s, nil
	default:
		return "", util.NewValidationError("status", raw,
			"status must be one of pending, in_progress, completed, archived")
	}
}

// CanTransitionTo reports whether the transition graph has an edge to next.
// Self-transitions are never allowed.
func (s Status) CanTransitionTo(next Status) bool {
	for _, candidate := range allowedTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// IsFinal reports whether the status marks finished work.
func (s Status) IsFinal() bool {
	return s == StatusCompleted || s == StatusArchived
}

func (s Status) String() string {
	return string(s)
}
