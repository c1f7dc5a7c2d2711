package domain

import (
	"strings"

	"github.com/spec-kit/ticket-core/pkg/util"
)

// Priority enumerates SLA urgency.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// NewPriority validates a priority value.
func NewPriority(raw string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(raw))); p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p, nil
	default:
		return "", util.NewValidationError("priority", raw, "priority must be one of high, medium, low")
	}
}

// Weight orders priorities: high > medium > low.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// HigherThan reports whether p outranks other.
func (p Priority) HigherThan(other Priority) bool {
	return p.Weight() > other.Weight()
}

func (p Priority) String() string {
	return string(p)
}
