package repository

import (
	"context"

	"github.com/spec-kit/ticket-core/internal/domain"
)

// PriorityBreakdown counts tickets per priority level.
type PriorityBreakdown struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// TypeBreakdown counts tickets per ticket type.
type TypeBreakdown struct {
	Feature int `json:"feature"`
	Bug     int `json:"bug"`
	Task    int `json:"task"`
}

// Statistics aggregates the stored collection in a single scan.
type Statistics struct {
	Total      int               `json:"total"`
	Pending    int               `json:"pending"`
	InProgress int               `json:"inProgress"`
	Completed  int               `json:"completed"`
	Archived   int               `json:"archived"`
	ByPriority PriorityBreakdown `json:"byPriority"`
	ByType     TypeBreakdown     `json:"byType"`
}

// TicketRepository encapsulates ticket persistence. It is the only
// contract the application layer consumes.
type TicketRepository interface {
	Save(ctx context.Context, ticket *domain.Ticket) error
	FindByID(ctx context.Context, id domain.TicketID) (*domain.Ticket, error)
	FindAll(ctx context.Context) ([]*domain.Ticket, error)
	Delete(ctx context.Context, id domain.TicketID) error
	Statistics(ctx context.Context) (*Statistics, error)
}
