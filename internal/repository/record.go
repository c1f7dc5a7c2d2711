package repository

import (
	"time"

	"github.com/spec-kit/ticket-core/internal/domain"
	"github.com/spec-kit/ticket-core/pkg/util"
)

// timeLayout renders timestamps with fixed millisecond precision.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// TicketRecord is the flat persisted form of a ticket.
type TicketRecord struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Type        string `json:"type"`
	Privacy     string `json:"privacy"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// ToRecord flattens an aggregate for storage.
func ToRecord(ticket *domain.Ticket) TicketRecord {
	return TicketRecord{
		ID:          ticket.ID().String(),
		Title:       ticket.Title().String(),
		Description: ticket.Description().String(),
		Status:      ticket.Status().String(),
		Priority:    ticket.Priority().String(),
		Type:        ticket.Type().String(),
		Privacy:     ticket.Privacy().String(),
		CreatedAt:   ticket.CreatedAt().UTC().Format(timeLayout),
		UpdatedAt:   ticket.UpdatedAt().UTC().Format(timeLayout),
	}
}

// ToRecords flattens a list, preserving order.
func ToRecords(tickets []*domain.Ticket) []TicketRecord {
	records := make([]TicketRecord, 0, len(tickets))
	for _, ticket := range tickets {
		records = append(records, ToRecord(ticket))
	}
	return records
}

// ToDomain reconstitutes an aggregate from a persisted record. Records are
// shape-checked before the trusted restore: an empty or malformed id, an
// unknown enum value, or an unparseable timestamp rejects the record.
func ToDomain(record TicketRecord) (*domain.Ticket, error) {
	if record.ID == "" {
		return nil, util.NewValidationError("id", record.ID, "persisted record is missing its id")
	}
	if _, err := domain.ParseTicketID(record.ID); err != nil {
		return nil, err
	}
	if _, err := domain.NewTitle(record.Title); err != nil {
		return nil, err
	}
	if _, err := domain.NewDescription(record.Description); err != nil {
		return nil, err
	}
	if _, err := domain.NewStatus(record.Status); err != nil {
		return nil, err
	}
	if _, err := domain.NewPriority(record.Priority); err != nil {
		return nil, err
	}
	if _, err := domain.NewTicketType(record.Type); err != nil {
		return nil, err
	}
	if _, err := domain.NewPrivacy(record.Privacy); err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339, record.CreatedAt)
	if err != nil {
		return nil, util.NewValidationError("createdAt", record.CreatedAt, "invalid timestamp")
	}
	updatedAt, err := time.Parse(time.RFC3339, record.UpdatedAt)
	if err != nil {
		return nil, util.NewValidationError("updatedAt", record.UpdatedAt, "invalid timestamp")
	}

	return domain.Restore(domain.RestoreTicketInput{
		ID:          record.ID,
		Title:       record.Title,
		Description: record.Description,
		Status:      record.Status,
		Priority:    record.Priority,
		Type:        record.Type,
		Privacy:     record.Privacy,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}), nil
}

// ToDomainList reconstitutes a list, failing on the first bad record.
func ToDomainList(records []TicketRecord) ([]*domain.Ticket, error) {
	tickets := make([]*domain.Ticket, 0, len(records))
	for _, record := range records {
		ticket, err := ToDomain(record)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}
	return tickets, nil
}
