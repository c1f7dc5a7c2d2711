package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-core/internal/domain"
	"github.com/spec-kit/ticket-core/internal/events"
	"github.com/spec-kit/ticket-core/internal/observability"
	"github.com/spec-kit/ticket-core/internal/persistence"
	"github.com/spec-kit/ticket-core/pkg/util"
)

// fileTicketRepository persists tickets as a single JSON array file.
//
// Save and Delete run their read-modify-write cycle inside the file's
// mutation lock; competing writers execute one at a time and no update is
// lost. Reads bypass the lock and may observe the state before or after a
// concurrent write; whole-file replacement guarantees they never see a
// torn record. A missing file is an empty collection; content that fails
// to parse as a JSON array is downgraded to an empty collection with a
// warning instead of an error.
type fileTicketRepository struct {
	file       *persistence.JSONFile
	logger     *zap.Logger
	metrics    *observability.Metrics
	dispatcher events.Dispatcher
}

// FileRepositoryDeps bundles collaborators for the file store. Logger,
// Metrics and Dispatcher are optional.
type FileRepositoryDeps struct {
	File       *persistence.JSONFile
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	Dispatcher events.Dispatcher
}

// NewFileTicketRepository instantiates the store over the given file.
func NewFileTicketRepository(deps FileRepositoryDeps) TicketRepository {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &fileTicketRepository{
		file:       deps.File,
		logger:     logger,
		metrics:    deps.Metrics,
		dispatcher: deps.Dispatcher,
	}
}

// Save upserts the ticket by id: replace when present, append otherwise.
func (r *fileTicketRepository) Save(ctx context.Context, ticket *domain.Ticket) error {
	record := ToRecord(ticket)
	err := r.file.Update(func(current []byte) ([]byte, error) {
		records := r.decode(current)
		replaced := false
		for i := range records {
			if records[i].ID == record.ID {
				records[i] = record
				replaced = true
				break
			}
		}
		if !replaced {
			records = append(records, record)
		}
		return json.Marshal(records)
	})
	r.metrics.RecordOperation("save", err)
	if err != nil {
		return util.NewStorageError("save", err)
	}
	r.publish(ctx, events.EventTicketSaved, record.ID, events.TicketSavedPayload{
		Title:    record.Title,
		Status:   record.Status,
		Priority: record.Priority,
		Type:     record.Type,
	})
	return nil
}

// FindByID scans the stored collection for a matching id. A record that
// is present but fails shape validation is quarantined with a warning and
// reads as not-found.
func (r *fileTicketRepository) FindByID(ctx context.Context, id domain.TicketID) (*domain.Ticket, error) {
	records, err := r.read()
	r.metrics.RecordOperation("find_by_id", err)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		if record.ID == id.String() {
			ticket, err := ToDomain(record)
			if err != nil {
				r.logger.Warn("skipping malformed ticket record",
					zap.String("id", record.ID), zap.Error(err))
				break
			}
			return ticket, nil
		}
	}
	return nil, util.NewNotFound("ticket", id.String())
}

// FindAll maps every stored record to an aggregate, in stored order.
// Malformed records are skipped with a warning.
func (r *fileTicketRepository) FindAll(ctx context.Context) ([]*domain.Ticket, error) {
	records, err := r.read()
	r.metrics.RecordOperation("find_all", err)
	if err != nil {
		return nil, err
	}
	return r.mapRecords(records), nil
}

// Delete removes the record for id, failing with NotFound (and leaving
// the file untouched) when it is absent.
func (r *fileTicketRepository) Delete(ctx context.Context, id domain.TicketID) error {
	remaining := 0
	err := r.file.Update(func(current []byte) ([]byte, error) {
		records := r.decode(current)
		kept := make([]TicketRecord, 0, len(records))
		for _, record := range records {
			if record.ID == id.String() {
				continue
			}
			kept = append(kept, record)
		}
		if len(kept) == len(records) {
			return nil, util.NewNotFound("ticket", id.String())
		}
		remaining = len(kept)
		return json.Marshal(kept)
	})
	r.metrics.RecordOperation("delete", err)
	if err != nil {
		if util.IsNotFound(err) {
			return err
		}
		return util.NewStorageError("delete", err)
	}
	r.publish(ctx, events.EventTicketDeleted, id.String(), events.TicketDeletedPayload{
		Remaining: remaining,
	})
	return nil
}

// Statistics aggregates the stored collection in one linear scan.
func (r *fileTicketRepository) Statistics(ctx context.Context) (*Statistics, error) {
	records, err := r.read()
	r.metrics.RecordOperation("statistics", err)
	if err != nil {
		return nil, err
	}

	stats := &Statistics{}
	for _, ticket := range r.mapRecords(records) {
		stats.Total++
		switch ticket.Status() {
		case domain.StatusPending:
			stats.Pending++
		case domain.StatusInProgress:
			stats.InProgress++
		case domain.StatusCompleted:
			stats.Completed++
		case domain.StatusArchived:
			stats.Archived++
		}
		switch ticket.Priority() {
		case domain.PriorityHigh:
			stats.ByPriority.High++
		case domain.PriorityMedium:
			stats.ByPriority.Medium++
		case domain.PriorityLow:
			stats.ByPriority.Low++
		}
		switch ticket.Type() {
		case domain.TypeFeature:
			stats.ByType.Feature++
		case domain.TypeBug:
			stats.ByType.Bug++
		case domain.TypeTask:
			stats.ByType.Task++
		}
	}
	return stats, nil
}

// read loads the stored records without taking the mutation lock.
func (r *fileTicketRepository) read() ([]TicketRecord, error) {
	data, err := r.file.Read()
	if err != nil {
		return nil, util.NewStorageError("read", err)
	}
	return r.decode(data), nil
}

// decode parses the file content. A missing file, invalid JSON, or a
// non-array top level all yield an empty collection; the two corruption
// cases log a warning so the reset is visible to operators.
func (r *fileTicketRepository) decode(data []byte) []TicketRecord {
	if len(data) == 0 {
		return []TicketRecord{}
	}
	var records []TicketRecord
	if err := json.Unmarshal(data, &records); err != nil {
		r.logger.Warn("ticket file corrupted, starting from an empty collection",
			zap.String("path", r.file.Path()), zap.Error(err))
		return []TicketRecord{}
	}
	if records == nil {
		records = []TicketRecord{}
	}
	return records
}

func (r *fileTicketRepository) mapRecords(records []TicketRecord) []*domain.Ticket {
	tickets := make([]*domain.Ticket, 0, len(records))
	for _, record := range records {
		ticket, err := ToDomain(record)
		if err != nil {
			r.logger.Warn("skipping malformed ticket record",
				zap.String("id", record.ID), zap.Error(err))
			continue
		}
		tickets = append(tickets, ticket)
	}
	return tickets
}

func (r *fileTicketRepository) publish(ctx context.Context, eventType events.EventType, ticketID string, payload any) {
	if r.dispatcher == nil {
		return
	}
	_ = r.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		TicketID:  ticketID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
