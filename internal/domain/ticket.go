package domain

import (
	"time"

	"github.com/spec-kit/ticket-core/pkg/util"
)

// clock supplies timestamps truncated to millisecond precision so values
// survive the persisted form exactly. Overridable in tests.
var clock = func() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// Ticket is the aggregate root for a tracked work item. All state changes
// go through named operations; fields are never assigned directly.
type Ticket struct {
	id          TicketID
	title       Title
	description Description
	status      Status
	priority    Priority
	ticketType  TicketType
	privacy     Privacy
	createdAt   time.Time
	updatedAt   time.Time
}

// NewTicketInput carries raw creation values. Empty ID generates one;
// empty Status, Priority, Type and Privacy fall back to defaults.
type NewTicketInput struct {
	ID          string
	Title       string
	Description string
	Status      string
	Priority    string
	Type        string
	Privacy     string
}

// NewTicket validates input and creates a fresh aggregate with current
// timestamps. Status defaults to pending.
func NewTicket(input NewTicketInput) (*Ticket, error) {
	id, err := ParseTicketID(input.ID)
	if err != nil {
		return nil, err
	}
	title, err := NewTitle(input.Title)
	if err != nil {
		return nil, err
	}
	description, err := NewDescription(input.Description)
	if err != nil {
		return nil, err
	}

	status := StatusPending
	if input.Status != "" {
		if status, err = NewStatus(input.Status); err != nil {
			return nil, err
		}
	}
	priority := PriorityMedium
	if input.Priority != "" {
		if priority, err = NewPriority(input.Priority); err != nil {
			return nil, err
		}
	}
	ticketType := TypeTask
	if input.Type != "" {
		if ticketType, err = NewTicketType(input.Type); err != nil {
			return nil, err
		}
	}
	privacy := PrivacyLocalOnly
	if input.Privacy != "" {
		if privacy, err = NewPrivacy(input.Privacy); err != nil {
			return nil, err
		}
	}

	now := clock()
	return &Ticket{
		id:          id,
		title:       title,
		description: description,
		status:      status,
		priority:    priority,
		ticketType:  ticketType,
		privacy:     privacy,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// RestoreTicketInput carries already-validated values loaded from storage.
type RestoreTicketInput struct {
	ID          string
	Title       string
	Description string
	Status      string
	Priority    string
	Type        string
	Privacy     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Restore reconstitutes an aggregate from trusted persisted values,
// skipping validation and id generation.
func Restore(input RestoreTicketInput) *Ticket {
	return &Ticket{
		id:          TicketID(input.ID),
		title:       Title(input.Title),
		description: Description(input.Description),
		status:      Status(input.Status),
		priority:    Priority(input.Priority),
		ticketType:  TicketType(input.Type),
		privacy:     Privacy(input.Privacy),
		createdAt:   input.CreatedAt,
		updatedAt:   input.UpdatedAt,
	}
}

func (t *Ticket) ID() TicketID { return t.id }

func (t *Ticket) Title() Title { return t.title }

func (t *Ticket) Description() Description { return t.description }

func (t *Ticket) Status() Status { return t.status }

func (t *Ticket) Priority() Priority { return t.priority }

func (t *Ticket) Type() TicketType { return t.ticketType }

func (t *Ticket) Privacy() Privacy { return t.privacy }

func (t *Ticket) CreatedAt() time.Time { return t.createdAt }

func (t *Ticket) UpdatedAt() time.Time { return t.updatedAt }

// IsFinal reports whether the ticket reached completed or archived.
func (t *Ticket) IsFinal() bool {
	return t.status.IsFinal()
}

// IsActive reports whether the ticket is still workable.
func (t *Ticket) IsActive() bool {
	return t.status != StatusArchived
}

// ChangeStatus validates the target and walks one edge of the transition
// graph. Self-transitions and missing edges are rejected.
func (t *Ticket) ChangeStatus(raw string) error {
	next, err := NewStatus(raw)
	if err != nil {
		return err
	}
	return t.transitionTo(next)
}

// StartProgress moves the ticket to in_progress.
func (t *Ticket) StartProgress() error {
	return t.transitionTo(StatusInProgress)
}

// Complete moves the ticket to completed.
func (t *Ticket) Complete() error {
	return t.transitionTo(StatusCompleted)
}

// Archive moves the ticket to its terminal state.
func (t *Ticket) Archive() error {
	return t.transitionTo(StatusArchived)
}

func (t *Ticket) transitionTo(next Status) error {
	if next == t.status || !t.status.CanTransitionTo(next) {
		return util.NewInvalidTransition(t.status.String(), next.String())
	}
	t.status = next
	t.touch()
	return nil
}

// UpdateTitle replaces the title after validation.
func (t *Ticket) UpdateTitle(raw string) error {
	title, err := NewTitle(raw)
	if err != nil {
		return err
	}
	t.title = title
	t.touch()
	return nil
}

// UpdateDescription replaces the description after validation.
func (t *Ticket) UpdateDescription(raw string) error {
	description, err := NewDescription(raw)
	if err != nil {
		return err
	}
	t.description = description
	t.touch()
	return nil
}

// ChangePriority replaces the priority after validation.
func (t *Ticket) ChangePriority(raw string) error {
	priority, err := NewPriority(raw)
	if err != nil {
		return err
	}
	t.priority = priority
	t.touch()
	return nil
}

// ChangeType replaces the ticket type after validation.
func (t *Ticket) ChangeType(raw string) error {
	ticketType, err := NewTicketType(raw)
	if err != nil {
		return err
	}
	t.ticketType = ticketType
	t.touch()
	return nil
}

// touch bumps updatedAt, advancing by at least one millisecond even when
// the wall clock has not moved since the previous mutation.
func (t *Ticket) touch() {
	next := clock()
	if !next.After(t.updatedAt) {
		next = t.updatedAt.Add(time.Millisecond)
	}
	t.updatedAt = next
}
