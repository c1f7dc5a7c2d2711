package domain

import (
	"strings"

	"github.com/spec-kit/ticket-core/pkg/util"
)

// TicketType classifies the kind of work a ticket tracks. It is a
// descriptive tag with no transition rules.
type TicketType string

const (
	TypeFeature TicketType = "feature"
	TypeBug     TicketType = "bug"
	TypeTask    TicketType = "task"
)

// NewTicketType validates a ticket type value.
func NewTicketType(raw string) (TicketType, error) {
	switch t := TicketType(strings.ToLower(strings.TrimSpace(raw))); t {
	case TypeFeature, TypeBug, TypeTask:
		return t, nil
	default:
		return "", util.NewValidationError("type", raw, "type must be one of feature, bug, task")
	}
}

func (t TicketType) String() string {
	return string(t)
}

// Privacy marks how widely a ticket may be shared. Descriptive tag only.
type Privacy string

const (
	PrivacyLocalOnly Privacy = "local-only"
	PrivacyShareable Privacy = "shareable"
	PrivacyPublic    Privacy = "public"
)

// NewPrivacy validates a privacy value.
func NewPrivacy(raw string) (Privacy, error) {
	switch p := Privacy(strings.ToLower(strings.TrimSpace(raw))); p {
	case PrivacyLocalOnly, PrivacyShareable, PrivacyPublic:
		return p, nil
	default:
		return "", util.NewValidationError("privacy", raw, "privacy must be one of local-only, shareable, public")
	}
}

func (p Privacy) String() string {
	return string(p)
}
