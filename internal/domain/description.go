package domain

import (
	"fmt"
	"strings"

	"github.com/spec-kit/ticket-core/pkg/util"
)

// Description is the ticket body: 1-5000 characters after trimming.
type Description string

const maxDescriptionLength = 5000

// NewDescription trims and validates a description.
func NewDescription(raw string) (Description, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", util.NewValidationError("description", raw, "description must not be empty")
	}
	if len(trimmed) > maxDescriptionLength {
		return "", util.NewValidationError("description", raw,
			fmt.Sprintf("description must not exceed %d characters", maxDescriptionLength))
	}
	return Description(trimmed), nil
}

func (d Description) String() string {
	return string(d)
}
