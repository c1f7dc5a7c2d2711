package domain

import (
	"fmt"
	"strings"

	"github.com/spec-kit/ticket-core/pkg/util"
)

// Title is a ticket headline: 1-200 characters after trimming.
type Title string

const maxTitleLength = 200

// NewTitle trims and validates a title.
func NewTitle(raw string) (Title, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", util.NewValidationError("title", raw, "title must not be empty")
	}
	if len(trimmed) > maxTitleLength {
		return "", util.NewValidationError("title", raw,
			fmt.Sprintf("title must not exceed %d characters", maxTitleLength))
	}
	return Title(trimmed), nil
}

func (t Title) String() string {
	return string(t)
}
