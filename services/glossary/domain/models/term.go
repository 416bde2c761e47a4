package models

import (
	"fmt"
	"strings"
	"time"
)

// Term is the sole aggregate of the glossary bounded context: a named entry
// with a free-text description. ID and timestamps are assigned by the
// repository on save; callers never set them.
type Term struct {
	ID          int64
	Name        TermName
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTerm constructs an unsaved Term from client input. The description is
// trimmed and must be non-empty; name rules live in NewTermName.
func NewTerm(name TermName, description string) (*Term, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("description must not be empty")
	}
	return &Term{
		Name:        name,
		Description: description,
	}, nil
}

// Rename changes the term's name. Persisting the change (and refreshing
// UpdatedAt) is the repository's job.
func (t *Term) Rename(name TermName) {
	t.Name = name
}

// Redescribe replaces the term's description with the trimmed value.
func (t *Term) Redescribe(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return fmt.Errorf("description must not be empty")
	}
	t.Description = description
	return nil
}
