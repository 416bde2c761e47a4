package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the glossary term repository.
const (
	TopicTermCreated = "glossary.term.created"
	TopicTermUpdated = "glossary.term.updated"
)

// TermCreatedEvent is published after a new Term is persisted.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicTermCreated).
type TermCreatedEvent struct {
	EventID     uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version     int       `json:"version"`  // Schema version; increment on breaking changes
	TermID      int64     `json:"term_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// TermUpdatedEvent is published after an existing Term is modified.
// Carries the full post-update state so consumers can refresh read models
// without querying back.
type TermUpdatedEvent struct {
	EventID     uuid.UUID `json:"event_id"`
	Version     int       `json:"version"`
	TermID      int64     `json:"term_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurred_at"`
}
