package repositories

import (
	"context"

	"github.com/ghuser/glossary/services/glossary/domain/models"
)

// Pagination bounds for list queries. Pages are 1-indexed.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListParams carries pagination and search parameters for Find.
type ListParams struct {
	Page     int    // 1-indexed page number
	PageSize int    // records per page, within [1, MaxPageSize]
	Search   string // optional case-insensitive substring match; empty matches all
}

// Offset returns the number of records to skip for the requested page.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Normalize returns a copy of p with out-of-bounds values replaced:
// page < 1 becomes 1, page size < 1 becomes DefaultPageSize, and page size
// above MaxPageSize is clamped down.
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// TermRepository is the persistence interface for the Term aggregate and the
// only component permitted to touch storage. The domain layer owns this
// interface; infrastructure implements it.
type TermRepository interface {
	// Save persists a new Term, assigning ID and timestamps.
	// Returns domain.ErrTermAlreadyExists when the name is taken.
	Save(ctx context.Context, term *models.Term) error

	// GetByID returns the Term with the given id or domain.ErrTermNotFound.
	GetByID(ctx context.Context, id int64) (*models.Term, error)

	// Find returns one page of terms ordered by id ascending plus the total
	// count of terms matching params.Search (ignoring pagination). A page
	// past the end yields an empty slice, not an error.
	Find(ctx context.Context, params ListParams) ([]*models.Term, int, error)

	// Update persists changes to an existing Term and refreshes UpdatedAt.
	// Returns domain.ErrTermNotFound when the id is absent and
	// domain.ErrTermAlreadyExists when renaming onto a taken name.
	Update(ctx context.Context, term *models.Term) error

	// Delete removes a term by id. Returns domain.ErrTermNotFound when the
	// id is absent, so a second delete of the same id fails rather than
	// silently succeeding.
	Delete(ctx context.Context, id int64) error

	// Exists reports whether a term with the given id exists.
	Exists(ctx context.Context, id int64) (bool, error)
}
