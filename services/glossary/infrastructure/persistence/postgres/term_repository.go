package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/glossary/pkg/database"
	"github.com/ghuser/glossary/pkg/events"
	glossarydomain "github.com/ghuser/glossary/services/glossary/domain"
	domainevents "github.com/ghuser/glossary/services/glossary/domain/events"
	"github.com/ghuser/glossary/services/glossary/domain/models"
	"github.com/ghuser/glossary/services/glossary/domain/repositories"
)

const uniqueViolation = "23505"

// psql builds queries with PostgreSQL $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// TermRepository implements repositories.TermRepository against PostgreSQL.
// It is the only component that issues reads or writes on glossary_terms.
type TermRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewTermRepository returns a TermRepository backed by the given connection
// pool and event bus. The bus publishes term events in the same transaction
// as the row write; pass nil to disable publishing (tests, seeding).
func NewTermRepository(db *database.Database, bus *events.EventBus) *TermRepository {
	return &TermRepository{db: db, bus: bus}
}

// Save persists a new Term, letting the database assign id and timestamps.
// created_at and updated_at come from the same statement clock, so a fresh
// term always has created_at == updated_at. Returns ErrTermAlreadyExists
// when the name is taken.
func (r *TermRepository) Save(ctx context.Context, term *models.Term) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query, args, err := psql.
			Insert("glossary_terms").
			Columns("name", "description").
			Values(term.Name.String(), term.Description).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}

		row := tx.QueryRowContext(ctx, query, args...)
		if err := row.Scan(&term.ID, &term.CreatedAt, &term.UpdatedAt); err != nil {
			return mapWriteError(err, "insert term")
		}

		if r.bus != nil {
			if err := r.publishCreated(tx, term); err != nil {
				return fmt.Errorf("publish term created: %w", err)
			}
		}
		return nil
	})
}

// GetByID retrieves a Term by id. Returns ErrTermNotFound if absent.
func (r *TermRepository) GetByID(ctx context.Context, id int64) (*models.Term, error) {
	query, args, err := selectTerms().Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	term, err := scanTerm(r.db.DB().QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, glossarydomain.ErrTermNotFound
		}
		return nil, mapStorageError(err, "query term")
	}
	return term, nil
}

// Find returns one page of terms ordered by id ascending plus the total
// count of matches ignoring pagination. An out-of-range page yields an
// empty slice.
func (r *TermRepository) Find(ctx context.Context, params repositories.ListParams) ([]*models.Term, int, error) {
	listQ := selectTerms().
		OrderBy("id ASC").
		Limit(uint64(params.PageSize)).
		Offset(uint64(params.Offset()))
	countQ := psql.Select("count(*)").From("glossary_terms")

	if filter := searchFilter(params.Search); filter != nil {
		listQ = listQ.Where(filter)
		countQ = countQ.Where(filter)
	}

	query, args, err := listQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list: %w", err)
	}

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, mapStorageError(err, "query terms")
	}
	defer rows.Close() //nolint:errcheck

	terms := make([]*models.Term, 0, params.PageSize)
	for rows.Next() {
		term, err := scanTerm(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan term: %w", err)
		}
		terms = append(terms, term)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapStorageError(err, "iterate terms")
	}

	query, args, err = countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count: %w", err)
	}
	var total int
	if err := r.db.DB().QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return nil, 0, mapStorageError(err, "count terms")
	}

	return terms, total, nil
}

// Update persists name/description changes and refreshes updated_at from the
// database clock. Returns ErrTermNotFound when the id is absent and
// ErrTermAlreadyExists when renaming onto a taken name.
func (r *TermRepository) Update(ctx context.Context, term *models.Term) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query, args, err := psql.
			Update("glossary_terms").
			Set("name", term.Name.String()).
			Set("description", term.Description).
			Set("updated_at", sq.Expr("now()")).
			Where(sq.Eq{"id": term.ID}).
			Suffix("RETURNING created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("build update: %w", err)
		}

		row := tx.QueryRowContext(ctx, query, args...)
		if err := row.Scan(&term.CreatedAt, &term.UpdatedAt); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return glossarydomain.ErrTermNotFound
			}
			return mapWriteError(err, "update term")
		}

		if r.bus != nil {
			if err := r.publishUpdated(tx, term); err != nil {
				return fmt.Errorf("publish term updated: %w", err)
			}
		}
		return nil
	})
}

// Delete removes a term by id. Deleting an absent id returns
// ErrTermNotFound, so repeated deletes do not silently succeed.
func (r *TermRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := psql.Delete("glossary_terms").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	res, err := r.db.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return mapStorageError(err, "delete term")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete term rows affected: %w", err)
	}
	if affected == 0 {
		return glossarydomain.ErrTermNotFound
	}
	return nil
}

// Exists reports whether a term with the given id exists.
func (r *TermRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query, args, err := psql.
		Select("1").
		Prefix("SELECT EXISTS (").
		From("glossary_terms").
		Where(sq.Eq{"id": id}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists: %w", err)
	}

	var exists bool
	if err := r.db.DB().QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, mapStorageError(err, "check term exists")
	}
	return exists, nil
}

// selectTerms is the shared projection for all term reads.
func selectTerms() sq.SelectBuilder {
	return psql.
		Select("id", "name", "description", "created_at", "updated_at").
		From("glossary_terms")
}

// searchFilter returns the WHERE clause for a search query, or nil when the
// query is empty. Matching is a case-insensitive substring match over both
// name and description; LIKE metacharacters in the query are escaped so the
// user's text is matched literally.
func searchFilter(search string) sq.Sqlizer {
	search = strings.TrimSpace(search)
	if search == "" {
		return nil
	}
	pattern := "%" + escapeLike(search) + "%"
	return sq.Or{
		sq.ILike{"name": pattern},
		sq.ILike{"description": pattern},
	}
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTerm(row rowScanner) (*models.Term, error) {
	var t models.Term
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// mapWriteError translates driver errors on writes into domain sentinels.
func mapWriteError(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return glossarydomain.ErrTermAlreadyExists
	}
	return mapStorageError(err, op)
}

// mapStorageError classifies connectivity failures as ErrStorageUnavailable
// so handlers can surface 503 instead of a generic 500. Everything else is
// wrapped with the failing operation.
func mapStorageError(err error, op string) error {
	var netErr net.Error
	switch {
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone),
		errors.As(err, &netErr):
		return fmt.Errorf("%w: %s: %w", glossarydomain.ErrStorageUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (r *TermRepository) publishCreated(tx *sql.Tx, term *models.Term) error {
	event := domainevents.TermCreatedEvent{
		EventID:     uuid.New(),
		Version:     1,
		TermID:      term.ID,
		Name:        term.Name.String(),
		Description: term.Description,
		OccurredAt:  term.CreatedAt,
	}
	return r.publish(tx, domainevents.TopicTermCreated, event.EventID, event)
}

func (r *TermRepository) publishUpdated(tx *sql.Tx, term *models.Term) error {
	event := domainevents.TermUpdatedEvent{
		EventID:     uuid.New(),
		Version:     1,
		TermID:      term.ID,
		Name:        term.Name.String(),
		Description: term.Description,
		OccurredAt:  term.UpdatedAt,
	}
	return r.publish(tx, domainevents.TopicTermUpdated, event.EventID, event)
}

// publish writes an event through a transaction-bound publisher so the event
// commits or rolls back with the row change.
func (r *TermRepository) publish(tx *sql.Tx, topic string, eventID uuid.UUID, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", eventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(topic, msg)
}

var _ repositories.TermRepository = (*TermRepository)(nil)
