package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	pkgcache "github.com/ghuser/glossary/pkg/cache"
	"github.com/ghuser/glossary/pkg/logger"
	glossarydomain "github.com/ghuser/glossary/services/glossary/domain"
	"github.com/ghuser/glossary/services/glossary/domain/models"
	"github.com/ghuser/glossary/services/glossary/domain/repositories"
	domainsvcs "github.com/ghuser/glossary/services/glossary/domain/services"
)

// TermCacher is the read-model cache surface the service depends on.
// *pkgcache.TermCache satisfies it.
type TermCacher interface {
	Get(ctx context.Context, id int64) (*pkgcache.CachedTerm, error)
	Set(ctx context.Context, term *pkgcache.CachedTerm) error
	Delete(ctx context.Context, id int64) error
}

// TermService orchestrates creation, retrieval, and mutation of glossary
// terms. Event publishing is handled by the repository layer (outbox
// pattern). Reads are served from Redis cache when available.
type TermService struct {
	repo  repositories.TermRepository
	cache TermCacher
	log   logger.Logger
}

// NewTermService returns a TermService wired with the given repository and
// cache. A nil cache disables caching entirely; a nil log disables the
// warnings emitted when best-effort cache operations fail.
func NewTermService(repo repositories.TermRepository, termCache TermCacher, log logger.Logger) *TermService {
	return &TermService{repo: repo, cache: termCache, log: log}
}

// Create validates and persists a new Term. The repository assigns id and
// timestamps and publishes TermCreatedEvent transactionally.
func (s *TermService) Create(ctx context.Context, name, description string) (*models.Term, error) {
	termName, err := models.NewTermName(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", glossarydomain.ErrInvalidTerm, err)
	}

	term, err := models.NewTerm(termName, description)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", glossarydomain.ErrInvalidTerm, err)
	}

	if err := domainsvcs.ValidateTermForSave(term); err != nil {
		return nil, fmt.Errorf("%w: %w", glossarydomain.ErrInvalidTerm, err)
	}

	if err := s.repo.Save(ctx, term); err != nil {
		return nil, fmt.Errorf("save term: %w", err)
	}

	return term, nil
}

// GetByID retrieves a Term using a read-through cache pattern:
//  1. Check Redis cache first.
//  2. On cache miss (or cache error), query Postgres.
//  3. Asynchronously warm the cache with the Postgres result.
func (s *TermService) GetByID(ctx context.Context, id int64) (*models.Term, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id); err == nil {
			return &models.Term{
				ID:          cached.ID,
				Name:        models.TermName(cached.Name),
				Description: cached.Description,
				CreatedAt:   cached.CreatedAt,
				UpdatedAt:   cached.UpdatedAt,
			}, nil
		} else if !errors.Is(err, redis.Nil) {
			// An unreachable cache must not fail reads; fall through
			// to Postgres.
			s.warn(ctx, "term cache get failed", "term_id", id, "error", err)
		}
	}

	term, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get term: %w", err)
	}

	if s.cache != nil {
		go func() {
			ctx := context.Background()
			if err := s.cache.Set(ctx, cachedTerm(term)); err != nil {
				s.warn(ctx, "term cache warm failed", "term_id", term.ID, "error", err)
			}
		}()
	}

	return term, nil
}

// List returns one page of terms plus the total count of terms matching the
// search filter.
func (s *TermService) List(ctx context.Context, params repositories.ListParams) ([]*models.Term, int, error) {
	terms, total, err := s.repo.Find(ctx, params.Normalize())
	if err != nil {
		return nil, 0, fmt.Errorf("list terms: %w", err)
	}
	return terms, total, nil
}

// Update applies a partial patch to an existing term. Only non-nil fields
// are changed; UpdatedAt is refreshed by the repository. Returns
// ErrTermNotFound when id is absent and ErrTermAlreadyExists when renaming
// onto a taken name.
func (s *TermService) Update(ctx context.Context, id int64, name, description *string) (*models.Term, error) {
	term, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get term: %w", err)
	}

	if name != nil {
		termName, err := models.NewTermName(*name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", glossarydomain.ErrInvalidTerm, err)
		}
		term.Rename(termName)
	}
	if description != nil {
		if err := term.Redescribe(*description); err != nil {
			return nil, fmt.Errorf("%w: %w", glossarydomain.ErrInvalidTerm, err)
		}
	}

	if err := domainsvcs.ValidateTermForSave(term); err != nil {
		return nil, fmt.Errorf("%w: %w", glossarydomain.ErrInvalidTerm, err)
	}

	if err := s.repo.Update(ctx, term); err != nil {
		return nil, fmt.Errorf("update term: %w", err)
	}

	// Drop the stale cache entry; the worker re-warms it from the
	// TermUpdatedEvent.
	if s.cache != nil {
		if err := s.cache.Delete(context.Background(), id); err != nil {
			s.warn(ctx, "term cache evict failed", "term_id", id, "error", err)
		}
	}

	return term, nil
}

// Delete removes a term by id. Returns ErrTermNotFound if no matching term
// exists, including on repeated deletes of the same id.
func (s *TermService) Delete(ctx context.Context, id int64) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check term: %w", err)
	}
	if !exists {
		return glossarydomain.ErrTermNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete term: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.Delete(context.Background(), id); err != nil {
			s.warn(ctx, "term cache evict failed", "term_id", id, "error", err)
		}
	}
	return nil
}

func (s *TermService) warn(ctx context.Context, msg string, args ...any) {
	if s.log != nil {
		s.log.WarnContext(ctx, msg, args...)
	}
}

func cachedTerm(term *models.Term) *pkgcache.CachedTerm {
	return &pkgcache.CachedTerm{
		ID:          term.ID,
		Name:        term.Name.String(),
		Description: term.Description,
		CreatedAt:   term.CreatedAt,
		UpdatedAt:   term.UpdatedAt,
	}
}
