package services

import (
	"github.com/ghuser/glossary/pkg/app"
	"github.com/ghuser/glossary/pkg/cache"
	"github.com/ghuser/glossary/pkg/logger"
	"github.com/ghuser/glossary/services/glossary/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for the glossary
// bounded context. It wires domain services with their infrastructure
// implementations. Log is exposed so handlers can report server-side
// failures with request context.
type Services struct {
	Term *TermService
	Log  logger.Logger
}

// New wires all glossary application services with infrastructure from the
// Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewTermRepository(a.Db, a.EventBus)
	termCache := cache.NewTermCache(a.Redis)
	return &Services{
		Term: NewTermService(repo, termCache, a.Logger),
		Log:  a.Logger,
	}
}
