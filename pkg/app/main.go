package app

import (
	"github.com/ghuser/glossary/pkg/cache"
	"github.com/ghuser/glossary/pkg/database"
	"github.com/ghuser/glossary/pkg/events"
	"github.com/ghuser/glossary/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Passed to each service's route registration during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler — use slog's context
// methods and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "term created", "term_id", id)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Db       *database.Database
	Logger   logger.Logger
	EventBus *events.EventBus
	Redis    *cache.RedisClient
}
