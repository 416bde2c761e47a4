package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/glossary/pkg/app"
	"github.com/ghuser/glossary/pkg/cache"
	"github.com/ghuser/glossary/pkg/config"
	"github.com/ghuser/glossary/pkg/database"
	"github.com/ghuser/glossary/pkg/events"
	"github.com/ghuser/glossary/pkg/logger"
	"github.com/ghuser/glossary/pkg/telemetry"
	termEvents "github.com/ghuser/glossary/services/glossary/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	topics := []string{termEvents.TopicTermCreated, termEvents.TopicTermUpdated}
	handlers := map[string]func(context.Context, *message.Message) error{
		termEvents.TopicTermCreated: handleTermCreated(a),
		termEvents.TopicTermUpdated: handleTermUpdated(a),
	}

	for _, topic := range topics {
		errCh, err := a.EventBus.Subscribe(ctx, topic, handlers[topic])
		if err != nil {
			return err
		}

		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string, errCh <-chan error) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error",
					"topic", topic,
					"error", err,
				)
			}
		}(topic, errCh)
	}

	a.Logger.Info("event subscribers registered", "topics", topics)
	return nil
}

// handleTermCreated returns a handler for glossary.term.created events.
// Handlers must be idempotent since the EventBus retries up to 3x on failure.
// Warms the Redis read-model cache so subsequent GetByID calls hit cache.
func handleTermCreated(a *app.Application) func(context.Context, *message.Message) error {
	termCache := cache.NewTermCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt termEvents.TermCreatedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if err := termCache.Set(ctx, &cache.CachedTerm{
			ID:          evt.TermID,
			Name:        evt.Name,
			Description: evt.Description,
			CreatedAt:   evt.OccurredAt,
			UpdatedAt:   evt.OccurredAt,
		}); err != nil {
			// Cache warming is best-effort; log but do not fail the handler.
			a.Logger.WarnContext(ctx, "cache warm failed for term.created",
				"term_id", evt.TermID, "error", err)
		} else {
			a.Logger.InfoContext(ctx, "cache warmed", "term_id", evt.TermID)
		}

		return nil
	}
}

// handleTermUpdated evicts the cached entry after an update. The event does
// not carry created_at, so rather than writing a partial entry the handler
// drops it and lets the next read-through repopulate from Postgres.
func handleTermUpdated(a *app.Application) func(context.Context, *message.Message) error {
	termCache := cache.NewTermCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt termEvents.TermUpdatedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if err := termCache.Delete(ctx, evt.TermID); err != nil {
			a.Logger.WarnContext(ctx, "cache evict failed for term.updated",
				"term_id", evt.TermID, "error", err)
		} else {
			a.Logger.InfoContext(ctx, "cache evicted", "term_id", evt.TermID)
		}

		return nil
	}
}
