package app

import (
	"github.com/ghuser/auctionsite/pkg/cache"
	"github.com/ghuser/auctionsite/pkg/clock"
	"github.com/ghuser/auctionsite/pkg/database"
	"github.com/ghuser/auctionsite/pkg/events"
	"github.com/ghuser/auctionsite/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to all service route registrations during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler — use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "placing bid", "auction_id", id)
//	app.Logger.ErrorContext(ctx, "failed to append event", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Db       *database.Database
	Logger   logger.Logger
	EventBus *events.EventBus
	Redis    *cache.RedisClient
	Clock    clock.Clock // time source for auction status; clock.System in production
}
