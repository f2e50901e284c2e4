package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/auctionsite/pkg/app"
	"github.com/ghuser/auctionsite/pkg/cache"
	"github.com/ghuser/auctionsite/pkg/clock"
	"github.com/ghuser/auctionsite/pkg/config"
	"github.com/ghuser/auctionsite/pkg/database"
	"github.com/ghuser/auctionsite/pkg/events"
	"github.com/ghuser/auctionsite/pkg/logger"
	"github.com/ghuser/auctionsite/pkg/telemetry"
	auctionEvents "github.com/ghuser/auctionsite/services/auction/domain/events"
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
		Clock:    clock.System,
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
	topics := map[string]func(context.Context, *message.Message) error{
		auctionEvents.TopicAuctionAdded: handleAuctionAdded(a),
		auctionEvents.TopicBidAccepted:  handleBidAccepted(a),
	}

	for topic, handler := range topics {
		errCh, err := a.EventBus.Subscribe(ctx, topic, handler)
		if err != nil {
			return err
		}

		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error",
					"topic", topic,
					"error", err,
				)
			}
		}(topic)
	}

	a.Logger.Info("event subscribers registered",
		"topics", []string{auctionEvents.TopicAuctionAdded, auctionEvents.TopicBidAccepted})
	return nil
}

// handleAuctionAdded returns a handler for auction.added events.
// Handlers must be idempotent; EventBus retries up to 3x on failure.
// Warms the Redis auction summary so other processes can read it without
// touching the API's projection.
func handleAuctionAdded(a *app.Application) func(context.Context, *message.Message) error {
	auctionCache := cache.NewAuctionCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt auctionEvents.AuctionAddedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if err := auctionCache.Set(ctx, &cache.CachedAuction{
			ID:        evt.Auction.ID,
			Title:     evt.Auction.Title,
			StartsAt:  evt.Auction.StartsAt,
			Expiry:    evt.Auction.Expiry,
			Currency:  evt.Auction.Currency,
			Seller:    evt.Auction.User.String(),
			Type:      evt.Auction.Type.String(),
			CreatedAt: evt.At,
		}); err != nil {
			// Cache warming is best-effort; log but do not fail the handler.
			a.Logger.WarnContext(ctx, "cache warm failed for auction.added",
				"auction_id", evt.Auction.ID, "error", err)
		} else {
			a.Logger.InfoContext(ctx, "cache warmed",
				"auction_id", evt.Auction.ID)
		}

		return nil
	}
}

// handleBidAccepted returns a handler for auction.bid_accepted events.
// Bumps the cached bid counter and last accepted amount.
func handleBidAccepted(a *app.Application) func(context.Context, *message.Message) error {
	auctionCache := cache.NewAuctionCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt auctionEvents.BidAcceptedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if err := auctionCache.RecordBid(ctx, evt.Bid.Auction, evt.Bid.Amount); err != nil {
			a.Logger.WarnContext(ctx, "cache update failed for bid",
				"auction_id", evt.Bid.Auction, "error", err)
		}

		return nil
	}
}
