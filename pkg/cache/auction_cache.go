package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// AuctionCacheTTL is the time-to-live for cached auction summaries.
	AuctionCacheTTL = 24 * time.Hour

	auctionCacheKeyPrefix = "auction"
)

// CachedAuction is the denormalized auction summary stored in Redis as a
// hash. It is a cross-process read model warmed by the worker from the
// auction event topics; the authoritative view lives in the API process's
// projection.
type CachedAuction struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	StartsAt  time.Time `json:"starts_at"`
	Expiry    time.Time `json:"expiry"`
	Currency  string    `json:"currency"`
	Seller    string    `json:"seller"`
	Type      string    `json:"type"`
	BidCount  int64     `json:"bid_count"`
	LastBid   int64     `json:"last_bid"`
	CreatedAt time.Time `json:"created_at"`
}

// AuctionCache provides structured read/write operations for auction cache
// entries. Key format: "auction:{auctionID}".
type AuctionCache struct {
	client *RedisClient
}

// NewAuctionCache creates a new AuctionCache backed by the given RedisClient.
func NewAuctionCache(r *RedisClient) *AuctionCache {
	return &AuctionCache{client: r}
}

// Get retrieves a cached auction summary.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *AuctionCache) Get(ctx context.Context, auctionID int64) (*CachedAuction, error) {
	key := c.key(auctionID)
	vals, err := c.client.Client().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	id, err := strconv.ParseInt(vals["id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	startsAt, err := time.Parse(time.RFC3339Nano, vals["starts_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse starts_at: %w", err)
	}
	expiry, err := time.Parse(time.RFC3339Nano, vals["expiry"])
	if err != nil {
		return nil, fmt.Errorf("cache parse expiry: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}
	bidCount, _ := strconv.ParseInt(vals["bid_count"], 10, 64)
	lastBid, _ := strconv.ParseInt(vals["last_bid"], 10, 64)

	return &CachedAuction{
		ID:        id,
		Title:     vals["title"],
		StartsAt:  startsAt,
		Expiry:    expiry,
		Currency:  vals["currency"],
		Seller:    vals["seller"],
		Type:      vals["type"],
		BidCount:  bidCount,
		LastBid:   lastBid,
		CreatedAt: createdAt,
	}, nil
}

// Set writes an auction summary as a Redis hash with a 24-hour TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *AuctionCache) Set(ctx context.Context, a *CachedAuction) error {
	key := c.key(a.ID)
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, key,
		"id", strconv.FormatInt(a.ID, 10),
		"title", a.Title,
		"starts_at", a.StartsAt.UTC().Format(time.RFC3339Nano),
		"expiry", a.Expiry.UTC().Format(time.RFC3339Nano),
		"currency", a.Currency,
		"seller", a.Seller,
		"type", a.Type,
		"bid_count", strconv.FormatInt(a.BidCount, 10),
		"last_bid", strconv.FormatInt(a.LastBid, 10),
		"created_at", a.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, key, AuctionCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// RecordBid bumps the bid counter and last accepted amount for an auction.
// No-ops gracefully when the entry has expired; the next Set recreates it.
func (c *AuctionCache) RecordBid(ctx context.Context, auctionID, amount int64) error {
	key := c.key(auctionID)
	pipe := c.client.Client().Pipeline()
	pipe.HIncrBy(ctx, key, "bid_count", 1)
	pipe.HSet(ctx, key, "last_bid", strconv.FormatInt(amount, 10))
	pipe.Expire(ctx, key, AuctionCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache record bid: %w", err)
	}
	return nil
}

// Delete removes a cached auction summary.
func (c *AuctionCache) Delete(ctx context.Context, auctionID int64) error {
	if err := c.client.Client().Del(ctx, c.key(auctionID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "auction:{auctionID}"
func (c *AuctionCache) key(auctionID int64) string {
	return fmt.Sprintf("%s:%d", auctionCacheKeyPrefix, auctionID)
}
