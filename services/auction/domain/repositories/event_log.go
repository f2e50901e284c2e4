package repositories

import (
	"context"

	"github.com/ghuser/auctionsite/services/auction/domain/events"
)

// Record is one stored event. Exactly one of the pointers is set, matching Kind.
type Record struct {
	Kind         string
	AuctionAdded *events.AuctionAddedEvent
	BidAccepted  *events.BidAcceptedEvent
}

// EventLog is the persistence port for the append-only, per-auction ordered
// event sequence. The log is the source of truth; it is never mutated or
// truncated. The domain layer owns this interface; infrastructure implements it.
type EventLog interface {
	// AppendAuctionAdded appends the creation event for evt.Auction.ID.
	AppendAuctionAdded(ctx context.Context, evt events.AuctionAddedEvent) error

	// AppendBidAccepted appends an accepted bid for evt.Bid.Auction.
	AppendBidAccepted(ctx context.Context, evt events.BidAcceptedEvent) error

	// ReadAll returns every stored event in append order. Used to rebuild
	// the state machines and projection on startup.
	ReadAll(ctx context.Context) ([]Record, error)

	// ReadByAuction returns the event sequence for one auction id in
	// append order.
	ReadByAuction(ctx context.Context, auctionID int64) ([]Record, error)
}
