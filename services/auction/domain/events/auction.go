package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/auctionsite/services/auction/domain/models"
)

// Watermill topics for the auction context. Consumers subscribe via
// EventBus.Subscribe; the same payloads are what the event log stores.
const (
	TopicAuctionAdded = "auction.added"
	TopicBidAccepted  = "auction.bid_accepted"
)

// Event kind discriminators stored alongside each log record. They double as
// the "$type" tag echoed in command responses.
const (
	KindAuctionAdded = "AuctionAdded"
	KindBidAccepted  = "BidAccepted"
)

// AuctionPayload is the auction snapshot carried by AuctionAddedEvent. Field
// names follow the public wire contract ("expiry" for the end time, "type"
// for the variant, "user" for the seller).
type AuctionPayload struct {
	ID       int64          `json:"id"`
	StartsAt time.Time      `json:"startsAt"`
	Title    string         `json:"title"`
	Expiry   time.Time      `json:"expiry"`
	User     models.User    `json:"user"`
	Type     models.Variant `json:"type"`
	Currency string         `json:"currency"`
}

// AuctionAddedEvent is appended (and published) when an auction is created.
type AuctionAddedEvent struct {
	EventID uuid.UUID      `json:"event_id"` // unique publish-time identifier for deduplication
	Version int            `json:"version"`  // schema version; increment on breaking changes
	At      time.Time      `json:"at"`
	Auction AuctionPayload `json:"auction"`
}

// NewAuctionAdded builds the event for a freshly created auction. at is the
// processor's append timestamp.
func NewAuctionAdded(at time.Time, a *models.Auction) AuctionAddedEvent {
	return AuctionAddedEvent{
		EventID: uuid.New(),
		Version: 1,
		At:      at.UTC(),
		Auction: AuctionPayload{
			ID:       a.ID,
			StartsAt: a.StartsAt,
			Title:    a.Title,
			Expiry:   a.Expiry,
			User:     a.Seller,
			Type:     a.Variant,
			Currency: a.Currency,
		},
	}
}

// ToAuction rebuilds the domain aggregate from the stored payload. Used when
// replaying the log on startup.
func (p AuctionPayload) ToAuction() *models.Auction {
	return &models.Auction{
		ID:       p.ID,
		Title:    p.Title,
		StartsAt: p.StartsAt,
		Expiry:   p.Expiry,
		Currency: p.Currency,
		Seller:   p.User,
		Variant:  p.Type,
	}
}

// BidPayload is the accepted bid carried by BidAcceptedEvent.
type BidPayload struct {
	Auction int64       `json:"auction"`
	User    models.User `json:"user"`
	Amount  int64       `json:"amount"`
	At      time.Time   `json:"at"`
}

// BidAcceptedEvent is appended (and published) when a bid is accepted.
type BidAcceptedEvent struct {
	EventID uuid.UUID  `json:"event_id"`
	Version int        `json:"version"`
	At      time.Time  `json:"at"`
	Bid     BidPayload `json:"bid"`
}

// NewBidAccepted builds the event for an accepted bid.
func NewBidAccepted(at time.Time, b models.Bid) BidAcceptedEvent {
	return BidAcceptedEvent{
		EventID: uuid.New(),
		Version: 1,
		At:      at.UTC(),
		Bid: BidPayload{
			Auction: b.AuctionID,
			User:    b.Bidder,
			Amount:  b.Amount,
			At:      b.PlacedAt,
		},
	}
}

// ToBid rebuilds the domain bid from the stored payload.
func (p BidPayload) ToBid() models.Bid {
	return models.Bid{
		AuctionID: p.Auction,
		Bidder:    p.User,
		Amount:    p.Amount,
		PlacedAt:  p.At,
	}
}
