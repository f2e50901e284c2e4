package models

import "time"

// Bid is an accepted bid. Immutable once accepted; the bid list is append-only
// and bids are never revoked.
type Bid struct {
	AuctionID int64
	Bidder    User
	Amount    int64
	// PlacedAt is assigned by the command processor at evaluation time, never
	// taken from the caller.
	PlacedAt time.Time
}
