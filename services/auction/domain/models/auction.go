package models

import (
	"fmt"
	"time"

	auctiondomain "github.com/ghuser/auctionsite/services/auction/domain"
)

// Auction is the core aggregate. The id is assigned by the seller (not
// generated) and the aggregate is immutable once created; all further change
// happens through accepted bids.
type Auction struct {
	ID       int64
	Title    string
	StartsAt time.Time
	// Expiry is the auction end time (wire name "expiry", request name "endsAt").
	Expiry   time.Time
	Currency string
	Seller   User
	Variant  Variant
}

// NewAuction constructs a valid Auction aggregate or fails with
// ErrInvalidAuction wrapping the specific constraint violation.
func NewAuction(id int64, title string, startsAt, expiry time.Time, currency string, seller User, variant Variant) (*Auction, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", auctiondomain.ErrInvalidAuction)
	}
	if title == "" {
		return nil, fmt.Errorf("%w: title must not be empty", auctiondomain.ErrInvalidAuction)
	}
	if !startsAt.Before(expiry) {
		return nil, fmt.Errorf("%w: startsAt must be before endsAt", auctiondomain.ErrInvalidAuction)
	}
	if currency == "" {
		return nil, fmt.Errorf("%w: currency must not be empty", auctiondomain.ErrInvalidAuction)
	}
	if seller.ID == "" {
		return nil, fmt.Errorf("%w: seller must be set", auctiondomain.ErrInvalidAuction)
	}
	return &Auction{
		ID:       id,
		Title:    title,
		StartsAt: startsAt.UTC(),
		Expiry:   expiry.UTC(),
		Currency: currency,
		Seller:   seller,
		Variant:  variant,
	}, nil
}
