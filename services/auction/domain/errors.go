package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the auction domain. Use errors.Is() to check these.
//
// The spellings are CamelCase because the rendered form is part of the public
// API contract: clients match on bodies like "AuctionAlreadyExists 42". Use the
// constructors below so the argument is always attached.
var (
	// ErrAuctionAlreadyExists indicates an id collision on creation.
	ErrAuctionAlreadyExists = errors.New("AuctionAlreadyExists")

	// ErrUnknownAuction indicates a bid against a never-created auction id.
	ErrUnknownAuction = errors.New("UnknownAuction")

	// ErrAuctionNotStarted indicates a bid submitted before startsAt.
	// Never reported as ErrAuctionHasEnded.
	ErrAuctionNotStarted = errors.New("AuctionNotStarted")

	// ErrAuctionHasEnded indicates a bid submitted after the expiry.
	ErrAuctionHasEnded = errors.New("AuctionHasEnded")

	// ErrMustPlaceBidOverHighestBid indicates an English bid that does not
	// exceed the current highest bid.
	ErrMustPlaceBidOverHighestBid = errors.New("MustPlaceBidOverHighestBid")

	// ErrInvalidAuction indicates the auction request violates domain constraints.
	ErrInvalidAuction = errors.New("invalid auction")

	// ErrInvalidBid indicates the bid violates domain constraints, such as a
	// non-positive amount.
	ErrInvalidBid = errors.New("invalid bid")

	// ErrAuctionNotFound indicates the queried auction does not exist.
	// Query-side counterpart of ErrUnknownAuction; maps to 404 instead of 400.
	ErrAuctionNotFound = errors.New("auction not found")
)

// AuctionAlreadyExists renders as "AuctionAlreadyExists <id>".
func AuctionAlreadyExists(id int64) error {
	return fmt.Errorf("%w %d", ErrAuctionAlreadyExists, id)
}

// UnknownAuction renders as "UnknownAuction <id>".
func UnknownAuction(id int64) error {
	return fmt.Errorf("%w %d", ErrUnknownAuction, id)
}

// AuctionNotStarted renders as "AuctionNotStarted <id>".
func AuctionNotStarted(id int64) error {
	return fmt.Errorf("%w %d", ErrAuctionNotStarted, id)
}

// AuctionHasEnded renders as "AuctionHasEnded <id>".
func AuctionHasEnded(id int64) error {
	return fmt.Errorf("%w %d", ErrAuctionHasEnded, id)
}

// MustPlaceBidOverHighestBid renders as "MustPlaceBidOverHighestBid <amount>",
// where amount is the bid the caller must exceed.
func MustPlaceBidOverHighestBid(currentHighest int64) error {
	return fmt.Errorf("%w %d", ErrMustPlaceBidOverHighestBid, currentHighest)
}
