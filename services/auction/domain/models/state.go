package models

import (
	"fmt"
	"time"

	auctiondomain "github.com/ghuser/auctionsite/services/auction/domain"
)

// Status is the auction lifecycle position, derived from the clock rather
// than stored: Pending before startsAt, Active between the boundaries
// (inclusive), Ended after expiry. There is no timer-driven transition;
// status is recomputed at every command evaluation.
type Status int

const (
	StatusPending Status = iota
	StatusActive
	StatusEnded
)

// AuctionState is the per-auction state machine: the fixed aggregate plus the
// accumulated bids in acceptance order. It is not safe for concurrent use;
// the command processor serializes access per auction id.
type AuctionState struct {
	Auction *Auction
	Bids    []Bid
}

// NewAuctionState returns the state machine for a freshly created auction.
func NewAuctionState(a *Auction) *AuctionState {
	return &AuctionState{Auction: a, Bids: []Bid{}}
}

// Status derives the lifecycle position at the given instant.
func (s *AuctionState) Status(now time.Time) Status {
	switch {
	case now.Before(s.Auction.StartsAt):
		return StatusPending
	case now.After(s.Auction.Expiry):
		return StatusEnded
	default:
		return StatusActive
	}
}

// TryAddBid validates a bid at the given instant and returns the Bid that
// would be accepted, without mutating state. The caller appends the
// corresponding event to the log and then calls Commit, so the in-memory
// state never runs ahead of the log.
//
// Rejections: a non-positive amount regardless of status, AuctionHasEnded
// once now is past expiry, AuctionNotStarted before startsAt (never reported
// as ended), and the variant's acceptance rule while active.
func (s *AuctionState) TryAddBid(now time.Time, bidder User, amount int64) (Bid, error) {
	if amount <= 0 {
		return Bid{}, fmt.Errorf("%w: amount must be positive", auctiondomain.ErrInvalidBid)
	}

	switch s.Status(now) {
	case StatusEnded:
		return Bid{}, auctiondomain.AuctionHasEnded(s.Auction.ID)
	case StatusPending:
		return Bid{}, auctiondomain.AuctionNotStarted(s.Auction.ID)
	}

	if err := s.Auction.Variant.AcceptBid(s.Bids, amount); err != nil {
		return Bid{}, err
	}

	return Bid{
		AuctionID: s.Auction.ID,
		Bidder:    bidder,
		Amount:    amount,
		PlacedAt:  now.UTC(),
	}, nil
}

// Commit appends a bid previously validated by TryAddBid.
func (s *AuctionState) Commit(bid Bid) {
	s.Bids = append(s.Bids, bid)
}

// View assembles the queryable auction view at the given instant. Bids are
// visible as soon as they are accepted, for sealed variants too; only
// winner/winnerPrice are gated on the auction having ended.
func (s *AuctionState) View(now time.Time) *AuctionView {
	v := &AuctionView{
		ID:       s.Auction.ID,
		StartsAt: s.Auction.StartsAt,
		Title:    s.Auction.Title,
		Expiry:   s.Auction.Expiry,
		Currency: s.Auction.Currency,
		Bids:     make([]BidView, len(s.Bids)),
	}
	for i, b := range s.Bids {
		v.Bids[i] = BidView{Amount: b.Amount, Bidder: b.Bidder}
	}

	if s.Status(now) == StatusEnded {
		if d, ok := s.Auction.Variant.Disclose(s.Bids); ok {
			winner := d.Winner
			price := d.Price
			v.Winner = &winner
			v.WinnerPrice = &price
		}
	}
	return v
}
