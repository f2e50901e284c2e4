package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ghuser/auctionsite/pkg/clock"
	auctiondomain "github.com/ghuser/auctionsite/services/auction/domain"
	"github.com/ghuser/auctionsite/services/auction/domain/events"
	"github.com/ghuser/auctionsite/services/auction/domain/models"
	"github.com/ghuser/auctionsite/services/auction/domain/repositories"
)

// Processor is the command entry point for the auction context. It owns one
// state machine per auction and guarantees that all commands for the same
// auction id apply one at a time, in submission order: a per-auction mutex
// held across the whole validate/append/commit sequence. Commands for
// different auctions proceed fully in parallel; there is no global write lock
// beyond the registry map access.
//
// Side effects are exactly the event appended: zero or one per command. The
// in-memory state mutates only after the log append succeeds, so memory never
// runs ahead of the log.
type Processor struct {
	eventLog   repositories.EventLog
	clock      clock.Clock
	projection *Projection

	mu       sync.RWMutex
	machines map[int64]*machine
}

// machine pairs an auction's state with the mutex serializing its commands.
// failed marks a machine whose creation append never landed; bidders that
// fetched it from the registry before the rollback removed it must treat the
// auction as unknown.
type machine struct {
	mu     sync.Mutex
	state  *models.AuctionState
	failed bool
}

// NewProcessor returns a Processor over the given log. Call Restore before
// serving commands so the registry and projection reflect the stored events.
func NewProcessor(eventLog repositories.EventLog, clk clock.Clock) *Processor {
	return &Processor{
		eventLog:   eventLog,
		clock:      clk,
		projection: NewProjection(),
		machines:   make(map[int64]*machine),
	}
}

// Restore replays the full event log, rebuilding the state machines and the
// projection in append order.
func (p *Processor) Restore(ctx context.Context) error {
	records, err := p.eventLog.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("read event log: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, rec := range records {
		switch {
		case rec.AuctionAdded != nil:
			evt := *rec.AuctionAdded
			p.machines[evt.Auction.ID] = &machine{state: models.NewAuctionState(evt.Auction.ToAuction())}
			p.projection.ApplyAuctionAdded(evt)
		case rec.BidAccepted != nil:
			evt := *rec.BidAccepted
			if m, ok := p.machines[evt.Bid.Auction]; ok {
				m.state.Commit(evt.Bid.ToBid())
			}
			p.projection.ApplyBidAccepted(evt)
		}
	}
	return nil
}

// AddAuction creates the auction exactly once. Fails with
// AuctionAlreadyExists when the id is taken; no event is appended then.
func (p *Processor) AddAuction(ctx context.Context, a *models.Auction) (events.AuctionAddedEvent, error) {
	now := p.clock.Now()

	// Reserve the id and its lock under the registry lock so a concurrent
	// duplicate either sees the entry or loses the race here.
	p.mu.Lock()
	if _, ok := p.machines[a.ID]; ok {
		p.mu.Unlock()
		return events.AuctionAddedEvent{}, auctiondomain.AuctionAlreadyExists(a.ID)
	}
	m := &machine{state: models.NewAuctionState(a)}
	m.mu.Lock()
	p.machines[a.ID] = m
	p.mu.Unlock()
	defer m.mu.Unlock()

	evt := events.NewAuctionAdded(now, a)
	if err := p.eventLog.AppendAuctionAdded(ctx, evt); err != nil {
		// Release the reserved id; the auction was never created. The
		// tombstone is set while the machine mutex is still held, so a
		// bidder parked on it cannot run against the orphaned state.
		m.failed = true
		p.mu.Lock()
		delete(p.machines, a.ID)
		p.mu.Unlock()
		// The durability layer re-detects duplicates (unique index); pass
		// the domain error through unwrapped so the wire body stays exact.
		if errors.Is(err, auctiondomain.ErrAuctionAlreadyExists) {
			return events.AuctionAddedEvent{}, err
		}
		return events.AuctionAddedEvent{}, fmt.Errorf("append auction added: %w", err)
	}

	p.projection.ApplyAuctionAdded(evt)
	return evt, nil
}

// PlaceBid validates and records a bid for the auction. The state machine's
// acceptance decision, the log append and the in-memory commit all happen
// under the auction's mutex, so two concurrent English bids can never both
// read the same highest bid.
func (p *Processor) PlaceBid(ctx context.Context, auctionID int64, bidder models.User, amount int64) (events.BidAcceptedEvent, error) {
	now := p.clock.Now()

	p.mu.RLock()
	m, ok := p.machines[auctionID]
	p.mu.RUnlock()
	if !ok {
		return events.BidAcceptedEvent{}, auctiondomain.UnknownAuction(auctionID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// The machine may have been fetched just before a failed creation rolled
	// its registry entry back; its auction was never created.
	if m.failed {
		return events.BidAcceptedEvent{}, auctiondomain.UnknownAuction(auctionID)
	}

	bid, err := m.state.TryAddBid(now, bidder, amount)
	if err != nil {
		return events.BidAcceptedEvent{}, err
	}

	evt := events.NewBidAccepted(now, bid)
	if err := p.eventLog.AppendBidAccepted(ctx, evt); err != nil {
		return events.BidAcceptedEvent{}, fmt.Errorf("append bid accepted: %w", err)
	}

	m.state.Commit(bid)
	p.projection.ApplyBidAccepted(evt)
	return evt, nil
}

// GetAuction returns the auction view at the current instant, or
// ErrAuctionNotFound. Pure read; never blocks behind bid processing for
// other auctions.
func (p *Processor) GetAuction(id int64) (*models.AuctionView, error) {
	return p.projection.Get(id, p.clock.Now())
}

// ListAuctions returns every known auction view, ordered by id.
func (p *Processor) ListAuctions() []*models.AuctionView {
	return p.projection.List(p.clock.Now())
}
