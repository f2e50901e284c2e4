package services

import (
	"sort"
	"sync"
	"time"

	auctiondomain "github.com/ghuser/auctionsite/services/auction/domain"
	"github.com/ghuser/auctionsite/services/auction/domain/events"
	"github.com/ghuser/auctionsite/services/auction/domain/models"
)

// Projection is the queryable read model: a fold of the event log into
// per-auction state, one apply per append, same order. It is purely derived;
// dropping it and replaying the log reproduces it exactly.
//
// Reads run concurrently with writers of other auctions; the RWMutex only
// covers the map and the per-auction state fold, so a reader observes either
// the pre- or post-state of any single event, never a torn one.
type Projection struct {
	mu       sync.RWMutex
	auctions map[int64]*models.AuctionState
}

// NewProjection returns an empty projection.
func NewProjection() *Projection {
	return &Projection{auctions: make(map[int64]*models.AuctionState)}
}

// ApplyAuctionAdded materializes a new auction entry with an empty bid list.
func (p *Projection) ApplyAuctionAdded(evt events.AuctionAddedEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.auctions[evt.Auction.ID] = models.NewAuctionState(evt.Auction.ToAuction())
}

// ApplyBidAccepted appends the bid to its auction's bid list. Events arrive
// in log order, so the auction entry always exists.
func (p *Projection) ApplyBidAccepted(evt events.BidAcceptedEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if s, ok := p.auctions[evt.Bid.Auction]; ok {
		s.Commit(evt.Bid.ToBid())
	}
}

// Get assembles the auction view at the given instant, or ErrAuctionNotFound.
func (p *Projection) Get(id int64, now time.Time) (*models.AuctionView, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s, ok := p.auctions[id]
	if !ok {
		return nil, auctiondomain.ErrAuctionNotFound
	}
	return s.View(now), nil
}

// List returns the views of every known auction, ordered by id.
func (p *Projection) List(now time.Time) []*models.AuctionView {
	p.mu.RLock()
	defer p.mu.RUnlock()
	views := make([]*models.AuctionView, 0, len(p.auctions))
	for _, s := range p.auctions {
		views = append(views, s.View(now))
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })
	return views
}
