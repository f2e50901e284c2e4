// Package memory provides an in-process EventLog used by tests and local
// development. Same semantics as the Postgres log minus durability.
package memory

import (
	"context"
	"sync"

	domainevents "github.com/ghuser/auctionsite/services/auction/domain/events"
	"github.com/ghuser/auctionsite/services/auction/domain/repositories"
)

// EventLog is an append-only in-memory event sequence.
type EventLog struct {
	mu      sync.Mutex
	records []repositories.Record

	// FailAppends makes every append return this error, for exercising the
	// processor's rollback path.
	FailAppends error
}

// NewEventLog returns an empty in-memory log.
func NewEventLog() *EventLog {
	return &EventLog{}
}

// AppendAuctionAdded appends the creation event.
func (l *EventLog) AppendAuctionAdded(_ context.Context, evt domainevents.AuctionAddedEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.FailAppends != nil {
		return l.FailAppends
	}
	l.records = append(l.records, repositories.Record{Kind: domainevents.KindAuctionAdded, AuctionAdded: &evt})
	return nil
}

// AppendBidAccepted appends an accepted bid.
func (l *EventLog) AppendBidAccepted(_ context.Context, evt domainevents.BidAcceptedEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.FailAppends != nil {
		return l.FailAppends
	}
	l.records = append(l.records, repositories.Record{Kind: domainevents.KindBidAccepted, BidAccepted: &evt})
	return nil
}

// ReadAll returns every stored event in append order.
func (l *EventLog) ReadAll(_ context.Context) ([]repositories.Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]repositories.Record, len(l.records))
	copy(out, l.records)
	return out, nil
}

// ReadByAuction returns one auction's event sequence in append order.
func (l *EventLog) ReadByAuction(_ context.Context, auctionID int64) ([]repositories.Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []repositories.Record
	for _, r := range l.records {
		switch {
		case r.AuctionAdded != nil && r.AuctionAdded.Auction.ID == auctionID:
			out = append(out, r)
		case r.BidAccepted != nil && r.BidAccepted.Bid.Auction == auctionID:
			out = append(out, r)
		}
	}
	return out, nil
}

// Len reports the number of stored events.
func (l *EventLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}
