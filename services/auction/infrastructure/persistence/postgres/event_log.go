package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/auctionsite/pkg/database"
	pkgevents "github.com/ghuser/auctionsite/pkg/events"
	auctiondomain "github.com/ghuser/auctionsite/services/auction/domain"
	domainevents "github.com/ghuser/auctionsite/services/auction/domain/events"
	"github.com/ghuser/auctionsite/services/auction/domain/repositories"
)

// EventLog implements repositories.EventLog against PostgreSQL. Records go
// into the append-only auction_events table; the bus publication happens in
// the same transaction (watermill-sql outbox), so the log and the published
// stream cannot diverge.
type EventLog struct {
	db  *database.Database
	bus *pkgevents.EventBus
}

// NewEventLog returns an EventLog backed by the given connection pool and
// event bus. bus may be nil in tests; appends then skip publication.
func NewEventLog(db *database.Database, bus *pkgevents.EventBus) *EventLog {
	return &EventLog{db: db, bus: bus}
}

// AppendAuctionAdded appends the creation event and publishes it
// transactionally. A partial unique index on (auction_id) for AuctionAdded
// records backs up the processor's in-memory duplicate check; a violation
// maps to AuctionAlreadyExists.
func (l *EventLog) AppendAuctionAdded(ctx context.Context, evt domainevents.AuctionAddedEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal auction added: %w", err)
	}

	return l.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := l.insert(ctx, tx, evt.Auction.ID, domainevents.KindAuctionAdded, payload, evt); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return auctiondomain.AuctionAlreadyExists(evt.Auction.ID)
			}
			return fmt.Errorf("insert auction added: %w", err)
		}
		return l.publish(tx, domainevents.TopicAuctionAdded, evt.EventID.String(), payload)
	})
}

// AppendBidAccepted appends an accepted bid and publishes it transactionally.
func (l *EventLog) AppendBidAccepted(ctx context.Context, evt domainevents.BidAcceptedEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal bid accepted: %w", err)
	}

	return l.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := l.insert(ctx, tx, evt.Bid.Auction, domainevents.KindBidAccepted, payload, evt); err != nil {
			return fmt.Errorf("insert bid accepted: %w", err)
		}
		return l.publish(tx, domainevents.TopicBidAccepted, evt.EventID.String(), payload)
	})
}

func (l *EventLog) insert(ctx context.Context, tx *sql.Tx, auctionID int64, kind string, payload []byte, evt any) error {
	var occurredAt any
	switch e := evt.(type) {
	case domainevents.AuctionAddedEvent:
		occurredAt = e.At
	case domainevents.BidAcceptedEvent:
		occurredAt = e.At
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO auction_events (auction_id, kind, payload, occurred_at)
		 VALUES ($1, $2, $3, $4)`,
		auctionID, kind, payload, occurredAt,
	)
	return err
}

func (l *EventLog) publish(tx *sql.Tx, topic, eventID string, payload []byte) error {
	if l.bus == nil {
		return nil
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", eventID)
	msg.Metadata.Set("event_version", "1")
	p, err := l.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(topic, msg)
}

// ReadAll returns every stored event in append order.
func (l *EventLog) ReadAll(ctx context.Context) ([]repositories.Record, error) {
	return l.query(ctx,
		`SELECT kind, payload FROM auction_events ORDER BY id`)
}

// ReadByAuction returns one auction's event sequence in append order.
func (l *EventLog) ReadByAuction(ctx context.Context, auctionID int64) ([]repositories.Record, error) {
	return l.query(ctx,
		`SELECT kind, payload FROM auction_events WHERE auction_id = $1 ORDER BY id`, auctionID)
}

func (l *EventLog) query(ctx context.Context, q string, args ...any) ([]repositories.Record, error) {
	rows, err := l.db.DB().QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var records []repositories.Record
	for rows.Next() {
		var kind string
		var payload []byte
		if err := rows.Scan(&kind, &payload); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		rec, err := decodeRecord(kind, payload)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return records, nil
}

func decodeRecord(kind string, payload []byte) (repositories.Record, error) {
	switch kind {
	case domainevents.KindAuctionAdded:
		var evt domainevents.AuctionAddedEvent
		if err := json.Unmarshal(payload, &evt); err != nil {
			return repositories.Record{}, fmt.Errorf("decode auction added: %w", err)
		}
		return repositories.Record{Kind: kind, AuctionAdded: &evt}, nil
	case domainevents.KindBidAccepted:
		var evt domainevents.BidAcceptedEvent
		if err := json.Unmarshal(payload, &evt); err != nil {
			return repositories.Record{}, fmt.Errorf("decode bid accepted: %w", err)
		}
		return repositories.Record{Kind: kind, BidAccepted: &evt}, nil
	default:
		return repositories.Record{}, fmt.Errorf("unknown event kind %q", kind)
	}
}
