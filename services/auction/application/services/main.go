package services

import (
	"context"
	"fmt"

	"github.com/ghuser/auctionsite/pkg/app"
	"github.com/ghuser/auctionsite/services/auction/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires the command processor with its infrastructure implementations.
type Services struct {
	Processor *Processor
}

// New wires the auction processor with the Postgres event log and replays the
// stored events so the state machines and projection are current before any
// command is served.
func New(ctx context.Context, a *app.Application) (*Services, error) {
	eventLog := postgres.NewEventLog(a.Db, a.EventBus)
	proc := NewProcessor(eventLog, a.Clock)
	if err := proc.Restore(ctx); err != nil {
		return nil, fmt.Errorf("restore auction state: %w", err)
	}
	return &Services{Processor: proc}, nil
}
