package broadcast

import (
	"context"
	"fmt"
	"time"

	"trading-dashboard/src/helpers"
	"trading-dashboard/src/interfaces"
	"trading-dashboard/src/logger"
	"trading-dashboard/src/models"
	"trading-dashboard/src/state"
)

// -----------------------------------------------------------------------------
// Broadcast Loop
// -----------------------------------------------------------------------------

// Loop drives the generate-update-broadcast cycle: a fixed-period ticker plus
// one early tick shortly after start. A failed tick is logged and skipped;
// the loop itself only stops when its context is cancelled.
type Loop struct {
	source    interfaces.ISnapshotSource
	store     *state.Store
	exchanger interfaces.IDataExchanger
	logger    *logger.Logger
	errors    *helpers.ErrorHandler

	interval     time.Duration
	initialDelay time.Duration
}

// -----------------------------------------------------------------------------

func NewLoop(
	source interfaces.ISnapshotSource,
	store *state.Store,
	exchanger interfaces.IDataExchanger,
	log *logger.Logger,
	interval time.Duration,
	initialDelay time.Duration,
) *Loop {
	return &Loop{
		source:       source,
		store:        store,
		exchanger:    exchanger,
		logger:       log,
		errors:       helpers.NewErrorHandler(log),
		interval:     interval,
		initialDelay: initialDelay,
	}
}

// -----------------------------------------------------------------------------

// Run blocks until ctx is cancelled. The first tick fires after initialDelay
// so freshly started clients see data before the first full interval elapses.
func (l *Loop) Run(ctx context.Context) {
	l.logger.Info("Starting broadcast loop (interval=%s, initial delay=%s)", l.interval, l.initialDelay)

	initial := time.NewTimer(l.initialDelay)
	defer initial.Stop()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Broadcast loop stopped")
			return
		case <-initial.C:
			l.Tick()
		case <-ticker.C:
			l.Tick()
		}
	}
}

// -----------------------------------------------------------------------------

// Tick runs one generate-update-broadcast cycle. A panic anywhere inside is
// contained to this tick: the snapshot simply stays stale until the next one.
func (l *Loop) Tick() {
	defer func() {
		if r := recover(); r != nil {
			l.errors.Handle(
				helpers.NewGenerationError("tick failed", fmt.Errorf("%v", r)),
				"broadcast tick",
			)
		}
	}()

	snapshot := l.source.Generate()
	l.store.Update(snapshot)

	// Only fan out when someone is listening
	count := l.store.ClientCount()
	if count == 0 {
		return
	}

	_, lastUpdate := l.store.Current()
	l.exchanger.Broadcast(&models.MRealtimeUpdate{
		Event:     models.EventRealtimeUpdate,
		Data:      snapshot,
		Timestamp: lastUpdate.UTC().Format(time.RFC3339),
	})

	l.logger.Debug("Broadcast tick delivered to %d clients", count)
}
