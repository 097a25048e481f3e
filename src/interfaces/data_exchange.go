package interfaces

import (
	"context"

	"trading-dashboard/src/models"
)

// -----------------------------------------------------------------------------
// IDataExchanger defines the seam between the broadcast loop and whatever
// pushes data to connected dashboards.
// -----------------------------------------------------------------------------

type IDataExchanger interface {
	// Broadcast fans one realtime update out to every connected client.
	Broadcast(update *models.MRealtimeUpdate)

	// Start runs the server until it stops or fails.
	Start() error

	// Stop shuts the server down gracefully, closing client channels.
	Stop(ctx context.Context) error
}

// -----------------------------------------------------------------------------
// ISnapshotSource is anything the broadcast loop can pull a fresh snapshot
// from on each tick.
// -----------------------------------------------------------------------------

type ISnapshotSource interface {
	Generate() models.MSnapshot
}
