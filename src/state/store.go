package state

import (
	"sync"
	"time"

	"trading-dashboard/src/models"

	"github.com/google/uuid"
)

// -----------------------------------------------------------------------------
// Shared State Store
// -----------------------------------------------------------------------------

// Store holds the single canonical snapshot, its last-update time and the set
// of connected client ids. The broadcast loop is the only snapshot writer and
// the hub is the only registry writer; one RWMutex keeps readers from ever
// seeing a half-written snapshot.
type Store struct {
	mu         sync.RWMutex
	snapshot   models.MSnapshot
	lastUpdate time.Time
	clients    map[uuid.UUID]struct{}
	startTime  time.Time
}

// -----------------------------------------------------------------------------

func NewStore() *Store {
	now := time.Now()
	return &Store{
		snapshot:   models.EmptySnapshot(),
		lastUpdate: now,
		clients:    make(map[uuid.UUID]struct{}),
		startTime:  now,
	}
}

// -----------------------------------------------------------------------------

// Update replaces the current snapshot and stamps the update time.
func (s *Store) Update(snapshot models.MSnapshot) {
	s.mu.Lock()
	s.snapshot = snapshot
	s.lastUpdate = time.Now()
	s.mu.Unlock()
}

// Current returns the latest complete snapshot and its update time. Before
// the first tick this is the empty sentinel stamped with process start.
func (s *Store) Current() (models.MSnapshot, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, s.lastUpdate
}

// -----------------------------------------------------------------------------

// RegisterClient records a connected client id.
func (s *Store) RegisterClient(id uuid.UUID) {
	s.mu.Lock()
	s.clients[id] = struct{}{}
	s.mu.Unlock()
}

// UnregisterClient removes a client id. Unknown ids are a no-op, so the
// count can never go negative.
func (s *Store) UnregisterClient(id uuid.UUID) {
	s.mu.Lock()
	delete(s.clients, id)
	s.mu.Unlock()
}

// ClientCount reports the number of currently registered clients.
func (s *Store) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// -----------------------------------------------------------------------------

// Uptime reports seconds since the store was created at process start.
func (s *Store) Uptime() float64 {
	return time.Since(s.startTime).Seconds()
}
