package state

import (
	"sync"
	"testing"
	"time"

	"trading-dashboard/src/generator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSentinelBeforeFirstTick(t *testing.T) {
	store := NewStore()

	snapshot, lastUpdate := store.Current()
	require.NotNil(t, snapshot.Positions, "sentinel positions must serialize as [], not null")
	require.NotNil(t, snapshot.Orders)
	assert.Empty(t, snapshot.Positions)
	assert.Empty(t, snapshot.Orders)
	assert.WithinDuration(t, time.Now(), lastUpdate, time.Second)
	assert.Zero(t, store.ClientCount())
}

func TestStoreUpdateReplacesSnapshot(t *testing.T) {
	store := NewStore()
	g := generator.NewGeneratorWithSeed(7)

	first := g.Generate()
	store.Update(first)
	got, lastUpdate := store.Current()
	assert.Equal(t, first, got)
	assert.WithinDuration(t, time.Now(), lastUpdate, time.Second)

	second := g.Generate()
	store.Update(second)
	got, _ = store.Current()
	assert.Equal(t, second, got)
}

func TestStoreClientCountInvariant(t *testing.T) {
	store := NewStore()

	ids := make([]uuid.UUID, 5)
	for i := range ids {
		ids[i] = uuid.New()
		store.RegisterClient(ids[i])
	}
	assert.Equal(t, 5, store.ClientCount())

	store.UnregisterClient(ids[0])
	store.UnregisterClient(ids[1])
	assert.Equal(t, 3, store.ClientCount())

	// Unregistering an unknown or already-removed client is a no-op
	store.UnregisterClient(ids[0])
	store.UnregisterClient(uuid.New())
	assert.Equal(t, 3, store.ClientCount())

	for _, id := range ids {
		store.UnregisterClient(id)
	}
	assert.Zero(t, store.ClientCount())

	// Count can never go negative
	store.UnregisterClient(uuid.New())
	assert.Zero(t, store.ClientCount())
}

func TestStoreConcurrentAccess(t *testing.T) {
	store := NewStore()
	g := generator.NewGeneratorWithSeed(8)

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			store.Update(g.Generate())
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			snap, _ := store.Current()
			// A reader must always see a complete snapshot
			assert.Equal(t, snap.Account.Balance+snap.Account.Profit, snap.Account.Equity)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			id := uuid.New()
			store.RegisterClient(id)
			store.UnregisterClient(id)
		}
	}()

	wg.Wait()
	assert.Zero(t, store.ClientCount())
}

func TestStoreUptime(t *testing.T) {
	store := NewStore()
	time.Sleep(10 * time.Millisecond)
	assert.Greater(t, store.Uptime(), 0.0)
}
