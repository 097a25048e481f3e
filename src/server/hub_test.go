package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"trading-dashboard/src/generator"
	"trading-dashboard/src/logger"
	"trading-dashboard/src/models"
	"trading-dashboard/src/state"
	"trading-dashboard/src/utils"

	ws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------
// Test Setup
// -----------------------------------------------------------------------------

// newTestServer builds a DashboardServer with a running hub loop and wraps
// its websocket engine in an httptest server. Returns the server, its store
// and a dial function.
func newTestServer(t *testing.T) (*DashboardServer, *state.Store, func() *ws.Conn) {
	t.Helper()

	log := logger.NewLogger("ERROR", "test")
	store := state.NewStore()
	sched := utils.NewMarketScheduler("US100", log)

	cfg := &models.MConfig{
		Name:     "test-dashboard",
		Host:     "127.0.0.1",
		WSPort:   3002,
		HTTPPort: 3001,
		LogLevel: "ERROR",
		Market:   models.MMarketConfig{Symbol: "US100"},
	}

	s := NewDashboardServer(cfg, log, store, sched)
	go s.handleWebsockets()
	t.Cleanup(func() { close(s.quit) })

	srv := httptest.NewServer(s.wsEngine)
	t.Cleanup(srv.Close)

	dial := func() *ws.Conn {
		t.Helper()
		url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
		conn, _, err := ws.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		t.Cleanup(func() { conn.Close() })
		return conn
	}

	return s, store, dial
}

// readMessage reads the next JSON text message with a deadline.
func readMessage(t *testing.T, conn *ws.Conn) []byte {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	return msg
}

// waitForClientCount polls until the store reports the expected count.
func waitForClientCount(store *state.Store, expected int) bool {
	for range 200 {
		if store.ClientCount() == expected {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

// -----------------------------------------------------------------------------
// Connection Lifecycle
// -----------------------------------------------------------------------------

func TestConnectReceivesInitialData(t *testing.T) {
	_, store, dial := newTestServer(t)
	store.Update(generator.NewGeneratorWithSeed(1).Generate())

	conn := dial()
	require.True(t, waitForClientCount(store, 1))

	var initial models.MInitialData
	require.NoError(t, json.Unmarshal(readMessage(t, conn), &initial))

	assert.Equal(t, models.EventInitialData, initial.Event)
	assert.Equal(t, 1, initial.ClientsConnected)
	assert.NotEmpty(t, initial.LastUpdate)
	assert.Equal(t, "US100", initial.Data.Market.Symbol)
}

func TestInitialDataBeforeFirstTickIsSentinel(t *testing.T) {
	_, store, dial := newTestServer(t)

	conn := dial()
	require.True(t, waitForClientCount(store, 1))

	var initial models.MInitialData
	require.NoError(t, json.Unmarshal(readMessage(t, conn), &initial))

	assert.Empty(t, initial.Data.Positions)
	assert.Empty(t, initial.Data.Orders)
	assert.Zero(t, initial.Data.Account.Balance)
}

func TestDisconnectDecrementsCount(t *testing.T) {
	_, store, dial := newTestServer(t)

	conn1 := dial()
	conn2 := dial()
	require.True(t, waitForClientCount(store, 2))

	conn1.Close()
	require.True(t, waitForClientCount(store, 1))

	conn2.Close()
	require.True(t, waitForClientCount(store, 0))
}

// -----------------------------------------------------------------------------
// Broadcast Fan-Out
// -----------------------------------------------------------------------------

func TestBroadcastReachesAllClients(t *testing.T) {
	s, store, dial := newTestServer(t)
	store.Update(generator.NewGeneratorWithSeed(2).Generate())

	conn1 := dial()
	conn2 := dial()
	require.True(t, waitForClientCount(store, 2))

	// Drain initial_data on both connections
	readMessage(t, conn1)
	readMessage(t, conn2)

	snapshot, lastUpdate := store.Current()
	s.Broadcast(&models.MRealtimeUpdate{
		Event:     models.EventRealtimeUpdate,
		Data:      snapshot,
		Timestamp: lastUpdate.UTC().Format(time.RFC3339),
	})

	for _, conn := range []*ws.Conn{conn1, conn2} {
		var update models.MRealtimeUpdate
		require.NoError(t, json.Unmarshal(readMessage(t, conn), &update))
		assert.Equal(t, models.EventRealtimeUpdate, update.Event)
		assert.Equal(t, snapshot, update.Data)
		assert.NotEmpty(t, update.Timestamp)
	}
}

// -----------------------------------------------------------------------------
// Data Requests
// -----------------------------------------------------------------------------

// dataResponse mirrors MDataResponse with raw payload for re-decoding.
type dataResponse struct {
	Event     string          `json:"event"`
	RequestID interface{}     `json:"requestId"`
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp string          `json:"timestamp"`
}

func TestRequestDataReturnsSubRecord(t *testing.T) {
	_, store, dial := newTestServer(t)
	store.Update(generator.NewGeneratorWithSeed(3).Generate())

	conn := dial()
	require.True(t, waitForClientCount(store, 1))
	readMessage(t, conn) // initial_data

	require.NoError(t, conn.WriteJSON(models.MDataRequest{ID: "x", Type: "account"}))

	var resp dataResponse
	require.NoError(t, json.Unmarshal(readMessage(t, conn), &resp))

	assert.Equal(t, models.EventDataResponse, resp.Event)
	assert.Equal(t, "x", resp.RequestID)
	assert.Equal(t, "account", resp.Type)

	var account models.MAccount
	require.NoError(t, json.Unmarshal(resp.Data, &account))
	snapshot, _ := store.Current()
	assert.Equal(t, snapshot.Account, account)
}

func TestRequestDataUnknownTypeFallsBackToFullSnapshot(t *testing.T) {
	_, store, dial := newTestServer(t)
	store.Update(generator.NewGeneratorWithSeed(4).Generate())

	conn := dial()
	require.True(t, waitForClientCount(store, 1))
	readMessage(t, conn) // initial_data

	require.NoError(t, conn.WriteJSON(models.MDataRequest{ID: 7, Type: "bogus"}))

	var resp dataResponse
	require.NoError(t, json.Unmarshal(readMessage(t, conn), &resp))

	// id and type echo the request even when the key is unknown
	assert.Equal(t, float64(7), resp.RequestID)
	assert.Equal(t, "bogus", resp.Type)

	var full models.MSnapshot
	require.NoError(t, json.Unmarshal(resp.Data, &full))
	snapshot, _ := store.Current()
	assert.Equal(t, snapshot, full)
}

func TestMalformedRequestIsIgnored(t *testing.T) {
	_, store, dial := newTestServer(t)

	conn := dial()
	require.True(t, waitForClientCount(store, 1))
	readMessage(t, conn) // initial_data

	require.NoError(t, conn.WriteMessage(ws.TextMessage, []byte("not json")))

	// Connection stays usable after garbage input
	require.NoError(t, conn.WriteJSON(models.MDataRequest{ID: "y", Type: "market"}))
	var resp dataResponse
	require.NoError(t, json.Unmarshal(readMessage(t, conn), &resp))
	assert.Equal(t, "y", resp.RequestID)
	assert.Equal(t, "market", resp.Type)
}
