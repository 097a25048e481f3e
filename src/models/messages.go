package models

// -----------------------------------------------------------------------------
// WebSocket Wire Messages
// -----------------------------------------------------------------------------

// Server -> client event names. Each outbound JSON message carries its event
// name in an "event" field so a single socket can multiplex message kinds.
const (
	EventInitialData    = "initial_data"
	EventRealtimeUpdate = "realtime_update"
	EventDataResponse   = "data_response"
)

// MInitialData is sent once to a client right after it connects.
type MInitialData struct {
	Event            string    `json:"event"`
	ClientsConnected int       `json:"clientsConnected"`
	LastUpdate       string    `json:"lastUpdate"`
	Data             MSnapshot `json:"data"`
}

// MRealtimeUpdate is broadcast to every connected client on each tick.
type MRealtimeUpdate struct {
	Event     string    `json:"event"`
	Data      MSnapshot `json:"data"`
	Timestamp string    `json:"timestamp"`
}

// MDataResponse answers a single client's MDataRequest. Data holds either one
// sub-record or, for an unknown request type, the full snapshot.
type MDataResponse struct {
	Event     string      `json:"event"`
	RequestID interface{} `json:"requestId"`
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp string      `json:"timestamp"`
}

// -----------------------------------------------------------------------------
// Client -> server messages
// -----------------------------------------------------------------------------

// MDataRequest asks for one snapshot sub-record by key. The id is echoed back
// untouched so the client can correlate the response.
type MDataRequest struct {
	ID   interface{} `json:"id"`
	Type string      `json:"type"`
}
