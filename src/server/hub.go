package server

import (
	"encoding/json"
	"net/http"
	"time"

	"trading-dashboard/src/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// handleWebsockets is the main Hub loop. It is the only goroutine touching
// s.clients, so registration, fan-out and eviction never race.
func (s *DashboardServer) handleWebsockets() {
	for {
		select {
		case client := <-s.register:
			s.clients[client] = struct{}{}
			s.Store.RegisterClient(client.id)
			s.Logger.Info("Client connected: %s (%d total)", client.id, s.Store.ClientCount())

			// Send the current snapshot to this client alone, never broadcast
			snapshot, lastUpdate := s.Store.Current()
			client.send <- &models.MInitialData{
				Event:            models.EventInitialData,
				ClientsConnected: s.Store.ClientCount(),
				LastUpdate:       lastUpdate.UTC().Format(time.RFC3339),
				Data:             snapshot,
			}

		case client := <-s.unregister:
			if _, ok := s.clients[client]; ok {
				delete(s.clients, client)
				close(client.send)
				s.Store.UnregisterClient(client.id)
				s.Logger.Info("Client disconnected: %s (%d total)", client.id, s.Store.ClientCount())
			}

		case message := <-s.broadcast:
			// Fan out to all clients; a slow client is evicted rather than
			// allowed to stall the rest of the batch
			for client := range s.clients {
				select {
				case client.send <- message:
				default:
					delete(s.clients, client)
					close(client.send)
					s.Store.UnregisterClient(client.id)
					s.Logger.Warning("Evicted slow client: %s", client.id)
				}
			}

		case <-s.quit:
			for client := range s.clients {
				delete(s.clients, client)
				close(client.send)
				s.Store.UnregisterClient(client.id)
			}
			s.Logger.Info("Hub loop stopped, all clients closed")
			return
		}
	}
}

// -----------------------------------------------------------------------------

// Broadcast queues one realtime update for fan-out to all connected clients.
func (s *DashboardServer) Broadcast(update *models.MRealtimeUpdate) {
	s.broadcast <- update
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Warning("Failed to upgrade websocket: %v", err)
		return
	}

	client := &Client{
		id:   uuid.New(),
		hub:  s,
		conn: conn,
		// Buffered channel to prevent blocking the Hub loop
		send: make(chan interface{}, 256),
	}

	s.register <- client

	// Start goroutines for reading/writing
	go client.writePump()
	go client.readPump()
}

// -----------------------------------------------------------------------------
// Client Message Handling
// -----------------------------------------------------------------------------

// HandleClientMessage serves a request_data message: look the requested
// sub-record up in the current snapshot and answer that client only. An
// unknown type falls back to the full snapshot instead of failing.
func (s *DashboardServer) HandleClientMessage(client *Client, message []byte) {
	var req models.MDataRequest
	if err := json.Unmarshal(message, &req); err != nil {
		s.Logger.Warning("Failed to parse client request from %s: %v", client.id, err)
		return
	}

	snapshot, _ := s.Store.Current()
	data, ok := snapshot.Section(req.Type)
	if !ok {
		data = snapshot
	}

	response := &models.MDataResponse{
		Event:     models.EventDataResponse,
		RequestID: req.ID,
		Type:      req.Type,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	// Non-blocking: if this client's buffer is full the broadcast path will
	// evict it soon anyway
	select {
	case client.send <- response:
	default:
		s.Logger.Warning("Dropped data_response for %s: send buffer full", client.id)
	}
}
