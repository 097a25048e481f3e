package server

import (
	"time"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// REST Route Handlers (stateless, read-only)
// -----------------------------------------------------------------------------

func (s *DashboardServer) getRoot(c *gin.Context) {
	_, lastUpdate := s.Store.Current()
	c.JSON(200, gin.H{
		"message":          "Trading Dashboard Server API",
		"status":           "online",
		"clientsConnected": s.Store.ClientCount(),
		"lastUpdate":       lastUpdate.UTC().Format(time.RFC3339),
	})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getStatus(c *gin.Context) {
	_, lastUpdate := s.Store.Current()
	c.JSON(200, gin.H{
		"status":           "online",
		"clientsConnected": s.Store.ClientCount(),
		"lastUpdate":       lastUpdate.UTC().Format(time.RFC3339),
		"uptime":           s.Store.Uptime(),
		"marketOpen":       s.Scheduler.IsMarketOpen(),
	})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getData(c *gin.Context) {
	snapshot, lastUpdate := s.Store.Current()
	c.JSON(200, gin.H{
		"data":      snapshot,
		"timestamp": lastUpdate.UTC().Format(time.RFC3339),
	})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getAccount(c *gin.Context) {
	snapshot, lastUpdate := s.Store.Current()
	c.JSON(200, gin.H{
		"account":   snapshot.Account,
		"timestamp": lastUpdate.UTC().Format(time.RFC3339),
	})
}

// -----------------------------------------------------------------------------

// No degraded state is modeled: the process either answers healthy or is gone.
func (s *DashboardServer) getHealth(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    s.Store.Uptime(),
	})
}
