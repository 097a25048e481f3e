package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"trading-dashboard/src/helpers"
	"trading-dashboard/src/logger"
	"trading-dashboard/src/models"
	"trading-dashboard/src/state"
	"trading-dashboard/src/utils"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// DashboardServer
// -----------------------------------------------------------------------------

// DashboardServer is the subscription gateway: it owns the WebSocket hub on
// one port and the read-only REST API on another. All state reads go through
// the shared Store; the hub loop is the single owner of the client set.
type DashboardServer struct {
	Config    *models.MConfig
	Logger    *logger.Logger
	Store     *state.Store
	Scheduler *utils.MarketScheduler

	wsEngine  *gin.Engine
	apiEngine *gin.Engine
	wsServer  *http.Server
	apiServer *http.Server

	// WebSocket clients
	clients    map[*Client]struct{}
	broadcast  chan *models.MRealtimeUpdate // Buffered queue feeding the hub loop
	register   chan *Client
	unregister chan *Client
	quit       chan struct{}
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewDashboardServer(cfg *models.MConfig, log *logger.Logger, store *state.Store, sched *utils.MarketScheduler) *DashboardServer {
	// Set Gin mode
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &DashboardServer{
		Config:    cfg,
		Logger:    log,
		Store:     store,
		Scheduler: sched,
		wsEngine:  gin.Default(),
		apiEngine: gin.Default(),
		clients:   make(map[*Client]struct{}),
		// Buffered so a tick never blocks on the hub loop
		broadcast:  make(chan *models.MRealtimeUpdate, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		quit:       make(chan struct{}),
	}

	s.apiEngine.Use(corsMiddleware())
	s.setupRoutes()

	s.wsServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.WSPort),
		Handler: s.wsEngine,
	}
	s.apiServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.HTTPPort),
		Handler: s.apiEngine,
	}

	return s
}

// -----------------------------------------------------------------------------

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *DashboardServer) setupRoutes() {
	// REST API endpoints
	s.apiEngine.GET("/", s.getRoot)
	s.apiEngine.GET("/api/status", s.getStatus)
	s.apiEngine.GET("/api/data", s.getData)
	s.apiEngine.GET("/api/account", s.getAccount)
	s.apiEngine.GET("/health", s.getHealth)

	// WebSocket endpoint on its own listener
	s.wsEngine.GET("/ws", s.handleWebSocket)
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

// Start runs the hub loop and both listeners, blocking until one of them
// fails or the server is stopped. A clean Shutdown returns nil.
func (s *DashboardServer) Start() error {
	s.Logger.Info("Starting websocket server on %s", s.wsServer.Addr)
	s.Logger.Info("Starting http api server on %s", s.apiServer.Addr)

	go s.handleWebsockets()

	errCh := make(chan error, 2)
	go func() { errCh <- s.wsServer.ListenAndServe() }()
	go func() { errCh <- s.apiServer.ListenAndServe() }()

	err := <-errCh
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return helpers.NewTransportError("server listener failed", err)
}

// -----------------------------------------------------------------------------

// Stop shuts both listeners down, then tells the hub loop to close every
// client channel.
func (s *DashboardServer) Stop(ctx context.Context) error {
	var firstErr error
	if err := s.wsServer.Shutdown(ctx); err != nil {
		firstErr = err
	}
	if err := s.apiServer.Shutdown(ctx); err != nil && firstErr == nil {
		firstErr = err
	}

	close(s.quit)
	return firstErr
}
