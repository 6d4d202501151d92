// Package web exposes the running session over HTTP and a websocket.
// It keeps its own copy of everything it serves, fed through bus handlers,
// so request goroutines never read engine state.
package web

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/coinedu/tradesim/pkg/bus"
	"github.com/coinedu/tradesim/pkg/common"
)

const (
	tradeRetention  = 256
	candleRetention = 512
	alertRetention  = 64
)

type Server struct {
	router   *http.ServeMux
	server   *http.Server
	eventBus *bus.Router
	logger   *zap.Logger

	mu      sync.RWMutex
	state   common.StateSnapshot
	trades  []common.TradeRecord
	candles []common.Candle
	bars    []common.Candle
	alerts  []common.RiskAlert

	upgrader  websocket.Upgrader
	clientsMu sync.Mutex
	clients   map[*websocket.Conn]struct{}
}

func NewServer(port int, eventBus *bus.Router, logger *zap.Logger) *Server {
	s := &Server{
		router:   http.NewServeMux(),
		eventBus: eventBus,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
	s.routes()
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.router,
	}
	return s
}

func (s *Server) routes() {
	// Session state
	s.router.HandleFunc("GET /api/state", s.handleState)

	// History
	s.router.HandleFunc("GET /api/trades", s.handleTrades)
	s.router.HandleFunc("GET /api/candles", s.handleCandles)
	s.router.HandleFunc("GET /api/bars", s.handleBars)
	s.router.HandleFunc("GET /api/alerts", s.handleAlerts)

	// Actions
	s.router.HandleFunc("POST /api/orders", s.handleOrder)
	s.router.HandleFunc("POST /api/controls", s.handleControl)

	// Live updates
	s.router.HandleFunc("GET /ws", s.handleWebsocket)
}

func (s *Server) Start() error {
	s.logger.Info("starting web server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.clientsMu.Lock()
	for conn := range s.clients {
		_ = conn.Close()
	}
	s.clients = make(map[*websocket.Conn]struct{})
	s.clientsMu.Unlock()

	return s.server.Shutdown(ctx)
}
