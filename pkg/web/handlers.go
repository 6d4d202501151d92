package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/coinedu/tradesim/pkg/bus"
	"github.com/coinedu/tradesim/pkg/common"
	"github.com/coinedu/tradesim/pkg/utility"
)

const webComponentName = "web.server"

// OnSnapshot stores the latest read model and pushes it to every websocket
// client. Runs on the router goroutine; the broadcast itself is non-blocking
// because slow clients are dropped.
func (s *Server) OnSnapshot(_ context.Context, snapshot common.StateSnapshot) {
	s.mu.Lock()
	s.state = snapshot
	s.mu.Unlock()

	s.broadcast(snapshot)
}

func (s *Server) OnTrade(_ context.Context, trade common.TradeRecord) {
	s.mu.Lock()
	s.trades = append(s.trades, trade)
	if len(s.trades) > tradeRetention {
		s.trades = s.trades[len(s.trades)-tradeRetention:]
	}
	s.mu.Unlock()
}

func (s *Server) OnCandle(_ context.Context, candle common.Candle) {
	s.mu.Lock()
	s.candles = append(s.candles, candle)
	if len(s.candles) > candleRetention {
		s.candles = s.candles[len(s.candles)-candleRetention:]
	}
	s.mu.Unlock()
}

// PushBar receives completed coarse bars from the aggregator.
func (s *Server) PushBar(bar common.Candle) {
	s.mu.Lock()
	s.bars = append(s.bars, bar)
	if len(s.bars) > candleRetention {
		s.bars = s.bars[len(s.bars)-candleRetention:]
	}
	s.mu.Unlock()
}

func (s *Server) OnRiskAlert(_ context.Context, alert common.RiskAlert) {
	s.mu.Lock()
	s.alerts = append(s.alerts, alert)
	if len(s.alerts) > alertRetention {
		s.alerts = s.alerts[len(s.alerts)-alertRetention:]
	}
	s.mu.Unlock()
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	state := s.state
	s.mu.RUnlock()

	s.writeJSON(w, state)
}

func (s *Server) handleTrades(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	trades := append([]common.TradeRecord(nil), s.trades...)
	s.mu.RUnlock()

	s.writeJSON(w, trades)
}

func (s *Server) handleCandles(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	candles := append([]common.Candle(nil), s.candles...)
	s.mu.RUnlock()

	s.writeJSON(w, candles)
}

func (s *Server) handleBars(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	bars := append([]common.Candle(nil), s.bars...)
	s.mu.RUnlock()

	s.writeJSON(w, bars)
}

func (s *Server) handleAlerts(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	alerts := append([]common.RiskAlert(nil), s.alerts...)
	s.mu.RUnlock()

	s.writeJSON(w, alerts)
}

// handleOrder accepts the order for dispatch, nothing more. Validation
// happens on the router goroutine and failures come back as rejection
// events over the websocket.
func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	var order common.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	order.Source = webComponentName
	order.ExecutionId = utility.GetExecutionID()
	order.TraceID = utility.CreateTraceID()
	order.TimeStamp = time.Now()

	if err := s.eventBus.Post(bus.OrderEvent, order); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleControl(w http.ResponseWriter, r *http.Request) {
	var control common.Control
	if err := json.NewDecoder(r.Body).Decode(&control); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	control.Source = webComponentName
	control.ExecutionId = utility.GetExecutionID()
	control.TraceID = utility.CreateTraceID()
	control.TimeStamp = time.Now()

	if err := s.eventBus.Post(bus.ControlEvent, control); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	// The initial push happens before the client is registered. Once the
	// conn is in s.clients every write goes through broadcast under
	// clientsMu; writing here afterwards would race it.
	s.mu.RLock()
	state := s.state
	s.mu.RUnlock()
	if err := conn.WriteJSON(state); err != nil {
		s.logger.Debug("initial state push failed", zap.Error(err))
		_ = conn.Close()
		return
	}

	s.clientsMu.Lock()
	s.clients[conn] = struct{}{}
	s.clientsMu.Unlock()

	// Reader loop only detects disconnects; clients never send payloads.
	go func() {
		defer func() {
			s.clientsMu.Lock()
			delete(s.clients, conn)
			s.clientsMu.Unlock()
			_ = conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) broadcast(snapshot common.StateSnapshot) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	for conn := range s.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(time.Second))
		if err := conn.WriteJSON(snapshot); err != nil {
			delete(s.clients, conn)
			_ = conn.Close()
		}
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("response encode failed", zap.Error(err))
	}
}
