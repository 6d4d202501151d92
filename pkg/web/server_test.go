package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/coinedu/tradesim/pkg/bus"
	"github.com/coinedu/tradesim/pkg/common"
	"github.com/coinedu/tradesim/pkg/utility/fixed"
)

func newTestServer(capacity int) (*Server, *bus.Router, *httptest.Server) {
	eventBus := bus.NewRouter(capacity)
	s := NewServer(0, eventBus, zap.NewNop())
	return s, eventBus, httptest.NewServer(s.router)
}

func TestServer_StateEndpoint(t *testing.T) {
	s, _, ts := newTestServer(16)
	defer ts.Close()

	s.OnSnapshot(context.Background(), common.StateSnapshot{
		Tick:  7,
		Price: fixed.FromInt64(65_000, 0),
	})

	resp, err := http.Get(ts.URL + "/api/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var state common.StateSnapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	assert.Equal(t, int64(7), state.Tick)
	assert.True(t, fixed.FromInt64(65_000, 0).Eq(state.Price))
}

func TestServer_TradeHistoryIsBounded(t *testing.T) {
	s, _, ts := newTestServer(16)
	defer ts.Close()

	ctx := context.Background()
	for i := int64(0); i < tradeRetention+10; i++ {
		s.OnTrade(ctx, common.TradeRecord{Tick: i})
	}

	resp, err := http.Get(ts.URL + "/api/trades")
	require.NoError(t, err)
	defer resp.Body.Close()

	var trades []common.TradeRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&trades))
	require.Len(t, trades, tradeRetention)
	// retention keeps the newest entries
	assert.Equal(t, int64(10), trades[0].Tick)
}

func TestServer_OrderEndpointPostsToBus(t *testing.T) {
	_, eventBus, ts := newTestServer(16)
	defer ts.Close()

	var orders []common.Order
	eventBus.OrderHandler = func(_ context.Context, o common.Order) { orders = append(orders, o) }

	body := `{"command": 0, "side": 0, "type": 0, "amount": "1.5"}`
	resp, err := http.Post(ts.URL+"/api/orders", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	stop := errors.New("stop")
	eventBus.ExecLoop(context.Background(), func(context.Context) error { return stop })
	require.ErrorIs(t, <-eventBus.Done(), stop)

	require.Len(t, orders, 1)
	assert.Equal(t, common.OrderCommandSpotTrade, orders[0].Command)
	assert.True(t, fixed.FromInt64(15, 1).Eq(orders[0].Amount))
	assert.Equal(t, webComponentName, orders[0].Source)
}

func TestServer_OrderEndpointRejectsBadJSON(t *testing.T) {
	_, _, ts := newTestServer(16)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/orders", "application/json", strings.NewReader("{nope"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_ControlEndpointBackpressure(t *testing.T) {
	_, eventBus, ts := newTestServer(1)
	defer ts.Close()

	// fill the queue so the post cannot be accepted
	require.NoError(t, eventBus.Post(bus.ControlEvent, common.Control{}))

	resp, err := http.Post(ts.URL+"/api/controls", "application/json", strings.NewReader(`{"command": 0}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestServer_WebsocketReceivesState(t *testing.T) {
	s, _, ts := newTestServer(16)
	defer ts.Close()

	s.OnSnapshot(context.Background(), common.StateSnapshot{Tick: 3})

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	// the server pushes the current state on connect, before registering
	// the conn for broadcasts
	var state common.StateSnapshot
	require.NoError(t, conn.ReadJSON(&state))
	assert.Equal(t, int64(3), state.Tick)

	// and again on every snapshot once registered
	require.Eventually(t, func() bool {
		s.clientsMu.Lock()
		defer s.clientsMu.Unlock()
		return len(s.clients) == 1
	}, time.Second, 5*time.Millisecond)
	s.OnSnapshot(context.Background(), common.StateSnapshot{Tick: 4})
	require.NoError(t, conn.ReadJSON(&state))
	assert.Equal(t, int64(4), state.Tick)
}
