package bus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/coinedu/tradesim/pkg/common"
)

type event struct {
	id   EventId
	data interface{}
}

type Router struct {
	// Channels
	done   chan error
	events chan event

	// Handlers
	PriceHandler          PriceEventHandler
	CandleHandler         CandleEventHandler
	AccountHandler        AccountEventHandler
	EquityHandler         EquityEventHandler
	PositionOpenHandler   PositionOpenEventHandler
	PositionCloseHandler  PositionCloseEventHandler
	PositionUpdateHandler PositionUpdateEventHandler
	OrderHandler          OrderEventHandler
	OrderRejectedHandler  OrderRejectedEventHandler
	OrderAcceptedHandler  OrderAcceptedEventHandler
	TradeHandler          TradeEventHandler
	RiskAlertHandler      RiskAlertEventHandler
	BotActionHandler      BotActionEventHandler
	ControlHandler        ControlEventHandler
	SnapshotHandler       SnapshotEventHandler

	// Statistics
	runTime       time.Duration
	postCount     uint64
	postFails     uint64
	dispatchCount uint64
	dispatchFails uint64
}

func NewRouter(eventCapacity int) *Router {
	return &Router{
		done:   make(chan error, 1),
		events: make(chan event, eventCapacity),
	}
}

func (r *Router) Post(id EventId, data interface{}) error {
	select {
	case r.events <- event{id, data}:
		r.postCount++
		return nil
	default:
		r.postFails++
		return errors.New("event capacity reached")
	}
}

func (r *Router) Exec(ctx context.Context) {
	r.resetStatistics()

	start := time.Now()
	defer func() {
		r.runTime += time.Since(start)
	}()

	for {
		select {
		case <-ctx.Done():
			r.done <- ctx.Err()
			return
		case ev := <-r.events:
			r.dispatchCount++
			if err := r.dispatch(ctx, ev); err != nil {
				r.dispatchFails++
				slog.Warn("dispatch failed", "error", err, "event", ev)
			}
		}
	}
}

// ExecLoop drains events and calls doOnceCb whenever the queue is empty.
// Used by fast-forward runs where the callback feeds the next tick.
func (r *Router) ExecLoop(ctx context.Context, doOnceCb func(context.Context) error) {
	r.resetStatistics()

	start := time.Now()
	defer func() {
		r.runTime += time.Since(start)
	}()

	for {
		select {
		case <-ctx.Done():
			r.done <- ctx.Err()
			return
		case ev := <-r.events:
			r.dispatchCount++
			if err := r.dispatch(ctx, ev); err != nil {
				r.dispatchFails++
				slog.Warn("dispatch failed", "error", err, "event", ev)
			}
		default:
			if err := doOnceCb(ctx); err != nil {
				r.done <- err
				return
			}
		}
	}
}

func (r *Router) Done() <-chan error {
	return r.done
}

func (r *Router) PrintStatistics() {
	slog.Info("router statistics",
		"run_time", r.runTime,
		"post_count", r.postCount,
		"post_fails", r.postFails,
		"dispatch_count", r.dispatchCount,
		"dispatch_fails", r.dispatchFails,
		"throughput", float64(r.postCount)/r.runTime.Seconds())
}

func (r *Router) resetStatistics() {
	r.runTime = 0
	r.dispatchCount = 0
	r.dispatchFails = 0
	r.postCount = 0
	r.postFails = 0
}

func (r *Router) dispatch(ctx context.Context, ev event) error {
	switch ev.id {
	case PriceEvent:
		price, ok := ev.data.(common.PricePoint)
		if !ok {
			return errors.New("invalid type assertion for price event")
		}
		if r.PriceHandler != nil {
			r.PriceHandler(ctx, price)
		} else {
			slog.Debug("price handler is nil")
		}
	case CandleEvent:
		candle, ok := ev.data.(common.Candle)
		if !ok {
			return errors.New("invalid type assertion for candle event")
		}
		if r.CandleHandler != nil {
			r.CandleHandler(ctx, candle)
		} else {
			slog.Debug("candle handler is nil")
		}
	case AccountEvent:
		account, ok := ev.data.(common.AccountSnapshot)
		if !ok {
			return errors.New("invalid type assertion for account event")
		}
		if r.AccountHandler != nil {
			r.AccountHandler(ctx, account)
		} else {
			slog.Debug("account handler is nil")
		}
	case EquityEvent:
		eq, ok := ev.data.(common.Equity)
		if !ok {
			return errors.New("invalid type assertion for equity event")
		}
		if r.EquityHandler != nil {
			r.EquityHandler(ctx, eq)
		} else {
			slog.Debug("equity handler is nil")
		}
	case PositionOpenEvent:
		pos, ok := ev.data.(common.Position)
		if !ok {
			return errors.New("invalid type assertion for position open event")
		}
		if r.PositionOpenHandler != nil {
			r.PositionOpenHandler(ctx, pos)
		} else {
			slog.Debug("position open handler is nil")
		}
	case PositionCloseEvent:
		pos, ok := ev.data.(common.Position)
		if !ok {
			return errors.New("invalid type assertion for position close event")
		}
		if r.PositionCloseHandler != nil {
			r.PositionCloseHandler(ctx, pos)
		} else {
			slog.Debug("position close handler is nil")
		}
	case PositionUpdateEvent:
		pos, ok := ev.data.(common.Position)
		if !ok {
			return errors.New("invalid type assertion for position update event")
		}
		if r.PositionUpdateHandler != nil {
			r.PositionUpdateHandler(ctx, pos)
		} else {
			slog.Debug("position update handler is nil")
		}
	case OrderEvent:
		order, ok := ev.data.(common.Order)
		if !ok {
			return errors.New("invalid type assertion for order event")
		}
		if r.OrderHandler != nil {
			r.OrderHandler(ctx, order)
		} else {
			slog.Debug("order handler is nil")
		}
	case OrderRejectedEvent:
		rejected, ok := ev.data.(common.OrderRejected)
		if !ok {
			return errors.New("invalid type assertion for order rejected event")
		}
		if r.OrderRejectedHandler != nil {
			r.OrderRejectedHandler(ctx, rejected)
		} else {
			slog.Debug("order rejected handler is nil")
		}
	case OrderAcceptedEvent:
		accepted, ok := ev.data.(common.OrderAccepted)
		if !ok {
			return errors.New("invalid type assertion for order accepted event")
		}
		if r.OrderAcceptedHandler != nil {
			r.OrderAcceptedHandler(ctx, accepted)
		} else {
			slog.Debug("order accepted handler is nil")
		}
	case TradeEvent:
		trade, ok := ev.data.(common.TradeRecord)
		if !ok {
			return errors.New("invalid type assertion for trade event")
		}
		if r.TradeHandler != nil {
			r.TradeHandler(ctx, trade)
		} else {
			slog.Debug("trade handler is nil")
		}
	case RiskAlertEvent:
		alert, ok := ev.data.(common.RiskAlert)
		if !ok {
			return errors.New("invalid type assertion for risk alert event")
		}
		if r.RiskAlertHandler != nil {
			r.RiskAlertHandler(ctx, alert)
		} else {
			slog.Debug("risk alert handler is nil")
		}
	case BotActionEvent:
		action, ok := ev.data.(common.BotAction)
		if !ok {
			return errors.New("invalid type assertion for bot action event")
		}
		if r.BotActionHandler != nil {
			r.BotActionHandler(ctx, action)
		} else {
			slog.Debug("bot action handler is nil")
		}
	case ControlEvent:
		control, ok := ev.data.(common.Control)
		if !ok {
			return errors.New("invalid type assertion for control event")
		}
		if r.ControlHandler != nil {
			r.ControlHandler(ctx, control)
		} else {
			slog.Debug("control handler is nil")
		}
	case SnapshotEvent:
		snapshot, ok := ev.data.(common.StateSnapshot)
		if !ok {
			return errors.New("invalid type assertion for snapshot event")
		}
		if r.SnapshotHandler != nil {
			r.SnapshotHandler(ctx, snapshot)
		} else {
			slog.Debug("snapshot handler is nil")
		}
	default:
		return fmt.Errorf("unsupported event id: %v", ev.id)
	}
	return nil
}
