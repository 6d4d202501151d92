package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/coinedu/tradesim/internal/dbg"
	"github.com/coinedu/tradesim/pkg/bus"
	"github.com/coinedu/tradesim/pkg/common"
	"github.com/coinedu/tradesim/pkg/engine"
	"github.com/coinedu/tradesim/pkg/market"
	"github.com/coinedu/tradesim/pkg/metrics"
	"github.com/coinedu/tradesim/pkg/middleware"
	"github.com/coinedu/tradesim/pkg/utility/fixed"
)

const routerEventCapacity = 1000

// batch runs a whole session as fast as the queue drains: no clock, no web
// surface, a strategy driving every tick and a report at the end.
func main() {
	var (
		ticks      = flag.Int64("ticks", 10_000, "number of ticks to simulate")
		seed       = flag.Int64("seed", time.Now().UnixNano(), "price process seed")
		stratKind  = flag.String("strategy", "dca", "strategy kind: grid, dca, crossover, rsi")
		startPrice = flag.Float64("start-price", 65_000, "initial price")
		volatility = flag.Float64("volatility", 0.01, "per-tick volatility")
		cash       = flag.Float64("cash", 10_000, "initial cash")
		logLevel   = flag.String("log-level", "warn", "slog level: debug, info, warn, error")
	)
	flag.Parse()

	logger := dbg.NewProdLogger()
	defer func() { _ = logger.Sync() }()
	dbg.InitSlog(dbg.ParseSlogLevel(*logLevel))

	logger.Info("batch started",
		zap.Int64("ticks", *ticks),
		zap.Int64("seed", *seed),
		zap.String("strategy", *stratKind))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	router := bus.NewRouter(routerEventCapacity)

	rng := rand.New(rand.NewSource(*seed))
	process := market.NewProcess(rng, *startPrice, *volatility)
	source := market.NewLimited(process, *ticks)

	sim := engine.NewSimulator(router, source,
		engine.WithInitialCash(fixed.FromFloat64(*cash)))

	telemetry := middleware.NewTelemetry(logger)
	audit := metrics.NewAudit()

	router.PriceHandler = telemetry.WithPrice(sim.OnPrice)
	router.CandleHandler = sim.OnCandle
	router.EquityHandler = audit.OnEquity
	router.PositionCloseHandler = audit.OnPositionClosed
	router.OrderHandler = sim.OnOrder
	router.OrderRejectedHandler = middleware.NoopOrderRjctHdl
	router.OrderAcceptedHandler = middleware.NoopOrderAccHdl
	router.TradeHandler = audit.OnTrade
	router.ControlHandler = sim.OnControl

	var stratParams map[string]fixed.Point
	if *stratKind == "grid" {
		// a band of ±10% around the start keeps the default grid in play
		stratParams = map[string]fixed.Point{
			"lower": fixed.FromFloat64(*startPrice * 0.9),
			"upper": fixed.FromFloat64(*startPrice * 1.1),
		}
	}

	// Queued before the loop starts, so they dispatch ahead of the first tick.
	mustPost(router, bus.ControlEvent, common.Control{
		Command:        common.ControlSetStrategy,
		Strategy:       *stratKind,
		StrategyParams: stratParams,
	})
	mustPost(router, bus.ControlEvent, common.Control{Command: common.ControlToggleBot, BotEnabled: true})

	go router.ExecLoop(ctx, market.CreateDispatcher(router, source))

	defer func() {
		router.PrintStatistics()
		telemetry.PrintStatistics()
		audit.GenerateReport().Print()
	}()

	if err := <-router.Done(); err != nil &&
		!errors.Is(err, market.ErrEof) && !errors.Is(err, context.Canceled) {
		logger.Fatal("something unexpected happened", zap.Error(err))
	}
}

func mustPost(router *bus.Router, id bus.EventId, data interface{}) {
	if err := router.Post(id, data); err != nil {
		slog.Error("initial control post failed", "error", err)
		os.Exit(1)
	}
}
