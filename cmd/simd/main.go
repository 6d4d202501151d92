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
	"github.com/coinedu/tradesim/pkg/data/db/sqlite"
	"github.com/coinedu/tradesim/pkg/engine"
	"github.com/coinedu/tradesim/pkg/market"
	"github.com/coinedu/tradesim/pkg/metrics"
	"github.com/coinedu/tradesim/pkg/middleware"
	"github.com/coinedu/tradesim/pkg/web"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the yaml configuration")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			panic(err)
		}
		cfg = defaultSimdConfig()
	}

	logger := dbg.NewDevLogger()
	defer func() { _ = logger.Sync() }()
	dbg.InitSlog(dbg.ParseSlogLevel(cfg.Logging.Level))

	logger.Info("simd started", zap.Int("port", cfg.Server.Port), zap.Int64("seed", cfg.Market.Seed))
	defer logger.Info("simd finished")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	router := bus.NewRouter(routerEventCapacity)

	var source market.Source
	switch {
	case cfg.Market.ReplayPath != "":
		replayer := market.NewReplayer(cfg.Market.ReplayPath)
		if err := replayer.Open(); err != nil {
			logger.Fatal("unable to open replay file", zap.Error(err))
		}
		defer replayer.Close()
		source = replayer
	case cfg.Market.Model == "gbm":
		rng := rand.New(rand.NewSource(cfg.Market.Seed))
		source = market.NewGBM(rng, cfg.Market.StartPrice,
			cfg.Market.AnnualMu, cfg.Session.AnnualVol, 1.0/365)
	default:
		rng := rand.New(rand.NewSource(cfg.Market.Seed))
		process := market.NewProcess(rng, cfg.Market.StartPrice, cfg.Market.Volatility)
		process.SetDriftBias(cfg.Market.DriftBias)
		source = process
	}

	sim := engine.NewSimulator(router, source, cfg.engineOptions()...)
	clock := engine.NewClock(market.CreateDispatcher(router, source), sim.ClockSpeeds())
	sim.AttachClock(clock)

	monitor := middleware.NewMonitor(monitorFlags)
	telemetry := middleware.NewTelemetry(logger)
	performance := middleware.NewPerformance(logger)
	audit := metrics.NewAudit()
	webServer := web.NewServer(cfg.Server.Port, router, logger)

	aggregator := market.NewAggregator(cfg.Market.BarTicks, webServer.PushBar)
	candleSink := bus.MergeHandlers[common.Candle](sim.OnCandle, webServer.OnCandle, aggregator.OnCandle)
	if cfg.Market.RecordPath != "" {
		recorder, err := market.NewRecorder(cfg.Market.RecordPath)
		if err != nil {
			logger.Fatal("unable to open record file", zap.Error(err))
		}
		defer func() { _ = recorder.Close() }()
		candleSink = bus.MergeHandlers[common.Candle](candleSink, func(_ context.Context, candle common.Candle) {
			if err := recorder.Append(candle); err != nil {
				slog.Warn("candle record failed", "error", err)
			}
		})
	}

	tradeSink := bus.MergeHandlers[common.TradeRecord](audit.OnTrade, webServer.OnTrade)
	positionCloseSink := bus.MergeHandlers[common.Position](audit.OnPositionClosed)
	if cfg.Journal.Path != "" {
		db, err := sqlite.Open(ctx, cfg.Journal.Path)
		if err != nil {
			logger.Fatal("unable to open journal database", zap.Error(err))
		}
		defer func() { _ = db.Close() }()

		journal := middleware.NewJournal(db, cfg.Journal.SessionId)
		tradeSink = journal.WithTrade(tradeSink)
		positionCloseSink = journal.WithPositionClosed(positionCloseSink)
	}

	riskAlertSink := bus.MergeHandlers[common.RiskAlert](webServer.OnRiskAlert)
	if cfg.Pushover.User != "" && cfg.Pushover.Token != "" {
		pushover := middleware.NewPushover(cfg.Pushover.User, cfg.Pushover.Token, cfg.Pushover.Device)
		riskAlertSink = pushover.WithRiskAlert(riskAlertSink)
		positionCloseSink = pushover.WithPositionClosed(positionCloseSink)
	}

	router.PriceHandler = middleware.Chain(telemetry.WithPrice, performance.WithPrice)(sim.OnPrice)
	router.CandleHandler = middleware.Chain(telemetry.WithCandle, performance.WithCandle)(candleSink)
	router.AccountHandler = telemetry.WithAccount(middleware.NoopAccountHdl)
	router.EquityHandler = telemetry.WithEquity(audit.OnEquity)
	router.PositionOpenHandler = middleware.Chain(monitor.WithPositionOpened, telemetry.WithPositionOpened)(middleware.NoopPosOpnHdl)
	router.PositionCloseHandler = middleware.Chain(monitor.WithPositionClosed, telemetry.WithPositionClosed)(positionCloseSink)
	router.PositionUpdateHandler = telemetry.WithPositionUpdated(middleware.NoopPosUpdHdl)
	router.OrderHandler = middleware.Chain(telemetry.WithOrder, performance.WithOrder)(sim.OnOrder)
	router.OrderRejectedHandler = monitor.WithOrderRejected(middleware.NoopOrderRjctHdl)
	router.OrderAcceptedHandler = middleware.NoopOrderAccHdl
	router.TradeHandler = telemetry.WithTrade(tradeSink)
	router.RiskAlertHandler = middleware.Chain(monitor.WithRiskAlert, telemetry.WithRiskAlert)(riskAlertSink)
	router.BotActionHandler = telemetry.WithBotAction(middleware.NoopBotActionHdl)
	router.ControlHandler = performance.WithControl(sim.OnControl)
	router.SnapshotHandler = webServer.OnSnapshot

	go router.Exec(ctx)
	go func() {
		if err := clock.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			if errors.Is(err, market.ErrEof) {
				logger.Info("market source exhausted")
			} else {
				logger.Warn("clock stopped", zap.Error(err))
			}
		}
		cancel()
	}()
	go func() {
		if err := webServer.Start(); err != nil {
			logger.Error("web server failed", zap.Error(err))
			cancel()
		}
	}()

	defer func() {
		router.PrintStatistics()
		telemetry.PrintStatistics()
		performance.PrintStatistics(telemetry)
		audit.GenerateReport().Print()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := webServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("web server shutdown failed", zap.Error(err))
		}
	}()

	if err := <-router.Done(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("something unexpected happened", zap.Error(err))
	}
}
