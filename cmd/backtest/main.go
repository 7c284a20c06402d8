package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"tickforge/examples/strategy"
	"tickforge/internal/dbg"
	"tickforge/pkg/bus"
	"tickforge/pkg/datasource"
	"tickforge/pkg/datasource/duckdb"
	"tickforge/pkg/datasource/historical"
	"tickforge/pkg/datasource/stream"
	"tickforge/pkg/datasource/synthetic"
	"tickforge/pkg/engine"
	"tickforge/pkg/exchange"
	"tickforge/pkg/exchange/broker"
	"tickforge/pkg/middleware"
	"tickforge/pkg/simulation"
)

const version = "0.3.0"

// tickFeed bundles a tick source with its end-of-stream sentinel so the
// main loop can tell a clean drain from a real failure.
type tickFeed struct {
	source datasource.TickSource
	eof    error
	close  func() error
}

func main() {
	logger := dbg.NewDevLogger()
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info(fmt.Sprintf("tickforge backtest %s", version))
	defer logger.Info("done")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		logger.Fatal("error loading configuration", zap.Error(err))
	}

	feed, err := buildTickFeed(ctx, cfg)
	if err != nil {
		logger.Fatal("error opening tick source", zap.Error(err))
	}
	defer func() {
		if err := feed.close(); err != nil {
			logger.Warn("error closing tick source", zap.Error(err))
		}
	}()

	router := bus.NewRouter(cfg.RouterEventCapacity)
	monitor := middleware.NewMonitor(middleware.MonitorPositionsOpened | middleware.MonitorPositionsClosed | middleware.MonitorTrades)
	telemetry := middleware.NewTelemetry(logger)

	symbols := exchange.CreateSymbolTestStore()
	adapter := broker.NewMock(cfg.BrokerMode, cfg.BrokerFillDelay)
	executor := engine.NewExecutor(symbols, adapter, cfg.engineConfig(),
		engine.WithRouter(router),
		engine.WithPendingTimeout(cfg.TimeoutTicks),
		engine.WithEnabledOrderTypes(cfg.EnabledOrderTypes...))

	aggregator := simulation.NewAggregator(cfg.BarPeriod, router)
	runner := simulation.NewRunner(executor, aggregator, cfg.SnapshotInterval)
	advisor := strategy.NewMeanReversion(executor, cfg.Symbol, 20, symbols.MustGet(cfg.Symbol).VolumeMin)

	// engine first so the advisor always sees post-resolution state
	router.TickHandler = telemetry.WithTick(bus.MergeHandlers(runner.OnTick, advisor.OnTick))
	router.BarHandler = telemetry.WithBar(advisor.OnBar)
	router.BalanceHandler = telemetry.WithBalance(middleware.NoopBalanceHdl)
	router.EquityHandler = telemetry.WithEquity(middleware.NoopEquityHdl)
	router.PositionOpenHandler = telemetry.WithPositionOpen(monitor.WithPositionOpen(middleware.NoopPosOpnHdl))
	router.PositionCloseHandler = telemetry.WithPositionClose(monitor.WithPositionClose(middleware.NoopPosClsHdl))
	router.PositionUpdateHandler = telemetry.WithPositionUpdate(middleware.NoopPosUpdHdl)
	router.OrderAcceptanceHandler = telemetry.WithOrderAcceptance(middleware.NoopOrderAccHdl)
	router.OrderRejectionHandler = telemetry.WithOrderRejection(monitor.WithOrderRejection(middleware.NoopOrderRjctHdl))
	router.TradeHandler = telemetry.WithTrade(monitor.WithTrade(middleware.NoopTradeHdl))

	go router.ExecLoop(ctx, datasource.CreateTickDispatcher(router, feed.source))

	if err := <-router.Done(); err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, feed.eof) {
			logger.Error("error during backtest", zap.Error(err))
		}
	}

	report := runner.Finish()
	report.Print(logger)
	telemetry.PrintStatistics()
	router.Statistics().Print()
}

func buildTickFeed(ctx context.Context, cfg config) (tickFeed, error) {
	noClose := func() error { return nil }

	switch cfg.Data.Source {
	case "synthetic":
		rng := rand.New(rand.NewSource(cfg.Data.SyntheticSeed))
		generator := synthetic.NewEURUSDTickGenerator(cfg.Symbol, rng,
			cfg.Data.From, cfg.Data.SyntheticSpan, cfg.Data.SyntheticMu, cfg.Data.SyntheticSigma)
		return tickFeed{source: generator, eof: synthetic.ErrEof, close: noClose}, nil

	case "binary":
		source, err := historical.Open[historical.BinaryTick](cfg.Data.Path)
		if err != nil {
			return tickFeed{}, err
		}
		reader := historical.NewTickReader(source, cfg.Symbol, cfg.Data.From, cfg.Data.To)
		return tickFeed{source: reader, eof: historical.ErrEof, close: source.Close}, nil

	case "duckdb":
		reader, err := duckdb.OpenTickReader(ctx, cfg.Data.Path, cfg.Data.Table, cfg.Symbol, cfg.Data.From, cfg.Data.To)
		if err != nil {
			return tickFeed{}, err
		}
		return tickFeed{source: reader, eof: duckdb.ErrEof, close: reader.Close}, nil

	case "stream":
		source, err := stream.Dial(ctx, cfg.Data.URL, cfg.Symbol, 30*time.Second)
		if err != nil {
			return tickFeed{}, err
		}
		return tickFeed{source: source, eof: stream.ErrEof, close: source.Close}, nil

	default:
		return tickFeed{}, fmt.Errorf("unknown data source %q", cfg.Data.Source)
	}
}
