package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"tickforge/pkg/common"
	"tickforge/pkg/engine"
	"tickforge/pkg/engine/latency"
	"tickforge/pkg/exchange/broker"
	"tickforge/pkg/utility/fixed"
)

type dataConfig struct {
	Source string // synthetic, binary, duckdb or stream
	Path   string
	Table  string
	URL    string
	From   time.Time
	To     time.Time

	SyntheticSeed  int64
	SyntheticMu    float64
	SyntheticSigma float64
	SyntheticSpan  time.Duration
}

type config struct {
	Symbol              string
	RouterEventCapacity int
	BarPeriod           time.Duration
	SnapshotInterval    time.Duration

	Data dataConfig

	AccountCurrency string
	StartBalance    fixed.Point

	BrokerMode      broker.MockMode
	BrokerFillDelay int64

	TimeoutTicks      int64
	EnabledOrderTypes []common.OrderType
	Latency           latency.Config
}

func loadConfig() (config, error) {
	v := viper.New()

	v.SetDefault("symbol", "EURUSD")
	v.SetDefault("router.event_capacity", 256)
	v.SetDefault("bar.period", "1m")
	v.SetDefault("audit.snapshot_interval", "1h")

	v.SetDefault("data.source", "synthetic")
	v.SetDefault("data.path", "")
	v.SetDefault("data.table", "ticks")
	v.SetDefault("data.url", "")
	v.SetDefault("data.from", "2024-01-01T00:00:00Z")
	v.SetDefault("data.to", "2024-12-31T23:59:59Z")
	v.SetDefault("data.synthetic.seed", 42)
	v.SetDefault("data.synthetic.mu", 0.02)
	v.SetDefault("data.synthetic.sigma", 0.08)
	v.SetDefault("data.synthetic.span", "24h")

	v.SetDefault("account.currency", "USD")
	v.SetDefault("account.balance", "10000")

	v.SetDefault("broker.mode", "instant")
	v.SetDefault("broker.fill_delay_ticks", 2)

	v.SetDefault("engine.timeout_ticks", 5000)
	v.SetDefault("engine.order_types", []string{"market", "limit", "stop", "stop-limit"})
	v.SetDefault("engine.latency.api_seed", 1)
	v.SetDefault("engine.latency.execution_seed", 2)
	v.SetDefault("engine.latency.api_min_ticks", 0)
	v.SetDefault("engine.latency.api_max_ticks", 3)
	v.SetDefault("engine.latency.exec_min_ticks", 0)
	v.SetDefault("engine.latency.exec_max_ticks", 2)

	v.SetConfigName("backtest")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.SetEnvPrefix("TICKFORGE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config{}, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	balance, err := fixed.FromString(v.GetString("account.balance"))
	if err != nil {
		return config{}, fmt.Errorf("invalid account balance: %w", err)
	}

	mode, err := parseBrokerMode(v.GetString("broker.mode"))
	if err != nil {
		return config{}, err
	}

	from, err := time.Parse(time.RFC3339, v.GetString("data.from"))
	if err != nil {
		return config{}, fmt.Errorf("invalid data.from: %w", err)
	}
	to, err := time.Parse(time.RFC3339, v.GetString("data.to"))
	if err != nil {
		return config{}, fmt.Errorf("invalid data.to: %w", err)
	}

	orderTypes, err := parseOrderTypes(v.GetStringSlice("engine.order_types"))
	if err != nil {
		return config{}, err
	}

	return config{
		Symbol:              v.GetString("symbol"),
		RouterEventCapacity: v.GetInt("router.event_capacity"),
		BarPeriod:           v.GetDuration("bar.period"),
		SnapshotInterval:    v.GetDuration("audit.snapshot_interval"),
		Data: dataConfig{
			Source:         v.GetString("data.source"),
			Path:           v.GetString("data.path"),
			Table:          v.GetString("data.table"),
			URL:            v.GetString("data.url"),
			From:           from,
			To:             to,
			SyntheticSeed:  v.GetInt64("data.synthetic.seed"),
			SyntheticMu:    v.GetFloat64("data.synthetic.mu"),
			SyntheticSigma: v.GetFloat64("data.synthetic.sigma"),
			SyntheticSpan:  v.GetDuration("data.synthetic.span"),
		},
		AccountCurrency:   v.GetString("account.currency"),
		StartBalance:      balance,
		BrokerMode:        mode,
		BrokerFillDelay:   v.GetInt64("broker.fill_delay_ticks"),
		TimeoutTicks:      v.GetInt64("engine.timeout_ticks"),
		EnabledOrderTypes: orderTypes,
		Latency: latency.Config{
			APISeed:       v.GetInt64("engine.latency.api_seed"),
			ExecutionSeed: v.GetInt64("engine.latency.execution_seed"),
			APIMinTicks:   v.GetInt64("engine.latency.api_min_ticks"),
			APIMaxTicks:   v.GetInt64("engine.latency.api_max_ticks"),
			ExecMinTicks:  v.GetInt64("engine.latency.exec_min_ticks"),
			ExecMaxTicks:  v.GetInt64("engine.latency.exec_max_ticks"),
		},
	}, nil
}

func (c config) engineConfig() engine.Config {
	return engine.Config{
		Currency:     c.AccountCurrency,
		StartBalance: c.StartBalance,
		Latency:      c.Latency,
	}
}

func parseOrderTypes(names []string) ([]common.OrderType, error) {
	byName := map[string]common.OrderType{
		"market":     common.OrderTypeMarket,
		"limit":      common.OrderTypeLimit,
		"stop":       common.OrderTypeStop,
		"stop-limit": common.OrderTypeStopLimit,
	}
	types := make([]common.OrderType, 0, len(names))
	for _, name := range names {
		t, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown order type %q", name)
		}
		types = append(types, t)
	}
	return types, nil
}

func parseBrokerMode(mode string) (broker.MockMode, error) {
	switch mode {
	case "instant":
		return broker.ModeInstantFill, nil
	case "delayed":
		return broker.ModeDelayedFill, nil
	case "reject":
		return broker.ModeRejectAll, nil
	case "pending":
		return broker.ModeAlwaysPending, nil
	default:
		return 0, fmt.Errorf("unknown broker mode %q", mode)
	}
}
