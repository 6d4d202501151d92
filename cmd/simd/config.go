package main

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/coinedu/tradesim/pkg/engine"
	"github.com/coinedu/tradesim/pkg/middleware"
	"github.com/coinedu/tradesim/pkg/utility/fixed"
)

const (
	routerEventCapacity = 1000
	monitorFlags        = middleware.MonitorPositionsOpened | middleware.MonitorPositionsClosed |
		middleware.MonitorOrdersRejected | middleware.MonitorRiskAlerts
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`

	Session struct {
		InitialCash     float64 `yaml:"initial_cash"`
		FeeRate         float64 `yaml:"fee_rate"`
		MaintenanceRate float64 `yaml:"maintenance_rate"`
		HourlyInterest  float64 `yaml:"hourly_interest"`
		RiskFreeRate    float64 `yaml:"risk_free_rate"`
		AnnualVol       float64 `yaml:"annual_vol"`
	} `yaml:"session"`

	Market struct {
		Model      string  `yaml:"model"` // walk or gbm
		Seed       int64   `yaml:"seed"`
		StartPrice float64 `yaml:"start_price"`
		Volatility float64 `yaml:"volatility"`
		DriftBias  float64 `yaml:"drift_bias"`
		AnnualMu   float64 `yaml:"annual_mu"`
		BarTicks   int64   `yaml:"bar_ticks"`
		ReplayPath string  `yaml:"replay_path"`
		RecordPath string  `yaml:"record_path"`
	} `yaml:"market"`

	Clock struct {
		SpeedsMs []int `yaml:"speeds_ms"`
	} `yaml:"clock"`

	Journal struct {
		Path      string `yaml:"path"`
		SessionId int64  `yaml:"session_id"`
	} `yaml:"journal"`

	Pushover struct {
		User   string `yaml:"user"`
		Token  string `yaml:"token"`
		Device string `yaml:"device"`
	} `yaml:"pushover"`
}

func loadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := defaultSimdConfig()
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultSimdConfig() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Logging.Level = "info"
	cfg.Session.InitialCash = 10_000
	cfg.Session.FeeRate = 0.001
	cfg.Session.MaintenanceRate = 0.005
	cfg.Session.HourlyInterest = 0.0001
	cfg.Session.RiskFreeRate = 0.03
	cfg.Session.AnnualVol = 0.6
	cfg.Market.Model = "walk"
	cfg.Market.Seed = time.Now().UnixNano()
	cfg.Market.StartPrice = 65_000
	cfg.Market.Volatility = 0.01
	cfg.Market.DriftBias = 0.51
	cfg.Market.AnnualMu = 0.05
	cfg.Market.BarTicks = 10
	cfg.Clock.SpeedsMs = []int{1000, 200}
	cfg.Journal.SessionId = 1
	return cfg
}

func (c *Config) clockSpeeds() []time.Duration {
	speeds := make([]time.Duration, 0, len(c.Clock.SpeedsMs))
	for _, ms := range c.Clock.SpeedsMs {
		speeds = append(speeds, time.Duration(ms)*time.Millisecond)
	}
	return speeds
}

func (c *Config) engineOptions() []engine.Option {
	return []engine.Option{
		engine.WithInitialCash(fixed.FromFloat64(c.Session.InitialCash)),
		engine.WithFeeRate(fixed.FromFloat64(c.Session.FeeRate)),
		engine.WithMaintenanceRate(fixed.FromFloat64(c.Session.MaintenanceRate)),
		engine.WithHourlyInterest(fixed.FromFloat64(c.Session.HourlyInterest)),
		engine.WithRiskFreeRate(c.Session.RiskFreeRate),
		engine.WithAnnualVolatility(c.Session.AnnualVol),
		engine.WithClockSpeeds(c.clockSpeeds()...),
	}
}
