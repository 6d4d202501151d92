package engine

import (
	"time"

	"github.com/coinedu/tradesim/pkg/utility/fixed"
)

// configuration carries the session economics. Zero values are never valid;
// defaultConfiguration supplies the baseline and functional options override.
type configuration struct {
	initialCash     fixed.Point
	feeRate         fixed.Point
	maintenanceRate fixed.Point
	hourlyInterest  fixed.Point
	riskFreeRate    float64
	annualVol       float64
	optionUnitSize  fixed.Point
	ticksPerYear    int64
	windowSize      int
	historyCapacity uint
	speeds          []time.Duration
}

func defaultConfiguration() configuration {
	return configuration{
		initialCash:     fixed.FromInt64(10_000, 0),
		feeRate:         fixed.FromInt64(1, 3),
		maintenanceRate: fixed.FromInt64(5, 3),
		hourlyInterest:  fixed.FromInt64(1, 4),
		riskFreeRate:    0.03,
		annualVol:       0.6,
		optionUnitSize:  fixed.One,
		ticksPerYear:    365,
		windowSize:      256,
		historyCapacity: 256,
		speeds: []time.Duration{
			time.Second,
			200 * time.Millisecond,
		},
	}
}

type Option func(*configuration)

func WithInitialCash(cash fixed.Point) Option {
	return func(c *configuration) { c.initialCash = cash }
}

func WithFeeRate(rate fixed.Point) Option {
	return func(c *configuration) { c.feeRate = rate }
}

func WithMaintenanceRate(rate fixed.Point) Option {
	return func(c *configuration) { c.maintenanceRate = rate }
}

// WithHourlyInterest sets the per-tick financing rate on borrowed funds.
func WithHourlyInterest(rate fixed.Point) Option {
	return func(c *configuration) { c.hourlyInterest = rate }
}

func WithRiskFreeRate(rate float64) Option {
	return func(c *configuration) { c.riskFreeRate = rate }
}

// WithAnnualVolatility sets the sigma used to quote option premiums. It is
// independent of the price process volatility knob.
func WithAnnualVolatility(sigma float64) Option {
	return func(c *configuration) { c.annualVol = sigma }
}

func WithOptionUnitSize(size fixed.Point) Option {
	return func(c *configuration) { c.optionUnitSize = size }
}

// WithTicksPerYear sets the tick-to-year mapping for option time decay.
func WithTicksPerYear(ticks int64) Option {
	return func(c *configuration) { c.ticksPerYear = ticks }
}

func WithWindowSize(size int) Option {
	return func(c *configuration) { c.windowSize = size }
}

func WithHistoryCapacity(capacity uint) Option {
	return func(c *configuration) { c.historyCapacity = capacity }
}

// WithClockSpeeds replaces the tick intervals selectable at runtime,
// slowest first.
func WithClockSpeeds(speeds ...time.Duration) Option {
	return func(c *configuration) {
		if len(speeds) > 0 {
			c.speeds = speeds
		}
	}
}
