package market

import (
	"math/rand"
	"time"

	"github.com/coinedu/tradesim/pkg/common"
	"github.com/coinedu/tradesim/pkg/utility"
	"github.com/coinedu/tradesim/pkg/utility/fixed"
)

const gbmComponentName = "market.gbm"

// GBM is the geometric-brownian-motion alternative to the biased random
// walk. mu and sigma are annualized; deltaT is the fraction of a year one
// tick represents.
type GBM struct {
	rng *rand.Rand

	startPrice fixed.Point
	mu         fixed.Point
	sigma      fixed.Point
	deltaT     fixed.Point

	// Pre-calculated drift and diffusion terms
	deltaLogPre1 fixed.Point
	deltaLogPre2 fixed.Point

	avgVolume      fixed.Point
	volumeVariance float64

	priceDigits  int
	volumeDigits int

	last fixed.Point
	tick int64
}

func NewGBM(rng *rand.Rand, startPrice, mu, sigma, deltaT float64) *GBM {
	muP := fixed.FromFloat64(mu)
	sigmaP := fixed.FromFloat64(sigma)
	deltaTP := fixed.FromFloat64(deltaT)

	return &GBM{
		rng:            rng,
		startPrice:     fixed.FromFloat64(startPrice),
		mu:             muP,
		sigma:          sigmaP,
		deltaT:         deltaTP,
		deltaLogPre1:   muP.Sub(sigmaP.Mul(sigmaP).Mul(fixed.PointFive)).Mul(deltaTP),
		deltaLogPre2:   sigmaP.Mul(deltaTP.Sqrt()),
		avgVolume:      fixed.FromInt64(100, 0),
		volumeVariance: 0.5,
		priceDigits:    2,
		volumeDigits:   4,
		last:           fixed.FromFloat64(startPrice),
	}
}

func (g *GBM) SetVolumeParameters(avgVolume fixed.Point, variance float64) {
	g.avgVolume = avgVolume
	g.volumeVariance = variance
}

func (g *GBM) SetPriceDigits(digits int) {
	g.priceDigits = digits
}

func (g *GBM) Next() (common.PricePoint, common.Candle, error) {
	open := g.last

	z := g.rng.NormFloat64()
	deltaLog := g.deltaLogPre1.Add(g.deltaLogPre2.Mul(fixed.FromFloat64(z)))
	g.last = g.last.Mul(deltaLog.Exp()).Rescale(g.priceDigits)

	now := time.Now()
	point := common.PricePoint{
		Tick:        g.tick,
		Price:       g.last,
		Source:      gbmComponentName,
		ExecutionId: utility.GetExecutionID(),
		TraceID:     utility.CreateTraceID(),
		TimeStamp:   now,
	}

	// Wicks extend past the open/close range by a fraction of the move.
	wick := g.last.Sub(open).Abs().Mul(fixed.FromFloat64(g.rng.Float64()))
	high := fixed.Max(open, g.last).Add(wick)
	low := fixed.Min(open, g.last).Sub(wick)
	if !low.IsPos() {
		low = fixed.Min(open, g.last)
	}

	candle := common.Candle{
		Tick:        g.tick,
		Open:        open,
		High:        high.Rescale(g.priceDigits),
		Low:         low.Rescale(g.priceDigits),
		Close:       g.last,
		Volume:      g.generateVolume().Rescale(g.volumeDigits),
		Source:      gbmComponentName,
		ExecutionId: utility.GetExecutionID(),
		TraceID:     utility.CreateTraceID(),
		TimeStamp:   now,
	}

	g.tick++
	return point, candle, nil
}

// generateVolume draws log-normal volumes so bursts and lulls both show up.
func (g *GBM) generateVolume() fixed.Point {
	variation := g.rng.NormFloat64() * g.volumeVariance
	volume := g.avgVolume.Mul(fixed.FromFloat64(1.0 + variation).Exp())
	if volume.Lte(fixed.Zero) {
		return fixed.One
	}
	return volume
}

func (g *GBM) Reset() {
	g.last = g.startPrice
	g.tick = 0
}
