package market

import (
	"math/rand"
	"time"

	"github.com/coinedu/tradesim/pkg/common"
	"github.com/coinedu/tradesim/pkg/utility"
	"github.com/coinedu/tradesim/pkg/utility/fixed"
)

const (
	processComponentName = "market.process"

	// Draws are centered slightly below 0.5 so the walk carries a mild
	// negative drift, which reads more like a real market than a pure
	// symmetric walk.
	defaultDriftBias = 0.51

	// Output never reaches zero, whatever the volatility.
	priceFloor = 1e-6
)

// Process is a serially-correlated random-walk price generator. The rng is
// injected, so a seeded source gives fully reproducible runs.
type Process struct {
	rng *rand.Rand

	startPrice float64
	volatility float64
	driftBias  float64
	baseVolume float64

	priceDigits  int
	volumeDigits int

	last float64
	tick int64
}

func NewProcess(rng *rand.Rand, startPrice, volatility float64) *Process {
	return &Process{
		rng:          rng,
		startPrice:   startPrice,
		volatility:   volatility,
		driftBias:    defaultDriftBias,
		baseVolume:   100,
		priceDigits:  2,
		volumeDigits: 4,
		last:         startPrice,
	}
}

func (p *Process) SetDriftBias(bias float64) {
	p.driftBias = bias
}

func (p *Process) SetBaseVolume(volume float64) {
	p.baseVolume = volume
}

func (p *Process) SetPriceDigits(digits int) {
	p.priceDigits = digits
}

func (p *Process) SetVolumeDigits(digits int) {
	p.volumeDigits = digits
}

// Next advances the walk one tick: next = prev * (1 + eps), with eps drawn
// uniform, shifted by the drift bias and scaled by volatility. The candle is
// synthesized from the same draw.
func (p *Process) Next() (common.PricePoint, common.Candle, error) {
	open := p.last

	eps := (p.rng.Float64() - p.driftBias) * 2 * p.volatility
	next := p.last * (1 + eps)
	if next < priceFloor {
		next = priceFloor
	}
	p.last = next
	p.tick++

	wickSpan := p.volatility * p.last
	high := open
	if next > high {
		high = next
	}
	high += p.rng.Float64() * wickSpan

	low := open
	if next < low {
		low = next
	}
	low -= p.rng.Float64() * wickSpan
	if low < priceFloor {
		low = priceFloor
	}

	volume := p.baseVolume * (0.5 + p.rng.Float64())

	now := time.Now()
	eid := utility.GetExecutionID()
	tid := utility.CreateTraceID()

	point := common.PricePoint{
		Tick:        p.tick,
		Price:       fixed.FromFloat64(next).Rescale(p.priceDigits),
		Source:      processComponentName,
		ExecutionId: eid,
		TraceID:     tid,
		TimeStamp:   now,
	}

	candle := common.Candle{
		Tick:        p.tick,
		Open:        fixed.FromFloat64(open).Rescale(p.priceDigits),
		High:        fixed.FromFloat64(high).Rescale(p.priceDigits),
		Low:         fixed.FromFloat64(low).Rescale(p.priceDigits),
		Close:       point.Price,
		Volume:      fixed.FromFloat64(volume).Rescale(p.volumeDigits),
		Source:      processComponentName,
		ExecutionId: eid,
		TraceID:     tid,
		TimeStamp:   now,
	}

	return point, candle, nil
}

func (p *Process) Reset() {
	p.last = p.startPrice
	p.tick = 0
}

func (p *Process) Tick() int64 {
	return p.tick
}
