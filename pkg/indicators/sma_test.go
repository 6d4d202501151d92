package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinedu/tradesim/pkg/utility/fixed"
)

func TestSMA_Value(t *testing.T) {
	sma := NewSMA(3)

	sma.AddPoint(fixed.FromInt64(10, 0))
	sma.AddPoint(fixed.FromInt64(20, 0))
	assert.False(t, sma.IsReady())
	_, err := sma.Value()
	assert.Error(t, err)

	sma.AddPoint(fixed.FromInt64(30, 0))
	require.True(t, sma.IsReady())

	value, err := sma.Value()
	require.NoError(t, err)
	assert.True(t, fixed.FromInt64(20, 0).Eq(value), "got %s", value)

	// window slides: {20, 30, 40}
	sma.AddPoint(fixed.FromInt64(40, 0))
	value, err = sma.Value()
	require.NoError(t, err)
	assert.True(t, fixed.FromInt64(30, 0).Eq(value), "got %s", value)
}

func TestSMA_Reset(t *testing.T) {
	sma := NewSMA(2)
	sma.AddPoint(fixed.FromInt64(10, 0))
	sma.AddPoint(fixed.FromInt64(20, 0))
	require.True(t, sma.IsReady())

	sma.Reset()
	assert.False(t, sma.IsReady())
}

func TestRSI_Bounds(t *testing.T) {
	rsi := NewRSI(3)

	// needs windowSize deltas, so windowSize+1 points
	rsi.AddPoint(fixed.FromInt64(100, 0))
	rsi.AddPoint(fixed.FromInt64(102, 0))
	rsi.AddPoint(fixed.FromInt64(101, 0))
	assert.False(t, rsi.IsReady())

	rsi.AddPoint(fixed.FromInt64(103, 0))
	require.True(t, rsi.IsReady())

	value, err := rsi.Value()
	require.NoError(t, err)
	assert.True(t, value.Gte(fixed.Zero))
	assert.True(t, value.Lte(fixed.Hundred))

	// gains 2+2=4 vs loss 1: RSI = 100 - 100/(1+4) = 80
	assert.True(t, fixed.FromInt64(80, 0).Eq(value), "got %s", value)
}

func TestRSI_AllGains(t *testing.T) {
	rsi := NewRSI(3)
	for _, v := range []int64{100, 101, 102, 103} {
		rsi.AddPoint(fixed.FromInt64(v, 0))
	}

	value, err := rsi.Value()
	require.NoError(t, err)
	assert.True(t, fixed.Hundred.Eq(value))
}

func TestRSI_AllLosses(t *testing.T) {
	rsi := NewRSI(3)
	for _, v := range []int64{103, 102, 101, 100} {
		rsi.AddPoint(fixed.FromInt64(v, 0))
	}

	value, err := rsi.Value()
	require.NoError(t, err)
	assert.True(t, value.IsZero(), "got %s", value)
}

func TestRSI_Reset(t *testing.T) {
	rsi := NewRSI(2)
	for _, v := range []int64{100, 101, 102} {
		rsi.AddPoint(fixed.FromInt64(v, 0))
	}
	require.True(t, rsi.IsReady())

	rsi.Reset()
	assert.False(t, rsi.IsReady())
}
