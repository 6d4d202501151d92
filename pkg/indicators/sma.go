package indicators

import (
	"errors"

	"github.com/coinedu/tradesim/pkg/utility/fixed"
)

type SMA struct {
	windowSize int
	data       *fixed.RingBuffer
}

func NewSMA(windowSize int) *SMA {
	return &SMA{
		windowSize: windowSize,
		data:       fixed.NewRingBuffer(windowSize),
	}
}

func (s *SMA) AddPoint(p fixed.Point) {
	s.data.Add(p)
}

func (s *SMA) Value() (fixed.Point, error) {
	if !s.IsReady() {
		return fixed.Point{}, errors.New("not enough data")
	}
	return s.data.Mean(), nil
}

func (s *SMA) IsReady() bool {
	return s.data.IsFull()
}

func (s *SMA) Reset() {
	s.data.Clear()
}
