package market

import (
	"bufio"
	"fmt"
	"os"
	"unsafe"

	"github.com/coinedu/tradesim/pkg/common"
)

// BinaryCandle is the fixed-width on-disk row of a recorded session.
// The layout must stay free of padding, the replayer casts raw bytes.
type BinaryCandle struct {
	Tick   int64
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

func (b BinaryCandle) ToCandle(candle *common.Candle) {
	candle.Tick = b.Tick
	candle.Open = floatPoint(b.Open)
	candle.High = floatPoint(b.High)
	candle.Low = floatPoint(b.Low)
	candle.Close = floatPoint(b.Close)
	candle.Volume = floatPoint(b.Volume)
}

// Recorder appends candle rows to a session file as they are produced.
// Wire it as a candle handler; replay the file later with a Replayer.
type Recorder struct {
	file   *os.File
	writer *bufio.Writer
}

func NewRecorder(path string) (*Recorder, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("unable to open session file %q: %w", path, err)
	}
	return &Recorder{
		file:   file,
		writer: bufio.NewWriter(file),
	}, nil
}

func (r *Recorder) Append(candle common.Candle) error {
	row := BinaryCandle{
		Tick:   candle.Tick,
		Open:   pointFloat(candle.Open),
		High:   pointFloat(candle.High),
		Low:    pointFloat(candle.Low),
		Close:  pointFloat(candle.Close),
		Volume: pointFloat(candle.Volume),
	}

	buffer := (*[unsafe.Sizeof(row)]byte)(unsafe.Pointer(&row))[:] // #nosec G103
	if _, err := r.writer.Write(buffer); err != nil {
		return fmt.Errorf("unable to append session row: %w", err)
	}
	return nil
}

func (r *Recorder) Close() error {
	if err := r.writer.Flush(); err != nil {
		return err
	}
	return r.file.Close()
}
