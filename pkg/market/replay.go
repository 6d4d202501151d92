package market

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/exp/mmap"

	"github.com/coinedu/tradesim/pkg/common"
	"github.com/coinedu/tradesim/pkg/utility"
	"github.com/coinedu/tradesim/pkg/utility/fixed"
)

const replayerComponentName = "market.replayer"

// Replayer feeds a recorded session back through the engine, row for row.
// Together with a seeded Process it makes any run reproducible.
type Replayer struct {
	dataSourceName string
	reader         *mmap.ReaderAt
	bufferPool     *sync.Pool

	idx int64
}

func NewReplayer(dataSourceName string) *Replayer {
	return &Replayer{
		dataSourceName: dataSourceName,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				buffer := make([]byte, int(unsafe.Sizeof(BinaryCandle{})))
				return &buffer
			},
		},
	}
}

func (r *Replayer) Open() error {
	var err error
	r.reader, err = mmap.Open(r.dataSourceName)
	if err != nil {
		return fmt.Errorf("unable to open session file %q: %w", r.dataSourceName, err)
	}
	return nil
}

func (r *Replayer) Close() {
	_ = r.reader.Close()
}

func (r *Replayer) Next() (common.PricePoint, common.Candle, error) {
	var point common.PricePoint
	var candle common.Candle
	var row BinaryCandle

	if err := r.read(r.idx, &row); err != nil {
		return point, candle, err
	}
	r.idx++

	row.ToCandle(&candle)

	now := time.Now()
	eid := utility.GetExecutionID()
	tid := utility.CreateTraceID()

	candle.Source = replayerComponentName
	candle.ExecutionId = eid
	candle.TraceID = tid
	candle.TimeStamp = now

	point = common.PricePoint{
		Tick:        candle.Tick,
		Price:       candle.Close,
		Source:      replayerComponentName,
		ExecutionId: eid,
		TraceID:     tid,
		TimeStamp:   now,
	}

	return point, candle, nil
}

func (r *Replayer) Reset() {
	r.idx = 0
}

func (r *Replayer) read(index int64, row *BinaryCandle) error {
	buffer := r.bufferPool.Get().(*[]byte)
	defer r.bufferPool.Put(buffer)

	offset := index * int64(len(*buffer))

	n, err := r.reader.ReadAt(*buffer, offset)
	if err != nil && err != io.EOF {
		return fmt.Errorf("unable to read: %w", err)
	}
	if n < len(*buffer) {
		return ErrEof
	}

	*row = *(*BinaryCandle)(unsafe.Pointer(&(*buffer)[0])) // #nosec G103
	return nil
}

func (r *Replayer) EntryCount() (int64, error) {
	entrySize := int64(unsafe.Sizeof(BinaryCandle{}))

	fileInfo, err := os.Stat(r.dataSourceName)
	if err != nil {
		return 0, fmt.Errorf("unable to get session file %q stats: %w", r.dataSourceName, err)
	}

	totalSize := fileInfo.Size()
	if totalSize%entrySize != 0 {
		return 0, fmt.Errorf("file size is not a multiple of entry size")
	}

	return totalSize / entrySize, nil
}

func floatPoint(f float64) fixed.Point {
	return fixed.FromFloat64(f)
}

func pointFloat(p fixed.Point) float64 {
	f, _ := p.Float64()
	return f
}
