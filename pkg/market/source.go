package market

import (
	"errors"

	"github.com/coinedu/tradesim/pkg/common"
)

var ErrEof = errors.New("EOF")

// Source produces one price point and its candle per call. The synthetic
// Process never ends; a Replayer returns ErrEof when the recording runs out.
type Source interface {
	Next() (common.PricePoint, common.Candle, error)
	Reset()
}
