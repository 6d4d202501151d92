package utility

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// TraceID tags every event of one causal chain: the order, its fills, the
// position updates it triggers. Snowflake-style layout, millisecond
// timestamp over machine over sequence, so ids sort by creation time.
type TraceID = uint64

const (
	machineBits  = 10
	sequenceBits = 12

	maxSequence = 1<<sequenceBits - 1
	maxMachine  = 1<<machineBits - 1

	timestampShift = machineBits + sequenceBits
	machineShift   = sequenceBits
)

var (
	sequence  atomic.Uint64
	machineID uint64
	epoch     = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
)

func init() {
	machineID = uint64(uuid.New().ID()) & maxMachine
}

func CreateTraceID() TraceID {
	timestamp := uint64(time.Now().UnixMilli() - epoch)
	seq := sequence.Add(1) & maxSequence

	// Sequence wrapped inside one millisecond; wait the tick out so the
	// timestamp advances instead of colliding.
	if seq == 0 {
		time.Sleep(time.Millisecond)
		timestamp = uint64(time.Now().UnixMilli() - epoch)
	}

	return (timestamp << timestampShift) | (machineID << machineShift) | seq
}

// ParseTraceID splits an id back into its fields, mainly for log forensics.
func ParseTraceID(id TraceID) (timestamp time.Time, machine uint64, seq uint64) {
	seq = id & maxSequence
	machine = (id >> machineShift) & maxMachine
	ts := id >> timestampShift
	timestamp = time.UnixMilli(epoch + int64(ts))
	return
}
