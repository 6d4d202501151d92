package engine

import (
	"context"
	"sync/atomic"
	"time"
)

// Clock drives realtime sessions: one feed call per interval while running.
// Pause and speed changes arrive from the router goroutine, the loop runs on
// its own, so both knobs are atomics. The feed error ends the run and is the
// loop's return value.
type Clock struct {
	feed   func(context.Context) error
	speeds []time.Duration

	paused  atomic.Bool
	level   atomic.Int32
	pending atomic.Pointer[func()]
}

func NewClock(feed func(context.Context) error, speeds []time.Duration) *Clock {
	return &Clock{
		feed:   feed,
		speeds: speeds,
	}
}

func (c *Clock) Run(ctx context.Context) error {
	timer := time.NewTimer(c.interval())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			if fn := c.pending.Swap(nil); fn != nil {
				(*fn)()
			}
			if !c.paused.Load() {
				if err := c.feed(ctx); err != nil {
					return err
				}
			}
			timer.Reset(c.interval())
		}
	}
}

// Defer schedules fn to run on the clock goroutine ahead of the next feed,
// pause or not. The source is fed from that goroutine, so anything that
// mutates it must run there too.
func (c *Clock) Defer(fn func()) {
	c.pending.Store(&fn)
}

func (c *Clock) Pause()  { c.paused.Store(true) }
func (c *Clock) Resume() { c.paused.Store(false) }

func (c *Clock) Paused() bool {
	return c.paused.Load()
}

// SetSpeed clamps out-of-range levels instead of failing; the UI slider may
// race a config reload.
func (c *Clock) SetSpeed(level int) {
	if level < 0 {
		level = 0
	}
	if level >= len(c.speeds) {
		level = len(c.speeds) - 1
	}
	c.level.Store(int32(level))
}

func (c *Clock) Speed() int {
	return int(c.level.Load())
}

func (c *Clock) interval() time.Duration {
	return c.speeds[c.level.Load()]
}
