package fixed

import (
	"testing"
)

func TestRingBuffer_AddAndGet(t *testing.T) {
	rb := NewRingBuffer(3)

	if !rb.IsEmpty() {
		t.Error("new buffer should be empty")
	}

	rb.Add(FromFloat64(1.0))
	rb.Add(FromFloat64(2.0))
	rb.Add(FromFloat64(3.0))

	if !rb.IsFull() {
		t.Error("buffer should be full after capacity adds")
	}
	assertPointEqual(t, FromFloat64(3.0), rb.Get(0), 1e-9, "latest")
	assertPointEqual(t, FromFloat64(1.0), rb.Get(2), 1e-9, "oldest")
}

func TestRingBuffer_Eviction(t *testing.T) {
	rb := NewRingBuffer(3)
	for i := 1; i <= 5; i++ {
		rb.Add(FromInt(i, 0))
	}

	if rb.Size() != 3 {
		t.Fatalf("expected size 3, got %d", rb.Size())
	}
	assertPointEqual(t, FromInt(5, 0), rb.Latest(), 1e-9, "latest after eviction")
	assertPointEqual(t, FromInt(3, 0), rb.Oldest(), 1e-9, "oldest after eviction")
}

func TestRingBuffer_ToSliceFifo(t *testing.T) {
	rb := NewRingBuffer(4)
	rb.Add(FromInt(10, 0))
	rb.Add(FromInt(20, 0))
	rb.Add(FromInt(30, 0))

	fifo := rb.ToSliceFifo()
	if len(fifo) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(fifo))
	}
	assertPointEqual(t, FromInt(10, 0), fifo[0], 1e-9, "first")
	assertPointEqual(t, FromInt(30, 0), fifo[2], 1e-9, "last")
}

func TestRingBuffer_Statistics(t *testing.T) {
	rb := NewRingBuffer(5)
	for _, v := range []float64{2.0, 4.0, 6.0, 8.0} {
		rb.Add(FromFloat64(v))
	}

	assertPointEqual(t, FromFloat64(20.0), rb.Sum(), 1e-9, "sum")
	assertPointEqual(t, FromFloat64(5.0), rb.Mean(), 1e-9, "mean")
	assertPointEqual(t, FromFloat64(2.0), rb.Min(), 1e-9, "min")
	assertPointEqual(t, FromFloat64(8.0), rb.Max(), 1e-9, "max")
}

func TestRingBuffer_Clear(t *testing.T) {
	rb := NewRingBuffer(3)
	rb.Add(FromInt(1, 0))
	rb.Add(FromInt(2, 0))

	rb.Clear()
	if !rb.IsEmpty() {
		t.Error("buffer should be empty after clear")
	}

	rb.Add(FromInt(7, 0))
	assertPointEqual(t, FromInt(7, 0), rb.Latest(), 1e-9, "latest after clear")
}

func TestRingBuffer_InvalidCapacityPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero capacity")
		}
	}()
	NewRingBuffer(0)
}
