package circular

import (
	"testing"
)

func TestBuffer_PushAndGet(t *testing.T) {
	b := NewBuffer[int](3)

	b.Push(1)
	b.Push(2)
	b.Push(3)

	if b.Size() != 3 {
		t.Fatalf("expected size 3, got %d", b.Size())
	}
	if got := b.Get(0); got != 3 {
		t.Errorf("Get(0) = %d, want 3", got)
	}
	if got := b.Get(2); got != 1 {
		t.Errorf("Get(2) = %d, want 1", got)
	}
}

func TestBuffer_Eviction(t *testing.T) {
	b := NewBuffer[string](2)
	b.Push("a")
	b.Push("b")
	b.Push("c")

	if !b.IsFull() {
		t.Error("buffer should stay full after eviction")
	}
	if got := b.First(); got != "c" {
		t.Errorf("First() = %q, want %q", got, "c")
	}
	if got := b.Last(); got != "b" {
		t.Errorf("Last() = %q, want %q", got, "b")
	}
}

func TestBuffer_DataOrder(t *testing.T) {
	b := NewBuffer[int](3)
	for i := 1; i <= 5; i++ {
		b.Push(i)
	}

	data := b.Data()
	want := []int{3, 4, 5}
	if len(data) != len(want) {
		t.Fatalf("expected %d elements, got %d", len(want), len(data))
	}
	for i := range want {
		if data[i] != want[i] {
			t.Errorf("data[%d] = %d, want %d", i, data[i], want[i])
		}
	}
}

func TestBuffer_Clear(t *testing.T) {
	b := NewBuffer[int](3)
	b.Push(1)
	b.Push(2)

	b.Clear()
	if b.Size() != 0 {
		t.Errorf("expected empty buffer after clear, size %d", b.Size())
	}
}
