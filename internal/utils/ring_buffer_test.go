package utils

import (
	"sync"
	"testing"
)

func TestRingBuffer_NewRingBuffer(t *testing.T) {
	t.Run("positive size", func(t *testing.T) {
		rb := NewRingBuffer[int](3)
		if rb == nil {
			t.Fatal("expected non-nil buffer")
		}

		if rb.Cap() != 3 {
			t.Errorf("expected cap=3, got %d", rb.Cap())
		}

		if rb.Len() != 0 {
			t.Errorf("expected len=0, got %d", rb.Len())
		}
	})

	t.Run("non-positive size panics", func(t *testing.T) {
		for _, size := range []int{0, -1} {
			func() {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("expected panic for size=%d", size)
					}
				}()
				NewRingBuffer[int](size)
			}()
		}
	})
}

func TestRingBuffer_PushAndOrder(t *testing.T) {
	rb := NewRingBuffer[int](3)

	rb.Push(1)
	rb.Push(2)
	rb.Push(3)
	if rb.Len() != 3 {
		t.Fatalf("expected len=3, got %d", rb.Len())
	}

	for i, want := range []int{1, 2, 3} {
		if got := rb.At(i); got != want {
			t.Errorf("At(%d): expected %d, got %d", i, want, got)
		}
	}
}

func TestRingBuffer_Eviction(t *testing.T) {
	rb := NewRingBuffer[string](2)

	rb.Push("a")
	rb.Push("b")
	rb.Push("c") // evicts "a"

	got := rb.ToSlice()
	want := []string{"b", "c"}
	if len(got) != len(want) {
		t.Fatalf("expected %d elements, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ToSlice()[%d]: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestRingBuffer_ToSliceEmpty(t *testing.T) {
	rb := NewRingBuffer[int](4)
	if got := rb.ToSlice(); len(got) != 0 {
		t.Errorf("expected empty slice, got %v", got)
	}
}

func TestRingBuffer_At_OutOfRange(t *testing.T) {
	rb := NewRingBuffer[int](2)
	rb.Push(1)

	for _, i := range []int{-1, 1, 2} {
		func() {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("expected panic for At(%d)", i)
				}
			}()
			rb.At(i)
		}()
	}
}

func TestRingBuffer_ConcurrentPush(t *testing.T) {
	rb := NewRingBuffer[int](64)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				rb.Push(j)
			}
		}()
	}
	wg.Wait()

	if rb.Len() != rb.Cap() {
		t.Errorf("expected full buffer, got len=%d cap=%d", rb.Len(), rb.Cap())
	}
}
