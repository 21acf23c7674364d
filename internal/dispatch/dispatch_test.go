package dispatch

import (
	"sync"
	"testing"
)

func TestDispatchOrder(t *testing.T) {
	q := New()

	var mu sync.Mutex
	var got []int
	for i := 0; i < 100; i++ {
		i := i
		q.Dispatch(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		})
	}
	q.Close()

	if len(got) != 100 {
		t.Fatalf("ran %d functions, want 100", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("out of order at %d: got %d", i, v)
		}
	}
}

func TestCloseWaitsForQueued(t *testing.T) {
	q := New()

	ran := false
	q.Dispatch(func() { ran = true })
	q.Close()

	if !ran {
		t.Fatal("Close returned before queued function ran")
	}
}

func TestCloseTwice(t *testing.T) {
	q := New()
	q.Close()
	q.Close()
}

func TestDispatchAfterCloseIsDropped(t *testing.T) {
	q := New()
	q.Close()

	ran := false
	q.Dispatch(func() { ran = true })

	if ran {
		t.Fatal("function ran after Close")
	}
}
