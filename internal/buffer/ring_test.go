package buffer

import (
	"strconv"
	"sync"
	"testing"

	"TickerWatch/internal/model"
)

func rec(id int) model.Indicators {
	return model.Indicators{Symbol: strconv.Itoa(id), Price: float64(id)}
}

func TestRingBuffer_FIFODrain(t *testing.T) {
	rb := New(10)
	rb.Push(rec(1))
	rb.Push(rec(2))
	rb.Push(rec(3))

	got := rb.Drain(2)
	if len(got) != 2 || got[0].Symbol != "1" || got[1].Symbol != "2" {
		t.Fatalf("first drain: got %v", got)
	}
	if rb.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", rb.Len())
	}

	got = rb.Drain(2)
	if len(got) != 1 || got[0].Symbol != "3" {
		t.Fatalf("second drain: got %v", got)
	}

	got = rb.Drain(2)
	if len(got) != 0 {
		t.Fatalf("third drain: got %v, want empty", got)
	}
}

func TestRingBuffer_EmptyAndZero(t *testing.T) {
	rb := New(4)
	if got := rb.Drain(5); got == nil || len(got) != 0 {
		t.Fatalf("drain on empty: got %v, want empty non-nil slice", got)
	}
	rb.Push(rec(1))
	if got := rb.Drain(0); len(got) != 0 {
		t.Fatalf("drain(0): got %v, want empty", got)
	}
	if rb.Len() != 1 {
		t.Fatalf("drain(0) must not remove records, Len() = %d", rb.Len())
	}
}

func TestRingBuffer_OverflowDropsOldest(t *testing.T) {
	rb := New(3)
	for i := 1; i <= 5; i++ {
		rb.Push(rec(i))
	}
	if rb.Dropped() != 2 {
		t.Errorf("Dropped() = %d, want 2", rb.Dropped())
	}
	got := rb.Drain(3)
	if len(got) != 3 || got[0].Symbol != "3" || got[2].Symbol != "5" {
		t.Fatalf("got %v, want records 3..5", got)
	}
}

func TestRingBuffer_WraparoundKeepsOrder(t *testing.T) {
	rb := New(4)
	for i := 1; i <= 3; i++ {
		rb.Push(rec(i))
	}
	rb.Drain(2) // head now mid-buffer
	for i := 4; i <= 6; i++ {
		rb.Push(rec(i))
	}
	got := rb.Drain(10)
	want := []string{"3", "4", "5", "6"}
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Symbol != w {
			t.Errorf("got[%d].Symbol = %s, want %s", i, got[i].Symbol, w)
		}
	}
}

// No record may be lost or returned twice across concurrent pushes and
// drains: everything drained plus everything resident must equal
// everything pushed.
func TestRingBuffer_ConcurrentConservation(t *testing.T) {
	const (
		pushers   = 4
		perPusher = 500
	)
	rb := New(pushers * perPusher) // large enough that nothing is evicted

	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[string]int)

	for p := 0; p < pushers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perPusher; i++ {
				rb.Push(rec(p*perPusher + i))
			}
		}(p)
	}
	for d := 0; d < 3; d++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 400; i++ {
				for _, r := range rb.Drain(7) {
					mu.Lock()
					seen[r.Symbol]++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	for _, r := range rb.Drain(rb.Len()) {
		seen[r.Symbol]++
	}

	if len(seen) != pushers*perPusher {
		t.Fatalf("saw %d distinct records, want %d", len(seen), pushers*perPusher)
	}
	for sym, count := range seen {
		if count != 1 {
			t.Fatalf("record %s returned %d times", sym, count)
		}
	}
	if rb.Dropped() != 0 {
		t.Fatalf("unexpected evictions: %d", rb.Dropped())
	}
}
