package buffer

import (
	"sync"

	"TickerWatch/internal/model"
)

// DefaultCapacity is used when no capacity is configured.
const DefaultCapacity = 10000

// RingBuffer is a bounded FIFO of indicator records and the single
// synchronization point between the pipeline's write side and the query
// read side. Push and Drain may be called concurrently from any number
// of goroutines. When the buffer is full the oldest record is dropped to
// make room for the new one; Dropped reports how many were evicted.
type RingBuffer struct {
	mu      sync.Mutex
	buf     []model.Indicators
	head    int
	length  int
	dropped uint64
}

// New creates a buffer holding at most capacity records.
func New(capacity int) *RingBuffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &RingBuffer{buf: make([]model.Indicators, capacity)}
}

// Push appends rec at the tail, evicting the oldest record when full.
func (rb *RingBuffer) Push(rec model.Indicators) {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	if rb.length == len(rb.buf) {
		rb.head = (rb.head + 1) % len(rb.buf)
		rb.length--
		rb.dropped++
	}
	rb.buf[(rb.head+rb.length)%len(rb.buf)] = rec
	rb.length++
}

// Drain removes and returns up to n records from the head, oldest first,
// as one atomic step. An empty buffer or n <= 0 yields an empty slice,
// never an error.
func (rb *RingBuffer) Drain(n int) []model.Indicators {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	if n > rb.length {
		n = rb.length
	}
	out := make([]model.Indicators, 0, max(n, 0))
	for i := 0; i < n; i++ {
		out = append(out, rb.buf[rb.head])
		rb.head = (rb.head + 1) % len(rb.buf)
	}
	if n > 0 {
		rb.length -= n
	}
	return out
}

// Len returns the number of records currently resident.
func (rb *RingBuffer) Len() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.length
}

// Dropped returns the number of records evicted because the buffer was full.
func (rb *RingBuffer) Dropped() uint64 {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.dropped
}
