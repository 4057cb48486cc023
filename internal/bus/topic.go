package bus

import (
	"errors"
	"sync"
)

// ErrClosed is returned by Publish after the topic has been closed.
var ErrClosed = errors.New("bus: topic closed")

// Topic is a typed broadcast channel. Every subscriber receives every
// value published after it subscribed, in publish order. Each subscriber
// has its own unbounded mailbox, so a slow receiver delays only itself,
// never the publisher or other subscribers.
type Topic[T any] struct {
	mu     sync.Mutex
	subs   map[int]*mailbox[T]
	nextID int
	closed bool
}

// NewTopic creates an empty topic.
func NewTopic[T any]() *Topic[T] {
	return &Topic[T]{subs: make(map[int]*mailbox[T])}
}

// Publish delivers v to all current subscribers. It fails only when the
// topic has been closed; subscriber state never affects the publisher.
func (t *Topic[T]) Publish(v T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrClosed
	}
	for _, mb := range t.subs {
		mb.put(v)
	}
	return nil
}

// Subscribe registers a new subscriber and returns its receive channel
// together with a cancel function releasing the mailbox. The channel is
// closed after cancel or after the topic itself is closed.
func (t *Topic[T]) Subscribe() (<-chan T, func()) {
	mb := newMailbox[T]()
	go mb.pump()

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		mb.close()
		return mb.out, func() {}
	}
	id := t.nextID
	t.nextID++
	t.subs[id] = mb
	t.mu.Unlock()

	cancel := func() {
		t.mu.Lock()
		if cur, ok := t.subs[id]; ok {
			delete(t.subs, id)
			cur.close()
		}
		t.mu.Unlock()
	}
	return mb.out, cancel
}

// Subscribers reports how many subscribers are currently attached.
func (t *Topic[T]) Subscribers() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.subs)
}

// Close detaches all subscribers and rejects further publishes.
func (t *Topic[T]) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.closed = true
	for id, mb := range t.subs {
		delete(t.subs, id)
		mb.close()
	}
}

// mailbox buffers published values for one subscriber. put never blocks;
// a pump goroutine moves values to the receive channel one at a time.
type mailbox[T any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []T
	closed bool
	done   chan struct{}
	out    chan T
}

func newMailbox[T any]() *mailbox[T] {
	mb := &mailbox[T]{
		done: make(chan struct{}),
		out:  make(chan T),
	}
	mb.cond = sync.NewCond(&mb.mu)
	return mb
}

func (mb *mailbox[T]) put(v T) {
	mb.mu.Lock()
	if !mb.closed {
		mb.queue = append(mb.queue, v)
		mb.cond.Signal()
	}
	mb.mu.Unlock()
}

func (mb *mailbox[T]) close() {
	mb.mu.Lock()
	if !mb.closed {
		mb.closed = true
		close(mb.done)
		mb.cond.Signal()
	}
	mb.mu.Unlock()
}

func (mb *mailbox[T]) pump() {
	for {
		mb.mu.Lock()
		for len(mb.queue) == 0 && !mb.closed {
			mb.cond.Wait()
		}
		if mb.closed {
			mb.mu.Unlock()
			close(mb.out)
			return
		}
		v := mb.queue[0]
		mb.queue = mb.queue[1:]
		mb.mu.Unlock()

		select {
		case mb.out <- v:
		case <-mb.done:
			close(mb.out)
			return
		}
	}
}
