package common

import (
	"iter"
	"slices"
	"sync"
	"time"
)

// QueueProcessor is a function that processes a batch of items from the queue.
type QueueProcessor[V any] func(items []V)

// QueueHandler processes queued items in chunks on a background goroutine.
// Close drains whatever is left before returning.
type QueueHandler[V any] struct {
	mu        sync.Mutex
	queue     []V
	processor QueueProcessor[V]
	chunkSize int
	interval  time.Duration
	wake      chan struct{}
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// NewQueueHandler starts the worker. interval is how long an idle worker
// sleeps before looking again; Add wakes it earlier.
func NewQueueHandler[V any](processor QueueProcessor[V], chunkSize int, interval time.Duration) *QueueHandler[V] {
	q := &QueueHandler[V]{
		queue:     make([]V, 0),
		processor: processor,
		chunkSize: max(chunkSize, 1),
		interval:  interval,
		wake:      make(chan struct{}, 1),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
	go q.processQueue()
	return q
}

// Add adds items to the queue.
func (h *QueueHandler[V]) Add(item ...V) {
	h.mu.Lock()
	h.queue = append(h.queue, item...)
	h.mu.Unlock()
	h.signal()
}

func (h *QueueHandler[V]) AddIter(item iter.Seq[V]) {
	h.Add(slices.Collect(item)...)
}

func (h *QueueHandler[V]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.queue)
}

// Close stops the worker after the queue is empty.
func (h *QueueHandler[V]) Close() {
	h.closeOnce.Do(func() { close(h.done) })
	<-h.stopped
}

func (h *QueueHandler[V]) signal() {
	select {
	case h.wake <- struct{}{}:
	default:
	}
}

func (h *QueueHandler[V]) next() []V {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.queue) == 0 {
		return nil
	}
	items := h.queue[:min(h.chunkSize, len(h.queue))]
	h.queue = h.queue[len(items):]
	return items
}

func (h *QueueHandler[V]) drain() {
	for items := h.next(); items != nil; items = h.next() {
		h.processor(items)
	}
}

func (h *QueueHandler[V]) processQueue() {
	defer close(h.stopped)
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		h.drain()
		select {
		case <-h.done:
			h.drain()
			return
		case <-h.wake:
		case <-ticker.C:
		}
	}
}
