package events

import (
	"context"
	"sync"
)

// EventHandler handles a published event.
type EventHandler func(context.Context, Event) error

// Dispatcher allows event publication and subscription.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler EventHandler)
}

// QueuedDispatcher decouples publishers from handlers through a bounded
// queue. Publish never blocks a request: when the queue is full the event is
// dropped and the drop counter incremented. Delivery is best-effort.
type QueuedDispatcher struct {
	mu        sync.RWMutex
	listeners map[EventType][]EventHandler

	queue   chan Event
	done    chan struct{}
	once    sync.Once
	dropped int64
}

// NewQueuedDispatcher creates a dispatcher with the given queue capacity and
// starts its delivery loop.
func NewQueuedDispatcher(queueSize int) *QueuedDispatcher {
	if queueSize <= 0 {
		queueSize = 256
	}
	d := &QueuedDispatcher{
		listeners: make(map[EventType][]EventHandler),
		queue:     make(chan Event, queueSize),
		done:      make(chan struct{}),
	}
	go d.run()
	return d
}

// Publish enqueues the event for asynchronous delivery.
func (d *QueuedDispatcher) Publish(ctx context.Context, event Event) error {
	select {
	case d.queue <- event:
	default:
		d.mu.Lock()
		d.dropped++
		d.mu.Unlock()
	}
	return nil
}

// Subscribe registers a handler for the given event type.
func (d *QueuedDispatcher) Subscribe(eventType EventType, handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[eventType] = append(d.listeners[eventType], handler)
}

// Stop closes the queue and waits for the delivery loop to drain it.
func (d *QueuedDispatcher) Stop() {
	d.once.Do(func() {
		close(d.queue)
		<-d.done
	})
}

// Dropped reports the number of events discarded due to a full queue.
func (d *QueuedDispatcher) Dropped() int64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.dropped
}

func (d *QueuedDispatcher) run() {
	defer close(d.done)
	for event := range d.queue {
		d.mu.RLock()
		handlers := append([]EventHandler{}, d.listeners[event.Type]...)
		d.mu.RUnlock()

		for _, handler := range handlers {
			// handler errors do not stop delivery to the rest
			_ = handler(context.Background(), event)
		}
	}
}
