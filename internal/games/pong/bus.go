package pong

import (
	"sync"

	"github.com/charmbracelet/log"
)

// Subscriber receives engine events.
type Subscriber func(Event)

// Bus fans events out to subscribers. Delivery is fire-and-forget: a
// panicking subscriber is logged and the rest still receive the event.
type Bus struct {
	mu     sync.RWMutex
	subs   []Subscriber
	logger *log.Logger
}

// NewBus creates a bus. A nil logger falls back to the default logger.
func NewBus(logger *log.Logger) *Bus {
	if logger == nil {
		logger = log.Default()
	}
	return &Bus{logger: logger}
}

// Subscribe registers fn for every future event.
func (b *Bus) Subscribe(fn Subscriber) {
	if fn == nil {
		return
	}
	b.mu.Lock()
	b.subs = append(b.subs, fn)
	b.mu.Unlock()
}

// Publish delivers events in order to every subscriber.
func (b *Bus) Publish(events ...Event) {
	if len(events) == 0 {
		return
	}

	b.mu.RLock()
	subs := b.subs
	b.mu.RUnlock()

	for _, ev := range events {
		for _, fn := range subs {
			b.deliver(fn, ev)
		}
	}
}

func (b *Bus) deliver(fn Subscriber, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event subscriber panicked", "event", ev.Kind, "panic", r)
		}
	}()
	fn(ev)
}
