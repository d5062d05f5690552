package events

import (
	"sync"
	"time"

	"github.com/m04kA/SMC-HallBookingService/internal/domain"
)

// Type kind of a booking change
type Type string

const (
	BookingCreated Type = "booking.created"
	BookingUpdated Type = "booking.updated"
	BookingDeleted Type = "booking.deleted"

	CapacityChanged       Type = "capacity.changed"
	TurnoverConfigChanged Type = "turnover_config.changed"
)

// Event describes a change of hall occupancy
type Event struct {
	Type       Type
	FacilityID int64
	HallID     int64
	Date       time.Time
	Booking    *domain.Booking // nil for capacity and config events
	OccurredAt time.Time
}

// Handler reacts to an event. Errors are passed to the bus error hook.
type Handler func(event Event) error

// Bus in-process publish/subscribe of hall changes
type Bus struct {
	subscribers map[Type][]Handler
	onError     func(event Event, err error)
	mu          sync.RWMutex
}

// NewBus creates an empty bus. onError may be nil.
func NewBus(onError func(event Event, err error)) *Bus {
	return &Bus{
		subscribers: make(map[Type][]Handler),
		onError:     onError,
	}
}

// Subscribe registers handler for the given event types.
// The returned function removes the subscription.
func (b *Bus) Subscribe(handler Handler, types ...Type) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ids := make(map[Type]int, len(types))
	for _, t := range types {
		ids[t] = len(b.subscribers[t])
		b.subscribers[t] = append(b.subscribers[t], handler)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for t, idx := range ids {
				// replaced by nil to keep the other indices valid
				if idx < len(b.subscribers[t]) {
					b.subscribers[t][idx] = nil
				}
			}
		})
	}
}

// Publish delivers event synchronously to every subscriber of its type
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	for _, handler := range handlers {
		if handler == nil {
			continue
		}
		if err := handler(event); err != nil && b.onError != nil {
			b.onError(event, err)
		}
	}
}
