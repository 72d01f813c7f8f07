package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	EntityAppointment  = "appointment"
	EntityAvailability = "availability"

	ActionAppointmentCreated      = "appointment_created"
	ActionAppointmentCancelled    = "appointment_cancelled"
	ActionAppointmentRescheduled  = "appointment_rescheduled"
	ActionAppointmentConflict     = "appointment_conflict"
	ActionAvailabilityCreated     = "availability_created"
	ActionAvailabilityDeactivated = "availability_deactivated"
)

type Event struct {
	ActorID    *uint
	Action     string
	Entity     string
	EntityID   *uint
	Metadata   any
	OccurredAt time.Time
}

// Sink stores or forwards one event.
type Sink interface {
	Record(ctx context.Context, ev Event) error
}

// Emitter is what use cases depend on.
type Emitter interface {
	Dispatch(ev Event)
}

type discard struct{}

func (discard) Dispatch(Event) {}

// Discard drops every event.
var Discard Emitter = discard{}

// Dispatcher records events off the request path.
type Dispatcher struct {
	sinks []Sink
	log   *slog.Logger
	queue chan Event

	// mu guards closed and the send on queue against close(queue).
	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(log *slog.Logger, sinks ...Sink) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}

	d := &Dispatcher{
		sinks: sinks,
		log:   log.With(slog.String("component", "audit")),
		queue: make(chan Event, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		for _, s := range d.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := s.Record(ctx, ev); err != nil {
				d.log.Warn("audit sink failed",
					slog.String("action", ev.Action),
					slog.Any("err", err),
				)
			}
			cancel()
		}
	}
}

// Dispatch never blocks: when the queue is full the event is dropped.
func (d *Dispatcher) Dispatch(ev Event) {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", slog.String("action", ev.Action))
	}
}

func Ptr(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}

// Close stops accepting events and waits for the queue to drain or ctx to end.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
