package audit

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

type Event struct {
	StaffID  *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

type Sink interface {
	Log(ctx context.Context, ev Event) error
}

// Dispatcher writes audit events from a single background goroutine so
// request handlers never wait on the audit table.
type Dispatcher struct {
	sink  Sink
	queue chan Event
	log   logrus.FieldLogger

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

const queueSize = 100

func NewDispatcher(sink Sink, log logrus.FieldLogger) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Event, queueSize),
		log:   log,
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.sink.Log(context.Background(), ev); err != nil {
			d.log.WithError(err).
				WithField("action", ev.Action).
				Error("audit write failed")
		}
	}
}

// Dispatch enqueues ev. When the queue is full the event is dropped; the
// request that produced it still succeeds. A nil Dispatcher discards.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.WithField("action", ev.Action).Warn("audit dispatcher closed, dropping event")
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.WithField("action", ev.Action).Warn("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits until queued ones are written or
// ctx ends.
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

// Record is a helper for the common "staff did action on entity id" event.
func (d *Dispatcher) Record(staffID uint, action, entity string, entityID uint, meta any) {
	ev := Event{
		Action:   action,
		Entity:   entity,
		Metadata: meta,
	}
	if staffID != 0 {
		ev.StaffID = &staffID
	}
	if entityID != 0 {
		ev.EntityID = &entityID
	}
	d.Dispatch(ev)
}
