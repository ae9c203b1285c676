package audit

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

const (
	ActionAppointmentCreated   = "appointment_created"
	ActionAppointmentConflict  = "appointment_conflict"
	ActionAppointmentConfirmed = "appointment_confirmed"
	ActionAppointmentCancelled = "appointment_cancelled"
	ActionDepositToggled       = "deposit_toggled"

	EntityAppointment = "appointment"
)

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uuid.UUID
	Metadata any
}

type Writer interface {
	Write(ev Event) error
}

// Dispatcher writes events on a background goroutine so request paths never
// wait on the audit table.
type Dispatcher struct {
	writer Writer
	log    *slog.Logger
	queue  chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(writer Writer, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	d := &Dispatcher{
		writer: writer,
		log:    log.With(slog.String("component", "audit")),
		queue:  make(chan Event, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.writer.Write(ev); err != nil {
			d.log.Error("audit write failed",
				slog.String("action", ev.Action),
				slog.Any("err", err),
			)
		}
	}
}

// Dispatch enqueues ev. A nil dispatcher, a full queue or a closed
// dispatcher drops the event.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
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

// Close stops accepting events and waits for queued ones to be written.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	<-d.done
}
