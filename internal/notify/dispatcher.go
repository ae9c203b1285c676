package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type message struct {
	recipient string
	subject   string
	body      string
}

// Dispatcher is a Notifier that hands messages to a background worker.
// Notify never blocks on delivery; a full queue drops the message.
type Dispatcher struct {
	next    Notifier
	log     *slog.Logger
	timeout time.Duration
	queue   chan message

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(next Notifier, log *slog.Logger, size int, timeout time.Duration) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	if size <= 0 {
		size = 100
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	d := &Dispatcher{
		next:    next,
		log:     log.With(slog.String("component", "notify")),
		timeout: timeout,
		queue:   make(chan message, size),
		done:    make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for m := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		if err := d.next.Notify(ctx, m.recipient, m.subject, m.body); err != nil {
			d.log.Warn("notification failed",
				slog.String("to", m.recipient),
				slog.String("subject", m.subject),
				slog.Any("err", err),
			)
		}
		cancel()
	}
}

func (d *Dispatcher) Notify(ctx context.Context, recipient, subject, body string) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrClosed
	}

	select {
	case d.queue <- message{recipient: recipient, subject: subject, body: body}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops intake and waits until queued messages have been attempted.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	<-d.done
}
