package notify

import (
	"context"
	"log"
	"sync"
	"time"
)

const sendTimeout = 15 * time.Second

// Dispatcher runs a background worker that drains queued messages through
// the mailer. Enqueue never blocks and never fails the caller; a full
// queue or a delivery failure only produces a log entry.
type Dispatcher struct {
	mailer Mailer
	jobs   chan Message
	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

func NewDispatcher(mailer Mailer, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = 64
	}
	return &Dispatcher{
		mailer: mailer,
		jobs:   make(chan Message, buffer),
	}
}

// Start launches the worker goroutine. Safe to call once.
func (d *Dispatcher) Start() {
	if d.mailer == nil {
		log.Println("[NOTIFY] mailer not configured, queued messages will be dropped")
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for msg := range d.jobs {
			if d.mailer == nil {
				continue
			}
			ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
			if err := d.mailer.Send(ctx, msg); err != nil {
				log.Printf("[NOTIFY] send failed (subject %q): %v", msg.Subject, err)
			}
			cancel()
		}
	}()
}

// Enqueue hands a message to the worker without blocking. Messages
// enqueued after Close are dropped, not panicked on.
func (d *Dispatcher) Enqueue(msg Message) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		log.Printf("[NOTIFY] dispatcher closed, dropping message (subject %q)", msg.Subject)
		return
	}

	select {
	case d.jobs <- msg:
	default:
		log.Printf("[NOTIFY] queue full, dropping message (subject %q)", msg.Subject)
	}
}

// Close drains remaining messages and stops the worker. Safe to call more
// than once.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.jobs)
	}
	d.mu.Unlock()
	d.wg.Wait()
}
