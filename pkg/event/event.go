// Package event dispatches named events to registered listeners. Async
// dispatch runs on a bounded worker pool and drops events when it is full.
package event

import (
	"context"
	"sync"

	"github.com/go-faster/errors"

	"github.com/shashiranjanraj/shopdesk/pkg/logger"
	"github.com/shashiranjanraj/shopdesk/pkg/workerpool"
)

// Handler receives an event payload.
type Handler func(ctx context.Context, payload any)

// Dispatcher holds the listener table.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	pool     *workerpool.Pool
}

// New returns a Dispatcher whose async handlers run on pool. A nil pool makes
// FireAsync behave like Fire.
func New(pool *workerpool.Pool) *Dispatcher {
	return &Dispatcher{handlers: make(map[string][]Handler), pool: pool}
}

// Listen registers handler for name.
func (d *Dispatcher) Listen(name string, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = append(d.handlers[name], handler)
}

func (d *Dispatcher) listeners(name string) []Handler {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]Handler(nil), d.handlers[name]...)
}

// Fire calls every listener of name in registration order.
func (d *Dispatcher) Fire(ctx context.Context, name string, payload any) {
	for _, h := range d.listeners(name) {
		h(ctx, payload)
	}
}

// FireAsync hands each listener to the pool and returns immediately. The
// listeners see ctx's values but not its cancellation.
func (d *Dispatcher) FireAsync(ctx context.Context, name string, payload any) {
	if d.pool == nil {
		d.Fire(ctx, name, payload)
		return
	}

	detached := context.WithoutCancel(ctx)
	for _, h := range d.listeners(name) {
		h := h
		err := d.pool.Submit(func() { h(detached, payload) })
		if errors.Is(err, workerpool.ErrPoolFull) || errors.Is(err, workerpool.ErrPoolClosed) {
			logger.WithCtx(ctx).Warn("event: listener dropped", "event", name, "error", err)
		}
	}
}
