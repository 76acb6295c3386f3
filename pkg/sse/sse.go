// Package sse streams server-sent events. A Broker fans published events
// out to every connected client; Handler serves one client per request.
//
//	feed := sse.NewBroker(16)
//	r.Get("/sse/orders", "sse.orders", sse.Handler(feed, 15*time.Second).ServeHTTP)
//	feed.Publish("order.created", payload)
package sse

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-faster/errors"

	"github.com/shashiranjanraj/shopdesk/pkg/logger"
	"github.com/shashiranjanraj/shopdesk/pkg/metrics"
)

// ErrUnsupported is returned by New when the response cannot be flushed.
var ErrUnsupported = errors.New("sse: streaming not supported")

// Event is one named message. Data must be a single line, typically JSON.
type Event struct {
	Name string
	Data []byte
}

// Stream writes events to a single client.
type Stream struct {
	w   http.ResponseWriter
	rc  *http.ResponseController
	ctx context.Context
}

// New prepares w for streaming and sends the headers.
func New(w http.ResponseWriter, r *http.Request) (*Stream, error) {
	rc := http.NewResponseController(w)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // disable nginx buffering
	w.WriteHeader(http.StatusOK)

	if err := rc.Flush(); err != nil {
		return nil, ErrUnsupported
	}
	return &Stream{w: w, rc: rc, ctx: r.Context()}, nil
}

// Send writes a named event.
func (s *Stream) Send(e Event) error {
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", e.Name, e.Data); err != nil {
		return errors.Wrap(err, "sse: write")
	}
	return s.rc.Flush()
}

// Comment writes an SSE comment, used as a keepalive.
func (s *Stream) Comment(msg string) error {
	if _, err := fmt.Fprintf(s.w, ": %s\n\n", msg); err != nil {
		return errors.Wrap(err, "sse: write")
	}
	return s.rc.Flush()
}

// Done is closed when the client goes away.
func (s *Stream) Done() <-chan struct{} { return s.ctx.Done() }

// Broker fans events out to subscribers. A subscriber whose buffer is full
// misses the event rather than blocking the publisher.
type Broker struct {
	mu     sync.Mutex
	subs   map[chan Event]struct{}
	buffer int
}

func NewBroker(buffer int) *Broker {
	if buffer <= 0 {
		buffer = 16
	}
	return &Broker{subs: make(map[chan Event]struct{}), buffer: buffer}
}

// Subscribe registers a subscriber. The returned func unsubscribes and
// closes the channel; it is safe to call more than once.
func (b *Broker) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, b.buffer)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	metrics.SSEClients.Inc()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, ch)
			b.mu.Unlock()
			close(ch)
			metrics.SSEClients.Dec()
		})
	}
}

// Publish delivers e to every subscriber and returns how many received it.
func (b *Broker) Publish(name string, data []byte) int {
	e := Event{Name: name, Data: data}

	b.mu.Lock()
	defer b.mu.Unlock()

	delivered := 0
	for ch := range b.subs {
		select {
		case ch <- e:
			delivered++
		default:
		}
	}
	return delivered
}

// Subscribers reports how many clients are connected.
func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Handler streams b to each request until the client disconnects. A
// comment is sent every heartbeat to keep proxies from closing the stream.
func Handler(b *Broker, heartbeat time.Duration) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		events, cancel := b.Subscribe()
		defer cancel()

		stream, err := New(w, r)
		if err != nil {
			logger.WithCtx(r.Context()).Warn("sse: subscribe failed", "error", err)
			return
		}

		ticker := time.NewTicker(heartbeat)
		defer ticker.Stop()

		for {
			select {
			case <-stream.Done():
				return
			case <-ticker.C:
				if err := stream.Comment("ping"); err != nil {
					return
				}
			case e := <-events:
				if err := stream.Send(e); err != nil {
					return
				}
			}
		}
	})
}
