// Package listeners reacts to order lifecycle events. It counts them,
// pushes them to websocket and SSE subscribers and forwards them to the
// broker.
package listeners

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shashiranjanraj/shopdesk/app/models"
	"github.com/shashiranjanraj/shopdesk/app/services"
	"github.com/shashiranjanraj/shopdesk/pkg/broker"
	"github.com/shashiranjanraj/shopdesk/pkg/event"
	"github.com/shashiranjanraj/shopdesk/pkg/logger"
	"github.com/shashiranjanraj/shopdesk/pkg/metrics"
	"github.com/shashiranjanraj/shopdesk/pkg/sse"
	"github.com/shashiranjanraj/shopdesk/pkg/ws"
)

const publishTimeout = 5 * time.Second

// OrderEvents lists every event the order engine emits.
var OrderEvents = []string{
	services.EventOrderCreated,
	services.EventOrderUpdated,
	services.EventOrderDeleted,
}

// OrderEvent is the payload handed to listeners and put on the wire.
type OrderEvent struct {
	Event string       `json:"event"`
	Order models.Order `json:"order"`
	At    time.Time    `json:"at"`
}

// Notifier adapts an event.Dispatcher to services.Notifier. Listeners run
// asynchronously so a slow side-channel never delays a request.
type Notifier struct {
	events *event.Dispatcher
	now    func() time.Time
}

func NewNotifier(d *event.Dispatcher) *Notifier {
	return &Notifier{events: d, now: time.Now}
}

func (n *Notifier) Notify(ctx context.Context, name string, o models.Order) {
	n.events.FireAsync(ctx, name, OrderEvent{Event: name, Order: o, At: n.now().UTC()})
}

// Options selects the optional side-channels. Nil fields are skipped.
type Options struct {
	Hub    *ws.Hub
	Feed   *sse.Broker
	Broker broker.Publisher
}

// Register attaches the order listeners to d.
func Register(d *event.Dispatcher, opts Options) {
	for _, name := range OrderEvents {
		d.Listen(name, Count)
		if opts.Hub != nil {
			d.Listen(name, Broadcast(opts.Hub))
		}
		if opts.Feed != nil {
			d.Listen(name, Stream(opts.Feed))
		}
		if opts.Broker != nil {
			d.Listen(name, Publish(opts.Broker))
		}
	}
}

// Count increments the per-event Prometheus counter.
func Count(_ context.Context, payload any) {
	if e, ok := payload.(OrderEvent); ok {
		metrics.OrderEvents.WithLabelValues(e.Event).Inc()
	}
}

// Broadcast pushes the event to websocket subscribers.
func Broadcast(hub *ws.Hub) event.Handler {
	return func(ctx context.Context, payload any) {
		e, ok := payload.(OrderEvent)
		if !ok {
			return
		}
		data, err := json.Marshal(e)
		if err != nil {
			logger.WithCtx(ctx).Error("listeners: encode order event", "error", err)
			return
		}
		if !hub.Publish(data) {
			logger.WithCtx(ctx).Warn("listeners: ws hub backed up, event dropped", "event", e.Event)
		}
	}
}

// Stream pushes the event to server-sent event subscribers.
func Stream(feed *sse.Broker) event.Handler {
	return func(ctx context.Context, payload any) {
		e, ok := payload.(OrderEvent)
		if !ok {
			return
		}
		data, err := json.Marshal(e)
		if err != nil {
			logger.WithCtx(ctx).Error("listeners: encode order event", "error", err)
			return
		}
		feed.Publish(e.Event, data)
	}
}

// Publish forwards the event to the broker using the event name as the
// routing key.
func Publish(pub broker.Publisher) event.Handler {
	return func(ctx context.Context, payload any) {
		e, ok := payload.(OrderEvent)
		if !ok {
			return
		}
		data, err := json.Marshal(e)
		if err != nil {
			logger.WithCtx(ctx).Error("listeners: encode order event", "error", err)
			return
		}

		ctx, cancel := context.WithTimeout(ctx, publishTimeout)
		defer cancel()
		if err := pub.Publish(ctx, e.Event, data); err != nil {
			logger.WithCtx(ctx).Error("listeners: publish order event",
				"event", e.Event,
				"order", e.Order.ID.String(),
				"error", err,
			)
		}
	}
}
