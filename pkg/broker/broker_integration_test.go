//go:build integration

package broker_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/shashiranjanraj/shopdesk/pkg/broker"
)

func TestAMQP_PublishReachesBoundQueue(t *testing.T) {
	ctx := context.Background()

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "rabbitmq:3-alpine",
			ExposedPorts: []string{"5672/tcp"},
			WaitingFor:   wait.ForLog("Server startup complete").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(ctr) })

	endpoint, err := ctr.PortEndpoint(ctx, "5672/tcp", "")
	require.NoError(t, err)
	url := fmt.Sprintf("amqp://guest:guest@%s/", endpoint)

	p, err := broker.Dial(url, "shopdesk.events")
	require.NoError(t, err)
	defer p.Close()

	conn, err := amqp.Dial(url)
	require.NoError(t, err)
	defer conn.Close()
	ch, err := conn.Channel()
	require.NoError(t, err)
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	require.NoError(t, err)
	require.NoError(t, ch.QueueBind(q.Name, "order.*", p.Exchange(), false, nil))

	msgs, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	require.NoError(t, err)

	require.NoError(t, p.Publish(ctx, "order.created", []byte(`{"id":"1"}`)))

	select {
	case d := <-msgs:
		assert.Equal(t, "order.created", d.RoutingKey)
		assert.JSONEq(t, `{"id":"1"}`, string(d.Body))
	case <-time.After(10 * time.Second):
		t.Fatal("message not delivered")
	}
}
