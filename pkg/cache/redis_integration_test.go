//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/shashiranjanraj/shopdesk/pkg/cache"
)

func TestStore_Redis(t *testing.T) {
	ctx := context.Background()

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(ctr) })

	addr, err := ctr.PortEndpoint(ctx, "6379/tcp", "")
	require.NoError(t, err)

	s, err := cache.Connect(ctx, addr, "", "it:")
	require.NoError(t, err)
	defer s.Close()

	type product struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	require.NoError(t, s.Set(ctx, "p1", product{"Mug", 9.5}, time.Minute))

	var got product
	assert.True(t, s.Get(ctx, "p1", &got))
	assert.Equal(t, product{"Mug", 9.5}, got)

	require.NoError(t, s.Del(ctx, "p1"))
	assert.False(t, s.Get(ctx, "p1", &got))
}
