//go:build integration

package mongostore_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/shashiranjanraj/shopdesk/app/repositories"
	"github.com/shashiranjanraj/shopdesk/app/repositories/mongostore"
	"github.com/shashiranjanraj/shopdesk/app/repositories/repotest"
	"github.com/shashiranjanraj/shopdesk/pkg/database"
)

func TestStore(t *testing.T) {
	ctx := context.Background()

	ctr, err := tcmongo.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(ctr) })

	uri, err := ctr.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := database.ConnectMongo(ctx, uri)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	n := 0
	repotest.Run(t, func(t *testing.T) repositories.Store {
		n++
		s := mongostore.New(client, fmt.Sprintf("shopdesk_test_%d", n))
		require.NoError(t, s.EnsureIndexes(ctx))
		t.Cleanup(func() { _ = s.Drop(context.Background()) })
		return s
	})
}
