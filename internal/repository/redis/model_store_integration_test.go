//go:build integration

package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"materialAdvisor/domain"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(ctx) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())
	return client
}

func TestModelStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewModelStore(startRedis(t), "test:model")

	_, err := store.LoadModel(ctx)
	assert.ErrorIs(t, err, domain.ErrModelNotFound)

	for v := 1; v <= 12; v++ {
		require.NoError(t, store.SaveModel(ctx, domain.Model{
			Version:    v,
			Weights:    map[string]float64{domain.DimCost: 0.1 * float64(v%10)},
			Confidence: 0.5,
			TrainedAt:  time.Date(2026, 1, v, 0, 0, 0, 0, time.UTC),
		}))
	}

	got, err := store.LoadModel(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, got.Version)

	history, err := store.history(ctx)
	require.NoError(t, err)
	require.Len(t, history, defaultHistorySize)
	assert.Equal(t, 12, history[0].Version)
	assert.Equal(t, 3, history[len(history)-1].Version)
}
