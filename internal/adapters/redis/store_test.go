package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/strataforge/strata/pkg/layer"
	"github.com/strataforge/strata/pkg/ports"
)

func newTestStore(t *testing.T, opts ...Option) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := NewFromClient(client, opts...)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestRedisStoreContract(t *testing.T) {
	store, _ := newTestStore(t)
	ports.RunLayerStoreContract(t, store)
}

func TestRedisStoreKeyPrefix(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, WithPrefix("scene:"))

	require.NoError(t, store.Save(ctx, "shot.yaml", layer.New("shot.yaml")))
	assert.True(t, mr.Exists("scene:shot.yaml"))
	assert.True(t, mr.Exists("scene:index"))
}

func TestRedisStoreTTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, WithTTL(time.Minute))

	require.NoError(t, store.Save(ctx, "shot.yaml", layer.New("shot.yaml")))
	assert.Greater(t, mr.TTL("strata:layer:shot.yaml"), time.Duration(0))

	t.Run("Expired layers drop out of List", func(t *testing.T) {
		mr.FastForward(2 * time.Minute)

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.NotContains(t, ids, "shot.yaml")
	})
}
