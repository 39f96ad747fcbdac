package repositories

import (
	"context"
	"os"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRedisRepo connects to the Redis instance named by REDIS_ADDR
// (default localhost:6379) and skips the test when none answers.
func newRedisRepo(t *testing.T) *RedisItemRepository {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 9})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis not available at %s: %v", addr, err)
	}
	require.NoError(t, client.FlushDB(context.Background()).Err())
	t.Cleanup(func() {
		_ = client.FlushDB(context.Background()).Err()
		_ = client.Close()
	})
	return NewRedisItemRepository(client)
}

func TestRedisRepositoryPutGet(t *testing.T) {
	repo := newRedisRepo(t)
	ctx := context.Background()

	item := testItem("id-1", "Widget")
	require.NoError(t, repo.Put(ctx, item))

	got, err := repo.Get(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)
	assert.Equal(t, item.Price, got.Price)
}

func TestRedisRepositoryGetMissing(t *testing.T) {
	repo := newRedisRepo(t)

	_, err := repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestRedisRepositoryDelete(t *testing.T) {
	repo := newRedisRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, testItem("id-1", "Widget")))
	require.NoError(t, repo.Delete(ctx, "id-1"))

	_, err := repo.Get(ctx, "id-1")
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "id-1"), ErrItemNotFound)
}

func TestRedisRepositoryAll(t *testing.T) {
	repo := newRedisRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, testItem("id-1", "Widget")))
	require.NoError(t, repo.Put(ctx, testItem("id-2", "Gadget")))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
