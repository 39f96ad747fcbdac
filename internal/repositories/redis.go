package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"katalog/internal/models"
)

const itemsIndexKey = "items"

// RedisItemRepository stores each item as a JSON value under item:{id},
// with a set of known ids for enumeration.
type RedisItemRepository struct {
	client *redis.Client
}

// NewRedisItemRepository creates a repository on top of an existing
// client.
func NewRedisItemRepository(client *redis.Client) *RedisItemRepository {
	return &RedisItemRepository{client: client}
}

func itemKey(id string) string {
	return fmt.Sprintf("item:%s", id)
}

// Put stores the item and records its id in the index set.
func (r *RedisItemRepository) Put(ctx context.Context, item *models.Item) error {
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}
	pipe := r.client.Pipeline()
	pipe.Set(ctx, itemKey(item.ID), data, 0)
	pipe.SAdd(ctx, itemsIndexKey, item.ID)
	_, err = pipe.Exec(ctx)
	return err
}

// Get returns the item stored under id, or ErrItemNotFound.
func (r *RedisItemRepository) Get(ctx context.Context, id string) (*models.Item, error) {
	data, err := r.client.Get(ctx, itemKey(id)).Result()
	if err == redis.Nil {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	var item models.Item
	if err := json.Unmarshal([]byte(data), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes the item and its index entry. The existence check runs
// before the removal so absent ids surface as ErrItemNotFound.
func (r *RedisItemRepository) Delete(ctx context.Context, id string) error {
	exists, err := r.client.Exists(ctx, itemKey(id)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return ErrItemNotFound
	}
	pipe := r.client.Pipeline()
	pipe.Del(ctx, itemKey(id))
	pipe.SRem(ctx, itemsIndexKey, id)
	_, err = pipe.Exec(ctx)
	return err
}

// All enumerates the index set and fetches every item with a single
// pipelined round trip. Ids whose value vanished between the two steps
// are skipped.
func (r *RedisItemRepository) All(ctx context.Context) ([]*models.Item, error) {
	ids, err := r.client.SMembers(ctx, itemsIndexKey).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*models.Item{}, nil
	}
	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Get(ctx, itemKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, err
	}
	items := make([]*models.Item, 0, len(ids))
	for _, cmd := range cmds {
		data, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, err
		}
		var item models.Item
		if err := json.Unmarshal([]byte(data), &item); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, nil
}
