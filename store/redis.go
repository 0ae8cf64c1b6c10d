package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/amonks/mindcache/item"
	"github.com/amonks/mindcache/markup"
)

const (
	itemsKeyPrefix     = "items:"
	itemOwnerKey       = "item-owner"
	tagColorsKeyPrefix = "tag-colors:"
	changesChannel     = "items-changed:"
)

// Redis stores items in redis hashes, one per owner, and announces every
// write on a per-owner pub/sub channel.
type Redis struct {
	client *redis.Client
	now    func() time.Time
}

// RedisOptions configures a Redis store.
type RedisOptions struct {
	// Now stamps new items. Defaults to time.Now.
	Now func() time.Time
}

// NewRedis wraps a connected client.
func NewRedis(client *redis.Client, opts RedisOptions) *Redis {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Redis{client: client, now: now}
}

// OpenRedis connects to the redis server at url (redis://host:port/db).
func OpenRedis(ctx context.Context, url string, opts RedisOptions) (*Redis, error) {
	parsed, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(parsed)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedis(client, opts), nil
}

// Close closes the client.
func (s *Redis) Close() error {
	return s.client.Close()
}

// ListItems returns the owner's items, newest first.
func (s *Redis) ListItems(ctx context.Context, owner string) ([]item.Item, error) {
	values, err := s.client.HGetAll(ctx, itemsKeyPrefix+owner).Result()
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	items := make([]item.Item, 0, len(values))
	for id, raw := range values {
		var it item.Item
		if err := json.Unmarshal([]byte(raw), &it); err != nil {
			return nil, fmt.Errorf("decode item %s: %w", id, err)
		}
		items = append(items, it)
	}
	sortNewestFirst(items)
	return items, nil
}

// InsertItem stores a new item under a random UUID.
func (s *Redis) InsertItem(ctx context.Context, owner string, parsed item.Parsed) (string, error) {
	id := uuid.NewString()
	data, err := json.Marshal(parsed.Item(id, s.now()))
	if err != nil {
		return "", fmt.Errorf("encode item: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, itemsKeyPrefix+owner, id, data)
		pipe.HSet(ctx, itemOwnerKey, id, owner)
		pipe.Publish(ctx, changesChannel+owner, id)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("insert item: %w", err)
	}
	return id, nil
}

func (s *Redis) owner(ctx context.Context, id string) (string, error) {
	owner, err := s.client.HGet(ctx, itemOwnerKey, id).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: %s", item.ErrItemNotFound, id)
	}
	if err != nil {
		return "", fmt.Errorf("find item owner: %w", err)
	}
	return owner, nil
}

// UpdateItem applies a partial update.
func (s *Redis) UpdateItem(ctx context.Context, id string, update item.Update) error {
	owner, err := s.owner(ctx, id)
	if err != nil {
		return err
	}
	key := itemsKeyPrefix + owner
	raw, err := s.client.HGet(ctx, key, id).Result()
	if errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: %s", item.ErrItemNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("read item: %w", err)
	}

	var it item.Item
	if err := json.Unmarshal([]byte(raw), &it); err != nil {
		return fmt.Errorf("decode item %s: %w", id, err)
	}
	data, err := json.Marshal(update.Apply(it))
	if err != nil {
		return fmt.Errorf("encode item: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, id, data)
		pipe.Publish(ctx, changesChannel+owner, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// DeleteItem removes an item.
func (s *Redis) DeleteItem(ctx context.Context, id string) error {
	owner, err := s.owner(ctx, id)
	if err != nil {
		return err
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HDel(ctx, itemsKeyPrefix+owner, id)
		pipe.HDel(ctx, itemOwnerKey, id)
		pipe.Publish(ctx, changesChannel+owner, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// CustomTagColors returns the owner's tag colors.
func (s *Redis) CustomTagColors(ctx context.Context, owner string) (markup.TagColors, error) {
	raw, err := s.client.Get(ctx, tagColorsKeyPrefix+owner).Result()
	if errors.Is(err, redis.Nil) {
		return markup.TagColors{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read tag colors: %w", err)
	}
	colors := markup.TagColors{}
	if err := json.Unmarshal([]byte(raw), &colors); err != nil {
		return nil, fmt.Errorf("decode tag colors: %w", err)
	}
	return colors, nil
}

// SetCustomTagColors replaces the owner's tag colors.
func (s *Redis) SetCustomTagColors(ctx context.Context, owner string, colors markup.TagColors) error {
	data, err := json.Marshal(colors)
	if err != nil {
		return fmt.Errorf("encode tag colors: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, tagColorsKeyPrefix+owner, data, 0)
		pipe.Publish(ctx, changesChannel+owner, "")
		return nil
	})
	if err != nil {
		return fmt.Errorf("write tag colors: %w", err)
	}
	return nil
}

// Watch subscribes to the owner's change channel.
func (s *Redis) Watch(ctx context.Context, owner string) (<-chan item.Event, error) {
	sub := s.client.Subscribe(ctx, changesChannel+owner)
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	events := make(chan item.Event, 1)
	go func() {
		defer close(events)
		defer sub.Close()

		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				select {
				case events <- item.Event{Owner: owner}:
				default:
				}
			}
		}
	}()
	return events, nil
}
