package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inamate/snapkit/internal/designer"
)

const keyPrefix = "snapkit:guides:"

// Redis keeps one sorted set per workspace, scored by insertion time, with
// guide JSON stored in a companion hash.
type Redis struct {
	client *redis.Client
}

func NewRedis(ctx context.Context, url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Redis{client: client}, nil
}

func orderKey(workspaceID string) string { return keyPrefix + workspaceID + ":order" }
func dataKey(workspaceID string) string  { return keyPrefix + workspaceID }

func (r *Redis) List(ctx context.Context, workspaceID string) ([]designer.Guide, error) {
	ids, err := r.client.ZRange(ctx, orderKey(workspaceID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list guides: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	values, err := r.client.HMGet(ctx, dataKey(workspaceID), ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("list guides: %w", err)
	}

	guides := make([]designer.Guide, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var g designer.Guide
		if err := json.Unmarshal([]byte(s), &g); err != nil {
			return nil, fmt.Errorf("decode guide: %w", err)
		}
		guides = append(guides, g)
	}
	return guides, nil
}

func (r *Redis) Save(ctx context.Context, workspaceID string, g designer.Guide) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encode guide: %w", err)
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, dataKey(workspaceID), g.ID, data)
		pipe.ZAddNX(ctx, orderKey(workspaceID), redis.Z{Score: float64(time.Now().UnixNano()), Member: g.ID})
		return nil
	})
	if err != nil {
		return fmt.Errorf("save guide: %w", err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, workspaceID, guideID string) error {
	var removed *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		removed = pipe.HDel(ctx, dataKey(workspaceID), guideID)
		pipe.ZRem(ctx, orderKey(workspaceID), guideID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete guide: %w", err)
	}
	if removed.Val() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Redis) Close() {
	r.client.Close()
}
