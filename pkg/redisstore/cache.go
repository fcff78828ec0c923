package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const directoryKey = "statuspage:directory"

func orgIndexKey(orgID uuid.UUID) string {
	return fmt.Sprintf("statuspage:org:%v:keys", orgID)
}

func StatusKey(orgID uuid.UUID) string {
	return fmt.Sprintf("statuspage:org:%v:status", orgID)
}

func TimelineKey(orgID uuid.UUID, days int) string {
	return fmt.Sprintf("statuspage:org:%v:timeline:%d", orgID, days)
}

func SubdomainKey(subdomain string) string {
	return fmt.Sprintf("statuspage:subdomain:%s", subdomain)
}

// GetJSON decodes the value at key into dst. A miss returns false and no error.
func (c *Client) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		// treat a corrupt entry as a miss and drop it
		_ = c.rdb.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

// SetOrgJSON caches v under key and records key in the organization's index
// so InvalidateOrg can find it.
func (c *Client) SetOrgJSON(ctx context.Context, orgID uuid.UUID, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal cache value: %w", err)
	}

	idx := orgIndexKey(orgID)
	return retry(ctx, 2, func() error {
		_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, raw, ttl)
			pipe.SAdd(ctx, idx, key)
			pipe.Expire(ctx, idx, ttl*2)
			return nil
		})
		return err
	})
}

func (c *Client) GetDirectory(ctx context.Context, dst any) (bool, error) {
	return c.GetJSON(ctx, directoryKey, dst)
}

func (c *Client) SetDirectory(ctx context.Context, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal directory: %w", err)
	}
	return retry(ctx, 2, func() error {
		return c.rdb.Set(ctx, directoryKey, raw, ttl).Err()
	})
}

// InvalidateOrg drops every cached view of the organization plus the directory.
func (c *Client) InvalidateOrg(ctx context.Context, orgID uuid.UUID) error {
	idx := orgIndexKey(orgID)

	return retry(ctx, 3, func() error {
		keys, err := c.rdb.SMembers(ctx, idx).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		keys = append(keys, idx, directoryKey, StatusKey(orgID))
		return c.rdb.Del(ctx, keys...).Err()
	})
}
