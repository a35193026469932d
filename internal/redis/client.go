package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrSessionNotFound is returned when a session key is missing or expired.
var ErrSessionNotFound = errors.New("session not found")

const sessionPrefix = "session:"

type Client struct {
	rdb *redis.Client
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Session management
func (c *Client) SetSession(sessionID string, data interface{}, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	return c.rdb.Set(ctx, sessionPrefix+sessionID, jsonData, ttl).Err()
}

func (c *Client) GetSession(sessionID string, dest interface{}) error {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, sessionPrefix+sessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrSessionNotFound
		}
		return fmt.Errorf("failed to get session: %w", err)
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return fmt.Errorf("failed to unmarshal session data: %w", err)
	}
	return nil
}

func (c *Client) DeleteSession(sessionID string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, sessionPrefix+sessionID).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
