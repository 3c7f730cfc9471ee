package redis

import (
	redis_models "Tambola/models/redis"
	redis_utils "Tambola/services/redis/utils"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient handles Redis operations
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(Addr string, DB int) *RedisClient {
	var client *redis.Client
	if Addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(Addr)
		if err != nil {
			panic("Error parsing Redis URL")
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: Addr,
			DB:   DB,
		})
	}
	return &RedisClient{
		client: client,
		ctx:    context.Background(),
	}
}

// SaveGameLiveState stores a game's runtime snapshot in Redis
// Key format: "game:{id}:live"
// TTL: 24 hours
func (rc *RedisClient) SaveGameLiveState(state *redis_models.GameLiveState) error {
	key := redis_utils.FormatGameLiveKey(state.GameID)
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("error marshaling live state: %v", err)
	}
	return rc.client.Set(rc.ctx, key, data, 24*time.Hour).Err()
}

// GetGameLiveState retrieves a game's runtime snapshot from Redis
// Key format: "game:{id}:live"
// Returns nil without error when no snapshot exists yet
func (rc *RedisClient) GetGameLiveState(gameID string) (*redis_models.GameLiveState, error) {
	key := redis_utils.FormatGameLiveKey(gameID)
	data, err := rc.client.Get(rc.ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting live state: %v", err)
	}

	var state redis_models.GameLiveState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("error unmarshaling live state: %v", err)
	}
	return &state, nil
}

// DeleteGameLiveState removes a game's runtime snapshot from Redis
func (rc *RedisClient) DeleteGameLiveState(gameID string) error {
	key := redis_utils.FormatGameLiveKey(gameID)
	if err := rc.client.Del(rc.ctx, key).Err(); err != nil {
		return fmt.Errorf("error deleting live state: %v", err)
	}
	return nil
}

// CleanupKeys removes the specified keys from Redis
func (rc *RedisClient) CleanupKeys(keys []string) error {
	for _, key := range keys {
		if err := rc.client.Del(rc.ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to cleanup Redis key %s: %v", key, err)
		}
	}
	return nil
}
