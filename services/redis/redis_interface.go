package redis

import (
	redis_models "Tambola/models/redis"
)

// LiveStateStore is the slice of RedisClient the game services depend on.
// Tests substitute an in-memory fake.
type LiveStateStore interface {
	SaveGameLiveState(state *redis_models.GameLiveState) error
	GetGameLiveState(gameID string) (*redis_models.GameLiveState, error)
	DeleteGameLiveState(gameID string) error
}

var _ LiveStateStore = (*RedisClient)(nil)
