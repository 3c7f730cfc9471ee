package game

import (
	"log"
	"time"

	models "Tambola/models/postgres"
	redis_models "Tambola/models/redis"
	redis_service "Tambola/services/redis"
)

// PublishLiveState mirrors the game's runtime state into Redis for polling
// clients. A nil store or a failed write never fails the triggering
// operation; PostgreSQL stays authoritative.
func PublishLiveState(rdb redis_service.LiveStateStore, game *models.Game, lastClaimAt *time.Time) {
	if rdb == nil {
		return
	}
	state := &redis_models.GameLiveState{
		GameID:          game.ID,
		Code:            game.Code,
		Status:          game.Status,
		GameMode:        game.GameMode,
		PlayerCount:     len(game.PlayerIDs),
		WaitlistCount:   len(game.WaitlistIDs),
		EliminatedCount: len(game.EliminatedPlayerIDs),
		WinnerID:        game.WinnerID,
		LastClaimAt:     lastClaimAt,
		UpdatedAt:       time.Now(),
	}
	if err := rdb.SaveGameLiveState(state); err != nil {
		log.Printf("[LIVE-STATE] failed to publish state for game %s: %v", game.ID, err)
	}
}
