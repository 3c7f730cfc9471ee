package redis_models

import "time"

/*
 * 'GameLiveState' is the Redis mirror of a game's runtime state, written by
 * the lifecycle and claim paths and read by polling clients. It never feeds
 * back into PostgreSQL; the document store stays authoritative.
 */
type GameLiveState struct {
	GameID          string     `json:"game_id"`
	Code            string     `json:"code"`
	Status          string     `json:"status"`
	GameMode        string     `json:"game_mode"`
	PlayerCount     int        `json:"player_count"`
	WaitlistCount   int        `json:"waitlist_count"`
	EliminatedCount int        `json:"eliminated_count"`
	WinnerID        *string    `json:"winner_id,omitempty"`
	LastClaimAt     *time.Time `json:"last_claim_at,omitempty"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
