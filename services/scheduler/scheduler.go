package scheduler

import (
	"context"
	"log"
	"time"

	game_constants "Tambola/constants/game"
	models "Tambola/models/postgres"
	game_service "Tambola/services/game"
	redis_service "Tambola/services/redis"

	"gorm.io/gorm"
)

// DefaultInterval matches the once-per-minute sweep of the cron the admin
// platform used to run.
const DefaultInterval = time.Minute

// Start runs the auto-start sweep until ctx is cancelled. The sweep itself
// never fails: per-game errors are logged and swallowed so one bad game
// cannot block the rest.
func Start(ctx context.Context, db *gorm.DB, rdb redis_service.LiveStateStore, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Println("Scheduler stopped")
				return
			case now := <-ticker.C:
				SweepOnce(db, rdb, now)
			}
		}
	}()
}

// SweepOnce starts every SCHEDULED game whose start time has passed.
func SweepOnce(db *gorm.DB, rdb redis_service.LiveStateStore, now time.Time) int {
	var games []models.Game
	err := db.Where("status = ? AND game_start_date IS NOT NULL AND game_start_date <= ?",
		game_constants.StatusScheduled, now).Find(&games).Error
	if err != nil {
		log.Printf("[SCHEDULER] error listing due games: %v", err)
		return 0
	}
	return startDue(games, func(gameID string) error {
		_, err := game_service.StartGame(db, rdb, gameID, true)
		return err
	})
}

// startDue fires the start calls independently; a failure on one game
// (e.g. it was concurrently moved out of SCHEDULED) does not affect the
// others. Returns the number of games started.
func startDue(games []models.Game, start func(gameID string) error) int {
	started := 0
	for _, g := range games {
		if err := start(g.ID); err != nil {
			log.Printf("[SCHEDULER] could not start game %s (%s): %v", g.ID, g.Code, err)
			continue
		}
		started++
	}
	return started
}
