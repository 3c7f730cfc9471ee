package scheduler

import (
	"errors"
	"testing"
	"time"

	game_constants "Tambola/constants/game"
	models "Tambola/models/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestStartDueStartsEveryGame(t *testing.T) {
	games := []models.Game{{ID: "g1"}, {ID: "g2"}, {ID: "g3"}}
	var started []string
	n := startDue(games, func(gameID string) error {
		started = append(started, gameID)
		return nil
	})
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"g1", "g2", "g3"}, started)
}

func TestStartDueSwallowsPerGameErrors(t *testing.T) {
	games := []models.Game{{ID: "g1"}, {ID: "g2"}, {ID: "g3"}}
	n := startDue(games, func(gameID string) error {
		if gameID == "g2" {
			return errors.New("no players yet")
		}
		return nil
	})
	assert.Equal(t, 2, n)
}

func TestStartDueEmpty(t *testing.T) {
	n := startDue(nil, func(string) error {
		t.Fatal("start should not be called")
		return nil
	})
	assert.Zero(t, n)
}

// The sweep only selects SCHEDULED games whose start time has passed; a
// game scheduled in the future stays untouched and only the past-due one
// is started.
func TestSweepOnceStartsOnlyPastDueGames(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	gormDB, err := gorm.Open(pgdriver.New(pgdriver.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	// Selection happens in SQL: the future game never comes back
	mock.ExpectQuery(`SELECT (.+) FROM "games" WHERE status = \$1 AND game_start_date IS NOT NULL AND game_start_date <= \$2`).
		WithArgs(game_constants.StatusScheduled, now).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "status"}).
			AddRow("g-past", "TMB-1", game_constants.StatusScheduled))

	// StartGame for the past-due game
	mock.ExpectQuery(`SELECT (.+) FROM "games" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).
			AddRow("g-past", game_constants.StatusScheduled))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "games" SET "status"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	started := SweepOnce(gormDB, nil, now)
	assert.Equal(t, 1, started)
	assert.NoError(t, mock.ExpectationsWereMet())
}
