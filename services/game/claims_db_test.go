package game

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	gormDB, err := gorm.Open(pgdriver.New(pgdriver.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return gormDB, mock, db
}

func expectCardRow(mock sqlmock.Sqlmock, cardID, gameID, userID, gridSizeID string) {
	mock.ExpectQuery(`SELECT (.+) FROM "game_cards" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "game_id", "user_id", "grid_size_id"}).
			AddRow(cardID, gameID, userID, gridSizeID))
}

func expectGameRow(mock sqlmock.Sqlmock, gameID, status, mode string) {
	mock.ExpectQuery(`SELECT (.+) FROM "games" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "game_mode"}).
			AddRow(gameID, status, mode))
}

func TestClaimSquareRejectsNonOwner(t *testing.T) {
	gormDB, mock, db := newMockDB(t)
	defer db.Close()

	expectCardRow(mock, "card-1", "game-1", "bob", "gs-1")

	won, err := ClaimSquare(gormDB, nil, "card-1", 0, "alice")
	assert.ErrorIs(t, err, ErrNotCardOwner)
	assert.False(t, won)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimSquareRequiresActiveGame(t *testing.T) {
	gormDB, mock, db := newMockDB(t)
	defer db.Close()

	expectCardRow(mock, "card-1", "game-1", "alice", "gs-1")
	expectGameRow(mock, "game-1", "SCHEDULED", "STANDARD")

	won, err := ClaimSquare(gormDB, nil, "card-1", 0, "alice")
	assert.ErrorIs(t, err, ErrGameNotActive)
	assert.False(t, won)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimSquareIndexOutOfRange(t *testing.T) {
	gormDB, mock, db := newMockDB(t)
	defer db.Close()

	expectCardRow(mock, "card-1", "game-1", "alice", "gs-1")
	expectGameRow(mock, "game-1", "ACTIVE", "STANDARD")
	mock.ExpectQuery(`SELECT count\(\*\) FROM "card_squares" WHERE card_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(27))

	won, err := ClaimSquare(gormDB, nil, "card-1", 27, "alice")
	assert.ErrorIs(t, err, ErrSquareIndexOutOfRange)
	assert.False(t, won)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A square whose claimed flag is already set rejects the second claim at
// the conditional update; nothing downstream of it runs.
func TestClaimSquareAlreadyClaimed(t *testing.T) {
	gormDB, mock, db := newMockDB(t)
	defer db.Close()

	expectCardRow(mock, "card-1", "game-1", "alice", "gs-1")
	expectGameRow(mock, "game-1", "ACTIVE", "STANDARD")
	mock.ExpectQuery(`SELECT count\(\*\) FROM "card_squares" WHERE card_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(27))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "card_squares" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	won, err := ClaimSquare(gormDB, nil, "card-1", 4, "alice")
	assert.ErrorIs(t, err, ErrSquareAlreadyClaimed)
	assert.False(t, won)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Completing the first row on a 3x9 card ends the game: the claim sticks,
// the win check fires and the game is completed with the claimant as
// winner.
func TestClaimSquareCompletesRowAndWins(t *testing.T) {
	gormDB, mock, db := newMockDB(t)
	defer db.Close()

	expectCardRow(mock, "card-1", "game-1", "alice", "gs-1")
	expectGameRow(mock, "game-1", "ACTIVE", "STANDARD")
	mock.ExpectQuery(`SELECT count\(\*\) FROM "card_squares" WHERE card_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(27))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "card_squares" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Full state re-read: the whole first row is now claimed
	squareRows := sqlmock.NewRows([]string{"card_id", "idx", "claimed"})
	for idx := 0; idx < 9; idx++ {
		squareRows.AddRow("card-1", idx, true)
	}
	mock.ExpectQuery(`SELECT (.+) FROM "card_squares" WHERE card_id = \$1 ORDER BY idx`).
		WillReturnRows(squareRows)

	// Unknown grid size falls back to the default 3x9 grid
	mock.ExpectQuery(`SELECT (.+) FROM "grid_sizes" WHERE id = \$1`).
		WillReturnError(gorm.ErrRecordNotFound)

	// CompleteWithWinner re-reads the game, then finishes it conditionally
	expectGameRow(mock, "game-1", "ACTIVE", "STANDARD")
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "games" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	won, err := ClaimSquare(gormDB, nil, "card-1", 8, "alice")
	require.NoError(t, err)
	assert.True(t, won)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteWithWinnerRequiresActiveGame(t *testing.T) {
	gormDB, mock, db := newMockDB(t)
	defer db.Close()

	expectGameRow(mock, "game-1", "SCHEDULED", "STANDARD")

	_, err := CompleteWithWinner(gormDB, nil, "game-1", "alice")
	assert.ErrorIs(t, err, ErrGameNotActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Two racing winning claims both read ACTIVE; the write is conditional on
// it, so the loser's update touches zero rows and is rejected.
func TestCompleteWithWinnerLosesRace(t *testing.T) {
	gormDB, mock, db := newMockDB(t)
	defer db.Close()

	expectGameRow(mock, "game-1", "ACTIVE", "STANDARD")
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "games" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	_, err := CompleteWithWinner(gormDB, nil, "game-1", "bob")
	assert.ErrorIs(t, err, ErrGameNotActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}
