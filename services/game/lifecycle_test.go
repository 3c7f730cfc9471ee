package game

import (
	"testing"

	game_constants "Tambola/constants/game"
	models "Tambola/models/postgres"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestNextGameCode(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{"no games yet", nil, "TMB-1"},
		{"single code", []string{"TMB-4"}, "TMB-5"},
		{"max wins regardless of order", []string{"TMB-7", "TMB-12", "TMB-3"}, "TMB-13"},
		{"foreign codes ignored", []string{"OLD-99", "TMB-2", "garbage"}, "TMB-3"},
		{"malformed suffix ignored", []string{"TMB-abc", "TMB-5"}, "TMB-6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextGameCode(tt.existing))
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"New Year Bash!", "new-year-bash"},
		{"  Diwali  2026  ", "diwali-2026"},
		{"UPPER", "upper"},
		{"---", "game"},
		{"", "game"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "input %q", tt.in)
	}
}

func TestUniqueSlug(t *testing.T) {
	assert.Equal(t, "party", UniqueSlug("party", nil))
	assert.Equal(t, "party-2", UniqueSlug("party", []string{"party"}))
	assert.Equal(t, "party-3", UniqueSlug("party", []string{"party", "party-2"}))
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{game_constants.StatusDraft, game_constants.StatusScheduled, true},
		{game_constants.StatusDraft, game_constants.StatusActive, true},
		{game_constants.StatusScheduled, game_constants.StatusActive, true},
		{game_constants.StatusActive, game_constants.StatusCompleted, true},
		// never backwards
		{game_constants.StatusScheduled, game_constants.StatusDraft, false},
		{game_constants.StatusActive, game_constants.StatusScheduled, false},
		{game_constants.StatusCompleted, game_constants.StatusActive, false},
		// COMPLETED only from ACTIVE
		{game_constants.StatusDraft, game_constants.StatusCompleted, false},
		{game_constants.StatusScheduled, game_constants.StatusCompleted, false},
		// unknown states never transition
		{"LIMBO", game_constants.StatusActive, false},
		{game_constants.StatusDraft, "LIMBO", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestEliminatedSnapshot(t *testing.T) {
	// ELIMINATION game with players [A,B,C] where B wins
	eliminated := EliminatedSnapshot([]string{"A", "B", "C"}, "B")
	assert.Equal(t, pq.StringArray{"A", "C"}, eliminated)

	assert.Empty(t, EliminatedSnapshot([]string{"B"}, "B"))
	assert.Empty(t, EliminatedSnapshot(nil, "B"))
}

func TestApplyRestrictedPatchIgnoresConfigFields(t *testing.T) {
	name := "Renamed"
	maxPlayers := 50
	mode := game_constants.ModeElimination
	game := &models.Game{
		Name:     "Original",
		Status:   game_constants.StatusActive,
		GameMode: game_constants.ModeStandard,
	}

	ApplyRestrictedPatch(game, UpdateGameInput{
		Name:       &name,
		MaxPlayers: &maxPlayers,
		GameMode:   &mode,
	})

	// config fields silently ignored, runtime fields honored
	assert.Equal(t, "Original", game.Name)
	assert.Nil(t, game.MaxPlayers)
	assert.Equal(t, game_constants.ModeElimination, game.GameMode)
}

func TestApplyRestrictedPatchWinnerOnlyWhenCompleted(t *testing.T) {
	winner := "user-1"
	completed := game_constants.StatusCompleted

	game := &models.Game{Status: game_constants.StatusActive}
	ApplyRestrictedPatch(game, UpdateGameInput{WinnerID: &winner})
	assert.Nil(t, game.WinnerID, "winner must not be set while the game is active")

	game = &models.Game{Status: game_constants.StatusActive}
	ApplyRestrictedPatch(game, UpdateGameInput{Status: &completed, WinnerID: &winner})
	assert.Equal(t, game_constants.StatusCompleted, game.Status)
	assert.Equal(t, &winner, game.WinnerID)
}

func TestApplyFullPatchSchedulesDraftWithStartDate(t *testing.T) {
	game := &models.Game{Status: game_constants.StatusDraft}
	start := testTime()
	ApplyFullPatch(game, UpdateGameInput{GameStartDate: &start})

	assert.Equal(t, game_constants.StatusScheduled, game.Status)
	assert.Equal(t, &start, game.GameStartDate)
}
