package game

import (
	"math/rand"
	"testing"
	"time"

	game_constants "Tambola/constants/game"
	models "Tambola/models/postgres"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTime() time.Time {
	return time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)
}

func openDraftGame(maxPlayers *int) *models.Game {
	return &models.Game{
		ID:         "game-1",
		Status:     game_constants.StatusDraft,
		MaxPlayers: maxPlayers,
	}
}

func TestApplyJoinFillsPlayersThenWaitlist(t *testing.T) {
	// create game with max_player=2, join two users, third lands on waitlist
	maxPlayers := 2
	game := openDraftGame(&maxPlayers)

	waitlisted, err := ApplyJoin(game, "alice")
	require.NoError(t, err)
	assert.False(t, waitlisted)

	waitlisted, err = ApplyJoin(game, "bob")
	require.NoError(t, err)
	assert.False(t, waitlisted)

	waitlisted, err = ApplyJoin(game, "carol")
	require.NoError(t, err)
	assert.True(t, waitlisted)

	assert.Equal(t, pq.StringArray{"alice", "bob"}, game.PlayerIDs)
	assert.Equal(t, pq.StringArray{"carol"}, game.WaitlistIDs)
	assert.Equal(t, game_constants.StatusDraft, game.Status)
}

func TestApplyJoinUnlimitedWithoutMaxPlayers(t *testing.T) {
	game := openDraftGame(nil)
	for _, u := range []string{"u1", "u2", "u3", "u4", "u5"} {
		waitlisted, err := ApplyJoin(game, u)
		require.NoError(t, err)
		assert.False(t, waitlisted)
	}
	assert.Len(t, game.PlayerIDs, 5)
	assert.Empty(t, game.WaitlistIDs)
}

func TestApplyJoinRejections(t *testing.T) {
	t.Run("closed game", func(t *testing.T) {
		game := openDraftGame(nil)
		game.AccessControl = true
		_, err := ApplyJoin(game, "alice")
		assert.ErrorIs(t, err, ErrClosedGame)
	})

	t.Run("outside join window", func(t *testing.T) {
		game := openDraftGame(nil)
		game.Status = game_constants.StatusActive
		_, err := ApplyJoin(game, "alice")
		assert.ErrorIs(t, err, ErrGameNotJoinable)
	})

	t.Run("already a player", func(t *testing.T) {
		game := openDraftGame(nil)
		game.PlayerIDs = pq.StringArray{"alice"}
		_, err := ApplyJoin(game, "alice")
		assert.ErrorIs(t, err, ErrAlreadyJoined)
	})

	t.Run("already waitlisted", func(t *testing.T) {
		maxPlayers := 1
		game := openDraftGame(&maxPlayers)
		game.PlayerIDs = pq.StringArray{"bob"}
		game.WaitlistIDs = pq.StringArray{"alice"}
		_, err := ApplyJoin(game, "alice")
		assert.ErrorIs(t, err, ErrAlreadyJoined)
	})
}

func TestApplyJoinClearsEliminatedMembership(t *testing.T) {
	game := openDraftGame(nil)
	game.EliminatedPlayerIDs = pq.StringArray{"alice", "bob"}

	waitlisted, err := ApplyJoin(game, "alice")
	require.NoError(t, err)
	assert.False(t, waitlisted)

	assert.Equal(t, pq.StringArray{"alice"}, game.PlayerIDs)
	assert.Equal(t, pq.StringArray{"bob"}, game.EliminatedPlayerIDs)
}

func TestApplyLeave(t *testing.T) {
	t.Run("removes player", func(t *testing.T) {
		game := openDraftGame(nil)
		game.PlayerIDs = pq.StringArray{"alice", "bob"}
		require.NoError(t, ApplyLeave(game, "alice"))
		assert.Equal(t, pq.StringArray{"bob"}, game.PlayerIDs)
	})

	t.Run("removes eliminated membership too", func(t *testing.T) {
		game := openDraftGame(nil)
		game.PlayerIDs = pq.StringArray{"alice"}
		game.EliminatedPlayerIDs = pq.StringArray{"alice", "bob"}
		require.NoError(t, ApplyLeave(game, "alice"))
		assert.Empty(t, game.PlayerIDs)
		assert.Equal(t, pq.StringArray{"bob"}, game.EliminatedPlayerIDs)
	})

	t.Run("removes waitlisted user", func(t *testing.T) {
		game := openDraftGame(nil)
		game.WaitlistIDs = pq.StringArray{"carol"}
		require.NoError(t, ApplyLeave(game, "carol"))
		assert.Empty(t, game.WaitlistIDs)
	})

	t.Run("user in neither list", func(t *testing.T) {
		game := openDraftGame(nil)
		assert.ErrorIs(t, ApplyLeave(game, "ghost"), ErrNotInGame)
	})

	t.Run("after start", func(t *testing.T) {
		game := openDraftGame(nil)
		game.Status = game_constants.StatusActive
		game.PlayerIDs = pq.StringArray{"alice"}
		assert.ErrorIs(t, ApplyLeave(game, "alice"), ErrGameNotJoinable)
	})
}

func TestNormalizeRoster(t *testing.T) {
	players, waitlist, eliminated := NormalizeRoster(
		[]string{"a", "b", "a", ""},
		[]string{"b", "c", "c"},
		[]string{"a", "c", "d"},
	)

	assert.Equal(t, pq.StringArray{"a", "b"}, players)
	assert.Equal(t, pq.StringArray{"c"}, waitlist)
	assert.Equal(t, pq.StringArray{"d"}, eliminated)
}

// After any sequence of join/leave operations the three roster lists stay
// pairwise disjoint and duplicate-free, even with stale eliminated entries
// injected along the way.
func TestRosterDisjointnessProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	users := []string{"u1", "u2", "u3", "u4", "u5", "u6"}
	maxPlayers := 3
	game := openDraftGame(&maxPlayers)

	for op := 0; op < 300; op++ {
		u := users[rng.Intn(len(users))]
		switch rng.Intn(3) {
		case 0:
			ApplyJoin(game, u)
		case 1:
			ApplyLeave(game, u)
		default:
			if !game.HasPlayer(u) && !game.IsWaitlisted(u) {
				game.EliminatedPlayerIDs = append(removeID(game.EliminatedPlayerIDs, u), u)
			}
		}

		seen := make(map[string]int)
		for _, id := range game.PlayerIDs {
			seen[id]++
		}
		for _, id := range game.WaitlistIDs {
			seen[id]++
		}
		for _, id := range game.EliminatedPlayerIDs {
			seen[id]++
		}
		for id, n := range seen {
			require.Equal(t, 1, n, "user %s appears %d times after op %d", id, n, op)
		}
		require.LessOrEqual(t, len(game.PlayerIDs), maxPlayers)
	}
}
