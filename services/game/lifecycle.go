package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	game_constants "Tambola/constants/game"
	models "Tambola/models/postgres"
	redis_service "Tambola/services/redis"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// CreateGameInput carries the admin-supplied configuration for a new game.
type CreateGameInput struct {
	Name                  string     `json:"name"`
	Description           string     `json:"description"`
	EventID               *string    `json:"event_id"`
	CategoryID            *string    `json:"category_id"`
	GridSizeID            *string    `json:"grid_size_id"`
	CardGenTypeID         *string    `json:"card_gen_type_id"`
	GameTypeID            *string    `json:"game_type_id"`
	WinningPatternTypeIDs []string   `json:"winning_pattern_type_ids"`
	WinningPatternTypeID  *string    `json:"winning_pattern_type_id"`
	WinningPatternID      *string    `json:"winning_pattern_id"`
	AccessControl         bool       `json:"access_control"`
	MaxPlayers            *int       `json:"max_players"`
	GameStartDate         *time.Time `json:"game_start_date"`
	GameMode              string     `json:"game_mode"`
}

// Code/slug generation scans existing rows for the current maximum, so it
// has to be serialized across concurrent creates.
var createMu sync.Mutex

// CreateGame builds a new game in DRAFT (SCHEDULED when a start date is
// supplied) with a unique sequential code, a unique slug and an empty
// roster. An empty creatorID means admin context and skips the premium
// gate entirely.
func CreateGame(db *gorm.DB, rdb redis_service.LiveStateStore, in CreateGameInput, creatorID string) (*models.Game, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrNameRequired
	}
	if in.MaxPlayers != nil && *in.MaxPlayers < 1 {
		return nil, ErrInvalidMaxPlayers
	}
	mode := in.GameMode
	if mode == "" {
		mode = game_constants.ModeStandard
	}
	if mode != game_constants.ModeStandard && mode != game_constants.ModeElimination {
		return nil, ErrInvalidGameMode
	}

	if creatorID != "" {
		if err := checkPremiumGate(db, in, creatorID); err != nil {
			return nil, err
		}
	}

	createMu.Lock()
	defer createMu.Unlock()

	var codes []string
	if err := db.Model(&models.Game{}).Pluck("code", &codes).Error; err != nil {
		return nil, fmt.Errorf("error scanning game codes: %w", err)
	}
	var slugs []string
	if err := db.Model(&models.Game{}).Pluck("slug", &slugs).Error; err != nil {
		return nil, fmt.Errorf("error scanning game slugs: %w", err)
	}

	status := game_constants.StatusDraft
	if in.GameStartDate != nil {
		status = game_constants.StatusScheduled
	}

	game := &models.Game{
		Name:                  in.Name,
		Code:                  NextGameCode(codes),
		Slug:                  UniqueSlug(Slugify(in.Name), slugs),
		Description:           in.Description,
		EventID:               in.EventID,
		CategoryID:            in.CategoryID,
		GridSizeID:            in.GridSizeID,
		CardGenTypeID:         in.CardGenTypeID,
		GameTypeID:            in.GameTypeID,
		WinningPatternTypeIDs: pq.StringArray(in.WinningPatternTypeIDs),
		WinningPatternTypeID:  in.WinningPatternTypeID,
		WinningPatternID:      in.WinningPatternID,
		AccessControl:         in.AccessControl,
		MaxPlayers:            in.MaxPlayers,
		GameStartDate:         in.GameStartDate,
		GameMode:              mode,
		Status:                status,
	}

	if err := db.Create(game).Error; err != nil {
		return nil, fmt.Errorf("error creating game: %w", err)
	}
	PublishLiveState(rdb, game, nil)
	return game, nil
}

// checkPremiumGate rejects premium-only configuration (ADVANCED pattern
// types, PREMIUM-visibility categories) for non-premium creators.
func checkPremiumGate(db *gorm.DB, in CreateGameInput, creatorID string) error {
	needsPremium := false

	typeIDs := append([]string{}, in.WinningPatternTypeIDs...)
	if in.WinningPatternTypeID != nil {
		typeIDs = append(typeIDs, *in.WinningPatternTypeID)
	}
	if len(typeIDs) > 0 {
		var count int64
		err := db.Model(&models.WinningPatternType{}).
			Where("id IN ? AND tier = ?", typeIDs, game_constants.TierAdvanced).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("error checking pattern tiers: %w", err)
		}
		needsPremium = count > 0
	}

	if !needsPremium && in.CategoryID != nil {
		var category models.Category
		if err := db.Where("id = ?", *in.CategoryID).First(&category).Error; err == nil {
			needsPremium = category.Visibility == game_constants.VisibilityPremium
		}
	}

	if !needsPremium {
		return nil
	}

	var creator models.User
	if err := db.Where("id = ?", creatorID).First(&creator).Error; err != nil {
		return ErrPremiumRequired
	}
	if !creator.IsPremium {
		return ErrPremiumRequired
	}
	return nil
}

// NextGameCode derives the next sequential join code from the maximum
// numeric suffix among existing codes.
func NextGameCode(existing []string) string {
	max := 0
	for _, code := range existing {
		suffix, ok := strings.CutPrefix(code, game_constants.GameCodePrefix)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(suffix); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%d", game_constants.GameCodePrefix, max+1)
}

// Slugify lowercases the name and collapses every non-alphanumeric run
// into a single hyphen.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "game"
	}
	return slug
}

// UniqueSlug disambiguates a taken slug with an increasing numeric suffix.
func UniqueSlug(base string, taken []string) string {
	used := make(map[string]bool, len(taken))
	for _, s := range taken {
		used[s] = true
	}
	if !used[base] {
		return base
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !used[candidate] {
			return candidate
		}
	}
}

func statusRank(status string) int {
	switch status {
	case game_constants.StatusDraft:
		return 0
	case game_constants.StatusScheduled:
		return 1
	case game_constants.StatusActive:
		return 2
	case game_constants.StatusCompleted:
		return 3
	default:
		return -1
	}
}

// CanTransition enforces forward-only status movement; COMPLETED is only
// reachable from ACTIVE.
func CanTransition(from, to string) bool {
	fr, tr := statusRank(from), statusRank(to)
	if fr < 0 || tr < 0 || tr < fr {
		return false
	}
	if to == game_constants.StatusCompleted {
		return from == game_constants.StatusActive
	}
	return true
}

// StartGame moves a DRAFT/SCHEDULED game to ACTIVE. A game without players
// only starts under adminBypass (used by the scheduler sweep and moderation
// tooling).
func StartGame(db *gorm.DB, rdb redis_service.LiveStateStore, gameID string, adminBypass bool) (*models.Game, error) {
	var game models.Game
	if err := db.Where("id = ?", gameID).First(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	if !game.IsEditable() {
		return nil, ErrGameNotStartable
	}
	if !adminBypass && len(game.PlayerIDs) == 0 {
		return nil, ErrNoPlayers
	}

	game.Status = game_constants.StatusActive
	if err := db.Model(&game).Update("status", game.Status).Error; err != nil {
		return nil, fmt.Errorf("error starting game: %w", err)
	}
	PublishLiveState(rdb, &game, nil)
	return &game, nil
}

// UpdateGameInput is a sparse patch; nil fields are left untouched.
type UpdateGameInput struct {
	Name                  *string    `json:"name"`
	Description           *string    `json:"description"`
	EventID               *string    `json:"event_id"`
	CategoryID            *string    `json:"category_id"`
	GridSizeID            *string    `json:"grid_size_id"`
	CardGenTypeID         *string    `json:"card_gen_type_id"`
	GameTypeID            *string    `json:"game_type_id"`
	WinningPatternTypeIDs []string   `json:"winning_pattern_type_ids"`
	WinningPatternTypeID  *string    `json:"winning_pattern_type_id"`
	WinningPatternID      *string    `json:"winning_pattern_id"`
	AccessControl         *bool      `json:"access_control"`
	MaxPlayers            *int       `json:"max_players"`
	GameStartDate         *time.Time `json:"game_start_date"`
	GameMode              *string    `json:"game_mode"`
	Status                *string    `json:"status"`
	WinnerID              *string    `json:"winner_id"`
	EliminatedPlayerIDs   []string   `json:"eliminated_player_ids"`
}

// UpdateGame patches a game. Outside the editable window only
// status/winner/eliminated/game-mode fields are honored; everything else in
// the patch is silently ignored, not an error. A requested transition to
// ACTIVE applies the same no-players gate as StartGame.
func UpdateGame(db *gorm.DB, rdb redis_service.LiveStateStore, gameID string, in UpdateGameInput, adminBypass bool) (*models.Game, error) {
	var game models.Game
	if err := db.Where("id = ?", gameID).First(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	if in.Status != nil && *in.Status != game.Status {
		if !CanTransition(game.Status, *in.Status) {
			if statusRank(*in.Status) < statusRank(game.Status) {
				return nil, ErrStatusRegression
			}
			return nil, ErrInvalidTransition
		}
		if *in.Status == game_constants.StatusActive &&
			!adminBypass && len(game.PlayerIDs) == 0 {
			return nil, ErrNoPlayers
		}
	}

	if in.MaxPlayers != nil && *in.MaxPlayers < 1 {
		return nil, ErrInvalidMaxPlayers
	}
	if in.GameMode != nil &&
		*in.GameMode != game_constants.ModeStandard &&
		*in.GameMode != game_constants.ModeElimination {
		return nil, ErrInvalidGameMode
	}

	if game.IsEditable() {
		ApplyFullPatch(&game, in)
	} else {
		ApplyRestrictedPatch(&game, in)
	}

	if err := db.Save(&game).Error; err != nil {
		return nil, fmt.Errorf("error updating game: %w", err)
	}
	PublishLiveState(rdb, &game, nil)
	return &game, nil
}

// ApplyFullPatch honors every supplied field; only valid in the editable
// window.
func ApplyFullPatch(g *models.Game, in UpdateGameInput) {
	if in.Name != nil {
		g.Name = *in.Name
	}
	if in.Description != nil {
		g.Description = *in.Description
	}
	if in.EventID != nil {
		g.EventID = in.EventID
	}
	if in.CategoryID != nil {
		g.CategoryID = in.CategoryID
	}
	if in.GridSizeID != nil {
		g.GridSizeID = in.GridSizeID
	}
	if in.CardGenTypeID != nil {
		g.CardGenTypeID = in.CardGenTypeID
	}
	if in.GameTypeID != nil {
		g.GameTypeID = in.GameTypeID
	}
	if in.WinningPatternTypeIDs != nil {
		g.WinningPatternTypeIDs = pq.StringArray(in.WinningPatternTypeIDs)
	}
	if in.WinningPatternTypeID != nil {
		g.WinningPatternTypeID = in.WinningPatternTypeID
	}
	if in.WinningPatternID != nil {
		g.WinningPatternID = in.WinningPatternID
	}
	if in.AccessControl != nil {
		g.AccessControl = *in.AccessControl
	}
	if in.MaxPlayers != nil {
		g.MaxPlayers = in.MaxPlayers
	}
	if in.GameStartDate != nil {
		g.GameStartDate = in.GameStartDate
		if g.Status == game_constants.StatusDraft {
			g.Status = game_constants.StatusScheduled
		}
	}
	ApplyRestrictedPatch(g, in)
}

// ApplyRestrictedPatch honors only the runtime fields that stay mutable
// after the game leaves the editable window.
func ApplyRestrictedPatch(g *models.Game, in UpdateGameInput) {
	if in.GameMode != nil {
		g.GameMode = *in.GameMode
	}
	if in.EliminatedPlayerIDs != nil {
		g.EliminatedPlayerIDs = pq.StringArray(in.EliminatedPlayerIDs)
	}
	if in.Status != nil && CanTransition(g.Status, *in.Status) {
		g.Status = *in.Status
	}
	// winner_id is only ever set on a COMPLETED game
	if in.WinnerID != nil && g.Status == game_constants.StatusCompleted {
		g.WinnerID = in.WinnerID
	}
}

// CompleteWithWinner finishes an ACTIVE game exactly once. In ELIMINATION
// mode every current player other than the winner is snapshotted into the
// eliminated list; there is no multi-round mechanic.
func CompleteWithWinner(db *gorm.DB, rdb redis_service.LiveStateStore, gameID, winnerID string) (*models.Game, error) {
	var game models.Game
	if err := db.Where("id = ?", gameID).First(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	if game.Status != game_constants.StatusActive {
		return nil, ErrGameNotActive
	}

	game.Status = game_constants.StatusCompleted
	game.WinnerID = &winnerID
	if game.GameMode == game_constants.ModeElimination {
		game.EliminatedPlayerIDs = EliminatedSnapshot(game.PlayerIDs, winnerID)
	}

	// Conditional on ACTIVE so two racing winning claims resolve to
	// exactly one winner.
	res := db.Model(&models.Game{}).
		Where("id = ? AND status = ?", gameID, game_constants.StatusActive).
		Updates(map[string]interface{}{
			"status":                game.Status,
			"winner_id":             winnerID,
			"eliminated_player_ids": game.EliminatedPlayerIDs,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("error completing game: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrGameNotActive
	}
	PublishLiveState(rdb, &game, nil)
	return &game, nil
}

// EliminatedSnapshot returns every player except the winner, in roster order.
func EliminatedSnapshot(players []string, winnerID string) pq.StringArray {
	eliminated := pq.StringArray{}
	for _, id := range players {
		if id != winnerID {
			eliminated = append(eliminated, id)
		}
	}
	return eliminated
}
