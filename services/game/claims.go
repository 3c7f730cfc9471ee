package game

import (
	"errors"
	"fmt"
	"time"

	game_constants "Tambola/constants/game"
	models "Tambola/models/postgres"
	"Tambola/services/cards"
	"Tambola/services/patterns"
	redis_service "Tambola/services/redis"

	"gorm.io/gorm"
)

// ClaimSquare validates and applies a square claim, then runs the win
// check across every pattern configured for the game. Returns whether the
// claim completed the game.
//
// The claim itself is a single conditional update keyed on "square
// currently unclaimed": two racing claims on the same square resolve to
// exactly one claimant, and a claimed square can never flip back.
func ClaimSquare(db *gorm.DB, rdb redis_service.LiveStateStore, cardID string, squareIndex int, userID string) (bool, error) {
	var card models.GameCard
	if err := db.Where("id = ?", cardID).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrCardNotFound
		}
		return false, err
	}
	if card.UserID == nil || *card.UserID != userID {
		return false, ErrNotCardOwner
	}

	var game models.Game
	if err := db.Where("id = ?", card.GameID).First(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrGameNotFound
		}
		return false, err
	}
	if game.Status != game_constants.StatusActive {
		return false, ErrGameNotActive
	}

	var squareCount int64
	if err := db.Model(&models.CardSquare{}).Where("card_id = ?", cardID).Count(&squareCount).Error; err != nil {
		return false, err
	}
	if squareIndex < 0 || int64(squareIndex) >= squareCount {
		return false, ErrSquareIndexOutOfRange
	}

	now := time.Now()
	res := db.Model(&models.CardSquare{}).
		Where("card_id = ? AND idx = ? AND claimed = ?", cardID, squareIndex, false).
		Updates(map[string]interface{}{"claimed": true, "claimed_at": now})
	if res.Error != nil {
		return false, fmt.Errorf("error claiming square: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return false, ErrSquareAlreadyClaimed
	}

	// Re-read the complete square set: the win check must see full state,
	// not just this claim, to stay correct under concurrent claims.
	var squares []models.CardSquare
	if err := db.Where("card_id = ?", cardID).Order("idx").Find(&squares).Error; err != nil {
		return false, err
	}
	claimed := ClaimedIndexSet(squares)

	rows, cols := resolveGrid(db, card.GridSizeID)
	patternNames, err := EffectivePatterns(db, &game)
	if err != nil {
		return false, err
	}

	if AnyPatternComplete(rows, cols, claimed, patternNames) {
		if _, err := CompleteWithWinner(db, rdb, game.ID, userID); err != nil {
			return false, err
		}
		return true, nil
	}

	PublishLiveState(rdb, &game, &now)
	return false, nil
}

// ClaimedIndexSet projects the square rows onto the index set the pattern
// engine consumes.
func ClaimedIndexSet(squares []models.CardSquare) map[int]bool {
	claimed := make(map[int]bool, len(squares))
	for _, sq := range squares {
		if sq.Claimed {
			claimed[sq.Idx] = true
		}
	}
	return claimed
}

// AnyPatternComplete is the OR across the game's configured patterns.
func AnyPatternComplete(rows, cols int, claimed map[int]bool, patternNames []string) bool {
	for _, name := range patternNames {
		if patterns.IsPatternComplete(rows, cols, claimed, name) {
			return true
		}
	}
	return false
}

// EffectivePatterns resolves the game's configured pattern set: the
// multi-pattern list first, then the legacy single pattern type, then the
// legacy pattern reference, defaulting to a plain row.
func EffectivePatterns(db *gorm.DB, game *models.Game) ([]string, error) {
	typeIDs := []string(game.WinningPatternTypeIDs)
	if len(typeIDs) == 0 && game.WinningPatternTypeID != nil {
		typeIDs = []string{*game.WinningPatternTypeID}
	}

	if len(typeIDs) > 0 {
		var types []models.WinningPatternType
		if err := db.Where("id IN ?", typeIDs).Find(&types).Error; err != nil {
			return nil, fmt.Errorf("error resolving pattern types: %w", err)
		}
		names := make([]string, 0, len(types))
		for _, t := range types {
			names = append(names, t.Pattern)
		}
		if len(names) > 0 {
			return names, nil
		}
	}

	if game.WinningPatternID != nil {
		var p models.WinningPattern
		if err := db.Where("id = ?", *game.WinningPatternID).First(&p).Error; err == nil {
			return []string{p.Slug}, nil
		}
	}

	return []string{game_constants.PatternRow}, nil
}

func resolveGrid(db *gorm.DB, gridSizeID string) (int, int) {
	var gridSize models.GridSize
	if err := db.Where("id = ?", gridSizeID).First(&gridSize).Error; err != nil {
		return game_constants.DefaultGridRows, game_constants.DefaultGridCols
	}
	return cards.ParseGridDimensions(gridSize.Name, gridSize.Slug)
}

// SquareUpdate edits one square's custom text before the game starts.
type SquareUpdate struct {
	Idx        int     `json:"idx"`
	IsCustom   *bool   `json:"is_custom"`
	CustomText *string `json:"custom_text"`
	AssetID    *string `json:"asset_id"`
}

// UpdateCardSquares lets the owner rework square contents while the game
// has not started; squares become claim-only the moment it goes ACTIVE.
func UpdateCardSquares(db *gorm.DB, cardID string, updates []SquareUpdate, userID string) (*models.GameCard, error) {
	var card models.GameCard
	if err := db.Where("id = ?", cardID).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	if card.UserID == nil || *card.UserID != userID {
		return nil, ErrNotCardOwner
	}

	var game models.Game
	if err := db.Where("id = ?", card.GameID).First(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	if !game.IsEditable() {
		return nil, ErrSquaresLocked
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			fields := map[string]interface{}{}
			if u.IsCustom != nil {
				fields["is_custom"] = *u.IsCustom
			}
			if u.CustomText != nil {
				fields["custom_text"] = *u.CustomText
			}
			if u.AssetID != nil {
				fields["asset_id"] = *u.AssetID
			}
			if len(fields) == 0 {
				continue
			}
			res := tx.Model(&models.CardSquare{}).
				Where("card_id = ? AND idx = ?", cardID, u.Idx).
				Updates(fields)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrSquareIndexOutOfRange
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSquareIndexOutOfRange) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating squares: %w", err)
	}

	if err := db.Where("card_id = ?", cardID).Order("idx").Find(&card.Squares).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// ListCards returns the cards of a game, optionally filtered to one player.
func ListCards(db *gorm.DB, gameID, userID string) ([]models.GameCard, error) {
	query := db.Where("game_id = ?", gameID).
		Preload("Squares", func(db *gorm.DB) *gorm.DB { return db.Order("idx") })
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	var cardsList []models.GameCard
	if err := query.Find(&cardsList).Error; err != nil {
		return nil, fmt.Errorf("error listing cards: %w", err)
	}
	return cardsList, nil
}
