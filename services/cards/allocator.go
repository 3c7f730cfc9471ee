package cards

import (
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"

	game_constants "Tambola/constants/game"
	models "Tambola/models/postgres"

	"gorm.io/gorm"
)

var (
	ErrNoGridSize         = errors.New("game has no grid size configured")
	ErrGridSizeNotFound   = errors.New("grid size not found")
	ErrGameCompleted      = errors.New("game is already completed")
	ErrRegenerationLocked = errors.New("cards cannot be regenerated while the game is active")
)

var gridDimsRe = regexp.MustCompile(`(\d+)\s*[xX]\s*(\d+)`)

// ParseGridDimensions extracts rows x cols from a grid-size slug or name
// ("3x9", "grid-5x5"...). Tambola/housie/bingo-flavored names without
// explicit dimensions, and anything unparseable, fall back to the classic
// 3x9 ticket. Dimensions clamp to [1,10] rows and [1,15] cols.
func ParseGridDimensions(name, slug string) (rows, cols int) {
	for _, s := range []string{slug, name} {
		if m := gridDimsRe.FindStringSubmatch(s); m != nil {
			r, _ := strconv.Atoi(m[1])
			c, _ := strconv.Atoi(m[2])
			return clamp(r, 1, game_constants.MaxGridRows), clamp(c, 1, game_constants.MaxGridCols)
		}
	}
	return game_constants.DefaultGridRows, game_constants.DefaultGridCols
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// BuildSquares assigns a shuffled asset pool to n cells in generation order,
// cell i getting pool[i mod len(pool)]. No asset repeats while the pool is
// at least as large as the grid; an empty pool produces all custom-text
// placeholder squares, so generation never fails.
func BuildSquares(pool []models.Asset, n int) []models.CardSquare {
	shuffled := make([]models.Asset, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	squares := make([]models.CardSquare, n)
	for i := range squares {
		squares[i] = models.CardSquare{Idx: i}
		if len(shuffled) == 0 {
			squares[i].IsCustom = true
			squares[i].CustomText = game_constants.DefaultCustomText
			continue
		}
		assetID := shuffled[i%len(shuffled)].ID
		squares[i].AssetID = &assetID
	}
	return squares
}

// AllowedAccessLevels returns the asset access levels a player may receive.
func AllowedAccessLevels(premium bool) []string {
	if premium {
		return []string{game_constants.AccessFree, game_constants.AccessPremium}
	}
	return []string{game_constants.AccessFree}
}

// EligibleAssets fetches the pool a card may draw from: the game's
// category, active, and within the player's access levels. A game with no
// category yields an empty pool.
func EligibleAssets(db *gorm.DB, game *models.Game, premium bool) ([]models.Asset, error) {
	if game.CategoryID == nil {
		return nil, nil
	}
	var assets []models.Asset
	err := db.Where("category_id = ? AND status = ? AND access_level IN ?",
		*game.CategoryID, game_constants.RefStatusActive, AllowedAccessLevels(premium)).
		Find(&assets).Error
	if err != nil {
		return nil, fmt.Errorf("error querying eligible assets: %w", err)
	}
	return assets, nil
}

// Generate builds (or rebuilds) the card for (game, user). userID may be
// empty for an admin-previewed card, which is never premium-entitled.
// Regeneration replaces all squares atomically and is only allowed while
// the game has not started.
func Generate(db *gorm.DB, game *models.Game, userID string) (*models.GameCard, error) {
	if game.Status == game_constants.StatusCompleted {
		return nil, ErrGameCompleted
	}
	if game.GridSizeID == nil {
		return nil, ErrNoGridSize
	}

	var gridSize models.GridSize
	if err := db.Where("id = ?", *game.GridSizeID).First(&gridSize).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGridSizeNotFound
		}
		return nil, err
	}
	rows, cols := ParseGridDimensions(gridSize.Name, gridSize.Slug)

	premium := false
	if userID != "" {
		var user models.User
		if err := db.Where("id = ?", userID).First(&user).Error; err == nil {
			premium = user.IsPremium
		}
	}

	pool, err := EligibleAssets(db, game, premium)
	if err != nil {
		return nil, err
	}
	squares := BuildSquares(pool, rows*cols)

	existing, err := findCard(db, game.ID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if game.Status == game_constants.StatusActive {
			return nil, ErrRegenerationLocked
		}
		return regenerate(db, existing, squares)
	}

	card := &models.GameCard{
		GameID:     game.ID,
		GridSizeID: *game.GridSizeID,
		Squares:    squares,
	}
	if userID != "" {
		card.UserID = &userID
	}
	if err := db.Create(card).Error; err != nil {
		return nil, fmt.Errorf("error creating card: %w", err)
	}
	return card, nil
}

// regenerate swaps the full square set in one transaction; partial decks
// must never be observable.
func regenerate(db *gorm.DB, card *models.GameCard, squares []models.CardSquare) (*models.GameCard, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("card_id = ?", card.ID).Delete(&models.CardSquare{}).Error; err != nil {
			return err
		}
		for i := range squares {
			squares[i].CardID = card.ID
		}
		return tx.Create(&squares).Error
	})
	if err != nil {
		return nil, fmt.Errorf("error regenerating card: %w", err)
	}
	card.Squares = squares
	return card, nil
}

func findCard(db *gorm.DB, gameID, userID string) (*models.GameCard, error) {
	var card models.GameCard
	query := db.Where("game_id = ?", gameID)
	if userID == "" {
		query = query.Where("user_id IS NULL")
	} else {
		query = query.Where("user_id = ?", userID)
	}
	if err := query.First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &card, nil
}
