package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
 * 'GameCard' is one player's grid for a specific game. A nil UserID marks an
 * admin-previewed/anonymous card. Squares are their own rows keyed by
 * (card, idx) so a claim can be written as a single conditional update.
 */
type GameCard struct {
	ID         string  `gorm:"primaryKey;size:36;not null"`
	GameID     string  `gorm:"size:36;not null;index:idx_game_cards_game"`
	UserID     *string `gorm:"size:36;index:idx_game_cards_user"`
	GridSizeID string  `gorm:"size:36;not null"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time

	// Relationships
	Game    Game         `gorm:"foreignKey:GameID"`
	Squares []CardSquare `gorm:"foreignKey:CardID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (c *GameCard) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

/*
 * 'CardSquare' is one grid position, addressed by row-major index. It is
 * either bound to an asset or a free-text custom slot. Claimed is monotonic:
 * the claim path never sets it back to false, only a full regeneration
 * replaces the rows.
 */
type CardSquare struct {
	// NOTE: composite primary key definition
	CardID     string     `gorm:"primaryKey;size:36;not null"`
	Idx        int        `gorm:"primaryKey;not null"`
	AssetID    *string    `gorm:"size:36"`
	IsCustom   bool       `gorm:"default:false"`
	CustomText string     `gorm:"size:255"`
	Claimed    bool       `gorm:"default:false"`
	ClaimedAt  *time.Time `gorm:""`
}
