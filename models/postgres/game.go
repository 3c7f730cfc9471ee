package postgres

import (
	"time"

	game_constants "Tambola/constants/game"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

/*
 * 'Game' defines the structure of a Tambola game session. Configuration
 * references point at reference-data rows resolved through lookups; the
 * roster lists hold user ids and stay pairwise disjoint.
 */
type Game struct {
	ID   string `gorm:"primaryKey;size:36;not null"`
	Name string `gorm:"size:100;not null"`
	Code string `gorm:"size:20;not null;uniqueIndex:idx_games_code"`
	Slug string `gorm:"size:120;not null;uniqueIndex:idx_games_slug"`

	// Configuration, mutable only while the game is editable
	EventID               *string        `gorm:"size:36;index"`
	CategoryID            *string        `gorm:"size:36;index"`
	GridSizeID            *string        `gorm:"size:36"`
	CardGenTypeID         *string        `gorm:"size:36"`
	GameTypeID            *string        `gorm:"size:36"`
	WinningPatternTypeIDs pq.StringArray `gorm:"type:text[]"`
	// Legacy single-pattern references, folded into the same "any of" set
	WinningPatternTypeID *string `gorm:"size:36"`
	WinningPatternID     *string `gorm:"size:36"`

	AccessControl bool       `gorm:"default:false;index:idx_games_access"` // true = invite only
	MaxPlayers    *int       `gorm:""`
	GameStartDate *time.Time `gorm:"index:idx_games_start_date"`
	Description   string     `gorm:"type:text"`
	GameMode      string     `gorm:"size:20;default:'STANDARD'"`

	// Runtime state
	Status              string         `gorm:"size:20;default:'DRAFT';index:idx_games_status"`
	WinnerID            *string        `gorm:"size:36"`
	PlayerIDs           pq.StringArray `gorm:"type:text[]"`
	WaitlistIDs         pq.StringArray `gorm:"type:text[]"`
	EliminatedPlayerIDs pq.StringArray `gorm:"type:text[]"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time

	// Relationships
	Invites []GameInvite `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
	Cards   []GameCard   `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
}

func (g *Game) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.GameMode == "" {
		g.GameMode = game_constants.ModeStandard
	}
	if g.Status == "" {
		g.Status = game_constants.StatusDraft
	}
	return nil
}

// IsEditable reports whether configuration and roster changes are still allowed.
func (g *Game) IsEditable() bool {
	return g.Status == game_constants.StatusDraft || g.Status == game_constants.StatusScheduled
}

// HasPlayer reports whether userID is on the active player list.
func (g *Game) HasPlayer(userID string) bool {
	for _, id := range g.PlayerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// IsWaitlisted reports whether userID sits on the overflow queue.
func (g *Game) IsWaitlisted(userID string) bool {
	for _, id := range g.WaitlistIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// IsFull reports whether the player list has reached MaxPlayers.
// An unset MaxPlayers means unlimited capacity.
func (g *Game) IsFull() bool {
	return g.MaxPlayers != nil && len(g.PlayerIDs) >= *g.MaxPlayers
}
