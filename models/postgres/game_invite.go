package postgres

import (
	"time"

	game_constants "Tambola/constants/game"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
 * 'GameInvite' represents an invitation into a closed game. At most one
 * invite may exist per (game, invited user) pair; accept and revoke are
 * terminal.
 */
type GameInvite struct {
	ID            string    `gorm:"primaryKey;size:36;not null"`
	GameID        string    `gorm:"size:36;not null;uniqueIndex:idx_game_invites_pair"`
	InvitedUserID string    `gorm:"size:36;not null;uniqueIndex:idx_game_invites_pair"`
	InvitedByID   string    `gorm:"size:36;not null;index"`
	Status        string    `gorm:"size:20;default:'PENDING'"`
	CreatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time

	// Relationships
	Game Game `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
}

func (i *GameInvite) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Status == "" {
		i.Status = game_constants.InvitePending
	}
	return nil
}
