package postgres

import (
	"time"

	"gorm.io/datatypes"
)

/*
 * 'User' is the external account/entitlement collaborator. The core only
 * reads it: identity plus the single premium gate. Account management lives
 * in another service.
 */
type User struct {
	ID        string         `gorm:"primaryKey;size:36;not null"`
	Username  string         `gorm:"size:50;not null;uniqueIndex"`
	Email     string         `gorm:"size:100"`
	IsPremium bool           `gorm:"default:false"`
	Profile   datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	CreatedAt time.Time      `gorm:"default:CURRENT_TIMESTAMP"`
}
