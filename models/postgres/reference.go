package postgres

import (
	"time"

	"gorm.io/datatypes"
)

// Reference data consumed by the core through read-only lookups. The admin
// CRUD that manages these collections lives outside this service; the core
// never creates or mutates them.

type Category struct {
	ID         string    `gorm:"primaryKey;size:36;not null"`
	Name       string    `gorm:"size:100;not null"`
	Slug       string    `gorm:"size:120;uniqueIndex"`
	Visibility string    `gorm:"size:20;default:'FREE'"` // FREE or PREMIUM
	Status     string    `gorm:"size:20;default:'ACTIVE'"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}

// GridSize names carry the dimensions, e.g. slug "3x9" or "5x5".
type GridSize struct {
	ID        string    `gorm:"primaryKey;size:36;not null"`
	Name      string    `gorm:"size:100;not null"`
	Slug      string    `gorm:"size:120;uniqueIndex"`
	Status    string    `gorm:"size:20;default:'ACTIVE'"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}

// WinningPatternType is an admin-named alias resolving to one of the fixed
// pattern names the engine understands. Tier ADVANCED is premium-gated.
type WinningPatternType struct {
	ID        string    `gorm:"primaryKey;size:36;not null"`
	Name      string    `gorm:"size:100;not null;uniqueIndex"`
	Slug      string    `gorm:"size:120"`
	Pattern   string    `gorm:"size:30;not null"` // row, column, diagonal, corners, x, full-house
	Tier      string    `gorm:"size:20;default:'BASIC'"`
	Status    string    `gorm:"size:20;default:'ACTIVE'"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}

// WinningPattern is the legacy single-pattern reference; Slug holds the
// engine pattern name directly.
type WinningPattern struct {
	ID        string    `gorm:"primaryKey;size:36;not null"`
	Name      string    `gorm:"size:100;not null;uniqueIndex"`
	Slug      string    `gorm:"size:120"`
	Status    string    `gorm:"size:20;default:'ACTIVE'"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}

type Event struct {
	ID        string    `gorm:"primaryKey;size:36;not null"`
	Name      string    `gorm:"size:100;not null"`
	Slug      string    `gorm:"size:120"`
	Status    string    `gorm:"size:20;default:'ACTIVE'"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}

type GameType struct {
	ID        string    `gorm:"primaryKey;size:36;not null"`
	Name      string    `gorm:"size:100;not null"`
	Slug      string    `gorm:"size:120"`
	Status    string    `gorm:"size:20;default:'ACTIVE'"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}

type CardGenType struct {
	ID        string    `gorm:"primaryKey;size:36;not null"`
	Name      string    `gorm:"size:100;not null"`
	Slug      string    `gorm:"size:120"`
	Status    string    `gorm:"size:20;default:'ACTIVE'"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}

// Asset is a claimable image/item belonging to a category. Access level
// gates which players may receive it on a card.
type Asset struct {
	ID          string         `gorm:"primaryKey;size:36;not null"`
	Name        string         `gorm:"size:100"`
	CategoryID  string         `gorm:"size:36;not null;index:idx_assets_category"`
	AccessLevel string         `gorm:"size:20;default:'FREE';index:idx_assets_access"`
	Status      string         `gorm:"size:20;default:'ACTIVE'"`
	ImageURL    string         `gorm:"size:500"`
	Metadata    datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	CreatedAt   time.Time      `gorm:"default:CURRENT_TIMESTAMP"`
}
