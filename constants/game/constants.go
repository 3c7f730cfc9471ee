package game_constants

// Game status values. Transitions only move forward through this order.
const (
	StatusDraft     = "DRAFT"
	StatusScheduled = "SCHEDULED"
	StatusActive    = "ACTIVE"
	StatusCompleted = "COMPLETED"
)

// Game modes
const (
	ModeStandard    = "STANDARD"
	ModeElimination = "ELIMINATION"
)

// Invite status values
const (
	InvitePending  = "PENDING"
	InviteAccepted = "ACCEPTED"
	InviteRevoked  = "REVOKED"
)

// Winning pattern names understood by the pattern engine
const (
	PatternFullHouse = "full-house"
	PatternRow       = "row"
	PatternColumn    = "column"
	PatternDiagonal  = "diagonal"
	PatternCorners   = "corners"
	PatternX         = "x"
)

// Asset access levels
const (
	AccessFree    = "FREE"
	AccessPremium = "PREMIUM"
)

// Status value shared by reference data (categories, grid sizes, assets...)
const RefStatusActive = "ACTIVE"

// Category visibility / pattern-type tier that require a premium creator
const (
	VisibilityPremium = "PREMIUM"
	TierAdvanced      = "ADVANCED"
)

// Grid limits. Unparseable grid sizes fall back to the classic tambola ticket.
const (
	DefaultGridRows = 3
	DefaultGridCols = 9
	MaxGridRows     = 10
	MaxGridCols     = 15
)

// GameCodePrefix prefixes the sequential human-typeable join codes
const GameCodePrefix = "TMB-"

// DefaultCustomText fills squares when no eligible asset exists
const DefaultCustomText = "Write your own"
