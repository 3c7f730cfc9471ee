package game

import "errors"

// Sentinel errors for every rejected request. Controllers map them onto
// HTTP status codes; nothing here is retried internally.
var (
	// Not found
	ErrGameNotFound   = errors.New("game not found")
	ErrCardNotFound   = errors.New("card not found")
	ErrInviteNotFound = errors.New("invite not found")

	// Invalid state
	ErrGameNotEditable      = errors.New("game is no longer editable")
	ErrGameNotJoinable      = errors.New("game is not accepting roster changes")
	ErrGameNotStartable     = errors.New("game can only be started from draft or scheduled")
	ErrGameNotActive        = errors.New("game is not active")
	ErrStatusRegression     = errors.New("game status can only move forward")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrSquareAlreadyClaimed = errors.New("square is already claimed")
	ErrSquaresLocked        = errors.New("squares are claim-only once the game is active")
	ErrInviteNotPending     = errors.New("invite is no longer pending")
	ErrNoPlayers            = errors.New("game has no players")

	// Capacity
	ErrGameFull = errors.New("game is full")

	// Conflict
	ErrAlreadyJoined   = errors.New("user is already a player or waitlisted")
	ErrDuplicateInvite = errors.New("an invite for this user already exists")
	ErrNotInGame       = errors.New("user is neither a player nor waitlisted")

	// Authorization
	ErrClosedGame      = errors.New("game requires an invite to join")
	ErrOpenGameInvite  = errors.New("invites only exist for closed games")
	ErrNotCardOwner    = errors.New("card belongs to another player")
	ErrNotInvitee      = errors.New("invite is addressed to another user")
	ErrNotInviter      = errors.New("only the inviter may revoke an invite")
	ErrPremiumRequired = errors.New("configuration requires a premium creator")

	// Validation
	ErrInvalidMaxPlayers     = errors.New("max_players must be at least 1")
	ErrInvalidGameMode       = errors.New("unknown game mode")
	ErrSquareIndexOutOfRange = errors.New("square index out of range")
	ErrNameRequired          = errors.New("game name is required")
)
