package controllers

import (
	"errors"
	"net/http"

	"Tambola/services/cards"
	game_service "Tambola/services/game"
)

// errStatus maps service errors onto HTTP status codes. Every rejection is
// terminal for the caller; nothing is queued or retried server-side.
func errStatus(err error) int {
	switch {
	case errors.Is(err, game_service.ErrGameNotFound),
		errors.Is(err, game_service.ErrCardNotFound),
		errors.Is(err, game_service.ErrInviteNotFound),
		errors.Is(err, cards.ErrGridSizeNotFound):
		return http.StatusNotFound

	case errors.Is(err, game_service.ErrNotCardOwner),
		errors.Is(err, game_service.ErrNotInvitee),
		errors.Is(err, game_service.ErrNotInviter),
		errors.Is(err, game_service.ErrClosedGame),
		errors.Is(err, game_service.ErrPremiumRequired):
		return http.StatusForbidden

	case errors.Is(err, game_service.ErrAlreadyJoined),
		errors.Is(err, game_service.ErrDuplicateInvite),
		errors.Is(err, game_service.ErrSquareAlreadyClaimed):
		return http.StatusConflict

	case errors.Is(err, game_service.ErrGameNotEditable),
		errors.Is(err, game_service.ErrGameNotJoinable),
		errors.Is(err, game_service.ErrGameNotStartable),
		errors.Is(err, game_service.ErrGameNotActive),
		errors.Is(err, game_service.ErrStatusRegression),
		errors.Is(err, game_service.ErrInvalidTransition),
		errors.Is(err, game_service.ErrSquaresLocked),
		errors.Is(err, game_service.ErrInviteNotPending),
		errors.Is(err, game_service.ErrNoPlayers),
		errors.Is(err, game_service.ErrGameFull),
		errors.Is(err, game_service.ErrNotInGame),
		errors.Is(err, game_service.ErrOpenGameInvite),
		errors.Is(err, game_service.ErrInvalidMaxPlayers),
		errors.Is(err, game_service.ErrInvalidGameMode),
		errors.Is(err, game_service.ErrSquareIndexOutOfRange),
		errors.Is(err, game_service.ErrNameRequired),
		errors.Is(err, cards.ErrNoGridSize),
		errors.Is(err, cards.ErrGameCompleted),
		errors.Is(err, cards.ErrRegenerationLocked):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
