package game

import (
	"errors"
	"fmt"

	game_constants "Tambola/constants/game"
	models "Tambola/models/postgres"
	redis_service "Tambola/services/redis"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Roster mutations are only effective while the game sits in the join
// window (DRAFT or SCHEDULED). The players, waitlist and eliminated lists
// stay pairwise disjoint and duplicate-free throughout.

// ApplyJoin places userID on the player list, or on the waitlist when the
// game is at capacity. Pure in-memory mutation; JoinByCode persists it.
func ApplyJoin(g *models.Game, userID string) (waitlisted bool, err error) {
	if g.AccessControl {
		return false, ErrClosedGame
	}
	if !g.IsEditable() {
		return false, ErrGameNotJoinable
	}
	if g.HasPlayer(userID) || g.IsWaitlisted(userID) {
		return false, ErrAlreadyJoined
	}
	// joining clears any stale elimination so the three lists stay disjoint
	g.EliminatedPlayerIDs = removeID(g.EliminatedPlayerIDs, userID)
	if g.IsFull() {
		g.WaitlistIDs = append(g.WaitlistIDs, userID)
		return true, nil
	}
	g.PlayerIDs = append(g.PlayerIDs, userID)
	return false, nil
}

// ApplyLeave removes userID from every roster list.
func ApplyLeave(g *models.Game, userID string) error {
	if !g.IsEditable() {
		return ErrGameNotJoinable
	}
	if !g.HasPlayer(userID) && !g.IsWaitlisted(userID) {
		return ErrNotInGame
	}
	g.PlayerIDs = removeID(g.PlayerIDs, userID)
	g.WaitlistIDs = removeID(g.WaitlistIDs, userID)
	g.EliminatedPlayerIDs = removeID(g.EliminatedPlayerIDs, userID)
	return nil
}

// JoinByCode resolves the game by its human-typeable code and adds the user.
func JoinByCode(db *gorm.DB, rdb redis_service.LiveStateStore, code, userID string) (*models.Game, bool, error) {
	var game models.Game
	if err := db.Where("code = ?", code).First(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrGameNotFound
		}
		return nil, false, err
	}

	waitlisted, err := ApplyJoin(&game, userID)
	if err != nil {
		return nil, false, err
	}
	if err := db.Save(&game).Error; err != nil {
		return nil, false, fmt.Errorf("error joining game: %w", err)
	}
	PublishLiveState(rdb, &game, nil)
	return &game, waitlisted, nil
}

// LeaveGame removes the user from the roster while the join window is open.
func LeaveGame(db *gorm.DB, rdb redis_service.LiveStateStore, gameID, userID string) (*models.Game, error) {
	var game models.Game
	if err := db.Where("id = ?", gameID).First(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	if err := ApplyLeave(&game, userID); err != nil {
		return nil, err
	}
	if err := db.Save(&game).Error; err != nil {
		return nil, fmt.Errorf("error leaving game: %w", err)
	}
	PublishLiveState(rdb, &game, nil)
	return &game, nil
}

// CreateInvite issues a PENDING invite on a closed game. At most one invite
// may exist per (game, invited user) pair, whatever its status.
func CreateInvite(db *gorm.DB, gameID, invitedUserID, inviterID string) (*models.GameInvite, error) {
	var game models.Game
	if err := db.Where("id = ?", gameID).First(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	if !game.AccessControl {
		return nil, ErrOpenGameInvite
	}
	if !game.IsEditable() {
		return nil, ErrGameNotJoinable
	}

	var count int64
	err := db.Model(&models.GameInvite{}).
		Where("game_id = ? AND invited_user_id = ?", gameID, invitedUserID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateInvite
	}

	invite := &models.GameInvite{
		GameID:        gameID,
		InvitedUserID: invitedUserID,
		InvitedByID:   inviterID,
		Status:        game_constants.InvitePending,
	}
	if err := db.Create(invite).Error; err != nil {
		return nil, fmt.Errorf("error creating invite: %w", err)
	}
	return invite, nil
}

// AcceptInvite promotes the invited user onto the player list. A full game
// rejects the accept outright; invite acceptance never falls back to the
// waitlist.
func AcceptInvite(db *gorm.DB, rdb redis_service.LiveStateStore, inviteID, userID string) (*models.Game, error) {
	var invite models.GameInvite
	if err := db.Where("id = ?", inviteID).First(&invite).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, err
	}
	if invite.InvitedUserID != userID {
		return nil, ErrNotInvitee
	}
	if invite.Status != game_constants.InvitePending {
		return nil, ErrInviteNotPending
	}

	var game models.Game
	if err := db.Where("id = ?", invite.GameID).First(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	if !game.IsEditable() {
		return nil, ErrGameNotJoinable
	}
	if game.HasPlayer(userID) || game.IsWaitlisted(userID) {
		return nil, ErrAlreadyJoined
	}
	if game.IsFull() {
		return nil, ErrGameFull
	}

	game.PlayerIDs = append(game.PlayerIDs, userID)
	invite.Status = game_constants.InviteAccepted

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&game).Error; err != nil {
			return err
		}
		return tx.Save(&invite).Error
	})
	if err != nil {
		return nil, fmt.Errorf("error accepting invite: %w", err)
	}
	PublishLiveState(rdb, &game, nil)
	return &game, nil
}

// RevokeInvite is terminal and restricted to the inviter, while PENDING.
func RevokeInvite(db *gorm.DB, inviteID, userID string) (*models.GameInvite, error) {
	var invite models.GameInvite
	if err := db.Where("id = ?", inviteID).First(&invite).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, err
	}
	if invite.InvitedByID != userID {
		return nil, ErrNotInviter
	}
	if invite.Status != game_constants.InvitePending {
		return nil, ErrInviteNotPending
	}

	invite.Status = game_constants.InviteRevoked
	if err := db.Save(&invite).Error; err != nil {
		return nil, fmt.Errorf("error revoking invite: %w", err)
	}
	return &invite, nil
}

// AdminSetRoster bulk-replaces the three roster lists, bypassing the join
// window and capacity checks. The lists are still normalized so the
// disjointness invariant survives moderation tooling.
func AdminSetRoster(db *gorm.DB, rdb redis_service.LiveStateStore, gameID string, players, waitlist, eliminated []string) (*models.Game, error) {
	var game models.Game
	if err := db.Where("id = ?", gameID).First(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	game.PlayerIDs, game.WaitlistIDs, game.EliminatedPlayerIDs = NormalizeRoster(players, waitlist, eliminated)
	if err := db.Save(&game).Error; err != nil {
		return nil, fmt.Errorf("error setting roster: %w", err)
	}
	PublishLiveState(rdb, &game, nil)
	return &game, nil
}

// NormalizeRoster de-duplicates each list and keeps the three pairwise
// disjoint. Players win over waitlist, waitlist over eliminated.
func NormalizeRoster(players, waitlist, eliminated []string) (pq.StringArray, pq.StringArray, pq.StringArray) {
	seen := make(map[string]bool)
	dedupe := func(ids []string) pq.StringArray {
		out := pq.StringArray{}
		for _, id := range ids {
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, id)
		}
		return out
	}
	p := dedupe(players)
	w := dedupe(waitlist)
	e := dedupe(eliminated)
	return p, w, e
}

func removeID(ids pq.StringArray, userID string) pq.StringArray {
	out := ids[:0]
	for _, id := range ids {
		if id != userID {
			out = append(out, id)
		}
	}
	return out
}
