package controllers

import (
	"net/http"

	game_constants "Tambola/constants/game"
	"Tambola/middleware"
	models "Tambola/models/postgres"
	game_service "Tambola/services/game"
	redis_service "Tambola/services/redis"
	"Tambola/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func inviteJSON(i *models.GameInvite) gin.H {
	return gin.H{
		"id":              i.ID,
		"game_id":         i.GameID,
		"invited_user_id": i.InvitedUserID,
		"invited_by_id":   i.InvitedByID,
		"status":          i.Status,
		"created_at":      i.CreatedAt,
	}
}

type createInviteRequest struct {
	InvitedUserID string `json:"invited_user_id" binding:"required"`
}

// @Summary Invites a user into a closed game
// @Description Creates a PENDING invite; only one invite may exist per (game, user) pair
// @Tags invite
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param game_id path string true "Id of the game"
// @Param invite body createInviteRequest true "User to invite"
// @Success 200 {object} object{invite=object}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /auth/games/{game_id}/invites [post]
// @Security ApiKeyAuth
func CreateInvite(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := middleware.JWTDecoder(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req createInviteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invited_user_id is required"})
			return
		}

		if _, err := utils.UserExists(db, req.InvitedUserID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		invite, err := game_service.CreateInvite(db, c.Param("game_id"), req.InvitedUserID, userID)
		if err != nil {
			c.JSON(errStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Invite created", "invite": inviteJSON(invite)})
	}
}

// @Summary Accepts an invite
// @Description Promotes the invited user into the player list; a full game rejects the accept
// @Tags invite
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param invite_id path string true "Id of the invite"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /auth/invites/{invite_id}/accept [post]
// @Security ApiKeyAuth
func AcceptInvite(db *gorm.DB, rdb *redis_service.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := middleware.JWTDecoder(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		game, err := game_service.AcceptInvite(db, rdb, c.Param("invite_id"), userID)
		if err != nil {
			c.JSON(errStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Invite accepted", "game_id": game.ID})
	}
}

// @Summary Revokes an invite
// @Description Only the inviter may revoke, and only while the invite is PENDING
// @Tags invite
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param invite_id path string true "Id of the invite"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /auth/invites/{invite_id}/revoke [post]
// @Security ApiKeyAuth
func RevokeInvite(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := middleware.JWTDecoder(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		invite, err := game_service.RevokeInvite(db, c.Param("invite_id"), userID)
		if err != nil {
			c.JSON(errStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Invite revoked", "invite": inviteJSON(invite)})
	}
}

// @Summary Lists the caller's pending invites
// @Description Returns every PENDING invite addressed to the caller
// @Tags invite
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {array} object{id=string,game_id=string,status=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/invites [get]
// @Security ApiKeyAuth
func GetMyInvites(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := middleware.JWTDecoder(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var invites []models.GameInvite
		err = db.Where("invited_user_id = ? AND status = ?", userID, game_constants.InvitePending).
			Find(&invites).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing invites"})
			return
		}

		out := make([]gin.H, len(invites))
		for i := range invites {
			out[i] = inviteJSON(&invites[i])
		}
		c.JSON(http.StatusOK, out)
	}
}
