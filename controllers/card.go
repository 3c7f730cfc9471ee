package controllers

import (
	"net/http"

	"Tambola/middleware"
	models "Tambola/models/postgres"
	"Tambola/services/cards"
	game_service "Tambola/services/game"
	redis_service "Tambola/services/redis"
	"Tambola/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func cardJSON(card *models.GameCard) gin.H {
	squares := make([]gin.H, len(card.Squares))
	for i, sq := range card.Squares {
		squares[i] = gin.H{
			"idx":         sq.Idx,
			"asset_id":    sq.AssetID,
			"is_custom":   sq.IsCustom,
			"custom_text": sq.CustomText,
			"claimed":     sq.Claimed,
			"claimed_at":  sq.ClaimedAt,
		}
	}
	return gin.H{
		"id":           card.ID,
		"game_id":      card.GameID,
		"user_id":      card.UserID,
		"grid_size_id": card.GridSizeID,
		"squares":      squares,
	}
}

// @Summary Generates the caller's card for a game
// @Description First call generates the card; calling again regenerates it while the game has not started. Admin tokens generate an ownerless preview card.
// @Tags card
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param game_id path string true "Id of the game"
// @Success 200 {object} object{card=object}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/games/{game_id}/cards [post]
// @Security ApiKeyAuth
func GenerateCard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := middleware.JWTDecoder(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		game, err := utils.CheckGameExists(db, c.Param("game_id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}

		// Admin preview cards carry no owner
		if middleware.IsAdmin(c) && c.Query("preview") == "true" {
			userID = ""
		}

		if userID != "" {
			isPlayer, err := utils.IsPlayerInGame(db, game.ID, userID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking game roster"})
				return
			}
			if !isPlayer {
				c.JSON(http.StatusForbidden, gin.H{"error": "Only players can generate a card"})
				return
			}
		}

		card, err := cards.Generate(db, game, userID)
		if err != nil {
			c.JSON(errStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Card generated", "card": cardJSON(card)})
	}
}

// @Summary Lists the cards of a game
// @Description Returns every card of a game, optionally filtered by owner
// @Tags card
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param game_id path string true "Id of the game"
// @Param user_id query string false "Only this player's cards"
// @Success 200 {array} object{id=string,game_id=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/games/{game_id}/cards [get]
// @Security ApiKeyAuth
func ListCards(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cardList, err := game_service.ListCards(db, c.Param("game_id"), c.Query("user_id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing cards"})
			return
		}

		out := make([]gin.H, len(cardList))
		for i := range cardList {
			out[i] = cardJSON(&cardList[i])
		}
		c.JSON(http.StatusOK, out)
	}
}

type updateSquaresRequest struct {
	Squares []game_service.SquareUpdate `json:"squares" binding:"required"`
}

// @Summary Updates squares on a card
// @Description Edits custom text/asset bindings; blocked once the game is ACTIVE (squares become claim-only)
// @Tags card
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param card_id path string true "Id of the card"
// @Param squares body updateSquaresRequest true "Square edits"
// @Success 200 {object} object{card=object}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /auth/cards/{card_id}/squares [patch]
// @Security ApiKeyAuth
func UpdateCardSquares(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := middleware.JWTDecoder(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req updateSquaresRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		card, err := game_service.UpdateCardSquares(db, c.Param("card_id"), req.Squares, userID)
		if err != nil {
			c.JSON(errStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Card updated", "card": cardJSON(card)})
	}
}

type claimRequest struct {
	SquareIndex *int `json:"square_index" binding:"required"`
}

// @Summary Claims a square on the caller's card
// @Description Marks the square claimed and runs the win check across the game's configured patterns
// @Tags card
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param card_id path string true "Id of the card"
// @Param claim body claimRequest true "Row-major square index"
// @Success 200 {object} object{won=boolean}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /auth/cards/{card_id}/claim [post]
// @Security ApiKeyAuth
func ClaimSquare(db *gorm.DB, rdb *redis_service.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := middleware.JWTDecoder(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req claimRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.SquareIndex == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "square_index is required"})
			return
		}

		won, err := game_service.ClaimSquare(db, rdb, c.Param("card_id"), *req.SquareIndex, userID)
		if err != nil {
			c.JSON(errStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Square claimed", "won": won})
	}
}
