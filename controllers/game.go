package controllers

import (
	"log"
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

func gameJSON(g *models.Game) gin.H {
	return gin.H{
		"id":                       g.ID,
		"name":                     g.Name,
		"code":                     g.Code,
		"slug":                     g.Slug,
		"description":              g.Description,
		"status":                   g.Status,
		"game_mode":                g.GameMode,
		"access_control":           g.AccessControl,
		"max_players":              g.MaxPlayers,
		"game_start_date":          g.GameStartDate,
		"category_id":              g.CategoryID,
		"grid_size_id":             g.GridSizeID,
		"winning_pattern_type_ids": []string(g.WinningPatternTypeIDs),
		"winner_id":                g.WinnerID,
		"player_ids":               []string(g.PlayerIDs),
		"waitlist_ids":             []string(g.WaitlistIDs),
		"eliminated_player_ids":    []string(g.EliminatedPlayerIDs),
		"created_at":               g.CreatedAt,
	}
}

// @Summary Creates a new game
// @Description Creates a game in DRAFT (SCHEDULED when a start date is given) with a unique join code and slug
// @Tags game
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param game body game_service.CreateGameInput true "Game configuration"
// @Success 200 {object} object{game=object}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /auth/games [post]
// @Security ApiKeyAuth
func CreateGame(db *gorm.DB, rdb *redis_service.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := middleware.JWTDecoder(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var input game_service.CreateGameInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		// Admin tokens create in admin context: the premium gate is skipped
		creatorID := userID
		if middleware.IsAdmin(c) {
			creatorID = ""
		}

		game, err := game_service.CreateGame(db, rdb, input, creatorID)
		if err != nil {
			c.JSON(errStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Game created successfully", "game": gameJSON(game)})
	}
}

// @Summary Lists all games
// @Description Returns every game known to the platform
// @Tags game
// @Produce json
// @Success 200 {array} object{id=string,name=string,code=string,status=string}
// @Failure 500 {object} object{error=string}
// @Router /games [get]
func GetAllGames(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var games []models.Game
		if err := db.Find(&games).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing games"})
			return
		}

		out := make([]gin.H, len(games))
		for i := range games {
			out[i] = gameJSON(&games[i])
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary Lists open games
// @Description Returns joinable games: open access and SCHEDULED or ACTIVE
// @Tags game
// @Produce json
// @Success 200 {array} object{id=string,name=string,code=string,status=string}
// @Failure 500 {object} object{error=string}
// @Router /games/open [get]
func GetOpenGames(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var games []models.Game
		err := db.Where("access_control = ? AND status IN ?",
			false, []string{game_constants.StatusScheduled, game_constants.StatusActive}).
			Find(&games).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing open games"})
			return
		}

		out := make([]gin.H, len(games))
		for i := range games {
			out[i] = gameJSON(&games[i])
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary Lists the caller's games
// @Description Returns every game where the caller is a player
// @Tags game
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {array} object{id=string,name=string,code=string,status=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/games/mine [get]
// @Security ApiKeyAuth
func GetMyGames(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := middleware.JWTDecoder(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var games []models.Game
		if err := db.Where("? = ANY(player_ids)", userID).Find(&games).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing games"})
			return
		}

		out := make([]gin.H, len(games))
		for i := range games {
			out[i] = gameJSON(&games[i])
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary Gives info of a game
// @Description Given a game id, it will return its information
// @Tags game
// @Produce json
// @Param game_id path string true "Id of the game wanted"
// @Success 200 {object} object{id=string,name=string,code=string,status=string}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /games/{game_id} [get]
func GetGameInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID := c.Param("game_id")

		var game models.Game
		result := db.Where("id = ?", gameID).First(&game)
		if result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
			}
			return
		}

		c.JSON(http.StatusOK, gameJSON(&game))
	}
}

// @Summary Gives info of a game by its join code
// @Description Resolves the human-typeable code so clients can preview a game before joining
// @Tags game
// @Produce json
// @Param code path string true "Join code of the game"
// @Success 200 {object} object{id=string,name=string,code=string,status=string}
// @Failure 404 {object} object{error=string}
// @Router /gameByCode/{code} [get]
func GetGameByCode(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		game, err := utils.CheckGameByCode(db, c.Param("code"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}
		c.JSON(http.StatusOK, gameJSON(game))
	}
}

// @Summary Live state of a game
// @Description Returns the Redis runtime snapshot polling clients consume
// @Tags game
// @Produce json
// @Param game_id path string true "Id of the game"
// @Success 200 {object} object{game_id=string,status=string,player_count=integer}
// @Failure 404 {object} object{error=string}
// @Router /games/{game_id}/live [get]
func GetGameLiveState(rdb *redis_service.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID := c.Param("game_id")

		state, err := rdb.GetGameLiveState(gameID)
		if err != nil {
			log.Printf("Error reading live state for game %s: %v", gameID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading live state"})
			return
		}
		if state == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No live state for this game"})
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

// @Summary Updates a game
// @Description Full patch while editable; only status/winner/eliminated/game-mode afterwards (other fields silently ignored)
// @Tags game
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param game_id path string true "Id of the game"
// @Param patch body game_service.UpdateGameInput true "Fields to change"
// @Success 200 {object} object{game=object}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/games/{game_id} [patch]
// @Security ApiKeyAuth
func UpdateGame(db *gorm.DB, rdb *redis_service.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID := c.Param("game_id")

		var input game_service.UpdateGameInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		game, err := game_service.UpdateGame(db, rdb, gameID, input, middleware.IsAdmin(c))
		if err != nil {
			c.JSON(errStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Game updated successfully", "game": gameJSON(game)})
	}
}

// @Summary Starts a game
// @Description Moves a DRAFT/SCHEDULED game to ACTIVE; needs at least one player unless called with an admin token
// @Tags game
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param game_id path string true "Id of the game"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/games/{game_id}/start [post]
// @Security ApiKeyAuth
func StartGame(db *gorm.DB, rdb *redis_service.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID := c.Param("game_id")

		game, err := game_service.StartGame(db, rdb, gameID, middleware.IsAdmin(c))
		if err != nil {
			c.JSON(errStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Game started", "game": gameJSON(game)})
	}
}

// @Summary Inserts the user into a game by its join code
// @Description Adds the caller to the player list, or the waitlist when the game is full
// @Tags game
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param code path string true "Join code, e.g. TMB-42"
// @Success 200 {object} object{message=string,waitlisted=boolean}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/joinByCode/{code} [post]
// @Security ApiKeyAuth
func JoinByCode(db *gorm.DB, rdb *redis_service.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := middleware.JWTDecoder(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		code := c.Param("code")
		game, waitlisted, err := game_service.JoinByCode(db, rdb, code, userID)
		if err != nil {
			c.JSON(errStatus(err), gin.H{"error": err.Error()})
			return
		}

		message := "Joined game successfully"
		if waitlisted {
			message = "Game is full, added to waitlist"
		}
		c.JSON(http.StatusOK, gin.H{
			"message":    message,
			"waitlisted": waitlisted,
			"game_id":    game.ID,
		})
	}
}

// @Summary Removes the user from a game
// @Description Removes the caller from the player list and the waitlist
// @Tags game
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param game_id path string true "Id of the game"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/games/{game_id}/leave [post]
// @Security ApiKeyAuth
func LeaveGame(db *gorm.DB, rdb *redis_service.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := middleware.JWTDecoder(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		gameID := c.Param("game_id")
		if _, err := game_service.LeaveGame(db, rdb, gameID, userID); err != nil {
			c.JSON(errStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Left game successfully"})
	}
}

type setRosterRequest struct {
	PlayerIDs           []string `json:"player_ids"`
	WaitlistIDs         []string `json:"waitlist_ids"`
	EliminatedPlayerIDs []string `json:"eliminated_player_ids"`
}

// @Summary Bulk-replaces a game's roster
// @Description Privileged moderation operation bypassing the join window and capacity checks
// @Tags game
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token (admin)"
// @Param game_id path string true "Id of the game"
// @Param roster body setRosterRequest true "Full roster lists"
// @Success 200 {object} object{game=object}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/games/{game_id}/roster [put]
// @Security ApiKeyAuth
func SetRoster(db *gorm.DB, rdb *redis_service.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !middleware.IsAdmin(c) {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin token required"})
			return
		}

		var req setRosterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		gameID := c.Param("game_id")
		game, err := game_service.AdminSetRoster(db, rdb, gameID,
			req.PlayerIDs, req.WaitlistIDs, req.EliminatedPlayerIDs)
		if err != nil {
			c.JSON(errStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Roster updated", "game": gameJSON(game)})
	}
}
