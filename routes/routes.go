package routes

import (
	"Tambola/controllers"
	"Tambola/middleware"
	"Tambola/services/redis"
	"Tambola/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient) {
	router.Use(utils.Logger())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes group
	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.GET("/games", controllers.GetAllGames(db))

	api.GET("/games/open", controllers.GetOpenGames(db))

	api.GET("/gameByCode/:code", controllers.GetGameByCode(db))

	api.GET("/games/:game_id", controllers.GetGameInfo(db))

	api.GET("/games/:game_id/live", controllers.GetGameLiveState(redisClient))

	authentication := api.Group("/auth")
	authentication.Use(middleware.AuthRequired)
	{
		authentication.POST("/games", controllers.CreateGame(db, redisClient))

		authentication.GET("/games/mine", controllers.GetMyGames(db))

		authentication.PATCH("/games/:game_id", controllers.UpdateGame(db, redisClient))

		authentication.POST("/games/:game_id/start", controllers.StartGame(db, redisClient))

		authentication.POST("/joinByCode/:code", controllers.JoinByCode(db, redisClient))

		authentication.POST("/games/:game_id/leave", controllers.LeaveGame(db, redisClient))

		authentication.PUT("/games/:game_id/roster", controllers.SetRoster(db, redisClient))

		authentication.POST("/games/:game_id/invites", controllers.CreateInvite(db))

		authentication.GET("/invites", controllers.GetMyInvites(db))

		authentication.POST("/invites/:invite_id/accept", controllers.AcceptInvite(db, redisClient))

		authentication.POST("/invites/:invite_id/revoke", controllers.RevokeInvite(db))

		authentication.POST("/games/:game_id/cards", controllers.GenerateCard(db))

		authentication.GET("/games/:game_id/cards", controllers.ListCards(db))

		authentication.PATCH("/cards/:card_id/squares", controllers.UpdateCardSquares(db))

		authentication.POST("/cards/:card_id/claim", controllers.ClaimSquare(db, redisClient))
	}
}
