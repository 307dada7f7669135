package queue

import (
	"github.com/Waruntorn-K/shuttleq/config"
	"github.com/Waruntorn-K/shuttleq/internal/court"
	"github.com/Waruntorn-K/shuttleq/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterQueueRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewQueueRepository(db)
	courtRepo := court.NewCourtRepository(db)
	queueController := NewQueueController(NewQueueService(repo))
	matchController := NewMatchController(NewMatchService(repo, courtRepo))

	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret))
	{
		protected.POST("/sessions", queueController.CreateSession)
		protected.GET("/sessions", queueController.ListSessions)
		protected.GET("/sessions/:session_id", queueController.GetSessionDetail)
		protected.POST("/sessions/:session_id/start", queueController.StartSession)
		protected.POST("/sessions/:session_id/end", queueController.EndSession)

		protected.POST("/sessions/:session_id/entries", queueController.AddEntry)
		protected.PATCH("/entries/:entry_id", queueController.UpdateEntry)
		protected.DELETE("/entries/:entry_id", queueController.RemoveEntry)

		protected.GET("/sessions/:session_id/suggest", matchController.SuggestMatch)
		protected.POST("/sessions/:session_id/matches", matchController.CreateMatch)
		protected.GET("/matches/:match_id", matchController.GetMatch)
		protected.POST("/matches/:match_id/complete", matchController.CompleteMatch)
	}
}
