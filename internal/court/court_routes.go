package court

import (
	"github.com/Waruntorn-K/shuttleq/config"
	"github.com/Waruntorn-K/shuttleq/internal/middleware"
	"github.com/Waruntorn-K/shuttleq/pkg/rmiddleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterCourtRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewCourtRepository(db)
	controller := NewCourtController(NewCourtService(repo))

	// Public: players need the weekly template to pick a day.
	router.GET("/courts/:court_id/availability", controller.ListAvailability)

	owner := router.Group("/courts")
	owner.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret), rmiddleware.OwnerMiddleware())
	{
		owner.POST("", controller.CreateCourt)
		owner.GET("", controller.ListCourts)
		owner.PATCH("/:court_id/active", controller.SetActive)
		owner.POST("/:court_id/availability", controller.CreateAvailability)
		owner.PUT("/:court_id/availability/:availability_id", controller.UpdateAvailability)
		owner.DELETE("/:court_id/availability/:availability_id", controller.DeleteAvailability)
	}
}
