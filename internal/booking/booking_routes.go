package booking

import (
	"github.com/Waruntorn-K/shuttleq/config"
	"github.com/Waruntorn-K/shuttleq/internal/court"
	"github.com/Waruntorn-K/shuttleq/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterBookingRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewBookingRepository(db)
	courtRepo := court.NewCourtRepository(db)
	controller := NewBookingController(NewBookingService(repo, courtRepo))

	router.GET("/courts/:court_id/slots", controller.GetAvailableSlots)

	protected := router.Group("/bookings")
	protected.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret))
	{
		protected.POST("", controller.CreateBooking)
		protected.GET("", controller.ListMyBookings)
		protected.DELETE("/:booking_id", controller.CancelBooking)
	}
}
