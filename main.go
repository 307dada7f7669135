package main

import (
	"log"

	"github.com/Waruntorn-K/shuttleq/config"
	"github.com/Waruntorn-K/shuttleq/internal/booking"
	"github.com/Waruntorn-K/shuttleq/internal/court"
	"github.com/Waruntorn-K/shuttleq/internal/queue"
	"github.com/Waruntorn-K/shuttleq/internal/user"
	"github.com/Waruntorn-K/shuttleq/routes"
)

// @title ShuttleQ REST API
// @version 1.0
// @description Court booking and walk-in queue matchmaking for badminton venues.
// @host localhost:8080
// @BasePath /api
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	err := config.DB.AutoMigrate(
		&user.User{}, &user.RefreshToken{},
		&court.Court{}, &court.CourtAvailability{},
		&booking.CourtBooking{},
		&queue.QueueSession{}, &queue.QueueEntry{},
		&queue.QueueMatch{}, &queue.QueueMatchPlayer{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	r := routes.SetupRoutes(config.DB, cfg)

	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
