package court

import (
	"github.com/Waruntorn-K/shuttleq/internal/user"
	"gorm.io/gorm"
)

type Court struct {
	gorm.Model
	OwnerID           uint      `gorm:"index;not null" json:"owner_id"`
	Owner             user.User `gorm:"foreignKey:OwnerID" json:"-"`
	Name              string    `gorm:"not null" json:"name"`
	Active            bool      `gorm:"default:true" json:"active"`
	HourlyRate        float64   `json:"hourly_rate"`
	ReservationFeePct float64   `json:"reservation_fee_pct"`
}

// CourtAvailability is the weekly open/close template: at most one window
// per (court, day-of-week). Times are "HH:MM" strings.
type CourtAvailability struct {
	gorm.Model
	CourtID   uint   `gorm:"not null;uniqueIndex:idx_court_day" json:"court_id"`
	DayOfWeek int    `gorm:"not null;uniqueIndex:idx_court_day" json:"day_of_week"`
	OpenTime  string `gorm:"type:VARCHAR(5);not null" json:"open_time"`
	CloseTime string `gorm:"type:VARCHAR(5);not null" json:"close_time"`
}

type CourtInput struct {
	Name              string  `json:"name" binding:"required" example:"Court 1"`
	HourlyRate        float64 `json:"hourly_rate" binding:"omitempty,gte=0" example:"160"`
	ReservationFeePct float64 `json:"reservation_fee_pct" binding:"omitempty,gte=0,lte=100" example:"50"`
}

type AvailabilityInput struct {
	DayOfWeek *int   `json:"day_of_week" binding:"required,gte=0,lte=6" example:"6"`
	OpenTime  string `json:"open_time" binding:"required" example:"09:00"`
	CloseTime string `json:"close_time" binding:"required" example:"21:00"`
}

type SetActiveInput struct {
	Active *bool `json:"active" binding:"required"`
}
