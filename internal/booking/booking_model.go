package booking

import (
	"time"

	"github.com/Waruntorn-K/shuttleq/internal/court"
	"gorm.io/gorm"
)

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"

	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// CourtBooking is one reserved time range on a court. UserID is nullable so
// guest walk-in flows outside this core can reuse the table.
type CourtBooking struct {
	gorm.Model
	CourtID          uint        `gorm:"index;not null" json:"court_id"`
	Court            court.Court `gorm:"foreignKey:CourtID" json:"-"`
	UserID           *uint       `gorm:"index" json:"user_id,omitempty"`
	Reference        string      `gorm:"type:VARCHAR(36);uniqueIndex" json:"reference"`
	Date             string      `gorm:"type:VARCHAR(10);index;not null" json:"date"`
	StartTime        string      `gorm:"type:VARCHAR(5);not null" json:"start_time"`
	EndTime          string      `gorm:"type:VARCHAR(5);not null" json:"end_time"`
	Status           string      `gorm:"type:VARCHAR(20);not null;default:'confirmed'" json:"status"`
	PaymentStatus    string      `gorm:"type:VARCHAR(20);not null;default:'pending'" json:"payment_status"`
	ShuttlecockCount int         `json:"shuttlecock_count"`
	SessionStartedAt *time.Time  `json:"session_started_at,omitempty"`
	SessionEndedAt   *time.Time  `json:"session_ended_at,omitempty"`
}

// Slot is a fixed one-hour candidate interval derived from an availability
// window. Times are "HH:MM".
type Slot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}

type BookingInput struct {
	CourtID   uint   `json:"court_id" binding:"required" example:"1"`
	Date      string `json:"date" binding:"required" example:"2026-09-05"`
	StartTime string `json:"start_time" binding:"required" example:"18:00"`
	EndTime   string `json:"end_time" binding:"required" example:"19:00"`
}
