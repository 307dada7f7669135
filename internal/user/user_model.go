package user

import (
	"time"

	"gorm.io/gorm"
)

const (
	RolePlayer = "player"
	RoleOwner  = "owner"
)

type User struct {
	gorm.Model
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Phone        string `json:"phone"`
	Role         string `gorm:"type:VARCHAR(20);not null;default:'player'" json:"role"`
}

type RefreshToken struct {
	gorm.Model
	UserID    uint      `gorm:"index;not null"`
	Token     string    `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Revoked   bool      `gorm:"default:false"`
}
