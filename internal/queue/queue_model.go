package queue

import (
	"errors"
	"time"

	"github.com/Waruntorn-K/shuttleq/internal/court"
	"github.com/Waruntorn-K/shuttleq/internal/user"
	"gorm.io/gorm"
)

// Session statuses are operator-driven and monotonic.
const (
	SessionUpcoming = "upcoming"
	SessionActive   = "active"
	SessionEnded    = "ended"
)

// Entry statuses. Entries start waiting, move to playing while in a match
// and return to waiting when it completes. "done" and "left" are
// operator-settable.
const (
	EntryWaiting = "waiting"
	EntryMatched = "matched"
	EntryPlaying = "playing"
	EntryDone    = "done"
	EntryLeft    = "left"
)

const (
	MatchActive    = "active"
	MatchCompleted = "completed"
)

const (
	TeamA = "A"
	TeamB = "B"
)

const (
	MinLevel = 1.0
	MaxLevel = 7.0
)

// QueueSession is one walk-in play session run by an owner or a delegated
// queue master.
type QueueSession struct {
	gorm.Model
	OwnerID   uint      `gorm:"index;not null" json:"owner_id"`
	Owner     user.User `gorm:"foreignKey:OwnerID" json:"-"`
	Date      string    `gorm:"type:VARCHAR(10);not null" json:"date"`
	StartTime string    `gorm:"type:VARCHAR(5);not null" json:"start_time"`
	EndTime   *string   `gorm:"type:VARCHAR(5)" json:"end_time,omitempty"`
	Status    string    `gorm:"type:VARCHAR(20);not null;default:'upcoming'" json:"status"`
}

// QueueEntry is one participant waiting for or playing a match. Exactly one
// of UserID or GuestName is set; Participant enforces the split at creation.
type QueueEntry struct {
	gorm.Model
	SessionID   uint       `gorm:"index;not null" json:"session_id"`
	UserID      *uint      `gorm:"index" json:"user_id,omitempty"`
	User        *user.User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	GuestName   string     `json:"guest_name,omitempty"`
	Level       float64    `gorm:"not null" json:"level"`
	Phone       string     `json:"phone,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	Status      string     `gorm:"type:VARCHAR(20);index;not null;default:'waiting'" json:"status"`
	GamesPlayed int        `gorm:"not null;default:0" json:"games_played"`
	JoinedAt    time.Time  `gorm:"index;not null" json:"joined_at"`
}

// DisplayName resolves the participant's visible name.
func (e *QueueEntry) DisplayName() string {
	if e.UserID != nil && e.User != nil {
		return e.User.Name
	}
	return e.GuestName
}

// QueueMatch is a doubles game on a court. At most one active match exists
// per (session, court) pair.
type QueueMatch struct {
	gorm.Model
	SessionID        uint        `gorm:"index;not null;uniqueIndex:idx_session_court_active,where:status = 'active'" json:"session_id"`
	CourtID          uint        `gorm:"not null;uniqueIndex:idx_session_court_active,where:status = 'active'" json:"court_id"`
	Court            court.Court `gorm:"foreignKey:CourtID" json:"-"`
	Status           string      `gorm:"type:VARCHAR(20);index;not null;default:'active'" json:"status"`
	StartTime        time.Time   `gorm:"not null" json:"start_time"`
	EndTime          *time.Time  `json:"end_time,omitempty"`
	ShuttlecocksUsed *int        `json:"shuttlecocks_used,omitempty"`
}

// QueueMatchPlayer links an entry into a match. Exactly four rows per match,
// two per team, and Team is always present.
type QueueMatchPlayer struct {
	gorm.Model
	MatchID      uint       `gorm:"index;not null" json:"match_id"`
	QueueEntryID uint       `gorm:"index;not null" json:"queue_entry_id"`
	Entry        QueueEntry `gorm:"foreignKey:QueueEntryID" json:"-"`
	Team         string     `gorm:"type:VARCHAR(1);not null" json:"team"`
}

// Participant is the tagged variant behind the user-or-guest split: either a
// registered user or a named guest, each with a skill level.
type Participant struct {
	UserID    *uint
	GuestName string
	Level     float64
}

func (p Participant) Validate() error {
	hasUser := p.UserID != nil
	hasGuest := p.GuestName != ""
	if hasUser == hasGuest {
		return errors.New("exactly one of user_id or guest_name must be set")
	}
	if p.Level < MinLevel || p.Level > MaxLevel {
		return errors.New("level must be between 1.0 and 7.0")
	}
	return nil
}

type SessionInput struct {
	Date      string `json:"date" binding:"required" example:"2026-09-05"`
	StartTime string `json:"start_time" binding:"required" example:"18:00"`
}

type EntryInput struct {
	UserID    *uint    `json:"user_id,omitempty" example:"7"`
	GuestName string   `json:"guest_name,omitempty" example:"Nok"`
	Level     *float64 `json:"level" binding:"required" example:"3.5"`
	Phone     string   `json:"phone,omitempty" example:"+66812345678"`
	Notes     string   `json:"notes,omitempty"`
}

// EntryPatch is the operator's generic update; nil fields are untouched.
type EntryPatch struct {
	Status *string  `json:"status,omitempty" binding:"omitempty,oneof=waiting matched playing done left"`
	Level  *float64 `json:"level,omitempty"`
	Phone  *string  `json:"phone,omitempty"`
	Notes  *string  `json:"notes,omitempty"`
}

// MatchInput accepts either explicit teams or the legacy flat ordered list
// of four entry IDs (first two become Team A).
type MatchInput struct {
	CourtID  uint   `json:"court_id" binding:"required" example:"1"`
	TeamA    []uint `json:"team_a,omitempty"`
	TeamB    []uint `json:"team_b,omitempty"`
	EntryIDs []uint `json:"entry_ids,omitempty"`
}

type CompleteMatchInput struct {
	ShuttlecocksUsed *int `json:"shuttlecocks_used,omitempty" example:"3"`
}

// SuggestedPlayer is one slot of a proposed doubles game.
type SuggestedPlayer struct {
	EntryID uint    `json:"entry_id"`
	Name    string  `json:"name"`
	Level   float64 `json:"level"`
	Team    string  `json:"team"`
}

// MatchSuggestion is the engine's proposal. Empty Suggested means no
// balanced four could be formed.
type MatchSuggestion struct {
	Suggested []SuggestedPlayer `json:"suggested"`
}

// MatchDetail is a match with its four players.
type MatchDetail struct {
	Match   QueueMatch         `json:"match"`
	Players []QueueMatchPlayer `json:"players"`
}

// SessionDetail aggregates a session with its entries and matches.
type SessionDetail struct {
	Session QueueSession `json:"session"`
	Entries []QueueEntry `json:"entries"`
	Matches []QueueMatch `json:"matches"`
}
