package queue

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QueueRepository defines database operations for sessions, entries and
// matches. Match creation and completion run their check-and-write sequences
// inside WithTransaction; the partial unique index on active matches
// backstops the in-transaction checks.
type QueueRepository interface {
	CreateSession(s *QueueSession) error
	GetSessionByID(id uint) (*QueueSession, error)
	UpdateSession(s *QueueSession) error
	ListSessionsByOwner(ownerID uint) ([]QueueSession, error)

	CreateEntry(e *QueueEntry) error
	GetEntryByID(id uint) (*QueueEntry, error)
	GetEntriesByIDsLocked(ids []uint) ([]QueueEntry, error)
	ListEntries(sessionID uint) ([]QueueEntry, error)
	ListWaitingEntries(sessionID uint) ([]QueueEntry, error)
	UpdateEntry(e *QueueEntry) error
	UpdateEntryStatus(ids []uint, status string) error
	IncrementGamesAndRelease(ids []uint) error
	DeleteEntry(id uint) error

	HasActiveMatch(sessionID, courtID uint) (bool, error)
	CreateMatch(m *QueueMatch) error
	GetMatchByID(id uint) (*QueueMatch, error)
	GetMatchByIDLocked(id uint) (*QueueMatch, error)
	UpdateMatch(m *QueueMatch) error
	ListMatches(sessionID uint) ([]QueueMatch, error)
	CreateMatchPlayers(players []QueueMatchPlayer) error
	GetMatchPlayers(matchID uint) ([]QueueMatchPlayer, error)

	// LockSessionCourt serializes match creation for one (session, court)
	// pair for the remainder of the current transaction.
	LockSessionCourt(sessionID, courtID uint) error
	WithTransaction(txFunc func(QueueRepository) error) error
}

type gormQueueRepository struct {
	db *gorm.DB
}

func NewQueueRepository(db *gorm.DB) QueueRepository {
	return &gormQueueRepository{db: db}
}

func (r *gormQueueRepository) WithTransaction(txFunc func(QueueRepository) error) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	txRepo := &gormQueueRepository{db: tx}
	if err := txFunc(txRepo); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

func (r *gormQueueRepository) LockSessionCourt(sessionID, courtID uint) error {
	return r.db.Exec("SELECT pg_advisory_xact_lock(?, ?)", int32(sessionID), int32(courtID)).Error
}

func (r *gormQueueRepository) CreateSession(s *QueueSession) error {
	return r.db.Create(s).Error
}

func (r *gormQueueRepository) GetSessionByID(id uint) (*QueueSession, error) {
	var s QueueSession
	if err := r.db.First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *gormQueueRepository) UpdateSession(s *QueueSession) error {
	return r.db.Save(s).Error
}

func (r *gormQueueRepository) ListSessionsByOwner(ownerID uint) ([]QueueSession, error) {
	var sessions []QueueSession
	if err := r.db.Where("owner_id = ?", ownerID).Order("date desc, id desc").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *gormQueueRepository) CreateEntry(e *QueueEntry) error {
	return r.db.Create(e).Error
}

func (r *gormQueueRepository) GetEntryByID(id uint) (*QueueEntry, error) {
	var e QueueEntry
	if err := r.db.Preload("User").First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &e, nil
}

// GetEntriesByIDsLocked takes FOR UPDATE on the entry rows so the waiting
// check and the transition to playing are atomic per entry.
func (r *gormQueueRepository) GetEntriesByIDsLocked(ids []uint) ([]QueueEntry, error) {
	var entries []QueueEntry
	err := r.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *gormQueueRepository) ListEntries(sessionID uint) ([]QueueEntry, error) {
	var entries []QueueEntry
	err := r.db.Preload("User").
		Where("session_id = ?", sessionID).
		Order("joined_at asc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ListWaitingEntries returns waiting entries in fairness order: fewest games
// played first, earliest join time as the tie-break.
func (r *gormQueueRepository) ListWaitingEntries(sessionID uint) ([]QueueEntry, error) {
	var entries []QueueEntry
	err := r.db.Preload("User").
		Where("session_id = ? AND status = ?", sessionID, EntryWaiting).
		Order("games_played asc, joined_at asc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *gormQueueRepository) UpdateEntry(e *QueueEntry) error {
	return r.db.Save(e).Error
}

func (r *gormQueueRepository) UpdateEntryStatus(ids []uint, status string) error {
	return r.db.Model(&QueueEntry{}).Where("id IN ?", ids).Update("status", status).Error
}

// IncrementGamesAndRelease bumps games_played and returns the entries to
// waiting in a single statement.
func (r *gormQueueRepository) IncrementGamesAndRelease(ids []uint) error {
	return r.db.Model(&QueueEntry{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"games_played": gorm.Expr("games_played + 1"),
			"status":       EntryWaiting,
		}).Error
}

func (r *gormQueueRepository) DeleteEntry(id uint) error {
	return r.db.Delete(&QueueEntry{}, id).Error
}

func (r *gormQueueRepository) HasActiveMatch(sessionID, courtID uint) (bool, error) {
	var count int64
	err := r.db.Model(&QueueMatch{}).
		Where("session_id = ? AND court_id = ? AND status = ?", sessionID, courtID, MatchActive).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gormQueueRepository) CreateMatch(m *QueueMatch) error {
	return r.db.Create(m).Error
}

func (r *gormQueueRepository) GetMatchByID(id uint) (*QueueMatch, error) {
	var m QueueMatch
	if err := r.db.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *gormQueueRepository) GetMatchByIDLocked(id uint) (*QueueMatch, error) {
	var m QueueMatch
	err := r.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *gormQueueRepository) UpdateMatch(m *QueueMatch) error {
	return r.db.Save(m).Error
}

func (r *gormQueueRepository) ListMatches(sessionID uint) ([]QueueMatch, error) {
	var matches []QueueMatch
	if err := r.db.Where("session_id = ?", sessionID).Order("start_time asc").Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *gormQueueRepository) CreateMatchPlayers(players []QueueMatchPlayer) error {
	return r.db.Create(&players).Error
}

func (r *gormQueueRepository) GetMatchPlayers(matchID uint) ([]QueueMatchPlayer, error) {
	var players []QueueMatchPlayer
	err := r.db.Preload("Entry").Preload("Entry.User").
		Where("match_id = ?", matchID).
		Order("team asc, id asc").
		Find(&players).Error
	if err != nil {
		return nil, err
	}
	return players, nil
}
