package queue

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrEntryNotFound     = errors.New("queue entry not found")
	ErrSessionNotOwned   = errors.New("session belongs to another owner")
	ErrSessionTransition = errors.New("invalid session status transition")
)

var entryStatuses = map[string]bool{
	EntryWaiting: true,
	EntryMatched: true,
	EntryPlaying: true,
	EntryDone:    true,
	EntryLeft:    true,
}

// QueueService manages sessions and the entry state machine.
type QueueService struct {
	repo QueueRepository
}

func NewQueueService(repo QueueRepository) *QueueService {
	return &QueueService{repo: repo}
}

func (s *QueueService) CreateSession(ownerID uint, in SessionInput) (*QueueSession, error) {
	session := &QueueSession{
		OwnerID:   ownerID,
		Date:      in.Date,
		StartTime: in.StartTime,
		Status:    SessionUpcoming,
	}
	if err := s.repo.CreateSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *QueueService) GetSession(sessionID uint) (*QueueSession, error) {
	return s.repo.GetSessionByID(sessionID)
}

func (s *QueueService) ListOwnerSessions(ownerID uint) ([]QueueSession, error) {
	return s.repo.ListSessionsByOwner(ownerID)
}

// StartSession moves upcoming -> active. Transitions are monotonic.
func (s *QueueService) StartSession(sessionID, operatorID uint) (*QueueSession, error) {
	session, err := s.ownedSession(sessionID, operatorID)
	if err != nil {
		return nil, err
	}
	if session.Status != SessionUpcoming {
		return nil, ErrSessionTransition
	}
	session.Status = SessionActive
	if err := s.repo.UpdateSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// EndSession moves active -> ended and stamps the end time.
func (s *QueueService) EndSession(sessionID, operatorID uint) (*QueueSession, error) {
	session, err := s.ownedSession(sessionID, operatorID)
	if err != nil {
		return nil, err
	}
	if session.Status != SessionActive {
		return nil, ErrSessionTransition
	}
	session.Status = SessionEnded
	end := time.Now().Format("15:04")
	session.EndTime = &end
	if err := s.repo.UpdateSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// AddEntry puts a participant into the queue in waiting state. JoinedAt is
// the FIFO fairness key.
func (s *QueueService) AddEntry(sessionID uint, p Participant, phone, notes string) (*QueueEntry, error) {
	if _, err := s.repo.GetSessionByID(sessionID); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	entry := &QueueEntry{
		SessionID: sessionID,
		UserID:    p.UserID,
		GuestName: p.GuestName,
		Level:     p.Level,
		Phone:     phone,
		Notes:     notes,
		Status:    EntryWaiting,
		JoinedAt:  time.Now(),
	}
	if err := s.repo.CreateEntry(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// UpdateEntry applies an operator patch. The surrounding system grants this
// capability; only value validity is checked here, match-driven transitions
// are owned by the match lifecycle.
func (s *QueueService) UpdateEntry(entryID uint, patch EntryPatch) (*QueueEntry, error) {
	entry, err := s.repo.GetEntryByID(entryID)
	if err != nil {
		return nil, err
	}

	if patch.Status != nil {
		if !entryStatuses[*patch.Status] {
			return nil, fmt.Errorf("unknown entry status %q", *patch.Status)
		}
		entry.Status = *patch.Status
	}
	if patch.Level != nil {
		if *patch.Level < MinLevel || *patch.Level > MaxLevel {
			return nil, errors.New("level must be between 1.0 and 7.0")
		}
		entry.Level = *patch.Level
	}
	if patch.Phone != nil {
		entry.Phone = *patch.Phone
	}
	if patch.Notes != nil {
		entry.Notes = *patch.Notes
	}

	if err := s.repo.UpdateEntry(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// RemoveEntry hard-deletes an entry regardless of its status.
func (s *QueueService) RemoveEntry(entryID uint) error {
	if _, err := s.repo.GetEntryByID(entryID); err != nil {
		return err
	}
	return s.repo.DeleteEntry(entryID)
}

// GetSessionDetail returns the session with its entries and matches.
func (s *QueueService) GetSessionDetail(sessionID uint) (*SessionDetail, error) {
	session, err := s.repo.GetSessionByID(sessionID)
	if err != nil {
		return nil, err
	}
	entries, err := s.repo.ListEntries(sessionID)
	if err != nil {
		return nil, err
	}
	matches, err := s.repo.ListMatches(sessionID)
	if err != nil {
		return nil, err
	}
	return &SessionDetail{Session: *session, Entries: entries, Matches: matches}, nil
}

func (s *QueueService) ownedSession(sessionID, operatorID uint) (*QueueSession, error) {
	session, err := s.repo.GetSessionByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session.OwnerID != operatorID {
		return nil, ErrSessionNotOwned
	}
	return session, nil
}
