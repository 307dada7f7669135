package queue

import (
	"errors"
	"time"

	"github.com/Waruntorn-K/shuttleq/internal/court"
)

var (
	ErrCourtUnavailable  = errors.New("court already has an active match in this session")
	ErrInvalidTeam       = errors.New("match requires four unique entries from this session, two per team")
	ErrEntriesNotWaiting = errors.New("one or more entries are not waiting")
	ErrMatchNotFound     = errors.New("match not found")
	ErrMatchNotActive    = errors.New("match is not active")
)

// MatchService runs the match lifecycle: suggestion, creation and
// completion. Suggestion reads are advisory snapshots; creation re-validates
// everything inside its transaction.
type MatchService struct {
	repo   QueueRepository
	courts court.CourtRepository
}

func NewMatchService(repo QueueRepository, courts court.CourtRepository) *MatchService {
	return &MatchService{repo: repo, courts: courts}
}

// SuggestMatch proposes four waiting entries for the given court. Fewer than
// four waiting entries yields an empty suggestion, never an error.
func (s *MatchService) SuggestMatch(sessionID, courtID uint) (*MatchSuggestion, error) {
	session, err := s.repo.GetSessionByID(sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.checkCourtFree(session, courtID); err != nil {
		return nil, err
	}

	waiting, err := s.repo.ListWaitingEntries(sessionID)
	if err != nil {
		return nil, err
	}

	group := SuggestFour(waiting)
	suggestion := &MatchSuggestion{Suggested: []SuggestedPlayer{}}
	for i, e := range group {
		team := TeamA
		if i >= 2 {
			team = TeamB
		}
		suggestion.Suggested = append(suggestion.Suggested, SuggestedPlayer{
			EntryID: e.ID,
			Name:    e.DisplayName(),
			Level:   e.Level,
			Team:    team,
		})
	}
	return suggestion, nil
}

// CreateMatch assigns two explicit teams to a court: the match row, the four
// player rows and the entry transitions commit or roll back together.
func (s *MatchService) CreateMatch(sessionID, courtID uint, teamA, teamB []uint) (*MatchDetail, error) {
	if len(teamA) != 2 || len(teamB) != 2 {
		return nil, ErrInvalidTeam
	}
	entryIDs := append(append([]uint{}, teamA...), teamB...)
	if !uniqueIDs(entryIDs) {
		return nil, ErrInvalidTeam
	}

	session, err := s.repo.GetSessionByID(sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.checkCourtFree(session, courtID); err != nil {
		return nil, err
	}

	match := &QueueMatch{
		SessionID: sessionID,
		CourtID:   courtID,
		Status:    MatchActive,
		StartTime: time.Now(),
	}
	var players []QueueMatchPlayer

	err = s.repo.WithTransaction(func(tx QueueRepository) error {
		if err := tx.LockSessionCourt(sessionID, courtID); err != nil {
			return err
		}
		// Re-check under the lock: a concurrent creator may have won.
		active, err := tx.HasActiveMatch(sessionID, courtID)
		if err != nil {
			return err
		}
		if active {
			return ErrCourtUnavailable
		}

		entries, err := tx.GetEntriesByIDsLocked(entryIDs)
		if err != nil {
			return err
		}
		if len(entries) != 4 {
			return ErrInvalidTeam
		}
		for _, e := range entries {
			if e.SessionID != sessionID {
				return ErrInvalidTeam
			}
			if e.Status != EntryWaiting {
				return ErrEntriesNotWaiting
			}
		}

		if err := tx.CreateMatch(match); err != nil {
			return err
		}
		players = make([]QueueMatchPlayer, 0, 4)
		for _, id := range teamA {
			players = append(players, QueueMatchPlayer{MatchID: match.ID, QueueEntryID: id, Team: TeamA})
		}
		for _, id := range teamB {
			players = append(players, QueueMatchPlayer{MatchID: match.ID, QueueEntryID: id, Team: TeamB})
		}
		if err := tx.CreateMatchPlayers(players); err != nil {
			return err
		}
		return tx.UpdateEntryStatus(entryIDs, EntryPlaying)
	})
	if err != nil {
		return nil, err
	}
	return &MatchDetail{Match: *match, Players: players}, nil
}

// CreateMatchOrdered is the legacy creation path: a flat ordered list of
// four entry IDs, first two Team A, last two Team B. Validation and
// atomicity match CreateMatch.
func (s *MatchService) CreateMatchOrdered(sessionID, courtID uint, entryIDs []uint) (*MatchDetail, error) {
	if len(entryIDs) != 4 {
		return nil, ErrInvalidTeam
	}
	return s.CreateMatch(sessionID, courtID, entryIDs[:2], entryIDs[2:])
}

// CompleteMatch closes an active match: each of the four entries gets one
// more game played and returns to waiting, the match records its end time
// and shuttlecock usage. Completing a completed match fails without any
// side effects.
func (s *MatchService) CompleteMatch(matchID uint, shuttlecocksUsed *int) (*QueueMatch, error) {
	var completed *QueueMatch
	err := s.repo.WithTransaction(func(tx QueueRepository) error {
		match, err := tx.GetMatchByIDLocked(matchID)
		if err != nil {
			return err
		}
		if match.Status != MatchActive {
			return ErrMatchNotActive
		}

		players, err := tx.GetMatchPlayers(matchID)
		if err != nil {
			return err
		}
		entryIDs := make([]uint, 0, len(players))
		for _, p := range players {
			entryIDs = append(entryIDs, p.QueueEntryID)
		}
		if err := tx.IncrementGamesAndRelease(entryIDs); err != nil {
			return err
		}

		now := time.Now()
		match.Status = MatchCompleted
		match.EndTime = &now
		match.ShuttlecocksUsed = shuttlecocksUsed
		if err := tx.UpdateMatch(match); err != nil {
			return err
		}
		completed = match
		return nil
	})
	if err != nil {
		return nil, err
	}
	return completed, nil
}

// GetMatchDetail returns a match with its players.
func (s *MatchService) GetMatchDetail(matchID uint) (*MatchDetail, error) {
	match, err := s.repo.GetMatchByID(matchID)
	if err != nil {
		return nil, err
	}
	players, err := s.repo.GetMatchPlayers(matchID)
	if err != nil {
		return nil, err
	}
	return &MatchDetail{Match: *match, Players: players}, nil
}

// checkCourtFree validates that the court exists, is active, belongs to the
// session's owner and has no active match in this session.
func (s *MatchService) checkCourtFree(session *QueueSession, courtID uint) error {
	c, err := s.courts.GetCourtByID(courtID)
	if err != nil {
		if errors.Is(err, court.ErrCourtNotFound) {
			return ErrCourtUnavailable
		}
		return err
	}
	if c.OwnerID != session.OwnerID || !c.Active {
		return ErrCourtUnavailable
	}

	active, err := s.repo.HasActiveMatch(session.ID, courtID)
	if err != nil {
		return err
	}
	if active {
		return ErrCourtUnavailable
	}
	return nil
}

func uniqueIDs(ids []uint) bool {
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return false
		}
		seen[id] = true
	}
	return true
}
