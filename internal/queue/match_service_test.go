package queue

import (
	"testing"

	"github.com/Waruntorn-K/shuttleq/internal/court"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCourtRepo holds courts only; availability calls are never reached from
// the match lifecycle.
type stubCourtRepo struct {
	courts map[uint]*court.Court
	nextID uint
}

func newStubCourtRepo() *stubCourtRepo {
	return &stubCourtRepo{courts: make(map[uint]*court.Court), nextID: 1}
}

func (s *stubCourtRepo) CreateCourt(c *court.Court) error {
	c.ID = s.nextID
	s.nextID++
	s.courts[c.ID] = c
	return nil
}

func (s *stubCourtRepo) GetCourtByID(id uint) (*court.Court, error) {
	c, ok := s.courts[id]
	if !ok {
		return nil, court.ErrCourtNotFound
	}
	return c, nil
}

func (s *stubCourtRepo) GetCourtsByOwnerID(ownerID uint) ([]court.Court, error) { return nil, nil }

func (s *stubCourtRepo) UpdateCourt(c *court.Court) error { return nil }

func (s *stubCourtRepo) CreateAvailability(a *court.CourtAvailability) error { return nil }
func (s *stubCourtRepo) GetAvailabilityByID(id uint) (*court.CourtAvailability, error) {
	return nil, court.ErrAvailabilityNotFound
}
func (s *stubCourtRepo) GetAvailabilityForDay(courtID uint, dayOfWeek int) (*court.CourtAvailability, error) {
	return nil, court.ErrAvailabilityNotFound
}
func (s *stubCourtRepo) ListAvailability(courtID uint) ([]court.CourtAvailability, error) {
	return nil, nil
}
func (s *stubCourtRepo) UpdateAvailability(a *court.CourtAvailability) error { return nil }

func (s *stubCourtRepo) DeleteAvailability(id uint) error { return nil }

type matchFixture struct {
	svc     *MatchService
	repo    *fakeQueueRepo
	courts  *stubCourtRepo
	session *QueueSession
	court   *court.Court
	entries []*QueueEntry
}

// newMatchFixture builds an active session owned by user 1, one active court
// of the same owner and n waiting same-level entries.
func newMatchFixture(t *testing.T, n int) *matchFixture {
	t.Helper()
	repo := newFakeQueueRepo()
	courts := newStubCourtRepo()
	queueSvc := NewQueueService(repo)

	session, err := queueSvc.CreateSession(1, SessionInput{Date: "2026-09-05", StartTime: "18:00"})
	require.NoError(t, err)
	session, err = queueSvc.StartSession(session.ID, 1)
	require.NoError(t, err)

	c := &court.Court{OwnerID: 1, Name: "Court 1", Active: true}
	require.NoError(t, courts.CreateCourt(c))

	names := []string{"Nok", "Beam", "Fah", "Krit", "Ploy", "Tan", "Mint", "Oat"}
	var entries []*QueueEntry
	for i := 0; i < n; i++ {
		e, err := queueSvc.AddEntry(session.ID, Participant{GuestName: names[i%len(names)], Level: 3.0}, "", "")
		require.NoError(t, err)
		entries = append(entries, e)
	}

	return &matchFixture{
		svc:     NewMatchService(repo, courts),
		repo:    repo,
		courts:  courts,
		session: session,
		court:   c,
		entries: entries,
	}
}

func (fx *matchFixture) entryIDs(indexes ...int) []uint {
	out := make([]uint, 0, len(indexes))
	for _, i := range indexes {
		out = append(out, fx.entries[i].ID)
	}
	return out
}

func TestSuggestMatch(t *testing.T) {
	fx := newMatchFixture(t, 5)

	suggestion, err := fx.svc.SuggestMatch(fx.session.ID, fx.court.ID)
	require.NoError(t, err)
	require.Len(t, suggestion.Suggested, 4)
	assert.Equal(t, TeamA, suggestion.Suggested[0].Team)
	assert.Equal(t, TeamA, suggestion.Suggested[1].Team)
	assert.Equal(t, TeamB, suggestion.Suggested[2].Team)
	assert.Equal(t, TeamB, suggestion.Suggested[3].Team)

	// Suggestion is advisory: nothing changed state.
	for _, e := range fx.entries {
		got, err := fx.repo.GetEntryByID(e.ID)
		require.NoError(t, err)
		assert.Equal(t, EntryWaiting, got.Status)
	}
}

func TestSuggestMatchTooFewWaiting(t *testing.T) {
	fx := newMatchFixture(t, 3)

	suggestion, err := fx.svc.SuggestMatch(fx.session.ID, fx.court.ID)
	require.NoError(t, err)
	assert.NotNil(t, suggestion.Suggested)
	assert.Empty(t, suggestion.Suggested)
}

func TestSuggestMatchCourtBusy(t *testing.T) {
	fx := newMatchFixture(t, 6)

	_, err := fx.svc.CreateMatch(fx.session.ID, fx.court.ID, fx.entryIDs(0, 1), fx.entryIDs(2, 3))
	require.NoError(t, err)

	_, err = fx.svc.SuggestMatch(fx.session.ID, fx.court.ID)
	assert.ErrorIs(t, err, ErrCourtUnavailable)
}

func TestCreateMatch(t *testing.T) {
	fx := newMatchFixture(t, 5)

	detail, err := fx.svc.CreateMatch(fx.session.ID, fx.court.ID, fx.entryIDs(0, 1), fx.entryIDs(2, 3))
	require.NoError(t, err)
	assert.Equal(t, MatchActive, detail.Match.Status)
	assert.False(t, detail.Match.StartTime.IsZero())
	require.Len(t, detail.Players, 4)

	teams := map[string]int{}
	for _, p := range detail.Players {
		teams[p.Team]++
	}
	assert.Equal(t, 2, teams[TeamA])
	assert.Equal(t, 2, teams[TeamB])

	for _, id := range fx.entryIDs(0, 1, 2, 3) {
		e, err := fx.repo.GetEntryByID(id)
		require.NoError(t, err)
		assert.Equal(t, EntryPlaying, e.Status)
	}
	// The fifth entry keeps waiting.
	e, err := fx.repo.GetEntryByID(fx.entries[4].ID)
	require.NoError(t, err)
	assert.Equal(t, EntryWaiting, e.Status)
}

func TestCreateMatchCourtUnavailable(t *testing.T) {
	fx := newMatchFixture(t, 8)

	_, err := fx.svc.CreateMatch(fx.session.ID, fx.court.ID, fx.entryIDs(0, 1), fx.entryIDs(2, 3))
	require.NoError(t, err)

	// Same court, same session: occupied.
	_, err = fx.svc.CreateMatch(fx.session.ID, fx.court.ID, fx.entryIDs(4, 5), fx.entryIDs(6, 7))
	assert.ErrorIs(t, err, ErrCourtUnavailable)

	// Unknown court.
	_, err = fx.svc.CreateMatch(fx.session.ID, 999, fx.entryIDs(4, 5), fx.entryIDs(6, 7))
	assert.ErrorIs(t, err, ErrCourtUnavailable)

	// Inactive court.
	other := &court.Court{OwnerID: 1, Name: "Court 2", Active: false}
	require.NoError(t, fx.courts.CreateCourt(other))
	_, err = fx.svc.CreateMatch(fx.session.ID, other.ID, fx.entryIDs(4, 5), fx.entryIDs(6, 7))
	assert.ErrorIs(t, err, ErrCourtUnavailable)

	// Court of a different owner.
	foreign := &court.Court{OwnerID: 2, Name: "Court 3", Active: true}
	require.NoError(t, fx.courts.CreateCourt(foreign))
	_, err = fx.svc.CreateMatch(fx.session.ID, foreign.ID, fx.entryIDs(4, 5), fx.entryIDs(6, 7))
	assert.ErrorIs(t, err, ErrCourtUnavailable)
}

func TestCreateMatchInvalidTeams(t *testing.T) {
	fx := newMatchFixture(t, 5)

	// Wrong team sizes.
	_, err := fx.svc.CreateMatch(fx.session.ID, fx.court.ID, fx.entryIDs(0), fx.entryIDs(2, 3))
	assert.ErrorIs(t, err, ErrInvalidTeam)
	_, err = fx.svc.CreateMatch(fx.session.ID, fx.court.ID, fx.entryIDs(0, 1, 2), fx.entryIDs(3, 4))
	assert.ErrorIs(t, err, ErrInvalidTeam)

	// Duplicate entry across teams.
	_, err = fx.svc.CreateMatch(fx.session.ID, fx.court.ID, fx.entryIDs(0, 1), fx.entryIDs(1, 2))
	assert.ErrorIs(t, err, ErrInvalidTeam)

	// Nonexistent entry.
	_, err = fx.svc.CreateMatch(fx.session.ID, fx.court.ID, fx.entryIDs(0, 1), []uint{fx.entries[2].ID, 999})
	assert.ErrorIs(t, err, ErrInvalidTeam)

	// Entry from another session.
	queueSvc := NewQueueService(fx.repo)
	otherSession, err := queueSvc.CreateSession(1, SessionInput{Date: "2026-09-05", StartTime: "18:00"})
	require.NoError(t, err)
	stranger, err := queueSvc.AddEntry(otherSession.ID, Participant{GuestName: "Gob", Level: 3.0}, "", "")
	require.NoError(t, err)
	_, err = fx.svc.CreateMatch(fx.session.ID, fx.court.ID, fx.entryIDs(0, 1), []uint{fx.entries[2].ID, stranger.ID})
	assert.ErrorIs(t, err, ErrInvalidTeam)
}

func TestCreateMatchEntriesNotWaiting(t *testing.T) {
	fx := newMatchFixture(t, 5)

	queueSvc := NewQueueService(fx.repo)
	_, err := queueSvc.UpdateEntry(fx.entries[3].ID, EntryPatch{Status: strPtr(EntryLeft)})
	require.NoError(t, err)

	_, err = fx.svc.CreateMatch(fx.session.ID, fx.court.ID, fx.entryIDs(0, 1), fx.entryIDs(2, 3))
	assert.ErrorIs(t, err, ErrEntriesNotWaiting)
}

func TestCreateMatchOrdered(t *testing.T) {
	fx := newMatchFixture(t, 4)

	detail, err := fx.svc.CreateMatchOrdered(fx.session.ID, fx.court.ID, fx.entryIDs(0, 1, 2, 3))
	require.NoError(t, err)
	require.Len(t, detail.Players, 4)
	assert.Equal(t, TeamA, detail.Players[0].Team)
	assert.Equal(t, TeamA, detail.Players[1].Team)
	assert.Equal(t, TeamB, detail.Players[2].Team)
	assert.Equal(t, TeamB, detail.Players[3].Team)

	_, err = fx.svc.CreateMatchOrdered(fx.session.ID, fx.court.ID, fx.entryIDs(0, 1, 2))
	assert.ErrorIs(t, err, ErrInvalidTeam)
}

func TestCompleteMatch(t *testing.T) {
	fx := newMatchFixture(t, 5)

	detail, err := fx.svc.CreateMatch(fx.session.ID, fx.court.ID, fx.entryIDs(0, 1), fx.entryIDs(2, 3))
	require.NoError(t, err)

	shuttles := 3
	completed, err := fx.svc.CompleteMatch(detail.Match.ID, &shuttles)
	require.NoError(t, err)
	assert.Equal(t, MatchCompleted, completed.Status)
	require.NotNil(t, completed.EndTime)
	require.NotNil(t, completed.ShuttlecocksUsed)
	assert.Equal(t, 3, *completed.ShuttlecocksUsed)

	// The four players return to waiting with one more game on the tally.
	for _, id := range fx.entryIDs(0, 1, 2, 3) {
		e, err := fx.repo.GetEntryByID(id)
		require.NoError(t, err)
		assert.Equal(t, EntryWaiting, e.Status)
		assert.Equal(t, 1, e.GamesPlayed)
	}

	// The court is free for the next match.
	_, err = fx.svc.CreateMatch(fx.session.ID, fx.court.ID, fx.entryIDs(0, 4), fx.entryIDs(1, 2))
	assert.NoError(t, err)
}

func TestCompleteMatchTwice(t *testing.T) {
	fx := newMatchFixture(t, 4)

	detail, err := fx.svc.CreateMatch(fx.session.ID, fx.court.ID, fx.entryIDs(0, 1), fx.entryIDs(2, 3))
	require.NoError(t, err)

	_, err = fx.svc.CompleteMatch(detail.Match.ID, nil)
	require.NoError(t, err)

	_, err = fx.svc.CompleteMatch(detail.Match.ID, nil)
	assert.ErrorIs(t, err, ErrMatchNotActive)

	// Tallies did not move on the failed second attempt.
	for _, id := range fx.entryIDs(0, 1, 2, 3) {
		e, err := fx.repo.GetEntryByID(id)
		require.NoError(t, err)
		assert.Equal(t, 1, e.GamesPlayed)
	}

	_, err = fx.svc.CompleteMatch(999, nil)
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestGetMatchDetail(t *testing.T) {
	fx := newMatchFixture(t, 4)

	created, err := fx.svc.CreateMatch(fx.session.ID, fx.court.ID, fx.entryIDs(0, 1), fx.entryIDs(2, 3))
	require.NoError(t, err)

	detail, err := fx.svc.GetMatchDetail(created.Match.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Match.ID, detail.Match.ID)
	assert.Len(t, detail.Players, 4)

	_, err = fx.svc.GetMatchDetail(999)
	assert.ErrorIs(t, err, ErrMatchNotFound)
}
