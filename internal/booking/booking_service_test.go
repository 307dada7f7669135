package booking

import (
	"testing"

	"github.com/Waruntorn-K/shuttleq/internal/court"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCourtRepo is an in-memory court.CourtRepository.
type fakeCourtRepo struct {
	courts map[uint]*court.Court
	avail  map[uint][]*court.CourtAvailability // by court ID
	nextID uint
}

func newFakeCourtRepo() *fakeCourtRepo {
	return &fakeCourtRepo{
		courts: make(map[uint]*court.Court),
		avail:  make(map[uint][]*court.CourtAvailability),
		nextID: 1,
	}
}

func (f *fakeCourtRepo) CreateCourt(c *court.Court) error {
	c.ID = f.nextID
	f.nextID++
	f.courts[c.ID] = c
	return nil
}

func (f *fakeCourtRepo) GetCourtByID(id uint) (*court.Court, error) {
	c, ok := f.courts[id]
	if !ok {
		return nil, court.ErrCourtNotFound
	}
	return c, nil
}

func (f *fakeCourtRepo) GetCourtsByOwnerID(ownerID uint) ([]court.Court, error) {
	var out []court.Court
	for _, c := range f.courts {
		if c.OwnerID == ownerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCourtRepo) UpdateCourt(c *court.Court) error {
	f.courts[c.ID] = c
	return nil
}

func (f *fakeCourtRepo) CreateAvailability(a *court.CourtAvailability) error {
	a.ID = f.nextID
	f.nextID++
	f.avail[a.CourtID] = append(f.avail[a.CourtID], a)
	return nil
}

func (f *fakeCourtRepo) GetAvailabilityByID(id uint) (*court.CourtAvailability, error) {
	for _, rows := range f.avail {
		for _, a := range rows {
			if a.ID == id {
				return a, nil
			}
		}
	}
	return nil, court.ErrAvailabilityNotFound
}

func (f *fakeCourtRepo) GetAvailabilityForDay(courtID uint, dayOfWeek int) (*court.CourtAvailability, error) {
	for _, a := range f.avail[courtID] {
		if a.DayOfWeek == dayOfWeek {
			return a, nil
		}
	}
	return nil, court.ErrAvailabilityNotFound
}

func (f *fakeCourtRepo) ListAvailability(courtID uint) ([]court.CourtAvailability, error) {
	var out []court.CourtAvailability
	for _, a := range f.avail[courtID] {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeCourtRepo) UpdateAvailability(a *court.CourtAvailability) error {
	for i, row := range f.avail[a.CourtID] {
		if row.ID == a.ID {
			f.avail[a.CourtID][i] = a
		}
	}
	return nil
}

func (f *fakeCourtRepo) DeleteAvailability(id uint) error {
	for courtID, rows := range f.avail {
		for i, a := range rows {
			if a.ID == id {
				f.avail[courtID] = append(rows[:i], rows[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

// fakeBookingRepo is an in-memory BookingRepository.
type fakeBookingRepo struct {
	bookings map[uint]*CourtBooking
	nextID   uint
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uint]*CourtBooking), nextID: 1}
}

func (f *fakeBookingRepo) CreateBooking(b *CourtBooking) error {
	b.ID = f.nextID
	f.nextID++
	stored := *b
	f.bookings[b.ID] = &stored
	return nil
}

func (f *fakeBookingRepo) GetBookingByID(id uint) (*CourtBooking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetConfirmedForDate(courtID uint, date string) ([]CourtBooking, error) {
	var out []CourtBooking
	for _, b := range f.bookings {
		if b.CourtID == courtID && b.Date == date && b.Status == StatusConfirmed {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) GetConfirmedForDateLocked(courtID uint, date string) ([]CourtBooking, error) {
	return f.GetConfirmedForDate(courtID, date)
}

func (f *fakeBookingRepo) GetUserBookings(userID uint) ([]CourtBooking, error) {
	var out []CourtBooking
	for _, b := range f.bookings {
		if b.UserID != nil && *b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateBooking(b *CourtBooking) error {
	stored := *b
	f.bookings[b.ID] = &stored
	return nil
}

func (f *fakeBookingRepo) LockCourtDate(courtID uint, date string) error { return nil }

func (f *fakeBookingRepo) WithTransaction(txFunc func(BookingRepository) error) error {
	return txFunc(f)
}

const saturday = "2026-09-05" // DayOfWeek == 6

func newBookingFixture(t *testing.T) (*BookingService, *fakeBookingRepo, *fakeCourtRepo) {
	t.Helper()
	courts := newFakeCourtRepo()
	repo := newFakeBookingRepo()

	c := &court.Court{OwnerID: 1, Name: "Court 1", Active: true}
	require.NoError(t, courts.CreateCourt(c))
	require.NoError(t, courts.CreateAvailability(&court.CourtAvailability{
		CourtID: c.ID, DayOfWeek: 6, OpenTime: "09:00", CloseTime: "21:00",
	}))

	return NewBookingService(repo, courts), repo, courts
}

func uintPtr(v uint) *uint { return &v }

func TestCreateBookingSuccess(t *testing.T) {
	svc, _, _ := newBookingFixture(t)

	b, err := svc.CreateBooking(1, saturday, "10:00", "11:00", uintPtr(7))
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, b.Status)
	assert.Equal(t, PaymentPending, b.PaymentStatus)
	assert.NotEmpty(t, b.Reference)
	assert.Equal(t, uint(7), *b.UserID)
}

func TestCreateBookingClosed(t *testing.T) {
	svc, _, courts := newBookingFixture(t)

	// No availability row for Sunday.
	_, err := svc.CreateBooking(1, "2026-09-06", "10:00", "11:00", uintPtr(7))
	assert.ErrorIs(t, err, ErrClosed)

	// Before opening.
	_, err = svc.CreateBooking(1, saturday, "08:00", "09:30", uintPtr(7))
	assert.ErrorIs(t, err, ErrClosed)

	// Past closing.
	_, err = svc.CreateBooking(1, saturday, "20:30", "21:30", uintPtr(7))
	assert.ErrorIs(t, err, ErrClosed)

	// Inactive court.
	c, err := courts.GetCourtByID(1)
	require.NoError(t, err)
	c.Active = false
	require.NoError(t, courts.UpdateCourt(c))
	_, err = svc.CreateBooking(1, saturday, "10:00", "11:00", uintPtr(7))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestCreateBookingSlotTaken(t *testing.T) {
	svc, _, _ := newBookingFixture(t)

	_, err := svc.CreateBooking(1, saturday, "10:00", "11:00", uintPtr(7))
	require.NoError(t, err)

	// Partial overlap loses.
	_, err = svc.CreateBooking(1, saturday, "10:30", "11:30", uintPtr(8))
	assert.ErrorIs(t, err, ErrSlotTaken)

	// Exact duplicate loses.
	_, err = svc.CreateBooking(1, saturday, "10:00", "11:00", uintPtr(8))
	assert.ErrorIs(t, err, ErrSlotTaken)

	// Spanning request loses.
	_, err = svc.CreateBooking(1, saturday, "09:00", "12:00", uintPtr(8))
	assert.ErrorIs(t, err, ErrSlotTaken)

	// Other dates are unaffected.
	_, err = svc.CreateBooking(1, "2026-09-12", "10:00", "11:00", uintPtr(8))
	assert.NoError(t, err)

	// Adjacent range is fine.
	_, err = svc.CreateBooking(1, saturday, "11:00", "12:00", uintPtr(8))
	assert.NoError(t, err)
}

func TestCreateBookingRejectsInvertedRange(t *testing.T) {
	svc, _, _ := newBookingFixture(t)

	_, err := svc.CreateBooking(1, saturday, "11:00", "10:00", uintPtr(7))
	assert.Error(t, err)
	_, err = svc.CreateBooking(1, saturday, "11:00", "11:00", uintPtr(7))
	assert.Error(t, err)
}

func TestCancelBooking(t *testing.T) {
	svc, _, _ := newBookingFixture(t)

	b, err := svc.CreateBooking(1, saturday, "10:00", "11:00", uintPtr(7))
	require.NoError(t, err)

	// Another user cannot cancel.
	_, err = svc.CancelBooking(b.ID, 99)
	assert.ErrorIs(t, err, ErrForbidden)

	cancelled, err := svc.CancelBooking(b.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)

	// Cancelling again stays cancelled; no resurrection path exists.
	again, err := svc.CancelBooking(b.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, again.Status)

	// The slot is bookable again.
	_, err = svc.CreateBooking(1, saturday, "10:00", "11:00", uintPtr(8))
	assert.NoError(t, err)

	_, err = svc.CancelBooking(999, 7)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetAvailableSlots(t *testing.T) {
	svc, _, _ := newBookingFixture(t)

	_, err := svc.CreateBooking(1, saturday, "10:00", "11:00", uintPtr(7))
	require.NoError(t, err)

	slots, err := svc.GetAvailableSlots(1, saturday)
	require.NoError(t, err)
	require.Len(t, slots, 12) // 09:00-21:00

	for _, s := range slots {
		if s.StartTime == "10:00" {
			assert.False(t, s.Available)
		} else {
			assert.True(t, s.Available, s.StartTime)
		}
	}

	// Day without a window shows no bookable time.
	slots, err = svc.GetAvailableSlots(1, "2026-09-06")
	require.NoError(t, err)
	assert.Empty(t, slots)

	_, err = svc.GetAvailableSlots(42, saturday)
	assert.ErrorIs(t, err, court.ErrCourtNotFound)
}
