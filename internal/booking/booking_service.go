package booking

import (
	"errors"
	"fmt"

	"github.com/Waruntorn-K/shuttleq/internal/court"
	"github.com/Waruntorn-K/shuttleq/pkg/utils"
	"github.com/google/uuid"
)

var (
	ErrClosed          = errors.New("court is closed for the requested time")
	ErrSlotTaken       = errors.New("requested time overlaps an existing booking")
	ErrBookingNotFound = errors.New("booking not found")
	ErrForbidden       = errors.New("booking belongs to another user")
)

// BookingService is the conflict guard: a booking is created only when the
// requested range lies inside the day's availability window and overlaps no
// confirmed booking for that court and date.
type BookingService struct {
	repo   BookingRepository
	courts court.CourtRepository
}

func NewBookingService(repo BookingRepository, courts court.CourtRepository) *BookingService {
	return &BookingService{repo: repo, courts: courts}
}

// GetAvailableSlots returns the day's one-hour slots with availability flags.
// A court with no window for that weekday shows no bookable time.
func (s *BookingService) GetAvailableSlots(courtID uint, date string) ([]Slot, error) {
	if _, err := s.courts.GetCourtByID(courtID); err != nil {
		return nil, err
	}
	dow, err := utils.DayOfWeek(date)
	if err != nil {
		return nil, err
	}

	avail, err := s.courts.GetAvailabilityForDay(courtID, dow)
	if err != nil {
		if errors.Is(err, court.ErrAvailabilityNotFound) {
			return []Slot{}, nil
		}
		return nil, err
	}

	bookings, err := s.repo.GetConfirmedForDate(courtID, date)
	if err != nil {
		return nil, err
	}
	return GenerateSlots(avail, bookings)
}

// CreateBooking validates the request against the availability window and
// existing confirmed bookings, then inserts. The overlap check and insert run
// in one transaction under a (court, date) lock so two concurrent overlapping
// requests cannot both commit.
func (s *BookingService) CreateBooking(courtID uint, date, start, end string, userID *uint) (*CourtBooking, error) {
	startMin, err := utils.ParseClock(start)
	if err != nil {
		return nil, err
	}
	endMin, err := utils.ParseClock(end)
	if err != nil {
		return nil, err
	}
	if endMin <= startMin {
		return nil, fmt.Errorf("end time %s must be after start time %s", end, start)
	}

	c, err := s.courts.GetCourtByID(courtID)
	if err != nil {
		return nil, err
	}
	if !c.Active {
		return nil, ErrClosed
	}

	dow, err := utils.DayOfWeek(date)
	if err != nil {
		return nil, err
	}
	avail, err := s.courts.GetAvailabilityForDay(courtID, dow)
	if err != nil {
		if errors.Is(err, court.ErrAvailabilityNotFound) {
			return nil, ErrClosed
		}
		return nil, err
	}

	open, err := utils.ParseClock(avail.OpenTime)
	if err != nil {
		return nil, err
	}
	closeMin, err := utils.ParseClock(avail.CloseTime)
	if err != nil {
		return nil, err
	}
	if startMin < open || endMin > closeMin {
		return nil, ErrClosed
	}

	b := &CourtBooking{
		CourtID:       courtID,
		UserID:        userID,
		Reference:     uuid.NewString(),
		Date:          date,
		StartTime:     start,
		EndTime:       end,
		Status:        StatusConfirmed,
		PaymentStatus: PaymentPending,
	}

	err = s.repo.WithTransaction(func(tx BookingRepository) error {
		if err := tx.LockCourtDate(courtID, date); err != nil {
			return err
		}
		existing, err := tx.GetConfirmedForDateLocked(courtID, date)
		if err != nil {
			return err
		}
		for _, e := range existing {
			es, err := utils.ParseClock(e.StartTime)
			if err != nil {
				return err
			}
			ee, err := utils.ParseClock(e.EndTime)
			if err != nil {
				return err
			}
			if overlaps(startMin, endMin, es, ee) {
				return ErrSlotTaken
			}
		}
		return tx.CreateBooking(b)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// CancelBooking flips status to cancelled. A cancelled booking is never
// resurrected; callers wanting idempotency read the current status first.
func (s *BookingService) CancelBooking(bookingID, requesterID uint) (*CourtBooking, error) {
	b, err := s.repo.GetBookingByID(bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID == nil || *b.UserID != requesterID {
		return nil, ErrForbidden
	}

	b.Status = StatusCancelled
	if err := s.repo.UpdateBooking(b); err != nil {
		return nil, err
	}
	return b, nil
}

// ListUserBookings returns the caller's bookings, newest first.
func (s *BookingService) ListUserBookings(userID uint) ([]CourtBooking, error) {
	return s.repo.GetUserBookings(userID)
}
