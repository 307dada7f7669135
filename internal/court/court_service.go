package court

import (
	"errors"

	"github.com/Waruntorn-K/shuttleq/pkg/utils"
)

var (
	ErrCourtNotFound        = errors.New("court not found")
	ErrAvailabilityNotFound = errors.New("availability not found")
	ErrDuplicateDay         = errors.New("availability already exists for this day")
	ErrMismatch             = errors.New("availability does not belong to this court")
	ErrInvalidWindow        = errors.New("close time must be after open time")
	ErrForbidden            = errors.New("court does not belong to this owner")
)

// CourtService owns availability-template rules: one window per day and
// close strictly after open.
type CourtService struct {
	repo CourtRepository
}

func NewCourtService(repo CourtRepository) *CourtService {
	return &CourtService{repo: repo}
}

func (s *CourtService) CreateCourt(ownerID uint, in CourtInput) (*Court, error) {
	c := &Court{
		OwnerID:           ownerID,
		Name:              in.Name,
		Active:            true,
		HourlyRate:        in.HourlyRate,
		ReservationFeePct: in.ReservationFeePct,
	}
	if err := s.repo.CreateCourt(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CourtService) ListOwnerCourts(ownerID uint) ([]Court, error) {
	return s.repo.GetCourtsByOwnerID(ownerID)
}

// SetActive toggles a court; courts are never hard-deleted.
func (s *CourtService) SetActive(ownerID, courtID uint, active bool) (*Court, error) {
	c, err := s.repo.GetCourtByID(courtID)
	if err != nil {
		return nil, err
	}
	if c.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	c.Active = active
	if err := s.repo.UpdateCourt(c); err != nil {
		return nil, err
	}
	return c, nil
}

func validateWindow(open, close string) error {
	o, err := utils.ParseClock(open)
	if err != nil {
		return err
	}
	c, err := utils.ParseClock(close)
	if err != nil {
		return err
	}
	if c <= o {
		return ErrInvalidWindow
	}
	return nil
}

func (s *CourtService) CreateAvailability(courtID uint, in AvailabilityInput) (*CourtAvailability, error) {
	if _, err := s.repo.GetCourtByID(courtID); err != nil {
		return nil, err
	}
	if err := validateWindow(in.OpenTime, in.CloseTime); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetAvailabilityForDay(courtID, *in.DayOfWeek); err == nil {
		return nil, ErrDuplicateDay
	} else if !errors.Is(err, ErrAvailabilityNotFound) {
		return nil, err
	}

	a := &CourtAvailability{
		CourtID:   courtID,
		DayOfWeek: *in.DayOfWeek,
		OpenTime:  in.OpenTime,
		CloseTime: in.CloseTime,
	}
	// The unique (court_id, day_of_week) index backstops the check above
	// against concurrent creates.
	if err := s.repo.CreateAvailability(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *CourtService) UpdateAvailability(availabilityID, courtID uint, in AvailabilityInput) (*CourtAvailability, error) {
	a, err := s.repo.GetAvailabilityByID(availabilityID)
	if err != nil {
		return nil, err
	}
	if a.CourtID != courtID {
		return nil, ErrMismatch
	}
	if err := validateWindow(in.OpenTime, in.CloseTime); err != nil {
		return nil, err
	}
	if *in.DayOfWeek != a.DayOfWeek {
		if _, err := s.repo.GetAvailabilityForDay(courtID, *in.DayOfWeek); err == nil {
			return nil, ErrDuplicateDay
		} else if !errors.Is(err, ErrAvailabilityNotFound) {
			return nil, err
		}
	}

	a.DayOfWeek = *in.DayOfWeek
	a.OpenTime = in.OpenTime
	a.CloseTime = in.CloseTime
	if err := s.repo.UpdateAvailability(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *CourtService) DeleteAvailability(availabilityID, courtID uint) error {
	a, err := s.repo.GetAvailabilityByID(availabilityID)
	if err != nil {
		return err
	}
	if a.CourtID != courtID {
		return ErrMismatch
	}
	return s.repo.DeleteAvailability(availabilityID)
}

func (s *CourtService) ListAvailability(courtID uint) ([]CourtAvailability, error) {
	if _, err := s.repo.GetCourtByID(courtID); err != nil {
		return nil, err
	}
	return s.repo.ListAvailability(courtID)
}
