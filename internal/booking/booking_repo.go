package booking

import (
	"errors"
	"hash/fnv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingRepository defines database operations for court bookings. The
// conflict guard runs its check-and-insert inside WithTransaction with
// LockCourtDate held, so concurrent overlapping requests serialize.
type BookingRepository interface {
	CreateBooking(b *CourtBooking) error
	GetBookingByID(id uint) (*CourtBooking, error)
	GetConfirmedForDate(courtID uint, date string) ([]CourtBooking, error)
	GetConfirmedForDateLocked(courtID uint, date string) ([]CourtBooking, error)
	GetUserBookings(userID uint) ([]CourtBooking, error)
	UpdateBooking(b *CourtBooking) error

	// LockCourtDate serializes writers for one (court, date) pair for the
	// remainder of the current transaction.
	LockCourtDate(courtID uint, date string) error
	WithTransaction(txFunc func(BookingRepository) error) error
}

type gormBookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &gormBookingRepository{db: db}
}

func (r *gormBookingRepository) WithTransaction(txFunc func(BookingRepository) error) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	txRepo := &gormBookingRepository{db: tx}
	if err := txFunc(txRepo); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// LockCourtDate takes a transaction-scoped advisory lock keyed on the court
// and date, closing the race between the overlap check and the insert even
// when no candidate rows exist yet to lock.
func (r *gormBookingRepository) LockCourtDate(courtID uint, date string) error {
	h := fnv.New32a()
	h.Write([]byte(date))
	return r.db.Exec("SELECT pg_advisory_xact_lock(?, ?)", int32(courtID), int32(h.Sum32())).Error
}

func (r *gormBookingRepository) CreateBooking(b *CourtBooking) error {
	return r.db.Create(b).Error
}

func (r *gormBookingRepository) GetBookingByID(id uint) (*CourtBooking, error) {
	var b CourtBooking
	if err := r.db.First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *gormBookingRepository) GetConfirmedForDate(courtID uint, date string) ([]CourtBooking, error) {
	var rows []CourtBooking
	err := r.db.
		Where("court_id = ? AND date = ? AND status = ?", courtID, date, StatusConfirmed).
		Order("start_time asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetConfirmedForDateLocked additionally takes FOR UPDATE on the candidate
// rows; callers hold LockCourtDate, this guards against writers that do not.
func (r *gormBookingRepository) GetConfirmedForDateLocked(courtID uint, date string) ([]CourtBooking, error) {
	var rows []CourtBooking
	err := r.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("court_id = ? AND date = ? AND status = ?", courtID, date, StatusConfirmed).
		Order("start_time asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormBookingRepository) GetUserBookings(userID uint) ([]CourtBooking, error) {
	var rows []CourtBooking
	err := r.db.
		Where("user_id = ?", userID).
		Order("date desc, start_time desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormBookingRepository) UpdateBooking(b *CourtBooking) error {
	return r.db.Save(b).Error
}
