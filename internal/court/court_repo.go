package court

import (
	"errors"

	"gorm.io/gorm"
)

// CourtRepository defines database operations for courts and their weekly
// availability windows.
type CourtRepository interface {
	CreateCourt(c *Court) error
	GetCourtByID(id uint) (*Court, error)
	GetCourtsByOwnerID(ownerID uint) ([]Court, error)
	UpdateCourt(c *Court) error

	CreateAvailability(a *CourtAvailability) error
	GetAvailabilityByID(id uint) (*CourtAvailability, error)
	GetAvailabilityForDay(courtID uint, dayOfWeek int) (*CourtAvailability, error)
	ListAvailability(courtID uint) ([]CourtAvailability, error)
	UpdateAvailability(a *CourtAvailability) error
	DeleteAvailability(id uint) error
}

type courtRepository struct {
	db *gorm.DB
}

func NewCourtRepository(db *gorm.DB) CourtRepository {
	return &courtRepository{db: db}
}

func (r *courtRepository) CreateCourt(c *Court) error {
	return r.db.Create(c).Error
}

func (r *courtRepository) GetCourtByID(id uint) (*Court, error) {
	var c Court
	if err := r.db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *courtRepository) GetCourtsByOwnerID(ownerID uint) ([]Court, error) {
	var courts []Court
	if err := r.db.Where("owner_id = ?", ownerID).Order("id asc").Find(&courts).Error; err != nil {
		return nil, err
	}
	return courts, nil
}

func (r *courtRepository) UpdateCourt(c *Court) error {
	return r.db.Save(c).Error
}

func (r *courtRepository) CreateAvailability(a *CourtAvailability) error {
	return r.db.Create(a).Error
}

func (r *courtRepository) GetAvailabilityByID(id uint) (*CourtAvailability, error) {
	var a CourtAvailability
	if err := r.db.First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAvailabilityNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *courtRepository) GetAvailabilityForDay(courtID uint, dayOfWeek int) (*CourtAvailability, error) {
	var a CourtAvailability
	err := r.db.Where("court_id = ? AND day_of_week = ?", courtID, dayOfWeek).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAvailabilityNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *courtRepository) ListAvailability(courtID uint) ([]CourtAvailability, error) {
	var rows []CourtAvailability
	if err := r.db.Where("court_id = ?", courtID).Order("day_of_week asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *courtRepository) UpdateAvailability(a *CourtAvailability) error {
	return r.db.Save(a).Error
}

func (r *courtRepository) DeleteAvailability(id uint) error {
	return r.db.Delete(&CourtAvailability{}, id).Error
}
