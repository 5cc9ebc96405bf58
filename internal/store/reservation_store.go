package store

import (
	"errors"
	"strings"

	"github.com/Nethupa05/Hardware-Backend/internal/model"
	"gorm.io/gorm"
)

// ReservationStore persists reservations. Ownership is creator-id only;
// reservations are always submitted by an authenticated user.
type ReservationStore struct {
	db *gorm.DB
}

// NewReservationStore creates a reservation store
func NewReservationStore(db *gorm.DB) *ReservationStore {
	return &ReservationStore{db: db}
}

func validateReservation(r *model.Reservation) error {
	fields := map[string]string{}
	if strings.TrimSpace(r.Name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(r.Email) == "" {
		fields["email"] = "email is required"
	}
	if strings.TrimSpace(r.Phone) == "" {
		fields["phone"] = "phone is required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Create inserts a reservation for the creating user
func (s *ReservationStore) Create(r *model.Reservation) error {
	if r.CreatedByID == 0 {
		return NewValidationError("created_by", "reservation creator is required")
	}
	if err := validateReservation(r); err != nil {
		return err
	}
	r.Status = model.ReservationStatusPending
	return s.db.Create(r).Error
}

// Get retrieves a reservation by id
func (s *ReservationStore) Get(id uint) (*model.Reservation, error) {
	var reservation model.Reservation
	if err := s.db.First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

// List returns all reservations with pagination
func (s *ReservationStore) List(page, limit int) ([]model.Reservation, *Pagination, error) {
	page, limit = normalizePage(page, limit)

	var total int64
	if err := s.db.Model(&model.Reservation{}).Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var reservations []model.Reservation
	err := s.db.
		Order("created_at desc").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&reservations).Error
	if err != nil {
		return nil, nil, err
	}
	return reservations, newPagination(page, limit, total), nil
}

// ListMine returns the reservations created by the user
func (s *ReservationStore) ListMine(userID uint) ([]model.Reservation, error) {
	var reservations []model.Reservation
	err := s.db.
		Where("created_by_id = ?", userID).
		Order("created_at desc").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

// ReservationPatch carries the content fields a creator may edit. Status
// is not expressible here; it changes only through UpdateStatus.
type ReservationPatch struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Note    *string `json:"note"`
}

// UpdateContent applies a content patch and returns the updated record
func (s *ReservationStore) UpdateContent(id uint, patch ReservationPatch) (*model.Reservation, error) {
	reservation, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		reservation.Name = *patch.Name
	}
	if patch.Email != nil {
		reservation.Email = *patch.Email
	}
	if patch.Phone != nil {
		reservation.Phone = *patch.Phone
	}
	if patch.Address != nil {
		reservation.Address = *patch.Address
	}
	if patch.Note != nil {
		reservation.Note = *patch.Note
	}
	if err := validateReservation(reservation); err != nil {
		return nil, err
	}
	if err := s.db.Save(reservation).Error; err != nil {
		return nil, err
	}
	return reservation, nil
}

// UpdateStatus moves a reservation to a new status
func (s *ReservationStore) UpdateStatus(id uint, status string) (*model.Reservation, error) {
	if !model.ValidReservationStatus(status) {
		return nil, NewValidationError("status", "unknown reservation status")
	}
	reservation, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(reservation).Update("status", status).Error; err != nil {
		return nil, err
	}
	reservation.Status = status
	return reservation, nil
}

// Delete removes a reservation permanently
func (s *ReservationStore) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.db.Delete(&model.Reservation{}, id).Error
}
