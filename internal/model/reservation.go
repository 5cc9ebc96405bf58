package model

import (
	"time"
)

// Reservation status values
const (
	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusCompleted = "completed"
	ReservationStatusCancelled = "cancelled"
)

// ValidReservationStatus reports whether s is a known reservation status
func ValidReservationStatus(s string) bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCompleted, ReservationStatusCancelled:
		return true
	}
	return false
}

// Reservation represents a customer reservation. The creator is always an
// authenticated user; only the creator may edit content fields and only
// an admin may change the status.
type Reservation struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null"`
	Email       string    `json:"email" gorm:"type:varchar(100);not null"`
	Phone       string    `json:"phone" gorm:"type:varchar(20);not null"`
	Address     string    `json:"address" gorm:"type:text"`
	Note        string    `json:"note" gorm:"type:text"`
	Status      string    `json:"status" gorm:"type:varchar(20);index;default:pending"`
	CreatedByID uint      `json:"created_by" gorm:"index;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
