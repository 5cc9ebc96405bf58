package model

import (
	"time"

	"gorm.io/gorm"
)

// Supplier represents a supplier record. Products reference suppliers by
// id; the supplier side holds no owned list, supplied products are
// resolved by query.
type Supplier struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	Name               string    `json:"name" gorm:"type:varchar(100);not null"`
	Email              string    `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Phone              string    `json:"phone" gorm:"type:varchar(20);not null"`
	Company            string    `json:"company" gorm:"type:varchar(100);not null"`
	Address            string    `json:"address" gorm:"type:text"`
	City               string    `json:"city" gorm:"type:varchar(50)"`
	State              string    `json:"state" gorm:"type:varchar(50)"`
	Country            string    `json:"country" gorm:"type:varchar(50)"`
	PostalCode         string    `json:"postal_code" gorm:"type:varchar(20)"`
	AgreementStartDate time.Time `json:"agreement_start_date" gorm:"not null"`
	AgreementEndDate   time.Time `json:"agreement_end_date" gorm:"index;not null"`
	IsActive           bool      `json:"is_active" gorm:"default:true"`

	// Derived on every load, never stored
	AgreementExpired bool `json:"agreement_expired" gorm:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAgreementExpired reports whether the agreement end date has passed
func (s *Supplier) IsAgreementExpired(now time.Time) bool {
	return now.After(s.AgreementEndDate)
}

// AfterFind recomputes the agreement expiry flag on load
func (s *Supplier) AfterFind(*gorm.DB) error {
	s.AgreementExpired = s.IsAgreementExpired(time.Now())
	return nil
}
