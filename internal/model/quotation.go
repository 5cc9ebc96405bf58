package model

import (
	"time"
)

// Quotation status values
const (
	QuotationStatusPending    = "pending"
	QuotationStatusProcessing = "processing"
	QuotationStatusCompleted  = "completed"
	QuotationStatusRejected   = "rejected"
)

// ValidQuotationStatus reports whether s is a known quotation status
func ValidQuotationStatus(s string) bool {
	switch s {
	case QuotationStatusPending, QuotationStatusProcessing, QuotationStatusCompleted, QuotationStatusRejected:
		return true
	}
	return false
}

// Quotation represents a quotation request. Anonymous submission is
// allowed, so CreatedByID is optional; ownership is later matched by
// creator id or by requester email.
type Quotation struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	Name            string          `json:"name" gorm:"type:varchar(100);not null"`
	Email           string          `json:"email" gorm:"type:varchar(100);index;not null"`
	Phone           string          `json:"phone" gorm:"type:varchar(20);not null"`
	Company         string          `json:"company" gorm:"type:varchar(100)"`
	Address         string          `json:"address" gorm:"type:text"`
	ProductCategory string          `json:"product_category" gorm:"type:varchar(100);not null"`
	Product         string          `json:"product" gorm:"type:varchar(255);not null"`
	Items           []QuotationItem `json:"items" gorm:"foreignKey:QuotationID;constraint:OnDelete:CASCADE"`
	TotalAmount     float64         `json:"total_amount" gorm:"default:0"`
	Notes           string          `json:"notes" gorm:"type:text"`
	AdminNotes      string          `json:"admin_notes" gorm:"type:text"`
	FileURL         string          `json:"file_url" gorm:"type:varchar(255)"`
	Status          string          `json:"status" gorm:"type:varchar(20);index;default:pending"`
	CreatedByID     *uint           `json:"created_by,omitempty" gorm:"index"`
	UpdatedByID     *uint           `json:"updated_by,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// QuotationItem is a single line of a quotation. UnitPrice is resolved
// from the product catalog at creation time, never from caller input.
type QuotationItem struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	QuotationID uint    `json:"-" gorm:"index;not null"`
	ProductName string  `json:"product" gorm:"type:varchar(255);not null"`
	Quantity    int     `json:"quantity" gorm:"not null"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}
