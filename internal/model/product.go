package model

import (
	"time"

	"gorm.io/gorm"
)

// Stock status values derived from stock vs. minimum stock
const (
	StockStatusOut = "out-of-stock"
	StockStatusLow = "low-stock"
	StockStatusIn  = "in-stock"
)

// Product represents an inventory item. Soft delete clears IsActive; the
// row stays fetchable by id but drops out of default listings.
type Product struct {
	ID          uint    `json:"id" gorm:"primarykey"`
	Name        string  `json:"name" gorm:"type:varchar(255);not null"`
	Description string  `json:"description" gorm:"type:text"`
	Price       float64 `json:"price" gorm:"not null"`
	Category    string  `json:"category" gorm:"type:varchar(100);index;not null"`
	Stock       int     `json:"stock" gorm:"default:0"`
	MinStock    int     `json:"min_stock" gorm:"default:10"`
	SupplierID  *uint   `json:"supplier_id,omitempty" gorm:"index"`
	Image       string  `json:"image" gorm:"type:varchar(255)"`
	IsActive    bool    `json:"is_active" gorm:"default:true"`
	SKU         string  `json:"sku" gorm:"type:varchar(100);uniqueIndex"`

	// Derived fields, recomputed on every load and save
	IsLowStock  bool   `json:"is_low_stock" gorm:"-"`
	StockStatus string `json:"stock_status" gorm:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Product) refreshDerived() {
	p.IsLowStock = p.Stock <= p.MinStock
	switch {
	case p.Stock == 0:
		p.StockStatus = StockStatusOut
	case p.Stock <= p.MinStock:
		p.StockStatus = StockStatusLow
	default:
		p.StockStatus = StockStatusIn
	}
}

// AfterFind recomputes the derived stock fields on load
func (p *Product) AfterFind(*gorm.DB) error {
	p.refreshDerived()
	return nil
}

// AfterSave recomputes the derived stock fields after create/update
func (p *Product) AfterSave(*gorm.DB) error {
	p.refreshDerived()
	return nil
}
