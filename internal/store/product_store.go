package store

import (
	"errors"
	"math/rand"
	"strconv"
	"strings"

	"github.com/Nethupa05/Hardware-Backend/internal/model"
	"github.com/Nethupa05/Hardware-Backend/internal/notify"
	"gorm.io/gorm"
)

// maxSKUAttempts bounds SKU regeneration when the random suffix collides.
const maxSKUAttempts = 5

// ProductStore persists products and owns the stock arithmetic.
type ProductStore struct {
	db        *gorm.DB
	notifier  *notify.Notifier
	skuSuffix func() string
}

// NewProductStore creates a product store
func NewProductStore(db *gorm.DB, notifier *notify.Notifier) *ProductStore {
	return &ProductStore{
		db:        db,
		notifier:  notifier,
		skuSuffix: randomSKUSuffix,
	}
}

func randomSKUSuffix() string {
	return strconv.Itoa(1000 + rand.Intn(9000))
}

// skuFor builds a SKU like "ELE-4821" from the category prefix
func (s *ProductStore) skuFor(category string) string {
	prefix := category
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return strings.ToUpper(prefix) + "-" + s.skuSuffix()
}

func validateProduct(p *model.Product) error {
	fields := map[string]string{}
	if strings.TrimSpace(p.Name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(p.Category) == "" {
		fields["category"] = "category is required"
	}
	if p.Price < 0 {
		fields["price"] = "price cannot be negative"
	}
	if p.Stock < 0 {
		fields["stock"] = "stock cannot be negative"
	}
	if p.MinStock < 0 {
		fields["min_stock"] = "minimum stock cannot be negative"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Create inserts a product, generating a SKU when none is supplied.
// Generated SKUs are regenerated on collision; a caller-supplied SKU that
// collides surfaces ErrConflict.
func (s *ProductStore) Create(p *model.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}

	if p.SKU != "" {
		var count int64
		s.db.Model(&model.Product{}).Where("sku = ?", p.SKU).Count(&count)
		if count > 0 {
			return ErrConflict
		}
		if err := s.db.Create(p).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrConflict
			}
			return err
		}
	} else {
		var err error
		for attempt := 0; attempt < maxSKUAttempts; attempt++ {
			p.SKU = s.skuFor(p.Category)
			err = s.db.Create(p).Error
			if err == nil {
				break
			}
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return err
			}
			p.ID = 0
		}
		if err != nil {
			return ErrConflict
		}
	}

	if p.IsLowStock {
		s.notifier.LowStock(p)
	}
	return nil
}

// Get retrieves a product by id, including soft-deleted ones
func (s *ProductStore) Get(id uint) (*model.Product, error) {
	var product model.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// ProductListOptions filters and pages the product listing
type ProductListOptions struct {
	IncludeInactive bool
	Category        string
	Page            int
	Limit           int
}

// List returns products, active-only unless IncludeInactive is set
func (s *ProductStore) List(opts ProductListOptions) ([]model.Product, *Pagination, error) {
	page, limit := normalizePage(opts.Page, opts.Limit)

	query := s.db.Model(&model.Product{})
	if !opts.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}
	if opts.Category != "" {
		query = query.Where("category = ?", opts.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var products []model.Product
	err := query.
		Order("created_at desc").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&products).Error
	if err != nil {
		return nil, nil, err
	}
	return products, newPagination(page, limit, total), nil
}

// ProductPatch carries the updatable product fields. The SKU is fixed at
// creation and cannot be patched.
type ProductPatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Stock       *int     `json:"stock"`
	MinStock    *int     `json:"min_stock"`
	SupplierID  *uint    `json:"supplier_id"`
	Image       *string  `json:"image"`
	IsActive    *bool    `json:"is_active"`
}

// Update applies a patch and returns the updated product
func (s *ProductStore) Update(id uint, patch ProductPatch) (*model.Product, error) {
	product, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.Category != nil {
		product.Category = *patch.Category
	}
	if patch.Stock != nil {
		product.Stock = *patch.Stock
	}
	if patch.MinStock != nil {
		product.MinStock = *patch.MinStock
	}
	if patch.SupplierID != nil {
		product.SupplierID = patch.SupplierID
	}
	if patch.Image != nil {
		product.Image = *patch.Image
	}
	if patch.IsActive != nil {
		product.IsActive = *patch.IsActive
	}

	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if err := s.db.Save(product).Error; err != nil {
		return nil, err
	}

	if product.IsActive && product.IsLowStock {
		s.notifier.LowStock(product)
	}
	return product, nil
}

// SoftDelete clears the active flag; the row remains fetchable by id
func (s *ProductStore) SoftDelete(id uint) error {
	product, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.db.Model(product).Update("is_active", false).Error
}

// Stock adjustment operations
const (
	StockOpAdd      = "add"
	StockOpSubtract = "subtract"
)

// AdjustStock applies an atomic stock increment or conditional decrement.
// Subtract never drives stock negative: the decrement is guarded by a
// stock >= quantity predicate in the same statement, so concurrent
// subtracts cannot lose updates.
func (s *ProductStore) AdjustStock(id uint, operation string, quantity int) (*model.Product, error) {
	if quantity <= 0 {
		return nil, NewValidationError("quantity", "quantity must be a positive integer")
	}

	switch operation {
	case StockOpAdd:
		tx := s.db.Model(&model.Product{}).
			Where("id = ?", id).
			Update("stock", gorm.Expr("stock + ?", quantity))
		if tx.Error != nil {
			return nil, tx.Error
		}
		if tx.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	case StockOpSubtract:
		tx := s.db.Model(&model.Product{}).
			Where("id = ? AND stock >= ?", id, quantity).
			Update("stock", gorm.Expr("stock - ?", quantity))
		if tx.Error != nil {
			return nil, tx.Error
		}
		if tx.RowsAffected == 0 {
			if _, err := s.Get(id); err != nil {
				return nil, err
			}
			return nil, ErrInsufficientStock
		}
	default:
		return nil, NewValidationError("operation", `operation must be "add" or "subtract"`)
	}

	product, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if product.IsLowStock {
		s.notifier.LowStock(product)
	}
	return product, nil
}

// ListLowStock returns active products at or below their minimum stock,
// excluding out-of-stock items
func (s *ProductStore) ListLowStock() ([]model.Product, error) {
	var products []model.Product
	err := s.db.
		Where("is_active = ? AND stock > 0 AND stock <= min_stock", true).
		Order("stock asc").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Categories returns the distinct categories of active products
func (s *ProductStore) Categories() ([]string, error) {
	var categories []string
	err := s.db.Model(&model.Product{}).
		Where("is_active = ?", true).
		Distinct().
		Order("category asc").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}
