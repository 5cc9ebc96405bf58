package store

import (
	"errors"
	"strings"

	"github.com/Nethupa05/Hardware-Backend/internal/model"
	"gorm.io/gorm"
)

// QuotationStore persists quotation requests and computes their totals.
type QuotationStore struct {
	db *gorm.DB
}

// NewQuotationStore creates a quotation store
func NewQuotationStore(db *gorm.DB) *QuotationStore {
	return &QuotationStore{db: db}
}

func validateQuotation(q *model.Quotation) error {
	fields := map[string]string{}
	if strings.TrimSpace(q.Name) == "" {
		fields["name"] = "name is required"
	}
	q.Email = strings.ToLower(strings.TrimSpace(q.Email))
	if q.Email == "" {
		fields["email"] = "email is required"
	}
	if strings.TrimSpace(q.Phone) == "" {
		fields["phone"] = "phone is required"
	}
	if strings.TrimSpace(q.ProductCategory) == "" {
		fields["product_category"] = "product category is required"
	}
	if strings.TrimSpace(q.Product) == "" {
		fields["product"] = "product is required"
	}
	for i := range q.Items {
		if q.Items[i].Quantity <= 0 {
			fields["items"] = "item quantity must be a positive integer"
			break
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Create inserts a quotation. Each line's unit price is resolved from the
// current product catalog by name, never from caller input; unknown
// products contribute zero. The computed total stands unless the caller
// supplied an explicit override.
func (s *QuotationStore) Create(q *model.Quotation, explicitTotal *float64) error {
	if err := validateQuotation(q); err != nil {
		return err
	}

	var total float64
	for i := range q.Items {
		item := &q.Items[i]
		item.UnitPrice = 0
		item.Subtotal = 0

		var product model.Product
		err := s.db.
			Where("name = ? AND is_active = ?", item.ProductName, true).
			First(&product).Error
		if err == nil {
			item.UnitPrice = product.Price
			item.Subtotal = product.Price * float64(item.Quantity)
			total += item.Subtotal
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	if explicitTotal != nil {
		q.TotalAmount = *explicitTotal
	} else {
		q.TotalAmount = total
	}
	q.Status = model.QuotationStatusPending

	return s.db.Create(q).Error
}

// Get retrieves a quotation with its items
func (s *QuotationStore) Get(id uint) (*model.Quotation, error) {
	var quotation model.Quotation
	err := s.db.Preload("Items").First(&quotation, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &quotation, nil
}

// QuotationListOptions filters and pages the quotation listing
type QuotationListOptions struct {
	Search string
	Status string
	Page   int
	Limit  int
}

// List returns quotations matched by a case-insensitive substring search
// across requester name, email and product, optionally narrowed by status
func (s *QuotationStore) List(opts QuotationListOptions) ([]model.Quotation, *Pagination, error) {
	page, limit := normalizePage(opts.Page, opts.Limit)

	query := s.db.Model(&model.Quotation{})
	if opts.Search != "" {
		term := "%" + strings.ToLower(opts.Search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(product) LIKE ?",
			term, term, term,
		)
	}
	if opts.Status != "" {
		if !model.ValidQuotationStatus(opts.Status) {
			return nil, nil, NewValidationError("status", "unknown quotation status")
		}
		query = query.Where("status = ?", opts.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var quotations []model.Quotation
	err := query.
		Preload("Items").
		Order("created_at desc").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&quotations).Error
	if err != nil {
		return nil, nil, err
	}
	return quotations, newPagination(page, limit, total), nil
}

// ListMine returns quotations owned by the user, matched by creator id or
// by requester email for submissions made before signing in
func (s *QuotationStore) ListMine(userID uint, email string) ([]model.Quotation, error) {
	var quotations []model.Quotation
	err := s.db.
		Preload("Items").
		Where("created_by_id = ? OR email = ?", userID, strings.ToLower(email)).
		Order("created_at desc").
		Find(&quotations).Error
	if err != nil {
		return nil, err
	}
	return quotations, nil
}

// UpdateStatus moves a quotation to a new status
func (s *QuotationStore) UpdateStatus(id uint, status string, updatedBy uint) (*model.Quotation, error) {
	if !model.ValidQuotationStatus(status) {
		return nil, NewValidationError("status", "unknown quotation status")
	}
	quotation, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"status":        status,
		"updated_by_id": updatedBy,
	}
	if err := s.db.Model(quotation).Updates(updates).Error; err != nil {
		return nil, err
	}
	quotation.Status = status
	quotation.UpdatedByID = &updatedBy
	return quotation, nil
}

// UpdateAdminNotes replaces the admin notes on a quotation
func (s *QuotationStore) UpdateAdminNotes(id uint, notes string, updatedBy uint) (*model.Quotation, error) {
	quotation, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"admin_notes":   notes,
		"updated_by_id": updatedBy,
	}
	if err := s.db.Model(quotation).Updates(updates).Error; err != nil {
		return nil, err
	}
	quotation.AdminNotes = notes
	quotation.UpdatedByID = &updatedBy
	return quotation, nil
}

// Delete removes a quotation and its items permanently
func (s *QuotationStore) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.db.Where("quotation_id = ?", id).Delete(&model.QuotationItem{}).Error; err != nil {
		return err
	}
	return s.db.Delete(&model.Quotation{}, id).Error
}
