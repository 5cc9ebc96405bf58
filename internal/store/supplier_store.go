package store

import (
	"errors"
	"strings"
	"time"

	"github.com/Nethupa05/Hardware-Backend/internal/model"
	"github.com/Nethupa05/Hardware-Backend/internal/notify"
	"gorm.io/gorm"
)

// SupplierStore persists supplier records and agreement queries.
type SupplierStore struct {
	db       *gorm.DB
	notifier *notify.Notifier
}

// NewSupplierStore creates a supplier store
func NewSupplierStore(db *gorm.DB, notifier *notify.Notifier) *SupplierStore {
	return &SupplierStore{db: db, notifier: notifier}
}

func validateSupplier(sup *model.Supplier) error {
	fields := map[string]string{}
	if strings.TrimSpace(sup.Name) == "" {
		fields["name"] = "name is required"
	}
	sup.Email = strings.ToLower(strings.TrimSpace(sup.Email))
	if sup.Email == "" {
		fields["email"] = "email is required"
	}
	if strings.TrimSpace(sup.Phone) == "" {
		fields["phone"] = "phone is required"
	}
	if strings.TrimSpace(sup.Company) == "" {
		fields["company"] = "company is required"
	}
	if sup.AgreementStartDate.IsZero() {
		fields["agreement_start_date"] = "agreement start date is required"
	}
	if sup.AgreementEndDate.IsZero() {
		fields["agreement_end_date"] = "agreement end date is required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Create inserts a supplier; duplicate email surfaces ErrConflict
func (s *SupplierStore) Create(sup *model.Supplier) error {
	if err := validateSupplier(sup); err != nil {
		return err
	}
	sup.IsActive = true

	var count int64
	s.db.Model(&model.Supplier{}).Where("email = ?", sup.Email).Count(&count)
	if count > 0 {
		return ErrConflict
	}

	if err := s.db.Create(sup).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return err
	}
	return nil
}

// Get retrieves a supplier by id, including soft-deleted ones
func (s *SupplierStore) Get(id uint) (*model.Supplier, error) {
	var supplier model.Supplier
	if err := s.db.First(&supplier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

// SupplierListOptions filters and pages the supplier listing
type SupplierListOptions struct {
	Active *bool
	Page   int
	Limit  int
}

// List returns suppliers with an optional active filter
func (s *SupplierStore) List(opts SupplierListOptions) ([]model.Supplier, *Pagination, error) {
	page, limit := normalizePage(opts.Page, opts.Limit)

	query := s.db.Model(&model.Supplier{})
	if opts.Active != nil {
		query = query.Where("is_active = ?", *opts.Active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var suppliers []model.Supplier
	err := query.
		Order("created_at desc").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&suppliers).Error
	if err != nil {
		return nil, nil, err
	}
	return suppliers, newPagination(page, limit, total), nil
}

// SupplierPatch carries the updatable supplier fields
type SupplierPatch struct {
	Name               *string    `json:"name"`
	Email              *string    `json:"email"`
	Phone              *string    `json:"phone"`
	Company            *string    `json:"company"`
	Address            *string    `json:"address"`
	City               *string    `json:"city"`
	State              *string    `json:"state"`
	Country            *string    `json:"country"`
	PostalCode         *string    `json:"postal_code"`
	AgreementStartDate *time.Time `json:"agreement_start_date"`
	AgreementEndDate   *time.Time `json:"agreement_end_date"`
	IsActive           *bool      `json:"is_active"`
}

// Update applies a patch and returns the updated supplier
func (s *SupplierStore) Update(id uint, patch SupplierPatch) (*model.Supplier, error) {
	supplier, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*patch.Email))
		if email != supplier.Email {
			var count int64
			s.db.Model(&model.Supplier{}).Where("email = ? AND id != ?", email, id).Count(&count)
			if count > 0 {
				return nil, ErrConflict
			}
			supplier.Email = email
		}
	}
	if patch.Name != nil {
		supplier.Name = *patch.Name
	}
	if patch.Phone != nil {
		supplier.Phone = *patch.Phone
	}
	if patch.Company != nil {
		supplier.Company = *patch.Company
	}
	if patch.Address != nil {
		supplier.Address = *patch.Address
	}
	if patch.City != nil {
		supplier.City = *patch.City
	}
	if patch.State != nil {
		supplier.State = *patch.State
	}
	if patch.Country != nil {
		supplier.Country = *patch.Country
	}
	if patch.PostalCode != nil {
		supplier.PostalCode = *patch.PostalCode
	}
	if patch.AgreementStartDate != nil {
		supplier.AgreementStartDate = *patch.AgreementStartDate
	}
	if patch.AgreementEndDate != nil {
		supplier.AgreementEndDate = *patch.AgreementEndDate
	}
	if patch.IsActive != nil {
		supplier.IsActive = *patch.IsActive
	}

	if err := validateSupplier(supplier); err != nil {
		return nil, err
	}
	if err := s.db.Save(supplier).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return supplier, nil
}

// SoftDelete clears the active flag; the row remains fetchable by id
func (s *SupplierStore) SoftDelete(id uint) error {
	supplier, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.db.Model(supplier).Update("is_active", false).Error
}

// FindExpiredAgreements returns active suppliers whose agreement end date
// is strictly before now. Computed fresh on every call.
func (s *SupplierStore) FindExpiredAgreements() ([]model.Supplier, error) {
	var suppliers []model.Supplier
	err := s.db.
		Where("agreement_end_date < ? AND is_active = ?", time.Now(), true).
		Order("agreement_end_date asc").
		Find(&suppliers).Error
	if err != nil {
		return nil, err
	}
	return suppliers, nil
}

// SuppliedProducts resolves the products referencing this supplier
func (s *SupplierStore) SuppliedProducts(id uint) ([]model.Product, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	var products []model.Product
	err := s.db.
		Where("supplier_id = ?", id).
		Order("name asc").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// NotifyLowStock logs a low stock report for the supplier covering the
// given products. Only products that actually are low on stock are
// included; an empty selection is a validation failure.
func (s *SupplierStore) NotifyLowStock(id uint, productIDs []uint, message string) ([]model.Product, error) {
	supplier, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	var products []model.Product
	err = s.db.
		Where("id IN ? AND is_active = ? AND stock <= min_stock", productIDs, true).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, NewValidationError("product_ids", "no products with low stock found")
	}

	s.notifier.SupplierLowStock(supplier, products, message)
	return products, nil
}
