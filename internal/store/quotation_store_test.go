package store

import (
	"testing"

	"github.com/Nethupa05/Hardware-Backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestQuotationStore(t *testing.T) (*QuotationStore, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewQuotationStore(db), db
}

func validQuotation() *model.Quotation {
	return &model.Quotation{
		Name:            "Buyer",
		Email:           "buyer@example.com",
		Phone:           "0712223334",
		ProductCategory: "electrical",
		Product:         "Cable",
	}
}

func TestQuotationCreate_ResolvesPricesFromCatalog(t *testing.T) {
	s, db := newTestQuotationStore(t)
	products := NewProductStore(db, newTestNotifier())
	require.NoError(t, products.Create(&model.Product{
		Name: "Cable", Price: 50, Category: "electrical", Stock: 10, MinStock: 2, IsActive: true,
	}))

	q := validQuotation()
	q.Items = []model.QuotationItem{
		// caller-provided price must be ignored
		{ProductName: "Cable", Quantity: 2, UnitPrice: 1},
		{ProductName: "No Such Thing", Quantity: 3, UnitPrice: 999},
	}
	require.NoError(t, s.Create(q, nil))

	assert.Equal(t, model.QuotationStatusPending, q.Status)
	assert.Equal(t, 50.0, q.Items[0].UnitPrice)
	assert.Equal(t, 100.0, q.Items[0].Subtotal)
	assert.Equal(t, 0.0, q.Items[1].UnitPrice)
	assert.Equal(t, 100.0, q.TotalAmount)
}

func TestQuotationCreate_IgnoresInactiveProducts(t *testing.T) {
	s, db := newTestQuotationStore(t)
	products := NewProductStore(db, newTestNotifier())
	p := &model.Product{Name: "Cable", Price: 50, Category: "electrical", Stock: 10, MinStock: 2, IsActive: true}
	require.NoError(t, products.Create(p))
	require.NoError(t, products.SoftDelete(p.ID))

	q := validQuotation()
	q.Items = []model.QuotationItem{{ProductName: "Cable", Quantity: 2}}
	require.NoError(t, s.Create(q, nil))
	assert.Equal(t, 0.0, q.TotalAmount)
}

func TestQuotationCreate_ExplicitTotalOverride(t *testing.T) {
	s, db := newTestQuotationStore(t)
	products := NewProductStore(db, newTestNotifier())
	require.NoError(t, products.Create(&model.Product{
		Name: "Cable", Price: 50, Category: "electrical", Stock: 10, MinStock: 2, IsActive: true,
	}))

	q := validQuotation()
	q.Items = []model.QuotationItem{{ProductName: "Cable", Quantity: 2}}
	override := 75.0
	require.NoError(t, s.Create(q, &override))
	assert.Equal(t, 75.0, q.TotalAmount)
}

func TestQuotationCreate_Validation(t *testing.T) {
	s, _ := newTestQuotationStore(t)

	var validationErr *ValidationError
	err := s.Create(&model.Quotation{}, nil)
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "name")
	assert.Contains(t, validationErr.Fields, "email")

	q := validQuotation()
	q.Items = []model.QuotationItem{{ProductName: "Cable", Quantity: 0}}
	err = s.Create(q, nil)
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "items")
}

func TestQuotationList_SearchAndStatus(t *testing.T) {
	s, _ := newTestQuotationStore(t)

	first := validQuotation()
	first.Name = "Alice Carpenter"
	require.NoError(t, s.Create(first, nil))

	second := validQuotation()
	second.Name = "Bob Mason"
	second.Email = "bob@example.com"
	require.NoError(t, s.Create(second, nil))
	_, err := s.UpdateStatus(second.ID, model.QuotationStatusProcessing, 1)
	require.NoError(t, err)

	got, pagination, err := s.List(QuotationListOptions{Search: "carpenter"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Alice Carpenter", got[0].Name)
	assert.Equal(t, int64(1), pagination.Total)

	got, _, err = s.List(QuotationListOptions{Status: model.QuotationStatusProcessing})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Bob Mason", got[0].Name)

	_, _, err = s.List(QuotationListOptions{Status: "bogus"})
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestQuotationListMine_ByIDOrEmail(t *testing.T) {
	s, _ := newTestQuotationStore(t)

	userID := uint(7)
	owned := validQuotation()
	owned.CreatedByID = &userID
	owned.Email = "other@example.com"
	require.NoError(t, s.Create(owned, nil))

	// anonymous submission tied to the user's email
	anon := validQuotation()
	anon.Email = "Me@Example.com"
	require.NoError(t, s.Create(anon, nil))

	foreign := validQuotation()
	foreign.Email = "stranger@example.com"
	require.NoError(t, s.Create(foreign, nil))

	got, err := s.ListMine(userID, "me@example.com")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestQuotationUpdateStatusAndNotes(t *testing.T) {
	s, _ := newTestQuotationStore(t)

	q := validQuotation()
	require.NoError(t, s.Create(q, nil))

	got, err := s.UpdateStatus(q.ID, model.QuotationStatusRejected, 3)
	require.NoError(t, err)
	assert.Equal(t, model.QuotationStatusRejected, got.Status)
	require.NotNil(t, got.UpdatedByID)
	assert.Equal(t, uint(3), *got.UpdatedByID)

	_, err = s.UpdateStatus(q.ID, "bogus", 3)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)

	got, err = s.UpdateAdminNotes(q.ID, "call them back", 3)
	require.NoError(t, err)
	assert.Equal(t, "call them back", got.AdminNotes)
}

func TestQuotationDelete_RemovesItems(t *testing.T) {
	s, db := newTestQuotationStore(t)

	q := validQuotation()
	q.Items = []model.QuotationItem{{ProductName: "Cable", Quantity: 2}}
	require.NoError(t, s.Create(q, nil))
	require.NoError(t, s.Delete(q.ID))

	_, err := s.Get(q.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&model.QuotationItem{}).Where("quotation_id = ?", q.ID).Count(&count).Error)
	assert.Zero(t, count)

	assert.ErrorIs(t, s.Delete(99999), ErrNotFound)
}
