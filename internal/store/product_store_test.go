package store

import (
	"errors"
	"regexp"
	"sync"
	"testing"

	"github.com/Nethupa05/Hardware-Backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProductStore(t *testing.T) *ProductStore {
	t.Helper()
	return NewProductStore(newTestDB(t), newTestNotifier())
}

func seedProduct(t *testing.T, s *ProductStore, p *model.Product) *model.Product {
	t.Helper()
	require.NoError(t, s.Create(p))
	return p
}

func TestProductCreate_GeneratesSKU(t *testing.T) {
	s := newTestProductStore(t)

	p := seedProduct(t, s, &model.Product{
		Name:     "Cordless Drill",
		Price:    99.5,
		Category: "electrical",
		Stock:    20,
		MinStock: 5,
		IsActive: true,
	})

	assert.Regexp(t, regexp.MustCompile(`^ELE-\d{4}$`), p.SKU)
}

func TestProductCreate_RegeneratesSKUOnCollision(t *testing.T) {
	s := newTestProductStore(t)

	suffixes := []string{"1111", "1111", "2222"}
	s.skuSuffix = func() string {
		next := suffixes[0]
		if len(suffixes) > 1 {
			suffixes = suffixes[1:]
		}
		return next
	}

	first := seedProduct(t, s, &model.Product{
		Name: "Hammer", Price: 10, Category: "tools", Stock: 5, MinStock: 2, IsActive: true,
	})
	assert.Equal(t, "TOO-1111", first.SKU)

	// The first generated SKU collides; the store must retry, not fail.
	second := &model.Product{
		Name: "Mallet", Price: 12, Category: "tools", Stock: 5, MinStock: 2, IsActive: true,
	}
	require.NoError(t, s.Create(second))
	assert.Equal(t, "TOO-2222", second.SKU)
}

func TestProductCreate_SuppliedSKUConflict(t *testing.T) {
	s := newTestProductStore(t)

	seedProduct(t, s, &model.Product{
		Name: "Wrench", Price: 8, Category: "tools", SKU: "TOO-9999", IsActive: true,
	})

	err := s.Create(&model.Product{
		Name: "Spanner", Price: 9, Category: "tools", SKU: "TOO-9999", IsActive: true,
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestProductCreate_Validation(t *testing.T) {
	s := newTestProductStore(t)

	err := s.Create(&model.Product{Price: -1, Stock: -2})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "name")
	assert.Contains(t, validationErr.Fields, "category")
	assert.Contains(t, validationErr.Fields, "price")
	assert.Contains(t, validationErr.Fields, "stock")
}

func TestProductLowStockBoundary(t *testing.T) {
	s := newTestProductStore(t)

	tests := []struct {
		name       string
		stock      int
		minStock   int
		lowStock   bool
		stockState string
	}{
		{"above threshold", 11, 10, false, model.StockStatusIn},
		{"at threshold", 10, 10, true, model.StockStatusLow},
		{"below threshold", 3, 10, true, model.StockStatusLow},
		{"out of stock", 0, 10, true, model.StockStatusOut},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := seedProduct(t, s, &model.Product{
				Name: "p-" + tt.name, Price: 1, Category: "misc",
				Stock: tt.stock, MinStock: tt.minStock, IsActive: true,
			})
			got, err := s.Get(p.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.lowStock, got.IsLowStock)
			assert.Equal(t, tt.stockState, got.StockStatus)
		})
	}
}

func TestAdjustStock(t *testing.T) {
	s := newTestProductStore(t)
	p := seedProduct(t, s, &model.Product{
		Name: "Screws", Price: 1, Category: "fasteners", Stock: 10, MinStock: 3, IsActive: true,
	})

	got, err := s.AdjustStock(p.ID, StockOpAdd, 5)
	require.NoError(t, err)
	assert.Equal(t, 15, got.Stock)

	got, err = s.AdjustStock(p.ID, StockOpSubtract, 12)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stock)
	assert.True(t, got.IsLowStock)

	_, err = s.AdjustStock(p.ID, StockOpSubtract, 4)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// failed subtract leaves stock untouched
	got, err = s.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stock)
}

func TestAdjustStock_Validation(t *testing.T) {
	s := newTestProductStore(t)
	p := seedProduct(t, s, &model.Product{
		Name: "Nails", Price: 1, Category: "fasteners", Stock: 10, MinStock: 3, IsActive: true,
	})

	var validationErr *ValidationError
	_, err := s.AdjustStock(p.ID, StockOpSubtract, 0)
	assert.ErrorAs(t, err, &validationErr)

	_, err = s.AdjustStock(p.ID, StockOpSubtract, -5)
	assert.ErrorAs(t, err, &validationErr)

	_, err = s.AdjustStock(p.ID, "multiply", 2)
	assert.ErrorAs(t, err, &validationErr)

	_, err = s.AdjustStock(99999, StockOpAdd, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdjustStock_ConcurrentSubtract(t *testing.T) {
	s := newTestProductStore(t)
	p := seedProduct(t, s, &model.Product{
		Name: "Bolts", Price: 1, Category: "fasteners", Stock: 5, MinStock: 0, IsActive: true,
	})

	const workers = 10
	var wg sync.WaitGroup
	results := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = s.AdjustStock(p.ID, StockOpSubtract, 1)
		}(i)
	}
	wg.Wait()

	var succeeded, insufficient int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 5, succeeded)
	assert.Equal(t, 5, insufficient)

	got, err := s.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)
}

func TestProductSoftDelete(t *testing.T) {
	s := newTestProductStore(t)
	p := seedProduct(t, s, &model.Product{
		Name: "Saw", Price: 25, Category: "tools", Stock: 50, MinStock: 5, IsActive: true,
	})

	require.NoError(t, s.SoftDelete(p.ID))

	// gone from the default listing
	listed, _, err := s.List(ProductListOptions{})
	require.NoError(t, err)
	for _, item := range listed {
		assert.NotEqual(t, p.ID, item.ID)
	}

	// still visible to an admin listing
	listed, _, err = s.List(ProductListOptions{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	// and still fetchable by id
	got, err := s.Get(p.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestProductListLowStockExcludesOutOfStock(t *testing.T) {
	s := newTestProductStore(t)
	seedProduct(t, s, &model.Product{Name: "a", Price: 1, Category: "c", Stock: 2, MinStock: 5, IsActive: true})
	seedProduct(t, s, &model.Product{Name: "b", Price: 1, Category: "c", Stock: 0, MinStock: 5, IsActive: true})
	seedProduct(t, s, &model.Product{Name: "c", Price: 1, Category: "c", Stock: 50, MinStock: 5, IsActive: true})

	low, err := s.ListLowStock()
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "a", low[0].Name)
}

func TestProductCategories(t *testing.T) {
	s := newTestProductStore(t)
	seedProduct(t, s, &model.Product{Name: "a", Price: 1, Category: "electrical", IsActive: true})
	seedProduct(t, s, &model.Product{Name: "b", Price: 1, Category: "tools", IsActive: true})
	seedProduct(t, s, &model.Product{Name: "d", Price: 1, Category: "tools", IsActive: true})

	inactive := seedProduct(t, s, &model.Product{Name: "e", Price: 1, Category: "plumbing", IsActive: true})
	require.NoError(t, s.SoftDelete(inactive.ID))

	categories, err := s.Categories()
	require.NoError(t, err)
	assert.Equal(t, []string{"electrical", "tools"}, categories)
}

func TestProductUpdate_Patch(t *testing.T) {
	s := newTestProductStore(t)
	p := seedProduct(t, s, &model.Product{
		Name: "Tape", Price: 3, Category: "misc", Stock: 30, MinStock: 5, IsActive: true,
	})

	price := 4.5
	updated, err := s.Update(p.ID, ProductPatch{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 4.5, updated.Price)
	assert.Equal(t, "Tape", updated.Name)
	assert.Equal(t, p.SKU, updated.SKU)

	_, err = s.Update(99999, ProductPatch{Price: &price})
	assert.ErrorIs(t, err, ErrNotFound)
}
