package handler

import (
	"net/http"

	"github.com/Nethupa05/Hardware-Backend/internal/middleware"
	"github.com/Nethupa05/Hardware-Backend/internal/model"
	"github.com/Nethupa05/Hardware-Backend/internal/store"
	"github.com/Nethupa05/Hardware-Backend/pkg/logger"
	"github.com/Nethupa05/Hardware-Backend/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ProductHandler serves the product catalog and stock operations.
type ProductHandler struct {
	products *store.ProductStore
}

// NewProductHandler creates a product handler
func NewProductHandler(products *store.ProductStore) *ProductHandler {
	return &ProductHandler{products: products}
}

// ProductRequest defines the product creation payload
type ProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Category    string  `json:"category" validate:"required"`
	Stock       int     `json:"stock" validate:"gte=0"`
	MinStock    *int    `json:"min_stock" validate:"omitempty,gte=0"`
	SupplierID  *uint   `json:"supplier_id"`
	Image       string  `json:"image"`
	SKU         string  `json:"sku"`
}

// StockRequest defines the stock adjustment payload
type StockRequest struct {
	Operation string `json:"operation" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required"`
}

// List returns products. Inactive products are visible to admins only.
func (h *ProductHandler) List(c echo.Context) error {
	principal := middleware.GetPrincipal(c)

	page, _ := parseUint(c.QueryParam("page"))
	limit, _ := parseUint(c.QueryParam("limit"))
	opts := store.ProductListOptions{
		IncludeInactive: principal != nil && principal.IsAdmin(),
		Category:        c.QueryParam("category"),
		Page:            int(page),
		Limit:           int(limit),
	}

	products, pagination, err := h.products.List(opts)
	if err != nil {
		logger.FromContext(c).Error("Failed to list products", zap.Error(err))
		return respondError(c, err)
	}
	prometheus.RecordOperation("product", "list")
	return respondList(c, products, pagination)
}

// Get returns a single product by id
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	product, err := h.products.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	prometheus.RecordOperation("product", "get")
	return respond(c, http.StatusOK, product)
}

// Create inserts a product, generating a SKU when none is supplied
func (h *ProductHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req ProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	minStock := 10
	if req.MinStock != nil {
		minStock = *req.MinStock
	}

	product := model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		MinStock:    minStock,
		SupplierID:  req.SupplierID,
		Image:       req.Image,
		IsActive:    true,
		SKU:         req.SKU,
	}
	if err := h.products.Create(&product); err != nil {
		log.Warn("Failed to create product", zap.String("name", req.Name), zap.Error(err))
		return respondError(c, err)
	}

	log.Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.String("sku", product.SKU))
	prometheus.RecordOperation("product", "create")
	return respond(c, http.StatusCreated, &product)
}

// Update applies a product patch
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var patch store.ProductPatch
	if err := c.Bind(&patch); err != nil {
		return respondError(c, store.NewValidationError("body", "invalid request data"))
	}

	product, err := h.products.Update(id, patch)
	if err != nil {
		return respondError(c, err)
	}
	prometheus.RecordOperation("product", "update")
	return respond(c, http.StatusOK, product)
}

// Delete soft-deletes a product
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.products.SoftDelete(id); err != nil {
		return respondError(c, err)
	}
	logger.FromContext(c).Info("Product deleted", zap.Uint("product_id", id))
	prometheus.RecordOperation("product", "delete")
	return respondMessage(c, http.StatusOK, "Product deleted successfully")
}

// AdjustStock applies an add or subtract stock operation
func (h *ProductHandler) AdjustStock(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req StockRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	product, err := h.products.AdjustStock(id, req.Operation, req.Quantity)
	if err != nil {
		return respondError(c, err)
	}

	logger.FromContext(c).Info("Stock adjusted",
		zap.Uint("product_id", id),
		zap.String("operation", req.Operation),
		zap.Int("quantity", req.Quantity),
		zap.Int("stock", product.Stock))
	prometheus.RecordStockOperation(req.Operation)
	return respond(c, http.StatusOK, product)
}

// LowStock returns active products at or below their minimum stock
func (h *ProductHandler) LowStock(c echo.Context) error {
	products, err := h.products.ListLowStock()
	if err != nil {
		return respondError(c, err)
	}
	prometheus.RecordOperation("product", "low_stock")
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(products),
		"data":    products,
	})
}

// Categories returns the distinct categories of active products
func (h *ProductHandler) Categories(c echo.Context) error {
	categories, err := h.products.Categories()
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, categories)
}
