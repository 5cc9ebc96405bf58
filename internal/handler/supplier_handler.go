package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Nethupa05/Hardware-Backend/internal/model"
	"github.com/Nethupa05/Hardware-Backend/internal/store"
	"github.com/Nethupa05/Hardware-Backend/pkg/logger"
	"github.com/Nethupa05/Hardware-Backend/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SupplierHandler serves supplier records and agreement queries.
type SupplierHandler struct {
	suppliers *store.SupplierStore
}

// NewSupplierHandler creates a supplier handler
func NewSupplierHandler(suppliers *store.SupplierStore) *SupplierHandler {
	return &SupplierHandler{suppliers: suppliers}
}

// SupplierRequest defines the supplier creation payload
type SupplierRequest struct {
	Name               string    `json:"name" validate:"required"`
	Email              string    `json:"email" validate:"required,email"`
	Phone              string    `json:"phone" validate:"required"`
	Company            string    `json:"company" validate:"required"`
	Address            string    `json:"address"`
	City               string    `json:"city"`
	State              string    `json:"state"`
	Country            string    `json:"country"`
	PostalCode         string    `json:"postal_code"`
	AgreementStartDate time.Time `json:"agreement_start_date" validate:"required"`
	AgreementEndDate   time.Time `json:"agreement_end_date" validate:"required"`
}

// NotifyLowStockRequest defines the supplier low stock report payload
type NotifyLowStockRequest struct {
	ProductIDs []uint `json:"product_ids" validate:"required,min=1"`
	Message    string `json:"message"`
}

// Create inserts a supplier
func (h *SupplierHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req SupplierRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	supplier := model.Supplier{
		Name:               req.Name,
		Email:              req.Email,
		Phone:              req.Phone,
		Company:            req.Company,
		Address:            req.Address,
		City:               req.City,
		State:              req.State,
		Country:            req.Country,
		PostalCode:         req.PostalCode,
		AgreementStartDate: req.AgreementStartDate,
		AgreementEndDate:   req.AgreementEndDate,
	}
	if err := h.suppliers.Create(&supplier); err != nil {
		log.Warn("Failed to create supplier", zap.String("email", req.Email), zap.Error(err))
		return respondError(c, err)
	}

	log.Info("Supplier created",
		zap.Uint("supplier_id", supplier.ID),
		zap.String("name", supplier.Name))
	prometheus.RecordOperation("supplier", "create")
	return respond(c, http.StatusCreated, &supplier)
}

// Get returns a supplier by id
func (h *SupplierHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	supplier, err := h.suppliers.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	prometheus.RecordOperation("supplier", "get")
	return respond(c, http.StatusOK, supplier)
}

// List returns suppliers with an optional active filter
func (h *SupplierHandler) List(c echo.Context) error {
	page, _ := parseUint(c.QueryParam("page"))
	limit, _ := parseUint(c.QueryParam("limit"))

	opts := store.SupplierListOptions{Page: int(page), Limit: int(limit)}
	if raw := c.QueryParam("active"); raw != "" {
		if active, err := strconv.ParseBool(raw); err == nil {
			opts.Active = &active
		}
	}

	suppliers, pagination, err := h.suppliers.List(opts)
	if err != nil {
		return respondError(c, err)
	}
	prometheus.RecordOperation("supplier", "list")
	return respondList(c, suppliers, pagination)
}

// Update applies a supplier patch
func (h *SupplierHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var patch store.SupplierPatch
	if err := c.Bind(&patch); err != nil {
		return respondError(c, store.NewValidationError("body", "invalid request data"))
	}

	supplier, err := h.suppliers.Update(id, patch)
	if err != nil {
		return respondError(c, err)
	}
	prometheus.RecordOperation("supplier", "update")
	return respond(c, http.StatusOK, supplier)
}

// Delete soft-deletes a supplier
func (h *SupplierHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.suppliers.SoftDelete(id); err != nil {
		return respondError(c, err)
	}
	prometheus.RecordOperation("supplier", "delete")
	return respondMessage(c, http.StatusOK, "Supplier removed successfully")
}

// ExpiredAgreements returns active suppliers whose agreement has lapsed
func (h *SupplierHandler) ExpiredAgreements(c echo.Context) error {
	suppliers, err := h.suppliers.FindExpiredAgreements()
	if err != nil {
		return respondError(c, err)
	}
	prometheus.RecordOperation("supplier", "expired_agreements")
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(suppliers),
		"data":    suppliers,
	})
}

// Products returns the products referencing this supplier
func (h *SupplierHandler) Products(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	products, err := h.suppliers.SuppliedProducts(id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, products)
}

// NotifyLowStock logs a low stock report directed at the supplier
func (h *SupplierHandler) NotifyLowStock(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req NotifyLowStockRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	products, err := h.suppliers.NotifyLowStock(id, req.ProductIDs, req.Message)
	if err != nil {
		return respondError(c, err)
	}
	prometheus.RecordOperation("supplier", "notify_low_stock")
	return respond(c, http.StatusOK, echo.Map{
		"products": products,
		"message":  "Low stock notification logged successfully",
	})
}
