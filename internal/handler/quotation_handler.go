package handler

import (
	"net/http"

	"github.com/Nethupa05/Hardware-Backend/internal/auth"
	"github.com/Nethupa05/Hardware-Backend/internal/middleware"
	"github.com/Nethupa05/Hardware-Backend/internal/model"
	"github.com/Nethupa05/Hardware-Backend/internal/store"
	"github.com/Nethupa05/Hardware-Backend/pkg/logger"
	"github.com/Nethupa05/Hardware-Backend/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// QuotationHandler serves quotation requests. Submission is open to
// anonymous callers; everything else requires authentication.
type QuotationHandler struct {
	quotations *store.QuotationStore
}

// NewQuotationHandler creates a quotation handler
func NewQuotationHandler(quotations *store.QuotationStore) *QuotationHandler {
	return &QuotationHandler{quotations: quotations}
}

// QuotationItemRequest is a single requested line. Caller-supplied prices
// are ignored; pricing is resolved server-side.
type QuotationItemRequest struct {
	Product  string `json:"product" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// QuotationRequest defines the quotation submission payload
type QuotationRequest struct {
	Name            string                 `json:"name" validate:"required"`
	Email           string                 `json:"email" validate:"required,email"`
	Phone           string                 `json:"phone" validate:"required"`
	Company         string                 `json:"company"`
	Address         string                 `json:"address"`
	ProductCategory string                 `json:"product_category" validate:"required"`
	Product         string                 `json:"product" validate:"required"`
	Items           []QuotationItemRequest `json:"items" validate:"omitempty,dive"`
	Notes           string                 `json:"notes"`
	FileURL         string                 `json:"file_url"`
	TotalAmount     *float64               `json:"total_amount" validate:"omitempty,gt=0"`
}

// StatusRequest defines a status transition payload
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AdminNotesRequest defines the admin notes payload
type AdminNotesRequest struct {
	AdminNotes string `json:"admin_notes" validate:"required"`
}

// Create submits a quotation. An authenticated caller becomes the
// creator; anonymous submissions are matched to an account later by
// email.
func (h *QuotationHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req QuotationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	items := make([]model.QuotationItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, model.QuotationItem{
			ProductName: item.Product,
			Quantity:    item.Quantity,
		})
	}

	quotation := model.Quotation{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Company:         req.Company,
		Address:         req.Address,
		ProductCategory: req.ProductCategory,
		Product:         req.Product,
		Items:           items,
		Notes:           req.Notes,
		FileURL:         req.FileURL,
	}
	if principal := middleware.GetPrincipal(c); principal != nil {
		quotation.CreatedByID = &principal.ID
	}

	if err := h.quotations.Create(&quotation, req.TotalAmount); err != nil {
		log.Warn("Failed to create quotation", zap.String("email", req.Email), zap.Error(err))
		return respondError(c, err)
	}

	log.Info("Quotation created",
		zap.Uint("quotation_id", quotation.ID),
		zap.String("email", quotation.Email),
		zap.Float64("total_amount", quotation.TotalAmount))
	prometheus.RecordOperation("quotation", "create")
	return respond(c, http.StatusCreated, &quotation)
}

// List returns quotations with search, status filter and pagination
// (admin only)
func (h *QuotationHandler) List(c echo.Context) error {
	page, _ := parseUint(c.QueryParam("page"))
	limit, _ := parseUint(c.QueryParam("limit"))

	opts := store.QuotationListOptions{
		Search: c.QueryParam("search"),
		Status: c.QueryParam("status"),
		Page:   int(page),
		Limit:  int(limit),
	}
	quotations, pagination, err := h.quotations.List(opts)
	if err != nil {
		return respondError(c, err)
	}
	prometheus.RecordOperation("quotation", "list")
	return respondList(c, quotations, pagination)
}

// ListByStatus returns quotations in the given status (admin only)
func (h *QuotationHandler) ListByStatus(c echo.Context) error {
	opts := store.QuotationListOptions{Status: c.Param("status")}
	quotations, pagination, err := h.quotations.List(opts)
	if err != nil {
		return respondError(c, err)
	}
	return respondList(c, quotations, pagination)
}

// Mine returns the caller's quotations, matched by creator id or email
func (h *QuotationHandler) Mine(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	quotations, err := h.quotations.ListMine(principal.ID, principal.Email)
	if err != nil {
		return respondError(c, err)
	}
	prometheus.RecordOperation("quotation", "list_mine")
	return respond(c, http.StatusOK, quotations)
}

// Get returns a quotation to its owner or an admin
func (h *QuotationHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	quotation, err := h.quotations.Get(id)
	if err != nil {
		return respondError(c, err)
	}

	principal := middleware.GetPrincipal(c)
	if !principal.IsAdmin() && !auth.OwnsByIDOrEmail(principal, quotation.CreatedByID, quotation.Email) {
		return respondError(c, auth.ErrForbidden)
	}
	return respond(c, http.StatusOK, quotation)
}

// UpdateStatus moves a quotation to a new status (admin only)
func (h *QuotationHandler) UpdateStatus(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req StatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	principal := middleware.GetPrincipal(c)
	quotation, err := h.quotations.UpdateStatus(id, req.Status, principal.ID)
	if err != nil {
		return respondError(c, err)
	}

	logger.FromContext(c).Info("Quotation status updated",
		zap.Uint("quotation_id", id),
		zap.String("status", req.Status))
	prometheus.RecordOperation("quotation", "update_status")
	return respond(c, http.StatusOK, quotation)
}

// UpdateNotes replaces the admin notes (admin only)
func (h *QuotationHandler) UpdateNotes(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req AdminNotesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	principal := middleware.GetPrincipal(c)
	quotation, err := h.quotations.UpdateAdminNotes(id, req.AdminNotes, principal.ID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, quotation)
}

// Delete removes a quotation permanently (admin only)
func (h *QuotationHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.quotations.Delete(id); err != nil {
		return respondError(c, err)
	}
	prometheus.RecordOperation("quotation", "delete")
	return respondMessage(c, http.StatusOK, "Quotation deleted successfully")
}
