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

// ReservationHandler serves reservations. All routes require
// authentication; the creator or an admin may read, only the creator may
// edit content, and only an admin may change status or delete.
type ReservationHandler struct {
	reservations *store.ReservationStore
}

// NewReservationHandler creates a reservation handler
func NewReservationHandler(reservations *store.ReservationStore) *ReservationHandler {
	return &ReservationHandler{reservations: reservations}
}

// ReservationRequest defines the reservation submission payload
type ReservationRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address"`
	Note    string `json:"note"`
}

// Create submits a reservation for the authenticated caller
func (h *ReservationHandler) Create(c echo.Context) error {
	principal := middleware.GetPrincipal(c)

	var req ReservationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	reservation := model.Reservation{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Note:        req.Note,
		CreatedByID: principal.ID,
	}
	if err := h.reservations.Create(&reservation); err != nil {
		return respondError(c, err)
	}

	logger.FromContext(c).Info("Reservation created",
		zap.Uint("reservation_id", reservation.ID),
		zap.Uint("user_id", principal.ID))
	prometheus.RecordOperation("reservation", "create")
	return respond(c, http.StatusCreated, &reservation)
}

// List returns all reservations (admin only)
func (h *ReservationHandler) List(c echo.Context) error {
	page, _ := parseUint(c.QueryParam("page"))
	limit, _ := parseUint(c.QueryParam("limit"))

	reservations, pagination, err := h.reservations.List(int(page), int(limit))
	if err != nil {
		return respondError(c, err)
	}
	prometheus.RecordOperation("reservation", "list")
	return respondList(c, reservations, pagination)
}

// Mine returns the caller's reservations
func (h *ReservationHandler) Mine(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	reservations, err := h.reservations.ListMine(principal.ID)
	if err != nil {
		return respondError(c, err)
	}
	prometheus.RecordOperation("reservation", "list_mine")
	return respond(c, http.StatusOK, reservations)
}

// Get returns a reservation to its creator or an admin
func (h *ReservationHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	reservation, err := h.reservations.Get(id)
	if err != nil {
		return respondError(c, err)
	}

	principal := middleware.GetPrincipal(c)
	if err := auth.RequireOwnerOrAdmin(principal, reservation.CreatedByID); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, reservation)
}

// Update applies a content patch. Only the creator may edit content
// fields; status is not part of the patch.
func (h *ReservationHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	reservation, err := h.reservations.Get(id)
	if err != nil {
		return respondError(c, err)
	}

	principal := middleware.GetPrincipal(c)
	if reservation.CreatedByID != principal.ID {
		return respondError(c, auth.ErrForbidden)
	}

	var patch store.ReservationPatch
	if err := c.Bind(&patch); err != nil {
		return respondError(c, store.NewValidationError("body", "invalid request data"))
	}

	updated, err := h.reservations.UpdateContent(id, patch)
	if err != nil {
		return respondError(c, err)
	}
	prometheus.RecordOperation("reservation", "update")
	return respond(c, http.StatusOK, updated)
}

// UpdateStatus moves the reservation to a new status (admin only)
func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req StatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	reservation, err := h.reservations.UpdateStatus(id, req.Status)
	if err != nil {
		return respondError(c, err)
	}

	logger.FromContext(c).Info("Reservation status updated",
		zap.Uint("reservation_id", id),
		zap.String("status", req.Status))
	prometheus.RecordOperation("reservation", "update_status")
	return respond(c, http.StatusOK, reservation)
}

// Delete removes a reservation permanently (admin only)
func (h *ReservationHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.reservations.Delete(id); err != nil {
		return respondError(c, err)
	}
	prometheus.RecordOperation("reservation", "delete")
	return respond(c, http.StatusOK, echo.Map{})
}
