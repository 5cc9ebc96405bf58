package handler

import (
	"errors"
	"net/http"

	"github.com/Nethupa05/Hardware-Backend/internal/auth"
	"github.com/Nethupa05/Hardware-Backend/internal/store"
	"github.com/Nethupa05/Hardware-Backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func respond(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{
		"success": true,
		"data":    data,
	})
}

func respondMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{
		"success": true,
		"message": message,
	})
}

func respondList(c echo.Context, data interface{}, pagination *store.Pagination) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"data":       data,
		"pagination": pagination,
	})
}

func errorBody(kind, message string) echo.Map {
	return echo.Map{
		"success": false,
		"error":   echo.Map{"kind": kind, "message": message},
	}
}

// respondError maps store and gate failures to HTTP statuses. Anything
// unrecognized is logged and reported as a generic internal error so
// storage details never reach the caller.
func respondError(c echo.Context, err error) error {
	var validationErr *store.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error": echo.Map{
				"kind":    "validation",
				"message": "invalid input",
				"fields":  validationErr.Fields,
			},
		})
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorBody("not_found", "record not found"))
	case errors.Is(err, store.ErrConflict):
		return c.JSON(http.StatusConflict, errorBody("conflict", "duplicate value"))
	case errors.Is(err, store.ErrInsufficientStock):
		return c.JSON(http.StatusUnprocessableEntity, errorBody("insufficient_stock", "insufficient stock"))
	case errors.Is(err, store.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, errorBody("unauthorized", "invalid credentials"))
	case errors.Is(err, store.ErrAccountDeactivated):
		return c.JSON(http.StatusForbidden, errorBody("forbidden", "account is deactivated"))
	case errors.Is(err, auth.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, errorBody("unauthorized", "not authorized"))
	case errors.Is(err, auth.ErrForbidden):
		return c.JSON(http.StatusForbidden, errorBody("forbidden", "not authorized to perform this action"))
	default:
		logger.FromContext(c).Error("Unexpected error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorBody("server_error", "internal server error"))
	}
}

// parseID parses a numeric path parameter
func parseID(c echo.Context, name string) (uint, error) {
	id, err := parseUint(c.Param(name))
	if err != nil {
		return 0, store.NewValidationError(name, "invalid id")
	}
	return id, nil
}
