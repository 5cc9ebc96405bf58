package handler

import (
	"net/http"
	"time"

	"github.com/Nethupa05/Hardware-Backend/internal/middleware"
	"github.com/Nethupa05/Hardware-Backend/internal/model"
	"github.com/Nethupa05/Hardware-Backend/internal/store"
	"github.com/Nethupa05/Hardware-Backend/pkg/jwtutil"
	"github.com/Nethupa05/Hardware-Backend/pkg/logger"
	"github.com/Nethupa05/Hardware-Backend/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// UserHandler serves account registration, login and profile management.
type UserHandler struct {
	users         *store.UserStore
	jwt           *jwtutil.JWTUtil
	cookieEnabled bool
}

// NewUserHandler creates a user handler
func NewUserHandler(users *store.UserStore, jwt *jwtutil.JWTUtil, cookieEnabled bool) *UserHandler {
	return &UserHandler{users: users, jwt: jwt, cookieEnabled: cookieEnabled}
}

// RegisterRequest defines the registration payload
type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=customer admin"`
}

// LoginRequest defines the login payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest defines the password change payload
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

func (h *UserHandler) setTokenCookie(c echo.Context, token string) {
	if !h.cookieEnabled {
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    token,
		Expires:  time.Now().Add(h.jwt.Expiry()),
		HttpOnly: true,
		Path:     "/",
	})
}

func (h *UserHandler) tokenResponse(c echo.Context, status int, user *model.User) error {
	token, err := h.jwt.GenerateToken(user.ID)
	if err != nil {
		logger.FromContext(c).Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return respondError(c, err)
	}

	h.setTokenCookie(c, token)
	return c.JSON(status, echo.Map{
		"success": true,
		"token":   token,
		"data": echo.Map{
			"id":        user.ID,
			"full_name": user.FullName,
			"email":     user.Email,
			"role":      user.Role,
		},
	})
}

// Register creates an account and signs the new user in
func (h *UserHandler) Register(c echo.Context) error {
	log := logger.FromContext(c)
	if prometheus.RegisterCounter != nil {
		prometheus.RegisterCounter.Inc()
	}

	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	user := model.User{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     req.Role,
	}
	if err := h.users.Register(&user, req.Password); err != nil {
		log.Warn("Registration failed", zap.String("email", req.Email), zap.Error(err))
		return respondError(c, err)
	}

	log.Info("User registered", zap.String("email", user.Email))
	return h.tokenResponse(c, http.StatusCreated, &user)
}

// Login verifies credentials and issues a token
func (h *UserHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	if prometheus.LoginCounter != nil {
		prometheus.LoginCounter.Inc()
	}

	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	user, err := h.users.Authenticate(req.Email, req.Password)
	if err != nil {
		log.Warn("Login failed", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_credentials")
		return respondError(c, err)
	}

	log.Info("User logged in", zap.String("email", user.Email), zap.String("role", user.Role))
	return h.tokenResponse(c, http.StatusOK, user)
}

// Logout clears the token cookie
func (h *UserHandler) Logout(c echo.Context) error {
	if h.cookieEnabled {
		c.SetCookie(&http.Cookie{
			Name:     middleware.TokenCookieName,
			Value:    "none",
			Expires:  time.Now().Add(10 * time.Second),
			HttpOnly: true,
			Path:     "/",
		})
	}
	return respond(c, http.StatusOK, echo.Map{})
}

// Me returns the authenticated user's profile
func (h *UserHandler) Me(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	user, err := h.users.Get(principal.ID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, user)
}

// UpdateMe applies the self-service profile patch
func (h *UserHandler) UpdateMe(c echo.Context) error {
	principal := middleware.GetPrincipal(c)

	var patch store.UserSelfPatch
	if err := c.Bind(&patch); err != nil {
		return respondError(c, store.NewValidationError("body", "invalid request data"))
	}

	user, err := h.users.UpdateSelf(principal.ID, patch)
	if err != nil {
		return respondError(c, err)
	}
	prometheus.RecordOperation("user", "update_self")
	return respond(c, http.StatusOK, user)
}

// DeleteMe deactivates the caller's own account
func (h *UserHandler) DeleteMe(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	if err := h.users.Deactivate(principal.ID); err != nil {
		return respondError(c, err)
	}
	prometheus.RecordOperation("user", "deactivate_self")
	return respondMessage(c, http.StatusOK, "Your account has been deactivated")
}

// ChangePassword verifies the current password and stores the new one
func (h *UserHandler) ChangePassword(c echo.Context) error {
	principal := middleware.GetPrincipal(c)

	var req ChangePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	if err := h.users.ChangePassword(principal.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, http.StatusOK, "Password updated successfully")
}

// List returns all users (admin only)
func (h *UserHandler) List(c echo.Context) error {
	page, _ := parseUint(c.QueryParam("page"))
	limit, _ := parseUint(c.QueryParam("limit"))

	users, pagination, err := h.users.List(int(page), int(limit))
	if err != nil {
		return respondError(c, err)
	}
	prometheus.RecordOperation("user", "list")
	return respondList(c, users, pagination)
}

// Get returns a user by id (admin only)
func (h *UserHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	user, err := h.users.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, user)
}

// Update applies the admin patch to any user (admin only)
func (h *UserHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var patch store.UserAdminPatch
	if err := c.Bind(&patch); err != nil {
		return respondError(c, store.NewValidationError("body", "invalid request data"))
	}

	user, err := h.users.UpdateByAdmin(id, patch)
	if err != nil {
		return respondError(c, err)
	}
	prometheus.RecordOperation("user", "update_admin")
	return respond(c, http.StatusOK, user)
}

// Delete deactivates any user (admin only)
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.users.Deactivate(id); err != nil {
		return respondError(c, err)
	}
	prometheus.RecordOperation("user", "deactivate")
	return respondMessage(c, http.StatusOK, "User deleted (soft delete)")
}
