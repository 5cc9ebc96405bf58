package middleware

import (
	"net/http"
	"strings"

	"github.com/Nethupa05/Hardware-Backend/internal/auth"
	"github.com/Nethupa05/Hardware-Backend/pkg/logger"
	"github.com/Nethupa05/Hardware-Backend/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const principalKey = "principal"

// TokenCookieName is the cookie that mirrors the bearer token
const TokenCookieName = "token"

// extractToken pulls the bearer token from the Authorization header,
// falling back to the token cookie
func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}
	if cookie, err := c.Cookie(TokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return ""
}

// Auth validates the credential and stores the principal on the context.
// Requests without a valid, active identity are rejected with 401.
func Auth(a *auth.Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			token := extractToken(c)
			if token == "" {
				log.Warn("Missing authorization token")
				prometheus.RecordAuthError("missing_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"error":   echo.Map{"kind": "unauthorized", "message": "missing authorization token"},
				})
			}

			principal, err := a.Authenticate(token)
			if err != nil {
				log.Warn("Invalid or expired credential", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"error":   echo.Map{"kind": "unauthorized", "message": "invalid or expired token"},
				})
			}

			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

// OptionalAuth resolves a principal when a valid credential is present
// but lets anonymous requests through. Used on endpoints that are public
// yet behave differently for admins.
func OptionalAuth(a *auth.Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := extractToken(c); token != "" {
				if principal, err := a.Authenticate(token); err == nil {
					c.Set(principalKey, principal)
				}
			}
			return next(c)
		}
	}
}

// RequireRoles rejects principals whose role is not in the allowed set
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := GetPrincipal(c)
			if err := auth.RequireRole(principal, roles...); err != nil {
				logger.FromContext(c).Warn("Insufficient privilege",
					zap.String("path", c.Request().URL.Path))
				prometheus.RecordAuthError("forbidden")
				return c.JSON(http.StatusForbidden, echo.Map{
					"success": false,
					"error":   echo.Map{"kind": "forbidden", "message": "insufficient privilege"},
				})
			}
			return next(c)
		}
	}
}

// GetPrincipal returns the authenticated principal from the context, or
// nil for anonymous requests
func GetPrincipal(c echo.Context) *auth.Principal {
	principal, ok := c.Get(principalKey).(*auth.Principal)
	if !ok {
		return nil
	}
	return principal
}
