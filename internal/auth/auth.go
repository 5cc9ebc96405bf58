// Package auth implements the authorization gate: it turns a bearer token
// into an authenticated principal and decides per-action access. All
// decisions are stateless and evaluated fresh per request.
package auth

import (
	"errors"
	"strings"

	"github.com/Nethupa05/Hardware-Backend/internal/model"
	"github.com/Nethupa05/Hardware-Backend/pkg/jwtutil"
	"gorm.io/gorm"
)

var (
	// ErrUnauthorized means the credential is missing, invalid, expired,
	// or belongs to a deactivated or deleted account.
	ErrUnauthorized = errors.New("not authorized")

	// ErrForbidden means the credential is valid but the principal lacks
	// the required privilege.
	ErrForbidden = errors.New("forbidden")
)

// Principal is the authenticated identity derived from a verified token.
type Principal struct {
	ID    uint
	Email string
	Role  string
}

// IsAdmin reports whether the principal holds the admin role
func (p *Principal) IsAdmin() bool {
	return p.Role == model.RoleAdmin
}

// Authenticator verifies tokens and resolves them to principals.
type Authenticator struct {
	db  *gorm.DB
	jwt *jwtutil.JWTUtil
}

// NewAuthenticator creates an authenticator over the given database and
// token utility
func NewAuthenticator(db *gorm.DB, jwt *jwtutil.JWTUtil) *Authenticator {
	return &Authenticator{db: db, jwt: jwt}
}

// Authenticate verifies the token and loads the account behind it.
// The token itself carries no role or active flag; both are read from the
// store so that deactivation and role changes take effect immediately.
func (a *Authenticator) Authenticate(token string) (*Principal, error) {
	claims, err := a.jwt.ValidateToken(token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	var user model.User
	if err := a.db.First(&user, claims.UserID).Error; err != nil {
		return nil, ErrUnauthorized
	}
	if !user.IsActive {
		return nil, ErrUnauthorized
	}

	return &Principal{ID: user.ID, Email: user.Email, Role: user.Role}, nil
}

// RequireRole allows the request iff the principal holds one of the given
// roles
func RequireRole(p *Principal, roles ...string) error {
	if p == nil {
		return ErrUnauthorized
	}
	for _, role := range roles {
		if p.Role == role {
			return nil
		}
	}
	return ErrForbidden
}

// RequireOwnerOrAdmin allows admins and the resource owner
func RequireOwnerOrAdmin(p *Principal, ownerID uint) error {
	if p == nil {
		return ErrUnauthorized
	}
	if p.IsAdmin() || p.ID == ownerID {
		return nil
	}
	return ErrForbidden
}

// OwnsByIDOrEmail reports ownership by creator reference or by requester
// email. Used for quotations, which may be submitted anonymously and
// claimed later by the account with the matching email. Reservations use
// creator id only.
func OwnsByIDOrEmail(p *Principal, ownerID *uint, email string) bool {
	if p == nil {
		return false
	}
	if ownerID != nil && *ownerID == p.ID {
		return true
	}
	return strings.EqualFold(email, p.Email)
}
