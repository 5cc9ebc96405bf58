package model

import (
	"time"
)

// User roles
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User represents a user account. Deactivated accounts keep their row
// (soft delete via IsActive) so historical references stay resolvable.
type User struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	FullName  string     `json:"full_name" gorm:"type:varchar(100);not null"`
	Email     string     `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Phone     string     `json:"phone" gorm:"type:varchar(20)"`
	Password  string     `json:"-" gorm:"type:varchar(255);not null"`
	Role      string     `json:"role" gorm:"type:varchar(20);default:customer"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
