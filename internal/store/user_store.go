package store

import (
	"errors"
	"strings"
	"time"

	"github.com/Nethupa05/Hardware-Backend/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

// UserStore persists user accounts and verifies credentials.
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a user store
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Register creates a user account. The email is case-folded before the
// uniqueness check; the password is stored hashed and never serialized.
func (s *UserStore) Register(u *model.User, password string) error {
	fields := map[string]string{}
	if strings.TrimSpace(u.FullName) == "" {
		fields["full_name"] = "full name is required"
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Email == "" {
		fields["email"] = "email is required"
	}
	if len(password) < 6 {
		fields["password"] = "password must be at least 6 characters"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	if u.Role == "" {
		u.Role = model.RoleCustomer
	}
	u.IsActive = true

	var count int64
	s.db.Model(&model.User{}).Where("email = ?", u.Email).Count(&count)
	if count > 0 {
		return ErrConflict
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)

	if err := s.db.Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return err
	}
	return nil
}

// Authenticate verifies credentials and records the login time.
// A deactivated account is rejected even with a correct password.
func (s *UserStore) Authenticate(email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user model.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.db.Model(&user).Update("last_login", now).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Get retrieves a user by id
func (s *UserStore) Get(id uint) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by case-folded email
func (s *UserStore) GetByEmail(email string) (*model.User, error) {
	var user model.User
	err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// List returns users with pagination
func (s *UserStore) List(page, limit int) ([]model.User, *Pagination, error) {
	page, limit = normalizePage(page, limit)

	var total int64
	if err := s.db.Model(&model.User{}).Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var users []model.User
	err := s.db.
		Order("created_at desc").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&users).Error
	if err != nil {
		return nil, nil, err
	}
	return users, newPagination(page, limit, total), nil
}

// UserSelfPatch is the set of fields a user may change on their own
// account. Role and active flag are not expressible here.
type UserSelfPatch struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
}

// UserAdminPatch is the set of fields an admin may change on any account.
type UserAdminPatch struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// UpdateSelf applies a self-service profile patch
func (s *UserStore) UpdateSelf(id uint, patch UserSelfPatch) (*model.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if patch.FullName != nil {
		user.FullName = *patch.FullName
	}
	if patch.Phone != nil {
		user.Phone = *patch.Phone
	}
	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateByAdmin applies an admin patch, which may also change role and
// active state
func (s *UserStore) UpdateByAdmin(id uint, patch UserAdminPatch) (*model.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if patch.FullName != nil {
		user.FullName = *patch.FullName
	}
	if patch.Phone != nil {
		user.Phone = *patch.Phone
	}
	if patch.Role != nil {
		if *patch.Role != model.RoleCustomer && *patch.Role != model.RoleAdmin {
			return nil, NewValidationError("role", "role must be customer or admin")
		}
		user.Role = *patch.Role
	}
	if patch.IsActive != nil {
		user.IsActive = *patch.IsActive
	}
	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password before storing a new hash
func (s *UserStore) ChangePassword(id uint, current, updated string) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}
	if len(updated) < 6 {
		return NewValidationError("password", "password must be at least 6 characters")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(updated), bcryptCost)
	if err != nil {
		return err
	}
	return s.db.Model(user).Update("password", string(hashed)).Error
}

// Deactivate soft-deletes the account; the row stays for ownership checks
func (s *UserStore) Deactivate(id uint) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.db.Model(user).Update("is_active", false).Error
}
