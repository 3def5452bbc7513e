package domain

import (
	"context"
	"errors"

	authdomain "github.com/fleetline/taller/internal/auth/domain"
	"github.com/fleetline/taller/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, user *User) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*User, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*User, error)
	List(ctx context.Context, db *gorm.DB, filter ListUserFilter, page pagination.Pagination) ([]User, error)
	Update(ctx context.Context, db *gorm.DB, user *User) error
}

type ListUserFilter struct {
	Role   authdomain.Role
	Active *bool
}

type ListUserRequest struct {
	Role   authdomain.Role `form:"role"`
	Active *bool           `form:"active"`
	pagination.Pagination
}

type CreateUserRequest struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required"`
	Password string          `json:"password" binding:"required"`
	Role     authdomain.Role `json:"role" binding:"required"`
}

type UpdateUserRequest struct {
	Name     *string          `json:"name"`
	Email    *string          `json:"email"`
	Password *string          `json:"password"`
	Role     *authdomain.Role `json:"role"`
	Active   *bool            `json:"active"`
}

type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (User, error)
	Get(ctx context.Context, id int64) (User, error)
	List(ctx context.Context, req ListUserRequest) ([]User, error)
	Update(ctx context.Context, id int64, req UpdateUserRequest) (User, error)
	// Deactivate flips active off instead of deleting; task history keeps
	// pointing at the user.
	Deactivate(ctx context.Context, id int64) error
}

var (
	ErrNotFound       = errors.New("user_not_found")
	ErrInvalidEmail   = errors.New("invalid_email")
	ErrInvalidRole    = errors.New("invalid_role")
	ErrWeakPassword   = errors.New("password_too_short")
	ErrDuplicateEmail = errors.New("duplicate_email")
)
