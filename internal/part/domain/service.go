package domain

import (
	"context"
	"errors"

	"github.com/fleetline/taller/pkg/db/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, part *Part) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Part, error)
	List(ctx context.Context, db *gorm.DB, name string, page pagination.Pagination) ([]Part, error)
	Update(ctx context.Context, db *gorm.DB, part *Part) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}

type ListPartRequest struct {
	Name string `form:"name"`
	pagination.Pagination
}

type CreatePartRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Cost        decimal.Decimal `json:"cost" binding:"required"`
}

type UpdatePartRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Cost        *decimal.Decimal `json:"cost"`
}

type Service interface {
	Create(ctx context.Context, req CreatePartRequest) (Part, error)
	Get(ctx context.Context, id int64) (Part, error)
	List(ctx context.Context, req ListPartRequest) ([]Part, error)
	Update(ctx context.Context, id int64, req UpdatePartRequest) (Part, error)
	Delete(ctx context.Context, id int64) error
}

var (
	ErrNotFound     = errors.New("part_not_found")
	ErrInvalidName  = errors.New("invalid_part_name")
	ErrInvalidPrice = errors.New("invalid_part_price")
)
