package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, part *WorkOrderPart) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*WorkOrderPart, error)
	ListByOrder(ctx context.Context, db *gorm.DB, workOrderID int64) ([]WorkOrderPart, error)
	Update(ctx context.Context, db *gorm.DB, part *WorkOrderPart) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}

type CreateWorkOrderPartRequest struct {
	WorkOrderID      int64            `json:"work_order_id" binding:"required"`
	PartID           int64            `json:"part_id" binding:"required"`
	Quantity         int              `json:"quantity" binding:"required"`
	IncrementPerUnit *decimal.Decimal `json:"increment_per_unit"`
	UnitPrice        decimal.Decimal  `json:"unit_price" binding:"required"`
}

type UpdateWorkOrderPartRequest struct {
	WorkOrderID      *int64           `json:"work_order_id"`
	PartID           *int64           `json:"part_id"`
	Quantity         *int             `json:"quantity"`
	IncrementPerUnit *decimal.Decimal `json:"increment_per_unit"`
	UnitPrice        *decimal.Decimal `json:"unit_price"`
}

type Service interface {
	Create(ctx context.Context, req CreateWorkOrderPartRequest) (WorkOrderPart, error)
	ListByOrder(ctx context.Context, workOrderID int64) ([]WorkOrderPart, error)
	Update(ctx context.Context, id int64, req UpdateWorkOrderPartRequest) (WorkOrderPart, error)
	Delete(ctx context.Context, id int64) error
}

var (
	ErrNotFound        = errors.New("work_order_part_not_found")
	ErrInvalidQuantity = errors.New("invalid_part_quantity")
	ErrInvalidPrice    = errors.New("invalid_unit_price")
)
