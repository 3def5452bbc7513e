package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	InsertArea(ctx context.Context, db *gorm.DB, area *WorkArea) error
	ListAreas(ctx context.Context, db *gorm.DB) ([]WorkArea, error)
	Insert(ctx context.Context, db *gorm.DB, assignment *WorkOrderMechanic) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*WorkOrderMechanic, error)
	ListByOrder(ctx context.Context, db *gorm.DB, workOrderID int64) ([]WorkOrderMechanic, error)
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}

type CreateWorkAreaRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type AssignMechanicRequest struct {
	WorkOrderID int64  `json:"work_order_id" binding:"required"`
	UserID      int64  `json:"user_id" binding:"required"`
	AreaID      int64  `json:"area_id" binding:"required"`
	Notes       string `json:"notes"`
}

type Service interface {
	CreateArea(ctx context.Context, req CreateWorkAreaRequest) (WorkArea, error)
	ListAreas(ctx context.Context) ([]WorkArea, error)
	Assign(ctx context.Context, req AssignMechanicRequest) (WorkOrderMechanic, error)
	ListByOrder(ctx context.Context, workOrderID int64) ([]WorkOrderMechanic, error)
	Remove(ctx context.Context, id int64) error
}

var (
	ErrNotFound      = errors.New("mechanic_assignment_not_found")
	ErrDuplicateArea = errors.New("duplicate_work_area")
)
