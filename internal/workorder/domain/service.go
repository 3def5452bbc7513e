package domain

import (
	"context"
	"errors"
	"time"

	"github.com/fleetline/taller/pkg/db/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, order *WorkOrder) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*WorkOrder, error)
	List(ctx context.Context, db *gorm.DB, filter ListWorkOrderFilter, page pagination.Pagination) ([]WorkOrder, error)
	Update(ctx context.Context, db *gorm.DB, order *WorkOrder) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error
	ListStatuses(ctx context.Context, db *gorm.DB) ([]WorkOrderStatus, error)

	// HasInvoice probes the invoices table without loading rows; it backs
	// the editability gate.
	HasInvoice(ctx context.Context, db *gorm.DB, workOrderID int64) (bool, error)

	PartLines(ctx context.Context, db *gorm.DB, workOrderID int64) ([]PartLine, error)
	TaskLines(ctx context.Context, db *gorm.DB, workOrderID int64) ([]TaskLine, error)
}

type ListWorkOrderFilter struct {
	StatusID  int64
	ClientID  int64
	TruckID   int64
	StartDate *time.Time
	EndDate   *time.Time
}

type ListWorkOrderRequest struct {
	StatusID  int64      `form:"status_id"`
	ClientID  int64      `form:"client_id"`
	TruckID   int64      `form:"truck_id"`
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02"`
	pagination.Pagination
}

type CreateWorkOrderRequest struct {
	ClientID   int64  `json:"client_id" binding:"required"`
	TruckID    int64  `json:"truck_id" binding:"required"`
	StatusID   int64  `json:"status_id" binding:"required"`
	ReviewedBy *int64 `json:"reviewed_by"`
	Notes      string `json:"notes"`
}

type UpdateWorkOrderRequest struct {
	StatusID *int64  `json:"status_id"`
	Notes    *string `json:"notes"`
}

type TotalResponse struct {
	WorkOrderID int64           `json:"work_order_id"`
	Total       decimal.Decimal `json:"total"`
}

type Service interface {
	Create(ctx context.Context, req CreateWorkOrderRequest) (WorkOrder, error)
	Get(ctx context.Context, id int64) (WorkOrder, error)
	List(ctx context.Context, req ListWorkOrderRequest) ([]WorkOrder, error)
	Update(ctx context.Context, id int64, req UpdateWorkOrderRequest) (WorkOrder, error)
	Delete(ctx context.Context, id int64) error
	ListStatuses(ctx context.Context) ([]WorkOrderStatus, error)

	AssignReviewer(ctx context.Context, workOrderID, reviewerID int64) (WorkOrder, error)
	RemoveReviewer(ctx context.Context, workOrderID, reviewerID int64) (WorkOrder, error)

	Total(ctx context.Context, id int64) (TotalResponse, error)

	// IsEditable reports whether the order can still take task/part
	// mutations. Line-item services consult it before writing.
	IsEditable(ctx context.Context, id int64) (bool, error)
}

var (
	ErrNotFound            = errors.New("work_order_not_found")
	ErrReviewerNotAssigned = errors.New("reviewer_not_assigned_to_order")
	// ErrOrderInvoiced rejects task/part mutations once an invoice
	// references the order.
	ErrOrderInvoiced = errors.New("work_order_already_invoiced")
)
