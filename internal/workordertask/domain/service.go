package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, task *WorkOrderTask) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*WorkOrderTask, error)
	ListByOrder(ctx context.Context, db *gorm.DB, workOrderID int64) ([]WorkOrderTask, error)
	Update(ctx context.Context, db *gorm.DB, task *WorkOrderTask) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error

	// ListFiltered and Aggregate must apply the identical predicate so the
	// itemized view and the summary never disagree.
	ListFiltered(ctx context.Context, db *gorm.DB, filter EarningsFilter) ([]WorkOrderTask, error)
	Aggregate(ctx context.Context, db *gorm.DB, filter EarningsFilter) (EarningsSummary, error)

	BulkMarkPaid(ctx context.Context, db *gorm.DB, taskIDs []int64, paid bool, paidAt *time.Time) (int64, error)
}

type EarningsFilter struct {
	AreaID        int64
	Paid          *bool
	From          *time.Time
	To            *time.Time
	OnlyFinalized bool
	External      *bool
}

type EarningsRequest struct {
	AreaID        int64      `form:"area_id" binding:"required"`
	Paid          *bool      `form:"paid"`
	From          *time.Time `form:"from" time_format:"2006-01-02"`
	To            *time.Time `form:"to" time_format:"2006-01-02"`
	OnlyFinalized bool       `form:"only_finalized"`
	External      *bool      `form:"external"`
}

type UserEarnings struct {
	UserID      int64           `json:"user_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Count       int64           `json:"count"`
}

type EarningsSummary struct {
	TotalAmount decimal.Decimal `json:"total_amount"`
	Count       int64           `json:"count"`
	ByUser      []UserEarnings  `json:"by_user"`
}

// EarningsResponse echoes the requested filters back alongside the
// itemized tasks so clients can label the report they asked for.
type EarningsResponse struct {
	AreaID        int64      `json:"area_id"`
	Paid          *bool      `json:"paid"`
	From          *time.Time `json:"from"`
	To            *time.Time `json:"to"`
	OnlyFinalized bool       `json:"only_finalized"`
	External      *bool      `json:"external"`
	EarningsSummary
	Tasks []WorkOrderTask `json:"tasks"`
}

type CreateTaskRequest struct {
	WorkOrderID int64           `json:"work_order_id" binding:"required"`
	UserID      int64           `json:"user_id" binding:"required"`
	Description string          `json:"description" binding:"required"`
	AreaID      int64           `json:"area_id" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	External    bool            `json:"external"`
}

type UpdateTaskRequest struct {
	UserID      *int64           `json:"user_id"`
	Description *string          `json:"description"`
	AreaID      *int64           `json:"area_id"`
	Price       *decimal.Decimal `json:"price"`
	External    *bool            `json:"external"`
}

type MarkPaidRequest struct {
	TaskIDs []int64    `json:"task_ids" binding:"required"`
	Paid    bool       `json:"paid"`
	PaidAt  *time.Time `json:"paid_at"`
}

type MarkPaidResponse struct {
	Updated int64 `json:"updated"`
}

type Service interface {
	Create(ctx context.Context, req CreateTaskRequest) (WorkOrderTask, error)
	ListByOrder(ctx context.Context, workOrderID int64) ([]WorkOrderTask, error)
	Update(ctx context.Context, id int64, req UpdateTaskRequest) (WorkOrderTask, error)
	Delete(ctx context.Context, id int64) error
	Earnings(ctx context.Context, req EarningsRequest) (EarningsResponse, error)
	MarkPaid(ctx context.Context, req MarkPaidRequest) (MarkPaidResponse, error)
}

var (
	ErrNotFound     = errors.New("task_not_found")
	ErrInvalidPrice = errors.New("invalid_task_price")
	ErrNoTaskIDs    = errors.New("no_task_ids")
)
