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
	InsertType(ctx context.Context, db *gorm.DB, t *ExpenseType) error
	ListTypes(ctx context.Context, db *gorm.DB) ([]ExpenseType, error)
	Insert(ctx context.Context, db *gorm.DB, expense *Expense) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Expense, error)
	List(ctx context.Context, db *gorm.DB, filter ListExpenseFilter, page pagination.Pagination) ([]Expense, error)
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}

type ListExpenseFilter struct {
	ExpenseTypeID int64
	From          *time.Time
	To            *time.Time
}

type ListExpenseRequest struct {
	ExpenseTypeID int64      `form:"expense_type_id"`
	From          *time.Time `form:"from" time_format:"2006-01-02"`
	To            *time.Time `form:"to" time_format:"2006-01-02"`
	pagination.Pagination
}

type CreateExpenseTypeRequest struct {
	Name string `json:"name" binding:"required"`
}

type CreateExpenseRequest struct {
	Date          time.Time       `json:"date" binding:"required" time_format:"2006-01-02"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Description   string          `json:"description"`
	ExpenseTypeID *int64          `json:"expense_type_id"`
}

type Service interface {
	CreateType(ctx context.Context, req CreateExpenseTypeRequest) (ExpenseType, error)
	ListTypes(ctx context.Context) ([]ExpenseType, error)
	Create(ctx context.Context, req CreateExpenseRequest) (Expense, error)
	List(ctx context.Context, req ListExpenseRequest) ([]Expense, error)
	Delete(ctx context.Context, id int64) error
}

var (
	ErrNotFound      = errors.New("expense_not_found")
	ErrInvalidAmount = errors.New("invalid_expense_amount")
	ErrDuplicateType = errors.New("duplicate_expense_type")
)
