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
	InsertPayment(ctx context.Context, db *gorm.DB, payment *Payment) error
	InsertChecks(ctx context.Context, db *gorm.DB, checks []BankCheck) error
	FindPayment(ctx context.Context, db *gorm.DB, id int64) (*Payment, error)
	List(ctx context.Context, db *gorm.DB, filter ListPaymentFilter, page pagination.Pagination) ([]Payment, error)
	TotalByInvoice(ctx context.Context, db *gorm.DB, invoiceID int64) (decimal.Decimal, error)
	ListMethods(ctx context.Context, db *gorm.DB) ([]PaymentMethod, error)
	FindMethod(ctx context.Context, db *gorm.DB, id int64) (*PaymentMethod, error)

	// LockInvoicePaid reads the invoice's paid accumulator under a row
	// lock inside tx; AddInvoicePaid writes it back.
	LockInvoicePaid(ctx context.Context, tx *gorm.DB, invoiceID int64) (decimal.Decimal, error)
	SetInvoicePaid(ctx context.Context, tx *gorm.DB, invoiceID int64, paid decimal.Decimal) error

	FindCheck(ctx context.Context, db *gorm.DB, id int64) (*BankCheck, error)
	SetCheckExchanged(ctx context.Context, db *gorm.DB, id int64, date time.Time) error
}

// DueCheckNotifier alerts people that a check with a due date entered the
// books. Implementations must be safe to fail without affecting payments.
type DueCheckNotifier interface {
	NotifyDueCheck(ctx context.Context, check BankCheck) error
}

type ListPaymentFilter struct {
	InvoiceID int64
	ClientID  int64
	MethodID  int64
}

type ListPaymentRequest struct {
	InvoiceID int64 `form:"invoice_id"`
	ClientID  int64 `form:"client_id"`
	MethodID  int64 `form:"method_id"`
	pagination.Pagination
}

type BankCheckItem struct {
	BankName    string          `json:"bank_name" binding:"required"`
	CheckNumber string          `json:"check_number" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Type        CheckType       `json:"type" binding:"required"`
	DueDate     *time.Time      `json:"due_date" time_format:"2006-01-02"`
}

type CreatePaymentRequest struct {
	InvoiceID  int64           `json:"invoice_id" binding:"required"`
	MethodID   int64           `json:"method_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Reference  string          `json:"reference"`
	Notes      string          `json:"notes"`
	BankChecks []BankCheckItem `json:"bank_checks"`
}

type ExchangeCheckRequest struct {
	// ExchangeDate defaults to today when omitted.
	ExchangeDate *time.Time `json:"exchange_date" time_format:"2006-01-02"`
}

type TotalByInvoiceResponse struct {
	InvoiceID int64           `json:"invoice_id"`
	Total     decimal.Decimal `json:"total"`
}

type Service interface {
	Create(ctx context.Context, req CreatePaymentRequest) (Payment, error)
	ListByInvoice(ctx context.Context, invoiceID int64, page pagination.Pagination) ([]Payment, error)
	List(ctx context.Context, req ListPaymentRequest) ([]Payment, error)
	TotalByInvoice(ctx context.Context, invoiceID int64) (TotalByInvoiceResponse, error)
	ListMethods(ctx context.Context) ([]PaymentMethod, error)
	ExchangeCheck(ctx context.Context, checkID int64, req ExchangeCheckRequest) (BankCheck, error)
}

var (
	ErrNotFound         = errors.New("payment_not_found")
	ErrCheckNotFound    = errors.New("bank_check_not_found")
	ErrInvalidAmount    = errors.New("invalid_payment_amount")
	ErrInvalidCheckType = errors.New("invalid_check_type")
	ErrCheckExchanged   = errors.New("bank_check_already_exchanged")
)
