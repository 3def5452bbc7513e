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
	Insert(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Invoice, error)
	FindType(ctx context.Context, db *gorm.DB, id int64) (*InvoiceType, error)
	List(ctx context.Context, db *gorm.DB, filter ListInvoiceFilter, page pagination.Pagination) ([]Invoice, error)
	Update(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	ListStatuses(ctx context.Context, db *gorm.DB) ([]InvoiceStatus, error)
	ListTypes(ctx context.Context, db *gorm.DB) ([]InvoiceType, error)

	// SumPayments recomputes the settled amount from the payments table;
	// reads prefer it over the stored accumulator.
	SumPayments(ctx context.Context, db *gorm.DB, invoiceID int64) (decimal.Decimal, error)
	// SumPaymentsByInvoice is the grouped form for list reads. Invoices
	// with no payments are absent from the map.
	SumPaymentsByInvoice(ctx context.Context, db *gorm.DB, invoiceIDs []int64) (map[int64]decimal.Decimal, error)

	HasForWorkOrder(ctx context.Context, db *gorm.DB, workOrderID int64) (bool, error)
}

type ListInvoiceFilter struct {
	StatusID  int64
	ClientID  int64
	StartDate *time.Time
	EndDate   *time.Time
}

type ListInvoiceRequest struct {
	StatusID  int64      `form:"status_id"`
	ClientID  int64      `form:"client_id"`
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02"`
	pagination.Pagination
}

type CreateInvoiceRequest struct {
	WorkOrderID   int64           `json:"work_order_id" binding:"required"`
	ClientID      int64           `json:"client_id" binding:"required"`
	InvoiceTypeID int64           `json:"invoice_type_id" binding:"required"`
	StatusID      int64           `json:"status_id" binding:"required"`
	LaborTotal    decimal.Decimal `json:"labor_total"`
	PartsTotal    decimal.Decimal `json:"parts_total"`
	IVA           decimal.Decimal `json:"iva"`
	Total         decimal.Decimal `json:"total" binding:"required"`
	InvoiceNumber string          `json:"invoice_number"`
}

type UpdateInvoiceRequest struct {
	StatusID      *int64  `json:"status_id"`
	InvoiceTypeID *int64  `json:"invoice_type_id"`
	InvoiceNumber *string `json:"invoice_number"`
}

type Service interface {
	Create(ctx context.Context, req CreateInvoiceRequest) (Invoice, error)
	Get(ctx context.Context, id int64) (Invoice, error)
	Detail(ctx context.Context, id int64) (Detail, error)
	List(ctx context.Context, req ListInvoiceRequest) ([]Invoice, error)
	Update(ctx context.Context, id int64, req UpdateInvoiceRequest) (Detail, error)
	MarkAccepted(ctx context.Context, id int64) (Detail, error)
	ListStatuses(ctx context.Context) ([]InvoiceStatus, error)
	ListTypes(ctx context.Context) ([]InvoiceType, error)
}

var (
	ErrNotFound        = errors.New("invoice_not_found")
	ErrInvalidTotal    = errors.New("invalid_invoice_total")
	ErrAlreadyInvoiced = errors.New("work_order_already_invoiced")
)
