package repository

import (
	"context"

	"github.com/fleetline/taller/internal/invoice/domain"
	"github.com/fleetline/taller/pkg/db/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Create(invoice).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).First(&invoice, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *repo) FindType(ctx context.Context, db *gorm.DB, id int64) (*domain.InvoiceType, error) {
	var t domain.InvoiceType
	err := db.WithContext(ctx).First(&t, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListInvoiceFilter, page pagination.Pagination) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	stmt := db.WithContext(ctx).Model(&domain.Invoice{})
	if filter.StatusID != 0 {
		stmt = stmt.Where("status_id = ?", filter.StatusID)
	}
	if filter.ClientID != 0 {
		stmt = stmt.Where("client_id = ?", filter.ClientID)
	}
	if filter.StartDate != nil {
		stmt = stmt.Where("issued_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		stmt = stmt.Where("issued_at <= ?", *filter.EndDate)
	}
	err := page.Apply(stmt).
		Order("issued_at desc, id desc").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Save(invoice).Error
}

func (r *repo) ListStatuses(ctx context.Context, db *gorm.DB) ([]domain.InvoiceStatus, error) {
	var statuses []domain.InvoiceStatus
	err := db.WithContext(ctx).Order("id asc").Find(&statuses).Error
	if err != nil {
		return nil, err
	}
	return statuses, nil
}

func (r *repo) ListTypes(ctx context.Context, db *gorm.DB) ([]domain.InvoiceType, error) {
	var types []domain.InvoiceType
	err := db.WithContext(ctx).Order("id asc").Find(&types).Error
	if err != nil {
		return nil, err
	}
	return types, nil
}

func (r *repo) HasForWorkOrder(ctx context.Context, db *gorm.DB, workOrderID int64) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.Invoice{}).
		Where("work_order_id = ?", workOrderID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) SumPayments(ctx context.Context, db *gorm.DB, invoiceID int64) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := db.WithContext(ctx).Table("payments").
		Select("COALESCE(SUM(amount), 0)").
		Where("invoice_id = ?", invoiceID).
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}

func (r *repo) SumPaymentsByInvoice(ctx context.Context, db *gorm.DB, invoiceIDs []int64) (map[int64]decimal.Decimal, error) {
	if len(invoiceIDs) == 0 {
		return map[int64]decimal.Decimal{}, nil
	}

	var rows []struct {
		InvoiceID int64
		Total     decimal.Decimal
	}
	err := db.WithContext(ctx).Table("payments").
		Select("invoice_id, COALESCE(SUM(amount), 0) AS total").
		Where("invoice_id IN ?", invoiceIDs).
		Group("invoice_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sums := make(map[int64]decimal.Decimal, len(rows))
	for _, row := range rows {
		sums[row.InvoiceID] = row.Total
	}
	return sums, nil
}
