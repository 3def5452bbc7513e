package repository

import (
	"context"
	"time"

	"github.com/fleetline/taller/internal/payment/domain"
	"github.com/fleetline/taller/pkg/db/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertPayment(ctx context.Context, db *gorm.DB, payment *domain.Payment) error {
	return db.WithContext(ctx).Omit("Method", "BankChecks").Create(payment).Error
}

func (r *repo) InsertChecks(ctx context.Context, db *gorm.DB, checks []domain.BankCheck) error {
	if len(checks) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&checks).Error
}

func (r *repo) FindPayment(ctx context.Context, db *gorm.DB, id int64) (*domain.Payment, error) {
	var payment domain.Payment
	err := db.WithContext(ctx).
		Preload("Method").
		Preload("BankChecks").
		First(&payment, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListPaymentFilter, page pagination.Pagination) ([]domain.Payment, error) {
	var payments []domain.Payment
	stmt := db.WithContext(ctx).Model(&domain.Payment{}).
		Preload("Method").
		Preload("BankChecks")
	if filter.InvoiceID != 0 {
		stmt = stmt.Where("payments.invoice_id = ?", filter.InvoiceID)
	}
	if filter.MethodID != 0 {
		stmt = stmt.Where("payments.method_id = ?", filter.MethodID)
	}
	if filter.ClientID != 0 {
		stmt = stmt.
			Joins("JOIN invoices ON invoices.id = payments.invoice_id").
			Where("invoices.client_id = ?", filter.ClientID)
	}
	err := page.Apply(stmt).
		Order("payments.date desc, payments.id desc").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repo) TotalByInvoice(ctx context.Context, db *gorm.DB, invoiceID int64) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := db.WithContext(ctx).Model(&domain.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("invoice_id = ?", invoiceID).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total.Decimal, nil
}

func (r *repo) ListMethods(ctx context.Context, db *gorm.DB) ([]domain.PaymentMethod, error) {
	var methods []domain.PaymentMethod
	err := db.WithContext(ctx).Order("id asc").Find(&methods).Error
	if err != nil {
		return nil, err
	}
	return methods, nil
}

func (r *repo) FindMethod(ctx context.Context, db *gorm.DB, id int64) (*domain.PaymentMethod, error) {
	var method domain.PaymentMethod
	err := db.WithContext(ctx).First(&method, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &method, nil
}

func (r *repo) LockInvoicePaid(ctx context.Context, tx *gorm.DB, invoiceID int64) (decimal.Decimal, error) {
	var row struct {
		ID   int64
		Paid decimal.NullDecimal
	}
	stmt := tx.WithContext(ctx).Table("invoices").
		Select("id, paid").
		Where("id = ?", invoiceID)
	// SQLite has a single writer and no FOR UPDATE grammar; the row lock
	// only matters on server databases.
	if tx.Dialector.Name() != "sqlite" {
		stmt = stmt.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := stmt.Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	if row.ID == 0 {
		return decimal.Zero, gorm.ErrRecordNotFound
	}
	return row.Paid.Decimal, nil
}

func (r *repo) SetInvoicePaid(ctx context.Context, tx *gorm.DB, invoiceID int64, paid decimal.Decimal) error {
	return tx.WithContext(ctx).Table("invoices").
		Where("id = ?", invoiceID).
		Update("paid", paid).Error
}

func (r *repo) FindCheck(ctx context.Context, db *gorm.DB, id int64) (*domain.BankCheck, error) {
	var check domain.BankCheck
	err := db.WithContext(ctx).First(&check, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &check, nil
}

func (r *repo) SetCheckExchanged(ctx context.Context, db *gorm.DB, id int64, date time.Time) error {
	return db.WithContext(ctx).Model(&domain.BankCheck{}).
		Where("id = ?", id).
		Update("exchange_date", date).Error
}
