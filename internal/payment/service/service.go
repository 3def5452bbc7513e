package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/fleetline/taller/internal/clock"
	invoicedomain "github.com/fleetline/taller/internal/invoice/domain"
	"github.com/fleetline/taller/internal/observability/metrics"
	"github.com/fleetline/taller/internal/payment/domain"
	"github.com/fleetline/taller/internal/refcheck"
	"github.com/fleetline/taller/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     domain.Repository
	Notifier domain.DueCheckNotifier
	Metrics  *metrics.Metrics
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     domain.Repository
	notifier domain.DueCheckNotifier
	metrics  *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("payment.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		notifier: p.Notifier,
		metrics:  p.Metrics,
	}
}

// Create records a payment and accrues it onto the invoice in one
// transaction. The invoice row is locked for the read-modify-write so two
// concurrent payments cannot both start from the same paid value.
func (s *Service) Create(ctx context.Context, req domain.CreatePaymentRequest) (domain.Payment, error) {
	if !req.Amount.IsPositive() {
		return domain.Payment{}, domain.ErrInvalidAmount
	}
	for _, item := range req.BankChecks {
		if !item.Type.Valid() {
			return domain.Payment{}, domain.ErrInvalidCheckType
		}
	}
	if err := refcheck.Ensure(ctx, s.db,
		refcheck.Required("invoice", &invoicedomain.Invoice{}, req.InvoiceID),
		refcheck.Required("payment_method", &domain.PaymentMethod{}, req.MethodID),
	); err != nil {
		return domain.Payment{}, err
	}

	now := s.clock.Now().UTC()
	payment := domain.Payment{
		ID:        s.genID.Generate().Int64(),
		InvoiceID: req.InvoiceID,
		MethodID:  req.MethodID,
		Amount:    req.Amount,
		Date:      now,
		Reference: strings.TrimSpace(req.Reference),
		Notes:     strings.TrimSpace(req.Notes),
	}
	checks := make([]domain.BankCheck, 0, len(req.BankChecks))
	for _, item := range req.BankChecks {
		checks = append(checks, domain.BankCheck{
			ID:          s.genID.Generate().Int64(),
			PaymentID:   payment.ID,
			BankName:    strings.TrimSpace(item.BankName),
			CheckNumber: strings.TrimSpace(item.CheckNumber),
			Amount:      item.Amount,
			Type:        item.Type,
			IssuedAt:    now,
			DueDate:     item.DueDate,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.InsertPayment(ctx, tx, &payment); err != nil {
			return err
		}
		if err := s.repo.InsertChecks(ctx, tx, checks); err != nil {
			return err
		}
		paid, err := s.repo.LockInvoicePaid(ctx, tx, req.InvoiceID)
		if err != nil {
			return err
		}
		return s.repo.SetInvoicePaid(ctx, tx, req.InvoiceID, paid.Add(req.Amount))
	})
	if err != nil {
		return domain.Payment{}, err
	}

	methodName := "unknown"
	if method, err := s.repo.FindMethod(ctx, s.db, req.MethodID); err == nil && method != nil {
		methodName = method.Name
	}
	s.metrics.RecordPayment(methodName)
	s.log.Info("payment recorded",
		zap.Int64("payment_id", payment.ID),
		zap.Int64("invoice_id", payment.InvoiceID),
		zap.String("amount", payment.Amount.String()),
		zap.Int("bank_checks", len(checks)),
	)

	// Maturity notices are best effort; a failure here never unwinds the
	// committed payment.
	for _, check := range checks {
		if check.DueDate == nil {
			continue
		}
		if err := s.notifier.NotifyDueCheck(ctx, check); err != nil {
			s.log.Warn("due check notification failed",
				zap.Int64("check_id", check.ID),
				zap.Error(err),
			)
		}
	}

	created, err := s.repo.FindPayment(ctx, s.db, payment.ID)
	if err != nil {
		return domain.Payment{}, err
	}
	if created == nil {
		return domain.Payment{}, domain.ErrNotFound
	}
	return *created, nil
}

func (s *Service) ListByInvoice(ctx context.Context, invoiceID int64, page pagination.Pagination) ([]domain.Payment, error) {
	return s.repo.List(ctx, s.db, domain.ListPaymentFilter{InvoiceID: invoiceID}, page)
}

func (s *Service) List(ctx context.Context, req domain.ListPaymentRequest) ([]domain.Payment, error) {
	filter := domain.ListPaymentFilter{
		InvoiceID: req.InvoiceID,
		ClientID:  req.ClientID,
		MethodID:  req.MethodID,
	}
	return s.repo.List(ctx, s.db, filter, req.Pagination)
}

func (s *Service) TotalByInvoice(ctx context.Context, invoiceID int64) (domain.TotalByInvoiceResponse, error) {
	total, err := s.repo.TotalByInvoice(ctx, s.db, invoiceID)
	if err != nil {
		return domain.TotalByInvoiceResponse{}, err
	}
	return domain.TotalByInvoiceResponse{InvoiceID: invoiceID, Total: total}, nil
}

func (s *Service) ListMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	return s.repo.ListMethods(ctx, s.db)
}

// ExchangeCheck stamps the cash-in date on a check, defaulting to today.
// The transition is one way; a second exchange is rejected.
func (s *Service) ExchangeCheck(ctx context.Context, checkID int64, req domain.ExchangeCheckRequest) (domain.BankCheck, error) {
	check, err := s.repo.FindCheck(ctx, s.db, checkID)
	if err != nil {
		return domain.BankCheck{}, err
	}
	if check == nil {
		return domain.BankCheck{}, domain.ErrCheckNotFound
	}
	if check.ExchangeDate != nil {
		return domain.BankCheck{}, domain.ErrCheckExchanged
	}

	date := s.clock.Now().UTC()
	if req.ExchangeDate != nil {
		date = *req.ExchangeDate
	}
	if err := s.repo.SetCheckExchanged(ctx, s.db, checkID, date); err != nil {
		return domain.BankCheck{}, err
	}
	check.ExchangeDate = &date
	return *check, nil
}
