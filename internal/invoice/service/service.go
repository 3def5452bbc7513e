package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/fleetline/taller/internal/client/domain"
	"github.com/fleetline/taller/internal/clock"
	"github.com/fleetline/taller/internal/invoice/domain"
	"github.com/fleetline/taller/internal/observability/metrics"
	"github.com/fleetline/taller/internal/refcheck"
	workorderdomain "github.com/fleetline/taller/internal/workorder/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    domain.Repository
	Metrics *metrics.Metrics
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    domain.Repository
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("invoice.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceRequest) (domain.Invoice, error) {
	if req.Total.IsNegative() {
		return domain.Invoice{}, domain.ErrInvalidTotal
	}
	if err := refcheck.Ensure(ctx, s.db,
		refcheck.Required("work_order", &workorderdomain.WorkOrder{}, req.WorkOrderID),
		refcheck.Required("client", &clientdomain.Client{}, req.ClientID),
		refcheck.Required("invoice_type", &domain.InvoiceType{}, req.InvoiceTypeID),
		refcheck.Required("invoice_status", &domain.InvoiceStatus{}, req.StatusID),
	); err != nil {
		return domain.Invoice{}, err
	}

	// One invoice per work order; issuing it also freezes the order's
	// task and part lines.
	invoiced, err := s.repo.HasForWorkOrder(ctx, s.db, req.WorkOrderID)
	if err != nil {
		return domain.Invoice{}, err
	}
	if invoiced {
		return domain.Invoice{}, domain.ErrAlreadyInvoiced
	}

	invoice := domain.Invoice{
		ID:            s.genID.Generate().Int64(),
		WorkOrderID:   req.WorkOrderID,
		ClientID:      req.ClientID,
		InvoiceTypeID: req.InvoiceTypeID,
		StatusID:      req.StatusID,
		LaborTotal:    req.LaborTotal,
		PartsTotal:    req.PartsTotal,
		IVA:           req.IVA,
		Total:         req.Total,
		IssuedAt:      s.clock.Now().UTC(),
		Paid:          decimal.Zero,
		InvoiceNumber: strings.TrimSpace(req.InvoiceNumber),
	}
	if err := s.repo.Insert(ctx, s.db, &invoice); err != nil {
		return domain.Invoice{}, err
	}

	s.metrics.RecordInvoiceIssued()
	s.log.Info("invoice issued",
		zap.Int64("invoice_id", invoice.ID),
		zap.Int64("work_order_id", invoice.WorkOrderID),
		zap.String("total", invoice.Total.String()),
	)
	return invoice, nil
}

func (s *Service) Get(ctx context.Context, id int64) (domain.Invoice, error) {
	invoice, err := s.loadInvoice(ctx, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	return *invoice, nil
}

func (s *Service) Detail(ctx context.Context, id int64) (domain.Detail, error) {
	invoice, err := s.loadInvoice(ctx, id)
	if err != nil {
		return domain.Detail{}, err
	}
	return s.project(ctx, *invoice)
}

func (s *Service) List(ctx context.Context, req domain.ListInvoiceRequest) ([]domain.Invoice, error) {
	filter := domain.ListInvoiceFilter{
		StatusID:  req.StatusID,
		ClientID:  req.ClientID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	invoices, err := s.repo.List(ctx, s.db, filter, req.Pagination)
	if err != nil {
		return nil, err
	}

	// Same Paid refresh as single-invoice reads, one grouped query for
	// the whole page.
	ids := make([]int64, len(invoices))
	for i := range invoices {
		ids[i] = invoices[i].ID
	}
	sums, err := s.repo.SumPaymentsByInvoice(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		if paid, ok := sums[invoices[i].ID]; ok {
			invoices[i].Paid = paid
		} else {
			invoices[i].Paid = decimal.Zero
		}
	}
	return invoices, nil
}

func (s *Service) Update(ctx context.Context, id int64, req domain.UpdateInvoiceRequest) (domain.Detail, error) {
	invoice, err := s.loadInvoice(ctx, id)
	if err != nil {
		return domain.Detail{}, err
	}

	if req.StatusID != nil {
		if err := refcheck.Ensure(ctx, s.db,
			refcheck.Required("invoice_status", &domain.InvoiceStatus{}, *req.StatusID),
		); err != nil {
			return domain.Detail{}, err
		}
		invoice.StatusID = *req.StatusID
	}
	if req.InvoiceTypeID != nil {
		if err := refcheck.Ensure(ctx, s.db,
			refcheck.Required("invoice_type", &domain.InvoiceType{}, *req.InvoiceTypeID),
		); err != nil {
			return domain.Detail{}, err
		}
		invoice.InvoiceTypeID = *req.InvoiceTypeID
	}
	if req.InvoiceNumber != nil {
		invoice.InvoiceNumber = strings.TrimSpace(*req.InvoiceNumber)
	}

	if err := s.repo.Update(ctx, s.db, invoice); err != nil {
		return domain.Detail{}, err
	}
	return s.project(ctx, *invoice)
}

func (s *Service) MarkAccepted(ctx context.Context, id int64) (domain.Detail, error) {
	invoice, err := s.loadInvoice(ctx, id)
	if err != nil {
		return domain.Detail{}, err
	}
	invoice.StatusID = domain.StatusAcceptedID
	if err := s.repo.Update(ctx, s.db, invoice); err != nil {
		return domain.Detail{}, err
	}
	return s.project(ctx, *invoice)
}

func (s *Service) ListStatuses(ctx context.Context) ([]domain.InvoiceStatus, error) {
	return s.repo.ListStatuses(ctx, s.db)
}

func (s *Service) ListTypes(ctx context.Context) ([]domain.InvoiceType, error) {
	return s.repo.ListTypes(ctx, s.db)
}

// loadInvoice fetches the row and refreshes Paid from the payments table,
// so a drifted accumulator never reaches a caller.
func (s *Service) loadInvoice(ctx context.Context, id int64) (*domain.Invoice, error) {
	invoice, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	paid, err := s.repo.SumPayments(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	invoice.Paid = paid
	return invoice, nil
}

func (s *Service) project(ctx context.Context, invoice domain.Invoice) (domain.Detail, error) {
	invoiceType, err := s.repo.FindType(ctx, s.db, invoice.InvoiceTypeID)
	if err != nil {
		return domain.Detail{}, err
	}
	if invoiceType == nil {
		return domain.Detail{}, domain.ErrNotFound
	}
	return domain.Project(invoice, *invoiceType), nil
}
