package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	partdomain "github.com/fleetline/taller/internal/part/domain"
	"github.com/fleetline/taller/internal/refcheck"
	workorderdomain "github.com/fleetline/taller/internal/workorder/domain"
	"github.com/fleetline/taller/internal/workorderpart/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Repo   domain.Repository
	Orders workorderdomain.Service
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node
	repo   domain.Repository
	orders workorderdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("workorderpart.service"),
		genID:  p.GenID,
		repo:   p.Repo,
		orders: p.Orders,
	}
}

func subtotal(unitPrice decimal.Decimal, quantity int, increment decimal.NullDecimal) decimal.Decimal {
	line := workorderdomain.PartLine{
		UnitPrice:        unitPrice,
		Quantity:         quantity,
		IncrementPerUnit: increment,
	}
	return workorderdomain.Total([]workorderdomain.PartLine{line}, nil)
}

func (s *Service) Create(ctx context.Context, req domain.CreateWorkOrderPartRequest) (domain.WorkOrderPart, error) {
	if req.Quantity <= 0 {
		return domain.WorkOrderPart{}, domain.ErrInvalidQuantity
	}
	if req.UnitPrice.IsNegative() {
		return domain.WorkOrderPart{}, domain.ErrInvalidPrice
	}
	if err := refcheck.Ensure(ctx, s.db,
		refcheck.Required("work_order", &workorderdomain.WorkOrder{}, req.WorkOrderID),
		refcheck.Required("part", &partdomain.Part{}, req.PartID),
	); err != nil {
		return domain.WorkOrderPart{}, err
	}
	if err := s.ensureEditable(ctx, req.WorkOrderID); err != nil {
		return domain.WorkOrderPart{}, err
	}

	increment := decimal.NullDecimal{}
	if req.IncrementPerUnit != nil {
		increment = decimal.NullDecimal{Decimal: *req.IncrementPerUnit, Valid: true}
	}

	part := domain.WorkOrderPart{
		ID:               s.genID.Generate().Int64(),
		WorkOrderID:      req.WorkOrderID,
		PartID:           req.PartID,
		Quantity:         req.Quantity,
		IncrementPerUnit: increment,
		UnitPrice:        req.UnitPrice,
		Subtotal:         subtotal(req.UnitPrice, req.Quantity, increment),
	}
	if err := s.repo.Insert(ctx, s.db, &part); err != nil {
		return domain.WorkOrderPart{}, err
	}
	return part, nil
}

func (s *Service) ListByOrder(ctx context.Context, workOrderID int64) ([]domain.WorkOrderPart, error) {
	return s.repo.ListByOrder(ctx, s.db, workOrderID)
}

func (s *Service) Update(ctx context.Context, id int64, req domain.UpdateWorkOrderPartRequest) (domain.WorkOrderPart, error) {
	part, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.WorkOrderPart{}, err
	}
	if part == nil {
		return domain.WorkOrderPart{}, domain.ErrNotFound
	}
	if err := s.ensureEditable(ctx, part.WorkOrderID); err != nil {
		return domain.WorkOrderPart{}, err
	}

	// Moving the line to another order requires that order to exist and
	// still be editable too.
	if req.WorkOrderID != nil && *req.WorkOrderID != part.WorkOrderID {
		if err := refcheck.Ensure(ctx, s.db,
			refcheck.Required("work_order", &workorderdomain.WorkOrder{}, *req.WorkOrderID),
		); err != nil {
			return domain.WorkOrderPart{}, err
		}
		if err := s.ensureEditable(ctx, *req.WorkOrderID); err != nil {
			return domain.WorkOrderPart{}, err
		}
		part.WorkOrderID = *req.WorkOrderID
	}
	if req.PartID != nil {
		if err := refcheck.Ensure(ctx, s.db,
			refcheck.Required("part", &partdomain.Part{}, *req.PartID),
		); err != nil {
			return domain.WorkOrderPart{}, err
		}
		part.PartID = *req.PartID
	}
	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return domain.WorkOrderPart{}, domain.ErrInvalidQuantity
		}
		part.Quantity = *req.Quantity
	}
	if req.IncrementPerUnit != nil {
		part.IncrementPerUnit = decimal.NullDecimal{Decimal: *req.IncrementPerUnit, Valid: true}
	}
	if req.UnitPrice != nil {
		if req.UnitPrice.IsNegative() {
			return domain.WorkOrderPart{}, domain.ErrInvalidPrice
		}
		part.UnitPrice = *req.UnitPrice
	}
	part.Subtotal = subtotal(part.UnitPrice, part.Quantity, part.IncrementPerUnit)

	if err := s.repo.Update(ctx, s.db, part); err != nil {
		return domain.WorkOrderPart{}, err
	}
	return *part, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	part, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if part == nil {
		return domain.ErrNotFound
	}
	if err := s.ensureEditable(ctx, part.WorkOrderID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, id)
}

func (s *Service) ensureEditable(ctx context.Context, workOrderID int64) error {
	editable, err := s.orders.IsEditable(ctx, workOrderID)
	if err != nil {
		return err
	}
	if !editable {
		return workorderdomain.ErrOrderInvoiced
	}
	return nil
}
