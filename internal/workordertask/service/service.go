package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fleetline/taller/internal/clock"
	mechanicdomain "github.com/fleetline/taller/internal/mechanic/domain"
	"github.com/fleetline/taller/internal/refcheck"
	userdomain "github.com/fleetline/taller/internal/user/domain"
	workorderdomain "github.com/fleetline/taller/internal/workorder/domain"
	"github.com/fleetline/taller/internal/workordertask/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Clock  clock.Clock
	Repo   domain.Repository
	Orders workorderdomain.Service
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node
	clock  clock.Clock
	repo   domain.Repository
	orders workorderdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("workordertask.service"),
		genID:  p.GenID,
		clock:  p.Clock,
		repo:   p.Repo,
		orders: p.Orders,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateTaskRequest) (domain.WorkOrderTask, error) {
	if !req.Price.IsPositive() {
		return domain.WorkOrderTask{}, domain.ErrInvalidPrice
	}
	if err := refcheck.Ensure(ctx, s.db,
		refcheck.Required("work_order", &workorderdomain.WorkOrder{}, req.WorkOrderID),
		refcheck.Required("user", &userdomain.User{}, req.UserID),
		refcheck.Required("work_area", &mechanicdomain.WorkArea{}, req.AreaID),
	); err != nil {
		return domain.WorkOrderTask{}, err
	}
	if err := s.ensureEditable(ctx, req.WorkOrderID); err != nil {
		return domain.WorkOrderTask{}, err
	}

	task := domain.WorkOrderTask{
		ID:          s.genID.Generate().Int64(),
		WorkOrderID: req.WorkOrderID,
		UserID:      req.UserID,
		Description: strings.TrimSpace(req.Description),
		AreaID:      req.AreaID,
		Price:       req.Price,
		External:    req.External,
		CreatedAt:   s.clock.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, &task); err != nil {
		return domain.WorkOrderTask{}, err
	}
	return task, nil
}

func (s *Service) ListByOrder(ctx context.Context, workOrderID int64) ([]domain.WorkOrderTask, error) {
	return s.repo.ListByOrder(ctx, s.db, workOrderID)
}

func (s *Service) Update(ctx context.Context, id int64, req domain.UpdateTaskRequest) (domain.WorkOrderTask, error) {
	task, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.WorkOrderTask{}, err
	}
	if task == nil {
		return domain.WorkOrderTask{}, domain.ErrNotFound
	}
	if err := s.ensureEditable(ctx, task.WorkOrderID); err != nil {
		return domain.WorkOrderTask{}, err
	}

	if req.UserID != nil {
		if err := refcheck.Ensure(ctx, s.db,
			refcheck.Required("user", &userdomain.User{}, *req.UserID),
		); err != nil {
			return domain.WorkOrderTask{}, err
		}
		task.UserID = *req.UserID
	}
	if req.AreaID != nil {
		if err := refcheck.Ensure(ctx, s.db,
			refcheck.Required("work_area", &mechanicdomain.WorkArea{}, *req.AreaID),
		); err != nil {
			return domain.WorkOrderTask{}, err
		}
		task.AreaID = *req.AreaID
	}
	if req.Description != nil {
		task.Description = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		if !req.Price.IsPositive() {
			return domain.WorkOrderTask{}, domain.ErrInvalidPrice
		}
		task.Price = *req.Price
	}
	if req.External != nil {
		task.External = *req.External
	}

	if err := s.repo.Update(ctx, s.db, task); err != nil {
		return domain.WorkOrderTask{}, err
	}
	return *task, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	task, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if task == nil {
		return domain.ErrNotFound
	}
	if err := s.ensureEditable(ctx, task.WorkOrderID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, id)
}

func (s *Service) Earnings(ctx context.Context, req domain.EarningsRequest) (domain.EarningsResponse, error) {
	filter := domain.EarningsFilter{
		AreaID:        req.AreaID,
		Paid:          req.Paid,
		OnlyFinalized: req.OnlyFinalized,
		External:      req.External,
	}
	if req.From != nil {
		from := startOfDay(*req.From)
		filter.From = &from
	}
	if req.To != nil {
		to := endOfDay(*req.To)
		filter.To = &to
	}

	tasks, err := s.repo.ListFiltered(ctx, s.db, filter)
	if err != nil {
		return domain.EarningsResponse{}, err
	}
	summary, err := s.repo.Aggregate(ctx, s.db, filter)
	if err != nil {
		return domain.EarningsResponse{}, err
	}
	return domain.EarningsResponse{
		AreaID:          req.AreaID,
		Paid:            req.Paid,
		From:            req.From,
		To:              req.To,
		OnlyFinalized:   req.OnlyFinalized,
		External:        req.External,
		EarningsSummary: summary,
		Tasks:           tasks,
	}, nil
}

// MarkPaid flips settlement state on every listed task. Missing ids are
// not an error; they just lower the reported count.
func (s *Service) MarkPaid(ctx context.Context, req domain.MarkPaidRequest) (domain.MarkPaidResponse, error) {
	if len(req.TaskIDs) == 0 {
		return domain.MarkPaidResponse{}, domain.ErrNoTaskIDs
	}

	paidAt := req.PaidAt
	if paidAt == nil && req.Paid {
		now := s.clock.Now().UTC()
		paidAt = &now
	}

	updated, err := s.repo.BulkMarkPaid(ctx, s.db, req.TaskIDs, req.Paid, paidAt)
	if err != nil {
		return domain.MarkPaidResponse{}, err
	}
	return domain.MarkPaidResponse{Updated: updated}, nil
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

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
