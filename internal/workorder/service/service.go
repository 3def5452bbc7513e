package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/fleetline/taller/internal/client/domain"
	"github.com/fleetline/taller/internal/refcheck"
	truckdomain "github.com/fleetline/taller/internal/truck/domain"
	userdomain "github.com/fleetline/taller/internal/user/domain"
	"github.com/fleetline/taller/internal/workorder/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("workorder.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateWorkOrderRequest) (domain.WorkOrder, error) {
	if err := refcheck.Ensure(ctx, s.db,
		refcheck.Required("client", &clientdomain.Client{}, req.ClientID),
		refcheck.Required("truck", &truckdomain.Truck{}, req.TruckID),
		refcheck.Required("work_order_status", &domain.WorkOrderStatus{}, req.StatusID),
		refcheck.Optional("user", &userdomain.User{}, req.ReviewedBy),
	); err != nil {
		return domain.WorkOrder{}, err
	}

	order := domain.WorkOrder{
		ID:         s.genID.Generate().Int64(),
		ClientID:   req.ClientID,
		TruckID:    req.TruckID,
		StatusID:   req.StatusID,
		ReviewedBy: req.ReviewedBy,
		Notes:      strings.TrimSpace(req.Notes),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, &order); err != nil {
		return domain.WorkOrder{}, err
	}
	// A freshly created order has no invoice yet.
	order.IsEditable = true
	return order, nil
}

func (s *Service) Get(ctx context.Context, id int64) (domain.WorkOrder, error) {
	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return domain.WorkOrder{}, err
	}
	return s.withEditable(ctx, *order)
}

func (s *Service) List(ctx context.Context, req domain.ListWorkOrderRequest) ([]domain.WorkOrder, error) {
	filter := domain.ListWorkOrderFilter{
		StatusID: req.StatusID,
		ClientID: req.ClientID,
		TruckID:  req.TruckID,
	}
	if req.StartDate != nil {
		start := startOfDay(*req.StartDate)
		filter.StartDate = &start
	}
	if req.EndDate != nil {
		end := endOfDay(*req.EndDate)
		filter.EndDate = &end
	}

	orders, err := s.repo.List(ctx, s.db, filter, req.Pagination)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i], err = s.withEditable(ctx, orders[i])
		if err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (s *Service) Update(ctx context.Context, id int64, req domain.UpdateWorkOrderRequest) (domain.WorkOrder, error) {
	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return domain.WorkOrder{}, err
	}

	if req.StatusID != nil {
		if err := refcheck.Ensure(ctx, s.db,
			refcheck.Required("work_order_status", &domain.WorkOrderStatus{}, *req.StatusID),
		); err != nil {
			return domain.WorkOrder{}, err
		}
		order.StatusID = *req.StatusID
	}
	if req.Notes != nil {
		order.Notes = strings.TrimSpace(*req.Notes)
	}

	if err := s.repo.Update(ctx, s.db, order); err != nil {
		return domain.WorkOrder{}, err
	}
	return s.withEditable(ctx, *order)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.loadOrder(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, id)
}

func (s *Service) ListStatuses(ctx context.Context) ([]domain.WorkOrderStatus, error) {
	return s.repo.ListStatuses(ctx, s.db)
}

// AssignReviewer overwrites any previously assigned reviewer.
func (s *Service) AssignReviewer(ctx context.Context, workOrderID, reviewerID int64) (domain.WorkOrder, error) {
	order, err := s.loadOrder(ctx, workOrderID)
	if err != nil {
		return domain.WorkOrder{}, err
	}
	if err := refcheck.Ensure(ctx, s.db,
		refcheck.Required("user", &userdomain.User{}, reviewerID),
	); err != nil {
		return domain.WorkOrder{}, err
	}

	order.ReviewedBy = &reviewerID
	if err := s.repo.Update(ctx, s.db, order); err != nil {
		return domain.WorkOrder{}, err
	}
	return s.withEditable(ctx, *order)
}

// RemoveReviewer clears the reviewer only when reviewerID matches the one
// currently assigned; a mismatch is rejected, not ignored.
func (s *Service) RemoveReviewer(ctx context.Context, workOrderID, reviewerID int64) (domain.WorkOrder, error) {
	order, err := s.loadOrder(ctx, workOrderID)
	if err != nil {
		return domain.WorkOrder{}, err
	}
	if err := refcheck.Ensure(ctx, s.db,
		refcheck.Required("user", &userdomain.User{}, reviewerID),
	); err != nil {
		return domain.WorkOrder{}, err
	}
	if order.ReviewedBy == nil || *order.ReviewedBy != reviewerID {
		return domain.WorkOrder{}, domain.ErrReviewerNotAssigned
	}

	order.ReviewedBy = nil
	if err := s.repo.Update(ctx, s.db, order); err != nil {
		return domain.WorkOrder{}, err
	}
	return s.withEditable(ctx, *order)
}

func (s *Service) Total(ctx context.Context, id int64) (domain.TotalResponse, error) {
	if _, err := s.loadOrder(ctx, id); err != nil {
		return domain.TotalResponse{}, err
	}
	parts, err := s.repo.PartLines(ctx, s.db, id)
	if err != nil {
		return domain.TotalResponse{}, err
	}
	tasks, err := s.repo.TaskLines(ctx, s.db, id)
	if err != nil {
		return domain.TotalResponse{}, err
	}
	return domain.TotalResponse{
		WorkOrderID: id,
		Total:       domain.Total(parts, tasks),
	}, nil
}

func (s *Service) IsEditable(ctx context.Context, id int64) (bool, error) {
	invoiced, err := s.repo.HasInvoice(ctx, s.db, id)
	if err != nil {
		return false, err
	}
	return !invoiced, nil
}

func (s *Service) loadOrder(ctx context.Context, id int64) (*domain.WorkOrder, error) {
	order, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func (s *Service) withEditable(ctx context.Context, order domain.WorkOrder) (domain.WorkOrder, error) {
	editable, err := s.IsEditable(ctx, order.ID)
	if err != nil {
		return domain.WorkOrder{}, err
	}
	order.IsEditable = editable
	return order, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
