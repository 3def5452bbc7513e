package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fleetline/taller/internal/mechanic/domain"
	"github.com/fleetline/taller/internal/refcheck"
	userdomain "github.com/fleetline/taller/internal/user/domain"
	workorderdomain "github.com/fleetline/taller/internal/workorder/domain"
	"github.com/fleetline/taller/pkg/db"
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
		log:   p.Log.Named("mechanic.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) CreateArea(ctx context.Context, req domain.CreateWorkAreaRequest) (domain.WorkArea, error) {
	area := domain.WorkArea{
		ID:          s.genID.Generate().Int64(),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.repo.InsertArea(ctx, s.db, &area); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.WorkArea{}, domain.ErrDuplicateArea
		}
		return domain.WorkArea{}, err
	}
	return area, nil
}

func (s *Service) ListAreas(ctx context.Context) ([]domain.WorkArea, error) {
	return s.repo.ListAreas(ctx, s.db)
}

func (s *Service) Assign(ctx context.Context, req domain.AssignMechanicRequest) (domain.WorkOrderMechanic, error) {
	if err := refcheck.Ensure(ctx, s.db,
		refcheck.Required("work_order", &workorderdomain.WorkOrder{}, req.WorkOrderID),
		refcheck.Required("user", &userdomain.User{}, req.UserID),
		refcheck.Required("work_area", &domain.WorkArea{}, req.AreaID),
	); err != nil {
		return domain.WorkOrderMechanic{}, err
	}

	assignment := domain.WorkOrderMechanic{
		ID:          s.genID.Generate().Int64(),
		WorkOrderID: req.WorkOrderID,
		UserID:      req.UserID,
		AreaID:      req.AreaID,
		JoinedAt:    time.Now().UTC(),
		Notes:       strings.TrimSpace(req.Notes),
	}
	if err := s.repo.Insert(ctx, s.db, &assignment); err != nil {
		return domain.WorkOrderMechanic{}, err
	}
	return assignment, nil
}

func (s *Service) ListByOrder(ctx context.Context, workOrderID int64) ([]domain.WorkOrderMechanic, error) {
	return s.repo.ListByOrder(ctx, s.db, workOrderID)
}

func (s *Service) Remove(ctx context.Context, id int64) error {
	assignment, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if assignment == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, id)
}
