package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/fleetline/taller/internal/client/domain"
	"github.com/fleetline/taller/internal/refcheck"
	"github.com/fleetline/taller/internal/truck/domain"
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
		log:   p.Log.Named("truck.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateTruckRequest) (domain.Truck, error) {
	plate := strings.ToUpper(strings.TrimSpace(req.LicensePlate))
	if plate == "" {
		return domain.Truck{}, domain.ErrInvalidPlate
	}
	if err := refcheck.Ensure(ctx, s.db,
		refcheck.Required("client", &clientdomain.Client{}, req.ClientID),
	); err != nil {
		return domain.Truck{}, err
	}

	truck := domain.Truck{
		ID:           s.genID.Generate().Int64(),
		ClientID:     req.ClientID,
		LicensePlate: plate,
		Brand:        strings.TrimSpace(req.Brand),
		Model:        strings.TrimSpace(req.Model),
		Year:         req.Year,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, &truck); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Truck{}, domain.ErrDuplicatePlate
		}
		return domain.Truck{}, err
	}
	return truck, nil
}

func (s *Service) Get(ctx context.Context, id int64) (domain.Truck, error) {
	truck, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Truck{}, err
	}
	if truck == nil {
		return domain.Truck{}, domain.ErrNotFound
	}
	return *truck, nil
}

func (s *Service) List(ctx context.Context, req domain.ListTruckRequest) ([]domain.Truck, error) {
	filter := domain.ListTruckFilter{
		ClientID:     req.ClientID,
		LicensePlate: strings.ToUpper(strings.TrimSpace(req.LicensePlate)),
	}
	return s.repo.List(ctx, s.db, filter, req.Pagination)
}

func (s *Service) Update(ctx context.Context, id int64, req domain.UpdateTruckRequest) (domain.Truck, error) {
	truck, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Truck{}, err
	}
	if truck == nil {
		return domain.Truck{}, domain.ErrNotFound
	}

	if req.ClientID != nil {
		if err := refcheck.Ensure(ctx, s.db,
			refcheck.Required("client", &clientdomain.Client{}, *req.ClientID),
		); err != nil {
			return domain.Truck{}, err
		}
		truck.ClientID = *req.ClientID
	}
	if req.LicensePlate != nil {
		plate := strings.ToUpper(strings.TrimSpace(*req.LicensePlate))
		if plate == "" {
			return domain.Truck{}, domain.ErrInvalidPlate
		}
		truck.LicensePlate = plate
	}
	if req.Brand != nil {
		truck.Brand = strings.TrimSpace(*req.Brand)
	}
	if req.Model != nil {
		truck.Model = strings.TrimSpace(*req.Model)
	}
	if req.Year != nil {
		truck.Year = *req.Year
	}

	if err := s.repo.Update(ctx, s.db, truck); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Truck{}, domain.ErrDuplicatePlate
		}
		return domain.Truck{}, err
	}
	return *truck, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	truck, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if truck == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, id)
}
