package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/fleetline/taller/internal/part/domain"
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
		log:   p.Log.Named("part.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreatePartRequest) (domain.Part, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Part{}, domain.ErrInvalidName
	}
	if req.Price.IsNegative() || req.Cost.IsNegative() {
		return domain.Part{}, domain.ErrInvalidPrice
	}

	part := domain.Part{
		ID:          s.genID.Generate().Int64(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		Cost:        req.Cost,
	}
	if err := s.repo.Insert(ctx, s.db, &part); err != nil {
		return domain.Part{}, err
	}
	return part, nil
}

func (s *Service) Get(ctx context.Context, id int64) (domain.Part, error) {
	part, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Part{}, err
	}
	if part == nil {
		return domain.Part{}, domain.ErrNotFound
	}
	return *part, nil
}

func (s *Service) List(ctx context.Context, req domain.ListPartRequest) ([]domain.Part, error) {
	return s.repo.List(ctx, s.db, strings.TrimSpace(req.Name), req.Pagination)
}

func (s *Service) Update(ctx context.Context, id int64, req domain.UpdatePartRequest) (domain.Part, error) {
	part, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Part{}, err
	}
	if part == nil {
		return domain.Part{}, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Part{}, domain.ErrInvalidName
		}
		part.Name = name
	}
	if req.Description != nil {
		part.Description = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return domain.Part{}, domain.ErrInvalidPrice
		}
		part.Price = *req.Price
	}
	if req.Cost != nil {
		if req.Cost.IsNegative() {
			return domain.Part{}, domain.ErrInvalidPrice
		}
		part.Cost = *req.Cost
	}

	if err := s.repo.Update(ctx, s.db, part); err != nil {
		return domain.Part{}, err
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
	return s.repo.Delete(ctx, s.db, id)
}
