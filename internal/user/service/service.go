package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fleetline/taller/internal/auth/password"
	"github.com/fleetline/taller/internal/user/domain"
	"github.com/fleetline/taller/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const minPasswordLen = 8

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
		log:   p.Log.Named("user.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateUserRequest) (domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.User{}, domain.ErrInvalidEmail
	}
	if !req.Role.Valid() {
		return domain.User{}, domain.ErrInvalidRole
	}
	if len(req.Password) < minPasswordLen {
		return domain.User{}, domain.ErrWeakPassword
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:        s.genID.Generate().Int64(),
		Name:      strings.TrimSpace(req.Name),
		Email:     email,
		Password:  hash,
		Role:      req.Role,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, &user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.User{}, domain.ErrDuplicateEmail
		}
		return domain.User{}, err
	}
	return user, nil
}

func (s *Service) Get(ctx context.Context, id int64) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.User{}, err
	}
	if user == nil {
		return domain.User{}, domain.ErrNotFound
	}
	return *user, nil
}

func (s *Service) List(ctx context.Context, req domain.ListUserRequest) ([]domain.User, error) {
	filter := domain.ListUserFilter{
		Role:   req.Role,
		Active: req.Active,
	}
	return s.repo.List(ctx, s.db, filter, req.Pagination)
}

func (s *Service) Update(ctx context.Context, id int64, req domain.UpdateUserRequest) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.User{}, err
	}
	if user == nil {
		return domain.User{}, domain.ErrNotFound
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" || !strings.Contains(email, "@") {
			return domain.User{}, domain.ErrInvalidEmail
		}
		user.Email = email
	}
	if req.Password != nil {
		if len(*req.Password) < minPasswordLen {
			return domain.User{}, domain.ErrWeakPassword
		}
		hash, err := password.Hash(*req.Password)
		if err != nil {
			return domain.User{}, err
		}
		user.Password = hash
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return domain.User{}, domain.ErrInvalidRole
		}
		user.Role = *req.Role
	}
	if req.Active != nil {
		user.Active = *req.Active
	}

	if err := s.repo.Update(ctx, s.db, user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.User{}, domain.ErrDuplicateEmail
		}
		return domain.User{}, err
	}
	return *user, nil
}

func (s *Service) Deactivate(ctx context.Context, id int64) error {
	user, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	user.Active = false
	return s.repo.Update(ctx, s.db, user)
}
