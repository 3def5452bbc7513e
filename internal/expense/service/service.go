package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fleetline/taller/internal/expense/domain"
	"github.com/fleetline/taller/internal/refcheck"
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
		log:   p.Log.Named("expense.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) CreateType(ctx context.Context, req domain.CreateExpenseTypeRequest) (domain.ExpenseType, error) {
	t := domain.ExpenseType{
		ID:   s.genID.Generate().Int64(),
		Name: strings.TrimSpace(req.Name),
	}
	if err := s.repo.InsertType(ctx, s.db, &t); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.ExpenseType{}, domain.ErrDuplicateType
		}
		return domain.ExpenseType{}, err
	}
	return t, nil
}

func (s *Service) ListTypes(ctx context.Context) ([]domain.ExpenseType, error) {
	return s.repo.ListTypes(ctx, s.db)
}

func (s *Service) Create(ctx context.Context, req domain.CreateExpenseRequest) (domain.Expense, error) {
	if !req.Amount.IsPositive() {
		return domain.Expense{}, domain.ErrInvalidAmount
	}
	if err := refcheck.Ensure(ctx, s.db,
		refcheck.Optional("expense_type", &domain.ExpenseType{}, req.ExpenseTypeID),
	); err != nil {
		return domain.Expense{}, err
	}

	expense := domain.Expense{
		ID:            s.genID.Generate().Int64(),
		Date:          req.Date,
		Amount:        req.Amount,
		Description:   strings.TrimSpace(req.Description),
		ExpenseTypeID: req.ExpenseTypeID,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, &expense); err != nil {
		return domain.Expense{}, err
	}
	return expense, nil
}

func (s *Service) List(ctx context.Context, req domain.ListExpenseRequest) ([]domain.Expense, error) {
	filter := domain.ListExpenseFilter{
		ExpenseTypeID: req.ExpenseTypeID,
		From:          req.From,
		To:            req.To,
	}
	return s.repo.List(ctx, s.db, filter, req.Pagination)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	expense, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, id)
}
