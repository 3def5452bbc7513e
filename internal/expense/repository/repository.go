package repository

import (
	"context"

	"github.com/fleetline/taller/internal/expense/domain"
	"github.com/fleetline/taller/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertType(ctx context.Context, db *gorm.DB, t *domain.ExpenseType) error {
	return db.WithContext(ctx).Create(t).Error
}

func (r *repo) ListTypes(ctx context.Context, db *gorm.DB) ([]domain.ExpenseType, error) {
	var types []domain.ExpenseType
	err := db.WithContext(ctx).Order("name asc").Find(&types).Error
	if err != nil {
		return nil, err
	}
	return types, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, expense *domain.Expense) error {
	return db.WithContext(ctx).Create(expense).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Expense, error) {
	var expense domain.Expense
	err := db.WithContext(ctx).First(&expense, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &expense, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListExpenseFilter, page pagination.Pagination) ([]domain.Expense, error) {
	var expenses []domain.Expense
	stmt := db.WithContext(ctx).Model(&domain.Expense{})
	if filter.ExpenseTypeID != 0 {
		stmt = stmt.Where("expense_type_id = ?", filter.ExpenseTypeID)
	}
	if filter.From != nil {
		stmt = stmt.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		stmt = stmt.Where("date <= ?", *filter.To)
	}
	err := page.Apply(stmt).
		Order("date desc, id desc").
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Delete(&domain.Expense{}, "id = ?", id).Error
}
