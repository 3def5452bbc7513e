package repository

import (
	"context"

	"github.com/fleetline/taller/internal/part/domain"
	"github.com/fleetline/taller/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, part *domain.Part) error {
	return db.WithContext(ctx).Create(part).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Part, error) {
	var part domain.Part
	err := db.WithContext(ctx).First(&part, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &part, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, name string, page pagination.Pagination) ([]domain.Part, error) {
	var parts []domain.Part
	stmt := db.WithContext(ctx).Model(&domain.Part{})
	if name != "" {
		stmt = stmt.Where("name LIKE ?", "%"+name+"%")
	}
	err := page.Apply(stmt).
		Order("name asc, id asc").
		Find(&parts).Error
	if err != nil {
		return nil, err
	}
	return parts, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, part *domain.Part) error {
	return db.WithContext(ctx).Save(part).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Delete(&domain.Part{}, "id = ?", id).Error
}
