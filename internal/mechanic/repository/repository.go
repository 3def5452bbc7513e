package repository

import (
	"context"

	"github.com/fleetline/taller/internal/mechanic/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertArea(ctx context.Context, db *gorm.DB, area *domain.WorkArea) error {
	return db.WithContext(ctx).Create(area).Error
}

func (r *repo) ListAreas(ctx context.Context, db *gorm.DB) ([]domain.WorkArea, error) {
	var areas []domain.WorkArea
	err := db.WithContext(ctx).Order("name asc").Find(&areas).Error
	if err != nil {
		return nil, err
	}
	return areas, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, assignment *domain.WorkOrderMechanic) error {
	return db.WithContext(ctx).Create(assignment).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.WorkOrderMechanic, error) {
	var assignment domain.WorkOrderMechanic
	err := db.WithContext(ctx).First(&assignment, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &assignment, nil
}

func (r *repo) ListByOrder(ctx context.Context, db *gorm.DB, workOrderID int64) ([]domain.WorkOrderMechanic, error) {
	var assignments []domain.WorkOrderMechanic
	err := db.WithContext(ctx).
		Where("work_order_id = ?", workOrderID).
		Order("joined_at asc, id asc").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Delete(&domain.WorkOrderMechanic{}, "id = ?", id).Error
}
