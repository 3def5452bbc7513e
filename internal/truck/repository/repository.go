package repository

import (
	"context"

	"github.com/fleetline/taller/internal/truck/domain"
	"github.com/fleetline/taller/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, truck *domain.Truck) error {
	return db.WithContext(ctx).Create(truck).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Truck, error) {
	var truck domain.Truck
	err := db.WithContext(ctx).First(&truck, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &truck, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListTruckFilter, page pagination.Pagination) ([]domain.Truck, error) {
	var trucks []domain.Truck
	stmt := db.WithContext(ctx).Model(&domain.Truck{})
	if filter.ClientID != 0 {
		stmt = stmt.Where("client_id = ?", filter.ClientID)
	}
	if filter.LicensePlate != "" {
		stmt = stmt.Where("license_plate = ?", filter.LicensePlate)
	}
	err := page.Apply(stmt).
		Order("created_at desc, id desc").
		Find(&trucks).Error
	if err != nil {
		return nil, err
	}
	return trucks, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, truck *domain.Truck) error {
	return db.WithContext(ctx).Save(truck).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Delete(&domain.Truck{}, "id = ?", id).Error
}
