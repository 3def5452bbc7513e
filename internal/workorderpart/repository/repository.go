package repository

import (
	"context"

	"github.com/fleetline/taller/internal/workorderpart/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, part *domain.WorkOrderPart) error {
	return db.WithContext(ctx).Create(part).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.WorkOrderPart, error) {
	var part domain.WorkOrderPart
	err := db.WithContext(ctx).First(&part, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &part, nil
}

func (r *repo) ListByOrder(ctx context.Context, db *gorm.DB, workOrderID int64) ([]domain.WorkOrderPart, error) {
	var parts []domain.WorkOrderPart
	err := db.WithContext(ctx).
		Where("work_order_id = ?", workOrderID).
		Order("id asc").
		Find(&parts).Error
	if err != nil {
		return nil, err
	}
	return parts, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, part *domain.WorkOrderPart) error {
	// Map form so a cleared increment writes NULL.
	return db.WithContext(ctx).Model(&domain.WorkOrderPart{}).
		Where("id = ?", part.ID).
		Updates(map[string]interface{}{
			"work_order_id":      part.WorkOrderID,
			"part_id":            part.PartID,
			"quantity":           part.Quantity,
			"increment_per_unit": part.IncrementPerUnit,
			"unit_price":         part.UnitPrice,
			"subtotal":           part.Subtotal,
		}).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Delete(&domain.WorkOrderPart{}, "id = ?", id).Error
}
