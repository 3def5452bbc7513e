package repository

import (
	"context"

	"github.com/fleetline/taller/internal/workorder/domain"
	"github.com/fleetline/taller/pkg/db/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, order *domain.WorkOrder) error {
	return db.WithContext(ctx).Create(order).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.WorkOrder, error) {
	var order domain.WorkOrder
	err := db.WithContext(ctx).First(&order, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListWorkOrderFilter, page pagination.Pagination) ([]domain.WorkOrder, error) {
	var orders []domain.WorkOrder
	stmt := db.WithContext(ctx).Model(&domain.WorkOrder{})
	if filter.StatusID != 0 {
		stmt = stmt.Where("status_id = ?", filter.StatusID)
	}
	if filter.ClientID != 0 {
		stmt = stmt.Where("client_id = ?", filter.ClientID)
	}
	if filter.TruckID != 0 {
		stmt = stmt.Where("truck_id = ?", filter.TruckID)
	}
	if filter.StartDate != nil {
		stmt = stmt.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		stmt = stmt.Where("created_at <= ?", *filter.EndDate)
	}
	err := page.Apply(stmt).
		Order("created_at desc, id desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, order *domain.WorkOrder) error {
	// Updates with a map so clearing the reviewer writes NULL instead of
	// being skipped as a zero value.
	return db.WithContext(ctx).Model(&domain.WorkOrder{}).
		Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"client_id":   order.ClientID,
			"truck_id":    order.TruckID,
			"status_id":   order.StatusID,
			"reviewed_by": order.ReviewedBy,
			"notes":       order.Notes,
		}).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Delete(&domain.WorkOrder{}, "id = ?", id).Error
}

func (r *repo) ListStatuses(ctx context.Context, db *gorm.DB) ([]domain.WorkOrderStatus, error) {
	var statuses []domain.WorkOrderStatus
	err := db.WithContext(ctx).Order("id asc").Find(&statuses).Error
	if err != nil {
		return nil, err
	}
	return statuses, nil
}

func (r *repo) HasInvoice(ctx context.Context, db *gorm.DB, workOrderID int64) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Table("invoices").
		Where("work_order_id = ?", workOrderID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) PartLines(ctx context.Context, db *gorm.DB, workOrderID int64) ([]domain.PartLine, error) {
	var rows []struct {
		UnitPrice        decimal.Decimal
		Quantity         int
		IncrementPerUnit decimal.NullDecimal
	}
	err := db.WithContext(ctx).Table("work_order_parts").
		Select("unit_price, quantity, increment_per_unit").
		Where("work_order_id = ?", workOrderID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	lines := make([]domain.PartLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, domain.PartLine{
			UnitPrice:        row.UnitPrice,
			Quantity:         row.Quantity,
			IncrementPerUnit: row.IncrementPerUnit,
		})
	}
	return lines, nil
}

func (r *repo) TaskLines(ctx context.Context, db *gorm.DB, workOrderID int64) ([]domain.TaskLine, error) {
	var rows []struct {
		Price decimal.Decimal
	}
	err := db.WithContext(ctx).Table("work_order_tasks").
		Select("price").
		Where("work_order_id = ?", workOrderID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	lines := make([]domain.TaskLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, domain.TaskLine{Price: row.Price})
	}
	return lines, nil
}
