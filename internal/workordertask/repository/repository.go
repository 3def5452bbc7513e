package repository

import (
	"context"
	"time"

	workorderdomain "github.com/fleetline/taller/internal/workorder/domain"
	"github.com/fleetline/taller/internal/workordertask/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, task *domain.WorkOrderTask) error {
	return db.WithContext(ctx).Create(task).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.WorkOrderTask, error) {
	var task domain.WorkOrderTask
	err := db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

func (r *repo) ListByOrder(ctx context.Context, db *gorm.DB, workOrderID int64) ([]domain.WorkOrderTask, error) {
	var tasks []domain.WorkOrderTask
	err := db.WithContext(ctx).
		Where("work_order_id = ?", workOrderID).
		Order("created_at asc, id asc").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, task *domain.WorkOrderTask) error {
	return db.WithContext(ctx).Save(task).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Delete(&domain.WorkOrderTask{}, "id = ?", id).Error
}

// filtered builds the one predicate shared by the itemized list and the
// aggregates.
func (r *repo) filtered(ctx context.Context, db *gorm.DB, filter domain.EarningsFilter) *gorm.DB {
	stmt := db.WithContext(ctx).Model(&domain.WorkOrderTask{})
	if filter.OnlyFinalized {
		stmt = stmt.
			Joins("JOIN work_orders ON work_orders.id = work_order_tasks.work_order_id").
			Where("work_orders.status_id = ?", workorderdomain.StatusFinalizedID)
	}
	stmt = stmt.Where("work_order_tasks.area_id = ?", filter.AreaID)
	if filter.External != nil {
		stmt = stmt.Where("work_order_tasks.external = ?", *filter.External)
	}
	if filter.Paid != nil {
		stmt = stmt.Where("work_order_tasks.paid = ?", *filter.Paid)
	}
	if filter.From != nil {
		stmt = stmt.Where("work_order_tasks.created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		stmt = stmt.Where("work_order_tasks.created_at <= ?", *filter.To)
	}
	return stmt
}

func (r *repo) ListFiltered(ctx context.Context, db *gorm.DB, filter domain.EarningsFilter) ([]domain.WorkOrderTask, error) {
	var tasks []domain.WorkOrderTask
	err := r.filtered(ctx, db, filter).
		Order("work_order_tasks.created_at asc, work_order_tasks.id asc").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *repo) Aggregate(ctx context.Context, db *gorm.DB, filter domain.EarningsFilter) (domain.EarningsSummary, error) {
	var totals struct {
		TotalAmount decimal.NullDecimal
		Count       int64
	}
	err := r.filtered(ctx, db, filter).
		Select("COALESCE(SUM(work_order_tasks.price), 0) AS total_amount, COUNT(*) AS count").
		Scan(&totals).Error
	if err != nil {
		return domain.EarningsSummary{}, err
	}

	var rows []struct {
		UserID      int64
		TotalAmount decimal.NullDecimal
		Count       int64
	}
	err = r.filtered(ctx, db, filter).
		Select("work_order_tasks.user_id AS user_id, COALESCE(SUM(work_order_tasks.price), 0) AS total_amount, COUNT(*) AS count").
		Group("work_order_tasks.user_id").
		Order("work_order_tasks.user_id asc").
		Scan(&rows).Error
	if err != nil {
		return domain.EarningsSummary{}, err
	}

	summary := domain.EarningsSummary{
		TotalAmount: totals.TotalAmount.Decimal,
		Count:       totals.Count,
		ByUser:      make([]domain.UserEarnings, 0, len(rows)),
	}
	for _, row := range rows {
		summary.ByUser = append(summary.ByUser, domain.UserEarnings{
			UserID:      row.UserID,
			TotalAmount: row.TotalAmount.Decimal,
			Count:       row.Count,
		})
	}
	return summary, nil
}

func (r *repo) BulkMarkPaid(ctx context.Context, db *gorm.DB, taskIDs []int64, paid bool, paidAt *time.Time) (int64, error) {
	result := db.WithContext(ctx).Model(&domain.WorkOrderTask{}).
		Where("id IN ?", taskIDs).
		Updates(map[string]interface{}{
			"paid":    paid,
			"paid_at": paidAt,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
