// Package report answers the aggregate financial questions the back
// office asks: profitability per order, billing per client, monthly cash
// flow, and receivable aging. Reports read with raw SQL; they own no
// tables.
package report

import (
	"context"
	"fmt"
	"sort"

	"github.com/fleetline/taller/internal/clock"
	"github.com/fleetline/taller/internal/config"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("report.service",
	fx.Provide(New),
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	Billing *config.BillingConfigHolder
}

type service struct {
	db      *gorm.DB
	log     *zap.Logger
	clock   clock.Clock
	billing *config.BillingConfigHolder
}

func New(p Params) Service {
	return &service{
		db:      p.DB,
		log:     p.Log.Named("report.service"),
		clock:   p.Clock,
		billing: p.Billing,
	}
}

// monthExpr formats a timestamp column as YYYY-MM in the connected
// database's dialect.
func (s *service) monthExpr(column string) string {
	switch s.db.Dialector.Name() {
	case "postgres":
		return fmt.Sprintf("TO_CHAR(DATE_TRUNC('month', %s), 'YYYY-MM')", column)
	case "mysql":
		return fmt.Sprintf("DATE_FORMAT(%s, '%%Y-%%m')", column)
	default:
		return fmt.Sprintf("strftime('%%Y-%%m', %s)", column)
	}
}

func (s *service) ProfitByOrder(ctx context.Context) ([]OrderProfit, error) {
	var rows []OrderProfit
	err := s.db.WithContext(ctx).Raw(`
		SELECT
		  wo.id AS order_id,
		  c.name AS client_name,
		  i.total AS invoice_total,
		  COALESCE(pc.parts_cost, 0) AS parts_cost,
		  COALESCE(lc.labor_cost, 0) AS labor_cost,
		  (i.total - COALESCE(pc.parts_cost, 0) - COALESCE(lc.labor_cost, 0)) AS profit
		FROM work_orders wo
		JOIN invoices i ON i.work_order_id = wo.id
		JOIN clients c ON c.id = i.client_id
		LEFT JOIN (
		  SELECT work_order_id, SUM(subtotal) AS parts_cost
		  FROM work_order_parts GROUP BY work_order_id
		) pc ON pc.work_order_id = wo.id
		LEFT JOIN (
		  SELECT work_order_id, SUM(price) AS labor_cost
		  FROM work_order_tasks GROUP BY work_order_id
		) lc ON lc.work_order_id = wo.id
		ORDER BY profit DESC`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *service) BillingByClient(ctx context.Context) ([]ClientBilling, error) {
	var rows []ClientBilling
	err := s.db.WithContext(ctx).Raw(`
		SELECT
		  c.id AS client_id,
		  c.name AS client_name,
		  SUM(i.total) AS total_billed,
		  SUM(i.paid) AS total_paid
		FROM invoices i
		JOIN clients c ON c.id = i.client_id
		GROUP BY c.id, c.name
		ORDER BY total_billed DESC`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *service) TopClients(ctx context.Context, limit int) ([]TopClient, error) {
	if limit <= 0 {
		limit = 5
	}
	var rows []TopClient
	err := s.db.WithContext(ctx).Raw(`
		SELECT
		  c.name AS client_name,
		  SUM(i.total) AS total_billed
		FROM invoices i
		JOIN clients c ON c.id = i.client_id
		GROUP BY c.name
		ORDER BY total_billed DESC
		LIMIT ?`, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *service) IncomeMonthly(ctx context.Context) ([]MonthlyAmount, error) {
	return s.monthlyTotals(ctx, "invoices", "issued_at", "total")
}

func (s *service) ExpensesMonthly(ctx context.Context) ([]MonthlyAmount, error) {
	return s.monthlyTotals(ctx, "expenses", "date", "amount")
}

func (s *service) monthlyTotals(ctx context.Context, table, dateCol, amountCol string) ([]MonthlyAmount, error) {
	var rows []MonthlyAmount
	query := fmt.Sprintf(`
		SELECT %s AS month, SUM(%s) AS total
		FROM %s
		GROUP BY month
		ORDER BY month DESC`, s.monthExpr(dateCol), amountCol, table)
	if err := s.db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *service) PaymentsByMethod(ctx context.Context) ([]MethodTotal, error) {
	var rows []MethodTotal
	err := s.db.WithContext(ctx).Raw(`
		SELECT
		  pm.name AS method,
		  SUM(p.amount) AS total_received
		FROM payments p
		JOIN payment_methods pm ON pm.id = p.method_id
		GROUP BY pm.name
		ORDER BY total_received DESC`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *service) ExpensesByType(ctx context.Context) ([]TypeTotal, error) {
	var rows []TypeTotal
	err := s.db.WithContext(ctx).Raw(`
		SELECT
		  et.name AS type,
		  SUM(e.amount) AS total_amount
		FROM expenses e
		JOIN expense_types et ON et.id = e.expense_type_id
		GROUP BY et.name
		ORDER BY total_amount DESC`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// MonthlyBalance merges the income and expense series month by month.
// The merge happens here instead of a FULL OUTER JOIN, which two of the
// three supported databases lack.
func (s *service) MonthlyBalance(ctx context.Context) ([]MonthlyBalance, error) {
	income, err := s.IncomeMonthly(ctx)
	if err != nil {
		return nil, err
	}
	expense, err := s.ExpensesMonthly(ctx)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]*MonthlyBalance)
	for _, row := range income {
		byMonth[row.Month] = &MonthlyBalance{Month: row.Month, Income: row.Total}
	}
	for _, row := range expense {
		entry, ok := byMonth[row.Month]
		if !ok {
			entry = &MonthlyBalance{Month: row.Month}
			byMonth[row.Month] = entry
		}
		entry.Expense = row.Total
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	out := make([]MonthlyBalance, 0, len(months))
	for _, month := range months {
		entry := byMonth[month]
		entry.Balance = entry.Income.Sub(entry.Expense)
		out = append(out, *entry)
	}
	return out, nil
}

func (s *service) Dashboard(ctx context.Context) (Dashboard, error) {
	balance, err := s.MonthlyBalance(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	topClients, err := s.TopClients(ctx, 5)
	if err != nil {
		return Dashboard{}, err
	}
	income, err := s.IncomeMonthly(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	expenses, err := s.ExpensesMonthly(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	return Dashboard{
		Balance:    balance,
		TopClients: topClients,
		Income:     income,
		Expenses:   expenses,
	}, nil
}

// ReceivablesAging buckets each invoice's outstanding balance by how many
// days it has been issued, using the configured aging windows.
func (s *service) ReceivablesAging(ctx context.Context) (ReceivablesAging, error) {
	var rows []struct {
		IssuedDays  int64
		Outstanding decimal.Decimal
	}
	now := s.clock.Now().UTC()
	err := s.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT
		  %s AS issued_days,
		  (total - paid) AS outstanding
		FROM invoices
		WHERE total > paid`, s.ageExpr("issued_at")), now).Scan(&rows).Error
	if err != nil {
		return ReceivablesAging{}, err
	}

	cfg := s.billing.Get()
	aging := ReceivablesAging{AsOf: now, Buckets: make([]AgingBucketTotal, len(cfg.AgingBuckets))}
	for i, bucket := range cfg.AgingBuckets {
		aging.Buckets[i] = AgingBucketTotal{Label: bucket.Label, Outstanding: decimal.Zero}
	}
	for _, row := range rows {
		for i, bucket := range cfg.AgingBuckets {
			if row.IssuedDays < int64(bucket.MinDays) {
				continue
			}
			if bucket.MaxDays != nil && row.IssuedDays > int64(*bucket.MaxDays) {
				continue
			}
			aging.Buckets[i].Invoices++
			aging.Buckets[i].Outstanding = aging.Buckets[i].Outstanding.Add(row.Outstanding)
			break
		}
	}
	return aging, nil
}

// ageExpr computes whole days between a timestamp column and a bound "as
// of" argument.
func (s *service) ageExpr(column string) string {
	switch s.db.Dialector.Name() {
	case "postgres":
		return fmt.Sprintf("EXTRACT(DAY FROM (CAST(? AS timestamp) - %s))", column)
	case "mysql":
		return fmt.Sprintf("DATEDIFF(?, %s)", column)
	default:
		return fmt.Sprintf("CAST(julianday(?) - julianday(%s) AS INTEGER)", column)
	}
}
