package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type OrderProfit struct {
	OrderID      int64           `json:"order_id"`
	ClientName   string          `json:"client_name"`
	InvoiceTotal decimal.Decimal `json:"invoice_total"`
	PartsCost    decimal.Decimal `json:"parts_cost"`
	LaborCost    decimal.Decimal `json:"labor_cost"`
	Profit       decimal.Decimal `json:"profit"`
}

type ClientBilling struct {
	ClientID    int64           `json:"client_id"`
	ClientName  string          `json:"client_name"`
	TotalBilled decimal.Decimal `json:"total_billed"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
}

type TopClient struct {
	ClientName  string          `json:"client_name"`
	TotalBilled decimal.Decimal `json:"total_billed"`
}

type MonthlyAmount struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

type MethodTotal struct {
	Method        string          `json:"method"`
	TotalReceived decimal.Decimal `json:"total_received"`
}

type TypeTotal struct {
	Type        string          `json:"type"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type MonthlyBalance struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// AgingBucketTotal is the outstanding receivable balance whose invoices
// fall inside one configured age window.
type AgingBucketTotal struct {
	Label       string          `json:"label"`
	Invoices    int64           `json:"invoices"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

type ReceivablesAging struct {
	AsOf    time.Time          `json:"as_of"`
	Buckets []AgingBucketTotal `json:"buckets"`
}

// Dashboard bundles the reports the back office opens first thing: the
// monthly balance, the biggest clients, and both monthly series.
type Dashboard struct {
	Balance    []MonthlyBalance `json:"balance"`
	TopClients []TopClient      `json:"top_clients"`
	Income     []MonthlyAmount  `json:"income"`
	Expenses   []MonthlyAmount  `json:"expenses"`
}

type Service interface {
	ProfitByOrder(ctx context.Context) ([]OrderProfit, error)
	BillingByClient(ctx context.Context) ([]ClientBilling, error)
	TopClients(ctx context.Context, limit int) ([]TopClient, error)
	IncomeMonthly(ctx context.Context) ([]MonthlyAmount, error)
	PaymentsByMethod(ctx context.Context) ([]MethodTotal, error)
	ExpensesMonthly(ctx context.Context) ([]MonthlyAmount, error)
	ExpensesByType(ctx context.Context) ([]TypeTotal, error)
	MonthlyBalance(ctx context.Context) ([]MonthlyBalance, error)
	ReceivablesAging(ctx context.Context) (ReceivablesAging, error)
	Dashboard(ctx context.Context) (Dashboard, error)
}
