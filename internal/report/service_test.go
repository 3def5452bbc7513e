package report

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	clientdomain "github.com/fleetline/taller/internal/client/domain"
	"github.com/fleetline/taller/internal/clock"
	"github.com/fleetline/taller/internal/config"
	expensedomain "github.com/fleetline/taller/internal/expense/domain"
	invoicedomain "github.com/fleetline/taller/internal/invoice/domain"
	mechanicdomain "github.com/fleetline/taller/internal/mechanic/domain"
	paymentdomain "github.com/fleetline/taller/internal/payment/domain"
	truckdomain "github.com/fleetline/taller/internal/truck/domain"
	userdomain "github.com/fleetline/taller/internal/user/domain"
	workorderdomain "github.com/fleetline/taller/internal/workorder/domain"
	workorderpartdomain "github.com/fleetline/taller/internal/workorderpart/domain"
	workordertaskdomain "github.com/fleetline/taller/internal/workordertask/domain"
)

var reportNow = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	db   *gorm.DB
	svc  *service
	node *snowflake.Node

	acme  int64
	globo int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&clientdomain.Client{},
		&truckdomain.Truck{},
		&userdomain.User{},
		&mechanicdomain.WorkArea{},
		&workorderdomain.WorkOrderStatus{},
		&workorderdomain.WorkOrder{},
		&workordertaskdomain.WorkOrderTask{},
		&workorderpartdomain.WorkOrderPart{},
		&invoicedomain.InvoiceStatus{},
		&invoicedomain.InvoiceType{},
		&invoicedomain.Invoice{},
		&paymentdomain.PaymentMethod{},
		&paymentdomain.Payment{},
		&expensedomain.ExpenseType{},
		&expensedomain.Expense{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	svc := &service{
		db:      db,
		log:     zaptest.NewLogger(t),
		clock:   clock.NewFakeClock(reportNow),
		billing: config.NewStaticBillingConfigHolder(config.DefaultBillingConfig()),
	}

	f := &fixture{db: db, svc: svc, node: node}
	f.acme = f.client(t, "Acme")
	f.globo = f.client(t, "Globo")
	require.NoError(t, db.Create(&workorderdomain.WorkOrderStatus{ID: 1, Name: "Pendiente"}).Error)
	require.NoError(t, db.Create(&invoicedomain.InvoiceStatus{ID: invoicedomain.StatusPendingID, Name: "Pendiente"}).Error)
	require.NoError(t, db.Create(&invoicedomain.InvoiceType{ID: 1, Code: "B"}).Error)
	return f
}

func (f *fixture) client(t *testing.T, name string) int64 {
	t.Helper()
	id := f.node.Generate().Int64()
	require.NoError(t, f.db.Create(&clientdomain.Client{ID: id, Type: clientdomain.ClientTypeEmpresa, Name: name}).Error)
	return id
}

// order creates a work order plus its invoice in one step; reports only
// ever see invoiced orders.
func (f *fixture) order(t *testing.T, clientID int64, total, paid int64, issued time.Time) int64 {
	t.Helper()
	truckID := f.node.Generate().Int64()
	require.NoError(t, f.db.Create(&truckdomain.Truck{ID: truckID, ClientID: clientID, LicensePlate: fmt.Sprintf("ZZ%03dAA", truckID%1000)}).Error)
	orderID := f.node.Generate().Int64()
	require.NoError(t, f.db.Create(&workorderdomain.WorkOrder{ID: orderID, ClientID: clientID, TruckID: truckID, StatusID: 1}).Error)
	require.NoError(t, f.db.Create(&invoicedomain.Invoice{
		ID:            f.node.Generate().Int64(),
		WorkOrderID:   orderID,
		ClientID:      clientID,
		InvoiceTypeID: 1,
		StatusID:      invoicedomain.StatusPendingID,
		Total:         decimal.NewFromInt(total),
		Paid:          decimal.NewFromInt(paid),
		IssuedAt:      issued,
	}).Error)
	return orderID
}

func (f *fixture) expense(t *testing.T, typeID *int64, amount int64, date time.Time) {
	t.Helper()
	require.NoError(t, f.db.Create(&expensedomain.Expense{
		ID:            f.node.Generate().Int64(),
		Date:          date,
		Amount:        decimal.NewFromInt(amount),
		ExpenseTypeID: typeID,
		CreatedAt:     reportNow,
	}).Error)
}

func TestProfitByOrder(t *testing.T) {
	f := newFixture(t)
	orderID := f.order(t, f.acme, 500, 0, reportNow)

	userID := f.node.Generate().Int64()
	require.NoError(t, f.db.Create(&userdomain.User{ID: userID, Name: "Mecánico", Email: "m@taller.local", Password: "x", Role: "MECHANIC", Active: true}).Error)
	areaID := f.node.Generate().Int64()
	require.NoError(t, f.db.Create(&mechanicdomain.WorkArea{ID: areaID, Name: "Mecánica"}).Error)
	require.NoError(t, f.db.Create(&workordertaskdomain.WorkOrderTask{
		ID: f.node.Generate().Int64(), WorkOrderID: orderID, UserID: userID, AreaID: areaID,
		Description: "trabajo", Price: decimal.NewFromInt(120), CreatedAt: reportNow,
	}).Error)
	require.NoError(t, f.db.Create(&workorderpartdomain.WorkOrderPart{
		ID: f.node.Generate().Int64(), WorkOrderID: orderID, PartID: f.node.Generate().Int64(),
		Quantity: 2, UnitPrice: decimal.NewFromInt(40), Subtotal: decimal.NewFromInt(80),
	}).Error)

	// An order with no lines at all: full total is profit.
	f.order(t, f.globo, 200, 0, reportNow)

	rows, err := f.svc.ProfitByOrder(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, orderID, rows[0].OrderID)
	assert.Equal(t, "Acme", rows[0].ClientName)
	assert.True(t, decimal.NewFromInt(80).Equal(rows[0].PartsCost))
	assert.True(t, decimal.NewFromInt(120).Equal(rows[0].LaborCost))
	assert.True(t, decimal.NewFromInt(300).Equal(rows[0].Profit), "got %s", rows[0].Profit)

	assert.True(t, decimal.NewFromInt(200).Equal(rows[1].Profit))
}

func TestBillingAndTopClients(t *testing.T) {
	f := newFixture(t)
	f.order(t, f.acme, 300, 100, reportNow)
	f.order(t, f.acme, 200, 200, reportNow)
	f.order(t, f.globo, 150, 0, reportNow)

	billing, err := f.svc.BillingByClient(context.Background())
	require.NoError(t, err)
	require.Len(t, billing, 2)
	assert.Equal(t, "Acme", billing[0].ClientName)
	assert.True(t, decimal.NewFromInt(500).Equal(billing[0].TotalBilled))
	assert.True(t, decimal.NewFromInt(300).Equal(billing[0].TotalPaid))

	top, err := f.svc.TopClients(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Acme", top[0].ClientName)

	// Non positive limits fall back to the default instead of erroring.
	top, err = f.svc.TopClients(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, top, 2)
}

func TestMonthlyBalanceMergesBothSeries(t *testing.T) {
	f := newFixture(t)
	f.order(t, f.acme, 100, 0, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	f.order(t, f.acme, 250, 0, time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC))
	f.expense(t, nil, 40, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC))
	f.expense(t, nil, 10, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC))

	rows, err := f.svc.MonthlyBalance(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "2024-06", rows[0].Month)
	assert.True(t, decimal.NewFromInt(100).Equal(rows[0].Income))
	assert.True(t, decimal.NewFromInt(40).Equal(rows[0].Expense))
	assert.True(t, decimal.NewFromInt(60).Equal(rows[0].Balance))

	// Expense-only month shows a negative balance.
	assert.Equal(t, "2024-05", rows[1].Month)
	assert.True(t, rows[1].Income.IsZero())
	assert.True(t, decimal.NewFromInt(-10).Equal(rows[1].Balance))

	// Income-only month.
	assert.Equal(t, "2024-04", rows[2].Month)
	assert.True(t, decimal.NewFromInt(250).Equal(rows[2].Balance))
}

func TestDashboardBundlesReports(t *testing.T) {
	f := newFixture(t)
	f.order(t, f.acme, 300, 0, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	f.order(t, f.globo, 100, 0, time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC))
	f.expense(t, nil, 50, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC))

	dashboard, err := f.svc.Dashboard(context.Background())
	require.NoError(t, err)

	require.Len(t, dashboard.Balance, 2)
	assert.Equal(t, "2024-06", dashboard.Balance[0].Month)
	assert.True(t, decimal.NewFromInt(250).Equal(dashboard.Balance[0].Balance))

	require.Len(t, dashboard.TopClients, 2)
	assert.Equal(t, "Acme", dashboard.TopClients[0].ClientName)

	require.Len(t, dashboard.Income, 2)
	require.Len(t, dashboard.Expenses, 1)
	assert.True(t, decimal.NewFromInt(50).Equal(dashboard.Expenses[0].Total))
}

func TestPaymentsByMethodAndExpensesByType(t *testing.T) {
	f := newFixture(t)
	f.order(t, f.acme, 500, 0, reportNow)

	var invoice invoicedomain.Invoice
	require.NoError(t, f.db.First(&invoice).Error)

	cash := f.node.Generate().Int64()
	require.NoError(t, f.db.Create(&paymentdomain.PaymentMethod{ID: cash, Name: "Efectivo"}).Error)
	transfer := f.node.Generate().Int64()
	require.NoError(t, f.db.Create(&paymentdomain.PaymentMethod{ID: transfer, Name: "Transferencia"}).Error)
	for method, amounts := range map[int64][]int64{cash: {100, 50}, transfer: {200}} {
		for _, amount := range amounts {
			require.NoError(t, f.db.Create(&paymentdomain.Payment{
				ID: f.node.Generate().Int64(), InvoiceID: invoice.ID, MethodID: method,
				Amount: decimal.NewFromInt(amount), Date: reportNow,
			}).Error)
		}
	}

	byMethod, err := f.svc.PaymentsByMethod(context.Background())
	require.NoError(t, err)
	require.Len(t, byMethod, 2)
	assert.Equal(t, "Transferencia", byMethod[0].Method)
	assert.True(t, decimal.NewFromInt(200).Equal(byMethod[0].TotalReceived))
	assert.Equal(t, "Efectivo", byMethod[1].Method)
	assert.True(t, decimal.NewFromInt(150).Equal(byMethod[1].TotalReceived))

	fuel := f.node.Generate().Int64()
	require.NoError(t, f.db.Create(&expensedomain.ExpenseType{ID: fuel, Name: "Combustible"}).Error)
	f.expense(t, &fuel, 30, reportNow)
	f.expense(t, &fuel, 20, reportNow)
	f.expense(t, nil, 999, reportNow)

	byType, err := f.svc.ExpensesByType(context.Background())
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, "Combustible", byType[0].Type)
	assert.True(t, decimal.NewFromInt(50).Equal(byType[0].TotalAmount))
}

func TestReceivablesAging(t *testing.T) {
	f := newFixture(t)
	f.order(t, f.acme, 100, 40, reportNow.AddDate(0, 0, -9))     // 60 outstanding, 0-30
	f.order(t, f.acme, 200, 0, reportNow.AddDate(0, 0, -51))     // 200 outstanding, 31-60
	f.order(t, f.globo, 300, 100, reportNow.AddDate(0, 0, -130)) // 200 outstanding, 60+
	f.order(t, f.globo, 500, 500, reportNow.AddDate(0, 0, -51))  // settled, excluded

	aging, err := f.svc.ReceivablesAging(context.Background())
	require.NoError(t, err)
	assert.True(t, aging.AsOf.Equal(reportNow))
	require.Len(t, aging.Buckets, 3)

	assert.Equal(t, "0-30", aging.Buckets[0].Label)
	assert.Equal(t, int64(1), aging.Buckets[0].Invoices)
	assert.True(t, decimal.NewFromInt(60).Equal(aging.Buckets[0].Outstanding), "got %s", aging.Buckets[0].Outstanding)

	assert.Equal(t, "31-60", aging.Buckets[1].Label)
	assert.True(t, decimal.NewFromInt(200).Equal(aging.Buckets[1].Outstanding))

	assert.Equal(t, "60+", aging.Buckets[2].Label)
	assert.Equal(t, int64(1), aging.Buckets[2].Invoices)
	assert.True(t, decimal.NewFromInt(200).Equal(aging.Buckets[2].Outstanding))
}
