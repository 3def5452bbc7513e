package service

import (
	"context"
	"errors"
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
	invoicedomain "github.com/fleetline/taller/internal/invoice/domain"
	"github.com/fleetline/taller/internal/payment/domain"
	"github.com/fleetline/taller/internal/payment/repository"
	"github.com/fleetline/taller/internal/refcheck"
	truckdomain "github.com/fleetline/taller/internal/truck/domain"
	workorderdomain "github.com/fleetline/taller/internal/workorder/domain"
)

// recordingNotifier captures maturity notices; fail makes every call
// error to prove notification failures never unwind a payment.
type recordingNotifier struct {
	checks []domain.BankCheck
	fail   bool
}

func (n *recordingNotifier) NotifyDueCheck(_ context.Context, check domain.BankCheck) error {
	if n.fail {
		return errors.New("smtp down")
	}
	n.checks = append(n.checks, check)
	return nil
}

type fixture struct {
	db       *gorm.DB
	svc      *Service
	node     *snowflake.Node
	notifier *recordingNotifier

	clientID  int64
	invoiceID int64
	cashID    int64
	checkID   int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&clientdomain.Client{},
		&truckdomain.Truck{},
		&workorderdomain.WorkOrderStatus{},
		&workorderdomain.WorkOrder{},
		&invoicedomain.InvoiceStatus{},
		&invoicedomain.InvoiceType{},
		&invoicedomain.Invoice{},
		&domain.PaymentMethod{},
		&domain.Payment{},
		&domain.BankCheck{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	notifier := &recordingNotifier{}
	svc := &Service{
		db:       db,
		log:      zaptest.NewLogger(t),
		genID:    node,
		clock:    clock.NewFakeClock(time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)),
		repo:     repository.Provide(),
		notifier: notifier,
	}

	f := &fixture{db: db, svc: svc, node: node, notifier: notifier}
	f.clientID = node.Generate().Int64()
	require.NoError(t, db.Create(&clientdomain.Client{ID: f.clientID, Type: clientdomain.ClientTypeEmpresa, Name: "Agro SA"}).Error)
	truckID := node.Generate().Int64()
	require.NoError(t, db.Create(&truckdomain.Truck{ID: truckID, ClientID: f.clientID, LicensePlate: "KL012MN"}).Error)
	require.NoError(t, db.Create(&workorderdomain.WorkOrderStatus{ID: 1, Name: "Pendiente"}).Error)
	orderID := node.Generate().Int64()
	require.NoError(t, db.Create(&workorderdomain.WorkOrder{ID: orderID, ClientID: f.clientID, TruckID: truckID, StatusID: 1}).Error)
	require.NoError(t, db.Create(&invoicedomain.InvoiceStatus{ID: invoicedomain.StatusPendingID, Name: "Pendiente"}).Error)
	typeID := node.Generate().Int64()
	require.NoError(t, db.Create(&invoicedomain.InvoiceType{ID: typeID, Code: "B"}).Error)
	f.invoiceID = node.Generate().Int64()
	require.NoError(t, db.Create(&invoicedomain.Invoice{
		ID:            f.invoiceID,
		WorkOrderID:   orderID,
		ClientID:      f.clientID,
		InvoiceTypeID: typeID,
		StatusID:      invoicedomain.StatusPendingID,
		Total:         decimal.NewFromInt(100),
		Paid:          decimal.Zero,
	}).Error)
	f.cashID = node.Generate().Int64()
	require.NoError(t, db.Create(&domain.PaymentMethod{ID: f.cashID, Name: "Efectivo"}).Error)
	f.checkID = node.Generate().Int64()
	require.NoError(t, db.Create(&domain.PaymentMethod{ID: f.checkID, Name: "Cheque"}).Error)
	return f
}

func (f *fixture) invoicePaid(t *testing.T) decimal.Decimal {
	t.Helper()
	var invoice invoicedomain.Invoice
	require.NoError(t, f.db.First(&invoice, "id = ?", f.invoiceID).Error)
	return invoice.Paid
}

func TestCreateAccruesOntoInvoice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, domain.CreatePaymentRequest{
		InvoiceID: f.invoiceID,
		MethodID:  f.cashID,
		Amount:    decimal.NewFromInt(60),
		Reference: " recibo 12 ",
	})
	require.NoError(t, err)
	assert.Equal(t, "recibo 12", first.Reference)
	require.NotNil(t, first.Method)
	assert.Equal(t, "Efectivo", first.Method.Name)
	assert.True(t, decimal.NewFromInt(60).Equal(f.invoicePaid(t)))

	_, err = f.svc.Create(ctx, domain.CreatePaymentRequest{
		InvoiceID: f.invoiceID,
		MethodID:  f.cashID,
		Amount:    decimal.NewFromInt(30),
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(90).Equal(f.invoicePaid(t)))

	t.Run("overpayment is accepted", func(t *testing.T) {
		_, err := f.svc.Create(ctx, domain.CreatePaymentRequest{
			InvoiceID: f.invoiceID,
			MethodID:  f.cashID,
			Amount:    decimal.NewFromInt(50),
		})
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(140).Equal(f.invoicePaid(t)), "got %s", f.invoicePaid(t))
	})

	t.Run("non positive amount rejected", func(t *testing.T) {
		_, err := f.svc.Create(ctx, domain.CreatePaymentRequest{
			InvoiceID: f.invoiceID,
			MethodID:  f.cashID,
			Amount:    decimal.Zero,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})

	t.Run("unknown invoice rejected", func(t *testing.T) {
		_, err := f.svc.Create(ctx, domain.CreatePaymentRequest{
			InvoiceID: 424242,
			MethodID:  f.cashID,
			Amount:    decimal.NewFromInt(10),
		})
		var notFound *refcheck.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "invoice", notFound.Kind)
	})
}

func TestCreateWithChecks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	due := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)

	payment, err := f.svc.Create(ctx, domain.CreatePaymentRequest{
		InvoiceID: f.invoiceID,
		MethodID:  f.checkID,
		Amount:    decimal.NewFromInt(100),
		BankChecks: []domain.BankCheckItem{
			{BankName: "Banco Nación", CheckNumber: "00012345", Amount: decimal.NewFromInt(60), Type: domain.CheckPhysical, DueDate: &due},
			{BankName: "Banco Galicia", CheckNumber: "00098765", Amount: decimal.NewFromInt(40), Type: domain.CheckElectronic},
		},
	})
	require.NoError(t, err)
	require.Len(t, payment.BankChecks, 2)
	for _, check := range payment.BankChecks {
		assert.NotZero(t, check.ID)
		assert.Equal(t, payment.ID, check.PaymentID)
		assert.Nil(t, check.ExchangeDate)
	}

	// Only the check with a due date produces a notice.
	require.Len(t, f.notifier.checks, 1)
	assert.Equal(t, "00012345", f.notifier.checks[0].CheckNumber)

	t.Run("invalid check type rejected", func(t *testing.T) {
		_, err := f.svc.Create(ctx, domain.CreatePaymentRequest{
			InvoiceID: f.invoiceID,
			MethodID:  f.checkID,
			Amount:    decimal.NewFromInt(10),
			BankChecks: []domain.BankCheckItem{
				{BankName: "Banco", CheckNumber: "1", Amount: decimal.NewFromInt(10), Type: "PAPER"},
			},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidCheckType)
	})
}

func TestNotifierFailureDoesNotUnwindPayment(t *testing.T) {
	f := newFixture(t)
	f.notifier.fail = true
	due := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)

	_, err := f.svc.Create(context.Background(), domain.CreatePaymentRequest{
		InvoiceID: f.invoiceID,
		MethodID:  f.checkID,
		Amount:    decimal.NewFromInt(25),
		BankChecks: []domain.BankCheckItem{
			{BankName: "Banco", CheckNumber: "7", Amount: decimal.NewFromInt(25), Type: domain.CheckPhysical, DueDate: &due},
		},
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(25).Equal(f.invoicePaid(t)))
}

func TestExchangeCheck(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	payment, err := f.svc.Create(ctx, domain.CreatePaymentRequest{
		InvoiceID: f.invoiceID,
		MethodID:  f.checkID,
		Amount:    decimal.NewFromInt(50),
		BankChecks: []domain.BankCheckItem{
			{BankName: "Banco", CheckNumber: "42", Amount: decimal.NewFromInt(50), Type: domain.CheckPhysical},
		},
	})
	require.NoError(t, err)
	checkID := payment.BankChecks[0].ID

	exchanged, err := f.svc.ExchangeCheck(ctx, checkID, domain.ExchangeCheckRequest{})
	require.NoError(t, err)
	require.NotNil(t, exchanged.ExchangeDate)
	assert.True(t, exchanged.ExchangeDate.Equal(f.svc.clock.Now()))

	_, err = f.svc.ExchangeCheck(ctx, checkID, domain.ExchangeCheckRequest{})
	assert.ErrorIs(t, err, domain.ErrCheckExchanged)

	_, err = f.svc.ExchangeCheck(ctx, 424242, domain.ExchangeCheckRequest{})
	assert.ErrorIs(t, err, domain.ErrCheckNotFound)
}

func TestTotalsAndLists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, amount := range []int64{20, 30} {
		_, err := f.svc.Create(ctx, domain.CreatePaymentRequest{
			InvoiceID: f.invoiceID,
			MethodID:  f.cashID,
			Amount:    decimal.NewFromInt(amount),
		})
		require.NoError(t, err)
	}
	_, err := f.svc.Create(ctx, domain.CreatePaymentRequest{
		InvoiceID: f.invoiceID,
		MethodID:  f.checkID,
		Amount:    decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	total, err := f.svc.TotalByInvoice(ctx, f.invoiceID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(60).Equal(total.Total), "got %s", total.Total)

	byMethod, err := f.svc.List(ctx, domain.ListPaymentRequest{MethodID: f.cashID})
	require.NoError(t, err)
	assert.Len(t, byMethod, 2)

	all, err := f.svc.List(ctx, domain.ListPaymentRequest{InvoiceID: f.invoiceID})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
