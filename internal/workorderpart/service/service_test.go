package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	clientdomain "github.com/fleetline/taller/internal/client/domain"
	invoicedomain "github.com/fleetline/taller/internal/invoice/domain"
	partdomain "github.com/fleetline/taller/internal/part/domain"
	truckdomain "github.com/fleetline/taller/internal/truck/domain"
	workorderdomain "github.com/fleetline/taller/internal/workorder/domain"
	workorderrepo "github.com/fleetline/taller/internal/workorder/repository"
	workorderservice "github.com/fleetline/taller/internal/workorder/service"
	"github.com/fleetline/taller/internal/workorderpart/domain"
	"github.com/fleetline/taller/internal/workorderpart/repository"
)

type fixture struct {
	db   *gorm.DB
	svc  *Service
	node *snowflake.Node

	clientID int64
	truckID  int64
	partID   int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&clientdomain.Client{},
		&truckdomain.Truck{},
		&partdomain.Part{},
		&workorderdomain.WorkOrderStatus{},
		&workorderdomain.WorkOrder{},
		&domain.WorkOrderPart{},
		&invoicedomain.Invoice{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	log := zaptest.NewLogger(t)

	orders := workorderservice.New(workorderservice.Params{
		DB:    db,
		Log:   log,
		GenID: node,
		Repo:  workorderrepo.Provide(),
	})
	svc := &Service{
		db:     db,
		log:    log,
		genID:  node,
		repo:   repository.Provide(),
		orders: orders,
	}

	f := &fixture{db: db, svc: svc, node: node}
	f.clientID = node.Generate().Int64()
	require.NoError(t, db.Create(&clientdomain.Client{ID: f.clientID, Type: clientdomain.ClientTypeEmpresa, Name: "Transportes Sur"}).Error)
	f.truckID = node.Generate().Int64()
	require.NoError(t, db.Create(&truckdomain.Truck{ID: f.truckID, ClientID: f.clientID, LicensePlate: "CD456EF"}).Error)
	f.partID = node.Generate().Int64()
	require.NoError(t, db.Create(&partdomain.Part{ID: f.partID, Name: "Filtro de aire", Price: decimal.NewFromInt(12), Cost: decimal.NewFromInt(8)}).Error)
	require.NoError(t, db.Create(&workorderdomain.WorkOrderStatus{ID: 1, Name: "Pendiente"}).Error)
	return f
}

func (f *fixture) newOrder(t *testing.T) int64 {
	t.Helper()
	id := f.node.Generate().Int64()
	require.NoError(t, f.db.Create(&workorderdomain.WorkOrder{
		ID:       id,
		ClientID: f.clientID,
		TruckID:  f.truckID,
		StatusID: 1,
	}).Error)
	return id
}

func (f *fixture) invoiceOrder(t *testing.T, orderID int64) {
	t.Helper()
	require.NoError(t, f.db.Create(&invoicedomain.Invoice{
		ID:            f.node.Generate().Int64(),
		WorkOrderID:   orderID,
		ClientID:      f.clientID,
		InvoiceTypeID: 1,
		StatusID:      1,
		Total:         decimal.NewFromInt(100),
	}).Error)
}

func TestCreateDerivesSubtotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	orderID := f.newOrder(t)

	t.Run("with increment", func(t *testing.T) {
		inc := decimal.NewFromInt(10)
		part, err := f.svc.Create(ctx, domain.CreateWorkOrderPartRequest{
			WorkOrderID:      orderID,
			PartID:           f.partID,
			Quantity:         2,
			IncrementPerUnit: &inc,
			UnitPrice:        decimal.NewFromInt(10),
		})
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(22).Equal(part.Subtotal), "got %s", part.Subtotal)
	})

	t.Run("without increment", func(t *testing.T) {
		part, err := f.svc.Create(ctx, domain.CreateWorkOrderPartRequest{
			WorkOrderID: orderID,
			PartID:      f.partID,
			Quantity:    3,
			UnitPrice:   decimal.NewFromInt(15),
		})
		require.NoError(t, err)
		assert.False(t, part.IncrementPerUnit.Valid)
		assert.True(t, decimal.NewFromInt(45).Equal(part.Subtotal), "got %s", part.Subtotal)
	})

	t.Run("invalid quantity", func(t *testing.T) {
		_, err := f.svc.Create(ctx, domain.CreateWorkOrderPartRequest{
			WorkOrderID: orderID,
			PartID:      f.partID,
			Quantity:    0,
			UnitPrice:   decimal.NewFromInt(15),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	})

	t.Run("negative price", func(t *testing.T) {
		_, err := f.svc.Create(ctx, domain.CreateWorkOrderPartRequest{
			WorkOrderID: orderID,
			PartID:      f.partID,
			Quantity:    1,
			UnitPrice:   decimal.NewFromInt(-5),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidPrice)
	})
}

func TestUpdateRecomputesSubtotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	orderID := f.newOrder(t)

	inc := decimal.NewFromInt(10)
	part, err := f.svc.Create(ctx, domain.CreateWorkOrderPartRequest{
		WorkOrderID:      orderID,
		PartID:           f.partID,
		Quantity:         2,
		IncrementPerUnit: &inc,
		UnitPrice:        decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	qty := 4
	updated, err := f.svc.Update(ctx, part.ID, domain.UpdateWorkOrderPartRequest{Quantity: &qty})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(44).Equal(updated.Subtotal), "got %s", updated.Subtotal)

	price := decimal.NewFromInt(20)
	updated, err = f.svc.Update(ctx, part.ID, domain.UpdateWorkOrderPartRequest{UnitPrice: &price})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(88).Equal(updated.Subtotal), "got %s", updated.Subtotal)

	_, err = f.svc.Update(ctx, 424242, domain.UpdateWorkOrderPartRequest{Quantity: &qty})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceFreezesLines(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	orderID := f.newOrder(t)

	part, err := f.svc.Create(ctx, domain.CreateWorkOrderPartRequest{
		WorkOrderID: orderID,
		PartID:      f.partID,
		Quantity:    1,
		UnitPrice:   decimal.NewFromInt(30),
	})
	require.NoError(t, err)

	f.invoiceOrder(t, orderID)

	_, err = f.svc.Create(ctx, domain.CreateWorkOrderPartRequest{
		WorkOrderID: orderID,
		PartID:      f.partID,
		Quantity:    1,
		UnitPrice:   decimal.NewFromInt(5),
	})
	assert.ErrorIs(t, err, workorderdomain.ErrOrderInvoiced)

	qty := 2
	_, err = f.svc.Update(ctx, part.ID, domain.UpdateWorkOrderPartRequest{Quantity: &qty})
	assert.ErrorIs(t, err, workorderdomain.ErrOrderInvoiced)

	assert.ErrorIs(t, f.svc.Delete(ctx, part.ID), workorderdomain.ErrOrderInvoiced)
}

func TestUpdateMoveToOtherOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	orderID := f.newOrder(t)
	frozen := f.newOrder(t)
	f.invoiceOrder(t, frozen)

	part, err := f.svc.Create(ctx, domain.CreateWorkOrderPartRequest{
		WorkOrderID: orderID,
		PartID:      f.partID,
		Quantity:    1,
		UnitPrice:   decimal.NewFromInt(30),
	})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, part.ID, domain.UpdateWorkOrderPartRequest{WorkOrderID: &frozen})
	assert.ErrorIs(t, err, workorderdomain.ErrOrderInvoiced)

	open := f.newOrder(t)
	moved, err := f.svc.Update(ctx, part.ID, domain.UpdateWorkOrderPartRequest{WorkOrderID: &open})
	require.NoError(t, err)
	assert.Equal(t, open, moved.WorkOrderID)
}
