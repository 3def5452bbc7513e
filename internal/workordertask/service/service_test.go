package service

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
	invoicedomain "github.com/fleetline/taller/internal/invoice/domain"
	mechanicdomain "github.com/fleetline/taller/internal/mechanic/domain"
	truckdomain "github.com/fleetline/taller/internal/truck/domain"
	userdomain "github.com/fleetline/taller/internal/user/domain"
	workorderdomain "github.com/fleetline/taller/internal/workorder/domain"
	workorderrepo "github.com/fleetline/taller/internal/workorder/repository"
	workorderservice "github.com/fleetline/taller/internal/workorder/service"
	"github.com/fleetline/taller/internal/workordertask/domain"
	"github.com/fleetline/taller/internal/workordertask/repository"
)

type fixture struct {
	db    *gorm.DB
	svc   *Service
	node  *snowflake.Node
	clock *clock.FakeClock

	clientID int64
	truckID  int64
	userID   int64
	areaID   int64
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
		&domain.WorkOrderTask{},
		&invoicedomain.Invoice{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fake := clock.NewFakeClock(time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC))
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
		clock:  fake,
		repo:   repository.Provide(),
		orders: orders,
	}

	f := &fixture{db: db, svc: svc, node: node, clock: fake}
	f.clientID = node.Generate().Int64()
	require.NoError(t, db.Create(&clientdomain.Client{ID: f.clientID, Type: clientdomain.ClientTypePersona, Name: "Juan"}).Error)
	f.truckID = node.Generate().Int64()
	require.NoError(t, db.Create(&truckdomain.Truck{ID: f.truckID, ClientID: f.clientID, LicensePlate: "XY987ZW"}).Error)
	f.userID = node.Generate().Int64()
	require.NoError(t, db.Create(&userdomain.User{ID: f.userID, Name: "Mecánico", Email: "mec@taller.local", Password: "x", Role: "MECHANIC", Active: true}).Error)
	f.areaID = node.Generate().Int64()
	require.NoError(t, db.Create(&mechanicdomain.WorkArea{ID: f.areaID, Name: "Mecánica"}).Error)
	require.NoError(t, db.Create(&workorderdomain.WorkOrderStatus{ID: 1, Name: "Pendiente"}).Error)
	require.NoError(t, db.Create(&workorderdomain.WorkOrderStatus{ID: workorderdomain.StatusFinalizedID, Name: "Finalizada"}).Error)
	return f
}

func (f *fixture) newOrder(t *testing.T, statusID int64) int64 {
	t.Helper()
	id := f.node.Generate().Int64()
	require.NoError(t, f.db.Create(&workorderdomain.WorkOrder{
		ID:       id,
		ClientID: f.clientID,
		TruckID:  f.truckID,
		StatusID: statusID,
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

func TestCreateTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	orderID := f.newOrder(t, 1)

	task, err := f.svc.Create(ctx, domain.CreateTaskRequest{
		WorkOrderID: orderID,
		UserID:      f.userID,
		Description: " cambio de aceite ",
		AreaID:      f.areaID,
		Price:       decimal.NewFromInt(30),
	})
	require.NoError(t, err)
	assert.Equal(t, "cambio de aceite", task.Description)
	assert.False(t, task.Paid)
	assert.Nil(t, task.PaidAt)

	t.Run("rejects non positive price", func(t *testing.T) {
		_, err := f.svc.Create(ctx, domain.CreateTaskRequest{
			WorkOrderID: orderID,
			UserID:      f.userID,
			Description: "gratis",
			AreaID:      f.areaID,
			Price:       decimal.Zero,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidPrice)
	})

	t.Run("rejects invoiced order", func(t *testing.T) {
		frozen := f.newOrder(t, 1)
		f.invoiceOrder(t, frozen)

		_, err := f.svc.Create(ctx, domain.CreateTaskRequest{
			WorkOrderID: frozen,
			UserID:      f.userID,
			Description: "tarde",
			AreaID:      f.areaID,
			Price:       decimal.NewFromInt(10),
		})
		assert.ErrorIs(t, err, workorderdomain.ErrOrderInvoiced)
	})
}

func TestUpdateAndDeleteRespectInvoiceFreeze(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	orderID := f.newOrder(t, 1)

	task, err := f.svc.Create(ctx, domain.CreateTaskRequest{
		WorkOrderID: orderID,
		UserID:      f.userID,
		Description: "alineación",
		AreaID:      f.areaID,
		Price:       decimal.NewFromInt(40),
	})
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, task.ID, domain.UpdateTaskRequest{
		Price: decPtr(decimal.NewFromInt(45)),
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(45).Equal(updated.Price))

	f.invoiceOrder(t, orderID)

	_, err = f.svc.Update(ctx, task.ID, domain.UpdateTaskRequest{
		Price: decPtr(decimal.NewFromInt(50)),
	})
	assert.ErrorIs(t, err, workorderdomain.ErrOrderInvoiced)

	err = f.svc.Delete(ctx, task.ID)
	assert.ErrorIs(t, err, workorderdomain.ErrOrderInvoiced)
}

func TestMarkPaid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	orderID := f.newOrder(t, 1)

	var ids []int64
	for i := 0; i < 3; i++ {
		task, err := f.svc.Create(ctx, domain.CreateTaskRequest{
			WorkOrderID: orderID,
			UserID:      f.userID,
			Description: fmt.Sprintf("tarea %d", i),
			AreaID:      f.areaID,
			Price:       decimal.NewFromInt(10),
		})
		require.NoError(t, err)
		ids = append(ids, task.ID)
	}

	t.Run("empty id list rejected", func(t *testing.T) {
		_, err := f.svc.MarkPaid(ctx, domain.MarkPaidRequest{Paid: true})
		assert.ErrorIs(t, err, domain.ErrNoTaskIDs)
	})

	t.Run("paid_at defaults to now when marking paid", func(t *testing.T) {
		resp, err := f.svc.MarkPaid(ctx, domain.MarkPaidRequest{TaskIDs: ids[:2], Paid: true})
		require.NoError(t, err)
		assert.Equal(t, int64(2), resp.Updated)

		var task domain.WorkOrderTask
		require.NoError(t, f.db.First(&task, "id = ?", ids[0]).Error)
		assert.True(t, task.Paid)
		require.NotNil(t, task.PaidAt)
		assert.True(t, task.PaidAt.Equal(f.clock.Now()))
	})

	t.Run("missing ids lower the count", func(t *testing.T) {
		resp, err := f.svc.MarkPaid(ctx, domain.MarkPaidRequest{TaskIDs: []int64{ids[2], 424242}, Paid: true})
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.Updated)
	})

	t.Run("unmarking clears paid_at", func(t *testing.T) {
		resp, err := f.svc.MarkPaid(ctx, domain.MarkPaidRequest{TaskIDs: ids[:1], Paid: false})
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.Updated)

		var task domain.WorkOrderTask
		require.NoError(t, f.db.First(&task, "id = ?", ids[0]).Error)
		assert.False(t, task.Paid)
		assert.Nil(t, task.PaidAt)
	})

	t.Run("settlement ignores invoice freeze", func(t *testing.T) {
		f.invoiceOrder(t, orderID)
		resp, err := f.svc.MarkPaid(ctx, domain.MarkPaidRequest{TaskIDs: ids, Paid: true})
		require.NoError(t, err)
		assert.Equal(t, int64(3), resp.Updated)
	})
}

func TestEarnings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	openOrder := f.newOrder(t, 1)
	doneOrder := f.newOrder(t, workorderdomain.StatusFinalizedID)

	otherArea := f.node.Generate().Int64()
	require.NoError(t, f.db.Create(&mechanicdomain.WorkArea{ID: otherArea, Name: "Electricidad"}).Error)

	mk := func(orderID, areaID int64, price int64, external bool) domain.WorkOrderTask {
		task, err := f.svc.Create(ctx, domain.CreateTaskRequest{
			WorkOrderID: orderID,
			UserID:      f.userID,
			Description: "trabajo",
			AreaID:      areaID,
			Price:       decimal.NewFromInt(price),
			External:    external,
		})
		require.NoError(t, err)
		return task
	}

	mk(openOrder, f.areaID, 100, false)
	mk(doneOrder, f.areaID, 40, false)
	mk(doneOrder, f.areaID, 60, true)
	mk(doneOrder, otherArea, 500, false)

	t.Run("itemized and summary agree", func(t *testing.T) {
		resp, err := f.svc.Earnings(ctx, domain.EarningsRequest{AreaID: f.areaID})
		require.NoError(t, err)
		assert.Len(t, resp.Tasks, 3)
		assert.Equal(t, int64(3), resp.Count)
		assert.True(t, decimal.NewFromInt(200).Equal(resp.TotalAmount), "got %s", resp.TotalAmount)

		sum := decimal.Zero
		for _, task := range resp.Tasks {
			sum = sum.Add(task.Price)
		}
		assert.True(t, sum.Equal(resp.TotalAmount))

		require.Len(t, resp.ByUser, 1)
		assert.Equal(t, f.userID, resp.ByUser[0].UserID)
		assert.Equal(t, int64(3), resp.ByUser[0].Count)
	})

	t.Run("only finalized orders", func(t *testing.T) {
		resp, err := f.svc.Earnings(ctx, domain.EarningsRequest{AreaID: f.areaID, OnlyFinalized: true})
		require.NoError(t, err)
		assert.Equal(t, int64(2), resp.Count)
		assert.True(t, decimal.NewFromInt(100).Equal(resp.TotalAmount), "got %s", resp.TotalAmount)
	})

	t.Run("external filter", func(t *testing.T) {
		external := true
		resp, err := f.svc.Earnings(ctx, domain.EarningsRequest{AreaID: f.areaID, External: &external})
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.Count)
		assert.True(t, decimal.NewFromInt(60).Equal(resp.TotalAmount))
	})

	t.Run("echoes requested filters", func(t *testing.T) {
		paid := false
		external := true
		day := f.clock.Now()
		resp, err := f.svc.Earnings(ctx, domain.EarningsRequest{
			AreaID:        f.areaID,
			Paid:          &paid,
			From:          &day,
			To:            &day,
			OnlyFinalized: true,
			External:      &external,
		})
		require.NoError(t, err)
		assert.Equal(t, f.areaID, resp.AreaID)
		require.NotNil(t, resp.Paid)
		assert.False(t, *resp.Paid)
		require.NotNil(t, resp.From)
		assert.True(t, resp.From.Equal(day))
		require.NotNil(t, resp.To)
		assert.True(t, resp.To.Equal(day))
		assert.True(t, resp.OnlyFinalized)
		require.NotNil(t, resp.External)
		assert.True(t, *resp.External)

		resp, err = f.svc.Earnings(ctx, domain.EarningsRequest{AreaID: f.areaID})
		require.NoError(t, err)
		assert.Nil(t, resp.Paid)
		assert.Nil(t, resp.From)
		assert.Nil(t, resp.To)
		assert.False(t, resp.OnlyFinalized)
		assert.Nil(t, resp.External)
	})

	t.Run("date window filters on creation day", func(t *testing.T) {
		day := f.clock.Now()
		resp, err := f.svc.Earnings(ctx, domain.EarningsRequest{AreaID: f.areaID, From: &day, To: &day})
		require.NoError(t, err)
		assert.Equal(t, int64(3), resp.Count)

		nextDay := day.AddDate(0, 0, 1)
		resp, err = f.svc.Earnings(ctx, domain.EarningsRequest{AreaID: f.areaID, From: &nextDay})
		require.NoError(t, err)
		assert.Equal(t, int64(0), resp.Count)
		assert.True(t, resp.TotalAmount.IsZero())
	})
}

func decPtr(d decimal.Decimal) *decimal.Decimal { return &d }
