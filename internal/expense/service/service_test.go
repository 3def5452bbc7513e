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

	"github.com/fleetline/taller/internal/expense/domain"
	"github.com/fleetline/taller/internal/expense/repository"
	"github.com/fleetline/taller/internal/refcheck"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.ExpenseType{}, &domain.Expense{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return &Service{
		db:    db,
		log:   zaptest.NewLogger(t),
		genID: node,
		repo:  repository.Provide(),
	}
}

func TestExpenseTypes(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateType(ctx, domain.CreateExpenseTypeRequest{Name: " Combustible "})
	require.NoError(t, err)
	assert.Equal(t, "Combustible", created.Name)

	_, err = svc.CreateType(ctx, domain.CreateExpenseTypeRequest{Name: "Combustible"})
	assert.ErrorIs(t, err, domain.ErrDuplicateType)

	types, err := svc.ListTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 1)
}

func TestCreateExpense(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	day := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)

	fuel, err := svc.CreateType(ctx, domain.CreateExpenseTypeRequest{Name: "Combustible"})
	require.NoError(t, err)

	expense, err := svc.Create(ctx, domain.CreateExpenseRequest{
		Date:          day,
		Amount:        decimal.NewFromInt(150),
		Description:   " gasoil camión grúa ",
		ExpenseTypeID: &fuel.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "gasoil camión grúa", expense.Description)

	t.Run("untyped expense allowed", func(t *testing.T) {
		_, err := svc.Create(ctx, domain.CreateExpenseRequest{
			Date:   day,
			Amount: decimal.NewFromInt(20),
		})
		assert.NoError(t, err)
	})

	t.Run("non positive amount rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, domain.CreateExpenseRequest{Date: day, Amount: decimal.Zero})
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		bogus := int64(424242)
		_, err := svc.Create(ctx, domain.CreateExpenseRequest{
			Date:          day,
			Amount:        decimal.NewFromInt(5),
			ExpenseTypeID: &bogus,
		})
		var notFound *refcheck.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "expense_type", notFound.Kind)
	})
}

func TestListExpenseFilters(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	fuel, err := svc.CreateType(ctx, domain.CreateExpenseTypeRequest{Name: "Combustible"})
	require.NoError(t, err)
	rent, err := svc.CreateType(ctx, domain.CreateExpenseTypeRequest{Name: "Alquiler"})
	require.NoError(t, err)

	seed := []struct {
		typeID *int64
		amount int64
		day    time.Time
	}{
		{&fuel.ID, 100, time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)},
		{&fuel.ID, 120, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)},
		{&rent.ID, 900, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, row := range seed {
		_, err := svc.Create(ctx, domain.CreateExpenseRequest{
			Date:          row.day,
			Amount:        decimal.NewFromInt(row.amount),
			ExpenseTypeID: row.typeID,
		})
		require.NoError(t, err)
	}

	byType, err := svc.List(ctx, domain.ListExpenseRequest{ExpenseTypeID: fuel.ID})
	require.NoError(t, err)
	assert.Len(t, byType, 2)

	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	june, err := svc.List(ctx, domain.ListExpenseRequest{From: &from})
	require.NoError(t, err)
	assert.Len(t, june, 2)

	to := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
	may, err := svc.List(ctx, domain.ListExpenseRequest{To: &to})
	require.NoError(t, err)
	require.Len(t, may, 1)
	assert.True(t, decimal.NewFromInt(100).Equal(may[0].Amount))
}

func TestDeleteExpense(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	expense, err := svc.Create(ctx, domain.CreateExpenseRequest{
		Date:   time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
		Amount: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, expense.ID))
	assert.ErrorIs(t, svc.Delete(ctx, expense.ID), domain.ErrNotFound)
}
