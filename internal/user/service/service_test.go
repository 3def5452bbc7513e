package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	authdomain "github.com/fleetline/taller/internal/auth/domain"
	"github.com/fleetline/taller/internal/auth/password"
	"github.com/fleetline/taller/internal/user/domain"
	"github.com/fleetline/taller/internal/user/repository"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return &Service{
		db:    db,
		log:   zaptest.NewLogger(t),
		genID: node,
		repo:  repository.Provide(),
	}
}

func TestCreateUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, domain.CreateUserRequest{
		Name:     "Laura Díaz",
		Email:    " Laura@Taller.Local ",
		Password: "correcthorse",
		Role:     authdomain.RoleRevisor,
	})
	require.NoError(t, err)
	assert.Equal(t, "laura@taller.local", user.Email)
	assert.True(t, user.Active)
	assert.NotEqual(t, "correcthorse", user.Password)
	assert.True(t, password.Verify("correcthorse", user.Password))

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, domain.CreateUserRequest{
			Name:     "Otra",
			Email:    "laura@taller.local",
			Password: "correcthorse",
			Role:     authdomain.RoleMechanic,
		})
		assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	})

	t.Run("short password rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, domain.CreateUserRequest{
			Name:     "Corta",
			Email:    "corta@taller.local",
			Password: "short",
			Role:     authdomain.RoleMechanic,
		})
		assert.ErrorIs(t, err, domain.ErrWeakPassword)
	})

	t.Run("bad role rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, domain.CreateUserRequest{
			Name:     "Rol",
			Email:    "rol@taller.local",
			Password: "correcthorse",
			Role:     "SUPERVISOR",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidRole)
	})

	t.Run("bad email rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, domain.CreateUserRequest{
			Name:     "Mail",
			Email:    "not-an-email",
			Password: "correcthorse",
			Role:     authdomain.RoleMechanic,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
	})
}

func TestUpdateUserPassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, domain.CreateUserRequest{
		Name:     "Laura",
		Email:    "laura@taller.local",
		Password: "correcthorse",
		Role:     authdomain.RoleRevisor,
	})
	require.NoError(t, err)

	next := "batterystaple"
	updated, err := svc.Update(ctx, user.ID, domain.UpdateUserRequest{Password: &next})
	require.NoError(t, err)
	assert.True(t, password.Verify(next, updated.Password))
	assert.False(t, password.Verify("correcthorse", updated.Password))

	weak := "1234"
	_, err = svc.Update(ctx, user.ID, domain.UpdateUserRequest{Password: &weak})
	assert.ErrorIs(t, err, domain.ErrWeakPassword)
}

func TestDeactivateKeepsRow(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, domain.CreateUserRequest{
		Name:     "Marcos",
		Email:    "marcos@taller.local",
		Password: "correcthorse",
		Role:     authdomain.RoleMechanic,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, user.ID))

	got, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	active := true
	users, err := svc.List(ctx, domain.ListUserRequest{Active: &active})
	require.NoError(t, err)
	assert.Empty(t, users)

	assert.ErrorIs(t, svc.Deactivate(ctx, 424242), domain.ErrNotFound)
}
