package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	authdomain "github.com/fleetline/taller/internal/auth/domain"
	"github.com/fleetline/taller/internal/auth/password"
	invoicedomain "github.com/fleetline/taller/internal/invoice/domain"
	mechanicdomain "github.com/fleetline/taller/internal/mechanic/domain"
	paymentdomain "github.com/fleetline/taller/internal/payment/domain"
	userdomain "github.com/fleetline/taller/internal/user/domain"
	workorderdomain "github.com/fleetline/taller/internal/workorder/domain"
)

const (
	defaultAdminEmail    = "admin@taller.local"
	defaultAdminPassword = "admin"
	defaultAdminName     = "Administrador"
)

// EnsureReferenceData seeds the lookup tables and the bootstrap admin user
// so a fresh database is usable without manual inserts. Safe to run on
// every startup.
func EnsureReferenceData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureWorkOrderStatuses(ctx, tx); err != nil {
			return err
		}
		if err := ensureInvoiceStatuses(ctx, tx); err != nil {
			return err
		}
		if err := ensureInvoiceTypes(ctx, tx); err != nil {
			return err
		}
		if err := ensurePaymentMethods(ctx, tx); err != nil {
			return err
		}
		if err := ensureWorkAreas(ctx, tx); err != nil {
			return err
		}
		return ensureAdminUser(ctx, tx, node)
	})
}

func ensureWorkOrderStatuses(ctx context.Context, tx *gorm.DB) error {
	statuses := []workorderdomain.WorkOrderStatus{
		{ID: 1, Name: "Pendiente"},
		{ID: 2, Name: "En Proceso"},
		{ID: workorderdomain.StatusFinalizedID, Name: "Finalizada"},
	}
	for _, status := range statuses {
		if err := firstOrCreate(ctx, tx, &workorderdomain.WorkOrderStatus{}, status.ID, &status); err != nil {
			return err
		}
	}
	return nil
}

func ensureInvoiceStatuses(ctx context.Context, tx *gorm.DB) error {
	statuses := []invoicedomain.InvoiceStatus{
		{ID: invoicedomain.StatusPendingID, Name: "Pendiente"},
		{ID: invoicedomain.StatusAcceptedID, Name: "Aceptada"},
	}
	for _, status := range statuses {
		if err := firstOrCreate(ctx, tx, &invoicedomain.InvoiceStatus{}, status.ID, &status); err != nil {
			return err
		}
	}
	return nil
}

func ensureInvoiceTypes(ctx context.Context, tx *gorm.DB) error {
	types := []invoicedomain.InvoiceType{
		{ID: 1, Code: "A"},
		{ID: 2, Code: "B"},
		{ID: 3, Code: "C", Surcharge: decimal.NewNullDecimal(decimal.NewFromFloat(10.5))},
	}
	for _, invoiceType := range types {
		if err := firstOrCreate(ctx, tx, &invoicedomain.InvoiceType{}, invoiceType.ID, &invoiceType); err != nil {
			return err
		}
	}
	return nil
}

func ensurePaymentMethods(ctx context.Context, tx *gorm.DB) error {
	methods := []paymentdomain.PaymentMethod{
		{ID: 1, Name: "Efectivo"},
		{ID: 2, Name: "Transferencia"},
		{ID: 3, Name: "Cheque"},
		{ID: 4, Name: "Tarjeta"},
	}
	for _, method := range methods {
		if err := firstOrCreate(ctx, tx, &paymentdomain.PaymentMethod{}, method.ID, &method); err != nil {
			return err
		}
	}
	return nil
}

func ensureWorkAreas(ctx context.Context, tx *gorm.DB) error {
	areas := []mechanicdomain.WorkArea{
		{ID: 1, Name: "Mecánica"},
		{ID: 2, Name: "Electricidad"},
		{ID: 3, Name: "Chapa y Pintura"},
		{ID: 4, Name: "Gomería"},
	}
	for _, area := range areas {
		if err := firstOrCreate(ctx, tx, &mechanicdomain.WorkArea{}, area.ID, &area); err != nil {
			return err
		}
	}
	return nil
}

func ensureAdminUser(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	var user userdomain.User
	err := tx.WithContext(ctx).
		Where("email = ?", defaultAdminEmail).
		First(&user).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := password.Hash(defaultAdminPassword)
	if err != nil {
		return err
	}
	user = userdomain.User{
		ID:        node.Generate().Int64(),
		Name:      defaultAdminName,
		Email:     strings.ToLower(defaultAdminEmail),
		Password:  hashed,
		Role:      authdomain.RoleAdmin,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	return tx.WithContext(ctx).Create(&user).Error
}

func firstOrCreate(ctx context.Context, tx *gorm.DB, probe any, id int64, row any) error {
	err := tx.WithContext(ctx).First(probe, "id = ?", id).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return tx.WithContext(ctx).Create(row).Error
}
