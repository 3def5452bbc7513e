package migration

import (
	"github.com/fleetline/taller/internal/config"
	"github.com/fleetline/taller/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"

	clientdomain "github.com/fleetline/taller/internal/client/domain"
	expensedomain "github.com/fleetline/taller/internal/expense/domain"
	invoicedomain "github.com/fleetline/taller/internal/invoice/domain"
	mechanicdomain "github.com/fleetline/taller/internal/mechanic/domain"
	partdomain "github.com/fleetline/taller/internal/part/domain"
	paymentdomain "github.com/fleetline/taller/internal/payment/domain"
	truckdomain "github.com/fleetline/taller/internal/truck/domain"
	userdomain "github.com/fleetline/taller/internal/user/domain"
	workorderdomain "github.com/fleetline/taller/internal/workorder/domain"
	workorderpartdomain "github.com/fleetline/taller/internal/workorderpart/domain"
	workordertaskdomain "github.com/fleetline/taller/internal/workordertask/domain"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// Versioned migrations are postgres only; other dialects are
			// for local development and get the schema from gorm.
			if err := conn.AutoMigrate(
				&clientdomain.Client{},
				&truckdomain.Truck{},
				&userdomain.User{},
				&partdomain.Part{},
				&expensedomain.ExpenseType{},
				&expensedomain.Expense{},
				&workorderdomain.WorkOrderStatus{},
				&workorderdomain.WorkOrder{},
				&mechanicdomain.WorkArea{},
				&mechanicdomain.WorkOrderMechanic{},
				&workordertaskdomain.WorkOrderTask{},
				&workorderpartdomain.WorkOrderPart{},
				&invoicedomain.InvoiceStatus{},
				&invoicedomain.InvoiceType{},
				&invoicedomain.Invoice{},
				&paymentdomain.PaymentMethod{},
				&paymentdomain.Payment{},
				&paymentdomain.BankCheck{},
			); err != nil {
				return err
			}
		}

		return seed.EnsureReferenceData(conn)
	}),
)
