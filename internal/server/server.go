package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/fleetline/taller/internal/auth"
	authdomain "github.com/fleetline/taller/internal/auth/domain"
	"github.com/fleetline/taller/internal/client"
	clientdomain "github.com/fleetline/taller/internal/client/domain"
	"github.com/fleetline/taller/internal/config"
	"github.com/fleetline/taller/internal/expense"
	expensedomain "github.com/fleetline/taller/internal/expense/domain"
	"github.com/fleetline/taller/internal/invoice"
	invoicedomain "github.com/fleetline/taller/internal/invoice/domain"
	"github.com/fleetline/taller/internal/mechanic"
	mechanicdomain "github.com/fleetline/taller/internal/mechanic/domain"
	"github.com/fleetline/taller/internal/notification"
	"github.com/fleetline/taller/internal/observability"
	obsmiddleware "github.com/fleetline/taller/internal/observability/logger"
	obsmetrics "github.com/fleetline/taller/internal/observability/metrics"
	"github.com/fleetline/taller/internal/part"
	partdomain "github.com/fleetline/taller/internal/part/domain"
	"github.com/fleetline/taller/internal/payment"
	paymentdomain "github.com/fleetline/taller/internal/payment/domain"
	"github.com/fleetline/taller/internal/providers/email"
	"github.com/fleetline/taller/internal/report"
	"github.com/fleetline/taller/internal/truck"
	truckdomain "github.com/fleetline/taller/internal/truck/domain"
	"github.com/fleetline/taller/internal/user"
	userdomain "github.com/fleetline/taller/internal/user/domain"
	"github.com/fleetline/taller/internal/workorder"
	workorderdomain "github.com/fleetline/taller/internal/workorder/domain"
	"github.com/fleetline/taller/internal/workorderpart"
	workorderpartdomain "github.com/fleetline/taller/internal/workorderpart/domain"
	"github.com/fleetline/taller/internal/workordertask"
	workordertaskdomain "github.com/fleetline/taller/internal/workordertask/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	auth.Module,
	client.Module,
	truck.Module,
	user.Module,
	part.Module,
	expense.Module,
	workorder.Module,
	mechanic.Module,
	workordertask.Module,
	workorderpart.Module,
	invoice.Module,
	payment.Module,
	email.Module,
	notification.Module,
	report.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	verifier    authdomain.Verifier
	clientSvc   clientdomain.Service
	truckSvc    truckdomain.Service
	userSvc     userdomain.Service
	partSvc     partdomain.Service
	expenseSvc  expensedomain.Service
	orderSvc    workorderdomain.Service
	mechanicSvc mechanicdomain.Service
	taskSvc     workordertaskdomain.Service
	orderParts  workorderpartdomain.Service
	invoiceSvc  invoicedomain.Service
	paymentSvc  paymentdomain.Service
	reportSvc   report.Service
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	Verifier    authdomain.Verifier
	ClientSvc   clientdomain.Service
	TruckSvc    truckdomain.Service
	UserSvc     userdomain.Service
	PartSvc     partdomain.Service
	ExpenseSvc  expensedomain.Service
	OrderSvc    workorderdomain.Service
	MechanicSvc mechanicdomain.Service
	TaskSvc     workordertaskdomain.Service
	OrderParts  workorderpartdomain.Service
	InvoiceSvc  invoicedomain.Service
	PaymentSvc  paymentdomain.Service
	ReportSvc   report.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		verifier:    p.Verifier,
		clientSvc:   p.ClientSvc,
		truckSvc:    p.TruckSvc,
		userSvc:     p.UserSvc,
		partSvc:     p.PartSvc,
		expenseSvc:  p.ExpenseSvc,
		orderSvc:    p.OrderSvc,
		mechanicSvc: p.MechanicSvc,
		taskSvc:     p.TaskSvc,
		orderParts:  p.OrderParts,
		invoiceSvc:  p.InvoiceSvc,
		paymentSvc:  p.PaymentSvc,
		reportSvc:   p.ReportSvc,
	}

	svc.registerRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerRoutes() {
	r := s.engine.Group("", s.AuthRequired())

	billing := s.RequireRole(authdomain.RoleAdmin, authdomain.RoleRevisor)
	adminOnly := s.RequireRole(authdomain.RoleAdmin)

	// -------- Clients --------
	r.POST("/clients", billing, s.CreateClient)
	r.GET("/clients", s.ListClients)
	r.GET("/clients/:id", s.GetClient)
	r.PATCH("/clients/:id", billing, s.UpdateClient)
	r.DELETE("/clients/:id", billing, s.DeleteClient)

	// -------- Trucks --------
	r.POST("/trucks", billing, s.CreateTruck)
	r.GET("/trucks", s.ListTrucks)
	r.GET("/trucks/:id", s.GetTruck)
	r.PATCH("/trucks/:id", billing, s.UpdateTruck)
	r.DELETE("/trucks/:id", billing, s.DeleteTruck)

	// -------- Users --------
	r.POST("/users", adminOnly, s.CreateUser)
	r.GET("/users", s.ListUsers)
	r.GET("/users/:id", s.GetUser)
	r.PATCH("/users/:id", adminOnly, s.UpdateUser)
	r.DELETE("/users/:id", adminOnly, s.DeactivateUser)

	// -------- Parts catalog --------
	r.POST("/parts", billing, s.CreatePart)
	r.GET("/parts", s.ListParts)
	r.GET("/parts/:id", s.GetPart)
	r.PATCH("/parts/:id", billing, s.UpdatePart)
	r.DELETE("/parts/:id", billing, s.DeletePart)

	// -------- Work orders --------
	r.POST("/orders", billing, s.CreateWorkOrder)
	r.GET("/orders", s.ListWorkOrders)
	r.GET("/orders/statuses", s.ListWorkOrderStatuses)
	r.GET("/orders/:id", s.GetWorkOrder)
	r.PATCH("/orders/:id", billing, s.UpdateWorkOrder)
	r.DELETE("/orders/:id", billing, s.DeleteWorkOrder)
	r.GET("/orders/:id/total", s.WorkOrderTotal)

	r.POST("/work-orders/reviewer", billing, s.AssignReviewer)
	r.DELETE("/work-orders/reviewer/:order_id/:reviewer_id", billing, s.RemoveReviewer)

	// -------- Tasks --------
	// Mechanics record their own labor; settlement stays with the office.
	r.POST("/work-orders/tasks",
		s.RequireRole(authdomain.RoleAdmin, authdomain.RoleRevisor, authdomain.RoleMechanic),
		s.CreateTask)
	r.GET("/work-orders/tasks/earnings", billing, s.TaskEarnings)
	r.POST("/work-orders/tasks/mark-paid", adminOnly, s.MarkTasksPaid)
	r.GET("/work-orders/tasks/:work_order_id", s.ListTasksByOrder)
	r.PATCH("/work-orders/tasks/:task_id", billing, s.UpdateTask)
	r.DELETE("/work-orders/tasks/:task_id", billing, s.DeleteTask)

	// -------- Part lines --------
	r.POST("/work-orders/parts", billing, s.CreateOrderPart)
	r.GET("/work-orders/parts/:work_order_id", s.ListOrderParts)
	r.PATCH("/work-orders/parts/:part_id", billing, s.UpdateOrderPart)
	r.DELETE("/work-orders/parts/:part_id", billing, s.DeleteOrderPart)

	// -------- Mechanic assignments --------
	r.POST("/work-orders/mechanics", billing, s.AssignMechanic)
	r.GET("/work-orders/mechanics/:work_order_id", s.ListMechanicsByOrder)
	r.DELETE("/work-orders/mechanics/:mechanic_id", billing, s.RemoveMechanic)
	r.POST("/work-areas", adminOnly, s.CreateWorkArea)
	r.GET("/work-areas", s.ListWorkAreas)

	// -------- Invoices --------
	r.POST("/invoices", billing, s.CreateInvoice)
	r.GET("/invoices", s.ListInvoices)
	r.GET("/invoices/statuses", s.ListInvoiceStatuses)
	r.GET("/invoices/types", s.ListInvoiceTypes)
	r.GET("/invoices/payment-methods", s.ListPaymentMethods)
	r.GET("/invoices/:id", s.GetInvoice)
	r.GET("/invoices/:id/detail", s.InvoiceDetail)
	r.PUT("/invoices/:id", billing, s.UpdateInvoice)
	r.POST("/invoices/:id/accept", billing, s.AcceptInvoice)

	// -------- Payments --------
	r.POST("/invoices/payments", billing, s.CreatePayment)
	r.GET("/invoices/payments", s.ListPayments)
	r.GET("/invoices/payments/:invoice_id", s.ListPaymentsByInvoice)
	r.GET("/invoices/payments/:invoice_id/total", s.PaymentTotalByInvoice)
	r.POST("/invoices/bank-checks/:check_id/exchange", billing, s.ExchangeBankCheck)

	// -------- Expenses --------
	r.POST("/expenses", billing, s.CreateExpense)
	r.GET("/expenses", s.ListExpenses)
	r.DELETE("/expenses/:id", billing, s.DeleteExpense)
	r.POST("/expenses/types", billing, s.CreateExpenseType)
	r.GET("/expenses/types", s.ListExpenseTypes)

	// -------- Reports --------
	reports := r.Group("/reports", adminOnly)
	reports.GET("/profit-by-order", s.ReportProfitByOrder)
	reports.GET("/billing-by-client", s.ReportBillingByClient)
	reports.GET("/top-clients", s.ReportTopClients)
	reports.GET("/income-monthly", s.ReportIncomeMonthly)
	reports.GET("/payments-by-method", s.ReportPaymentsByMethod)
	reports.GET("/expenses-monthly", s.ReportExpensesMonthly)
	reports.GET("/expenses-by-type", s.ReportExpensesByType)
	reports.GET("/monthly-balance", s.ReportMonthlyBalance)
	reports.GET("/receivables-aging", s.ReportReceivablesAging)
	reports.GET("/dashboard", s.ReportDashboard)
}
