// Package notification fans payment events out to the people who need to
// act on them. Delivery is best effort; callers never roll back on a
// failed send.
package notification

import (
	"context"
	"fmt"

	authdomain "github.com/fleetline/taller/internal/auth/domain"
	"github.com/fleetline/taller/internal/clock"
	"github.com/fleetline/taller/internal/config"
	paymentdomain "github.com/fleetline/taller/internal/payment/domain"
	"github.com/fleetline/taller/internal/providers/email"
	userdomain "github.com/fleetline/taller/internal/user/domain"
	"github.com/fleetline/taller/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("notification.service",
	fx.Provide(New),
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	Email   email.Provider
	Users   userdomain.Repository
	Billing *config.BillingConfigHolder
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	clock   clock.Clock
	email   email.Provider
	users   userdomain.Repository
	billing *config.BillingConfigHolder
}

func New(p Params) paymentdomain.DueCheckNotifier {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("notification.service"),
		clock:   p.Clock,
		email:   p.Email,
		users:   p.Users,
		billing: p.Billing,
	}
}

// NotifyDueCheck mails every active admin, plus the reviewer of the work
// order the check's payment settles, that a check with a maturity date
// entered the books.
func (s *Service) NotifyDueCheck(ctx context.Context, check paymentdomain.BankCheck) error {
	if check.DueDate == nil {
		return nil
	}

	recipients, err := s.recipients(ctx, check.PaymentID)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		s.log.Debug("no recipients for due check notice", zap.Int64("check_id", check.ID))
		return nil
	}

	subject := "Cheque registrado"
	noticeDays := s.billing.Get().CheckDueNoticeDays
	daysLeft := int(check.DueDate.Sub(s.clock.Now()).Hours() / 24)
	if daysLeft <= noticeDays {
		subject = "Cheque próximo a vencer"
	}
	body := fmt.Sprintf("El cheque %s de %s vence el %s.",
		check.CheckNumber, check.BankName, check.DueDate.Format("2006-01-02"))

	if err := s.email.Send(ctx, recipients, subject, body); err != nil {
		return err
	}
	s.log.Info("due check notice sent",
		zap.Int64("check_id", check.ID),
		zap.Int("recipients", len(recipients)),
	)
	return nil
}

func (s *Service) recipients(ctx context.Context, paymentID int64) ([]string, error) {
	active := true
	admins, err := s.users.List(ctx, s.db, userdomain.ListUserFilter{
		Role:   authdomain.RoleAdmin,
		Active: &active,
	}, pagination.Pagination{Limit: pagination.MaxLimit})
	if err != nil {
		return nil, err
	}

	emails := make([]string, 0, len(admins)+1)
	seen := make(map[string]struct{}, len(admins)+1)
	for _, admin := range admins {
		if _, ok := seen[admin.Email]; !ok {
			seen[admin.Email] = struct{}{}
			emails = append(emails, admin.Email)
		}
	}

	reviewer, err := s.reviewerEmail(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if reviewer != "" {
		if _, ok := seen[reviewer]; !ok {
			emails = append(emails, reviewer)
		}
	}
	return emails, nil
}

// reviewerEmail walks payment -> invoice -> work order -> reviewer.
func (s *Service) reviewerEmail(ctx context.Context, paymentID int64) (string, error) {
	var row struct {
		Email string
	}
	err := s.db.WithContext(ctx).Table("payments").
		Select("users.email AS email").
		Joins("JOIN invoices ON invoices.id = payments.invoice_id").
		Joins("JOIN work_orders ON work_orders.id = invoices.work_order_id").
		Joins("JOIN users ON users.id = work_orders.reviewed_by").
		Where("payments.id = ?", paymentID).
		Scan(&row).Error
	if err != nil {
		return "", err
	}
	return row.Email, nil
}
