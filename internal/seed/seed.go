// Package seed наполняет пустую базу демонстрационными данными.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/groph-invoices/internal/domain"
	"github.com/fsdevblog/groph-invoices/internal/repository/repoargs"
	"github.com/fsdevblog/groph-invoices/internal/service"
	"github.com/fsdevblog/groph-invoices/pkg/uow"
)

const (
	// AdminEmail и AdminPassword — учетка, создаваемая сидированием.
	AdminEmail    = "user@nextmail.com"
	AdminPassword = "123456"

	customersCount = 12
	invoicesCount  = 40
)

var months = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

type Seeder struct {
	uow      uow.UOW
	services *service.AppServices
	l        *logrus.Entry
}

func New(u uow.UOW, services *service.AppServices, l *logrus.Logger) *Seeder {
	return &Seeder{
		uow:      u,
		services: services,
		l:        l.WithField("component", "seed"),
	}
}

// Run создает админскую учетку, клиентов, счета и выручку по месяцам.
// Повторный запуск на непустой базе ничего не делает.
func (s *Seeder) Run(ctx context.Context) error {
	existing, listErr := s.services.CustomerService.List(ctx, "")
	if listErr != nil {
		return errors.Wrap(listErr, "seed")
	}
	if len(existing) > 0 {
		s.l.Info("database already seeded, skipping")
		return nil
	}

	if _, regErr := s.services.UserService.Register(ctx, service.RegisterUserArgs{
		Name:     "Admin",
		Email:    AdminEmail,
		Password: AdminPassword,
	}); regErr != nil && !errors.Is(regErr, domain.ErrDuplicateKey) {
		return errors.Wrap(regErr, "seed: admin user")
	}

	customers, customersErr := s.seedCustomers(ctx)
	if customersErr != nil {
		return errors.Wrap(customersErr, "seed")
	}

	if invoicesErr := s.seedInvoices(ctx, customers); invoicesErr != nil {
		return errors.Wrap(invoicesErr, "seed")
	}

	if revenueErr := s.seedRevenue(ctx); revenueErr != nil {
		return errors.Wrap(revenueErr, "seed")
	}

	s.l.WithFields(logrus.Fields{
		"customers": len(customers),
		"invoices":  invoicesCount,
	}).Info("demo data seeded")
	return nil
}

func (s *Seeder) seedCustomers(ctx context.Context) ([]domain.Customer, error) {
	customers := make([]domain.Customer, 0, customersCount)

	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[service.CustomerRepository](tx, uow.RepositoryName(repoargs.CustomerRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		for range customersCount {
			customer, createErr := repo.CreateCustomer(c, repoargs.CreateCustomer{
				Name:     gofakeit.Name(),
				Email:    gofakeit.Email(),
				ImageURL: fmt.Sprintf("https://i.pravatar.cc/128?u=%s", uuid.NewString()),
			})
			if createErr != nil {
				return createErr //nolint:wrapcheck
			}
			customers = append(customers, *customer)
		}
		return nil
	})
	if txErr != nil {
		return nil, errors.Wrap(txErr, "customers")
	}
	return customers, nil
}

func (s *Seeder) seedInvoices(ctx context.Context, customers []domain.Customer) error {
	statuses := []domain.InvoiceStatusType{domain.InvoiceStatusPending, domain.InvoiceStatusPaid}
	now := time.Now().UTC()

	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[service.InvoiceRepository](tx, uow.RepositoryName(repoargs.InvoiceRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		for range invoicesCount {
			customer := customers[gofakeit.Number(0, len(customers)-1)]
			if _, createErr := repo.CreateInvoice(c, repoargs.CreateInvoice{
				CustomerID:  customer.ID,
				AmountCents: int64(gofakeit.Number(500, 2000000)), //nolint:mnd
				Status:      statuses[gofakeit.Number(0, 1)],
				Date:        gofakeit.DateRange(now.AddDate(-1, 0, 0), now).Truncate(24 * time.Hour),
			}); createErr != nil {
				return createErr //nolint:wrapcheck
			}
		}
		return nil
	})
	return errors.Wrap(txErr, "invoices")
}

func (s *Seeder) seedRevenue(ctx context.Context) error {
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[service.DashboardRepository](tx, uow.RepositoryName(repoargs.DashboardRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		for _, month := range months {
			revenueCents := int64(gofakeit.Number(100000, 600000)) //nolint:mnd
			if upsertErr := repo.UpsertRevenue(c, month, revenueCents); upsertErr != nil {
				return upsertErr //nolint:wrapcheck
			}
		}
		return nil
	})
	return errors.Wrap(txErr, "revenue")
}
