package service

import (
	"context"

	"github.com/fsdevblog/groph-invoices/internal/domain"
	"github.com/fsdevblog/groph-invoices/internal/repository/repoargs"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type PasswordHasher interface {
	HashPassword(password string) (string, error)
	ComparePassword(password string, hashedPassword string) bool
}

// ViewInvalidator помечает закешированную отрендеренную страницу как устаревшую.
type ViewInvalidator interface {
	RevalidatePath(path string)
}

type UserRepository interface {
	CreateUser(ctx context.Context, args repoargs.CreateUser) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

type InvoiceRepository interface {
	CreateInvoice(ctx context.Context, args repoargs.CreateInvoice) (*domain.Invoice, error)
	UpdateInvoice(ctx context.Context, args repoargs.UpdateInvoice) error
	DeleteInvoice(ctx context.Context, id string) error
	FindInvoice(ctx context.Context, id string) (*domain.Invoice, error)
	GetInvoices(ctx context.Context, filter repoargs.InvoiceFilter) ([]repoargs.InvoiceWithCustomer, error)
	CountInvoices(ctx context.Context, query string) (int64, error)
}

type CustomerRepository interface {
	CreateCustomer(ctx context.Context, args repoargs.CreateCustomer) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, args repoargs.UpdateCustomer) error
	DeleteCustomer(ctx context.Context, id string) error
	FindCustomer(ctx context.Context, id string) (*domain.Customer, error)
	GetCustomers(ctx context.Context, filter repoargs.CustomerFilter) ([]domain.Customer, error)
}

type DashboardRepository interface {
	GetCardSummary(ctx context.Context) (*repoargs.CardSummary, error)
	GetRevenue(ctx context.Context) ([]domain.Revenue, error)
	GetLatestInvoices(ctx context.Context, limit uint) ([]repoargs.LatestInvoice, error)
	UpsertRevenue(ctx context.Context, month string, revenueCents int64) error
}
