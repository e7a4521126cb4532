package web

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/groph-invoices/internal/domain"
	"github.com/fsdevblog/groph-invoices/internal/service"
)

// UserServicer интерфейс исключительно для моков.
type UserServicer interface {
	Authenticate(ctx context.Context, args service.AuthenticateArgs) (*domain.User, string, error)
}

type InvoiceServicer interface {
	Create(ctx context.Context, input service.InvoiceFormInput) *service.MutationResult
	Update(ctx context.Context, id string, input service.InvoiceFormInput) *service.MutationResult
	Delete(ctx context.Context, id string) *service.MutationResult
	Find(ctx context.Context, id string) (*domain.Invoice, error)
	GetPage(ctx context.Context, query string, page uint) (*service.InvoicePage, error)
}

type CustomerServicer interface {
	Create(ctx context.Context, input service.CustomerFormInput) *service.MutationResult
	Update(ctx context.Context, id string, input service.CustomerFormInput) *service.MutationResult
	Delete(ctx context.Context, id string) *service.MutationResult
	Find(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context, query string) ([]domain.Customer, error)
}

type DashboardServicer interface {
	Compose(ctx context.Context) *service.DashboardData
}
