package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/groph-invoices/internal/domain"
	"github.com/fsdevblog/groph-invoices/internal/repository/repoargs"
	"github.com/fsdevblog/groph-invoices/pkg/uow"
)

const (
	MsgMissingFieldsCreateCustomer = "Missing Fields. Failed to Create Customer."
	MsgMissingFieldsUpdateCustomer = "Missing Fields. Failed to Update Customer."

	MsgDBErrorCreateCustomer = "Database Error :: while creating customer"
	MsgDBErrorUpdateCustomer = "Database Error :: while updating customer"
	MsgDBErrorDeleteCustomer = "Database Error :: while deleting customer"
)

type CustomerService struct {
	uow          uow.UOW
	customerRepo CustomerRepository
	views        ViewInvalidator
	l            *logrus.Entry
}

func NewCustomerService(u uow.UOW, views ViewInvalidator, l *logrus.Logger) (*CustomerService, error) {
	customerRepo, repoErr := uow.GetRepositoryAs[CustomerRepository](
		u, uow.RepositoryName(repoargs.CustomerRepoName),
	)
	if repoErr != nil {
		return nil, repoErr
	}
	return &CustomerService{
		uow:          u,
		customerRepo: customerRepo,
		views:        views,
		l:            l.WithField("component", "customer_service"),
	}, nil
}

func (s *CustomerService) Create(ctx context.Context, input CustomerFormInput) *MutationResult {
	form, fieldErrors := parseCustomerForm(input)
	if fieldErrors != nil {
		return failure(MsgMissingFieldsCreateCustomer, fieldErrors)
	}

	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[CustomerRepository](tx, uow.RepositoryName(repoargs.CustomerRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		_, createErr := repo.CreateCustomer(c, repoargs.CreateCustomer{
			Name:     form.Name,
			Email:    form.Email,
			ImageURL: form.ImageURL,
		})
		return createErr //nolint:wrapcheck
	})
	if txErr != nil {
		s.l.WithError(txErr).Error("creating customer")
		return failure(MsgDBErrorCreateCustomer, nil)
	}

	s.views.RevalidatePath(CustomersPath)
	return navigateTo(CustomersPath)
}

func (s *CustomerService) Update(ctx context.Context, id string, input CustomerFormInput) *MutationResult {
	form, fieldErrors := parseCustomerForm(input)
	if fieldErrors != nil {
		return failure(MsgMissingFieldsUpdateCustomer, fieldErrors)
	}

	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[CustomerRepository](tx, uow.RepositoryName(repoargs.CustomerRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		return repo.UpdateCustomer(c, repoargs.UpdateCustomer{ //nolint:wrapcheck
			ID:       id,
			Name:     form.Name,
			Email:    form.Email,
			ImageURL: form.ImageURL,
		})
	})
	if txErr != nil {
		s.l.WithError(txErr).WithField("customerID", id).Error("updating customer")
		return failure(MsgDBErrorUpdateCustomer, nil)
	}

	s.views.RevalidatePath(CustomersPath)
	// Строки списка счетов содержат имя и почту клиента.
	s.views.RevalidatePath(InvoicesPath)
	return navigateTo(CustomersPath)
}

// Delete удаляет клиента. Как и удаление счета — без навигации.
func (s *CustomerService) Delete(ctx context.Context, id string) *MutationResult {
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[CustomerRepository](tx, uow.RepositoryName(repoargs.CustomerRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		return repo.DeleteCustomer(c, id) //nolint:wrapcheck
	})
	if txErr != nil {
		s.l.WithError(txErr).WithField("customerID", id).Error("deleting customer")
		return failure(MsgDBErrorDeleteCustomer, nil)
	}

	s.views.RevalidatePath(CustomersPath)
	// Счета клиента удаляются каскадом, их список тоже устарел.
	s.views.RevalidatePath(InvoicesPath)
	return &MutationResult{}
}

func (s *CustomerService) Find(ctx context.Context, id string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding customer: %w", err)
	}
	return customer, nil
}

// List возвращает клиентов по подстроке имени/почты. Пустой query — все клиенты
// (используется селектом формы счета).
func (s *CustomerService) List(ctx context.Context, query string) ([]domain.Customer, error) {
	customers, err := s.customerRepo.GetCustomers(ctx, repoargs.CustomerFilter{Query: query})
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	return customers, nil
}
