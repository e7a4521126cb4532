package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/groph-invoices/internal/domain"
	"github.com/fsdevblog/groph-invoices/internal/repository/repoargs"
	"github.com/fsdevblog/groph-invoices/pkg/uow"
)

// Пути, на которые мутации отправляют вызывающего и чьи закешированные
// представления инвалидируются.
const (
	InvoicesPath  = "/dashboard/invoices"
	CustomersPath = "/dashboard/customers"
)

const (
	MsgMissingFieldsCreateInvoice = "Missing Fields. Failed to Create Invoice."
	MsgMissingFieldsUpdateInvoice = "Missing Fields. Failed to Update Invoice."

	MsgDBErrorCreateInvoice = "Database Error :: while creating invoice"
	MsgDBErrorUpdateInvoice = "Database Error :: while updating invoice"
	MsgDBErrorDeleteInvoice = "Database Error :: while deleting invoice"
)

// InvoicesPerPage размер страницы списка счетов.
const InvoicesPerPage uint = 6

type InvoiceService struct {
	uow         uow.UOW
	invoiceRepo InvoiceRepository
	views       ViewInvalidator
	l           *logrus.Entry
}

func NewInvoiceService(u uow.UOW, views ViewInvalidator, l *logrus.Logger) (*InvoiceService, error) {
	invoiceRepo, repoErr := uow.GetRepositoryAs[InvoiceRepository](
		u, uow.RepositoryName(repoargs.InvoiceRepoName),
	)
	if repoErr != nil {
		return nil, repoErr
	}
	return &InvoiceService{
		uow:         u,
		invoiceRepo: invoiceRepo,
		views:       views,
		l:           l.WithField("component", "invoice_service"),
	}, nil
}

// Create валидирует форму и вставляет счет. Дата назначается сервером — текущий
// день с точностью до суток. При невалидной форме хранилище не трогается.
// Успех завершается инвалидацией списка счетов и навигацией на него.
func (s *InvoiceService) Create(ctx context.Context, input InvoiceFormInput) *MutationResult {
	form, fieldErrors := parseInvoiceForm(input)
	if fieldErrors != nil {
		return failure(MsgMissingFieldsCreateInvoice, fieldErrors)
	}

	date := time.Now().UTC().Truncate(24 * time.Hour)

	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[InvoiceRepository](tx, uow.RepositoryName(repoargs.InvoiceRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		_, createErr := repo.CreateInvoice(c, repoargs.CreateInvoice{
			CustomerID:  form.CustomerID,
			AmountCents: form.AmountCents,
			Status:      form.Status,
			Date:        date,
		})
		return createErr //nolint:wrapcheck
	})
	if txErr != nil {
		s.l.WithError(txErr).Error("creating invoice")
		return failure(MsgDBErrorCreateInvoice, nil)
	}

	s.views.RevalidatePath(InvoicesPath)
	return navigateTo(InvoicesPath)
}

// Update валидирует форму так же, как Create, и обновляет поля счета id.
// Сам id формой не валидируется — доверяем вызывающему; обновление
// несуществующего id выполняется как молчаливый no-op.
func (s *InvoiceService) Update(ctx context.Context, id string, input InvoiceFormInput) *MutationResult {
	form, fieldErrors := parseInvoiceForm(input)
	if fieldErrors != nil {
		return failure(MsgMissingFieldsUpdateInvoice, fieldErrors)
	}

	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[InvoiceRepository](tx, uow.RepositoryName(repoargs.InvoiceRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		return repo.UpdateInvoice(c, repoargs.UpdateInvoice{ //nolint:wrapcheck
			ID:          id,
			CustomerID:  form.CustomerID,
			AmountCents: form.AmountCents,
			Status:      form.Status,
		})
	})
	if txErr != nil {
		s.l.WithError(txErr).WithField("invoiceID", id).Error("updating invoice")
		return failure(MsgDBErrorUpdateInvoice, nil)
	}

	s.views.RevalidatePath(InvoicesPath)
	return navigateTo(InvoicesPath)
}

// Delete удаляет счет id. Навигации не происходит ни при каком исходе: операция
// вызывается из уже открытого списка. Успех инвалидирует список счетов.
func (s *InvoiceService) Delete(ctx context.Context, id string) *MutationResult {
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[InvoiceRepository](tx, uow.RepositoryName(repoargs.InvoiceRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		return repo.DeleteInvoice(c, id) //nolint:wrapcheck
	})
	if txErr != nil {
		s.l.WithError(txErr).WithField("invoiceID", id).Error("deleting invoice")
		return failure(MsgDBErrorDeleteInvoice, nil)
	}

	s.views.RevalidatePath(InvoicesPath)
	return &MutationResult{}
}

func (s *InvoiceService) Find(ctx context.Context, id string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoice(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding invoice: %w", err)
	}
	return invoice, nil
}

// InvoicePage страница списка счетов с общим числом страниц под фильтром.
type InvoicePage struct {
	Items      []repoargs.InvoiceWithCustomer
	TotalPages uint
}

// GetPage возвращает страницу page (нумерация с 1) счетов, отфильтрованных по query.
func (s *InvoiceService) GetPage(ctx context.Context, query string, page uint) (*InvoicePage, error) {
	if page < 1 {
		page = 1
	}

	items, itemsErr := s.invoiceRepo.GetInvoices(ctx, repoargs.InvoiceFilter{
		Query:  query,
		Limit:  InvoicesPerPage,
		Offset: (page - 1) * InvoicesPerPage,
	})
	if itemsErr != nil {
		return nil, fmt.Errorf("getting invoices page: %w", itemsErr)
	}

	count, countErr := s.invoiceRepo.CountInvoices(ctx, query)
	if countErr != nil {
		return nil, fmt.Errorf("counting invoices: %w", countErr)
	}

	totalPages := (uint(count) + InvoicesPerPage - 1) / InvoicesPerPage
	return &InvoicePage{Items: items, TotalPages: totalPages}, nil
}
