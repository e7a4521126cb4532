package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/groph-invoices/internal/domain"
	"github.com/fsdevblog/groph-invoices/internal/repository/repoargs"
	"github.com/fsdevblog/groph-invoices/internal/service/mocks"
	"github.com/fsdevblog/groph-invoices/pkg/uow"
	uowmocks "github.com/fsdevblog/groph-invoices/pkg/uow/mocks"
)

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockUOW         *uowmocks.MockUOW
	mockTX          *uowmocks.MockTX
	mockInvoiceRepo *mocks.MockInvoiceRepository
	mockViews       *mocks.MockViewInvalidator
	invoiceService  *InvoiceService
}

func TestInvoiceServiceSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}

func (s *InvoiceServiceTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(mockCtrl)
	s.mockTX = uowmocks.NewMockTX(mockCtrl)
	s.mockInvoiceRepo = mocks.NewMockInvoiceRepository(mockCtrl)
	s.mockViews = mocks.NewMockViewInvalidator(mockCtrl)

	// Мок получения репозитория из uow. Выполняется в инициализации сервиса.
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.InvoiceRepoName)).
		Return(s.mockInvoiceRepo, nil).AnyTimes()

	// Мок транзакции uow.
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.InvoiceRepoName)).
		Return(s.mockInvoiceRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		}).AnyTimes()

	l := logrus.New()
	l.SetOutput(io.Discard)

	invoiceService, servErr := NewInvoiceService(s.mockUOW, s.mockViews, l)
	s.Require().NoError(servErr)
	s.invoiceService = invoiceService
}

func (s *InvoiceServiceTestSuite) TestCreate() {
	customerID := "5f9b6e65-291f-4df1-81a5-f8ad65e0e437"

	inputStoreFail := InvoiceFormInput{CustomerID: customerID, Amount: "13.37", Status: "pending"}

	// Мок репозитория: один успешный insert, один падающий. Аргументы успешного
	// вызова запоминаем и проверяем отдельно, дата известна только на момент вызова.
	var gotCreate repoargs.CreateInvoice
	s.mockInvoiceRepo.EXPECT().
		CreateInvoice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.CreateInvoice) (*domain.Invoice, error) {
			if args.AmountCents == 1337 {
				return nil, domain.ErrUnknown
			}
			gotCreate = args
			return &domain.Invoice{
				ID:          "9f1f6f3a-07e2-4d6c-a1db-2ffd4e79a6da",
				CustomerID:  args.CustomerID,
				AmountCents: args.AmountCents,
				Status:      args.Status,
				Date:        args.Date,
			}, nil
		}).
		Times(2)

	// Инвалидация списка — только на успешной ветке.
	s.mockViews.EXPECT().RevalidatePath(InvoicesPath).Times(1)

	s.Run("ok", func() {
		dayBefore := time.Now().UTC().Truncate(24 * time.Hour)
		res := s.invoiceService.Create(s.T().Context(),
			InvoiceFormInput{CustomerID: customerID, Amount: "50", Status: "paid"})
		dayAfter := time.Now().UTC().Truncate(24 * time.Hour)

		s.Equal(InvoicesPath, res.RedirectTo)
		s.True(res.Navigates())
		s.Empty(res.FieldErrors)

		s.Equal(customerID, gotCreate.CustomerID)
		s.Equal(int64(5000), gotCreate.AmountCents)
		s.Equal(domain.InvoiceStatusPaid, gotCreate.Status)
		// Дату проставляет сервер, сверяем с сутками на момент вызова.
		s.True(gotCreate.Date.Equal(dayBefore) || gotCreate.Date.Equal(dayAfter))
	})

	cases := []struct {
		name            string
		input           InvoiceFormInput
		wantRedirect    string
		wantMessage     string
		wantFieldErrors map[string][]string
	}{
		{
			name:        "empty form",
			input:       InvoiceFormInput{CustomerID: "", Amount: "0", Status: ""},
			wantMessage: MsgMissingFieldsCreateInvoice,
			wantFieldErrors: map[string][]string{
				"customerId": {MsgSelectCustomer},
				"amount":     {MsgInvalidAmount},
				"status":     {MsgSelectStatus},
			},
		},
		{
			name:        "negative amount",
			input:       InvoiceFormInput{CustomerID: customerID, Amount: "-5", Status: "paid"},
			wantMessage: MsgMissingFieldsCreateInvoice,
			wantFieldErrors: map[string][]string{
				"amount": {MsgInvalidAmount},
			},
		},
		{
			name:        "unknown status",
			input:       InvoiceFormInput{CustomerID: customerID, Amount: "10", Status: "draft"},
			wantMessage: MsgMissingFieldsCreateInvoice,
			wantFieldErrors: map[string][]string{
				"status": {MsgSelectStatus},
			},
		},
		{
			// Сумма в центах не помещается в int64.
			name:        "amount overflows cents",
			input:       InvoiceFormInput{CustomerID: customerID, Amount: "100000000000000000", Status: "paid"},
			wantMessage: MsgMissingFieldsCreateInvoice,
			wantFieldErrors: map[string][]string{
				"amount": {MsgInvalidAmount},
			},
		},
		{
			// Положительная сумма, которая округляется до нуля центов.
			name:        "amount below one cent",
			input:       InvoiceFormInput{CustomerID: customerID, Amount: "0.005", Status: "paid"},
			wantMessage: MsgMissingFieldsCreateInvoice,
			wantFieldErrors: map[string][]string{
				"amount": {MsgInvalidAmount},
			},
		},
		{
			name:        "store failure",
			input:       inputStoreFail,
			wantMessage: MsgDBErrorCreateInvoice,
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			res := s.invoiceService.Create(s.T().Context(), t.input)

			s.Equal(t.wantRedirect, res.RedirectTo)
			s.Equal(t.wantMessage, res.Message)
			s.Equal(t.wantRedirect != "", res.Navigates())

			if t.wantFieldErrors != nil {
				s.Equal(t.wantFieldErrors, res.FieldErrors)
			} else {
				s.Empty(res.FieldErrors)
			}
		})
	}
}

func (s *InvoiceServiceTestSuite) TestUpdate() {
	invoiceID := "9f1f6f3a-07e2-4d6c-a1db-2ffd4e79a6da"
	customerID := "5f9b6e65-291f-4df1-81a5-f8ad65e0e437"

	inputOk := InvoiceFormInput{CustomerID: customerID, Amount: "99.99", Status: "pending"}

	s.mockInvoiceRepo.EXPECT().
		UpdateInvoice(gomock.Any(), gomock.Eq(repoargs.UpdateInvoice{
			ID:          invoiceID,
			CustomerID:  customerID,
			AmountCents: 9999,
			Status:      domain.InvoiceStatusPending,
		})).
		Return(nil)

	s.mockViews.EXPECT().RevalidatePath(InvoicesPath).Times(1)

	cases := []struct {
		name         string
		input        InvoiceFormInput
		wantRedirect string
		wantMessage  string
	}{
		{name: "ok", input: inputOk, wantRedirect: InvoicesPath},
		{
			name:        "invalid amount",
			input:       InvoiceFormInput{CustomerID: customerID, Amount: "free", Status: "pending"},
			wantMessage: MsgMissingFieldsUpdateInvoice,
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			res := s.invoiceService.Update(s.T().Context(), invoiceID, t.input)

			s.Equal(t.wantRedirect, res.RedirectTo)
			s.Equal(t.wantMessage, res.Message)
		})
	}
}

func (s *InvoiceServiceTestSuite) TestDelete() {
	okID := "9f1f6f3a-07e2-4d6c-a1db-2ffd4e79a6da"
	failID := "11111111-1111-1111-1111-111111111111"

	s.mockInvoiceRepo.EXPECT().DeleteInvoice(gomock.Any(), okID).Return(nil)
	s.mockInvoiceRepo.EXPECT().DeleteInvoice(gomock.Any(), failID).Return(domain.ErrUnknown)

	s.mockViews.EXPECT().RevalidatePath(InvoicesPath).Times(1)

	cases := []struct {
		name        string
		id          string
		wantMessage string
	}{
		{name: "ok", id: okID},
		{name: "store failure", id: failID, wantMessage: MsgDBErrorDeleteInvoice},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			res := s.invoiceService.Delete(s.T().Context(), t.id)

			// Удаление никуда не ведет, в том числе на успехе.
			s.False(res.Navigates())
			s.Equal(t.wantMessage, res.Message)
			s.Equal(t.wantMessage == "", res.Succeeded())
		})
	}
}

func (s *InvoiceServiceTestSuite) TestGetPage() {
	query := "lee"
	items := []repoargs.InvoiceWithCustomer{
		{Invoice: domain.Invoice{ID: "a", AmountCents: 100}, CustomerName: "Lee"},
		{Invoice: domain.Invoice{ID: "b", AmountCents: 200}, CustomerName: "Klee"},
	}

	s.mockInvoiceRepo.EXPECT().
		GetInvoices(gomock.Any(), gomock.Eq(repoargs.InvoiceFilter{
			Query:  query,
			Limit:  InvoicesPerPage,
			Offset: InvoicesPerPage,
		})).
		Return(items, nil)

	// 13 счетов при размере страницы 6 дают 3 страницы.
	s.mockInvoiceRepo.EXPECT().CountInvoices(gomock.Any(), query).Return(int64(13), nil)

	page, err := s.invoiceService.GetPage(s.T().Context(), query, 2)
	s.Require().NoError(err)
	s.Equal(items, page.Items)
	s.Equal(uint(3), page.TotalPages)
}

func (s *InvoiceServiceTestSuite) TestFind() {
	invoice := domain.Invoice{ID: "a", AmountCents: 100}

	s.mockInvoiceRepo.EXPECT().FindInvoice(gomock.Any(), invoice.ID).Return(&invoice, nil)
	s.mockInvoiceRepo.EXPECT().FindInvoice(gomock.Any(), "missing").Return(nil, domain.ErrRecordNotFound)

	found, err := s.invoiceService.Find(s.T().Context(), invoice.ID)
	s.Require().NoError(err)
	s.Equal(&invoice, found)

	_, missErr := s.invoiceService.Find(s.T().Context(), "missing")
	s.Require().ErrorIs(missErr, domain.ErrRecordNotFound)
}
