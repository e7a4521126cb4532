package service

import (
	"io"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/groph-invoices/internal/domain"
	"github.com/fsdevblog/groph-invoices/internal/repository/repoargs"
	"github.com/fsdevblog/groph-invoices/internal/service/mocks"
	"github.com/fsdevblog/groph-invoices/pkg/uow"
	uowmocks "github.com/fsdevblog/groph-invoices/pkg/uow/mocks"
)

type DashboardServiceTestSuite struct {
	suite.Suite
	mockUOW           *uowmocks.MockUOW
	mockDashboardRepo *mocks.MockDashboardRepository
	dashboardService  *DashboardService
}

func TestDashboardServiceSuite(t *testing.T) {
	suite.Run(t, new(DashboardServiceTestSuite))
}

func (s *DashboardServiceTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(mockCtrl)
	s.mockDashboardRepo = mocks.NewMockDashboardRepository(mockCtrl)

	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.DashboardRepoName)).
		Return(s.mockDashboardRepo, nil).AnyTimes()

	l := logrus.New()
	l.SetOutput(io.Discard)

	dashboardService, servErr := NewDashboardService(s.mockUOW, l)
	s.Require().NoError(servErr)
	s.dashboardService = dashboardService
}

func (s *DashboardServiceTestSuite) TestCompose() {
	cards := repoargs.CardSummary{
		InvoiceCount:  13,
		CustomerCount: 6,
		PaidCents:     118000,
		PendingCents:  12506,
	}
	revenue := []domain.Revenue{{Month: "Jan", Revenue: 200000}, {Month: "Feb", Revenue: 180000}}
	latest := []repoargs.LatestInvoice{{ID: "a", AmountCents: 8945, CustomerName: "Lee"}}

	s.mockDashboardRepo.EXPECT().GetCardSummary(gomock.Any()).Return(&cards, nil)
	s.mockDashboardRepo.EXPECT().GetRevenue(gomock.Any()).Return(revenue, nil)
	s.mockDashboardRepo.EXPECT().GetLatestInvoices(gomock.Any(), LatestInvoicesLimit).Return(latest, nil)

	data := s.dashboardService.Compose(s.T().Context())

	s.Require().NoError(data.CardsErr)
	s.Require().NoError(data.RevenueErr)
	s.Require().NoError(data.LatestErr)
	s.Equal(&cards, data.Cards)
	s.Equal(revenue, data.Revenue)
	s.Equal(latest, data.Latest)
}

// TestComposePanelIsolation падение одной выборки не трогает данные остальных панелей.
func (s *DashboardServiceTestSuite) TestComposePanelIsolation() {
	revenue := []domain.Revenue{{Month: "Jan", Revenue: 200000}}
	latest := []repoargs.LatestInvoice{{ID: "a", AmountCents: 8945}}

	s.mockDashboardRepo.EXPECT().GetCardSummary(gomock.Any()).Return(nil, domain.ErrUnknown)
	s.mockDashboardRepo.EXPECT().GetRevenue(gomock.Any()).Return(revenue, nil)
	s.mockDashboardRepo.EXPECT().GetLatestInvoices(gomock.Any(), LatestInvoicesLimit).Return(latest, nil)

	data := s.dashboardService.Compose(s.T().Context())

	s.Require().ErrorIs(data.CardsErr, domain.ErrUnknown)
	s.Nil(data.Cards)

	s.Require().NoError(data.RevenueErr)
	s.Equal(revenue, data.Revenue)
	s.Require().NoError(data.LatestErr)
	s.Equal(latest, data.Latest)
}
