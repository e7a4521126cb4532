package web

import (
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/groph-invoices/internal/domain"
	"github.com/fsdevblog/groph-invoices/internal/logger"
	"github.com/fsdevblog/groph-invoices/internal/repository/repoargs"
	"github.com/fsdevblog/groph-invoices/internal/service"
	"github.com/fsdevblog/groph-invoices/internal/service/tokens"
	"github.com/fsdevblog/groph-invoices/internal/transport/web/middlewares"
	"github.com/fsdevblog/groph-invoices/internal/transport/web/mocks"
	"github.com/fsdevblog/groph-invoices/internal/transport/web/testutils"
)

type DashboardHandlerTestSuite struct {
	suite.Suite
	mockDashboardService *mocks.MockDashboardServicer
	router               *gin.Engine
	sessionCookie        *http.Cookie
}

func (s *DashboardHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())

	s.mockDashboardService = mocks.NewMockDashboardServicer(mockCtrl)
	sessionSecret := []byte("super secret key")

	s.router = New(RouterArgs{
		Logger:           logger.New(os.Stdout),
		UserService:      mocks.NewMockUserServicer(mockCtrl),
		InvoiceService:   mocks.NewMockInvoiceServicer(mockCtrl),
		CustomerService:  mocks.NewMockCustomerServicer(mockCtrl),
		DashboardService: s.mockDashboardService,
		SessionSecret:    sessionSecret,
	})

	sessionToken, jwtErr := tokens.GenerateUserJWT("user-id", time.Hour, sessionSecret)
	s.Require().NoError(jwtErr)
	s.sessionCookie = &http.Cookie{Name: middlewares.SessionCookieName, Value: sessionToken}
}

func TestDashboardHandlerSuite(t *testing.T) {
	suite.Run(t, new(DashboardHandlerTestSuite))
}

func (s *DashboardHandlerTestSuite) TestShow() {
	data := service.DashboardData{
		Cards: &repoargs.CardSummary{
			InvoiceCount:  13,
			CustomerCount: 6,
			PaidCents:     118000,
			PendingCents:  12506,
		},
		Revenue: []domain.Revenue{{Month: "Jan", Revenue: 200000}},
		Latest:  []repoargs.LatestInvoice{{ID: "a", AmountCents: 8945, CustomerName: "Evil Rabbit"}},
	}

	s.mockDashboardService.EXPECT().Compose(gomock.Any()).Return(&data)

	res, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    DashboardRoute,
	}, testutils.WithCookies([]*http.Cookie{s.sessionCookie}))
	s.Require().NoError(err)

	s.Equal(http.StatusOK, res.StatusCode)

	body, readErr := io.ReadAll(res.Body)
	s.Require().NoError(readErr)
	s.Contains(string(body), "$1180.00")
	s.Contains(string(body), "Jan")
	s.Contains(string(body), "Evil Rabbit")
}

// TestShowDegraded страница отдается целиком, упавшая панель заменяется
// сообщением и не задевает остальные.
func (s *DashboardHandlerTestSuite) TestShowDegraded() {
	data := service.DashboardData{
		CardsErr: domain.ErrUnknown,
		Revenue:  []domain.Revenue{{Month: "Jan", Revenue: 200000}},
		Latest:   []repoargs.LatestInvoice{{ID: "a", AmountCents: 8945, CustomerName: "Evil Rabbit"}},
	}

	s.mockDashboardService.EXPECT().Compose(gomock.Any()).Return(&data)

	res, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    DashboardRoute,
	}, testutils.WithCookies([]*http.Cookie{s.sessionCookie}))
	s.Require().NoError(err)

	s.Equal(http.StatusOK, res.StatusCode)

	body, readErr := io.ReadAll(res.Body)
	s.Require().NoError(readErr)
	s.Contains(string(body), "Failed to load card data.")
	s.Contains(string(body), "Jan")
	s.Contains(string(body), "Evil Rabbit")
}
