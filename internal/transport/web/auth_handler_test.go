package web

import (
	"errors"
	"net/http"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/groph-invoices/internal/domain"
	"github.com/fsdevblog/groph-invoices/internal/logger"
	"github.com/fsdevblog/groph-invoices/internal/service"
	"github.com/fsdevblog/groph-invoices/internal/service/tokens"
	"github.com/fsdevblog/groph-invoices/internal/transport/web/middlewares"
	"github.com/fsdevblog/groph-invoices/internal/transport/web/mocks"
	"github.com/fsdevblog/groph-invoices/internal/transport/web/testutils"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	mockUserService *mocks.MockUserServicer
	router          *gin.Engine
	sessionSecret   []byte
}

func (s *AuthHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())

	s.mockUserService = mocks.NewMockUserServicer(mockCtrl)
	s.sessionSecret = []byte("super secret key")

	s.router = New(RouterArgs{
		Logger:           logger.New(os.Stdout),
		UserService:      s.mockUserService,
		InvoiceService:   mocks.NewMockInvoiceServicer(mockCtrl),
		CustomerService:  mocks.NewMockCustomerServicer(mockCtrl),
		DashboardService: mocks.NewMockDashboardServicer(mockCtrl),
		SessionSecret:    s.sessionSecret,
	})
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) TestLogin() {
	sessionToken, jwtErr := tokens.GenerateUserJWT("user-id", time.Hour, s.sessionSecret)
	s.Require().NoError(jwtErr)

	argsOk := service.AuthenticateArgs{Email: "user@nextmail.com", Password: "123456"}
	argsWrongPass := service.AuthenticateArgs{Email: "user@nextmail.com", Password: "wrong pass"}
	argsStoreDown := service.AuthenticateArgs{Email: "down@nextmail.com", Password: "123456"}
	argsUnexpected := service.AuthenticateArgs{Email: "odd@nextmail.com", Password: "123456"}

	s.mockUserService.EXPECT().
		Authenticate(gomock.Any(), argsOk).
		Return(&domain.User{ID: "user-id"}, sessionToken, nil).
		Times(1)
	s.mockUserService.EXPECT().
		Authenticate(gomock.Any(), argsWrongPass).
		Return(nil, "", domain.ErrPasswordMissMatch)
	s.mockUserService.EXPECT().
		Authenticate(gomock.Any(), argsStoreDown).
		Return(nil, "", domain.ErrUnknown)
	s.mockUserService.EXPECT().
		Authenticate(gomock.Any(), argsUnexpected).
		Return(nil, "", errors.New("token signing broken"))

	cases := []struct {
		name         string
		form         url.Values
		sessionToken *string
		wantStatus   int
		wantLocation string
		wantCookie   bool
	}{
		{
			name:         "ok",
			form:         url.Values{"email": {argsOk.Email}, "password": {argsOk.Password}},
			wantStatus:   http.StatusSeeOther,
			wantLocation: DashboardRoute,
			wantCookie:   true,
		}, {
			name:         "already logged in",
			form:         url.Values{"email": {argsOk.Email}, "password": {argsOk.Password}},
			sessionToken: &sessionToken,
			wantStatus:   http.StatusSeeOther,
			wantLocation: DashboardRoute,
		}, {
			name:       "wrong password",
			form:       url.Values{"email": {argsWrongPass.Email}, "password": {argsWrongPass.Password}},
			wantStatus: http.StatusUnauthorized,
		}, {
			name:       "store failure",
			form:       url.Values{"email": {argsStoreDown.Email}, "password": {argsStoreDown.Password}},
			wantStatus: http.StatusInternalServerError,
		}, {
			name:       "unexpected error kind",
			form:       url.Values{"email": {argsUnexpected.Email}, "password": {argsUnexpected.Password}},
			wantStatus: http.StatusInternalServerError,
		}, {
			name:       "missing email",
			form:       url.Values{"password": {"123456"}},
			wantStatus: http.StatusUnprocessableEntity,
		}, {
			name:       "short password",
			form:       url.Values{"email": {"user@nextmail.com"}, "password": {"12345"}},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			var reqOpts []func(*testutils.RequestOptions)
			if t.sessionToken != nil {
				reqOpts = append(reqOpts, testutils.WithCookies([]*http.Cookie{{
					Name:  middlewares.SessionCookieName,
					Value: *t.sessionToken,
				}}))
			}

			res, err := testutils.MakeFormRequest(s.router, http.MethodPost, LoginRoute, t.form, reqOpts...)
			s.Require().NoError(err)

			s.Equal(t.wantStatus, res.StatusCode)
			if t.wantLocation != "" {
				s.Equal(t.wantLocation, res.Header.Get("Location"))
			}

			if t.wantCookie {
				var sessionCookie *http.Cookie
				for _, cookie := range res.Cookies() {
					if cookie.Name == middlewares.SessionCookieName {
						sessionCookie = cookie
					}
				}
				s.Require().NotNil(sessionCookie)
				s.Equal(sessionToken, sessionCookie.Value)
			}
		})
	}
}

func (s *AuthHandlerTestSuite) TestLogout() {
	res, err := testutils.MakeFormRequest(s.router, http.MethodPost, LogoutRoute, url.Values{})
	s.Require().NoError(err)

	s.Equal(http.StatusSeeOther, res.StatusCode)
	s.Equal(LoginRoute, res.Header.Get("Location"))

	var sessionCookie *http.Cookie
	for _, cookie := range res.Cookies() {
		if cookie.Name == middlewares.SessionCookieName {
			sessionCookie = cookie
		}
	}
	s.Require().NotNil(sessionCookie)
	s.Empty(sessionCookie.Value)
}
