package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/groph-invoices/internal/domain"
	"github.com/fsdevblog/groph-invoices/internal/repository/repoargs"
	"github.com/fsdevblog/groph-invoices/internal/service/mocks"
	"github.com/fsdevblog/groph-invoices/internal/service/tokens"
	"github.com/fsdevblog/groph-invoices/pkg/uow"
	uowmocks "github.com/fsdevblog/groph-invoices/pkg/uow/mocks"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUOW       *uowmocks.MockUOW
	mockTX        *uowmocks.MockTX
	mockUserRepo  *mocks.MockUserRepository
	mockPsswd     *mocks.MockPasswordHasher
	sessionSecret []byte
	userService   *UserService
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(mockCtrl)
	s.mockUserRepo = mocks.NewMockUserRepository(mockCtrl)
	s.mockPsswd = mocks.NewMockPasswordHasher(mockCtrl)
	s.mockTX = uowmocks.NewMockTX(mockCtrl)

	s.sessionSecret = []byte("secret")

	// Мок получения репозитория из uow. Выполняется в инициализации сервиса.
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()

	userService, servErr := NewUserService(s.mockUOW, s.sessionSecret, s.mockPsswd)
	s.Require().NoError(servErr)
	s.userService = userService
}

func (s *UserServiceTestSuite) TestAuthenticate() {
	savedEmail := "user@nextmail.com"
	argsOk := AuthenticateArgs{Email: savedEmail, Password: "<PASSWORD>"}
	argsWrongEmail := AuthenticateArgs{Email: "wrong@nextmail.com", Password: "<PASSWORD>"}
	argsWrongPass := AuthenticateArgs{Email: savedEmail, Password: "wrong pass"}

	validHashPassword := "hash ok"

	savedUser := domain.User{
		ID:                "5f9b6e65-291f-4df1-81a5-f8ad65e0e437",
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
		Name:              "Admin",
		Email:             savedEmail,
		EncryptedPassword: validHashPassword,
	}

	// Мок для сравнения пароля.
	s.mockPsswd.EXPECT().ComparePassword(argsOk.Password, validHashPassword).Return(true)
	s.mockPsswd.EXPECT().ComparePassword(argsWrongEmail.Password, validHashPassword).Times(0)
	s.mockPsswd.EXPECT().ComparePassword(argsWrongPass.Password, validHashPassword).Return(false)

	// Мок репозитория.
	s.mockUserRepo.EXPECT().
		FindUserByEmail(gomock.Any(), savedEmail).
		Return(&savedUser, nil).Times(2)

	s.mockUserRepo.EXPECT().
		FindUserByEmail(gomock.Any(), argsWrongEmail.Email).
		Return(nil, domain.ErrRecordNotFound)

	cases := []struct {
		name    string
		args    AuthenticateArgs
		wantErr error
	}{
		{name: "ok", args: argsOk, wantErr: nil},
		{name: "wrong email", args: argsWrongEmail, wantErr: domain.ErrRecordNotFound},
		{name: "wrong password", args: argsWrongPass, wantErr: domain.ErrPasswordMissMatch},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			user, tokenStr, err := s.userService.Authenticate(s.T().Context(), t.args)
			s.Require().ErrorIs(err, t.wantErr)

			if t.wantErr == nil {
				s.Require().NotNil(user)
				s.Equal(savedUser.Email, user.Email)
				s.Require().NotEmpty(tokenStr)

				token, tokenErr := tokens.ValidateUserJWT(tokenStr, s.sessionSecret)
				s.Require().NoError(tokenErr)
				s.Equal(savedUser.ID, token.Claims.(*tokens.UserClaims).UserID) //nolint:errcheck
			}
		})
	}
}

func (s *UserServiceTestSuite) TestRegister() {
	argsOk := RegisterUserArgs{Name: "Admin", Email: "user@nextmail.com", Password: "<PASSWORD>"}
	argsDuplicateEmail := RegisterUserArgs{Name: "Admin", Email: "dup@nextmail.com", Password: "<PASSWORD>"}

	validHashedPassword := "hashedPassword"

	createdUser := domain.User{
		ID:                "5f9b6e65-291f-4df1-81a5-f8ad65e0e437",
		Name:              argsOk.Name,
		Email:             argsOk.Email,
		EncryptedPassword: validHashedPassword,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}

	// Мок транзакции uow.
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).MinTimes(1)

	// Мок хеширования пароля.
	s.mockPsswd.EXPECT().HashPassword(argsOk.Password).Return(validHashedPassword, nil).Times(2)

	// Мок репозитория.
	s.mockUserRepo.EXPECT().
		CreateUser(gomock.Any(), gomock.Eq(repoargs.CreateUser{
			Name:              argsOk.Name,
			Email:             argsOk.Email,
			EncryptedPassword: validHashedPassword,
		})).
		Return(&createdUser, nil)

	s.mockUserRepo.EXPECT().
		CreateUser(gomock.Any(), gomock.Eq(repoargs.CreateUser{
			Name:              argsDuplicateEmail.Name,
			Email:             argsDuplicateEmail.Email,
			EncryptedPassword: validHashedPassword,
		})).
		Return(nil, domain.ErrDuplicateKey)

	// Мок uow.
	s.mockUOW.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		}).AnyTimes()

	cases := []struct {
		name     string
		args     RegisterUserArgs
		wantErr  error
		wantUser *domain.User
	}{
		{name: "ok", args: argsOk, wantUser: &createdUser},
		{name: "duplicate email", args: argsDuplicateEmail, wantErr: domain.ErrDuplicateKey},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			user, err := s.userService.Register(s.T().Context(), t.args)

			s.Require().ErrorIs(err, t.wantErr)
			s.Equal(t.wantUser, user)
		})
	}
}
