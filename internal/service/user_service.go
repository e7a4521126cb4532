package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fsdevblog/groph-invoices/internal/domain"
	"github.com/fsdevblog/groph-invoices/internal/repository/repoargs"
	"github.com/fsdevblog/groph-invoices/internal/service/tokens"
	"github.com/fsdevblog/groph-invoices/pkg/uow"
)

const SessionTokenExpire = 1 * time.Hour

type UserService struct {
	uow           uow.UOW
	userRepo      UserRepository
	psswd         PasswordHasher
	sessionSecret []byte
}

func NewUserService(u uow.UOW, sessionSecret []byte, psswd PasswordHasher) (*UserService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr
	}
	return &UserService{
		uow:           u,
		userRepo:      userRepo,
		psswd:         psswd,
		sessionSecret: sessionSecret,
	}, nil
}

type AuthenticateArgs struct {
	Email    string
	Password string
}

// Authenticate проверяет пару почта/пароль и выпускает сессионный jwt. Возвращает
// domain.ErrRecordNotFound для неизвестной почты и domain.ErrPasswordMissMatch для
// неверного пароля — вызывающий различает их от ошибок хранилища.
func (s *UserService) Authenticate(ctx context.Context, args AuthenticateArgs) (*domain.User, string, error) {
	user, findErr := s.userRepo.FindUserByEmail(ctx, args.Email)
	if findErr != nil {
		return nil, "", fmt.Errorf("authenticating user: %w", findErr)
	}

	if !s.psswd.ComparePassword(args.Password, user.EncryptedPassword) {
		return nil, "", fmt.Errorf("authenticating user: %w", domain.ErrPasswordMissMatch)
	}

	token, tokenErr := tokens.GenerateUserJWT(user.ID, SessionTokenExpire, s.sessionSecret)
	if tokenErr != nil {
		return nil, "", fmt.Errorf("authenticating user: %s", tokenErr.Error())
	}
	return user, token, nil
}

type RegisterUserArgs struct {
	Name     string
	Email    string
	Password string
}

// Register создает юзера. Используется сидированием; страницы регистрации у
// админки нет.
func (s *UserService) Register(ctx context.Context, args RegisterUserArgs) (*domain.User, error) {
	password, hashErr := s.psswd.HashPassword(args.Password)
	if hashErr != nil {
		return nil, fmt.Errorf("registering user: %s", hashErr.Error())
	}

	var user *domain.User
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}
		var userErr error
		user, userErr = userRepo.CreateUser(c, repoargs.CreateUser{
			Name:              args.Name,
			Email:             args.Email,
			EncryptedPassword: password,
		})
		return userErr //nolint:wrapcheck
	})
	if txErr != nil {
		return nil, fmt.Errorf("registering user: %w", txErr)
	}
	return user, nil
}
