package pgrepo

import (
	"context"

	"github.com/fsdevblog/groph-invoices/internal/domain"
	"github.com/fsdevblog/groph-invoices/internal/repository/repoargs"
	"github.com/fsdevblog/groph-invoices/pkg/uow"
)

type UserRepository struct {
	db uow.DBTX
}

func NewUserRepository(db uow.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser создает юзера. В случае конфликта почты возвращает ошибку domain.ErrDuplicateKey,
// во всех других случаях - domain.ErrUnknown.
func (u *UserRepository) CreateUser(ctx context.Context, args repoargs.CreateUser) (*domain.User, error) {
	row := u.db.QueryRow(ctx, `
		INSERT INTO users (name, email, encrypted_password)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at, name, email, encrypted_password`,
		args.Name, args.Email, args.EncryptedPassword,
	)

	var user domain.User
	if err := row.Scan(
		&user.ID, &user.CreatedAt, &user.UpdatedAt,
		&user.Name, &user.Email, &user.EncryptedPassword,
	); err != nil {
		return nil, convertErr(err, "creating user")
	}
	return &user, nil
}

// FindUserByEmail ищет юзера по почте. Возвращает domain.ErrRecordNotFound если запись не найдена.
func (u *UserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := u.db.QueryRow(ctx, `
		SELECT id, created_at, updated_at, name, email, encrypted_password
		FROM users WHERE email = $1`,
		email,
	)

	var user domain.User
	if err := row.Scan(
		&user.ID, &user.CreatedAt, &user.UpdatedAt,
		&user.Name, &user.Email, &user.EncryptedPassword,
	); err != nil {
		return nil, convertErr(err, "finding user by email %s", email)
	}
	return &user, nil
}
