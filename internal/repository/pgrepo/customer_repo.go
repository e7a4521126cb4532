package pgrepo

import (
	"context"

	"github.com/fsdevblog/groph-invoices/internal/domain"
	"github.com/fsdevblog/groph-invoices/internal/repository/repoargs"
	"github.com/fsdevblog/groph-invoices/pkg/uow"
)

const customerColumns = "id, created_at, updated_at, name, email, image_url"

type CustomerRepository struct {
	db uow.DBTX
}

func NewCustomerRepository(db uow.DBTX) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) CreateCustomer(
	ctx context.Context,
	args repoargs.CreateCustomer,
) (*domain.Customer, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO customers (name, email, image_url)
		VALUES ($1, $2, $3)
		RETURNING `+customerColumns,
		args.Name, args.Email, args.ImageURL,
	)
	customer, err := scanCustomer(row)
	if err != nil {
		return nil, convertErr(err, "creating customer")
	}
	return customer, nil
}

// UpdateCustomer обновляет клиента по id. Если записи не существует, молча ничего не делает
// (поведение согласовано с UpdateInvoice).
func (r *CustomerRepository) UpdateCustomer(ctx context.Context, args repoargs.UpdateCustomer) error {
	_, err := r.db.Exec(ctx, `
		UPDATE customers
		SET name = $1, email = $2, image_url = $3, updated_at = now()
		WHERE id = $4`,
		args.Name, args.Email, args.ImageURL, args.ID,
	)
	if err != nil {
		return convertErr(err, "updating customer %s", args.ID)
	}
	return nil
}

func (r *CustomerRepository) DeleteCustomer(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id); err != nil {
		return convertErr(err, "deleting customer %s", id)
	}
	return nil
}

func (r *CustomerRepository) FindCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	row := r.db.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	customer, err := scanCustomer(row)
	if err != nil {
		return nil, convertErr(err, "finding customer %s", id)
	}
	return customer, nil
}

// GetCustomers возвращает клиентов отфильтрованных по подстроке имени или почты,
// отсортированных по имени.
func (r *CustomerRepository) GetCustomers(
	ctx context.Context,
	filter repoargs.CustomerFilter,
) ([]domain.Customer, error) {
	limit, limitErr := safeConvertUintToInt32(filter.Limit)
	if limitErr != nil {
		return nil, limitErr
	}
	offset, offsetErr := safeConvertUintToInt32(filter.Offset)
	if offsetErr != nil {
		return nil, offsetErr
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%'
		ORDER BY name
		LIMIT NULLIF($2, 0) OFFSET $3`,
		filter.Query, limit, offset,
	)
	if err != nil {
		return nil, convertErr(err, "getting customers")
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if scanErr := rows.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt, &c.Name, &c.Email, &c.ImageURL); scanErr != nil {
			return nil, convertErr(scanErr, "scanning customer")
		}
		customers = append(customers, c)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting customers")
	}
	return customers, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (*domain.Customer, error) {
	var c domain.Customer
	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt, &c.Name, &c.Email, &c.ImageURL); err != nil {
		return nil, err
	}
	return &c, nil
}
