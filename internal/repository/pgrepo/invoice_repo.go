package pgrepo

import (
	"context"

	"github.com/fsdevblog/groph-invoices/internal/domain"
	"github.com/fsdevblog/groph-invoices/internal/repository/repoargs"
	"github.com/fsdevblog/groph-invoices/pkg/uow"
)

const invoiceColumns = "id, created_at, updated_at, customer_id, amount, status, date"

type InvoiceRepository struct {
	db uow.DBTX
}

func NewInvoiceRepository(db uow.DBTX) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// CreateInvoice вставляет счет. Все значения передаются параметрами запроса.
// Несуществующий customer_id вернет ошибку внешнего ключа как domain.ErrUnknown.
func (r *InvoiceRepository) CreateInvoice(
	ctx context.Context,
	args repoargs.CreateInvoice,
) (*domain.Invoice, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO invoices (customer_id, amount, status, date)
		VALUES ($1, $2, $3, $4)
		RETURNING `+invoiceColumns,
		args.CustomerID, args.AmountCents, args.Status, args.Date,
	)
	invoice, err := scanInvoice(row)
	if err != nil {
		return nil, convertErr(err, "creating invoice")
	}
	return invoice, nil
}

// UpdateInvoice обновляет поля счета по id. Несуществующий id — молчаливый no-op:
// запрос выполняется успешно с нулем затронутых строк.
func (r *InvoiceRepository) UpdateInvoice(ctx context.Context, args repoargs.UpdateInvoice) error {
	_, err := r.db.Exec(ctx, `
		UPDATE invoices
		SET customer_id = $1, amount = $2, status = $3, updated_at = now()
		WHERE id = $4`,
		args.CustomerID, args.AmountCents, args.Status, args.ID,
	)
	if err != nil {
		return convertErr(err, "updating invoice %s", args.ID)
	}
	return nil
}

func (r *InvoiceRepository) DeleteInvoice(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id); err != nil {
		return convertErr(err, "deleting invoice %s", id)
	}
	return nil
}

func (r *InvoiceRepository) FindInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	row := r.db.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
	invoice, err := scanInvoice(row)
	if err != nil {
		return nil, convertErr(err, "finding invoice %s", id)
	}
	return invoice, nil
}

// GetInvoices возвращает страницу счетов вместе с данными клиента. Поиск идет по
// имени/почте клиента, сумме и статусу, свежие счета первыми.
func (r *InvoiceRepository) GetInvoices(
	ctx context.Context,
	filter repoargs.InvoiceFilter,
) ([]repoargs.InvoiceWithCustomer, error) {
	limit, limitErr := safeConvertUintToInt32(filter.Limit)
	if limitErr != nil {
		return nil, limitErr
	}
	offset, offsetErr := safeConvertUintToInt32(filter.Offset)
	if offsetErr != nil {
		return nil, offsetErr
	}

	rows, err := r.db.Query(ctx, `
		SELECT i.id, i.created_at, i.updated_at, i.customer_id, i.amount, i.status, i.date,
		       c.name, c.email, c.image_url
		FROM invoices i
		JOIN customers c ON c.id = i.customer_id
		WHERE c.name ILIKE '%' || $1 || '%'
		   OR c.email ILIKE '%' || $1 || '%'
		   OR i.amount::text ILIKE '%' || $1 || '%'
		   OR i.status ILIKE '%' || $1 || '%'
		ORDER BY i.date DESC, i.created_at DESC
		LIMIT NULLIF($2, 0) OFFSET $3`,
		filter.Query, limit, offset,
	)
	if err != nil {
		return nil, convertErr(err, "getting invoices")
	}
	defer rows.Close()

	var result []repoargs.InvoiceWithCustomer
	for rows.Next() {
		var item repoargs.InvoiceWithCustomer
		if scanErr := rows.Scan(
			&item.Invoice.ID, &item.Invoice.CreatedAt, &item.Invoice.UpdatedAt,
			&item.Invoice.CustomerID, &item.Invoice.AmountCents, &item.Invoice.Status, &item.Invoice.Date,
			&item.CustomerName, &item.CustomerEmail, &item.CustomerImageURL,
		); scanErr != nil {
			return nil, convertErr(scanErr, "scanning invoice")
		}
		result = append(result, item)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting invoices")
	}
	return result, nil
}

// CountInvoices возвращает общее число счетов под фильтром (для пагинации).
func (r *InvoiceRepository) CountInvoices(ctx context.Context, query string) (int64, error) {
	row := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM invoices i
		JOIN customers c ON c.id = i.customer_id
		WHERE c.name ILIKE '%' || $1 || '%'
		   OR c.email ILIKE '%' || $1 || '%'
		   OR i.amount::text ILIKE '%' || $1 || '%'
		   OR i.status ILIKE '%' || $1 || '%'`,
		query,
	)
	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, convertErr(err, "counting invoices")
	}
	return count, nil
}

func scanInvoice(row rowScanner) (*domain.Invoice, error) {
	var i domain.Invoice
	if err := row.Scan(
		&i.ID, &i.CreatedAt, &i.UpdatedAt,
		&i.CustomerID, &i.AmountCents, &i.Status, &i.Date,
	); err != nil {
		return nil, err
	}
	return &i, nil
}
