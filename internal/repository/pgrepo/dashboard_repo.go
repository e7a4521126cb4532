package pgrepo

import (
	"context"

	"github.com/fsdevblog/groph-invoices/internal/domain"
	"github.com/fsdevblog/groph-invoices/internal/repository/repoargs"
	"github.com/fsdevblog/groph-invoices/pkg/uow"
)

// DashboardRepository агрегатные выборки для панелей дашборда.
type DashboardRepository struct {
	db uow.DBTX
}

func NewDashboardRepository(db uow.DBTX) *DashboardRepository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) GetCardSummary(ctx context.Context) (*repoargs.CardSummary, error) {
	row := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM invoices),
			(SELECT COUNT(*) FROM customers),
			(SELECT COALESCE(SUM(amount), 0) FROM invoices WHERE status = 'paid'),
			(SELECT COALESCE(SUM(amount), 0) FROM invoices WHERE status = 'pending')`,
	)

	var summary repoargs.CardSummary
	if err := row.Scan(
		&summary.InvoiceCount, &summary.CustomerCount,
		&summary.PaidCents, &summary.PendingCents,
	); err != nil {
		return nil, convertErr(err, "getting card summary")
	}
	return &summary, nil
}

func (r *DashboardRepository) GetRevenue(ctx context.Context) ([]domain.Revenue, error) {
	rows, err := r.db.Query(ctx, `SELECT month, revenue FROM revenue ORDER BY month`)
	if err != nil {
		return nil, convertErr(err, "getting revenue")
	}
	defer rows.Close()

	var revenue []domain.Revenue
	for rows.Next() {
		var rev domain.Revenue
		if scanErr := rows.Scan(&rev.Month, &rev.Revenue); scanErr != nil {
			return nil, convertErr(scanErr, "scanning revenue")
		}
		revenue = append(revenue, rev)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting revenue")
	}
	return revenue, nil
}

// UpsertRevenue записывает выручку за месяц, перезаписывая существующее значение.
func (r *DashboardRepository) UpsertRevenue(ctx context.Context, month string, revenueCents int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO revenue (month, revenue) VALUES ($1, $2)
		ON CONFLICT (month) DO UPDATE SET revenue = EXCLUDED.revenue`,
		month, revenueCents,
	)
	if err != nil {
		return convertErr(err, "upserting revenue for month %s", month)
	}
	return nil
}

// GetLatestInvoices возвращает limit последних счетов с данными клиента, свежие первыми.
func (r *DashboardRepository) GetLatestInvoices(
	ctx context.Context,
	limit uint,
) ([]repoargs.LatestInvoice, error) {
	limit32, limitErr := safeConvertUintToInt32(limit)
	if limitErr != nil {
		return nil, limitErr
	}

	rows, err := r.db.Query(ctx, `
		SELECT i.id, i.amount, c.name, c.email, c.image_url
		FROM invoices i
		JOIN customers c ON c.id = i.customer_id
		ORDER BY i.date DESC, i.created_at DESC
		LIMIT $1`,
		limit32,
	)
	if err != nil {
		return nil, convertErr(err, "getting latest invoices")
	}
	defer rows.Close()

	var latest []repoargs.LatestInvoice
	for rows.Next() {
		var item repoargs.LatestInvoice
		if scanErr := rows.Scan(
			&item.ID, &item.AmountCents,
			&item.CustomerName, &item.CustomerEmail, &item.CustomerImageURL,
		); scanErr != nil {
			return nil, convertErr(scanErr, "scanning latest invoice")
		}
		latest = append(latest, item)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting latest invoices")
	}
	return latest, nil
}
