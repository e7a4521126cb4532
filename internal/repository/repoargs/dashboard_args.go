package repoargs

// CardSummary агрегаты для панели карточек дашборда. Суммы в минорных единицах.
type CardSummary struct {
	InvoiceCount  int64
	CustomerCount int64
	PaidCents     int64
	PendingCents  int64
}

// LatestInvoice строка панели последних счетов.
type LatestInvoice struct {
	ID               string
	AmountCents      int64
	CustomerName     string
	CustomerEmail    string
	CustomerImageURL string
}
