package repoargs

import (
	"time"

	"github.com/fsdevblog/groph-invoices/internal/domain"
)

type CreateInvoice struct {
	CustomerID  string
	AmountCents int64
	Status      domain.InvoiceStatusType
	Date        time.Time
}

type UpdateInvoice struct {
	ID          string
	CustomerID  string
	AmountCents int64
	Status      domain.InvoiceStatusType
}

// InvoiceFilter параметры выборки списка счетов. Query ищется по имени/почте клиента,
// сумме и статусу. Limit/Offset — постраничная навигация.
type InvoiceFilter struct {
	Query  string
	Limit  uint
	Offset uint
}

// InvoiceWithCustomer строка списка счетов, объединенная с данными клиента.
type InvoiceWithCustomer struct {
	Invoice          domain.Invoice
	CustomerName     string
	CustomerEmail    string
	CustomerImageURL string
}
