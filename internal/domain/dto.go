package domain

type InvoiceStatusType string

const (
	InvoiceStatusPending InvoiceStatusType = "pending"
	InvoiceStatusPaid    InvoiceStatusType = "paid"
)

// ValidInvoiceStatus проверяет, что значение входит в множество допустимых статусов.
func ValidInvoiceStatus(s InvoiceStatusType) bool {
	return s == InvoiceStatusPending || s == InvoiceStatusPaid
}
