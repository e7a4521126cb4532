package service

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/groph-invoices/internal/domain"
)

// Сообщения об ошибках валидации формы счета. Тексты фиксированы, на них
// завязаны шаблоны форм.
const (
	MsgSelectCustomer = "Please select a customer."
	MsgInvalidAmount  = "Please enter an amount greater than $0."
	MsgSelectStatus   = "Please select an invoice status."

	MsgCustomerName  = "Please enter a name."
	MsgCustomerEmail = "Please enter a valid email address."
)

var formValidator = validator.New()

// InvoiceFormInput сырые значения формы счета как их прислал клиент.
// Поля date и id формой не передаются: дату назначает операция создания,
// id приходит параметром пути.
type InvoiceFormInput struct {
	CustomerID string
	Amount     string
	Status     string
}

type invoiceForm struct {
	CustomerID  string
	AmountCents int64
	Status      domain.InvoiceStatusType
}

type invoiceFormValues struct {
	CustomerID string `validate:"required"`
	Status     string `validate:"required"`
}

// parseInvoiceForm валидирует сырую форму и нормализует ее в типизированную запись.
// Возвращает либо форму, либо мапу поле -> сообщения. Не обращается к хранилищу.
func parseInvoiceForm(input InvoiceFormInput) (*invoiceForm, map[string][]string) {
	fieldErrors := make(map[string][]string)

	if err := formValidator.Struct(invoiceFormValues{
		CustomerID: input.CustomerID,
		Status:     input.Status,
	}); err != nil {
		var valErrs validator.ValidationErrors
		if errors.As(err, &valErrs) {
			for _, fieldErr := range valErrs {
				switch fieldErr.StructField() {
				case "CustomerID":
					fieldErrors["customerId"] = append(fieldErrors["customerId"], MsgSelectCustomer)
				case "Status":
					fieldErrors["status"] = append(fieldErrors["status"], MsgSelectStatus)
				}
			}
		}
	}

	if input.Status != "" && !domain.ValidInvoiceStatus(domain.InvoiceStatusType(input.Status)) {
		fieldErrors["status"] = append(fieldErrors["status"], MsgSelectStatus)
	}

	// Сумма приходит строкой в долларах, приводим к числу без потери точности.
	amountCents, amountOk := coerceAmountCents(input.Amount)
	if !amountOk {
		fieldErrors["amount"] = append(fieldErrors["amount"], MsgInvalidAmount)
	}

	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}

	return &invoiceForm{
		CustomerID:  input.CustomerID,
		AmountCents: amountCents,
		Status:      domain.InvoiceStatusType(input.Status),
	}, nil
}

// coerceAmountCents переводит строку суммы в минорные единицы (amount * 100).
// Сумма должна давать не меньше одного цента и помещаться в int64.
func coerceAmountCents(raw string) (int64, bool) {
	amount, parseErr := decimal.NewFromString(raw)
	if parseErr != nil {
		return 0, false
	}
	cents := amount.Mul(decimal.NewFromInt(100)) //nolint:mnd
	if !cents.BigInt().IsInt64() {
		return 0, false
	}
	centsInt := cents.IntPart()
	if centsInt < 1 {
		return 0, false
	}
	return centsInt, true
}

type customerFormValues struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
}

type CustomerFormInput struct {
	Name     string
	Email    string
	ImageURL string
}

type customerForm struct {
	Name     string
	Email    string
	ImageURL string
}

func parseCustomerForm(input CustomerFormInput) (*customerForm, map[string][]string) {
	fieldErrors := make(map[string][]string)

	if err := formValidator.Struct(customerFormValues{
		Name:  input.Name,
		Email: input.Email,
	}); err != nil {
		var valErrs validator.ValidationErrors
		if errors.As(err, &valErrs) {
			for _, fieldErr := range valErrs {
				switch fieldErr.StructField() {
				case "Name":
					fieldErrors["name"] = append(fieldErrors["name"], MsgCustomerName)
				case "Email":
					fieldErrors["email"] = append(fieldErrors["email"], MsgCustomerEmail)
				}
			}
		}
	}

	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}

	return &customerForm{
		Name:     input.Name,
		Email:    input.Email,
		ImageURL: input.ImageURL,
	}, nil
}
