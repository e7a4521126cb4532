package web

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/groph-invoices/internal/domain"
	"github.com/fsdevblog/groph-invoices/internal/service"
)

type InvoicesHandler struct {
	invoiceSvs  InvoiceServicer
	customerSvs CustomerServicer
}

func NewInvoicesHandler(invoiceSvs InvoiceServicer, customerSvs CustomerServicer) *InvoicesHandler {
	return &InvoicesHandler{
		invoiceSvs:  invoiceSvs,
		customerSvs: customerSvs,
	}
}

// Index GET InvoicesRoute. Список счетов с поиском и пагинацией.
func (h *InvoicesHandler) Index(c *gin.Context) {
	query := c.Query("query")
	page, pageErr := strconv.ParseUint(c.DefaultQuery("page", "1"), 10, 32)
	if pageErr != nil || page < 1 {
		page = 1
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	invoicePage, err := h.invoiceSvs.GetPage(reqCtx, query, uint(page))
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.HTML(http.StatusOK, "invoices/index", gin.H{
		"Items":      invoicePage.Items,
		"Query":      query,
		"Page":       uint(page),
		"TotalPages": invoicePage.TotalPages,
		"Error":      c.Query("error"),
	})
}

// New GET InvoiceCreateRoute. Форма создания с селектом клиентов.
func (h *InvoicesHandler) New(c *gin.Context) {
	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	customers, err := h.customerSvs.List(reqCtx, "")
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.HTML(http.StatusOK, "invoices/form", gin.H{
		"Action":    InvoicesRoute,
		"Customers": customers,
	})
}

// Create POST InvoicesRoute. Навигация — явная ветка результата мутации:
// по ней делаем редирект, иначе перерисовываем форму с ошибками.
func (h *InvoicesHandler) Create(c *gin.Context) {
	input := invoiceFormInput(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	res := h.invoiceSvs.Create(reqCtx, input)
	if res.Navigates() {
		c.Redirect(http.StatusSeeOther, res.RedirectTo)
		return
	}

	h.renderForm(c, InvoicesRoute, input, res)
}

// Edit GET InvoicesRoute/:id/edit.
func (h *InvoicesHandler) Edit(c *gin.Context) {
	id := c.Param("id")

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	invoice, findErr := h.invoiceSvs.Find(reqCtx, id)
	if findErr != nil {
		if errors.Is(findErr, domain.ErrRecordNotFound) {
			_ = c.AbortWithError(http.StatusNotFound, findErr).SetType(gin.ErrorTypePrivate)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, findErr).SetType(gin.ErrorTypePrivate)
		return
	}

	customers, customersErr := h.customerSvs.List(reqCtx, "")
	if customersErr != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, customersErr).SetType(gin.ErrorTypePrivate)
		return
	}

	c.HTML(http.StatusOK, "invoices/form", gin.H{
		"Action":    InvoicesRoute + "/" + invoice.ID,
		"Customers": customers,
		"Invoice":   invoice,
	})
}

// Update POST InvoicesRoute/:id. id приходит параметром пути и формой не валидируется.
func (h *InvoicesHandler) Update(c *gin.Context) {
	id := c.Param("id")
	input := invoiceFormInput(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	res := h.invoiceSvs.Update(reqCtx, id, input)
	if res.Navigates() {
		c.Redirect(http.StatusSeeOther, res.RedirectTo)
		return
	}

	h.renderForm(c, InvoicesRoute+"/"+id, input, res)
}

// Delete POST InvoicesRoute/:id/delete. Сама мутация никуда не навигирует;
// возврат на список — транспортная деталь ответа формы.
func (h *InvoicesHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	res := h.invoiceSvs.Delete(reqCtx, id)
	if !res.Succeeded() {
		c.Redirect(http.StatusSeeOther, InvoicesRoute+"?error="+url.QueryEscape(res.Message))
		return
	}
	c.Redirect(http.StatusSeeOther, InvoicesRoute)
}

func invoiceFormInput(c *gin.Context) service.InvoiceFormInput {
	return service.InvoiceFormInput{
		CustomerID: c.PostForm("customerId"),
		Amount:     c.PostForm("amount"),
		Status:     c.PostForm("status"),
	}
}

// renderForm перерисовывает форму с сообщением об ошибке и введенными значениями.
func (h *InvoicesHandler) renderForm(
	c *gin.Context,
	action string,
	input service.InvoiceFormInput,
	res *service.MutationResult,
) {
	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	customers, customersErr := h.customerSvs.List(reqCtx, "")
	if customersErr != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, customersErr).SetType(gin.ErrorTypePrivate)
		return
	}

	c.HTML(http.StatusUnprocessableEntity, "invoices/form", gin.H{
		"Action":      action,
		"Customers":   customers,
		"Message":     res.Message,
		"FieldErrors": res.FieldErrors,
		"Input":       input,
	})
}
