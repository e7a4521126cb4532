package web

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/groph-invoices/internal/domain"
	"github.com/fsdevblog/groph-invoices/internal/service"
)

type CustomersHandler struct {
	customerSvs CustomerServicer
}

func NewCustomersHandler(customerSvs CustomerServicer) *CustomersHandler {
	return &CustomersHandler{
		customerSvs: customerSvs,
	}
}

// Index GET CustomersRoute.
func (h *CustomersHandler) Index(c *gin.Context) {
	query := c.Query("query")

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	customers, err := h.customerSvs.List(reqCtx, query)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.HTML(http.StatusOK, "customers/index", gin.H{
		"Customers": customers,
		"Query":     query,
		"Error":     c.Query("error"),
	})
}

// New GET CustomerCreateRoute.
func (h *CustomersHandler) New(c *gin.Context) {
	c.HTML(http.StatusOK, "customers/form", gin.H{
		"Action": CustomersRoute,
	})
}

// Create POST CustomersRoute.
func (h *CustomersHandler) Create(c *gin.Context) {
	input := customerFormInput(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	res := h.customerSvs.Create(reqCtx, input)
	if res.Navigates() {
		c.Redirect(http.StatusSeeOther, res.RedirectTo)
		return
	}

	renderCustomerForm(c, CustomersRoute, input, res)
}

// Edit GET CustomersRoute/:id/edit.
func (h *CustomersHandler) Edit(c *gin.Context) {
	id := c.Param("id")

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	customer, findErr := h.customerSvs.Find(reqCtx, id)
	if findErr != nil {
		if errors.Is(findErr, domain.ErrRecordNotFound) {
			_ = c.AbortWithError(http.StatusNotFound, findErr).SetType(gin.ErrorTypePrivate)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, findErr).SetType(gin.ErrorTypePrivate)
		return
	}

	c.HTML(http.StatusOK, "customers/form", gin.H{
		"Action":   CustomersRoute + "/" + customer.ID,
		"Customer": customer,
	})
}

// Update POST CustomersRoute/:id.
func (h *CustomersHandler) Update(c *gin.Context) {
	id := c.Param("id")
	input := customerFormInput(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	res := h.customerSvs.Update(reqCtx, id, input)
	if res.Navigates() {
		c.Redirect(http.StatusSeeOther, res.RedirectTo)
		return
	}

	renderCustomerForm(c, CustomersRoute+"/"+id, input, res)
}

// Delete POST CustomersRoute/:id/delete.
func (h *CustomersHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	res := h.customerSvs.Delete(reqCtx, id)
	if !res.Succeeded() {
		c.Redirect(http.StatusSeeOther, CustomersRoute+"?error="+url.QueryEscape(res.Message))
		return
	}
	c.Redirect(http.StatusSeeOther, CustomersRoute)
}

func customerFormInput(c *gin.Context) service.CustomerFormInput {
	return service.CustomerFormInput{
		Name:     c.PostForm("name"),
		Email:    c.PostForm("email"),
		ImageURL: c.PostForm("imageUrl"),
	}
}

func renderCustomerForm(
	c *gin.Context,
	action string,
	input service.CustomerFormInput,
	res *service.MutationResult,
) {
	c.HTML(http.StatusUnprocessableEntity, "customers/form", gin.H{
		"Action":      action,
		"Message":     res.Message,
		"FieldErrors": res.FieldErrors,
		"Input":       input,
	})
}
