package service

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/groph-invoices/internal/service/psswd"
	"github.com/fsdevblog/groph-invoices/pkg/uow"
)

type AppServices struct {
	UserService      *UserService
	InvoiceService   *InvoiceService
	CustomerService  *CustomerService
	DashboardService *DashboardService
}

func Factory(
	unitOfWork uow.UOW,
	sessionSecret []byte,
	views ViewInvalidator,
	l *logrus.Logger,
) (*AppServices, error) {
	userService, userServiceErr := NewUserService(unitOfWork, sessionSecret, psswd.PasswordHash(""))
	if userServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", userServiceErr.Error())
	}

	invoiceService, invoiceServiceErr := NewInvoiceService(unitOfWork, views, l)
	if invoiceServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", invoiceServiceErr.Error())
	}

	customerService, customerServiceErr := NewCustomerService(unitOfWork, views, l)
	if customerServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", customerServiceErr.Error())
	}

	dashboardService, dashboardServiceErr := NewDashboardService(unitOfWork, l)
	if dashboardServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", dashboardServiceErr.Error())
	}

	return &AppServices{
		UserService:      userService,
		InvoiceService:   invoiceService,
		CustomerService:  customerService,
		DashboardService: dashboardService,
	}, nil
}
