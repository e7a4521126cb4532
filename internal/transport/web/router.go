package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/groph-invoices/internal/service"
	"github.com/fsdevblog/groph-invoices/internal/transport/web/middlewares"
	"github.com/fsdevblog/groph-invoices/internal/transport/web/viewcache"
)

const (
	DefaultServiceTimeout = 3 * time.Second
)

const (
	RootRoute      = "/"
	LoginRoute     = "/login"
	LogoutRoute    = "/logout"
	DashboardRoute = "/dashboard"

	InvoicesRoute      = service.InvoicesPath
	InvoiceCreateRoute = service.InvoicesPath + "/create"

	CustomersRoute      = service.CustomersPath
	CustomerCreateRoute = service.CustomersPath + "/create"
)

type RouterArgs struct {
	Logger           *logrus.Logger
	UserService      UserServicer
	InvoiceService   InvoiceServicer
	CustomerService  CustomerServicer
	DashboardService DashboardServicer
	Views            *viewcache.Cache
	SessionSecret    []byte
}

func New(args RouterArgs) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())
	r.SetHTMLTemplate(mustTemplates())

	authHandler := NewAuthHandler(args.UserService)
	invoicesHandler := NewInvoicesHandler(args.InvoiceService, args.CustomerService)
	customersHandler := NewCustomersHandler(args.CustomerService)
	dashboardHandler := NewDashboardHandler(args.DashboardService)

	r.GET(RootRoute, func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, DashboardRoute)
	})

	r.GET(LoginRoute, middlewares.NonAuthRequired(args.SessionSecret), authHandler.ShowLogin)
	r.POST(LoginRoute, middlewares.NonAuthRequired(args.SessionSecret), authHandler.Login)
	r.POST(LogoutRoute, authHandler.Logout)

	// Кеш применяется только к страницам списков: их и инвалидируют мутации.
	listCache := func(c *gin.Context) { c.Next() }
	if args.Views != nil {
		listCache = args.Views.Middleware()
	}

	dash := r.Group(DashboardRoute)
	dash.Use(middlewares.AuthRequired(args.SessionSecret))
	// ниже все роуты группы требуют действительной сессии.
	dash.GET("", dashboardHandler.Show)

	dash.GET("/invoices", listCache, invoicesHandler.Index)
	dash.GET("/invoices/create", invoicesHandler.New)
	dash.POST("/invoices", invoicesHandler.Create)
	dash.GET("/invoices/:id/edit", invoicesHandler.Edit)
	dash.POST("/invoices/:id", invoicesHandler.Update)
	dash.POST("/invoices/:id/delete", invoicesHandler.Delete)

	dash.GET("/customers", listCache, customersHandler.Index)
	dash.GET("/customers/create", customersHandler.New)
	dash.POST("/customers", customersHandler.Create)
	dash.GET("/customers/:id/edit", customersHandler.Edit)
	dash.POST("/customers/:id", customersHandler.Update)
	dash.POST("/customers/:id/delete", customersHandler.Delete)

	return r
}
