package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	// driver for migration applying postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive

	"github.com/fsdevblog/groph-invoices/internal/config"
	"github.com/fsdevblog/groph-invoices/internal/repository/pgrepo"
	"github.com/fsdevblog/groph-invoices/internal/repository/repoargs"
	"github.com/fsdevblog/groph-invoices/internal/seed"
	"github.com/fsdevblog/groph-invoices/internal/service"
	"github.com/fsdevblog/groph-invoices/internal/transport/web"
	"github.com/fsdevblog/groph-invoices/internal/transport/web/viewcache"
	"github.com/fsdevblog/groph-invoices/pkg/uow"
)

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.Infof("Starting app on %s", a.Config.RunAddress)
	conn, connErr := pgrepo.Connect(notifyCtx, a.Config.MigrationsDir, a.Config.DatabaseDSN, a.Logger)
	if connErr != nil {
		return fmt.Errorf("app run: %s", connErr.Error())
	}
	defer conn.Close()

	unitOfWork, uowErr := initUOW(conn)
	if uowErr != nil {
		return fmt.Errorf("app run: %s", uowErr.Error())
	}

	views := viewcache.New(viewcache.DefaultTTL)

	services, sErr := service.Factory(unitOfWork, []byte(a.Config.SessionSecret), views, a.Logger)
	if sErr != nil {
		return fmt.Errorf("app run: %s", sErr.Error())
	}

	if a.Config.Seed {
		if seedErr := seed.New(unitOfWork, services, a.Logger).Run(notifyCtx); seedErr != nil {
			return fmt.Errorf("app run: %s", seedErr.Error())
		}
	}

	router := web.New(web.RouterArgs{
		Logger:           a.Logger,
		UserService:      services.UserService,
		InvoiceService:   services.InvoiceService,
		CustomerService:  services.CustomerService,
		DashboardService: services.DashboardService,
		Views:            views,
		SessionSecret:    []byte(a.Config.SessionSecret),
	})

	errChan := make(chan error, 1)

	go func() {
		if runErr := router.Run(a.Config.RunAddress); runErr != nil {
			errChan <- runErr
		}
	}()

	select {
	case <-notifyCtx.Done():
		return notifyCtx.Err() //nolint:wrapcheck
	case err := <-errChan:
		return err
	}
}

func initUOW(conn *pgxpool.Pool) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn)

	// user repo
	userRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return pgrepo.NewUserRepository(dbtx)
	}
	if regErr := unitOfWork.Register(uow.RepositoryName(repoargs.UserRepoName), userRepoFactoryFn); regErr != nil {
		return nil, fmt.Errorf("init UOW: %s", regErr.Error())
	}

	// customer repo
	customerRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return pgrepo.NewCustomerRepository(dbtx)
	}
	if regErr := unitOfWork.Register(
		uow.RepositoryName(repoargs.CustomerRepoName),
		customerRepoFactoryFn,
	); regErr != nil {
		return nil, fmt.Errorf("init UOW: %s", regErr.Error())
	}

	// invoice repo
	invoiceRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return pgrepo.NewInvoiceRepository(dbtx)
	}
	if regErr := unitOfWork.Register(
		uow.RepositoryName(repoargs.InvoiceRepoName),
		invoiceRepoFactoryFn,
	); regErr != nil {
		return nil, fmt.Errorf("init UOW: %s", regErr.Error())
	}

	// dashboard repo
	dashboardRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return pgrepo.NewDashboardRepository(dbtx)
	}
	if regErr := unitOfWork.Register(
		uow.RepositoryName(repoargs.DashboardRepoName),
		dashboardRepoFactoryFn,
	); regErr != nil {
		return nil, fmt.Errorf("init UOW: %s", regErr.Error())
	}

	return unitOfWork, nil
}
