package service

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/groph-invoices/internal/domain"
	"github.com/fsdevblog/groph-invoices/internal/repository/repoargs"
	"github.com/fsdevblog/groph-invoices/pkg/uow"
)

// LatestInvoicesLimit размер панели последних счетов.
const LatestInvoicesLimit uint = 5

type DashboardService struct {
	dashboardRepo DashboardRepository
	l             *logrus.Entry
}

func NewDashboardService(u uow.UOW, l *logrus.Logger) (*DashboardService, error) {
	dashboardRepo, repoErr := uow.GetRepositoryAs[DashboardRepository](
		u, uow.RepositoryName(repoargs.DashboardRepoName),
	)
	if repoErr != nil {
		return nil, repoErr
	}
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		l:             l.WithField("component", "dashboard_service"),
	}, nil
}

// DashboardData результат сборки дашборда. Ошибка каждой панели хранится отдельно:
// упавшая панель не затрагивает содержимое соседних.
type DashboardData struct {
	Cards    *repoargs.CardSummary
	CardsErr error

	Revenue    []domain.Revenue
	RevenueErr error

	Latest    []repoargs.LatestInvoice
	LatestErr error
}

// Compose собирает дашборд из трех независимых панелей. Выборки выполняются
// параллельно без взаимного упорядочивания; каждая пишет в свои поля результата.
func (s *DashboardService) Compose(ctx context.Context) *DashboardData {
	data := new(DashboardData)

	wg := new(sync.WaitGroup)
	wg.Add(3) //nolint:mnd

	go func() {
		defer wg.Done()
		data.Cards, data.CardsErr = s.dashboardRepo.GetCardSummary(ctx)
		if data.CardsErr != nil {
			s.l.WithError(data.CardsErr).Error("cards panel")
		}
	}()

	go func() {
		defer wg.Done()
		data.Revenue, data.RevenueErr = s.dashboardRepo.GetRevenue(ctx)
		if data.RevenueErr != nil {
			s.l.WithError(data.RevenueErr).Error("revenue panel")
		}
	}()

	go func() {
		defer wg.Done()
		data.Latest, data.LatestErr = s.dashboardRepo.GetLatestInvoices(ctx, LatestInvoicesLimit)
		if data.LatestErr != nil {
			s.l.WithError(data.LatestErr).Error("latest invoices panel")
		}
	}()

	wg.Wait()
	return data
}
