package web

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardSvs DashboardServicer
}

func NewDashboardHandler(dashboardSvs DashboardServicer) *DashboardHandler {
	return &DashboardHandler{
		dashboardSvs: dashboardSvs,
	}
}

// Show GET DashboardRoute. Панели собираются параллельно; каждая область страницы
// рисует либо свои данные, либо свою ошибку — соседние панели не страдают.
func (h *DashboardHandler) Show(c *gin.Context) {
	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	data := h.dashboardSvs.Compose(reqCtx)

	c.HTML(http.StatusOK, "dashboard", gin.H{
		"Cards":    data.Cards,
		"CardsErr": data.CardsErr,

		"Revenue":    data.Revenue,
		"RevenueErr": data.RevenueErr,

		"Latest":    data.Latest,
		"LatestErr": data.LatestErr,
	})
}
