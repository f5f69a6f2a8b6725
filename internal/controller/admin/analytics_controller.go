package admin

import (
	"github.com/gin-gonic/gin"
	"github.com/lshigami/lawdesk/internal/auth"
	"github.com/lshigami/lawdesk/internal/controller"
	"github.com/lshigami/lawdesk/internal/service"
)

type AnalyticsController struct {
	analytics service.AnalyticsService
}

func NewAnalyticsController(analytics service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{analytics: analytics}
}

// Overview godoc
// @Summary (Admin) Portal overview
// @Tags Admin - Analytics
// @Produce json
// @Success 200 {object} dto.OverviewDTO
// @Router /admin/analytics/overview [get]
func (c *AnalyticsController) Overview(ctx *gin.Context) {
	overview, err := c.analytics.Overview(ctx.Request.Context(), auth.FromContext(ctx))
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, overview)
}

// TestStats godoc
// @Summary (Admin) Per-test statistics
// @Tags Admin - Analytics
// @Produce json
// @Success 200 {array} dto.TestStatDTO
// @Router /admin/analytics/tests [get]
func (c *AnalyticsController) TestStats(ctx *gin.Context) {
	stats, err := c.analytics.TestStats(ctx.Request.Context(), auth.FromContext(ctx))
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, stats)
}
