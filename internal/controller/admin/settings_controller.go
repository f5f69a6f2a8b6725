package admin

import (
	"github.com/gin-gonic/gin"
	"github.com/lshigami/lawdesk/internal/auth"
	"github.com/lshigami/lawdesk/internal/controller"
	"github.com/lshigami/lawdesk/internal/dto"
	"github.com/lshigami/lawdesk/internal/service"
)

type SettingsController struct {
	site service.SiteService
}

func NewSettingsController(site service.SiteService) *SettingsController {
	return &SettingsController{site: site}
}

// SetMaintenance godoc
// @Summary (Owner) Toggle maintenance mode
// @Tags Admin - Site
// @Accept json
// @Produce json
// @Param maintenance body dto.MaintenanceDTO true "Maintenance state"
// @Success 200 {object} dto.SiteStatusDTO
// @Failure 403 {object} dto.ErrorResponse "Owner only"
// @Router /admin/site/maintenance [put]
func (c *SettingsController) SetMaintenance(ctx *gin.Context) {
	var req dto.MaintenanceDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	status, err := c.site.SetMaintenance(ctx.Request.Context(), auth.FromContext(ctx), req)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, status)
}
