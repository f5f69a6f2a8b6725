package user

import (
	"github.com/gin-gonic/gin"
	"github.com/lshigami/lawdesk/internal/controller"
	"github.com/lshigami/lawdesk/internal/service"
)

type SiteController struct {
	site service.SiteService
}

func NewSiteController(site service.SiteService) *SiteController {
	return &SiteController{site: site}
}

// Status godoc
// @Summary Site status
// @Description Maintenance flag and banner message. Public.
// @Tags Site
// @Produce json
// @Success 200 {object} dto.SiteStatusDTO
// @Router /site/status [get]
func (c *SiteController) Status(ctx *gin.Context) {
	controller.OK(ctx, c.site.Status(ctx.Request.Context()))
}
