package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/lawdesk/internal/dto"
)

const MaintenanceHeader = "X-Maintenance-Message"

type SiteStatusSource interface {
	Status(ctx context.Context) dto.SiteStatusDTO
}

// MaintenanceBanner tags every response while maintenance mode is on.
// Requests are still served.
func MaintenanceBanner(source SiteStatusSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		if status := source.Status(c.Request.Context()); status.Maintenance {
			msg := status.Message
			if msg == "" {
				msg = "Scheduled maintenance in progress"
			}
			c.Header(MaintenanceHeader, msg)
		}
		c.Next()
	}
}
