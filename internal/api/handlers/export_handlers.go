package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wms-platform/outbound-config-service/internal/application"
	"github.com/wms-platform/outbound-config-service/pkg/errors"
	"github.com/wms-platform/outbound-config-service/pkg/logging"
	"github.com/wms-platform/outbound-config-service/pkg/middleware"
)

// ExportService is the application surface the export handler depends on
type ExportService interface {
	ExportOutbound(ctx context.Context) (*application.OutboundExportDTO, error)
}

// ExportHandlers contains the configuration export handler
type ExportHandlers struct {
	service ExportService
	logger  *logging.Logger
}

// NewExportHandlers creates a new ExportHandlers
func NewExportHandlers(service ExportService, logger *logging.Logger) *ExportHandlers {
	return &ExportHandlers{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers export routes on the router
func (h *ExportHandlers) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/export/outbound", h.ExportOutbound)
}

// ExportOutbound handles exporting the full outbound configuration graph
func (h *ExportHandlers) ExportOutbound(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	export, err := h.service.ExportOutbound(c.Request.Context())
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.Header("Content-Disposition", `attachment; filename="outbound-configuration.json"`)
	c.JSON(http.StatusOK, export)
}
