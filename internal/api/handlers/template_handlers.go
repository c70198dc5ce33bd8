package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wms-platform/outbound-config-service/internal/application"
	"github.com/wms-platform/outbound-config-service/pkg/errors"
	"github.com/wms-platform/outbound-config-service/pkg/logging"
	"github.com/wms-platform/outbound-config-service/pkg/middleware"
)

// TemplateService is the application surface the template handlers depend on
type TemplateService interface {
	CreateTemplate(ctx context.Context, cmd application.CreateTemplateCommand) (*application.TemplateDTO, error)
	GetTemplate(ctx context.Context, id int64) (*application.TemplateDTO, error)
	ListTemplates(ctx context.Context, query application.ListQuery) ([]application.TemplateDTO, error)
	DeleteTemplate(ctx context.Context, id int64) error
	ApplyTemplate(ctx context.Context, templateID int64) (*application.ApplySummaryDTO, error)
	QuickSetup(ctx context.Context) (*application.ApplySummaryDTO, error)
}

// TemplateHandlers contains handlers for template and quick-setup operations
type TemplateHandlers struct {
	service TemplateService
	logger  *logging.Logger
	metrics *middleware.BusinessMetrics
}

// NewTemplateHandlers creates a new TemplateHandlers. A nil metrics helper
// disables business metric recording.
func NewTemplateHandlers(service TemplateService, logger *logging.Logger, metrics *middleware.BusinessMetrics) *TemplateHandlers {
	return &TemplateHandlers{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

// RegisterRoutes registers template routes on the router
func (h *TemplateHandlers) RegisterRoutes(router *gin.RouterGroup) {
	templates := router.Group("/templates")
	{
		templates.POST("", h.CreateTemplate)
		templates.GET("", h.ListTemplates)
		templates.GET("/:templateId", h.GetTemplate)
		templates.DELETE("/:templateId", h.DeleteTemplate)
		templates.POST("/:templateId/apply", h.ApplyTemplate)
	}
	router.POST("/quick-setup", h.QuickSetup)
}

// CreateTemplate handles template creation
func (h *TemplateHandlers) CreateTemplate(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var cmd application.CreateTemplateCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"template.name": cmd.Name,
	})

	template, err := h.service.CreateTemplate(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusCreated, template)
}

// GetTemplate handles getting a template by ID
func (h *TemplateHandlers) GetTemplate(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	templateID, err := strconv.ParseInt(c.Param("templateId"), 10, 64)
	if err != nil {
		responder.RespondBadRequest("invalid template id")
		return
	}

	template, err := h.service.GetTemplate(c.Request.Context(), templateID)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, template)
}

// ListTemplates handles listing templates
func (h *TemplateHandlers) ListTemplates(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var query application.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	query.Normalize()

	templates, err := h.service.ListTemplates(c.Request.Context(), query)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, templates)
}

// DeleteTemplate handles deleting a template
func (h *TemplateHandlers) DeleteTemplate(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	templateID, err := strconv.ParseInt(c.Param("templateId"), 10, 64)
	if err != nil {
		responder.RespondBadRequest("invalid template id")
		return
	}

	if err := h.service.DeleteTemplate(c.Request.Context(), templateID); err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// ApplyTemplate handles applying a template to the live configuration
func (h *TemplateHandlers) ApplyTemplate(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	templateID, err := strconv.ParseInt(c.Param("templateId"), 10, 64)
	if err != nil {
		responder.RespondBadRequest("invalid template id")
		return
	}
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"template.id": templateID,
	})

	summary, err := h.service.ApplyTemplate(c.Request.Context(), templateID)
	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordTemplateApplied(c.Param("templateId"), false)
		}
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	if h.metrics != nil {
		h.metrics.RecordTemplateApplied(summary.TemplateName, true)
	}
	c.JSON(http.StatusCreated, summary)
}

// QuickSetup handles applying the built-in starter configuration
func (h *TemplateHandlers) QuickSetup(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	summary, err := h.service.QuickSetup(c.Request.Context())
	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordTemplateApplied("quick-setup", false)
		}
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	if h.metrics != nil {
		h.metrics.RecordTemplateApplied("quick-setup", true)
	}
	c.JSON(http.StatusCreated, summary)
}
