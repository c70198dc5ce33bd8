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

// WizardService is the application surface the wizard handlers depend on
type WizardService interface {
	CreateSession(ctx context.Context) (*application.WizardSessionDTO, error)
	GetSession(ctx context.Context, sessionID string) (*application.WizardSessionDTO, error)
	Next(ctx context.Context, sessionID string) (*application.StepTransitionDTO, error)
	Previous(ctx context.Context, sessionID string) (*application.StepTransitionDTO, error)
	Jump(ctx context.Context, cmd application.JumpToStepCommand) (*application.WizardSessionDTO, error)
	Reset(ctx context.Context, sessionID string) (*application.WizardSessionDTO, error)
	Confirm(ctx context.Context, sessionID string) (*application.WizardSessionDTO, error)
	StepsReport(ctx context.Context, sessionID string) ([]application.StepStatusDTO, error)
}

// WizardHandlers contains handlers for wizard session navigation
type WizardHandlers struct {
	service WizardService
	logger  *logging.Logger
	metrics *middleware.BusinessMetrics
}

// NewWizardHandlers creates a new WizardHandlers. A nil metrics helper
// disables business metric recording.
func NewWizardHandlers(service WizardService, logger *logging.Logger, metrics *middleware.BusinessMetrics) *WizardHandlers {
	return &WizardHandlers{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

// RegisterRoutes registers wizard routes on the router
func (h *WizardHandlers) RegisterRoutes(router *gin.RouterGroup) {
	sessions := router.Group("/wizard/sessions")
	{
		sessions.POST("", h.CreateSession)
		sessions.GET("/:sessionId", h.GetSession)
		sessions.POST("/:sessionId/next", h.Next)
		sessions.POST("/:sessionId/previous", h.Previous)
		sessions.POST("/:sessionId/jump", h.Jump)
		sessions.POST("/:sessionId/reset", h.Reset)
		sessions.POST("/:sessionId/confirm", h.Confirm)
		sessions.GET("/:sessionId/steps", h.Steps)
	}
}

// CreateSession handles starting a new wizard session
func (h *WizardHandlers) CreateSession(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	session, err := h.service.CreateSession(c.Request.Context())
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusCreated, session)
}

// GetSession handles getting a wizard session by ID
func (h *WizardHandlers) GetSession(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	sessionID := c.Param("sessionId")
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"wizard.session_id": sessionID,
	})

	session, err := h.service.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, session)
}

// Next handles advancing a wizard session to the next step. A refused
// advance still returns 200 with the warning in the body.
func (h *WizardHandlers) Next(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	sessionID := c.Param("sessionId")
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"wizard.session_id": sessionID,
	})

	result, err := h.service.Next(c.Request.Context(), sessionID)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	if h.metrics != nil {
		h.metrics.RecordWizardTransition("next", result.Advanced)
	}
	c.JSON(http.StatusOK, result)
}

// Previous handles moving a wizard session back one step
func (h *WizardHandlers) Previous(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	sessionID := c.Param("sessionId")
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"wizard.session_id": sessionID,
	})

	result, err := h.service.Previous(c.Request.Context(), sessionID)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	if h.metrics != nil {
		h.metrics.RecordWizardTransition("previous", result.Advanced)
	}
	c.JSON(http.StatusOK, result)
}

// Jump handles moving a wizard session to a specific step
func (h *WizardHandlers) Jump(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	sessionID := c.Param("sessionId")
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"wizard.session_id": sessionID,
	})

	var cmd application.JumpToStepCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd.SessionID = sessionID

	session, err := h.service.Jump(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, session)
}

// Reset handles resetting a wizard session to the first step
func (h *WizardHandlers) Reset(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	sessionID := c.Param("sessionId")
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"wizard.session_id": sessionID,
	})

	session, err := h.service.Reset(c.Request.Context(), sessionID)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, session)
}

// Confirm handles confirming the setup on the final step
func (h *WizardHandlers) Confirm(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	sessionID := c.Param("sessionId")
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"wizard.session_id": sessionID,
	})

	session, err := h.service.Confirm(c.Request.Context(), sessionID)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, session)
}

// Steps handles reporting the completion state of every wizard step
func (h *WizardHandlers) Steps(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	sessionID := c.Param("sessionId")

	report, err := h.service.StepsReport(c.Request.Context(), sessionID)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, report)
}
