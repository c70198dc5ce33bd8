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

// PickStrategyService is the application surface the strategy handlers depend on
type PickStrategyService interface {
	CreateStrategy(ctx context.Context, cmd application.CreatePickStrategyCommand) (*application.PickStrategyDTO, error)
	GetStrategy(ctx context.Context, id int64) (*application.PickStrategyDTO, error)
	ListStrategies(ctx context.Context, query application.ListQuery) ([]application.PickStrategyDTO, error)
	ListStrategiesByGroup(ctx context.Context, groupID int64) ([]application.PickStrategyDTO, error)
	UpdateStrategy(ctx context.Context, cmd application.UpdatePickStrategyCommand) (*application.PickStrategyDTO, error)
	DeleteStrategy(ctx context.Context, id int64) error
	UpsertHUFormation(ctx context.Context, cmd application.UpsertHUFormationCommand) (*application.HUFormationDTO, error)
	GetHUFormationByStrategy(ctx context.Context, strategyID int64) (*application.HUFormationDTO, error)
	UpsertWorkOrderManagement(ctx context.Context, cmd application.UpsertWorkOrderManagementCommand) (*application.WorkOrderManagementDTO, error)
	GetWorkOrderManagementByStrategy(ctx context.Context, strategyID int64) (*application.WorkOrderManagementDTO, error)
}

// PickStrategyHandlers contains handlers for pick strategy operations,
// including the one-to-one HU formation and work order management children.
type PickStrategyHandlers struct {
	service PickStrategyService
	logger  *logging.Logger
}

// NewPickStrategyHandlers creates a new PickStrategyHandlers
func NewPickStrategyHandlers(service PickStrategyService, logger *logging.Logger) *PickStrategyHandlers {
	return &PickStrategyHandlers{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers pick strategy routes on the router
func (h *PickStrategyHandlers) RegisterRoutes(router *gin.RouterGroup) {
	strategies := router.Group("/pick-strategies")
	{
		strategies.POST("", h.CreateStrategy)
		strategies.GET("", h.ListStrategies)
		strategies.GET("/:strategyId", h.GetStrategy)
		strategies.PUT("/:strategyId", h.UpdateStrategy)
		strategies.DELETE("/:strategyId", h.DeleteStrategy)
		strategies.GET("/group/:groupId", h.ListByGroup)
		strategies.PUT("/:strategyId/hu-formation", h.UpsertHUFormation)
		strategies.GET("/:strategyId/hu-formation", h.GetHUFormation)
		strategies.PUT("/:strategyId/work-order-management", h.UpsertWorkOrderManagement)
		strategies.GET("/:strategyId/work-order-management", h.GetWorkOrderManagement)
	}
}

// CreateStrategy handles pick strategy creation
func (h *PickStrategyHandlers) CreateStrategy(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var cmd application.CreatePickStrategyCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"group.id":           cmd.InventoryGroupID,
		"strategy.task_kind": cmd.TaskKind,
	})

	strategy, err := h.service.CreateStrategy(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusCreated, strategy)
}

// GetStrategy handles getting a pick strategy by ID
func (h *PickStrategyHandlers) GetStrategy(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	strategyID, err := strconv.ParseInt(c.Param("strategyId"), 10, 64)
	if err != nil {
		responder.RespondBadRequest("invalid strategy id")
		return
	}

	strategy, err := h.service.GetStrategy(c.Request.Context(), strategyID)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, strategy)
}

// ListStrategies handles listing pick strategies
func (h *PickStrategyHandlers) ListStrategies(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var query application.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	query.Normalize()

	strategies, err := h.service.ListStrategies(c.Request.Context(), query)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, strategies)
}

// ListByGroup handles listing the pick strategies of one inventory group
func (h *PickStrategyHandlers) ListByGroup(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	groupID, err := strconv.ParseInt(c.Param("groupId"), 10, 64)
	if err != nil {
		responder.RespondBadRequest("invalid group id")
		return
	}
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"group.id": groupID,
	})

	strategies, err := h.service.ListStrategiesByGroup(c.Request.Context(), groupID)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, strategies)
}

// UpdateStrategy handles updating a pick strategy
func (h *PickStrategyHandlers) UpdateStrategy(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	strategyID, err := strconv.ParseInt(c.Param("strategyId"), 10, 64)
	if err != nil {
		responder.RespondBadRequest("invalid strategy id")
		return
	}

	var cmd application.UpdatePickStrategyCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd.ID = strategyID

	strategy, err := h.service.UpdateStrategy(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, strategy)
}

// DeleteStrategy handles deleting a pick strategy and its children
func (h *PickStrategyHandlers) DeleteStrategy(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	strategyID, err := strconv.ParseInt(c.Param("strategyId"), 10, 64)
	if err != nil {
		responder.RespondBadRequest("invalid strategy id")
		return
	}

	if err := h.service.DeleteStrategy(c.Request.Context(), strategyID); err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// UpsertHUFormation handles creating or replacing the HU formation settings
// of a pick strategy
func (h *PickStrategyHandlers) UpsertHUFormation(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	strategyID, err := strconv.ParseInt(c.Param("strategyId"), 10, 64)
	if err != nil {
		responder.RespondBadRequest("invalid strategy id")
		return
	}
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"strategy.id": strategyID,
	})

	var cmd application.UpsertHUFormationCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd.PickStrategyID = strategyID

	formation, err := h.service.UpsertHUFormation(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, formation)
}

// GetHUFormation handles getting the HU formation settings of a pick strategy
func (h *PickStrategyHandlers) GetHUFormation(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	strategyID, err := strconv.ParseInt(c.Param("strategyId"), 10, 64)
	if err != nil {
		responder.RespondBadRequest("invalid strategy id")
		return
	}

	formation, err := h.service.GetHUFormationByStrategy(c.Request.Context(), strategyID)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, formation)
}

// UpsertWorkOrderManagement handles creating or replacing the work order
// management settings of a pick strategy
func (h *PickStrategyHandlers) UpsertWorkOrderManagement(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	strategyID, err := strconv.ParseInt(c.Param("strategyId"), 10, 64)
	if err != nil {
		responder.RespondBadRequest("invalid strategy id")
		return
	}
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"strategy.id": strategyID,
	})

	var cmd application.UpsertWorkOrderManagementCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd.PickStrategyID = strategyID

	workOrder, err := h.service.UpsertWorkOrderManagement(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, workOrder)
}

// GetWorkOrderManagement handles getting the work order management settings
// of a pick strategy
func (h *PickStrategyHandlers) GetWorkOrderManagement(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	strategyID, err := strconv.ParseInt(c.Param("strategyId"), 10, 64)
	if err != nil {
		responder.RespondBadRequest("invalid strategy id")
		return
	}

	workOrder, err := h.service.GetWorkOrderManagementByStrategy(c.Request.Context(), strategyID)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, workOrder)
}
