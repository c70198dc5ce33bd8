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

// InventoryGroupService is the application surface the group handlers depend on
type InventoryGroupService interface {
	CreateGroup(ctx context.Context, cmd application.CreateInventoryGroupCommand) (*application.InventoryGroupDTO, error)
	GetGroup(ctx context.Context, id int64) (*application.InventoryGroupDTO, error)
	ListGroups(ctx context.Context, query application.ListQuery) ([]application.InventoryGroupDTO, error)
	UpdateGroup(ctx context.Context, cmd application.UpdateInventoryGroupCommand) (*application.InventoryGroupDTO, error)
	DeleteGroup(ctx context.Context, id int64) error
}

// InventoryGroupHandlers contains handlers for inventory group operations
type InventoryGroupHandlers struct {
	service InventoryGroupService
	logger  *logging.Logger
	metrics *middleware.BusinessMetrics
}

// NewInventoryGroupHandlers creates a new InventoryGroupHandlers. A nil
// metrics helper disables business metric recording.
func NewInventoryGroupHandlers(service InventoryGroupService, logger *logging.Logger, metrics *middleware.BusinessMetrics) *InventoryGroupHandlers {
	return &InventoryGroupHandlers{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

// RegisterRoutes registers inventory group routes on the router
func (h *InventoryGroupHandlers) RegisterRoutes(router *gin.RouterGroup) {
	groups := router.Group("/inventory-groups")
	{
		groups.POST("", h.CreateGroup)
		groups.GET("", h.ListGroups)
		groups.GET("/:groupId", h.GetGroup)
		groups.PUT("/:groupId", h.UpdateGroup)
		groups.DELETE("/:groupId", h.DeleteGroup)
	}
}

// CreateGroup handles inventory group creation
func (h *InventoryGroupHandlers) CreateGroup(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var cmd application.CreateInventoryGroupCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"group.storage_instruction":  cmd.StorageInstruction,
		"group.location_instruction": cmd.LocationInstruction,
	})

	group, err := h.service.CreateGroup(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	if h.metrics != nil {
		h.metrics.RecordConfigCreated("inventory-group")
	}
	c.JSON(http.StatusCreated, group)
}

// GetGroup handles getting an inventory group by ID
func (h *InventoryGroupHandlers) GetGroup(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	groupID, err := strconv.ParseInt(c.Param("groupId"), 10, 64)
	if err != nil {
		responder.RespondBadRequest("invalid group id")
		return
	}
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"group.id": groupID,
	})

	group, err := h.service.GetGroup(c.Request.Context(), groupID)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, group)
}

// ListGroups handles listing inventory groups
func (h *InventoryGroupHandlers) ListGroups(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var query application.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	query.Normalize()

	groups, err := h.service.ListGroups(c.Request.Context(), query)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, groups)
}

// UpdateGroup handles updating an inventory group
func (h *InventoryGroupHandlers) UpdateGroup(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	groupID, err := strconv.ParseInt(c.Param("groupId"), 10, 64)
	if err != nil {
		responder.RespondBadRequest("invalid group id")
		return
	}
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"group.id": groupID,
	})

	var cmd application.UpdateInventoryGroupCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd.GroupID = groupID

	group, err := h.service.UpdateGroup(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	if h.metrics != nil {
		h.metrics.RecordConfigUpdated("inventory-group")
	}
	c.JSON(http.StatusOK, group)
}

// DeleteGroup handles deleting an inventory group and its dependent records
func (h *InventoryGroupHandlers) DeleteGroup(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	groupID, err := strconv.ParseInt(c.Param("groupId"), 10, 64)
	if err != nil {
		responder.RespondBadRequest("invalid group id")
		return
	}
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"group.id": groupID,
	})

	if err := h.service.DeleteGroup(c.Request.Context(), groupID); err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	if h.metrics != nil {
		h.metrics.RecordConfigDeleted("inventory-group")
	}
	c.Status(http.StatusNoContent)
}
