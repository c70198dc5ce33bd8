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

// StockAllocationService is the application surface the allocation handlers depend on
type StockAllocationService interface {
	CreateAllocation(ctx context.Context, cmd application.CreateStockAllocationCommand) (*application.StockAllocationDTO, error)
	GetAllocation(ctx context.Context, id int64) (*application.StockAllocationDTO, error)
	ListAllocations(ctx context.Context, query application.ListQuery) ([]application.StockAllocationDTO, error)
	ListAllocationsByGroup(ctx context.Context, groupID int64) ([]application.StockAllocationDTO, error)
	UpdateAllocation(ctx context.Context, cmd application.UpdateStockAllocationCommand) (*application.StockAllocationDTO, error)
	DeleteAllocation(ctx context.Context, id int64) error
}

// StockAllocationHandlers contains handlers for stock allocation operations
type StockAllocationHandlers struct {
	service StockAllocationService
	logger  *logging.Logger
}

// NewStockAllocationHandlers creates a new StockAllocationHandlers
func NewStockAllocationHandlers(service StockAllocationService, logger *logging.Logger) *StockAllocationHandlers {
	return &StockAllocationHandlers{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers stock allocation routes on the router
func (h *StockAllocationHandlers) RegisterRoutes(router *gin.RouterGroup) {
	allocations := router.Group("/stock-allocations")
	{
		allocations.POST("", h.CreateAllocation)
		allocations.GET("", h.ListAllocations)
		allocations.GET("/:allocationId", h.GetAllocation)
		allocations.PUT("/:allocationId", h.UpdateAllocation)
		allocations.DELETE("/:allocationId", h.DeleteAllocation)
		allocations.GET("/group/:groupId", h.ListByGroup)
	}
}

// CreateAllocation handles stock allocation strategy creation
func (h *StockAllocationHandlers) CreateAllocation(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var cmd application.CreateStockAllocationCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"group.id":        cmd.InventoryGroupID,
		"allocation.mode": cmd.Mode,
	})

	allocation, err := h.service.CreateAllocation(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusCreated, allocation)
}

// GetAllocation handles getting a stock allocation strategy by ID
func (h *StockAllocationHandlers) GetAllocation(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	allocationID, err := strconv.ParseInt(c.Param("allocationId"), 10, 64)
	if err != nil {
		responder.RespondBadRequest("invalid allocation id")
		return
	}

	allocation, err := h.service.GetAllocation(c.Request.Context(), allocationID)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, allocation)
}

// ListAllocations handles listing stock allocation strategies
func (h *StockAllocationHandlers) ListAllocations(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var query application.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	query.Normalize()

	allocations, err := h.service.ListAllocations(c.Request.Context(), query)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, allocations)
}

// ListByGroup handles listing the allocation strategies of one inventory group
func (h *StockAllocationHandlers) ListByGroup(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	groupID, err := strconv.ParseInt(c.Param("groupId"), 10, 64)
	if err != nil {
		responder.RespondBadRequest("invalid group id")
		return
	}
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"group.id": groupID,
	})

	allocations, err := h.service.ListAllocationsByGroup(c.Request.Context(), groupID)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, allocations)
}

// UpdateAllocation handles updating a stock allocation strategy
func (h *StockAllocationHandlers) UpdateAllocation(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	allocationID, err := strconv.ParseInt(c.Param("allocationId"), 10, 64)
	if err != nil {
		responder.RespondBadRequest("invalid allocation id")
		return
	}

	var cmd application.UpdateStockAllocationCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd.ID = allocationID

	allocation, err := h.service.UpdateAllocation(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, allocation)
}

// DeleteAllocation handles deleting a stock allocation strategy
func (h *StockAllocationHandlers) DeleteAllocation(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	allocationID, err := strconv.ParseInt(c.Param("allocationId"), 10, 64)
	if err != nil {
		responder.RespondBadRequest("invalid allocation id")
		return
	}

	if err := h.service.DeleteAllocation(c.Request.Context(), allocationID); err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
