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

// TaskPlanningService is the application surface the planning handlers depend on
type TaskPlanningService interface {
	CreatePlanning(ctx context.Context, cmd application.CreateTaskPlanningCommand) (*application.TaskPlanningDTO, error)
	GetPlanning(ctx context.Context, id int64) (*application.TaskPlanningDTO, error)
	ListPlannings(ctx context.Context, query application.ListQuery) ([]application.TaskPlanningDTO, error)
	ListPlanningsByGroup(ctx context.Context, groupID int64) ([]application.TaskPlanningDTO, error)
	UpdatePlanning(ctx context.Context, cmd application.UpdateTaskPlanningCommand) (*application.TaskPlanningDTO, error)
	DeletePlanning(ctx context.Context, id int64) error
	UpsertExecution(ctx context.Context, cmd application.UpsertTaskExecutionCommand) (*application.TaskExecutionDTO, error)
	GetExecutionByPlanning(ctx context.Context, planningID int64) (*application.TaskExecutionDTO, error)
}

// TaskPlanningHandlers contains handlers for task planning operations,
// including the one-to-one execution child.
type TaskPlanningHandlers struct {
	service TaskPlanningService
	logger  *logging.Logger
}

// NewTaskPlanningHandlers creates a new TaskPlanningHandlers
func NewTaskPlanningHandlers(service TaskPlanningService, logger *logging.Logger) *TaskPlanningHandlers {
	return &TaskPlanningHandlers{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers task planning routes on the router
func (h *TaskPlanningHandlers) RegisterRoutes(router *gin.RouterGroup) {
	planning := router.Group("/task-planning")
	{
		planning.POST("", h.CreatePlanning)
		planning.GET("", h.ListPlannings)
		planning.GET("/:planningId", h.GetPlanning)
		planning.PUT("/:planningId", h.UpdatePlanning)
		planning.DELETE("/:planningId", h.DeletePlanning)
		planning.GET("/group/:groupId", h.ListByGroup)
		planning.PUT("/:planningId/execution", h.UpsertExecution)
		planning.GET("/:planningId/execution", h.GetExecution)
	}
}

// CreatePlanning handles task planning creation
func (h *TaskPlanningHandlers) CreatePlanning(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var cmd application.CreateTaskPlanningCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"group.id":              cmd.InventoryGroupID,
		"planning.release_mode": cmd.ReleaseMode,
	})

	planning, err := h.service.CreatePlanning(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusCreated, planning)
}

// GetPlanning handles getting a task planning configuration by ID
func (h *TaskPlanningHandlers) GetPlanning(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	planningID, err := strconv.ParseInt(c.Param("planningId"), 10, 64)
	if err != nil {
		responder.RespondBadRequest("invalid planning id")
		return
	}

	planning, err := h.service.GetPlanning(c.Request.Context(), planningID)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, planning)
}

// ListPlannings handles listing task planning configurations
func (h *TaskPlanningHandlers) ListPlannings(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var query application.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	query.Normalize()

	plannings, err := h.service.ListPlannings(c.Request.Context(), query)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, plannings)
}

// ListByGroup handles listing the planning configurations of one inventory group
func (h *TaskPlanningHandlers) ListByGroup(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	groupID, err := strconv.ParseInt(c.Param("groupId"), 10, 64)
	if err != nil {
		responder.RespondBadRequest("invalid group id")
		return
	}
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"group.id": groupID,
	})

	plannings, err := h.service.ListPlanningsByGroup(c.Request.Context(), groupID)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, plannings)
}

// UpdatePlanning handles updating a task planning configuration
func (h *TaskPlanningHandlers) UpdatePlanning(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	planningID, err := strconv.ParseInt(c.Param("planningId"), 10, 64)
	if err != nil {
		responder.RespondBadRequest("invalid planning id")
		return
	}

	var cmd application.UpdateTaskPlanningCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd.ID = planningID

	planning, err := h.service.UpdatePlanning(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, planning)
}

// DeletePlanning handles deleting a task planning configuration and its
// execution child
func (h *TaskPlanningHandlers) DeletePlanning(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	planningID, err := strconv.ParseInt(c.Param("planningId"), 10, 64)
	if err != nil {
		responder.RespondBadRequest("invalid planning id")
		return
	}

	if err := h.service.DeletePlanning(c.Request.Context(), planningID); err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// UpsertExecution handles creating or replacing the execution settings of a
// task planning configuration
func (h *TaskPlanningHandlers) UpsertExecution(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	planningID, err := strconv.ParseInt(c.Param("planningId"), 10, 64)
	if err != nil {
		responder.RespondBadRequest("invalid planning id")
		return
	}
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"planning.id": planningID,
	})

	var cmd application.UpsertTaskExecutionCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd.TaskPlanningID = planningID

	execution, err := h.service.UpsertExecution(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, execution)
}

// GetExecution handles getting the execution settings of a task planning
// configuration
func (h *TaskPlanningHandlers) GetExecution(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	planningID, err := strconv.ParseInt(c.Param("planningId"), 10, 64)
	if err != nil {
		responder.RespondBadRequest("invalid planning id")
		return
	}

	execution, err := h.service.GetExecutionByPlanning(c.Request.Context(), planningID)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, execution)
}
