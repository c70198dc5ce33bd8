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

// TaskSequenceService is the application surface the sequence handlers depend on
type TaskSequenceService interface {
	CreateSequence(ctx context.Context, cmd application.CreateTaskSequenceCommand) (*application.TaskSequenceDTO, error)
	GetSequence(ctx context.Context, id int64) (*application.TaskSequenceDTO, error)
	ListSequences(ctx context.Context, query application.ListQuery) ([]application.TaskSequenceDTO, error)
	ListSequencesByGroup(ctx context.Context, groupID int64) ([]application.TaskSequenceDTO, error)
	UpdateSequence(ctx context.Context, cmd application.UpdateTaskSequenceCommand) (*application.TaskSequenceDTO, error)
	DeleteSequence(ctx context.Context, id int64) error
}

// TaskSequenceHandlers contains handlers for task sequence operations
type TaskSequenceHandlers struct {
	service TaskSequenceService
	logger  *logging.Logger
}

// NewTaskSequenceHandlers creates a new TaskSequenceHandlers
func NewTaskSequenceHandlers(service TaskSequenceService, logger *logging.Logger) *TaskSequenceHandlers {
	return &TaskSequenceHandlers{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers task sequence routes on the router
func (h *TaskSequenceHandlers) RegisterRoutes(router *gin.RouterGroup) {
	sequences := router.Group("/task-sequences")
	{
		sequences.POST("", h.CreateSequence)
		sequences.GET("", h.ListSequences)
		sequences.GET("/:sequenceId", h.GetSequence)
		sequences.PUT("/:sequenceId", h.UpdateSequence)
		sequences.DELETE("/:sequenceId", h.DeleteSequence)
		sequences.GET("/group/:groupId", h.ListByGroup)
	}
}

// CreateSequence handles task sequence creation
func (h *TaskSequenceHandlers) CreateSequence(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var cmd application.CreateTaskSequenceCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"group.id": cmd.InventoryGroupID,
	})

	sequence, err := h.service.CreateSequence(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusCreated, sequence)
}

// GetSequence handles getting a task sequence by ID
func (h *TaskSequenceHandlers) GetSequence(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	sequenceID, err := strconv.ParseInt(c.Param("sequenceId"), 10, 64)
	if err != nil {
		responder.RespondBadRequest("invalid sequence id")
		return
	}

	sequence, err := h.service.GetSequence(c.Request.Context(), sequenceID)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, sequence)
}

// ListSequences handles listing task sequences
func (h *TaskSequenceHandlers) ListSequences(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var query application.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	query.Normalize()

	sequences, err := h.service.ListSequences(c.Request.Context(), query)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, sequences)
}

// ListByGroup handles listing the task sequences of one inventory group
func (h *TaskSequenceHandlers) ListByGroup(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	groupID, err := strconv.ParseInt(c.Param("groupId"), 10, 64)
	if err != nil {
		responder.RespondBadRequest("invalid group id")
		return
	}
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"group.id": groupID,
	})

	sequences, err := h.service.ListSequencesByGroup(c.Request.Context(), groupID)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, sequences)
}

// UpdateSequence handles replacing a task sequence
func (h *TaskSequenceHandlers) UpdateSequence(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	sequenceID, err := strconv.ParseInt(c.Param("sequenceId"), 10, 64)
	if err != nil {
		responder.RespondBadRequest("invalid sequence id")
		return
	}

	var cmd application.UpdateTaskSequenceCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd.ID = sequenceID

	sequence, err := h.service.UpdateSequence(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, sequence)
}

// DeleteSequence handles deleting a task sequence
func (h *TaskSequenceHandlers) DeleteSequence(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	sequenceID, err := strconv.ParseInt(c.Param("sequenceId"), 10, 64)
	if err != nil {
		responder.RespondBadRequest("invalid sequence id")
		return
	}

	if err := h.service.DeleteSequence(c.Request.Context(), sequenceID); err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
