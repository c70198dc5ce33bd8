package application

import (
	"context"
	"fmt"
	"strconv"

	"github.com/wms-platform/outbound-config-service/internal/domain"
	"github.com/wms-platform/outbound-config-service/pkg/cloudevents"
	"github.com/wms-platform/outbound-config-service/pkg/errors"
	"github.com/wms-platform/outbound-config-service/pkg/kafka"
	"github.com/wms-platform/outbound-config-service/pkg/logging"
)

// TaskPlanningApplicationService handles task planning use cases, including
// the one-to-one execution configuration attached to each planning record.
type TaskPlanningApplicationService struct {
	planning     TaskPlanningRepository
	executions   TaskExecutionRepository
	deps         *DependencyRules
	publisher    EventPublisher
	eventFactory *cloudevents.EventFactory
	logger       *logging.Logger
}

// NewTaskPlanningApplicationService creates a new TaskPlanningApplicationService
func NewTaskPlanningApplicationService(
	planning TaskPlanningRepository,
	executions TaskExecutionRepository,
	deps *DependencyRules,
	publisher EventPublisher,
	eventFactory *cloudevents.EventFactory,
	logger *logging.Logger,
) *TaskPlanningApplicationService {
	return &TaskPlanningApplicationService{
		planning:     planning,
		executions:   executions,
		deps:         deps,
		publisher:    publisher,
		eventFactory: eventFactory,
		logger:       logger,
	}
}

// CreatePlanning creates a task planning configuration for an inventory group
func (s *TaskPlanningApplicationService) CreatePlanning(ctx context.Context, cmd CreateTaskPlanningCommand) (*TaskPlanningDTO, error) {
	if err := s.deps.EnsureGroupExists(ctx, cmd.InventoryGroupID); err != nil {
		return nil, err
	}

	cfg, err := domain.NewTaskPlanningConfiguration(
		cmd.InventoryGroupID,
		domain.ReleaseMode(cmd.ReleaseMode),
		cmd.BundleSize,
		cmd.PlanningHorizon,
		cmd.AllowPreemption,
	)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.planning.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to save task planning configuration: %w", err)
	}

	s.logger.LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "TaskPlanningCreated",
		EntityType: "TaskPlanningConfiguration",
		EntityID:   strconv.FormatInt(cfg.ID, 10),
		Action:     "create",
		RelatedIDs: map[string]string{"inventoryGroupId": strconv.FormatInt(cfg.InventoryGroupID, 10)},
	})

	event := s.eventFactory.CreateConfigRecordEvent(ctx, cloudevents.ConfigCreated, "task-planning", cfg.ID, cfg.Version)
	publishEvent(ctx, s.publisher, s.logger, kafka.Topics.ConfigurationEvents, event)

	return ToTaskPlanningDTO(cfg), nil
}

// GetPlanning retrieves a task planning configuration by ID
func (s *TaskPlanningApplicationService) GetPlanning(ctx context.Context, id int64) (*TaskPlanningDTO, error) {
	cfg, err := s.planning.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find task planning configuration: %w", err)
	}
	if cfg == nil {
		return nil, errors.ErrNotFoundWithID("task planning configuration", strconv.FormatInt(id, 10))
	}
	return ToTaskPlanningDTO(cfg), nil
}

// ListPlannings retrieves task planning configurations with pagination
func (s *TaskPlanningApplicationService) ListPlannings(ctx context.Context, query ListQuery) ([]TaskPlanningDTO, error) {
	query.Normalize()

	cfgs, err := s.planning.FindAll(ctx, query.Limit, query.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list task planning configurations: %w", err)
	}
	return ToTaskPlanningDTOs(cfgs), nil
}

// ListPlanningsByGroup retrieves the task planning configurations of a group
func (s *TaskPlanningApplicationService) ListPlanningsByGroup(ctx context.Context, groupID int64) ([]TaskPlanningDTO, error) {
	if err := s.deps.EnsureGroupExists(ctx, groupID); err != nil {
		return nil, err
	}

	cfgs, err := s.planning.FindByGroupID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list task planning configurations: %w", err)
	}
	return ToTaskPlanningDTOs(cfgs), nil
}

// UpdatePlanning updates a task planning configuration
func (s *TaskPlanningApplicationService) UpdatePlanning(ctx context.Context, cmd UpdateTaskPlanningCommand) (*TaskPlanningDTO, error) {
	cfg, err := s.planning.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to find task planning configuration: %w", err)
	}
	if cfg == nil {
		return nil, errors.ErrNotFoundWithID("task planning configuration", strconv.FormatInt(cmd.ID, 10))
	}

	err = cfg.Update(domain.ReleaseMode(cmd.ReleaseMode), cmd.BundleSize, cmd.PlanningHorizon, cmd.AllowPreemption)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.planning.Update(ctx, cfg, cmd.Version); err != nil {
		if err == ErrVersionConflict {
			return nil, errors.ErrVersionMismatch("task planning configuration")
		}
		return nil, fmt.Errorf("failed to update task planning configuration: %w", err)
	}

	s.logger.LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "TaskPlanningUpdated",
		EntityType: "TaskPlanningConfiguration",
		EntityID:   strconv.FormatInt(cfg.ID, 10),
		Action:     "update",
	})

	event := s.eventFactory.CreateConfigRecordEvent(ctx, cloudevents.ConfigUpdated, "task-planning", cfg.ID, cfg.Version)
	publishEvent(ctx, s.publisher, s.logger, kafka.Topics.ConfigurationEvents, event)

	return ToTaskPlanningDTO(cfg), nil
}

// DeletePlanning removes a task planning configuration and its execution child
func (s *TaskPlanningApplicationService) DeletePlanning(ctx context.Context, id int64) error {
	cfg, err := s.planning.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find task planning configuration: %w", err)
	}
	if cfg == nil {
		return errors.ErrNotFoundWithID("task planning configuration", strconv.FormatInt(id, 10))
	}

	cascaded, err := s.executions.DeleteByPlanningID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete task execution configuration: %w", err)
	}

	if err := s.planning.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task planning configuration: %w", err)
	}

	s.logger.LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "TaskPlanningDeleted",
		EntityType: "TaskPlanningConfiguration",
		EntityID:   strconv.FormatInt(id, 10),
		Action:     "delete",
		RelatedIDs: map[string]string{"cascadedDeletes": strconv.FormatInt(cascaded, 10)},
	})

	event := s.eventFactory.CreateConfigRecordEvent(ctx, cloudevents.ConfigDeleted, "task-planning", id, 0)
	publishEvent(ctx, s.publisher, s.logger, kafka.Topics.ConfigurationEvents, event)

	return nil
}

// UpsertExecution creates the execution settings of a planning configuration,
// or replaces them if they already exist. At most one record exists per
// planning configuration.
func (s *TaskPlanningApplicationService) UpsertExecution(ctx context.Context, cmd UpsertTaskExecutionCommand) (*TaskExecutionDTO, error) {
	if err := s.deps.EnsurePlanningExists(ctx, cmd.TaskPlanningID); err != nil {
		return nil, err
	}

	incoming, err := domain.NewTaskExecutionConfiguration(
		cmd.TaskPlanningID,
		cmd.MaxConcurrentTasks,
		cmd.ScanConfirmation,
		cmd.AllowSkip,
		cmd.AllowShortPick,
	)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	existing, err := s.executions.FindByPlanningID(ctx, cmd.TaskPlanningID)
	if err != nil {
		return nil, fmt.Errorf("failed to find task execution configuration: %w", err)
	}

	action := "create"
	eventType := cloudevents.ConfigCreated
	cfg := incoming
	if existing != nil {
		existing.ApplyUpsert(incoming)
		cfg = existing
		action = "update"
		eventType = cloudevents.ConfigUpdated
		if err := s.executions.Update(ctx, cfg, cfg.Version-1); err != nil {
			if err == ErrVersionConflict {
				return nil, errors.ErrVersionMismatch("task execution configuration")
			}
			return nil, fmt.Errorf("failed to update task execution configuration: %w", err)
		}
	} else {
		if err := s.executions.Save(ctx, cfg); err != nil {
			return nil, fmt.Errorf("failed to save task execution configuration: %w", err)
		}
	}

	s.logger.LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "TaskExecutionUpserted",
		EntityType: "TaskExecutionConfiguration",
		EntityID:   strconv.FormatInt(cfg.ID, 10),
		Action:     action,
		RelatedIDs: map[string]string{"taskPlanningId": strconv.FormatInt(cmd.TaskPlanningID, 10)},
	})

	event := s.eventFactory.CreateConfigRecordEvent(ctx, eventType, "task-execution", cfg.ID, cfg.Version)
	publishEvent(ctx, s.publisher, s.logger, kafka.Topics.ConfigurationEvents, event)

	return ToTaskExecutionDTO(cfg), nil
}

// GetExecutionByPlanning retrieves the execution settings of a planning
// configuration
func (s *TaskPlanningApplicationService) GetExecutionByPlanning(ctx context.Context, planningID int64) (*TaskExecutionDTO, error) {
	if err := s.deps.EnsurePlanningExists(ctx, planningID); err != nil {
		return nil, err
	}

	cfg, err := s.executions.FindByPlanningID(ctx, planningID)
	if err != nil {
		return nil, fmt.Errorf("failed to find task execution configuration: %w", err)
	}
	if cfg == nil {
		return nil, errors.ErrNotFound("task execution configuration").
			WithDetail("taskPlanningId", strconv.FormatInt(planningID, 10))
	}
	return ToTaskExecutionDTO(cfg), nil
}
