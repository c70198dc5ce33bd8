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

// TaskSequenceApplicationService handles task sequence configuration use cases
type TaskSequenceApplicationService struct {
	sequences    TaskSequenceRepository
	deps         *DependencyRules
	publisher    EventPublisher
	eventFactory *cloudevents.EventFactory
	logger       *logging.Logger
}

// NewTaskSequenceApplicationService creates a new TaskSequenceApplicationService
func NewTaskSequenceApplicationService(
	sequences TaskSequenceRepository,
	deps *DependencyRules,
	publisher EventPublisher,
	eventFactory *cloudevents.EventFactory,
	logger *logging.Logger,
) *TaskSequenceApplicationService {
	return &TaskSequenceApplicationService{
		sequences:    sequences,
		deps:         deps,
		publisher:    publisher,
		eventFactory: eventFactory,
		logger:       logger,
	}
}

// CreateSequence creates a task sequence configuration for an inventory group
func (s *TaskSequenceApplicationService) CreateSequence(ctx context.Context, cmd CreateTaskSequenceCommand) (*TaskSequenceDTO, error) {
	if err := s.deps.EnsureGroupExists(ctx, cmd.InventoryGroupID); err != nil {
		return nil, err
	}

	cfg, err := domain.NewTaskSequenceConfiguration(cmd.InventoryGroupID, toTokens(cmd.Sequence), cmd.Description)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.sequences.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to save task sequence configuration: %w", err)
	}

	s.logger.LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "TaskSequenceCreated",
		EntityType: "TaskSequenceConfiguration",
		EntityID:   strconv.FormatInt(cfg.ID, 10),
		Action:     "create",
		RelatedIDs: map[string]string{"inventoryGroupId": strconv.FormatInt(cfg.InventoryGroupID, 10)},
	})

	event := s.eventFactory.CreateConfigRecordEvent(ctx, cloudevents.ConfigCreated, "task-sequence", cfg.ID, cfg.Version)
	publishEvent(ctx, s.publisher, s.logger, kafka.Topics.ConfigurationEvents, event)

	return ToTaskSequenceDTO(cfg), nil
}

// GetSequence retrieves a task sequence configuration by ID
func (s *TaskSequenceApplicationService) GetSequence(ctx context.Context, id int64) (*TaskSequenceDTO, error) {
	cfg, err := s.sequences.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find task sequence configuration: %w", err)
	}
	if cfg == nil {
		return nil, errors.ErrNotFoundWithID("task sequence configuration", strconv.FormatInt(id, 10))
	}
	return ToTaskSequenceDTO(cfg), nil
}

// ListSequences retrieves task sequence configurations with pagination
func (s *TaskSequenceApplicationService) ListSequences(ctx context.Context, query ListQuery) ([]TaskSequenceDTO, error) {
	query.Normalize()

	cfgs, err := s.sequences.FindAll(ctx, query.Limit, query.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list task sequence configurations: %w", err)
	}
	return ToTaskSequenceDTOs(cfgs), nil
}

// ListSequencesByGroup retrieves the task sequence configurations of a group
func (s *TaskSequenceApplicationService) ListSequencesByGroup(ctx context.Context, groupID int64) ([]TaskSequenceDTO, error) {
	if err := s.deps.EnsureGroupExists(ctx, groupID); err != nil {
		return nil, err
	}

	cfgs, err := s.sequences.FindByGroupID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list task sequence configurations: %w", err)
	}
	return ToTaskSequenceDTOs(cfgs), nil
}

// UpdateSequence replaces the ordered token list of a configuration
func (s *TaskSequenceApplicationService) UpdateSequence(ctx context.Context, cmd UpdateTaskSequenceCommand) (*TaskSequenceDTO, error) {
	cfg, err := s.sequences.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to find task sequence configuration: %w", err)
	}
	if cfg == nil {
		return nil, errors.ErrNotFoundWithID("task sequence configuration", strconv.FormatInt(cmd.ID, 10))
	}

	if err := cfg.ReplaceSequence(toTokens(cmd.Sequence)); err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.sequences.Update(ctx, cfg, cmd.Version); err != nil {
		if err == ErrVersionConflict {
			return nil, errors.ErrVersionMismatch("task sequence configuration")
		}
		return nil, fmt.Errorf("failed to update task sequence configuration: %w", err)
	}

	s.logger.LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "TaskSequenceUpdated",
		EntityType: "TaskSequenceConfiguration",
		EntityID:   strconv.FormatInt(cfg.ID, 10),
		Action:     "update",
	})

	event := s.eventFactory.CreateConfigRecordEvent(ctx, cloudevents.ConfigUpdated, "task-sequence", cfg.ID, cfg.Version)
	publishEvent(ctx, s.publisher, s.logger, kafka.Topics.ConfigurationEvents, event)

	return ToTaskSequenceDTO(cfg), nil
}

// DeleteSequence removes a task sequence configuration
func (s *TaskSequenceApplicationService) DeleteSequence(ctx context.Context, id int64) error {
	cfg, err := s.sequences.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find task sequence configuration: %w", err)
	}
	if cfg == nil {
		return errors.ErrNotFoundWithID("task sequence configuration", strconv.FormatInt(id, 10))
	}

	if err := s.sequences.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task sequence configuration: %w", err)
	}

	s.logger.LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "TaskSequenceDeleted",
		EntityType: "TaskSequenceConfiguration",
		EntityID:   strconv.FormatInt(id, 10),
		Action:     "delete",
	})

	event := s.eventFactory.CreateConfigRecordEvent(ctx, cloudevents.ConfigDeleted, "task-sequence", id, 0)
	publishEvent(ctx, s.publisher, s.logger, kafka.Topics.ConfigurationEvents, event)

	return nil
}

func toTokens(sequence []string) []domain.TaskSequenceToken {
	tokens := make([]domain.TaskSequenceToken, len(sequence))
	for i, raw := range sequence {
		tokens[i] = domain.TaskSequenceToken(raw)
	}
	return tokens
}
