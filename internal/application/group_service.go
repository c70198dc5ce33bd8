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

// InventoryGroupApplicationService handles inventory group use cases.
// Deleting a group cascades to every dependent configuration record.
type InventoryGroupApplicationService struct {
	groups       InventoryGroupRepository
	sequences    TaskSequenceRepository
	strategies   PickStrategyRepository
	huFormations HUFormationRepository
	workOrders   WorkOrderManagementRepository
	allocations  StockAllocationRepository
	planning     TaskPlanningRepository
	executions   TaskExecutionRepository
	deps         *DependencyRules
	publisher    EventPublisher
	eventFactory *cloudevents.EventFactory
	logger       *logging.Logger
}

// NewInventoryGroupApplicationService creates a new InventoryGroupApplicationService
func NewInventoryGroupApplicationService(
	groups InventoryGroupRepository,
	sequences TaskSequenceRepository,
	strategies PickStrategyRepository,
	huFormations HUFormationRepository,
	workOrders WorkOrderManagementRepository,
	allocations StockAllocationRepository,
	planning TaskPlanningRepository,
	executions TaskExecutionRepository,
	deps *DependencyRules,
	publisher EventPublisher,
	eventFactory *cloudevents.EventFactory,
	logger *logging.Logger,
) *InventoryGroupApplicationService {
	return &InventoryGroupApplicationService{
		groups:       groups,
		sequences:    sequences,
		strategies:   strategies,
		huFormations: huFormations,
		workOrders:   workOrders,
		allocations:  allocations,
		planning:     planning,
		executions:   executions,
		deps:         deps,
		publisher:    publisher,
		eventFactory: eventFactory,
		logger:       logger,
	}
}

// CreateGroup creates a new inventory group
func (s *InventoryGroupApplicationService) CreateGroup(ctx context.Context, cmd CreateInventoryGroupCommand) (*InventoryGroupDTO, error) {
	existing, err := s.groups.FindByIdentifiers(ctx, cmd.StorageInstruction, cmd.LocationInstruction)
	if err != nil {
		return nil, fmt.Errorf("failed to check identifier uniqueness: %w", err)
	}
	if existing != nil {
		return nil, errors.ErrConflict(fmt.Sprintf(
			"inventory group with identifiers %s/%s already exists",
			cmd.StorageInstruction, cmd.LocationInstruction,
		)).WithDetail("existingId", strconv.FormatInt(existing.ID, 10))
	}

	storage := domain.StorageIdentifiers{
		UOM:           cmd.UOM,
		Bucket:        cmd.Bucket,
		Channel:       cmd.Channel,
		InclusionList: cmd.InclusionList,
	}
	line := domain.LineIdentifiers{
		OrderKind:     cmd.OrderKind,
		LineKind:      cmd.LineKind,
		ChannelFilter: cmd.ChannelFilter,
	}

	group, err := domain.NewInventoryGroup(cmd.Description, cmd.StorageInstruction, cmd.LocationInstruction, storage, line)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.groups.Save(ctx, group); err != nil {
		if err == ErrDuplicateKey {
			return nil, errors.ErrConflict(fmt.Sprintf(
				"inventory group with identifiers %s/%s already exists",
				cmd.StorageInstruction, cmd.LocationInstruction,
			))
		}
		return nil, fmt.Errorf("failed to save inventory group: %w", err)
	}

	s.logger.LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "InventoryGroupCreated",
		EntityType: "InventoryGroup",
		EntityID:   strconv.FormatInt(group.ID, 10),
		Action:     "create",
	})

	event := s.eventFactory.CreateInventoryGroupCreatedEvent(ctx, group.ID, group.Description, group.StorageInstruction, group.LocationInstruction)
	s.publish(ctx, kafka.Topics.ConfigurationEvents, event)

	return ToInventoryGroupDTO(group), nil
}

// GetGroup retrieves an inventory group by ID
func (s *InventoryGroupApplicationService) GetGroup(ctx context.Context, id int64) (*InventoryGroupDTO, error) {
	group, err := s.groups.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find inventory group: %w", err)
	}
	if group == nil {
		return nil, errors.ErrNotFoundWithID("inventory group", strconv.FormatInt(id, 10))
	}

	dto := ToInventoryGroupDTO(group)
	if err := s.fillAllocationStatus(ctx, dto); err != nil {
		return nil, err
	}
	return dto, nil
}

// ListGroups retrieves inventory groups with pagination
func (s *InventoryGroupApplicationService) ListGroups(ctx context.Context, query ListQuery) ([]InventoryGroupDTO, error) {
	query.Normalize()

	groups, err := s.groups.FindAll(ctx, query.Limit, query.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory groups: %w", err)
	}

	dtos := ToInventoryGroupDTOs(groups)
	for i := range dtos {
		if err := s.fillAllocationStatus(ctx, &dtos[i]); err != nil {
			return nil, err
		}
	}
	return dtos, nil
}

// UpdateGroup updates an inventory group's mutable fields. The storage and
// location instructions are immutable after creation.
func (s *InventoryGroupApplicationService) UpdateGroup(ctx context.Context, cmd UpdateInventoryGroupCommand) (*InventoryGroupDTO, error) {
	group, err := s.groups.FindByID(ctx, cmd.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to find inventory group: %w", err)
	}
	if group == nil {
		return nil, errors.ErrNotFoundWithID("inventory group", strconv.FormatInt(cmd.GroupID, 10))
	}

	storage := domain.StorageIdentifiers{
		UOM:           cmd.UOM,
		Bucket:        cmd.Bucket,
		Channel:       cmd.Channel,
		InclusionList: cmd.InclusionList,
	}
	line := domain.LineIdentifiers{
		OrderKind:     cmd.OrderKind,
		LineKind:      cmd.LineKind,
		ChannelFilter: cmd.ChannelFilter,
	}

	if err := group.Update(cmd.Description, storage, line); err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.groups.Update(ctx, group, cmd.Version); err != nil {
		if err == ErrVersionConflict {
			return nil, errors.ErrVersionMismatch("inventory group")
		}
		return nil, fmt.Errorf("failed to update inventory group: %w", err)
	}

	s.logger.LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "InventoryGroupUpdated",
		EntityType: "InventoryGroup",
		EntityID:   strconv.FormatInt(group.ID, 10),
		Action:     "update",
	})

	event := s.eventFactory.CreateConfigRecordEvent(ctx, cloudevents.ConfigUpdated, "inventory-group", group.ID, group.Version)
	s.publish(ctx, kafka.Topics.ConfigurationEvents, event)

	dto := ToInventoryGroupDTO(group)
	if err := s.fillAllocationStatus(ctx, dto); err != nil {
		return nil, err
	}
	return dto, nil
}

// DeleteGroup removes an inventory group and all dependent configuration
// records: task sequences, pick strategies with their HU formation and work
// order management children, stock allocation strategies, and task planning
// configurations with their execution children.
func (s *InventoryGroupApplicationService) DeleteGroup(ctx context.Context, id int64) error {
	group, err := s.groups.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find inventory group: %w", err)
	}
	if group == nil {
		return errors.ErrNotFoundWithID("inventory group", strconv.FormatInt(id, 10))
	}

	cascaded, err := s.deleteDependents(ctx, id)
	if err != nil {
		return err
	}

	if err := s.groups.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete inventory group: %w", err)
	}

	s.logger.LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "InventoryGroupDeleted",
		EntityType: "InventoryGroup",
		EntityID:   strconv.FormatInt(id, 10),
		Action:     "delete",
		RelatedIDs: map[string]string{"cascadedDeletes": strconv.FormatInt(cascaded, 10)},
	})

	event := s.eventFactory.CreateInventoryGroupDeletedEvent(ctx, id, int(cascaded))
	s.publish(ctx, kafka.Topics.ConfigurationEvents, event)

	return nil
}

// deleteDependents removes every record hanging off the group and returns the
// total number of cascaded deletes. Grandchildren go first so a partial
// failure never leaves an orphaned child without its parent.
func (s *InventoryGroupApplicationService) deleteDependents(ctx context.Context, groupID int64) (int64, error) {
	var cascaded int64

	strategies, err := s.strategies.FindByGroupID(ctx, groupID)
	if err != nil {
		return 0, fmt.Errorf("failed to list pick strategies for cascade: %w", err)
	}
	for _, strategy := range strategies {
		n, err := s.huFormations.DeleteByStrategyID(ctx, strategy.ID)
		if err != nil {
			return 0, fmt.Errorf("failed to delete HU formation configurations: %w", err)
		}
		cascaded += n

		n, err = s.workOrders.DeleteByStrategyID(ctx, strategy.ID)
		if err != nil {
			return 0, fmt.Errorf("failed to delete work order management configurations: %w", err)
		}
		cascaded += n
	}

	plannings, err := s.planning.FindByGroupID(ctx, groupID)
	if err != nil {
		return 0, fmt.Errorf("failed to list task planning configurations for cascade: %w", err)
	}
	for _, planning := range plannings {
		n, err := s.executions.DeleteByPlanningID(ctx, planning.ID)
		if err != nil {
			return 0, fmt.Errorf("failed to delete task execution configurations: %w", err)
		}
		cascaded += n
	}

	n, err := s.strategies.DeleteByGroupID(ctx, groupID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete pick strategies: %w", err)
	}
	cascaded += n

	n, err = s.planning.DeleteByGroupID(ctx, groupID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete task planning configurations: %w", err)
	}
	cascaded += n

	n, err = s.sequences.DeleteByGroupID(ctx, groupID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete task sequence configurations: %w", err)
	}
	cascaded += n

	n, err = s.allocations.DeleteByGroupID(ctx, groupID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stock allocation strategies: %w", err)
	}
	cascaded += n

	return cascaded, nil
}

func (s *InventoryGroupApplicationService) fillAllocationStatus(ctx context.Context, dto *InventoryGroupDTO) error {
	complete, err := s.deps.IsGroupFullyAllocated(ctx, dto.ID)
	if err != nil {
		return err
	}
	dto.FullyAllocated = complete
	return nil
}

func (s *InventoryGroupApplicationService) publish(ctx context.Context, topic string, event *cloudevents.WMSCloudEvent) {
	publishEvent(ctx, s.publisher, s.logger, topic, event)
}
