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

// PickStrategyApplicationService handles pick strategy use cases, including
// the one-to-one HU formation and work order management children attached to
// each strategy.
type PickStrategyApplicationService struct {
	strategies   PickStrategyRepository
	huFormations HUFormationRepository
	workOrders   WorkOrderManagementRepository
	deps         *DependencyRules
	publisher    EventPublisher
	eventFactory *cloudevents.EventFactory
	logger       *logging.Logger
}

// NewPickStrategyApplicationService creates a new PickStrategyApplicationService
func NewPickStrategyApplicationService(
	strategies PickStrategyRepository,
	huFormations HUFormationRepository,
	workOrders WorkOrderManagementRepository,
	deps *DependencyRules,
	publisher EventPublisher,
	eventFactory *cloudevents.EventFactory,
	logger *logging.Logger,
) *PickStrategyApplicationService {
	return &PickStrategyApplicationService{
		strategies:   strategies,
		huFormations: huFormations,
		workOrders:   workOrders,
		deps:         deps,
		publisher:    publisher,
		eventFactory: eventFactory,
		logger:       logger,
	}
}

// CreateStrategy creates a pick strategy configuration for an inventory group
func (s *PickStrategyApplicationService) CreateStrategy(ctx context.Context, cmd CreatePickStrategyCommand) (*PickStrategyDTO, error) {
	if err := s.deps.EnsureGroupExists(ctx, cmd.InventoryGroupID); err != nil {
		return nil, err
	}

	cfg, err := domain.NewPickStrategyConfiguration(
		cmd.InventoryGroupID,
		domain.TaskKind(cmd.TaskKind),
		cmd.TaskSubKind,
		domain.PickStrategy(cmd.Strategy),
		domain.SortingStrategy(cmd.SortingStrategy),
		domain.LoadingStrategy(cmd.LoadingStrategy),
		cmd.GroupBy,
		cmd.TaskLabel,
	)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.strategies.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to save pick strategy: %w", err)
	}

	s.logger.LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "PickStrategyCreated",
		EntityType: "PickStrategyConfiguration",
		EntityID:   strconv.FormatInt(cfg.ID, 10),
		Action:     "create",
		RelatedIDs: map[string]string{"inventoryGroupId": strconv.FormatInt(cfg.InventoryGroupID, 10)},
	})

	event := s.eventFactory.CreateConfigRecordEvent(ctx, cloudevents.ConfigCreated, "pick-strategy", cfg.ID, cfg.Version)
	publishEvent(ctx, s.publisher, s.logger, kafka.Topics.ConfigurationEvents, event)

	return ToPickStrategyDTO(cfg), nil
}

// GetStrategy retrieves a pick strategy by ID
func (s *PickStrategyApplicationService) GetStrategy(ctx context.Context, id int64) (*PickStrategyDTO, error) {
	cfg, err := s.strategies.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find pick strategy: %w", err)
	}
	if cfg == nil {
		return nil, errors.ErrNotFoundWithID("pick strategy", strconv.FormatInt(id, 10))
	}
	return ToPickStrategyDTO(cfg), nil
}

// ListStrategies retrieves pick strategies with pagination
func (s *PickStrategyApplicationService) ListStrategies(ctx context.Context, query ListQuery) ([]PickStrategyDTO, error) {
	query.Normalize()

	cfgs, err := s.strategies.FindAll(ctx, query.Limit, query.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list pick strategies: %w", err)
	}
	return ToPickStrategyDTOs(cfgs), nil
}

// ListStrategiesByGroup retrieves the pick strategies of a group
func (s *PickStrategyApplicationService) ListStrategiesByGroup(ctx context.Context, groupID int64) ([]PickStrategyDTO, error) {
	if err := s.deps.EnsureGroupExists(ctx, groupID); err != nil {
		return nil, err
	}

	cfgs, err := s.strategies.FindByGroupID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pick strategies: %w", err)
	}
	return ToPickStrategyDTOs(cfgs), nil
}

// UpdateStrategy updates a pick strategy. The task kind is immutable after
// creation.
func (s *PickStrategyApplicationService) UpdateStrategy(ctx context.Context, cmd UpdatePickStrategyCommand) (*PickStrategyDTO, error) {
	cfg, err := s.strategies.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to find pick strategy: %w", err)
	}
	if cfg == nil {
		return nil, errors.ErrNotFoundWithID("pick strategy", strconv.FormatInt(cmd.ID, 10))
	}

	err = cfg.Update(
		domain.PickStrategy(cmd.Strategy),
		domain.SortingStrategy(cmd.SortingStrategy),
		domain.LoadingStrategy(cmd.LoadingStrategy),
		cmd.GroupBy,
		cmd.TaskLabel,
	)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.strategies.Update(ctx, cfg, cmd.Version); err != nil {
		if err == ErrVersionConflict {
			return nil, errors.ErrVersionMismatch("pick strategy")
		}
		return nil, fmt.Errorf("failed to update pick strategy: %w", err)
	}

	s.logger.LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "PickStrategyUpdated",
		EntityType: "PickStrategyConfiguration",
		EntityID:   strconv.FormatInt(cfg.ID, 10),
		Action:     "update",
	})

	event := s.eventFactory.CreateConfigRecordEvent(ctx, cloudevents.ConfigUpdated, "pick-strategy", cfg.ID, cfg.Version)
	publishEvent(ctx, s.publisher, s.logger, kafka.Topics.ConfigurationEvents, event)

	return ToPickStrategyDTO(cfg), nil
}

// DeleteStrategy removes a pick strategy and its HU formation and work order
// management children
func (s *PickStrategyApplicationService) DeleteStrategy(ctx context.Context, id int64) error {
	cfg, err := s.strategies.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find pick strategy: %w", err)
	}
	if cfg == nil {
		return errors.ErrNotFoundWithID("pick strategy", strconv.FormatInt(id, 10))
	}

	var cascaded int64

	n, err := s.huFormations.DeleteByStrategyID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete HU formation configuration: %w", err)
	}
	cascaded += n

	n, err = s.workOrders.DeleteByStrategyID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete work order management configuration: %w", err)
	}
	cascaded += n

	if err := s.strategies.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete pick strategy: %w", err)
	}

	s.logger.LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "PickStrategyDeleted",
		EntityType: "PickStrategyConfiguration",
		EntityID:   strconv.FormatInt(id, 10),
		Action:     "delete",
		RelatedIDs: map[string]string{"cascadedDeletes": strconv.FormatInt(cascaded, 10)},
	})

	event := s.eventFactory.CreateConfigRecordEvent(ctx, cloudevents.ConfigDeleted, "pick-strategy", id, 0)
	publishEvent(ctx, s.publisher, s.logger, kafka.Topics.ConfigurationEvents, event)

	return nil
}

// UpsertHUFormation creates the HU formation settings of a strategy, or
// replaces them if they already exist. At most one record exists per strategy.
func (s *PickStrategyApplicationService) UpsertHUFormation(ctx context.Context, cmd UpsertHUFormationCommand) (*HUFormationDTO, error) {
	if err := s.deps.EnsureStrategyExists(ctx, cmd.PickStrategyID); err != nil {
		return nil, err
	}

	kinds := make([]domain.HUKind, len(cmd.HUKinds))
	for i, kind := range cmd.HUKinds {
		kinds[i] = domain.HUKind(kind)
	}

	incoming, err := domain.NewHUFormationConfiguration(
		cmd.PickStrategyID,
		domain.TripType(cmd.TripType),
		domain.MappingMode(cmd.MappingMode),
		kinds,
		cmd.MaxHUQuantity,
		cmd.MaxHUWeight,
		cmd.QCMismatchThreshold,
		cmd.Flags,
	)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	existing, err := s.huFormations.FindByStrategyID(ctx, cmd.PickStrategyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find HU formation configuration: %w", err)
	}

	action := "create"
	eventType := cloudevents.ConfigCreated
	cfg := incoming
	if existing != nil {
		existing.ApplyUpsert(incoming)
		cfg = existing
		action = "update"
		eventType = cloudevents.ConfigUpdated
		if err := s.huFormations.Update(ctx, cfg, cfg.Version-1); err != nil {
			if err == ErrVersionConflict {
				return nil, errors.ErrVersionMismatch("HU formation configuration")
			}
			return nil, fmt.Errorf("failed to update HU formation configuration: %w", err)
		}
	} else {
		if err := s.huFormations.Save(ctx, cfg); err != nil {
			return nil, fmt.Errorf("failed to save HU formation configuration: %w", err)
		}
	}

	s.logger.LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "HUFormationUpserted",
		EntityType: "HUFormationConfiguration",
		EntityID:   strconv.FormatInt(cfg.ID, 10),
		Action:     action,
		RelatedIDs: map[string]string{"pickStrategyId": strconv.FormatInt(cmd.PickStrategyID, 10)},
	})

	event := s.eventFactory.CreateConfigRecordEvent(ctx, eventType, "hu-formation", cfg.ID, cfg.Version)
	publishEvent(ctx, s.publisher, s.logger, kafka.Topics.ConfigurationEvents, event)

	return ToHUFormationDTO(cfg), nil
}

// GetHUFormationByStrategy retrieves the HU formation settings of a strategy
func (s *PickStrategyApplicationService) GetHUFormationByStrategy(ctx context.Context, strategyID int64) (*HUFormationDTO, error) {
	if err := s.deps.EnsureStrategyExists(ctx, strategyID); err != nil {
		return nil, err
	}

	cfg, err := s.huFormations.FindByStrategyID(ctx, strategyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find HU formation configuration: %w", err)
	}
	if cfg == nil {
		return nil, errors.ErrNotFound("HU formation configuration").
			WithDetail("pickStrategyId", strconv.FormatInt(strategyID, 10))
	}
	return ToHUFormationDTO(cfg), nil
}

// UpsertWorkOrderManagement creates the work order management settings of a
// strategy, or replaces them if they already exist
func (s *PickStrategyApplicationService) UpsertWorkOrderManagement(ctx context.Context, cmd UpsertWorkOrderManagementCommand) (*WorkOrderManagementDTO, error) {
	if err := s.deps.EnsureStrategyExists(ctx, cmd.PickStrategyID); err != nil {
		return nil, err
	}

	units := make([]domain.LoadingUnit, len(cmd.LoadingUnits))
	for i, unit := range cmd.LoadingUnits {
		units[i] = domain.LoadingUnit(unit)
	}

	incoming, err := domain.NewWorkOrderManagementConfiguration(cmd.PickStrategyID, units, cmd.Flags)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	existing, err := s.workOrders.FindByStrategyID(ctx, cmd.PickStrategyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find work order management configuration: %w", err)
	}

	action := "create"
	eventType := cloudevents.ConfigCreated
	cfg := incoming
	if existing != nil {
		existing.ApplyUpsert(incoming)
		cfg = existing
		action = "update"
		eventType = cloudevents.ConfigUpdated
		if err := s.workOrders.Update(ctx, cfg, cfg.Version-1); err != nil {
			if err == ErrVersionConflict {
				return nil, errors.ErrVersionMismatch("work order management configuration")
			}
			return nil, fmt.Errorf("failed to update work order management configuration: %w", err)
		}
	} else {
		if err := s.workOrders.Save(ctx, cfg); err != nil {
			return nil, fmt.Errorf("failed to save work order management configuration: %w", err)
		}
	}

	s.logger.LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "WorkOrderManagementUpserted",
		EntityType: "WorkOrderManagementConfiguration",
		EntityID:   strconv.FormatInt(cfg.ID, 10),
		Action:     action,
		RelatedIDs: map[string]string{"pickStrategyId": strconv.FormatInt(cmd.PickStrategyID, 10)},
	})

	event := s.eventFactory.CreateConfigRecordEvent(ctx, eventType, "work-order-management", cfg.ID, cfg.Version)
	publishEvent(ctx, s.publisher, s.logger, kafka.Topics.ConfigurationEvents, event)

	return ToWorkOrderManagementDTO(cfg), nil
}

// GetWorkOrderManagementByStrategy retrieves the work order management
// settings of a strategy
func (s *PickStrategyApplicationService) GetWorkOrderManagementByStrategy(ctx context.Context, strategyID int64) (*WorkOrderManagementDTO, error) {
	if err := s.deps.EnsureStrategyExists(ctx, strategyID); err != nil {
		return nil, err
	}

	cfg, err := s.workOrders.FindByStrategyID(ctx, strategyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find work order management configuration: %w", err)
	}
	if cfg == nil {
		return nil, errors.ErrNotFound("work order management configuration").
			WithDetail("pickStrategyId", strconv.FormatInt(strategyID, 10))
	}
	return ToWorkOrderManagementDTO(cfg), nil
}
