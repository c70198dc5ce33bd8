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

// StockAllocationApplicationService handles stock allocation strategy use
// cases. A group may hold at most one strategy per allocation mode.
type StockAllocationApplicationService struct {
	allocations  StockAllocationRepository
	deps         *DependencyRules
	publisher    EventPublisher
	eventFactory *cloudevents.EventFactory
	logger       *logging.Logger
}

// NewStockAllocationApplicationService creates a new StockAllocationApplicationService
func NewStockAllocationApplicationService(
	allocations StockAllocationRepository,
	deps *DependencyRules,
	publisher EventPublisher,
	eventFactory *cloudevents.EventFactory,
	logger *logging.Logger,
) *StockAllocationApplicationService {
	return &StockAllocationApplicationService{
		allocations:  allocations,
		deps:         deps,
		publisher:    publisher,
		eventFactory: eventFactory,
		logger:       logger,
	}
}

// CreateAllocation creates a stock allocation strategy for an inventory group
func (s *StockAllocationApplicationService) CreateAllocation(ctx context.Context, cmd CreateStockAllocationCommand) (*StockAllocationDTO, error) {
	if err := s.deps.EnsureGroupExists(ctx, cmd.InventoryGroupID); err != nil {
		return nil, err
	}

	mode := domain.AllocationMode(cmd.Mode)
	if !mode.IsValid() {
		return nil, errors.ErrValidation(domain.ErrInvalidAllocationMode.Error())
	}
	if err := s.deps.EnsureModeAvailable(ctx, cmd.InventoryGroupID, mode); err != nil {
		return nil, err
	}

	strategy, err := domain.NewStockAllocationStrategy(
		cmd.InventoryGroupID,
		mode,
		domain.SearchScope(cmd.SearchScope),
		domain.BatchPreferenceMode(cmd.BatchPreference),
		domain.OptimizationMode(cmd.Optimization),
		toStatePreferences(cmd.StatePreferenceSeq),
		cmd.Priority,
		cmd.PreferFullHU,
		cmd.PreferSingleBatch,
		cmd.AllowSplitLines,
	)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.allocations.Save(ctx, strategy); err != nil {
		if err == ErrDuplicateKey {
			return nil, errors.ErrConflict(domain.ErrAllocationModeExists.Error())
		}
		return nil, fmt.Errorf("failed to save stock allocation strategy: %w", err)
	}

	s.logger.LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "StockAllocationCreated",
		EntityType: "StockAllocationStrategy",
		EntityID:   strconv.FormatInt(strategy.ID, 10),
		Action:     "create",
		RelatedIDs: map[string]string{
			"inventoryGroupId": strconv.FormatInt(strategy.InventoryGroupID, 10),
			"mode":             string(strategy.Mode),
		},
	})

	event := s.eventFactory.CreateConfigRecordEvent(ctx, cloudevents.ConfigCreated, "stock-allocation", strategy.ID, strategy.Version)
	publishEvent(ctx, s.publisher, s.logger, kafka.Topics.ConfigurationEvents, event)

	return ToStockAllocationDTO(strategy), nil
}

// GetAllocation retrieves a stock allocation strategy by ID
func (s *StockAllocationApplicationService) GetAllocation(ctx context.Context, id int64) (*StockAllocationDTO, error) {
	strategy, err := s.allocations.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find stock allocation strategy: %w", err)
	}
	if strategy == nil {
		return nil, errors.ErrNotFoundWithID("stock allocation strategy", strconv.FormatInt(id, 10))
	}
	return ToStockAllocationDTO(strategy), nil
}

// ListAllocations retrieves stock allocation strategies with pagination
func (s *StockAllocationApplicationService) ListAllocations(ctx context.Context, query ListQuery) ([]StockAllocationDTO, error) {
	query.Normalize()

	strategies, err := s.allocations.FindAll(ctx, query.Limit, query.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock allocation strategies: %w", err)
	}
	return ToStockAllocationDTOs(strategies), nil
}

// ListAllocationsByGroup retrieves the allocation strategies of a group
func (s *StockAllocationApplicationService) ListAllocationsByGroup(ctx context.Context, groupID int64) ([]StockAllocationDTO, error) {
	if err := s.deps.EnsureGroupExists(ctx, groupID); err != nil {
		return nil, err
	}

	strategies, err := s.allocations.FindByGroupID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock allocation strategies: %w", err)
	}
	return ToStockAllocationDTOs(strategies), nil
}

// UpdateAllocation updates a stock allocation strategy. The allocation mode
// is immutable after creation.
func (s *StockAllocationApplicationService) UpdateAllocation(ctx context.Context, cmd UpdateStockAllocationCommand) (*StockAllocationDTO, error) {
	strategy, err := s.allocations.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to find stock allocation strategy: %w", err)
	}
	if strategy == nil {
		return nil, errors.ErrNotFoundWithID("stock allocation strategy", strconv.FormatInt(cmd.ID, 10))
	}

	err = strategy.Update(
		domain.SearchScope(cmd.SearchScope),
		domain.BatchPreferenceMode(cmd.BatchPreference),
		domain.OptimizationMode(cmd.Optimization),
		toStatePreferences(cmd.StatePreferenceSeq),
		cmd.Priority,
		cmd.PreferFullHU,
		cmd.PreferSingleBatch,
		cmd.AllowSplitLines,
	)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.allocations.Update(ctx, strategy, cmd.Version); err != nil {
		if err == ErrVersionConflict {
			return nil, errors.ErrVersionMismatch("stock allocation strategy")
		}
		return nil, fmt.Errorf("failed to update stock allocation strategy: %w", err)
	}

	s.logger.LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "StockAllocationUpdated",
		EntityType: "StockAllocationStrategy",
		EntityID:   strconv.FormatInt(strategy.ID, 10),
		Action:     "update",
	})

	event := s.eventFactory.CreateConfigRecordEvent(ctx, cloudevents.ConfigUpdated, "stock-allocation", strategy.ID, strategy.Version)
	publishEvent(ctx, s.publisher, s.logger, kafka.Topics.ConfigurationEvents, event)

	return ToStockAllocationDTO(strategy), nil
}

// DeleteAllocation removes a stock allocation strategy
func (s *StockAllocationApplicationService) DeleteAllocation(ctx context.Context, id int64) error {
	strategy, err := s.allocations.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find stock allocation strategy: %w", err)
	}
	if strategy == nil {
		return errors.ErrNotFoundWithID("stock allocation strategy", strconv.FormatInt(id, 10))
	}

	if err := s.allocations.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete stock allocation strategy: %w", err)
	}

	s.logger.LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "StockAllocationDeleted",
		EntityType: "StockAllocationStrategy",
		EntityID:   strconv.FormatInt(id, 10),
		Action:     "delete",
	})

	event := s.eventFactory.CreateConfigRecordEvent(ctx, cloudevents.ConfigDeleted, "stock-allocation", id, 0)
	publishEvent(ctx, s.publisher, s.logger, kafka.Topics.ConfigurationEvents, event)

	return nil
}

func toStatePreferences(raw []string) []domain.StatePreference {
	prefs := make([]domain.StatePreference, len(raw))
	for i, pref := range raw {
		prefs[i] = domain.StatePreference(pref)
	}
	return prefs
}
