package application

import (
	"context"
	"fmt"
	"time"

	"github.com/wms-platform/outbound-config-service/pkg/cloudevents"
	"github.com/wms-platform/outbound-config-service/pkg/kafka"
	"github.com/wms-platform/outbound-config-service/pkg/logging"
)

// ExportApplicationService assembles the full outbound configuration graph
// for export: every inventory group with its task sequences, pick strategies
// and their children, allocation strategies, and task planning records.
type ExportApplicationService struct {
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

// NewExportApplicationService creates a new ExportApplicationService
func NewExportApplicationService(
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
) *ExportApplicationService {
	return &ExportApplicationService{
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

// ExportOutbound assembles the full configuration graph
func (s *ExportApplicationService) ExportOutbound(ctx context.Context) (*OutboundExportDTO, error) {
	groups, err := listAllGroups(ctx, s.groups)
	if err != nil {
		return nil, err
	}

	export := &OutboundExportDTO{
		ExportedAt: time.Now().UTC(),
		Groups:     make([]GroupExportDTO, 0, len(groups)),
	}
	recordCount := 0

	for _, group := range groups {
		groupDTO := ToInventoryGroupDTO(group)
		complete, err := s.deps.IsGroupFullyAllocated(ctx, group.ID)
		if err != nil {
			return nil, err
		}
		groupDTO.FullyAllocated = complete
		recordCount++

		sequences, err := s.sequences.FindByGroupID(ctx, group.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list task sequence configurations: %w", err)
		}
		recordCount += len(sequences)

		strategies, err := s.strategies.FindByGroupID(ctx, group.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list pick strategies: %w", err)
		}

		strategyExports := make([]PickStrategyExportDTO, 0, len(strategies))
		for _, strategy := range strategies {
			recordCount++
			entry := PickStrategyExportDTO{PickStrategyDTO: *ToPickStrategyDTO(strategy)}

			hu, err := s.huFormations.FindByStrategyID(ctx, strategy.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to find HU formation configuration: %w", err)
			}
			if hu != nil {
				entry.HUFormation = ToHUFormationDTO(hu)
				recordCount++
			}

			wom, err := s.workOrders.FindByStrategyID(ctx, strategy.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to find work order management configuration: %w", err)
			}
			if wom != nil {
				entry.WorkOrderManagement = ToWorkOrderManagementDTO(wom)
				recordCount++
			}

			strategyExports = append(strategyExports, entry)
		}

		allocations, err := s.allocations.FindByGroupID(ctx, group.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list stock allocation strategies: %w", err)
		}
		recordCount += len(allocations)

		plannings, err := s.planning.FindByGroupID(ctx, group.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list task planning configurations: %w", err)
		}

		planningExports := make([]TaskPlanningExportDTO, 0, len(plannings))
		for _, planning := range plannings {
			recordCount++
			entry := TaskPlanningExportDTO{TaskPlanningDTO: *ToTaskPlanningDTO(planning)}

			execution, err := s.executions.FindByPlanningID(ctx, planning.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to find task execution configuration: %w", err)
			}
			if execution != nil {
				entry.Execution = ToTaskExecutionDTO(execution)
				recordCount++
			}

			planningExports = append(planningExports, entry)
		}

		export.Groups = append(export.Groups, GroupExportDTO{
			Group:          *groupDTO,
			TaskSequences:  ToTaskSequenceDTOs(sequences),
			PickStrategies: strategyExports,
			Allocations:    ToStockAllocationDTOs(allocations),
			TaskPlannings:  planningExports,
		})
	}

	s.logger.WithContext(ctx).Info("Outbound configuration exported",
		"groupCount", len(export.Groups),
		"recordCount", recordCount,
	)

	event := s.eventFactory.CreateConfigurationExportedEvent(ctx, len(export.Groups), recordCount)
	publishEvent(ctx, s.publisher, s.logger, kafka.Topics.ConfigurationEvents, event)

	return export, nil
}
