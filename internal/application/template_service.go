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

// TemplateApplicationService handles template management and one-shot
// application of configuration bundles. Application is not transactional at
// the storage level; a mid-sequence failure triggers compensating deletes of
// everything created so far, in reverse order.
type TemplateApplicationService struct {
	templates    TemplateRepository
	groups       InventoryGroupRepository
	sequences    TaskSequenceRepository
	strategies   PickStrategyRepository
	huFormations HUFormationRepository
	workOrders   WorkOrderManagementRepository
	allocations  StockAllocationRepository
	planning     TaskPlanningRepository
	executions   TaskExecutionRepository
	publisher    EventPublisher
	eventFactory *cloudevents.EventFactory
	logger       *logging.Logger
}

// NewTemplateApplicationService creates a new TemplateApplicationService
func NewTemplateApplicationService(
	templates TemplateRepository,
	groups InventoryGroupRepository,
	sequences TaskSequenceRepository,
	strategies PickStrategyRepository,
	huFormations HUFormationRepository,
	workOrders WorkOrderManagementRepository,
	allocations StockAllocationRepository,
	planning TaskPlanningRepository,
	executions TaskExecutionRepository,
	publisher EventPublisher,
	eventFactory *cloudevents.EventFactory,
	logger *logging.Logger,
) *TemplateApplicationService {
	return &TemplateApplicationService{
		templates:    templates,
		groups:       groups,
		sequences:    sequences,
		strategies:   strategies,
		huFormations: huFormations,
		workOrders:   workOrders,
		allocations:  allocations,
		planning:     planning,
		executions:   executions,
		publisher:    publisher,
		eventFactory: eventFactory,
		logger:       logger,
	}
}

// CreateTemplate creates a template
func (s *TemplateApplicationService) CreateTemplate(ctx context.Context, cmd CreateTemplateCommand) (*TemplateDTO, error) {
	template, err := domain.NewTemplate(cmd.Name, cmd.Description, cmd.Data)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.templates.Save(ctx, template); err != nil {
		if err == ErrDuplicateKey {
			return nil, errors.ErrConflict(fmt.Sprintf("template %q already exists", cmd.Name))
		}
		return nil, fmt.Errorf("failed to save template: %w", err)
	}

	s.logger.LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "TemplateCreated",
		EntityType: "Template",
		EntityID:   strconv.FormatInt(template.ID, 10),
		Action:     "create",
	})

	return ToTemplateDTO(template), nil
}

// GetTemplate retrieves a template by ID
func (s *TemplateApplicationService) GetTemplate(ctx context.Context, id int64) (*TemplateDTO, error) {
	template, err := s.templates.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find template: %w", err)
	}
	if template == nil {
		return nil, errors.ErrNotFoundWithID("template", strconv.FormatInt(id, 10))
	}
	return ToTemplateDTO(template), nil
}

// ListTemplates retrieves templates with pagination
func (s *TemplateApplicationService) ListTemplates(ctx context.Context, query ListQuery) ([]TemplateDTO, error) {
	query.Normalize()

	templates, err := s.templates.FindAll(ctx, query.Limit, query.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return ToTemplateDTOs(templates), nil
}

// DeleteTemplate removes a template. Records previously created from the
// template are untouched.
func (s *TemplateApplicationService) DeleteTemplate(ctx context.Context, id int64) error {
	template, err := s.templates.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find template: %w", err)
	}
	if template == nil {
		return errors.ErrNotFoundWithID("template", strconv.FormatInt(id, 10))
	}

	if err := s.templates.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	s.logger.LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "TemplateDeleted",
		EntityType: "Template",
		EntityID:   strconv.FormatInt(id, 10),
		Action:     "delete",
	})

	return nil
}

// ApplyTemplate materializes a template's configuration bundle
func (s *TemplateApplicationService) ApplyTemplate(ctx context.Context, templateID int64) (*ApplySummaryDTO, error) {
	template, err := s.templates.FindByID(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to find template: %w", err)
	}
	if template == nil {
		return nil, errors.ErrNotFoundWithID("template", strconv.FormatInt(templateID, 10))
	}

	summary, err := s.applyData(ctx, template.Name, template.Data)
	if err != nil {
		event := s.eventFactory.CreateTemplateAppliedEvent(ctx, template.Name, nil, true, err.Error())
		publishEvent(ctx, s.publisher, s.logger, kafka.Topics.ConfigurationEvents, event)
		return nil, err
	}

	s.logger.LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "TemplateApplied",
		EntityType: "Template",
		EntityID:   strconv.FormatInt(templateID, 10),
		Action:     "apply",
	})

	event := s.eventFactory.CreateTemplateAppliedEvent(ctx, template.Name, summaryCounts(summary), false, "")
	publishEvent(ctx, s.publisher, s.logger, kafka.Topics.ConfigurationEvents, event)

	return summary, nil
}

// QuickSetup applies a built-in starter bundle covering the common outbound
// flow: three inventory groups, a full task sequence, two pick strategies with
// HU formation and work order settings, and a complete PICK/PUT allocation
// pair for every group.
func (s *TemplateApplicationService) QuickSetup(ctx context.Context) (*ApplySummaryDTO, error) {
	summary, err := s.applyData(ctx, "quick-setup", quickSetupData())
	if err != nil {
		return nil, err
	}

	s.logger.LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "QuickSetupApplied",
		EntityType: "Template",
		EntityID:   "quick-setup",
		Action:     "apply",
	})

	event := s.eventFactory.CreateQuickSetupAppliedEvent(ctx, summaryCounts(summary))
	publishEvent(ctx, s.publisher, s.logger, kafka.Topics.ConfigurationEvents, event)

	return summary, nil
}

// createdRecord tracks one record created during application so it can be
// compensated on failure
type createdRecord struct {
	kind   string
	id     int64
	remove func(context.Context) error
}

// applyData creates every record in the bundle in dependency order. On
// failure, everything created so far is deleted in reverse order and the
// original error is returned.
func (s *TemplateApplicationService) applyData(ctx context.Context, name string, data domain.TemplateData) (*ApplySummaryDTO, error) {
	if err := data.Validate(); err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	var created []createdRecord
	summary := &ApplySummaryDTO{TemplateName: name}

	fail := func(err error) (*ApplySummaryDTO, error) {
		s.compensate(ctx, name, created)
		return nil, err
	}

	groupIDs := make([]int64, len(data.Groups))
	for i, spec := range data.Groups {
		existing, err := s.groups.FindByIdentifiers(ctx, spec.StorageInstruction, spec.LocationInstruction)
		if err != nil {
			return fail(fmt.Errorf("failed to check identifier uniqueness: %w", err))
		}
		if existing != nil {
			return fail(errors.ErrConflict(fmt.Sprintf(
				"inventory group with identifiers %s/%s already exists",
				spec.StorageInstruction, spec.LocationInstruction,
			)))
		}

		group, err := domain.NewInventoryGroup(spec.Description, spec.StorageInstruction, spec.LocationInstruction, spec.Storage, spec.Line)
		if err != nil {
			return fail(errors.ErrValidation(err.Error()))
		}
		if err := s.groups.Save(ctx, group); err != nil {
			return fail(fmt.Errorf("failed to save inventory group: %w", err))
		}

		groupIDs[i] = group.ID
		created = append(created, createdRecord{
			kind:   "inventory-group",
			id:     group.ID,
			remove: func(ctx context.Context) error { return s.groups.Delete(ctx, group.ID) },
		})
		summary.InventoryGroups++
	}

	for _, spec := range data.TaskSequences {
		cfg, err := domain.NewTaskSequenceConfiguration(groupIDs[spec.GroupIndex], spec.Sequence, spec.Description)
		if err != nil {
			return fail(errors.ErrValidation(err.Error()))
		}
		if err := s.sequences.Save(ctx, cfg); err != nil {
			return fail(fmt.Errorf("failed to save task sequence configuration: %w", err))
		}

		created = append(created, createdRecord{
			kind:   "task-sequence",
			id:     cfg.ID,
			remove: func(ctx context.Context) error { return s.sequences.Delete(ctx, cfg.ID) },
		})
		summary.TaskSequences++
	}

	for _, spec := range data.PickStrategies {
		strategy, err := domain.NewPickStrategyConfiguration(
			groupIDs[spec.GroupIndex],
			spec.TaskKind,
			spec.TaskSubKind,
			spec.Strategy,
			spec.Sorting,
			spec.Loading,
			spec.GroupBy,
			spec.TaskLabel,
		)
		if err != nil {
			return fail(errors.ErrValidation(err.Error()))
		}
		if err := s.strategies.Save(ctx, strategy); err != nil {
			return fail(fmt.Errorf("failed to save pick strategy: %w", err))
		}

		created = append(created, createdRecord{
			kind:   "pick-strategy",
			id:     strategy.ID,
			remove: func(ctx context.Context) error { return s.strategies.Delete(ctx, strategy.ID) },
		})
		summary.PickStrategies++

		if spec.HUFormation != nil {
			hu, err := domain.NewHUFormationConfiguration(
				strategy.ID,
				spec.HUFormation.TripType,
				spec.HUFormation.MappingMode,
				spec.HUFormation.HUKinds,
				spec.HUFormation.MaxHUQuantity,
				spec.HUFormation.MaxHUWeight,
				spec.HUFormation.QCMismatchThreshold,
				spec.HUFormation.Flags,
			)
			if err != nil {
				return fail(errors.ErrValidation(err.Error()))
			}
			if err := s.huFormations.Save(ctx, hu); err != nil {
				return fail(fmt.Errorf("failed to save HU formation configuration: %w", err))
			}

			created = append(created, createdRecord{
				kind:   "hu-formation",
				id:     hu.ID,
				remove: func(ctx context.Context) error { return s.huFormations.Delete(ctx, hu.ID) },
			})
			summary.HUFormations++
		}

		if spec.WorkOrder != nil {
			wom, err := domain.NewWorkOrderManagementConfiguration(strategy.ID, spec.WorkOrder.LoadingUnits, spec.WorkOrder.Flags)
			if err != nil {
				return fail(errors.ErrValidation(err.Error()))
			}
			if err := s.workOrders.Save(ctx, wom); err != nil {
				return fail(fmt.Errorf("failed to save work order management configuration: %w", err))
			}

			created = append(created, createdRecord{
				kind:   "work-order-management",
				id:     wom.ID,
				remove: func(ctx context.Context) error { return s.workOrders.Delete(ctx, wom.ID) },
			})
			summary.WorkOrderManagements++
		}
	}

	for _, spec := range data.Allocations {
		existing, err := s.allocations.FindByGroupAndMode(ctx, groupIDs[spec.GroupIndex], spec.Mode)
		if err != nil {
			return fail(fmt.Errorf("failed to look up allocation strategies: %w", err))
		}
		if len(existing) > 0 {
			return fail(errors.ErrConflict(domain.ErrAllocationModeExists.Error()))
		}

		alloc, err := domain.NewStockAllocationStrategy(
			groupIDs[spec.GroupIndex],
			spec.Mode,
			spec.SearchScope,
			spec.BatchPreference,
			spec.Optimization,
			spec.StatePreferenceSeq,
			spec.Priority,
			spec.PreferFullHU,
			spec.PreferSingleBatch,
			spec.AllowSplitLines,
		)
		if err != nil {
			return fail(errors.ErrValidation(err.Error()))
		}
		if err := s.allocations.Save(ctx, alloc); err != nil {
			return fail(fmt.Errorf("failed to save stock allocation strategy: %w", err))
		}

		created = append(created, createdRecord{
			kind:   "stock-allocation",
			id:     alloc.ID,
			remove: func(ctx context.Context) error { return s.allocations.Delete(ctx, alloc.ID) },
		})
		summary.StockAllocations++
	}

	for _, spec := range data.TaskPlanning {
		planning, err := domain.NewTaskPlanningConfiguration(
			groupIDs[spec.GroupIndex],
			spec.ReleaseMode,
			spec.BundleSize,
			spec.PlanningHorizon,
			spec.AllowPreemption,
		)
		if err != nil {
			return fail(errors.ErrValidation(err.Error()))
		}
		if err := s.planning.Save(ctx, planning); err != nil {
			return fail(fmt.Errorf("failed to save task planning configuration: %w", err))
		}

		created = append(created, createdRecord{
			kind:   "task-planning",
			id:     planning.ID,
			remove: func(ctx context.Context) error { return s.planning.Delete(ctx, planning.ID) },
		})
		summary.TaskPlannings++

		if spec.Execution != nil {
			execution, err := domain.NewTaskExecutionConfiguration(
				planning.ID,
				spec.Execution.MaxConcurrentTasks,
				spec.Execution.ScanConfirmation,
				spec.Execution.AllowSkip,
				spec.Execution.AllowShortPick,
			)
			if err != nil {
				return fail(errors.ErrValidation(err.Error()))
			}
			if err := s.executions.Save(ctx, execution); err != nil {
				return fail(fmt.Errorf("failed to save task execution configuration: %w", err))
			}

			created = append(created, createdRecord{
				kind:   "task-execution",
				id:     execution.ID,
				remove: func(ctx context.Context) error { return s.executions.Delete(ctx, execution.ID) },
			})
			summary.TaskExecutions++
		}
	}

	return summary, nil
}

// compensate deletes created records in reverse order. Compensation failures
// are logged and skipped so later records still get cleaned up.
func (s *TemplateApplicationService) compensate(ctx context.Context, name string, created []createdRecord) {
	for i := len(created) - 1; i >= 0; i-- {
		record := created[i]
		if err := record.remove(ctx); err != nil {
			s.logger.WithContext(ctx).WithError(err).Error("Failed to compensate created record",
				"template", name,
				"entityType", record.kind,
				"entityId", record.id,
			)
			continue
		}
		s.logger.WithContext(ctx).Warn("Compensated created record",
			"template", name,
			"entityType", record.kind,
			"entityId", record.id,
		)
	}
}

func summaryCounts(summary *ApplySummaryDTO) map[string]int {
	return map[string]int{
		"inventory-group":       summary.InventoryGroups,
		"task-sequence":         summary.TaskSequences,
		"pick-strategy":         summary.PickStrategies,
		"hu-formation":          summary.HUFormations,
		"work-order-management": summary.WorkOrderManagements,
		"stock-allocation":      summary.StockAllocations,
		"task-planning":         summary.TaskPlannings,
		"task-execution":        summary.TaskExecutions,
	}
}

// quickSetupData is the built-in starter bundle
func quickSetupData() domain.TemplateData {
	fullSequence := []domain.TaskSequenceToken{
		domain.TokenOutboundReplen,
		domain.TokenOutboundPick,
		domain.TokenOutboundConsolidate,
		domain.TokenOutboundPack,
		domain.TokenOutboundLoad,
	}

	pickAlloc := func(groupIndex int) domain.AllocationSpec {
		return domain.AllocationSpec{
			GroupIndex:         groupIndex,
			Mode:               domain.AllocationModePick,
			SearchScope:        domain.ScopeZone,
			BatchPreference:    domain.BatchFEFO,
			Optimization:       domain.OptimizeTouchPoints,
			StatePreferenceSeq: []domain.StatePreference{domain.StatePure, domain.StateSKUPure},
			Priority:           1,
			PreferFullHU:       true,
			AllowSplitLines:    true,
		}
	}
	putAlloc := func(groupIndex int) domain.AllocationSpec {
		return domain.AllocationSpec{
			GroupIndex:         groupIndex,
			Mode:               domain.AllocationModePut,
			SearchScope:        domain.ScopeZone,
			BatchPreference:    domain.BatchNone,
			Optimization:       domain.OptimizeDistance,
			StatePreferenceSeq: []domain.StatePreference{domain.StateEmpty, domain.StateSKUPure},
			Priority:           1,
			PreferSingleBatch:  true,
		}
	}

	return domain.TemplateData{
		Groups: []domain.GroupSpec{
			{
				Description:         "Each picking",
				StorageInstruction:  "EACH",
				LocationInstruction: "FORWARD_PICK",
				Storage:             domain.StorageIdentifiers{UOM: "EACH", Bucket: "GOOD"},
				Line:                domain.LineIdentifiers{OrderKind: "B2C"},
			},
			{
				Description:         "Case picking",
				StorageInstruction:  "CASE",
				LocationInstruction: "RESERVE",
				Storage:             domain.StorageIdentifiers{UOM: "CASE", Bucket: "GOOD"},
				Line:                domain.LineIdentifiers{OrderKind: "B2B"},
			},
			{
				Description:         "Full pallet flow",
				StorageInstruction:  "PALLET",
				LocationInstruction: "BULK",
				Storage:             domain.StorageIdentifiers{UOM: "PALLET", Bucket: "GOOD"},
				Line:                domain.LineIdentifiers{OrderKind: "B2B"},
			},
		},
		TaskSequences: []domain.TaskSequenceSpec{
			{GroupIndex: 0, Sequence: fullSequence, Description: "Full outbound flow"},
		},
		PickStrategies: []domain.PickStrategySpec{
			{
				GroupIndex: 0,
				TaskKind:   domain.TaskKindPick,
				Strategy:   domain.PickByTrip,
				Sorting:    domain.SortByLocation,
				Loading:    domain.LoadByTripSequence,
				TaskLabel:  "Each pick",
				HUFormation: &domain.HUFormationSpec{
					TripType:      domain.SingleTrip,
					MappingMode:   domain.MapAtPick,
					HUKinds:       []domain.HUKind{domain.HUKindTote, domain.HUKindCarton},
					MaxHUQuantity: 100,
					MaxHUWeight:   25,
					Flags: domain.HUFormationFlags{
						AutoCloseHU:       true,
						AllowPartialHU:    true,
						AllowMixedSKU:     true,
						PrintLabelOnClose: true,
						StageOnClose:      true,
					},
				},
				WorkOrder: &domain.WorkOrderSpec{
					LoadingUnits: []domain.LoadingUnit{domain.LoadingUnitTrolley, domain.LoadingUnitCarton},
					Flags: domain.WorkOrderFlags{
						AutoCreateWorkOrders:  true,
						AutoReleaseWorkOrders: true,
						HoldOnShortPick:       true,
						NotifyOnCompletion:    true,
					},
				},
			},
			{
				GroupIndex: 1,
				TaskKind:   domain.TaskKindPick,
				Strategy:   domain.BatchPick,
				Sorting:    domain.SortByLocation,
				Loading:    domain.LoadByDropSequence,
				TaskLabel:  "Case pick",
			},
		},
		Allocations: []domain.AllocationSpec{
			pickAlloc(0), putAlloc(0),
			pickAlloc(1), putAlloc(1),
			pickAlloc(2), putAlloc(2),
		},
	}
}
