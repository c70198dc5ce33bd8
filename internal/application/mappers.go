package application

import "github.com/wms-platform/outbound-config-service/internal/domain"

// ToInventoryGroupDTO converts a domain InventoryGroup to InventoryGroupDTO
func ToInventoryGroupDTO(group *domain.InventoryGroup) *InventoryGroupDTO {
	if group == nil {
		return nil
	}

	return &InventoryGroupDTO{
		ID:                  group.ID,
		Description:         group.Description,
		StorageInstruction:  group.StorageInstruction,
		LocationInstruction: group.LocationInstruction,
		Storage:             group.Storage,
		Line:                group.Line,
		Version:             group.Version,
		CreatedAt:           group.CreatedAt,
		UpdatedAt:           group.UpdatedAt,
	}
}

// ToInventoryGroupDTOs converts a slice of domain InventoryGroups
func ToInventoryGroupDTOs(groups []*domain.InventoryGroup) []InventoryGroupDTO {
	dtos := make([]InventoryGroupDTO, 0, len(groups))
	for _, group := range groups {
		if dto := ToInventoryGroupDTO(group); dto != nil {
			dtos = append(dtos, *dto)
		}
	}
	return dtos
}

// ToTaskSequenceDTO converts a domain TaskSequenceConfiguration
func ToTaskSequenceDTO(cfg *domain.TaskSequenceConfiguration) *TaskSequenceDTO {
	if cfg == nil {
		return nil
	}

	sequence := make([]string, len(cfg.Sequence))
	for i, token := range cfg.Sequence {
		sequence[i] = string(token)
	}

	return &TaskSequenceDTO{
		ID:               cfg.ID,
		InventoryGroupID: cfg.InventoryGroupID,
		Sequence:         sequence,
		Description:      cfg.Description,
		Version:          cfg.Version,
		CreatedAt:        cfg.CreatedAt,
		UpdatedAt:        cfg.UpdatedAt,
	}
}

// ToTaskSequenceDTOs converts a slice of domain TaskSequenceConfigurations
func ToTaskSequenceDTOs(cfgs []*domain.TaskSequenceConfiguration) []TaskSequenceDTO {
	dtos := make([]TaskSequenceDTO, 0, len(cfgs))
	for _, cfg := range cfgs {
		if dto := ToTaskSequenceDTO(cfg); dto != nil {
			dtos = append(dtos, *dto)
		}
	}
	return dtos
}

// ToPickStrategyDTO converts a domain PickStrategyConfiguration
func ToPickStrategyDTO(cfg *domain.PickStrategyConfiguration) *PickStrategyDTO {
	if cfg == nil {
		return nil
	}

	return &PickStrategyDTO{
		ID:               cfg.ID,
		InventoryGroupID: cfg.InventoryGroupID,
		TaskKind:         string(cfg.TaskKind),
		TaskSubKind:      cfg.TaskSubKind,
		Strategy:         string(cfg.Strategy),
		SortingStrategy:  string(cfg.Sorting),
		LoadingStrategy:  string(cfg.Loading),
		GroupBy:          cfg.GroupBy,
		TaskLabel:        cfg.TaskLabel,
		Version:          cfg.Version,
		CreatedAt:        cfg.CreatedAt,
		UpdatedAt:        cfg.UpdatedAt,
	}
}

// ToPickStrategyDTOs converts a slice of domain PickStrategyConfigurations
func ToPickStrategyDTOs(cfgs []*domain.PickStrategyConfiguration) []PickStrategyDTO {
	dtos := make([]PickStrategyDTO, 0, len(cfgs))
	for _, cfg := range cfgs {
		if dto := ToPickStrategyDTO(cfg); dto != nil {
			dtos = append(dtos, *dto)
		}
	}
	return dtos
}

// ToHUFormationDTO converts a domain HUFormationConfiguration
func ToHUFormationDTO(cfg *domain.HUFormationConfiguration) *HUFormationDTO {
	if cfg == nil {
		return nil
	}

	kinds := make([]string, len(cfg.HUKinds))
	for i, kind := range cfg.HUKinds {
		kinds[i] = string(kind)
	}

	return &HUFormationDTO{
		ID:                  cfg.ID,
		PickStrategyID:      cfg.PickStrategyID,
		TripType:            string(cfg.TripType),
		MappingMode:         string(cfg.MappingMode),
		HUKinds:             kinds,
		MaxHUQuantity:       cfg.MaxHUQuantity,
		MaxHUWeight:         cfg.MaxHUWeight,
		QCMismatchThreshold: cfg.QCMismatchThreshold,
		Flags:               cfg.Flags,
		Version:             cfg.Version,
		CreatedAt:           cfg.CreatedAt,
		UpdatedAt:           cfg.UpdatedAt,
	}
}

// ToWorkOrderManagementDTO converts a domain WorkOrderManagementConfiguration
func ToWorkOrderManagementDTO(cfg *domain.WorkOrderManagementConfiguration) *WorkOrderManagementDTO {
	if cfg == nil {
		return nil
	}

	units := make([]string, len(cfg.LoadingUnits))
	for i, unit := range cfg.LoadingUnits {
		units[i] = string(unit)
	}

	return &WorkOrderManagementDTO{
		ID:             cfg.ID,
		PickStrategyID: cfg.PickStrategyID,
		LoadingUnits:   units,
		Flags:          cfg.Flags,
		Version:        cfg.Version,
		CreatedAt:      cfg.CreatedAt,
		UpdatedAt:      cfg.UpdatedAt,
	}
}

// ToStockAllocationDTO converts a domain StockAllocationStrategy
func ToStockAllocationDTO(strategy *domain.StockAllocationStrategy) *StockAllocationDTO {
	if strategy == nil {
		return nil
	}

	prefs := make([]string, len(strategy.StatePreferenceSeq))
	for i, pref := range strategy.StatePreferenceSeq {
		prefs[i] = string(pref)
	}

	return &StockAllocationDTO{
		ID:                 strategy.ID,
		InventoryGroupID:   strategy.InventoryGroupID,
		Mode:               string(strategy.Mode),
		SearchScope:        string(strategy.SearchScope),
		BatchPreference:    string(strategy.BatchPreference),
		Optimization:       string(strategy.Optimization),
		StatePreferenceSeq: prefs,
		Priority:           strategy.Priority,
		PreferFullHU:       strategy.PreferFullHU,
		PreferSingleBatch:  strategy.PreferSingleBatch,
		AllowSplitLines:    strategy.AllowSplitLines,
		Version:            strategy.Version,
		CreatedAt:          strategy.CreatedAt,
		UpdatedAt:          strategy.UpdatedAt,
	}
}

// ToStockAllocationDTOs converts a slice of domain StockAllocationStrategies
func ToStockAllocationDTOs(strategies []*domain.StockAllocationStrategy) []StockAllocationDTO {
	dtos := make([]StockAllocationDTO, 0, len(strategies))
	for _, strategy := range strategies {
		if dto := ToStockAllocationDTO(strategy); dto != nil {
			dtos = append(dtos, *dto)
		}
	}
	return dtos
}

// ToTaskPlanningDTO converts a domain TaskPlanningConfiguration
func ToTaskPlanningDTO(cfg *domain.TaskPlanningConfiguration) *TaskPlanningDTO {
	if cfg == nil {
		return nil
	}

	return &TaskPlanningDTO{
		ID:               cfg.ID,
		InventoryGroupID: cfg.InventoryGroupID,
		ReleaseMode:      string(cfg.ReleaseMode),
		BundleSize:       cfg.BundleSize,
		PlanningHorizon:  cfg.PlanningHorizon,
		AllowPreemption:  cfg.AllowPreemption,
		Version:          cfg.Version,
		CreatedAt:        cfg.CreatedAt,
		UpdatedAt:        cfg.UpdatedAt,
	}
}

// ToTaskPlanningDTOs converts a slice of domain TaskPlanningConfigurations
func ToTaskPlanningDTOs(cfgs []*domain.TaskPlanningConfiguration) []TaskPlanningDTO {
	dtos := make([]TaskPlanningDTO, 0, len(cfgs))
	for _, cfg := range cfgs {
		if dto := ToTaskPlanningDTO(cfg); dto != nil {
			dtos = append(dtos, *dto)
		}
	}
	return dtos
}

// ToTaskExecutionDTO converts a domain TaskExecutionConfiguration
func ToTaskExecutionDTO(cfg *domain.TaskExecutionConfiguration) *TaskExecutionDTO {
	if cfg == nil {
		return nil
	}

	return &TaskExecutionDTO{
		ID:                 cfg.ID,
		TaskPlanningID:     cfg.TaskPlanningID,
		MaxConcurrentTasks: cfg.MaxConcurrentTasks,
		ScanConfirmation:   cfg.ScanConfirmation,
		AllowSkip:          cfg.AllowSkip,
		AllowShortPick:     cfg.AllowShortPick,
		Version:            cfg.Version,
		CreatedAt:          cfg.CreatedAt,
		UpdatedAt:          cfg.UpdatedAt,
	}
}

// ToTemplateDTO converts a domain Template
func ToTemplateDTO(template *domain.Template) *TemplateDTO {
	if template == nil {
		return nil
	}

	return &TemplateDTO{
		ID:          template.ID,
		Name:        template.Name,
		Description: template.Description,
		Data:        template.Data,
		Version:     template.Version,
		CreatedAt:   template.CreatedAt,
		UpdatedAt:   template.UpdatedAt,
	}
}

// ToTemplateDTOs converts a slice of domain Templates
func ToTemplateDTOs(templates []*domain.Template) []TemplateDTO {
	dtos := make([]TemplateDTO, 0, len(templates))
	for _, template := range templates {
		if dto := ToTemplateDTO(template); dto != nil {
			dtos = append(dtos, *dto)
		}
	}
	return dtos
}

// ToWizardSessionDTO converts a domain WizardSession
func ToWizardSessionDTO(session *domain.WizardSession) *WizardSessionDTO {
	if session == nil {
		return nil
	}

	return &WizardSessionDTO{
		ID:          session.ID,
		CurrentStep: int(session.CurrentStep),
		StepName:    session.CurrentStep.Name(),
		TotalSteps:  domain.StepCount,
		Confirmed:   session.Confirmed,
		ConfirmedAt: session.ConfirmedAt,
		CreatedAt:   session.CreatedAt,
		UpdatedAt:   session.UpdatedAt,
	}
}
