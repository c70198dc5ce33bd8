package application

import (
	"time"

	"github.com/wms-platform/outbound-config-service/internal/domain"
)

// The flag and template payload structs are pure value types carrying their
// own json tags, so they cross the API boundary as-is.
type (
	HUFormationFlagsDTO = domain.HUFormationFlags
	WorkOrderFlagsDTO   = domain.WorkOrderFlags
	TemplateDataDTO     = domain.TemplateData
)

// InventoryGroupDTO represents an inventory group
type InventoryGroupDTO struct {
	ID                  int64                     `json:"id"`
	Description         string                    `json:"description"`
	StorageInstruction  string                    `json:"storageInstruction"`
	LocationInstruction string                    `json:"locationInstruction"`
	Storage             domain.StorageIdentifiers `json:"storage"`
	Line                domain.LineIdentifiers    `json:"line"`
	FullyAllocated      bool                      `json:"fullyAllocated"`
	Version             int64                     `json:"version"`
	CreatedAt           time.Time                 `json:"createdAt"`
	UpdatedAt           time.Time                 `json:"updatedAt"`
}

// TaskSequenceDTO represents a task sequence configuration
type TaskSequenceDTO struct {
	ID               int64     `json:"id"`
	InventoryGroupID int64     `json:"inventoryGroupId"`
	Sequence         []string  `json:"sequence"`
	Description      string    `json:"description,omitempty"`
	Version          int64     `json:"version"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// PickStrategyDTO represents a pick strategy configuration
type PickStrategyDTO struct {
	ID               int64     `json:"id"`
	InventoryGroupID int64     `json:"inventoryGroupId"`
	TaskKind         string    `json:"taskKind"`
	TaskSubKind      string    `json:"taskSubKind,omitempty"`
	Strategy         string    `json:"strategy"`
	SortingStrategy  string    `json:"sortingStrategy"`
	LoadingStrategy  string    `json:"loadingStrategy"`
	GroupBy          []string  `json:"groupBy,omitempty"`
	TaskLabel        string    `json:"taskLabel,omitempty"`
	Version          int64     `json:"version"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// HUFormationDTO represents an HU formation configuration
type HUFormationDTO struct {
	ID                  int64               `json:"id"`
	PickStrategyID      int64               `json:"pickStrategyId"`
	TripType            string              `json:"tripType"`
	MappingMode         string              `json:"mappingMode"`
	HUKinds             []string            `json:"huKinds"`
	MaxHUQuantity       int                 `json:"maxHUQuantity"`
	MaxHUWeight         float64             `json:"maxHUWeight"`
	QCMismatchThreshold int                 `json:"qcMismatchThreshold"`
	Flags               HUFormationFlagsDTO `json:"flags"`
	Version             int64               `json:"version"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
}

// WorkOrderManagementDTO represents a work order management configuration
type WorkOrderManagementDTO struct {
	ID             int64             `json:"id"`
	PickStrategyID int64             `json:"pickStrategyId"`
	LoadingUnits   []string          `json:"loadingUnits"`
	Flags          WorkOrderFlagsDTO `json:"flags"`
	Version        int64             `json:"version"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// StockAllocationDTO represents a stock allocation strategy
type StockAllocationDTO struct {
	ID                 int64     `json:"id"`
	InventoryGroupID   int64     `json:"inventoryGroupId"`
	Mode               string    `json:"mode"`
	SearchScope        string    `json:"searchScope"`
	BatchPreference    string    `json:"batchPreferenceMode"`
	Optimization       string    `json:"optimizationMode"`
	StatePreferenceSeq []string  `json:"statePreferenceSeq,omitempty"`
	Priority           int       `json:"priority"`
	PreferFullHU       bool      `json:"preferFullHU"`
	PreferSingleBatch  bool      `json:"preferSingleBatch"`
	AllowSplitLines    bool      `json:"allowSplitLines"`
	Version            int64     `json:"version"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// TaskPlanningDTO represents a task planning configuration
type TaskPlanningDTO struct {
	ID               int64     `json:"id"`
	InventoryGroupID int64     `json:"inventoryGroupId"`
	ReleaseMode      string    `json:"releaseMode"`
	BundleSize       int       `json:"bundleSize"`
	PlanningHorizon  int       `json:"planningHorizonMinutes"`
	AllowPreemption  bool      `json:"allowPreemption"`
	Version          int64     `json:"version"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// TaskExecutionDTO represents a task execution configuration
type TaskExecutionDTO struct {
	ID                 int64     `json:"id"`
	TaskPlanningID     int64     `json:"taskPlanningId"`
	MaxConcurrentTasks int       `json:"maxConcurrentTasks"`
	ScanConfirmation   bool      `json:"scanConfirmation"`
	AllowSkip          bool      `json:"allowSkip"`
	AllowShortPick     bool      `json:"allowShortPick"`
	Version            int64     `json:"version"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// TemplateDTO represents a configuration template
type TemplateDTO struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Data        TemplateDataDTO `json:"data"`
	Version     int64           `json:"version"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// WizardSessionDTO represents a wizard session
type WizardSessionDTO struct {
	ID          string     `json:"id"`
	CurrentStep int        `json:"currentStep"`
	StepName    string     `json:"stepName"`
	TotalSteps  int        `json:"totalSteps"`
	Confirmed   bool       `json:"confirmed"`
	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// StepTransitionDTO is the result of a wizard navigation attempt
type StepTransitionDTO struct {
	Session  WizardSessionDTO `json:"session"`
	Advanced bool             `json:"advanced"`
	Warning  string           `json:"warning,omitempty"`
}

// StepStatusDTO describes the completion state of one wizard step
type StepStatusDTO struct {
	Step     int    `json:"step"`
	Name     string `json:"name"`
	Complete bool   `json:"complete"`
}

// ApplySummaryDTO summarizes what a template or quick-setup application created
type ApplySummaryDTO struct {
	TemplateName         string `json:"templateName"`
	InventoryGroups      int    `json:"inventoryGroups"`
	TaskSequences        int    `json:"taskSequences"`
	PickStrategies       int    `json:"pickStrategies"`
	HUFormations         int    `json:"huFormations"`
	WorkOrderManagements int    `json:"workOrderManagements"`
	StockAllocations     int    `json:"stockAllocations"`
	TaskPlannings        int    `json:"taskPlannings"`
	TaskExecutions       int    `json:"taskExecutions"`
}

// GroupExportDTO is one inventory group with all its dependent configuration
type GroupExportDTO struct {
	Group          InventoryGroupDTO       `json:"group"`
	TaskSequences  []TaskSequenceDTO       `json:"taskSequences"`
	PickStrategies []PickStrategyExportDTO `json:"pickStrategies"`
	Allocations    []StockAllocationDTO    `json:"stockAllocations"`
	TaskPlannings  []TaskPlanningExportDTO `json:"taskPlannings"`
}

// PickStrategyExportDTO is a pick strategy with its one-to-one children
type PickStrategyExportDTO struct {
	PickStrategyDTO
	HUFormation         *HUFormationDTO         `json:"huFormation,omitempty"`
	WorkOrderManagement *WorkOrderManagementDTO `json:"workOrderManagement,omitempty"`
}

// TaskPlanningExportDTO is a task planning configuration with its execution child
type TaskPlanningExportDTO struct {
	TaskPlanningDTO
	Execution *TaskExecutionDTO `json:"execution,omitempty"`
}

// OutboundExportDTO is the full outbound configuration graph
type OutboundExportDTO struct {
	ExportedAt time.Time        `json:"exportedAt"`
	Groups     []GroupExportDTO `json:"groups"`
}
