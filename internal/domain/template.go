package domain

import (
	"errors"
	"fmt"
	"time"
)

// Template errors
var (
	ErrEmptyTemplateName = errors.New("template name is required")
	ErrEmptyTemplateData = errors.New("template data requires at least one group")
)

// GroupSpec is a template payload for an inventory group
type GroupSpec struct {
	Description         string             `bson:"description" json:"description"`
	StorageInstruction  string             `bson:"storageInstruction" json:"storageInstruction"`
	LocationInstruction string             `bson:"locationInstruction" json:"locationInstruction"`
	Storage             StorageIdentifiers `bson:"storage" json:"storage"`
	Line                LineIdentifiers    `bson:"line" json:"line"`
}

// TaskSequenceSpec is a template payload for a task sequence configuration.
// GroupIndex refers to the position of the owning group within the template.
type TaskSequenceSpec struct {
	GroupIndex  int                 `bson:"groupIndex" json:"groupIndex"`
	Sequence    []TaskSequenceToken `bson:"sequence" json:"sequence"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
}

// HUFormationSpec is a template payload for an HU formation configuration
type HUFormationSpec struct {
	TripType            TripType         `bson:"tripType" json:"tripType"`
	MappingMode         MappingMode      `bson:"mappingMode" json:"mappingMode"`
	HUKinds             []HUKind         `bson:"huKinds" json:"huKinds"`
	MaxHUQuantity       int              `bson:"maxHUQuantity" json:"maxHUQuantity"`
	MaxHUWeight         float64          `bson:"maxHUWeight" json:"maxHUWeight"`
	QCMismatchThreshold int              `bson:"qcMismatchThreshold" json:"qcMismatchThreshold"`
	Flags               HUFormationFlags `bson:"flags" json:"flags"`
}

// WorkOrderSpec is a template payload for a work order management configuration
type WorkOrderSpec struct {
	LoadingUnits []LoadingUnit  `bson:"loadingUnits" json:"loadingUnits"`
	Flags        WorkOrderFlags `bson:"flags" json:"flags"`
}

// PickStrategySpec is a template payload for a pick strategy, optionally
// carrying its one-to-one children
type PickStrategySpec struct {
	GroupIndex  int              `bson:"groupIndex" json:"groupIndex"`
	TaskKind    TaskKind         `bson:"taskKind" json:"taskKind"`
	TaskSubKind string           `bson:"taskSubKind,omitempty" json:"taskSubKind,omitempty"`
	Strategy    PickStrategy     `bson:"strategy" json:"strategy"`
	Sorting     SortingStrategy  `bson:"sortingStrategy" json:"sortingStrategy"`
	Loading     LoadingStrategy  `bson:"loadingStrategy" json:"loadingStrategy"`
	GroupBy     []string         `bson:"groupBy,omitempty" json:"groupBy,omitempty"`
	TaskLabel   string           `bson:"taskLabel,omitempty" json:"taskLabel,omitempty"`
	HUFormation *HUFormationSpec `bson:"huFormation,omitempty" json:"huFormation,omitempty"`
	WorkOrder   *WorkOrderSpec   `bson:"workOrder,omitempty" json:"workOrder,omitempty"`
}

// AllocationSpec is a template payload for a stock allocation strategy
type AllocationSpec struct {
	GroupIndex         int                 `bson:"groupIndex" json:"groupIndex"`
	Mode               AllocationMode      `bson:"mode" json:"mode"`
	SearchScope        SearchScope         `bson:"searchScope" json:"searchScope"`
	BatchPreference    BatchPreferenceMode `bson:"batchPreferenceMode" json:"batchPreferenceMode"`
	Optimization       OptimizationMode    `bson:"optimizationMode" json:"optimizationMode"`
	StatePreferenceSeq []StatePreference   `bson:"statePreferenceSeq" json:"statePreferenceSeq"`
	Priority           int                 `bson:"priority" json:"priority"`
	PreferFullHU       bool                `bson:"preferFullHU" json:"preferFullHU"`
	PreferSingleBatch  bool                `bson:"preferSingleBatch" json:"preferSingleBatch"`
	AllowSplitLines    bool                `bson:"allowSplitLines" json:"allowSplitLines"`
}

// ExecutionSpec is a template payload for a task execution configuration
type ExecutionSpec struct {
	MaxConcurrentTasks int  `bson:"maxConcurrentTasks" json:"maxConcurrentTasks"`
	ScanConfirmation   bool `bson:"scanConfirmation" json:"scanConfirmation"`
	AllowSkip          bool `bson:"allowSkip" json:"allowSkip"`
	AllowShortPick     bool `bson:"allowShortPick" json:"allowShortPick"`
}

// TaskPlanningSpec is a template payload for a task planning configuration,
// optionally carrying its one-to-one execution child
type TaskPlanningSpec struct {
	GroupIndex      int            `bson:"groupIndex" json:"groupIndex"`
	ReleaseMode     ReleaseMode    `bson:"releaseMode" json:"releaseMode"`
	BundleSize      int            `bson:"bundleSize" json:"bundleSize"`
	PlanningHorizon int            `bson:"planningHorizonMinutes" json:"planningHorizonMinutes"`
	AllowPreemption bool           `bson:"allowPreemption" json:"allowPreemption"`
	Execution       *ExecutionSpec `bson:"execution,omitempty" json:"execution,omitempty"`
}

// TemplateData bundles the nested configuration payloads a template applies
type TemplateData struct {
	Groups         []GroupSpec        `bson:"groups" json:"groups"`
	TaskSequences  []TaskSequenceSpec `bson:"taskSequences,omitempty" json:"taskSequences,omitempty"`
	PickStrategies []PickStrategySpec `bson:"pickStrategies,omitempty" json:"pickStrategies,omitempty"`
	Allocations    []AllocationSpec   `bson:"allocations,omitempty" json:"allocations,omitempty"`
	TaskPlanning   []TaskPlanningSpec `bson:"taskPlanning,omitempty" json:"taskPlanning,omitempty"`
}

// Validate checks that all index references within the template data resolve
func (d *TemplateData) Validate() error {
	if len(d.Groups) == 0 {
		return ErrEmptyTemplateData
	}

	n := len(d.Groups)
	for i, seq := range d.TaskSequences {
		if seq.GroupIndex < 0 || seq.GroupIndex >= n {
			return fmt.Errorf("task sequence %d references unknown group index %d", i, seq.GroupIndex)
		}
	}
	for i, ps := range d.PickStrategies {
		if ps.GroupIndex < 0 || ps.GroupIndex >= n {
			return fmt.Errorf("pick strategy %d references unknown group index %d", i, ps.GroupIndex)
		}
	}
	for i, alloc := range d.Allocations {
		if alloc.GroupIndex < 0 || alloc.GroupIndex >= n {
			return fmt.Errorf("allocation %d references unknown group index %d", i, alloc.GroupIndex)
		}
	}
	for i, tp := range d.TaskPlanning {
		if tp.GroupIndex < 0 || tp.GroupIndex >= n {
			return fmt.Errorf("task planning %d references unknown group index %d", i, tp.GroupIndex)
		}
	}
	return nil
}

// Template is a canned bundle of configuration payloads that can be applied
// in one shot
type Template struct {
	ID          int64        `bson:"_id"`
	Name        string       `bson:"name"`
	Description string       `bson:"description,omitempty"`
	Data        TemplateData `bson:"data"`
	Version     int64        `bson:"version"`
	CreatedAt   time.Time    `bson:"createdAt"`
	UpdatedAt   time.Time    `bson:"updatedAt"`
}

// NewTemplate creates a new Template
func NewTemplate(name, description string, data TemplateData) (*Template, error) {
	if name == "" {
		return nil, ErrEmptyTemplateName
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Template{
		Name:        name,
		Description: description,
		Data:        data,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
