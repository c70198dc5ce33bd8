package application

// Inventory group commands

// CreateInventoryGroupCommand creates a new inventory group
type CreateInventoryGroupCommand struct {
	Description         string   `json:"description" binding:"required,safe_string"`
	StorageInstruction  string   `json:"storageInstruction" binding:"required"`
	LocationInstruction string   `json:"locationInstruction" binding:"required"`
	UOM                 string   `json:"uom"`
	Bucket              string   `json:"bucket"`
	Channel             string   `json:"channel"`
	InclusionList       []string `json:"inclusionList"`
	OrderKind           string   `json:"orderKind"`
	LineKind            string   `json:"lineKind"`
	ChannelFilter       []string `json:"channelFilter"`
}

// UpdateInventoryGroupCommand updates an inventory group
type UpdateInventoryGroupCommand struct {
	GroupID       int64    `json:"-"`
	Description   string   `json:"description" binding:"required,safe_string"`
	UOM           string   `json:"uom"`
	Bucket        string   `json:"bucket"`
	Channel       string   `json:"channel"`
	InclusionList []string `json:"inclusionList"`
	OrderKind     string   `json:"orderKind"`
	LineKind      string   `json:"lineKind"`
	ChannelFilter []string `json:"channelFilter"`
	Version       int64    `json:"version" binding:"required"`
}

// Task sequence commands

// CreateTaskSequenceCommand creates a task sequence configuration
type CreateTaskSequenceCommand struct {
	InventoryGroupID int64    `json:"inventoryGroupId" binding:"required"`
	Sequence         []string `json:"sequence" binding:"required,min=1,dive,task_token"`
	Description      string   `json:"description"`
}

// UpdateTaskSequenceCommand replaces a task sequence configuration
type UpdateTaskSequenceCommand struct {
	ID       int64    `json:"-"`
	Sequence []string `json:"sequence" binding:"required,min=1,dive,task_token"`
	Version  int64    `json:"version" binding:"required"`
}

// Pick strategy commands

// CreatePickStrategyCommand creates a pick strategy configuration
type CreatePickStrategyCommand struct {
	InventoryGroupID int64    `json:"inventoryGroupId" binding:"required"`
	TaskKind         string   `json:"taskKind" binding:"required"`
	TaskSubKind      string   `json:"taskSubKind"`
	Strategy         string   `json:"strategy" binding:"required"`
	SortingStrategy  string   `json:"sortingStrategy" binding:"required"`
	LoadingStrategy  string   `json:"loadingStrategy" binding:"required"`
	GroupBy          []string `json:"groupBy"`
	TaskLabel        string   `json:"taskLabel"`
}

// UpdatePickStrategyCommand updates a pick strategy configuration
type UpdatePickStrategyCommand struct {
	ID              int64    `json:"-"`
	Strategy        string   `json:"strategy" binding:"required"`
	SortingStrategy string   `json:"sortingStrategy" binding:"required"`
	LoadingStrategy string   `json:"loadingStrategy" binding:"required"`
	GroupBy         []string `json:"groupBy"`
	TaskLabel       string   `json:"taskLabel"`
	Version         int64    `json:"version" binding:"required"`
}

// HU formation commands

// UpsertHUFormationCommand creates or replaces the HU formation settings of a
// pick strategy
type UpsertHUFormationCommand struct {
	PickStrategyID      int64               `json:"-"`
	TripType            string              `json:"tripType" binding:"required"`
	MappingMode         string              `json:"mappingMode" binding:"required"`
	HUKinds             []string            `json:"huKinds" binding:"required,min=1,dive,hu_kind"`
	MaxHUQuantity       int                 `json:"maxHUQuantity" binding:"gte=0"`
	MaxHUWeight         float64             `json:"maxHUWeight" binding:"gte=0"`
	QCMismatchThreshold int                 `json:"qcMismatchThreshold" binding:"gte=0"`
	Flags               HUFormationFlagsDTO `json:"flags"`
}

// Work order management commands

// UpsertWorkOrderManagementCommand creates or replaces the work order
// management settings of a pick strategy
type UpsertWorkOrderManagementCommand struct {
	PickStrategyID int64             `json:"-"`
	LoadingUnits   []string          `json:"loadingUnits"`
	Flags          WorkOrderFlagsDTO `json:"flags"`
}

// Stock allocation commands

// CreateStockAllocationCommand creates a stock allocation strategy
type CreateStockAllocationCommand struct {
	InventoryGroupID   int64    `json:"inventoryGroupId" binding:"required"`
	Mode               string   `json:"mode" binding:"required,allocation_mode"`
	SearchScope        string   `json:"searchScope" binding:"required,search_scope"`
	BatchPreference    string   `json:"batchPreferenceMode" binding:"required,batch_preference"`
	Optimization       string   `json:"optimizationMode" binding:"required"`
	StatePreferenceSeq []string `json:"statePreferenceSeq"`
	Priority           int      `json:"priority"`
	PreferFullHU       bool     `json:"preferFullHU"`
	PreferSingleBatch  bool     `json:"preferSingleBatch"`
	AllowSplitLines    bool     `json:"allowSplitLines"`
}

// UpdateStockAllocationCommand updates a stock allocation strategy
type UpdateStockAllocationCommand struct {
	ID                 int64    `json:"-"`
	SearchScope        string   `json:"searchScope" binding:"required,search_scope"`
	BatchPreference    string   `json:"batchPreferenceMode" binding:"required,batch_preference"`
	Optimization       string   `json:"optimizationMode" binding:"required"`
	StatePreferenceSeq []string `json:"statePreferenceSeq"`
	Priority           int      `json:"priority"`
	PreferFullHU       bool     `json:"preferFullHU"`
	PreferSingleBatch  bool     `json:"preferSingleBatch"`
	AllowSplitLines    bool     `json:"allowSplitLines"`
	Version            int64    `json:"version" binding:"required"`
}

// Task planning commands

// CreateTaskPlanningCommand creates a task planning configuration
type CreateTaskPlanningCommand struct {
	InventoryGroupID int64  `json:"inventoryGroupId" binding:"required"`
	ReleaseMode      string `json:"releaseMode" binding:"required"`
	BundleSize       int    `json:"bundleSize" binding:"required,gte=1"`
	PlanningHorizon  int    `json:"planningHorizonMinutes" binding:"gte=0"`
	AllowPreemption  bool   `json:"allowPreemption"`
}

// UpdateTaskPlanningCommand updates a task planning configuration
type UpdateTaskPlanningCommand struct {
	ID              int64  `json:"-"`
	ReleaseMode     string `json:"releaseMode" binding:"required"`
	BundleSize      int    `json:"bundleSize" binding:"required,gte=1"`
	PlanningHorizon int    `json:"planningHorizonMinutes" binding:"gte=0"`
	AllowPreemption bool   `json:"allowPreemption"`
	Version         int64  `json:"version" binding:"required"`
}

// UpsertTaskExecutionCommand creates or replaces the execution settings of a
// task planning configuration
type UpsertTaskExecutionCommand struct {
	TaskPlanningID     int64 `json:"-"`
	MaxConcurrentTasks int   `json:"maxConcurrentTasks" binding:"required,gte=1"`
	ScanConfirmation   bool  `json:"scanConfirmation"`
	AllowSkip          bool  `json:"allowSkip"`
	AllowShortPick     bool  `json:"allowShortPick"`
}

// Template commands

// CreateTemplateCommand creates a template
type CreateTemplateCommand struct {
	Name        string          `json:"name" binding:"required,safe_string"`
	Description string          `json:"description"`
	Data        TemplateDataDTO `json:"data" binding:"required"`
}

// Wizard commands

// JumpToStepCommand moves a wizard session to a specific step
type JumpToStepCommand struct {
	SessionID string `json:"-"`
	Step      int    `json:"step" binding:"required"`
}

// Shared queries

// ListQuery is a paged list query
type ListQuery struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// Normalize applies default paging bounds
func (q *ListQuery) Normalize() {
	if q.Limit <= 0 || q.Limit > 500 {
		q.Limit = 100
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
}
