package domain

import (
	"errors"
	"time"
)

// Stock allocation errors
var (
	ErrInvalidAllocationMode   = errors.New("invalid allocation mode")
	ErrInvalidSearchScope      = errors.New("invalid search scope")
	ErrInvalidBatchPreference  = errors.New("invalid batch preference mode")
	ErrInvalidOptimizationMode = errors.New("invalid optimization mode")
	ErrInvalidStatePreference  = errors.New("invalid state preference")
	ErrAllocationModeExists    = errors.New("allocation strategy for this mode already exists")
)

// AllocationMode distinguishes picking allocation from putaway allocation
type AllocationMode string

const (
	AllocationModePick AllocationMode = "PICK"
	AllocationModePut  AllocationMode = "PUT"
)

// IsValid checks if the allocation mode is valid
func (m AllocationMode) IsValid() bool {
	return m == AllocationModePick || m == AllocationModePut
}

// SearchScope bounds where stock is searched during allocation
type SearchScope string

const (
	ScopeBin       SearchScope = "BIN"
	ScopeZone      SearchScope = "ZONE"
	ScopeWarehouse SearchScope = "WAREHOUSE"
)

// IsValid checks if the search scope is valid
func (s SearchScope) IsValid() bool {
	switch s {
	case ScopeBin, ScopeZone, ScopeWarehouse:
		return true
	default:
		return false
	}
}

// BatchPreferenceMode determines batch rotation during allocation
type BatchPreferenceMode string

const (
	BatchFIFO BatchPreferenceMode = "FIFO"
	BatchFEFO BatchPreferenceMode = "FEFO"
	BatchLIFO BatchPreferenceMode = "LIFO"
	BatchNone BatchPreferenceMode = "NONE"
)

// IsValid checks if the batch preference mode is valid
func (m BatchPreferenceMode) IsValid() bool {
	switch m {
	case BatchFIFO, BatchFEFO, BatchLIFO, BatchNone:
		return true
	default:
		return false
	}
}

// OptimizationMode determines what allocation minimizes
type OptimizationMode string

const (
	OptimizeTouchPoints OptimizationMode = "TOUCH_POINTS"
	OptimizeDistance    OptimizationMode = "DISTANCE"
	OptimizeQuantity    OptimizationMode = "QUANTITY"
)

// IsValid checks if the optimization mode is valid
func (m OptimizationMode) IsValid() bool {
	switch m {
	case OptimizeTouchPoints, OptimizeDistance, OptimizeQuantity:
		return true
	default:
		return false
	}
}

// StatePreference identifies a bin state preferred during allocation
type StatePreference string

const (
	StatePure    StatePreference = "PURE"
	StateImpure  StatePreference = "IMPURE"
	StateEmpty   StatePreference = "EMPTY"
	StateSKUPure StatePreference = "SKU_PURE"
)

// IsValid checks if the state preference is valid
func (p StatePreference) IsValid() bool {
	switch p {
	case StatePure, StateImpure, StateEmpty, StateSKUPure:
		return true
	default:
		return false
	}
}

// StockAllocationStrategy defines how stock is allocated for one inventory
// group in one allocation mode. A group is fully allocated once it has
// exactly one PICK and one PUT strategy.
type StockAllocationStrategy struct {
	ID                 int64               `bson:"_id"`
	InventoryGroupID   int64               `bson:"inventoryGroupId"`
	Mode               AllocationMode      `bson:"mode"`
	SearchScope        SearchScope         `bson:"searchScope"`
	BatchPreference    BatchPreferenceMode `bson:"batchPreferenceMode"`
	Optimization       OptimizationMode    `bson:"optimizationMode"`
	StatePreferenceSeq []StatePreference   `bson:"statePreferenceSeq"`
	Priority           int                 `bson:"priority"`
	PreferFullHU       bool                `bson:"preferFullHU"`
	PreferSingleBatch  bool                `bson:"preferSingleBatch"`
	AllowSplitLines    bool                `bson:"allowSplitLines"`
	Version            int64               `bson:"version"`
	CreatedAt          time.Time           `bson:"createdAt"`
	UpdatedAt          time.Time           `bson:"updatedAt"`
}

// NewStockAllocationStrategy creates a new StockAllocationStrategy
func NewStockAllocationStrategy(
	inventoryGroupID int64,
	mode AllocationMode,
	searchScope SearchScope,
	batchPreference BatchPreferenceMode,
	optimization OptimizationMode,
	statePreferenceSeq []StatePreference,
	priority int,
	preferFullHU, preferSingleBatch, allowSplitLines bool,
) (*StockAllocationStrategy, error) {
	if inventoryGroupID <= 0 {
		return nil, ErrMissingGroupID
	}
	if !mode.IsValid() {
		return nil, ErrInvalidAllocationMode
	}
	if !searchScope.IsValid() {
		return nil, ErrInvalidSearchScope
	}
	if !batchPreference.IsValid() {
		return nil, ErrInvalidBatchPreference
	}
	if !optimization.IsValid() {
		return nil, ErrInvalidOptimizationMode
	}
	for _, pref := range statePreferenceSeq {
		if !pref.IsValid() {
			return nil, ErrInvalidStatePreference
		}
	}

	now := time.Now()
	return &StockAllocationStrategy{
		InventoryGroupID:   inventoryGroupID,
		Mode:               mode,
		SearchScope:        searchScope,
		BatchPreference:    batchPreference,
		Optimization:       optimization,
		StatePreferenceSeq: statePreferenceSeq,
		Priority:           priority,
		PreferFullHU:       preferFullHU,
		PreferSingleBatch:  preferSingleBatch,
		AllowSplitLines:    allowSplitLines,
		Version:            1,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// Update applies new allocation settings and bumps the version
func (s *StockAllocationStrategy) Update(
	searchScope SearchScope,
	batchPreference BatchPreferenceMode,
	optimization OptimizationMode,
	statePreferenceSeq []StatePreference,
	priority int,
	preferFullHU, preferSingleBatch, allowSplitLines bool,
) error {
	if !searchScope.IsValid() {
		return ErrInvalidSearchScope
	}
	if !batchPreference.IsValid() {
		return ErrInvalidBatchPreference
	}
	if !optimization.IsValid() {
		return ErrInvalidOptimizationMode
	}
	for _, pref := range statePreferenceSeq {
		if !pref.IsValid() {
			return ErrInvalidStatePreference
		}
	}

	s.SearchScope = searchScope
	s.BatchPreference = batchPreference
	s.Optimization = optimization
	s.StatePreferenceSeq = statePreferenceSeq
	s.Priority = priority
	s.PreferFullHU = preferFullHU
	s.PreferSingleBatch = preferSingleBatch
	s.AllowSplitLines = allowSplitLines
	s.Version++
	s.UpdatedAt = time.Now()
	return nil
}
