package domain

import (
	"errors"
	"time"
)

// Pick strategy errors
var (
	ErrInvalidTaskKind        = errors.New("invalid task kind")
	ErrInvalidPickStrategy    = errors.New("invalid pick strategy")
	ErrInvalidSortingStrategy = errors.New("invalid sorting strategy")
	ErrInvalidLoadingStrategy = errors.New("invalid loading strategy")
)

// TaskKind identifies the kind of task a pick strategy drives
type TaskKind string

const (
	TaskKindPick        TaskKind = "PICK"
	TaskKindReplen      TaskKind = "REPLEN"
	TaskKindConsolidate TaskKind = "CONSOLIDATE"
)

// IsValid checks if the task kind is valid
func (k TaskKind) IsValid() bool {
	switch k {
	case TaskKindPick, TaskKindReplen, TaskKindConsolidate:
		return true
	default:
		return false
	}
}

// PickStrategy determines how pick tasks are grouped
type PickStrategy string

const (
	PickByTrip     PickStrategy = "PICK_BY_TRIP"
	PickByCustomer PickStrategy = "PICK_BY_CUSTOMER"
	PickByInvoice  PickStrategy = "PICK_BY_INVOICE"
	BatchPick      PickStrategy = "BATCH_PICK"
)

// IsValid checks if the strategy is valid
func (s PickStrategy) IsValid() bool {
	switch s {
	case PickByTrip, PickByCustomer, PickByInvoice, BatchPick:
		return true
	default:
		return false
	}
}

// SortingStrategy determines pick task ordering
type SortingStrategy string

const (
	SortByLocation SortingStrategy = "SORT_BY_LOCATION"
	SortBySKU      SortingStrategy = "SORT_BY_SKU"
	SortByOrder    SortingStrategy = "SORT_BY_ORDER"
)

// IsValid checks if the sorting strategy is valid
func (s SortingStrategy) IsValid() bool {
	switch s {
	case SortByLocation, SortBySKU, SortByOrder:
		return true
	default:
		return false
	}
}

// LoadingStrategy determines how picked HUs are staged for loading
type LoadingStrategy string

const (
	LoadByTripSequence LoadingStrategy = "LOAD_BY_TRIP_SEQUENCE"
	LoadByDropSequence LoadingStrategy = "LOAD_BY_DROP_SEQUENCE"
	NoLoading          LoadingStrategy = "NO_LOADING"
)

// IsValid checks if the loading strategy is valid
func (s LoadingStrategy) IsValid() bool {
	switch s {
	case LoadByTripSequence, LoadByDropSequence, NoLoading:
		return true
	default:
		return false
	}
}

// PickStrategyConfiguration defines how pick work is generated for one
// inventory group. HU formation and work order management settings are
// attached to a pick strategy one-to-one.
type PickStrategyConfiguration struct {
	ID               int64           `bson:"_id"`
	InventoryGroupID int64           `bson:"inventoryGroupId"`
	TaskKind         TaskKind        `bson:"taskKind"`
	TaskSubKind      string          `bson:"taskSubKind,omitempty"`
	Strategy         PickStrategy    `bson:"strategy"`
	Sorting          SortingStrategy `bson:"sortingStrategy"`
	Loading          LoadingStrategy `bson:"loadingStrategy"`
	GroupBy          []string        `bson:"groupBy,omitempty"`
	TaskLabel        string          `bson:"taskLabel,omitempty"`
	Version          int64           `bson:"version"`
	CreatedAt        time.Time       `bson:"createdAt"`
	UpdatedAt        time.Time       `bson:"updatedAt"`
}

// NewPickStrategyConfiguration creates a new PickStrategyConfiguration
func NewPickStrategyConfiguration(
	inventoryGroupID int64,
	taskKind TaskKind,
	taskSubKind string,
	strategy PickStrategy,
	sorting SortingStrategy,
	loading LoadingStrategy,
	groupBy []string,
	taskLabel string,
) (*PickStrategyConfiguration, error) {
	if inventoryGroupID <= 0 {
		return nil, ErrMissingGroupID
	}
	if !taskKind.IsValid() {
		return nil, ErrInvalidTaskKind
	}
	if !strategy.IsValid() {
		return nil, ErrInvalidPickStrategy
	}
	if !sorting.IsValid() {
		return nil, ErrInvalidSortingStrategy
	}
	if !loading.IsValid() {
		return nil, ErrInvalidLoadingStrategy
	}

	now := time.Now()
	return &PickStrategyConfiguration{
		InventoryGroupID: inventoryGroupID,
		TaskKind:         taskKind,
		TaskSubKind:      taskSubKind,
		Strategy:         strategy,
		Sorting:          sorting,
		Loading:          loading,
		GroupBy:          groupBy,
		TaskLabel:        taskLabel,
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// Update applies new strategy settings and bumps the version
func (c *PickStrategyConfiguration) Update(
	strategy PickStrategy,
	sorting SortingStrategy,
	loading LoadingStrategy,
	groupBy []string,
	taskLabel string,
) error {
	if !strategy.IsValid() {
		return ErrInvalidPickStrategy
	}
	if !sorting.IsValid() {
		return ErrInvalidSortingStrategy
	}
	if !loading.IsValid() {
		return ErrInvalidLoadingStrategy
	}

	c.Strategy = strategy
	c.Sorting = sorting
	c.Loading = loading
	c.GroupBy = groupBy
	c.TaskLabel = taskLabel
	c.Version++
	c.UpdatedAt = time.Now()
	return nil
}
