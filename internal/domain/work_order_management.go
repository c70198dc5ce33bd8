package domain

import (
	"errors"
	"time"
)

// Work order management errors
var (
	ErrInvalidLoadingUnit = errors.New("invalid loading unit")
)

// LoadingUnit identifies a unit used when staging work orders for loading
type LoadingUnit string

const (
	LoadingUnitPallet  LoadingUnit = "PALLET"
	LoadingUnitCarton  LoadingUnit = "CARTON"
	LoadingUnitTrolley LoadingUnit = "TROLLEY"
)

// IsValid checks if the loading unit is valid
func (u LoadingUnit) IsValid() bool {
	switch u {
	case LoadingUnitPallet, LoadingUnitCarton, LoadingUnitTrolley:
		return true
	default:
		return false
	}
}

// WorkOrderFlags are the operational toggles for work order management
type WorkOrderFlags struct {
	AutoCreateWorkOrders    bool `bson:"autoCreateWorkOrders" json:"autoCreateWorkOrders"`
	AutoReleaseWorkOrders   bool `bson:"autoReleaseWorkOrders" json:"autoReleaseWorkOrders"`
	AutoAssignWorkers       bool `bson:"autoAssignWorkers" json:"autoAssignWorkers"`
	AllowSplitWorkOrders    bool `bson:"allowSplitWorkOrders" json:"allowSplitWorkOrders"`
	AllowMergeWorkOrders    bool `bson:"allowMergeWorkOrders" json:"allowMergeWorkOrders"`
	RequireSupervisorClose  bool `bson:"requireSupervisorClose" json:"requireSupervisorClose"`
	RequireStagingScan      bool `bson:"requireStagingScan" json:"requireStagingScan"`
	RequireDockConfirmation bool `bson:"requireDockConfirmation" json:"requireDockConfirmation"`
	EnablePriorityBumping   bool `bson:"enablePriorityBumping" json:"enablePriorityBumping"`
	EnableWaveRelease       bool `bson:"enableWaveRelease" json:"enableWaveRelease"`
	HoldOnShortPick         bool `bson:"holdOnShortPick" json:"holdOnShortPick"`
	NotifyOnCompletion      bool `bson:"notifyOnCompletion" json:"notifyOnCompletion"`
	TrackLaborMinutes       bool `bson:"trackLaborMinutes" json:"trackLaborMinutes"`
}

// WorkOrderManagementConfiguration defines work order behavior for one pick
// strategy. At most one exists per strategy.
type WorkOrderManagementConfiguration struct {
	ID             int64          `bson:"_id"`
	PickStrategyID int64          `bson:"pickStrategyId"`
	LoadingUnits   []LoadingUnit  `bson:"loadingUnits"`
	Flags          WorkOrderFlags `bson:"flags"`
	Version        int64          `bson:"version"`
	CreatedAt      time.Time      `bson:"createdAt"`
	UpdatedAt      time.Time      `bson:"updatedAt"`
}

// NewWorkOrderManagementConfiguration creates a new WorkOrderManagementConfiguration
func NewWorkOrderManagementConfiguration(pickStrategyID int64, loadingUnits []LoadingUnit, flags WorkOrderFlags) (*WorkOrderManagementConfiguration, error) {
	if pickStrategyID <= 0 {
		return nil, ErrMissingStrategyID
	}
	for _, unit := range loadingUnits {
		if !unit.IsValid() {
			return nil, ErrInvalidLoadingUnit
		}
	}

	now := time.Now()
	return &WorkOrderManagementConfiguration{
		PickStrategyID: pickStrategyID,
		LoadingUnits:   loadingUnits,
		Flags:          flags,
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// ApplyUpsert overwrites the configuration with the new payload, preserving
// identity and bumping the version
func (c *WorkOrderManagementConfiguration) ApplyUpsert(incoming *WorkOrderManagementConfiguration) {
	c.LoadingUnits = incoming.LoadingUnits
	c.Flags = incoming.Flags
	c.Version++
	c.UpdatedAt = time.Now()
}
