package domain

import (
	"errors"
	"time"
)

// HU formation errors
var (
	ErrMissingStrategyID  = errors.New("pick strategy id is required")
	ErrInvalidTripType    = errors.New("invalid trip type")
	ErrInvalidMappingMode = errors.New("invalid mapping mode")
	ErrInvalidHUKind      = errors.New("invalid HU kind")
	ErrEmptyHUKinds       = errors.New("at least one HU kind is required")
	ErrNegativeThreshold  = errors.New("thresholds must not be negative")
)

// TripType distinguishes single-trip from multi-trip HU formation
type TripType string

const (
	SingleTrip TripType = "SINGLE_TRIP"
	MultiTrip  TripType = "MULTI_TRIP"
)

// IsValid checks if the trip type is valid
func (t TripType) IsValid() bool {
	return t == SingleTrip || t == MultiTrip
}

// MappingMode determines when items are mapped to handling units
type MappingMode string

const (
	MapAtPick MappingMode = "MAP_AT_PICK"
	MapAtPack MappingMode = "MAP_AT_PACK"
	Deferred  MappingMode = "DEFERRED"
)

// IsValid checks if the mapping mode is valid
func (m MappingMode) IsValid() bool {
	switch m {
	case MapAtPick, MapAtPack, Deferred:
		return true
	default:
		return false
	}
}

// HUKind identifies a handling unit container kind
type HUKind string

const (
	HUKindPallet HUKind = "PALLET"
	HUKindCarton HUKind = "CARTON"
	HUKindTote   HUKind = "TOTE"
	HUKindBag    HUKind = "BAG"
)

// IsValid checks if the HU kind is valid
func (k HUKind) IsValid() bool {
	switch k {
	case HUKindPallet, HUKindCarton, HUKindTote, HUKindBag:
		return true
	default:
		return false
	}
}

// HUFormationFlags are the operational toggles for handling unit formation
type HUFormationFlags struct {
	AutoCloseHU           bool `bson:"autoCloseHU" json:"autoCloseHU"`
	AllowPartialHU        bool `bson:"allowPartialHU" json:"allowPartialHU"`
	AllowMixedSKU         bool `bson:"allowMixedSKU" json:"allowMixedSKU"`
	AllowMixedBatch       bool `bson:"allowMixedBatch" json:"allowMixedBatch"`
	AllowMixedOrder       bool `bson:"allowMixedOrder" json:"allowMixedOrder"`
	RequireWeightCapture  bool `bson:"requireWeightCapture" json:"requireWeightCapture"`
	RequireDimensionCheck bool `bson:"requireDimensionCheck" json:"requireDimensionCheck"`
	RequireQCScan         bool `bson:"requireQCScan" json:"requireQCScan"`
	PrintLabelOnClose     bool `bson:"printLabelOnClose" json:"printLabelOnClose"`
	PrintManifestOnClose  bool `bson:"printManifestOnClose" json:"printManifestOnClose"`
	ReuseEmptyHU          bool `bson:"reuseEmptyHU" json:"reuseEmptyHU"`
	StageOnClose          bool `bson:"stageOnClose" json:"stageOnClose"`
	BlockOnQCMismatch     bool `bson:"blockOnQCMismatch" json:"blockOnQCMismatch"`
	AllowOverpack         bool `bson:"allowOverpack" json:"allowOverpack"`
	TrackSerialNumbers    bool `bson:"trackSerialNumbers" json:"trackSerialNumbers"`
}

// HUFormationConfiguration defines handling unit formation rules for one
// pick strategy. At most one exists per strategy.
type HUFormationConfiguration struct {
	ID                  int64            `bson:"_id"`
	PickStrategyID      int64            `bson:"pickStrategyId"`
	TripType            TripType         `bson:"tripType"`
	MappingMode         MappingMode      `bson:"mappingMode"`
	HUKinds             []HUKind         `bson:"huKinds"`
	MaxHUQuantity       int              `bson:"maxHUQuantity"`
	MaxHUWeight         float64          `bson:"maxHUWeight"`
	QCMismatchThreshold int              `bson:"qcMismatchThreshold"`
	Flags               HUFormationFlags `bson:"flags"`
	Version             int64            `bson:"version"`
	CreatedAt           time.Time        `bson:"createdAt"`
	UpdatedAt           time.Time        `bson:"updatedAt"`
}

// NewHUFormationConfiguration creates a new HUFormationConfiguration
func NewHUFormationConfiguration(
	pickStrategyID int64,
	tripType TripType,
	mappingMode MappingMode,
	huKinds []HUKind,
	maxHUQuantity int,
	maxHUWeight float64,
	qcMismatchThreshold int,
	flags HUFormationFlags,
) (*HUFormationConfiguration, error) {
	if pickStrategyID <= 0 {
		return nil, ErrMissingStrategyID
	}
	if !tripType.IsValid() {
		return nil, ErrInvalidTripType
	}
	if !mappingMode.IsValid() {
		return nil, ErrInvalidMappingMode
	}
	if len(huKinds) == 0 {
		return nil, ErrEmptyHUKinds
	}
	for _, kind := range huKinds {
		if !kind.IsValid() {
			return nil, ErrInvalidHUKind
		}
	}
	if maxHUQuantity < 0 || maxHUWeight < 0 || qcMismatchThreshold < 0 {
		return nil, ErrNegativeThreshold
	}

	now := time.Now()
	return &HUFormationConfiguration{
		PickStrategyID:      pickStrategyID,
		TripType:            tripType,
		MappingMode:         mappingMode,
		HUKinds:             huKinds,
		MaxHUQuantity:       maxHUQuantity,
		MaxHUWeight:         maxHUWeight,
		QCMismatchThreshold: qcMismatchThreshold,
		Flags:               flags,
		Version:             1,
		CreatedAt:           now,
		UpdatedAt:           now,
	}, nil
}

// ApplyUpsert overwrites the configuration with the new payload, preserving
// identity and bumping the version
func (c *HUFormationConfiguration) ApplyUpsert(incoming *HUFormationConfiguration) {
	c.TripType = incoming.TripType
	c.MappingMode = incoming.MappingMode
	c.HUKinds = incoming.HUKinds
	c.MaxHUQuantity = incoming.MaxHUQuantity
	c.MaxHUWeight = incoming.MaxHUWeight
	c.QCMismatchThreshold = incoming.QCMismatchThreshold
	c.Flags = incoming.Flags
	c.Version++
	c.UpdatedAt = time.Now()
}
