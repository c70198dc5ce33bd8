package domain

import (
	"errors"
	"time"
)

// Task planning errors
var (
	ErrMissingPlanningID  = errors.New("task planning id is required")
	ErrInvalidReleaseMode = errors.New("invalid release mode")
	ErrInvalidBundleSize  = errors.New("bundle size must be positive")
	ErrInvalidMaxTasks    = errors.New("max concurrent tasks must be positive")
)

// ReleaseMode determines when planned tasks are released to the floor
type ReleaseMode string

const (
	ReleaseImmediate ReleaseMode = "IMMEDIATE"
	ReleaseScheduled ReleaseMode = "SCHEDULED"
	ReleaseManual    ReleaseMode = "MANUAL"
)

// IsValid checks if the release mode is valid
func (m ReleaseMode) IsValid() bool {
	switch m {
	case ReleaseImmediate, ReleaseScheduled, ReleaseManual:
		return true
	default:
		return false
	}
}

// TaskPlanningConfiguration defines how outbound tasks are planned and
// bundled for one inventory group.
type TaskPlanningConfiguration struct {
	ID               int64       `bson:"_id"`
	InventoryGroupID int64       `bson:"inventoryGroupId"`
	ReleaseMode      ReleaseMode `bson:"releaseMode"`
	BundleSize       int         `bson:"bundleSize"`
	PlanningHorizon  int         `bson:"planningHorizonMinutes"`
	AllowPreemption  bool        `bson:"allowPreemption"`
	Version          int64       `bson:"version"`
	CreatedAt        time.Time   `bson:"createdAt"`
	UpdatedAt        time.Time   `bson:"updatedAt"`
}

// NewTaskPlanningConfiguration creates a new TaskPlanningConfiguration
func NewTaskPlanningConfiguration(inventoryGroupID int64, releaseMode ReleaseMode, bundleSize, planningHorizon int, allowPreemption bool) (*TaskPlanningConfiguration, error) {
	if inventoryGroupID <= 0 {
		return nil, ErrMissingGroupID
	}
	if !releaseMode.IsValid() {
		return nil, ErrInvalidReleaseMode
	}
	if bundleSize <= 0 {
		return nil, ErrInvalidBundleSize
	}

	now := time.Now()
	return &TaskPlanningConfiguration{
		InventoryGroupID: inventoryGroupID,
		ReleaseMode:      releaseMode,
		BundleSize:       bundleSize,
		PlanningHorizon:  planningHorizon,
		AllowPreemption:  allowPreemption,
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// Update applies new planning settings and bumps the version
func (c *TaskPlanningConfiguration) Update(releaseMode ReleaseMode, bundleSize, planningHorizon int, allowPreemption bool) error {
	if !releaseMode.IsValid() {
		return ErrInvalidReleaseMode
	}
	if bundleSize <= 0 {
		return ErrInvalidBundleSize
	}

	c.ReleaseMode = releaseMode
	c.BundleSize = bundleSize
	c.PlanningHorizon = planningHorizon
	c.AllowPreemption = allowPreemption
	c.Version++
	c.UpdatedAt = time.Now()
	return nil
}

// TaskExecutionConfiguration defines runtime execution settings for one task
// planning configuration. At most one exists per planning configuration.
type TaskExecutionConfiguration struct {
	ID                 int64     `bson:"_id"`
	TaskPlanningID     int64     `bson:"taskPlanningId"`
	MaxConcurrentTasks int       `bson:"maxConcurrentTasks"`
	ScanConfirmation   bool      `bson:"scanConfirmation"`
	AllowSkip          bool      `bson:"allowSkip"`
	AllowShortPick     bool      `bson:"allowShortPick"`
	Version            int64     `bson:"version"`
	CreatedAt          time.Time `bson:"createdAt"`
	UpdatedAt          time.Time `bson:"updatedAt"`
}

// NewTaskExecutionConfiguration creates a new TaskExecutionConfiguration
func NewTaskExecutionConfiguration(taskPlanningID int64, maxConcurrentTasks int, scanConfirmation, allowSkip, allowShortPick bool) (*TaskExecutionConfiguration, error) {
	if taskPlanningID <= 0 {
		return nil, ErrMissingPlanningID
	}
	if maxConcurrentTasks <= 0 {
		return nil, ErrInvalidMaxTasks
	}

	now := time.Now()
	return &TaskExecutionConfiguration{
		TaskPlanningID:     taskPlanningID,
		MaxConcurrentTasks: maxConcurrentTasks,
		ScanConfirmation:   scanConfirmation,
		AllowSkip:          allowSkip,
		AllowShortPick:     allowShortPick,
		Version:            1,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// ApplyUpsert overwrites the configuration with the new payload, preserving
// identity and bumping the version
func (c *TaskExecutionConfiguration) ApplyUpsert(incoming *TaskExecutionConfiguration) {
	c.MaxConcurrentTasks = incoming.MaxConcurrentTasks
	c.ScanConfirmation = incoming.ScanConfirmation
	c.AllowSkip = incoming.AllowSkip
	c.AllowShortPick = incoming.AllowShortPick
	c.Version++
	c.UpdatedAt = time.Now()
}
