package application

import (
	"context"
	"errors"

	"github.com/wms-platform/outbound-config-service/internal/domain"
	"github.com/wms-platform/outbound-config-service/pkg/cloudevents"
)

// Persistence sentinel errors returned by repository implementations
var (
	ErrVersionConflict = errors.New("record was modified concurrently")
	ErrDuplicateKey    = errors.New("record with this key already exists")
)

// EventPublisher publishes CloudEvents to a topic. A nil publisher disables
// event publication.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event *cloudevents.WMSCloudEvent) error
}

// InventoryGroupRepository interface for inventory group persistence
type InventoryGroupRepository interface {
	Save(ctx context.Context, group *domain.InventoryGroup) error
	FindByID(ctx context.Context, id int64) (*domain.InventoryGroup, error)
	FindByIdentifiers(ctx context.Context, storageInstruction, locationInstruction string) (*domain.InventoryGroup, error)
	FindAll(ctx context.Context, limit, offset int) ([]*domain.InventoryGroup, error)
	Update(ctx context.Context, group *domain.InventoryGroup, expectedVersion int64) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// TaskSequenceRepository interface for task sequence persistence
type TaskSequenceRepository interface {
	Save(ctx context.Context, cfg *domain.TaskSequenceConfiguration) error
	FindByID(ctx context.Context, id int64) (*domain.TaskSequenceConfiguration, error)
	FindByGroupID(ctx context.Context, groupID int64) ([]*domain.TaskSequenceConfiguration, error)
	FindAll(ctx context.Context, limit, offset int) ([]*domain.TaskSequenceConfiguration, error)
	Update(ctx context.Context, cfg *domain.TaskSequenceConfiguration, expectedVersion int64) error
	Delete(ctx context.Context, id int64) error
	DeleteByGroupID(ctx context.Context, groupID int64) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// PickStrategyRepository interface for pick strategy persistence
type PickStrategyRepository interface {
	Save(ctx context.Context, cfg *domain.PickStrategyConfiguration) error
	FindByID(ctx context.Context, id int64) (*domain.PickStrategyConfiguration, error)
	FindByGroupID(ctx context.Context, groupID int64) ([]*domain.PickStrategyConfiguration, error)
	FindAll(ctx context.Context, limit, offset int) ([]*domain.PickStrategyConfiguration, error)
	Update(ctx context.Context, cfg *domain.PickStrategyConfiguration, expectedVersion int64) error
	Delete(ctx context.Context, id int64) error
	DeleteByGroupID(ctx context.Context, groupID int64) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// HUFormationRepository interface for HU formation persistence
type HUFormationRepository interface {
	Save(ctx context.Context, cfg *domain.HUFormationConfiguration) error
	FindByID(ctx context.Context, id int64) (*domain.HUFormationConfiguration, error)
	FindByStrategyID(ctx context.Context, strategyID int64) (*domain.HUFormationConfiguration, error)
	FindAll(ctx context.Context, limit, offset int) ([]*domain.HUFormationConfiguration, error)
	Update(ctx context.Context, cfg *domain.HUFormationConfiguration, expectedVersion int64) error
	Delete(ctx context.Context, id int64) error
	DeleteByStrategyID(ctx context.Context, strategyID int64) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// WorkOrderManagementRepository interface for work order management persistence
type WorkOrderManagementRepository interface {
	Save(ctx context.Context, cfg *domain.WorkOrderManagementConfiguration) error
	FindByID(ctx context.Context, id int64) (*domain.WorkOrderManagementConfiguration, error)
	FindByStrategyID(ctx context.Context, strategyID int64) (*domain.WorkOrderManagementConfiguration, error)
	FindAll(ctx context.Context, limit, offset int) ([]*domain.WorkOrderManagementConfiguration, error)
	Update(ctx context.Context, cfg *domain.WorkOrderManagementConfiguration, expectedVersion int64) error
	Delete(ctx context.Context, id int64) error
	DeleteByStrategyID(ctx context.Context, strategyID int64) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// StockAllocationRepository interface for stock allocation persistence
type StockAllocationRepository interface {
	Save(ctx context.Context, strategy *domain.StockAllocationStrategy) error
	FindByID(ctx context.Context, id int64) (*domain.StockAllocationStrategy, error)
	FindByGroupID(ctx context.Context, groupID int64) ([]*domain.StockAllocationStrategy, error)
	FindByGroupAndMode(ctx context.Context, groupID int64, mode domain.AllocationMode) ([]*domain.StockAllocationStrategy, error)
	FindAll(ctx context.Context, limit, offset int) ([]*domain.StockAllocationStrategy, error)
	Update(ctx context.Context, strategy *domain.StockAllocationStrategy, expectedVersion int64) error
	Delete(ctx context.Context, id int64) error
	DeleteByGroupID(ctx context.Context, groupID int64) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// TaskPlanningRepository interface for task planning persistence
type TaskPlanningRepository interface {
	Save(ctx context.Context, cfg *domain.TaskPlanningConfiguration) error
	FindByID(ctx context.Context, id int64) (*domain.TaskPlanningConfiguration, error)
	FindByGroupID(ctx context.Context, groupID int64) ([]*domain.TaskPlanningConfiguration, error)
	FindAll(ctx context.Context, limit, offset int) ([]*domain.TaskPlanningConfiguration, error)
	Update(ctx context.Context, cfg *domain.TaskPlanningConfiguration, expectedVersion int64) error
	Delete(ctx context.Context, id int64) error
	DeleteByGroupID(ctx context.Context, groupID int64) (int64, error)
}

// TaskExecutionRepository interface for task execution persistence
type TaskExecutionRepository interface {
	Save(ctx context.Context, cfg *domain.TaskExecutionConfiguration) error
	FindByID(ctx context.Context, id int64) (*domain.TaskExecutionConfiguration, error)
	FindByPlanningID(ctx context.Context, planningID int64) (*domain.TaskExecutionConfiguration, error)
	Update(ctx context.Context, cfg *domain.TaskExecutionConfiguration, expectedVersion int64) error
	Delete(ctx context.Context, id int64) error
	DeleteByPlanningID(ctx context.Context, planningID int64) (int64, error)
}

// TemplateRepository interface for template persistence
type TemplateRepository interface {
	Save(ctx context.Context, template *domain.Template) error
	FindByID(ctx context.Context, id int64) (*domain.Template, error)
	FindAll(ctx context.Context, limit, offset int) ([]*domain.Template, error)
	Delete(ctx context.Context, id int64) error
}
