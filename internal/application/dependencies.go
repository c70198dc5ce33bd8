package application

import (
	"context"
	"fmt"

	"github.com/wms-platform/outbound-config-service/internal/domain"
	"github.com/wms-platform/outbound-config-service/pkg/errors"
)

// DependencyRules enforces the ownership graph between configuration
// entities: a child record may only be created when its parent exists, and a
// group counts as fully allocated once it has exactly one PICK and one PUT
// allocation strategy.
type DependencyRules struct {
	groups      InventoryGroupRepository
	strategies  PickStrategyRepository
	planning    TaskPlanningRepository
	allocations StockAllocationRepository
}

// NewDependencyRules creates a new DependencyRules
func NewDependencyRules(
	groups InventoryGroupRepository,
	strategies PickStrategyRepository,
	planning TaskPlanningRepository,
	allocations StockAllocationRepository,
) *DependencyRules {
	return &DependencyRules{
		groups:      groups,
		strategies:  strategies,
		planning:    planning,
		allocations: allocations,
	}
}

// EnsureGroupExists verifies that the inventory group exists
func (r *DependencyRules) EnsureGroupExists(ctx context.Context, groupID int64) error {
	group, err := r.groups.FindByID(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to look up inventory group: %w", err)
	}
	if group == nil {
		return errors.ErrNotFoundWithID("inventory group", fmt.Sprintf("%d", groupID))
	}
	return nil
}

// EnsureStrategyExists verifies that the pick strategy exists
func (r *DependencyRules) EnsureStrategyExists(ctx context.Context, strategyID int64) error {
	strategy, err := r.strategies.FindByID(ctx, strategyID)
	if err != nil {
		return fmt.Errorf("failed to look up pick strategy: %w", err)
	}
	if strategy == nil {
		return errors.ErrNotFoundWithID("pick strategy", fmt.Sprintf("%d", strategyID))
	}
	return nil
}

// EnsurePlanningExists verifies that the task planning configuration exists
func (r *DependencyRules) EnsurePlanningExists(ctx context.Context, planningID int64) error {
	planning, err := r.planning.FindByID(ctx, planningID)
	if err != nil {
		return fmt.Errorf("failed to look up task planning configuration: %w", err)
	}
	if planning == nil {
		return errors.ErrNotFoundWithID("task planning configuration", fmt.Sprintf("%d", planningID))
	}
	return nil
}

// EnsureModeAvailable verifies that the group has no allocation strategy for
// the given mode yet
func (r *DependencyRules) EnsureModeAvailable(ctx context.Context, groupID int64, mode domain.AllocationMode) error {
	existing, err := r.allocations.FindByGroupAndMode(ctx, groupID, mode)
	if err != nil {
		return fmt.Errorf("failed to look up allocation strategies: %w", err)
	}
	if len(existing) > 0 {
		return errors.ErrConflict(fmt.Sprintf("group %d already has a %s allocation strategy", groupID, mode))
	}
	return nil
}

// IsGroupFullyAllocated reports whether the group has exactly one PICK and
// exactly one PUT allocation strategy
func (r *DependencyRules) IsGroupFullyAllocated(ctx context.Context, groupID int64) (bool, error) {
	picks, err := r.allocations.FindByGroupAndMode(ctx, groupID, domain.AllocationModePick)
	if err != nil {
		return false, fmt.Errorf("failed to look up PICK strategies: %w", err)
	}

	puts, err := r.allocations.FindByGroupAndMode(ctx, groupID, domain.AllocationModePut)
	if err != nil {
		return false, fmt.Errorf("failed to look up PUT strategies: %w", err)
	}

	return len(picks) == 1 && len(puts) == 1, nil
}

// groupPageSize bounds a single FindAll page when scanning every group;
// callers page until exhaustion so no group escapes the scan.
const groupPageSize = 200

// listAllGroups pages through the inventory group collection until exhaustion
func listAllGroups(ctx context.Context, groups InventoryGroupRepository) ([]*domain.InventoryGroup, error) {
	var all []*domain.InventoryGroup
	for offset := 0; ; offset += groupPageSize {
		page, err := groups.FindAll(ctx, groupPageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to list inventory groups: %w", err)
		}
		all = append(all, page...)
		if len(page) < groupPageSize {
			return all, nil
		}
	}
}

// AnyGroupFullyAllocated reports whether at least one group is fully allocated
func (r *DependencyRules) AnyGroupFullyAllocated(ctx context.Context) (bool, error) {
	for offset := 0; ; offset += groupPageSize {
		groups, err := r.groups.FindAll(ctx, groupPageSize, offset)
		if err != nil {
			return false, fmt.Errorf("failed to list inventory groups: %w", err)
		}

		for _, group := range groups {
			complete, err := r.IsGroupFullyAllocated(ctx, group.ID)
			if err != nil {
				return false, err
			}
			if complete {
				return true, nil
			}
		}

		if len(groups) < groupPageSize {
			return false, nil
		}
	}
}
