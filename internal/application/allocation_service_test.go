package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wms-platform/outbound-config-service/pkg/errors"
)

func TestStockAllocationService_CreateAllocation(t *testing.T) {
	t.Run("creates PICK and PUT strategies for the same group", func(t *testing.T) {
		env := newTestEnv()
		ctx := context.Background()
		group := env.mustCreateGroup(ctx, "EACH", "FORWARD_PICK")

		pick, err := env.allocationSvc.CreateAllocation(ctx, CreateStockAllocationCommand{
			InventoryGroupID:   group.ID,
			Mode:               "PICK",
			SearchScope:        "ZONE",
			BatchPreference:    "FEFO",
			Optimization:       "TOUCH_POINTS",
			StatePreferenceSeq: []string{"PURE", "SKU_PURE"},
		})
		require.NoError(t, err)
		assert.Equal(t, "PICK", pick.Mode)
		assert.Equal(t, []string{"PURE", "SKU_PURE"}, pick.StatePreferenceSeq)

		put, err := env.allocationSvc.CreateAllocation(ctx, CreateStockAllocationCommand{
			InventoryGroupID: group.ID,
			Mode:             "PUT",
			SearchScope:      "ZONE",
			BatchPreference:  "NONE",
			Optimization:     "DISTANCE",
		})
		require.NoError(t, err)
		assert.Equal(t, "PUT", put.Mode)
	})

	t.Run("rejects a second strategy for the same mode", func(t *testing.T) {
		env := newTestEnv()
		ctx := context.Background()
		group := env.mustCreateGroup(ctx, "EACH", "FORWARD_PICK")

		cmd := CreateStockAllocationCommand{
			InventoryGroupID: group.ID,
			Mode:             "PICK",
			SearchScope:      "BIN",
			BatchPreference:  "FIFO",
			Optimization:     "QUANTITY",
		}
		_, err := env.allocationSvc.CreateAllocation(ctx, cmd)
		require.NoError(t, err)

		_, err = env.allocationSvc.CreateAllocation(ctx, cmd)
		require.Error(t, err)
		appErr, ok := errors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.CodeConflict, appErr.Code)
	})

	t.Run("rejects unknown group", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.allocationSvc.CreateAllocation(context.Background(), CreateStockAllocationCommand{
			InventoryGroupID: 404,
			Mode:             "PICK",
			SearchScope:      "ZONE",
			BatchPreference:  "FEFO",
			Optimization:     "DISTANCE",
		})

		require.Error(t, err)
		appErr, ok := errors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.CodeNotFound, appErr.Code)
	})

	t.Run("rejects invalid search scope as validation error", func(t *testing.T) {
		env := newTestEnv()
		ctx := context.Background()
		group := env.mustCreateGroup(ctx, "EACH", "FORWARD_PICK")

		_, err := env.allocationSvc.CreateAllocation(ctx, CreateStockAllocationCommand{
			InventoryGroupID: group.ID,
			Mode:             "PICK",
			SearchScope:      "AISLE",
			BatchPreference:  "FEFO",
			Optimization:     "DISTANCE",
		})

		require.Error(t, err)
		appErr, ok := errors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.CodeValidationError, appErr.Code)
	})
}

func TestStockAllocationService_UpdateAllocation(t *testing.T) {
	t.Run("updates settings without changing the mode", func(t *testing.T) {
		env := newTestEnv()
		ctx := context.Background()
		group := env.mustCreateGroup(ctx, "EACH", "FORWARD_PICK")

		created, err := env.allocationSvc.CreateAllocation(ctx, CreateStockAllocationCommand{
			InventoryGroupID: group.ID,
			Mode:             "PICK",
			SearchScope:      "ZONE",
			BatchPreference:  "FEFO",
			Optimization:     "TOUCH_POINTS",
		})
		require.NoError(t, err)

		updated, err := env.allocationSvc.UpdateAllocation(ctx, UpdateStockAllocationCommand{
			ID:              created.ID,
			SearchScope:     "WAREHOUSE",
			BatchPreference: "FIFO",
			Optimization:    "DISTANCE",
			Priority:        5,
			Version:         created.Version,
		})

		require.NoError(t, err)
		assert.Equal(t, "PICK", updated.Mode)
		assert.Equal(t, "WAREHOUSE", updated.SearchScope)
		assert.Equal(t, 5, updated.Priority)
		assert.Equal(t, created.Version+1, updated.Version)
	})

	t.Run("rejects stale version with conflict", func(t *testing.T) {
		env := newTestEnv()
		ctx := context.Background()
		group := env.mustCreateGroup(ctx, "EACH", "FORWARD_PICK")

		created, err := env.allocationSvc.CreateAllocation(ctx, CreateStockAllocationCommand{
			InventoryGroupID: group.ID,
			Mode:             "PUT",
			SearchScope:      "ZONE",
			BatchPreference:  "NONE",
			Optimization:     "DISTANCE",
		})
		require.NoError(t, err)

		_, err = env.allocationSvc.UpdateAllocation(ctx, UpdateStockAllocationCommand{
			ID:              created.ID,
			SearchScope:     "BIN",
			BatchPreference: "NONE",
			Optimization:    "DISTANCE",
			Version:         created.Version + 3,
		})

		require.Error(t, err)
		appErr, ok := errors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.CodeVersionMismatch, appErr.Code)
	})
}

func TestStockAllocationService_DeleteAllocation(t *testing.T) {
	t.Run("frees the mode for a replacement strategy", func(t *testing.T) {
		env := newTestEnv()
		ctx := context.Background()
		group := env.mustCreateGroup(ctx, "EACH", "FORWARD_PICK")

		cmd := CreateStockAllocationCommand{
			InventoryGroupID: group.ID,
			Mode:             "PICK",
			SearchScope:      "ZONE",
			BatchPreference:  "FEFO",
			Optimization:     "TOUCH_POINTS",
		}
		created, err := env.allocationSvc.CreateAllocation(ctx, cmd)
		require.NoError(t, err)

		require.NoError(t, env.allocationSvc.DeleteAllocation(ctx, created.ID))

		_, err = env.allocationSvc.CreateAllocation(ctx, cmd)
		require.NoError(t, err)
	})
}
