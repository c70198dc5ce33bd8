package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wms-platform/outbound-config-service/pkg/errors"
)

func seedStrategy(t *testing.T, env *testEnv) *PickStrategyDTO {
	t.Helper()
	ctx := context.Background()
	group := env.mustCreateGroup(ctx, "EACH", "FORWARD_PICK")

	strategy, err := env.strategySvc.CreateStrategy(ctx, CreatePickStrategyCommand{
		InventoryGroupID: group.ID,
		TaskKind:         "PICK",
		Strategy:         "PICK_BY_TRIP",
		SortingStrategy:  "SORT_BY_LOCATION",
		LoadingStrategy:  "LOAD_BY_TRIP_SEQUENCE",
		TaskLabel:        "Each pick",
	})
	require.NoError(t, err)
	return strategy
}

func TestPickStrategyService_CreateStrategy(t *testing.T) {
	t.Run("creates strategy under an existing group", func(t *testing.T) {
		env := newTestEnv()
		strategy := seedStrategy(t, env)

		assert.Equal(t, "PICK", strategy.TaskKind)
		assert.Equal(t, "PICK_BY_TRIP", strategy.Strategy)
		assert.Equal(t, int64(1), strategy.Version)
	})

	t.Run("rejects unknown group", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.strategySvc.CreateStrategy(context.Background(), CreatePickStrategyCommand{
			InventoryGroupID: 404,
			TaskKind:         "PICK",
			Strategy:         "PICK_BY_TRIP",
			SortingStrategy:  "SORT_BY_LOCATION",
			LoadingStrategy:  "NO_LOADING",
		})

		require.Error(t, err)
		appErr, ok := errors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.CodeNotFound, appErr.Code)
	})

	t.Run("rejects invalid strategy as validation error", func(t *testing.T) {
		env := newTestEnv()
		ctx := context.Background()
		group := env.mustCreateGroup(ctx, "EACH", "FORWARD_PICK")

		_, err := env.strategySvc.CreateStrategy(ctx, CreatePickStrategyCommand{
			InventoryGroupID: group.ID,
			TaskKind:         "PICK",
			Strategy:         "PICK_BY_MOOD",
			SortingStrategy:  "SORT_BY_LOCATION",
			LoadingStrategy:  "NO_LOADING",
		})

		require.Error(t, err)
		appErr, ok := errors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.CodeValidationError, appErr.Code)
	})
}

func TestPickStrategyService_UpdateStrategy(t *testing.T) {
	t.Run("updates settings but keeps the task kind", func(t *testing.T) {
		env := newTestEnv()
		strategy := seedStrategy(t, env)
		ctx := context.Background()

		updated, err := env.strategySvc.UpdateStrategy(ctx, UpdatePickStrategyCommand{
			ID:              strategy.ID,
			Strategy:        "BATCH_PICK",
			SortingStrategy: "SORT_BY_SKU",
			LoadingStrategy: "NO_LOADING",
			Version:         strategy.Version,
		})

		require.NoError(t, err)
		assert.Equal(t, "PICK", updated.TaskKind)
		assert.Equal(t, "BATCH_PICK", updated.Strategy)
		assert.Equal(t, strategy.Version+1, updated.Version)
	})
}

func TestPickStrategyService_UpsertHUFormation(t *testing.T) {
	t.Run("second upsert replaces the first record", func(t *testing.T) {
		env := newTestEnv()
		strategy := seedStrategy(t, env)
		ctx := context.Background()

		first, err := env.strategySvc.UpsertHUFormation(ctx, UpsertHUFormationCommand{
			PickStrategyID: strategy.ID,
			TripType:       "SINGLE_TRIP",
			MappingMode:    "MAP_AT_PICK",
			HUKinds:        []string{"TOTE"},
			MaxHUQuantity:  50,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), first.Version)

		second, err := env.strategySvc.UpsertHUFormation(ctx, UpsertHUFormationCommand{
			PickStrategyID: strategy.ID,
			TripType:       "MULTI_TRIP",
			MappingMode:    "MAP_AT_PACK",
			HUKinds:        []string{"PALLET", "CARTON"},
			MaxHUQuantity:  200,
		})
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID, "upsert must not create a second record")
		assert.Equal(t, int64(2), second.Version)
		assert.Equal(t, "MULTI_TRIP", second.TripType)
		assert.Equal(t, []string{"PALLET", "CARTON"}, second.HUKinds)

		count, err := env.huFormations.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("rejects unknown strategy", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.strategySvc.UpsertHUFormation(context.Background(), UpsertHUFormationCommand{
			PickStrategyID: 404,
			TripType:       "SINGLE_TRIP",
			MappingMode:    "MAP_AT_PICK",
			HUKinds:        []string{"TOTE"},
		})

		require.Error(t, err)
		appErr, ok := errors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.CodeNotFound, appErr.Code)
	})

	t.Run("rejects empty HU kinds as validation error", func(t *testing.T) {
		env := newTestEnv()
		strategy := seedStrategy(t, env)

		_, err := env.strategySvc.UpsertHUFormation(context.Background(), UpsertHUFormationCommand{
			PickStrategyID: strategy.ID,
			TripType:       "SINGLE_TRIP",
			MappingMode:    "MAP_AT_PICK",
		})

		require.Error(t, err)
		appErr, ok := errors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.CodeValidationError, appErr.Code)
	})
}

func TestPickStrategyService_UpsertWorkOrderManagement(t *testing.T) {
	t.Run("second upsert replaces the first record", func(t *testing.T) {
		env := newTestEnv()
		strategy := seedStrategy(t, env)
		ctx := context.Background()

		first, err := env.strategySvc.UpsertWorkOrderManagement(ctx, UpsertWorkOrderManagementCommand{
			PickStrategyID: strategy.ID,
			LoadingUnits:   []string{"TROLLEY"},
			Flags:          WorkOrderFlagsDTO{AutoCreateWorkOrders: true},
		})
		require.NoError(t, err)

		second, err := env.strategySvc.UpsertWorkOrderManagement(ctx, UpsertWorkOrderManagementCommand{
			PickStrategyID: strategy.ID,
			LoadingUnits:   []string{"PALLET", "CARTON"},
			Flags:          WorkOrderFlagsDTO{EnableWaveRelease: true},
		})
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, int64(2), second.Version)
		assert.Equal(t, []string{"PALLET", "CARTON"}, second.LoadingUnits)
		assert.True(t, second.Flags.EnableWaveRelease)
		assert.False(t, second.Flags.AutoCreateWorkOrders, "upsert overwrites the whole flag set")
	})
}

func TestPickStrategyService_DeleteStrategy(t *testing.T) {
	t.Run("removes HU formation and work order children", func(t *testing.T) {
		env := newTestEnv()
		strategy := seedStrategy(t, env)
		ctx := context.Background()

		_, err := env.strategySvc.UpsertHUFormation(ctx, UpsertHUFormationCommand{
			PickStrategyID: strategy.ID,
			TripType:       "SINGLE_TRIP",
			MappingMode:    "MAP_AT_PICK",
			HUKinds:        []string{"TOTE"},
		})
		require.NoError(t, err)

		_, err = env.strategySvc.UpsertWorkOrderManagement(ctx, UpsertWorkOrderManagementCommand{
			PickStrategyID: strategy.ID,
			LoadingUnits:   []string{"TROLLEY"},
		})
		require.NoError(t, err)

		require.NoError(t, env.strategySvc.DeleteStrategy(ctx, strategy.ID))

		assert.Empty(t, env.strategies.cfgs)
		assert.Empty(t, env.huFormations.cfgs)
		assert.Empty(t, env.workOrders.cfgs)
	})
}
