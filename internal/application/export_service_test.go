package application

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportService_ExportOutbound(t *testing.T) {
	t.Run("returns an empty graph when nothing is configured", func(t *testing.T) {
		env := newTestEnv()

		export, err := env.exportSvc.ExportOutbound(context.Background())

		require.NoError(t, err)
		assert.False(t, export.ExportedAt.IsZero())
		assert.Empty(t, export.Groups)
	})

	t.Run("assembles the full graph with one-to-one children attached", func(t *testing.T) {
		env := newTestEnv()
		ctx := context.Background()
		group := env.mustCreateGroup(ctx, "EACH", "FORWARD_PICK")

		_, err := env.sequenceSvc.CreateSequence(ctx, CreateTaskSequenceCommand{
			InventoryGroupID: group.ID,
			Sequence:         []string{"OUTBOUND_PICK", "OUTBOUND_PACK"},
		})
		require.NoError(t, err)

		strategy, err := env.strategySvc.CreateStrategy(ctx, CreatePickStrategyCommand{
			InventoryGroupID: group.ID,
			TaskKind:         "PICK",
			Strategy:         "PICK_BY_TRIP",
			SortingStrategy:  "SORT_BY_LOCATION",
			LoadingStrategy:  "LOAD_BY_TRIP_SEQUENCE",
		})
		require.NoError(t, err)

		_, err = env.strategySvc.UpsertHUFormation(ctx, UpsertHUFormationCommand{
			PickStrategyID: strategy.ID,
			TripType:       "SINGLE_TRIP",
			MappingMode:    "MAP_AT_PICK",
			HUKinds:        []string{"TOTE"},
		})
		require.NoError(t, err)

		_, err = env.allocationSvc.CreateAllocation(ctx, CreateStockAllocationCommand{
			InventoryGroupID: group.ID,
			Mode:             "PICK",
			SearchScope:      "ZONE",
			BatchPreference:  "FEFO",
			Optimization:     "DISTANCE",
		})
		require.NoError(t, err)

		planning, err := env.planningSvc.CreatePlanning(ctx, CreateTaskPlanningCommand{
			InventoryGroupID: group.ID,
			ReleaseMode:      "IMMEDIATE",
			BundleSize:       10,
		})
		require.NoError(t, err)

		_, err = env.planningSvc.UpsertExecution(ctx, UpsertTaskExecutionCommand{
			TaskPlanningID:     planning.ID,
			MaxConcurrentTasks: 3,
		})
		require.NoError(t, err)

		export, err := env.exportSvc.ExportOutbound(ctx)

		require.NoError(t, err)
		require.Len(t, export.Groups, 1)
		entry := export.Groups[0]
		assert.Equal(t, group.ID, entry.Group.ID)
		assert.Len(t, entry.TaskSequences, 1)
		require.Len(t, entry.PickStrategies, 1)
		require.NotNil(t, entry.PickStrategies[0].HUFormation)
		assert.Equal(t, []string{"TOTE"}, entry.PickStrategies[0].HUFormation.HUKinds)
		assert.Nil(t, entry.PickStrategies[0].WorkOrderManagement)
		assert.Len(t, entry.Allocations, 1)
		require.Len(t, entry.TaskPlannings, 1)
		require.NotNil(t, entry.TaskPlannings[0].Execution)
		assert.Equal(t, 3, entry.TaskPlannings[0].Execution.MaxConcurrentTasks)
	})

	t.Run("includes records created by template application", func(t *testing.T) {
		env := newTestEnv()
		ctx := context.Background()

		template, err := env.templateSvc.CreateTemplate(ctx, CreateTemplateCommand{
			Name: "starter",
			Data: minimalTemplateData(),
		})
		require.NoError(t, err)
		_, err = env.templateSvc.ApplyTemplate(ctx, template.ID)
		require.NoError(t, err)

		export, err := env.exportSvc.ExportOutbound(ctx)

		require.NoError(t, err)
		require.Len(t, export.Groups, 1)
		entry := export.Groups[0]
		assert.Len(t, entry.TaskSequences, 1)
		assert.Len(t, entry.PickStrategies, 1)
		assert.Len(t, entry.Allocations, 1)
		require.Len(t, entry.TaskPlannings, 1)
		require.NotNil(t, entry.TaskPlannings[0].Execution)
		assert.Equal(t, 4, entry.TaskPlannings[0].Execution.MaxConcurrentTasks)
	})

	t.Run("pages past the first listing window", func(t *testing.T) {
		env := newTestEnv()
		ctx := context.Background()
		total := groupPageSize + 5
		for i := 0; i < total; i++ {
			env.mustCreateGroup(ctx, fmt.Sprintf("CASE_%03d", i), "RESERVE")
		}

		export, err := env.exportSvc.ExportOutbound(ctx)

		require.NoError(t, err)
		assert.Len(t, export.Groups, total)
	})

	t.Run("groups without children export with empty collections", func(t *testing.T) {
		env := newTestEnv()
		ctx := context.Background()
		env.mustCreateGroup(ctx, "EACH", "FORWARD_PICK")
		env.mustCreateGroup(ctx, "CASE", "RESERVE")

		export, err := env.exportSvc.ExportOutbound(ctx)

		require.NoError(t, err)
		require.Len(t, export.Groups, 2)
		for _, entry := range export.Groups {
			assert.Empty(t, entry.TaskSequences)
			assert.Empty(t, entry.PickStrategies)
			assert.Empty(t, entry.Allocations)
			assert.Empty(t, entry.TaskPlannings)
			assert.False(t, entry.Group.FullyAllocated)
		}
	})
}
