package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wms-platform/outbound-config-service/internal/domain"
	apperrors "github.com/wms-platform/outbound-config-service/pkg/errors"
)

func minimalTemplateData() domain.TemplateData {
	return domain.TemplateData{
		Groups: []domain.GroupSpec{
			{
				Description:         "Each picking",
				StorageInstruction:  "EACH",
				LocationInstruction: "FORWARD_PICK",
				Storage:             domain.StorageIdentifiers{UOM: "EACH", Bucket: "GOOD"},
			},
		},
		TaskSequences: []domain.TaskSequenceSpec{
			{GroupIndex: 0, Sequence: []domain.TaskSequenceToken{domain.TokenOutboundPick, domain.TokenOutboundPack}},
		},
		PickStrategies: []domain.PickStrategySpec{
			{
				GroupIndex: 0,
				TaskKind:   domain.TaskKindPick,
				Strategy:   domain.PickByTrip,
				Sorting:    domain.SortByLocation,
				Loading:    domain.NoLoading,
			},
		},
		Allocations: []domain.AllocationSpec{
			{
				GroupIndex:      0,
				Mode:            domain.AllocationModePick,
				SearchScope:     domain.ScopeZone,
				BatchPreference: domain.BatchFEFO,
				Optimization:    domain.OptimizeTouchPoints,
			},
		},
		TaskPlanning: []domain.TaskPlanningSpec{
			{
				GroupIndex:  0,
				ReleaseMode: domain.ReleaseImmediate,
				BundleSize:  10,
				Execution:   &domain.ExecutionSpec{MaxConcurrentTasks: 4},
			},
		},
	}
}

func TestTemplateService_CreateTemplate(t *testing.T) {
	t.Run("creates template with valid data", func(t *testing.T) {
		env := newTestEnv()

		dto, err := env.templateSvc.CreateTemplate(context.Background(), CreateTemplateCommand{
			Name: "starter",
			Data: minimalTemplateData(),
		})

		require.NoError(t, err)
		assert.Equal(t, "starter", dto.Name)
		assert.Len(t, dto.Data.Groups, 1)
	})

	t.Run("rejects dangling group index", func(t *testing.T) {
		env := newTestEnv()
		data := minimalTemplateData()
		data.Allocations[0].GroupIndex = 7

		_, err := env.templateSvc.CreateTemplate(context.Background(), CreateTemplateCommand{
			Name: "broken",
			Data: data,
		})

		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeValidationError, appErr.Code)
	})
}

func TestTemplateService_ApplyTemplate(t *testing.T) {
	t.Run("creates the whole bundle and reports counts", func(t *testing.T) {
		env := newTestEnv()
		ctx := context.Background()

		template, err := env.templateSvc.CreateTemplate(ctx, CreateTemplateCommand{
			Name: "starter",
			Data: minimalTemplateData(),
		})
		require.NoError(t, err)

		summary, err := env.templateSvc.ApplyTemplate(ctx, template.ID)

		require.NoError(t, err)
		assert.Equal(t, "starter", summary.TemplateName)
		assert.Equal(t, 1, summary.InventoryGroups)
		assert.Equal(t, 1, summary.TaskSequences)
		assert.Equal(t, 1, summary.PickStrategies)
		assert.Equal(t, 1, summary.StockAllocations)
		assert.Equal(t, 1, summary.TaskPlannings)
		assert.Equal(t, 1, summary.TaskExecutions)

		assert.Len(t, env.groups.groups, 1)
		assert.Len(t, env.executions.cfgs, 1)
	})

	t.Run("conflicts with existing identifiers and creates nothing", func(t *testing.T) {
		env := newTestEnv()
		ctx := context.Background()
		env.mustCreateGroup(ctx, "EACH", "FORWARD_PICK")

		template, err := env.templateSvc.CreateTemplate(ctx, CreateTemplateCommand{
			Name: "starter",
			Data: minimalTemplateData(),
		})
		require.NoError(t, err)

		_, err = env.templateSvc.ApplyTemplate(ctx, template.ID)

		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeConflict, appErr.Code)

		assert.Len(t, env.groups.groups, 1, "only the pre-existing group remains")
		assert.Empty(t, env.sequences.cfgs)
		assert.Empty(t, env.strategies.cfgs)
	})

	t.Run("compensates everything created before a failure", func(t *testing.T) {
		env := newTestEnv()
		ctx := context.Background()

		template, err := env.templateSvc.CreateTemplate(ctx, CreateTemplateCommand{
			Name: "starter",
			Data: minimalTemplateData(),
		})
		require.NoError(t, err)

		// Groups, sequences and strategies save fine; allocation save fails.
		env.allocations.saveErr = errors.New("write timeout")

		_, err = env.templateSvc.ApplyTemplate(ctx, template.ID)

		require.Error(t, err)
		assert.Empty(t, env.groups.groups, "created groups must be rolled back")
		assert.Empty(t, env.sequences.cfgs)
		assert.Empty(t, env.strategies.cfgs)
		assert.Empty(t, env.allocations.cfgs)
		assert.Empty(t, env.planning.cfgs)
	})

	t.Run("returns not found for unknown template", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.templateSvc.ApplyTemplate(context.Background(), 404)

		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
	})
}

func TestTemplateService_QuickSetup(t *testing.T) {
	t.Run("creates the starter bundle", func(t *testing.T) {
		env := newTestEnv()

		summary, err := env.templateSvc.QuickSetup(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "quick-setup", summary.TemplateName)
		assert.Equal(t, 3, summary.InventoryGroups)
		assert.Equal(t, 1, summary.TaskSequences)
		assert.Equal(t, 2, summary.PickStrategies)
		assert.Equal(t, 1, summary.HUFormations)
		assert.Equal(t, 1, summary.WorkOrderManagements)
		assert.Equal(t, 6, summary.StockAllocations)
	})

	t.Run("leaves every group fully allocated", func(t *testing.T) {
		env := newTestEnv()
		ctx := context.Background()

		_, err := env.templateSvc.QuickSetup(ctx)
		require.NoError(t, err)

		groups, err := env.groupSvc.ListGroups(ctx, ListQuery{})
		require.NoError(t, err)
		require.Len(t, groups, 3)
		for _, group := range groups {
			assert.True(t, group.FullyAllocated, "group %d should have PICK and PUT", group.ID)
		}
	})

	t.Run("conflicts when applied twice", func(t *testing.T) {
		env := newTestEnv()
		ctx := context.Background()

		_, err := env.templateSvc.QuickSetup(ctx)
		require.NoError(t, err)

		_, err = env.templateSvc.QuickSetup(ctx)
		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeConflict, appErr.Code)
	})
}
