package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/wms-platform/outbound-config-service/internal/application"
	"github.com/wms-platform/outbound-config-service/pkg/errors"
	"github.com/wms-platform/outbound-config-service/pkg/logging"
	"github.com/wms-platform/outbound-config-service/pkg/middleware"
)

type mockStrategyService struct {
	createStrategyFn  func(ctx context.Context, cmd application.CreatePickStrategyCommand) (*application.PickStrategyDTO, error)
	getStrategyFn     func(ctx context.Context, id int64) (*application.PickStrategyDTO, error)
	listStrategiesFn  func(ctx context.Context, query application.ListQuery) ([]application.PickStrategyDTO, error)
	listByGroupFn     func(ctx context.Context, groupID int64) ([]application.PickStrategyDTO, error)
	updateStrategyFn  func(ctx context.Context, cmd application.UpdatePickStrategyCommand) (*application.PickStrategyDTO, error)
	deleteStrategyFn  func(ctx context.Context, id int64) error
	upsertHUFn        func(ctx context.Context, cmd application.UpsertHUFormationCommand) (*application.HUFormationDTO, error)
	getHUFn           func(ctx context.Context, strategyID int64) (*application.HUFormationDTO, error)
	upsertWorkOrderFn func(ctx context.Context, cmd application.UpsertWorkOrderManagementCommand) (*application.WorkOrderManagementDTO, error)
	getWorkOrderFn    func(ctx context.Context, strategyID int64) (*application.WorkOrderManagementDTO, error)
}

func (m *mockStrategyService) CreateStrategy(ctx context.Context, cmd application.CreatePickStrategyCommand) (*application.PickStrategyDTO, error) {
	if m.createStrategyFn == nil {
		panic("CreateStrategy not implemented")
	}
	return m.createStrategyFn(ctx, cmd)
}

func (m *mockStrategyService) GetStrategy(ctx context.Context, id int64) (*application.PickStrategyDTO, error) {
	if m.getStrategyFn == nil {
		panic("GetStrategy not implemented")
	}
	return m.getStrategyFn(ctx, id)
}

func (m *mockStrategyService) ListStrategies(ctx context.Context, query application.ListQuery) ([]application.PickStrategyDTO, error) {
	if m.listStrategiesFn == nil {
		panic("ListStrategies not implemented")
	}
	return m.listStrategiesFn(ctx, query)
}

func (m *mockStrategyService) ListStrategiesByGroup(ctx context.Context, groupID int64) ([]application.PickStrategyDTO, error) {
	if m.listByGroupFn == nil {
		panic("ListStrategiesByGroup not implemented")
	}
	return m.listByGroupFn(ctx, groupID)
}

func (m *mockStrategyService) UpdateStrategy(ctx context.Context, cmd application.UpdatePickStrategyCommand) (*application.PickStrategyDTO, error) {
	if m.updateStrategyFn == nil {
		panic("UpdateStrategy not implemented")
	}
	return m.updateStrategyFn(ctx, cmd)
}

func (m *mockStrategyService) DeleteStrategy(ctx context.Context, id int64) error {
	if m.deleteStrategyFn == nil {
		panic("DeleteStrategy not implemented")
	}
	return m.deleteStrategyFn(ctx, id)
}

func (m *mockStrategyService) UpsertHUFormation(ctx context.Context, cmd application.UpsertHUFormationCommand) (*application.HUFormationDTO, error) {
	if m.upsertHUFn == nil {
		panic("UpsertHUFormation not implemented")
	}
	return m.upsertHUFn(ctx, cmd)
}

func (m *mockStrategyService) GetHUFormationByStrategy(ctx context.Context, strategyID int64) (*application.HUFormationDTO, error) {
	if m.getHUFn == nil {
		panic("GetHUFormationByStrategy not implemented")
	}
	return m.getHUFn(ctx, strategyID)
}

func (m *mockStrategyService) UpsertWorkOrderManagement(ctx context.Context, cmd application.UpsertWorkOrderManagementCommand) (*application.WorkOrderManagementDTO, error) {
	if m.upsertWorkOrderFn == nil {
		panic("UpsertWorkOrderManagement not implemented")
	}
	return m.upsertWorkOrderFn(ctx, cmd)
}

func (m *mockStrategyService) GetWorkOrderManagementByStrategy(ctx context.Context, strategyID int64) (*application.WorkOrderManagementDTO, error) {
	if m.getWorkOrderFn == nil {
		panic("GetWorkOrderManagementByStrategy not implemented")
	}
	return m.getWorkOrderFn(ctx, strategyID)
}

func newStrategyRouter(service PickStrategyService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	middleware.InitValidator()
	router := gin.New()
	logger := logging.New(logging.DefaultConfig("test"))
	handlers := NewPickStrategyHandlers(service, logger)
	handlers.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestPickStrategyHandlers_CreateStrategy(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		service := &mockStrategyService{
			createStrategyFn: func(ctx context.Context, cmd application.CreatePickStrategyCommand) (*application.PickStrategyDTO, error) {
				if cmd.InventoryGroupID != 1 || cmd.TaskKind != "PICK" {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				return &application.PickStrategyDTO{ID: 10, TaskKind: cmd.TaskKind}, nil
			},
		}
		router := newStrategyRouter(service)
		body := `{"inventoryGroupId":1,"taskKind":"PICK","strategy":"PICK_BY_TRIP","sortingStrategy":"SORT_BY_LOCATION","loadingStrategy":"LOAD_BY_TRIP_SEQUENCE"}`
		rec := performRequest(router, http.MethodPost, "/api/v1/pick-strategies", body)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), `"taskKind":"PICK"`) {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("validation error from service", func(t *testing.T) {
		service := &mockStrategyService{
			createStrategyFn: func(ctx context.Context, cmd application.CreatePickStrategyCommand) (*application.PickStrategyDTO, error) {
				return nil, errors.ErrValidation("unknown pick strategy")
			},
		}
		router := newStrategyRouter(service)
		body := `{"inventoryGroupId":1,"taskKind":"PICK","strategy":"PICK_BY_MOOD","sortingStrategy":"SORT_BY_LOCATION","loadingStrategy":"NO_LOADING"}`
		rec := performRequest(router, http.MethodPost, "/api/v1/pick-strategies", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestPickStrategyHandlers_HUFormation(t *testing.T) {
	t.Run("upsert carries the path strategy id", func(t *testing.T) {
		service := &mockStrategyService{
			upsertHUFn: func(ctx context.Context, cmd application.UpsertHUFormationCommand) (*application.HUFormationDTO, error) {
				if cmd.PickStrategyID != 9 || cmd.TripType != "SINGLE_TRIP" {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				return &application.HUFormationDTO{ID: 1, PickStrategyID: cmd.PickStrategyID}, nil
			},
		}
		router := newStrategyRouter(service)
		body := `{"tripType":"SINGLE_TRIP","mappingMode":"MAP_AT_PICK","huKinds":["TOTE","CARTON"],"maxHUQuantity":100}`
		rec := performRequest(router, http.MethodPut, "/api/v1/pick-strategies/9/hu-formation", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("rejects invalid HU kind at the binding layer", func(t *testing.T) {
		service := &mockStrategyService{
			upsertHUFn: func(ctx context.Context, cmd application.UpsertHUFormationCommand) (*application.HUFormationDTO, error) {
				t.Fatal("service must not be called")
				return nil, nil
			},
		}
		router := newStrategyRouter(service)
		body := `{"tripType":"SINGLE_TRIP","mappingMode":"MAP_AT_PICK","huKinds":["WHEELBARROW"]}`
		rec := performRequest(router, http.MethodPut, "/api/v1/pick-strategies/9/hu-formation", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("get not found", func(t *testing.T) {
		service := &mockStrategyService{
			getHUFn: func(ctx context.Context, strategyID int64) (*application.HUFormationDTO, error) {
				return nil, errors.ErrNotFound("hu formation configuration")
			},
		}
		router := newStrategyRouter(service)
		rec := performRequest(router, http.MethodGet, "/api/v1/pick-strategies/9/hu-formation", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("invalid strategy id", func(t *testing.T) {
		service := &mockStrategyService{}
		router := newStrategyRouter(service)
		rec := performRequest(router, http.MethodPut, "/api/v1/pick-strategies/abc/hu-formation", `{}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestPickStrategyHandlers_WorkOrderManagement(t *testing.T) {
	t.Run("upsert success", func(t *testing.T) {
		service := &mockStrategyService{
			upsertWorkOrderFn: func(ctx context.Context, cmd application.UpsertWorkOrderManagementCommand) (*application.WorkOrderManagementDTO, error) {
				if cmd.PickStrategyID != 3 || len(cmd.LoadingUnits) != 2 {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				return &application.WorkOrderManagementDTO{ID: 1, PickStrategyID: cmd.PickStrategyID}, nil
			},
		}
		router := newStrategyRouter(service)
		body := `{"loadingUnits":["TROLLEY","CARTON"],"flags":{"autoCreateWorkOrders":true}}`
		rec := performRequest(router, http.MethodPut, "/api/v1/pick-strategies/3/work-order-management", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
	})
}

func TestPickStrategyHandlers_ListByGroup(t *testing.T) {
	service := &mockStrategyService{
		listByGroupFn: func(ctx context.Context, groupID int64) ([]application.PickStrategyDTO, error) {
			if groupID != 5 {
				t.Fatalf("groupID = %d", groupID)
			}
			return []application.PickStrategyDTO{{ID: 1}, {ID: 2}}, nil
		},
	}
	router := newStrategyRouter(service)
	rec := performRequest(router, http.MethodGet, "/api/v1/pick-strategies/group/5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestPickStrategyHandlers_Delete(t *testing.T) {
	service := &mockStrategyService{
		deleteStrategyFn: func(ctx context.Context, id int64) error {
			if id != 11 {
				t.Fatalf("id = %d", id)
			}
			return nil
		},
	}
	router := newStrategyRouter(service)
	rec := performRequest(router, http.MethodDelete, "/api/v1/pick-strategies/11", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
}
