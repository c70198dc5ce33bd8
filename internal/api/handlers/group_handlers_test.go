package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/wms-platform/outbound-config-service/internal/application"
	"github.com/wms-platform/outbound-config-service/pkg/errors"
	"github.com/wms-platform/outbound-config-service/pkg/logging"
	"github.com/wms-platform/outbound-config-service/pkg/middleware"
)

type mockGroupService struct {
	createGroupFn func(ctx context.Context, cmd application.CreateInventoryGroupCommand) (*application.InventoryGroupDTO, error)
	getGroupFn    func(ctx context.Context, id int64) (*application.InventoryGroupDTO, error)
	listGroupsFn  func(ctx context.Context, query application.ListQuery) ([]application.InventoryGroupDTO, error)
	updateGroupFn func(ctx context.Context, cmd application.UpdateInventoryGroupCommand) (*application.InventoryGroupDTO, error)
	deleteGroupFn func(ctx context.Context, id int64) error
}

func (m *mockGroupService) CreateGroup(ctx context.Context, cmd application.CreateInventoryGroupCommand) (*application.InventoryGroupDTO, error) {
	if m.createGroupFn == nil {
		panic("CreateGroup not implemented")
	}
	return m.createGroupFn(ctx, cmd)
}

func (m *mockGroupService) GetGroup(ctx context.Context, id int64) (*application.InventoryGroupDTO, error) {
	if m.getGroupFn == nil {
		panic("GetGroup not implemented")
	}
	return m.getGroupFn(ctx, id)
}

func (m *mockGroupService) ListGroups(ctx context.Context, query application.ListQuery) ([]application.InventoryGroupDTO, error) {
	if m.listGroupsFn == nil {
		panic("ListGroups not implemented")
	}
	return m.listGroupsFn(ctx, query)
}

func (m *mockGroupService) UpdateGroup(ctx context.Context, cmd application.UpdateInventoryGroupCommand) (*application.InventoryGroupDTO, error) {
	if m.updateGroupFn == nil {
		panic("UpdateGroup not implemented")
	}
	return m.updateGroupFn(ctx, cmd)
}

func (m *mockGroupService) DeleteGroup(ctx context.Context, id int64) error {
	if m.deleteGroupFn == nil {
		panic("DeleteGroup not implemented")
	}
	return m.deleteGroupFn(ctx, id)
}

func newGroupRouter(service InventoryGroupService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	middleware.InitValidator()
	router := gin.New()
	logger := logging.New(logging.DefaultConfig("test"))
	handlers := NewInventoryGroupHandlers(service, logger, nil)
	handlers.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func performRequest(router *gin.Engine, method, path string, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestInventoryGroupHandlers_CreateGroup(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		service := &mockGroupService{
			createGroupFn: func(ctx context.Context, cmd application.CreateInventoryGroupCommand) (*application.InventoryGroupDTO, error) {
				if cmd.StorageInstruction != "EACH" || cmd.LocationInstruction != "FORWARD_PICK" {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				return &application.InventoryGroupDTO{ID: 1, Description: cmd.Description}, nil
			},
		}
		router := newGroupRouter(service)
		body := `{"description":"Each picking","storageInstruction":"EACH","locationInstruction":"FORWARD_PICK","uom":"EACH"}`
		rec := performRequest(router, http.MethodPost, "/api/v1/inventory-groups", body)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), `"description":"Each picking"`) {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("bad json", func(t *testing.T) {
		service := &mockGroupService{
			createGroupFn: func(ctx context.Context, cmd application.CreateInventoryGroupCommand) (*application.InventoryGroupDTO, error) {
				return nil, nil
			},
		}
		router := newGroupRouter(service)
		rec := performRequest(router, http.MethodPost, "/api/v1/inventory-groups", `{"description":}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("missing required fields", func(t *testing.T) {
		service := &mockGroupService{
			createGroupFn: func(ctx context.Context, cmd application.CreateInventoryGroupCommand) (*application.InventoryGroupDTO, error) {
				t.Fatal("service must not be called")
				return nil, nil
			},
		}
		router := newGroupRouter(service)
		rec := performRequest(router, http.MethodPost, "/api/v1/inventory-groups", `{"description":"no identifiers"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("conflict from service", func(t *testing.T) {
		service := &mockGroupService{
			createGroupFn: func(ctx context.Context, cmd application.CreateInventoryGroupCommand) (*application.InventoryGroupDTO, error) {
				return nil, errors.ErrConflict("group already exists")
			},
		}
		router := newGroupRouter(service)
		body := `{"description":"Dup","storageInstruction":"EACH","locationInstruction":"FORWARD_PICK"}`
		rec := performRequest(router, http.MethodPost, "/api/v1/inventory-groups", body)
		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestInventoryGroupHandlers_GetGroup(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		service := &mockGroupService{
			getGroupFn: func(ctx context.Context, id int64) (*application.InventoryGroupDTO, error) {
				if id != 42 {
					t.Fatalf("id = %d", id)
				}
				return &application.InventoryGroupDTO{ID: id}, nil
			},
		}
		router := newGroupRouter(service)
		rec := performRequest(router, http.MethodGet, "/api/v1/inventory-groups/42", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		service := &mockGroupService{}
		router := newGroupRouter(service)
		rec := performRequest(router, http.MethodGet, "/api/v1/inventory-groups/not-a-number", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		service := &mockGroupService{
			getGroupFn: func(ctx context.Context, id int64) (*application.InventoryGroupDTO, error) {
				return nil, errors.ErrNotFoundWithID("inventory group", fmt.Sprintf("%d", id))
			},
		}
		router := newGroupRouter(service)
		rec := performRequest(router, http.MethodGet, "/api/v1/inventory-groups/404", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("internal error", func(t *testing.T) {
		service := &mockGroupService{
			getGroupFn: func(ctx context.Context, id int64) (*application.InventoryGroupDTO, error) {
				return nil, fmt.Errorf("boom")
			},
		}
		router := newGroupRouter(service)
		rec := performRequest(router, http.MethodGet, "/api/v1/inventory-groups/1", "")
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestInventoryGroupHandlers_ListGroups(t *testing.T) {
	t.Run("passes paging and normalizes defaults", func(t *testing.T) {
		service := &mockGroupService{
			listGroupsFn: func(ctx context.Context, query application.ListQuery) ([]application.InventoryGroupDTO, error) {
				if query.Limit != 10 || query.Offset != 5 {
					t.Fatalf("unexpected query: %+v", query)
				}
				return []application.InventoryGroupDTO{{ID: 1}}, nil
			},
		}
		router := newGroupRouter(service)
		rec := performRequest(router, http.MethodGet, "/api/v1/inventory-groups?limit=10&offset=5", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("defaults applied without params", func(t *testing.T) {
		service := &mockGroupService{
			listGroupsFn: func(ctx context.Context, query application.ListQuery) ([]application.InventoryGroupDTO, error) {
				if query.Limit != 100 || query.Offset != 0 {
					t.Fatalf("unexpected query: %+v", query)
				}
				return []application.InventoryGroupDTO{}, nil
			},
		}
		router := newGroupRouter(service)
		rec := performRequest(router, http.MethodGet, "/api/v1/inventory-groups", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestInventoryGroupHandlers_UpdateDelete(t *testing.T) {
	t.Run("update success", func(t *testing.T) {
		service := &mockGroupService{
			updateGroupFn: func(ctx context.Context, cmd application.UpdateInventoryGroupCommand) (*application.InventoryGroupDTO, error) {
				if cmd.GroupID != 7 || cmd.Description != "Renamed" || cmd.Version != 2 {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				return &application.InventoryGroupDTO{ID: cmd.GroupID, Description: cmd.Description}, nil
			},
		}
		router := newGroupRouter(service)
		rec := performRequest(router, http.MethodPut, "/api/v1/inventory-groups/7", `{"description":"Renamed","version":2}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("update version mismatch", func(t *testing.T) {
		service := &mockGroupService{
			updateGroupFn: func(ctx context.Context, cmd application.UpdateInventoryGroupCommand) (*application.InventoryGroupDTO, error) {
				return nil, errors.ErrVersionMismatch("inventory group")
			},
		}
		router := newGroupRouter(service)
		rec := performRequest(router, http.MethodPut, "/api/v1/inventory-groups/7", `{"description":"Stale","version":1}`)
		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("delete success", func(t *testing.T) {
		service := &mockGroupService{
			deleteGroupFn: func(ctx context.Context, id int64) error {
				if id != 7 {
					t.Fatalf("id = %d", id)
				}
				return nil
			},
		}
		router := newGroupRouter(service)
		rec := performRequest(router, http.MethodDelete, "/api/v1/inventory-groups/7", "")
		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("delete not found", func(t *testing.T) {
		service := &mockGroupService{
			deleteGroupFn: func(ctx context.Context, id int64) error {
				return errors.ErrNotFound("inventory group")
			},
		}
		router := newGroupRouter(service)
		rec := performRequest(router, http.MethodDelete, "/api/v1/inventory-groups/404", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}
