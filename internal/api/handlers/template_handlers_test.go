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

type mockTemplateService struct {
	createTemplateFn func(ctx context.Context, cmd application.CreateTemplateCommand) (*application.TemplateDTO, error)
	getTemplateFn    func(ctx context.Context, id int64) (*application.TemplateDTO, error)
	listTemplatesFn  func(ctx context.Context, query application.ListQuery) ([]application.TemplateDTO, error)
	deleteTemplateFn func(ctx context.Context, id int64) error
	applyTemplateFn  func(ctx context.Context, templateID int64) (*application.ApplySummaryDTO, error)
	quickSetupFn     func(ctx context.Context) (*application.ApplySummaryDTO, error)
}

func (m *mockTemplateService) CreateTemplate(ctx context.Context, cmd application.CreateTemplateCommand) (*application.TemplateDTO, error) {
	if m.createTemplateFn == nil {
		panic("CreateTemplate not implemented")
	}
	return m.createTemplateFn(ctx, cmd)
}

func (m *mockTemplateService) GetTemplate(ctx context.Context, id int64) (*application.TemplateDTO, error) {
	if m.getTemplateFn == nil {
		panic("GetTemplate not implemented")
	}
	return m.getTemplateFn(ctx, id)
}

func (m *mockTemplateService) ListTemplates(ctx context.Context, query application.ListQuery) ([]application.TemplateDTO, error) {
	if m.listTemplatesFn == nil {
		panic("ListTemplates not implemented")
	}
	return m.listTemplatesFn(ctx, query)
}

func (m *mockTemplateService) DeleteTemplate(ctx context.Context, id int64) error {
	if m.deleteTemplateFn == nil {
		panic("DeleteTemplate not implemented")
	}
	return m.deleteTemplateFn(ctx, id)
}

func (m *mockTemplateService) ApplyTemplate(ctx context.Context, templateID int64) (*application.ApplySummaryDTO, error) {
	if m.applyTemplateFn == nil {
		panic("ApplyTemplate not implemented")
	}
	return m.applyTemplateFn(ctx, templateID)
}

func (m *mockTemplateService) QuickSetup(ctx context.Context) (*application.ApplySummaryDTO, error) {
	if m.quickSetupFn == nil {
		panic("QuickSetup not implemented")
	}
	return m.quickSetupFn(ctx)
}

func newTemplateRouter(service TemplateService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	middleware.InitValidator()
	router := gin.New()
	logger := logging.New(logging.DefaultConfig("test"))
	handlers := NewTemplateHandlers(service, logger, nil)
	handlers.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestTemplateHandlers_ApplyTemplate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		service := &mockTemplateService{
			applyTemplateFn: func(ctx context.Context, templateID int64) (*application.ApplySummaryDTO, error) {
				if templateID != 3 {
					t.Fatalf("templateID = %d", templateID)
				}
				return &application.ApplySummaryDTO{TemplateName: "starter", InventoryGroups: 2}, nil
			},
		}
		router := newTemplateRouter(service)
		rec := performRequest(router, http.MethodPost, "/api/v1/templates/3/apply", "")
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"templateName":"starter"`) {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("conflict with existing configuration", func(t *testing.T) {
		service := &mockTemplateService{
			applyTemplateFn: func(ctx context.Context, templateID int64) (*application.ApplySummaryDTO, error) {
				return nil, errors.ErrConflict("inventory group already exists")
			},
		}
		router := newTemplateRouter(service)
		rec := performRequest(router, http.MethodPost, "/api/v1/templates/3/apply", "")
		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		service := &mockTemplateService{}
		router := newTemplateRouter(service)
		rec := performRequest(router, http.MethodPost, "/api/v1/templates/abc/apply", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestTemplateHandlers_QuickSetup(t *testing.T) {
	service := &mockTemplateService{
		quickSetupFn: func(ctx context.Context) (*application.ApplySummaryDTO, error) {
			return &application.ApplySummaryDTO{TemplateName: "quick-setup", InventoryGroups: 3}, nil
		},
	}
	router := newTemplateRouter(service)
	rec := performRequest(router, http.MethodPost, "/api/v1/quick-setup", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"inventoryGroups":3`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestTemplateHandlers_CreateTemplate(t *testing.T) {
	t.Run("bad json", func(t *testing.T) {
		service := &mockTemplateService{
			createTemplateFn: func(ctx context.Context, cmd application.CreateTemplateCommand) (*application.TemplateDTO, error) {
				return nil, nil
			},
		}
		router := newTemplateRouter(service)
		rec := performRequest(router, http.MethodPost, "/api/v1/templates", `{"name":}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		service := &mockTemplateService{
			createTemplateFn: func(ctx context.Context, cmd application.CreateTemplateCommand) (*application.TemplateDTO, error) {
				if cmd.Name != "starter" {
					t.Fatalf("name = %s", cmd.Name)
				}
				return &application.TemplateDTO{ID: 1, Name: cmd.Name}, nil
			},
		}
		router := newTemplateRouter(service)
		body := `{"name":"starter","data":{"groups":[{"description":"Each picking","storageInstruction":"EACH","locationInstruction":"FORWARD_PICK"}]}}`
		rec := performRequest(router, http.MethodPost, "/api/v1/templates", body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
	})
}
