package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	controller "github.com/sscarsdale-chl/donutshop/pkg/controller/http"
	"github.com/sscarsdale-chl/donutshop/pkg/domain/model"
)

// MockWorkspaceUseCase is a hand-written mock of interfaces.WorkspaceUseCase
type MockWorkspaceUseCase struct {
	SelectFolderFunc    func(ctx context.Context, folder string) <-chan struct{}
	SetClickTagFunc     func(ctx context.Context, raw string) (string, error)
	ConvertFunc         func(ctx context.Context, location string) (*model.Conversion, error)
	SetAPIKeyFunc       func(ctx context.Context, key string) error
	DeleteAPIKeyFunc    func(ctx context.Context) error
	GeneratePreviewFunc func(ctx context.Context) (string, error)
	SnapshotFunc        func() *model.WorkspaceState
}

func (m *MockWorkspaceUseCase) SelectFolder(ctx context.Context, folder string) <-chan struct{} {
	if m.SelectFolderFunc != nil {
		return m.SelectFolderFunc(ctx, folder)
	}
	done := make(chan struct{})
	close(done)
	return done
}

func (m *MockWorkspaceUseCase) SetClickTag(ctx context.Context, raw string) (string, error) {
	return m.SetClickTagFunc(ctx, raw)
}

func (m *MockWorkspaceUseCase) Convert(ctx context.Context, location string) (*model.Conversion, error) {
	return m.ConvertFunc(ctx, location)
}

func (m *MockWorkspaceUseCase) SetAPIKey(ctx context.Context, key string) error {
	return m.SetAPIKeyFunc(ctx, key)
}

func (m *MockWorkspaceUseCase) DeleteAPIKey(ctx context.Context) error {
	return m.DeleteAPIKeyFunc(ctx)
}

func (m *MockWorkspaceUseCase) GeneratePreview(ctx context.Context) (string, error) {
	return m.GeneratePreviewFunc(ctx)
}

func (m *MockWorkspaceUseCase) Snapshot() *model.WorkspaceState {
	if m.SnapshotFunc != nil {
		return m.SnapshotFunc()
	}
	return &model.WorkspaceState{}
}

func serve(t *testing.T, uc *MockWorkspaceUseCase, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	server, err := controller.NewServer(context.Background(), uc)
	gt.NoError(t, err)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)
	return w
}

func TestWorkspaceHandler_State(t *testing.T) {
	uc := &MockWorkspaceUseCase{
		SnapshotFunc: func() *model.WorkspaceState {
			return &model.WorkspaceState{
				Folder:        "/banners",
				Creatives:     []model.Creative{{Location: "/banners/a.html", Name: "a"}},
				Step1Complete: true,
			}
		},
	}

	w := serve(t, uc, http.MethodGet, "/api/state", "")
	gt.V(t, w.Code).Equal(http.StatusOK)

	var state model.WorkspaceState
	gt.NoError(t, json.NewDecoder(w.Body).Decode(&state))
	gt.V(t, state.Folder).Equal("/banners")
	gt.A(t, state.Creatives).Length(1)
	gt.True(t, state.Step1Complete)
}

func TestWorkspaceHandler_SelectFolder(t *testing.T) {
	var selected string
	uc := &MockWorkspaceUseCase{
		SelectFolderFunc: func(ctx context.Context, folder string) <-chan struct{} {
			selected = folder
			return make(chan struct{})
		},
	}

	w := serve(t, uc, http.MethodPost, "/api/folder", `{"path":"/banners"}`)
	gt.V(t, w.Code).Equal(http.StatusAccepted)
	gt.V(t, selected).Equal("/banners")

	w = serve(t, uc, http.MethodPost, "/api/folder", `{}`)
	gt.V(t, w.Code).Equal(http.StatusBadRequest)

	w = serve(t, uc, http.MethodPost, "/api/folder", `not json`)
	gt.V(t, w.Code).Equal(http.StatusBadRequest)
}

func TestWorkspaceHandler_SetClickTag(t *testing.T) {
	uc := &MockWorkspaceUseCase{
		SetClickTagFunc: func(ctx context.Context, raw string) (string, error) {
			if raw == "bad" {
				return "", goerr.Wrap(model.ErrInvalidClickTag, "invalid")
			}
			return "https://" + raw, nil
		},
	}

	w := serve(t, uc, http.MethodPut, "/api/clicktag", `{"url":"example.com"}`)
	gt.V(t, w.Code).Equal(http.StatusOK)
	var resp map[string]string
	gt.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	gt.V(t, resp["url"]).Equal("https://example.com")

	w = serve(t, uc, http.MethodPut, "/api/clicktag", `{"url":"bad"}`)
	gt.V(t, w.Code).Equal(http.StatusBadRequest)
}

func TestWorkspaceHandler_Convert(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "success", wantCode: http.StatusOK},
		{name: "unknown creative", err: goerr.Wrap(model.ErrCreativeNotFound, "x"), wantCode: http.StatusNotFound},
		{name: "missing key", err: goerr.Wrap(model.ErrMissingCredential, "x"), wantCode: http.StatusBadRequest},
		{name: "missing click tag", err: model.ErrMissingClickTag, wantCode: http.StatusBadRequest},
		{name: "write failure", err: goerr.Wrap(model.ErrWrite, "x"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &MockWorkspaceUseCase{
				ConvertFunc: func(ctx context.Context, location string) (*model.Conversion, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return &model.Conversion{
						ID:       "conv-1",
						Creative: model.Creative{Location: location, Name: "a", Converted: true},
					}, nil
				},
			}

			w := serve(t, uc, http.MethodPost, "/api/convert", `{"location":"/banners/a.html"}`)
			gt.V(t, w.Code).Equal(tt.wantCode)

			if tt.err == nil {
				var resp struct {
					ConversionID string         `json:"conversion_id"`
					Creative     model.Creative `json:"creative"`
					Compressing  bool           `json:"compressing"`
				}
				gt.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				gt.V(t, resp.ConversionID).Equal("conv-1")
				gt.True(t, resp.Creative.Converted)
				gt.False(t, resp.Compressing)
			}
		})
	}
}

func TestWorkspaceHandler_Preview(t *testing.T) {
	uc := &MockWorkspaceUseCase{
		GeneratePreviewFunc: func(ctx context.Context) (string, error) {
			return "", goerr.Wrap(model.ErrNoBanners, "nothing")
		},
	}
	w := serve(t, uc, http.MethodPost, "/api/preview", "")
	gt.V(t, w.Code).Equal(http.StatusNotFound)

	uc.GeneratePreviewFunc = func(ctx context.Context) (string, error) {
		return "/banners/preview-generated.html", nil
	}
	w = serve(t, uc, http.MethodPost, "/api/preview", "")
	gt.V(t, w.Code).Equal(http.StatusOK)
	gt.String(t, w.Body.String()).Contains("preview-generated.html")
}

func TestWorkspaceHandler_APIKey(t *testing.T) {
	var stored string
	uc := &MockWorkspaceUseCase{
		SetAPIKeyFunc: func(ctx context.Context, key string) error {
			stored = key
			return nil
		},
		DeleteAPIKeyFunc: func(ctx context.Context) error {
			stored = ""
			return nil
		},
	}

	w := serve(t, uc, http.MethodPut, "/api/settings/api-key", `{"api_key":"abc"}`)
	gt.V(t, w.Code).Equal(http.StatusNoContent)
	gt.V(t, stored).Equal("abc")

	w = serve(t, uc, http.MethodDelete, "/api/settings/api-key", "")
	gt.V(t, w.Code).Equal(http.StatusNoContent)
	gt.V(t, stored).Equal("")
}
