package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/docker/docker/api/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalyanram262/docker-mcp-server/pkg/config"
	"github.com/kalyanram262/docker-mcp-server/pkg/engine"
	apperrors "github.com/kalyanram262/docker-mcp-server/pkg/errors"
	"github.com/kalyanram262/docker-mcp-server/pkg/tools"
)

// stubEngine embeds the API interface so only the methods a test
// exercises need real implementations.
type stubEngine struct {
	engine.API
	listContainersFn   func(ctx context.Context, all bool) ([]types.Container, error)
	inspectContainerFn func(ctx context.Context, id string) (types.ContainerJSON, error)
}

func (s *stubEngine) ListContainers(ctx context.Context, all bool) ([]types.Container, error) {
	return s.listContainersFn(ctx, all)
}

func (s *stubEngine) InspectContainer(ctx context.Context, id string) (types.ContainerJSON, error) {
	return s.inspectContainerFn(ctx, id)
}

func newTestServer(eng engine.API) *HTTPServer {
	log := zerolog.Nop()
	d := tools.NewDispatcher(tools.NewExecutor(eng, nil, config.Default(), log), log)
	return NewHTTP(d, ":0", log)
}

func do(t *testing.T, s *HTTPServer, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHTTP_Health(t *testing.T) {
	rec := do(t, newTestServer(&stubEngine{}), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHTTP_ListTools(t *testing.T) {
	rec := do(t, newTestServer(&stubEngine{}), http.MethodGet, "/tools", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Tools []struct {
			Name   string         `json:"name"`
			Schema map[string]any `json:"input_schema"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Tools)

	names := make(map[string]bool, len(body.Tools))
	for _, tool := range body.Tools {
		names[tool.Name] = true
		assert.Equal(t, "object", tool.Schema["type"])
	}
	assert.True(t, names["list_containers"])
	assert.True(t, names["build_image"])
}

func TestHTTP_InvokeSuccess(t *testing.T) {
	eng := &stubEngine{
		listContainersFn: func(ctx context.Context, all bool) ([]types.Container, error) {
			assert.True(t, all)
			return []types.Container{{ID: "abc123", Names: []string{"/web"}}}, nil
		},
	}

	rec := do(t, newTestServer(eng), http.MethodPost, "/tools/list_containers",
		`{"all_containers": true}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var res tools.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Success)
	assert.Nil(t, res.Error)
}

func TestHTTP_InvokeEmptyBody(t *testing.T) {
	eng := &stubEngine{
		listContainersFn: func(ctx context.Context, all bool) ([]types.Container, error) {
			assert.False(t, all)
			return nil, nil
		},
	}

	rec := do(t, newTestServer(eng), http.MethodPost, "/tools/list_containers", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHTTP_StatusMapping(t *testing.T) {
	eng := &stubEngine{
		inspectContainerFn: func(ctx context.Context, id string) (types.ContainerJSON, error) {
			return types.ContainerJSON{}, apperrors.Newf(apperrors.CodeNotFound, "no such container: %s", id)
		},
	}
	s := newTestServer(eng)

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantCode   apperrors.Code
	}{
		{
			name:       "unknown operation",
			path:       "/tools/defragment_disk",
			body:       "{}",
			wantStatus: http.StatusNotFound,
			wantCode:   apperrors.CodeUnknownOperation,
		},
		{
			name:       "missing argument",
			path:       "/tools/inspect_container",
			body:       "{}",
			wantStatus: http.StatusBadRequest,
			wantCode:   apperrors.CodeMissingArgument,
		},
		{
			name:       "engine not found",
			path:       "/tools/inspect_container",
			body:       `{"container_id": "ghost"}`,
			wantStatus: http.StatusNotFound,
			wantCode:   apperrors.CodeNotFound,
		},
		{
			name:       "malformed body",
			path:       "/tools/inspect_container",
			body:       "{not json",
			wantStatus: http.StatusBadRequest,
			wantCode:   apperrors.CodeInvalidArgument,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var res tools.Result
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
			assert.False(t, res.Success)
			require.NotNil(t, res.Error)
			assert.Equal(t, tt.wantCode, res.Error.Code)
		})
	}
}

func TestStatusFor(t *testing.T) {
	fail := func(code apperrors.Code) *tools.Result {
		return tools.Fail(apperrors.New(code, "boom"))
	}

	assert.Equal(t, http.StatusOK, statusFor(tools.Succeed("ok")))
	assert.Equal(t, http.StatusNotFound, statusFor(fail(apperrors.CodeUnknownOperation)))
	assert.Equal(t, http.StatusBadRequest, statusFor(fail(apperrors.CodeUnknownArgument)))
	assert.Equal(t, http.StatusConflict, statusFor(fail(apperrors.CodeConflict)))
	assert.Equal(t, http.StatusGatewayTimeout, statusFor(fail(apperrors.CodeTimeout)))
	assert.Equal(t, http.StatusBadGateway, statusFor(fail(apperrors.CodeEngineFailure)))
}
