package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servak/infragraph/internal/service"
)

const testDoc = `
name: sample
devices:
  - name: host
    components:
      - name: nic
        count: 1
        kind: nic
instances:
  - name: host
    device: host
    count: 1
`

func setupCompilerHandler(t *testing.T) (*CompilerHandler, huma.API) {
	compiler := service.New(nil)
	handler := NewCompilerHandler(compiler, nil)

	router := chi.NewRouter()
	config := huma.DefaultConfig("Test API", "1.0.0")
	api := humachi.New(router, config)
	handler.Register(api)

	return handler, api
}

func TestCompilerHandler_SetAndGetGraph(t *testing.T) {
	_, api := setupCompilerHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/graph", bytes.NewBufferString(testDoc))
	req.Header.Set("Content-Type", "application/yaml")
	resp := httptest.NewRecorder()
	api.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/graph", nil)
	resp = httptest.NewRecorder()
	api.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var out GraphOutput
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out.Body))
	assert.Len(t, out.Body.Nodes, 1)
	assert.Equal(t, "host.0.nic.0", out.Body.Nodes[0].ID)
}

func TestCompilerHandler_GetGraphBeforeSetIsConflict(t *testing.T) {
	_, api := setupCompilerHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/graph", nil)
	resp := httptest.NewRecorder()
	api.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestCompilerHandler_ShortestPath(t *testing.T) {
	_, api := setupCompilerHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/graph", bytes.NewBufferString(testDoc))
	req.Header.Set("Content-Type", "application/yaml")
	resp := httptest.NewRecorder()
	api.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/graph/shortest-path?src=host.0.nic.0&dst=host.0.nic.0", nil)
	resp = httptest.NewRecorder()
	api.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var out ShortestPathOutput
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out.Body))
	assert.Equal(t, []string{"host.0.nic.0"}, out.Body.Path)
}
