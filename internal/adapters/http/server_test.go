package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/strataforge/strata"
	"github.com/strataforge/strata/internal/logging"
	"github.com/strataforge/strata/internal/observability"
	"github.com/strataforge/strata/pkg/domain"
	"github.com/strataforge/strata/pkg/layer"
	"github.com/strataforge/strata/pkg/stage"
)

func newTestServer(t *testing.T) (*httptest.Server, *strata.Session) {
	t.Helper()
	l := layer.New("shot.yaml")

	cube := domain.NewPrimSpec(domain.SpecifierDef)
	cube.TypeName = "Cube"
	require.NoError(t, l.SetSpecAt(domain.MustPath("/World/Cube"), cube))

	st, err := stage.New([]*layer.Layer{l}, stage.WithLogger(logging.NewNop()))
	require.NoError(t, err)
	session := strata.NewSession(st, strata.WithLogger(logging.NewNop()))

	handler := NewHandler(session, observability.New(), logging.NewNop())
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, session
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestRenameEndpoint(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		srv, session := newTestServer(t)

		resp := postJSON(t, srv.URL+"/v1/rename", RenameRequest{Path: "/World/Cube", NewName: "Cylinder"})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out RenameResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "/World/Cylinder", out.Renamed)
		assert.True(t, session.Stage().HasPrim(domain.MustPath("/World/Cylinder")))
	})

	t.Run("Malformed body", func(t *testing.T) {
		srv, _ := newTestServer(t)
		resp, err := http.Post(srv.URL+"/v1/rename", "application/json", bytes.NewReader([]byte("{")))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Precondition violation is a conflict", func(t *testing.T) {
		srv, _ := newTestServer(t)

		resp := postJSON(t, srv.URL+"/v1/rename", RenameRequest{Path: "/World/Nope", NewName: "Cylinder"})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		var out ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "no prim found at /World/Nope", out.Error)
	})

	t.Run("Illegal name is a conflict", func(t *testing.T) {
		srv, _ := newTestServer(t)
		resp := postJSON(t, srv.URL+"/v1/rename", RenameRequest{Path: "/World/Cube", NewName: "bad name"})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}

func TestUndoRedoEndpoints(t *testing.T) {
	srv, session := newTestServer(t)

	t.Run("Nothing to undo", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/v1/undo", nil)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("Nothing to redo", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/v1/redo", nil)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("Undo then redo", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/v1/rename", RenameRequest{Path: "/World/Cube", NewName: "Cylinder"})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = postJSON(t, srv.URL+"/v1/undo", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, session.Stage().HasPrim(domain.MustPath("/World/Cube")))

		resp = postJSON(t, srv.URL+"/v1/redo", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, session.Stage().HasPrim(domain.MustPath("/World/Cylinder")))
	})
}

func TestStageEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/v1/stage")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entries []struct {
		Path string `json:"path"`
		Type string `json:"type"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))

	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	assert.Equal(t, []string{"/World", "/World/Cube"}, paths)
}

func TestLayersEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/v1/layers")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var infos []LayerInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&infos))
	require.Len(t, infos, 1)
	assert.Equal(t, "shot.yaml", infos[0].Identifier)
	assert.Equal(t, "shot", infos[0].DisplayName)
	assert.True(t, infos[0].EditTarget)
}

func TestOpenAPIAndMetricsEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/openapi.yaml")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/yaml", resp.Header.Get("Content-Type"))

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
