package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/strataforge/strata"
	"github.com/strataforge/strata/internal/logging"
	"github.com/strataforge/strata/pkg/domain"
	"github.com/strataforge/strata/pkg/layer"
	"github.com/strataforge/strata/pkg/stage"
)

func newTestMCPServer(t *testing.T) (*Server, *strata.Session) {
	t.Helper()
	l := layer.New("shot.yaml")

	cube := domain.NewPrimSpec(domain.SpecifierDef)
	cube.TypeName = "Cube"
	require.NoError(t, l.SetSpecAt(domain.MustPath("/World/Cube"), cube))

	st, err := stage.New([]*layer.Layer{l}, stage.WithLogger(logging.NewNop()))
	require.NoError(t, err)
	session := strata.NewSession(st, strata.WithLogger(logging.NewNop()))
	return NewServer(session, strata.Version, logging.NewNop()), session
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestRenameTool(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		srv, session := newTestMCPServer(t)

		result, err := srv.handleRename(context.Background(),
			callRequest(map[string]any{"path": "/World/Cube", "new_name": "Cylinder"}))
		require.NoError(t, err)
		assert.False(t, result.IsError)
		assert.Equal(t, "renamed /World/Cube to /World/Cylinder", resultText(t, result))
		assert.True(t, session.Stage().HasPrim(domain.MustPath("/World/Cylinder")))
	})

	t.Run("Rejection surfaces the message", func(t *testing.T) {
		srv, _ := newTestMCPServer(t)

		result, err := srv.handleRename(context.Background(),
			callRequest(map[string]any{"path": "/World/Nope", "new_name": "Cylinder"}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, "no prim found at /World/Nope", resultText(t, result))
	})
}

func TestUndoRedoTools(t *testing.T) {
	srv, session := newTestMCPServer(t)
	ctx := context.Background()

	result, err := srv.handleUndo(ctx, callRequest(nil))
	require.NoError(t, err)
	assert.True(t, result.IsError, "nothing to undo yet")

	_, err = session.Rename("/World/Cube", "Cylinder")
	require.NoError(t, err)

	result, err = srv.handleUndo(ctx, callRequest(nil))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.True(t, session.Stage().HasPrim(domain.MustPath("/World/Cube")))

	result, err = srv.handleRedo(ctx, callRequest(nil))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.True(t, session.Stage().HasPrim(domain.MustPath("/World/Cylinder")))
}

func TestListPrimsTool(t *testing.T) {
	srv, _ := newTestMCPServer(t)

	result, err := srv.handleListPrims(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, `"/World/Cube"`)
	assert.Contains(t, text, `"specifier":"def"`)
}
