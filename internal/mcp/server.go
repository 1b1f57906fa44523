// Package mcp exposes a strata editing session as an MCP server, so
// agent hosts can rename prims and walk the undo history over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
	"github.com/strataforge/strata/internal/presentation/outline"
	"github.com/strataforge/strata/pkg/domain"
	"github.com/strataforge/strata/pkg/stage"
)

// Editor is the slice of the session the MCP tools drive.
type Editor interface {
	Rename(path string, newName string) (domain.Path, error)
	Undo() error
	Redo() bool
	CanUndo() bool
	CanRedo() bool
	Stage() *stage.Stage
}

// Server wraps the editor and exposes it as an MCP server.
type Server struct {
	editor    Editor
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance for the session.
func NewServer(editor Editor, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		editor:    editor,
		logger:    logger,
		mcpServer: server.NewMCPServer("strata-mcp", version),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

type renameArgs struct {
	Path    string `mapstructure:"path"`
	NewName string `mapstructure:"new_name"`
}

func (s *Server) registerTools() {
	renameTool := mcp.NewTool("rename_prim",
		mcp.WithDescription("Rename a prim within its parent. The prim must be authored in exactly one layer, which must be the session's edit target."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Absolute path of the prim to rename, e.g. /World/Cube")),
		mcp.WithString("new_name", mcp.Required(), mcp.Description("New leaf name within the same parent")),
	)
	s.mcpServer.AddTool(renameTool, s.handleRename)

	s.mcpServer.AddTool(mcp.NewTool("undo_edit",
		mcp.WithDescription("Revert the most recent edit operation."),
	), s.handleUndo)

	s.mcpServer.AddTool(mcp.NewTool("redo_edit",
		mcp.WithDescription("Re-apply the most recently undone edit operation."),
	), s.handleRedo)

	s.mcpServer.AddTool(mcp.NewTool("list_prims",
		mcp.WithDescription("List the composed prim hierarchy with the layers authoring each prim."),
	), s.handleListPrims)
}

func (s *Server) handleRename(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args renameArgs
	if err := mapstructure.Decode(request.GetArguments(), &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	renamed, err := s.editor.Rename(args.Path, args.NewName)
	if err != nil {
		s.logger.Warn("MCP rename rejected", "path", args.Path, "err", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("renamed %s to %s", args.Path, renamed.String())), nil
}

func (s *Server) handleUndo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !s.editor.CanUndo() {
		return mcp.NewToolResultError("nothing to undo"), nil
	}
	if err := s.editor.Undo(); err != nil {
		s.logger.Error("MCP undo failed", "err", err)
		return mcp.NewToolResultError(fmt.Sprintf("undo failed: %v", err)), nil
	}
	return mcp.NewToolResultText("undone"), nil
}

func (s *Server) handleRedo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !s.editor.CanRedo() {
		return mcp.NewToolResultError("nothing to redo"), nil
	}
	if !s.editor.Redo() {
		return mcp.NewToolResultError("redo did not apply"), nil
	}
	return mcp.NewToolResultText("redone"), nil
}

func (s *Server) handleListPrims(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries := outline.Entries(s.editor.Stage())
	jsonBytes, err := json.Marshal(entries)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
