// Package http exposes a strata editing session over HTTP: rename, undo,
// redo, stage inspection, Prometheus metrics, and the embedded OpenAPI
// document.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/strataforge/strata"
	"github.com/strataforge/strata/api"
	"github.com/strataforge/strata/internal/observability"
	"github.com/strataforge/strata/internal/presentation/outline"
	"github.com/strataforge/strata/pkg/domain"
	"github.com/strataforge/strata/pkg/stage"
)

// Editor is the slice of the session the HTTP surface drives.
type Editor interface {
	Rename(path string, newName string) (domain.Path, error)
	Undo() error
	Redo() bool
	CanUndo() bool
	CanRedo() bool
	Stage() *stage.Stage
}

// Server wires the editor to the chi router.
type Server struct {
	editor  Editor
	metrics *observability.Metrics
	logger  *slog.Logger
}

// RenameRequest mirrors the OpenAPI RenameRequest schema.
type RenameRequest struct {
	Path    string `json:"path"`
	NewName string `json:"new_name"`
}

// RenameResponse mirrors the OpenAPI RenameResponse schema.
type RenameResponse struct {
	Renamed string `json:"renamed"`
}

// ErrorResponse mirrors the OpenAPI ErrorResponse schema.
type ErrorResponse struct {
	Error string `json:"error"`
}

// LayerInfo mirrors the OpenAPI LayerInfo schema.
type LayerInfo struct {
	Identifier  string `json:"identifier"`
	DisplayName string `json:"display_name"`
	EditTarget  bool   `json:"edit_target"`
}

// NewHandler creates the HTTP handler for an editing session.
func NewHandler(editor Editor, metrics *observability.Metrics, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{editor: editor, metrics: metrics, logger: logger}

	r := chi.NewRouter()
	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(api.Spec)
	})
	r.Handle("/metrics", metrics.Handler())
	r.Route("/v1", func(r chi.Router) {
		r.Post("/rename", s.handleRename)
		r.Post("/undo", s.handleUndo)
		r.Post("/redo", s.handleRedo)
		r.Get("/stage", s.handleStage)
		r.Get("/layers", s.handleLayers)
	})
	return r
}

func (s *Server) handleRename(w http.ResponseWriter, r *http.Request) {
	var body RenameRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	renamed, err := s.editor.Rename(body.Path, body.NewName)
	s.metrics.ObserveOp("rename", err == nil)
	if err != nil {
		s.logger.Warn("rename rejected", "path", body.Path, "new_name", body.NewName, "err", err)
		status := http.StatusConflict
		if errors.Is(err, strata.ErrDidNotApply) {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, RenameResponse{Renamed: renamed.String()})
}

func (s *Server) handleUndo(w http.ResponseWriter, _ *http.Request) {
	if !s.editor.CanUndo() {
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: "nothing to undo"})
		return
	}
	err := s.editor.Undo()
	s.metrics.ObserveOp("undo", err == nil)
	if err != nil {
		// A failed undo means history and document diverged; surface it.
		s.logger.Error("undo failed", "err", err)
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: err.Error()})
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleRedo(w http.ResponseWriter, _ *http.Request) {
	if !s.editor.CanRedo() {
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: "nothing to redo"})
		return
	}
	ok := s.editor.Redo()
	s.metrics.ObserveOp("redo", ok)
	if !ok {
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: "redo did not apply"})
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleStage(w http.ResponseWriter, _ *http.Request) {
	entries := outline.Entries(s.editor.Stage())
	if entries == nil {
		entries = []outline.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleLayers(w http.ResponseWriter, _ *http.Request) {
	st := s.editor.Stage()
	infos := make([]LayerInfo, 0, len(st.Layers()))
	for _, l := range st.Layers() {
		infos = append(infos, LayerInfo{
			Identifier:  l.Identifier(),
			DisplayName: l.DisplayName(),
			EditTarget:  l == st.EditTarget(),
		})
	}
	writeJSON(w, http.StatusOK, infos)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
