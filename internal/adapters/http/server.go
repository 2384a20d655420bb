// Package http exposes a dashboard engine session over a JSON REST API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/mosaic/internal/presentation/graph"
	"github.com/aretw0/mosaic/pkg/domain"
	"github.com/aretw0/mosaic/pkg/history"
	"github.com/aretw0/mosaic/pkg/layout"
	"github.com/aretw0/mosaic/pkg/schema"
)

// Engine defines the interface for the Mosaic engine core.
type Engine interface {
	CurrentTree() (*domain.Node, error)
	AddChild(parentID string) (*domain.Node, error)
	RemoveNode(id string) (*domain.Node, error)
	ReplaceNode(id string, newNode *domain.Node) (*domain.Node, error)
	Undo() bool
	Redo() bool
	CanUndo() bool
	CanRedo() bool
	Jump(snapshotID int64) bool
	History() *history.Graph
	Layout() layout.Result
	ExportJSON() string
	ImportJSON(encoded string) error
	Fetch(ctx context.Context, key string) ([]domain.Record, error)
	ApplyFilters(records []domain.Record, filters []domain.Filter) []domain.Record
}

// Server wires the engine into chi handlers.
type Server struct {
	engine Engine
	logger *slog.Logger
}

// NewHandler creates the HTTP handler for one engine session. Pass a
// promhttp handler to mount metrics, or nil to skip it.
func NewHandler(engine Engine, logger *slog.Logger, metrics http.Handler) http.Handler {
	s := &Server{engine: engine, logger: logger}

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	if metrics != nil {
		r.Handle("/metrics", metrics)
	}

	r.Get("/tree", s.getTree)
	r.Post("/tree/nodes", s.addNode)
	r.Delete("/tree/nodes/{id}", s.removeNode)
	r.Put("/tree/nodes/{id}", s.replaceNode)

	r.Post("/history/undo", s.undo)
	r.Post("/history/redo", s.redo)
	r.Post("/history/jump", s.jump)
	r.Get("/history", s.getHistory)
	r.Get("/history/mermaid", s.getHistoryMermaid)

	r.Get("/export", s.export)
	r.Post("/import", s.importDoc)

	r.Get("/data/{key}", s.getData)

	return r
}

type treeResponse struct {
	Tree    *domain.Node `json:"tree"`
	CanUndo bool         `json:"can_undo"`
	CanRedo bool         `json:"can_redo"`
}

func (s *Server) respondTree(w http.ResponseWriter, tree *domain.Node) {
	s.writeJSON(w, http.StatusOK, treeResponse{
		Tree:    tree,
		CanUndo: s.engine.CanUndo(),
		CanRedo: s.engine.CanRedo(),
	})
}

func (s *Server) getTree(w http.ResponseWriter, r *http.Request) {
	tree, err := s.engine.CurrentTree()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.respondTree(w, tree)
}

func (s *Server) addNode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ParentID string `json:"parent_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	tree, err := s.engine.AddChild(body.ParentID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.respondTree(w, tree)
}

func (s *Server) removeNode(w http.ResponseWriter, r *http.Request) {
	tree, err := s.engine.RemoveNode(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.respondTree(w, tree)
}

func (s *Server) replaceNode(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	// The replacement travels in canonical document form so it gets the
	// same required-field validation as an import.
	node, err := schema.Decode(string(data))
	if err != nil {
		s.writeError(w, err)
		return
	}
	tree, err := s.engine.ReplaceNode(chi.URLParam(r, "id"), node)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.respondTree(w, tree)
}

type moveResponse struct {
	Moved      bool  `json:"moved"`
	SnapshotID int64 `json:"snapshot_id"`
}

func (s *Server) undo(w http.ResponseWriter, _ *http.Request) {
	moved := s.engine.Undo()
	s.writeJSON(w, http.StatusOK, moveResponse{Moved: moved, SnapshotID: s.engine.History().Current().ID})
}

func (s *Server) redo(w http.ResponseWriter, _ *http.Request) {
	moved := s.engine.Redo()
	s.writeJSON(w, http.StatusOK, moveResponse{Moved: moved, SnapshotID: s.engine.History().Current().ID})
}

func (s *Server) jump(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !s.engine.Jump(body.ID) {
		http.Error(w, "Unknown snapshot id", http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, moveResponse{Moved: true, SnapshotID: body.ID})
}

func (s *Server) getHistory(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.engine.Layout())
}

func (s *Server) getHistoryMermaid(w http.ResponseWriter, _ *http.Request) {
	g := s.engine.History()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(graph.GenerateMermaid(g.Root(), g.Current().ID)))
}

func (s *Server) export(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(s.engine.ExportJSON()))
}

func (s *Server) importDoc(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.engine.ImportJSON(string(data)); err != nil {
		s.writeError(w, err)
		return
	}
	tree, err := s.engine.CurrentTree()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.respondTree(w, tree)
}

func (s *Server) getData(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	records, err := s.engine.Fetch(r.Context(), key)
	if err != nil {
		s.writeError(w, err)
		return
	}

	// Optional filters: ?filters=<JSON array>
	if raw := r.URL.Query().Get("filters"); raw != "" {
		var filters []domain.Filter
		if err := json.Unmarshal([]byte(raw), &filters); err != nil {
			http.Error(w, "Invalid filters parameter", http.StatusBadRequest)
			return
		}
		records = s.engine.ApplyFilters(records, filters)
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"key": key, "records": records})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var malformed *schema.MalformedSnapshotError
	var fetchErr *domain.FetchError
	switch {
	case errors.As(err, &malformed):
		http.Error(w, malformed.Error(), http.StatusBadRequest)
	case errors.As(err, &fetchErr):
		http.Error(w, fetchErr.Error(), http.StatusBadGateway)
	default:
		s.logger.Error("request failed", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
