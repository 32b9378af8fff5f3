package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/pbaille/entrykit/internal/codec"
	"github.com/pbaille/entrykit/internal/domain"
	"github.com/pbaille/entrykit/internal/entry"
	"github.com/pbaille/entrykit/internal/ingredients"
	"github.com/pbaille/entrykit/internal/store"
	"github.com/pbaille/entrykit/internal/vanilla"
)

// Server exposes tags and snapshots for read-only inspection
type Server struct {
	store   *store.Store
	tags    *store.TagCache
	kinds   *vanilla.Kinds
	decoder *codec.Decoder
	logger  *slog.Logger
	addr    string
}

// New creates a new API server
func New(s *store.Store, tags *store.TagCache, registry *entry.Registry, kinds *vanilla.Kinds, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		store:   s,
		tags:    tags,
		kinds:   kinds,
		decoder: codec.NewDecoder(registry, logger),
		logger:  logger,
		addr:    addr,
	}
}

// Handler builds the routing table
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Tags
	mux.HandleFunc("GET /tags", s.listTags)
	mux.HandleFunc("GET /tags/{kind}/{namespace}/{path...}", s.resolveTag)

	// Snapshots
	mux.HandleFunc("GET /snapshots", s.listSnapshots)
	mux.HandleFunc("GET /snapshots/{id}", s.getSnapshot)

	mux.HandleFunc("GET /health", s.health)

	return withLogging(s.logger, withCORS(mux))
}

// Run starts the HTTP server
func (s *Server) Run() error {
	fmt.Printf("Starting server on %s\n", s.addr)
	return http.ListenAndServe(s.addr, s.Handler())
}

// withCORS adds CORS headers for browser tooling
func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		h.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func withLogging(logger *slog.Logger, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h.ServeHTTP(rec, r)
		logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.store.ListTags()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if tags == nil {
		tags = []domain.Tag{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"tags": tags})
}

// TagResponse is a tag resolved into an ingredient
type TagResponse struct {
	Kind    string      `json:"kind"`
	Tag     string      `json:"tag"`
	Members []string    `json:"members"`
	Stacks  []StackView `json:"stacks"`
}

func (s *Server) resolveTag(w http.ResponseWriter, r *http.Request) {
	kind := r.PathValue("kind")
	name, err := domain.ParseIdentifier(r.PathValue("namespace") + ":" + r.PathValue("path"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var ing entry.Ingredient
	switch kind {
	case vanilla.ItemKind:
		ing, err = ingredients.OfItemTag(s.tags.Source(kind), s.kinds.Items, name)
	case vanilla.FluidKind:
		ing, err = ingredients.OfFluidTag(s.tags.Source(kind), s.kinds.Fluids, name)
	default:
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown kind %q", kind))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	members, err := s.tags.TagMembers(kind, name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(members) == 0 {
		writeError(w, http.StatusNotFound, "tag not found")
		return
	}

	resp := TagResponse{
		Kind:    kind,
		Tag:     name.String(),
		Members: make([]string, len(members)),
		Stacks:  IngredientView(ing),
	}
	for i, m := range members {
		resp.Members[i] = m.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listSnapshots(w http.ResponseWriter, r *http.Request) {
	limit := 20
	offset := 0

	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			offset = n
		}
	}

	snaps, err := s.store.ListSnapshots(limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if snaps == nil {
		snaps = []domain.Snapshot{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"snapshots": snaps,
		"limit":     limit,
		"offset":    offset,
	})
}

// SnapshotResponse is a decoded snapshot
type SnapshotResponse struct {
	Snapshot    *domain.Snapshot `json:"snapshot"`
	Ingredients [][]StackView    `json:"ingredients"`
	Failures    []FailureView    `json:"failures"`
}

func (s *Server) getSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.GetSnapshot(r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "snapshot not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	report, err := s.decoder.Unmarshal(snap.Data)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	resp := SnapshotResponse{
		Snapshot:    snap,
		Ingredients: make([][]StackView, len(report.Ingredients)),
		Failures:    make([]FailureView, len(report.Failures)),
	}
	for i, ing := range report.Ingredients {
		resp.Ingredients[i] = IngredientView(ing)
	}
	for i, f := range report.Failures {
		resp.Failures[i] = FailureView{
			Ingredient: f.Ingredient,
			Stack:      f.Stack,
			Type:       f.Type,
			Error:      f.Err.Error(),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

