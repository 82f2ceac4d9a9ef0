package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mpgalab/placeview/pkg/buildinfo"
	"github.com/mpgalab/placeview/pkg/metrics"
	"github.com/mpgalab/placeview/pkg/pipeline"
	"github.com/mpgalab/placeview/pkg/workspace"
)

// maxUploadBytes caps placement uploads at 16 MiB.
const maxUploadBytes = 16 << 20

// entrySummary is the wire form of a workspace entry.
type entrySummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AddedAt   string `json:"added_at"`
	CellCount int    `json:"cell_count"`
	ConnCount int    `json:"connection_count"`
}

func summarize(e *workspace.Entry) entrySummary {
	return entrySummary{
		ID:        e.ID,
		Name:      e.Name,
		AddedAt:   e.AddedAt.UTC().Format("2006-01-02T15:04:05Z"),
		CellCount: len(e.Record.Cells),
		ConnCount: len(e.Record.Conns),
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleListPlacements(w http.ResponseWriter, r *http.Request) {
	entries := s.ws.Entries()
	out := make([]entrySummary, len(entries))
	for i, e := range entries {
		out[i] = summarize(e)
	}
	writeJSON(w, http.StatusOK, map[string]any{"placements": out})
}

func (s *Server) handleAddPlacement(w http.ResponseWriter, r *http.Request) {
	source, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if len(source) > maxUploadBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "placement too large")
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = fmt.Sprintf("placement-%d", s.ws.Len()+1)
	}

	entry, err := s.ws.AddSource(name, source)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.logger.Info("Placement added", "id", entry.ID, "name", entry.Name, "cells", len(entry.Record.Cells))
	writeJSON(w, http.StatusCreated, map[string]any{
		"placement": summarize(entry),
		"metrics":   metrics.Compute(entry.Record),
	})
}

func (s *Server) handleGetPlacement(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"placement": summarize(entry),
		"field":     entry.Record.FieldOrDefault(),
		"metrics":   metrics.Compute(entry.Record),
	})
}

func (s *Server) handleRemovePlacement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "placementID")
	if err := s.ws.Remove(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearPlacements(w http.ResponseWriter, r *http.Request) {
	s.ws.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, metrics.Compute(entry.Record))
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	rows, err := metrics.Compare(s.ws.Records())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"metrics": rows})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.lookup(w, r)
	if !ok {
		return
	}

	opts, err := s.renderOptions(entry, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.entryRunner(entry).Execute(r.Context(), opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	format := opts.Formats[0]
	artifact := result.Artifacts[format]

	switch format {
	case pipeline.FormatSVG:
		w.Header().Set("Content-Type", "image/svg+xml")
	default:
		w.Header().Set("Content-Type", "application/json")
	}
	w.Header().Set("X-Cache-Hit", strconv.FormatBool(result.CacheInfo.EncodeHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact)
}

func (s *Server) handleModel(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.lookup(w, r)
	if !ok {
		return
	}

	opts, err := s.renderOptions(entry, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	runner := s.entryRunner(entry)
	rec, recordHash, _, err := runner.ParseWithCacheInfo(r.Context(), opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	model, err := runner.BuildModel(r.Context(), rec, recordHash, opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, model)
}

// renderOptions translates query parameters into validated pipeline options.
func (s *Server) renderOptions(entry *workspace.Entry, r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()

	opts := pipeline.Options{
		Source:  entry.Source,
		Path:    entry.Path,
		Palette: s.cfg.Palette,
		Width:   s.cfg.Width,
		Formats: []string{pipeline.FormatSVG},
		Logger:  s.logger,
	}

	if p := q.Get("palette"); p != "" {
		opts.Palette = p
	}
	if f := q.Get("format"); f != "" {
		opts.Formats = []string{f}
	}
	if raw := q.Get("width"); raw != "" {
		width, err := strconv.ParseFloat(raw, 64)
		if err != nil || width <= 0 {
			return opts, fmt.Errorf("invalid width %q", raw)
		}
		opts.Width = width
	}

	var err error
	if opts.HideConnections, err = boolParam(q.Get("hide_connections")); err != nil {
		return opts, err
	}
	if opts.HideLabels, err = boolParam(q.Get("hide_labels")); err != nil {
		return opts, err
	}
	if opts.FlatFill, err = boolParam(q.Get("flat")); err != nil {
		return opts, err
	}
	if opts.Refresh, err = boolParam(q.Get("refresh")); err != nil {
		return opts, err
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

// lookup resolves the placementID URL parameter, writing a 404 on miss.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*workspace.Entry, bool) {
	id := chi.URLParam(r, "placementID")
	entry, err := s.ws.Get(id)
	if err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return nil, false
	}
	return entry, true
}

func boolParam(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q", v)
	}
	return b, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
