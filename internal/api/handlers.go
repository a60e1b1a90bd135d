package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	apperrors "github.com/routeworks/wayfind/pkg/errors"
	"github.com/routeworks/wayfind/pkg/planner"
	"github.com/routeworks/wayfind/pkg/statemap"
	"github.com/routeworks/wayfind/pkg/store"
	"github.com/routeworks/wayfind/pkg/worldmap"
)

// =============================================================================
// Wire Types
// =============================================================================

// planRequest is the body of POST /v1/plan. The map comes either inline or
// by reference to a stored map; inline wins when both are set.
type planRequest struct {
	Map     *worldmap.Map `json:"map,omitempty"`
	MapName string        `json:"map_name,omitempty"`
	Start   string        `json:"start"`
	Goal    string        `json:"goal"`
	Refresh bool          `json:"refresh,omitempty"`
}

// planResponse is the body of a successful POST /v1/plan. Found is false when
// no route exists; that is still a 200 response.
type planResponse struct {
	PlanID  string         `json:"plan_id"`
	Found   bool           `json:"found"`
	Route   statemap.Route `json:"route,omitempty"`
	Hops    int            `json:"hops"`
	MapHash string         `json:"map_hash"`
	Cache   cacheResponse  `json:"cache"`
}

type cacheResponse struct {
	RouteHit bool `json:"route_hit"`
}

type listMapsResponse struct {
	Maps []string `json:"maps"`
}

type errorResponse struct {
	Error string         `json:"error"`
	Code  apperrors.Code `json:"code"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidInput, "invalid request body")
		return
	}

	m := req.Map
	if m == nil {
		if req.MapName == "" {
			writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidInput, "map or map_name is required")
			return
		}
		if s.Store == nil {
			writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidInput, "no map store configured; send an inline map")
			return
		}
		stored, err := s.Store.Load(r.Context(), req.MapName)
		if err != nil {
			if errors.Is(err, store.ErrMapNotFound) {
				writeError(w, http.StatusNotFound, apperrors.ErrCodeMapNotFound, "map not found: "+req.MapName)
				return
			}
			s.Logger.Error("load map", "name", req.MapName, "error", err)
			writeError(w, http.StatusInternalServerError, apperrors.ErrCodeStoreUnavailable, "map store unavailable")
			return
		}
		m = &stored
	} else if err := m.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidInput, err.Error())
		return
	}

	result, err := s.Runner.Execute(r.Context(), planner.Options{
		Map:     m,
		Start:   req.Start,
		Goal:    req.Goal,
		Refresh: req.Refresh,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidInput, err.Error())
		return
	}

	hops := 0
	if result.Found {
		hops = result.Route.Hops()
	}
	writeJSON(w, http.StatusOK, planResponse{
		PlanID:  uuid.NewString(),
		Found:   result.Found,
		Route:   result.Route,
		Hops:    hops,
		MapHash: result.MapHash,
		Cache:   cacheResponse{RouteHit: result.CacheInfo.RouteHit},
	})
}

func (s *Server) handleListMaps(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		writeError(w, http.StatusNotImplemented, apperrors.ErrCodeStoreUnavailable, "no map store configured")
		return
	}
	names, err := s.Store.List(r.Context())
	if err != nil {
		s.Logger.Error("list maps", "error", err)
		writeError(w, http.StatusInternalServerError, apperrors.ErrCodeStoreUnavailable, "map store unavailable")
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, listMapsResponse{Maps: names})
}

func (s *Server) handleSaveMap(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		writeError(w, http.StatusNotImplemented, apperrors.ErrCodeStoreUnavailable, "no map store configured")
		return
	}
	var m worldmap.Map
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidInput, "invalid request body")
		return
	}
	// The path segment is authoritative for the name.
	m.Name = chi.URLParam(r, "name")
	if err := s.Store.Save(r.Context(), m); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidInput, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetMap(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		writeError(w, http.StatusNotImplemented, apperrors.ErrCodeStoreUnavailable, "no map store configured")
		return
	}
	m, err := s.Store.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		if errors.Is(err, store.ErrMapNotFound) {
			writeError(w, http.StatusNotFound, apperrors.ErrCodeMapNotFound, "map not found")
			return
		}
		s.Logger.Error("load map", "error", err)
		writeError(w, http.StatusInternalServerError, apperrors.ErrCodeStoreUnavailable, "map store unavailable")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleDeleteMap(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		writeError(w, http.StatusNotImplemented, apperrors.ErrCodeStoreUnavailable, "no map store configured")
		return
	}
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		if errors.Is(err, store.ErrMapNotFound) {
			writeError(w, http.StatusNotFound, apperrors.ErrCodeMapNotFound, "map not found")
			return
		}
		s.Logger.Error("delete map", "error", err)
		writeError(w, http.StatusInternalServerError, apperrors.ErrCodeStoreUnavailable, "map store unavailable")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRenderMap(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		writeError(w, http.StatusNotImplemented, apperrors.ErrCodeStoreUnavailable, "no map store configured")
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = planner.FormatDOT
	}
	if format != planner.FormatDOT && format != planner.FormatSVG {
		writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidFormat, "format must be dot or svg")
		return
	}

	m, err := s.Store.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		if errors.Is(err, store.ErrMapNotFound) {
			writeError(w, http.StatusNotFound, apperrors.ErrCodeMapNotFound, "map not found")
			return
		}
		s.Logger.Error("load map", "error", err)
		writeError(w, http.StatusInternalServerError, apperrors.ErrCodeStoreUnavailable, "map store unavailable")
		return
	}

	q := r.URL.Query()
	opts := planner.Options{
		Map:       &m,
		Start:     q.Get("start"),
		Goal:      q.Get("goal"),
		Formats:   []string{format},
		Highlight: q.Get("start") != "" && q.Get("goal") != "",
		Rankdir:   q.Get("rankdir"),
	}

	var artifact []byte
	if opts.Highlight {
		// Plan the route so it can be highlighted in the drawing.
		result, err := s.Runner.Execute(r.Context(), opts)
		if err != nil {
			writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidInput, err.Error())
			return
		}
		artifact = result.Artifacts[format]
	} else {
		g, err := worldmap.ToGraph(m)
		if err != nil {
			writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidInput, err.Error())
			return
		}
		artifacts, err := s.Runner.Render(r.Context(), g, nil, "", opts)
		if err != nil {
			s.Logger.Error("render map", "error", err)
			writeError(w, http.StatusInternalServerError, apperrors.ErrCodeInternal, "render failed")
			return
		}
		artifact = artifacts[format]
	}

	switch format {
	case planner.FormatSVG:
		w.Header().Set("Content-Type", "image/svg+xml")
	default:
		w.Header().Set("Content-Type", "text/vnd.graphviz")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(artifact)
}

// =============================================================================
// Response Helpers
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code apperrors.Code, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}
