package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/routeworks/wayfind/pkg/cache"
	"github.com/routeworks/wayfind/pkg/observability"
	"github.com/routeworks/wayfind/pkg/render"
	"github.com/routeworks/wayfind/pkg/statemap"
	"github.com/routeworks/wayfind/pkg/worldmap"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// cachedRoute is the wire format for route cache entries. Found is stored
// explicitly so that "no route" answers are cached too.
type cachedRoute struct {
	Found bool     `json:"found"`
	Route []string `json:"route,omitempty"`
}

// Execute runs the complete load → plan → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	m, mapHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Map = m
	result.Stats.LoadTime = time.Since(loadStart)
	result.CacheInfo.MapHit = mapHit

	g, err := worldmap.ToGraph(m)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Graph = g
	result.Stats.StateCount = g.StateCount()
	result.Stats.TransitionCount = g.TransitionCount()

	// Compute map hash for cache keys and API responses
	if mapData, err := worldmap.MarshalMap(m); err == nil {
		result.MapHash = cache.Hash(mapData)
	}

	r.Logger.Info("loaded world map",
		"name", m.Name,
		"states", result.Stats.StateCount,
		"transitions", result.Stats.TransitionCount,
		"duration", result.Stats.LoadTime)

	// Stage 2: Plan
	planStart := time.Now()
	route, found, routeHit, err := r.PlanWithCacheInfo(ctx, g, result.MapHash, opts)
	if err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}
	result.Route = route
	result.Found = found
	result.Stats.PlanTime = time.Since(planStart)
	result.CacheInfo.RouteHit = routeHit

	hops := 0
	if found {
		hops = route.Hops()
	}
	r.Logger.Info("planned route",
		"start", opts.Start,
		"goal", opts.Goal,
		"found", found,
		"hops", hops,
		"duration", result.Stats.PlanTime)

	// Stage 3: Render (skipped when no formats were requested)
	if len(opts.Formats) > 0 {
		renderStart := time.Now()
		artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, g, route, result.MapHash, opts)
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		result.Artifacts = artifacts
		result.Stats.RenderTime = time.Since(renderStart)
		result.CacheInfo.RenderHit = renderHit

		r.Logger.Info("rendered outputs",
			"formats", opts.Formats,
			"duration", result.Stats.RenderTime)
	}

	return result, nil
}

// LoadWithCacheInfo reads the world map with caching and returns cache hit info.
// Preloaded maps bypass the cache entirely.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (worldmap.Map, bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return worldmap.Map{}, false, err
	}
	r.applyLogger(&opts)

	if opts.Map != nil {
		return *opts.Map, false, nil
	}

	source := opts.MapSource()
	start := time.Now()
	observability.Planner().OnLoadStart(ctx, source)

	cacheKey := r.Keyer.MapKey(source)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if m, err := worldmap.UnmarshalMap(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "map")
				observability.Planner().OnLoadComplete(ctx, source, len(m.Transitions), time.Since(start), nil)
				return m, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "map")
	}

	m, err := r.readMapFile(opts)
	if err != nil {
		observability.Planner().OnLoadComplete(ctx, source, 0, time.Since(start), err)
		return worldmap.Map{}, false, err
	}

	// Cache the parsed map
	if !opts.Refresh {
		if data, err := worldmap.MarshalMap(m); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLMap); err == nil {
				observability.Cache().OnCacheSet(ctx, "map", len(data))
			}
		}
	}

	observability.Planner().OnLoadComplete(ctx, source, len(m.Transitions), time.Since(start), nil)
	return m, false, nil
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) (worldmap.Map, error) {
	m, _, err := r.LoadWithCacheInfo(ctx, opts)
	return m, err
}

func (r *Runner) readMapFile(opts Options) (worldmap.Map, error) {
	if opts.IsManifest() {
		return worldmap.ReadManifestFile(opts.MapPath)
	}
	return worldmap.ReadMapFile(opts.MapPath)
}

// PlanWithCacheInfo computes the shortest route with caching and returns
// cache hit info. A missing route is reported through the found flag; the
// error return is reserved for invalid options and cache serialization
// failures.
func (r *Runner) PlanWithCacheInfo(ctx context.Context, g *statemap.Graph, mapHash string, opts Options) (statemap.Route, bool, bool, error) {
	if err := opts.ValidateForPlan(); err != nil {
		return nil, false, false, err
	}
	r.applyLogger(&opts)

	start := time.Now()
	observability.Planner().OnPlanStart(ctx, opts.Start, opts.Goal)

	cacheKey := r.Keyer.RouteKey(mapHash, opts.Start, opts.Goal)

	// Try cache first (unless refresh requested)
	if !opts.Refresh && mapHash != "" {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached cachedRoute
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "route")
				observability.Planner().OnPlanComplete(ctx, opts.Start, opts.Goal, cached.Found, time.Since(start))
				return statemap.Route(cached.Route), cached.Found, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "route")
	}

	route, err := g.FindPath(opts.Start, opts.Goal)
	found := err == nil
	if err != nil && !errors.Is(err, statemap.ErrNoRoute) {
		observability.Planner().OnPlanComplete(ctx, opts.Start, opts.Goal, false, time.Since(start))
		return nil, false, false, err
	}

	// Cache the answer, including negative ones. Redis write failures are
	// transient in multi-instance deployments, so retry them.
	if !opts.Refresh && mapHash != "" {
		if data, err := json.Marshal(cachedRoute{Found: found, Route: route}); err == nil {
			if err := cache.RetryWithBackoff(ctx, func() error {
				return r.Cache.Set(ctx, cacheKey, data, cache.TTLRoute)
			}); err == nil {
				observability.Cache().OnCacheSet(ctx, "route", len(data))
			}
		}
	}

	observability.Planner().OnPlanComplete(ctx, opts.Start, opts.Goal, found, time.Since(start))
	return route, found, false, nil
}

// Plan is a convenience wrapper that calls PlanWithCacheInfo and discards the cache hit info.
func (r *Runner) Plan(ctx context.Context, g *statemap.Graph, mapHash string, opts Options) (statemap.Route, bool, error) {
	route, found, _, err := r.PlanWithCacheInfo(ctx, g, mapHash, opts)
	return route, found, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *statemap.Graph, route statemap.Route, mapHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	start := time.Now()
	observability.Planner().OnRenderStart(ctx, opts.Formats)

	// Try to get all formats from cache
	allCached := mapHash != "" && !opts.Refresh
	artifacts := make(map[string][]byte)

	if allCached {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(mapHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Planner().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
		return artifacts, true, nil
	}

	rendered, err := r.renderAll(g, route, opts)
	if err != nil {
		observability.Planner().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
		return nil, false, err
	}

	// Cache each format
	if mapHash != "" && !opts.Refresh {
		for format, data := range rendered {
			cacheKey := r.Keyer.ArtifactKey(mapHash, opts.ArtifactKeyOpts(format))
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		}
	}

	observability.Planner().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, g *statemap.Graph, route statemap.Route, mapHash string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, g, route, mapHash, opts)
	return artifacts, err
}

func (r *Runner) renderAll(g *statemap.Graph, route statemap.Route, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var dot string
	needDOT := false
	for _, f := range opts.Formats {
		if f == FormatDOT || f == FormatSVG {
			needDOT = true
		}
	}
	if needDOT {
		dot = render.ToDOT(g, route, render.Options{
			Highlight: opts.Highlight,
			Rankdir:   opts.Rankdir,
		})
	}

	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			data, err := json.MarshalIndent(cachedRoute{Found: len(route) > 0, Route: route}, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("marshal route: %w", err)
			}
			artifacts[format] = append(data, '\n')
		case FormatDOT:
			artifacts[format] = []byte(dot)
		case FormatSVG:
			svg, err := render.RenderSVG(dot)
			if err != nil {
				return nil, fmt.Errorf("render svg: %w", err)
			}
			artifacts[format] = svg
		}
	}
	return artifacts, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
