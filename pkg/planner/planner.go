// Package planner provides the core planning pipeline for wayfind.
//
// This package implements the complete load → plan → render pipeline shared
// by the CLI and the API server. Centralizing it keeps caching and validation
// behavior identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a world map from a JSON file, TOML manifest, or caller-supplied value
//  2. Plan: Compute the shortest route between the start and goal states
//  3. Render: Generate optional artifacts (JSON route, DOT, SVG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := planner.NewRunner(cache, nil, logger)
//	opts := planner.Options{
//	    MapPath: "world.toml",
//	    Start:   "login",
//	    Goal:    "match",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Found {
//	    // no actionable route right now
//	}
package planner

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/routeworks/wayfind/pkg/cache"
	"github.com/routeworks/wayfind/pkg/statemap"
	"github.com/routeworks/wayfind/pkg/worldmap"
)

// Format constants for output artifacts.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported artifact formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// DefaultRankdir is the default graph direction for DOT artifacts.
const DefaultRankdir = "TB"

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the planning pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Exactly one map source is required: a file path (.json
	// or .toml, dispatched by extension) or a preloaded Map.
	MapPath string `json:"map_path,omitempty"`

	// Plan options
	Start   string `json:"start"`
	Goal    string `json:"goal"`
	Refresh bool   `json:"refresh,omitempty"` // bypass caches and recompute

	// Render options. An empty Formats list skips the render stage.
	Formats   []string `json:"formats,omitempty"`
	Highlight bool     `json:"highlight,omitempty"` // mark the route in DOT/SVG output
	Rankdir   string   `json:"rankdir,omitempty"`

	// Runtime options (not serialized)
	Map    *worldmap.Map `json:"-"` // preloaded map, skips the Load stage
	Logger *log.Logger   `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Map is the loaded world map.
	Map worldmap.Map

	// Graph is the routing graph built from the map.
	Graph *statemap.Graph

	// Route is the computed route. Only meaningful when Found is true.
	Route statemap.Route

	// Found reports whether a route exists. A false value is a successful
	// pipeline run whose answer is "no route" - never an error.
	Found bool

	// MapHash is the content hash of the map, used in cache keys.
	MapHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	StateCount      int
	TransitionCount int
	LoadTime        time.Duration
	PlanTime        time.Duration
	RenderTime      time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	MapHit    bool // Whether the parsed map came from cache
	RouteHit  bool // Whether the route came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForPlan(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for the load stage.
func (o *Options) ValidateForLoad() error {
	if o.MapPath == "" && o.Map == nil {
		return fmt.Errorf("map_path or preloaded map is required")
	}
	o.applyLoggerDefault()
	return nil
}

// ValidateForPlan checks required fields for the plan stage.
func (o *Options) ValidateForPlan() error {
	if o.Start == "" {
		return fmt.Errorf("start state is required")
	}
	if o.Goal == "" {
		return fmt.Errorf("goal state is required")
	}
	o.applyLoggerDefault()
	return nil
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if o.Rankdir == "" {
		o.Rankdir = DefaultRankdir
	}
	o.applyLoggerDefault()
	return ValidateFormats(o.Formats)
}

// MapSource returns the identity of the map source for cache keys: the
// cleaned file path, or "inline" for preloaded maps (which are hashed by
// content instead).
func (o *Options) MapSource() string {
	if o.MapPath != "" {
		return filepath.Clean(o.MapPath)
	}
	return "inline"
}

// IsManifest reports whether the map path points at a TOML manifest rather
// than a JSON map file.
func (o *Options) IsManifest() bool {
	return strings.EqualFold(filepath.Ext(o.MapPath), ".toml")
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:    format,
		Start:     o.Start,
		Goal:      o.Goal,
		Highlight: o.Highlight,
	}
}

func (o *Options) applyLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
