// Package pipeline runs the parse → model → encode pipeline for
// placement visualization.
//
// Centralizing the pipeline keeps CLI and API behavior identical: both
// build a Runner and hand it Options. Each stage caches its output by a
// content hash of its input, so editing a placement file invalidates
// its models and artifacts while untouched placements keep their cache
// entries.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Path:    "scheme.json",
//	    Palette: "hot",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mpgalab/placeview/pkg/cache"
	"github.com/mpgalab/placeview/pkg/metrics"
	"github.com/mpgalab/placeview/pkg/placement"
	"github.com/mpgalab/placeview/pkg/render"
)

// =============================================================================
// Defaults - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default output width in pixels.
	DefaultWidth = 800.0

	// DefaultPalette is the default thermal palette.
	DefaultPalette = render.DefaultPalette
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options. One of Path or Source must be set; Source wins
	// when both are.
	Path   string `json:"path,omitempty"`
	Source []byte `json:"source,omitempty"`

	// Model options. The hide/flat flags are inverted so the zero value
	// renders everything with thermal coloring.
	Palette         string `json:"palette,omitempty"`
	HideConnections bool   `json:"hide_connections,omitempty"`
	HideLabels      bool   `json:"hide_labels,omitempty"`
	FlatFill        bool   `json:"flat_fill,omitempty"`

	// Encode options.
	Formats []string `json:"formats,omitempty"`
	Width   float64  `json:"width,omitempty"`

	// Refresh bypasses cache reads and overwrites entries.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized).
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Record is the parsed placement.
	Record *placement.Record

	// RecordHash is the content hash of the source bytes.
	RecordHash string

	// Metric holds the computed placement metrics.
	Metric metrics.Metric

	// Model is the draw model.
	Model *render.Model

	// Artifacts contains encoded outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	CellCount  int
	ConnCount  int
	ParseTime  time.Duration
	ModelTime  time.Duration
	EncodeTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ParseHit  bool
	ModelHit  bool
	EncodeHit bool
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, json)", format)
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

// ValidatePalette checks that a palette name is known.
func ValidatePalette(name string) error {
	if _, err := render.LookupPalette(name); err != nil {
		return fmt.Errorf("invalid palette: %q (must be one of: %s)", name, render.PaletteList())
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	o.SetModelDefaults()
	o.SetEncodeDefaults()
	if err := ValidatePalette(o.Palette); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for parsing.
func (o *Options) ValidateForParse() error {
	if o.Path == "" && len(o.Source) == 0 {
		return fmt.Errorf("path or source is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetModelDefaults sets default values for model building.
func (o *Options) SetModelDefaults() {
	if o.Palette == "" {
		o.Palette = DefaultPalette
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetEncodeDefaults sets default values for encoding.
func (o *Options) SetEncodeDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
}

// ValidateForModel validates and sets defaults for model building.
func (o *Options) ValidateForModel() error {
	o.SetModelDefaults()
	return ValidatePalette(o.Palette)
}

// ValidateForEncode validates and sets defaults for encoding.
func (o *Options) ValidateForEncode() error {
	o.SetEncodeDefaults()
	return ValidateFormats(o.Formats)
}

// RenderOptions translates the inverted flags into render options.
func (o *Options) RenderOptions() render.Options {
	return render.Options{
		ShowConnections: !o.HideConnections,
		ShowLabels:      !o.HideLabels,
		ThermalFill:     !o.FlatFill,
	}
}

// ModelKeyOpts returns cache key options for model building.
func (o *Options) ModelKeyOpts() cache.ModelKeyOpts {
	return cache.ModelKeyOpts{
		Palette:         o.Palette,
		ShowConnections: !o.HideConnections,
		ShowLabels:      !o.HideLabels,
		ThermalFill:     !o.FlatFill,
	}
}

// ArtifactKeyOpts returns cache key options for artifact encoding.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:  format,
		WidthPx: o.Width,
	}
}
