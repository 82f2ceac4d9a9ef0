package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mpgalab/placeview/pkg/cache"
	"github.com/mpgalab/placeview/pkg/metrics"
	"github.com/mpgalab/placeview/pkg/observability"
	"github.com/mpgalab/placeview/pkg/placement"
	"github.com/mpgalab/placeview/pkg/render"
	"github.com/mpgalab/placeview/pkg/render/sink"
	"github.com/mpgalab/placeview/pkg/view"
)

// Runner encapsulates pipeline execution with caching.
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

// Execute runs the complete parse → model → encode pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Parse
	parseStart := time.Now()
	rec, recordHash, parseHit, err := r.ParseWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Record = rec
	result.RecordHash = recordHash
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.CellCount = len(rec.Cells)
	result.Stats.ConnCount = len(rec.Conns)
	result.CacheInfo.ParseHit = parseHit

	// Metrics recompute every run; they are cheap next to encoding.
	result.Metric = metrics.Compute(rec)

	r.Logger.Info("parsed placement",
		"cells", len(rec.Cells),
		"connections", len(rec.Conns),
		"duration", result.Stats.ParseTime)

	// Stage 2: Model
	modelStart := time.Now()
	model, modelHit, err := r.BuildModelWithCacheInfo(ctx, rec, recordHash, opts)
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}
	result.Model = model
	result.Stats.ModelTime = time.Since(modelStart)
	result.CacheInfo.ModelHit = modelHit

	r.Logger.Info("built draw model",
		"shapes", len(model.Shapes),
		"routes", len(model.Routes),
		"duration", result.Stats.ModelTime)

	// Stage 3: Encode
	encodeStart := time.Now()
	artifacts, encodeHit, err := r.EncodeWithCacheInfo(ctx, model, opts)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.EncodeTime = time.Since(encodeStart)
	result.CacheInfo.EncodeHit = encodeHit

	r.Logger.Info("encoded outputs",
		"formats", opts.Formats,
		"duration", result.Stats.EncodeTime)

	return result, nil
}

// ParseWithCacheInfo loads and parses the placement with caching, and
// returns the record, its source hash and cache hit info.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, opts Options) (*placement.Record, string, bool, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, "", false, err
	}
	r.applyLogger(&opts)

	sourceName := opts.Path
	if sourceName == "" {
		sourceName = "inline"
	}
	start := time.Now()
	observability.Pipeline().OnParseStart(ctx, sourceName)

	source := opts.Source
	if len(source) == 0 {
		data, err := os.ReadFile(opts.Path)
		if err != nil {
			err = fmt.Errorf("read %s: %w", opts.Path, err)
			observability.Pipeline().OnParseComplete(ctx, sourceName, 0, time.Since(start), err)
			return nil, "", false, err
		}
		source = data
	}
	recordHash := cache.Hash(source)
	cacheKey := r.Keyer.RecordKey(recordHash)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var rec placement.Record
			if err := json.Unmarshal(data, &rec); err == nil {
				observability.Cache().OnCacheHit(ctx, "record")
				observability.Pipeline().OnParseComplete(ctx, sourceName, len(rec.Cells), time.Since(start), nil)
				return &rec, recordHash, true, nil // Cache hit
			}
		}
	}
	observability.Cache().OnCacheMiss(ctx, "record")

	rec, err := placement.Parse(source)
	if err != nil {
		observability.Pipeline().OnParseComplete(ctx, sourceName, 0, time.Since(start), err)
		return nil, "", false, err
	}

	if data, err := json.Marshal(rec); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLRecord)
		observability.Cache().OnCacheSet(ctx, "record", len(data))
	}

	observability.Pipeline().OnParseComplete(ctx, sourceName, len(rec.Cells), time.Since(start), nil)
	return rec, recordHash, false, nil // Cache miss
}

// Parse is a convenience wrapper that discards hash and cache hit info.
func (r *Runner) Parse(ctx context.Context, opts Options) (*placement.Record, error) {
	rec, _, _, err := r.ParseWithCacheInfo(ctx, opts)
	return rec, err
}

// BuildModelWithCacheInfo builds the draw model with caching and
// returns cache hit info. The record hash must come from
// ParseWithCacheInfo so the key chain stays content addressed.
func (r *Runner) BuildModelWithCacheInfo(ctx context.Context, rec *placement.Record, recordHash string, opts Options) (*render.Model, bool, error) {
	if err := opts.ValidateForModel(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	start := time.Now()
	observability.Pipeline().OnModelStart(ctx, opts.Palette, len(rec.Cells))

	cacheKey := r.Keyer.ModelKey(recordHash, opts.ModelKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached render.Model
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "model")
				observability.Pipeline().OnModelComplete(ctx, opts.Palette, time.Since(start), nil)
				return &cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to rebuild
		}
	}
	observability.Cache().OnCacheMiss(ctx, "model")

	renderCtx, err := render.NewContext(opts.Palette, rec)
	if err != nil {
		observability.Pipeline().OnModelComplete(ctx, opts.Palette, time.Since(start), err)
		return nil, false, err
	}
	model, err := render.Build(rec, renderCtx, view.FromField(rec.FieldOrDefault()), opts.RenderOptions())
	if err != nil {
		observability.Pipeline().OnModelComplete(ctx, opts.Palette, time.Since(start), err)
		return nil, false, err
	}

	if data, err := json.Marshal(model); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLModel)
		observability.Cache().OnCacheSet(ctx, "model", len(data))
	}

	observability.Pipeline().OnModelComplete(ctx, opts.Palette, time.Since(start), nil)
	return model, false, nil // Cache miss
}

// BuildModel is a convenience wrapper that discards the cache hit info.
func (r *Runner) BuildModel(ctx context.Context, rec *placement.Record, recordHash string, opts Options) (*render.Model, error) {
	model, _, err := r.BuildModelWithCacheInfo(ctx, rec, recordHash, opts)
	return model, err
}

// EncodeWithCacheInfo encodes artifacts with caching and returns cache
// hit info.
func (r *Runner) EncodeWithCacheInfo(ctx context.Context, model *render.Model, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForEncode(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	start := time.Now()
	observability.Pipeline().OnEncodeStart(ctx, opts.Formats)

	modelData, err := json.Marshal(model)
	if err != nil {
		return nil, false, fmt.Errorf("serialize model for cache key: %w", err)
	}
	modelHash := cache.Hash(modelData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(modelHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			observability.Pipeline().OnEncodeComplete(ctx, opts.Formats, time.Since(start), nil)
			return artifacts, true, nil // All artifacts from cache
		}
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	artifacts = make(map[string][]byte)
	for _, format := range opts.Formats {
		var buf bytes.Buffer
		switch format {
		case FormatSVG:
			err = sink.WriteSVG(&buf, model, opts.Width)
		case FormatJSON:
			err = sink.WriteJSON(&buf, model)
		default:
			err = ValidateFormat(format)
		}
		if err != nil {
			err = fmt.Errorf("encode %s: %w", format, err)
			observability.Pipeline().OnEncodeComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, false, err
		}
		artifacts[format] = buf.Bytes()
	}

	// Cache each format
	for format, data := range artifacts {
		cacheKey := r.Keyer.ArtifactKey(modelHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	observability.Pipeline().OnEncodeComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, false, nil // Cache miss
}

// Encode is a convenience wrapper that discards the cache hit info.
func (r *Runner) Encode(ctx context.Context, model *render.Model, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.EncodeWithCacheInfo(ctx, model, opts)
	return artifacts, err
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
