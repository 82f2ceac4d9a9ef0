// Package cache provides content-addressed caching for the placement
// pipeline.
//
// The pipeline caches at three levels, each keyed by a hash of its
// input so edits upstream invalidate everything downstream:
//   - record: parsed placement records, keyed by source bytes
//   - model: draw models, keyed by record hash plus render options
//   - artifact: encoded outputs (SVG, JSON, PNG), keyed by model hash
//     plus format
//
// Backends:
//   - file: directory of JSON entries for CLI usage
//   - redis: shared cache for the serve mode
//   - mongo: durable cache for long-lived artifact storage
//   - null: caching disabled
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface all backends implement. Get reports a
// miss with (nil, false, nil); errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default TTLs per pipeline level. Records are cheap to reparse, so
// they expire first; artifacts are the most expensive to rebuild.
const (
	TTLRecord   = 24 * time.Hour
	TTLModel    = 7 * 24 * time.Hour
	TTLArtifact = 30 * 24 * time.Hour
)

// ModelKeyOpts are the render inputs that change the draw model.
type ModelKeyOpts struct {
	Palette         string `json:"palette"`
	ShowConnections bool   `json:"show_connections"`
	ShowLabels      bool   `json:"show_labels"`
	ThermalFill     bool   `json:"thermal_fill"`
}

// ArtifactKeyOpts are the encoding inputs that change the final bytes.
type ArtifactKeyOpts struct {
	Format  string  `json:"format"`
	WidthPx float64 `json:"width_px"`
}

// Keyer builds cache keys for the three pipeline levels.
type Keyer interface {
	// RecordKey keys a parsed record by the hash of its source bytes.
	RecordKey(sourceHash string) string

	// ModelKey keys a draw model by its record hash and render options.
	ModelKey(recordHash string, opts ModelKeyOpts) string

	// ArtifactKey keys encoded output by its model hash and format options.
	ArtifactKey(modelHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key scheme: a level prefix plus a hash
// of the inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// RecordKey generates a key for record caching.
func (k *DefaultKeyer) RecordKey(sourceHash string) string {
	return "record:" + sourceHash
}

// ModelKey generates a key for draw model caching.
func (k *DefaultKeyer) ModelKey(recordHash string, opts ModelKeyOpts) string {
	return hashKey("model", recordHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(modelHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", modelHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
