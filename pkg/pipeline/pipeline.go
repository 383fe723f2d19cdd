// Package pipeline provides the core snapshot pipeline for Scenesnap.
//
// This package implements the complete load → snapshot → render pipeline that
// can be used by CLI, API, and worker components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a scene document from a file, stdin, or a remote URL
//  2. Snapshot: Resolve the selection and serialize it into an envelope
//  3. Render: Generate output in various formats (JSON, DOT, SVG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "design.json",
//	    Select:  []string{"1:2", "1:9"},
//	    Formats: []string{"json"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	payload := result.Artifacts["json"]
//
// Run individual stages:
//
//	// Load only
//	doc, _, err := runner.Load(ctx, opts)
//
//	// Snapshot with an existing document
//	env, err := runner.Snapshot(ctx, doc, opts)
//
//	// Render with an existing envelope
//	artifacts, err := runner.Render(ctx, env, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/scenesnap/scenesnap/pkg/cache"
	"github.com/scenesnap/scenesnap/pkg/errors"
	"github.com/scenesnap/scenesnap/pkg/scene"
	"github.com/scenesnap/scenesnap/pkg/snapshot"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the snapshot pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Input    string `json:"input,omitempty"`    // File path or URL of the scene document
	Document string `json:"document,omitempty"` // Inline document JSON (API requests)
	Refresh  bool   `json:"refresh,omitempty"`  // Bypass cached documents and snapshots

	// Snapshot options
	Select []string `json:"select,omitempty"` // Node ids overriding the document's selection

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // Include geometry and text in DOT/SVG labels

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the loaded scene document.
	Document *scene.Document

	// DocHash is the content hash of the raw document bytes.
	DocHash string

	// Envelope is the serialized selection.
	Envelope *snapshot.Envelope

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int
	LoadTime     time.Duration
	SnapshotTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	DocumentHit bool // Whether the document bytes came from cache
	SnapshotHit bool // Whether the envelope came from cache
	RenderHit   bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, dot, svg)", format)
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

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForSnapshot(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading a document.
func (o *Options) ValidateForLoad() error {
	if o.Input == "" && o.Document == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input or document is required")
	}
	if o.Input != "" && o.Document != "" {
		return errors.New(errors.ErrCodeInvalidInput, "input and document are mutually exclusive")
	}
	if o.Input != "" {
		if err := errors.ValidateInputPath(o.Input); err != nil {
			return err
		}
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// ValidateForSnapshot checks the selection override ids.
func (o *Options) ValidateForSnapshot() error {
	for _, id := range o.Select {
		if err := errors.ValidateNodeID(id); err != nil {
			return err
		}
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// SnapshotKeyOpts returns cache key options for the snapshot stage.
func (o *Options) SnapshotKeyOpts() cache.SnapshotKeyOpts {
	return cache.SnapshotKeyOpts{
		Selection: o.Select,
	}
}

// RenderKeyOpts returns cache key options for artifact rendering.
func (o *Options) RenderKeyOpts(format string) cache.RenderKeyOpts {
	return cache.RenderKeyOpts{
		Format:   format,
		Detailed: o.Detailed,
	}
}
