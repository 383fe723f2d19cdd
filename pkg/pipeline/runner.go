package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/scenesnap/scenesnap/pkg/cache"
	"github.com/scenesnap/scenesnap/pkg/errors"
	"github.com/scenesnap/scenesnap/pkg/httputil"
	"github.com/scenesnap/scenesnap/pkg/observability"
	"github.com/scenesnap/scenesnap/pkg/render"
	"github.com/scenesnap/scenesnap/pkg/scene"
	"github.com/scenesnap/scenesnap/pkg/snapshot"
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

// Execute runs the complete load → snapshot → render pipeline with caching.
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
	observability.Pipeline().OnLoadStart(ctx, opts.Input)
	doc, docHash, docHit, err := r.LoadWithCacheInfo(ctx, opts)
	result.Stats.LoadTime = time.Since(loadStart)
	observability.Pipeline().OnLoadComplete(ctx, opts.Input, result.Stats.LoadTime, err)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Document = doc
	result.DocHash = docHash
	result.CacheInfo.DocumentHit = docHit

	r.Logger.Info("loaded document",
		"page", doc.Page.Name,
		"nodes", scene.Count(doc.Nodes),
		"duration", result.Stats.LoadTime)

	// Stage 2: Snapshot
	snapStart := time.Now()
	observability.Pipeline().OnSnapshotStart(ctx, opts.Input)
	env, snapHit, err := r.SnapshotWithCacheInfo(ctx, doc, docHash, opts)
	result.Stats.SnapshotTime = time.Since(snapStart)
	if err == nil {
		result.Stats.NodeCount = snapshot.CountNodes(env.SelectedNodes)
	}
	observability.Pipeline().OnSnapshotComplete(ctx, opts.Input, result.Stats.NodeCount, result.Stats.SnapshotTime, err)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	result.Envelope = env
	result.CacheInfo.SnapshotHit = snapHit

	r.Logger.Info("serialized selection",
		"roots", len(env.SelectedNodes),
		"nodes", result.Stats.NodeCount,
		"duration", result.Stats.SnapshotTime)

	// Stage 3: Render
	renderStart := time.Now()
	formats := strings.Join(opts.Formats, ",")
	observability.Pipeline().OnRenderStart(ctx, formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, env, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo reads and decodes the scene document and returns its
// content hash along with cache hit info. Remote URLs are fetched through
// the shared HTTP client; files and inline documents never hit the cache.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (*scene.Document, string, bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, "", false, err
	}
	r.applyLogger(&opts)

	var (
		data []byte
		hit  bool
		err  error
	)
	switch {
	case opts.Document != "":
		data = []byte(opts.Document)
	case httputil.IsURL(opts.Input):
		if opts.Refresh {
			_ = r.Cache.Delete(ctx, r.Keyer.DocumentKey(opts.Input))
		}
		client := httputil.NewClient(r.Cache, r.Keyer, cache.TTLDocument)
		data, hit, err = client.FetchDocument(ctx, opts.Input)
		if err != nil {
			return nil, "", false, err
		}
	default:
		data, err = os.ReadFile(opts.Input)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, "", false, errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found: %s", opts.Input)
			}
			return nil, "", false, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", opts.Input)
		}
	}

	doc, err := scene.ReadDocument(bytes.NewReader(data))
	if err != nil {
		return nil, "", false, err
	}
	return doc, cache.Hash(data), hit, nil
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) (*scene.Document, string, error) {
	doc, hash, _, err := r.LoadWithCacheInfo(ctx, opts)
	return doc, hash, err
}

// SnapshotWithCacheInfo serializes the selection with caching and returns cache hit info.
func (r *Runner) SnapshotWithCacheInfo(ctx context.Context, doc *scene.Document, docHash string, opts Options) (*snapshot.Envelope, bool, error) {
	if err := opts.ValidateForSnapshot(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.SnapshotKey(docHash, opts.SnapshotKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "snapshot")
			env, err := snapshot.Read(bytes.NewReader(data))
			if err == nil {
				return env, true, nil // Cache hit
			}
		} else {
			observability.Cache().OnCacheMiss(ctx, "snapshot")
		}
	}

	// Serialize
	if len(opts.Select) > 0 {
		doc = &scene.Document{Page: doc.Page, Selection: opts.Select, Nodes: doc.Nodes}
	}
	env, err := snapshot.FromDocument(doc)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := snapshot.Marshal(env); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLSnapshot)
		observability.Cache().OnCacheSet(ctx, "snapshot", len(data))
	}

	return env, false, nil // Cache miss
}

// Snapshot is a convenience wrapper that calls SnapshotWithCacheInfo and discards the cache hit info.
func (r *Runner) Snapshot(ctx context.Context, doc *scene.Document, docHash string, opts Options) (*snapshot.Envelope, error) {
	env, _, err := r.SnapshotWithCacheInfo(ctx, doc, docHash, opts)
	return env, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, env *snapshot.Envelope, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from the envelope, which already folds in the
	// document content and the selection.
	envData, err := snapshot.Marshal(env)
	if err != nil {
		return nil, false, fmt.Errorf("serialize snapshot for cache key: %w", err)
	}
	envHash := cache.Hash(envData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.RenderKey(envHash, opts.RenderKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil // All artifacts from cache
	}

	// Render all formats
	rendered, err := Render(env, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.RenderKey(envHash, opts.RenderKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLRender)
	}

	return rendered, false, nil // Cache miss
}

// Render generates output artifacts in the requested formats.
func Render(env *snapshot.Envelope, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()

	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = snapshot.Marshal(env)
		case FormatDOT:
			data = []byte(render.ToDOT(env, render.Options{Detailed: opts.Detailed}))
		case FormatSVG:
			dot := render.ToDOT(env, render.Options{Detailed: opts.Detailed})
			data, err = render.RenderSVG(dot)
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
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
