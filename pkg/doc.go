// Package pkg provides the core libraries for Scenesnap scene serialization.
//
// # Overview
//
// Scenesnap turns a design tool's scene graph into a compact, explicit JSON
// snapshot of the current selection. The pkg directory is organized into
// four main areas:
//
//  1. [scene] - Domain model (node tree, selection resolution)
//  2. [snapshot] - Serialization (explicit-schema node records, envelope)
//  3. [render] - Visualization of snapshots (Graphviz DOT and SVG)
//  4. [pipeline] - Orchestration (load → snapshot → render)
//
// # Architecture
//
// The typical data flow through Scenesnap:
//
//	Scene Document (file, URL, or inline JSON)
//	         ↓
//	    [scene] package (decode + resolve selection)
//	         ↓
//	    [snapshot] package (serialize the selected subtrees)
//	         ↓
//	    [render] package (optional DOT/SVG visualization)
//	         ↓
//	    JSON/DOT/SVG output
//
// # Quick Start
//
// Serialize a selection and render it:
//
//	import (
//	    "context"
//	    "github.com/scenesnap/scenesnap/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	defer runner.Close()
//
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    Input:   "design.json",
//	    Select:  []string{"1:2"},
//	    Formats: []string{pipeline.FormatJSON, pipeline.FormatSVG},
//	})
//
// # Main Packages
//
// ## Core Domain Logic
//
// [scene] - The host-facing document model: pages, typed nodes with
// auto-layout, text, and shape attributes, and selection resolution with
// stable tree ordering and duplicate suppression.
//
// [snapshot] - The wire format: explicit-schema serialized nodes where every
// field is present with a value or a sentinel, plus the envelope carrying
// page identity and selected subtrees.
//
// [render] - Snapshot visualization via Graphviz: DOT generation and SVG
// rasterization for quick structural inspection of a snapshot.
//
// ## Infrastructure
//
// [cache] - Content-addressed result caching. FileCache for the CLI,
// RedisCache for the API, NullCache for tests and one-shot runs.
//
// [store] - Snapshot archive. MemoryStore for development, MongoStore for
// persistent deployments.
//
// [httputil] - Cache-aware HTTP client for fetching remote scene documents.
//
// ## Orchestration
//
// [pipeline] - Ties the stages together with per-stage caching, cache-hit
// reporting, and observability hooks.
package pkg
