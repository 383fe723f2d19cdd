// Package store provides persistent archives of snapshot payloads.
//
// This package defines the [Store] interface with implementations for
// different backends:
//   - memory: in-memory storage for development/testing
//   - mongo: MongoDB-backed storage for server deployments
//
// Records are immutable once saved: the archive stores payloads verbatim
// and never interprets or rewrites them.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/scenesnap/scenesnap/pkg/errors"
	"github.com/scenesnap/scenesnap/pkg/snapshot"
)

// ErrNotFound is returned by [Store.Get] when no record carries the id.
var ErrNotFound = errors.New(errors.ErrCodeSnapshotNotFound, "snapshot not found")

// Record is one archived snapshot.
type Record struct {
	ID        string            `json:"id" bson:"_id"`
	CreatedAt time.Time         `json:"createdAt" bson:"createdAt"`
	PageID    string            `json:"pageId" bson:"pageId"`
	PageName  string            `json:"pageName" bson:"pageName"`
	NodeCount int               `json:"nodeCount" bson:"nodeCount"`
	Snapshot  snapshot.Envelope `json:"snapshot" bson:"snapshot"`
}

// NewRecord wraps an envelope in a record with a fresh id and timestamp.
func NewRecord(env *snapshot.Envelope) Record {
	return Record{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		PageID:    env.PageID,
		PageName:  env.PageName,
		NodeCount: snapshot.CountNodes(env.SelectedNodes),
		Snapshot:  *env,
	}
}

// Store is the snapshot archive interface.
type Store interface {
	// Save persists a record.
	Save(ctx context.Context, rec Record) error

	// Get retrieves a record by id. Returns [ErrNotFound] when absent.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns up to limit records, newest first.
	// A limit of 0 means no limit.
	List(ctx context.Context, limit int) ([]Record, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
