// Package snapshot serializes scene-graph selections into deterministic,
// JSON-ready snapshots.
//
// # Overview
//
// [Serialize] walks a node and its descendants depth-first and produces a
// [SerializedNode] tree that mirrors the input shape exactly: same node
// count, same sibling order, same nesting. [Build] assembles the selection
// envelope around the serialized roots, and [Payload] encodes the final
// boundary message (envelope or error payload) as pretty-printed JSON.
//
// # Field Presence
//
// The output schema is explicit and stable. A field is present iff the
// source node carries the attribute with a concrete value:
//
//   - mixed sentinel values are never encoded; the field is simply absent
//   - a node with zero children never has a children key
//   - unknown node kinds serialize common fields only
//
// Per-node anomalies never fail a walk. The only caller-visible error is
// [ErrEmptySelection] for a selection with zero roots.
package snapshot
