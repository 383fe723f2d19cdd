// Package scene models host-supplied scene documents: forests of typed,
// polymorphic nodes with geometric and visual attributes.
//
// # Node Model
//
// [Node] is a single flat record for every node kind. The discriminant
// [Type] is an open set: unknown kinds decode without error and carry the
// common fields only. Type-specific attributes are explicit optional fields
// (pointers), never narrowing casts - a runtime instance of a nominal type
// may legitimately lack an attribute its kind usually carries, so presence
// is always probed, never assumed.
//
// # Mixed Values
//
// Attributes that can be inconsistent across a mixed selection (font size,
// font name, fills, corner radius, stroke weight) use the three-valued
// option types [Float], [FontName], and [Paints]: unset, set, or mixed.
// The mixed state is decoded from the wire token [MixedToken] and is a
// distinguished state of the option type, not a host-global constant
// compared by identity.
//
// # Documents
//
// [Document] is the envelope the host hands over: page identity, the root
// node forest, and an optional list of selected node ids. Selection ids are
// resolved depth-first against the forest with [Document.ResolveSelection].
package scene
