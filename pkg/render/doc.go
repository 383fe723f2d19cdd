// Package render draws snapshot trees as node-link diagrams.
//
// # Overview
//
// [ToDOT] converts a serialized selection into Graphviz DOT: one box per
// node, one edge per parent-child relation, sibling order preserved in
// declaration order. [RenderSVG] turns the DOT text into an SVG using the
// embedded Graphviz engine.
//
// Hidden nodes are drawn dashed, component nodes get a distinct fill, and
// the detailed mode adds geometry and type-specific attributes to the
// labels.
package render
