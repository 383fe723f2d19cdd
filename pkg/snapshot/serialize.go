package snapshot

import (
	"slices"

	"github.com/scenesnap/scenesnap/pkg/scene"
)

// MaxDepth bounds the recursive walk. Depth is driven by host input, so the
// serializer refuses to follow children past this level instead of risking
// stack exhaustion on pathological or cyclic trees.
const MaxDepth = 1024

// SerializedNode is the stable, explicit output schema for a single node.
// Common fields are always present; type-specific fields appear only when
// the source node carries the attribute and it is not mixed. Children is
// present iff the source node has one or more children.
type SerializedNode struct {
	Type    string  `json:"type" bson:"type"`
	Name    string  `json:"name" bson:"name"`
	X       float64 `json:"x" bson:"x"`
	Y       float64 `json:"y" bson:"y"`
	Width   float64 `json:"width" bson:"width"`
	Height  float64 `json:"height" bson:"height"`
	ID      string  `json:"id" bson:"id"`
	Visible bool    `json:"visible" bson:"visible"`

	// Frame-like nodes with the auto-layout capability.
	LayoutMode            *string  `json:"layoutMode,omitempty" bson:"layoutMode,omitempty"`
	PrimaryAxisSizingMode *string  `json:"primaryAxisSizingMode,omitempty" bson:"primaryAxisSizingMode,omitempty"`
	CounterAxisSizingMode *string  `json:"counterAxisSizingMode,omitempty" bson:"counterAxisSizingMode,omitempty"`
	PaddingLeft           *float64 `json:"paddingLeft,omitempty" bson:"paddingLeft,omitempty"`
	PaddingRight          *float64 `json:"paddingRight,omitempty" bson:"paddingRight,omitempty"`
	PaddingTop            *float64 `json:"paddingTop,omitempty" bson:"paddingTop,omitempty"`
	PaddingBottom         *float64 `json:"paddingBottom,omitempty" bson:"paddingBottom,omitempty"`

	// Text nodes.
	Characters          *string     `json:"characters,omitempty" bson:"characters,omitempty"`
	FontSize            *float64    `json:"fontSize,omitempty" bson:"fontSize,omitempty"`
	FontName            *scene.Font `json:"fontName,omitempty" bson:"fontName,omitempty"`
	TextAlignHorizontal *string     `json:"textAlignHorizontal,omitempty" bson:"textAlignHorizontal,omitempty"`
	TextAlignVertical   *string     `json:"textAlignVertical,omitempty" bson:"textAlignVertical,omitempty"`

	// Text and rectangle nodes. A non-nil empty list is emitted as [].
	Fills []scene.Paint `json:"fills,omitzero" bson:"fills,omitempty"`

	// Rectangle nodes.
	CornerRadius *float64      `json:"cornerRadius,omitempty" bson:"cornerRadius,omitempty"`
	Strokes      []scene.Paint `json:"strokes,omitzero" bson:"strokes,omitempty"`
	StrokeWeight *float64      `json:"strokeWeight,omitempty" bson:"strokeWeight,omitempty"`

	// Component and component-set nodes.
	ComponentID  *string `json:"componentId,omitempty" bson:"componentId,omitempty"`
	InstanceName *string `json:"instanceName,omitempty" bson:"instanceName,omitempty"`

	Children []SerializedNode `json:"children,omitempty" bson:"children,omitempty"`
}

// Count returns the number of nodes in the serialized subtree, including
// the receiver.
func (s *SerializedNode) Count() int {
	total := 1
	for i := range s.Children {
		total += s.Children[i].Count()
	}
	return total
}

// CountNodes returns the total number of serialized nodes in a forest.
func CountNodes(nodes []SerializedNode) int {
	total := 0
	for i := range nodes {
		total += nodes[i].Count()
	}
	return total
}

// Serialize converts a scene node and all its descendants into the output
// schema. It reads the node's own fields only and never mutates the input;
// each call builds a fresh tree.
//
// Per-node anomalies never fail the walk: an absent attribute or a mixed
// sentinel resolves to field omission, and unknown node kinds emit the
// common fields alone.
func Serialize(n *scene.Node) SerializedNode {
	return serialize(n, 0)
}

func serialize(n *scene.Node, depth int) SerializedNode {
	out := SerializedNode{
		Type:    string(n.Type),
		Name:    n.Name,
		X:       n.X,
		Y:       n.Y,
		Width:   n.Width,
		Height:  n.Height,
		ID:      n.ID,
		Visible: n.Visible,
	}

	// The dispatch cases are additive: a component node is frame-like and
	// also carries the component identity fields.
	if frameLike(n.Type) && n.HasLayout() {
		out.LayoutMode = clonePtr(n.LayoutMode)
		out.PrimaryAxisSizingMode = clonePtr(n.PrimaryAxisSizingMode)
		out.CounterAxisSizingMode = clonePtr(n.CounterAxisSizingMode)
		out.PaddingLeft = clonePtr(n.PaddingLeft)
		out.PaddingRight = clonePtr(n.PaddingRight)
		out.PaddingTop = clonePtr(n.PaddingTop)
		out.PaddingBottom = clonePtr(n.PaddingBottom)
	}

	if n.Type == scene.TypeText {
		out.Characters = clonePtr(n.Characters)
		if v, ok := n.FontSize.Value(); ok {
			out.FontSize = &v
		}
		if f, ok := n.FontName.Value(); ok {
			out.FontName = &f
		}
		if fills, ok := n.Fills.Value(); ok {
			out.Fills = cloneFills(fills)
		}
		out.TextAlignHorizontal = clonePtr(n.TextAlignHorizontal)
		out.TextAlignVertical = clonePtr(n.TextAlignVertical)
	}

	if n.Type == scene.TypeRectangle {
		if v, ok := n.CornerRadius.Value(); ok {
			out.CornerRadius = &v
		}
		if fills, ok := n.Fills.Value(); ok {
			out.Fills = cloneFills(fills)
		}
		if n.Strokes != nil {
			out.Strokes = cloneFills(n.Strokes)
		}
		if v, ok := n.StrokeWeight.Value(); ok {
			out.StrokeWeight = &v
		}
	}

	if n.Type == scene.TypeComponent || n.Type == scene.TypeComponentSet {
		id, name := n.ID, n.Name
		out.ComponentID = &id
		out.InstanceName = &name
	}

	if len(n.Children) > 0 && depth < MaxDepth {
		out.Children = make([]SerializedNode, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = serialize(c, depth+1)
		}
	}

	return out
}

// frameLike reports whether a kind may carry the auto-layout capability.
func frameLike(t scene.Type) bool {
	switch t {
	case scene.TypeFrame, scene.TypeInstance, scene.TypeComponent:
		return true
	}
	return false
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// cloneFills copies a paint list so the output never aliases the input tree.
// A non-nil empty input stays a non-nil empty output.
func cloneFills(paints []scene.Paint) []scene.Paint {
	if paints == nil {
		return nil
	}
	if len(paints) == 0 {
		return []scene.Paint{}
	}
	return slices.Clone(paints)
}
