package scene

import "encoding/json"

// Type is the node discriminant. The set is open: hosts may send kinds not
// listed here and they still decode and serialize with common fields only.
type Type string

// Known node kinds.
const (
	TypeFrame        Type = "FRAME"
	TypeGroup        Type = "GROUP"
	TypeText         Type = "TEXT"
	TypeRectangle    Type = "RECTANGLE"
	TypeVector       Type = "VECTOR"
	TypeComponent    Type = "COMPONENT"
	TypeComponentSet Type = "COMPONENT_SET"
	TypeInstance     Type = "INSTANCE"
)

// Layout modes for frame-like nodes.
const (
	LayoutModeNone       = "NONE"
	LayoutModeHorizontal = "HORIZONTAL"
	LayoutModeVertical   = "VERTICAL"
)

// Node is a single scene-graph node. It is externally owned and treated as
// read-only by everything in this repository.
//
// Common fields are always present. Type-specific fields are optional:
// a nil pointer or an unset option value means the host did not supply the
// attribute for this node, regardless of its kind.
type Node struct {
	Type    Type    `json:"type"`
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Visible bool    `json:"visible"`
	Children []*Node `json:"children,omitempty"`

	// Auto-layout capability (frame-like nodes).
	LayoutMode            *string  `json:"layoutMode,omitempty"`
	PrimaryAxisSizingMode *string  `json:"primaryAxisSizingMode,omitempty"`
	CounterAxisSizingMode *string  `json:"counterAxisSizingMode,omitempty"`
	PaddingLeft           *float64 `json:"paddingLeft,omitempty"`
	PaddingRight          *float64 `json:"paddingRight,omitempty"`
	PaddingTop            *float64 `json:"paddingTop,omitempty"`
	PaddingBottom         *float64 `json:"paddingBottom,omitempty"`

	// Text attributes.
	Characters          *string  `json:"characters,omitempty"`
	FontSize            Float    `json:"fontSize,omitzero"`
	FontName            FontName `json:"fontName,omitzero"`
	TextAlignHorizontal *string  `json:"textAlignHorizontal,omitempty"`
	TextAlignVertical   *string  `json:"textAlignVertical,omitempty"`

	// Shape attributes. Fills is shared with text nodes.
	Fills        Paints  `json:"fills,omitzero"`
	CornerRadius Float   `json:"cornerRadius,omitzero"`
	Strokes      []Paint `json:"strokes,omitzero"`
	StrokeWeight Float   `json:"strokeWeight,omitzero"`
}

// UnmarshalJSON decodes a node, defaulting visibility to true when the host
// omits the flag.
func (n *Node) UnmarshalJSON(data []byte) error {
	type alias Node
	aux := alias{Visible: true}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*n = Node(aux)
	return nil
}

// HasLayout reports whether the node carries the auto-layout capability.
// Frame-like kinds may lack it; the probe is on the field, not the kind.
func (n *Node) HasLayout() bool {
	return n.LayoutMode != nil
}

// Count returns the number of nodes in the subtree rooted at n, including n.
func (n *Node) Count() int {
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}

// Count returns the total number of nodes in a forest, at every depth.
func Count(roots []*Node) int {
	total := 0
	for _, r := range roots {
		total += r.Count()
	}
	return total
}

// Paint is a single fill or stroke paint.
type Paint struct {
	Type    string   `json:"type" bson:"type"`
	Color   *Color   `json:"color,omitempty" bson:"color,omitempty"`
	Opacity *float64 `json:"opacity,omitempty" bson:"opacity,omitempty"`
	Visible *bool    `json:"visible,omitempty" bson:"visible,omitempty"`
}

// Paint types.
const (
	PaintSolid          = "SOLID"
	PaintGradientLinear = "GRADIENT_LINEAR"
	PaintGradientRadial = "GRADIENT_RADIAL"
	PaintImage          = "IMAGE"
)

// Color is an RGB color with channels in [0, 1].
type Color struct {
	R float64 `json:"r" bson:"r"`
	G float64 `json:"g" bson:"g"`
	B float64 `json:"b" bson:"b"`
}

// Font identifies a font by family and style.
type Font struct {
	Family string `json:"family" bson:"family"`
	Style  string `json:"style" bson:"style"`
}
