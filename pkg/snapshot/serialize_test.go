package snapshot

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/scenesnap/scenesnap/pkg/scene"
)

func strPtr(s string) *string   { return &s }
func numPtr(v float64) *float64 { return &v }

func textNode(id, name, chars string) *scene.Node {
	return &scene.Node{
		Type:                scene.TypeText,
		ID:                  id,
		Name:                name,
		Visible:             true,
		Characters:          strPtr(chars),
		FontSize:            scene.NewFloat(14),
		FontName:            scene.NewFontName(scene.Font{Family: "Inter", Style: "Regular"}),
		TextAlignHorizontal: strPtr("LEFT"),
		TextAlignVertical:   strPtr("TOP"),
		Fills:               scene.NewPaints([]scene.Paint{{Type: scene.PaintSolid}}),
	}
}

func TestSerializeCommonFields(t *testing.T) {
	n := &scene.Node{
		Type:    scene.TypeVector,
		ID:      "5:1",
		Name:    "Arrow",
		X:       1.5,
		Y:       -2,
		Width:   24,
		Height:  24,
		Visible: false,
	}

	out := Serialize(n)

	want := SerializedNode{
		Type: "VECTOR", Name: "Arrow",
		X: 1.5, Y: -2, Width: 24, Height: 24,
		ID: "5:1", Visible: false,
	}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("Serialize() = %+v, want %+v", out, want)
	}
}

func TestSerializeUnknownType(t *testing.T) {
	n := &scene.Node{Type: "BOOLEAN_OPERATION", ID: "7:7", Name: "Union", Visible: true}

	out := Serialize(n)

	if out.Type != "BOOLEAN_OPERATION" || out.ID != "7:7" {
		t.Errorf("common fields = %q/%q, want BOOLEAN_OPERATION/7:7", out.Type, out.ID)
	}
	data, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(fields) != 8 {
		t.Errorf("unknown kind emitted %d fields %v, want the 8 common ones", len(fields), fields)
	}
}

func TestSerializeFrameLayout(t *testing.T) {
	tests := []struct {
		name       string
		node       *scene.Node
		wantLayout bool
	}{
		{
			name: "frame with layout capability",
			node: &scene.Node{
				Type: scene.TypeFrame, ID: "1:1", Name: "Stack", Visible: true,
				LayoutMode:            strPtr(scene.LayoutModeVertical),
				PrimaryAxisSizingMode: strPtr("AUTO"),
				CounterAxisSizingMode: strPtr("FIXED"),
				PaddingLeft:           numPtr(8),
				PaddingRight:          numPtr(8),
				PaddingTop:            numPtr(16),
				PaddingBottom:         numPtr(16),
			},
			wantLayout: true,
		},
		{
			name:       "frame without layout capability",
			node:       &scene.Node{Type: scene.TypeFrame, ID: "1:2", Name: "Plain", Visible: true},
			wantLayout: false,
		},
		{
			name: "instance with layout capability",
			node: &scene.Node{
				Type: scene.TypeInstance, ID: "1:3", Name: "Button", Visible: true,
				LayoutMode: strPtr(scene.LayoutModeHorizontal),
			},
			wantLayout: true,
		},
		{
			name: "text never copies layout fields",
			node: &scene.Node{
				Type: scene.TypeText, ID: "1:4", Name: "Label", Visible: true,
				LayoutMode: strPtr(scene.LayoutModeHorizontal),
			},
			wantLayout: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Serialize(tt.node)
			if got := out.LayoutMode != nil; got != tt.wantLayout {
				t.Errorf("layoutMode present = %v, want %v", got, tt.wantLayout)
			}
			if tt.wantLayout && *out.LayoutMode != *tt.node.LayoutMode {
				t.Errorf("layoutMode = %q, want %q", *out.LayoutMode, *tt.node.LayoutMode)
			}
			if !tt.wantLayout && out.PaddingLeft != nil {
				t.Error("paddings should be absent without the layout capability")
			}
		})
	}
}

func TestSerializeText(t *testing.T) {
	n := textNode("3:1", "Title", "Hello")
	out := Serialize(n)

	if out.Characters == nil || *out.Characters != "Hello" {
		t.Errorf("characters = %v, want Hello", out.Characters)
	}
	if out.FontSize == nil || *out.FontSize != 14 {
		t.Errorf("fontSize = %v, want 14", out.FontSize)
	}
	if out.FontName == nil || out.FontName.Family != "Inter" {
		t.Errorf("fontName = %v, want Inter", out.FontName)
	}
	if out.TextAlignHorizontal == nil || *out.TextAlignHorizontal != "LEFT" {
		t.Errorf("textAlignHorizontal = %v, want LEFT", out.TextAlignHorizontal)
	}
	if len(out.Fills) != 1 {
		t.Errorf("fills = %v, want one paint", out.Fills)
	}
}

func TestSerializeTextMixedAttributes(t *testing.T) {
	n := textNode("3:2", "Body", "copy")
	n.FontSize = scene.MixedFloat()
	n.FontName = scene.MixedFontName()
	n.Fills = scene.MixedPaints()

	out := Serialize(n)

	if out.FontSize != nil {
		t.Error("mixed fontSize must be absent, not present with a value")
	}
	if out.FontName != nil {
		t.Error("mixed fontName must be absent")
	}
	if out.Fills != nil {
		t.Error("mixed fills must be absent")
	}
	// Non-mixed attributes survive.
	if out.Characters == nil || *out.Characters != "copy" {
		t.Errorf("characters = %v, want copy", out.Characters)
	}
}

func TestSerializeRectangle(t *testing.T) {
	n := &scene.Node{
		Type: scene.TypeRectangle, ID: "4:1", Name: "Card", Visible: true,
		Width: 100, Height: 50,
		CornerRadius: scene.NewFloat(4),
		Fills:        scene.MixedPaints(),
		Strokes:      []scene.Paint{{Type: scene.PaintSolid}},
		StrokeWeight: scene.NewFloat(2),
	}

	out := Serialize(n)

	if out.CornerRadius == nil || *out.CornerRadius != 4 {
		t.Errorf("cornerRadius = %v, want 4", out.CornerRadius)
	}
	if out.Fills != nil {
		t.Error("mixed fills must be absent")
	}
	if len(out.Strokes) != 1 {
		t.Errorf("strokes = %v, want one paint", out.Strokes)
	}
	if out.StrokeWeight == nil || *out.StrokeWeight != 2 {
		t.Errorf("strokeWeight = %v, want 2", out.StrokeWeight)
	}
	if out.Children != nil {
		t.Error("childless node must not carry children")
	}
}

func TestSerializeRectangleMixedStrokeWeight(t *testing.T) {
	n := &scene.Node{
		Type: scene.TypeRectangle, ID: "4:2", Name: "Box", Visible: true,
		Strokes:      []scene.Paint{},
		StrokeWeight: scene.MixedFloat(),
	}

	out := Serialize(n)

	if out.StrokeWeight != nil {
		t.Error("mixed strokeWeight must be absent")
	}
	// Strokes are always copied; an explicit empty list stays an empty list.
	if out.Strokes == nil || len(out.Strokes) != 0 {
		t.Errorf("strokes = %v, want explicit empty list", out.Strokes)
	}
}

func TestSerializeComponent(t *testing.T) {
	tests := []struct {
		name string
		typ  scene.Type
	}{
		{"component", scene.TypeComponent},
		{"component set", scene.TypeComponentSet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &scene.Node{Type: tt.typ, ID: "123:4", Name: "Button", Visible: true}
			out := Serialize(n)

			if out.ComponentID == nil || *out.ComponentID != "123:4" {
				t.Errorf("componentId = %v, want 123:4", out.ComponentID)
			}
			if out.InstanceName == nil || *out.InstanceName != "Button" {
				t.Errorf("instanceName = %v, want Button", out.InstanceName)
			}
		})
	}
}

func TestSerializeChildren(t *testing.T) {
	frame := &scene.Node{
		Type: scene.TypeFrame, ID: "1:1", Name: "Card", Visible: true,
		Children: []*scene.Node{
			textNode("1:2", "Title", "Hello"),
			textNode("1:3", "Body", "World"),
		},
	}

	out := Serialize(frame)

	if len(out.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(out.Children))
	}
	// Original sibling order, no sorting.
	if out.Children[0].ID != "1:2" || out.Children[1].ID != "1:3" {
		t.Errorf("child order = [%s %s], want [1:2 1:3]", out.Children[0].ID, out.Children[1].ID)
	}
	for i, c := range out.Children {
		if c.Characters == nil {
			t.Errorf("child %d missing characters", i)
		}
	}
}

func TestSerializeEmptyChildSlice(t *testing.T) {
	// An empty (but non-nil) child sequence still yields no children key.
	n := &scene.Node{Type: scene.TypeGroup, ID: "2:1", Name: "Empty", Visible: true, Children: []*scene.Node{}}

	out := Serialize(n)
	if out.Children != nil {
		t.Fatalf("children = %v, want absent", out.Children)
	}

	data, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := fields["children"]; ok {
		t.Error("children key present for childless node")
	}
}

func TestSerializePreservesShape(t *testing.T) {
	deep := &scene.Node{
		Type: scene.TypeFrame, ID: "r", Name: "root", Visible: true,
		Children: []*scene.Node{
			{Type: scene.TypeGroup, ID: "a", Visible: true, Children: []*scene.Node{
				textNode("a1", "t", "x"),
				{Type: scene.TypeVector, ID: "a2", Visible: true},
			}},
			{Type: scene.TypeRectangle, ID: "b", Visible: true},
		},
	}

	out := Serialize(deep)

	if got, want := out.Count(), deep.Count(); got != want {
		t.Errorf("node count = %d, want %d", got, want)
	}
	if out.Children[0].Children[0].ID != "a1" || out.Children[0].Children[1].ID != "a2" {
		t.Error("nested order not preserved")
	}
}

func TestSerializeIdempotent(t *testing.T) {
	n := &scene.Node{
		Type: scene.TypeFrame, ID: "1:1", Name: "Card", Visible: true,
		LayoutMode: strPtr(scene.LayoutModeVertical),
		Children:   []*scene.Node{textNode("1:2", "Title", "Hello")},
	}

	first := Serialize(n)
	second := Serialize(n)

	if !reflect.DeepEqual(first, second) {
		t.Error("serializing the same input twice produced different trees")
	}

	a, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	b, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(a) != string(b) {
		t.Error("serializing the same input twice produced different JSON")
	}
}

func TestSerializeDoesNotMutateInput(t *testing.T) {
	fills := []scene.Paint{{Type: scene.PaintSolid}}
	n := &scene.Node{
		Type: scene.TypeRectangle, ID: "4:1", Name: "Card", Visible: true,
		Fills:   scene.NewPaints(fills),
		Strokes: []scene.Paint{{Type: scene.PaintSolid}},
	}

	out := Serialize(n)
	out.Fills[0].Type = scene.PaintImage
	out.Strokes[0].Type = scene.PaintImage

	if fills[0].Type != scene.PaintSolid || n.Strokes[0].Type != scene.PaintSolid {
		t.Error("output aliases the input paint lists")
	}
}

func TestSerializeDepthGuard(t *testing.T) {
	// Build a chain deeper than the cap; the walk must terminate and drop
	// children beyond MaxDepth instead of exhausting the stack.
	root := &scene.Node{Type: scene.TypeGroup, ID: "0", Visible: true}
	cur := root
	for i := 1; i <= MaxDepth+10; i++ {
		child := &scene.Node{Type: scene.TypeGroup, ID: "n", Visible: true}
		cur.Children = []*scene.Node{child}
		cur = child
	}

	out := Serialize(root)

	depth := 0
	for n := &out; n.Children != nil; n = &n.Children[0] {
		depth++
	}
	if depth > MaxDepth {
		t.Errorf("serialized depth = %d, want at most %d", depth, MaxDepth)
	}
}
