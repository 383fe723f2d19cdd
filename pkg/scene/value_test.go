package scene

import (
	"encoding/json"
	"testing"
)

func TestFloatUnmarshal(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantState State
		wantVal   float64
		wantErr   bool
	}{
		{"number", "4", Set, 4, false},
		{"fraction", "2.5", Set, 2.5, false},
		{"mixed token", `"__mixed__"`, Mixed, 0, false},
		{"null", "null", Unset, 0, false},
		{"other string", `"big"`, Unset, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Float
			err := json.Unmarshal([]byte(tt.input), &f)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if f.State() != tt.wantState {
				t.Errorf("State() = %v, want %v", f.State(), tt.wantState)
			}
			if v, ok := f.Value(); ok != (tt.wantState == Set) || v != tt.wantVal {
				t.Errorf("Value() = (%v, %v), want (%v, %v)", v, ok, tt.wantVal, tt.wantState == Set)
			}
		})
	}
}

func TestFloatRoundTrip(t *testing.T) {
	for _, f := range []Float{NewFloat(12), MixedFloat()} {
		data, err := json.Marshal(f)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		var back Float
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if back != f {
			t.Errorf("round trip = %+v, want %+v", back, f)
		}
	}
}

func TestFontNameUnmarshal(t *testing.T) {
	var f FontName
	if err := json.Unmarshal([]byte(`{"family":"Inter","style":"Bold"}`), &f); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	font, ok := f.Value()
	if !ok {
		t.Fatal("Value() not present after decoding object")
	}
	if font.Family != "Inter" || font.Style != "Bold" {
		t.Errorf("font = %+v, want Inter/Bold", font)
	}

	if err := json.Unmarshal([]byte(`"__mixed__"`), &f); err != nil {
		t.Fatalf("Unmarshal mixed: %v", err)
	}
	if !f.IsMixed() {
		t.Error("IsMixed() = false after decoding mixed token")
	}
}

func TestPaintsUnmarshal(t *testing.T) {
	var p Paints
	if err := json.Unmarshal([]byte(`[{"type":"SOLID","color":{"r":1,"g":0,"b":0}}]`), &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	paints, ok := p.Value()
	if !ok || len(paints) != 1 {
		t.Fatalf("Value() = (%v, %v), want one paint", paints, ok)
	}
	if paints[0].Type != PaintSolid {
		t.Errorf("paint type = %q, want %q", paints[0].Type, PaintSolid)
	}

	if err := json.Unmarshal([]byte(`"__mixed__"`), &p); err != nil {
		t.Fatalf("Unmarshal mixed: %v", err)
	}
	if !p.IsMixed() {
		t.Error("IsMixed() = false after decoding mixed token")
	}

	// An explicit empty list is a set value, not an unset attribute.
	if err := json.Unmarshal([]byte(`[]`), &p); err != nil {
		t.Fatalf("Unmarshal empty: %v", err)
	}
	if _, ok := p.Value(); !ok {
		t.Error("Value() not present after decoding empty array")
	}
}

func TestPaintsClone(t *testing.T) {
	orig := []Paint{{Type: PaintSolid}}
	p := NewPaints(orig)

	cloned := p.Clone()
	if len(cloned) != 1 {
		t.Fatalf("Clone() length = %d, want 1", len(cloned))
	}
	cloned[0].Type = PaintImage
	if orig[0].Type != PaintSolid {
		t.Error("Clone() shares backing array with source")
	}

	if MixedPaints().Clone() != nil {
		t.Error("Clone() of mixed value should be nil")
	}
}
