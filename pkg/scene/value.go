package scene

import (
	"encoding/json"
	"fmt"
	"slices"
)

// MixedToken is the wire representation of the "mixed value" sentinel: any
// attribute that is inconsistent across a mixed selection arrives as this
// string instead of its usual shape.
const MixedToken = "__mixed__"

// State is the three-valued presence state of a mixed-able attribute.
type State uint8

const (
	// Unset means the host did not supply the attribute.
	Unset State = iota
	// Set means the attribute holds a concrete value.
	Set
	// Mixed means the attribute differs across the selection and carries
	// no usable value.
	Mixed
)

// =============================================================================
// Float - mixed-able numeric attribute
// =============================================================================

// Float is a numeric attribute that may be unset, set, or mixed.
type Float struct {
	val   float64
	state State
}

// NewFloat returns a set Float holding v.
func NewFloat(v float64) Float { return Float{val: v, state: Set} }

// MixedFloat returns a Float in the mixed state.
func MixedFloat() Float { return Float{state: Mixed} }

// Value returns the concrete value and whether one is present.
// Mixed and unset attributes report false.
func (f Float) Value() (float64, bool) { return f.val, f.state == Set }

// State returns the presence state.
func (f Float) State() State { return f.state }

// IsMixed reports whether the attribute holds the mixed sentinel.
func (f Float) IsMixed() bool { return f.state == Mixed }

// IsZero reports whether the attribute is unset, for json omitzero.
func (f Float) IsZero() bool { return f.state == Unset }

// MarshalJSON encodes a set value as a number and a mixed value as
// [MixedToken].
func (f Float) MarshalJSON() ([]byte, error) {
	switch f.state {
	case Set:
		return json.Marshal(f.val)
	case Mixed:
		return json.Marshal(MixedToken)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a number, the mixed token, or null.
func (f *Float) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = Float{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == MixedToken {
			*f = Float{state: Mixed}
			return nil
		}
		return fmt.Errorf("numeric attribute: unexpected string %q", s)
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Float{val: v, state: Set}
	return nil
}

// =============================================================================
// FontName - mixed-able font attribute
// =============================================================================

// FontName is a font attribute that may be unset, set, or mixed.
type FontName struct {
	font  Font
	state State
}

// NewFontName returns a set FontName holding f.
func NewFontName(f Font) FontName { return FontName{font: f, state: Set} }

// MixedFontName returns a FontName in the mixed state.
func MixedFontName() FontName { return FontName{state: Mixed} }

// Value returns the concrete font and whether one is present.
func (f FontName) Value() (Font, bool) { return f.font, f.state == Set }

// State returns the presence state.
func (f FontName) State() State { return f.state }

// IsMixed reports whether the attribute holds the mixed sentinel.
func (f FontName) IsMixed() bool { return f.state == Mixed }

// IsZero reports whether the attribute is unset, for json omitzero.
func (f FontName) IsZero() bool { return f.state == Unset }

// MarshalJSON encodes a set value as a font object and a mixed value as
// [MixedToken].
func (f FontName) MarshalJSON() ([]byte, error) {
	switch f.state {
	case Set:
		return json.Marshal(f.font)
	case Mixed:
		return json.Marshal(MixedToken)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a font object, the mixed token, or null.
func (f *FontName) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = FontName{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == MixedToken {
			*f = FontName{state: Mixed}
			return nil
		}
		return fmt.Errorf("font attribute: unexpected string %q", s)
	}
	var font Font
	if err := json.Unmarshal(data, &font); err != nil {
		return err
	}
	*f = FontName{font: font, state: Set}
	return nil
}

// =============================================================================
// Paints - mixed-able paint list attribute
// =============================================================================

// Paints is a paint-list attribute that may be unset, set, or mixed.
// A set value with zero paints is distinct from an unset attribute.
type Paints struct {
	paints []Paint
	state  State
}

// NewPaints returns a set Paints holding p.
func NewPaints(p []Paint) Paints { return Paints{paints: p, state: Set} }

// MixedPaints returns a Paints in the mixed state.
func MixedPaints() Paints { return Paints{state: Mixed} }

// Value returns the concrete paint list and whether one is present.
func (p Paints) Value() ([]Paint, bool) { return p.paints, p.state == Set }

// State returns the presence state.
func (p Paints) State() State { return p.state }

// IsMixed reports whether the attribute holds the mixed sentinel.
func (p Paints) IsMixed() bool { return p.state == Mixed }

// IsZero reports whether the attribute is unset, for json omitzero.
func (p Paints) IsZero() bool { return p.state == Unset }

// MarshalJSON encodes a set value as a paint array and a mixed value as
// [MixedToken].
func (p Paints) MarshalJSON() ([]byte, error) {
	switch p.state {
	case Set:
		if p.paints == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(p.paints)
	case Mixed:
		return json.Marshal(MixedToken)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a paint array, the mixed token, or null.
func (p *Paints) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = Paints{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == MixedToken {
			*p = Paints{state: Mixed}
			return nil
		}
		return fmt.Errorf("paint attribute: unexpected string %q", s)
	}
	var paints []Paint
	if err := json.Unmarshal(data, &paints); err != nil {
		return err
	}
	*p = Paints{paints: paints, state: Set}
	return nil
}

// Clone returns a copy of the concrete paint list, or nil when no value is
// present. Callers can mutate the result without touching the source node.
func (p Paints) Clone() []Paint {
	if p.state != Set {
		return nil
	}
	return slices.Clone(p.paints)
}
