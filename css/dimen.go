package css

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/tyse/core/dimen"
)

const (
	dimenNone uint32 = 0

	dimenAbsolute uint32 = 0x0001
	dimenAuto     uint32 = 0x0002
	dimenInherit  uint32 = 0x0003
	dimenInitial  uint32 = 0x0004
	kindMask      uint32 = 0x000f

	dimenEM      uint32 = 0x0100
	dimenREM     uint32 = 0x0400
	dimenVW      uint32 = 0x0500
	dimenVH      uint32 = 0x0600
	dimenPercent uint32 = 0x0900
	relativeMask uint32 = 0xff00
)

// PX is the size of a CSS reference pixel (1/96 in) in design units.
const PX = dimen.IN / 96

// Pixels converts a length given in CSS pixels to design units.
// Lengths beyond the range of design units saturate at ±dimen.Infinity.
func Pixels(px float64) dimen.DU {
	return saturate(px * float64(PX))
}

func saturate(x float64) dimen.DU {
	switch {
	case math.IsNaN(x):
		return 0
	case x >= dimen.Infinity:
		return dimen.Infinity
	case x <= -dimen.Infinity:
		return -dimen.Infinity
	}
	return dimen.DU(x)
}

// ToPixels converts design units to CSS pixels.
func ToPixels(d dimen.DU) float64 {
	return float64(d) / float64(PX)
}

// ErrDimenSyntax is returned by ParseDimen for values it does not understand.
var ErrDimenSyntax = errors.New("cannot parse CSS dimension")

// DimenT is an option type for CSS dimensions.
type DimenT struct {
	d     dimen.DU
	ratio float64 // for %, em, rem, vw, vh
	flags uint32
}

/*
type DimenT
	= Auto
	| Inherit
	| Initial
	| JustDimen dimen
	| Percentage ratio
	| ViewRel ratio
	| FontRel ratio
*/

// Auto creates a dimension with value `auto`.
func Auto() DimenT {
	return DimenT{flags: dimenAuto}
}

// Inherit creates a dimension with value `inherit`.
func Inherit() DimenT {
	return DimenT{flags: dimenInherit}
}

// Initial creates a dimension with value `initial`.
func Initial() DimenT {
	return DimenT{flags: dimenInitial}
}

// JustDimen creates a CSS dimension with a fixed value of x.
func JustDimen(x dimen.DU) DimenT {
	return DimenT{d: x, flags: dimenAbsolute}
}

// Percentage creates a CSS dimension with a %-relative value.
// n is given in percent, i.e. 50 means one half.
func Percentage(n float64) DimenT {
	return DimenT{ratio: n / 100, flags: dimenPercent}
}

// FontRelative creates a dimension relative to the element's font size (em).
func FontRelative(n float64) DimenT {
	return DimenT{ratio: n, flags: dimenEM}
}

// RootFontRelative creates a dimension relative to the root font size (rem).
func RootFontRelative(n float64) DimenT {
	return DimenT{ratio: n, flags: dimenREM}
}

// ViewportRelative creates a dimension relative to the viewport width (vw)
// or height (vh), n given in percent.
func ViewportRelative(n float64, vertical bool) DimenT {
	if vertical {
		return DimenT{ratio: n / 100, flags: dimenVH}
	}
	return DimenT{ratio: n / 100, flags: dimenVW}
}

func (d DimenT) String() string {
	switch {
	case d.flags == dimenNone:
		return "none"
	case d.flags&kindMask == dimenAuto:
		return "auto"
	case d.flags&kindMask == dimenInherit:
		return "inherit"
	case d.flags&kindMask == dimenInitial:
		return "initial"
	case d.flags&kindMask == dimenAbsolute:
		return fmt.Sprintf("%.2fpx", ToPixels(d.d))
	}
	switch d.flags & relativeMask {
	case dimenPercent:
		return fmt.Sprintf("%g%%", d.ratio*100)
	case dimenEM:
		return fmt.Sprintf("%gem", d.ratio)
	case dimenREM:
		return fmt.Sprintf("%grem", d.ratio)
	case dimenVW:
		return fmt.Sprintf("%gvw", d.ratio*100)
	case dimenVH:
		return fmt.Sprintf("%gvh", d.ratio*100)
	}
	return "?"
}

// IsNone is true for the zero value and for the CSS keyword `none`.
func (d DimenT) IsNone() bool {
	return d.flags == dimenNone
}

// IsAuto is true for dimensions with value `auto`.
func (d DimenT) IsAuto() bool {
	return d.flags&kindMask == dimenAuto
}

// IsRelative is true for percentages, font- and viewport-relative values.
func (d DimenT) IsRelative() bool {
	return d.flags&relativeMask > 0
}

// Context holds the reference lengths needed to resolve relative dimensions.
type Context struct {
	Containing     dimen.DU // size of the containing block along the relevant axis
	FontSize       dimen.DU
	RootFontSize   dimen.DU
	ViewportWidth  dimen.DU
	ViewportHeight dimen.DU
}

// Resolve turns d into a fixed length. It returns false for dimensions
// without a fixed value (auto, none, inherit, initial).
func (d DimenT) Resolve(ctx Context) (dimen.DU, bool) {
	if d.flags&kindMask == dimenAbsolute {
		return d.d, true
	}
	var ref dimen.DU
	switch d.flags & relativeMask {
	case dimenPercent:
		ref = ctx.Containing
	case dimenEM:
		ref = ctx.FontSize
	case dimenREM:
		ref = ctx.RootFontSize
	case dimenVW:
		ref = ctx.ViewportWidth
	case dimenVH:
		ref = ctx.ViewportHeight
	default:
		return 0, false
	}
	return saturate(d.ratio * float64(ref)), true
}

// ParseDimen parses a CSS length value, e.g. "12px", "50%", "1.5em" or "auto".
// A bare number is accepted only for zero, as CSS demands.
func ParseDimen(s string) (DimenT, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "", "none":
		return DimenT{}, nil
	case "auto":
		return Auto(), nil
	case "inherit":
		return Inherit(), nil
	case "initial":
		return Initial(), nil
	case "0":
		return JustDimen(0), nil
	}
	num, unit := splitUnit(s)
	x, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return DimenT{}, fmt.Errorf("%w: %q", ErrDimenSyntax, s)
	}
	switch unit {
	case "px":
		return JustDimen(Pixels(x)), nil
	case "pt":
		return JustDimen(saturate(x * float64(dimen.PT))), nil
	case "pc":
		return JustDimen(saturate(x * 12 * float64(dimen.PT))), nil
	case "in":
		return JustDimen(Pixels(x * 96)), nil
	case "cm":
		return JustDimen(Pixels(x * 96 / 2.54)), nil
	case "mm":
		return JustDimen(Pixels(x * 96 / 25.4)), nil
	case "%":
		return Percentage(x), nil
	case "em":
		return FontRelative(x), nil
	case "rem":
		return RootFontRelative(x), nil
	case "vw":
		return ViewportRelative(x, false), nil
	case "vh":
		return ViewportRelative(x, true), nil
	case "":
		if x == 0 {
			return JustDimen(0), nil
		}
	}
	return DimenT{}, fmt.Errorf("%w: %q", ErrDimenSyntax, s)
}

func splitUnit(s string) (string, string) {
	i := len(s)
	for i > 0 {
		c := s[i-1]
		if (c >= '0' && c <= '9') || c == '.' {
			break
		}
		i--
	}
	return s[:i], s[i:]
}

// ---------------------------------------------------------------------------

// Match starts a pattern match on d.
func (d DimenT) Match() *Matcher {
	return &Matcher{dimen: d}
}

// Matcher is used in switch statements:
//
//     switch m := d.Match(); m {
//     case m.Just(&du):  …
//     case m.IsKind(css.Auto()): …
//     }
//
type Matcher struct {
	dimen DimenT
}

// IsKind matches if d is of the same kind as the matcher's dimension.
func (m *Matcher) IsKind(d DimenT) *Matcher {
	if m.dimen.flags&kindMask != d.flags&kindMask {
		return nil
	}
	if m.dimen.flags&relativeMask != d.flags&relativeMask {
		return nil
	}
	return m
}

// Just matches fixed dimensions and extracts their value.
func (m *Matcher) Just(du *dimen.DU) *Matcher {
	if m.dimen.flags&kindMask == dimenAbsolute {
		if du != nil {
			*du = m.dimen.d
		}
		return m
	}
	return nil
}

// Percentage matches %-dimensions and extracts the percentage.
func (m *Matcher) Percentage(p *float64) *Matcher {
	if m.dimen.flags&relativeMask == dimenPercent {
		if p != nil {
			*p = m.dimen.ratio * 100
		}
		return m
	}
	return nil
}

// --- Expression matching ---------------------------------------------------

// DimenPatterns lists results for the kinds of a dimension.
type DimenPatterns[T any] struct {
	Auto     T
	Inherit  T
	Initial  T
	Just     T
	Relative T
	Default  T
}

// DimenPattern starts an expression match on d.
func DimenPattern[T any](d DimenT) *MatchExpr[T] {
	return &MatchExpr[T]{dimen: d}
}

// MatchExpr selects one of a set of patterns.
type MatchExpr[T any] struct {
	dimen DimenT
}

// OneOf returns the pattern value for the kind of the dimension.
func (m *MatchExpr[T]) OneOf(patterns DimenPatterns[T]) T {
	switch m.dimen.flags & kindMask {
	case dimenAuto:
		return patterns.Auto
	case dimenAbsolute:
		return patterns.Just
	case dimenInitial:
		return patterns.Initial
	case dimenInherit:
		return patterns.Inherit
	}
	if m.dimen.flags&relativeMask > 0 {
		return patterns.Relative
	}
	return patterns.Default
}

// With extracts the fixed value of the dimension into du.
func (m *MatchExpr[T]) With(du *dimen.DU) *MatchExpr[T] {
	*du = m.dimen.d
	return m
}

// Const returns x; used together with With.
func (m *MatchExpr[T]) Const(x T) T {
	return x
}
