package css_test

import (
	"errors"
	"testing"

	"github.com/npillmayer/domchain/css"
	"github.com/npillmayer/tyse/core/dimen"
)

func TestDimenBasic(t *testing.T) {
	ten := css.JustDimen(dimen.PT * 10)
	var du dimen.DU
	switch m := ten.Match(); m {
	case m.Just(&du):
		t.Logf("du = %v", du)
	default:
		t.Errorf("expected Just(10pt) to be a fixed value, isn't: %#v", ten)
	}

	auto := css.Auto()
	switch m := auto.Match(); m {
	case m.IsKind(css.Auto()):
		t.Logf("dimen is auto")
	default:
		t.Errorf("expected dimen auto to match auto, isn't: %#v", auto)
	}

	pcnt := css.Percentage(80)
	var p float64
	switch m := pcnt.Match(); m {
	case m.Percentage(&p):
		t.Logf("percent = %v", p)
	default:
		t.Errorf("expected Percentage(80) to be a percentage value, isn't: %#v", pcnt)
	}
	if p != 80 {
		t.Errorf("expected percentage to be 80, is %v", p)
	}
}

func TestDimenPattern(t *testing.T) {
	d := css.JustDimen(dimen.PT * 10)
	var du dimen.DU
	e := css.DimenPattern[dimen.DU](d)
	distance := e.OneOf(css.DimenPatterns[dimen.DU]{
		Just:    e.With(&du).Const(2 * du),
		Auto:    0,
		Default: -1,
	})
	if distance != 2*10*dimen.PT {
		t.Errorf("expected distance to be %v, isn't: %#v", 20*dimen.PT, distance)
	}
	rel := css.DimenPattern[string](css.FontRelative(2))
	if x := rel.OneOf(css.DimenPatterns[string]{Relative: "rel", Default: "?"}); x != "rel" {
		t.Errorf("expected 2em to match relative pattern, got %q", x)
	}
}

func TestParseDimen(t *testing.T) {
	ctx := css.Context{
		Containing:     css.Pixels(200),
		FontSize:       css.Pixels(10),
		RootFontSize:   css.Pixels(16),
		ViewportWidth:  css.Pixels(1000),
		ViewportHeight: css.Pixels(500),
	}
	for _, tc := range []struct {
		in string
		px float64
	}{
		{"12px", 12}, {"0", 0}, {"50%", 100}, {"1.5em", 15},
		{"2rem", 32}, {"10vw", 100}, {"10vh", 50}, {"1in", 96},
	} {
		d, err := css.ParseDimen(tc.in)
		if err != nil {
			t.Fatalf("cannot parse %q: %v", tc.in, err)
		}
		du, ok := d.Resolve(ctx)
		if !ok {
			t.Fatalf("expected %q to resolve, didn't", tc.in)
		}
		if got := css.ToPixels(du); got < tc.px-0.01 || got > tc.px+0.01 {
			t.Errorf("%q: expected %vpx, got %vpx", tc.in, tc.px, got)
		}
	}
	auto, err := css.ParseDimen("auto")
	if err != nil || !auto.IsAuto() {
		t.Errorf("expected 'auto' to parse as auto, got %v / %v", auto, err)
	}
	if _, ok := auto.Resolve(ctx); ok {
		t.Errorf("expected auto not to resolve to a fixed length")
	}
	if _, err := css.ParseDimen("12"); !errors.Is(err, css.ErrDimenSyntax) {
		t.Errorf("expected unitless non-zero length to be rejected, got %v", err)
	}
	if _, err := css.ParseDimen("wide"); !errors.Is(err, css.ErrDimenSyntax) {
		t.Errorf("expected 'wide' to be rejected, got %v", err)
	}
}

func TestHugeLengthsSaturate(t *testing.T) {
	if css.PX != 49152 {
		t.Errorf("expected 1px to be 49152 DU, is %d", css.PX)
	}
	for _, in := range []string{"50000px", "3000em", "1000000in", "-50000px"} {
		d, err := css.ParseDimen(in)
		if err != nil {
			t.Fatalf("cannot parse %q: %v", in, err)
		}
		du, ok := d.Resolve(css.Context{FontSize: css.Pixels(16)})
		if !ok {
			t.Fatalf("expected %q to resolve, didn't", in)
		}
		if du == 0 {
			t.Errorf("%q: expected a saturated length, got 0", in)
		}
		if in[0] == '-' && du != -dimen.Infinity || in[0] != '-' && du != dimen.Infinity {
			t.Errorf("%q: expected length to saturate, got %d", in, du)
		}
	}
	if got := css.ToPixels(css.Pixels(40000)); got != 40000 {
		t.Errorf("expected 40000px to convert exactly, got %v", got)
	}
}
