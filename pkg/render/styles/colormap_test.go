package styles

import (
	"reflect"
	"regexp"
	"testing"

	"pyscan/pkg/errors"
)

var hexRE = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func TestColormaps(t *testing.T) {
	want := []string{"blues", "greens", "greys", "plasma", "viridis"}
	if got := Colormaps(); !reflect.DeepEqual(got, want) {
		t.Errorf("Colormaps() = %v, want %v", got, want)
	}
}

func TestValidateColormap(t *testing.T) {
	if err := ValidateColormap("viridis"); err != nil {
		t.Errorf("ValidateColormap(viridis) error = %v", err)
	}

	err := ValidateColormap("sunset")
	if err == nil {
		t.Fatal("expected error for unknown colormap")
	}
	if !errors.Is(err, errors.ErrCodeInvalidColormap) {
		t.Errorf("error code = %v, want INVALID_COLORMAP", errors.GetCode(err))
	}
}

func TestColorList(t *testing.T) {
	colors, err := ColorList(5, "viridis", 0, 1, false)
	if err != nil {
		t.Fatalf("ColorList() error = %v", err)
	}
	if len(colors) != 5 {
		t.Fatalf("got %d colors, want 5", len(colors))
	}
	for _, c := range colors {
		if !hexRE.MatchString(c) {
			t.Errorf("invalid hex color %q", c)
		}
	}

	// Endpoints hit the first and last stops
	if colors[0] != "#440154" {
		t.Errorf("first color = %q, want #440154", colors[0])
	}
	if colors[4] != "#fde725" {
		t.Errorf("last color = %q, want #fde725", colors[4])
	}
}

func TestColorListReversed(t *testing.T) {
	fwd, err := ColorList(3, "blues", 0, 1, false)
	if err != nil {
		t.Fatal(err)
	}
	rev, err := ColorList(3, "blues", 0, 1, true)
	if err != nil {
		t.Fatal(err)
	}
	if fwd[0] != rev[2] || fwd[2] != rev[0] {
		t.Errorf("reversed mismatch: %v vs %v", fwd, rev)
	}
}

func TestColorListSingle(t *testing.T) {
	colors, err := ColorList(1, "greys", 0.5, 1, false)
	if err != nil {
		t.Fatal(err)
	}
	// n == 1 samples at the lower bound; halfway through greys is mid-gray
	if colors[0] != "#808080" {
		t.Errorf("color = %q, want #808080", colors[0])
	}
}

func TestSample(t *testing.T) {
	if got := Sample("greys", 0); got != "#ffffff" {
		t.Errorf("Sample(greys, 0) = %q, want #ffffff", got)
	}
	if got := Sample("greys", 1); got != "#000000" {
		t.Errorf("Sample(greys, 1) = %q, want #000000", got)
	}

	// Unknown names fall back to the default map
	if got, fallback := Sample("bogus", 0.5), Sample(DefaultColormap, 0.5); got != fallback {
		t.Errorf("Sample(bogus) = %q, want fallback %q", got, fallback)
	}

	// Out-of-range positions are clamped
	if got := Sample("greys", 2); got != "#000000" {
		t.Errorf("Sample(greys, 2) = %q, want #000000", got)
	}
}

func TestTextMetrics(t *testing.T) {
	if w := TextWidth("abcd", 10); w != 22 {
		t.Errorf("TextWidth = %v, want 22", w)
	}
	if TextWidth("", 10) != 0 {
		t.Error("TextWidth of empty string should be 0")
	}
	if h := TextHeight(10); h != 8 {
		t.Errorf("TextHeight = %v, want 8", h)
	}
}

func TestEscapeXML(t *testing.T) {
	if got := EscapeXML(`a<b&"c"`); got != `a&lt;b&amp;&#34;c&#34;` {
		t.Errorf("EscapeXML = %q", got)
	}
}
