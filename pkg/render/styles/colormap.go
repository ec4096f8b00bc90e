// Package styles provides colormaps and text metrics shared by the
// pyscan renderers.
package styles

import (
	"fmt"
	"math"
	"sort"

	"pyscan/pkg/errors"
)

// rgb is a color sample at a colormap stop.
type rgb struct{ r, g, b float64 }

// colormaps holds evenly spaced color stops for each named map. Values
// are sampled from the matplotlib maps of the same name.
var colormaps = map[string][]rgb{
	"viridis": {
		{0x44, 0x01, 0x54}, {0x3b, 0x52, 0x8b}, {0x21, 0x91, 0x8c},
		{0x5e, 0xc9, 0x62}, {0xfd, 0xe7, 0x25},
	},
	"plasma": {
		{0x0d, 0x08, 0x87}, {0x7e, 0x03, 0xa8}, {0xcc, 0x47, 0x78},
		{0xf8, 0x95, 0x40}, {0xf0, 0xf9, 0x21},
	},
	"blues": {
		{0xf7, 0xfb, 0xff}, {0xc6, 0xdb, 0xef}, {0x6b, 0xae, 0xd6},
		{0x21, 0x71, 0xb5}, {0x08, 0x30, 0x6b},
	},
	"greens": {
		{0xf7, 0xfc, 0xf5}, {0xc7, 0xe9, 0xc0}, {0x74, 0xc4, 0x76},
		{0x23, 0x8b, 0x45}, {0x00, 0x44, 0x1b},
	},
	"greys": {
		{0xff, 0xff, 0xff}, {0x00, 0x00, 0x00},
	},
}

// DefaultColormap is used when no colormap is requested.
const DefaultColormap = "viridis"

// Colormaps returns the supported colormap names, sorted.
func Colormaps() []string {
	names := make([]string, 0, len(colormaps))
	for name := range colormaps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateColormap checks that a colormap name is known.
func ValidateColormap(name string) error {
	if _, ok := colormaps[name]; !ok {
		return errors.New(errors.ErrCodeInvalidColormap,
			"unknown colormap %q (supported: %v)", name, Colormaps())
	}
	return nil
}

// ColorList returns n hex color codes sampled from the named colormap
// between lower and upper (both in [0,1]). With reversed set, the colors
// are listed darkest-range last to first.
func ColorList(n int, name string, lower, upper float64, reversed bool) ([]string, error) {
	if err := ValidateColormap(name); err != nil {
		return nil, err
	}
	if n < 1 {
		n = 1
	}
	lower = clamp01(lower)
	upper = clamp01(upper)

	out := make([]string, n)
	for i := 0; i < n; i++ {
		t := lower
		if n > 1 {
			t = lower + (upper-lower)*float64(i)/float64(n-1)
		}
		out[i] = sample(colormaps[name], t)
	}

	if reversed {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

// Sample returns the hex color at position t in [0,1] of the named map.
// Unknown names fall back to the default colormap.
func Sample(name string, t float64) string {
	stops, ok := colormaps[name]
	if !ok {
		stops = colormaps[DefaultColormap]
	}
	return sample(stops, clamp01(t))
}

// sample linearly interpolates between adjacent stops.
func sample(stops []rgb, t float64) string {
	pos := t * float64(len(stops)-1)
	i := int(math.Floor(pos))
	if i >= len(stops)-1 {
		i = len(stops) - 2
	}
	frac := pos - float64(i)

	a, b := stops[i], stops[i+1]
	return fmt.Sprintf("#%02x%02x%02x",
		int(math.Round(a.r+(b.r-a.r)*frac)),
		int(math.Round(a.g+(b.g-a.g)*frac)),
		int(math.Round(a.b+(b.b-a.b)*frac)))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
