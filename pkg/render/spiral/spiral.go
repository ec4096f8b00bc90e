// Package spiral renders frequency tables as spiral polar bar charts.
//
// Each package becomes one bar on a polar axis. Bars are drawn as annular
// sectors of equal angular width; heights are scaled relative to the
// largest value. Feeding values in ascending order produces the winding
// spiral effect. The zero angle sits at a compass point (north-east by
// default) and angles grow counterclockwise.
package spiral

import (
	"bytes"
	"fmt"
	"math"

	"pyscan/pkg/errors"
	"pyscan/pkg/render/styles"
)

const (
	// bottomRadius is the hole radius at the center, in radial units.
	bottomRadius = 30.0

	// heightScale and heightFloor map a relative value v/max into bar
	// height: v/max*heightScale + heightFloor radial units.
	heightScale = 120.0
	heightFloor = 5.0

	labelFontSize = 11.0
)

// zeroOffsets maps compass zero locations to counterclockwise angles
// from east, in radians.
var zeroOffsets = map[string]float64{
	"E":  0,
	"NE": math.Pi / 4,
	"N":  math.Pi / 2,
	"NW": 3 * math.Pi / 4,
	"W":  math.Pi,
	"SW": 5 * math.Pi / 4,
	"S":  3 * math.Pi / 2,
	"SE": 7 * math.Pi / 4,
}

// Options configures spiral rendering.
type Options struct {
	// Width and Height set the SVG frame in pixels. Zero values default
	// to 480x480.
	Width  float64
	Height float64

	// ZeroAt sets the compass point of the zero angle. Default "NE",
	// which points the largest ascending-order bar north-east.
	ZeroAt string

	// Colormap names the color ramp for the bars. Default viridis.
	Colormap string

	// LabelPadding is the radial gap between a bar and its label.
	LabelPadding float64

	// LineWidth and EdgeColor style the bar outlines.
	LineWidth float64
	EdgeColor string
}

func (o *Options) setDefaults() {
	if o.Width <= 0 {
		o.Width = 480
	}
	if o.Height <= 0 {
		o.Height = 480
	}
	if o.ZeroAt == "" {
		o.ZeroAt = "NE"
	}
	if o.Colormap == "" {
		o.Colormap = styles.DefaultColormap
	}
	if o.LabelPadding == 0 {
		o.LabelPadding = 2
	}
	if o.LineWidth == 0 {
		o.LineWidth = 2
	}
	if o.EdgeColor == "" {
		o.EdgeColor = "white"
	}
}

// Validate checks the options without rendering.
func (o Options) Validate() error {
	if o.ZeroAt != "" {
		if _, ok := zeroOffsets[o.ZeroAt]; !ok {
			return errors.New(errors.ErrCodeInvalidOption,
				"unknown zero location %q (use N, NE, E, SE, S, SW, W, NW)", o.ZeroAt)
		}
	}
	if o.Colormap != "" {
		return styles.ValidateColormap(o.Colormap)
	}
	return nil
}

// Render draws one bar per label/value pair and returns the SVG bytes.
// Labels and values must have equal nonzero length; order values
// ascending for a spiral effect.
func Render(labels []string, values []float64, opts Options) ([]byte, error) {
	if len(labels) == 0 || len(values) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidOption, "both labels and values must be provided")
	}
	if len(labels) != len(values) {
		return nil, errors.New(errors.ErrCodeInvalidOption,
			"length of labels (%d) and values (%d) must match", len(labels), len(values))
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts.setDefaults()

	max := values[0]
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	if max <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidOption, "values must contain a positive entry")
	}

	n := len(values)
	widthBar := 2 * math.Pi / float64(n)
	zero := zeroOffsets[opts.ZeroAt]

	colors, err := styles.ColorList(n, opts.Colormap, 0.25, 1.0, false)
	if err != nil {
		return nil, err
	}

	cx, cy := opts.Width/2, opts.Height/2
	// Leave headroom for labels outside the largest bar.
	maxRadius := bottomRadius + heightScale + heightFloor
	scale := (math.Min(opts.Width, opts.Height)/2 - 60) / maxRadius

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		opts.Width, opts.Height, opts.Width, opts.Height)
	buf.WriteString(`  <g font-family="Helvetica, Arial, sans-serif">` + "\n")

	for i := range values {
		theta := float64(i+1) * widthBar
		height := values[i]/max*heightScale + heightFloor

		drawBar(&buf, barGeom{
			cx: cx, cy: cy, scale: scale, zero: zero,
			theta: theta, width: widthBar,
			inner: bottomRadius, outer: bottomRadius + height,
		}, colors[i], opts)

		drawLabel(&buf, barGeom{
			cx: cx, cy: cy, scale: scale, zero: zero,
			theta: theta, outer: bottomRadius + height + opts.LabelPadding,
		}, labels[i])
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes(), nil
}

type barGeom struct {
	cx, cy, scale, zero float64
	theta, width        float64
	inner, outer        float64
}

// point converts polar coordinates (counterclockwise from the zero
// location) to SVG pixel coordinates.
func (g barGeom) point(theta, r float64) (float64, float64) {
	a := g.zero + theta
	return g.cx + r*g.scale*math.Cos(a), g.cy - r*g.scale*math.Sin(a)
}

// drawBar emits one annular sector centered on the bar's theta.
func drawBar(buf *bytes.Buffer, g barGeom, fill string, opts Options) {
	t0 := g.theta - g.width/2
	t1 := g.theta + g.width/2

	ix0, iy0 := g.point(t0, g.inner)
	ox0, oy0 := g.point(t0, g.outer)
	ox1, oy1 := g.point(t1, g.outer)
	ix1, iy1 := g.point(t1, g.inner)

	largeArc := 0
	if g.width > math.Pi {
		largeArc = 1
	}
	ro := g.outer * g.scale
	ri := g.inner * g.scale

	// Counterclockwise polar angles map to sweep=0 arcs in the
	// y-down SVG coordinate system.
	fmt.Fprintf(buf,
		`  <path d="M %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 0 %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f Z" fill="%s" stroke="%s" stroke-width="%.1f"/>`+"\n",
		ix0, iy0, ox0, oy0, ro, ro, largeArc, ox1, oy1, ix1, iy1, ri, ri, largeArc, ix0, iy0,
		fill, opts.EdgeColor, opts.LineWidth)
}

// drawLabel places the package name just outside the bar tip, rotated
// along the bar angle and flipped in the left quadrants so text never
// renders upside down.
func drawLabel(buf *bytes.Buffer, g barGeom, label string) {
	x, y := g.point(g.theta, g.outer)

	a := math.Mod(g.zero+g.theta, 2*math.Pi)
	quadrant := int(a / (math.Pi / 2))

	rotation := a
	anchor := "start"
	if quadrant == 1 || quadrant == 2 {
		rotation += math.Pi
		anchor = "end"
	}

	// SVG rotates clockwise; math angles are counterclockwise.
	deg := -rotation * 180 / math.Pi

	fmt.Fprintf(buf,
		`  <text x="%.2f" y="%.2f" font-size="%.1f" text-anchor="%s" dominant-baseline="middle" transform="rotate(%.2f %.2f %.2f)">%s</text>`+"\n",
		x, y, labelFontSize, anchor, deg, x, y, styles.EscapeXML(label))
}
