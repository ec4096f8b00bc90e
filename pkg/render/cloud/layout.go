package cloud

import (
	"math"
	"math/rand/v2"

	"pyscan/pkg/render/styles"
)

// placedWord is a word with its final anchor position. The anchor is the
// SVG text origin: left edge of the baseline for horizontal words, and
// the rotated equivalent for vertical ones.
type placedWord struct {
	text     string
	x, y     float64
	size     float64
	vertical bool
	color    string
}

// box is an axis-aligned bounding rectangle.
type box struct {
	x, y, w, h float64
}

func (b box) intersects(o box) bool {
	return b.x < o.x+o.w && o.x < b.x+b.w && b.y < o.y+o.h && o.y < b.y+b.h
}

// layouter places boxes on an archimedean spiral around the frame center.
type layouter struct {
	width, height float64
	occupied      []box
}

func newLayout(width, height float64) *layouter {
	return &layouter{width: width, height: height}
}

const (
	// spiralStep is the angular step per probe; spiralGrowth the radial
	// gain per radian. Small steps give tighter packing at more probes.
	spiralStep   = 0.35
	spiralGrowth = 1.8

	// maxProbes bounds the spiral walk before a word is dropped.
	maxProbes = 2000

	// padding separates bounding boxes so glyph edges never touch.
	padding = 2.0
)

// place walks the spiral looking for a collision-free box for the word.
// A small random angle offset per word avoids stacking all words along
// one ray. Returns false when no position fits inside the frame.
func (l *layouter) place(text string, size float64, vertical bool, rng *rand.Rand) (placedWord, bool) {
	w := styles.TextWidth(text, size)
	h := styles.TextHeight(size)
	if vertical {
		w, h = h, w
	}

	startAngle := rng.Float64() * 2 * math.Pi
	cx, cy := l.width/2, l.height/2

	for i := 0; i < maxProbes; i++ {
		t := float64(i) * spiralStep
		r := spiralGrowth * t
		x := cx + r*math.Cos(t+startAngle) - w/2
		y := cy + r*math.Sin(t+startAngle) - h/2

		b := box{x - padding, y - padding, w + 2*padding, h + 2*padding}
		if b.x < 0 || b.y < 0 || b.x+b.w > l.width || b.y+b.h > l.height {
			if r > math.Max(l.width, l.height) {
				break
			}
			continue
		}
		if l.collides(b) {
			continue
		}

		l.occupied = append(l.occupied, b)
		return anchorFor(text, x, y, w, h, size, vertical), true
	}
	return placedWord{}, false
}

func (l *layouter) collides(b box) bool {
	for _, o := range l.occupied {
		if b.intersects(o) {
			return true
		}
	}
	return false
}

// anchorFor converts a bounding box position into the SVG text anchor.
// Horizontal text anchors at the baseline left edge; vertical text is
// rotated -90 degrees around its anchor, so the anchor sits at the
// bottom-left of the upright box.
func anchorFor(text string, x, y, w, h, size float64, vertical bool) placedWord {
	if vertical {
		return placedWord{
			text:     text,
			x:        x + w/2 + styles.TextHeight(size)/2,
			y:        y + h,
			size:     size,
			vertical: true,
		}
	}
	return placedWord{
		text: text,
		x:    x,
		y:    y + h,
		size: size,
	}
}
