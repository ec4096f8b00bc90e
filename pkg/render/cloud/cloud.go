// Package cloud renders frequency tables as word clouds.
//
// Words are sized by relative frequency and placed greedily along an
// archimedean spiral starting at the frame center, skipping positions
// that would collide with already placed words. Layout is deterministic
// for a given seed.
package cloud

import (
	"bytes"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"pyscan/pkg/errors"
	"pyscan/pkg/render/styles"
)

// DefaultSeed keeps layouts reproducible across runs.
const DefaultSeed = uint64(42)

// Word is one weighted entry of the cloud.
type Word struct {
	Text   string
	Weight float64
}

// Options configures word cloud rendering.
type Options struct {
	// Width and Height set the SVG frame in pixels. Zero values default
	// to 1000x1000.
	Width  float64
	Height float64

	// MaxWords caps how many words are drawn. Default 200.
	MaxWords int

	// MinFontSize and MaxFontSize bound the word scale. Defaults 10/100.
	MinFontSize float64
	MaxFontSize float64

	// PreferHorizontal is the probability a word is laid out
	// horizontally rather than rotated 90 degrees. Default 0.75.
	PreferHorizontal float64

	// Colormap names the color ramp. Default viridis.
	Colormap string

	// Background fills the frame; empty means transparent.
	Background string

	// Seed drives rotation and placement jitter. Zero means DefaultSeed.
	Seed uint64
}

func (o *Options) setDefaults() {
	if o.Width <= 0 {
		o.Width = 1000
	}
	if o.Height <= 0 {
		o.Height = 1000
	}
	if o.MaxWords <= 0 {
		o.MaxWords = 200
	}
	if o.MinFontSize <= 0 {
		o.MinFontSize = 10
	}
	if o.MaxFontSize <= 0 {
		o.MaxFontSize = 100
	}
	if o.PreferHorizontal <= 0 {
		o.PreferHorizontal = 0.75
	}
	if o.Colormap == "" {
		o.Colormap = styles.DefaultColormap
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
}

// Validate checks the options without rendering.
func (o Options) Validate() error {
	if o.Colormap != "" {
		return styles.ValidateColormap(o.Colormap)
	}
	return nil
}

// Render lays out the words and returns the SVG bytes.
func Render(words []Word, opts Options) ([]byte, error) {
	if len(words) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidOption, "word cloud needs at least one word")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts.setDefaults()

	sorted := make([]Word, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Weight > sorted[j].Weight })
	if len(sorted) > opts.MaxWords {
		sorted = sorted[:opts.MaxWords]
	}

	maxWeight := sorted[0].Weight
	if maxWeight <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidOption, "weights must contain a positive entry")
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0xdeadbeef))
	layout := newLayout(opts.Width, opts.Height)

	var placed []placedWord
	for rank, w := range sorted {
		size := fontSize(w.Weight/maxWeight, opts)
		vertical := rng.Float64() >= opts.PreferHorizontal

		pw, ok := layout.place(w.Text, size, vertical, rng)
		if !ok && vertical {
			// Retry horizontally before giving up; narrow frames
			// reject rotated words first.
			pw, ok = layout.place(w.Text, size, false, rng)
		}
		if !ok {
			continue
		}

		pw.color = styles.Sample(opts.Colormap, colorPos(rank, len(sorted)))
		placed = append(placed, pw)
	}

	return renderSVG(placed, opts), nil
}

// fontSize maps a relative weight in (0,1] to a font size. Square-root
// scaling keeps mid-frequency words legible next to dominant ones.
func fontSize(rel float64, opts Options) float64 {
	if rel < 0 {
		rel = 0
	}
	return opts.MinFontSize + (opts.MaxFontSize-opts.MinFontSize)*math.Sqrt(rel)
}

// colorPos spreads word ranks across the upper portion of the colormap,
// keeping the heaviest words in the darkest colors.
func colorPos(rank, total int) float64 {
	if total <= 1 {
		return 1.0
	}
	return 1.0 - 0.7*float64(rank)/float64(total-1)
}

// renderSVG emits the placed words as SVG text elements.
func renderSVG(placed []placedWord, opts Options) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		opts.Width, opts.Height, opts.Width, opts.Height)
	if opts.Background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", opts.Background)
	}
	buf.WriteString(`  <g font-family="Helvetica, Arial, sans-serif" font-weight="bold">` + "\n")

	for _, pw := range placed {
		if pw.vertical {
			fmt.Fprintf(&buf,
				`  <text x="%.1f" y="%.1f" font-size="%.1f" fill="%s" transform="rotate(-90 %.1f %.1f)">%s</text>`+"\n",
				pw.x, pw.y, pw.size, pw.color, pw.x, pw.y, styles.EscapeXML(pw.text))
			continue
		}
		fmt.Fprintf(&buf,
			`  <text x="%.1f" y="%.1f" font-size="%.1f" fill="%s">%s</text>`+"\n",
			pw.x, pw.y, pw.size, pw.color, styles.EscapeXML(pw.text))
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}
