package pixelfixel

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

var ErrEmptyPalette = errors.New("empty palette")

// Palette is an ordered list of RGB colors. Order matters: nearest-color
// ties resolve to the earliest entry.
type Palette []Color

// ApplyPalette maps every pixel of rb to its nearest palette color,
// preserving alpha. Rows are independent and processed in parallel. An
// empty palette is a caller error, never a silent default.
func ApplyPalette(rb *RasterBuffer, palette Palette) (*RasterBuffer, error) {
	if err := rb.Validate(); err != nil {
		return nil, err
	}
	if len(palette) == 0 {
		return nil, ErrEmptyPalette
	}
	out := NewRasterBuffer(rb.W, rb.H)
	parallelFor(rb.H, func(lo, hi int) {
		for y := lo; y < hi; y++ {
			for x := 0; x < rb.W; x++ {
				off := rb.PixOffset(x, y)
				c := palette[Nearest(Color{rb.Pix[off], rb.Pix[off+1], rb.Pix[off+2]}, palette)]
				out.Pix[off] = c.R
				out.Pix[off+1] = c.G
				out.Pix[off+2] = c.B
				out.Pix[off+3] = rb.Pix[off+3]
			}
		}
	})
	return out, nil
}

// ParseHexPalette builds a palette from "#rrggbb" strings.
func ParseHexPalette(hexes ...string) (Palette, error) {
	palette := make(Palette, 0, len(hexes))
	for _, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("palette entry %q: %w", h, err)
		}
		r, g, b := c.RGB255()
		palette = append(palette, Color{r, g, b})
	}
	return palette, nil
}
