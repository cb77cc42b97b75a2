package pixelfixel

import "math"

// Color is an 8-bit RGB triple. Alpha rides alongside in RasterBuffer and
// never enters distance or averaging computations.
type Color struct {
	R, G, B uint8
}

// DistanceSquared returns the sum of squared per-channel differences.
func DistanceSquared(a, b Color) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

// Distance returns the Euclidean distance between two colors. Use
// DistanceSquared where only the ordering matters.
func Distance(a, b Color) float64 {
	return math.Sqrt(float64(DistanceSquared(a, b)))
}

// AverageColor returns the channel-wise arithmetic mean, rounded to the
// nearest integer. colors must be non-empty.
func AverageColor(colors []Color) Color {
	var r, g, b int
	for _, c := range colors {
		r += int(c.R)
		g += int(c.G)
		b += int(c.B)
	}
	n := float64(len(colors))
	return Color{
		R: uint8(math.Round(float64(r) / n)),
		G: uint8(math.Round(float64(g) / n)),
		B: uint8(math.Round(float64(b) / n)),
	}
}

// Nearest returns the index of the palette entry closest to c by squared
// distance. Ties keep the earliest entry, so the result is deterministic
// for a fixed palette order. palette must be non-empty.
func Nearest(c Color, palette Palette) int {
	best := 0
	bestD := DistanceSquared(c, palette[0])
	for i := 1; i < len(palette); i++ {
		if d := DistanceSquared(c, palette[i]); d < bestD {
			bestD = d
			best = i
		}
	}
	return best
}
