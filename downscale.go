package pixelfixel

import "math"

// KMeansIterations is the fixed number of assign/recompute rounds run per
// tile. The loop count is deliberate: no convergence check, so identical
// input always yields identical output.
const KMeansIterations = 5

// Downscale shrinks rb to targetW x targetH by clustering each source
// tile's colors and emitting the dominant cluster's centroid. Tile
// boundaries are proportional and need not align to integer multiples of
// the cell size. k is the cluster count per tile; 2 reliably separates a
// tile's fill color from the anti-aliased edge noise a smooth upscaler
// leaves behind, where a plain average would blur the two together.
//
// Tiles with no source pixels (target dimension larger than the source)
// stay transparent black; every emitted pixel is fully opaque. Tiles are
// independent and processed in parallel.
func Downscale(rb *RasterBuffer, targetW, targetH, k int) *RasterBuffer {
	out := NewRasterBuffer(targetW, targetH)
	if k < 1 {
		k = 1
	}
	parallelFor(targetH, func(lo, hi int) {
		var colors []Color
		km := newTileKMeans(k)
		for ty := lo; ty < hi; ty++ {
			y0 := clampInt(ty*rb.H/targetH, 0, rb.H)
			y1 := clampInt((ty+1)*rb.H/targetH, 0, rb.H)
			for tx := 0; tx < targetW; tx++ {
				x0 := clampInt(tx*rb.W/targetW, 0, rb.W)
				x1 := clampInt((tx+1)*rb.W/targetW, 0, rb.W)
				colors = colors[:0]
				for y := y0; y < y1; y++ {
					for x := x0; x < x1; x++ {
						colors = append(colors, rb.ColorAt(x, y))
					}
				}
				if len(colors) == 0 {
					continue
				}
				out.SetRGBA(tx, ty, km.dominant(colors), 255)
			}
		}
	})
	return out
}

// tileKMeans holds reusable scratch state for per-tile clustering.
type tileKMeans struct {
	k     int
	cents [][3]float64
	sums  [][3]float64
	count []int
}

func newTileKMeans(k int) *tileKMeans {
	return &tileKMeans{
		k:     k,
		cents: make([][3]float64, k),
		sums:  make([][3]float64, k),
		count: make([]int, k),
	}
}

// dominant clusters colors with a bounded k-means and returns the most
// populated cluster's centroid, rounded to 8-bit channels.
//
// Seeds are the colors at evenly spaced positions i*floor(n/k); a tile
// smaller than k tolerates duplicate seeds. Each round assigns every color
// to the nearest centroid (ties to the lowest centroid index) and recomputes
// non-empty clusters' centroids as channel-wise means; a cluster that runs
// empty keeps its previous centroid. After the fixed rounds a final
// assignment pass picks the winner by population, ties again to the lowest
// index.
func (km *tileKMeans) dominant(colors []Color) Color {
	step := len(colors) / km.k
	for i := 0; i < km.k; i++ {
		c := colors[min(i*step, len(colors)-1)]
		km.cents[i] = [3]float64{float64(c.R), float64(c.G), float64(c.B)}
	}
	for it := 0; it < KMeansIterations; it++ {
		km.assign(colors)
		for j := 0; j < km.k; j++ {
			if km.count[j] == 0 {
				continue
			}
			n := float64(km.count[j])
			km.cents[j] = [3]float64{km.sums[j][0] / n, km.sums[j][1] / n, km.sums[j][2] / n}
		}
	}
	km.assign(colors)
	best := 0
	for j := 1; j < km.k; j++ {
		if km.count[j] > km.count[best] {
			best = j
		}
	}
	return Color{
		R: uint8(math.Round(km.cents[best][0])),
		G: uint8(math.Round(km.cents[best][1])),
		B: uint8(math.Round(km.cents[best][2])),
	}
}

func (km *tileKMeans) assign(colors []Color) {
	for j := 0; j < km.k; j++ {
		km.sums[j] = [3]float64{}
		km.count[j] = 0
	}
	for _, c := range colors {
		r, g, b := float64(c.R), float64(c.G), float64(c.B)
		best := 0
		bestD := math.MaxFloat64
		for j := 0; j < km.k; j++ {
			dr := r - km.cents[j][0]
			dg := g - km.cents[j][1]
			db := b - km.cents[j][2]
			if d := dr*dr + dg*dg + db*db; d < bestD {
				bestD = d
				best = j
			}
		}
		km.count[best]++
		km.sums[best][0] += r
		km.sums[best][1] += g
		km.sums[best][2] += b
	}
}
