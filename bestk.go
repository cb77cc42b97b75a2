package pixelfixel

import "gonum.org/v1/gonum/floats"

const (
	// sampleStride takes every 4th pixel in scan order for the distortion
	// sweep, trading accuracy for a 4x cheaper curve.
	sampleStride = 4
	// maxSweepK caps how many candidate palette sizes are evaluated.
	maxSweepK = 32
	// elbowOffset realigns the doubly differenced distortion curve with the
	// 1-based k scale. Tuned for output quality, not derived.
	elbowOffset = 2
)

// SelectBestK sweeps palette sizes from 1 to min(maxK, 32) over a subsample
// of rb and returns the elbow of the distortion curve: the size past which
// one more color stops paying for itself.
//
// For each step the relative rate of decrease of total squared distortion
// is computed, then the first difference of that rate; the first-occurrence
// maximum of the latter, offset by elbowOffset, is the recommendation,
// clamped to [2, maxK]. A step whose preceding distortion is exactly zero
// (a sub-palette can represent the sample perfectly) contributes rate 0
// rather than dividing by zero. Degenerate inputs with fewer than two
// distortion samples return 2.
func SelectBestK(rb *RasterBuffer, maxK int) int {
	if rb == nil || maxK < 2 {
		return 2
	}
	sample := make([]Color, 0, len(rb.Pix)/pixelStride/sampleStride+1)
	for i := 0; i < len(rb.Pix)/pixelStride; i += sampleStride {
		off := i * pixelStride
		sample = append(sample, Color{rb.Pix[off], rb.Pix[off+1], rb.Pix[off+2]})
	}
	if len(sample) == 0 {
		return 2
	}

	sweep := min(maxK, maxSweepK)
	distortion := make([]float64, sweep)
	for k := 1; k <= sweep; k++ {
		palette := BuildPalette(sample, k)
		total := 0.0
		for _, c := range sample {
			total += float64(DistanceSquared(c, palette[Nearest(c, palette)]))
		}
		distortion[k-1] = total
	}

	rates := make([]float64, 0, len(distortion)-1)
	for i := 1; i < len(distortion); i++ {
		rate := 0.0
		if distortion[i-1] > 0 {
			rate = (distortion[i-1] - distortion[i]) / distortion[i-1]
		}
		rates = append(rates, rate)
	}
	drops := make([]float64, 0, max(len(rates)-1, 0))
	for i := 1; i < len(rates); i++ {
		drops = append(drops, rates[i-1]-rates[i])
	}
	if len(drops) == 0 {
		return 2
	}
	k := floats.MaxIdx(drops) + elbowOffset
	return min(max(k, 2), maxK)
}
