package pixelfixel

import "sort"

// Axis selects the scan direction for boundary difference signals.
type Axis int

const (
	Horizontal Axis = iota // boundaries between adjacent columns
	Vertical               // boundaries between adjacent rows
)

// DifferenceSignal sums the Euclidean color distance over every pixel pair
// straddling each boundary along axis, one scalar per boundary position, so
// the result has length dim-1. Pixel-cell edges that survived a smooth
// upscale filter show up as boundaries that are discontinuous across most of
// the opposite axis.
func DifferenceSignal(rb *RasterBuffer, axis Axis) []float64 {
	if axis == Horizontal {
		signal := make([]float64, max(rb.W-1, 0))
		for bx := range signal {
			sum := 0.0
			for y := 0; y < rb.H; y++ {
				sum += Distance(rb.ColorAt(bx, y), rb.ColorAt(bx+1, y))
			}
			signal[bx] = sum
		}
		return signal
	}
	signal := make([]float64, max(rb.H-1, 0))
	for by := range signal {
		sum := 0.0
		for x := 0; x < rb.W; x++ {
			sum += Distance(rb.ColorAt(x, by), rb.ColorAt(x, by+1))
		}
		signal[by] = sum
	}
	return signal
}

// FindPeaks returns the indices of local maxima: values strictly greater
// than both neighbors and at least minHeight. The scan is greedy left to
// right; an accepted peak must sit at least minSeparation positions after
// the previously accepted one, and rejected candidates are never revisited.
// The first and last positions lack two neighbors and are never candidates.
func FindPeaks(signal []float64, minSeparation int, minHeight float64) []int {
	var peaks []int
	for i := 1; i < len(signal)-1; i++ {
		if signal[i] <= signal[i-1] || signal[i] <= signal[i+1] || signal[i] < minHeight {
			continue
		}
		if len(peaks) > 0 && i-peaks[len(peaks)-1] < minSeparation {
			continue
		}
		peaks = append(peaks, i)
	}
	return peaks
}

// MedianSpacing returns the median gap between successive peak indices,
// interpolating between the two middle gaps when their count is even.
// Fewer than two peaks means no detectable periodicity and yields 1.
func MedianSpacing(peaks []int) float64 {
	if len(peaks) < 2 {
		return 1
	}
	gaps := make([]float64, len(peaks)-1)
	for i := range gaps {
		gaps[i] = float64(peaks[i+1] - peaks[i])
	}
	sort.Float64s(gaps)
	mid := len(gaps) / 2
	if len(gaps)%2 == 0 {
		return (gaps[mid-1] + gaps[mid]) / 2
	}
	return gaps[mid]
}
