package pixelfixel

import "math"

// DetectionResult carries a downscaled raster plus the estimated cell
// periods that produced it. HFactor and VFactor are the estimated number of
// upscaled source pixels per logical pixel along each axis, both >= 1.
type DetectionResult struct {
	Buffer  *RasterBuffer
	HFactor float64
	VFactor float64
}

// DetectGrid estimates the pixel-cell period along each axis from the median
// spacing of boundary-difference peaks. An axis with fewer than two peaks
// (including any axis of length 1, whose signal is empty) reports factor 1:
// no upscaling detected.
func DetectGrid(rb *RasterBuffer) (hFactor, vFactor float64) {
	hFactor = MedianSpacing(FindPeaks(DifferenceSignal(rb, Horizontal), 1, 0))
	vFactor = MedianSpacing(FindPeaks(DifferenceSignal(rb, Vertical), 1, 0))
	return hFactor, vFactor
}

// TargetDims converts detected cell periods into downscale target
// dimensions, rounding and flooring each at 1.
func TargetDims(w, h int, hFactor, vFactor float64) (int, int) {
	tw := max(int(math.Round(float64(w)/hFactor)), 1)
	th := max(int(math.Round(float64(h)/vFactor)), 1)
	return tw, th
}

// Detect runs grid detection on rb and downscales it to the detected logical
// resolution using clusterK clusters per tile.
func Detect(rb *RasterBuffer, clusterK int) (*DetectionResult, error) {
	if err := rb.Validate(); err != nil {
		return nil, err
	}
	hFactor, vFactor := DetectGrid(rb)
	tw, th := TargetDims(rb.W, rb.H, hFactor, vFactor)
	return &DetectionResult{
		Buffer:  Downscale(rb, tw, th, clusterK),
		HFactor: hFactor,
		VFactor: vFactor,
	}, nil
}
