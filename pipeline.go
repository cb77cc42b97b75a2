package pixelfixel

// Options configures Restore.
type Options struct {
	// Per-tile cluster count used while downscaling.
	// 2 separates a tile's fill color from upscaler edge noise.
	ClusterK int
	// Fixed output palette size. 0 selects the size automatically from the
	// distortion curve.
	Colors int
	// Upper bound for automatic palette-size selection.
	MaxColors int
	// When non-empty, applied as-is; overrides Colors and MaxColors.
	Palette Palette
}

func DefaultOptions() Options {
	return Options{
		ClusterK:  2,
		Colors:    0,
		MaxColors: 16,
	}
}

// Result is a restored raster plus what was detected along the way.
type Result struct {
	Buffer  *RasterBuffer
	HFactor float64
	VFactor float64
	Colors  Palette
}

// Restore recovers the logical resolution of an upscaled pixel-art raster
// and re-renders it with a reduced palette: grid detection, dominant-color
// downscale, then either the supplied fixed palette or a median-cut palette
// of the requested (or automatically selected) size.
func Restore(rb *RasterBuffer, opt Options) (*Result, error) {
	if err := rb.Validate(); err != nil {
		return nil, err
	}
	clusterK := opt.ClusterK
	if clusterK < 1 {
		clusterK = DefaultOptions().ClusterK
	}

	hFactor, vFactor := DetectGrid(rb)
	tw, th := TargetDims(rb.W, rb.H, hFactor, vFactor)
	down := Downscale(rb, tw, th, clusterK)
	res := &Result{HFactor: hFactor, VFactor: vFactor}

	if len(opt.Palette) > 0 {
		out, err := ApplyPalette(down, opt.Palette)
		if err != nil {
			return nil, err
		}
		res.Buffer = out
		res.Colors = opt.Palette
		return res, nil
	}

	numColors := opt.Colors
	if numColors <= 0 {
		maxColors := opt.MaxColors
		if maxColors <= 0 {
			maxColors = DefaultOptions().MaxColors
		}
		numColors = SelectBestK(down, maxColors)
	}
	out, palette, err := Quantize(down, numColors)
	if err != nil {
		return nil, err
	}
	res.Buffer = out
	res.Colors = palette
	return res, nil
}
