package pixelfixel

import "sort"

// BuildPalette partitions colors into at most numColors representative
// entries by median cut. Buckets live in a flat work list; each split
// replaces the parent bucket with its two children at the parent's position,
// which keeps the first-bucket-wins tie break stable across rounds. The
// split axis is the single largest per-channel range found across all
// buckets, channels scanned in R, G, B order. Splitting stops early once
// the widest bucket has fewer than two members, so the result may be
// shorter than requested. Each final bucket contributes its rounded
// channel-wise average.
//
// Input duplicates are kept, which weights the palette toward dominant
// colors. The input slice is not modified.
func BuildPalette(colors []Color, numColors int) Palette {
	if len(colors) == 0 || numColors < 1 {
		return nil
	}
	initial := make([]Color, len(colors))
	copy(initial, colors)
	buckets := make([][]Color, 1, numColors)
	buckets[0] = initial

	for len(buckets) < numColors {
		bi, axis := widestBucket(buckets)
		b := buckets[bi]
		if len(b) < 2 {
			break
		}
		sort.SliceStable(b, func(i, j int) bool {
			return channelValue(b[i], axis) < channelValue(b[j], axis)
		})
		mid := len(b) / 2
		buckets = append(buckets, nil)
		copy(buckets[bi+2:], buckets[bi+1:])
		buckets[bi] = b[:mid:mid]
		buckets[bi+1] = b[mid:]
	}

	palette := make(Palette, len(buckets))
	for i, b := range buckets {
		palette[i] = AverageColor(b)
	}
	return palette
}

// widestBucket finds the bucket holding the single largest per-channel
// range and the channel it occurs on. Earlier buckets and earlier channels
// (R before G before B) win ties.
func widestBucket(buckets [][]Color) (bucket, axis int) {
	bestRange := -1
	for i, b := range buckets {
		minC := [3]int{255, 255, 255}
		maxC := [3]int{}
		for _, c := range b {
			for ch, v := range [3]int{int(c.R), int(c.G), int(c.B)} {
				if v < minC[ch] {
					minC[ch] = v
				}
				if v > maxC[ch] {
					maxC[ch] = v
				}
			}
		}
		for ch := 0; ch < 3; ch++ {
			if r := maxC[ch] - minC[ch]; r > bestRange {
				bestRange = r
				bucket = i
				axis = ch
			}
		}
	}
	return bucket, axis
}

func channelValue(c Color, axis int) uint8 {
	switch axis {
	case 0:
		return c.R
	case 1:
		return c.G
	default:
		return c.B
	}
}

// Quantize reduces rb to at most numColors colors: a median-cut palette is
// built over every pixel (duplicates included), then each pixel maps to its
// nearest palette entry. Alpha passes through untouched. The returned
// palette is the one actually applied.
func Quantize(rb *RasterBuffer, numColors int) (*RasterBuffer, Palette, error) {
	if err := rb.Validate(); err != nil {
		return nil, nil, err
	}
	colors := make([]Color, rb.W*rb.H)
	for i := range colors {
		off := i * pixelStride
		colors[i] = Color{rb.Pix[off], rb.Pix[off+1], rb.Pix[off+2]}
	}
	palette := BuildPalette(colors, numColors)
	out, err := ApplyPalette(rb, palette)
	if err != nil {
		return nil, nil, err
	}
	return out, palette, nil
}
