// Package pixelfixel recovers the logical resolution of upscaled or
// AI-generated pixel art and re-renders it with a reduced, coherent palette.
//
// The pipeline detects the pixel-cell grid from adjacent-pixel difference
// signals, downscales each cell to its dominant color with a bounded
// k-means, and reduces the result to a palette built by median cut, with the
// palette size either fixed by the caller or picked from the distortion
// curve's elbow.
package pixelfixel

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
)

// Interleaved channels per pixel: R, G, B, A.
const pixelStride = 4

var ErrInvalidDimensions = errors.New("invalid raster dimensions")

// RasterBuffer is a flat, interleaved 8-bit RGBA pixel grid.
// Pix holds W*H*4 bytes in row-major scan order.
type RasterBuffer struct {
	W, H int
	Pix  []uint8
}

// NewRasterBuffer allocates a zeroed (transparent black) raster.
func NewRasterBuffer(w, h int) *RasterBuffer {
	return &RasterBuffer{
		W:   w,
		H:   h,
		Pix: make([]uint8, w*h*pixelStride),
	}
}

// Validate reports whether the raster satisfies the buffer invariant:
// positive dimensions and len(Pix) == W*H*4.
func (rb *RasterBuffer) Validate() error {
	if rb == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidDimensions)
	}
	if rb.W <= 0 || rb.H <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rb.W, rb.H)
	}
	if want := rb.W * rb.H * pixelStride; len(rb.Pix) != want {
		return fmt.Errorf("%w: pix length %d, want %d", ErrInvalidDimensions, len(rb.Pix), want)
	}
	return nil
}

func (rb *RasterBuffer) PixOffset(x, y int) int {
	return (y*rb.W + x) * pixelStride
}

func (rb *RasterBuffer) ColorAt(x, y int) Color {
	off := rb.PixOffset(x, y)
	return Color{rb.Pix[off], rb.Pix[off+1], rb.Pix[off+2]}
}

func (rb *RasterBuffer) AlphaAt(x, y int) uint8 {
	return rb.Pix[rb.PixOffset(x, y)+3]
}

func (rb *RasterBuffer) SetRGBA(x, y int, c Color, a uint8) {
	off := rb.PixOffset(x, y)
	rb.Pix[off] = c.R
	rb.Pix[off+1] = c.G
	rb.Pix[off+2] = c.B
	rb.Pix[off+3] = a
}

// Clone returns an independently owned copy of the raster.
func (rb *RasterBuffer) Clone() *RasterBuffer {
	out := &RasterBuffer{
		W:   rb.W,
		H:   rb.H,
		Pix: make([]uint8, len(rb.Pix)),
	}
	copy(out.Pix, rb.Pix)
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// parallelFor splits [0, n) into contiguous spans, one per worker, and runs
// fn on each span concurrently. Callers write to disjoint output regions per
// span, so no locking is needed.
func parallelFor(n int, fn func(lo, hi int)) {
	workers := min(runtime.NumCPU(), n)
	if workers <= 1 {
		if n > 0 {
			fn(0, n)
		}
		return
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
