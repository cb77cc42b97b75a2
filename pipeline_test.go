package pixelfixel

import (
	"bytes"
	"errors"
	"testing"
)

func TestRestoreUpscaledCheckerboard(t *testing.T) {
	logical := makeChecker(12, 10, Color{}, Color{255, 255, 255})
	rb := upscaleNearest(logical, 4, 4)

	opt := DefaultOptions()
	opt.Colors = 2
	res, err := Restore(rb, opt)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if res.HFactor != 4 || res.VFactor != 4 {
		t.Fatalf("factors: got %vx%v, want 4x4", res.HFactor, res.VFactor)
	}
	if res.Buffer.W != 12 || res.Buffer.H != 10 {
		t.Fatalf("restored dims: got %dx%d, want 12x10", res.Buffer.W, res.Buffer.H)
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 12; x++ {
			if got, want := res.Buffer.ColorAt(x, y), logical.ColorAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d): got %+v, want %+v", x, y, got, want)
			}
		}
	}
}

func TestRestoreAutoPaletteSize(t *testing.T) {
	logical := makeChecker(16, 16, Color{}, Color{255, 255, 255})
	rb := upscaleNearest(logical, 3, 3)

	res, err := Restore(rb, DefaultOptions())
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if len(res.Colors) != 2 {
		t.Fatalf("auto palette size: got %d, want 2", len(res.Colors))
	}
}

func TestRestoreFixedPalette(t *testing.T) {
	rb := makeNoiseRaster(32, 32)
	palette := Preset("gameboy")

	opt := DefaultOptions()
	opt.Palette = palette
	res, err := Restore(rb, opt)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	members := make(map[Color]bool, len(palette))
	for _, c := range palette {
		members[c] = true
	}
	for y := 0; y < res.Buffer.H; y++ {
		for x := 0; x < res.Buffer.W; x++ {
			if c := res.Buffer.ColorAt(x, y); !members[c] {
				t.Fatalf("pixel (%d,%d): color %+v not in fixed palette", x, y, c)
			}
		}
	}
	if len(res.Colors) != len(palette) {
		t.Fatalf("result palette size: got %d, want %d", len(res.Colors), len(palette))
	}
}

func TestRestoreNoUpscaleDetected(t *testing.T) {
	// Noise has no periodic structure, so the raster keeps its dimensions.
	rb := makeNoiseRaster(24, 24)
	opt := DefaultOptions()
	opt.Colors = 8
	res, err := Restore(rb, opt)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if res.Buffer.W > 24 || res.Buffer.H > 24 {
		t.Fatalf("restored dims grew: got %dx%d", res.Buffer.W, res.Buffer.H)
	}
}

func TestRestoreInvalid(t *testing.T) {
	for _, tc := range []struct {
		name string
		rb   *RasterBuffer
	}{
		{name: "nil", rb: nil},
		{name: "zero_dims", rb: &RasterBuffer{}},
		{name: "length_mismatch", rb: &RasterBuffer{W: 4, H: 4, Pix: make([]uint8, 10)}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Restore(tc.rb, DefaultOptions()); !errors.Is(err, ErrInvalidDimensions) {
				t.Fatalf("Restore: got %v, want ErrInvalidDimensions", err)
			}
		})
	}
}

func TestRestoreDoesNotMutateInput(t *testing.T) {
	rb := makeNoiseRaster(20, 20)
	before := rb.Clone()
	opt := DefaultOptions()
	opt.Colors = 4
	if _, err := Restore(rb, opt); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if !bytes.Equal(rb.Pix, before.Pix) {
		t.Fatal("restore mutated its input buffer")
	}
}

func TestRestoreDeterministic(t *testing.T) {
	logical := makeChecker(8, 8, Color{R: 200, G: 40}, Color{B: 180})
	rb := upscaleNearest(logical, 5, 5)
	a, err := Restore(rb, DefaultOptions())
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	b, err := Restore(rb, DefaultOptions())
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if !bytes.Equal(a.Buffer.Pix, b.Buffer.Pix) {
		t.Fatal("restore output differs between identical runs")
	}
}
