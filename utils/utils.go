// Package utils bridges the restoration core to Go's image ecosystem:
// decoding and encoding, RasterBuffer conversion, and palette extraction
// from source images. The core itself never touches files or image.Image.
package utils

import (
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/claudehenchoz/pixelfixel"
)

// FromImage copies img into an independently owned RasterBuffer with
// non-premultiplied alpha.
func FromImage(img image.Image) *pixelfixel.RasterBuffer {
	b := img.Bounds()
	rb := pixelfixel.NewRasterBuffer(b.Dx(), b.Dy())
	tmp := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(tmp, tmp.Bounds(), img, b.Min, draw.Src)
	copy(rb.Pix, tmp.Pix)
	return rb
}

// ToImage copies rb into a standard NRGBA image. The pixel layouts match,
// so this is a straight buffer copy.
func ToImage(rb *pixelfixel.RasterBuffer) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, rb.W, rb.H))
	copy(img.Pix, rb.Pix)
	return img
}

func ReadImage(path string) image.Image {
	file, err := os.Open(path)
	if err != nil {
		panic(err)
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		panic(err)
	}
	return img
}

// SaveImage encodes img by file extension: .bmp as BMP, everything else as
// PNG.
func SaveImage(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	if strings.EqualFold(filepath.Ext(filename), ".bmp") {
		return bmp.Encode(f, img)
	}
	return png.Encode(f, img)
}

// SavePalette writes the palette as a strip of tileSize x tileSize swatches.
func SavePalette(palette pixelfixel.Palette, tileSize int, filename string) error {
	if len(palette) == 0 {
		return pixelfixel.ErrEmptyPalette
	}
	if tileSize <= 0 {
		tileSize = 64
	}
	img := image.NewRGBA(image.Rect(0, 0, tileSize*len(palette), tileSize))
	for i, c := range palette {
		x0 := i * tileSize
		for y := 0; y < tileSize; y++ {
			for x := x0; x < x0+tileSize; x++ {
				img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
			}
		}
	}
	return SaveImage(img, filename)
}

// SortPaletteByBrightness orders colors from darkest to brightest, so the
// first entry becomes the darkest (background) color.
func SortPaletteByBrightness(palette pixelfixel.Palette) {
	slices.SortFunc(palette, func(a, b pixelfixel.Color) int {
		yi := luminance(a)
		yj := luminance(b)
		if yi < yj {
			return -1
		}
		if yi > yj {
			return 1
		}
		return 0
	})
}

func luminance(c pixelfixel.Color) float64 {
	r, g, b := toColorful(c).LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func toColorful(c pixelfixel.Color) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

type weightedColor struct {
	Col    colorful.Color
	Weight float64
}

// ExtractPalette builds a k-color palette from a source image, for use as a
// fixed palette in the restoration pipeline.
func ExtractPalette(img image.Image, k int, method PaletteMethod) pixelfixel.Palette {
	switch method {
	case PaletteMethodKMeans:
		p := ExtractKMeansPalette(img, k)
		if len(p) != 0 {
			return p
		}
		log.Println("palette warning: kmeans returned empty palette, falling back to dominantcolor")
		return ExtractDominantPalette(img, k)
	default:
		return ExtractDominantPalette(img, k)
	}
}

// ExtractDominantPalette picks k diverse colors from the image's dominant
// tones.
func ExtractDominantPalette(img image.Image, k int) pixelfixel.Palette {
	if k <= 0 {
		return nil
	}
	candidates := dominantcolor.FindWeight(img, max(24, k*8))
	if len(candidates) == 0 {
		// Last resort: avoid an empty palette that the mapper would reject.
		candidates = append(candidates, dominantcolor.Color{
			RGBA:   color.RGBA{R: 128, G: 128, B: 128, A: 255},
			Weight: 1.0,
		})
	}
	weighted := make([]weightedColor, 0, len(candidates))
	for _, c := range candidates {
		col, _ := colorful.MakeColor(c.RGBA)
		w := c.Weight
		if w <= 0 {
			w = 1e-6
		}
		weighted = append(weighted, weightedColor{Col: col.Clamped(), Weight: w})
	}
	return selectDiverse(weighted, k)
}

// ExtractKMeansPalette clusters a subsample of the image's pixels and picks
// k diverse cluster centers, heaviest clusters favored.
func ExtractKMeansPalette(img image.Image, k int) pixelfixel.Palette {
	if k <= 0 {
		return nil
	}
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	// Subsample to keep kmeans tractable on large images.
	maxSamples := 12000
	step := 1
	if width*height > maxSamples {
		step = int(math.Sqrt(float64(width*height)/float64(maxSamples))) + 1
	}
	dataset := make(clusters.Observations, 0, min(width*height, maxSamples))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			if a16 == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(r16) / 65535.0,
				float64(g16) / 65535.0,
				float64(b16) / 65535.0,
			})
		}
	}
	if len(dataset) == 0 {
		return nil
	}

	workK := min(max(k*4, k+2), len(dataset))
	km := kmeans.New()
	cc, err := km.Partition(dataset, workK)
	if err != nil || len(cc) == 0 {
		return nil
	}

	weighted := make([]weightedColor, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		weighted = append(weighted, weightedColor{
			Col:    col,
			Weight: max(float64(len(c.Observations)), 1e-6),
		})
	}
	return selectDiverse(weighted, k)
}

// selectDiverse greedily picks k candidates, seeding with the heaviest and
// then maximizing weight-scaled Lab distance to the picks so far.
func selectDiverse(cands []weightedColor, k int) pixelfixel.Palette {
	if k <= 0 || len(cands) == 0 {
		return nil
	}
	k = min(k, len(cands))
	maxW := 0.0
	labs := make([][3]float64, len(cands))
	for i, c := range cands {
		l, a, b := c.Col.Lab()
		labs[i] = [3]float64{l, a, b}
		maxW = max(maxW, c.Weight)
	}

	picked := make([]int, 0, k)
	taken := make([]bool, len(cands))
	seed := 0
	for i := 1; i < len(cands); i++ {
		if cands[i].Weight > cands[seed].Weight {
			seed = i
		}
	}
	picked = append(picked, seed)
	taken[seed] = true

	for len(picked) < k {
		bestIdx, bestScore := -1, -1.0
		for i := range cands {
			if taken[i] {
				continue
			}
			minD2 := math.MaxFloat64
			for _, s := range picked {
				d0 := labs[i][0] - labs[s][0]
				d1 := labs[i][1] - labs[s][1]
				d2 := labs[i][2] - labs[s][2]
				minD2 = min(minD2, d0*d0+d1*d1+d2*d2)
			}
			score := math.Sqrt(minD2) * (0.55 + 0.45*math.Sqrt(cands[i].Weight/maxW))
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break
		}
		taken[bestIdx] = true
		picked = append(picked, bestIdx)
	}

	out := make(pixelfixel.Palette, 0, len(picked))
	for _, idx := range picked {
		r, g, b := cands[idx].Col.RGB255()
		out = append(out, pixelfixel.Color{R: r, G: g, B: b})
	}
	return out
}
