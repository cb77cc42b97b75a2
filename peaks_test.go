package pixelfixel

import (
	"reflect"
	"testing"
)

func TestDifferenceSignal(t *testing.T) {
	// Columns: A, B, B. The only horizontal discontinuity is boundary 0.
	a := Color{R: 255}
	b := Color{B: 255}
	rb := NewRasterBuffer(3, 2)
	for y := 0; y < 2; y++ {
		rb.SetRGBA(0, y, a, 255)
		rb.SetRGBA(1, y, b, 255)
		rb.SetRGBA(2, y, b, 255)
	}

	h := DifferenceSignal(rb, Horizontal)
	if len(h) != 2 {
		t.Fatalf("horizontal signal length: got %d, want 2", len(h))
	}
	want := 2 * Distance(a, b) // both rows cross the boundary
	if h[0] != want || h[1] != 0 {
		t.Fatalf("horizontal signal: got %v, want [%v 0]", h, want)
	}

	v := DifferenceSignal(rb, Vertical)
	if len(v) != 1 {
		t.Fatalf("vertical signal length: got %d, want 1", len(v))
	}
	if v[0] != 0 {
		t.Fatalf("vertical signal: got %v, want [0]", v)
	}
}

func TestDifferenceSignalDegenerate(t *testing.T) {
	rb := NewRasterBuffer(1, 5)
	if got := DifferenceSignal(rb, Horizontal); len(got) != 0 {
		t.Fatalf("width-1 horizontal signal: got len %d, want 0", len(got))
	}
	if got := DifferenceSignal(rb, Vertical); len(got) != 4 {
		t.Fatalf("width-1 vertical signal: got len %d, want 4", len(got))
	}
}

func TestFindPeaks(t *testing.T) {
	signal := []float64{0, 1, 0, 2, 0, 3, 0}
	for _, tc := range []struct {
		name      string
		minSep    int
		minHeight float64
		want      []int
	}{
		{name: "all", minSep: 1, minHeight: 0, want: []int{1, 3, 5}},
		// Greedy scan: 3 is rejected (too close to 1) and never revisited;
		// 5 clears the gap from 1.
		{name: "separation", minSep: 3, minHeight: 0, want: []int{1, 5}},
		{name: "min_height", minSep: 1, minHeight: 2.5, want: []int{5}},
		{name: "height_and_separation", minSep: 2, minHeight: 1.5, want: []int{3, 5}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := FindPeaks(signal, tc.minSep, tc.minHeight)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("FindPeaks: got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFindPeaksEdgesNeverCandidates(t *testing.T) {
	// Largest values sit at the ends but lack two neighbors.
	got := FindPeaks([]float64{9, 1, 2, 1, 9}, 1, 0)
	if !reflect.DeepEqual(got, []int{2}) {
		t.Fatalf("FindPeaks: got %v, want [2]", got)
	}
	if got := FindPeaks([]float64{5, 7}, 1, 0); got != nil {
		t.Fatalf("FindPeaks short signal: got %v, want none", got)
	}
	if got := FindPeaks(nil, 1, 0); got != nil {
		t.Fatalf("FindPeaks empty signal: got %v, want none", got)
	}
}

func TestFindPeaksPlateauRejected(t *testing.T) {
	// Strictly-greater on both sides: plateaus are not peaks.
	if got := FindPeaks([]float64{0, 2, 2, 0}, 1, 0); got != nil {
		t.Fatalf("FindPeaks plateau: got %v, want none", got)
	}
}

func TestMedianSpacing(t *testing.T) {
	for _, tc := range []struct {
		name  string
		peaks []int
		want  float64
	}{
		{name: "none", peaks: nil, want: 1},
		{name: "single", peaks: []int{5}, want: 1},
		{name: "pair", peaks: []int{2, 6}, want: 4},
		{name: "odd_gap_count", peaks: []int{0, 2, 4, 9}, want: 2},
		{name: "even_gap_count_interpolates", peaks: []int{2, 5, 9}, want: 3.5},
		{name: "uniform", peaks: []int{3, 7, 11, 15}, want: 4},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := MedianSpacing(tc.peaks); got != tc.want {
				t.Fatalf("MedianSpacing: got %v, want %v", got, tc.want)
			}
		})
	}
}
