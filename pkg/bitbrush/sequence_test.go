// SPDX-License-Identifier: MIT
package bitbrush

import (
	"errors"
	"fmt"
	"math/bits"
	"slices"
	"testing"
)

func TestSweepOnes(t *testing.T) {
	b, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	seq := b.SweepOnes()
	got := seq.Collect()
	want := []uint64{1, 2, 4, 8, 16, 32, 64, 128}
	if !slices.Equal(got, want) {
		t.Errorf("SweepOnes() = %v, want %v", got, want)
	}
	if seq.Len() != 8 {
		t.Errorf("SweepOnes().Len() = %d, want 8", seq.Len())
	}
}

// Every sweep element has exactly one bit set, the run is strictly
// increasing, and it visits every single-bit value of the width.
func TestSweepOnesProperties(t *testing.T) {
	for _, width := range supportedWidths {
		t.Run(fmt.Sprintf("width=%d", width), func(t *testing.T) {
			b, err := New(width)
			if err != nil {
				t.Fatalf("New(%d) unexpected error: %v", width, err)
			}

			got := b.SweepOnes().Collect()
			if len(got) != width {
				t.Fatalf("SweepOnes yielded %d values, want %d", len(got), width)
			}
			for i, v := range got {
				if bits.OnesCount64(v) != 1 {
					t.Errorf("element %d = %#x, want exactly one bit set", i, v)
				}
				if v != uint64(1)<<i {
					t.Errorf("element %d = %#x, want %#x", i, v, uint64(1)<<i)
				}
				if i > 0 && v <= got[i-1] {
					t.Errorf("element %d = %#x not greater than predecessor %#x", i, v, got[i-1])
				}
			}
		})
	}
}

// SweepZeros element i is the complement, within the mask, of
// SweepOnes element i.
func TestSweepZerosComplementsSweepOnes(t *testing.T) {
	for _, width := range supportedWidths {
		t.Run(fmt.Sprintf("width=%d", width), func(t *testing.T) {
			b, err := New(width)
			if err != nil {
				t.Fatalf("New(%d) unexpected error: %v", width, err)
			}

			ones := b.SweepOnes().Collect()
			zeros := b.SweepZeros().Collect()
			if len(zeros) != len(ones) {
				t.Fatalf("SweepZeros yielded %d values, SweepOnes %d", len(zeros), len(ones))
			}
			for i := range ones {
				if zeros[i] != b.Mask()^ones[i] {
					t.Errorf("element %d: SweepZeros = %#x, want mask^%#x = %#x",
						i, zeros[i], ones[i], b.Mask()^ones[i])
				}
			}
		})
	}
}

func TestToggleSparse(t *testing.T) {
	tests := []struct {
		width    int
		step     int
		expected []uint64
	}{
		{8, 3, []uint64{1, 9, 73}},                     // Bits 0, 0+3, 0+3+6
		{8, 1, []uint64{1, 3, 7, 15, 31, 63, 127, 255}}, // Dense fill
		{8, 8, []uint64{1}},                             // Single element
		{8, 100, []uint64{1}},                           // Step beyond the width
		{16, 5, []uint64{1, 0x21, 0x421, 0x8421}},       // Bits 0, 5, 10, 15
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("w%d/step=%d", tt.width, tt.step), func(t *testing.T) {
			b, err := New(tt.width)
			if err != nil {
				t.Fatalf("New(%d) unexpected error: %v", tt.width, err)
			}

			seq, err := b.ToggleSparse(tt.step)
			if err != nil {
				t.Fatalf("ToggleSparse(%d) unexpected error: %v", tt.step, err)
			}
			if got := seq.Collect(); !slices.Equal(got, tt.expected) {
				t.Errorf("ToggleSparse(%d) = %v, want %v", tt.step, got, tt.expected)
			}
			if want := (tt.width + tt.step - 1) / tt.step; seq.Len() != want {
				t.Errorf("ToggleSparse(%d).Len() = %d, want %d", tt.step, seq.Len(), want)
			}
		})
	}
}

func TestToggleSparseInvalidStep(t *testing.T) {
	b, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	for _, step := range []int{0, -1, -8} {
		if _, err := b.ToggleSparse(step); !errors.Is(err, ErrInvalidStep) {
			t.Errorf("ToggleSparse(%d) error = %v, want ErrInvalidStep", step, err)
		}
	}
}

// The final ToggleSparse element has a bit at position i exactly when
// i is a multiple of step below the width.
func TestToggleSparseFinalPattern(t *testing.T) {
	for _, width := range supportedWidths {
		for _, step := range []int{1, 2, 3, 7, width} {
			b, err := New(width)
			if err != nil {
				t.Fatalf("New(%d) unexpected error: %v", width, err)
			}
			seq, err := b.ToggleSparse(step)
			if err != nil {
				t.Fatalf("ToggleSparse(%d) unexpected error: %v", step, err)
			}

			all := seq.Collect()
			final := all[len(all)-1]
			for i := 0; i < width; i++ {
				want := i%step == 0
				if got := final>>i&1 == 1; got != want {
					t.Errorf("width %d step %d: final pattern bit %d = %v, want %v",
						width, step, i, got, want)
				}
			}
		}
	}
}

func TestScanPatterns(t *testing.T) {
	tests := []struct {
		width    int
		expected []uint64
	}{
		// center=4: bit 4, then 3|5, 2|6, 1|7, finally 0 (offset 8 out of range).
		{8, []uint64{0x10, 0x38, 0x7C, 0xFE, 0xFF}},
		// center=8: expands one bit pair per step until the mask is full.
		{16, []uint64{
			0x0100, 0x0380, 0x07C0, 0x0FE0, 0x1FF0,
			0x3FF8, 0x7FFC, 0xFFFE, 0xFFFF,
		}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("width=%d", tt.width), func(t *testing.T) {
			b, err := New(tt.width)
			if err != nil {
				t.Fatalf("New(%d) unexpected error: %v", tt.width, err)
			}

			seq := b.ScanPatterns()
			if got := seq.Collect(); !slices.Equal(got, tt.expected) {
				t.Errorf("ScanPatterns() = %#x, want %#x", got, tt.expected)
			}
			if want := tt.width/2 + 1; seq.Len() != want {
				t.Errorf("ScanPatterns().Len() = %d, want %d", seq.Len(), want)
			}
		})
	}
}

// The scan is cumulative: each element is a superset of the previous
// one, and the final element is the full mask.
func TestScanPatternsCumulative(t *testing.T) {
	for _, width := range supportedWidths {
		b, err := New(width)
		if err != nil {
			t.Fatalf("New(%d) unexpected error: %v", width, err)
		}

		got := b.ScanPatterns().Collect()
		if len(got) != width/2+1 {
			t.Fatalf("width %d: ScanPatterns yielded %d values, want %d", width, len(got), width/2+1)
		}
		for i := 1; i < len(got); i++ {
			if got[i]&got[i-1] != got[i-1] {
				t.Errorf("width %d: element %d (%#x) drops bits from %#x", width, i, got[i], got[i-1])
			}
		}
		if final := got[len(got)-1]; final != b.Mask() {
			t.Errorf("width %d: final element = %#x, want full mask %#x", width, final, b.Mask())
		}
	}
}

// Two sequences from the same generator are fully independent: draining
// one must not advance the other.
func TestSequenceIndependence(t *testing.T) {
	b, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	first := b.SweepOnes()
	second := b.SweepOnes()

	if v, ok := first.Next(); !ok || v != 1 {
		t.Fatalf("first.Next() = %d, %v, want 1, true", v, ok)
	}
	if v, ok := first.Next(); !ok || v != 2 {
		t.Fatalf("first.Next() = %d, %v, want 2, true", v, ok)
	}

	// The second sequence still starts at the beginning.
	if v, ok := second.Next(); !ok || v != 1 {
		t.Errorf("second.Next() = %d, %v, want 1, true", v, ok)
	}
}

// Calling a generator again restarts the run from scratch.
func TestSequenceRestart(t *testing.T) {
	b, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	first := b.ScanPatterns().Collect()
	second := b.ScanPatterns().Collect()
	if !slices.Equal(first, second) {
		t.Errorf("restarted ScanPatterns = %v, want %v", second, first)
	}
}

// Next keeps reporting exhaustion after the sequence ends.
func TestSequenceExhaustion(t *testing.T) {
	b, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	seq := b.SweepOnes()
	seq.Collect()
	for j := 0; j < 3; j++ {
		if v, ok := seq.Next(); ok || v != 0 {
			t.Errorf("Next() after exhaustion = %d, %v, want 0, false", v, ok)
		}
	}
}

func BenchmarkSweepOnes(b *testing.B) {
	brush, err := New(64)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		seq := brush.SweepOnes()
		for _, ok := seq.Next(); ok; _, ok = seq.Next() {
		}
	}
}

func BenchmarkScanPatterns(b *testing.B) {
	brush, err := New(64)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		seq := brush.ScanPatterns()
		for _, ok := seq.Next(); ok; _, ok = seq.Next() {
		}
	}
}
