// SPDX-License-Identifier: MIT
package bitbrush

import (
	"fmt"
	"testing"

	"bitbrush/pkg/utils"
)

func TestMirrorConcrete(t *testing.T) {
	tests := []struct {
		width    int
		v        uint64
		expected uint64
	}{
		{8, 0, 0},          // Empty pattern
		{8, 1, 128},        // LSB becomes MSB
		{8, 128, 1},        // MSB becomes LSB
		{8, 5, 0xA0},       // 00000101 -> 10100000
		{8, 0x0F, 0xF0},    // Low nibble to high nibble
		{8, 0xFF, 0xFF},    // Palindrome
		{16, 1, 0x8000},    // Crosses a byte boundary
		{16, 0x00FF, 0xFF00},
		{32, 1, 1 << 31},
		{64, 1, 1 << 63},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("w%d/%#x", tt.width, tt.v), func(t *testing.T) {
			b, err := New(tt.width)
			if err != nil {
				t.Fatalf("New(%d) unexpected error: %v", tt.width, err)
			}
			if got := b.Mirror(tt.v); got != tt.expected {
				t.Errorf("Mirror(%#x) = %#x, want %#x", tt.v, got, tt.expected)
			}
		})
	}
}

// Mirror must be an involution: applying it twice returns the original
// pattern. Exhaustive for width 8, sampled for the wider configurations.
func TestMirrorInvolution(t *testing.T) {
	b8, err := New(8)
	if err != nil {
		t.Fatal(err)
	}
	for v := uint64(0); v <= 0xFF; v++ {
		if got := b8.Mirror(b8.Mirror(v)); got != v {
			t.Fatalf("width 8: Mirror(Mirror(%#x)) = %#x, want %#x", v, got, v)
		}
	}

	for _, width := range supportedWidths {
		b, err := New(width)
		if err != nil {
			t.Fatalf("New(%d) unexpected error: %v", width, err)
		}
		samples := []uint64{0, 1, 5, 0xAA, 0xDEADBEEF, b.Mask(), b.Mask() >> 3, 1 << (width - 1)}
		for _, v := range samples {
			v &= b.Mask()
			if got := b.Mirror(b.Mirror(v)); got != v {
				t.Errorf("width %d: Mirror(Mirror(%#x)) = %#x, want %#x", width, v, got, v)
			}
		}
	}
}

// The single-bit edges must swap: bit 0 lands on bit width-1 and back.
func TestMirrorEdgeBits(t *testing.T) {
	for _, width := range supportedWidths {
		b, err := New(width)
		if err != nil {
			t.Fatalf("New(%d) unexpected error: %v", width, err)
		}

		msb := uint64(1) << (width - 1)
		if got := b.Mirror(1); got != msb {
			t.Errorf("width %d: Mirror(1) = %#x, want %#x", width, got, msb)
		}
		if got := b.Mirror(msb); got != 1 {
			t.Errorf("width %d: Mirror(%#x) = %#x, want 1", width, msb, got)
		}
	}
}

// The table-driven mirror must agree with the bit-by-bit reference
// implementation across all widths.
func TestMirrorMatchesReference(t *testing.T) {
	for _, width := range supportedWidths {
		b, err := New(width)
		if err != nil {
			t.Fatalf("New(%d) unexpected error: %v", width, err)
		}

		// A spread of patterns including runs, alternations and randomish values.
		samples := []uint64{0, 1, 3, 5, 0x55, 0xAA, 0xF0F0, 0x12345678, 0xCAFEBABEDEADBEEF, b.Mask()}
		for _, v := range samples {
			v &= b.Mask()
			want := utils.NaiveMirror(v, width)
			if got := b.Mirror(v); got != want {
				t.Errorf("width %d: Mirror(%#x) = %#x, reference gives %#x", width, v, got, want)
			}
		}
	}
}

// Out-of-range input is masked before mirroring, the same policy as
// CountOnes and Visualize.
func TestMirrorMasksInput(t *testing.T) {
	b, err := New(8)
	if err != nil {
		t.Fatal(err)
	}
	if got := b.Mirror(0x101); got != 0x80 {
		t.Errorf("Mirror(0x101) = %#x, want %#x (bit 8 ignored)", got, 0x80)
	}
}

func TestMirrorAllocations(t *testing.T) {
	b, err := New(64)
	if err != nil {
		t.Fatal(err)
	}

	allocs := testing.AllocsPerRun(100, func() {
		_ = b.Mirror(0xDEADBEEF)
	})
	if allocs > 0 {
		t.Errorf("Mirror allocations = %.1f, want 0", allocs)
	}
}

func BenchmarkMirror(b *testing.B) {
	benchmarks := []struct {
		name  string
		width int
	}{
		{"Narrow", 8},
		{"Typical", 32},
		{"Wide", 64},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			brush, err := New(bm.width)
			if err != nil {
				b.Fatal(err)
			}

			var i uint64
			b.ReportAllocs()
			b.ResetTimer()

			for n := 0; n < b.N; n++ {
				brush.Mirror(i)
				i += 0x9E3779B9
			}
		})
	}
}
