/*
Package bitbrush provides deterministic bit-pattern generation and
inspection over a fixed, byte-aligned bit width.

A Brush owns a configured width and exposes pattern generators
(single-bit sweeps, sparse toggling, symmetric center-out expansion),
inspection helpers (population count, binary-string rendering) and a
bit-order mirror accelerated by a precomputed byte-reversal table.

Design Principles:
- Zero Allocations: inspection and mirroring use stack memory only
- Predictable Performance: Mirror is O(width/8) table lookups, not O(width) shifts
- Immutable State: a Brush never changes after construction
- Concurrency Safe: all Brush methods are read-only and may be called
  from multiple goroutines without synchronization

Usage:

	brush, err := bitbrush.New(32)
	if err != nil {
		// width must be a positive multiple of 8, at most 64
	}

	seq := brush.SweepOnes()
	for v, ok := seq.Next(); ok; v, ok = seq.Next() {
		fmt.Println(brush.Visualize(v))
	}

	mirrored := brush.Mirror(1) // highest bit of the width set
*/
package bitbrush

import (
	"errors"
	"fmt"
	"math/bits"
)

// Errors reported for bad construction or generator parameters. Both are
// detected eagerly at the introducing call, never deferred into sequence
// consumption.
var (
	ErrInvalidWidth = errors.New("bitbrush: width must be a positive multiple of 8, at most 64")
	ErrInvalidStep  = errors.New("bitbrush: step must be positive")
)

// MaxWidth is the largest supported bit width. Patterns are carried in a
// uint64, so wider configurations cannot be represented.
const MaxWidth = 64

// Brush generates and inspects bit patterns of a fixed width.
// It is immutable after construction.
type Brush struct {
	width int       // Number of significant bits (positive multiple of 8).
	mask  uint64    // (1<<width)-1; every pattern satisfies v&mask == v.
	lut   [256]byte // Byte-reversal lookup table for Mirror.
}

// New creates a Brush for the given bit width and builds its mirror
// lookup table. The width must be a positive multiple of 8 no larger
// than MaxWidth; anything else returns ErrInvalidWidth.
func New(width int) (*Brush, error) {
	if width <= 0 || width%8 != 0 || width > MaxWidth {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWidth, width)
	}

	b := &Brush{
		width: width,
		lut:   buildMirrorTable(),
	}
	if width == MaxWidth {
		b.mask = ^uint64(0)
	} else {
		b.mask = (uint64(1) << width) - 1
	}
	return b, nil
}

// Width returns the configured number of significant bits.
func (b *Brush) Width() int {
	return b.width
}

// Mask returns (1<<width)-1, the value that clears any bit outside the
// configured width.
func (b *Brush) Mask() uint64 {
	return b.mask
}

// CountOnes returns the population count of v within the configured
// width. Bits outside the width are masked off before counting.
func (b *Brush) CountOnes(v uint64) int {
	return bits.OnesCount64(v & b.mask)
}

// Visualize renders v as a binary string of exactly Width() characters,
// most-significant bit first, left-padded with '0'. Bits outside the
// width are masked off before rendering.
func (b *Brush) Visualize(v uint64) string {
	v &= b.mask
	buf := make([]byte, b.width)
	for i := b.width - 1; i >= 0; i-- {
		buf[i] = '0' + byte(v&1)
		v >>= 1
	}
	return string(buf)
}
