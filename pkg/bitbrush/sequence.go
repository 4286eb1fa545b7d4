package bitbrush

// Sequence is a finite, lazy producer of bit patterns. Every generator
// call returns a fresh Sequence with its own private cursor; consuming
// one has no effect on any other, and a generator can be called again
// to restart from the beginning. A Sequence is single-consumer: share
// it between goroutines only with external synchronization.
type Sequence struct {
	length int
	next   func() (uint64, bool)
}

// Next returns the next pattern in the sequence. The second return
// value is false once the sequence is exhausted.
func (s *Sequence) Next() (uint64, bool) {
	return s.next()
}

// Len returns the total number of patterns the sequence produces over
// its full lifetime, regardless of how many have been consumed.
func (s *Sequence) Len() int {
	return s.length
}

// Collect drains the remaining patterns into a slice. Calling Collect
// on a fresh sequence materializes the whole run.
func (s *Sequence) Collect() []uint64 {
	out := make([]uint64, 0, s.length)
	for v, ok := s.next(); ok; v, ok = s.next() {
		out = append(out, v)
	}
	return out
}

// SweepOnes produces width patterns, each with exactly one bit set,
// sweeping the set bit from the least-significant to the
// most-significant position: 1<<0, 1<<1, ..., 1<<(width-1).
func (b *Brush) SweepOnes() *Sequence {
	i := 0
	return &Sequence{
		length: b.width,
		next: func() (uint64, bool) {
			if i >= b.width {
				return 0, false
			}
			v := uint64(1) << i
			i++
			return v, true
		},
	}
}

// SweepZeros produces width patterns, each with every bit set except
// one, sweeping the single zero from the least-significant to the
// most-significant position. Element i is the bitwise complement of
// SweepOnes element i within the mask.
func (b *Brush) SweepZeros() *Sequence {
	i := 0
	return &Sequence{
		length: b.width,
		next: func() (uint64, bool) {
			if i >= b.width {
				return 0, false
			}
			v := b.mask ^ uint64(1)<<i
			i++
			return v, true
		},
	}
}

// ToggleSparse produces a cumulative sequence: starting from the empty
// pattern, it sets one bit at every multiple-of-step position below
// width, yielding the running pattern after each bit. The sequence has
// ceil(width/step) elements and its final element has a bit set at
// every position i with i%step == 0 and i < width.
// Returns ErrInvalidStep when step is not positive.
func (b *Brush) ToggleSparse(step int) (*Sequence, error) {
	if step <= 0 {
		return nil, ErrInvalidStep
	}

	i := 0
	var acc uint64
	return &Sequence{
		length: (b.width + step - 1) / step,
		next: func() (uint64, bool) {
			if i >= b.width {
				return 0, false
			}
			acc |= uint64(1) << i
			i += step
			return acc, true
		},
	}, nil
}

// ScanPatterns produces a cumulative sequence expanding symmetrically
// from the center bit outward. At radius k it sets whichever of bits
// center-k and center+k are still in range (center = width/2) and
// yields the running pattern, terminating once both offsets fall
// outside the width. The sequence has width/2+1 elements and its final
// element is the full mask.
func (b *Brush) ScanPatterns() *Sequence {
	center := b.width / 2
	k := 0
	var acc uint64
	return &Sequence{
		length: center + 1,
		next: func() (uint64, bool) {
			lo, hi := center-k, center+k
			if lo < 0 && hi >= b.width {
				return 0, false
			}
			if lo >= 0 {
				acc |= uint64(1) << lo
			}
			if hi < b.width {
				acc |= uint64(1) << hi
			}
			k++
			return acc, true
		},
	}
}
