// SPDX-License-Identifier: MIT
package analysis

import (
	"math/bits"

	"gonum.org/v1/gonum/stat"

	"bitbrush/pkg/bitbrush"
)

// Summary describes a generated pattern sequence: how full the
// patterns are and how much they change from one element to the next.
// Density is popcount divided by width, in [0, 1].
type Summary struct {
	Count         int     // Number of patterns summarized.
	MinPopcount   int     // Smallest popcount in the run.
	MaxPopcount   int     // Largest popcount in the run.
	MeanDensity   float64 // Mean bit density across the run.
	StdDevDensity float64 // Standard deviation of the bit density.
	TotalToggles  int     // Bits flipped between consecutive patterns, summed.
}

// Summarize computes a Summary for the given patterns using the brush
// that produced them. An empty slice yields a zero Summary.
func Summarize(b *bitbrush.Brush, patterns []uint64) Summary {
	if len(patterns) == 0 {
		return Summary{}
	}

	densities := make([]float64, len(patterns))
	s := Summary{
		Count:       len(patterns),
		MinPopcount: b.Width(),
	}

	for i, v := range patterns {
		pc := b.CountOnes(v)
		densities[i] = float64(pc) / float64(b.Width())
		if pc < s.MinPopcount {
			s.MinPopcount = pc
		}
		if pc > s.MaxPopcount {
			s.MaxPopcount = pc
		}
		if i > 0 {
			// XOR of neighbors isolates the toggled bits.
			s.TotalToggles += bits.OnesCount64((v ^ patterns[i-1]) & b.Mask())
		}
	}

	s.MeanDensity = stat.Mean(densities, nil)
	if len(densities) > 1 {
		s.StdDevDensity = stat.StdDev(densities, nil)
	}
	return s
}
