package stream

import (
	"fmt"

	"bitbrush/internal/config"
	"bitbrush/pkg/bitbrush"
)

// NewSequence starts a fresh run of the named generator on b. The step
// parameter only applies to toggle-sparse. Unknown generator names and
// bad steps are reported eagerly, before any pattern is produced.
func NewSequence(b *bitbrush.Brush, generator string, step int) (*bitbrush.Sequence, error) {
	switch generator {
	case config.GenSweepOnes:
		return b.SweepOnes(), nil
	case config.GenSweepZeros:
		return b.SweepZeros(), nil
	case config.GenToggleSparse:
		seq, err := b.ToggleSparse(step)
		if err != nil {
			return nil, fmt.Errorf("stream: %w", err)
		}
		return seq, nil
	case config.GenScanPatterns:
		return b.ScanPatterns(), nil
	default:
		return nil, fmt.Errorf("stream: unknown generator %q", generator)
	}
}
