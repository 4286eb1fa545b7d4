package stream

// Frame is one emitted pattern together with everything a rendering
// collaborator needs to draw it: the raw value, its binary string
// (most-significant bit first) and its popcount.
type Frame struct {
	Seq       uint64 `json:"seq"`       // Monotonically increasing frame number.
	Generator string `json:"generator"` // Name of the generator that produced the pattern.
	Width     int    `json:"width"`     // Significant bits per pattern.
	Value     uint64 `json:"value"`     // The pattern itself.
	Bits      string `json:"bits"`      // Binary rendering, exactly Width characters.
	Popcount  int    `json:"popcount"`  // Number of set bits.
}
