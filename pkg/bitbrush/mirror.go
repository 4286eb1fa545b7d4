package bitbrush

// buildMirrorTable precomputes, for every possible byte value, the byte
// with its 8 bits in reverse order. The table is an involution:
// table[table[i]] == i for all i. It is a pure function of the byte
// width, so it is identical for every Brush; each Brush carries its own
// copy for ownership simplicity.
func buildMirrorTable() [256]byte {
	var table [256]byte
	for i := range table {
		b := byte(i)
		var rev byte
		for j := 0; j < 8; j++ {
			rev = rev<<1 | b&1
			b >>= 1
		}
		table[i] = rev
	}
	return table
}

// Mirror reverses the bit order of v across the full width: bit 0 swaps
// with bit width-1, bit 1 with bit width-2, and so on. The value is
// split into width/8 bytes, each byte is reversed with one table
// lookup, and the byte order is swapped so the most-significant source
// byte lands in the least-significant result position. Bits outside the
// width are masked off first; Mirror is its own inverse.
func (b *Brush) Mirror(v uint64) uint64 {
	v &= b.mask
	nbytes := b.width / 8

	var result uint64
	for i := 0; i < nbytes; i++ {
		slot := v >> (i * 8) & 0xFF
		result |= uint64(b.lut[slot]) << ((nbytes - 1 - i) * 8)
	}
	return result
}
