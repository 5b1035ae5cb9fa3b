package core

// Counter tracks a byte count wide enough to encode a 128-bit bit-length
// field (spec.md §3: "64-bit for most, 128-bit for SHA-384/512"). Lo/Hi are
// the low/high 64-bit halves of the byte count; Bits returns the same value
// scaled by 8, with the scaling's own carry folded into Hi.
//
// Modeled on the t0/t1 tweak counter in gtank-blake2's BLAKE2b compression
// state, generalized so every algorithm in this module shares one counter
// type instead of each hand-rolling 64-bit-with-overflow bookkeeping.
type Counter struct {
	Lo, Hi uint64
}

// Add advances the counter by n bytes, carrying into Hi on wraparound.
func (c *Counter) Add(n uint64) {
	old := c.Lo
	c.Lo += n
	if c.Lo < old {
		c.Hi++
	}
}

// Bits returns the counter expressed in bits instead of bytes.
func (c Counter) Bits() Counter {
	hi := c.Hi<<3 | c.Lo>>61
	return Counter{Lo: c.Lo << 3, Hi: hi}
}
