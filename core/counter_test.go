package core

import "testing"

func TestCounterAdd(t *testing.T) {
	var c Counter
	c.Add(10)
	if c.Lo != 10 || c.Hi != 0 {
		t.Fatalf("Add(10): got {%d %d}, want {10 0}", c.Lo, c.Hi)
	}
}

func TestCounterAddCarriesIntoHi(t *testing.T) {
	c := Counter{Lo: ^uint64(0) - 3, Hi: 5}
	c.Add(10)
	if c.Hi != 6 {
		t.Fatalf("Add across wraparound: Hi = %d, want 6", c.Hi)
	}
	if c.Lo != 6 {
		t.Fatalf("Add across wraparound: Lo = %d, want 6", c.Lo)
	}
}

func TestCounterBits(t *testing.T) {
	c := Counter{Lo: 1, Hi: 0}
	b := c.Bits()
	if b.Lo != 8 || b.Hi != 0 {
		t.Fatalf("Bits(): got {%d %d}, want {8 0}", b.Lo, b.Hi)
	}
}

func TestCounterBitsCarriesTopThreeBitsIntoHi(t *testing.T) {
	// Lo's top 3 bits must fold into Hi's low 3 bits when scaled by 8.
	c := Counter{Lo: uint64(1) << 61, Hi: 0}
	b := c.Bits()
	if b.Lo != 0 {
		t.Fatalf("Bits().Lo = %d, want 0", b.Lo)
	}
	if b.Hi != 1 {
		t.Fatalf("Bits().Hi = %d, want 1", b.Hi)
	}
}

func TestParameterErrorMessage(t *testing.T) {
	err := &ParameterError{Param: "iter", Reason: "must be positive"}
	want := "hashkit: invalid parameter iter: must be positive"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestUnsupportedErrorMessage(t *testing.T) {
	err := &UnsupportedError{Algorithm: "crc32", Operation: "HMAC"}
	want := "hashkit: crc32 does not support HMAC"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}
