package core

// ParameterError reports an illegal construction parameter: a BLAKE2b
// key/salt/personalization that is too long, a non-positive PBKDF2
// iteration count, a PBKDF2 dkLen overflowing the HMAC's output-block limit,
// or an unsupported digest-bit width. Defined here, the lowest-level leaf
// package, so both the primitive algorithms (e.g. blake2b) and the
// higher-level hmac/pbkdf2/hashkit packages can return it without an import
// cycle back through the root hashkit package.
type ParameterError struct {
	Param  string
	Reason string
}

func (e *ParameterError) Error() string {
	return "hashkit: invalid parameter " + e.Param + ": " + e.Reason
}

// UnsupportedError reports a request for a capability an algorithm does not
// have, principally HMAC over a non-HMAC-capable primitive (BLAKE2b, CRC32,
// xxHash32, xxHash64 — spec.md §4.3: "HMAC is only defined when the
// underlying algorithm supports it").
type UnsupportedError struct {
	Algorithm string
	Operation string
}

func (e *UnsupportedError) Error() string {
	return "hashkit: " + e.Algorithm + " does not support " + e.Operation
}
