package pbkdf2

import (
	"github.com/flyhash/hashkit/core"
	"github.com/flyhash/hashkit/crypto/sha256"
	"github.com/flyhash/hashkit/crypto/sha512"
)

const (
	saltLengthDefault = 32

	iterationsOWASP2023 = 600_000
	iterationsOWASP2021 = 310_000
	iterationsLegacy    = 1_000
)

// OWASP2023 returns the OWASP 2023 PBKDF2-HMAC-SHA256 recommendation:
// 600,000 iterations, a 32-byte salt, and a 32-byte derived key.
func OWASP2023() ParameterSet {
	return ParameterSet{
		Name:       "pbkdf2-sha256-owasp2023",
		NewCore:    func() core.Core { return sha256.New256() },
		Iterations: iterationsOWASP2023,
		SaltLength: saltLengthDefault,
		KeyLength:  sha256.Size256,
	}
}

// OWASP2021 returns the OWASP 2021 PBKDF2-HMAC-SHA256
// recommendation: 310,000 iterations, a 32-byte salt, and a 32-byte derived
// key.
func OWASP2021() ParameterSet {
	return ParameterSet{
		Name:       "pbkdf2-sha256-owasp2021",
		NewCore:    func() core.Core { return sha256.New256() },
		Iterations: iterationsOWASP2021,
		SaltLength: saltLengthDefault,
		KeyLength:  sha256.Size256,
	}
}

// Legacy2017 returns the 2017 NIST minimum iteration count (1,000) for
// migrating passwords away from legacy systems. New passwords should use
// OWASP2023 or OWASP2021 instead.
func Legacy2017() ParameterSet {
	return ParameterSet{
		Name:       "pbkdf2-sha256-legacy2017",
		NewCore:    func() core.Core { return sha256.New256() },
		Iterations: iterationsLegacy,
		SaltLength: saltLengthDefault,
		KeyLength:  sha256.Size256,
	}
}

// OWASP2023SHA384 is OWASP2023 with PBKDF2-HMAC-SHA384 and a 48-byte
// derived key.
func OWASP2023SHA384() ParameterSet {
	return ParameterSet{
		Name:       "pbkdf2-sha384-owasp2023",
		NewCore:    func() core.Core { return sha512.New384() },
		Iterations: iterationsOWASP2023,
		SaltLength: saltLengthDefault,
		KeyLength:  sha512.Size384,
	}
}

// OWASP2023SHA512 is OWASP2023 with PBKDF2-HMAC-SHA512 and a 64-byte
// derived key.
func OWASP2023SHA512() ParameterSet {
	return ParameterSet{
		Name:       "pbkdf2-sha512-owasp2023",
		NewCore:    func() core.Core { return sha512.New512() },
		Iterations: iterationsOWASP2023,
		SaltLength: saltLengthDefault,
		KeyLength:  sha512.Size512,
	}
}
