// Package hashkit is the module root: the algorithm registry and the
// short-form one-shot dispatch layer (spec.md §4.5, component E) that routes
// data through a pooled, single-threaded hasher.Hasher per algorithm
// variant.
package hashkit

import (
	"github.com/flyhash/hashkit/core"
	"github.com/flyhash/hashkit/hasher"
)

// UsageError reports an operation called in a forbidden phase (spec.md
// §4.6's fresh/absorbing/finalized state machine).
type UsageError = hasher.UsageError

// ParameterError reports an illegal construction parameter: an unknown
// algorithm name, a BLAKE2b key/salt/personalization that is too long, a
// non-positive PBKDF2 iteration count, or a PBKDF2 dkLen overflow.
type ParameterError = core.ParameterError

// UnsupportedError reports HMAC or PBKDF2 requested over an algorithm that
// does not support it (BLAKE2b, CRC32, xxHash32, xxHash64).
type UnsupportedError = core.UnsupportedError
