// Package ct holds constant-time comparisons for secret cell fields.
//
// Slice equality in Go returns at the first differing byte, which leaks the
// position of the difference through timing. Every check of a recognized or
// digest field goes through this package instead.
package ct

import "crypto/subtle"

// IsZero reports whether every byte of b is zero. Running time depends only
// on len(b).
func IsZero(b []byte) bool {
	var acc byte
	for _, v := range b {
		acc |= v
	}
	return subtle.ConstantTimeByteEq(acc, 0) == 1
}

// BytesEq reports whether a and b hold the same bytes. Slices of different
// length are never equal; the length itself is not treated as secret.
func BytesEq(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
