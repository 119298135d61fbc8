// Package binding holds the circuit binding key derived alongside the tor1
// hop keys. Higher layers use it to bind onion service introduction and
// rendezvous messages to a particular circuit hop; this package does not
// interpret it.
package binding

import (
	"errors"

	"github.com/go-i2p/go-relaycrypt/lib/crypto/ct"
	"github.com/samber/oops"
)

// Len is the length of a circuit binding key (KH in the key schedule).
const Len = 20

// ErrInvalidBindingLength is returned when binding key material has the
// wrong length.
var ErrInvalidBindingLength = errors.New("invalid circuit binding key length")

// CircuitBinding is an opaque per-hop binding key.
type CircuitBinding struct {
	key [Len]byte
}

// New builds a CircuitBinding from exactly Len bytes of key material.
func New(b []byte) (CircuitBinding, error) {
	var cb CircuitBinding
	if len(b) != Len {
		return cb, oops.Wrapf(ErrInvalidBindingLength, "got %d bytes, want %d", len(b), Len)
	}
	copy(cb.key[:], b)
	return cb, nil
}

// Bytes returns a copy of the key material.
func (cb CircuitBinding) Bytes() []byte {
	out := make([]byte, Len)
	copy(out, cb.key[:])
	return out
}

// Equal compares two bindings in constant time.
func (cb CircuitBinding) Equal(other CircuitBinding) bool {
	return ct.BytesEq(cb.key[:], other.key[:])
}
