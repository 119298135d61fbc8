package tor1

import (
	"encoding"
	"hash"

	"github.com/samber/oops"
)

// cloneDigest returns an independent copy of h. Digests from the standard
// library implement hash.Cloner; anything else must round-trip its state
// through encoding.BinaryMarshaler into a fresh instance from newDigest.
func cloneDigest(h hash.Hash, newDigest DigestFactory) (hash.Hash, error) {
	if c, ok := h.(hash.Cloner); ok {
		dup, err := c.Clone()
		if err != nil {
			return nil, oops.Wrapf(ErrDigestNotCloneable, "clone failed: %v", err)
		}
		return dup, nil
	}

	m, ok := h.(encoding.BinaryMarshaler)
	if !ok {
		return nil, oops.Wrapf(ErrDigestNotCloneable, "%T is neither a hash.Cloner nor a BinaryMarshaler", h)
	}
	state, err := m.MarshalBinary()
	if err != nil {
		return nil, oops.Wrapf(ErrDigestNotCloneable, "marshal failed: %v", err)
	}
	dup := newDigest()
	u, ok := dup.(encoding.BinaryUnmarshaler)
	if !ok {
		return nil, oops.Wrapf(ErrDigestNotCloneable, "%T is not a BinaryUnmarshaler", dup)
	}
	if err := u.UnmarshalBinary(state); err != nil {
		return nil, oops.Wrapf(ErrDigestNotCloneable, "unmarshal failed: %v", err)
	}
	return dup, nil
}
