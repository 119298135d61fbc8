package cell

// Format describes where a relay cell layout keeps the fields the tor1
// recognition algorithm reads and writes. Ranges are half-open byte offsets
// into a Body.
type Format interface {
	// RecognizedRange returns the bounds of the recognized field.
	RecognizedRange() (start, end int)
	// DigestRange returns the bounds of the digest field.
	DigestRange() (start, end int)
	// EmptyDigest returns an all-zero pattern as wide as the digest field.
	// The caller owns the returned slice.
	EmptyDigest() []byte
}

// Relay cell V0 header layout:
//
//	command(1) | recognized(2) | stream_id(2) | digest(4) | length(2) | data
const (
	V0RecognizedOffset = 1
	V0RecognizedLen    = 2
	V0StreamIDOffset   = 3
	V0DigestOffset     = 5
	V0DigestLen        = 4
	V0LengthOffset     = 9
	V0DataOffset       = 11
)

// FormatV0 is the relay cell format in use on the current network.
type FormatV0 struct{}

func (FormatV0) RecognizedRange() (int, int) {
	return V0RecognizedOffset, V0RecognizedOffset + V0RecognizedLen
}

func (FormatV0) DigestRange() (int, int) {
	return V0DigestOffset, V0DigestOffset + V0DigestLen
}

// EmptyDigest returns a fresh zero pattern on every call.
func (FormatV0) EmptyDigest() []byte {
	return make([]byte, V0DigestLen)
}

var _ Format = FormatV0{}
