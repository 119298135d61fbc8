// Package kdf expands handshake output into the key seed a tor1 hop layer
// consumes.
//
// The functions here only produce bytes. Which one applies, and how long
// the output must be, is decided by the handshake that was negotiated; the
// length for a tor1 layer is tor1.Suite.SeedLen().
package kdf

import (
	"crypto/sha1"
	"crypto/sha256"
	"errors"
	"io"

	"github.com/samber/oops"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/sha3"
)

// Constants from the ntor handshake.
const (
	NtorProtoID = "ntor-curve25519-sha256-1"
	NtorTKey    = NtorProtoID + ":key_extract"
	NtorMExpand = NtorProtoID + ":key_expand"
)

const (
	maxTorOutput  = 256 * sha1.Size
	maxNtorOutput = 255 * sha256.Size
)

// ErrOutputTooLong is returned when a KDF is asked for more bytes than it
// can produce.
var ErrOutputTooLong = errors.New("kdf output length exceeds limit")

// Tor implements KDF-TOR, used after CREATE_FAST and TAP handshakes:
//
//	K = SHA1(K0 | [00]) | SHA1(K0 | [01]) | ... | SHA1(K0 | [FF])
func Tor(k0 []byte, n int) ([]byte, error) {
	if n < 0 || n > maxTorOutput {
		return nil, oops.Wrapf(ErrOutputTooLong, "KDF-TOR cannot produce %d bytes", n)
	}
	out := make([]byte, 0, n+sha1.Size)
	h := sha1.New()
	for i := 0; len(out) < n; i++ {
		h.Reset()
		h.Write(k0)
		h.Write([]byte{byte(i)})
		out = h.Sum(out)
	}
	return out[:n], nil
}

// Ntor derives n bytes from an ntor SECRET_INPUT with HKDF-SHA256, using
// t_key as the salt and m_expand as the info string.
func Ntor(secretInput []byte, n int) ([]byte, error) {
	if n < 0 || n > maxNtorOutput {
		return nil, oops.Wrapf(ErrOutputTooLong, "HKDF-SHA256 cannot produce %d bytes", n)
	}
	r := hkdf.New(sha256.New, secretInput, []byte(NtorTKey), []byte(NtorMExpand))
	out := make([]byte, n)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, oops.Wrapf(err, "HKDF key derivation")
	}
	return out, nil
}

// Shake256 returns the first n bytes of SHAKE-256 over seed. Its output has
// no length limit.
func Shake256(seed []byte, n int) []byte {
	out := make([]byte, n)
	sha3.ShakeSum256(out, seed)
	return out
}

// NewShake256Reader returns an unbounded SHAKE-256 output stream over seed.
func NewShake256Reader(seed []byte) io.Reader {
	h := sha3.NewShake256()
	h.Write(seed)
	return h
}
