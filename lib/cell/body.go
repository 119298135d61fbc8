package cell

import (
	"errors"

	"github.com/samber/oops"
)

// BodyLen is the length of a relay cell body carried inside a fixed-size cell.
const BodyLen = 509

// SendmeTagLen is the length of the authentication tag exposed to flow control.
//
// The tag is a prefix of the full digest finalized over a cell. For digests
// wider than SendmeTagLen (SHA3-256) the remainder is dropped.
const SendmeTagLen = 20

// ErrInvalidBodyLength is returned when a byte slice cannot hold exactly one
// relay cell body.
var ErrInvalidBodyLength = errors.New("invalid relay cell body length")

// Body is one relay cell body. Crypto layers mutate it in place.
type Body [BodyLen]byte

// SendmeTag authenticates a cell for SENDME flow control.
type SendmeTag [SendmeTagLen]byte

// BodyFromBytes copies b into a new Body.
func BodyFromBytes(b []byte) (*Body, error) {
	if len(b) != BodyLen {
		log.WithField("length", len(b)).Error("Relay cell body has wrong length")
		return nil, oops.Wrapf(ErrInvalidBodyLength, "got %d bytes, want %d", len(b), BodyLen)
	}
	body := new(Body)
	copy(body[:], b)
	return body, nil
}

// Recognized returns the recognized field of the body under format f.
// The returned slice aliases the body.
func (b *Body) Recognized(f Format) []byte {
	start, end := f.RecognizedRange()
	return b[start:end]
}

// Digest returns the digest field of the body under format f.
// The returned slice aliases the body.
func (b *Body) Digest(f Format) []byte {
	start, end := f.DigestRange()
	return b[start:end]
}

// BeforeDigest returns every byte preceding the digest field.
func (b *Body) BeforeDigest(f Format) []byte {
	start, _ := f.DigestRange()
	return b[:start]
}

// AfterDigest returns every byte following the digest field.
func (b *Body) AfterDigest(f Format) []byte {
	_, end := f.DigestRange()
	return b[end:]
}

// TagFrom fills a SendmeTag from the leading bytes of a digest value.
// It panics if the digest is shorter than SendmeTagLen.
func TagFrom(digest []byte) SendmeTag {
	var tag SendmeTag
	copy(tag[:], digest[:SendmeTagLen])
	return tag
}
