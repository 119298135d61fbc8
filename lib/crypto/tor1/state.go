package tor1

import (
	"bytes"
	"crypto/cipher"
	"hash"

	"github.com/go-i2p/go-relaycrypt/lib/cell"
	"github.com/go-i2p/go-relaycrypt/lib/crypto/ct"
	"github.com/go-i2p/go-relaycrypt/lib/util"
)

// CryptState is the shared cryptographic state between a client and one
// relay, for one direction.
//
// A three-hop circuit gives the client six CryptStates. Although CryptState
// has methods for all four layer roles, any one instance plays exactly one
// of them:
//
//	client encrypting outward       forward   OriginateFor, EncryptOutbound
//	relay decrypting from client    forward   DecryptOutbound
//	relay encrypting toward client  backward  Originate, EncryptInbound
//	client decrypting from relay    backward  DecryptInbound
//
// The cipher position and running digest only move forward. A CryptState
// must not be copied.
type CryptState struct {
	// stream is keyed with Kf or Kb.
	stream cipher.Stream
	// digest is primed with Df or Db and absorbs every cell this state
	// originates or recognizes.
	digest    hash.Hash
	newDigest DigestFactory
	// lastDigest is the full-width digest of the most recent cell.
	lastDigest []byte
	format     cell.Format
	// emptyDigest is the state's own copy of the format's zero pattern.
	emptyDigest []byte
}

func newCryptState(suite Suite, format cell.Format, digestSeed, key []byte) (*CryptState, error) {
	stream, err := suite.newStream(key)
	if err != nil {
		return nil, err
	}
	d := suite.newDigest()
	d.Write(digestSeed)
	if _, err := cloneDigest(d, suite.newDigest); err != nil {
		return nil, err
	}
	return &CryptState{
		stream:      stream,
		digest:      d,
		newDigest:   suite.newDigest,
		lastDigest:  make([]byte, suite.digestLen),
		format:      format,
		emptyDigest: bytes.Clone(format.EmptyDigest()),
	}, nil
}

// OriginateFor prepares and encrypts a cell this client is sending to the
// hop that shares this state. It returns the SENDME tag for the cell.
func (s *CryptState) OriginateFor(body *cell.Body) cell.SendmeTag {
	s.setDigest(body)
	s.EncryptOutbound(body)
	return cell.TagFrom(s.lastDigest)
}

// EncryptOutbound adds this hop's layer to a cell meant for a hop further
// from the client.
func (s *CryptState) EncryptOutbound(body *cell.Body) {
	s.encrypt(body)
}

// DecryptOutbound removes this hop's layer from a cell arriving from the
// client. It reports whether the cell is addressed to this relay.
func (s *CryptState) DecryptOutbound(body *cell.Body) (cell.SendmeTag, bool) {
	return s.decryptAndCheck(body)
}

// Originate prepares and encrypts a cell this relay is sending toward the
// client.
func (s *CryptState) Originate(body *cell.Body) cell.SendmeTag {
	s.setDigest(body)
	s.EncryptInbound(body)
	return cell.TagFrom(s.lastDigest)
}

// EncryptInbound adds this relay's layer to a cell travelling toward the
// client that some other hop originated.
func (s *CryptState) EncryptInbound(body *cell.Body) {
	s.encrypt(body)
}

// DecryptInbound removes one relay's layer from a cell arriving at the
// client and reports whether that relay originated it.
func (s *CryptState) DecryptInbound(body *cell.Body) (cell.SendmeTag, bool) {
	return s.decryptAndCheck(body)
}

func (s *CryptState) encrypt(body *cell.Body) {
	s.stream.XORKeyStream(body[:], body[:])
}

func (s *CryptState) decryptAndCheck(body *cell.Body) (cell.SendmeTag, bool) {
	s.encrypt(body)
	if !s.isRecognized(body) {
		return cell.SendmeTag{}, false
	}
	return cell.TagFrom(s.lastDigest), true
}

// setDigest zeroes the recognized and digest fields, absorbs the cell into
// the running digest and writes the leading digest bytes into the cell.
func (s *CryptState) setDigest(body *cell.Body) {
	clear(body.Recognized(s.format))
	field := body.Digest(s.format)
	clear(field)

	s.digest.Write(body[:])
	// Sum leaves the running state intact for the next cell.
	s.lastDigest = s.digest.Sum(s.lastDigest[:0])
	copy(field, s.lastDigest)
}

// isRecognized reports whether a just-decrypted cell is plaintext addressed
// to this state: recognized is zero and the digest field matches the running
// digest. The running digest advances only when both hold.
func (s *CryptState) isRecognized(body *cell.Body) bool {
	if !ct.IsZero(body.Recognized(s.format)) {
		return false
	}

	probe, err := cloneDigest(s.digest, s.newDigest)
	if err != nil {
		// Cloneability is checked when the state is built.
		util.Panicf("tor1: running digest stopped supporting clone: %v", err)
	}
	probe.Write(body.BeforeDigest(s.format))
	probe.Write(s.emptyDigest)
	probe.Write(body.AfterDigest(s.format))
	result := probe.Sum(nil)

	field := body.Digest(s.format)
	if !ct.BytesEq(field, result[:len(field)]) {
		return false
	}

	s.digest = probe
	s.lastDigest = append(s.lastDigest[:0], result...)
	return true
}
