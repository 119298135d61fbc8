package tor1

import (
	"github.com/go-i2p/go-relaycrypt/lib/cell"
	"github.com/go-i2p/go-relaycrypt/lib/crypto/binding"
	"github.com/go-i2p/logger"
	"github.com/samber/oops"
)

// CryptStatePair holds the two CryptStates a client shares with one relay,
// forward (away from the client) and backward (toward it), together with the
// hop's circuit binding key. It exists only until it is split.
type CryptStatePair struct {
	fwd     *CryptState
	back    *CryptState
	binding binding.CircuitBinding
}

// NewCryptStatePair derives both directions of a hop from a key seed of
// exactly suite.SeedLen() bytes. Any other length is a defect in the
// caller's key expansion and is reported as ErrInvalidSeedLength; the seed is
// never truncated or padded.
func NewCryptStatePair(suite Suite, format cell.Format, seed []byte) (*CryptStatePair, error) {
	if suite.newStream == nil || suite.newDigest == nil {
		return nil, oops.Wrapf(ErrUnknownSuite, "zero suite")
	}
	if err := checkFormat(suite, format); err != nil {
		log.WithFields(logger.Fields{
			"suite": suite.Name(),
			"error": err,
		}).Error("Rejecting cell format")
		return nil, err
	}
	if len(seed) != suite.SeedLen() {
		log.WithFields(logger.Fields{
			"suite":    suite.Name(),
			"seed_len": len(seed),
			"expected": suite.SeedLen(),
		}).Error("Rejecting tor1 key seed")
		return nil, oops.Wrapf(ErrInvalidSeedLength, "seed length %d was invalid, want %d for %s",
			len(seed), suite.SeedLen(), suite.Name())
	}

	take := func(n int) []byte {
		out := seed[:n]
		seed = seed[n:]
		return out
	}
	df := take(suite.digestLen)
	db := take(suite.digestLen)
	kf := take(suite.keyLen)
	kb := take(suite.keyLen)
	kh := take(binding.Len)

	fwd, err := newCryptState(suite, format, df, kf)
	if err != nil {
		return nil, oops.Wrapf(err, "failed to initialize forward state for %s", suite.Name())
	}
	back, err := newCryptState(suite, format, db, kb)
	if err != nil {
		return nil, oops.Wrapf(err, "failed to initialize backward state for %s", suite.Name())
	}
	cb, err := binding.New(kh)
	if err != nil {
		return nil, oops.Wrapf(err, "failed to build circuit binding")
	}

	log.WithField("suite", suite.Name()).Debug("Initialized tor1 crypt state pair")
	return &CryptStatePair{fwd: fwd, back: back, binding: cb}, nil
}

// checkFormat verifies that both fields lie inside a cell body, that the
// recognized field is not empty, and that the digest field is no wider than
// the suite's digest.
func checkFormat(suite Suite, format cell.Format) error {
	if format == nil {
		return oops.Wrapf(ErrInvalidFormat, "no format")
	}
	rs, re := format.RecognizedRange()
	if rs < 0 || re <= rs || re > cell.BodyLen {
		return oops.Wrapf(ErrInvalidFormat, "recognized range [%d,%d)", rs, re)
	}
	ds, de := format.DigestRange()
	if ds < 0 || de <= ds || de > cell.BodyLen {
		return oops.Wrapf(ErrInvalidFormat, "digest range [%d,%d)", ds, de)
	}
	if de-ds > suite.digestLen {
		return oops.Wrapf(ErrDigestTooShort, "digest field is %d bytes, %s digest is %d",
			de-ds, suite.Name(), suite.digestLen)
	}
	if n := len(format.EmptyDigest()); n != de-ds {
		return oops.Wrapf(ErrInvalidFormat, "empty digest is %d bytes, field is %d", n, de-ds)
	}
	return nil
}

// SplitClientLayer hands the pair to a client's layer stacks: the forward
// state originates and blindly encrypts, the backward state decrypts.
func (p *CryptStatePair) SplitClientLayer() (fwd, back *CryptState, cb binding.CircuitBinding) {
	return p.fwd, p.back, p.binding
}

// SplitRelayLayer hands the pair to the relay side: the forward state
// decrypts cells from the client, the backward state originates and
// encrypts cells toward it.
func (p *CryptStatePair) SplitRelayLayer() (fwd, back *CryptState, cb binding.CircuitBinding) {
	return p.fwd, p.back, p.binding
}

// Binding returns the hop's circuit binding key.
func (p *CryptStatePair) Binding() binding.CircuitBinding {
	return p.binding
}

// The pair can stand in for a whole relay in tests and benchmarks, so that a
// round trip does not need a full stack. Production relays split the pair.

// Originate originates a cell toward the client with the backward state.
func (p *CryptStatePair) Originate(body *cell.Body) cell.SendmeTag {
	return p.back.Originate(body)
}

// EncryptInbound relays a cell toward the client with the backward state.
func (p *CryptStatePair) EncryptInbound(body *cell.Body) {
	p.back.EncryptInbound(body)
}

// DecryptOutbound decrypts a cell from the client with the forward state.
func (p *CryptStatePair) DecryptOutbound(body *cell.Body) (cell.SendmeTag, bool) {
	return p.fwd.DecryptOutbound(body)
}
