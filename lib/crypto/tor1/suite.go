package tor1

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha1"
	"hash"
	"sort"

	"github.com/go-i2p/go-relaycrypt/lib/cell"
	"github.com/go-i2p/go-relaycrypt/lib/crypto/binding"
	"github.com/go-i2p/go-relaycrypt/lib/slug"
	"github.com/samber/oops"
	"golang.org/x/crypto/sha3"
)

// StreamFactory keys a stream cipher with a fixed, all-zero IV.
type StreamFactory func(key []byte) (cipher.Stream, error)

// DigestFactory returns a fresh, unkeyed digest.
type DigestFactory func() hash.Hash

// Suite pairs a stream cipher family with a digest family. It is fixed for
// the lifetime of a circuit hop.
type Suite struct {
	name      slug.Slug
	keyLen    int
	digestLen int
	newStream StreamFactory
	newDigest DigestFactory
}

// NewSuite describes a cipher suite. The name must be a valid slug, and the
// digest must be at least cell.SendmeTagLen bytes wide.
func NewSuite(name string, keyLen int, newStream StreamFactory, newDigest DigestFactory) (Suite, error) {
	s, err := slug.New(name)
	if err != nil {
		return Suite{}, oops.Wrapf(err, "invalid suite name")
	}
	if keyLen <= 0 {
		return Suite{}, oops.Errorf("suite %s: key length must be positive, got %d", name, keyLen)
	}
	if newStream == nil || newDigest == nil {
		return Suite{}, oops.Errorf("suite %s: stream and digest factories are required", name)
	}
	digestLen := newDigest().Size()
	if digestLen < cell.SendmeTagLen {
		return Suite{}, oops.Wrapf(ErrDigestTooShort, "suite %s: digest is %d bytes, need at least %d",
			name, digestLen, cell.SendmeTagLen)
	}
	return Suite{
		name:      s,
		keyLen:    keyLen,
		digestLen: digestLen,
		newStream: newStream,
		newDigest: newDigest,
	}, nil
}

func mustSuite(name string, keyLen int, newStream StreamFactory, newDigest DigestFactory) Suite {
	s, err := NewSuite(name, keyLen, newStream, newDigest)
	if err != nil {
		panic(err)
	}
	return s
}

// NewAESCTR keys AES in counter mode with a zero IV. The key length selects
// AES-128, AES-192 or AES-256.
func NewAESCTR(key []byte) (cipher.Stream, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, oops.Wrapf(err, "failed to create AES cipher")
	}
	var iv [aes.BlockSize]byte
	return cipher.NewCTR(block, iv[:]), nil
}

var (
	// AES128SHA1 is the suite used by ordinary circuits.
	AES128SHA1 = mustSuite("tor1-aes128-sha1", 16, NewAESCTR, sha1.New)

	// AES256SHA3 is the suite used on onion service rendezvous circuits.
	AES256SHA3 = mustSuite("tor1-aes256-sha3-256", 32, NewAESCTR, sha3.New256)
)

var suites = map[slug.Slug]Suite{
	AES128SHA1.name: AES128SHA1,
	AES256SHA3.name: AES256SHA3,
}

// SuiteByName looks up one of the built-in suites.
func SuiteByName(name string) (Suite, error) {
	s, err := slug.New(name)
	if err != nil {
		return Suite{}, oops.Wrapf(err, "invalid suite name")
	}
	suite, ok := suites[s]
	if !ok {
		return Suite{}, oops.Wrapf(ErrUnknownSuite, "%q", name)
	}
	return suite, nil
}

// SuiteNames lists the built-in suites in sorted order.
func SuiteNames() []string {
	names := make([]string, 0, len(suites))
	for name := range suites {
		names = append(names, name.String())
	}
	sort.Strings(names)
	return names
}

// Name returns the suite's slug.
func (s Suite) Name() string { return s.name.String() }

// KeyLen is K, the stream cipher key size.
func (s Suite) KeyLen() int { return s.keyLen }

// DigestLen is D, the digest output size.
func (s Suite) DigestLen() int { return s.digestLen }

// SeedLen is the exact key seed length NewCryptStatePair accepts.
func (s Suite) SeedLen() int {
	return 2*s.digestLen + 2*s.keyLen + binding.Len
}
