package tor1

import "errors"

var (
	// ErrInvalidSeedLength means the caller built a key seed whose length does
	// not match the negotiated suite. Circuit construction must abort.
	ErrInvalidSeedLength = errors.New("tor1 seed length was invalid")

	// ErrDigestNotCloneable is returned when a suite's digest cannot be
	// copied, which the recognition check depends on.
	ErrDigestNotCloneable = errors.New("tor1 digest does not support cloning")

	// ErrUnknownSuite is returned by SuiteByName for unregistered names, and
	// by NewCryptStatePair for a zero Suite.
	ErrUnknownSuite = errors.New("unknown tor1 cipher suite")

	// ErrDigestTooShort means a digest is narrower than a SENDME tag or than
	// the cell format's digest field.
	ErrDigestTooShort = errors.New("tor1 digest output too short")

	// ErrInvalidFormat means a cell format names field ranges the
	// recognition check cannot use.
	ErrInvalidFormat = errors.New("tor1 cell format was invalid")
)
