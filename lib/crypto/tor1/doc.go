// Package tor1 implements the relay cell cryptography used by circuits on
// the current network, sometimes called "tor1".
//
// # Key schedule
//
// A completed circuit handshake yields a key seed which NewCryptStatePair
// splits, in order, into
//
//	Df (D bytes) | Db (D bytes) | Kf (K bytes) | Kb (K bytes) | KH (20 bytes)
//
// where D is the digest output size and K the cipher key size of the Suite.
// Kf and Kb key a counter-mode stream cipher with an all-zero IV; the
// position in the stream is what keeps successive cells distinct. Df and Db
// prime a running digest, so the first cell is hashed after the seed bytes.
// KH becomes the circuit binding key.
//
// # Recognition
//
// Cells carry no per-layer MAC. The endpoint for a direction sets the
// two-byte recognized field to zero and stores the first four bytes of the
// running digest in the digest field before encrypting. A layer that
// decrypts a cell checks the recognized field, then checks the digest field
// against a clone of its running digest. The clone replaces the running
// digest only when the check passes, so a cell meant for a deeper hop leaves
// this hop's state untouched. Both checks are constant-time.
//
// # Concurrency
//
// A CryptState is owned by exactly one (circuit, hop, direction). It is not
// safe for concurrent use and cells must be handled in arrival order: a
// skipped, repeated or reordered cell desynchronizes the digest with the
// peer for the rest of the circuit's life. Independent circuits share
// nothing and may run in parallel.
package tor1
