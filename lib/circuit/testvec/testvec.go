// Package testvec reproduces the three-hop relay crypto known-answer
// scenario and reads and writes its reference fixtures.
//
// The scenario builds a client outbound stack from three 92-byte
// tor1-aes128-sha1 key seeds, fills 51 DATA cells from a SHAKE-256 stream,
// addresses every cell to the third hop and records the ciphertext that
// leaves the client.
package testvec

import (
	"encoding/hex"
	"io"
	"os"

	"github.com/go-i2p/go-relaycrypt/lib/cell"
	"github.com/go-i2p/go-relaycrypt/lib/circuit"
	"github.com/go-i2p/go-relaycrypt/lib/crypto/kdf"
	"github.com/go-i2p/go-relaycrypt/lib/crypto/tor1"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// Hop key seeds. Each is exactly tor1.AES128SHA1.SeedLen() bytes.
const (
	Key1 = "    'My public key is in this signed x509 object', said Tom assertively.      (N-PREG-VIRYL)"
	Key2 = "'Let's chart the pedal phlanges in the tomb', said Tom cryptographically.  (PELCG-GBR-TENCU)"
	Key3 = "     'Segmentation fault bugs don't _just happen_', said Tom seethingly.        (P-GUVAT-YL)"
)

// StreamSeed seeds the SHAKE-256 stream that fills cell payloads.
const StreamSeed = "'You mean to tell me that there's a version of Sha-3 with no limit on the output length?', said Tom shakily."

// NumCells is the number of cells the scenario encrypts.
const NumCells = 51

// DestHop is the hop every cell is addressed to.
const DestHop circuit.HopNum = 2

// Keys returns the three hop seeds, first hop first.
func Keys() [][]byte {
	return [][]byte{[]byte(Key1), []byte(Key2), []byte(Key3)}
}

// Generator yields the scenario's plaintext cells in order.
type Generator struct {
	stream io.Reader
}

// NewGenerator starts a fresh plaintext stream.
func NewGenerator() *Generator {
	return &Generator{stream: kdf.NewShake256Reader([]byte(StreamSeed))}
}

// Next returns the next plaintext: a DATA cell on stream 1 carrying 498
// bytes of stream output.
func (g *Generator) Next() *cell.Body {
	body := new(cell.Body)
	body[0] = 2 // RELAY_DATA
	body[4] = 1 // stream 1
	body[cell.V0LengthOffset] = 1
	body[cell.V0LengthOffset+1] = 242 // 498
	if _, err := io.ReadFull(g.stream, body[cell.V0DataOffset:]); err != nil {
		// SHAKE output is unbounded.
		panic(err)
	}
	return body
}

// NewClientStacks builds the client's outbound and inbound stacks from Keys.
func NewClientStacks() (*circuit.OutboundClientCrypt, *circuit.InboundClientCrypt, error) {
	out := circuit.NewOutboundClientCrypt()
	in := circuit.NewInboundClientCrypt()
	for i, key := range Keys() {
		pair, err := tor1.NewCryptStatePair(tor1.AES128SHA1, cell.FormatV0{}, key)
		if err != nil {
			return nil, nil, oops.Wrapf(err, "hop %d", i)
		}
		circuit.AddLayers(out, in, pair)
	}
	return out, in, nil
}

// Run encrypts the NumCells scenario cells and calls visit with each cell's
// index, the plaintext handed to the stack, the resulting ciphertext and the
// SENDME tag. The plaintext is a copy taken before the stack fills in the
// recognized and digest fields.
func Run(visit func(index int, plain, sealed *cell.Body, tag cell.SendmeTag)) error {
	out, _, err := NewClientStacks()
	if err != nil {
		return err
	}
	gen := NewGenerator()
	for i := 0; i < NumCells; i++ {
		body := gen.Next()
		plain := *body
		tag, err := out.Encrypt(body, DestHop)
		if err != nil {
			return oops.Wrapf(err, "cell %d", i)
		}
		visit(i, &plain, body, tag)
	}
	return nil
}

// Fixture is a set of reference ciphertexts for the scenario.
type Fixture struct {
	Suite string        `yaml:"suite"`
	Cells []FixtureCell `yaml:"cells"`
}

// FixtureCell is one expected ciphertext, hex encoded.
type FixtureCell struct {
	Index int    `yaml:"index"`
	Body  string `yaml:"body"`
}

// Decode returns the cell body held by c.
func (c FixtureCell) Decode() (*cell.Body, error) {
	raw, err := hex.DecodeString(c.Body)
	if err != nil {
		return nil, oops.Wrapf(err, "cell %d: bad hex", c.Index)
	}
	body, err := cell.BodyFromBytes(raw)
	if err != nil {
		return nil, oops.Wrapf(err, "cell %d", c.Index)
	}
	return body, nil
}

// NewFixture records the scenario output for the given cell indices, or for
// every cell when none are given.
func NewFixture(indices ...int) (*Fixture, error) {
	want := make(map[int]bool, len(indices))
	for _, i := range indices {
		if i < 0 || i >= NumCells {
			return nil, oops.Errorf("cell index %d out of range [0,%d)", i, NumCells)
		}
		want[i] = true
	}
	f := &Fixture{Suite: tor1.AES128SHA1.Name()}
	err := Run(func(index int, _, sealed *cell.Body, _ cell.SendmeTag) {
		if len(want) == 0 || want[index] {
			f.Cells = append(f.Cells, FixtureCell{Index: index, Body: hex.EncodeToString(sealed[:])})
		}
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Encode writes f as YAML.
func (f *Fixture) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return oops.Wrapf(err, "failed to encode fixture")
	}
	return enc.Close()
}

// LoadFixture reads a YAML fixture from path.
func LoadFixture(path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.Wrapf(err, "failed to read fixture")
	}
	var f Fixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, oops.Wrapf(err, "failed to parse fixture %s", path)
	}
	return &f, nil
}
