package testvec

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-i2p/go-relaycrypt/lib/cell"
	"github.com/go-i2p/go-relaycrypt/lib/crypto/tor1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// referenceFixture holds every scenario ciphertext, computed outside Go with
// SHA-1, AES-128-CTR and SHAKE-256 from OpenSSL and Python hashlib.
const referenceFixture = "testdata/cell_crypt.yaml"

func TestScenarioConstants(t *testing.T) {
	for i, key := range Keys() {
		assert.Len(t, key, tor1.AES128SHA1.SeedLen(), "key %d", i+1)
	}
	assert.Len(t, StreamSeed, 108)
}

func TestGenerator(t *testing.T) {
	g1, g2 := NewGenerator(), NewGenerator()

	first := g1.Next()
	assert.Equal(t, byte(2), first[0])
	assert.Equal(t, []byte{0, 0}, first[1:3])
	assert.Equal(t, []byte{0, 1}, first[3:5])
	assert.Equal(t, []byte{0, 0, 0, 0}, first[5:9])
	assert.Equal(t, []byte{1, 242}, first[9:11])

	second := g1.Next()
	assert.NotEqual(t, first[cell.V0DataOffset:], second[cell.V0DataOffset:])

	assert.Equal(t, first, g2.Next())
	assert.Equal(t, second, g2.Next())
}

func TestRun_Deterministic(t *testing.T) {
	var a, b [][]byte
	require.NoError(t, Run(func(_ int, _, sealed *cell.Body, _ cell.SendmeTag) {
		a = append(a, bytes.Clone(sealed[:]))
	}))
	require.NoError(t, Run(func(_ int, _, sealed *cell.Body, _ cell.SendmeTag) {
		b = append(b, bytes.Clone(sealed[:]))
	}))
	require.Len(t, a, NumCells)
	assert.Equal(t, a, b)
}

func TestFixtureRoundTrip(t *testing.T) {
	f, err := NewFixture(0, 10, 50)
	require.NoError(t, err)
	require.Len(t, f.Cells, 3)
	assert.Equal(t, "tor1-aes128-sha1", f.Suite)

	path := filepath.Join(t.TempDir(), "fixture.yaml")
	out, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Encode(out))
	require.NoError(t, out.Close())

	loaded, err := LoadFixture(path)
	require.NoError(t, err)
	assert.Equal(t, f, loaded)

	var sealed50 cell.Body
	require.NoError(t, Run(func(index int, _, sealed *cell.Body, _ cell.SendmeTag) {
		if index == 50 {
			sealed50 = *sealed
		}
	}))
	body, err := loaded.Cells[2].Decode()
	require.NoError(t, err)
	assert.Equal(t, 50, loaded.Cells[2].Index)
	assert.Equal(t, &sealed50, body)
}

func TestNewFixture_BadIndex(t *testing.T) {
	_, err := NewFixture(NumCells)
	assert.Error(t, err)
	_, err = NewFixture(-1)
	assert.Error(t, err)
}

func TestFixtureCell_Decode(t *testing.T) {
	_, err := FixtureCell{Index: 1, Body: "zz"}.Decode()
	assert.Error(t, err)
	_, err = FixtureCell{Index: 1, Body: "00ff"}.Decode()
	assert.ErrorIs(t, err, cell.ErrInvalidBodyLength)
}

// TestKnownAnswer compares every scenario cell against the reference
// ciphertexts.
func TestKnownAnswer(t *testing.T) {
	ref, err := LoadFixture(referenceFixture)
	require.NoError(t, err, "reference fixture %s is required", referenceFixture)
	require.Equal(t, tor1.AES128SHA1.Name(), ref.Suite)
	require.Len(t, ref.Cells, NumCells)

	want := make(map[int]*cell.Body, len(ref.Cells))
	for _, c := range ref.Cells {
		body, err := c.Decode()
		require.NoError(t, err)
		want[c.Index] = body
	}

	matched := 0
	require.NoError(t, Run(func(index int, _, sealed *cell.Body, _ cell.SendmeTag) {
		if expected, ok := want[index]; ok {
			assert.Equal(t, expected, sealed, "cell %d", index)
			matched++
		}
	}))
	assert.Equal(t, len(want), matched, "fixture names cells outside the scenario")
}

func TestKnownAnswer_Prefixes(t *testing.T) {
	ref, err := LoadFixture(referenceFixture)
	require.NoError(t, err)
	require.Len(t, ref.Cells, NumCells)
	for index, prefix := range map[int]string{
		0:  "caec8c2606b65a1d",
		1:  "5670825c1c8c446b",
		50: "e728044dc5c658c7",
	} {
		require.Equal(t, index, ref.Cells[index].Index)
		assert.True(t, strings.HasPrefix(ref.Cells[index].Body, prefix), "cell %d", index)
	}
}

func TestLoadFixture_Missing(t *testing.T) {
	_, err := LoadFixture(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
