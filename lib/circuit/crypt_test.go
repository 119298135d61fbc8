package circuit_test

import (
	"sync"
	"testing"

	"github.com/go-i2p/go-relaycrypt/lib/cell"
	"github.com/go-i2p/go-relaycrypt/lib/circuit"
	"github.com/go-i2p/go-relaycrypt/lib/circuit/testvec"
	"github.com/go-i2p/go-relaycrypt/lib/crypto/kdf"
	"github.com/go-i2p/go-relaycrypt/lib/crypto/tor1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingLayer logs the order in which a stack calls its layers.
type recordingLayer struct {
	id    int
	calls *[]string
	match bool
}

func (l *recordingLayer) OriginateFor(body *cell.Body) cell.SendmeTag {
	*l.calls = append(*l.calls, "originate", string(rune('0'+l.id)))
	return cell.SendmeTag{byte(l.id)}
}

func (l *recordingLayer) EncryptOutbound(body *cell.Body) {
	*l.calls = append(*l.calls, "encrypt", string(rune('0'+l.id)))
}

func (l *recordingLayer) DecryptInbound(body *cell.Body) (cell.SendmeTag, bool) {
	*l.calls = append(*l.calls, "decrypt", string(rune('0'+l.id)))
	if l.match {
		return cell.SendmeTag{byte(l.id)}, true
	}
	return cell.SendmeTag{}, false
}

func TestOutboundClientCrypt_LayerOrder(t *testing.T) {
	var calls []string
	out := circuit.NewOutboundClientCrypt()
	for i := 0; i < 3; i++ {
		out.AddLayer(&recordingLayer{id: i, calls: &calls})
	}
	require.Equal(t, 3, out.NumLayers())

	tag, err := out.Encrypt(new(cell.Body), 2)
	require.NoError(t, err)
	assert.Equal(t, cell.SendmeTag{2}, tag)
	assert.Equal(t, []string{"originate", "2", "encrypt", "1", "encrypt", "0"}, calls)

	calls = nil
	_, err = out.Encrypt(new(cell.Body), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"originate", "0"}, calls)
}

func TestOutboundClientCrypt_NoSuchHop(t *testing.T) {
	out := circuit.NewOutboundClientCrypt()
	_, err := out.Encrypt(new(cell.Body), 0)
	assert.ErrorIs(t, err, circuit.ErrNoSuchHop)

	var calls []string
	out.AddLayer(&recordingLayer{calls: &calls})
	_, err = out.Encrypt(new(cell.Body), 1)
	assert.ErrorIs(t, err, circuit.ErrNoSuchHop)
	assert.Empty(t, calls)
}

func TestInboundClientCrypt_StopsAtFirstMatch(t *testing.T) {
	var calls []string
	in := circuit.NewInboundClientCrypt()
	in.AddLayer(&recordingLayer{id: 0, calls: &calls})
	in.AddLayer(&recordingLayer{id: 1, calls: &calls, match: true})
	in.AddLayer(&recordingLayer{id: 2, calls: &calls, match: true})

	hop, tag, err := in.Decrypt(new(cell.Body))
	require.NoError(t, err)
	assert.Equal(t, circuit.HopNum(1), hop)
	assert.Equal(t, cell.SendmeTag{1}, tag)
	assert.Equal(t, []string{"decrypt", "0", "decrypt", "1"}, calls)
}

func TestInboundClientCrypt_BadCellAuth(t *testing.T) {
	var calls []string
	in := circuit.NewInboundClientCrypt()
	in.AddLayer(&recordingLayer{id: 0, calls: &calls})
	in.AddLayer(&recordingLayer{id: 1, calls: &calls})

	_, _, err := in.Decrypt(new(cell.Body))
	assert.ErrorIs(t, err, circuit.ErrBadCellAuth)
	assert.Len(t, calls, 4)

	empty := circuit.NewInboundClientCrypt()
	_, _, err = empty.Decrypt(new(cell.Body))
	assert.ErrorIs(t, err, circuit.ErrBadCellAuth)
}

func TestHopNumString(t *testing.T) {
	assert.Equal(t, "#1", circuit.HopNum(0).String())
	assert.Equal(t, "#3", circuit.HopNum(2).String())
}

// relayPairs builds the relay side of each hop from the scenario keys.
func relayPairs(t *testing.T) []*tor1.CryptStatePair {
	t.Helper()
	var pairs []*tor1.CryptStatePair
	for _, key := range testvec.Keys() {
		pair, err := tor1.NewCryptStatePair(tor1.AES128SHA1, cell.FormatV0{}, key)
		require.NoError(t, err)
		pairs = append(pairs, pair)
	}
	return pairs
}

// TestScenario_RelaysPeelLayers sends the known-answer cells through three
// relays and checks that only the last one recognizes them.
func TestScenario_RelaysPeelLayers(t *testing.T) {
	relays := relayPairs(t)

	err := testvec.Run(func(index int, plain, sealed *cell.Body, tag cell.SendmeTag) {
		body := *sealed
		for hop, relay := range relays {
			got, ok := relay.DecryptOutbound(&body)
			if hop < int(testvec.DestHop) {
				require.False(t, ok, "cell %d recognized early at hop %d", index, hop)
				continue
			}
			require.True(t, ok, "cell %d not recognized at destination", index)
			assert.Equal(t, tag, got, "cell %d", index)
		}
		assert.Equal(t, []byte{0, 0}, body[1:3])
		assert.Equal(t, plain[:cell.V0DigestOffset], body[:cell.V0DigestOffset])
		assert.Equal(t, plain[cell.V0LengthOffset:], body[cell.V0LengthOffset:])
	})
	require.NoError(t, err)
}

// TestInboundRoundTrip has each hop in turn originate a cell toward the
// client, through the relays nearer the client.
func TestInboundRoundTrip(t *testing.T) {
	_, in, err := testvec.NewClientStacks()
	require.NoError(t, err)
	relays := relayPairs(t)
	gen := testvec.NewGenerator()

	for n := 0; n < 30; n++ {
		origin := n % len(relays)
		body := gen.Next()
		want := *body

		sent := relays[origin].Originate(body)
		for hop := origin - 1; hop >= 0; hop-- {
			relays[hop].EncryptInbound(body)
		}

		hop, got, err := in.Decrypt(body)
		require.NoError(t, err, "cell %d", n)
		assert.Equal(t, circuit.HopNum(origin), hop)
		assert.Equal(t, sent, got)
		assert.Equal(t, want[cell.V0LengthOffset:], body[cell.V0LengthOffset:])
	}
}

func TestInboundGarbageRejected(t *testing.T) {
	_, in, err := testvec.NewClientStacks()
	require.NoError(t, err)

	body, err := cell.BodyFromBytes(kdf.Shake256([]byte("not a cell"), cell.BodyLen))
	require.NoError(t, err)
	_, _, err = in.Decrypt(body)
	assert.ErrorIs(t, err, circuit.ErrBadCellAuth)
}

// TestIndependentCircuitsInParallel runs separate circuits on separate
// goroutines. They share no state, so the race detector stays quiet.
func TestIndependentCircuitsInParallel(t *testing.T) {
	const circuits = 8
	var wg sync.WaitGroup
	errs := make(chan error, circuits)

	for c := 0; c < circuits; c++ {
		wg.Add(1)
		go func(c int) {
			defer wg.Done()
			seed := kdf.Shake256([]byte{byte(c)}, tor1.AES128SHA1.SeedLen())
			client, err := tor1.NewCryptStatePair(tor1.AES128SHA1, cell.FormatV0{}, seed)
			if err != nil {
				errs <- err
				return
			}
			relay, err := tor1.NewCryptStatePair(tor1.AES128SHA1, cell.FormatV0{}, seed)
			if err != nil {
				errs <- err
				return
			}
			out := circuit.NewOutboundClientCrypt()
			in := circuit.NewInboundClientCrypt()
			circuit.AddLayers(out, in, client)

			for n := 0; n < 200; n++ {
				body := new(cell.Body)
				body[cell.V0DataOffset] = byte(n)
				sent, err := out.Encrypt(body, 0)
				if err != nil {
					errs <- err
					return
				}
				if got, ok := relay.DecryptOutbound(body); !ok || got != sent {
					errs <- circuit.ErrBadCellAuth
					return
				}
			}
		}(c)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}
