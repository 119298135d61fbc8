// Package bench measures relay crypto throughput over independent circuits.
//
// Each circuit is a client outbound stack and one relay pair per hop,
// keyed from SHAKE-256 seeds. Circuits run on their own goroutines and
// share nothing.
package bench

import (
	"context"
	"encoding/binary"
	"time"

	"github.com/go-i2p/go-relaycrypt/lib/cell"
	"github.com/go-i2p/go-relaycrypt/lib/circuit"
	"github.com/go-i2p/go-relaycrypt/lib/crypto/kdf"
	"github.com/go-i2p/go-relaycrypt/lib/crypto/tor1"
	"github.com/go-i2p/logger"
	"github.com/samber/oops"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

var log = logger.GetGoI2PLogger()

// Params sizes a run.
type Params struct {
	Suite    tor1.Suite
	Circuits int
	Hops     int
	Cells    int
	// Rate caps each circuit at this many cells per second. Zero means no
	// limit.
	Rate float64
}

// Result summarizes a run.
type Result struct {
	// Cells is the number of cells delivered and recognized at the last hop.
	Cells   int
	Elapsed time.Duration
}

// CellsPerSecond returns the delivered cell rate.
func (r Result) CellsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Cells) / r.Elapsed.Seconds()
}

// BytesPerSecond returns the delivered body rate.
func (r Result) BytesPerSecond() float64 {
	return r.CellsPerSecond() * cell.BodyLen
}

// Run drives every circuit to completion, or stops early when ctx is done or
// a circuit fails. A cell the last hop does not recognize fails the run.
func Run(ctx context.Context, p Params) (Result, error) {
	if p.Circuits < 1 || p.Hops < 1 || p.Hops > 256 || p.Cells < 1 || p.Rate < 0 {
		return Result{}, oops.Errorf("invalid bench parameters: %d circuits, %d hops, %d cells, rate %g",
			p.Circuits, p.Hops, p.Cells, p.Rate)
	}
	log.WithFields(logger.Fields{
		"suite":    p.Suite.Name(),
		"circuits": p.Circuits,
		"hops":     p.Hops,
		"cells":    p.Cells,
		"rate":     p.Rate,
	}).Debug("Starting relay crypto benchmark")

	counts := make([]int, p.Circuits)
	g, ctx := errgroup.WithContext(ctx)
	start := time.Now()
	for i := range p.Circuits {
		g.Go(func() error {
			n, err := runCircuit(ctx, p, i)
			counts[i] = n
			return err
		})
	}
	err := g.Wait()

	res := Result{Elapsed: time.Since(start)}
	for _, n := range counts {
		res.Cells += n
	}
	if err != nil {
		log.WithError(err).Warn("Benchmark stopped early")
		return res, err
	}
	return res, nil
}

// circuitSeed derives the seed shared by the client and relay at one hop.
func circuitSeed(suite tor1.Suite, circ, hop int) []byte {
	var label [8]byte
	binary.BigEndian.PutUint32(label[:4], uint32(circ))
	binary.BigEndian.PutUint32(label[4:], uint32(hop))
	return kdf.Shake256(label[:], suite.SeedLen())
}

func runCircuit(ctx context.Context, p Params, circ int) (int, error) {
	out := circuit.NewOutboundClientCrypt()
	in := circuit.NewInboundClientCrypt()
	relays := make([]*tor1.CryptStatePair, p.Hops)
	for hop := range p.Hops {
		seed := circuitSeed(p.Suite, circ, hop)
		client, err := tor1.NewCryptStatePair(p.Suite, cell.FormatV0{}, seed)
		if err != nil {
			return 0, oops.Wrapf(err, "circuit %d hop %d", circ, hop)
		}
		relay, err := tor1.NewCryptStatePair(p.Suite, cell.FormatV0{}, seed)
		if err != nil {
			return 0, oops.Wrapf(err, "circuit %d hop %d", circ, hop)
		}
		circuit.AddLayers(out, in, client)
		relays[hop] = relay
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if p.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(p.Rate), 1)
	}

	dest := circuit.HopNum(p.Hops - 1)
	body := new(cell.Body)
	for n := range p.Cells {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if err := limiter.Wait(ctx); err != nil {
			return n, err
		}
		clear(body[:])
		binary.BigEndian.PutUint64(body[cell.V0DataOffset:], uint64(n))

		sent, err := out.Encrypt(body, dest)
		if err != nil {
			return n, err
		}
		for hop, relay := range relays {
			got, ok := relay.DecryptOutbound(body)
			if hop < int(dest) {
				continue
			}
			if !ok || got != sent {
				return n, oops.Wrapf(circuit.ErrBadCellAuth, "circuit %d cell %d", circ, n)
			}
		}
	}
	return p.Cells, nil
}
