// Package circuit stacks per-hop relay crypto layers for the client end of a
// circuit.
//
// OutboundClientCrypt wraps a cell in one layer per hop, innermost first.
// InboundClientCrypt peels layers from the first hop outward until one
// recognizes the cell. Either stack is owned by a single goroutine; the
// caller serializes access per circuit.
package circuit

import (
	"strconv"

	"github.com/go-i2p/go-relaycrypt/lib/cell"
	"github.com/go-i2p/go-relaycrypt/lib/crypto/binding"
	"github.com/go-i2p/go-relaycrypt/lib/crypto/tor1"
	"github.com/go-i2p/logger"
	"github.com/samber/oops"
)

// HopNum identifies a hop on a circuit. The hop nearest the client is 0.
type HopNum uint8

func (h HopNum) String() string {
	return "#" + strconv.Itoa(int(h)+1)
}

// OutboundClientCrypt holds the client's forward layers, first hop first.
type OutboundClientCrypt struct {
	layers []OutboundClientLayer
}

// NewOutboundClientCrypt returns an empty stack.
func NewOutboundClientCrypt() *OutboundClientCrypt {
	return &OutboundClientCrypt{}
}

// AddLayer appends a layer for the next hop.
func (c *OutboundClientCrypt) AddLayer(layer OutboundClientLayer) {
	c.layers = append(c.layers, layer)
}

// NumLayers returns the number of hops in the stack.
func (c *OutboundClientCrypt) NumLayers() int {
	return len(c.layers)
}

// Encrypt prepares body for hop and wraps it in every layer between the
// client and that hop. It returns the SENDME tag computed by hop.
func (c *OutboundClientCrypt) Encrypt(body *cell.Body, hop HopNum) (cell.SendmeTag, error) {
	if int(hop) >= len(c.layers) {
		log.WithFields(logger.Fields{
			"hop":    hop.String(),
			"layers": len(c.layers),
		}).Warn("Outbound cell addressed past end of circuit")
		return cell.SendmeTag{}, oops.Wrapf(ErrNoSuchHop, "hop %s on a %d-hop circuit", hop, len(c.layers))
	}

	tag := c.layers[hop].OriginateFor(body)
	for i := int(hop) - 1; i >= 0; i-- {
		c.layers[i].EncryptOutbound(body)
	}
	return tag, nil
}

// InboundClientCrypt holds the client's backward layers, first hop first.
type InboundClientCrypt struct {
	layers []InboundClientLayer
}

// NewInboundClientCrypt returns an empty stack.
func NewInboundClientCrypt() *InboundClientCrypt {
	return &InboundClientCrypt{}
}

// AddLayer appends a layer for the next hop.
func (c *InboundClientCrypt) AddLayer(layer InboundClientLayer) {
	c.layers = append(c.layers, layer)
}

// NumLayers returns the number of hops in the stack.
func (c *InboundClientCrypt) NumLayers() int {
	return len(c.layers)
}

// Decrypt removes layers from body until one hop recognizes it, and returns
// that hop with its SENDME tag. When no hop recognizes the cell it returns
// ErrBadCellAuth; body is then fully decrypted garbage.
func (c *InboundClientCrypt) Decrypt(body *cell.Body) (HopNum, cell.SendmeTag, error) {
	for i, layer := range c.layers {
		if tag, ok := layer.DecryptInbound(body); ok {
			return HopNum(i), tag, nil
		}
	}
	log.WithField("layers", len(c.layers)).Warn("Inbound relay cell not recognized by any hop")
	return 0, cell.SendmeTag{}, oops.Wrapf(ErrBadCellAuth, "tried %d layers", len(c.layers))
}

// AddLayers splits a client-side hop pair onto both stacks and returns the
// hop's circuit binding key.
func AddLayers(out *OutboundClientCrypt, in *InboundClientCrypt, pair *tor1.CryptStatePair) binding.CircuitBinding {
	fwd, back, cb := pair.SplitClientLayer()
	out.AddLayer(fwd)
	in.AddLayer(back)
	return cb
}

var (
	_ OutboundClientLayer = (*tor1.CryptState)(nil)
	_ InboundClientLayer  = (*tor1.CryptState)(nil)
	_ OutboundRelayLayer  = (*tor1.CryptState)(nil)
	_ InboundRelayLayer   = (*tor1.CryptState)(nil)
	_ OutboundRelayLayer  = (*tor1.CryptStatePair)(nil)
	_ InboundRelayLayer   = (*tor1.CryptStatePair)(nil)
)
