package circuit

import "github.com/go-i2p/go-relaycrypt/lib/cell"

// OutboundClientLayer is one hop's forward state as seen by the client.
type OutboundClientLayer interface {
	// OriginateFor prepares a cell addressed to this hop and encrypts it.
	OriginateFor(body *cell.Body) cell.SendmeTag
	// EncryptOutbound encrypts a cell addressed to a later hop.
	EncryptOutbound(body *cell.Body)
}

// InboundClientLayer is one hop's backward state as seen by the client.
type InboundClientLayer interface {
	// DecryptInbound removes one layer and reports whether this hop
	// originated the cell.
	DecryptInbound(body *cell.Body) (cell.SendmeTag, bool)
}

// OutboundRelayLayer is a relay's forward state.
type OutboundRelayLayer interface {
	// DecryptOutbound removes this relay's layer and reports whether the cell
	// is addressed to it.
	DecryptOutbound(body *cell.Body) (cell.SendmeTag, bool)
}

// InboundRelayLayer is a relay's backward state.
type InboundRelayLayer interface {
	// Originate prepares a cell from this relay and encrypts it.
	Originate(body *cell.Body) cell.SendmeTag
	// EncryptInbound encrypts a cell some later hop originated.
	EncryptInbound(body *cell.Body)
}
