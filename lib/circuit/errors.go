package circuit

import "errors"

var (
	// ErrNoSuchHop is returned when a cell is addressed to a hop the circuit
	// does not have.
	ErrNoSuchHop = errors.New("no such hop on circuit")

	// ErrBadCellAuth means no layer recognized an inbound cell. The cell is
	// corrupt or misdirected and the circuit should be torn down.
	ErrBadCellAuth = errors.New("relay cell failed authentication at every hop")
)
