// Package cell defines relay cell bodies and the layouts that locate the
// recognized and digest fields inside them.
//
// A Body is a fixed 509-byte buffer. It is passed by pointer through every
// crypto layer of a circuit and is never copied between layers. A Format
// names the byte ranges of the two-byte recognized field and the four-byte
// digest field; FormatV0 is the layout used by the current network:
//
//	+---------+------------+-----------+--------+--------+---------+
//	| command | recognized | stream_id | digest | length | data    |
//	| 1       | 2          | 2         | 4      | 2      | 498     |
//	+---------+------------+-----------+--------+--------+---------+
//
// SendmeTag carries the leading SendmeTagLen bytes of the digest computed
// over a cell; flow control echoes it back in authenticated SENDME cells.
package cell
