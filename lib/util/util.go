// Package util holds small helpers shared by the relaycrypt packages.
package util

import (
	"fmt"

	"github.com/go-i2p/logger"
)

var log = logger.GetGoI2PLogger()

// Panicf panics with a formatted message. It is reserved for states the
// caller has already ruled out, where continuing would corrupt crypto state.
func Panicf(format string, args ...interface{}) {
	panic(fmt.Sprintf(format, args...))
}
