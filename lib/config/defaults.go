package config

import (
	"github.com/go-i2p/go-relaycrypt/lib/crypto/tor1"
	"github.com/go-i2p/logger"
	"github.com/samber/oops"
)

// MaxBenchHops bounds bench.hops; hops are numbered with a single byte.
const MaxBenchHops = 256

// Defaults returns the built-in configuration.
func Defaults() RelayCryptConfig {
	return RelayCryptConfig{
		Suite: tor1.AES128SHA1.Name(),
		Bench: &BenchConfig{
			Circuits: 4,
			Hops:     3,
			Cells:    1000,
		},
	}
}

// Validate checks a configuration before any command uses it.
func Validate(cfg *RelayCryptConfig) error {
	log.WithFields(logger.Fields{
		"at":     "Validate",
		"reason": "verification_requested",
	}).Debug("validating configuration")

	validators := []func() error{
		func() error { return validateSuite(cfg.Suite) },
		func() error { return validateBench(cfg.Bench) },
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func validateSuite(name string) error {
	if _, err := tor1.SuiteByName(name); err != nil {
		return oops.Wrapf(err, "suite")
	}
	return nil
}

func validateBench(b *BenchConfig) error {
	if b == nil {
		return oops.Errorf("bench configuration is missing")
	}
	if b.Circuits < 1 {
		return oops.Errorf("bench.circuits must be at least 1, got %d", b.Circuits)
	}
	if b.Hops < 1 || b.Hops > MaxBenchHops {
		return oops.Errorf("bench.hops must be in [1,%d], got %d", MaxBenchHops, b.Hops)
	}
	if b.Cells < 1 {
		return oops.Errorf("bench.cells must be at least 1, got %d", b.Cells)
	}
	if b.Rate < 0 {
		return oops.Errorf("bench.rate must not be negative, got %g", b.Rate)
	}
	return nil
}
