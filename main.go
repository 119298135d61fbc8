package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-i2p/go-relaycrypt/lib/bench"
	"github.com/go-i2p/go-relaycrypt/lib/circuit/testvec"
	"github.com/go-i2p/go-relaycrypt/lib/config"
	"github.com/go-i2p/go-relaycrypt/lib/crypto/tor1"
	"github.com/go-i2p/logger"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var log = logger.GetGoI2PLogger()

var rootCmd = &cobra.Command{
	Use:   "relaycrypt",
	Short: "Inspect and exercise tor1 relay cell crypto",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.InitConfig()
	},
	SilenceUsage: true,
}

var seedlenCmd = &cobra.Command{
	Use:   "seedlen",
	Short: "Print the key seed length a suite requires",
	RunE: func(cmd *cobra.Command, args []string) error {
		suite, err := tor1.SuiteByName(viper.GetString("suite"))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), suite.SeedLen())
		return nil
	},
}

var suitesCmd = &cobra.Command{
	Use:   "suites",
	Short: "List the registered suites",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range tor1.SuiteNames() {
			suite, _ := tor1.SuiteByName(name)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\tkey=%d digest=%d seed=%d\n",
				name, suite.KeyLen(), suite.DigestLen(), suite.SeedLen())
		}
		return nil
	},
}

var testvecIndices []int

var testvecCmd = &cobra.Command{
	Use:   "testvec",
	Short: "Write the three-hop known-answer cells as a YAML fixture",
	RunE: func(cmd *cobra.Command, args []string) error {
		fix, err := testvec.NewFixture(testvecIndices...)
		if err != nil {
			return err
		}
		return fix.Encode(cmd.OutOrStdout())
	},
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure originate and relay decrypt throughput",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.NewRelayCryptConfigFromViper()
		if err := config.Validate(cfg); err != nil {
			return err
		}
		suite, err := tor1.SuiteByName(cfg.Suite)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		res, err := bench.Run(ctx, bench.Params{
			Suite:    suite,
			Circuits: cfg.Bench.Circuits,
			Hops:     cfg.Bench.Hops,
			Cells:    cfg.Bench.Cells,
			Rate:     cfg.Bench.Rate,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d cells in %s (%.0f cells/s, %.2f MiB/s)\n",
			suite.Name(), res.Cells, res.Elapsed, res.CellsPerSecond(), res.BytesPerSecond()/(1<<20))
		return nil
	},
}

// bindFlag binds the named flag to a viper key. It fails if the flag was
// never registered.
func bindFlag(flags *pflag.FlagSet, key, name string) error {
	if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
		return oops.Wrapf(err, "failed to bind --%s to %s", name, key)
	}
	return nil
}

func mustBindFlag(flags *pflag.FlagSet, key, name string) {
	if err := bindFlag(flags, key, name); err != nil {
		log.WithError(err).Error("Flag binding failed")
		panic(err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&config.CfgFile, "config", "", "config file (default is $HOME/.go-relaycrypt/config.yaml)")
	rootCmd.PersistentFlags().String("suite", config.Defaults().Suite, "cipher suite name")
	mustBindFlag(rootCmd.PersistentFlags(), "suite", "suite")

	testvecCmd.Flags().IntSliceVar(&testvecIndices, "index", nil, "cell indices to emit (default: all cells)")

	d := config.Defaults()
	benchCmd.Flags().Int("circuits", d.Bench.Circuits, "circuits run in parallel")
	benchCmd.Flags().Int("hops", d.Bench.Hops, "hops per circuit")
	benchCmd.Flags().Int("cells", d.Bench.Cells, "cells sent on each circuit")
	benchCmd.Flags().Float64("rate", d.Bench.Rate, "cells per second per circuit (0 for no limit)")
	mustBindFlag(benchCmd.Flags(), "bench.circuits", "circuits")
	mustBindFlag(benchCmd.Flags(), "bench.hops", "hops")
	mustBindFlag(benchCmd.Flags(), "bench.cells", "cells")
	mustBindFlag(benchCmd.Flags(), "bench.rate", "rate")

	rootCmd.AddCommand(seedlenCmd, suitesCmd, testvecCmd, benchCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.WithError(err).Error("relaycrypt failed")
		os.Exit(1)
	}
}
