// Package config loads settings for the relaycrypt command.
//
// Settings come from defaults, then an optional YAML file, then command-line
// flags bound by the caller:
//   - Default file: $HOME/.go-relaycrypt/config.yaml
//   - Override with CfgFile (the --config flag)
//
// The crypto packages take no configuration. Only the command-line tools
// read this package, to choose a suite and size benchmarks.
package config
