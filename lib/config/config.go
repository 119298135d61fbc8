package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/go-i2p/go-relaycrypt/lib/util"
	"github.com/go-i2p/logger"
	"github.com/samber/oops"
	"github.com/spf13/viper"
)

var (
	CfgFile string
	log     = logger.GetGoI2PLogger()
)

const RELAYCRYPT_BASE_DIR = ".go-relaycrypt"

// RelayCryptConfig is the resolved configuration for one command run.
type RelayCryptConfig struct {
	// Suite names the tor1 cipher suite, e.g. "tor1-aes128-sha1".
	Suite string
	Bench *BenchConfig
}

// BenchConfig sizes the throughput benchmark.
type BenchConfig struct {
	// Circuits is the number of independent circuits run in parallel.
	Circuits int
	// Hops is the number of layers on each circuit.
	Hops int
	// Cells is the number of cells sent on each circuit.
	Cells int
	// Rate caps each circuit's cells per second; zero is unlimited.
	Rate float64
}

// InitConfig loads defaults and, if present, the config file into viper.
// A missing default file is not an error; a missing explicit file is.
func InitConfig() error {
	if CfgFile != "" {
		if !util.FileExists(CfgFile) {
			log.WithField("file", CfgFile).Error("Config file does not exist")
			return oops.Wrapf(os.ErrNotExist, "config file %s", CfgFile)
		}
		viper.SetConfigFile(CfgFile)
	} else {
		viper.AddConfigPath(BuildRelayCryptDirPath())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	return handleConfigFile()
}

func setDefaults() {
	d := Defaults()
	viper.SetDefault("suite", d.Suite)
	viper.SetDefault("bench.circuits", d.Bench.Circuits)
	viper.SetDefault("bench.hops", d.Bench.Hops)
	viper.SetDefault("bench.cells", d.Bench.Cells)
	viper.SetDefault("bench.rate", d.Bench.Rate)
}

func handleConfigFile() error {
	err := viper.ReadInConfig()
	if err == nil {
		log.WithField("file", viper.ConfigFileUsed()).Debug("Using config file")
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) && CfgFile == "" {
		log.Debug("No config file found, using defaults")
		return nil
	}
	log.WithError(err).Error("Failed to read config file")
	return oops.Wrapf(err, "failed to read config file")
}

// NewRelayCryptConfigFromViper builds a RelayCryptConfig from the current
// viper settings.
func NewRelayCryptConfigFromViper() *RelayCryptConfig {
	return &RelayCryptConfig{
		Suite: viper.GetString("suite"),
		Bench: &BenchConfig{
			Circuits: viper.GetInt("bench.circuits"),
			Hops:     viper.GetInt("bench.hops"),
			Cells:    viper.GetInt("bench.cells"),
			Rate:     viper.GetFloat64("bench.rate"),
		},
	}
}

// BuildRelayCryptDirPath returns the directory holding the default config
// file.
func BuildRelayCryptDirPath() string {
	return filepath.Join(util.UserHome(), RELAYCRYPT_BASE_DIR)
}
