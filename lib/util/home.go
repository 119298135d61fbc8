package util

import (
	"os"

	"github.com/go-i2p/logger"
)

// UserHome returns the current user's home directory, falling back to
// $HOME, then %USERPROFILE%, then the working directory.
func UserHome() string {
	homeDir, err := os.UserHomeDir()
	if err == nil {
		return homeDir
	}
	for _, env := range []string{"HOME", "USERPROFILE"} {
		if home := os.Getenv(env); home != "" {
			log.WithFields(logger.Fields{"env": env, "error": err}).Warn("os.UserHomeDir failed, using environment")
			return home
		}
	}
	if wd, wdErr := os.Getwd(); wdErr == nil {
		log.WithError(err).Warn("No home directory available; using working directory")
		return wd
	}
	Panicf("relaycrypt: unable to determine home directory: %v", err)
	return ""
}

// FileExists reports whether fpath can be stat'ed.
func FileExists(fpath string) bool {
	_, err := os.Stat(fpath)
	return err == nil
}
