package main

import (
	"os"

	"github.com/grindlemire/go-bindc/internal/log"
)

// logEnv names a file that receives compiler logs regardless of -v.
const logEnv = "BINDC_LOG"

// setupLogging routes compiler logs to the BINDC_LOG file when set, or to
// stderr in verbose mode. The returned function restores silence.
func setupLogging(verbose bool) (func(), error) {
	if path := os.Getenv(logEnv); path != "" {
		closeLog, err := log.OpenFile(path)
		if err != nil {
			return nil, err
		}
		return func() { _ = closeLog() }, nil
	}
	if verbose {
		log.SetOutput(os.Stderr)
		return func() { log.SetOutput(nil) }, nil
	}
	return func() {}, nil
}
