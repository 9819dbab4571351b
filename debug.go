package rowan

import (
	"os"

	"github.com/charmbracelet/log"
)

// logger is the package-wide diagnostic logger. Non-fatal conditions the
// library recovers from (dropped frame indices, unknown animation names) are
// reported here at warn level so misuse is visible without being fatal.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "rowan",
	Level:  log.WarnLevel,
})

// SetDebug toggles debug-level logging. When enabled, animation state
// transitions and loop diagnostics are logged in addition to warnings.
func SetDebug(enabled bool) {
	if enabled {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
}

// Logger returns the package logger so hosts can redirect or restyle it.
func Logger() *log.Logger {
	return logger
}
