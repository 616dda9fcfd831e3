// Package logging constructs the application logger.
package logging

import "go.uber.org/zap"

// New returns the logger for a run. Debug mode gets a development logger
// writing to stderr; otherwise logging is a no-op so command output stays
// clean for scripting.
func New(debug bool) *zap.Logger {
	if !debug {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
