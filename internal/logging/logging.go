// Package logging holds the process-wide diagnostic logger. Reports are not
// logged; they are written by the report package to stdout.
package logging

import (
	"go.uber.org/zap"
)

// Logger is a no-op until InitLogger is called, so library callers stay quiet.
var Logger = zap.NewNop().Sugar()

// InitLogger replaces Logger with a console logger on stderr. Debug mode logs
// everything; otherwise only warnings and errors are emitted.
func InitLogger(debug bool) error {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	Logger = logger.Sugar()
	return nil
}

// Sync flushes buffered log entries. Errors are ignored since stderr sync
// fails on some terminals.
func Sync() {
	_ = Logger.Sync()
}
