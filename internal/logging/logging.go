// Package logging holds the debug logger shared by all testaudit packages.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// Logger is the shared sugared logger. It discards everything until InitLogger is called.
var Logger = zap.NewNop().Sugar()

// InitLogger configures Logger for console output. Debug mode logs everything,
// otherwise only warnings and errors are written.
func InitLogger(debug bool) error {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"
	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	Logger = logger.Sugar()
	return nil
}

// Sync flushes buffered log entries.
func Sync() {
	_ = Logger.Sync()
}
