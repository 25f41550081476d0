// internal/logging/logger.go
// Package logging builds the zap logger shared by the fauxchat commands.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fauxchat/fauxchat-cli/internal/platform"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLogDir returns ~/.fauxchat/logs
func DefaultLogDir() string {
	return filepath.Join(platform.ConfigDir(), "logs")
}

// New returns a production logger writing to stderr. With debug set
// the level drops to debug and, when logDir is non-empty, entries are also
// appended to logDir/debug.log.
func New(debug bool, logDir string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = true

	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		if logDir != "" {
			if err := os.MkdirAll(logDir, 0755); err == nil {
				config.OutputPaths = append(config.OutputPaths, filepath.Join(logDir, "debug.log"))
			}
		}
	} else {
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
