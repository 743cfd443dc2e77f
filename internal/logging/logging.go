// Package logging provides file-backed zap logging for CareerSpark.
// The interactive TUI owns the terminal, so logs never go to stdout:
// they are written to <config dir>/logs/spark.log. CLI subcommands use
// a plain production logger instead (see cmd/spark/main.go).
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewFileLogger creates a logger writing JSON lines to dir/logs/spark.log.
// With verbose=false only warnings and errors are recorded, so a normal
// session leaves the log quiet.
func NewFileLogger(dir string, verbose bool) (*zap.Logger, error) {
	logsDir := filepath.Join(dir, "logs")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(logsDir, "spark.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(f), level)

	return zap.New(core), nil
}
