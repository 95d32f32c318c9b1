// Package logging builds the zap loggers used by the CLI and the HTTP server.
package logging

import (
	"io"
	"os"

	"github.com/climatelens/risk-analytics/internal/calculation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON logger writing to w at the given level. Unknown levels
// fall back to info. A nil writer means stdout.
func New(level string, w io.Writer) *zap.Logger {
	if w == nil {
		w = os.Stdout
	}
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(w),
		lvl,
	)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// EngineLogger adapts a zap logger to the engine's printf-style interface
func EngineLogger(l *zap.Logger) calculation.Logger {
	if l == nil {
		return calculation.NopLogger{}
	}
	return l.Sugar()
}
