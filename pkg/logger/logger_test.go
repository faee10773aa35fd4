package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug": zap.DebugLevel,
		"INFO":  zap.InfoLevel,
		"warn":  zap.WarnLevel,
		"error": zap.ErrorLevel,
		"":      zap.InfoLevel,
		"loud":  zap.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"production", "development"} {
		logger, err := NewLogger(Options{Environment: env, Level: "debug", Name: "mealmatch", Version: "test"})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", env, err)
		}
		if !logger.Core().Enabled(zap.DebugLevel) {
			t.Errorf("%s: debug level should be enabled", env)
		}
	}
}
