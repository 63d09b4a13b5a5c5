package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger whose output goes nowhere, keeping test
// runs quiet
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
