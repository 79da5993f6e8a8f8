// Package logging monta o *slog.Logger do processo a partir da configuração.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// New cria um logger com nível ("debug", "info", "warn", "error") e formato
// ("text" ou "json"). Vazio usa info/text.
func New(w io.Writer, level, format string) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{}

	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		opts.Level = slog.LevelDebug
	case "info", "":
		opts.Level = slog.LevelInfo
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	var h slog.Handler
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "text", "":
		h = slog.NewTextHandler(w, opts)
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("log format '%s' is not supported", format)
	}
	return slog.New(h), nil
}
