package internal

import (
	"context"

	"golang.org/x/exp/slog"
)

var nop (slog.Handler) = nopHandler{}

// NopLogger returns a logger that drops every record. Components fall back to
// it when no handler was configured.
func NopLogger() *slog.Logger {
	return slog.New(nop)
}

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (nopHandler) Handle(context.Context, slog.Record) error { return nil }

func (nopHandler) WithAttrs([]slog.Attr) slog.Handler { return nop }

func (nopHandler) WithGroup(string) slog.Handler { return nop }
