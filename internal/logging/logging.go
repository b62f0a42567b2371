// Package logging builds the slog loggers used across fluid.
//
// Warnings and errors always reach the writer. Debug diagnostics are off
// unless --debug or FLUID_DEBUG asks for them.
package logging

import (
	"context"
	"io"
	"log/slog"
)

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// Nop returns a logger that discards everything.
func Nop() *slog.Logger { return slog.New(nopHandler{}) }

// New returns a text logger writing to w at debug level when debug is set,
// and at warn level otherwise. A nil w yields Nop.
func New(w io.Writer, debug bool) *slog.Logger {
	if w == nil {
		return Nop()
	}
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// OrNop returns l, or Nop when l is nil.
func OrNop(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Nop()
	}
	return l
}
