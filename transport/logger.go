// SPDX-License-Identifier: MIT

package transport

import (
	"context"
	"log/slog"
)

// LevelTrace is more verbose than Debug; the solver uses it for per-cell
// and per-pass records. Enable with &slog.HandlerOptions{Level: LevelTrace}.
const LevelTrace = slog.Level(-8)

// logger wraps an optional *slog.Logger. The zero value discards everything
// and every call is guarded by Enabled, so a nil logger costs a branch.
type logger struct {
	l   *slog.Logger
	ctx context.Context
}

func newLogger(ctx context.Context, l *slog.Logger, runID string) logger {
	if l != nil {
		l = l.With(slog.String("component", "transport"), slog.String("run", runID))
	}

	return logger{l: l, ctx: ctx}
}

func (lg logger) enabled(level slog.Level) bool {
	return lg.l != nil && lg.l.Enabled(lg.ctx, level)
}

func (lg logger) log(level slog.Level, msg string, attrs ...slog.Attr) {
	if lg.enabled(level) {
		lg.l.LogAttrs(lg.ctx, level, msg, attrs...)
	}
}

func (lg logger) debug(msg string, attrs ...slog.Attr) { lg.log(slog.LevelDebug, msg, attrs...) }
func (lg logger) info(msg string, attrs ...slog.Attr)  { lg.log(slog.LevelInfo, msg, attrs...) }
func (lg logger) trace(msg string, attrs ...slog.Attr) { lg.log(LevelTrace, msg, attrs...) }
func (lg logger) warn(msg string, attrs ...slog.Attr)  { lg.log(slog.LevelWarn, msg, attrs...) }

func cellAttr(key string, c Cell) slog.Attr {
	return slog.Group(key, slog.Int("row", c.Row), slog.Int("col", c.Col))
}
