// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

const timeFormat = "2006-01-02T15:04:05.000"

// TerminalHandler renders records as single-line "t=... lvl=... msg=... k=v"
// text, optionally colorizing the level for interactive terminals.
type TerminalHandler struct {
	mu       sync.Mutex
	wr       io.Writer
	lvl      *slog.LevelVar
	useColor bool
	attrs    []slog.Attr
}

// NewTerminalHandler creates a terminal handler writing to wr.
func NewTerminalHandler(wr io.Writer, lvl *slog.LevelVar, useColor bool) *TerminalHandler {
	return &TerminalHandler{
		wr:       wr,
		lvl:      lvl,
		useColor: useColor,
	}
}

// Enabled implements slog.Handler.
func (h *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.lvl.Level()
}

// Handle implements slog.Handler.
func (h *TerminalHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString("t=")
	sb.WriteString(r.Time.Format(timeFormat))
	sb.WriteString(" lvl=")
	sb.WriteString(h.levelString(r.Level))
	sb.WriteString(" msg=")
	sb.WriteString(strconv.Quote(r.Message))

	writeAttr := func(a slog.Attr) bool {
		sb.WriteByte(' ')
		sb.WriteString(a.Key)
		sb.WriteByte('=')
		sb.WriteString(formatValue(a.Value))
		return true
	}
	for _, a := range h.attrs {
		writeAttr(a)
	}
	r.Attrs(writeAttr)
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.wr, sb.String())
	return err
}

// WithAttrs implements slog.Handler.
func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TerminalHandler{
		wr:       h.wr,
		lvl:      h.lvl,
		useColor: h.useColor,
		attrs:    append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

// WithGroup implements slog.Handler.
func (h *TerminalHandler) WithGroup(_ string) slog.Handler {
	panic("not implemented")
}

func (h *TerminalHandler) levelString(level slog.Level) string {
	text := strings.ToLower(level.String())
	if !h.useColor {
		return text
	}
	var color string
	switch {
	case level >= slog.LevelError:
		color = "\x1b[31m" // red
	case level >= slog.LevelWarn:
		color = "\x1b[33m" // yellow
	case level >= slog.LevelInfo:
		color = "\x1b[32m" // green
	default:
		color = "\x1b[36m" // cyan
	}
	return color + text + "\x1b[0m"
}

func formatValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return strconv.Quote(v.String())
	case slog.KindTime:
		return v.Time().Format(timeFormat)
	case slog.KindDuration:
		return v.Duration().String()
	default:
		resolved := v.Resolve().Any()
		switch rv := resolved.(type) {
		case fmt.Stringer:
			return rv.String()
		case time.Time:
			return rv.Format(timeFormat)
		default:
			return fmt.Sprintf("%v", resolved)
		}
	}
}
