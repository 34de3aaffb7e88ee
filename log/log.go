// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log provides structured logging for the staking engine,
// a thin layer over log/slog with a process-wide root logger.
package log

import (
	"log/slog"
	"os"
	"sync/atomic"
)

// Logger is the logging handle used across packages.
type Logger = *slog.Logger

// Level aliases for config and the admin surface.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var (
	rootLevel = new(slog.LevelVar)
	root      atomic.Pointer[slog.Logger]
)

func init() {
	rootLevel.Set(LevelInfo)
	root.Store(slog.New(NewTerminalHandler(os.Stderr, rootLevel, false)))
}

// Root returns the process root logger.
func Root() Logger {
	return root.Load()
}

// SetRoot replaces the process root logger.
// Loggers previously derived via WithContext keep their old handler.
func SetRoot(l Logger) {
	root.Store(l)
}

// RootLevel returns the dynamic level of the default root handler.
func RootLevel() *slog.LevelVar {
	return rootLevel
}

// WithContext derives a logger carrying the given key/value context.
func WithContext(kv ...any) Logger {
	return Root().With(kv...)
}

// ParseLevel maps a config string onto a slog level.
func ParseLevel(s string) (slog.Level, bool) {
	switch s {
	case "debug":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warn":
		return LevelWarn, true
	case "error":
		return LevelError, true
	}
	return LevelInfo, false
}
