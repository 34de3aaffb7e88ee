// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminalHandler(t *testing.T) {
	var sb strings.Builder
	lvl := new(slog.LevelVar)
	lvl.Set(LevelInfo)

	logger := slog.New(NewTerminalHandler(&sb, lvl, false))
	logger.Info("stake accepted", "amount", 100, "user", "0xabc")
	logger.Debug("ignored at info level")

	out := sb.String()
	assert.Contains(t, out, `msg="stake accepted"`)
	assert.Contains(t, out, "amount=100")
	assert.Contains(t, out, `user="0xabc"`)
	assert.NotContains(t, out, "ignored")

	lvl.Set(LevelDebug)
	logger.Debug("now visible")
	assert.Contains(t, sb.String(), `msg="now visible"`)
}

func TestWithContext(t *testing.T) {
	var sb strings.Builder
	lvl := new(slog.LevelVar)
	old := Root()
	defer SetRoot(old)

	SetRoot(slog.New(NewTerminalHandler(&sb, lvl, false)))
	logger := WithContext("pkg", "pool")
	logger.Info("hello")

	assert.Contains(t, sb.String(), `pkg="pool"`)
}

func TestParseLevel(t *testing.T) {
	for s, want := range map[string]slog.Level{
		"debug": LevelDebug,
		"info":  LevelInfo,
		"warn":  LevelWarn,
		"error": LevelError,
	} {
		got, ok := ParseLevel(s)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := ParseLevel("bogus")
	assert.False(t, ok)
}
