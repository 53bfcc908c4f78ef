/*
 * MIT License
 *
 * Copyright (c) 2022-2025 Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZapLogger(t *testing.T) {
	t.Run("With a fake level falls back to debug", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(7, buffer)
		require.Equal(t, DebugLevel, logger.LogLevel())

		logger.Debug("test debug")
		flushLogger(t, logger)

		msg, err := extractField(buffer.Bytes(), "msg")
		require.NoError(t, err)
		require.Equal(t, "test debug", msg)

		lvl, err := extractField(buffer.Bytes(), "level")
		require.NoError(t, err)
		require.Equal(t, DebugLevel.String(), lvl)
	})
	t.Run("With info level filters debug entries", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.Debugf("hidden %d", 1)
		flushLogger(t, logger)
		require.Empty(t, buffer.Bytes())

		assert.False(t, logger.Enabled(DebugLevel))
		assert.True(t, logger.Enabled(ErrorLevel))

		logger.Warnf("user=%s", "u1")
		flushLogger(t, logger)
		lvl, err := extractField(buffer.Bytes(), "level")
		require.NoError(t, err)
		require.Equal(t, "warn", lvl)
	})
	t.Run("With adds structured fields", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With("actor", "contacts-u1", "processed", 3, "dangling").Info("started")
		flushLogger(t, logger)

		var m map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(buffer.Bytes(), &m))
		require.Contains(t, m, "actor")
		require.Contains(t, m, "processed")
		require.Contains(t, m, "_")
	})
	t.Run("With without fields returns the same logger", func(t *testing.T) {
		logger := NewZap(InfoLevel, new(bytes.Buffer))
		assert.Same(t, logger, logger.With())
		assert.Same(t, logger, logger.With(1, "non-string key"))
	})
	t.Run("With error field", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With("cause", errors.New("boom")).Info("failed")
		flushLogger(t, logger)

		cause, err := extractField(buffer.Bytes(), "cause")
		require.NoError(t, err)
		require.Equal(t, "boom", cause)
	})
	t.Run("Flush syncs file outputs", func(t *testing.T) {
		file, err := os.Create(filepath.Join(t.TempDir(), "contacts.log"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = file.Close() })

		logger := NewZap(InfoLevel, file, os.Stdout)
		logger.Info("to file")
		require.NoError(t, logger.Flush())
		require.Len(t, logger.LogOutput(), 2)
		require.NotNil(t, logger.StdLogger())
	})
}

func TestDiscardLogger(t *testing.T) {
	logger := DiscardLogger
	logger.Info("nothing")
	logger.Errorf("nothing %d", 1)
	assert.Equal(t, InfoLevel, logger.LogLevel())
	assert.False(t, logger.Enabled(InfoLevel))
	assert.True(t, logger.Enabled(PanicLevel))
	assert.Equal(t, DiscardLogger, logger.With("key", "value"))
	assert.NoError(t, logger.Flush())
	assert.Panics(t, func() { logger.Panic("boom") })
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		text     string
		expected Level
	}{
		{"debug", DebugLevel},
		{"INFO", InfoLevel},
		{"", InfoLevel},
		{"warn", WarningLevel},
		{"warning", WarningLevel},
		{" error ", ErrorLevel},
		{"fatal", FatalLevel},
		{"panic", PanicLevel},
	}
	for _, tc := range testCases {
		level, err := ParseLevel(tc.text)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, level)
	}

	level, err := ParseLevel("verbose")
	require.Error(t, err)
	assert.Equal(t, InvalidLevel, level)
	assert.Equal(t, "invalid", level.String())
}

func flushLogger(t *testing.T, logger *Zap) {
	t.Helper()
	require.NoError(t, logger.logger.Sync())
}

func extractField(bytes []byte, field string) (string, error) {
	c := make(map[string]json.RawMessage)
	if err := json.Unmarshal(bytes, &c); err != nil {
		return "", err
	}
	if v, ok := c[field]; ok {
		return strconv.Unquote(string(v))
	}
	return "", nil
}
