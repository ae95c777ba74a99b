// Zaparoo LyricBot
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo LyricBot.
//
// Zaparoo LyricBot is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo LyricBot is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo LyricBot.  If not, see <http://www.gnu.org/licenses/>.

package helpers

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/ZaparooProject/lyricbot/pkg/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirectories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		setupDirs bool
	}{
		{name: "creates directory", setupDirs: false},
		{name: "works when directory already exists", setupDirs: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logDir := filepath.Join(t.TempDir(), "logs", "nested")
			if tt.setupDirs {
				require.NoError(t, os.MkdirAll(logDir, 0o750))
			}

			require.NoError(t, EnsureDirectories(logDir))

			info, err := os.Stat(logDir)
			require.NoError(t, err)
			assert.True(t, info.IsDir())
			if runtime.GOOS != "windows" {
				assert.Equal(t, os.FileMode(0o750), info.Mode().Perm())
			}
		})
	}
}

func TestEnsureDirectories_InvalidPath(t *testing.T) {
	t.Parallel()

	err := EnsureDirectories("/proc/invalid\x00path")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create log directory")
}

func TestInitLogging(t *testing.T) {
	// Note: Cannot use t.Parallel() because InitLogging modifies global log.Logger
	prevLogger := log.Logger
	prevWriter := LogWriter()
	t.Cleanup(func() {
		log.Logger = prevLogger
		logWriterMu.Lock()
		logWriter = prevWriter
		logWriterMu.Unlock()
	})

	logDir := filepath.Join(t.TempDir(), "logs")
	var buf bytes.Buffer

	require.NoError(t, InitLogging(logDir, []io.Writer{&buf}))
	assert.NotEqual(t, prevWriter, LogWriter())

	log.Info().Str("song", "sound").Msg("hello from test")
	assert.Contains(t, buf.String(), `"song":"sound"`)
	assert.Contains(t, buf.String(), "hello from test")

	data, err := os.ReadFile(filepath.Join(logDir, config.LogFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")

	assert.NotNil(t, zerolog.ErrorStackMarshaler)
}
