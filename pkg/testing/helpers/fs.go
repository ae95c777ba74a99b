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
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZaparooProject/lyricbot/pkg/lyrics/corpus"
	"github.com/ZaparooProject/lyricbot/pkg/testing/fixtures"
	"github.com/ZaparooProject/lyricbot/pkg/thread"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// FSHelper provides utilities for filesystem mocking in tests
type FSHelper struct {
	Fs afero.Fs
}

// NewMemoryFS creates a new in-memory filesystem for testing
func NewMemoryFS() *FSHelper {
	return &FSHelper{
		Fs: afero.NewMemMapFs(),
	}
}

// WriteFile writes content to path, creating parent directories.
func (h *FSHelper) WriteFile(path, content string) error {
	if err := h.Fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create directory for file %s: %w", path, err)
	}
	if err := afero.WriteFile(h.Fs, path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}

// CreateConfigFile writes cfg as TOML to path.
func (h *FSHelper) CreateConfigFile(path string, cfg map[string]any) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return h.WriteFile(path, string(data))
}

// CreateSongs writes a song manifest and one original lyric file per definition
// below lyricsDir, replacing any existing manifest.
func (h *FSHelper) CreateSongs(lyricsDir string, defs ...fixtures.SongDef) error {
	manifest := corpus.Manifest{Songs: make([]corpus.ManifestSong, 0, len(defs))}
	for _, s := range defs {
		manifest.Songs = append(manifest.Songs, corpus.ManifestSong{ID: s.ID, Name: s.Name})

		path := filepath.Join(lyricsDir, corpus.OriginalDir, s.ID+".txt")
		if err := h.WriteFile(path, strings.Join(s.Lines, "\n")+"\n"); err != nil {
			return err
		}
	}

	data, err := toml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("failed to marshal song manifest: %w", err)
	}
	return h.WriteFile(filepath.Join(lyricsDir, corpus.ManifestFile), string(data))
}

// CreateThreadFixture writes comments as a YAML thread fixture.
func (h *FSHelper) CreateThreadFixture(path string, comments []*thread.Comment) error {
	data, err := yaml.Marshal(thread.Fixture{Comments: comments})
	if err != nil {
		return fmt.Errorf("failed to marshal thread fixture: %w", err)
	}
	return h.WriteFile(path, string(data))
}

// FileExists reports whether path exists, treating stat errors as absent.
func (h *FSHelper) FileExists(path string) bool {
	exists, err := afero.Exists(h.Fs, path)
	if err != nil {
		return false
	}
	return exists
}
