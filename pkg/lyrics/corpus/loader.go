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

package corpus

import (
	"bufio"
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZaparooProject/lyricbot/pkg/lyrics/normalize"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	ManifestFile = "songs.toml"
	OriginalDir  = "original"
	ListDir      = "list"
	commentStart = "#"
)

// Manifest lists the songs available to the bot, in corpus order.
type Manifest struct {
	Songs []ManifestSong `toml:"songs"`
}

// ManifestSong describes one song. File defaults to "<id>.txt" inside the
// original lyrics directory.
type ManifestSong struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
	URL  string `toml:"url,omitempty"`
	File string `toml:"file,omitempty"`
}

// Load reads the manifest and every lyric file below dir and returns the
// corpus. A manifest entry without a lyric file is a fatal configuration
// error and returns ErrMissingCorpus.
func Load(fs afero.Fs, dir string, subs *normalize.Substitutions) (*Corpus, error) {
	manifestPath := filepath.Join(dir, ManifestFile)
	data, err := afero.ReadFile(fs, manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read song manifest: %w", err)
	}

	var manifest Manifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to unmarshal song manifest: %w", err)
	}

	songs := make([]*Song, 0, len(manifest.Songs))
	for _, entry := range manifest.Songs {
		file := entry.File
		if file == "" {
			file = entry.ID + ".txt"
		}
		path := filepath.Join(dir, OriginalDir, file)

		exists, err := afero.Exists(fs, path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat lyrics file: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf(
				"%w: %q (add the lyrics to %s)",
				ErrMissingCorpus, entry.ID, path,
			)
		}

		lines, err := readLyricLines(fs, path)
		if err != nil {
			return nil, err
		}

		song, err := NewSong(entry.ID, entry.Name, entry.URL, lines, subs)
		if err != nil {
			return nil, err
		}
		log.Debug().
			Str("song", song.ID).
			Int("lines", song.Len()).
			Msg("loaded lyrics")
		songs = append(songs, song)
	}

	return New(songs...)
}

// readLyricLines returns the trimmed, non-empty lines of a lyric file,
// skipping '#' comment lines.
func readLyricLines(fs afero.Fs, path string) ([]string, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lyrics file: %w", err)
	}

	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, commentStart) {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan lyrics file: %w", err)
	}
	return lines, nil
}
