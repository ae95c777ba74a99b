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
	"bytes"
	"path/filepath"
	"testing"

	"github.com/ZaparooProject/lyricbot/pkg/lyrics/normalize"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLines(t *testing.T) {
	t.Parallel()

	parsed := ParseLines([]string{
		"^Hello",
		"my old ->",
		"friend->",
		"^ both flags -> ",
		"plain",
	})

	assert.Equal(t, []string{"Hello", "my old", "friend", "both flags", "plain"}, parsed.Lines)
	assert.Equal(t, []int{0, 3}, parsed.Ignored)
	assert.Equal(t, []int{1, 2, 3}, parsed.Continued)
}

func TestNewSong(t *testing.T) {
	t.Parallel()

	song, err := NewSong("bruno", "We Don't Talk About Bruno", "", []string{
		"^We don't talk about Bruno, no, no, no",
		"We don't talk about Bruno ->",
		"But",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, song.Len())
	assert.Equal(t, 2, song.LastIndex())
	assert.Len(t, song.Original, len(song.Normalized))
	assert.Equal(t, "We don't talk about Bruno, no, no, no", song.Original[0])
	assert.Equal(t, "we dont talk about bruno no no no", song.Normalized[0])
	assert.Equal(t, "we dont talk about bruno", song.Normalized[1])
	assert.True(t, song.IsIgnored(0))
	assert.False(t, song.IsIgnored(1))
	assert.True(t, song.IsContinuation(1))
	assert.False(t, song.IsContinuation(2))
}

func TestNewSong_DefaultsNameToID(t *testing.T) {
	t.Parallel()

	song, err := NewSong("surface", "", "", []string{"a"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "surface", song.Name)
}

func TestNewSong_UsesSubstitutions(t *testing.T) {
	t.Parallel()

	subs, err := normalize.NewSubstitutions([]normalize.Pair{{Word: "gonna", Replacement: "going to"}})
	require.NoError(t, err)

	song, err := NewSong("s", "", "", []string{"I'm gonna go"}, subs)
	require.NoError(t, err)
	assert.Equal(t, "im going to go", song.Normalized[0])
}

func TestNewSong_Errors(t *testing.T) {
	t.Parallel()

	_, err := NewSong("bad id", "", "", []string{"a"}, nil)
	require.ErrorIs(t, err, ErrInvalidSongID)

	_, err = NewSong("empty", "", "", nil, nil)
	require.ErrorIs(t, err, ErrEmptySong)
}

func TestCorpus(t *testing.T) {
	t.Parallel()

	a, err := NewSong("a", "", "", []string{"one"}, nil)
	require.NoError(t, err)
	b, err := NewSong("b", "", "", []string{"two"}, nil)
	require.NoError(t, err)

	c, err := New(b, a)
	require.NoError(t, err)

	require.Len(t, c.Songs(), 2)
	assert.Equal(t, "b", c.Songs()[0].ID, "corpus keeps the given order")

	got, ok := c.Song("a")
	require.True(t, ok)
	assert.Same(t, a, got)

	require.NoError(t, c.Require("a", "b"))
	require.ErrorIs(t, c.Require("a", "missing"), ErrMissingCorpus)

	_, err = New(a, a)
	require.ErrorIs(t, err, ErrDuplicateSong)
}

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o600))
}

func TestLoad(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/lyrics/songs.toml", `
[[songs]]
id = "bruno"
name = "We Don't Talk About Bruno"
url = "https://example.com/bruno"

[[songs]]
id = "surface"
name = "Surface Pressure"
file = "surface_pressure.txt"
`)
	writeFile(t, fs, "/lyrics/original/bruno.txt", `# comment line
^We don't talk about Bruno, no, no, no

We don't talk about Bruno ->
But
`)
	writeFile(t, fs, "/lyrics/original/surface_pressure.txt", "I'm the strong one\nI'm not nervous\n")

	c, err := Load(fs, "/lyrics", nil)
	require.NoError(t, err)
	require.Len(t, c.Songs(), 2)

	bruno, ok := c.Song("bruno")
	require.True(t, ok)
	assert.Equal(t, "We Don't Talk About Bruno", bruno.Name)
	assert.Equal(t, "https://example.com/bruno", bruno.URL)
	assert.Equal(t, 3, bruno.Len(), "comments and blank lines are skipped")
	assert.True(t, bruno.IsIgnored(0))
	assert.True(t, bruno.IsContinuation(1))

	surface, ok := c.Song("surface")
	require.True(t, ok)
	assert.Equal(t, []string{"im the strong one", "im not nervous"}, surface.Normalized)
}

func TestLoad_MissingCorpus(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/lyrics/songs.toml", "[[songs]]\nid = \"ghost\"\n")

	_, err := Load(fs, "/lyrics", nil)
	require.ErrorIs(t, err, ErrMissingCorpus)
}

func TestLoad_MissingManifest(t *testing.T) {
	t.Parallel()

	_, err := Load(afero.NewMemMapFs(), "/lyrics", nil)
	require.Error(t, err)
}

func TestWriteList(t *testing.T) {
	t.Parallel()

	song, err := NewSong("s", "", "", []string{"^Hello", "my old ->", "friend"}, nil)
	require.NoError(t, err)

	var text bytes.Buffer
	require.NoError(t, WriteList(&text, song, ListFormatText))
	assert.Equal(t, "1. Hello\n2. my old\n3. friend\n", text.String())

	var csv bytes.Buffer
	require.NoError(t, WriteList(&csv, song, ListFormatCSV))
	assert.Equal(t,
		"position,line,ignored,continuation\n"+
			"1,Hello,true,false\n"+
			"2,my old,false,true\n"+
			"3,friend,false,false\n",
		csv.String())

	require.ErrorIs(t, WriteList(&text, song, "xml"), ErrUnknownListFormat)
}

func TestExportLists(t *testing.T) {
	t.Parallel()

	song, err := NewSong("s", "", "", []string{"one", "two"}, nil)
	require.NoError(t, err)
	c, err := New(song)
	require.NoError(t, err)

	fs := afero.NewMemMapFs()
	paths, err := ExportLists(fs, "/lyrics", c, ListFormatText)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join("/lyrics", ListDir, "s.txt")}, paths)

	data, err := afero.ReadFile(fs, paths[0])
	require.NoError(t, err)
	assert.Equal(t, "1. one\n2. two\n", string(data))
}
