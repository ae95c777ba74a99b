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

package fixtures

import (
	"fmt"
	"time"

	"github.com/ZaparooProject/lyricbot/pkg/lyrics/corpus"
	"github.com/ZaparooProject/lyricbot/pkg/thread"
)

// Common test lyric and thread fixtures for use in tests

// SongDef is a song as it appears on disk before flags are resolved.
type SongDef struct {
	ID    string
	Name  string
	Lines []string
}

// SoundOfSilence is a short song with a continuation line.
func SoundOfSilence() SongDef {
	return SongDef{
		ID:   "sound",
		Name: "The Sound of Silence",
		Lines: []string{
			"Hello darkness",
			"my old friend",
			"I've come to talk ->",
			"with you again",
			"Because a vision",
		},
	}
}

// Bruno is a song that opens with an ignored line.
func Bruno() SongDef {
	return SongDef{
		ID:   "bruno",
		Name: "We Don't Talk About Bruno",
		Lines: []string{
			"^We don't talk about Bruno, no, no, no",
			"We don't talk about Bruno",
			"But",
			"It was my wedding day",
		},
	}
}

// Song builds the corpus song without substitutions.
func (s SongDef) Song() (*corpus.Song, error) {
	song, err := corpus.NewSong(s.ID, s.Name, "", s.Lines, nil)
	if err != nil {
		return nil, fmt.Errorf("fixture song %s: %w", s.ID, err)
	}
	return song, nil
}

// Corpus builds a corpus from defs in order.
func Corpus(defs ...SongDef) (*corpus.Corpus, error) {
	songs := make([]*corpus.Song, 0, len(defs))
	for _, s := range defs {
		song, err := s.Song()
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	c, err := corpus.New(songs...)
	if err != nil {
		return nil, fmt.Errorf("fixture corpus: %w", err)
	}
	return c, nil
}

// BaseTime is the fixed "now" fixture threads are dated against.
var BaseTime = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

// Post is one comment in a linear fixture chain.
type Post struct {
	Author string
	Body   string
}

// Chain builds a linear reply chain, root first, with ids "<prefix>0",
// "<prefix>1", ... one minute apart and ending at BaseTime.
func Chain(prefix string, posts ...Post) []*thread.Comment {
	comments := make([]*thread.Comment, len(posts))
	for i, p := range posts {
		c := &thread.Comment{
			ID:      fmt.Sprintf("%s%d", prefix, i),
			Author:  p.Author,
			Body:    p.Body,
			Created: BaseTime.Add(-time.Duration(len(posts)-1-i) * time.Minute),
		}
		if i > 0 {
			c.ParentID = comments[i-1].ID
		}
		comments[i] = c
	}
	return comments
}
