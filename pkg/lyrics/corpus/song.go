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

// Package corpus holds the per-song lyric data the resolution engine matches
// comments against: original lines as authored, their normalized forms and
// the ignore/continuation flags resolved from the lyric files.
package corpus

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ZaparooProject/lyricbot/pkg/lyrics/normalize"
)

const (
	// IgnoreFlag marks a line that may be matched mid-chain but never starts one.
	IgnoreFlag = "^"
	// ContinuationFlag marks a line whose reply is merged with the next line.
	ContinuationFlag = "->"
)

var (
	ErrEmptySong     = errors.New("song has no lyric lines")
	ErrInvalidSongID = errors.New("song id must only contain letters, digits and underscores")
	ErrDuplicateSong = errors.New("duplicate song id")
	ErrMissingCorpus = errors.New("no lyrics found for song")
)

// songIDRegex matches what the annotation parser accepts as a song name.
var songIDRegex = regexp.MustCompile(`^\w+$`)

// Song is an immutable, line-ordered lyric corpus.
type Song struct {
	ignored    map[int]struct{}
	continued  map[int]struct{}
	ID         string
	Name       string
	URL        string
	Original   []string
	Normalized []string
}

// ParsedLines is the result of resolving line flags from raw lyric lines.
type ParsedLines struct {
	Lines     []string
	Ignored   []int
	Continued []int
}

// ParseLines strips the ignore and continuation flags from raw lines and
// records which indexes carried them. A line may carry both.
func ParseLines(raw []string) ParsedLines {
	parsed := ParsedLines{Lines: make([]string, 0, len(raw))}
	for i, line := range raw {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, IgnoreFlag) {
			parsed.Ignored = append(parsed.Ignored, i)
			line = strings.TrimSpace(strings.TrimPrefix(line, IgnoreFlag))
		}
		if strings.HasSuffix(line, ContinuationFlag) {
			parsed.Continued = append(parsed.Continued, i)
			line = strings.TrimSpace(strings.TrimSuffix(line, ContinuationFlag))
		}
		parsed.Lines = append(parsed.Lines, line)
	}
	return parsed
}

// NewSong builds a Song from raw lyric lines, resolving flags and normalizing
// every line with subs.
func NewSong(id, name, url string, raw []string, subs *normalize.Substitutions) (*Song, error) {
	if !songIDRegex.MatchString(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSongID, id)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySong, id)
	}

	parsed := ParseLines(raw)
	song := &Song{
		ID:         id,
		Name:       name,
		URL:        url,
		Original:   parsed.Lines,
		Normalized: make([]string, len(parsed.Lines)),
		ignored:    make(map[int]struct{}, len(parsed.Ignored)),
		continued:  make(map[int]struct{}, len(parsed.Continued)),
	}
	for i, line := range parsed.Lines {
		song.Normalized[i] = normalize.Normalize(line, subs)
	}
	for _, i := range parsed.Ignored {
		song.ignored[i] = struct{}{}
	}
	for _, i := range parsed.Continued {
		song.continued[i] = struct{}{}
	}
	if song.Name == "" {
		song.Name = id
	}
	return song, nil
}

// Len returns the number of lines in the song.
func (s *Song) Len() int {
	return len(s.Normalized)
}

// LastIndex returns the index of the final line.
func (s *Song) LastIndex() int {
	return len(s.Normalized) - 1
}

// IsIgnored reports whether line i must never start a new chain.
func (s *Song) IsIgnored(i int) bool {
	_, ok := s.ignored[i]
	return ok
}

// IsContinuation reports whether line i is merged with the following line.
func (s *Song) IsContinuation(i int) bool {
	_, ok := s.continued[i]
	return ok
}

// Corpus is the ordered set of songs loaded for a run. Order matters: it is
// the song-major order candidates are produced in, which is also the order
// ties between songs are broken by.
type Corpus struct {
	byID  map[string]*Song
	songs []*Song
}

// New builds a Corpus from songs in the given order.
func New(songs ...*Song) (*Corpus, error) {
	c := &Corpus{
		byID:  make(map[string]*Song, len(songs)),
		songs: make([]*Song, 0, len(songs)),
	}
	for _, s := range songs {
		if _, ok := c.byID[s.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSong, s.ID)
		}
		c.byID[s.ID] = s
		c.songs = append(c.songs, s)
	}
	return c, nil
}

// Songs returns the songs in corpus order.
func (c *Corpus) Songs() []*Song {
	return c.songs
}

// Song looks up a song by id.
func (c *Corpus) Song(id string) (*Song, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// Require returns ErrMissingCorpus for the first id with no loaded song.
func (c *Corpus) Require(ids ...string) error {
	for _, id := range ids {
		if _, ok := c.byID[id]; !ok {
			return fmt.Errorf("%w: %q", ErrMissingCorpus, id)
		}
	}
	return nil
}
