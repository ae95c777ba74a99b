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

// Package matcher decides whether normalized comment text can stand for one
// or more consecutive lyric lines, and finds every position in a corpus a
// comment could represent.
package matcher

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ZaparooProject/lyricbot/pkg/lyrics/corpus"
	"github.com/ZaparooProject/lyricbot/pkg/lyrics/normalize"
)

var ErrIndexOutOfRange = errors.New("line index out of range")

// Candidate is a position a comment plausibly represents.
type Candidate struct {
	SongID string
	Index  int
}

// MatchCount returns how many consecutive lines, ending at index and going
// backward, are fully accounted for at the tail of text. text must already be
// normalized. Each line is peeled off the end of text in turn until a line
// fails to match, text runs out or the start of the song is passed.
func MatchCount(lines []string, index int, text string) (int, error) {
	if index < 0 || index >= len(lines) {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(lines))
	}
	return matchCount(lines, index, text), nil
}

func matchCount(lines []string, index int, text string) int {
	count := 0
	for index >= 0 && text != "" {
		line := lines[index]
		if line == "" {
			break
		}
		loc := tailPatterns.tail(line).FindStringIndex(text)
		if loc == nil {
			break
		}
		text = strings.TrimSpace(text[:loc[0]])
		count++
		index--
	}
	return count
}

// IsCloseMatch reports whether text is exactly the span of lines that
// MatchCount consumed. A tail-only alignment with leftover prefix text is
// rejected.
func IsCloseMatch(lines []string, index int, text string) (bool, error) {
	n, err := MatchCount(lines, index, text)
	if err != nil {
		return false, err
	}
	return isSpan(lines, index, n, text), nil
}

func isSpan(lines []string, index, n int, text string) bool {
	if n == 0 {
		return false
	}
	return text == strings.Join(lines[index-n+1:index+1], " ")
}

// FindCandidates normalizes rawText once and returns every (song, index) it
// closely matches, in corpus order then index order.
func FindCandidates(c *corpus.Corpus, rawText string, subs *normalize.Substitutions) []Candidate {
	text := normalize.Normalize(rawText, subs)
	var candidates []Candidate
	for _, song := range c.Songs() {
		candidates = appendSongCandidates(candidates, song, text)
	}
	return candidates
}

// FindSongCandidates is FindCandidates restricted to a single song.
func FindSongCandidates(song *corpus.Song, rawText string, subs *normalize.Substitutions) []Candidate {
	return appendSongCandidates(nil, song, normalize.Normalize(rawText, subs))
}

func appendSongCandidates(candidates []Candidate, song *corpus.Song, text string) []Candidate {
	if text == "" {
		return candidates
	}
	for i := range song.Normalized {
		n := matchCount(song.Normalized, i, text)
		if isSpan(song.Normalized, i, n, text) {
			candidates = append(candidates, Candidate{SongID: song.ID, Index: i})
		}
	}
	return candidates
}
