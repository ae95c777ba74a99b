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

// Package chain measures how far a reply chain has already advanced through a
// song by walking upward from a comment.
package chain

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/ZaparooProject/lyricbot/pkg/lyrics/annotation"
	"github.com/ZaparooProject/lyricbot/pkg/lyrics/corpus"
	"github.com/ZaparooProject/lyricbot/pkg/lyrics/matcher"
	"github.com/ZaparooProject/lyricbot/pkg/lyrics/normalize"
	"github.com/ZaparooProject/lyricbot/pkg/thread"
	"github.com/rs/zerolog/log"
)

var ErrMissingAuthor = errors.New("comment has no author")

// Extent is the number of consecutive lines a chain is judged to cover,
// walking backward from a position. A definitive extent comes from one of the
// bot's own annotated replies and outranks any finite extent.
type Extent struct {
	Lines      int
	Definitive bool
}

// Definitive is the extent proven by a matching bot annotation.
var Definitive = Extent{Definitive: true}

// Lines returns a finite extent.
func Lines(n int) Extent {
	return Extent{Lines: n}
}

// Compare returns -1, 0 or 1 as e is less than, equal to or greater than o.
func (e Extent) Compare(o Extent) int {
	switch {
	case e.Definitive && o.Definitive:
		return 0
	case e.Definitive:
		return 1
	case o.Definitive:
		return -1
	case e.Lines < o.Lines:
		return -1
	case e.Lines > o.Lines:
		return 1
	default:
		return 0
	}
}

// AtMost reports whether e is finite and no greater than n.
func (e Extent) AtMost(n int) bool {
	return !e.Definitive && e.Lines <= n
}

func (e Extent) String() string {
	if e.Definitive {
		return "definitive"
	}
	return strconv.Itoa(e.Lines)
}

// Walker walks reply chains upward through a Platform.
type Walker struct {
	Platform      thread.Platform
	Substitutions *normalize.Substitutions
	BotIdentity   string
}

// Extent walks upward from c, starting at line index of song, and returns how
// many lines the chain covers. targetSongID is the song a bot annotation must
// name to count as definitive. Parents are fetched one at a time as the walk
// proceeds. The walk always terminates: each step consumes at least one line
// or stops.
func (w *Walker) Extent(
	ctx context.Context,
	song *corpus.Song,
	targetSongID string,
	c *thread.Comment,
	index int,
) (Extent, error) {
	if index < 0 || index >= song.Len() {
		return Extent{}, fmt.Errorf("%w: %d in song %s", matcher.ErrIndexOutOfRange, index, song.ID)
	}

	current := c
	currentIndex := index
	extent := 0

	for currentIndex >= 0 {
		if !current.HasAuthor() {
			return Extent{}, fmt.Errorf("%w: %s", ErrMissingAuthor, current.ID)
		}

		if current.Author == w.BotIdentity {
			return w.botExtent(current, targetSongID, currentIndex, extent), nil
		}

		n, err := matcher.MatchCount(song.Normalized, currentIndex, normalize.Normalize(current.Body, w.Substitutions))
		if err != nil {
			return Extent{}, err
		}
		if n == 0 {
			return Lines(extent), nil
		}
		extent += n
		currentIndex -= n

		if thread.IsRoot(current) || currentIndex < 0 {
			break
		}

		parent, err := w.Platform.Parent(ctx, current)
		if err != nil {
			return Extent{}, fmt.Errorf("failed to walk chain: %w", err)
		}
		if parent == nil {
			break
		}
		current = parent
	}

	return Lines(extent), nil
}

// botExtent decides what one of the bot's own replies says about the chain.
// Anything short of a matching position and song ends the chain there.
func (w *Walker) botExtent(c *thread.Comment, targetSongID string, index, extent int) Extent {
	marker := annotation.Parse(c.Body)

	pos, ok := marker.LogicalPosition()
	if !ok {
		log.Debug().
			Str("id", c.ID).
			Stringer("position", marker.PositionState).
			Msg("bot reply without readable position ends the chain")
		return Lines(extent)
	}
	if pos != index {
		log.Debug().
			Str("id", c.ID).
			Int("position", pos).
			Int("expected", index).
			Msg("bot reply at unexpected position ends the chain")
		return Lines(extent)
	}
	if !marker.HasSong(targetSongID) {
		log.Debug().
			Str("id", c.ID).
			Str("song", marker.SongID).
			Str("expected", targetSongID).
			Msg("bot reply for another song ends the chain")
		return Lines(extent)
	}

	return Definitive
}
