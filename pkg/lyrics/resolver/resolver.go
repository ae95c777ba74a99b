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

// Package resolver picks the single position a comment stands at and decides
// whether and what the bot should reply.
package resolver

import (
	"context"
	"fmt"
	"sort"

	"github.com/ZaparooProject/lyricbot/pkg/lyrics/chain"
	"github.com/ZaparooProject/lyricbot/pkg/lyrics/corpus"
	"github.com/ZaparooProject/lyricbot/pkg/lyrics/matcher"
	"github.com/ZaparooProject/lyricbot/pkg/lyrics/reply"
	"github.com/ZaparooProject/lyricbot/pkg/thread"
	"github.com/rs/zerolog/log"
)

// Resolver ties the corpus, chain walker and reply templates together.
type Resolver struct {
	Corpus    *corpus.Corpus
	Walker    *chain.Walker
	Templates reply.Templates
}

// Resolution is the winning position for a comment.
type Resolution struct {
	Song      *corpus.Song
	Extent    chain.Extent
	Index     int
	HasExtent bool
}

type scored struct {
	candidate matcher.Candidate
	extent    chain.Extent
}

// Resolve picks one position out of candidates. With a single candidate no
// chain is walked. With several, the song of the first candidate reaching
// the greatest extent wins, and within it the earliest index at that extent,
// so a chain never jumps ahead when continuations are equally plausible.
func (r *Resolver) Resolve(
	ctx context.Context,
	c *thread.Comment,
	candidates []matcher.Candidate,
) (Resolution, bool, error) {
	switch len(candidates) {
	case 0:
		return Resolution{}, false, nil
	case 1:
		song, err := r.song(candidates[0].SongID)
		if err != nil {
			return Resolution{}, false, err
		}
		return Resolution{Song: song, Index: candidates[0].Index}, true, nil
	}

	results := make([]scored, 0, len(candidates))
	for _, cand := range candidates {
		song, err := r.song(cand.SongID)
		if err != nil {
			return Resolution{}, false, err
		}
		extent, err := r.Walker.Extent(ctx, song, song.ID, c, cand.Index)
		if err != nil {
			return Resolution{}, false, err
		}
		log.Debug().
			Str("comment", c.ID).
			Str("song", cand.SongID).
			Int("index", cand.Index).
			Stringer("extent", extent).
			Msg("candidate extent")
		results = append(results, scored{candidate: cand, extent: extent})
	}

	best := results[0]
	for _, s := range results[1:] {
		if s.extent.Compare(best.extent) > 0 {
			best = s
		}
	}

	var tied []scored
	for _, s := range results {
		if s.candidate.SongID == best.candidate.SongID && s.extent.Compare(best.extent) == 0 {
			tied = append(tied, s)
		}
	}
	sort.SliceStable(tied, func(i, j int) bool {
		return tied[i].candidate.Index < tied[j].candidate.Index
	})

	winner := tied[0]
	song, err := r.song(winner.candidate.SongID)
	if err != nil {
		return Resolution{}, false, err
	}
	return Resolution{
		Song:      song,
		Index:     winner.candidate.Index,
		Extent:    winner.extent,
		HasExtent: true,
	}, true, nil
}

func (r *Resolver) song(id string) (*corpus.Song, error) {
	song, ok := r.Corpus.Song(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", corpus.ErrMissingCorpus, id)
	}
	return song, nil
}

// IsBottomOfChain reports whether c is still unanswered for targetSongID: no
// direct reply is the bot's, and no direct reply already continues the song.
func (r *Resolver) IsBottomOfChain(ctx context.Context, targetSongID string, c *thread.Comment) (bool, error) {
	song, err := r.song(targetSongID)
	if err != nil {
		return false, err
	}

	replies, err := r.Walker.Platform.RefreshReplies(ctx, c)
	if err != nil {
		return false, fmt.Errorf("failed to check bottom of chain: %w", err)
	}

	for _, rep := range replies {
		if rep.Author == r.Walker.BotIdentity {
			log.Debug().Str("comment", c.ID).Str("reply", rep.ID).Msg("already answered")
			return false, nil
		}
		if len(matcher.FindSongCandidates(song, rep.Body, r.Walker.Substitutions)) > 0 {
			log.Debug().Str("comment", c.ID).Str("reply", rep.ID).Msg("chain already continued")
			return false, nil
		}
	}
	return true, nil
}
