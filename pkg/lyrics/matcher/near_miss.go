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

package matcher

import (
	"sort"

	"github.com/hbollon/go-edlib"
	"github.com/rs/zerolog/log"
)

// NearMiss is a lyric line that resembles a comment without matching it.
type NearMiss struct {
	Line       string
	Index      int
	Distance   int
	Similarity float32
}

// NearMisses ranks lines by Jaro-Winkler similarity to text and returns up to
// limit of them at or above minSimilarity, re-ranked by Damerau-Levenshtein
// distance. It never affects resolution; it exists so a skipped comment can
// be logged with the lines it almost was.
func NearMisses(lines []string, text string, minSimilarity float32, limit int) []NearMiss {
	if text == "" || limit <= 0 {
		return nil
	}

	var misses []NearMiss
	for i, line := range lines {
		if line == "" || line == text {
			continue
		}
		similarity := edlib.JaroWinklerSimilarity(text, line)
		if similarity < minSimilarity {
			continue
		}
		misses = append(misses, NearMiss{
			Line:       line,
			Index:      i,
			Similarity: similarity,
		})
	}

	sort.SliceStable(misses, func(i, j int) bool {
		return misses[i].Similarity > misses[j].Similarity
	})
	if len(misses) > limit {
		misses = misses[:limit]
	}

	for i := range misses {
		misses[i].Distance = edlib.DamerauLevenshteinDistance(text, misses[i].Line)
	}
	sort.SliceStable(misses, func(i, j int) bool {
		return misses[i].Distance < misses[j].Distance
	})

	for _, m := range misses {
		log.Debug().
			Str("text", text).
			Str("line", m.Line).
			Int("index", m.Index).
			Float32("similarity", m.Similarity).
			Int("distance", m.Distance).
			Msg("near miss")
	}

	return misses
}
