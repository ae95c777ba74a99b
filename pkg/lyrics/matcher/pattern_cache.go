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
	"regexp"

	"github.com/ZaparooProject/lyricbot/pkg/helpers/syncutil"
)

// patternCache provides thread-safe caching of compiled tail patterns, one per
// distinct normalized lyric line. Every comment is tested against every line,
// so compiling on each test would dominate a run.
type patternCache struct {
	cache map[string]*regexp.Regexp
	mu    syncutil.RWMutex
}

var tailPatterns = newPatternCache()

func newPatternCache() *patternCache {
	return &patternCache{
		cache: make(map[string]*regexp.Regexp),
	}
}

// tail returns the pattern matching line at the very end of a text, starting
// on a word boundary.
func (pc *patternCache) tail(line string) *regexp.Regexp {
	// Fast path: try read lock first
	pc.mu.RLock()
	if re, exists := pc.cache[line]; exists {
		pc.mu.RUnlock()
		return re
	}
	pc.mu.RUnlock()

	pc.mu.Lock()
	defer pc.mu.Unlock()

	// Double-check pattern wasn't added while waiting for lock
	if re, exists := pc.cache[line]; exists {
		return re
	}

	// quoted input always compiles
	re := regexp.MustCompile(`(?:^|\s)` + regexp.QuoteMeta(line) + `$`)
	pc.cache[line] = re
	return re
}

func (pc *patternCache) size() int {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return len(pc.cache)
}
