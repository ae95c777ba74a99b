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

// Package normalize canonicalizes free-form comment text and lyric lines
// into a comparable, space-separated, lowercase token stream.
//
// Pipeline (order is significant):
//
//	Stage 1: Diacritic removal - NFD, drop combining marks, NFC ("Café" → "Cafe")
//	Stage 2: Symbol replacement - anything but ASCII letters, digits, '-', ''' and '’' becomes a space
//	Stage 3: Apostrophe removal - "don't" → "dont"
//	Stage 4: Hyphen folding - runs of '-' become a single space
//	Stage 5: Whitespace folding - runs of whitespace become one space, trimmed
//	Stage 6: Lowercase
//	Stage 7: Word substitutions (optional, see Substitutions)
//	Stage 8: Repeat collapsing - "soooo" → "so"
//
// Normalize is deterministic and, without substitutions, idempotent:
//
//	Normalize(Normalize(x, nil), nil) == Normalize(x, nil)
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	disallowedRegex = regexp.MustCompile(`[^a-zA-Z0-9\-'’]`)
	apostropheRegex = regexp.MustCompile(`['’]`)
	hyphenRunRegex  = regexp.MustCompile(`-+`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// Normalize runs the full pipeline over text. subs may be nil.
func Normalize(text string, subs *Substitutions) string {
	text = canonicalize(text)
	if subs != nil {
		text = subs.apply(text)
	}
	return collapseRepeats(text)
}

// canonicalize runs stages 1-6. It is shared with the substitution table so
// configured words and replacements live in the same alphabet as the text
// they are matched against.
func canonicalize(text string) string {
	text = removeDiacritics(text)
	text = disallowedRegex.ReplaceAllString(text, " ")
	text = apostropheRegex.ReplaceAllString(text, "")
	text = hyphenRunRegex.ReplaceAllString(text, " ")
	text = whitespaceRegex.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	return strings.ToLower(text)
}

// removeDiacritics strips diacritical marks from text.
func removeDiacritics(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	if normalized, _, err := transform.String(t, s); err == nil {
		return normalized
	}
	return s
}

// collapseRepeats folds runs of an identical letter or digit into a single
// instance. Spaces and other characters are left alone. RE2 has no
// backreferences, so this is a plain rune loop.
func collapseRepeats(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	var prev rune
	havePrev := false
	for _, r := range s {
		if havePrev && r == prev && isAlphanumeric(r) {
			continue
		}
		b.WriteRune(r)
		prev = r
		havePrev = true
	}
	return b.String()
}

func isAlphanumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
