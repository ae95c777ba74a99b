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

package normalize

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrEmptyWord is returned when a substitution word normalizes to nothing.
var ErrEmptyWord = errors.New("substitution word is empty after normalization")

// Pair is one whole-word substitution rule.
type Pair struct {
	Word        string `toml:"word" validate:"required"`
	Replacement string `toml:"replacement"`
}

type rule struct {
	re          *regexp.Regexp
	replacement string
}

// Substitutions is a compiled, ordered whole-word substitution table. Rules
// are applied in the order they were configured so output is reproducible.
type Substitutions struct {
	rules []rule
}

// NewSubstitutions compiles pairs into a table. Both sides of every pair are
// canonicalized first, so "Don't" and "dont" configure the same rule.
func NewSubstitutions(pairs []Pair) (*Substitutions, error) {
	subs := &Substitutions{rules: make([]rule, 0, len(pairs))}
	for _, p := range pairs {
		word := canonicalize(p.Word)
		if word == "" {
			return nil, fmt.Errorf("%w: %q", ErrEmptyWord, p.Word)
		}
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("failed to compile substitution %q: %w", p.Word, err)
		}
		subs.rules = append(subs.rules, rule{
			re:          re,
			replacement: canonicalize(p.Replacement),
		})
	}
	return subs, nil
}

// Len returns the number of rules in the table.
func (s *Substitutions) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}

func (s *Substitutions) apply(text string) string {
	if len(s.rules) == 0 {
		return text
	}
	for _, r := range s.rules {
		text = r.re.ReplaceAllLiteralString(text, r.replacement)
	}
	// an empty replacement leaves a double space behind
	text = whitespaceRegex.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
