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

// Package annotation reads and writes the plain-text markers the bot embeds in
// its own replies to record where a chain stands:
//
//	Current position: <non-negative integer>
//	Internal song name: <word characters>
//	Compatibility mode: <integer>
//
// Markers may appear in any order. A missing compatibility mode means mode 1.
// In mode 2 and above the stored position is one greater than the zero-based
// line index, so it is decremented on read and incremented on write.
package annotation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	PositionLabel = "Current position:"
	SongLabel     = "Internal song name:"
	ModeLabel     = "Compatibility mode:"

	// LegacyMode is the implied mode when no compatibility marker is present.
	LegacyMode = 1
	// CurrentMode is the mode new replies are written in.
	CurrentMode = 2
)

var (
	positionRegex = regexp.MustCompile(`Current position: (\d+)`)
	songRegex     = regexp.MustCompile(`Internal song name: (\w+)`)
	modeRegex     = regexp.MustCompile(`Compatibility mode: (\d+)`)
)

// State describes whether a marker was found and understood.
type State int

const (
	Absent State = iota
	Malformed
	Present
)

func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Malformed:
		return "malformed"
	case Present:
		return "present"
	default:
		return "unknown"
	}
}

// Marker is the typed form of the annotation block in a bot reply.
type Marker struct {
	SongID        string
	Position      int
	Mode          int
	PositionState State
	SongState     State
	ModeState     State
}

// Parse extracts the annotation markers from a reply body. It never fails;
// anything it cannot read is reported through the marker states.
func Parse(body string) Marker {
	m := Marker{Mode: LegacyMode}

	m.Position, m.PositionState = parseInt(body, positionRegex, PositionLabel)

	if match := songRegex.FindStringSubmatch(body); match != nil {
		m.SongID = match[1]
		m.SongState = Present
	} else if strings.Contains(body, SongLabel) {
		m.SongState = Malformed
	}

	mode, modeState := parseInt(body, modeRegex, ModeLabel)
	m.ModeState = modeState
	if modeState == Present {
		m.Mode = mode
	}

	return m
}

func parseInt(body string, re *regexp.Regexp, label string) (int, State) {
	match := re.FindStringSubmatch(body)
	if match == nil {
		if strings.Contains(body, label) {
			return 0, Malformed
		}
		return 0, Absent
	}
	v, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, Malformed
	}
	return v, Present
}

// LogicalPosition returns the zero-based line index the marker records. ok is
// false when the position is missing or unreadable, or when the
// compatibility mode is present but unreadable.
func (m Marker) LogicalPosition() (int, bool) {
	if m.PositionState != Present || m.ModeState == Malformed {
		return 0, false
	}
	pos := m.Position
	if m.Mode > LegacyMode {
		pos--
	}
	if pos < 0 {
		return 0, false
	}
	return pos, true
}

// HasSong reports whether the marker names songID.
func (m Marker) HasSong(songID string) bool {
	return m.SongState == Present && m.SongID == songID
}

// Format writes the annotation block for a reply at zero-based index. Blocks
// written in a mode above LegacyMode carry their mode so later runs can
// undo the offset.
func Format(index int, songID string, mode int) string {
	stored := index
	if mode > LegacyMode {
		stored++
	}

	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "%s %d\n\n%s %s", PositionLabel, stored, SongLabel, songID)
	if mode > LegacyMode {
		_, _ = fmt.Fprintf(&b, "\n\n%s %d", ModeLabel, mode)
	}
	return b.String()
}
