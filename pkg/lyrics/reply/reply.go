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

// Package reply renders the bodies of the bot's replies: the next lyric line
// or the end-of-song notice, followed by the footer and annotation block.
package reply

import (
	"strings"

	"github.com/ZaparooProject/lyricbot/pkg/lyrics/annotation"
)

// Placeholders understood by templates.
const (
	NextLine         = "<next_line>"
	FriendlySongName = "<friendly_song_name>"
	SongLink         = "<song_link>"
	HelpLink         = "<help_link>"
	Owner            = "<owner>"
	Username         = "<username>"
	Annotation       = "<annotation>"
)

const DefaultNext = `<next_line>

---

**I am a bot.** I have responded to this comment chain with the next lyric to the song "<friendly_song_name>"
according to my best estimate of the current position.

For more information (including how to report a bug), click [here](<help_link>).

---

<annotation>`

const DefaultEnd = `That's all the lyrics I have for the song "<friendly_song_name>".

---

**I am a bot.** This comment chain was for the song "<friendly_song_name>".

For more information (including how to report a bug), click [here](<help_link>).

---

<annotation>`

// Kind selects which template a reply is rendered from.
type Kind int

const (
	KindNext Kind = iota
	KindEnd
)

func (k Kind) String() string {
	if k == KindEnd {
		return "end"
	}
	return "next"
}

// Templates holds the reply bodies. Empty fields fall back to the defaults.
type Templates struct {
	Next     string
	End      string
	HelpLink string
	Owner    string
	Username string
	Mode     int
}

// Params is the per-reply data substituted into a template.
type Params struct {
	Line     string
	SongID   string
	SongName string
	SongURL  string
	Index    int
}

// Render builds the reply body of the given kind.
func (t Templates) Render(kind Kind, p Params) string {
	body := t.Next
	if body == "" {
		body = DefaultNext
	}
	if kind == KindEnd {
		body = t.End
		if body == "" {
			body = DefaultEnd
		}
	}

	mode := t.Mode
	if mode == 0 {
		mode = annotation.CurrentMode
	}

	r := strings.NewReplacer(
		NextLine, p.Line,
		FriendlySongName, p.SongName,
		SongLink, p.SongURL,
		HelpLink, t.HelpLink,
		Owner, t.Owner,
		Username, t.Username,
		Annotation, annotation.Format(p.Index, p.SongID, mode),
	)
	return r.Replace(body)
}
