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

package config

import "github.com/ZaparooProject/lyricbot/pkg/lyrics/reply"

// Replies overrides the reply templates. Empty fields use the built-in ones.
type Replies struct {
	Next string `toml:"next,omitempty,multiline"`
	End  string `toml:"end,omitempty,multiline"`
}

// Templates assembles the reply templates from the bot and reply sections.
func (c *Instance) Templates() reply.Templates {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return reply.Templates{
		Next:     c.vals.Replies.Next,
		End:      c.vals.Replies.End,
		HelpLink: c.vals.Bot.HelpLink,
		Owner:    c.vals.Bot.Owner,
		Username: c.vals.Bot.Username,
		Mode:     c.vals.Bot.CompatibilityMode,
	}
}
