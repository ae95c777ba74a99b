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

type Bot struct {
	Username          string `toml:"username" validate:"required,max=64"`
	Owner             string `toml:"owner,omitempty" validate:"max=64"`
	HelpLink          string `toml:"help_link,omitempty" validate:"omitempty,url"`
	CompatibilityMode int    `toml:"compatibility_mode" validate:"min=1,max=2"`
}

// BotUsername is the account name the bot posts as. Its own comments are
// recognized by it when walking chains.
func (c *Instance) BotUsername() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Bot.Username
}

func (c *Instance) Owner() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Bot.Owner
}

func (c *Instance) HelpLink() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Bot.HelpLink
}

// CompatibilityMode is the annotation mode written into new replies.
func (c *Instance) CompatibilityMode() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Bot.CompatibilityMode
}
