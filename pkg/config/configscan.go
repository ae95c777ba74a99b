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

import "time"

type Scan struct {
	IgnoreAuthors []string `toml:"ignore_authors,omitempty,multiline"`
	MaxAgeHours   float64  `toml:"max_age_hours" validate:"gt=0"`
	Workers       int      `toml:"workers" validate:"min=1,max=64"`
	FetchesPerMin int      `toml:"fetches_per_minute,omitempty" validate:"min=0"`
}

// MaxAge is how old a comment may be before a run stops looking further.
func (c *Instance) MaxAge() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.vals.Scan.MaxAgeHours * float64(time.Hour))
}

func (c *Instance) Workers() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Scan.Workers
}

// FetchesPerMinute caps platform fetches. Zero means unlimited.
func (c *Instance) FetchesPerMinute() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Scan.FetchesPerMin
}

func (c *Instance) IgnoreAuthors() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	authors := make([]string, len(c.vals.Scan.IgnoreAuthors))
	copy(authors, c.vals.Scan.IgnoreAuthors)
	return authors
}

func (c *Instance) SetIgnoreAuthors(authors []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Scan.IgnoreAuthors = authors
}
