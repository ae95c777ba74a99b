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

//go:build deadlock

// Package syncutil provides the mutexes used across the bot. Building with
// -tags=deadlock swaps in go-deadlock so lock misuse in the thread arena or
// config panics with a report instead of hanging a run.
package syncutil

import (
	"time"

	deadlock "github.com/sasha-s/go-deadlock"
)

const DeadlockEnabled = true

// DefaultDeadlockTimeout bounds how long a lock may be waited on. Chain walks
// hold no locks across fetches, so anything this long is a bug.
const DefaultDeadlockTimeout = 30 * time.Second

func init() {
	deadlock.Opts.DeadlockTimeout = DefaultDeadlockTimeout
}

// SetDeadlockTimeout changes the detection timeout. Zero disables it.
func SetDeadlockTimeout(d time.Duration) {
	deadlock.Opts.DeadlockTimeout = d
}

type Mutex struct {
	deadlock.Mutex
}

type RWMutex struct {
	deadlock.RWMutex
}
