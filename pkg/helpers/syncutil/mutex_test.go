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

package syncutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRWMutexGuardsCounter(t *testing.T) {
	t.Parallel()

	var (
		mu    RWMutex
		wg    sync.WaitGroup
		count int
	)
	for range 20 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			mu.Lock()
			count++
			mu.Unlock()
		}()
		go func() {
			defer wg.Done()
			mu.RLock()
			_ = count
			mu.RUnlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, count)
}

//nolint:paralleltest // modifies global deadlock options
func TestSetDeadlockTimeoutDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		SetDeadlockTimeout(DefaultDeadlockTimeout)
	})
}
