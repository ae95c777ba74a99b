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

package thread_test

import (
	"context"
	"testing"

	"github.com/ZaparooProject/lyricbot/pkg/testing/mocks"
	"github.com/ZaparooProject/lyricbot/pkg/thread"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewLimitedSource_Unlimited(t *testing.T) {
	t.Parallel()

	src := &mocks.MockSource{}
	assert.Same(t, src, thread.NewLimitedSource(src, 0))
}

func TestLimitedSource_ForwardsWithinBurst(t *testing.T) {
	t.Parallel()

	c := &thread.Comment{ID: "c1", Author: "a", Body: "hello"}
	src := &mocks.MockSource{}
	src.On("Comment", mock.Anything, "c1").Return(c, nil)
	src.On("Replies", mock.Anything, "c1").Return([]*thread.Comment{}, nil)

	limited := thread.NewLimitedSource(src, 1)
	ctx := context.Background()

	for range thread.FetchBurst - 1 {
		got, err := limited.Comment(ctx, "c1")
		require.NoError(t, err)
		assert.Same(t, c, got)
	}
	_, err := limited.Replies(ctx, "c1")
	require.NoError(t, err)

	src.AssertNumberOfCalls(t, "Comment", thread.FetchBurst-1)
	src.AssertNumberOfCalls(t, "Replies", 1)
}

func TestLimitedSource_CancelledContext(t *testing.T) {
	t.Parallel()

	src := &mocks.MockSource{}
	limited := thread.NewLimitedSource(src, 60)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := limited.Comment(ctx, "c1")
	require.ErrorIs(t, err, context.Canceled)
	_, err = limited.Replies(ctx, "c1")
	require.ErrorIs(t, err, context.Canceled)

	src.AssertNotCalled(t, "Comment", mock.Anything, mock.Anything)
}
