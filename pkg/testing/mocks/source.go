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

package mocks

import (
	"context"
	"fmt"

	"github.com/ZaparooProject/lyricbot/pkg/thread"
	"github.com/stretchr/testify/mock"
)

// MockSource is a mock implementation of the thread.Source interface using
// testify/mock.
type MockSource struct {
	mock.Mock
}

// Comment fetches a single comment by id
func (m *MockSource) Comment(ctx context.Context, id string) (*thread.Comment, error) {
	args := m.Called(ctx, id)
	if err := args.Error(1); err != nil {
		return nil, fmt.Errorf("mock operation failed: %w", err)
	}
	if c, ok := args.Get(0).(*thread.Comment); ok {
		return c, nil
	}
	return nil, nil
}

// Replies fetches the direct replies of a comment
func (m *MockSource) Replies(ctx context.Context, id string) ([]*thread.Comment, error) {
	args := m.Called(ctx, id)
	if err := args.Error(1); err != nil {
		return nil, fmt.Errorf("mock operation failed: %w", err)
	}
	if cs, ok := args.Get(0).([]*thread.Comment); ok {
		return cs, nil
	}
	return []*thread.Comment{}, nil
}
