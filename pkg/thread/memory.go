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

package thread

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// MemorySource serves a fixed set of comments. It backs dry runs against
// fixture files and tests.
type MemorySource struct {
	byID    map[string]*Comment
	replies map[string][]*Comment
	order   []*Comment
}

// NewMemorySource indexes comments by id and parent. Replies are returned
// oldest first.
func NewMemorySource(comments ...*Comment) *MemorySource {
	m := &MemorySource{
		byID:    make(map[string]*Comment, len(comments)),
		replies: make(map[string][]*Comment),
		order:   comments,
	}
	for _, c := range comments {
		m.byID[c.ID] = c
		if c.ParentID != "" {
			m.replies[c.ParentID] = append(m.replies[c.ParentID], c)
		}
	}
	for _, rs := range m.replies {
		sort.SliceStable(rs, func(i, j int) bool {
			return rs[i].Created.Before(rs[j].Created)
		})
	}
	return m
}

func (m *MemorySource) Comment(_ context.Context, id string) (*Comment, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCommentNotFound, id)
	}
	return c, nil
}

func (m *MemorySource) Replies(_ context.Context, id string) ([]*Comment, error) {
	if _, ok := m.byID[id]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrCommentNotFound, id)
	}
	return m.replies[id], nil
}

// Comments returns every comment in the order it was given.
func (m *MemorySource) Comments() []*Comment {
	return m.order
}

// Fixture is the on-disk form of a thread used for dry runs.
type Fixture struct {
	Comments []*Comment `yaml:"comments"`
}

// LoadFixture reads a YAML thread fixture.
func LoadFixture(fs afero.Fs, path string) (*MemorySource, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read thread fixture: %w", err)
	}

	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal thread fixture: %w", err)
	}

	seen := make(map[string]struct{}, len(f.Comments))
	for _, c := range f.Comments {
		if c.ID == "" {
			return nil, fmt.Errorf("thread fixture %s: comment without id", path)
		}
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("thread fixture %s: duplicate comment id %s", path, c.ID)
		}
		seen[c.ID] = struct{}{}
	}

	return NewMemorySource(f.Comments...), nil
}
