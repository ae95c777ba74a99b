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

// Package thread models the externally owned reply tree the bot reads. Nodes
// are addressed by id and fetched on demand through a Source; Tree caches
// what has been fetched and never assumes the whole thread is resident.
package thread

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ZaparooProject/lyricbot/pkg/helpers/syncutil"
	"github.com/rs/zerolog/log"
)

var ErrCommentNotFound = errors.New("comment not found")

// Comment is a read-only view of a forum comment.
type Comment struct {
	Created  time.Time `yaml:"created"`
	ID       string    `yaml:"id"`
	Author   string    `yaml:"author"`
	Body     string    `yaml:"body"`
	ParentID string    `yaml:"parent,omitempty"`
}

// IsRoot reports whether c is a top-level comment.
func IsRoot(c *Comment) bool {
	return c.ParentID == ""
}

// HasAuthor reports whether the comment still has a known author. Deleted
// accounts show up as comments with no author.
func (c *Comment) HasAuthor() bool {
	return c.Author != ""
}

// Source is the external capability that fetches comments from the platform.
type Source interface {
	Comment(ctx context.Context, id string) (*Comment, error)
	Replies(ctx context.Context, id string) ([]*Comment, error)
}

// Platform is what the resolution engine needs from the reply tree.
type Platform interface {
	Parent(ctx context.Context, c *Comment) (*Comment, error)
	RefreshReplies(ctx context.Context, c *Comment) ([]*Comment, error)
}

// Tree is an arena of fetched comments keyed by id, backed by a Source.
type Tree struct {
	src   Source
	nodes map[string]*Comment
	mu    syncutil.RWMutex
}

// NewTree creates an empty Tree over src.
func NewTree(src Source) *Tree {
	return &Tree{
		src:   src,
		nodes: make(map[string]*Comment),
	}
}

// Add seeds the arena with comments already in hand, e.g. a listing page.
func (t *Tree) Add(comments ...*Comment) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, c := range comments {
		t.nodes[c.ID] = c
	}
}

// Get returns a comment by id, fetching it from the source on first use.
func (t *Tree) Get(ctx context.Context, id string) (*Comment, error) {
	t.mu.RLock()
	c, ok := t.nodes[id]
	t.mu.RUnlock()
	if ok {
		return c, nil
	}

	c, err := t.src.Comment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comment %s: %w", id, err)
	}
	log.Debug().Str("id", id).Msg("fetched comment")

	t.Add(c)
	return c, nil
}

// Parent returns the parent of c, or nil for a root comment.
func (t *Tree) Parent(ctx context.Context, c *Comment) (*Comment, error) {
	if IsRoot(c) {
		return nil, nil
	}
	return t.Get(ctx, c.ParentID)
}

// RefreshReplies always re-fetches the direct replies of c, since replies
// may have arrived since the comment was first seen.
func (t *Tree) RefreshReplies(ctx context.Context, c *Comment) ([]*Comment, error) {
	replies, err := t.src.Replies(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch replies of %s: %w", c.ID, err)
	}
	t.Add(replies...)
	return replies, nil
}

// Len returns the number of cached comments.
func (t *Tree) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.nodes)
}
