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

package resolver

import (
	"context"
	"fmt"
	"testing"

	"github.com/ZaparooProject/lyricbot/pkg/lyrics/annotation"
	"github.com/ZaparooProject/lyricbot/pkg/lyrics/chain"
	"github.com/ZaparooProject/lyricbot/pkg/lyrics/corpus"
	"github.com/ZaparooProject/lyricbot/pkg/lyrics/matcher"
	"github.com/ZaparooProject/lyricbot/pkg/lyrics/reply"
	"github.com/ZaparooProject/lyricbot/pkg/testing/fixtures"
	"github.com/ZaparooProject/lyricbot/pkg/thread"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bot = "lyric_bot"

type post struct {
	author string
	body   string
}

func newSong(t *testing.T, id string, lines ...string) *corpus.Song {
	t.Helper()
	song, err := corpus.NewSong(id, "Song "+id, "", lines, nil)
	require.NoError(t, err)
	return song
}

// newResolver builds a resolver over songs and a linear chain of posts,
// root first. Extra comments (e.g. replies) can be passed in extra.
func newResolver(
	t *testing.T,
	songs []*corpus.Song,
	posts []post,
	extra ...*thread.Comment,
) (*Resolver, []*thread.Comment) {
	t.Helper()

	c, err := corpus.New(songs...)
	require.NoError(t, err)

	comments := make([]*thread.Comment, len(posts))
	for i, p := range posts {
		cm := &thread.Comment{ID: fmt.Sprintf("c%d", i), Author: p.author, Body: p.body}
		if i > 0 {
			cm.ParentID = comments[i-1].ID
		}
		comments[i] = cm
	}

	all := append(append([]*thread.Comment{}, comments...), extra...)
	r := &Resolver{
		Corpus: c,
		Walker: &chain.Walker{
			Platform:    thread.NewTree(thread.NewMemorySource(all...)),
			BotIdentity: bot,
		},
		Templates: reply.Templates{HelpLink: "https://example.com/faq", Mode: annotation.CurrentMode},
	}
	return r, comments
}

func decide(t *testing.T, r *Resolver, c *thread.Comment) Decision {
	t.Helper()
	d, err := r.Decide(context.Background(), c, matcher.FindCandidates(r.Corpus, c.Body, nil))
	require.NoError(t, err)
	return d
}

func TestDecide_ScenarioA_NextLineThenEndOfSong(t *testing.T) {
	t.Parallel()

	song := newSong(t, "sound", "hello", "my old", "friend")
	r, comments := newResolver(t, []*corpus.Song{song}, []post{{"alice", "My old..."}})

	d := decide(t, r, comments[0])

	assert.Equal(t, ActionReply, d.Action)
	assert.Equal(t, ReasonNextLineAndDone, d.Reason)
	assert.Equal(t, chain.Lines(1), d.Extent)
	assert.Equal(t, 2, d.Position)
	require.Len(t, d.Replies, 2)

	assert.Equal(t, reply.KindNext, d.Replies[0].Kind)
	assert.Equal(t, TargetComment, d.Replies[0].Target)
	assert.Equal(t, 2, d.Replies[0].Position)
	assert.Contains(t, d.Replies[0].Body, "friend\n\n---")

	assert.Equal(t, reply.KindEnd, d.Replies[1].Kind)
	assert.Equal(t, TargetPreviousReply, d.Replies[1].Target)
	assert.Contains(t, d.Replies[1].Body, `That's all the lyrics I have for the song "Song sound"`)

	pos, ok := annotation.Parse(d.Replies[0].Body).LogicalPosition()
	require.True(t, ok)
	assert.Equal(t, 2, pos)
}

func TestDecide_ScenarioB_IgnoredLineNeverStartsChain(t *testing.T) {
	t.Parallel()

	song := newSong(t, "s", "^hello", "my old", "friend")
	r, comments := newResolver(t, []*corpus.Song{song}, []post{{"alice", "Hello"}})

	d := decide(t, r, comments[0])

	assert.Equal(t, ActionNone, d.Action)
	assert.Equal(t, ReasonIgnoredStart, d.Reason)
	assert.Equal(t, chain.Lines(1), d.Extent)
	assert.Empty(t, d.Replies)
}

func TestDecide_IgnoredLineMidChain(t *testing.T) {
	t.Parallel()

	song := newSong(t, "s", "hey", "^oh", "my old", "friend")
	r, comments := newResolver(t, []*corpus.Song{song}, []post{{"alice", "hey"}, {"bob", "oh"}})

	d := decide(t, r, comments[1])

	assert.Equal(t, ActionReply, d.Action)
	assert.Equal(t, 2, d.Position)
	assert.Equal(t, chain.Lines(2), d.Extent)
}

// Continuation line 4 (1-based 5) merges lines 5 and 6 into a single reply.
func TestDecide_ScenarioD_ContinuationMerged(t *testing.T) {
	t.Parallel()

	song := newSong(t, "s", "one", "two", "three", "four", "five ->", "six", "seven", "eight")
	r, comments := newResolver(t, []*corpus.Song{song}, []post{{"alice", "four"}})

	d := decide(t, r, comments[0])

	assert.Equal(t, ActionReply, d.Action)
	assert.Equal(t, ReasonNextLine, d.Reason)
	assert.Equal(t, 5, d.Position)
	require.Len(t, d.Replies, 1)
	assert.Contains(t, d.Replies[0].Body, "five six\n\n---")
	assert.Equal(t, 5, d.Replies[0].Position)
}

func TestDecide_ContinuationChainStopsBeforeLastLine(t *testing.T) {
	t.Parallel()

	song := newSong(t, "s", "one", "two ->", "three ->", "four")
	r, comments := newResolver(t, []*corpus.Song{song}, []post{{"alice", "one"}})

	d := decide(t, r, comments[0])

	assert.Equal(t, ReasonNextLineAndDone, d.Reason)
	assert.Equal(t, 3, d.Position)
	require.Len(t, d.Replies, 2)
	assert.Contains(t, d.Replies[0].Body, "two three four\n\n---")
}

func TestDecide_WeakFinalLine(t *testing.T) {
	t.Parallel()

	song := newSong(t, "s", "hello", "my old", "friend")
	r, comments := newResolver(t, []*corpus.Song{song}, []post{{"alice", "friend"}})

	d := decide(t, r, comments[0])

	assert.Equal(t, ActionNone, d.Action)
	assert.Equal(t, ReasonWeakFinalLine, d.Reason)
}

func TestDecide_EndOfSongWithHistory(t *testing.T) {
	t.Parallel()

	song := newSong(t, "s", "hello", "my old", "friend")
	r, comments := newResolver(t, []*corpus.Song{song}, []post{{"alice", "my old"}, {"bob", "friend"}})

	d := decide(t, r, comments[1])

	assert.Equal(t, ActionReply, d.Action)
	assert.Equal(t, ReasonEndOfSong, d.Reason)
	assert.Equal(t, 2, d.Position)
	require.Len(t, d.Replies, 1)
	assert.Equal(t, reply.KindEnd, d.Replies[0].Kind)
	assert.Equal(t, TargetComment, d.Replies[0].Target)
}

func TestDecide_NoMatch(t *testing.T) {
	t.Parallel()

	song := newSong(t, "s", "hello", "my old", "friend")
	r, comments := newResolver(t, []*corpus.Song{song}, []post{{"alice", "great movie"}})

	d := decide(t, r, comments[0])

	assert.Equal(t, ActionNone, d.Action)
	assert.Equal(t, ReasonNoMatch, d.Reason)
	assert.Equal(t, "c0", d.CommentID)
}

func TestDecide_MissingAuthor(t *testing.T) {
	t.Parallel()

	song := newSong(t, "s", "hello", "my old", "friend")
	r, comments := newResolver(t, []*corpus.Song{song}, []post{{"", "hello"}})

	_, err := r.Decide(context.Background(), comments[0], []matcher.Candidate{{SongID: "s", Index: 0}})
	require.ErrorIs(t, err, chain.ErrMissingAuthor)
}

func TestResolve_EarliestIndexWinsTie(t *testing.T) {
	t.Parallel()

	song := newSong(t, "s", "la", "di", "la", "di", "end")
	r, comments := newResolver(t, []*corpus.Song{song}, []post{{"alice", "la"}})

	cands := matcher.FindCandidates(r.Corpus, "la", nil)
	require.Len(t, cands, 2)

	for range 5 {
		res, ok, err := r.Resolve(context.Background(), comments[0], cands)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 0, res.Index)
		assert.Equal(t, chain.Lines(1), res.Extent)
		assert.True(t, res.HasExtent)
	}
}

func TestResolve_LongestChainWins(t *testing.T) {
	t.Parallel()

	song := newSong(t, "s", "la", "di", "la", "di", "end")
	r, comments := newResolver(t, []*corpus.Song{song}, []post{{"alice", "la"}, {"bob", "di"}, {"carol", "la"}})

	d := decide(t, r, comments[2])

	assert.Equal(t, chain.Lines(3), d.Extent)
	assert.Equal(t, 3, d.Position)
	assert.Contains(t, d.Replies[0].Body, "di\n\n---")
}

func TestResolve_DefinitiveMarkerWins(t *testing.T) {
	t.Parallel()

	song := newSong(t, "s", "la", "di", "la", "di", "la", "end")
	r, comments := newResolver(t, []*corpus.Song{song}, []post{
		{"alice", "la"},
		{bot, "di\n\n---\n\nCurrent position: 4\n\nInternal song name: s\n\nCompatibility mode: 2"},
		{"carol", "la"},
	})

	d := decide(t, r, comments[2])

	assert.Equal(t, chain.Definitive, d.Extent)
	assert.Equal(t, 5, d.Position)
	assert.Equal(t, ReasonNextLineAndDone, d.Reason)
}

func TestResolve_SongWithLongerChainWins(t *testing.T) {
	t.Parallel()

	a := newSong(t, "a", "x", "shared", "z")
	b := newSong(t, "b", "w", "shared", "y")
	r, comments := newResolver(t, []*corpus.Song{a, b}, []post{{"alice", "w"}, {"bob", "shared"}})

	d := decide(t, r, comments[1])

	assert.Equal(t, "b", d.SongID)
	assert.Equal(t, 2, d.Position)
	assert.Contains(t, d.Replies[0].Body, "y\n\n---")
}

func TestResolve_FirstSongWinsEqualExtent(t *testing.T) {
	t.Parallel()

	a := newSong(t, "a", "x", "shared", "z")
	b := newSong(t, "b", "shared", "y", "q")
	r, comments := newResolver(t, []*corpus.Song{a, b}, []post{{"alice", "shared"}})

	res, ok, err := r.Resolve(context.Background(), comments[0], matcher.FindCandidates(r.Corpus, "shared", nil))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a", res.Song.ID)
	assert.Equal(t, 1, res.Index)
}

func TestResolve_SingleCandidateSkipsWalk(t *testing.T) {
	t.Parallel()

	song := newSong(t, "s", "a", "b")
	r, _ := newResolver(t, []*corpus.Song{song}, nil)

	// the comment's parent does not exist; walking would fail
	orphan := &thread.Comment{ID: "o", Author: "x", Body: "b", ParentID: "missing"}
	res, ok, err := r.Resolve(context.Background(), orphan, []matcher.Candidate{{SongID: "s", Index: 1}})
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, res.HasExtent)
	assert.Equal(t, 1, res.Index)
}

func TestResolve_Empty(t *testing.T) {
	t.Parallel()

	song := newSong(t, "s", "a")
	r, comments := newResolver(t, []*corpus.Song{song}, []post{{"alice", "a"}})

	_, ok, err := r.Resolve(context.Background(), comments[0], nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolve_UnknownSong(t *testing.T) {
	t.Parallel()

	song := newSong(t, "s", "a")
	r, comments := newResolver(t, []*corpus.Song{song}, []post{{"alice", "a"}})

	_, _, err := r.Resolve(context.Background(), comments[0], []matcher.Candidate{{SongID: "nope", Index: 0}})
	require.ErrorIs(t, err, corpus.ErrMissingCorpus)
}

func TestIsBottomOfChain(t *testing.T) {
	t.Parallel()

	a := newSong(t, "a", "hello", "my old", "friend")
	b := newSong(t, "b", "darkness")

	tests := []struct {
		name     string
		replies  []post
		expected bool
	}{
		{name: "no replies", expected: true},
		{name: "unrelated reply", replies: []post{{"bob", "lol"}}, expected: true},
		{name: "reply for another song", replies: []post{{"bob", "darkness"}}, expected: true},
		{name: "bot already answered", replies: []post{{bot, "anything"}}, expected: false},
		{name: "someone continued the chain", replies: []post{{"bob", "lol"}, {"carol", "Friend!"}}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			replies := make([]*thread.Comment, len(tt.replies))
			for i, p := range tt.replies {
				replies[i] = &thread.Comment{
					ID:       fmt.Sprintf("r%d", i),
					Author:   p.author,
					Body:     p.body,
					ParentID: "c0",
				}
			}
			r, comments := newResolver(t, []*corpus.Song{a, b}, []post{{"alice", "my old"}}, replies...)

			got, err := r.IsBottomOfChain(context.Background(), "a", comments[0])
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestIsBottomOfChain_UnknownSong(t *testing.T) {
	t.Parallel()

	song := newSong(t, "s", "a")
	r, comments := newResolver(t, []*corpus.Song{song}, []post{{"alice", "a"}})

	_, err := r.IsBottomOfChain(context.Background(), "nope", comments[0])
	require.ErrorIs(t, err, corpus.ErrMissingCorpus)
}

func TestActionString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "reply", ActionReply.String())
	assert.Equal(t, "none", ActionNone.String())
}

func TestDecide_FixtureCorpus(t *testing.T) {
	t.Parallel()

	c, err := fixtures.Corpus(fixtures.SoundOfSilence(), fixtures.Bruno())
	require.NoError(t, err)

	comments := fixtures.Chain("b",
		fixtures.Post{Author: "alice", Body: "We don't talk about Bruno, no, no, no!"},
		fixtures.Post{Author: "bob", Body: "we dont talk about BRUNO"},
	)
	r := &Resolver{
		Corpus: c,
		Walker: &chain.Walker{
			Platform:    thread.NewTree(thread.NewMemorySource(comments...)),
			BotIdentity: bot,
		},
	}
	ctx := context.Background()

	root := comments[0]
	d, err := r.Decide(ctx, root, matcher.FindCandidates(c, root.Body, nil))
	require.NoError(t, err)
	assert.Equal(t, ReasonIgnoredStart, d.Reason)
	assert.Equal(t, "bruno", d.SongID)

	answer := comments[1]
	d, err = r.Decide(ctx, answer, matcher.FindCandidates(c, answer.Body, nil))
	require.NoError(t, err)
	assert.Equal(t, ActionReply, d.Action)
	assert.Equal(t, chain.Lines(2), d.Extent)
	assert.Equal(t, 2, d.Position)
	require.Len(t, d.Replies, 1)
	assert.Contains(t, d.Replies[0].Body, "But\n\n---")
}

func TestDecide_RendersSongLink(t *testing.T) {
	t.Parallel()

	song, err := corpus.NewSong("sound", "The Sound", "https://example.com/sound", []string{"hello", "my old", "friend"}, nil)
	require.NoError(t, err)

	r, comments := newResolver(t, []*corpus.Song{song}, []post{{"alice", "hello"}})
	r.Templates.Next = "<next_line> (<song_link>)"

	d := decide(t, r, comments[0])
	require.Equal(t, ActionReply, d.Action)
	require.Len(t, d.Replies, 1)
	assert.Equal(t, "my old (https://example.com/sound)", d.Replies[0].Body)
}
