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
	"strings"

	"github.com/ZaparooProject/lyricbot/pkg/lyrics/chain"
	"github.com/ZaparooProject/lyricbot/pkg/lyrics/matcher"
	"github.com/ZaparooProject/lyricbot/pkg/lyrics/reply"
	"github.com/ZaparooProject/lyricbot/pkg/thread"
)

// Action is what the collaborator should do with a comment.
type Action int

const (
	ActionNone Action = iota
	ActionReply
)

func (a Action) String() string {
	if a == ActionReply {
		return "reply"
	}
	return "none"
}

// Reason explains a decision for logs and reports.
type Reason string

const (
	ReasonNoMatch         Reason = "no_match"
	ReasonWeakFinalLine   Reason = "weak_final_line"
	ReasonIgnoredStart    Reason = "ignored_line_start"
	ReasonNotBottom       Reason = "not_bottom_of_chain"
	ReasonEndOfSong       Reason = "end_of_song"
	ReasonNextLine        Reason = "next_line"
	ReasonNextLineAndDone Reason = "next_line_end_of_song"
	ReasonUnresolved      Reason = "unresolved_chain"
)

// Target is what a reply is posted under.
type Target int

const (
	// TargetComment replies to the comment being decided on.
	TargetComment Target = iota
	// TargetPreviousReply replies to the reply posted just before this one.
	TargetPreviousReply
)

// Reply is one reply the collaborator should post.
type Reply struct {
	Body     string
	Kind     reply.Kind
	Position int
	Target   Target
}

// Decision is the outcome for one comment. The engine never posts anything
// itself; the collaborator executes Replies in order.
type Decision struct {
	CommentID string
	SongID    string
	Reason    Reason
	Replies   []Reply
	Extent    chain.Extent
	Position  int
	Action    Action
}

// Decide resolves c against candidates and applies the reply policy.
func (r *Resolver) Decide(
	ctx context.Context,
	c *thread.Comment,
	candidates []matcher.Candidate,
) (Decision, error) {
	if !c.HasAuthor() {
		return Decision{}, fmt.Errorf("%w: %s", chain.ErrMissingAuthor, c.ID)
	}

	d := Decision{CommentID: c.ID, Action: ActionNone, Position: -1}

	res, ok, err := r.Resolve(ctx, c, candidates)
	if err != nil {
		return Decision{}, err
	}
	if !ok {
		d.Reason = ReasonNoMatch
		return d, nil
	}

	if !res.HasExtent {
		res.Extent, err = r.Walker.Extent(ctx, res.Song, res.Song.ID, c, res.Index)
		if err != nil {
			return Decision{}, err
		}
	}

	song := res.Song
	i := res.Index
	d.SongID = song.ID
	d.Extent = res.Extent
	d.Position = i

	// a lone match on the final line is too weak to start a chain with
	if i == song.LastIndex() && res.Extent.AtMost(1) {
		d.Reason = ReasonWeakFinalLine
		return d, nil
	}
	if song.IsIgnored(i) && res.Extent.AtMost(1) {
		d.Reason = ReasonIgnoredStart
		return d, nil
	}

	d.Action = ActionReply
	params := reply.Params{SongID: song.ID, SongName: song.Name, SongURL: song.URL}

	if i == song.LastIndex() {
		params.Index = i
		params.Line = song.Original[i]
		d.Reason = ReasonEndOfSong
		d.Replies = []Reply{{
			Body:     r.Templates.Render(reply.KindEnd, params),
			Kind:     reply.KindEnd,
			Position: i,
			Target:   TargetComment,
		}}
		return d, nil
	}

	next := i + 1
	text := []string{song.Original[next]}
	for song.IsContinuation(next) && next < song.LastIndex() {
		text = append(text, song.Original[next+1])
		next++
	}

	params.Index = next
	params.Line = strings.Join(text, " ")
	d.Position = next
	d.Reason = ReasonNextLine
	d.Replies = []Reply{{
		Body:     r.Templates.Render(reply.KindNext, params),
		Kind:     reply.KindNext,
		Position: next,
		Target:   TargetComment,
	}}

	if next == song.LastIndex() {
		params.Line = song.Original[next]
		d.Reason = ReasonNextLineAndDone
		d.Replies = append(d.Replies, Reply{
			Body:     r.Templates.Render(reply.KindEnd, params),
			Kind:     reply.KindEnd,
			Position: next,
			Target:   TargetPreviousReply,
		})
	}

	return d, nil
}
