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

// Package service runs the resolution engine over a batch of comments: it
// filters them the way the bot always has, decides each one and reports what
// the collaborator should post.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ZaparooProject/lyricbot/pkg/lyrics/chain"
	"github.com/ZaparooProject/lyricbot/pkg/lyrics/corpus"
	"github.com/ZaparooProject/lyricbot/pkg/lyrics/matcher"
	"github.com/ZaparooProject/lyricbot/pkg/lyrics/normalize"
	"github.com/ZaparooProject/lyricbot/pkg/lyrics/reply"
	"github.com/ZaparooProject/lyricbot/pkg/lyrics/resolver"
	"github.com/ZaparooProject/lyricbot/pkg/thread"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultWorkers  = 4
	DefaultMaxAge   = 24 * time.Hour
	nearMissLimit   = 3
	nearMissMinimum = 0.8
)

var (
	ErrNoCorpus   = errors.New("engine needs a corpus")
	ErrNoPlatform = errors.New("engine needs a platform")
)

// Options configures an Engine. Zero values fall back to defaults.
type Options struct {
	Corpus        *corpus.Corpus
	Platform      thread.Platform
	Substitutions *normalize.Substitutions
	Clock         clockwork.Clock
	Templates     reply.Templates
	BotIdentity   string
	IgnoreAuthors []string
	MaxAge        time.Duration
	Workers       int
}

// Engine decides what to reply to a batch of comments. It never posts.
type Engine struct {
	resolver *resolver.Resolver
	platform thread.Platform
	clock    clockwork.Clock
	ignore   map[string]struct{}
	subs     *normalize.Substitutions
	bot      string
	maxAge   time.Duration
	workers  int
}

func NewEngine(opts Options) (*Engine, error) {
	if opts.Corpus == nil {
		return nil, ErrNoCorpus
	}
	if opts.Platform == nil {
		return nil, ErrNoPlatform
	}

	e := &Engine{
		resolver: &resolver.Resolver{
			Corpus: opts.Corpus,
			Walker: &chain.Walker{
				Platform:      opts.Platform,
				Substitutions: opts.Substitutions,
				BotIdentity:   opts.BotIdentity,
			},
			Templates: opts.Templates,
		},
		platform: opts.Platform,
		clock:    opts.Clock,
		ignore:   make(map[string]struct{}, len(opts.IgnoreAuthors)),
		subs:     opts.Substitutions,
		bot:      opts.BotIdentity,
		maxAge:   opts.MaxAge,
		workers:  opts.Workers,
	}
	if e.clock == nil {
		e.clock = clockwork.NewRealClock()
	}
	if e.maxAge <= 0 {
		e.maxAge = DefaultMaxAge
	}
	if e.workers <= 0 {
		e.workers = DefaultWorkers
	}
	for _, a := range opts.IgnoreAuthors {
		e.ignore[a] = struct{}{}
	}
	return e, nil
}

// Report summarizes one run. Decisions are newest first and hold one entry
// per handled comment.
type Report struct {
	RunID     string
	Decisions []resolver.Decision
	Total     int
	Handled   int
	Replied   int
	Ignored   int
}

// Coverage is the share of comments that were handled, in percent.
func (r Report) Coverage() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Handled) / float64(r.Total) * 100
}

// Process decides every eligible comment. Comments are handled newest first
// and processing stops at the first comment older than the max age. A chain
// that cannot be read only affects the comment it was walked from.
func (e *Engine) Process(ctx context.Context, comments []*thread.Comment) (Report, error) {
	report := Report{
		RunID: uuid.New().String(),
		Total: len(comments),
	}
	logger := log.With().Str("run", report.RunID).Logger()
	start := e.clock.Now()

	sorted := make([]*thread.Comment, len(comments))
	copy(sorted, comments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Created.After(sorted[j].Created)
	})

	eligible := e.filter(&logger, sorted)

	decisions := make([]*resolver.Decision, len(eligible))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, c := range eligible {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d, err := e.decide(gctx, &logger, c)
			if err != nil {
				if isFatal(gctx, err) {
					return fmt.Errorf("failed to process comment %s: %w", c.ID, err)
				}
				logger.Warn().Err(err).Str("comment", c.ID).Msg("could not resolve chain, not replying")
				d = unresolved(c)
			}
			decisions[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}

	for _, d := range decisions {
		if d == nil {
			continue
		}
		report.Handled++
		report.Decisions = append(report.Decisions, *d)
		if d.Action == resolver.ActionReply {
			report.Replied++
		}
	}
	report.Ignored = report.Total - report.Handled

	logger.Info().
		Int("total", report.Total).
		Int("handled", report.Handled).
		Int("ignored", report.Ignored).
		Int("replied", report.Replied).
		Float64("coverage", report.Coverage()).
		Dur("took", e.clock.Since(start)).
		Msg("run finished")

	return report, nil
}

// isFatal separates errors that invalidate the whole run from those that
// only concern one chain.
func isFatal(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	return errors.Is(err, corpus.ErrMissingCorpus) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func unresolved(c *thread.Comment) *resolver.Decision {
	return &resolver.Decision{
		CommentID: c.ID,
		Action:    resolver.ActionNone,
		Reason:    resolver.ReasonUnresolved,
		Position:  -1,
	}
}

// filter applies the age cut-off and author rules to newest-first comments.
func (e *Engine) filter(logger *zerolog.Logger, sorted []*thread.Comment) []*thread.Comment {
	now := e.clock.Now()
	eligible := make([]*thread.Comment, 0, len(sorted))

	for _, c := range sorted {
		if !c.HasAuthor() {
			logger.Debug().Str("comment", c.ID).Msg("skipping comment without author")
			continue
		}
		if age := now.Sub(c.Created); age > e.maxAge {
			logger.Debug().
				Str("comment", c.ID).
				Dur("age", age).
				Msg("comment too old, stopping here")
			break
		}
		if c.Author == e.bot {
			logger.Debug().Str("comment", c.ID).Msg("skipping own comment")
			continue
		}
		if _, ok := e.ignore[c.Author]; ok {
			logger.Debug().
				Str("comment", c.ID).
				Str("author", c.Author).
				Msg("skipping comment by ignored author")
			continue
		}
		eligible = append(eligible, c)
	}
	return eligible
}

// decide returns nil when the comment matches no lyric line at all or the bot
// already replied somewhere below it.
func (e *Engine) decide(ctx context.Context, logger *zerolog.Logger, c *thread.Comment) (*resolver.Decision, error) {
	candidates := matcher.FindCandidates(e.resolver.Corpus, c.Body, e.subs)
	if len(candidates) == 0 {
		if zerolog.GlobalLevel() <= zerolog.DebugLevel {
			text := normalize.Normalize(c.Body, e.subs)
			for _, song := range e.resolver.Corpus.Songs() {
				matcher.NearMisses(song.Normalized, text, nearMissMinimum, nearMissLimit)
			}
		}
		logger.Debug().Str("comment", c.ID).Msg("no lyric match")
		return nil, nil
	}

	replied, err := e.repliedBelow(ctx, c)
	if err != nil {
		return nil, err
	}
	if replied {
		logger.Debug().Str("comment", c.ID).Msg("already replied further down the chain")
		return nil, nil
	}

	d, err := e.resolver.Decide(ctx, c, candidates)
	if err != nil {
		return nil, err
	}

	if d.Action == resolver.ActionReply {
		bottom, err := e.resolver.IsBottomOfChain(ctx, d.SongID, c)
		if err != nil {
			return nil, err
		}
		if !bottom {
			d.Action = resolver.ActionNone
			d.Reason = resolver.ReasonNotBottom
			d.Replies = nil
		}
	}

	logger.Debug().
		Str("comment", c.ID).
		Str("song", d.SongID).
		Stringer("action", d.Action).
		Str("reason", string(d.Reason)).
		Int("position", d.Position).
		Stringer("extent", d.Extent).
		Msg("decided")
	return &d, nil
}

// repliedBelow reports whether the bot authored any comment in the subtree
// under c. Replies are fetched level by level and the search stops at the
// first reply by the bot.
func (e *Engine) repliedBelow(ctx context.Context, c *thread.Comment) (bool, error) {
	pending := []*thread.Comment{c}
	for len(pending) > 0 {
		next := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		replies, err := e.platform.RefreshReplies(ctx, next)
		if err != nil {
			return false, fmt.Errorf("failed to check earlier replies: %w", err)
		}
		for _, r := range replies {
			if r.Author == e.bot {
				return true, nil
			}
			pending = append(pending, r)
		}
	}
	return false, nil
}
