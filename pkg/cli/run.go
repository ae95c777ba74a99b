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

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ZaparooProject/lyricbot/internal/telemetry"
	"github.com/ZaparooProject/lyricbot/pkg/config"
	"github.com/ZaparooProject/lyricbot/pkg/lyrics/corpus"
	"github.com/ZaparooProject/lyricbot/pkg/lyrics/normalize"
	"github.com/ZaparooProject/lyricbot/pkg/lyrics/resolver"
	"github.com/ZaparooProject/lyricbot/pkg/service"
	"github.com/ZaparooProject/lyricbot/pkg/thread"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// LoadCorpus compiles the configured substitutions and loads every song
// they apply to. Any missing lyric file aborts before comments are touched.
func LoadCorpus(fs afero.Fs, cfg *config.Instance) (*corpus.Corpus, *normalize.Substitutions, error) {
	subs, err := normalize.NewSubstitutions(cfg.Substitutions())
	if err != nil {
		return nil, nil, fmt.Errorf("invalid substitutions: %w", err)
	}

	c, err := corpus.Load(fs, cfg.LyricsDir(), subs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load lyrics: %w", err)
	}
	log.Info().Int("songs", len(c.Songs())).Str("dir", cfg.LyricsDir()).Msg("loaded lyrics")
	return c, subs, nil
}

// DryRun decides replies for every comment in a thread fixture and prints
// them to out. Nothing is posted.
func DryRun(
	ctx context.Context,
	fs afero.Fs,
	cfg *config.Instance,
	clock clockwork.Clock,
	fixture string,
	out io.Writer,
) (service.Report, error) {
	c, subs, err := LoadCorpus(fs, cfg)
	if err != nil {
		return service.Report{}, err
	}

	src, err := thread.LoadFixture(fs, fixture)
	if err != nil {
		return service.Report{}, err
	}
	tree := thread.NewTree(thread.NewLimitedSource(src, cfg.FetchesPerMinute()))
	tree.Add(src.Comments()...)

	engine, err := service.NewEngine(service.Options{
		Corpus:        c,
		Platform:      tree,
		Substitutions: subs,
		Clock:         clock,
		Templates:     cfg.Templates(),
		BotIdentity:   cfg.BotUsername(),
		IgnoreAuthors: cfg.IgnoreAuthors(),
		MaxAge:        cfg.MaxAge(),
		Workers:       cfg.Workers(),
	})
	if err != nil {
		return service.Report{}, fmt.Errorf("failed to create engine: %w", err)
	}

	report, err := engine.Process(ctx, src.Comments())
	telemetry.TagRun(report.RunID, len(c.Songs()))
	if err != nil {
		return report, fmt.Errorf("failed to process thread: %w", err)
	}

	if err := PrintReport(out, report); err != nil {
		return report, err
	}
	return report, nil
}

// PrintReport writes a human readable summary of a run.
func PrintReport(out io.Writer, report service.Report) error {
	var b strings.Builder

	fmt.Fprintf(&b,
		"run %s: handled %d of %d (%d ignored, %d replied, %.1f%% coverage)\n",
		report.RunID, report.Handled, report.Total, report.Ignored, report.Replied, report.Coverage(),
	)

	for _, d := range report.Decisions {
		fmt.Fprintf(&b, "%s\t%s\t%s", d.CommentID, d.Action, d.Reason)
		if d.SongID != "" {
			fmt.Fprintf(&b, "\t%s@%d\t%s", d.SongID, d.Position, d.Extent)
		}
		b.WriteByte('\n')
		for _, r := range d.Replies {
			target := "comment"
			if r.Target == resolver.TargetPreviousReply {
				target = "previous reply"
			}
			first, _, _ := strings.Cut(r.Body, "\n")
			fmt.Fprintf(&b, "\t%s -> %s: %s\n", r.Kind, target, first)
		}
	}

	if _, err := io.WriteString(out, b.String()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// ExportLists writes numbered lyric lists for every song into the lyrics
// directory and returns the files written.
func ExportLists(fs afero.Fs, cfg *config.Instance, format string) ([]string, error) {
	if format == "" {
		format = cfg.ListFormat()
	}

	c, _, err := LoadCorpus(fs, cfg)
	if err != nil {
		return nil, err
	}

	written, err := corpus.ExportLists(fs, cfg.LyricsDir(), c, format)
	if err != nil {
		return written, fmt.Errorf("failed to export lyric lists: %w", err)
	}
	log.Info().Int("files", len(written)).Str("format", format).Msg("exported lyric lists")
	return written, nil
}
