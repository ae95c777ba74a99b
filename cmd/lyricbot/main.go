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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZaparooProject/lyricbot/internal/telemetry"
	"github.com/ZaparooProject/lyricbot/pkg/cli"
	"github.com/ZaparooProject/lyricbot/pkg/config"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		telemetry.Flush()
		os.Exit(1)
	}
}

func run() error {
	flags := cli.SetupFlags()
	flags.Pre()

	var logWriters []io.Writer
	if *flags.Debug {
		logWriters = []io.Writer{zerolog.ConsoleWriter{Out: os.Stderr}}
	}

	fs := afero.NewOsFs()
	cfg, err := cli.Setup(fs, *flags.ConfigDir, config.BaseDefaults, logWriters, *flags.Environment)
	if err != nil {
		return err
	}
	defer telemetry.Close()

	if *flags.Debug {
		cfg.SetDebugLogging(true)
	}

	defer func() {
		if err := recover(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Panic: %s\n", err)
			log.Fatal().Msgf("panic: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch {
	case *flags.List:
		written, err := cli.ExportLists(fs, cfg, *flags.Format)
		if err != nil {
			log.Error().Err(err).Msg("error exporting lyric lists")
			return err
		}
		for _, path := range written {
			_, _ = fmt.Println(path)
		}
	case *flags.Thread != "":
		_, err := cli.DryRun(ctx, fs, cfg, clockwork.NewRealClock(), *flags.Thread, os.Stdout)
		if err != nil {
			log.Error().Err(err).Msg("error processing thread")
			return err
		}
	default:
		return errors.New("nothing to do: pass -thread or -list")
	}

	return nil
}
