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
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ZaparooProject/lyricbot/internal/telemetry"
	"github.com/ZaparooProject/lyricbot/pkg/config"
	"github.com/ZaparooProject/lyricbot/pkg/helpers"
	"github.com/ZaparooProject/lyricbot/pkg/helpers/syncutil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

type Flags struct {
	ConfigDir   *string
	Thread      *string
	Format      *string
	Environment *string
	List        *bool
	Version     *bool
	Debug       *bool
}

// SetupFlags defines all CLI flags.
func SetupFlags() *Flags {
	return &Flags{
		ConfigDir: flag.String(
			"config-dir",
			DefaultConfigDir(),
			"directory holding config.toml",
		),
		Thread: flag.String(
			"thread",
			"",
			"decide replies for a thread fixture (YAML) without posting",
		),
		Format: flag.String(
			"format",
			"",
			"lyric list format: text or csv (default from config)",
		),
		Environment: flag.String(
			"env",
			"",
			"environment name attached to error reports",
		),
		List: flag.Bool(
			"list",
			false,
			"export numbered lyric lists for every song",
		),
		Version: flag.Bool(
			"version",
			false,
			"print version and exit",
		),
		Debug: flag.Bool(
			"debug",
			false,
			"log debug output to the console",
		),
	}
}

// DefaultConfigDir is the per-user config directory, falling back to the
// working directory when none is known.
func DefaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, config.AppName)
}

// Pre runs flag parsing and actions any immediate flags that don't
// require environment setup. Add any custom flags before running this.
func (f *Flags) Pre() {
	flag.Parse()

	if *f.Version {
		_, _ = fmt.Printf("LyricBot v%s\n", config.AppVersion)
		os.Exit(0)
	}
}

// Setup initializes the user config, logging and error reporting. Logs are
// written next to the config file.
//
//nolint:gocritic // config struct copied for immutability
func Setup(
	fs afero.Fs,
	configDir string,
	defaultConfig config.Values,
	writers []io.Writer,
	environment string,
) (*config.Instance, error) {
	err := helpers.InitLogging(filepath.Join(configDir, "logs"), writers)
	if err != nil {
		return nil, fmt.Errorf("error initializing logging: %w", err)
	}

	cfg, err := config.NewConfig(fs, configDir, defaultConfig)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	syncutil.SetDeadlockTimeout(cfg.LockTimeout())

	if cfg.DebugLogging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// Initialize error reporting (opt-in)
	if err := telemetry.Init(telemetry.Options{
		Enabled:     cfg.ErrorReporting(),
		DSN:         cfg.ErrorReportingDSN(),
		AppVersion:  config.AppVersion,
		Environment: environment,
	}); err != nil {
		log.Warn().Err(err).Msg("failed to initialize error reporting")
	}

	return cfg, nil
}
