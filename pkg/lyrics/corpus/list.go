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

package corpus

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/spf13/afero"
)

const (
	ListFormatText = "text"
	ListFormatCSV  = "csv"
)

var ErrUnknownListFormat = errors.New("unknown list format")

// ListRow is one line of an exported lyric list. Position is 1-based, the
// way readers count lines.
type ListRow struct {
	Position     int    `csv:"position"`
	Line         string `csv:"line"`
	Ignored      bool   `csv:"ignored"`
	Continuation bool   `csv:"continuation"`
}

// Rows returns the song as list rows.
func (s *Song) Rows() []*ListRow {
	rows := make([]*ListRow, 0, s.Len())
	for i, line := range s.Original {
		rows = append(rows, &ListRow{
			Position:     i + 1,
			Line:         line,
			Ignored:      s.IsIgnored(i),
			Continuation: s.IsContinuation(i),
		})
	}
	return rows
}

// WriteList writes a numbered lyric list for song to w.
func WriteList(w io.Writer, song *Song, format string) error {
	switch format {
	case "", ListFormatText:
		for _, row := range song.Rows() {
			if _, err := fmt.Fprintf(w, "%d. %s\n", row.Position, row.Line); err != nil {
				return fmt.Errorf("failed to write list row: %w", err)
			}
		}
		return nil
	case ListFormatCSV:
		if err := gocsv.Marshal(song.Rows(), w); err != nil {
			return fmt.Errorf("failed to marshal list csv: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownListFormat, format)
	}
}

// ExportLists writes one list file per song into dir/list.
func ExportLists(fs afero.Fs, dir string, c *Corpus, format string) ([]string, error) {
	ext := ".txt"
	if format == ListFormatCSV {
		ext = ".csv"
	}

	listDir := filepath.Join(dir, ListDir)
	if err := fs.MkdirAll(listDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create list directory: %w", err)
	}

	written := make([]string, 0, len(c.Songs()))
	for _, song := range c.Songs() {
		path := filepath.Join(listDir, song.ID+ext)
		f, err := fs.Create(path)
		if err != nil {
			return written, fmt.Errorf("failed to create list file: %w", err)
		}
		writeErr := WriteList(f, song, format)
		closeErr := f.Close()
		if writeErr != nil {
			return written, writeErr
		}
		if closeErr != nil {
			return written, fmt.Errorf("failed to close list file: %w", closeErr)
		}
		written = append(written, path)
	}
	return written, nil
}
