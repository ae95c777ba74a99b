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

	"golang.org/x/time/rate"
)

// FetchBurst is how many fetches a LimitedSource allows back to back.
const FetchBurst = 5

// LimitedSource wraps a Source so every fetch waits on a shared limiter.
// Platforms throttle API clients per account, not per request kind.
type LimitedSource struct {
	src     Source
	limiter *rate.Limiter
}

// NewLimitedSource limits src to perMinute fetches a minute. A perMinute of
// zero or less returns src unchanged.
func NewLimitedSource(src Source, perMinute int) Source {
	if perMinute <= 0 {
		return src
	}
	return &LimitedSource{
		src:     src,
		limiter: rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), FetchBurst),
	}
}

func (l *LimitedSource) Comment(ctx context.Context, id string) (*Comment, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	return l.src.Comment(ctx, id)
}

func (l *LimitedSource) Replies(ctx context.Context, id string) ([]*Comment, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	return l.src.Replies(ctx, id)
}
