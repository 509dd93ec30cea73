// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-session-keeper/internal/logger"
	"github.com/MKhiriev/go-session-keeper/internal/service"
	"github.com/MKhiriev/go-session-keeper/internal/session"
)

// ProfileRefresher periodically re-fetches the signed-in user's profile.
// A revoked credential is rejected by the backend with 401, which makes the
// API client invalidate the session; the refresher itself never logs out.
type ProfileRefresher struct {
	auth     service.AuthService
	sessions session.Reader
	interval time.Duration

	logger *logger.Logger
}

var _ Worker = (*ProfileRefresher)(nil)

// NewProfileRefresher returns a refresher ticking every interval. A
// non-positive interval disables it: Run waits for cancellation and returns.
func NewProfileRefresher(auth service.AuthService, sessions session.Reader, interval time.Duration, log *logger.Logger) *ProfileRefresher {
	return &ProfileRefresher{
		auth:     auth,
		sessions: sessions,
		interval: interval,
		logger:   log.WithComponent("profile_refresher"),
	}
}

// Run implements [Worker].
func (p *ProfileRefresher) Run(ctx context.Context) {
	if p.interval <= 0 {
		<-ctx.Done()
		return
	}

	t := time.NewTicker(p.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			p.refresh(ctx)
		}
	}
}

func (p *ProfileRefresher) refresh(ctx context.Context) {
	if !p.sessions.Current().Authenticated() {
		return
	}

	err := p.auth.RefreshProfile(ctx)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrNotSignedIn):
		p.logger.Info().Str("func", "ProfileRefresher.refresh").Msg("session ended during refresh")
	case ctx.Err() != nil:
	default:
		p.logger.Err(err).Str("func", "ProfileRefresher.refresh").Msg("failed to refresh profile")
	}
}
