// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the terminal front end of the client. It renders the
// screens of both realms and follows the redirects decided by the route
// guard; it never decides navigation from the session status by itself.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-session-keeper/internal/guard"
	"github.com/MKhiriev/go-session-keeper/internal/logger"
	"github.com/MKhiriev/go-session-keeper/internal/service"
	"github.com/MKhiriev/go-session-keeper/internal/session"
	"github.com/MKhiriev/go-session-keeper/models"
)

// PageSignUp is the name of the sign-up screen. The sign-in and home screens
// are registered under the guard policy entries.
const PageSignUp = "sign-up"

// Sessions is the part of the session manager the front end needs.
type Sessions interface {
	session.Reader
	Initialize(ctx context.Context) error
}

type TUI struct {
	auth      service.AuthService
	sessions  Sessions
	guard     *guard.Guard
	policy    guard.Policy
	buildInfo models.AppBuildInfo

	logger *logger.Logger
}

func New(services *service.ClientServices, sessions Sessions, policy guard.Policy, buildInfo models.AppBuildInfo, log *logger.Logger) (*TUI, error) {
	if policy.PublicEntry == "" || policy.PrivateEntry == "" || policy.PublicEntry == PageSignUp || policy.PrivateEntry == PageSignUp {
		return nil, fmt.Errorf("invalid guard entries %q/%q", policy.PublicEntry, policy.PrivateEntry)
	}

	return &TUI{
		auth:      services.AuthService,
		sessions:  sessions,
		guard:     guard.New(policy),
		policy:    policy,
		buildInfo: buildInfo,
		logger:    log.WithComponent("tui"),
	}, nil
}

func (t *TUI) newRootModel(ctx context.Context) RootModel {
	pages := map[string]Page{
		t.policy.PublicEntry:  {Realm: guard.RealmPublic, Model: NewSignInModel(ctx, t.auth, PageSignUp)},
		PageSignUp:            {Realm: guard.RealmPublic, Model: NewSignUpModel(ctx, t.auth, t.policy.PublicEntry)},
		t.policy.PrivateEntry: {Realm: guard.RealmPrivate, Model: NewHomeModel(ctx, t.auth)},
	}

	sessions := t.sessions
	initialize := func() tea.Msg {
		return initializedMsg{err: sessions.Initialize(ctx)}
	}

	return NewRootModel(pages, t.policy.PublicEntry, initialize, t.buildInfo)
}

// Run starts the program and blocks until the user quits. The session is
// initialized once the loading screen is up.
func (t *TUI) Run(ctx context.Context) error {
	root := t.newRootModel(ctx)
	p := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx))

	// subscribed before the guard so pages see a transition before the
	// redirect it causes
	unsubscribe := t.sessions.Subscribe(func(e session.Event) {
		p.Send(sessionChangedMsg{event: e})
	})
	defer unsubscribe()

	// Send blocks until the program loop runs, so the guard's first
	// evaluation must not happen on this goroutine.
	stopWatch := make(chan func(), 1)
	go func() {
		stopWatch <- guard.Watch(t.guard, t.sessions, root.router, guard.NavigatorFunc(func(target string) {
			t.logger.Debug().Str("func", "TUI.Run").Str("target", target).Msg("route guard redirect")
			p.Send(NavigateTo{Page: target})
		}))
	}()

	finalModel, runErr := p.Run()
	(<-stopWatch)()
	if runErr != nil {
		return runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.err != nil {
		return result.err
	}
	if result.quitByUser {
		return ErrUserQuit
	}
	return nil
}
