package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-session-keeper/internal/app"
	"github.com/MKhiriev/go-session-keeper/internal/service"
	"github.com/MKhiriev/go-session-keeper/models"
)

// HomeModel is the private entry screen. It shows the cached profile and
// offers refresh and sign-out.
type HomeModel struct {
	ctx  context.Context
	auth service.AuthService

	profile *models.Profile
	busy    bool
	errMsg  string
	notice  string
}

func NewHomeModel(ctx context.Context, auth service.AuthService) *HomeModel {
	return &HomeModel{ctx: ctx, auth: auth}
}

func (m *HomeModel) Init() tea.Cmd {
	return nil
}

func (m *HomeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionChangedMsg:
		m.profile = msg.event.Current.Profile
		if !msg.event.Current.Authenticated() {
			// a result racing the redirect lands on the public screen
			m.busy, m.errMsg, m.notice = false, "", ""
		}
		return m, nil

	case refreshResultMsg:
		m.busy = false
		m.errMsg = app.MessageFor(msg.err)
		if msg.err == nil {
			m.notice = "Профиль обновлен"
		}
		return m, nil

	case signOutResultMsg:
		m.busy = false
		m.errMsg = app.MessageFor(msg.err)
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}

		ctx, auth := m.ctx, m.auth
		switch {
		case key.Matches(msg, keys.refresh):
			m.busy, m.errMsg, m.notice = true, "", ""
			return m, func() tea.Msg { return refreshResultMsg{err: auth.RefreshProfile(ctx)} }
		case key.Matches(msg, keys.logout):
			m.busy, m.errMsg, m.notice = true, "", ""
			return m, func() tea.Msg { return signOutResultMsg{err: auth.SignOut(ctx)} }
		}
	}

	return m, nil
}

func (m *HomeModel) View() string {
	var b strings.Builder

	if m.profile == nil {
		b.WriteString("Профиль еще не загружен, нажмите r\n")
	} else {
		b.WriteString("Имя   │ ")
		b.WriteString(valueOrDash(m.profile.Name))
		b.WriteString("\nEmail │ ")
		b.WriteString(valueOrDash(m.profile.Email))
		b.WriteString("\nID    │ ")
		b.WriteString(valueOrDash(m.profile.ID))
		b.WriteString("\n")
	}

	if m.busy {
		b.WriteString("\n[Выполняется...]\n")
	}
	renderStatus(&b, m.errMsg, m.notice)

	return renderPage("ГЛАВНАЯ", strings.TrimRight(b.String(), "\n"), "r: обновить профиль │ l: выйти │ v: версия │ q: выход")
}
