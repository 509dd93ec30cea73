// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-session-keeper/internal/app"
	"github.com/MKhiriev/go-session-keeper/internal/service"
)

type formMode int

const (
	modeSignIn formMode = iota
	modeSignUp
)

// AuthFormModel is the Bubble Tea model of the sign-in and sign-up screens.
// A successful submission does not navigate: the session change it commits
// makes the route guard redirect to the private entry.
type AuthFormModel struct {
	ctx  context.Context
	auth service.AuthService
	mode formMode

	// page opened by esc (sign-up) or ctrl+r (sign-in)
	other string

	inputs     []textinput.Model
	labels     []string
	focus      int
	submitting bool
	errMsg     string
}

// NewSignInModel creates the sign-in form. ctrl+r opens signUpPage.
func NewSignInModel(ctx context.Context, auth service.AuthService, signUpPage string) *AuthFormModel {
	return newAuthFormModel(ctx, auth, modeSignIn, signUpPage)
}

// NewSignUpModel creates the sign-up form. esc returns to signInPage.
func NewSignUpModel(ctx context.Context, auth service.AuthService, signInPage string) *AuthFormModel {
	return newAuthFormModel(ctx, auth, modeSignUp, signInPage)
}

func newAuthFormModel(ctx context.Context, auth service.AuthService, mode formMode, other string) *AuthFormModel {
	m := &AuthFormModel{ctx: ctx, auth: auth, mode: mode, other: other}

	if mode == modeSignUp {
		m.addInput("Имя", "name", 64, false)
	}
	m.addInput("Email", "email", 254, false)
	m.addInput("Пароль", "password", 256, true)
	m.inputs[0].Focus()

	return m
}

func (m *AuthFormModel) addInput(label, placeholder string, limit int, secret bool) {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 40
	if secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '*'
	}

	m.inputs = append(m.inputs, in)
	m.labels = append(m.labels, label)
}

// Init implements [tea.Model]. Starts the cursor-blink animation.
func (m *AuthFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model].
func (m *AuthFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		m.submitting = false
		m.errMsg = app.MessageFor(msg.err)
		if msg.err == nil {
			m.reset()
		}
		return m, nil

	case sessionChangedMsg:
		// a fresh public screen after sign-out
		if msg.event.Previous.Authenticated() && !msg.event.Current.Authenticated() {
			m.reset()
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc) && m.mode == modeSignUp,
			key.Matches(msg, keys.signUp) && m.mode == modeSignIn:
			m.errMsg = ""
			other := m.other
			return m, func() tea.Msg { return NavigateTo{Page: other} }
		case key.Matches(msg, keys.tab):
			m.moveFocus(1)
			return m, nil
		case key.Matches(msg, keys.backtab):
			m.moveFocus(-1)
			return m, nil
		case key.Matches(msg, keys.enter):
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *AuthFormModel) submit() tea.Cmd {
	if m.submitting {
		return nil
	}

	values := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		values[i] = strings.TrimSpace(in.Value())
	}
	// passwords keep their spaces
	values[len(values)-1] = m.inputs[len(m.inputs)-1].Value()

	for _, v := range values {
		if v == "" {
			m.errMsg = app.MsgEmptyFields
			return nil
		}
	}

	m.errMsg = ""
	m.submitting = true

	ctx, auth := m.ctx, m.auth
	if m.mode == modeSignUp {
		name, email, password := values[0], values[1], values[2]
		return func() tea.Msg {
			return authResultMsg{err: auth.SignUp(ctx, name, email, password)}
		}
	}

	email, password := values[0], values[1]
	return func() tea.Msg {
		return authResultMsg{err: auth.SignIn(ctx, email, password)}
	}
}

func (m *AuthFormModel) reset() {
	for i := range m.inputs {
		m.inputs[i].Reset()
		m.inputs[i].Blur()
	}
	m.focus = 0
	m.inputs[0].Focus()
}

func (m *AuthFormModel) moveFocus(delta int) {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

// View implements [tea.Model].
func (m *AuthFormModel) View() string {
	var b strings.Builder
	b.WriteString("Поле    │ Значение\n")
	b.WriteString("────────┼────────────────────────────────────────────\n")
	for i, in := range m.inputs {
		b.WriteString(padLabel(m.labels[i]))
		b.WriteString(" │ [")
		b.WriteString(in.View())
		b.WriteString("]\n")
	}

	action := "Войти"
	title := "ВХОД"
	hotKeys := "tab: след. поле │ enter: подтвердить │ ctrl+r: регистрация"
	if m.mode == modeSignUp {
		action = "Зарегистрироваться"
		title = "РЕГИСТРАЦИЯ"
		hotKeys = "esc: назад │ tab: след. поле │ enter: подтвердить"
	}

	b.WriteString("\n[")
	b.WriteString(action)
	if m.submitting {
		b.WriteString("...")
	}
	b.WriteString("]\n")

	renderStatus(&b, m.errMsg, "")

	return renderPage(title, strings.TrimRight(b.String(), "\n"), hotKeys)
}

func padLabel(label string) string {
	const width = 7
	if n := len([]rune(label)); n < width {
		return label + strings.Repeat(" ", width-n)
	}
	return label
}
