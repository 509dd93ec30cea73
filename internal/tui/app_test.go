package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-session-keeper/internal/app"
	"github.com/MKhiriev/go-session-keeper/internal/guard"
	"github.com/MKhiriev/go-session-keeper/internal/logger"
	"github.com/MKhiriev/go-session-keeper/internal/mock"
	"github.com/MKhiriev/go-session-keeper/internal/service"
	"github.com/MKhiriev/go-session-keeper/internal/session"
	"github.com/MKhiriev/go-session-keeper/internal/store"
	"github.com/MKhiriev/go-session-keeper/models"
)

var testPolicy = guard.Policy{PublicEntry: "sign-in", PrivateEntry: "home", RedirectAuthenticated: true}

func newTestTUI(t *testing.T, sessions Sessions) (*mock.MockAuthService, *TUI) {
	t.Helper()
	auth := mock.NewMockAuthService(gomock.NewController(t))
	ui, err := New(&service.ClientServices{AuthService: auth}, sessions, testPolicy, models.NewAppBuildInfo("1.0.0", "", ""), logger.Nop())
	require.NoError(t, err)
	return auth, ui
}

func newTestRoot(t *testing.T) (*mock.MockAuthService, RootModel) {
	t.Helper()
	auth, ui := newTestTUI(t, session.NewManager(store.NewMemoryCredentialStore(), logger.Nop()))
	return auth, ui.newRootModel(context.Background())
}

func update(t *testing.T, r RootModel, msg tea.Msg) (RootModel, tea.Cmd) {
	t.Helper()
	next, cmd := r.Update(msg)
	root, ok := next.(RootModel)
	require.True(t, ok)
	return root, cmd
}

func typeText(t *testing.T, r RootModel, text string) RootModel {
	t.Helper()
	r, _ = update(t, r, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return r
}

func changed(prev, cur models.Session) sessionChangedMsg {
	return sessionChangedMsg{event: session.Event{Previous: prev, Current: cur}}
}

var (
	initializing = models.NewSession(false, "", nil)
	loggedOut    = models.NewSession(true, "", nil)
	alice        = models.Profile{ID: "1", Name: "Alice", Email: "alice@example.com"}
)

// ── RootModel ───────────────────────────────────────────────────────────────

func TestRootModel_ShowsLoadingWhileInitializing(t *testing.T) {
	_, r := newTestRoot(t)

	assert.Contains(t, r.View(), "ЗАГРУЗКА")
	assert.NotNil(t, r.Init())

	r, _ = update(t, r, changed(initializing, loggedOut))
	assert.Contains(t, r.View(), "ВХОД")
	assert.NotContains(t, r.View(), "ЗАГРУЗКА")
}

func TestRootModel_IgnoresKeysWhileInitializing(t *testing.T) {
	_, r := newTestRoot(t)

	r = typeText(t, r, "alice")
	r, _ = update(t, r, changed(initializing, loggedOut))
	assert.NotContains(t, r.View(), "alice")
}

func TestRootModel_NavigateTo(t *testing.T) {
	_, r := newTestRoot(t)
	r, _ = update(t, r, changed(initializing, loggedOut))
	assert.Equal(t, guard.RealmPublic, r.router.Realm())

	r, _ = update(t, r, NavigateTo{Page: "home"})
	assert.Equal(t, "home", r.current)
	assert.Equal(t, guard.RealmPrivate, r.router.Realm())

	r, _ = update(t, r, NavigateTo{Page: "missing"})
	assert.Equal(t, "home", r.current)
}

func TestRootModel_SessionChangeReachesAllPages(t *testing.T) {
	_, r := newTestRoot(t)

	r, _ = update(t, r, changed(initializing, models.NewSession(true, "tok", &alice)))
	r, _ = update(t, r, NavigateTo{Page: "home"})

	assert.Contains(t, r.View(), "Alice")
	assert.Contains(t, r.View(), "alice@example.com")
}

func TestRootModel_CtrlCQuits(t *testing.T) {
	_, r := newTestRoot(t)

	r, cmd := update(t, r, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, r.quitByUser)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestRootModel_QuitKeyOnlyInPrivateRealm(t *testing.T) {
	_, r := newTestRoot(t)
	r, _ = update(t, r, changed(initializing, loggedOut))

	r = typeText(t, r, "q")
	assert.False(t, r.quitByUser, "q is text on the sign-in form")

	r, _ = update(t, r, NavigateTo{Page: "home"})
	r, _ = update(t, r, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.True(t, r.quitByUser)
}

func TestRootModel_BuildInfo(t *testing.T) {
	_, r := newTestRoot(t)
	r, _ = update(t, r, changed(initializing, models.NewSession(true, "tok", nil)))
	r, _ = update(t, r, NavigateTo{Page: "home"})

	r, _ = update(t, r, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("v")})
	assert.Contains(t, r.View(), "1.0.0")

	r, _ = update(t, r, tea.KeyMsg{Type: tea.KeyEscape})
	assert.Contains(t, r.View(), "ГЛАВНАЯ")
}

func TestRootModel_InitializeErrorQuits(t *testing.T) {
	_, r := newTestRoot(t)

	r, cmd := update(t, r, initializedMsg{err: context.Canceled})
	assert.ErrorIs(t, r.err, context.Canceled)
	require.NotNil(t, cmd)
}

// ── Sign-in / sign-up ───────────────────────────────────────────────────────

func TestSignIn_EmptyFieldsRejected(t *testing.T) {
	_, r := newTestRoot(t)
	r, _ = update(t, r, changed(initializing, loggedOut))

	r, cmd := update(t, r, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Contains(t, r.View(), app.MsgEmptyFields)
}

func TestSignIn_SubmitCallsService(t *testing.T) {
	auth, r := newTestRoot(t)
	r, _ = update(t, r, changed(initializing, loggedOut))

	r = typeText(t, r, "alice@example.com")
	r, _ = update(t, r, tea.KeyMsg{Type: tea.KeyTab})
	r = typeText(t, r, "secret")

	auth.EXPECT().SignIn(gomock.Any(), "alice@example.com", "secret").
		Return(errors.Join(service.ErrInvalidCredentials, errors.New("401")))

	r, cmd := update(t, r, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Contains(t, r.View(), "[Войти...]")

	r, _ = update(t, r, cmd())
	assert.Contains(t, r.View(), app.MsgInvalidLoginPassword)
	assert.Contains(t, r.View(), "[Войти]")
}

func TestSignIn_CtrlROpensSignUp(t *testing.T) {
	_, r := newTestRoot(t)
	r, _ = update(t, r, changed(initializing, loggedOut))

	_, cmd := update(t, r, tea.KeyMsg{Type: tea.KeyCtrlR})
	require.NotNil(t, cmd)
	assert.Equal(t, NavigateTo{Page: PageSignUp}, cmd())
}

func TestSignUp_SubmitAndBack(t *testing.T) {
	auth, r := newTestRoot(t)
	r, _ = update(t, r, changed(initializing, loggedOut))
	r, _ = update(t, r, NavigateTo{Page: PageSignUp})
	assert.Contains(t, r.View(), "РЕГИСТРАЦИЯ")

	r = typeText(t, r, "Alice")
	r, _ = update(t, r, tea.KeyMsg{Type: tea.KeyTab})
	r = typeText(t, r, "alice@example.com")
	r, _ = update(t, r, tea.KeyMsg{Type: tea.KeyTab})
	r = typeText(t, r, "secret")

	auth.EXPECT().SignUp(gomock.Any(), "Alice", "alice@example.com", "secret").Return(nil)

	r, cmd := update(t, r, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	r, _ = update(t, r, cmd())
	assert.NotContains(t, r.View(), "Ошибка")

	_, cmd = update(t, r, tea.KeyMsg{Type: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.Equal(t, NavigateTo{Page: "sign-in"}, cmd())
}

// ── Home ────────────────────────────────────────────────────────────────────

func TestHome_RefreshAndLogout(t *testing.T) {
	auth, r := newTestRoot(t)
	r, _ = update(t, r, changed(initializing, models.NewSession(true, "tok", &alice)))
	r, _ = update(t, r, NavigateTo{Page: "home"})

	auth.EXPECT().RefreshProfile(gomock.Any()).Return(nil)
	r, cmd := update(t, r, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.NotNil(t, cmd)
	r, _ = update(t, r, cmd())
	assert.Contains(t, r.View(), "Профиль обновлен")

	auth.EXPECT().SignOut(gomock.Any()).Return(nil)
	r, cmd = update(t, r, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	require.NotNil(t, cmd)
	r, _ = update(t, r, cmd())
	assert.NotContains(t, r.View(), "Ошибка")
}

func TestHome_KeysIgnoredWhileBusy(t *testing.T) {
	auth, r := newTestRoot(t)
	r, _ = update(t, r, changed(initializing, models.NewSession(true, "tok", nil)))
	r, _ = update(t, r, NavigateTo{Page: "home"})

	auth.EXPECT().RefreshProfile(gomock.Any()).Return(nil).Times(1)
	r, cmd := update(t, r, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.NotNil(t, cmd)

	_, second := update(t, r, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Nil(t, second)
	cmd()
}

// ── Route guard wiring ──────────────────────────────────────────────────────

// programStub stands in for tea.Program.Send and applies messages in order.
type programStub struct {
	mu   sync.Mutex
	root RootModel
	t    *testing.T
}

func (p *programStub) Send(msg tea.Msg) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.root, _ = update(p.t, p.root, msg)
}

func (p *programStub) view() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.root.View()
}

func TestGuardRedirectsRestoredSession(t *testing.T) {
	ctx := context.Background()
	credentials := store.NewMemoryCredentialStore()
	require.NoError(t, credentials.Set(ctx, store.KeyAuthToken, "tok"))

	manager := session.NewManager(credentials, logger.Nop())
	_, ui := newTestTUI(t, manager)
	p := &programStub{root: ui.newRootModel(ctx), t: t}

	unsubscribe := manager.Subscribe(func(e session.Event) { p.Send(sessionChangedMsg{event: e}) })
	defer unsubscribe()
	stop := guard.Watch(ui.guard, manager, p.root.router, guard.NavigatorFunc(func(target string) {
		p.Send(NavigateTo{Page: target})
	}))
	defer stop()

	require.NoError(t, manager.Initialize(ctx))
	assert.Contains(t, p.view(), "ГЛАВНАЯ")

	require.NoError(t, manager.Invalidate(ctx, "tok", errors.New("401")))
	assert.True(t, strings.Contains(p.view(), "ВХОД"))
	assert.Equal(t, guard.RealmPublic, p.root.router.Realm())
}

func TestNew_RejectsBadEntries(t *testing.T) {
	auth := mock.NewMockAuthService(gomock.NewController(t))
	sessions := session.NewManager(store.NewMemoryCredentialStore(), logger.Nop())

	for _, policy := range []guard.Policy{
		{PublicEntry: "", PrivateEntry: "home"},
		{PublicEntry: "sign-in", PrivateEntry: PageSignUp},
	} {
		_, err := New(&service.ClientServices{AuthService: auth}, sessions, policy, models.AppBuildInfo{}, logger.Nop())
		assert.Error(t, err)
	}
}

func TestHome_ResetAfterSignOut(t *testing.T) {
	auth, r := newTestRoot(t)
	signedIn := models.NewSession(true, "tok", &alice)
	r, _ = update(t, r, changed(initializing, signedIn))
	r, _ = update(t, r, NavigateTo{Page: "home"})

	auth.EXPECT().SignOut(gomock.Any()).Return(nil)
	r, cmd := update(t, r, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	require.NotNil(t, cmd)

	// the logout commit and redirect arrive before the command result
	r, _ = update(t, r, changed(signedIn, loggedOut))
	r, _ = update(t, r, NavigateTo{Page: "sign-in"})
	r, _ = update(t, r, cmd())

	r, _ = update(t, r, changed(loggedOut, signedIn))
	r, _ = update(t, r, NavigateTo{Page: "home"})
	assert.NotContains(t, r.View(), "Выполняется")
}
