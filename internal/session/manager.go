package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-session-keeper/internal/logger"
	"github.com/MKhiriev/go-session-keeper/internal/metrics"
	"github.com/MKhiriev/go-session-keeper/internal/store"
	"github.com/MKhiriev/go-session-keeper/models"
)

// Option configures a [Manager].
type Option func(*Manager)

// WithMetrics records every committed transition on r.
func WithMetrics(r metrics.Recorder) Option {
	return func(m *Manager) {
		m.metrics = r
	}
}

// WithClock replaces time.Now, used when checking stored credential expiry.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

type subscription struct {
	id       uint64
	listener Listener
}

// Manager is the single source of truth for the authentication state.
type Manager struct {
	store   store.CredentialStore
	metrics metrics.Recorder
	logger  *logger.Logger
	now     func() time.Time

	// one-slot semaphore serialising Initialize, Login, Logout and Invalidate
	mutation chan struct{}

	mu    sync.RWMutex
	state models.Session

	subsMu sync.Mutex
	subs   []subscription
	nextID uint64
}

var _ Sessions = (*Manager)(nil)

// NewManager creates a Manager in the Initializing state.
func NewManager(credentialStore store.CredentialStore, log *logger.Logger, opts ...Option) *Manager {
	m := &Manager{
		store:    credentialStore,
		metrics:  metrics.Nop{},
		logger:   log.WithComponent("session"),
		now:      time.Now,
		mutation: make(chan struct{}, 1),
		state:    models.NewSession(false, "", nil),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Current returns a snapshot of the last committed session.
func (m *Manager) Current() models.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return snapshot(m.state)
}

// Subscribe registers listener. The returned function is safe to call more
// than once.
func (m *Manager) Subscribe(listener Listener) func() {
	m.subsMu.Lock()
	m.nextID++
	id := m.nextID
	m.subs = append(m.subs, subscription{id: id, listener: listener})
	m.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.subsMu.Lock()
			defer m.subsMu.Unlock()
			for i, s := range m.subs {
				if s.id == id {
					m.subs = append(m.subs[:i:i], m.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Initialize restores the stored session. Only the first call reads the
// store; later calls return nil without side effects. Store failures are
// logged and degrade to the logged-out state, so the only error returned is
// ctx.Err() while waiting for a concurrent mutation.
func (m *Manager) Initialize(ctx context.Context) error {
	if err := m.acquire(ctx); err != nil {
		return err
	}
	defer m.release()

	m.initializeLocked(ctx)
	return nil
}

// Login writes auth_token and then user_data (or removes user_data when
// profile is nil). In-memory state changes only after both writes succeed;
// on failure the previous record is restored on a best-effort basis.
//
// Calling Login before Initialize reads the stored record first and commits
// the restore only together with the login; a failed call leaves the session
// Initializing.
func (m *Manager) Login(ctx context.Context, credential string, profile *models.Profile) error {
	if credential == "" {
		return ErrEmptyCredential
	}

	if err := m.acquire(ctx); err != nil {
		return err
	}
	defer m.release()

	prev := m.Current()
	if prev.Status == models.StatusInitializing {
		stored, storedProfile := m.loadStoredRecord(ctx)
		prev = models.NewSession(true, stored, storedProfile)
	}

	if err := m.store.Set(ctx, store.KeyAuthToken, credential); err != nil {
		m.logger.Err(err).Str("func", "Manager.Login").Msg("failed to store credential")
		return errors.Join(ErrPersistSession, err)
	}

	if err := m.writeProfile(ctx, profile); err != nil {
		m.logger.Err(err).Str("func", "Manager.Login").Msg("failed to store profile, rolling back credential")
		m.rollback(ctx, prev)
		return errors.Join(ErrPersistSession, err)
	}

	m.commit(models.NewSession(true, credential, profile))
	return nil
}

// Logout removes both stored keys and commits the logged-out state whether
// or not removal succeeded. Removal failures are returned joined with
// ErrClearSession.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.acquire(ctx); err != nil {
		return err
	}
	defer m.release()

	m.initializeLocked(ctx)
	return m.logoutLocked(ctx)
}

// UpdateProfile replaces the stored profile of the session holding
// credential. It is a no-op when the session holds another credential or none,
// so a refresh that lost a race with Logout cannot sign the user back in.
// auth_token is never written.
func (m *Manager) UpdateProfile(ctx context.Context, credential string, profile *models.Profile) error {
	if err := m.acquire(ctx); err != nil {
		return err
	}
	defer m.release()

	current := m.Current()
	if credential == "" || current.Credential != credential {
		m.logger.Debug().Str("func", "Manager.UpdateProfile").Msg("session changed, dropping profile update")
		return nil
	}

	if err := m.writeProfile(ctx, profile); err != nil {
		m.logger.Err(err).Str("func", "Manager.UpdateProfile").Msg("failed to store profile")
		return errors.Join(ErrPersistSession, err)
	}

	m.commit(models.NewSession(true, credential, profile))
	return nil
}

// Invalidate logs out after the backend rejected credential. It does nothing
// when the session no longer holds credential, so a late rejection of an old
// token cannot log out a newer session.
func (m *Manager) Invalidate(ctx context.Context, credential string, reason error) error {
	if err := m.acquire(ctx); err != nil {
		return err
	}
	defer m.release()

	if current := m.Current(); credential == "" || current.Credential != credential {
		m.logger.Debug().Str("func", "Manager.Invalidate").Msg("ignoring invalidation of a credential no longer in use")
		return nil
	}

	m.logger.Warn().Err(reason).Str("func", "Manager.Invalidate").Msg("credential rejected by backend, logging out")
	return m.logoutLocked(ctx)
}

func (m *Manager) acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case m.mutation <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Manager) release() {
	<-m.mutation
}

func (m *Manager) initializeLocked(ctx context.Context) {
	if m.Current().Status != models.StatusInitializing {
		return
	}

	credential, profile := m.loadStoredRecord(ctx)
	m.commit(models.NewSession(true, credential, profile))
}

// loadStoredRecord reads the persisted session. Any store failure yields the
// logged-out record.
func (m *Manager) loadStoredRecord(ctx context.Context) (string, *models.Profile) {
	credential, err := m.store.Get(ctx, store.KeyAuthToken)
	switch {
	case errors.Is(err, store.ErrKeyNotFound):
		return "", nil
	case err != nil:
		m.logger.Err(err).Str("func", "Manager.Initialize").Msg("failed to read stored credential, starting logged out")
		return "", nil
	case credential == "":
		return "", nil
	}

	m.logCredentialClaims(credential)

	raw, err := m.store.Get(ctx, store.KeyUserData)
	switch {
	case errors.Is(err, store.ErrKeyNotFound):
		return credential, nil
	case err != nil:
		m.logger.Err(err).Str("func", "Manager.Initialize").Msg("failed to read stored profile, starting logged out")
		return "", nil
	}

	profile, err := models.UnmarshalProfile(raw)
	if err != nil || profile == (models.Profile{}) {
		m.logger.Warn().Err(err).Str("func", "Manager.Initialize").Msg("stored profile is unreadable, ignoring it")
		return credential, nil
	}

	return credential, &profile
}

// logCredentialClaims is informational only. The backend decides whether a
// credential is still valid.
func (m *Manager) logCredentialClaims(credential string) {
	claims, err := models.ParseClaims(credential)
	if err != nil {
		return
	}

	event := m.logger.Debug()
	if claims.Expired(m.now()) {
		event = m.logger.Warn()
	}
	event.Str("func", "Manager.Initialize").
		Str("subject", claims.Subject).
		Time("expires_at", claims.ExpiresAt).
		Bool("expired", claims.Expired(m.now())).
		Msg("restored stored credential")
}

func (m *Manager) writeProfile(ctx context.Context, profile *models.Profile) error {
	if profile == nil {
		return m.store.Remove(ctx, store.KeyUserData)
	}

	raw, err := models.MarshalProfile(*profile)
	if err != nil {
		return err
	}
	return m.store.Set(ctx, store.KeyUserData, raw)
}

// rollback restores the record that matched prev after a partial login
// write. Failures are only logged; the in-memory state was never changed.
func (m *Manager) rollback(ctx context.Context, prev models.Session) {
	var err error
	if prev.Credential == "" {
		err = m.store.Remove(ctx, store.KeyAuthToken)
	} else {
		err = m.store.Set(ctx, store.KeyAuthToken, prev.Credential)
	}
	if err != nil {
		m.logger.Err(err).Str("func", "Manager.rollback").Msg("failed to restore previous credential")
	}
}

func (m *Manager) logoutLocked(ctx context.Context) error {
	var errs []error
	// auth_token first: its absence alone marks the record as logged out
	if err := m.store.Remove(ctx, store.KeyAuthToken); err != nil {
		errs = append(errs, fmt.Errorf("remove %s: %w", store.KeyAuthToken, err))
	}
	if err := m.store.Remove(ctx, store.KeyUserData); err != nil {
		errs = append(errs, fmt.Errorf("remove %s: %w", store.KeyUserData, err))
	}

	m.commit(models.NewSession(true, "", nil))

	if len(errs) > 0 {
		err := errors.Join(append([]error{ErrClearSession}, errs...)...)
		m.logger.Err(err).Str("func", "Manager.Logout").Msg("logged out with stale stored record")
		return err
	}
	return nil
}

// commit publishes next and notifies subscribers. Callers hold the mutation
// slot, so notifications are delivered in commit order.
func (m *Manager) commit(next models.Session) {
	m.mu.Lock()
	prev := m.state
	m.state = next
	m.mu.Unlock()

	m.metrics.RecordSessionTransition(prev.Status.String(), next.Status.String())
	m.logger.Info().
		Str("func", "Manager.commit").
		Stringer("from", prev.Status).
		Stringer("to", next.Status).
		Msg("session transition")

	m.subsMu.Lock()
	subs := make([]subscription, len(m.subs))
	copy(subs, m.subs)
	m.subsMu.Unlock()

	for _, s := range subs {
		s.listener(Event{Previous: snapshot(prev), Current: snapshot(next)})
	}
}

func snapshot(s models.Session) models.Session {
	if s.Profile != nil {
		p := *s.Profile
		s.Profile = &p
	}
	return s
}
