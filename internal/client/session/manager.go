package session

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/mindhaven/internal/client/api"
	"github.com/dmitrijs2005/mindhaven/internal/logging"
)

// ErrSuperseded is returned by Login and Signup when a newer session call
// (another login, a logout) was issued while the request was in flight.
// The result of the superseded call has not been applied.
var ErrSuperseded = errors.New("session changed while the request was in flight")

// Authenticator is the part of the API client the session depends on.
// *api.Client satisfies it.
type Authenticator interface {
	Login(ctx context.Context, creds api.Credentials) (api.AuthResponse, error)
	Signup(ctx context.Context, req api.SignupRequest) (api.AuthResponse, error)
	CurrentUser(ctx context.Context) (api.UserProfile, error)
}

// Manager is the single owner of session state. It is safe for concurrent
// use. Subscribers are invoked outside the state lock and see snapshots in
// commit order. When only one goroutine drives the Manager, delivery has
// finished by the time the mutating call returns.
type Manager struct {
	auth   Authenticator
	store  TokenStore
	nav    Navigator
	logger logging.Logger

	mu      sync.Mutex
	gen     uint64
	user    *api.UserProfile
	token   string
	loading bool
	settled bool

	subs       map[int]func(State)
	nextSub    int
	pending    []State
	delivering bool
}

// NewManager builds a Manager in PhaseUnknown with IsLoading set.
// Call Start to resolve the stored token.
func NewManager(auth Authenticator, store TokenStore, nav Navigator, logger logging.Logger) *Manager {
	if nav == nil {
		nav = NavigatorFunc(func(Route) {})
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Manager{
		auth:    auth,
		store:   store,
		nav:     nav,
		logger:  logger,
		loading: true,
		subs:    make(map[int]func(State)),
	}
}

// State returns the current snapshot.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Subscribe registers fn for every subsequent state change and returns a
// function that removes it. The current state is not replayed; call State
// for that.
func (m *Manager) Subscribe(fn func(State)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
		})
	}
}

// Start verifies the stored token. Without a token the session settles as
// unauthenticated with no network call. A token the server rejects, for
// whatever reason, is removed; nothing is reported to the caller.
func (m *Manager) Start(ctx context.Context) {
	m.mu.Lock()
	m.gen++
	gen := m.gen
	token, err := m.store.Load(ctx)
	if err != nil {
		m.logger.Warn(ctx, "stored token unreadable, starting signed out", "error", err)
		token = ""
	}
	if token == "" {
		m.user, m.token = nil, ""
		m.loading, m.settled = false, true
		m.commitLocked()
		return
	}
	m.user, m.token = nil, token
	m.loading, m.settled = true, false
	m.commitLocked()

	user, err := m.auth.CurrentUser(ctx)

	m.mu.Lock()
	if gen != m.gen {
		m.mu.Unlock()
		m.logger.Debug(ctx, "discarding stale token verification")
		return
	}
	if err != nil {
		m.logger.Info(ctx, "stored token rejected, signing out", "error", err)
		if cerr := m.store.Clear(ctx); cerr != nil {
			m.logger.Warn(ctx, "failed to remove rejected token", "error", cerr)
		}
		m.user, m.token = nil, ""
	} else {
		m.user = &user
	}
	m.loading, m.settled = false, true
	m.commitLocked()
}

// Login authenticates with email and password. On success the token is
// persisted, the session becomes authenticated and the UI is sent to the
// dashboard. On failure the *api.Error is returned unchanged.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	return m.authenticate(ctx, "login", func(ctx context.Context) (api.AuthResponse, error) {
		return m.auth.Login(ctx, api.Credentials{Email: email, Password: password})
	})
}

// Signup creates an account and signs into it, like Login.
func (m *Manager) Signup(ctx context.Context, name, email, password string) error {
	return m.authenticate(ctx, "signup", func(ctx context.Context) (api.AuthResponse, error) {
		return m.auth.Signup(ctx, api.SignupRequest{Name: name, Email: email, Password: password})
	})
}

func (m *Manager) authenticate(ctx context.Context, op string, do func(context.Context) (api.AuthResponse, error)) error {
	m.mu.Lock()
	m.gen++
	gen := m.gen
	m.loading = true
	m.commitLocked()

	res, err := do(ctx)

	m.mu.Lock()
	if gen != m.gen {
		m.mu.Unlock()
		m.logger.Debug(ctx, "discarding stale result", "op", op)
		return ErrSuperseded
	}
	if err != nil {
		if m.user == nil && m.token != "" {
			// token left over from a verification this call superseded
			if cerr := m.store.Clear(ctx); cerr != nil {
				m.logger.Warn(ctx, "failed to remove unverified token", "error", cerr)
			}
			m.token = ""
		}
		m.loading, m.settled = false, true
		m.commitLocked()
		m.logger.Debug(ctx, "authentication failed", "op", op, "error", err)
		return err
	}
	if serr := m.store.Save(ctx, res.Token); serr != nil {
		m.user, m.token = nil, ""
		m.loading, m.settled = false, true
		m.commitLocked()
		m.logger.Error(ctx, "failed to persist token", "op", op, "error", serr)
		return serr
	}
	user := res.User
	m.user, m.token = &user, res.Token
	m.loading, m.settled = false, true
	m.commitLocked()

	m.logger.Info(ctx, "signed in", "op", op, "user_id", user.ID)
	m.nav.Navigate(RouteDashboard)
	return nil
}

// Logout forgets the session locally and sends the UI home. It never
// fails and may be called any number of times; in-flight logins are
// superseded.
func (m *Manager) Logout() {
	ctx := context.Background()

	m.mu.Lock()
	m.gen++
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Warn(ctx, "failed to remove stored token", "error", err)
	}
	m.user, m.token = nil, ""
	m.loading, m.settled = false, true
	m.commitLocked()

	m.nav.Navigate(RouteHome)
}

func (m *Manager) snapshotLocked() State {
	s := State{Token: m.token, IsLoading: m.loading}
	if m.user != nil {
		u := *m.user
		s.User = &u
	}
	s.IsAuthenticated = s.User != nil && s.Token != ""
	switch {
	case s.IsAuthenticated:
		s.Phase = PhaseAuthenticated
	case m.settled:
		s.Phase = PhaseUnauthenticated
	default:
		s.Phase = PhaseUnknown
	}
	return s
}

// commitLocked queues the current state for subscribers and releases m.mu.
// Whichever goroutine finds the queue idle drains it, so snapshots are
// delivered one at a time in the order they were committed.
func (m *Manager) commitLocked() {
	m.pending = append(m.pending, m.snapshotLocked())
	if m.delivering {
		m.mu.Unlock()
		return
	}
	m.delivering = true
	for len(m.pending) > 0 {
		batch := m.pending
		m.pending = nil
		subs := m.subscribersLocked()
		m.mu.Unlock()

		for _, s := range batch {
			for _, fn := range subs {
				fn(s)
			}
		}
		m.mu.Lock()
	}
	m.delivering = false
	m.mu.Unlock()
}

func (m *Manager) subscribersLocked() []func(State) {
	subs := make([]func(State), 0, len(m.subs))
	for id := 0; id < m.nextSub; id++ {
		if fn, ok := m.subs[id]; ok {
			subs = append(subs, fn)
		}
	}
	return subs
}
