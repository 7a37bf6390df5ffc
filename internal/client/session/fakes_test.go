package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/mindhaven/internal/client/api"
)

type memTokens struct {
	mu      sync.Mutex
	token   string
	loadErr error
	saveErr error
	clears  int
}

func (s *memTokens) Load(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.loadErr
}

func (s *memTokens) Save(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.token = token
	return nil
}

func (s *memTokens) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
	s.token = ""
	return nil
}

func (s *memTokens) Token(ctx context.Context) (string, error) { return s.Load(ctx) }

func (s *memTokens) get() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// fakeAuth answers with the configured functions and counts calls.
type fakeAuth struct {
	mu     sync.Mutex
	calls  map[string]int
	login  func(ctx context.Context, c api.Credentials) (api.AuthResponse, error)
	signup func(ctx context.Context, r api.SignupRequest) (api.AuthResponse, error)
	me     func(ctx context.Context) (api.UserProfile, error)
}

func (f *fakeAuth) count(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[op]++
}

func (f *fakeAuth) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeAuth) Login(ctx context.Context, c api.Credentials) (api.AuthResponse, error) {
	f.count("login")
	return f.login(ctx, c)
}

func (f *fakeAuth) Signup(ctx context.Context, r api.SignupRequest) (api.AuthResponse, error) {
	f.count("signup")
	return f.signup(ctx, r)
}

func (f *fakeAuth) CurrentUser(ctx context.Context) (api.UserProfile, error) {
	f.count("me")
	return f.me(ctx)
}

type routes struct {
	mu   sync.Mutex
	seen []Route
}

func (r *routes) Navigate(to Route) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, to)
}

func (r *routes) all() []Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Route(nil), r.seen...)
}

type pendingResult struct {
	res api.AuthResponse
	err error
}

// blockingLogin returns a login func that signals started and then waits
// for a response on release.
func blockingLogin(started chan<- struct{}, release <-chan pendingResult) func(context.Context, api.Credentials) (api.AuthResponse, error) {
	return func(context.Context, api.Credentials) (api.AuthResponse, error) {
		started <- struct{}{}
		r := <-release
		return r.res, r.err
	}
}

func authOK(token, id string) api.AuthResponse {
	return api.AuthResponse{Token: token, User: api.UserProfile{ID: id, Name: "A", Email: "a@b.com"}}
}
