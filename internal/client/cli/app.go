package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/mindhaven/internal/client/api"
	"github.com/dmitrijs2005/mindhaven/internal/client/config"
	"github.com/dmitrijs2005/mindhaven/internal/client/session"
	"github.com/dmitrijs2005/mindhaven/internal/client/storage"
	"github.com/dmitrijs2005/mindhaven/internal/filex"
	"github.com/dmitrijs2005/mindhaven/internal/logging"
)

type App struct {
	config  *config.Config
	client  *api.Client
	session *session.Manager
	logger  logging.Logger
	db      *sql.DB

	route      session.Route
	wasLoading bool

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens local storage at cfg.StoragePath and wires the API client
// and session manager over it. Close releases the storage.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	if !strings.HasPrefix(cfg.StoragePath, ":memory:") && !strings.HasPrefix(cfg.StoragePath, "file:") {
		if _, err := filex.EnsureParentDir(cfg.StoragePath); err != nil {
			return nil, fmt.Errorf("error preparing storage directory: %w", err)
		}
	}

	store, db, err := storage.Open(ctx, cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing local storage: %w", err)
	}

	a := newApp(cfg.BaseURL, session.NewStoredToken(store), logger,
		bufio.NewReader(os.Stdin), os.Stdout, api.WithTimeout(cfg.RequestTimeout))
	a.config = cfg
	a.db = db
	return a, nil
}

// newApp builds an App around an explicit token store and I/O.
func newApp(baseURL string, tokens *session.StoredToken, logger logging.Logger, in *bufio.Reader, out io.Writer, opts ...api.Option) *App {
	a := &App{
		logger: logger,
		route:  session.RouteHome,
		reader: in,
		out:    out,
	}
	a.client = api.New(baseURL, tokens, append(opts, api.WithLogger(logger))...)
	a.session = session.NewManager(a.client, tokens, a, logger)
	a.session.Subscribe(a.onSessionChange)
	return a
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Run restores the saved session and then serves the REPL until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to mindhaven (type 'help' for commands)")

	a.session.Start(ctx)
	if s := a.session.State(); s.IsAuthenticated {
		a.Navigate(session.RouteDashboard)
	}

	runREPL(ctx, a, a.status, a.reader)
}

// Navigate implements session.Navigator.
func (a *App) Navigate(to session.Route) {
	a.route = to
	switch to {
	case session.RouteDashboard:
		name := "friend"
		if s := a.session.State(); s.User != nil && s.User.Name != "" {
			name = s.User.Name
		}
		fmt.Fprintf(a.out, "Welcome, %s! Type 'help' to see what you can do.\n", name)
	case session.RouteHome:
		fmt.Fprintln(a.out, "You are signed out.")
	}
}

func (a *App) onSessionChange(s session.State) {
	if s.IsLoading && !a.wasLoading {
		fmt.Fprintln(a.out, "Please wait...")
	}
	a.wasLoading = s.IsLoading
}

func (a *App) isLoggedIn() bool {
	return a.session.State().IsAuthenticated
}

func (a *App) status() string {
	s := a.session.State()
	if s.User == nil {
		return "guest"
	}
	if s.User.Name != "" {
		return s.User.Name
	}
	return s.User.Email
}
