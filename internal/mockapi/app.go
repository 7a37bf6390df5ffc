package mockapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/mindhaven/internal/logging"
	"github.com/dmitrijs2005/mindhaven/internal/mockapi/config"
	"github.com/dmitrijs2005/mindhaven/internal/mockapi/users"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	server *Server
}

func NewApp(cfg *config.Config) (*App, error) {
	logger, err := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	us := users.NewService(users.NewMemoryRepository(), cfg.SecretKey, cfg.AccessTokenValidityDuration)

	return &App{config: cfg, logger: logger, server: NewServer(us, logger)}, nil
}

// Run serves until ctx is cancelled or the process receives SIGINT,
// SIGTERM or SIGQUIT, then shuts down gracefully.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	listen, err := net.Listen("tcp", app.config.EndpointAddr)
	if err != nil {
		return err
	}
	return app.Serve(ctx, listen)
}

// Serve accepts connections on l until ctx is done.
func (app *App) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           app.server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		app.logger.Info(context.Background(), "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(shutdownCtx, "shutdown", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", l.Addr().String())

	if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
