// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"codeberg.org/oliverandrich/jokebox/internal/assets"
	"codeberg.org/oliverandrich/jokebox/internal/config"
	"codeberg.org/oliverandrich/jokebox/internal/database"
	"codeberg.org/oliverandrich/jokebox/internal/forms"
	"codeberg.org/oliverandrich/jokebox/internal/handlers"
	"codeberg.org/oliverandrich/jokebox/internal/i18n"
	"codeberg.org/oliverandrich/jokebox/internal/repository"
	authsvc "codeberg.org/oliverandrich/jokebox/internal/services/auth"
	"codeberg.org/oliverandrich/jokebox/internal/services/email"
	"codeberg.org/oliverandrich/jokebox/internal/services/jokes"
	"codeberg.org/oliverandrich/jokebox/internal/services/session"
	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v3"
	"github.com/vinovest/sqlx"
)

// Deps holds everything the HTTP layer needs.
type Deps struct {
	Config   *config.Config
	Repo     *repository.Repository
	Accounts *authsvc.Service
	Jokes    *jokes.Service
	Sessions *session.Manager
	Mailer   handlers.WelcomeMailer // nil when SMTP is not configured
	Assets   *assets.Manifest
}

// NewDeps wires services on top of an open database.
func NewDeps(cfg *config.Config, db *sqlx.DB) (*Deps, error) {
	secure := strings.HasPrefix(cfg.Server.BaseURL, "https://")
	sessions, err := session.NewManager(&cfg.Session, secure)
	if err != nil {
		return nil, fmt.Errorf("failed to create session manager: %w", err)
	}

	manifest, err := assets.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load assets: %w", err)
	}

	repo := repository.New(db)
	accounts := authsvc.NewService(repo, cfg.Admin)

	deps := &Deps{
		Config:   cfg,
		Repo:     repo,
		Accounts: accounts,
		Jokes:    jokes.NewService(repo, accounts, jokes.WithPageSize(cfg.API.PageSize)),
		Sessions: sessions,
		Assets:   manifest,
	}

	if cfg.SMTP.Enabled() {
		mailer, mailErr := email.NewService(&cfg.SMTP, cfg.Server.BaseURL)
		if mailErr != nil {
			return nil, fmt.Errorf("failed to configure mail: %w", mailErr)
		}
		deps.Mailer = mailer
	} else {
		slog.Info("SMTP not configured, welcome mails disabled")
	}

	return deps, nil
}

// NewEcho builds the HTTP application.
func NewEcho(deps *Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = forms.NewValidator()
	e.HTTPErrorHandler = handlers.HTTPErrorHandler

	setupMiddleware(e, deps)
	setupRoutes(e, deps)

	return e
}

// Run starts the server with the given CLI command.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	setupLogger(cfg.Log.Level, cfg.Log.Format)

	slog.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"base_url", cfg.Server.BaseURL,
	)

	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := database.Close(db); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	if initErr := i18n.Init(); initErr != nil {
		return fmt.Errorf("failed to init i18n: %w", initErr)
	}

	deps, err := NewDeps(cfg, db)
	if err != nil {
		return err
	}

	if bootErr := deps.Jokes.Bootstrap(ctx); bootErr != nil {
		return fmt.Errorf("failed to bootstrap data: %w", bootErr)
	}

	return startWithGracefulShutdown(ctx, NewEcho(deps), cfg)
}

func setupRoutes(e *echo.Echo, deps *Deps) {
	h := handlers.New(deps.Jokes, deps.Accounts, deps.Sessions)
	ah := handlers.NewAuth(deps.Accounts, deps.Sessions, deps.Mailer)
	api := handlers.NewAPI(deps.Jokes, deps.Config.API)
	protected := deps.requireAuth()

	e.GET(assets.Prefix+"*", echo.WrapHandler(deps.Assets.Handler()))
	e.GET("/health", h.Health)

	// Pages
	e.GET("/", h.Home)
	e.GET("/browse", h.Browse)
	e.GET("/dashboard", h.Dashboard, protected)
	e.GET("/add-joke", h.AddJokePage, protected)
	e.POST("/add-joke", h.AddJoke, protected)
	e.GET("/my-jokes", h.MyJokes, protected)
	e.POST("/joke/:id/delete", h.DeleteJoke, protected)
	e.POST("/joke/:id/like", h.LikeJoke, protected)
	e.GET("/profile", h.ProfilePage, protected)
	e.POST("/profile", h.UpdateProfile, protected)

	// Accounts
	e.GET("/register", ah.RegisterPage)
	e.POST("/register", ah.Register)
	e.GET("/login", ah.LoginPage)
	e.POST("/login", ah.Login)
	e.GET("/logout", ah.Logout, protected)
	e.POST("/logout", ah.Logout, protected)

	// JSON API
	e.GET("/api/joke", api.RandomJoke)
	e.GET("/api/jokes", api.ListJokes)
	e.POST("/api/jokes", api.CreateJoke)
	e.GET("/api/categories", api.Categories)
}

func startWithGracefulShutdown(ctx context.Context, e *echo.Echo, cfg *config.Config) error {
	tlsResult, err := SetupTLS(cfg)
	if err != nil {
		return fmt.Errorf("TLS setup failed: %w", err)
	}

	errChan := make(chan error, 2)

	// Plain HTTP listener used by ACME for challenges and redirects.
	var httpServer *http.Server

	serve := func(addr string, tlsConfig *tls.Config) {
		slog.Info("server running", "url", cfg.Server.BaseURL)
		var serveErr error
		if tlsConfig == nil {
			serveErr = e.Start(addr)
		} else {
			serveErr = startTLSServer(e, addr, tlsConfig)
		}
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errChan <- serveErr
		}
	}

	addr := net.JoinHostPort(cfg.Server.Host, fmt.Sprint(cfg.Server.Port))
	switch tlsResult.Mode {
	case TLSModeOff:
		go serve(addr, nil)

	case TLSModeACME:
		go serve(":443", tlsResult.TLSConfig)

		httpServer = &http.Server{
			Addr:              ":80",
			Handler:           tlsResult.HTTPHandler,
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			slog.Info("HTTP to HTTPS redirect active", "addr", ":80")
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()

	case TLSModeSelfSigned, TLSModeManual:
		go serve(addr, tlsResult.TLSConfig)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		slog.Info("shutting down server")
	case <-ctx.Done():
		slog.Info("context cancelled, shutting down server")
	case err := <-errChan:
		slog.Error("server error", "error", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown main server", "error", err)
	}

	if httpServer != nil {
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown HTTP redirect server", "error", err)
		}
	}

	slog.Info("server stopped")
	return nil
}

// startTLSServer starts the Echo server with a custom TLS configuration.
func startTLSServer(e *echo.Echo, addr string, tlsConfig *tls.Config) error {
	lc := &net.ListenConfig{}
	ln, err := lc.Listen(context.Background(), "tcp", addr)
	if err != nil {
		return err
	}
	e.TLSListener = tls.NewListener(ln, tlsConfig)
	e.TLSServer.TLSConfig = tlsConfig
	return e.Server.Serve(e.TLSListener)
}
