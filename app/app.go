package app

import (
	"context"

	"log/slog"

	"github.com/sipstop/backend/config"
	httpapi "github.com/sipstop/backend/internal/api/http"
	"github.com/sipstop/backend/internal/auth"
	"github.com/sipstop/backend/internal/dependency"
	"github.com/sipstop/backend/internal/mail"
	"github.com/sipstop/backend/internal/report"
	"github.com/sipstop/backend/internal/store"
)

// App is the main application
type App struct {
	hs     *httpapi.Server
	db     dependency.Repository
	mailer dependency.Mailer
	c      *config.Config
	done   chan struct{}
}

// New returns a new instance of App
func New(c *config.Config) *App {
	return &App{
		c:    c,
		done: make(chan struct{}),
	}
}

// Start starts the app
func (a *App) Start(ctx context.Context) error {
	slog.Default().InfoContext(ctx, "starting sipstop backend")

	db, err := store.New(a.c.DB)
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't open record store",
			slog.String("err", err.Error()),
		)
		return err
	}
	a.db = db

	mailer, err := mail.New(&a.c.Mailer, db.Mail())
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed to create mailer",
			slog.String("err", err.Error()),
		)
		return err
	}
	a.mailer = mailer
	if err := mailer.Start(ctx); err != nil {
		return err
	}

	authS, err := auth.New(&a.c.Auth, db.Users(), mailer)
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed to create auth service",
			slog.String("err", err.Error()),
		)
		return err
	}

	reports := report.New(db)

	// start API server
	a.hs = httpapi.New(&a.c.HTTP, db, authS, reports, mailer)
	if err := a.hs.Start(ctx); err != nil {
		slog.Default().ErrorContext(ctx, "cannot start http server",
			slog.String("err", err.Error()),
		)
		return err
	}

	return nil
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) {
	if a.hs != nil {
		if err := a.hs.Stop(ctx); err != nil {
			slog.Default().ErrorContext(ctx, "http server shutdown failed",
				slog.String("err", err.Error()),
			)
		}
	}
	if a.mailer != nil {
		if err := a.mailer.Stop(); err != nil {
			slog.Default().ErrorContext(ctx, "mailer shutdown failed",
				slog.String("err", err.Error()),
			)
		}
	}
	if a.db != nil {
		a.db.Close()
	}
	close(a.done)
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() chan struct{} {
	return a.done
}
