// Package cli implements the bliic command tree.
package cli

import (
	"errors"
	"io"
	"log/slog"

	"github.com/bliic/bliic/internal/api"
	"github.com/bliic/bliic/internal/config"
	"github.com/bliic/bliic/internal/model"
	"github.com/bliic/bliic/internal/notify"
	"github.com/bliic/bliic/internal/session"
)

// ErrNotLoggedIn indicates a command needing a session ran while anonymous.
var ErrNotLoggedIn = errors.New("not logged in")

// App carries the shared dependencies for every command. It is constructed
// once at startup and passed down the command tree; there is no package
// level mutable state.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Client   *api.Client
	Session  *session.Store
	Notify   *notify.Queue
	Renderer *notify.Renderer
	Out      io.Writer
}

// NewApp wires the client, session store, and notification queue, then
// restores any persisted session so commands start with the right identity.
func NewApp(cfg *config.Config, logger *slog.Logger, out io.Writer) (*App, error) {
	client := api.New(cfg.APIBaseURL, cfg.HTTPTimeout, logger)

	path := cfg.SessionFile
	if path == "" {
		var err error
		path, err = session.DefaultSessionPath()
		if err != nil {
			return nil, err
		}
	}

	store := session.NewStore(session.NewFileStorage(path), client, logger)
	store.Restore()

	return &App{
		Config:   cfg,
		Logger:   logger,
		Client:   client,
		Session:  store,
		Notify:   notify.New(cfg.NotifyTTL, logger),
		Renderer: notify.NewRenderer(out),
		Out:      out,
	}, nil
}

// Flush drains the notification queue and renders everything it held.
// Called once after command execution.
func (a *App) Flush() []notify.Notification {
	items := a.Notify.Flush()
	a.Renderer.RenderAll(items)
	return items
}

// requireUser returns the logged-in user or pushes a warning and fails.
func (a *App) requireUser() (model.User, error) {
	user, ok := a.Session.CurrentUser()
	if !ok {
		a.Notify.Warn("Not logged in. Run 'bliic login' first.")
		return model.User{}, ErrNotLoggedIn
	}
	return user, nil
}

// notifyAPIError surfaces an API failure through the queue, preferring the
// server-provided message.
func (a *App) notifyAPIError(err error) {
	var authErr *api.AuthError
	if errors.As(err, &authErr) {
		a.Notify.Error(authErr.Message)
		return
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		a.Notify.Error(apiErr.Error())
		return
	}
	a.Notify.Error(err.Error())
}
