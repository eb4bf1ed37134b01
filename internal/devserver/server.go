package devserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter configures the chi router with all routes and middleware.
func NewRouter(store *Store, baseURL string, logger *slog.Logger) *chi.Mux {
	h := NewHandler(store, baseURL, logger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recoverer(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.Login)
		r.Post("/auth/register", h.Register)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(store))

			r.Get("/auth/me", h.Me)

			r.Route("/links", func(r chi.Router) {
				r.Get("/", h.ListLinks)
				r.Post("/", h.CreateLink)
				r.Get("/{id}", h.GetLink)
				r.Patch("/{id}", h.UpdateLink)
				r.Delete("/{id}", h.DeleteLink)
			})

			r.Route("/qrcodes", func(r chi.Router) {
				r.Get("/", h.ListQRCodes)
				r.Post("/", h.CreateQRCode)
				r.Delete("/{id}", h.DeleteQRCode)
			})

			r.Route("/files", func(r chi.Router) {
				r.Get("/", h.ListFiles)
				r.Get("/{id}", h.GetFile)
				r.Delete("/{id}", h.DeleteFile)
			})

			r.Route("/billing", func(r chi.Router) {
				r.Get("/subscription", h.Subscription)
				r.Post("/checkout", h.CreateCheckout)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(RequireAdmin)
				r.Get("/users", h.ListUsers)
				r.Patch("/users/{id}", h.UpdateUser)
			})
		})
	})

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

// Server wraps http.Server with graceful shutdown.
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
	logger          *slog.Logger
}

// NewServer creates a Server for the given handler and port.
func NewServer(handler http.Handler, port int, readTimeout, writeTimeout, shutdownTimeout time.Duration, logger *slog.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      handler,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		shutdownTimeout: shutdownTimeout,
		logger:          logger,
	}
}

// Run starts the server and blocks until SIGINT/SIGTERM, then shuts down
// gracefully within the configured timeout.
func (s *Server) Run() error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case sig := <-stop:
		s.logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
