// Package server wires the form variants, the schema export, and the static
// assets into one HTTP application.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	theme "github.com/goliatone/go-theme"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formbench/pkg/render"
	gotemplate "github.com/goliatone/go-formbench/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formbench/pkg/renderers/runtime"
	"github.com/goliatone/go-formbench/pkg/renderers/vanilla"
)

// Option customises server construction.
type Option func(*config)

type config struct {
	addr  string
	log   *logrus.Logger
	theme *theme.RendererConfig
	clock func() time.Time
}

// WithAddr sets the listen address. Defaults to ":8080".
func WithAddr(addr string) Option {
	return func(cfg *config) {
		if addr != "" {
			cfg.addr = addr
		}
	}
}

// WithLogger injects a configured logger.
func WithLogger(log *logrus.Logger) Option {
	return func(cfg *config) {
		if log != nil {
			cfg.log = log
		}
	}
}

// WithTheme applies a resolved theme to the runtime variant.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// WithClock overrides the submission timestamp source.
func WithClock(clock func() time.Time) Option {
	return func(cfg *config) {
		if clock != nil {
			cfg.clock = clock
		}
	}
}

// Server hosts the landing page, both form variants, the validate-field
// endpoint, the schema export, and the embedded assets.
type Server struct {
	addr      string
	log       *logrus.Logger
	router    *mux.Router
	registry  *render.Registry
	templates *gotemplate.Engine
	clock     func() time.Time
}

// New builds the server with both variant renderers registered.
func New(options ...Option) (*Server, error) {
	cfg := config{
		addr:  ":8080",
		log:   logrus.New(),
		clock: time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	vanillaRenderer, err := vanilla.New()
	if err != nil {
		return nil, fmt.Errorf("server: build vanilla renderer: %w", err)
	}
	runtimeRenderer, err := runtime.New(runtime.WithTheme(cfg.theme))
	if err != nil {
		return nil, fmt.Errorf("server: build runtime renderer: %w", err)
	}

	registry := render.NewRegistry()
	if err := registry.Register(vanillaRenderer); err != nil {
		return nil, fmt.Errorf("server: register vanilla renderer: %w", err)
	}
	if err := registry.Register(runtimeRenderer); err != nil {
		return nil, fmt.Errorf("server: register runtime renderer: %w", err)
	}

	templates, err := gotemplate.New(gotemplate.WithFS(vanilla.TemplatesFS()))
	if err != nil {
		return nil, fmt.Errorf("server: configure template engine: %w", err)
	}

	s := &Server{
		addr:      cfg.addr,
		log:       cfg.log,
		router:    mux.NewRouter(),
		registry:  registry,
		templates: templates,
		clock:     cfg.clock,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.router.Use(s.logRequests)

	s.router.HandleFunc("/", s.handleLanding).Methods(http.MethodGet)
	s.router.HandleFunc("/forms/{variant}", s.handleForm).Methods(http.MethodGet)
	s.router.HandleFunc("/forms/vanilla/submit", s.handleVanillaSubmit).Methods(http.MethodPost)
	s.router.HandleFunc("/forms/vanilla/validate-field", s.handleValidateField).Methods(http.MethodPost)
	s.router.HandleFunc("/forms/runtime/submit", s.handleRuntimeSubmit).Methods(http.MethodPost)
	s.router.HandleFunc("/api/schema", s.handleSchema).Methods(http.MethodGet)

	assets := layeredFS{vanilla.AssetsFS(), runtime.AssetsFS()}
	s.router.PathPrefix("/assets/").Handler(
		http.StripPrefix("/assets/", http.FileServer(http.FS(assets))))
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.addr).Info("formbench server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   recorder.status,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}

// layeredFS serves the first layer that holds the requested file, letting the
// two variant bundles share one /assets/ mount.
type layeredFS []fs.FS

func (l layeredFS) Open(name string) (fs.File, error) {
	for _, layer := range l {
		if file, err := layer.Open(name); err == nil {
			return file, nil
		}
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}
