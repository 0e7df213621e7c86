// Package web serves the portfolio reports as HTML pages.
//
// Pages are the markdown reports of the renderer package, converted to HTML by goldmark.
package web

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/etnz/cartera"
	"github.com/etnz/cartera/date"
	"github.com/etnz/cartera/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Server is the HTTP front end of a data directory.
type Server struct {
	store  *store.Store
	router *chi.Mux
	md     goldmark.Markdown
	log    zerolog.Logger
	now    func() date.Date
	server *http.Server
}

// New returns a server reading its snapshots from st.
func New(st *store.Store, log zerolog.Logger) *Server {
	s := &Server{
		store:  st,
		router: chi.NewRouter(),
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		log:    log.With().Str("component", "web").Logger(),
		now:    date.Today,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	// Reports are read only.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/cartera", http.StatusFound)
	})
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/cartera", s.handleHoldings)
	s.router.Get("/cartera/{ticker}", s.handleTicker)
	s.router.Get("/movimientos", s.handleMovements)
	s.router.Get("/analisis", s.handleAnalysis)
	s.router.Get("/api/movimientos", s.handleMovementsAPI)
	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start listens on addr until the server is shut down.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	s.log.Info().Str("addr", addr).Msg("Starting HTTP server")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops a started server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	errc := make(chan error, 1)
	go func() { errc <- s.Start(addr) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errc
	}
}

// snapshot loads the current snapshot, writing a 500 on failure.
func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) (*cartera.Snapshot, bool) {
	snap, err := s.store.Load(r.Context())
	if err != nil {
		s.log.Error().Err(err).Str("path", r.URL.Path).Msg("Failed to load snapshot")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return nil, false
	}
	return snap, true
}

var layout = template.Must(template.New("layout").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} · cartera</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 72rem; margin: 1rem auto; padding: 0 1rem; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border-bottom: 1px solid #ddd; padding: .25rem .5rem; }
nav a { margin-right: 1rem; }
</style>
</head>
<body>
<nav><a href="/cartera">Cartera</a><a href="/movimientos">Movimientos</a><a href="/analisis">Análisis</a></nav>
<main>
{{.Body}}
</main>
</body>
</html>
`))

// page converts a markdown report to HTML and writes it in the layout.
func (s *Server) page(w http.ResponseWriter, title, markdown string) {
	var body bytes.Buffer
	if err := s.md.Convert([]byte(markdown), &body); err != nil {
		s.log.Error().Err(err).Str("title", title).Msg("Failed to convert markdown")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	var out bytes.Buffer
	err := layout.Execute(&out, struct {
		Title string
		Body  template.HTML
	}{title, template.HTML(body.String())})
	if err != nil {
		s.log.Error().Err(err).Str("title", title).Msg("Failed to render page")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(out.Bytes())
}
