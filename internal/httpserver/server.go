// internal/httpserver/server.go
//
// HTTP server wiring for the solver backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, logging).
//   - Public endpoints: "/", "/health", "/debug/words", "/metrics", "/openers".
//   - Session endpoints: POST /sessions, then token-gated /sessions/{id}/*.
//   - Suggestion endpoints: POST /sessions/{id}/suggest and a WebSocket variant
//     that streams ranking progress.
//
// Notes:
//   - The solver is stateless; each session's history lives in the session store
//     and is passed to the solver as a snapshot on every request.
//   - Suggestion results are cached in an LRU keyed by history and options.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/openers"
	"github.com/robalobadob/wordle/apps/solver/internal/session"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

const (
	requestTimeout  = 10 * time.Second
	suggestTimeout  = 2 * time.Minute
	shutdownTimeout = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	Store        session.Store
	Lists        *words.Lists
	Openers      *openers.Store // optional
	JWTSecret    string
	SessionTTL   time.Duration
	ClientOrigin string
	Secure       bool // Secure + SameSite=None cookies
	TopK         int  // default suggestion count
	CacheSize    int  // suggestion LRU entries

	SuggestTimeout time.Duration // deadline for POST /sessions/{id}/suggest (default 2m)
}

// Server bundles router, session store, word lists and caches.
type Server struct {
	r       *chi.Mux
	store   session.Store
	lists   *words.Lists
	openers *openers.Store
	tokens  *tokenIssuer
	cache   *lru.Cache[string, session.Suggestion]
	topK    int

	suggestTimeout time.Duration
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) (*Server, error) {
	cacheSize := opts.CacheSize
	if cacheSize <= 0 {
		cacheSize = 256
	}
	cache, err := lru.New[string, session.Suggestion](cacheSize)
	if err != nil {
		return nil, err
	}
	topK := opts.TopK
	if topK <= 0 {
		topK = 40
	}
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	s := &Server{
		r:       chi.NewRouter(),
		store:   opts.Store,
		lists:   opts.Lists,
		openers: opts.Openers,
		tokens:  &tokenIssuer{secret: []byte(opts.JWTSecret), ttl: ttl, secure: opts.Secure},
		cache:   cache,
		topK:    topK,

		suggestTimeout: opts.SuggestTimeout,
	}
	if s.suggestTimeout <= 0 {
		s.suggestTimeout = suggestTimeout
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)         // add X-Request-ID
	s.r.Use(chimw.RealIP)            // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)           // zerolog access log
	s.r.Use(chimw.Recoverer)         // recover from panics
	s.r.Use(cors(opts.ClientOrigin)) // credentials-friendly CORS

	// The WebSocket route must not sit behind a handler timeout.
	s.r.With(s.requireSession).Get("/sessions/{id}/suggest/ws", s.handleSuggestWS)

	s.r.Group(func(r chi.Router) {
		r.Use(jsonContentType)
		// The suggest handler applies its own deadline and reports 503 itself.
		r.With(s.requireSession).Post("/sessions/{id}/suggest", s.handleSuggest)

		r.Group(func(r chi.Router) {
			r.Use(chimw.Timeout(requestTimeout))
			s.mountPublic(r)
			s.mountSessions(r)
		})
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s, nil
}

// Run serves HTTP on addr until ctx is cancelled, then drains in-flight
// requests for up to shutdownTimeout. A clean shutdown returns nil.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.r,
		// Running scans observe the request context, so they stop on shutdown.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

func (s *Server) mountPublic(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "wordle-solver",
			"endpoints": []string{
				"/health", "/openers", "POST /sessions", "POST /sessions/{id}/history",
				"GET /sessions/{id}/candidates", "POST /sessions/{id}/suggest", "/sessions/{id}/suggest/ws",
			},
		})
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		a, v := s.lists.Stats()
		writeJSON(w, http.StatusOK, map[string]any{"answers": a, "vocabulary": v, "key": s.lists.Key()})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/openers", s.handleOpeners)
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
