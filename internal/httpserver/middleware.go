// internal/httpserver/middleware.go
//
// HTTP middleware:
//   - jsonContentType: default JSON Content-Type.
//   - cors:            credentialed CORS for a single configured origin.
//   - requestLogger:   one zerolog line per request.
//   - requireSession:  session token check for /sessions/{id}/* routes.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/session"
)

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger logs method, path, status and latency for every request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Info().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

// ctxSessionKey is the context key type for the resolved *session.Session.
type ctxSessionKey struct{}

// requireSession enforces a valid token whose subject is the {id} URL param
// and injects the session into the request context.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		tok := bearerCookieOrQuery(r)
		if tok == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		sid, err := s.tokens.parse(tok)
		if err != nil || sid != id {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		sess, err := s.store.Get(r.Context(), id)
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		if err != nil {
			log.Error().Err(err).Str("session", id).Msg("load session")
			writeError(w, http.StatusInternalServerError, "load_failed")
			return
		}
		ctx := context.WithValue(r.Context(), ctxSessionKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionFrom returns the session placed by requireSession.
func sessionFrom(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(ctxSessionKey{}).(*session.Session)
	return sess
}
