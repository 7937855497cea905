// internal/httpserver/routes_session.go
//
// Session routes. A session is the server-side home of one player's history:
//   - POST   /sessions                        → create; returns {sessionId, token}
//   - GET    /sessions/{id}                   → history + remaining candidate count
//   - DELETE /sessions/{id}                   → forget the session
//   - POST   /sessions/{id}/history           → append {guess, pattern}
//   - DELETE /sessions/{id}/history/{index}   → remove one entry
//   - POST   /sessions/{id}/reset             → clear history
//   - GET    /sessions/{id}/candidates        → remaining candidates (?limit=N, ?all=true)
//
// Every /sessions/{id}/* route requires the token issued at creation.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/session"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// defaultCandidateLimit is the candidate preview size.
const defaultCandidateLimit = 80

// validate is the validator instance for request payloads.
// Initialized in init() with the g/y/b pattern rule.
var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("gybpattern", func(fl validator.FieldLevel) bool {
		_, err := solver.ParsePattern(fl.Field().String())
		return err == nil
	})
}

func (s *Server) mountSessions(r chi.Router) {
	r.Post("/sessions", s.handleNewSession)

	gated := r.With(s.requireSession)
	gated.Get("/sessions/{id}", s.handleGetSession)
	gated.Delete("/sessions/{id}", s.handleDeleteSession)
	gated.Post("/sessions/{id}/history", s.handleAddHistory)
	gated.Delete("/sessions/{id}/history/{index}", s.handleRemoveHistory)
	gated.Post("/sessions/{id}/reset", s.handleReset)
	gated.Get("/sessions/{id}/candidates", s.handleCandidates)
}

type newSessionRes struct {
	SessionID string `json:"sessionId"`
	Token     string `json:"token"`
}

// handleNewSession creates an empty session and issues its token
// (returned in the body and set as a cookie).
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	sess := session.New()
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.tokens.sign(sess.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.tokens.setCookie(w, tok, exp)
	sessionsCreated.Inc()
	log.Debug().Str("session", sess.ID).Msg("session created")
	writeJSON(w, http.StatusCreated, newSessionRes{SessionID: sess.ID, Token: tok})
}

type sessionRes struct {
	SessionID  string                `json:"sessionId"`
	CreatedAt  string                `json:"createdAt"`
	History    []solver.HistoryEntry `json:"history"`
	Candidates int                   `json:"candidates"`
}

func (s *Server) sessionView(sess *session.Session) sessionRes {
	h := sess.History()
	return sessionRes{
		SessionID:  sess.ID,
		CreatedAt:  sess.CreatedAt.Format(time.RFC3339),
		History:    h,
		Candidates: len(solver.Narrow(s.lists.Answers, h)),
	}
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sessionView(sessionFrom(r.Context())))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	if err := s.store.Delete(r.Context(), sess.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// addHistoryReq is the payload for POST /sessions/{id}/history.
type addHistoryReq struct {
	Guess   string `json:"guess" validate:"required,len=5,alpha"`
	Pattern string `json:"pattern" validate:"required,len=5,gybpattern"`
}

// handleAddHistory validates a typed (guess, pattern) pair and appends it.
// Malformed input is rejected here; the solver never sees it.
func (s *Server) handleAddHistory(w http.ResponseWriter, r *http.Request) {
	var req addHistoryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	req.Guess = strings.TrimSpace(req.Guess)
	req.Pattern = strings.TrimSpace(req.Pattern)
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	guess, err := solver.ParseWord(req.Guess)
	if err != nil {
		writeError(w, http.StatusBadRequest, solver.ErrInvalidWord.Error())
		return
	}
	pattern, err := solver.ParsePattern(req.Pattern)
	if err != nil {
		writeError(w, http.StatusBadRequest, solver.ErrInvalidPattern.Error())
		return
	}

	sess := sessionFrom(r.Context())
	sess.Add(solver.HistoryEntry{Guess: guess, Pattern: pattern})
	writeJSON(w, http.StatusOK, s.sessionView(sess))
}

func (s *Server) handleRemoveHistory(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_index")
		return
	}
	sess := sessionFrom(r.Context())
	if err := sess.Remove(idx); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.sessionView(sess))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	sess.Reset()
	writeJSON(w, http.StatusOK, s.sessionView(sess))
}

type candidatesRes struct {
	Count      int           `json:"count"`
	Candidates []solver.Word `json:"candidates"`
}

// handleCandidates returns the remaining candidate pool. By default only the
// first defaultCandidateLimit words are listed; ?all=true lists every one.
func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	pool := solver.Narrow(s.lists.Answers, sessionFrom(r.Context()).History())

	limit := defaultCandidateLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	list := pool
	if r.URL.Query().Get("all") != "true" && len(list) > limit {
		list = list[:limit]
	}
	writeJSON(w, http.StatusOK, candidatesRes{Count: len(pool), Candidates: list})
}

// validationMessage turns validator errors into a short client message.
func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return "invalid"
	}
	switch verrs[0].Field() {
	case "Guess":
		return solver.ErrInvalidWord.Error()
	case "Pattern":
		return solver.ErrInvalidPattern.Error()
	}
	return "invalid " + strings.ToLower(verrs[0].Field())
}
