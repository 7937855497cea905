// internal/httpserver/routes_suggest.go
//
// Suggestion routes:
//   - POST /sessions/{id}/suggest     → narrow + rank, one JSON response
//   - GET  /sessions/{id}/suggest/ws  → same, streamed over a WebSocket:
//       client sends {"onlyAnswers":bool,"topK":n}
//       server sends {"type":"progress","done":i,"total":n}... then
//                    {"type":"result","suggestion":{...}} or {"type":"error","error":"..."}
//       a client {"type":"cancel"} message or disconnect aborts the scan.
//   - GET  /openers                   → precomputed best openers for the loaded lists
//
// With an empty history the precomputed openers answer the request when they
// cover the requested topK.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/openers"
	"github.com/robalobadob/wordle/apps/solver/internal/session"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// suggestReq is the payload for both suggest transports.
type suggestReq struct {
	OnlyAnswers bool `json:"onlyAnswers"`
	TopK        int  `json:"topK" validate:"gte=0,lte=1000"`
}

// handleSuggest runs a suggestion for the session in the request context.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req suggestReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid topK")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.suggestTimeout)
	defer cancel()

	sug, err := s.suggest(ctx, sessionFrom(r.Context()), req, "http", nil)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			writeError(w, http.StatusServiceUnavailable, "timeout")
			return
		}
		log.Error().Err(err).Msg("suggest")
		writeError(w, http.StatusInternalServerError, "suggest_failed")
		return
	}
	writeJSON(w, http.StatusOK, sug)
}

// suggest resolves a suggestion through the cache, the stored openers, or a
// fresh narrow+rank run, in that order.
func (s *Server) suggest(ctx context.Context, sess *session.Session, req suggestReq, source string, progress solver.ProgressFunc) (session.Suggestion, error) {
	history := sess.History()
	topK := req.TopK
	if topK <= 0 {
		topK = s.topK
	}

	key := cacheKey(history, req.OnlyAnswers, topK)
	if sug, ok := s.cache.Get(key); ok {
		rankTotal.WithLabelValues(source, "true").Inc()
		return sug, nil
	}

	if len(history) == 0 && !req.OnlyAnswers && s.openers != nil {
		if list, err := s.openers.Top(ctx, s.lists.Key(), topK); err == nil && len(list) >= topK {
			sug := session.Suggestion{Status: session.StatusRanked, Candidates: s.lists.Answers, Guesses: list}
			s.cache.Add(key, sug)
			rankTotal.WithLabelValues(source, "true").Inc()
			return sug, nil
		}
	}

	start := time.Now()
	sug, err := session.Suggest(ctx, s.lists, history, solver.Options{
		TopK:         topK,
		OnlyFromPool: req.OnlyAnswers,
		Progress:     progress,
	})
	if err != nil {
		return session.Suggestion{}, err
	}
	took := time.Since(start)
	rankDuration.Observe(took.Seconds())
	rankTotal.WithLabelValues(source, "false").Inc()
	log.Info().
		Str("session", sess.ID).
		Int("history", len(history)).
		Int("pool", len(sug.Candidates)).
		Str("status", sug.Status).
		Dur("took", took).
		Msg("suggest")

	s.cache.Add(key, sug)
	return sug, nil
}

// cacheKey identifies a suggestion by history and options.
func cacheKey(history []solver.HistoryEntry, onlyAnswers bool, topK int) string {
	var b strings.Builder
	for _, h := range history {
		b.WriteString(h.String())
		b.WriteByte(';')
	}
	b.WriteString("only=")
	b.WriteString(strconv.FormatBool(onlyAnswers))
	b.WriteString(";k=")
	b.WriteString(strconv.Itoa(topK))
	return b.String()
}

// ----------------------------- websocket -----------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // the session token already gates access
	},
}

// wsMessage is every frame exchanged on the suggest socket.
type wsMessage struct {
	Type       string              `json:"type"`
	Done       int                 `json:"done,omitempty"`
	Total      int                 `json:"total,omitempty"`
	Suggestion *session.Suggestion `json:"suggestion,omitempty"`
	Error      string              `json:"error,omitempty"`
}

func sendJSON(ws *websocket.Conn, v any) error {
	err := ws.WriteJSON(v)
	if err != nil {
		log.Warn().Err(err).Msg("websocket write")
	}
	return err
}

// handleSuggestWS streams ranking progress for one suggestion request.
func (s *Server) handleSuggestWS(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	defer ws.Close()

	var req suggestReq
	if err := ws.ReadJSON(&req); err != nil {
		return
	}
	if err := validate.Struct(req); err != nil {
		_ = sendJSON(ws, wsMessage{Type: "error", Error: "invalid topK"})
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Reader: the only inbound message after the request is "cancel";
	// a read error means the client went away.
	go func() {
		defer cancel()
		for {
			var m wsMessage
			if err := ws.ReadJSON(&m); err != nil {
				return
			}
			if m.Type == "cancel" {
				return
			}
		}
	}()

	progress := func(done, total int) {
		if ctx.Err() != nil {
			return
		}
		_ = sendJSON(ws, wsMessage{Type: "progress", Done: done, Total: total})
	}

	sug, err := s.suggest(ctx, sess, req, "ws", progress)
	if err != nil {
		msg := "suggest_failed"
		if errors.Is(err, context.Canceled) {
			msg = "cancelled"
		}
		_ = sendJSON(ws, wsMessage{Type: "error", Error: msg})
		return
	}
	_ = sendJSON(ws, wsMessage{Type: "result", Suggestion: &sug})
	_ = ws.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"))
}

// ------------------------------ openers ------------------------------------

type openersRes struct {
	Key     string               `json:"key"`
	Openers []solver.ScoredGuess `json:"openers"`
}

// handleOpeners lists stored openers for the loaded word lists (?limit=N).
func (s *Server) handleOpeners(w http.ResponseWriter, r *http.Request) {
	if s.openers == nil {
		writeError(w, http.StatusNotFound, "openers_disabled")
		return
	}
	limit := 21 // three rows of seven in the openers grid
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	key := s.lists.Key()
	list, err := s.openers.Top(r.Context(), key, limit)
	if errors.Is(err, openers.ErrNotComputed) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("load openers")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, openersRes{Key: key, Openers: list})
}
