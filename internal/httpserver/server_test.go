package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/assets"
	"github.com/robalobadob/wordle/apps/solver/internal/db"
	"github.com/robalobadob/wordle/apps/solver/internal/openers"
	"github.com/robalobadob/wordle/apps/solver/internal/session"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

func newTestServer(t *testing.T, op *openers.Store) (*Server, *words.Lists) {
	t.Helper()
	lists, err := words.New(
		[]solver.Word{"crane", "slate", "plate", "grate"},
		[]solver.Word{"fuzzy"},
	)
	require.NoError(t, err)
	srv, err := New(Options{
		Store:        session.NewMemoryStore(time.Hour),
		Lists:        lists,
		Openers:      op,
		JWTSecret:    "test-secret",
		ClientOrigin: "http://localhost:5173",
		TopK:         10,
		CacheSize:    8,
	})
	require.NoError(t, err)
	return srv, lists
}

func do(t *testing.T, srv *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func createSession(t *testing.T, srv *Server) newSessionRes {
	t.Helper()
	rec := do(t, srv, http.MethodPost, "/sessions", "", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	res := decode[newSessionRes](t, rec)
	require.NotEmpty(t, res.SessionID)
	require.NotEmpty(t, res.Token)
	return res
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := do(t, srv, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = do(t, srv, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, srv, http.MethodGet, "/debug/words", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"answers":4`)
}

func TestSessionAuth(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	a := createSession(t, srv)
	b := createSession(t, srv)

	rec := do(t, srv, http.MethodGet, "/sessions/"+a.SessionID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, srv, http.MethodGet, "/sessions/"+a.SessionID, b.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, srv, http.MethodGet, "/sessions/"+a.SessionID, "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, srv, http.MethodGet, "/sessions/"+a.SessionID, a.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[sessionRes](t, rec)
	assert.Equal(t, a.SessionID, view.SessionID)
	assert.Equal(t, 4, view.Candidates)

	rec = do(t, srv, http.MethodDelete, "/sessions/"+a.SessionID, a.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, srv, http.MethodGet, "/sessions/"+a.SessionID, a.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHistoryAndSuggest(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	s := createSession(t, srv)
	base := "/sessions/" + s.SessionID

	// Validation failures never reach the session.
	for _, body := range []map[string]string{
		{"guess": "cran", "pattern": "bbbbb"},
		{"guess": "cr4ne", "pattern": "bbbbb"},
		{"guess": "crane", "pattern": "bbbbx"},
		{"guess": "crane"},
	} {
		rec := do(t, srv, http.MethodPost, base+"/history", s.Token, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}

	rec := do(t, srv, http.MethodPost, base+"/suggest", s.Token, map[string]any{"topK": 3})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	sug := decode[session.Suggestion](t, rec)
	assert.Equal(t, session.StatusRanked, sug.Status)
	require.Len(t, sug.Guesses, 3)
	assert.Equal(t, solver.Word("plate"), sug.Guesses[0].Word)
	assert.Equal(t, solver.Word("slate"), sug.Guesses[1].Word)

	rec = do(t, srv, http.MethodPost, base+"/history", s.Token, map[string]string{"guess": " CRANE ", "pattern": "BBGBG"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	view := decode[sessionRes](t, rec)
	require.Len(t, view.History, 1)
	assert.Equal(t, solver.Word("crane"), view.History[0].Guess)
	assert.Equal(t, "bbgbg", view.History[0].Pattern.String())
	assert.Equal(t, 2, view.Candidates)

	rec = do(t, srv, http.MethodGet, base+"/candidates", s.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cands := decode[candidatesRes](t, rec)
	assert.Equal(t, 2, cands.Count)
	assert.Equal(t, []solver.Word{"slate", "plate"}, cands.Candidates)

	rec = do(t, srv, http.MethodPost, base+"/suggest", s.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	sug = decode[session.Suggestion](t, rec)
	assert.Equal(t, session.StatusFewCandidates, sug.Status)
	assert.Empty(t, sug.Guesses)

	rec = do(t, srv, http.MethodDelete, base+"/history/3", s.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, srv, http.MethodDelete, base+"/history/x", s.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, srv, http.MethodDelete, base+"/history/0", s.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[sessionRes](t, rec).History)

	rec = do(t, srv, http.MethodPost, base+"/history", s.Token, map[string]string{"guess": "crane", "pattern": "bbbbb"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, srv, http.MethodPost, base+"/suggest", s.Token, nil)
	sug = decode[session.Suggestion](t, rec)
	assert.Equal(t, session.StatusNoCandidates, sug.Status)

	rec = do(t, srv, http.MethodPost, base+"/reset", s.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4, decode[sessionRes](t, rec).Candidates)

	rec = do(t, srv, http.MethodPost, base+"/suggest", s.Token, map[string]any{"topK": -1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSuggestWebSocket(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	s := createSession(t, srv)

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/sessions/" + s.SessionID + "/suggest/ws?token=" + s.Token
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()

	require.NoError(t, ws.WriteJSON(suggestReq{TopK: 2}))

	var progress []wsMessage
	var result *session.Suggestion
	for result == nil {
		var m wsMessage
		require.NoError(t, ws.ReadJSON(&m))
		switch m.Type {
		case "progress":
			progress = append(progress, m)
		case "result":
			result = m.Suggestion
		default:
			t.Fatalf("unexpected message %+v", m)
		}
	}

	require.NotEmpty(t, progress)
	last := progress[len(progress)-1]
	assert.Equal(t, last.Total, last.Done)
	for i := 1; i < len(progress); i++ {
		assert.GreaterOrEqual(t, progress[i].Done, progress[i-1].Done)
	}
	assert.Equal(t, session.StatusRanked, result.Status)
	require.Len(t, result.Guesses, 2)
	assert.Equal(t, solver.Word("plate"), result.Guesses[0].Word)
}

func TestSuggestWebSocketRequiresToken(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	s := createSession(t, srv)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/sessions/" + s.SessionID + "/suggest/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOpeners(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := do(t, srv, http.MethodGet, "/openers", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	conn, err := db.Open(filepath.Join(t.TempDir(), "solver.db"))
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, db.Migrate(conn, assets.Migrations()))
	store := openers.NewStore(conn)

	srv, lists := newTestServer(t, store)
	rec = do(t, srv, http.MethodGet, "/openers", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// A stored list stands in for ranking when the history is empty.
	stored := []solver.ScoredGuess{{Word: "grate", Entropy: 9}, {Word: "crane", Entropy: 8}}
	require.NoError(t, store.Replace(context.Background(), lists.Key(), stored))

	rec = do(t, srv, http.MethodGet, "/openers?limit=1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, stored[:1], decode[openersRes](t, rec).Openers)

	s := createSession(t, srv)
	rec = do(t, srv, http.MethodPost, "/sessions/"+s.SessionID+"/suggest", s.Token, map[string]any{"topK": 2})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, stored, decode[session.Suggestion](t, rec).Guesses)
}

func TestSuggestDeadline(t *testing.T) {
	lists, err := words.New([]solver.Word{"crane", "slate", "plate", "grate"}, nil)
	require.NoError(t, err)
	srv, err := New(Options{
		Store:          session.NewMemoryStore(time.Hour),
		Lists:          lists,
		JWTSecret:      "test-secret",
		SuggestTimeout: time.Nanosecond,
	})
	require.NoError(t, err)

	s := createSession(t, srv)
	rec := do(t, srv, http.MethodPost, "/sessions/"+s.SessionID+"/suggest", s.Token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":"timeout"}`, rec.Body.String())
}

func TestRunStopsOnCancel(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
