package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamduehansen/hangman/assets"
	"github.com/adamduehansen/hangman/internal/config"
	"github.com/adamduehansen/hangman/internal/db"
	"github.com/adamduehansen/hangman/internal/rps"
	"github.com/adamduehansen/hangman/internal/store"
	"github.com/adamduehansen/hangman/internal/words"
)

type testEnv struct {
	srv *Server
	ts  *httptest.Server
}

// newTestEnv starts a server on a fresh database whose only word is "test".
// opts run before the server accepts requests.
func newTestEnv(t *testing.T, opts ...func(*Server)) *testEnv {
	t.Helper()
	h, err := db.OpenAndMigrate(filepath.Join(t.TempDir(), "app.db"), assets.Migrations())
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })

	wl, err := words.New([]string{"test"})
	require.NoError(t, err)

	cfg := config.Config{
		JWTSecret:    "test-secret",
		JWTTTL:       time.Hour,
		CookieName:   "hangman_token",
		ClientOrigin: "http://localhost:5173",
		DailySalt:    "salt",
	}
	srv := New(cfg, store.NewSQLStore(h), h, wl)
	for _, opt := range opts {
		opt(srv)
	}
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return &testEnv{srv: srv, ts: ts}
}

// client returns a fresh player with its own cookie jar.
func (e *testEnv) client(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func (e *testEnv) do(t *testing.T, c *http.Client, method, path string, body, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, e.ts.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	res, err := c.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Contains(t, res.Header.Get("Content-Type"), "application/json")
	if out != nil {
		require.NoError(t, json.NewDecoder(res.Body).Decode(out))
	}
	return res.StatusCode
}

type viewJSON struct {
	ID       string    `json:"id"`
	Mode     string    `json:"mode"`
	Revealed []*string `json:"revealed"`
	Masked   string    `json:"masked"`
	Guesses  []string  `json:"guesses"`
	Lives    int       `json:"lives"`
	Status   string    `json:"status"`
	Answer   string    `json:"answer"`
}

type gameRes struct {
	GameID string   `json:"gameId"`
	Game   viewJSON `json:"game"`
	Error  string   `json:"error"`
}

type dailyRes struct {
	GameID string    `json:"gameId"`
	Date   string    `json:"date"`
	Played bool      `json:"played"`
	Game   *viewJSON `json:"game"`
}

func revealed(v viewJSON) []string {
	out := make([]string, len(v.Revealed))
	for i, s := range v.Revealed {
		if s != nil {
			out[i] = *s
		}
	}
	return out
}

func TestDiagnostics(t *testing.T) {
	e := newTestEnv(t)
	c := e.client(t)

	var health map[string]bool
	assert.Equal(t, http.StatusOK, e.do(t, c, http.MethodGet, "/health", nil, &health))
	assert.True(t, health["ok"])

	var nf map[string]string
	assert.Equal(t, http.StatusNotFound, e.do(t, c, http.MethodGet, "/nope", nil, &nf))
	assert.Equal(t, "not_found", nf["error"])

	var counts map[string]int
	assert.Equal(t, http.StatusOK, e.do(t, c, http.MethodGet, "/debug/words", nil, &counts))
	assert.Equal(t, 1, counts["words"])
}

func TestCORSPreflight(t *testing.T) {
	e := newTestEnv(t)

	req, err := http.NewRequest(http.MethodOptions, e.ts.URL+"/game/new", nil)
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	assert.Equal(t, "http://localhost:5173", res.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", res.Header.Get("Access-Control-Allow-Credentials"))
}

func TestGame_GuestPlayThrough(t *testing.T) {
	e := newTestEnv(t)
	c := e.client(t)

	var created gameRes
	require.Equal(t, http.StatusOK, e.do(t, c, http.MethodPost, "/game/new", map[string]string{"secret": " Test "}, &created))
	require.NotEmpty(t, created.GameID)
	assert.Equal(t, []*string{nil, nil, nil, nil}, created.Game.Revealed)
	assert.Equal(t, 6, created.Game.Lives)
	assert.Equal(t, "in_progress", created.Game.Status)
	assert.Empty(t, created.Game.Answer)

	var last gameRes
	for _, g := range []string{"t", "A", "e", "m", "TEST"} {
		require.Equal(t, http.StatusOK, e.do(t, c, http.MethodPost, "/game/guess",
			map[string]string{"gameId": created.GameID, "guess": g}, &last), g)
	}
	assert.Equal(t, []string{"t", "e", "s", "t"}, revealed(last.Game))
	assert.Equal(t, 4, last.Game.Lives)
	assert.Equal(t, []string{"t", "a", "e", "m", "test"}, last.Game.Guesses)
	assert.Equal(t, "won", last.Game.Status)

	var over gameRes
	assert.Equal(t, http.StatusConflict, e.do(t, c, http.MethodPost, "/game/guess",
		map[string]string{"gameId": created.GameID, "guess": "x"}, &over))
	assert.Equal(t, "game_over", over.Error)

	var got gameRes
	require.Equal(t, http.StatusOK, e.do(t, c, http.MethodGet, "/game/"+created.GameID, nil, &got))
	assert.Equal(t, last.Game, got.Game)
}

func TestGame_RandomSecretAndErrors(t *testing.T) {
	e := newTestEnv(t)
	c := e.client(t)

	var created gameRes
	require.Equal(t, http.StatusOK, e.do(t, c, http.MethodPost, "/game/new", nil, &created))
	assert.Len(t, created.Game.Revealed, 4)

	var bad gameRes
	assert.Equal(t, http.StatusBadRequest, e.do(t, c, http.MethodPost, "/game/new", map[string]string{"secret": "no"}, &bad))
	assert.Equal(t, "invalid_secret", bad.Error)

	assert.Equal(t, http.StatusBadRequest, e.do(t, c, http.MethodPost, "/game/guess",
		map[string]string{"gameId": created.GameID, "guess": "   "}, &bad))
	assert.Equal(t, "empty_guess", bad.Error)

	assert.Equal(t, http.StatusNotFound, e.do(t, c, http.MethodPost, "/game/guess",
		map[string]string{"gameId": "missing", "guess": "a"}, &bad))

	// another player can't see or play the game
	other := e.client(t)
	assert.Equal(t, http.StatusNotFound, e.do(t, other, http.MethodGet, "/game/"+created.GameID, nil, &bad))
	assert.Equal(t, http.StatusNotFound, e.do(t, other, http.MethodPost, "/game/guess",
		map[string]string{"gameId": created.GameID, "guess": "t"}, &bad))
}

func TestGame_LossRevealsAnswer(t *testing.T) {
	e := newTestEnv(t)
	c := e.client(t)

	var created gameRes
	require.Equal(t, http.StatusOK, e.do(t, c, http.MethodPost, "/game/new", map[string]string{"secret": "zebra"}, &created))

	var last gameRes
	for _, g := range []string{"q", "w", "x", "y", "u", "i"} {
		require.Equal(t, http.StatusOK, e.do(t, c, http.MethodPost, "/game/guess",
			map[string]string{"gameId": created.GameID, "guess": g}, &last))
	}
	assert.Equal(t, "lost", last.Game.Status)
	assert.Equal(t, 0, last.Game.Lives)
	assert.Equal(t, "zebra", last.Game.Answer)
}

func TestAuth_StatsAndHistory(t *testing.T) {
	e := newTestEnv(t)
	c := e.client(t)

	// a guest game, claimed on signup
	var guest gameRes
	require.Equal(t, http.StatusOK, e.do(t, c, http.MethodPost, "/game/new", map[string]string{"secret": "test"}, &guest))

	var me map[string]any
	assert.Equal(t, http.StatusUnauthorized, e.do(t, c, http.MethodGet, "/auth/me", nil, &me))

	creds := map[string]string{"username": "alice", "password": "password123"}
	require.Equal(t, http.StatusOK, e.do(t, c, http.MethodPost, "/auth/signup", creds, &me))
	assert.Equal(t, "alice", me["username"])

	var dup map[string]string
	assert.Equal(t, http.StatusConflict, e.do(t, e.client(t), http.MethodPost, "/auth/signup", creds, &dup))
	assert.Equal(t, "username_taken", dup["error"])

	require.Equal(t, http.StatusOK, e.do(t, c, http.MethodGet, "/auth/me", nil, &me))
	assert.Equal(t, "alice", me["username"])

	// the claimed guest game is now the account's and can be won
	var won gameRes
	require.Equal(t, http.StatusOK, e.do(t, c, http.MethodPost, "/game/guess",
		map[string]string{"gameId": guest.GameID, "guess": "test"}, &won))
	assert.Equal(t, "won", won.Game.Status)

	var stats map[string]any
	require.Equal(t, http.StatusOK, e.do(t, c, http.MethodGet, "/stats/me", nil, &stats))
	assert.EqualValues(t, 1, stats["gamesPlayed"])
	assert.EqualValues(t, 1, stats["wins"])
	assert.EqualValues(t, 1, stats["streak"])

	var mine []store.Summary
	require.Equal(t, http.StatusOK, e.do(t, c, http.MethodGet, "/games/mine", nil, &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, guest.GameID, mine[0].ID)

	var out map[string]bool
	require.Equal(t, http.StatusOK, e.do(t, c, http.MethodPost, "/auth/logout", nil, &out))
	assert.Equal(t, http.StatusUnauthorized, e.do(t, c, http.MethodGet, "/auth/me", nil, &me))

	// bearer token login from a fresh client
	var bad map[string]string
	assert.Equal(t, http.StatusUnauthorized, e.do(t, e.client(t), http.MethodPost, "/auth/login",
		map[string]string{"username": "alice", "password": "wrong-password"}, &bad))
	other := e.client(t)
	require.Equal(t, http.StatusOK, e.do(t, other, http.MethodPost, "/auth/login", creds, &me))
	require.Equal(t, http.StatusOK, e.do(t, other, http.MethodGet, "/games/mine", nil, &mine))
	assert.Len(t, mine, 1)
}

func TestDaily(t *testing.T) {
	e := newTestEnv(t)
	c := e.client(t)

	var first, again dailyRes
	require.Equal(t, http.StatusOK, e.do(t, c, http.MethodPost, "/daily/new", nil, &first))
	require.NotEmpty(t, first.GameID)
	require.NotNil(t, first.Game)
	assert.Equal(t, "daily", first.Game.Mode)
	require.Equal(t, http.StatusOK, e.do(t, c, http.MethodPost, "/daily/new", nil, &again))
	assert.Equal(t, first.GameID, again.GameID)

	// daily games are not playable through /game/guess
	var res gameRes
	assert.Equal(t, http.StatusNotFound, e.do(t, c, http.MethodPost, "/game/guess",
		map[string]string{"gameId": first.GameID, "guess": "t"}, &res))

	assert.Equal(t, http.StatusConflict, e.do(t, c, http.MethodPost, "/daily/guess",
		map[string]string{"gameId": "other", "guess": "t"}, &res))

	require.Equal(t, http.StatusOK, e.do(t, c, http.MethodPost, "/daily/guess",
		map[string]string{"gameId": first.GameID, "guess": "x"}, &res))
	require.Equal(t, http.StatusOK, e.do(t, c, http.MethodPost, "/daily/guess",
		map[string]string{"gameId": first.GameID, "guess": "test"}, &res))
	assert.Equal(t, "won", res.Game.Status)

	var done dailyRes
	require.Equal(t, http.StatusOK, e.do(t, c, http.MethodPost, "/daily/new", nil, &done))
	assert.True(t, done.Played)
	assert.Empty(t, done.GameID)

	var lb lbRes
	require.Equal(t, http.StatusOK, e.do(t, c, http.MethodGet, "/daily/leaderboard", nil, &lb))
	assert.Equal(t, first.Date, lb.Date)
	require.Len(t, lb.Top, 1)
	assert.Equal(t, 5, lb.Top[0].Lives)
	assert.Equal(t, 2, lb.Top[0].Guesses)

	var bad map[string]string
	assert.Equal(t, http.StatusBadRequest, e.do(t, c, http.MethodGet, "/daily/leaderboard?date=yesterday", nil, &bad))
}

func TestRPS(t *testing.T) {
	e := newTestEnv(t, func(s *Server) { s.opponent = rps.Fixed(rps.Paper) })
	c := e.client(t)

	var out rps.Outcome
	require.Equal(t, http.StatusOK, e.do(t, c, http.MethodPost, "/rps/play", map[string]string{"hand": "scissor"}, &out))
	assert.Equal(t, rps.Outcome{Result: rps.Win, Player: rps.Scissor, Computer: rps.Paper}, out)

	var bad map[string]string
	assert.Equal(t, http.StatusBadRequest, e.do(t, c, http.MethodPost, "/rps/play", map[string]string{"hand": "spock"}, &bad))
	assert.Equal(t, "unknown_hand", bad["error"])
}
