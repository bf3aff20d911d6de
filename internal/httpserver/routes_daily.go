// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's game (creates or reuses session)
//   - POST /daily/guess       → submit a guess for today's game
//   - GET  /daily/leaderboard → top 20 results for today (or ?date=YYYY-MM-DD)
//
// Each player gets one daily game per UTC date (enforced by the DB result row
// and the in-memory session index). The secret is chosen deterministically
// from date + salt, so every player sees the same word. Results are recorded
// when the game ends, won or lost.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/adamduehansen/hangman/internal/daily"
	"github.com/adamduehansen/hangman/internal/store"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	sessions map[string]string // userID|date → game ID
	mu       sync.Mutex        // guards sessions
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{srv: s, sessions: make(map[string]string)}
	s.dailies = dd
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/guess", dd.handleGuess)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// today returns today's date key, the deterministic word index, and the secret.
func (d *dailyServer) today() (date string, idx int, secret string) {
	now := d.srv.now().UTC()
	date = daily.Day(now)
	idx = daily.SecretIndex(date, d.srv.cfg.DailySalt, d.srv.words.Len())
	return date, idx, d.srv.words.At(idx)
}

// claim hands a guest's open daily sessions to userID. A day on which the
// account already has a session keeps the account's.
func (d *dailyServer) claim(anonID, userID string) {
	prefix := anonID + "|"
	d.mu.Lock()
	defer d.mu.Unlock()
	for key, id := range d.sessions {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		delete(d.sessions, key)
		mine := userID + "|" + strings.TrimPrefix(key, prefix)
		if _, ok := d.sessions[mine]; !ok {
			d.sessions[mine] = id
		}
	}
}

func playerID(o store.Owner) string {
	if o.UserID != "" {
		return o.UserID
	}
	return o.AnonID
}

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	GameID string    `json:"gameId"`
	Date   string    `json:"date"`
	Played bool      `json:"played"`
	Game   *gameView `json:"game,omitempty"`
}

// handleNew creates or reuses a daily session for the current date.
// - If the player already has a result for today → Played=true.
// - Otherwise reuse today's session or start a new one.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	owner := d.srv.owner(w, r)
	uid := playerID(owner)
	date, _, secret := d.today()

	played, err := d.srv.daily.AlreadyPlayed(r.Context(), uid, date)
	if err != nil {
		log.Error().Err(err).Msg("daily already played")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	if played {
		writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Played: true})
		return
	}

	key := uid + "|" + date
	d.mu.Lock()
	defer d.mu.Unlock()
	if id, ok := d.sessions[key]; ok {
		if sess, err := d.srv.store.Get(r.Context(), id); err == nil {
			v := viewOf(sess)
			writeJSON(w, http.StatusOK, dailyNewRes{GameID: sess.ID, Date: date, Game: &v})
			return
		}
	}

	sess := store.NewSession(owner, store.ModeDaily, secret, d.srv.now())
	if err := d.srv.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save daily game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	d.sessions[key] = sess.ID
	v := viewOf(sess)
	writeJSON(w, http.StatusOK, dailyNewRes{GameID: sess.ID, Date: date, Game: &v})
}

// handleGuess applies a guess to today's session and records the result
// once the game ends.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	owner := d.srv.owner(w, r)
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	date, idx, _ := d.today()

	d.mu.Lock()
	id, ok := d.sessions[playerID(owner)+"|"+date]
	d.mu.Unlock()
	if !ok || id != req.GameID {
		writeError(w, http.StatusConflict, "no_session")
		return
	}

	sess, err := d.srv.applyGuess(r.Context(), owner, store.ModeDaily, req)
	if err != nil {
		d.srv.writeGuessError(w, err)
		return
	}
	if sess.Game.Finished() {
		lives := sess.Game.Lives()
		if lives < 0 {
			lives = 0
		}
		res := daily.Result{
			UserID:    playerID(owner),
			Date:      date,
			WordIndex: idx,
			Guesses:   len(sess.Game.Guesses()),
			Lives:     lives,
			ElapsedMs: int(sess.FinishedAt.Sub(sess.StartedAt) / time.Millisecond),
		}
		if err := d.srv.daily.InsertResult(r.Context(), res); err != nil {
			log.Warn().Err(err).Str("user", res.UserID).Msg("insert daily result")
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": date, "game": viewOf(sess)})
}

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _, _ = d.today()
	} else if _, err := daily.ParseDay(date); err != nil {
		writeError(w, http.StatusBadRequest, "bad_date")
		return
	}
	rows, err := d.srv.daily.Leaderboard(r.Context(), date, 20)
	if err != nil {
		log.Error().Err(err).Msg("daily leaderboard")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
