// internal/httpserver/routes_game.go
//
// Game endpoints (optional auth):
//   - POST /game/new    → start a game (random secret unless one is given)
//   - POST /game/guess  → apply one guess
//   - GET  /game/{id}   → current state
//
// Guesses are lowercased and trimmed before they reach the engine. A game
// only answers to its owner; anyone else gets 404.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/adamduehansen/hangman/internal/auth"
	"github.com/adamduehansen/hangman/internal/game"
	"github.com/adamduehansen/hangman/internal/store"
	"github.com/adamduehansen/hangman/internal/words"
)

var errGameOver = errors.New("game over")

// gameView is the JSON shape of a game sent to players. It never carries
// the secret, except as Answer once a normal game is lost.
type gameView struct {
	ID       string      `json:"id"`
	Mode     store.Mode  `json:"mode"`
	Revealed []game.Slot `json:"revealed"`
	Masked   string      `json:"masked"`
	Guesses  []string    `json:"guesses"`
	Lives    int         `json:"lives"`
	Status   game.Status `json:"status"`
	Answer   string      `json:"answer,omitempty"`
}

func viewOf(sess *store.Session) gameView {
	g := sess.Game
	v := gameView{
		ID:       sess.ID,
		Mode:     sess.Mode,
		Revealed: g.Revealed(),
		Masked:   g.Masked(),
		Guesses:  g.Guesses(),
		Lives:    g.Lives(),
		Status:   g.Status(),
	}
	if v.Status == game.StatusLost && sess.Mode == store.ModeNormal {
		v.Answer = g.Log().Secret
	}
	return v
}

func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Post("/game/guess", s.handleGuess)
	r.Get("/game/{id}", s.handleGetGame)
}

// newGameReq is the payload for POST /game/new; Secret is optional.
type newGameReq struct {
	Secret string `json:"secret"`
}

// guessReq is the payload for POST /game/guess and /daily/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

// handleNewGame creates a game for the caller and persists it.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	secret := words.Normalize(req.Secret)
	if secret == "" {
		secret = s.words.Random()
	} else if !words.Valid(secret) {
		writeError(w, http.StatusBadRequest, "invalid_secret")
		return
	}

	sess := store.NewSession(s.owner(w, r), store.ModeNormal, secret, s.now())
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	log.Debug().Str("gameId", sess.ID).Int("letters", sess.Game.Len()).Msg("new game")
	writeJSON(w, http.StatusOK, map[string]any{"gameId": sess.ID, "game": viewOf(sess)})
}

// handleGuess applies a guess to a normal game.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess, err := s.applyGuess(r.Context(), s.owner(w, r), store.ModeNormal, req)
	if err != nil {
		s.writeGuessError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"game": viewOf(sess)})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil || sess.Owner != s.owner(w, r) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"game": viewOf(sess)})
}

// applyGuess loads the caller's session, advances it and saves it, all under
// the session lock. When the guess ends the game, account stats are bumped.
func (s *Server) applyGuess(ctx context.Context, owner store.Owner, mode store.Mode, req guessReq) (*store.Session, error) {
	guess := words.Normalize(req.Guess)
	if err := game.ValidateGuess(guess); err != nil {
		return nil, err
	}

	unlock := s.locks.lock(req.GameID)
	defer unlock()

	sess, err := s.store.Get(ctx, req.GameID)
	if err != nil {
		return nil, err
	}
	if sess.Owner != owner || sess.Mode != mode {
		return nil, store.ErrNotFound
	}
	if sess.Game.Finished() {
		return sess, errGameOver
	}

	sess.Advance(guess, s.now())
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	if sess.Game.Finished() && owner.UserID != "" {
		s.bumpStats(ctx, owner.UserID, sess.Game.Status() == game.StatusWon)
	}
	return sess, nil
}

// bumpStats updates account counters in a best-effort transaction.
func (s *Server) bumpStats(ctx context.Context, userID string, won bool) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Warn().Err(err).Msg("begin stats tx")
		return
	}
	defer func() { _ = tx.Rollback() }()
	if err := auth.BumpStats(ctx, tx, userID, won); err != nil {
		log.Warn().Err(err).Str("user", userID).Msg("bump stats")
		return
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Str("user", userID).Msg("commit stats")
	}
}

func (s *Server) writeGuessError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrEmptyGuess):
		writeError(w, http.StatusBadRequest, "empty_guess")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, errGameOver):
		writeError(w, http.StatusConflict, "game_over")
	default:
		log.Error().Err(err).Msg("apply guess")
		writeError(w, http.StatusInternalServerError, "save_failed")
	}
}
