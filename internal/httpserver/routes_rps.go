// internal/httpserver/routes_rps.go
//
// POST /rps/play {"hand":"rock"} → one round against the server's opponent.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/adamduehansen/hangman/internal/rps"
)

func (s *Server) mountRPS(r chi.Router) {
	r.Post("/rps/play", s.handleRPS)
}

func (s *Server) handleRPS(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Hand string `json:"hand"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	h, err := rps.ParseHand(req.Hand)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_hand")
		return
	}
	writeJSON(w, http.StatusOK, rps.Play(h, s.opponent))
}
