// internal/httpserver/auth.go
//
// Authentication routes and middleware.
//   - POST /auth/signup, /auth/login, /auth/logout
//   - GET  /auth/me, /stats/me, /games/mine (require auth)
//
// Tokens travel as "Authorization: Bearer <jwt>" or in the auth cookie.
// Guests are tracked with a long-lived anonymous cookie; their games are
// claimed by the account on signup/login.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/adamduehansen/hangman/internal/auth"
	"github.com/adamduehansen/hangman/internal/store"
)

const anonCookieName = "hangman_anon"

// ctxUserKey is the context key type for storing authUser.
type ctxUserKey struct{}

// authUser is placed into request context by auth middleware.
type authUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func userFrom(ctx context.Context) *authUser {
	u, _ := ctx.Value(ctxUserKey{}).(*authUser)
	return u
}

// credentials is the signup/login payload.
type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// mountAuthRoutes registers authentication + gated routes.
func (s *Server) mountAuthRoutes() {
	s.r.Post("/auth/signup", s.handleSignup)
	s.r.Post("/auth/login", s.handleLogin)
	s.r.Post("/auth/logout", s.handleLogout)

	s.r.With(s.requireAuth).Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, userFrom(r.Context()))
	})
	s.r.With(s.requireAuth).Get("/stats/me", s.handleStats)
	s.r.With(s.requireAuth).Get("/games/mine", s.handleMyGames)
}

// handleSignup creates a new user, signs a JWT, sets auth cookie, and claims anon history.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	u, err := s.users.Create(r.Context(), body.Username, body.Password)
	if err != nil {
		var ve *auth.ValidationError
		switch {
		case errors.Is(err, auth.ErrUsernameTaken):
			writeError(w, http.StatusConflict, "username_taken")
		case errors.As(err, &ve):
			writeError(w, http.StatusBadRequest, ve.Reason)
		default:
			log.Error().Err(err).Msg("signup")
			writeError(w, http.StatusInternalServerError, "signup_failed")
		}
		return
	}
	if !s.issueSession(w, r, u) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": u.ID, "username": u.Username, "createdAt": u.CreatedAt})
}

// handleLogin authenticates user, sets cookie, and claims anon history.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	u, err := s.users.Authenticate(r.Context(), body.Username, body.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid_credentials")
			return
		}
		log.Error().Err(err).Msg("login")
		writeError(w, http.StatusInternalServerError, "login_failed")
		return
	}
	if !s.issueSession(w, r, u) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": u.ID, "username": u.Username})
}

// issueSession signs a token, sets the cookie and moves guest games to u.
func (s *Server) issueSession(w http.ResponseWriter, r *http.Request, u *auth.User) bool {
	tok, exp, err := s.tokens.Sign(u.ID, u.Username)
	if err != nil {
		log.Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return false
	}
	s.setCookie(w, s.cfg.CookieName, tok, exp)
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		s.claimGuest(r.Context(), c.Value, u.ID)
	}
	return true
}

// claimGuest moves a guest's games, daily results and open daily sessions to
// the account, so a daily played as a guest still counts as played.
func (s *Server) claimGuest(ctx context.Context, anonID, userID string) {
	if err := s.store.ClaimAnonymous(ctx, anonID, userID); err != nil {
		log.Warn().Err(err).Msg("claim anon games")
	}
	if err := s.daily.ClaimResults(ctx, anonID, userID); err != nil {
		log.Warn().Err(err).Msg("claim anon daily results")
	}
	if s.dailies != nil {
		s.dailies.claim(anonID, userID)
	}
}

// handleLogout clears the auth cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.setCookie(w, s.cfg.CookieName, "", time.Time{})
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.ByID(r.Context(), userFrom(r.Context()).ID)
	if errors.Is(err, auth.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("load stats")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":          u.ID,
		"gamesPlayed": u.GamesPlayed,
		"wins":        u.Wins,
		"streak":      u.Streak,
	})
}

func (s *Server) handleMyGames(w http.ResponseWriter, r *http.Request) {
	rows, err := s.store.ListByUser(r.Context(), userFrom(r.Context()).ID, 50)
	if err != nil {
		log.Error().Err(err).Msg("list games")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// --------------------------- middleware ------------------------------------

// authenticate resolves the bearer of r to an existing user, or nil.
func (s *Server) authenticate(r *http.Request) *authUser {
	tok := s.bearerOrCookie(r)
	if tok == "" {
		return nil
	}
	claims, err := s.tokens.Parse(tok)
	if err != nil {
		return nil
	}
	// the account may have been removed since the token was signed
	u, err := s.users.ByID(r.Context(), claims.ID)
	if err != nil {
		return nil
	}
	return &authUser{ID: u.ID, Username: u.Username}
}

// withOptionalAuth decorates requests with user context if a valid JWT is present.
// It never 401s; used for routes where guests are allowed.
func (s *Server) withOptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u := s.authenticate(r); u != nil {
			r = r.WithContext(context.WithValue(r.Context(), ctxUserKey{}, u))
		}
		next.ServeHTTP(w, r)
	})
}

// requireAuth enforces a valid JWT and injects authUser into request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := s.authenticate(r)
		if u == nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxUserKey{}, u)))
	})
}

// owner returns the store owner for the request: the user if logged in,
// otherwise the anonymous cookie (set on first use).
func (s *Server) owner(w http.ResponseWriter, r *http.Request) store.Owner {
	if me := userFrom(r.Context()); me != nil {
		return store.Owner{UserID: me.ID}
	}
	return store.Owner{AnonID: s.ensureAnonID(w, r)}
}

// ensureAnonID returns an existing anon cookie or sets a new one.
func (s *Server) ensureAnonID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	// browsers expire cookies by wall clock, not by the game clock
	s.setCookie(w, anonCookieName, id, time.Now().Add(180*24*time.Hour))
	return id
}

// setCookie writes an HttpOnly cookie; a zero exp deletes it.
func (s *Server) setCookie(w http.ResponseWriter, name, value string, exp time.Time) {
	secure := s.cfg.Production()
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
	}
	if exp.IsZero() {
		c.MaxAge = -1
	} else {
		c.Expires = exp
	}
	http.SetCookie(w, c)
}

// bearerOrCookie extracts a bearer token from Authorization header or auth cookie.
func (s *Server) bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.cfg.CookieName); err == nil {
		return c.Value
	}
	return ""
}
