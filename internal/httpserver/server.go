// internal/httpserver/server.go
//
// HTTP server wiring for the hangman backend.
// Responsibilities:
//   - Router + middleware (request IDs, access log, panic recovery, timeouts, JSON, CORS).
//   - Public endpoints: "/", "/health".
//   - Game endpoints (optional auth): /game/*, mounted in routes_game.go.
//   - Daily Challenge endpoints (optional auth): /daily/*, routes_daily.go.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me, /games/mine, auth.go.
//   - Rock-paper-scissors: /rps/play, routes_rps.go.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Optional auth decorates requests with the user when a valid token is
//     present; guests get an anonymous cookie instead.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"hash/fnv"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/adamduehansen/hangman/internal/auth"
	"github.com/adamduehansen/hangman/internal/config"
	"github.com/adamduehansen/hangman/internal/daily"
	"github.com/adamduehansen/hangman/internal/rps"
	"github.com/adamduehansen/hangman/internal/store"
	"github.com/adamduehansen/hangman/internal/words"
)

// Server bundles router, session store, DB handle and the word list.
type Server struct {
	r        *chi.Mux
	cfg      config.Config
	store    store.Store
	db       *sql.DB
	users    *auth.Users
	tokens   *auth.Tokens
	daily    *daily.Store
	dailies  *dailyServer
	words    *words.List
	opponent rps.Opponent
	locks    sessionLocks
	now      func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, st store.Store, db *sql.DB, wl *words.List) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		cfg:      cfg,
		store:    st,
		db:       db,
		users:    auth.NewUsers(db),
		tokens:   auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL),
		daily:    daily.NewStore(db),
		words:    wl,
		opponent: rps.RandomOpponent,
		now:      time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // zerolog access log
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(cfg.ClientOrigin))          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "hangman-go",
			"endpoints": []string{"/health", "POST /game/new", "POST /game/guess", "GET /game/{id}", "/daily/*", "/auth/*", "POST /rps/play"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int{"words": s.words.Len()})
	})

	// Game + Daily Challenge: OPTIONAL AUTH (guests can play)
	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth)
		s.mountGame(r)
		s.mountDaily(r)
	})

	s.mountAuthRoutes()
	s.mountRPS(s.r)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	s.r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed")
	})

	return s
}

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- hs.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// accessLog writes one zerolog line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("took", time.Since(start)).
				Str("reqId", chimw.GetReqID(r.Context())).
				Msg("request")
		}()
		next.ServeHTTP(ww, r)
	})
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// sessionLocks serializes guesses on the same session so two concurrent
// requests can't both advance the same stored value.
type sessionLocks [64]sync.Mutex

func (l *sessionLocks) lock(id string) (unlock func()) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	m := &l[h.Sum32()%uint32(len(l))]
	m.Lock()
	return m.Unlock
}
