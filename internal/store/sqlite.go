// internal/store/sqlite.go
//
// SQLite implementation of the Store interface (games table).
// A row keeps the secret and the guess log as JSON; Get rebuilds the game by
// replaying the log through the engine, so status and lives columns are only
// denormalized copies used for listings.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/adamduehansen/hangman/internal/game"
)

// timeLayout has a fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000Z07:00"

// SQLStore persists sessions in the games table.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore wraps an already migrated database handle.
func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Save(ctx context.Context, sess *Session) error {
	log := sess.Game.Log()
	guesses, err := json.Marshal(log.Guesses)
	if err != nil {
		return fmt.Errorf("encode guesses: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO games (id, user_id, anonymous_id, mode, secret, guesses, status, lives, started_at, finished_at)
        VALUES (?,?,?,?,?,?,?,?,?,?)
        ON CONFLICT(id) DO UPDATE SET
            user_id=excluded.user_id,
            anonymous_id=excluded.anonymous_id,
            guesses=excluded.guesses,
            status=excluded.status,
            lives=excluded.lives,
            finished_at=excluded.finished_at`,
		sess.ID, nullable(sess.Owner.UserID), nullable(sess.Owner.AnonID), string(sess.Mode),
		log.Secret, string(guesses), string(sess.Game.Status()), sess.Game.Lives(),
		sess.StartedAt.UTC().Format(timeLayout), nullTime(sess.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("save game %s: %w", sess.ID, err)
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (*Session, error) {
	var (
		sess             Session
		userID, anonID   sql.NullString
		finished         sql.NullString
		mode, secret, gs string
		started          string
	)
	err := s.db.QueryRowContext(ctx, `
        SELECT id, user_id, anonymous_id, mode, secret, guesses, started_at, finished_at
        FROM games WHERE id=?`, id,
	).Scan(&sess.ID, &userID, &anonID, &mode, &secret, &gs, &started, &finished)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", id, err)
	}

	var guesses []string
	if err := json.Unmarshal([]byte(gs), &guesses); err != nil {
		return nil, fmt.Errorf("decode guesses of %s: %w", id, err)
	}
	sess.Owner = Owner{UserID: userID.String, AnonID: anonID.String}
	sess.Mode = Mode(mode)
	sess.Game = game.Replay(game.Log{Secret: secret, Guesses: guesses})
	sess.StartedAt = parseTime(started)
	if finished.Valid {
		sess.FinishedAt = parseTime(finished.String)
	}
	return &sess, nil
}

func (s *SQLStore) ListByUser(ctx context.Context, userID string, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, mode, status, guesses, lives, started_at, finished_at
        FROM games WHERE user_id=?
        ORDER BY started_at DESC
        LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var (
			sum              Summary
			mode, status, gs string
			started          string
			finished         sql.NullString
		)
		if err := rows.Scan(&sum.ID, &mode, &status, &gs, &sum.Lives, &started, &finished); err != nil {
			return nil, err
		}
		var guesses []string
		if err := json.Unmarshal([]byte(gs), &guesses); err != nil {
			return nil, fmt.Errorf("decode guesses of %s: %w", sum.ID, err)
		}
		sum.Mode = Mode(mode)
		sum.Status = game.Status(status)
		sum.Guesses = len(guesses)
		sum.StartedAt = parseTime(started)
		if finished.Valid {
			f := parseTime(finished.String)
			sum.FinishedAt = &f
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *SQLStore) ClaimAnonymous(ctx context.Context, anonID, userID string) error {
	if anonID == "" || userID == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE games SET user_id=?, anonymous_id=NULL WHERE anonymous_id=?`, userID, anonID)
	return err
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(timeLayout)
}

// parseTime parses stored timestamps; on error returns zero time.
func parseTime(s string) time.Time {
	t, _ := time.Parse(timeLayout, s)
	return t
}
