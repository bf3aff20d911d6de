// internal/daily/store.go
//
// Daily challenge results (daily_results table) and the per-day leaderboard.
// A player has at most one result per date; later inserts are ignored.
package daily

import (
	"context"
	"database/sql"
	"fmt"
)

// Result is one finished daily game.
type Result struct {
	UserID    string `json:"userId"`
	Date      string `json:"date"`
	WordIndex int    `json:"wordIndex"`
	Guesses   int    `json:"guesses"`
	Lives     int    `json:"lives"`
	ElapsedMs int    `json:"elapsedMs"`
}

// LBRow is a leaderboard entry.
type LBRow struct {
	UserID    string `json:"userId"`
	Username  string `json:"username,omitempty"`
	Guesses   int    `json:"guesses"`
	Lives     int    `json:"lives"`
	ElapsedMs int    `json:"elapsedMs"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether userID has a result for date.
func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=?`,
		userID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult records r unless the player already has a result for that date.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO daily_results (user_id, date, word_index, guesses, lives, elapsed_ms)
        VALUES (?,?,?,?,?,?)`,
		r.UserID, r.Date, r.WordIndex, r.Guesses, r.Lives, r.ElapsedMs,
	)
	return err
}

// ClaimResults moves the results of a guest to a user account. Where both
// already played the same day the account's result wins and the guest's is dropped.
func (s *Store) ClaimResults(ctx context.Context, anonID, userID string) error {
	if anonID == "" || userID == "" || anonID == userID {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
        INSERT OR IGNORE INTO daily_results (user_id, date, word_index, guesses, lives, elapsed_ms, created_at)
        SELECT ?, date, word_index, guesses, lives, elapsed_ms, created_at
        FROM daily_results WHERE user_id=?`, userID, anonID,
	); err != nil {
		return fmt.Errorf("copy daily results: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM daily_results WHERE user_id=?`, anonID); err != nil {
		return fmt.Errorf("drop guest daily results: %w", err)
	}
	return tx.Commit()
}

// Leaderboard returns the best wins of a date: most lives left, then fewest
// guesses, then fastest. Lost games are recorded with zero lives and sort last.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT r.user_id, COALESCE(u.username, ''), r.guesses, r.lives, r.elapsed_ms
        FROM daily_results r
        LEFT JOIN users u ON u.id = r.user_id
        WHERE r.date=?
        ORDER BY r.lives DESC, r.guesses ASC, r.elapsed_ms ASC, r.created_at ASC
        LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.Username, &r.Guesses, &r.Lives, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
