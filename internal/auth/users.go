// internal/auth/users.go
//
// User accounts: signup validation, bcrypt hashing and the users table.
// Stats (games played, wins, streak) are bumped inside the caller's
// transaction when a game finishes.

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken      = errors.New("username taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
)

// ValidationError describes a rejected signup payload.
type ValidationError struct{ Reason string }

func (e *ValidationError) Error() string { return e.Reason }

// User matches the users table shape.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	GamesPlayed  int       `json:"gamesPlayed"`
	Wins         int       `json:"wins"`
	Streak       int       `json:"streak"`
}

// Users is the users table repository.
type Users struct {
	db *sql.DB
}

func NewUsers(db *sql.DB) *Users { return &Users{db: db} }

// normalizeUsername trims whitespace; adjust here if you want stricter rules.
func normalizeUsername(u string) string {
	return strings.TrimSpace(u)
}

// ValidateSignup enforces basic username/password rules.
func ValidateSignup(u, p string) error {
	if len(u) < 3 || len(u) > 24 {
		return &ValidationError{"username must be 3-24 chars"}
	}
	for _, r := range u {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return &ValidationError{"username: letters, numbers, underscore only"}
		}
	}
	if len(p) < 8 || len(p) > 100 {
		return &ValidationError{"password must be 8-100 chars"}
	}
	return nil
}

// Create validates input, checks uniqueness, hashes password, and inserts a new user.
func (u *Users) Create(ctx context.Context, username, pw string) (*User, error) {
	username = normalizeUsername(username)
	if err := ValidateSignup(username, pw); err != nil {
		return nil, err
	}
	var exists int
	err := u.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE lower(username)=lower(?)`, username).Scan(&exists)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check username: %w", err)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(h),
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	if _, err := u.db.ExecContext(ctx, `INSERT INTO users (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
		user.ID, user.Username, user.PasswordHash, user.CreatedAt.Format(time.RFC3339)); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

// Authenticate checks a username/password pair.
func (u *Users) Authenticate(ctx context.Context, username, pw string) (*User, error) {
	user, err := u.ByUsername(ctx, normalizeUsername(username))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(pw)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// ByUsername loads a user case-insensitively.
func (u *Users) ByUsername(ctx context.Context, username string) (*User, error) {
	row := u.db.QueryRowContext(ctx, `SELECT id, username, password_hash, created_at, games_played, wins, streak
	                                  FROM users WHERE lower(username)=lower(?)`, username)
	return scanUser(row)
}

func (u *Users) ByID(ctx context.Context, id string) (*User, error) {
	row := u.db.QueryRowContext(ctx, `SELECT id, username, password_hash, created_at, games_played, wins, streak
	                                  FROM users WHERE id=?`, id)
	return scanUser(row)
}

// scanUser converts a *sql.Row into a User.
func scanUser(row *sql.Row) (*User, error) {
	var u User
	var created string
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &created, &u.GamesPlayed, &u.Wins, &u.Streak); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &u, nil
}

// BumpStats increments games played; updates wins and streak based on result (within tx).
func BumpStats(ctx context.Context, tx *sql.Tx, userID string, won bool) error {
	var gp, wins, streak int
	row := tx.QueryRowContext(ctx, `SELECT games_played, wins, streak FROM users WHERE id=?`, userID)
	if err := row.Scan(&gp, &wins, &streak); err != nil {
		return err
	}
	gp++
	if won {
		wins++
		streak++
	} else {
		streak = 0
	}
	_, err := tx.ExecContext(ctx, `UPDATE users SET games_played=?, wins=?, streak=? WHERE id=?`, gp, wins, streak, userID)
	return err
}
