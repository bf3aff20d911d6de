// internal/auth/tokens.go
//
// HS256 session tokens carrying the user id and username.

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers malformed, expired and wrongly signed tokens.
var ErrInvalidToken = errors.New("invalid token")

// Claims is what a token asserts about its bearer.
type Claims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Tokens signs and verifies JWTs with a shared secret.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Sign creates a token for the user and reports when it expires.
func (t *Tokens) Sign(id, username string) (string, time.Time, error) {
	now := t.now()
	exp := now.Add(t.ttl)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       id,
		"username": username,
		"exp":      exp.Unix(),
		"iat":      now.Unix(),
	})
	ss, err := tok.SignedString(t.secret)
	return ss, exp, err
}

// Parse verifies a token and returns its claims.
func (t *Tokens) Parse(tokenStr string) (Claims, error) {
	claims := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	id, _ := claims["id"].(string)
	username, _ := claims["username"].(string)
	if id == "" || username == "" {
		return Claims{}, ErrInvalidToken
	}
	return Claims{ID: id, Username: username}, nil
}
