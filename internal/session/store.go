// Package session implements the server-side session store backing the
// submission pipeline's authentication gate. Session bodies live in Redis
// under an opaque id; the client holds the id wrapped in a signed JWT cookie.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hosteldesk/backend/internal/config"
	"hosteldesk/backend/internal/models"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNoSession is returned when a token is missing, invalid, expired, or no
// longer maps to a live session.
var ErrNoSession = errors.New("no active session")

type Store struct {
	Redis  *redis.Client
	Secret []byte
	TTL    time.Duration
}

func NewStore(rdb *redis.Client, secret []byte) *Store {
	return &Store{
		Redis:  rdb,
		Secret: secret,
		TTL:    config.SessionTTL,
	}
}

// Create registers a new session for the user and returns the signed cookie
// token the client should hold.
func (s *Store) Create(ctx context.Context, user *models.User) (string, error) {
	sess := models.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: time.Now(),
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}
	key := config.SessionKeyPrefix + sess.ID
	if err := s.Redis.Set(ctx, key, payload, s.TTL).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return s.signToken(sess.ID)
}

// Get resolves a cookie token to the live session it references.
// Any verification or lookup failure collapses to ErrNoSession; the caller
// only needs to know the request is unauthenticated.
func (s *Store) Get(ctx context.Context, token string) (*models.Session, error) {
	sid, err := s.parseToken(token)
	if err != nil {
		return nil, ErrNoSession
	}

	payload, err := s.Redis.Get(ctx, config.SessionKeyPrefix+sid).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("session lookup: %w", err)
	}

	var sess models.Session
	if err := json.Unmarshal([]byte(payload), &sess); err != nil {
		return nil, ErrNoSession
	}
	return &sess, nil
}

// Destroy removes the session referenced by the token. Destroying an already
// dead session is not an error.
func (s *Store) Destroy(ctx context.Context, token string) error {
	sid, err := s.parseToken(token)
	if err != nil {
		return nil
	}
	return s.Redis.Del(ctx, config.SessionKeyPrefix+sid).Err()
}

// signToken wraps a session id in an HS256 JWT so the cookie value is
// tamper-evident before we ever touch Redis.
func (s *Store) signToken(sid string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(s.TTL).Unix(),
		"iss": "hosteldesk-backend",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

func (s *Store) parseToken(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrNoSession
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.Secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrNoSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrNoSession
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", ErrNoSession
	}
	return sid, nil
}
