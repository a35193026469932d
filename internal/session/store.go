package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"tastycorner/internal/redis"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrInvalid  = errors.New("session token invalid")
)

// Store persists session data and hands back the token the cookie carries.
type Store interface {
	Load(token string) (*Data, error)
	Save(data *Data) (string, error)
	Destroy(token string) error
}

// CookieStore keeps the whole session in a signed HS256 token.
type CookieStore struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

type cookieClaims struct {
	Data *Data `json:"data"`
	jwt.RegisteredClaims
}

func NewCookieStore(secretKey string, ttl time.Duration) *CookieStore {
	return &CookieStore{key: []byte(secretKey), ttl: ttl, now: time.Now}
}

func (s *CookieStore) Load(token string) (*Data, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	claims := &cookieClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if claims.Data == nil {
		return nil, ErrInvalid
	}
	return claims.Data, nil
}

func (s *CookieStore) Save(data *Data) (string, error) {
	if data.ID == "" {
		data.ID = uuid.NewString()
	}
	now := s.now()
	claims := cookieClaims{
		Data: data,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        data.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return token, nil
}

// Destroy is a no-op; dropping the cookie is enough.
func (s *CookieStore) Destroy(string) error {
	return nil
}

// Backend is the key-value surface RedisStore needs.
type Backend interface {
	SetSession(sessionID string, data interface{}, ttl time.Duration) error
	GetSession(sessionID string, dest interface{}) error
	DeleteSession(sessionID string) error
}

// RedisStore keeps session data server side; the cookie carries only its id.
type RedisStore struct {
	backend Backend
	ttl     time.Duration
}

func NewRedisStore(backend Backend, ttl time.Duration) *RedisStore {
	return &RedisStore{backend: backend, ttl: ttl}
}

func (s *RedisStore) Load(token string) (*Data, error) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, ErrNotFound
	}
	data := &Data{}
	if err := s.backend.GetSession(token, data); err != nil {
		if errors.Is(err, redis.ErrSessionNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	data.ID = token
	return data, nil
}

func (s *RedisStore) Save(data *Data) (string, error) {
	if data.ID == "" {
		data.ID = uuid.NewString()
	}
	if err := s.backend.SetSession(data.ID, data, s.ttl); err != nil {
		return "", err
	}
	return data.ID, nil
}

func (s *RedisStore) Destroy(token string) error {
	if token == "" {
		return nil
	}
	return s.backend.DeleteSession(token)
}
