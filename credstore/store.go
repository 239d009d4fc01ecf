package credstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable wraps transport-level Redis failures on write paths.
var ErrRedisUnavailable = errors.New("redis unavailable")

// Store persists the bearer token and serialized profile under fixed keys.
// Reads fail open to "no credential"; only writes surface backend errors.
type Store struct {
	redis    redis.UniversalClient
	prefix   string
	tokenKey string
	userKey  string
}

// NewStore creates a credential [Store] backed by the given Redis client.
// prefix namespaces both keys; tokenKey and userKey are the fixed storage
// slot names.
func NewStore(redisClient redis.UniversalClient, prefix, tokenKey, userKey string) *Store {
	return &Store{
		redis:    redisClient,
		prefix:   prefix,
		tokenKey: tokenKey,
		userKey:  userKey,
	}
}

func (s *Store) key(name string) string {
	return s.prefix + ":" + name
}

// Save persists the token and profile together, overwriting prior values.
// A single transactional pipeline keeps the two slots as consistent as the
// medium allows.
func (s *Store) Save(ctx context.Context, token string, user *Profile) error {
	var blob []byte
	if user != nil {
		data, err := json.Marshal(user)
		if err != nil {
			return err
		}
		blob = data
	}

	_, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(s.tokenKey), token, 0)
		if blob != nil {
			pipe.Set(ctx, s.key(s.userKey), blob, 0)
		} else {
			pipe.Del(ctx, s.key(s.userKey))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return nil
}

// LoadToken returns the persisted token, or "" when absent or when the
// backend is unavailable.
func (s *Store) LoadToken(ctx context.Context) (string, error) {
	token, err := s.redis.Get(ctx, s.key(s.tokenKey)).Result()
	if err != nil {
		// Absent and unavailable both read as unauthenticated.
		return "", nil
	}
	return token, nil
}

// LoadUser returns the persisted profile, or nil when absent, corrupt, or
// when the backend is unavailable.
func (s *Store) LoadUser(ctx context.Context) (*Profile, error) {
	blob, err := s.redis.Get(ctx, s.key(s.userKey)).Bytes()
	if err != nil {
		return nil, nil
	}

	var user Profile
	if err := json.Unmarshal(blob, &user); err != nil {
		return nil, nil
	}

	return &user, nil
}

// Clear removes both entries.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.redis.Del(ctx, s.key(s.tokenKey), s.key(s.userKey)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}
