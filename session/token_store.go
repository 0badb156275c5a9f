package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Token is the identity a bearer token resolves to. The token string
// itself is opaque, the mapping lives in redis.
type Token struct {
	UserID    uint  `json:"uid"`
	IssuedAt  int64 `json:"iat"`
	ExpiresAt int64 `json:"exp"`
}

// Store issues and resolves bearer tokens.
type Store interface {
	Create(ctx context.Context, token string, userID uint) error
	Get(ctx context.Context, token string) (*Token, error)
	Delete(ctx context.Context, token string) error
	// RevokeAllForUser drops every live token of a user, used when the
	// account is deleted or disabled.
	RevokeAllForUser(ctx context.Context, userID uint) error
}

// NewTokenID generates a fresh opaque token value.
func NewTokenID() string { return uuid.NewString() }

type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func key(token string) string    { return fmt.Sprintf("auth:token:%s", token) }
func userSetKey(uid uint) string { return fmt.Sprintf("auth:user_tokens:%d", uid) }

func (s *RedisStore) Create(ctx context.Context, token string, userID uint) error {
	now := time.Now()
	b, _ := json.Marshal(Token{
		UserID:    userID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	})
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, key(token), b, s.ttl)
	pipe.SAdd(ctx, userSetKey(userID), token)
	pipe.Expire(ctx, userSetKey(userID), s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Get(ctx context.Context, token string) (*Token, error) {
	b, err := s.rdb.Get(ctx, key(token)).Bytes()
	if err != nil {
		return nil, err
	}
	var t Token
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	t, _ := s.Get(ctx, token) // best effort, token may be gone already
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key(token))
	if t != nil {
		pipe.SRem(ctx, userSetKey(t.UserID), token)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) RevokeAllForUser(ctx context.Context, userID uint) error {
	tokens, err := s.rdb.SMembers(ctx, userSetKey(userID)).Result()
	if err != nil && err != redis.Nil {
		return err
	}

	pipe := s.rdb.TxPipeline()
	for _, tok := range tokens {
		pipe.Del(ctx, key(tok))
	}
	pipe.Del(ctx, userSetKey(userID))
	_, err = pipe.Exec(ctx)
	return err
}
