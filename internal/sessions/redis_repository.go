package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRepository stores each session as JSON under <prefix><refresh> with a
// TTL matching its expiry, and indexes refresh tokens per user in the set
// <prefix>user:<id> so a user's sessions can be revoked together.
type RedisRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisRepository(client *redis.Client, prefix string) *RedisRepository {
	if prefix == "" {
		prefix = "session:"
	}
	return &RedisRepository{client: client, prefix: prefix}
}

func (r *RedisRepository) sessionKey(refresh string) string { return r.prefix + refresh }
func (r *RedisRepository) userKey(userID string) string     { return r.prefix + "user:" + userID }

func (r *RedisRepository) Create(ctx context.Context, s *Session) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Second
	}
	_, err = r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, r.sessionKey(s.RefreshToken), payload, ttl)
		p.SAdd(ctx, r.userKey(s.UserID), s.RefreshToken)
		// the index outlives its newest session by at most one TTL
		p.Expire(ctx, r.userKey(s.UserID), ttl)
		return nil
	})
	return err
}

func (r *RedisRepository) GetByRefresh(ctx context.Context, refresh string) (*Session, error) {
	payload, err := r.client.Get(ctx, r.sessionKey(refresh)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

// DeleteByRefresh uses GETDEL so exactly one caller wins the session.
func (r *RedisRepository) DeleteByRefresh(ctx context.Context, refresh string) (bool, error) {
	payload, err := r.client.GetDel(ctx, r.sessionKey(refresh)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	var s Session
	if err := json.Unmarshal(payload, &s); err == nil {
		if err := r.client.SRem(ctx, r.userKey(s.UserID), refresh).Err(); err != nil {
			return true, err
		}
	}
	return true, nil
}

func (r *RedisRepository) DeleteByUser(ctx context.Context, userID string) error {
	tokens, err := r.client.SMembers(ctx, r.userKey(userID)).Result()
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(tokens)+1)
	for _, t := range tokens {
		keys = append(keys, r.sessionKey(t))
	}
	keys = append(keys, r.userKey(userID))
	return r.client.Del(ctx, keys...).Err()
}
