package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "newsdigest:session:"

// SessionRepository maps opaque session tokens to user ids in Redis.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{client: client, ttl: ttl}
}

func (r *SessionRepository) CreateSession(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()
	err := r.client.Set(ctx, sessionKeyPrefix+token, strconv.FormatInt(userID, 10), r.ttl).Err()
	if err != nil {
		return "", err
	}
	return token, nil
}

// GetSession returns 0 when the token is unknown or expired.
func (r *SessionRepository) GetSession(ctx context.Context, token string) (int64, error) {
	value, err := r.client.Get(ctx, sessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(value, 10, 64)
}

func (r *SessionRepository) DeleteSession(ctx context.Context, token string) error {
	return r.client.Del(ctx, sessionKeyPrefix+token).Err()
}

func (r *SessionRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
