// Package userlock serializes card issuance per user.
package userlock

import (
	"context"
	"errors"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

//go:generate mockgen -source=userlock.go -destination=mock_userlock.go -package=userlock

type Locker interface {
	// Lock blocks until the user's lock is held or ctx is done. The returned
	// func releases it and must be called exactly once.
	Lock(ctx context.Context, userID string) (func(), error)
}

const shardCount = 256

// Local is an in-process lock keyed by user id. Users hashing to the same
// shard share a lock.
type Local struct {
	shards [shardCount]chan struct{}
}

func NewLocal() *Local {
	l := &Local{}
	for i := range l.shards {
		l.shards[i] = make(chan struct{}, 1)
		l.shards[i] <- struct{}{}
	}
	return l
}

func (l *Local) Lock(ctx context.Context, userID string) (func(), error) {
	shard := l.shards[shardIdx(userID)]
	select {
	case <-shard:
		return func() { shard <- struct{}{} }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func shardIdx(key string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return h.Sum32() % shardCount
}

// Client is the part of *redis.Client the Redis locker uses.
type Client interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

const (
	keyPrefix     = "cardguard:issuance:"
	retryInterval = 25 * time.Millisecond
	unlockTimeout = time.Second
)

// releaseScript deletes the key only while it still holds our token.
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then return redis.call("DEL", KEYS[1]) else return 0 end`

var ErrLockLost = errors.New("lock expired before release")

// Redis is a lock shared by every instance talking to the same Redis. Each
// lock expires after ttl so a crashed holder cannot block a user forever.
type Redis struct {
	client Client
	ttl    time.Duration
}

func NewRedis(client Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Lock(ctx context.Context, userID string) (func(), error) {
	key := keyPrefix + userID
	token := uuid.NewString()

	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()
	for {
		ok, err := r.client.SetNX(ctx, key, token, r.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() { r.release(key, token) }, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (r *Redis) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), unlockTimeout)
	defer cancel()

	deleted, err := r.client.Eval(ctx, releaseScript, []string{key}, token).Int64()
	if err != nil {
		zap.L().Error("failed to release issuance lock", zap.String("key", key), zap.Error(err))
		return
	}
	if deleted == 0 {
		zap.L().Warn("issuance lock released after expiry", zap.String("key", key), zap.Error(ErrLockLost))
	}
}
