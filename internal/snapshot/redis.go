package snapshot

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ukfreewill/will-service/internal/will"
	"github.com/ukfreewill/will-service/pkg/logger"
	"github.com/ukfreewill/will-service/pkg/metrics"
)

// RedisRepository stores pending snapshots as JSON under
// "<prefix><sessionID>" with a TTL, so abandoned checkouts clean themselves
// up. Consume uses GETDEL: the read and the delete are one Redis command, so
// a slot is consumed at most once even if two tabs race on the return URL
// (the loser sees no snapshot and degrades gracefully).
type RedisRepository struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisRepository creates a Redis-backed snapshot slot. Prefix may be
// empty; ttl <= 0 falls back to 24h.
func NewRedisRepository(client *redis.Client, prefix string, ttl time.Duration) *RedisRepository {
	if prefix == "" {
		prefix = "pending_will:"
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisRepository{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisRepository) key(sessionID string) string {
	return r.prefix + sessionID
}

func (r *RedisRepository) Save(ctx context.Context, sessionID string, data *will.WillData) error {
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(sessionID), b, r.ttl).Err(); err != nil {
		return err
	}
	metrics.SnapshotsWritten.Inc()
	return nil
}

func (r *RedisRepository) Consume(ctx context.Context, sessionID string) (*will.WillData, error) {
	b, err := r.client.GetDel(ctx, r.key(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var d will.WillData
	if err := json.Unmarshal(b, &d); err != nil {
		// corrupt slot: absorb locally, report as absent
		logger.Warnf("discarding corrupt snapshot for session %s: %v", sessionID, err)
		metrics.SnapshotsCorrupt.Inc()
		return nil, nil
	}
	metrics.SnapshotsConsumed.Inc()
	return &d, nil
}
