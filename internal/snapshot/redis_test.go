package snapshot

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/ukfreewill/will-service/internal/will"
)

func newRedisRepo(t *testing.T) (*mr.Miniredis, *RedisRepository) {
	t.Helper()
	m, err := mr.Run()
	require.NoError(t, err)
	t.Cleanup(m.Close)

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	return m, NewRedisRepository(client, "test:pending:", time.Hour)
}

func TestRedisRepository_SaveConsumeRoundTrip(t *testing.T) {
	_, repo := newRedisRepo(t)
	ctx := context.Background()

	d := will.New(time.Now())
	d.Testator.FullName = "Mary Shelley"
	d.DonationAmount = 10
	d.Executors = []will.Person{{FullName: "Percy", Address: "Lake Geneva"}}

	require.NoError(t, repo.Save(ctx, "s1", d))

	got, err := repo.Consume(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, *d, *got)

	// single-use slot: a second consume sees nothing
	got2, err := repo.Consume(ctx, "s1")
	require.NoError(t, err)
	require.Nil(t, got2)
}

func TestRedisRepository_SaveOverwritesPendingSlot(t *testing.T) {
	_, repo := newRedisRepo(t)
	ctx := context.Background()

	first := will.New(time.Now())
	first.DonationAmount = 5
	require.NoError(t, repo.Save(ctx, "s1", first))

	second := will.New(time.Now())
	second.DonationAmount = 50
	require.NoError(t, repo.Save(ctx, "s1", second))

	got, err := repo.Consume(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, 50.0, got.DonationAmount)
}

func TestRedisRepository_CorruptPayloadTreatedAsAbsent(t *testing.T) {
	m, repo := newRedisRepo(t)
	ctx := context.Background()

	require.NoError(t, m.Set("test:pending:s1", "{not json"))

	got, err := repo.Consume(ctx, "s1")
	require.NoError(t, err)
	require.Nil(t, got)

	// the corrupt slot was consumed, not left behind
	require.False(t, m.Exists("test:pending:s1"))
}

func TestRedisRepository_TTLExpiry(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	repo := NewRedisRepository(client, "test:pending:", time.Second)

	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, "s1", will.New(time.Now())))

	m.FastForward(2 * time.Second)

	got, err := repo.Consume(ctx, "s1")
	require.NoError(t, err)
	require.Nil(t, got)
}
