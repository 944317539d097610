package auth

import (
	"context"
	"testing"
	"time"

	dom "Lucky/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewStore(rdb, ttl), mr
}

func TestStore_CreateGetDelete(t *testing.T) {
	s, mr := newTestStore(t, time.Hour)
	ctx := context.Background()

	id, err := s.Create(ctx, dom.Session{AccountID: 7})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.True(t, mr.Exists(sessionKeyPrefix+id))

	sess, ok, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, dom.Session{AccountID: 7}, sess)

	require.NoError(t, s.Save(ctx, id, dom.Session{AccountID: 7, Admin: true}))
	sess, _, _ = s.Get(ctx, id)
	assert.True(t, sess.Admin)

	require.NoError(t, s.Delete(ctx, id))
	_, ok, err = s.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_Expires(t *testing.T) {
	s, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	id, err := s.Create(ctx, dom.Session{Admin: true})
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)

	_, ok, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_DefaultTTL(t *testing.T) {
	s, _ := newTestStore(t, 0)
	assert.Equal(t, 24*time.Hour, s.TTL())
}

func TestStore_CorruptPayload(t *testing.T) {
	s, mr := newTestStore(t, time.Hour)
	require.NoError(t, mr.Set(sessionKeyPrefix+"bad", "{not json"))

	_, _, err := s.Get(context.Background(), "bad")
	assert.ErrorContains(t, err, "decode session")
}
