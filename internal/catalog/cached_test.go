package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"tour-workers/internal/common/logger"
	"tour-workers/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	packages []models.Package
	err      error
	calls    int
}

func (s *countingStore) List(context.Context) ([]models.Package, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return append([]models.Package(nil), s.packages...), nil
}

func TestCachedStore_ReadThrough(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	origin := &countingStore{packages: []models.Package{
		{ID: "pkg-1", Name: "Kyoto Temples", Price: price(899), Category: models.CategoryCultural},
	}}
	store := NewCachedStore(origin, rdb, time.Minute, logger.NewTestLogger(t))
	ctx := context.Background()

	first, err := store.List(ctx)
	require.NoError(t, err)
	second, err := store.List(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, origin.calls)
	assert.Equal(t, first, second)
	assert.True(t, mr.Exists(DefaultCacheKey))
	assert.Equal(t, time.Minute, mr.TTL(DefaultCacheKey))

	require.NoError(t, store.Invalidate(ctx))
	_, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, origin.calls)
}

func TestCachedStore_CorruptEntryFallsThrough(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	require.NoError(t, mr.Set(DefaultCacheKey, "{not json"))

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	origin := &countingStore{packages: []models.Package{{ID: "pkg-1"}}}
	pkgs, err := NewCachedStore(origin, rdb, time.Minute, logger.NewTestLogger(t)).List(context.Background())
	require.NoError(t, err)
	assert.Len(t, pkgs, 1)
	assert.Equal(t, 1, origin.calls)
}

func TestCachedStore_RedisErrorFallsThrough(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	pkgs := []models.Package{{ID: "pkg-1", Name: "Kyoto Temples"}}
	data, err := json.Marshal(pkgs)
	require.NoError(t, err)

	mock.ExpectGet(DefaultCacheKey).SetErr(fmt.Errorf("connection reset"))
	mock.ExpectSet(DefaultCacheKey, data, 30*time.Second).SetVal("OK")

	origin := &countingStore{packages: pkgs}
	out, err := NewCachedStore(origin, rdb, 30*time.Second, logger.NewTestLogger(t)).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, pkgs, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedStore_OriginErrorNotCached(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet(DefaultCacheKey).RedisNil()

	origin := &countingStore{err: fmt.Errorf("origin down")}
	_, err := NewCachedStore(origin, rdb, time.Minute, logger.NewTestLogger(t)).List(context.Background())
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
