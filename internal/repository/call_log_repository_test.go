package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/unifin/internal/domain"
	"github.com/spec-kit/unifin/internal/wallet"
)

func TestMemoryCallLog_RecentNewestFirst(t *testing.T) {
	repo := NewMemoryCallLogRepository(0)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Record(ctx, domain.CallRecord{Method: fmt.Sprintf("m%d", i)}))
	}

	got, err := repo.Recent(ctx, 2)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "m2", got[0].Method)
	assert.Equal(t, "m1", got[1].Method)
	assert.NotEmpty(t, got[0].ID)
}

func TestMemoryCallLog_Capacity(t *testing.T) {
	repo := NewMemoryCallLogRepository(2)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Record(ctx, domain.CallRecord{Method: fmt.Sprintf("m%d", i)}))
	}

	got, err := repo.Recent(ctx, 10)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "m4", got[0].Method)
}

func TestNewCallLogRepository_NilPoolUsesMemory(t *testing.T) {
	_, ok := NewCallLogRepository(nil).(*MemoryCallLogRepository)
	assert.True(t, ok)
}

func TestNewFlagStore_FallsBackWhenRedisIsDown(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	store := NewFlagStore(context.Background(), client, zap.NewNop())

	_, ok := store.(*wallet.MemoryFlagStore)
	assert.True(t, ok)
}

func TestFlagKey(t *testing.T) {
	assert.Equal(t, "unifin:wallet:connected:client-1", flagKey("client-1"))
}
