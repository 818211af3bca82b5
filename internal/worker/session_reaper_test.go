package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/spec-kit/unifin/internal/config"
)

type countingReaper struct {
	calls atomic.Int32
	idle  atomic.Int64
}

func (r *countingReaper) Reap(idle time.Duration) []string {
	r.calls.Add(1)
	r.idle.Store(int64(idle))
	return []string{"s1"}
}

func TestSessionReaper_TicksUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := &countingReaper{}

	done := StartSessionReaper(ctx, config.SessionsConfig{IdleTTL: time.Hour, ReapInterval: time.Millisecond}, r, zap.NewNop())

	assert.Eventually(t, func() bool { return r.calls.Load() >= 2 }, time.Second, time.Millisecond)
	cancel()
	<-done
	assert.Equal(t, int64(time.Hour), r.idle.Load())
}

func TestSessionReaper_DisabledWithoutTTL(t *testing.T) {
	r := &countingReaper{}

	done := StartSessionReaper(context.Background(), config.SessionsConfig{}, r, zap.NewNop())

	<-done
	assert.Zero(t, r.calls.Load())
}
