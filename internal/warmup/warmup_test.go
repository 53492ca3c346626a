package warmup

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRefresher struct {
	mu    sync.Mutex
	calls []Query
	fail  map[string]bool
}

func (s *stubRefresher) Refresh(_ context.Context, role, location string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, Query{Role: role, Location: location})
	if s.fail[role] {
		return 0, errors.New("provider down")
	}
	return 3, nil
}

func TestRunOnceContinuesAfterFailure(t *testing.T) {
	r := &stubRefresher{fail: map[string]bool{"rust": true}}
	s := New(r, "@every 6h", []Query{{Role: "rust"}, {Role: "go", Location: "Berlin"}}, zap.NewNop())

	assert.Equal(t, 1, s.RunOnce(context.Background()))
	assert.Equal(t, []Query{{Role: "rust"}, {Role: "go", Location: "Berlin"}}, r.calls)
}

func TestRunOnceDefaultQuery(t *testing.T) {
	r := &stubRefresher{}
	s := New(r, "@every 6h", nil, nil)

	assert.Equal(t, 1, s.RunOnce(context.Background()))
	assert.Equal(t, []Query{{}}, r.calls)
}

func TestRunOnceStopsOnCancel(t *testing.T) {
	r := &stubRefresher{}
	s := New(r, "@every 6h", []Query{{Role: "go"}}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Zero(t, s.RunOnce(ctx))
	assert.Empty(t, r.calls)
}

func TestStartRejectsBadSpec(t *testing.T) {
	s := New(&stubRefresher{}, "every now and then", nil, zap.NewNop())
	require.Error(t, s.Start(context.Background()))
}
