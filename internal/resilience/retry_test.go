package resilience

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:    attempts,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
	}
}

func TestDoVal_SucceedsFirstTry(t *testing.T) {
	calls := 0
	val, err := DoVal(context.Background(), fastRetry(3), func(_ context.Context) (int, error) {
		calls++
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, val)
	assert.Equal(t, 1, calls)
}

func TestDoVal_RetriesTransient(t *testing.T) {
	calls := 0
	var retried []int
	cfg := fastRetry(3)
	cfg.OnRetry = func(attempt int, _ error) { retried = append(retried, attempt) }

	val, err := DoVal(context.Background(), cfg, func(_ context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", StatusError("fetch", http.StatusServiceUnavailable, "https://example.com")
		}
		return "done", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "done", val)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{1, 2}, retried)
}

func TestDoVal_PermanentErrorStops(t *testing.T) {
	calls := 0
	_, err := DoVal(context.Background(), fastRetry(5), func(_ context.Context) (int, error) {
		calls++
		return 0, StatusError("fetch", http.StatusNotFound, "https://example.com")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestDoVal_ExhaustsAttempts(t *testing.T) {
	calls := 0
	_, err := DoVal(context.Background(), fastRetry(2), func(_ context.Context) (int, error) {
		calls++
		return 0, NewTransientError(errors.New("busy"), http.StatusTooManyRequests)
	})
	require.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestDoVal_DefaultIsSingleAttempt(t *testing.T) {
	calls := 0
	_, err := DoVal(context.Background(), RetryConfig{}, func(_ context.Context) (int, error) {
		calls++
		return 0, NewTransientError(errors.New("busy"), 0)
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoVal_ContextCancelStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := DoVal(ctx, fastRetry(5), func(_ context.Context) (int, error) {
		calls++
		cancel()
		return 0, NewTransientError(errors.New("busy"), 0)
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestFetchRetryConfig(t *testing.T) {
	assert.Equal(t, 1, FetchRetryConfig(0).MaxAttempts)
	assert.Equal(t, 3, FetchRetryConfig(3).MaxAttempts)
}

func TestBackoff_Capped(t *testing.T) {
	cfg := applyDefaults(RetryConfig{InitialBackoff: time.Second, MaxBackoff: 3 * time.Second})
	assert.Equal(t, time.Second, backoff(0, cfg))
	assert.Equal(t, 2*time.Second, backoff(1, cfg))
	assert.Equal(t, 3*time.Second, backoff(5, cfg))
}
