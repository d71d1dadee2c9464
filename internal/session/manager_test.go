package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dharmasatrya/travelhub/internal/models"
	"github.com/dharmasatrya/travelhub/pkg/logger"
	"github.com/dharmasatrya/travelhub/pkg/metrics"
)

func newTestManager(t *testing.T, authFn AuthFunc) *Manager {
	t.Helper()
	m := metrics.NewMetrics("test", prometheus.NewRegistry())
	return NewManager(Config{
		Provider:     "fakeair",
		DefaultTTL:   10 * time.Minute,
		SafetyMargin: 30 * time.Second,
	}, authFn, logger.NewNop(), m)
}

func countingAuth(calls *int32) AuthFunc {
	return func(ctx context.Context) (string, time.Duration, error) {
		atomic.AddInt32(calls, 1)
		return "token-1", 0, nil
	}
}

func TestTokenReusedWithinTTL(t *testing.T) {
	var calls int32
	mgr := newTestManager(t, countingAuth(&calls))

	for i := 0; i < 3; i++ {
		token, err := mgr.Token(context.Background())
		if err != nil {
			t.Fatalf("Token: %v", err)
		}
		if token != "token-1" {
			t.Fatalf("token = %q", token)
		}
	}

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("auth calls = %d, want 1", got)
	}
	if mgr.State() != StateAuthenticated {
		t.Errorf("state = %s, want authenticated", mgr.State())
	}
}

func TestTokenRefreshedAfterExpiry(t *testing.T) {
	var calls int32
	mgr := newTestManager(t, countingAuth(&calls))

	now := time.Now()
	mgr.now = func() time.Time { return now }

	if _, err := mgr.Token(context.Background()); err != nil {
		t.Fatalf("Token: %v", err)
	}

	// Jump past the TTL minus safety margin.
	now = now.Add(10 * time.Minute)

	if _, err := mgr.Token(context.Background()); err != nil {
		t.Fatalf("Token after expiry: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("auth calls = %d, want 2", got)
	}
}

func TestInvalidateForcesReauth(t *testing.T) {
	var calls int32
	mgr := newTestManager(t, countingAuth(&calls))

	if _, err := mgr.Token(context.Background()); err != nil {
		t.Fatalf("Token: %v", err)
	}

	mgr.Invalidate()
	if mgr.State() != StateExpired {
		t.Errorf("state after invalidate = %s, want expired", mgr.State())
	}

	if _, err := mgr.Token(context.Background()); err != nil {
		t.Fatalf("Token after invalidate: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("auth calls = %d, want 2", got)
	}
}

func TestAuthFailureSurfacesTypedError(t *testing.T) {
	wantErr := errors.New("bad credentials")
	mgr := newTestManager(t, func(ctx context.Context) (string, time.Duration, error) {
		return "", 0, wantErr
	})

	_, err := mgr.Token(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}

	var authErr *models.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("error type = %T, want *models.AuthError", err)
	}
	if !errors.Is(err, wantErr) {
		t.Error("underlying error not preserved")
	}
	if mgr.State() != StateFailed {
		t.Errorf("state = %s, want failed", mgr.State())
	}
}

func TestConcurrentCallersShareOneAuth(t *testing.T) {
	var calls int32
	mgr := newTestManager(t, func(ctx context.Context) (string, time.Duration, error) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(50 * time.Millisecond)
		return "token-1", 0, nil
	})

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := mgr.Token(context.Background())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("Token: %v", err)
		}
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("auth calls = %d, want 1 (singleflight)", got)
	}
}

func TestCallerCancellationDoesNotFailSharedRefresh(t *testing.T) {
	var calls int32
	mgr := newTestManager(t, func(ctx context.Context) (string, time.Duration, error) {
		atomic.AddInt32(&calls, 1)
		select {
		case <-ctx.Done():
			return "", 0, ctx.Err()
		case <-time.After(50 * time.Millisecond):
			return "token-1", 0, nil
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := mgr.Token(ctx)
		errCh <- err
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	// The cancelled caller gets its own error...
	err := <-errCh
	var authErr *models.AuthError
	if !errors.As(err, &authErr) || !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want auth error wrapping context.Canceled", err)
	}

	// ...but the shared refresh keeps running and completes.
	time.Sleep(100 * time.Millisecond)
	if mgr.State() != StateAuthenticated {
		t.Errorf("state = %s, want authenticated after detached refresh", mgr.State())
	}

	token, err := mgr.Token(context.Background())
	if err != nil {
		t.Fatalf("Token after cancel: %v", err)
	}
	if token != "token-1" {
		t.Errorf("token = %q", token)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("auth calls = %d, want 1", got)
	}
}

func TestProviderTTLOverridesDefault(t *testing.T) {
	mgr := newTestManager(t, func(ctx context.Context) (string, time.Duration, error) {
		return "token-1", time.Hour, nil
	})

	now := time.Now()
	mgr.now = func() time.Time { return now }

	if _, err := mgr.Token(context.Background()); err != nil {
		t.Fatalf("Token: %v", err)
	}

	mgr.mu.Lock()
	expires := mgr.expiresAt
	mgr.mu.Unlock()

	want := now.Add(time.Hour - 30*time.Second)
	if !expires.Equal(want) {
		t.Errorf("expiresAt = %v, want %v", expires, want)
	}
}
