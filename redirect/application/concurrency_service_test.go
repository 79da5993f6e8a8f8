package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"redirect-gateway/redirect/domain"
)

type blockingPool struct{}

func (p *blockingPool) Acquire(ctx context.Context) (func(), error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (p *blockingPool) InFlight() int { return 1 }
func (p *blockingPool) Cap() int { return 1 }

type countingPool struct {
	acquired int
	released int
}

func (p *countingPool) Acquire(ctx context.Context) (func(), error) {
	p.acquired++
	return func() { p.released++ }, nil
}

func (p *countingPool) InFlight() int { return p.acquired - p.released }
func (p *countingPool) Cap() int { return 10 }

func TestConcurrencyService_Acquire_AllowsWhenNoPool(t *testing.T) {
	svc := ConcurrencyService{}
	release, err := svc.Acquire(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	release()
}

func TestConcurrencyService_Acquire_TimeoutIsNoSlot(t *testing.T) {
	svc := ConcurrencyService{Pool: &blockingPool{}, AcquireTimeout: 10 * time.Millisecond}

	start := time.Now()
	_, err := svc.Acquire(context.Background())
	if !errors.Is(err, domain.ErrNoSlot) {
		t.Fatalf("expected ErrNoSlot, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("acquire did not honor timeout")
	}
}

func TestConcurrencyService_Acquire_CanceledRequestIsNotNoSlot(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := ConcurrencyService{Pool: &blockingPool{}, AcquireTimeout: time.Second}
	_, err := svc.Acquire(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestConcurrencyService_Acquire_WithoutTimeoutFollowsRequestContext(t *testing.T) {
	svc := ConcurrencyService{Pool: &blockingPool{}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.Acquire(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestConcurrencyService_Acquire_ReleaseReachesPool(t *testing.T) {
	pool := &countingPool{}
	svc := ConcurrencyService{Pool: pool}

	release, err := svc.Acquire(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	release()
	if pool.acquired != 1 || pool.released != 1 {
		t.Fatalf("expected 1 acquire/1 release, got %d/%d", pool.acquired, pool.released)
	}
}
