package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestFreshLimiterAdmitsImmediately(t *testing.T) {
	l := New(time.Second)

	start := time.Now()
	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("first Wait() took %v, want immediate", elapsed)
	}
}

func TestConsecutiveWaitsAreSpaced(t *testing.T) {
	interval := 100 * time.Millisecond
	l := New(interval)

	start := time.Now()
	for i := 0; i < 2; i++ {
		if err := l.Wait(context.Background()); err != nil {
			t.Fatalf("Wait() #%d error = %v", i+1, err)
		}
	}
	if elapsed := time.Since(start); elapsed < interval {
		t.Errorf("two Wait() calls took %v, want at least %v", elapsed, interval)
	}
}

func TestConcurrentCallersSerialize(t *testing.T) {
	interval := 50 * time.Millisecond
	l := New(interval)

	const callers = 4
	done := make(chan time.Time, callers)
	for i := 0; i < callers; i++ {
		go func() {
			if err := l.Wait(context.Background()); err != nil {
				t.Errorf("Wait() error = %v", err)
			}
			done <- time.Now()
		}()
	}

	var times []time.Time
	for i := 0; i < callers; i++ {
		times = append(times, <-done)
	}

	// With one initial token, the four callers must span at least three
	// full intervals in total.
	min, max := times[0], times[0]
	for _, ts := range times[1:] {
		if ts.Before(min) {
			min = ts
		}
		if ts.After(max) {
			max = ts
		}
	}
	if span := max.Sub(min); span < 3*interval-10*time.Millisecond {
		t.Errorf("four concurrent Wait() calls spanned %v, want about %v", span, 3*interval)
	}
}

func TestWaitHonorsContext(t *testing.T) {
	l := New(time.Minute)

	// Consume the initial token so the next call must wait.
	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx); err == nil {
		t.Error("Wait() with expiring context error = nil, want error")
	}
}

func TestNonPositiveIntervalFallsBack(t *testing.T) {
	if got := New(0).Interval(); got != DefaultInterval {
		t.Errorf("New(0).Interval() = %v, want %v", got, DefaultInterval)
	}
	if got := New(-time.Second).Interval(); got != DefaultInterval {
		t.Errorf("New(-1s).Interval() = %v, want %v", got, DefaultInterval)
	}
}
