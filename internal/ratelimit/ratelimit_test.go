package ratelimit

import (
	"testing"
	"time"
)

func TestBucketAllowsBurst(t *testing.T) {
	b := NewBucket(3, 0.001)

	for i := 0; i < 3; i++ {
		if !b.Allow() {
			t.Fatalf("request %d within burst should be allowed", i+1)
		}
	}
	if b.Allow() {
		t.Fatal("request beyond burst should be rejected")
	}
}

func TestBucketRefills(t *testing.T) {
	b := NewBucket(1, 1000) // refills a token in ~1ms

	if !b.Allow() {
		t.Fatal("first request should be allowed")
	}
	if b.Allow() {
		t.Fatal("bucket should be empty immediately after burst")
	}

	time.Sleep(5 * time.Millisecond)
	if !b.Allow() {
		t.Fatal("bucket should have refilled")
	}
}

func TestBucketCapsAtBurst(t *testing.T) {
	b := NewBucket(2, 1000)
	time.Sleep(10 * time.Millisecond)

	allowed := 0
	for i := 0; i < 10; i++ {
		if b.Allow() {
			allowed++
		}
	}
	if allowed > 3 {
		t.Fatalf("refill should cap at burst, got %d allowed", allowed)
	}
}

func TestPerUserLimiterIsolatesUsers(t *testing.T) {
	l := NewPerUserLimiter(1, 0.001)
	defer l.Stop()

	if !l.AllowUser(1) {
		t.Fatal("first request for user 1 should pass")
	}
	if l.AllowUser(1) {
		t.Fatal("second request for user 1 should be throttled")
	}
	if !l.AllowUser(2) {
		t.Fatal("user 2 has their own bucket")
	}
	if l.ActiveUsers() != 2 {
		t.Fatalf("expected 2 tracked users, got %d", l.ActiveUsers())
	}
}

func TestPerUserLimiterZeroIDPassesThrough(t *testing.T) {
	l := NewPerUserLimiter(1, 0.001)
	defer l.Stop()

	for i := 0; i < 5; i++ {
		if !l.AllowUser(0) {
			t.Fatal("zero user ID must never be throttled")
		}
	}
	if l.ActiveUsers() != 0 {
		t.Fatal("zero user ID must not allocate a bucket")
	}
}
