package ratelimit

import (
	"testing"
	"time"
)

func TestLimiter_Burst(t *testing.T) {
	tests := []struct {
		name      string
		rpm       int
		wantBurst int
	}{
		{name: "minimum_burst", rpm: 5, wantBurst: 1},
		{name: "ten_percent", rpm: 600, wantBurst: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.rpm)
			allowed := 0
			for i := 0; i < tt.wantBurst+5; i++ {
				if l.Allow() {
					allowed++
				}
			}
			// refill during the loop is at most one token
			if allowed < tt.wantBurst || allowed > tt.wantBurst+1 {
				t.Errorf("allowed = %d, want %d", allowed, tt.wantBurst)
			}
		})
	}
}

func TestKeyed_IndependentKeys(t *testing.T) {
	k := NewKeyed(10, time.Minute)

	if !k.Allow("10.0.0.1") {
		t.Fatal("first request from 10.0.0.1 denied")
	}
	if k.Allow("10.0.0.1") {
		t.Error("second request from 10.0.0.1 allowed, want denied")
	}
	if !k.Allow("10.0.0.2") {
		t.Error("first request from 10.0.0.2 denied")
	}
	if k.Len() != 2 {
		t.Errorf("Len = %d, want 2", k.Len())
	}
}

func TestKeyed_SweepsIdleKeys(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	k := NewKeyed(10, time.Minute)
	k.now = func() time.Time { return now }

	k.Allow("a")
	k.Allow("b")

	now = now.Add(2 * time.Minute)
	k.Allow("b")

	if k.Len() != 1 {
		t.Errorf("Len = %d, want 1 after sweep", k.Len())
	}
	if _, ok := k.clients["b"]; !ok {
		t.Error("active key b was swept")
	}
}
