package web

import (
	"testing"
	"time"
)

func TestRateLimiter_WindowReset(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := newRateLimiter(2, time.Minute)
	defer rl.stop()
	rl.now = func() time.Time { return now }

	steps := []struct {
		advance time.Duration
		want    bool
	}{
		{0, true},
		{time.Second, true},
		{time.Second, false},
		{time.Minute, true},
		{0, true},
		{0, false},
	}

	for i, step := range steps {
		now = now.Add(step.advance)
		if got := rl.allow("192.0.2.1"); got != step.want {
			t.Errorf("step %d: allow = %v, want %v", i, got, step.want)
		}
	}
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := newRateLimiter(1, time.Minute)
	rl.stop()
	rl.stop()
}
