package redis

import (
	"testing"
	"time"
)

func TestBucketKeySharesWindow(t *testing.T) {
	l := NewFixedWindowLimiter(nil, 15*time.Minute, 100)

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	early := l.bucketKey("10.0.0.7", base)
	late := l.bucketKey("10.0.0.7", base.Add(14*time.Minute))
	next := l.bucketKey("10.0.0.7", base.Add(16*time.Minute))

	if early != late {
		t.Errorf("same window produced different buckets: %q vs %q", early, late)
	}
	if early == next {
		t.Errorf("different windows produced the same bucket: %q", early)
	}
}

func TestBucketKeySeparatesCallers(t *testing.T) {
	l := NewFixedWindowLimiter(nil, 15*time.Minute, 100)

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	if l.bucketKey("10.0.0.7", now) == l.bucketKey("10.0.0.8", now) {
		t.Error("distinct callers must count in distinct buckets")
	}
}

func TestBucketKeySubSecondWindow(t *testing.T) {
	l := NewFixedWindowLimiter(nil, 500*time.Millisecond, 10)

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	early := l.bucketKey("10.0.0.7", base)
	late := l.bucketKey("10.0.0.7", base.Add(400*time.Millisecond))
	next := l.bucketKey("10.0.0.7", base.Add(600*time.Millisecond))

	if early != late {
		t.Errorf("same window produced different buckets: %q vs %q", early, late)
	}
	if early == next {
		t.Errorf("different windows produced the same bucket: %q", early)
	}
}

func TestNewFixedWindowLimiterDefaults(t *testing.T) {
	l := NewFixedWindowLimiter(nil, 0, 0)
	if l.window != 15*time.Minute {
		t.Errorf("window = %v, want 15m default", l.window)
	}
	if l.max != 100 {
		t.Errorf("max = %d, want 100 default", l.max)
	}
}
