package timeutil

import (
	"testing"
	"time"
)

func TestStamp(t *testing.T) {
	at := time.Date(2024, 3, 9, 14, 5, 6, 789_000_000, time.Local)
	if got, want := Stamp(at.UnixNano()), "2024-03-09 14:05:06.789"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestElapsed(t *testing.T) {
	start := time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC).UnixNano()
	end := func(d time.Duration) *int64 {
		ns := start + int64(d)
		return &ns
	}
	tests := []struct {
		end  *int64
		want string
	}{
		{nil, ""},
		{end(450 * time.Millisecond), "450ms"},
		{end(1234567 * time.Microsecond), "1.235s"},
		{end(135*time.Second + 340*time.Millisecond), "2m15.3s"},
		{end(-time.Second), "0s"},
	}
	for _, tt := range tests {
		if got := Elapsed(start, tt.end); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestAge(t *testing.T) {
	now := time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{0, "just now"},
		{500 * time.Millisecond, "just now"},
		{5 * time.Second, "5s ago"},
		{2*time.Minute + 30*time.Second, "2m ago"},
		{3 * time.Hour, "3h ago"},
		{50 * time.Hour, "2d ago"},
	}
	for _, tt := range tests {
		if got := Age(now.Add(-tt.ago).UnixNano(), now); got != tt.want {
			t.Errorf("Age(-%v): expected %q, got %q", tt.ago, tt.want, got)
		}
	}
}
