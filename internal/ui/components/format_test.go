package components

import (
	"testing"
	"time"
)

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
	}
	for _, c := range cases {
		if got := FormatNumber(c.in); got != c.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{999, "999"},
		{12345, "12.3K"},
		{2_500_000, "2.5M"},
	}
	for _, c := range cases {
		if got := FormatCompact(c.in); got != c.want {
			t.Errorf("FormatCompact(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatUSD(t *testing.T) {
	if got := FormatUSD(1.5); got != "$1.50" {
		t.Errorf("FormatUSD(1.5) = %q", got)
	}
	if got := FormatUSD(0.0033); got != "$0.0033" {
		t.Errorf("FormatUSD(0.0033) = %q", got)
	}
	if got := FormatUSD(0); got != "$0.00" {
		t.Errorf("FormatUSD(0) = %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	if got := FormatDuration(95 * time.Minute); got != "1h 35m" {
		t.Errorf("got %q, want 1h 35m", got)
	}
	if got := FormatDuration(12 * time.Minute); got != "12m" {
		t.Errorf("got %q, want 12m", got)
	}
	if got := FormatDuration(-5 * time.Minute); got != "0m" {
		t.Errorf("got %q, want 0m for negative duration", got)
	}
}
