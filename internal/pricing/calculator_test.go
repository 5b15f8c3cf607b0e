package pricing

import (
	"math"
	"testing"

	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/domain"
)

func newTestCalculator(t *testing.T, mode CostMode) *Calculator {
	t.Helper()
	table, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	return NewCalculator(table, mode)
}

func TestCostFor_SonnetExample(t *testing.T) {
	calc := newTestCalculator(t, CostModeAuto)

	// 1000 input at $3/1M + 2000 output at $15/1M = 0.033.
	cost := calc.CostFor("claude-sonnet-4", domain.TokenCounts{Input: 1000, Output: 2000})
	if math.Abs(cost-0.033) > 1e-9 {
		t.Errorf("cost = %f, want 0.033", cost)
	}
}

func TestCostFor_AllCategories(t *testing.T) {
	calc := newTestCalculator(t, CostModeAuto)

	tokens := domain.TokenCounts{Input: 1_000_000, Output: 1_000_000, CacheCreation: 1_000_000, CacheRead: 1_000_000}
	cost := calc.CostFor("claude-opus-4", tokens)
	want := 15.0 + 75.0 + 18.75 + 1.5
	if math.Abs(cost-want) > 1e-9 {
		t.Errorf("cost = %f, want %f", cost, want)
	}
}

func TestResolve(t *testing.T) {
	tokens := domain.TokenCounts{Input: 1000, Output: 2000}

	t.Run("auto prefers explicit cost", func(t *testing.T) {
		calc := newTestCalculator(t, CostModeAuto)
		if got := calc.Resolve("claude-sonnet-4", tokens, 1.23, true); got != 1.23 {
			t.Errorf("got %f, want explicit 1.23", got)
		}
	})

	t.Run("auto computes when absent", func(t *testing.T) {
		calc := newTestCalculator(t, CostModeAuto)
		if got := calc.Resolve("claude-sonnet-4", tokens, 0, false); math.Abs(got-0.033) > 1e-9 {
			t.Errorf("got %f, want 0.033", got)
		}
	})

	t.Run("display never computes", func(t *testing.T) {
		calc := newTestCalculator(t, CostModeDisplay)
		if got := calc.Resolve("claude-sonnet-4", tokens, 0, false); got != 0 {
			t.Errorf("got %f, want 0", got)
		}
	})

	t.Run("calculate ignores explicit", func(t *testing.T) {
		calc := newTestCalculator(t, CostModeCalculate)
		if got := calc.Resolve("claude-sonnet-4", tokens, 9.99, true); math.Abs(got-0.033) > 1e-9 {
			t.Errorf("got %f, want 0.033", got)
		}
	})
}

func TestCacheSavings(t *testing.T) {
	calc := newTestCalculator(t, CostModeAuto)

	r := domain.UsageRecord{
		Model:  "claude-sonnet-4",
		Tokens: domain.TokenCounts{CacheRead: 1_000_000},
	}
	// (3.0 - 0.3) per 1M.
	if got := calc.CacheSavings(&r); math.Abs(got-2.7) > 1e-9 {
		t.Errorf("savings = %f, want 2.7", got)
	}

	r.Tokens.CacheRead = 0
	if got := calc.CacheSavings(&r); got != 0 {
		t.Errorf("savings = %f, want 0 with no cache reads", got)
	}
}
