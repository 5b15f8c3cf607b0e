package pricing

import "github.com/webcpu/ClaudeCodeUsage-sub006/internal/domain"

// CostMode selects where per-record cost comes from.
type CostMode string

const (
	CostModeAuto      CostMode = "auto"      // log-supplied cost, computed when absent
	CostModeDisplay   CostMode = "display"   // log-supplied cost only
	CostModeCalculate CostMode = "calculate" // always computed from tokens
)

type Calculator struct {
	table *Table
	mode  CostMode
}

func NewCalculator(table *Table, mode CostMode) *Calculator {
	return &Calculator{table: table, mode: mode}
}

// UpdateTable replaces the pricing table used for cost calculations.
func (c *Calculator) UpdateTable(table *Table) {
	c.table = table
}

// CostFor computes the cost of a token-count tuple for a model.
func (c *Calculator) CostFor(model string, tokens domain.TokenCounts) float64 {
	p := c.table.Lookup(model)
	cost := float64(tokens.Input) * p.Input / 1_000_000
	cost += float64(tokens.Output) * p.Output / 1_000_000
	cost += float64(tokens.CacheCreation) * p.CacheCreation / 1_000_000
	cost += float64(tokens.CacheRead) * p.CacheRead / 1_000_000
	return cost
}

// Resolve returns the cost for a record according to the cost mode.
// explicit is the log-supplied costUSD; hasExplicit says whether the
// raw payload carried one.
func (c *Calculator) Resolve(model string, tokens domain.TokenCounts, explicit float64, hasExplicit bool) float64 {
	switch c.mode {
	case CostModeDisplay:
		return explicit
	case CostModeCalculate:
		return c.CostFor(model, tokens)
	default: // auto
		if hasExplicit {
			return explicit
		}
		return c.CostFor(model, tokens)
	}
}

// CacheSavings returns the cost saved by cache reads for one record:
// cache_read_tokens x (input_rate - cache_read_rate) / 1M.
func (c *Calculator) CacheSavings(r *domain.UsageRecord) float64 {
	if r.Tokens.CacheRead == 0 {
		return 0
	}
	p := c.table.Lookup(r.Model)
	return float64(r.Tokens.CacheRead) * (p.Input - p.CacheRead) / 1_000_000
}
