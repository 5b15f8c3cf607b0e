package domain

import (
	"sort"
	"time"
)

const (
	// DefaultBlockDuration is the nominal length of a session block.
	DefaultBlockDuration = 5 * time.Hour

	// DefaultActivityTolerance is how long after the last record a block
	// is still considered live. Policy constant; overridable via config.
	DefaultActivityTolerance = 30 * time.Minute

	// burnRateWindow is the trailing sub-window used for rate calculations
	// inside the active block.
	burnRateWindow = time.Hour
)

// BurnRate is the consumption rate inside the active block. Recomputed on
// demand, never persisted.
type BurnRate struct {
	TokensPerMinute float64 `json:"tokens_per_minute"`
	CostPerHour     float64 `json:"cost_per_hour"`
}

// Projection extrapolates the active block to its nominal end.
type Projection struct {
	Tokens           int     `json:"tokens"`
	CostUSD          float64 `json:"cost_usd"`
	RemainingMinutes float64 `json:"remaining_minutes"`
}

// ModelBreakdown tracks one model's share of a block.
type ModelBreakdown struct {
	Model      string
	Tokens     int
	Cost       float64
	Percentage float64
}

// SessionBlock groups records into one bounded activity window.
// StartTime is the first record's timestamp; EndTime is nominal
// (StartTime + the window duration); ActualEndTime is the last record seen.
type SessionBlock struct {
	ID            string
	StartTime     time.Time
	EndTime       time.Time
	ActualEndTime time.Time
	IsActive      bool
	Records       []UsageRecord
	Tokens        TokenCounts
	CostUSD       float64
	Models        map[string]ModelBreakdown
	BurnRate      BurnRate
	Projection    Projection
}

// ModelNames returns the sorted set of models used in the block.
func (b SessionBlock) ModelNames() []string {
	names := make([]string, 0, len(b.Models))
	for m := range b.Models {
		names = append(names, m)
	}
	sort.Strings(names)
	return names
}

// BlockOptions parameterizes windowing. The zero value selects defaults.
type BlockOptions struct {
	Window            time.Duration
	ActivityTolerance time.Duration
}

func (o BlockOptions) window() time.Duration {
	if o.Window <= 0 {
		return DefaultBlockDuration
	}
	return o.Window
}

func (o BlockOptions) tolerance() time.Duration {
	if o.ActivityTolerance <= 0 {
		return DefaultActivityTolerance
	}
	return o.ActivityTolerance
}

// BuildBlocks groups timestamp-sorted records into session blocks.
// A new block opens when there is no open block, when the gap from the
// previous record exceeds the window, or when the record falls at or after
// the open block's nominal end. Blocks start at their first record's
// timestamp; there is no clock-boundary alignment.
//
// Records must be sorted by timestamp ascending. now decides which block,
// if any, is active.
func BuildBlocks(records []UsageRecord, now time.Time, opts BlockOptions) []SessionBlock {
	if len(records) == 0 {
		return nil
	}

	window := opts.window()

	var blocks []SessionBlock
	var current *SessionBlock

	for _, r := range records {
		if current == nil ||
			r.Timestamp.Sub(current.ActualEndTime) > window ||
			!r.Timestamp.Before(current.EndTime) {
			if current != nil {
				blocks = append(blocks, *current)
			}
			current = &SessionBlock{
				ID:        r.Timestamp.UTC().Format(time.RFC3339),
				StartTime: r.Timestamp,
				EndTime:   r.Timestamp.Add(window),
				Models:    make(map[string]ModelBreakdown),
			}
		}

		current.Records = append(current.Records, r)
		current.Tokens = current.Tokens.Add(r.Tokens)
		current.CostUSD += r.CostUSD
		current.ActualEndTime = r.Timestamp

		mb := current.Models[r.Model]
		mb.Model = r.Model
		mb.Tokens += r.Tokens.Total()
		mb.Cost += r.CostUSD
		current.Models[r.Model] = mb
	}
	blocks = append(blocks, *current)

	last := len(blocks) - 1
	b := &blocks[last]
	if !now.Before(b.StartTime) && now.Before(b.EndTime) &&
		now.Sub(b.ActualEndTime) <= opts.tolerance() {
		b.IsActive = true
		b.BurnRate = burnRate(b, now)
		b.Projection = project(b, now)
	}

	for i := range blocks {
		total := blocks[i].Tokens.Total()
		for k, mb := range blocks[i].Models {
			if total > 0 {
				mb.Percentage = float64(mb.Tokens) / float64(total) * 100
			}
			blocks[i].Models[k] = mb
		}
	}

	return blocks
}

// burnRate computes the rate over the trailing sub-window of the block
// (the whole block when it is younger than the sub-window).
func burnRate(b *SessionBlock, now time.Time) BurnRate {
	windowStart := now.Add(-burnRateWindow)
	if windowStart.Before(b.StartTime) {
		windowStart = b.StartTime
	}

	elapsed := now.Sub(windowStart)
	if elapsed < time.Second {
		return BurnRate{}
	}

	var tokens int
	var cost float64
	for _, r := range b.Records {
		if r.Timestamp.Before(windowStart) {
			continue
		}
		tokens += r.Tokens.Total()
		cost += r.CostUSD
	}

	return BurnRate{
		TokensPerMinute: float64(tokens) / elapsed.Minutes(),
		CostPerHour:     cost / elapsed.Hours(),
	}
}

// project extrapolates current totals through the block's remaining time.
func project(b *SessionBlock, now time.Time) Projection {
	remaining := b.EndTime.Sub(now).Minutes()
	if remaining < 0 {
		remaining = 0
	}
	return Projection{
		Tokens:           b.Tokens.Total() + int(b.BurnRate.TokensPerMinute*remaining),
		CostUSD:          b.CostUSD + b.BurnRate.CostPerHour*remaining/60,
		RemainingMinutes: remaining,
	}
}

// AutoTokenLimit returns the highest token total any completed block ever
// reached, used as the default quota-warning threshold when the user has
// not configured one. Zero means no history to infer a limit from.
func AutoTokenLimit(blocks []SessionBlock) int {
	limit := 0
	for _, b := range blocks {
		if b.IsActive {
			continue
		}
		if t := b.Tokens.Total(); t > limit {
			limit = t
		}
	}
	return limit
}
