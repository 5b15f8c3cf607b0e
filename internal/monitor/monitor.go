// Package monitor owns the usage data pipeline: it coordinates refreshes
// over discovery, ingestion and aggregation, and publishes results as an
// atomic snapshot. Consumers only ever observe a complete snapshot, never
// a partially rebuilt one.
package monitor

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/domain"
	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/parser"
	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/pricing"
)

// Reason says what triggered a refresh.
type Reason string

const (
	ReasonStartup    Reason = "startup"
	ReasonFileChange Reason = "file-change"
	ReasonTimer      Reason = "timer"
	ReasonDayChange  Reason = "day-change"
	ReasonWake       Reason = "wake"
	ReasonFocus      Reason = "focus"
	ReasonManual     Reason = "manual"
)

// Snapshot is one published, immutable view of the usage data.
type Snapshot struct {
	AllRecords     []domain.UsageRecord
	TodayRecords   []domain.UsageRecord
	Stats          domain.UsageStats
	Blocks         []domain.SessionBlock
	AutoTokenLimit int
	Reason         Reason
	GeneratedAt    time.Time
}

// ActiveBlock returns the live session block, or nil when none is active.
func (s *Snapshot) ActiveBlock() *domain.SessionBlock {
	if s == nil || len(s.Blocks) == 0 {
		return nil
	}
	last := &s.Blocks[len(s.Blocks)-1]
	if !last.IsActive {
		return nil
	}
	return last
}

// Options configures a Monitor. Clock is injectable so tests control "now".
type Options struct {
	Root     string
	Timezone *time.Location
	Blocks   domain.BlockOptions
	Clock    func() time.Time
	Debounce time.Duration
	OnUpdate func(*Snapshot) // called after each published snapshot
}

// Monitor is the single owner of the ingestion cache and the published
// snapshot.
type Monitor struct {
	opts  Options
	cache *parser.Cache
	calc  *pricing.Calculator

	snapshot   atomic.Pointer[Snapshot]
	refreshing atomic.Bool

	mu      sync.Mutex
	lastDay string
	gen     int // debounce generation; a newer event invalidates older timers
}

func New(opts Options, calc *pricing.Calculator) *Monitor {
	if opts.Timezone == nil {
		opts.Timezone = time.Local
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Debounce <= 0 {
		opts.Debounce = time.Second
	}
	return &Monitor{
		opts:  opts,
		cache: parser.NewCache(),
		calc:  calc,
	}
}

// Refresh re-runs the full pipeline and publishes a new snapshot.
// A refresh already in flight wins: a concurrent trigger is dropped, not
// queued, so bursts never thrash the cache with duplicate scans.
func (m *Monitor) Refresh(reason Reason) error {
	if !m.refreshing.CompareAndSwap(false, true) {
		return nil // in-flight refresh publishes its own result
	}
	defer m.refreshing.Store(false)

	now := m.opts.Clock()
	m.rolloverDay(now)

	files, err := parser.Discover(m.opts.Root)
	if err != nil {
		return err
	}

	all := parser.ScanAll(m.cache, files, m.calc)
	today := domain.FilterToday(all, now, m.opts.Timezone)

	snap := &Snapshot{
		AllRecords:   all,
		TodayRecords: today,
		Stats:        domain.Aggregate(all, m.opts.Timezone),
		Blocks:       domain.BuildBlocks(all, now, m.opts.Blocks),
		Reason:       reason,
		GeneratedAt:  now,
	}
	snap.AutoTokenLimit = domain.AutoTokenLimit(snap.Blocks)

	m.snapshot.Store(snap)
	if m.opts.OnUpdate != nil {
		m.opts.OnUpdate(snap)
	}
	return nil
}

// rolloverDay clears the cache once per local calendar-day change so a new
// day always starts from a full re-scan.
func (m *Monitor) rolloverDay(now time.Time) {
	day := now.In(m.opts.Timezone).Format("2006-01-02")
	m.mu.Lock()
	changed := m.lastDay != "" && m.lastDay != day
	m.lastDay = day
	m.mu.Unlock()
	if changed {
		m.cache.Clear()
	}
}

// NotifyFileChange schedules a debounced refresh: rapid successive change
// events collapse into one refresh after a quiet period.
func (m *Monitor) NotifyFileChange() {
	m.mu.Lock()
	m.gen++
	gen := m.gen
	m.mu.Unlock()

	time.AfterFunc(m.opts.Debounce, func() {
		m.mu.Lock()
		current := gen == m.gen
		m.mu.Unlock()
		if current {
			_ = m.Refresh(ReasonFileChange)
		}
	})
}

// Snapshot returns the latest published snapshot, or nil before the first
// refresh completes.
func (m *Monitor) Snapshot() *Snapshot {
	return m.snapshot.Load()
}

// AllRecords returns every record from the latest snapshot.
func (m *Monitor) AllRecords() []domain.UsageRecord {
	if s := m.Snapshot(); s != nil {
		return s.AllRecords
	}
	return nil
}

// TodayRecords returns the latest snapshot's records for the current day.
func (m *Monitor) TodayRecords() []domain.UsageRecord {
	if s := m.Snapshot(); s != nil {
		return s.TodayRecords
	}
	return nil
}

// UsageStats returns the latest cross-sectional rollup.
func (m *Monitor) UsageStats() domain.UsageStats {
	if s := m.Snapshot(); s != nil {
		return s.Stats
	}
	return domain.Aggregate(nil, m.opts.Timezone)
}

// ActiveSessionBlock returns the live block, or nil when no session is
// active.
func (m *Monitor) ActiveSessionBlock() *domain.SessionBlock {
	return m.Snapshot().ActiveBlock()
}

// AutoTokenLimit returns the inferred quota threshold, 0 when unknown.
func (m *Monitor) AutoTokenLimit() int {
	if s := m.Snapshot(); s != nil {
		return s.AutoTokenLimit
	}
	return 0
}

// ClearCache drops all cached per-file parse results. The next refresh
// re-parses everything.
func (m *Monitor) ClearCache() {
	m.cache.Clear()
}
