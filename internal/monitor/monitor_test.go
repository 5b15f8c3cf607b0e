package monitor

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/parser"
	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/pricing"
)

func newTestMonitor(t *testing.T, root string, now time.Time) *Monitor {
	t.Helper()
	table, err := pricing.LoadDefault()
	if err != nil {
		t.Fatal(err)
	}
	calc := pricing.NewCalculator(table, pricing.CostModeAuto)
	return New(Options{
		Root:     root,
		Timezone: time.UTC,
		Clock:    func() time.Time { return now },
		Debounce: 20 * time.Millisecond,
	}, calc)
}

func writeLog(t *testing.T, root, name string, lines ...string) {
	t.Helper()
	path := filepath.Join(root, name)
	var content string
	for _, l := range lines {
		content += l + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func usageLine(ts, msg string, tokens int) string {
	return `{"timestamp":"` + ts + `","requestId":"r-` + msg + `","sessionId":"s1",` +
		`"message":{"id":"` + msg + `","model":"claude-sonnet-4","usage":{"input_tokens":` +
		itoa(tokens) + `}}}`
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

func TestRefresh_PublishesSnapshot(t *testing.T) {
	root := t.TempDir()
	now := time.Date(2026, 2, 21, 12, 0, 0, 0, time.UTC)
	writeLog(t, root, "a.jsonl",
		usageLine("2026-02-21T11:50:00.000Z", "m1", 100),
		usageLine("2026-02-20T10:00:00.000Z", "m2", 200),
	)

	m := newTestMonitor(t, root, now)

	if m.Snapshot() != nil {
		t.Fatal("snapshot before first refresh should be nil")
	}
	if err := m.Refresh(ReasonStartup); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	snap := m.Snapshot()
	if snap == nil {
		t.Fatal("no snapshot published")
	}
	if len(snap.AllRecords) != 2 {
		t.Errorf("AllRecords = %d, want 2", len(snap.AllRecords))
	}
	if len(snap.TodayRecords) != 1 {
		t.Errorf("TodayRecords = %d, want 1", len(snap.TodayRecords))
	}
	if len(snap.Blocks) != 2 {
		t.Errorf("Blocks = %d, want 2", len(snap.Blocks))
	}

	active := m.ActiveSessionBlock()
	if active == nil {
		t.Fatal("want active block for 10-minute-old record")
	}
	if active.Tokens.Total() != 100 {
		t.Errorf("active tokens = %d, want 100", active.Tokens.Total())
	}
}

func TestRefresh_TodaySubsetOfAll(t *testing.T) {
	root := t.TempDir()
	now := time.Date(2026, 2, 21, 12, 0, 0, 0, time.UTC)
	writeLog(t, root, "a.jsonl",
		usageLine("2026-02-21T11:00:00.000Z", "m1", 100),
		usageLine("2026-02-19T10:00:00.000Z", "m2", 900),
	)

	m := newTestMonitor(t, root, now)
	if err := m.Refresh(ReasonStartup); err != nil {
		t.Fatal(err)
	}

	var todayTokens, allTokens int
	for _, r := range m.TodayRecords() {
		todayTokens += r.Tokens.Total()
	}
	for _, r := range m.AllRecords() {
		allTokens += r.Tokens.Total()
	}
	if todayTokens > allTokens {
		t.Errorf("today tokens %d exceed all-time %d", todayTokens, allTokens)
	}
}

func TestRefresh_MissingRoot(t *testing.T) {
	m := newTestMonitor(t, filepath.Join(t.TempDir(), "nope"), time.Now())
	if err := m.Refresh(ReasonStartup); !errors.Is(err, parser.ErrNoDataRoot) {
		t.Errorf("err = %v, want ErrNoDataRoot", err)
	}
	if m.Snapshot() != nil {
		t.Error("failed refresh must not publish a snapshot")
	}
}

func TestRefresh_DroppedWhileInFlight(t *testing.T) {
	root := t.TempDir()
	writeLog(t, root, "a.jsonl", usageLine("2026-02-21T11:00:00.000Z", "m1", 100))

	m := newTestMonitor(t, root, time.Date(2026, 2, 21, 12, 0, 0, 0, time.UTC))

	m.refreshing.Store(true) // simulate an in-flight refresh
	if err := m.Refresh(ReasonTimer); err != nil {
		t.Fatalf("dropped refresh should be a no-op, got %v", err)
	}
	if m.Snapshot() != nil {
		t.Error("dropped refresh must not publish")
	}
	m.refreshing.Store(false)

	if err := m.Refresh(ReasonTimer); err != nil {
		t.Fatal(err)
	}
	if m.Snapshot() == nil {
		t.Error("refresh after release should publish")
	}
}

func TestNotifyFileChange_Debounces(t *testing.T) {
	root := t.TempDir()
	writeLog(t, root, "a.jsonl", usageLine("2026-02-21T11:00:00.000Z", "m1", 100))

	var mu sync.Mutex
	updates := 0

	table, _ := pricing.LoadDefault()
	calc := pricing.NewCalculator(table, pricing.CostModeAuto)
	m := New(Options{
		Root:     root,
		Timezone: time.UTC,
		Clock:    func() time.Time { return time.Date(2026, 2, 21, 12, 0, 0, 0, time.UTC) },
		Debounce: 30 * time.Millisecond,
		OnUpdate: func(*Snapshot) {
			mu.Lock()
			updates++
			mu.Unlock()
		},
	}, calc)

	for i := 0; i < 10; i++ {
		m.NotifyFileChange()
		time.Sleep(2 * time.Millisecond)
	}
	time.Sleep(150 * time.Millisecond)

	mu.Lock()
	got := updates
	mu.Unlock()
	if got != 1 {
		t.Errorf("updates = %d, want 1 (burst collapses into one refresh)", got)
	}
}

func TestRefresh_DayChangeClearsCache(t *testing.T) {
	root := t.TempDir()
	writeLog(t, root, "a.jsonl", usageLine("2026-02-21T11:00:00.000Z", "m1", 100))

	now := time.Date(2026, 2, 21, 23, 0, 0, 0, time.UTC)
	table, _ := pricing.LoadDefault()
	calc := pricing.NewCalculator(table, pricing.CostModeAuto)
	m := New(Options{
		Root:     root,
		Timezone: time.UTC,
		Clock:    func() time.Time { return now },
	}, calc)

	if err := m.Refresh(ReasonStartup); err != nil {
		t.Fatal(err)
	}

	// Mutate the file without touching its mod time forward: cached entry
	// would normally survive, but the day rollover forces a re-parse.
	writeLog(t, root, "a.jsonl",
		usageLine("2026-02-21T11:00:00.000Z", "m1", 100),
		usageLine("2026-02-21T23:30:00.000Z", "m2", 50),
	)
	old := time.Date(2026, 2, 21, 11, 0, 0, 0, time.UTC)
	if err := os.Chtimes(filepath.Join(root, "a.jsonl"), old, old); err != nil {
		t.Fatal(err)
	}

	now = time.Date(2026, 2, 22, 0, 5, 0, 0, time.UTC)
	if err := m.Refresh(ReasonDayChange); err != nil {
		t.Fatal(err)
	}

	if got := len(m.AllRecords()); got != 2 {
		t.Errorf("records after day change = %d, want 2 (cache cleared)", got)
	}
}

func TestConsumerAPI_EmptyBeforeRefresh(t *testing.T) {
	m := newTestMonitor(t, t.TempDir(), time.Now())

	if m.AllRecords() != nil || m.TodayRecords() != nil {
		t.Error("records before refresh should be nil")
	}
	if m.ActiveSessionBlock() != nil {
		t.Error("no active block before refresh")
	}
	if m.AutoTokenLimit() != 0 {
		t.Error("auto limit before refresh should be 0")
	}
	if stats := m.UsageStats(); stats.SessionCount != 1 {
		t.Errorf("empty stats SessionCount = %d, want 1", stats.SessionCount)
	}
}
