package parser

import (
	"os"
	"sync"
	"time"

	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/domain"
	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/pricing"
)

// parseFunc loads and parses one file. Swappable in tests.
type parseFunc func(meta FileMeta, calc *pricing.Calculator) []domain.UsageRecord

// Cache memoizes per-file parse results keyed by (path, modification time).
// An entry stays valid while its stored modification time is at least the
// file's current one; a newer file is re-parsed from scratch. The log
// shards are small, so full re-parse on change beats incremental reads.
//
// All access is serialized behind one mutex: the cache is shared
// single-owner state and a lost update racing an invalidation would
// resurrect stale records.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	parse   parseFunc
}

type cacheEntry struct {
	modTime time.Time
	records []domain.UsageRecord
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		parse:   parseFile,
	}
}

// Load returns the records of one file, from cache when fresh.
func (c *Cache) Load(meta FileMeta, calc *pricing.Calculator) []domain.UsageRecord {
	c.mu.Lock()
	entry, ok := c.entries[meta.Path]
	c.mu.Unlock()

	if ok && !entry.modTime.Before(meta.ModTime) {
		return entry.records
	}

	records := c.parse(meta, calc)

	c.mu.Lock()
	c.entries[meta.Path] = cacheEntry{modTime: meta.ModTime, records: records}
	c.mu.Unlock()

	return records
}

// Clear drops every cached entry. Used on forced full refreshes,
// e.g. after a day change.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// parseFile reads one log shard. An unreadable file contributes zero
// records; ingestion of other files continues.
func parseFile(meta FileMeta, calc *pricing.Calculator) []domain.UsageRecord {
	f, err := os.Open(meta.Path)
	if err != nil {
		return nil
	}
	defer f.Close()

	result := ParseReader(f, calc, meta.Path, ProjectOf(meta.Path))
	return result.Records
}
