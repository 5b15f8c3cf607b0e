package parser

import (
	"sort"
	"sync"

	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/domain"
	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/pricing"
)

// scanWorkers bounds concurrent file parses. Per-file parsing is
// embarrassingly parallel; the merge below restores determinism.
const scanWorkers = 4

// ScanAll loads every file through the cache on a bounded worker pool and
// returns all records merged ascending by timestamp. The sort is stable
// with results concatenated in file order, so ties across files keep a
// deterministic arrival order.
func ScanAll(cache *Cache, files []FileMeta, calc *pricing.Calculator) []domain.UsageRecord {
	if len(files) == 0 {
		return nil
	}

	perFile := make([][]domain.UsageRecord, len(files))
	sem := make(chan struct{}, scanWorkers)
	var wg sync.WaitGroup

	for i, meta := range files {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, meta FileMeta) {
			defer wg.Done()
			defer func() { <-sem }()
			perFile[i] = cache.Load(meta, calc)
		}(i, meta)
	}
	wg.Wait()

	total := 0
	for _, recs := range perFile {
		total += len(recs)
	}
	all := make([]domain.UsageRecord, 0, total)
	for _, recs := range perFile {
		all = append(all, recs...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Timestamp.Before(all[j].Timestamp)
	})
	return all
}
