package domain

import (
	"sort"
	"time"
)

// ModelUsage is one model's rollup across a record set.
type ModelUsage struct {
	Model   string
	Tokens  TokenCounts
	CostUSD float64
	Records int
}

// DailyUsage is one local calendar day's rollup.
type DailyUsage struct {
	Date    string // "2006-01-02" in the aggregation timezone
	Tokens  TokenCounts
	CostUSD float64
	Records int
}

// ProjectUsage is one project's rollup.
type ProjectUsage struct {
	Project string
	Tokens  TokenCounts
	CostUSD float64
	Records int
}

// UsageStats is the cross-sectional view over an arbitrary record set.
// It is recomputed in full on every call; there is no incremental update.
type UsageStats struct {
	TotalCost    float64
	Tokens       TokenCounts
	SessionCount int
	ByModel      []ModelUsage
	ByDate       []DailyUsage
	ByProject    []ProjectUsage
}

// Aggregate folds records into UsageStats. Input order is irrelevant.
// Empty input yields the canonical zero value with SessionCount floored
// at 1 so per-session averages never divide by zero.
func Aggregate(records []UsageRecord, tz *time.Location) UsageStats {
	stats := UsageStats{SessionCount: 1}

	sessions := make(map[string]struct{})
	byModel := make(map[string]*ModelUsage)
	byDate := make(map[string]*DailyUsage)
	byProject := make(map[string]*ProjectUsage)

	for _, r := range records {
		stats.TotalCost += r.CostUSD
		stats.Tokens = stats.Tokens.Add(r.Tokens)

		if r.SessionID != "" {
			sessions[r.SessionID] = struct{}{}
		}

		mu, ok := byModel[r.Model]
		if !ok {
			mu = &ModelUsage{Model: r.Model}
			byModel[r.Model] = mu
		}
		mu.Tokens = mu.Tokens.Add(r.Tokens)
		mu.CostUSD += r.CostUSD
		mu.Records++

		day := r.Timestamp.In(tz).Format("2006-01-02")
		du, ok := byDate[day]
		if !ok {
			du = &DailyUsage{Date: day}
			byDate[day] = du
		}
		du.Tokens = du.Tokens.Add(r.Tokens)
		du.CostUSD += r.CostUSD
		du.Records++

		pu, ok := byProject[r.Project]
		if !ok {
			pu = &ProjectUsage{Project: r.Project}
			byProject[r.Project] = pu
		}
		pu.Tokens = pu.Tokens.Add(r.Tokens)
		pu.CostUSD += r.CostUSD
		pu.Records++
	}

	if len(sessions) > 1 {
		stats.SessionCount = len(sessions)
	}

	stats.ByModel = make([]ModelUsage, 0, len(byModel))
	for _, mu := range byModel {
		stats.ByModel = append(stats.ByModel, *mu)
	}
	sort.Slice(stats.ByModel, func(i, j int) bool {
		if stats.ByModel[i].CostUSD != stats.ByModel[j].CostUSD {
			return stats.ByModel[i].CostUSD > stats.ByModel[j].CostUSD
		}
		return stats.ByModel[i].Model < stats.ByModel[j].Model
	})

	stats.ByDate = make([]DailyUsage, 0, len(byDate))
	for _, du := range byDate {
		stats.ByDate = append(stats.ByDate, *du)
	}
	sort.Slice(stats.ByDate, func(i, j int) bool {
		return stats.ByDate[i].Date < stats.ByDate[j].Date
	})

	stats.ByProject = make([]ProjectUsage, 0, len(byProject))
	for _, pu := range byProject {
		stats.ByProject = append(stats.ByProject, *pu)
	}
	sort.Slice(stats.ByProject, func(i, j int) bool {
		if stats.ByProject[i].CostUSD != stats.ByProject[j].CostUSD {
			return stats.ByProject[i].CostUSD > stats.ByProject[j].CostUSD
		}
		return stats.ByProject[i].Project < stats.ByProject[j].Project
	})

	return stats
}

// HourlyCosts sums cost into 24 local hour-of-day buckets.
func HourlyCosts(records []UsageRecord, tz *time.Location) [24]float64 {
	var buckets [24]float64
	for _, r := range records {
		buckets[r.Timestamp.In(tz).Hour()] += r.CostUSD
	}
	return buckets
}

// MonthlyUsage is the calendar-month rollup used by the daily report view.
type MonthlyUsage struct {
	Month       string // "2006-01"
	Days        map[int]DailyUsage
	Tokens      TokenCounts
	TotalCost   float64
	TotalCalls  int
	TotalTokens int
}

// AggregateMonthly groups records of one calendar month by day.
func AggregateMonthly(records []UsageRecord, tz *time.Location, year int, month time.Month) MonthlyUsage {
	agg := MonthlyUsage{
		Month: time.Date(year, month, 1, 0, 0, 0, 0, tz).Format("2006-01"),
		Days:  make(map[int]DailyUsage),
	}

	for _, r := range records {
		local := r.Timestamp.In(tz)
		if local.Year() != year || local.Month() != month {
			continue
		}
		day := local.Day()
		d := agg.Days[day]
		d.Date = local.Format("2006-01-02")
		d.Tokens = d.Tokens.Add(r.Tokens)
		d.CostUSD += r.CostUSD
		d.Records++
		agg.Days[day] = d

		agg.Tokens = agg.Tokens.Add(r.Tokens)
		agg.TotalCost += r.CostUSD
		agg.TotalCalls++
		agg.TotalTokens += r.Tokens.Total()
	}

	return agg
}
