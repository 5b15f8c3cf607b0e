package domain

import (
	"testing"
	"time"
)

func TestFilterToday(t *testing.T) {
	utc := time.UTC
	ref := time.Date(2026, 2, 21, 18, 0, 0, 0, utc)

	records := []UsageRecord{
		{Timestamp: time.Date(2026, 2, 21, 0, 0, 1, 0, utc)},
		{Timestamp: time.Date(2026, 2, 21, 23, 59, 59, 0, utc)},
		{Timestamp: time.Date(2026, 2, 20, 23, 59, 59, 0, utc)},
		{Timestamp: time.Date(2026, 2, 22, 0, 0, 0, 0, utc)},
	}

	got := FilterToday(records, ref, utc)
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
}

func TestFilterToday_Timezone(t *testing.T) {
	seoul, _ := time.LoadLocation("Asia/Seoul")
	// 23:30 UTC on the 21st is 08:30 on the 22nd in Seoul.
	records := []UsageRecord{
		{Timestamp: time.Date(2026, 2, 21, 23, 30, 0, 0, time.UTC)},
	}
	ref := time.Date(2026, 2, 22, 9, 0, 0, 0, seoul)

	if got := FilterToday(records, ref, seoul); len(got) != 1 {
		t.Errorf("got %d records, want 1 (record is today in Seoul)", len(got))
	}
	if got := FilterToday(records, ref, time.UTC); len(got) != 0 {
		t.Errorf("got %d records, want 0 (ref is tomorrow in UTC)", len(got))
	}
}

func TestFilterByTimeRange(t *testing.T) {
	utc := time.UTC
	records := []UsageRecord{
		{Timestamp: time.Date(2026, 2, 10, 12, 0, 0, 0, utc)},
		{Timestamp: time.Date(2026, 2, 15, 12, 0, 0, 0, utc)},
		{Timestamp: time.Date(2026, 2, 20, 12, 0, 0, 0, utc)},
	}

	t.Run("no bounds passes through", func(t *testing.T) {
		got, err := FilterByTimeRange(records, "", "", utc)
		if err != nil || len(got) != 3 {
			t.Errorf("got %d, err %v; want 3, nil", len(got), err)
		}
	})

	t.Run("since only", func(t *testing.T) {
		got, err := FilterByTimeRange(records, "2026-02-15", "", utc)
		if err != nil || len(got) != 2 {
			t.Errorf("got %d, err %v; want 2, nil", len(got), err)
		}
	})

	t.Run("until is end of day inclusive", func(t *testing.T) {
		got, err := FilterByTimeRange(records, "", "2026-02-15", utc)
		if err != nil || len(got) != 2 {
			t.Errorf("got %d, err %v; want 2, nil", len(got), err)
		}
	})

	t.Run("bad date errors", func(t *testing.T) {
		if _, err := FilterByTimeRange(records, "02/15/2026", "", utc); err == nil {
			t.Error("want error for malformed date")
		}
	})
}
