package report

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriodKeyDaily(t *testing.T) {
	if got := PeriodKey(ModeDaily, date(2026, time.March, 9)); got != "2026-03-09" {
		t.Fatalf("daily key = %q, want 2026-03-09", got)
	}
	// A timestamp with a time-of-day component buckets by its UTC day.
	ts := time.Date(2026, time.March, 9, 23, 59, 0, 0, time.UTC)
	if got := PeriodKey(ModeDaily, ts); got != "2026-03-09" {
		t.Fatalf("daily key with time = %q, want 2026-03-09", got)
	}
}

func TestPeriodKeyWeekly(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		// 2026-01-01 is a Thursday, so it anchors week 1 of 2026.
		{date(2026, time.January, 1), "2026-W01"},
		// The Monday before belongs to the same ISO week and therefore
		// to 2026, not 2025.
		{date(2025, time.December, 29), "2026-W01"},
		{date(2026, time.January, 4), "2026-W01"},  // Sunday closes week 1
		{date(2026, time.January, 5), "2026-W02"},  // Monday opens week 2
		{date(2026, time.December, 31), "2026-W53"},
		// 2027-01-01 is a Friday; its week's Thursday is 2026-12-31,
		// so the day still counts into 2026's week 53.
		{date(2027, time.January, 1), "2026-W53"},
		{date(2026, time.June, 15), "2026-W25"},
	}
	for _, c := range cases {
		if got := PeriodKey(ModeWeekly, c.in); got != c.want {
			t.Errorf("weekly key for %s = %q, want %q", c.in.Format("2006-01-02"), got, c.want)
		}
	}
}

func TestPeriodKeyMonthly(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		{date(2026, time.January, 15), "2026-01"},
		{date(2026, time.January, 31), "2026-01"},
		{date(2026, time.February, 1), "2026-02"},
	}
	for _, c := range cases {
		if got := PeriodKey(ModeMonthly, c.in); got != c.want {
			t.Errorf("monthly key for %s = %q, want %q", c.in.Format("2006-01-02"), got, c.want)
		}
	}
}

func TestPeriodKeyRangeAndFallback(t *testing.T) {
	if got := PeriodKey(ModeRange, date(2026, time.May, 2)); got != "range" {
		t.Fatalf("range key = %q, want \"range\"", got)
	}
	// An unrecognized mode buckets daily.
	if got := PeriodKey(Mode("quarterly"), date(2026, time.May, 2)); got != "2026-05-02" {
		t.Fatalf("fallback key = %q, want 2026-05-02", got)
	}
}

func TestAggregateSumsAndOrder(t *testing.T) {
	rir := "Rhode Island Red"
	records := []Record{
		{RecordDate: date(2026, time.February, 2), EggsCollected: 100, FertileEggs: 80, Deaths: 1, FlockID: 7, FlockSize: 500, BreedID: 3, BreedName: &rir},
		{RecordDate: date(2026, time.February, 3), EggsCollected: 50, FertileEggs: 40, Deaths: 0, FlockID: 7, FlockSize: 500, BreedID: 3, BreedName: &rir},
		{RecordDate: date(2026, time.January, 30), EggsCollected: 9, ChicksHatched: 4, FlockID: 8, FlockSize: 200, BreedID: 4},
	}

	buckets := Aggregate(ModeMonthly, records)
	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2", len(buckets))
	}
	// Buckets follow first-seen order of the input, not period order.
	if buckets[0].Period != "2026-02" || buckets[1].Period != "2026-01" {
		t.Fatalf("bucket order = [%s %s], want [2026-02 2026-01]", buckets[0].Period, buckets[1].Period)
	}

	feb := buckets[0]
	if feb.EggsCollected != 150 || feb.FertileEggs != 120 || feb.Deaths != 1 {
		t.Fatalf("february sums = eggs:%d fertile:%d deaths:%d", feb.EggsCollected, feb.FertileEggs, feb.Deaths)
	}
	// One flock reference per contributing record, duplicates kept.
	if len(feb.Flocks) != 2 {
		t.Fatalf("february flock refs = %d, want 2", len(feb.Flocks))
	}
	for _, f := range feb.Flocks {
		if f.FlockID != "7" || f.BreedID != "3" || f.FlockSize != 500 {
			t.Fatalf("unexpected flock ref %+v", f)
		}
		if f.BreedName == nil || *f.BreedName != rir {
			t.Fatalf("breed name not carried through: %+v", f.BreedName)
		}
	}

	jan := buckets[1]
	if jan.EggsCollected != 9 || jan.ChicksHatched != 4 {
		t.Fatalf("january sums = eggs:%d chicks:%d", jan.EggsCollected, jan.ChicksHatched)
	}
	if len(jan.Flocks) != 1 || jan.Flocks[0].BreedName != nil {
		t.Fatalf("january flock refs = %+v", jan.Flocks)
	}
}

func TestAggregateRangeCollapsesToOneBucket(t *testing.T) {
	records := []Record{
		{RecordDate: date(2026, time.January, 1), EggsCollected: 1, FlockID: 1},
		{RecordDate: date(2026, time.June, 1), EggsCollected: 2, FlockID: 2},
		{RecordDate: date(2026, time.December, 31), EggsCollected: 3, FlockID: 1},
	}
	buckets := Aggregate(ModeRange, records)
	if len(buckets) != 1 {
		t.Fatalf("got %d buckets, want 1", len(buckets))
	}
	b := buckets[0]
	if b.Period != "range" || b.EggsCollected != 6 || len(b.Flocks) != 3 {
		t.Fatalf("range bucket = period:%s eggs:%d refs:%d", b.Period, b.EggsCollected, len(b.Flocks))
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	if buckets := Aggregate(ModeDaily, nil); len(buckets) != 0 {
		t.Fatalf("got %d buckets for empty input, want 0", len(buckets))
	}
}

func TestAggregateLosslessAcrossModes(t *testing.T) {
	// Whatever the mode, the grand total of each measure equals the
	// total over the raw records.
	records := []Record{
		{RecordDate: date(2026, time.March, 1), EggsCollected: 10, Deaths: 2, FlockID: 1},
		{RecordDate: date(2026, time.March, 8), EggsCollected: 20, Deaths: 3, FlockID: 1},
		{RecordDate: date(2026, time.April, 1), EggsCollected: 30, Deaths: 4, FlockID: 2},
	}
	for _, mode := range []Mode{ModeDaily, ModeWeekly, ModeMonthly, ModeRange} {
		var eggs, deaths, refs uint64
		for _, b := range Aggregate(mode, records) {
			eggs += b.EggsCollected
			deaths += b.Deaths
			refs += uint64(len(b.Flocks))
		}
		if eggs != 60 || deaths != 9 || refs != 3 {
			t.Errorf("mode %s: eggs=%d deaths=%d refs=%d", mode, eggs, deaths, refs)
		}
	}
}
