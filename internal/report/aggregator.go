// Package report implements the production report aggregation: daily
// production rows are grouped into period buckets keyed by day, ISO
// week, month, or one catch-all range, and each numeric measure is
// summed per bucket. The package is pure — it performs no I/O and has
// no knowledge of how records were fetched.
package report

import (
	"fmt"
	"strconv"
	"time"
)

// Mode selects the bucketing period for a report.
type Mode string

const (
	ModeDaily   Mode = "daily"
	ModeWeekly  Mode = "weekly"
	ModeMonthly Mode = "monthly"
	ModeRange   Mode = "range"
)

// Record is one daily production row joined with its flock and breed.
// BreedName is a pointer because the breed reference may have been
// removed since the flock was created.
type Record struct {
	RecordDate      time.Time
	EggsCollected   uint32
	FertileEggs     uint32
	InfertileEggs   uint32
	DamagedEggs     uint32
	ChicksHatched   uint32
	HealthyChicks   uint32
	UnhealthyChicks uint32
	Deaths          uint32
	HealthyAdults   uint32
	UnhealthyAdults uint32
	FlockID         uint64
	FlockSize       uint32
	BreedID         uint64
	BreedName       *string
}

// FlockRef identifies one record's flock inside a bucket. Entries are
// appended per contributing record and deliberately not deduplicated:
// a flock that contributes several records to the same bucket appears
// once per record. Identifiers serialize as decimal strings.
type FlockRef struct {
	FlockID   string  `json:"flockId"`
	FlockSize uint32  `json:"flockSize"`
	BreedID   string  `json:"breedId"`
	BreedName *string `json:"breedName"`
}

// Bucket is one aggregation period. Every numeric field is the
// arithmetic sum of that measure across all records whose key mapped
// to this bucket.
type Bucket struct {
	Period          string     `json:"period"`
	EggsCollected   uint64     `json:"eggsCollected"`
	FertileEggs     uint64     `json:"fertileEggs"`
	InfertileEggs   uint64     `json:"infertileEggs"`
	DamagedEggs     uint64     `json:"damagedEggs"`
	ChicksHatched   uint64     `json:"chicksHatched"`
	HealthyChicks   uint64     `json:"healthyChicks"`
	UnhealthyChicks uint64     `json:"unhealthyChicks"`
	Deaths          uint64     `json:"deaths"`
	HealthyAdults   uint64     `json:"healthyAdults"`
	UnhealthyAdults uint64     `json:"unhealthyAdults"`
	Flocks          []FlockRef `json:"flocks"`
}

// PeriodKey derives the bucket key for a record date under the given
// mode. Dates are interpreted in UTC. An unrecognized mode falls back
// to the daily key.
func PeriodKey(mode Mode, date time.Time) string {
	d := date.UTC()
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	switch mode {
	case ModeWeekly:
		// ISO-8601 week: shift the date to the Thursday of its week
		// (Monday=1..Sunday=7), then count weeks from Jan 1 of the
		// Thursday's calendar year. The Thursday also decides which
		// year owns a week that straddles the boundary.
		wd := int(day.Weekday())
		if wd == 0 {
			wd = 7
		}
		thu := day.AddDate(0, 0, 4-wd)
		yearStart := time.Date(thu.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		days := int(thu.Sub(yearStart) / (24 * time.Hour))
		week := (days + 7) / 7 // ceil((days+1)/7)
		return fmt.Sprintf("%d-W%02d", thu.Year(), week)
	case ModeMonthly:
		return day.Format("2006-01")
	case ModeRange:
		return "range"
	case ModeDaily:
		return day.Format("2006-01-02")
	default:
		return day.Format("2006-01-02")
	}
}

// Aggregate groups records into buckets under the given mode. Buckets
// appear in the output in the order their keys were first seen among
// the input records — not sorted by period — so callers feeding
// date-ordered records get date-ordered buckets and downstream
// consumers relying on that order keep working.
func Aggregate(mode Mode, records []Record) []*Bucket {
	byKey := make(map[string]*Bucket, len(records))
	var out []*Bucket

	for _, r := range records {
		key := PeriodKey(mode, r.RecordDate)
		b, ok := byKey[key]
		if !ok {
			b = &Bucket{Period: key, Flocks: []FlockRef{}}
			byKey[key] = b
			out = append(out, b)
		}

		b.EggsCollected += uint64(r.EggsCollected)
		b.FertileEggs += uint64(r.FertileEggs)
		b.InfertileEggs += uint64(r.InfertileEggs)
		b.DamagedEggs += uint64(r.DamagedEggs)
		b.ChicksHatched += uint64(r.ChicksHatched)
		b.HealthyChicks += uint64(r.HealthyChicks)
		b.UnhealthyChicks += uint64(r.UnhealthyChicks)
		b.Deaths += uint64(r.Deaths)
		b.HealthyAdults += uint64(r.HealthyAdults)
		b.UnhealthyAdults += uint64(r.UnhealthyAdults)

		b.Flocks = append(b.Flocks, FlockRef{
			FlockID:   strconv.FormatUint(r.FlockID, 10),
			FlockSize: r.FlockSize,
			BreedID:   strconv.FormatUint(r.BreedID, 10),
			BreedName: r.BreedName,
		})
	}
	return out
}
