package model

import "time"

// DailyProduction holds one day's measurements for one flock
// (`daily_productions` table). The pair (FlockID, RecordDate) is
// unique: submitting the same pair again replaces every measure with
// the new values rather than accumulating them.
//
// Fields:
//  ID              – primary key identifier.
//  FlockID         – foreign key into flocks.
//  RecordDate      – calendar day the measurements belong to.
//  EggsCollected   – total eggs collected.
//  FertileEggs     – eggs identified as fertile.
//  InfertileEggs   – eggs identified as infertile.
//  DamagedEggs     – eggs damaged during handling.
//  ChicksHatched   – chicks hatched that day.
//  HealthyChicks   – hatched chicks in good condition.
//  UnhealthyChicks – hatched chicks in poor condition.
//  Deaths          – bird deaths recorded that day.
//  HealthyAdults   – adult birds in good condition.
//  UnhealthyAdults – adult birds in poor condition.
//  CreatedAt       – timestamp of creation.
//  UpdatedAt       – timestamp of last update.
type DailyProduction struct {
	ID              uint64    // daily_productions.id
	FlockID         uint64    // daily_productions.flock_id
	RecordDate      time.Time // daily_productions.record_date
	EggsCollected   uint32    // daily_productions.eggs_collected
	FertileEggs     uint32    // daily_productions.fertile_eggs
	InfertileEggs   uint32    // daily_productions.infertile_eggs
	DamagedEggs     uint32    // daily_productions.damaged_eggs
	ChicksHatched   uint32    // daily_productions.chicks_hatched
	HealthyChicks   uint32    // daily_productions.healthy_chicks
	UnhealthyChicks uint32    // daily_productions.unhealthy_chicks
	Deaths          uint32    // daily_productions.deaths
	HealthyAdults   uint32    // daily_productions.healthy_adults
	UnhealthyAdults uint32    // daily_productions.unhealthy_adults
	CreatedAt       time.Time // daily_productions.created_at
	UpdatedAt       time.Time // daily_productions.updated_at
}
