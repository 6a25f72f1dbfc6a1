package model

import "time"

// Breed is reference data describing the expected biological
// performance of one poultry breed, as stored in the `breeds` table.
// The rate columns are domain percentages; no constraint ties related
// rates together (e.g. fertility + infertility is not forced to 100).
//
// Fields:
//  ID                 – primary key identifier.
//  Name               – unique breed name.
//  FertilityRate      – expected fertile egg percentage.
//  InfertilityRate    – expected infertile egg percentage.
//  EggDamageRate      – expected damaged egg percentage.
//  HatchabilityRate   – expected hatch percentage of fertile eggs.
//  HealthyChickRate   – expected healthy chick percentage.
//  UnhealthyChickRate – expected unhealthy chick percentage.
//  MortalityRate      – expected mortality percentage.
//  HealthyAdultRate   – expected healthy adult percentage.
//  UnhealthyAdultRate – expected unhealthy adult percentage.
//  CreatedAt          – timestamp of creation.
//  UpdatedAt          – timestamp of last update.
type Breed struct {
	ID                 uint64    // breeds.id
	Name               string    // breeds.name
	FertilityRate      float64   // breeds.fertility_rate
	InfertilityRate    float64   // breeds.infertility_rate
	EggDamageRate      float64   // breeds.egg_damage_rate
	HatchabilityRate   float64   // breeds.hatchability_rate
	HealthyChickRate   float64   // breeds.healthy_chick_rate
	UnhealthyChickRate float64   // breeds.unhealthy_chick_rate
	MortalityRate      float64   // breeds.mortality_rate
	HealthyAdultRate   float64   // breeds.healthy_adult_rate
	UnhealthyAdultRate float64   // breeds.unhealthy_adult_rate
	CreatedAt          time.Time // breeds.created_at
	UpdatedAt          time.Time // breeds.updated_at
}
