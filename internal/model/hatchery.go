package model

import "time"

// Hatchery models a physical facility in the `hatcheries` table. Each
// hatchery is owned by exactly one user and that user must hold the
// hatchery_member role; the check happens before insertion, not in the
// schema.
//
// Fields:
//  ID                 – primary key identifier.
//  Name               – facility name.
//  Location           – free-form location description.
//  RegistrationNumber – unique government registration number.
//  OwnerID            – foreign key into users (role hatchery_member).
//  RenewalStatus      – whether the registration is currently renewed.
//  YearEstablished    – founding year of the facility.
//  CreatedAt          – timestamp of creation.
//  UpdatedAt          – timestamp of last update.
type Hatchery struct {
	ID                 uint64    // hatcheries.id
	Name               string    // hatcheries.name
	Location           string    // hatcheries.location
	RegistrationNumber string    // hatcheries.registration_number
	OwnerID            uint64    // hatcheries.owner_id
	RenewalStatus      bool      // hatcheries.renewal_status
	YearEstablished    int       // hatcheries.year_established
	CreatedAt          time.Time // hatcheries.created_at
	UpdatedAt          time.Time // hatcheries.updated_at
}
