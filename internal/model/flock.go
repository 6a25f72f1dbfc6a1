package model

import "time"

// Flock is a batch of birds tracked together, tied to one hatchery and
// one breed (`flocks` table). Both references must exist at creation
// time; the handlers verify them before the insert so that a missing
// reference surfaces as a named not-found error instead of a raw
// foreign key violation.
//
// Fields:
//  ID             – primary key identifier.
//  HatcheryID     – foreign key into hatcheries.
//  BreedID        – foreign key into breeds.
//  FlockSize      – total number of birds in the batch.
//  MaleChicks     – male chick count at intake.
//  FemaleChicks   – female chick count at intake.
//  Purpose        – what the flock is raised for (layer, broiler, ...).
//  Source         – where the batch was sourced from.
//  IntakeDate     – date the batch entered the hatchery.
//  DateOfShipment – optional shipment date (nil while on site).
//  CreatedAt      – timestamp of creation.
//  UpdatedAt      – timestamp of last update.
type Flock struct {
	ID             uint64     // flocks.id
	HatcheryID     uint64     // flocks.hatchery_id
	BreedID        uint64     // flocks.breed_id
	FlockSize      uint32     // flocks.flock_size
	MaleChicks     uint32     // flocks.male_chicks
	FemaleChicks   uint32     // flocks.female_chicks
	Purpose        string     // flocks.purpose
	Source         string     // flocks.source
	IntakeDate     time.Time  // flocks.intake_date
	DateOfShipment *time.Time // flocks.date_of_shipment (nullable)
	CreatedAt      time.Time  // flocks.created_at
	UpdatedAt      time.Time  // flocks.updated_at
}
