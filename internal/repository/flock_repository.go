// This file defines repository methods for flock intake records. A
// flock ties a batch of birds to one hatchery and one breed; both
// references are existence-checked by the handler before Create runs,
// with the foreign keys in the schema as the backstop for races.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hatchwise/poultry-hatchery-api/internal/model"
)

// ErrFlockNotFound is returned when a flock cannot be found.
var ErrFlockNotFound = errors.New("flock not found")

// FlockDetail pairs a flock with the hatchery and breed summaries the
// listing endpoint embeds.
type FlockDetail struct {
	Flock            model.Flock
	HatcheryName     string
	HatcheryLocation string
	BreedName        string
}

// FlockRepo encapsulates all database queries related to flocks.
type FlockRepo struct {
	db *sql.DB
}

// NewFlockRepo constructs a FlockRepo with the provided DB handle.
func NewFlockRepo(db *sql.DB) *FlockRepo {
	return &FlockRepo{db: db}
}

// Create inserts a new flock. On success the flock's ID and timestamp
// fields are populated. A foreign key violation from a reference that
// disappeared between the handler's pre-check and this insert maps to
// the matching not-found sentinel.
func (r *FlockRepo) Create(ctx context.Context, f *model.Flock) error {
	const qInsert = `INSERT INTO flocks (hatchery_id, breed_id, flock_size, male_chicks,
		female_chicks, purpose, source, intake_date, date_of_shipment)
		VALUES (?,?,?,?,?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, qInsert, f.HatcheryID, f.BreedID, f.FlockSize,
		f.MaleChicks, f.FemaleChicks, f.Purpose, f.Source, f.IntakeDate, f.DateOfShipment)
	if err != nil {
		if isMissingReference(err) {
			return ErrHatcheryNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)

	const qSelect = `SELECT created_at, updated_at FROM flocks WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, f.ID).Scan(&f.CreatedAt, &f.UpdatedAt)
}

// GetByID fetches a flock by id. It returns ErrFlockNotFound if no row
// is found; the report handler uses it to reject filters naming a
// flock that does not exist before any aggregation work happens.
func (r *FlockRepo) GetByID(ctx context.Context, id uint64) (*model.Flock, error) {
	const q = `SELECT id, hatchery_id, breed_id, flock_size, male_chicks, female_chicks,
	                  purpose, source, intake_date, date_of_shipment, created_at, updated_at
	           FROM flocks WHERE id = ?`
	var f model.Flock
	err := r.db.QueryRowContext(ctx, q, id).Scan(&f.ID, &f.HatcheryID, &f.BreedID,
		&f.FlockSize, &f.MaleChicks, &f.FemaleChicks, &f.Purpose, &f.Source,
		&f.IntakeDate, &f.DateOfShipment, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFlockNotFound
		}
		return nil, err
	}
	return &f, nil
}

// List returns all flocks with hatchery and breed summaries, newest
// intake first.
func (r *FlockRepo) List(ctx context.Context) ([]*FlockDetail, error) {
	const q = `SELECT f.id, f.hatchery_id, f.breed_id, f.flock_size, f.male_chicks,
	                  f.female_chicks, f.purpose, f.source, f.intake_date, f.date_of_shipment,
	                  f.created_at, f.updated_at,
	                  h.name, h.location, b.name
	           FROM flocks f
	           JOIN hatcheries h ON h.id = f.hatchery_id
	           JOIN breeds b ON b.id = f.breed_id
	           ORDER BY f.intake_date DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*FlockDetail
	for rows.Next() {
		d := new(FlockDetail)
		if err := rows.Scan(&d.Flock.ID, &d.Flock.HatcheryID, &d.Flock.BreedID,
			&d.Flock.FlockSize, &d.Flock.MaleChicks, &d.Flock.FemaleChicks,
			&d.Flock.Purpose, &d.Flock.Source, &d.Flock.IntakeDate, &d.Flock.DateOfShipment,
			&d.Flock.CreatedAt, &d.Flock.UpdatedAt,
			&d.HatcheryName, &d.HatcheryLocation, &d.BreedName); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
