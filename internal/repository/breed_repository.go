// This file defines repository methods for breed reference data. A
// breed describes the expected biological performance rates for one
// poultry breed; flocks reference breeds, so deleting a breed that is
// still in use surfaces as a conflict rather than a raw driver error.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors is used to define custom error values
	"strings"

	"github.com/hatchwise/poultry-hatchery-api/internal/model"
)

// ErrBreedNotFound is returned when a breed cannot be found in the DB.
var ErrBreedNotFound = errors.New("breed not found")

// ErrBreedExists is returned when the breed name uniqueness constraint
// would be violated.
var ErrBreedExists = errors.New("breed already exists")

// BreedRepo encapsulates all database queries related to breeds. It
// depends on a sql.DB connection which should be configured elsewhere.
type BreedRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewBreedRepo constructs a BreedRepo with the provided DB handle. This
// function allows dependency injection of the database in tests and at
// startup.
func NewBreedRepo(db *sql.DB) *BreedRepo {
	return &BreedRepo{db: db}
}

const breedColumns = `id, name, fertility_rate, infertility_rate, egg_damage_rate,
	hatchability_rate, healthy_chick_rate, unhealthy_chick_rate, mortality_rate,
	healthy_adult_rate, unhealthy_adult_rate, created_at, updated_at`

func scanBreed(row *sql.Row, b *model.Breed) error {
	return row.Scan(&b.ID, &b.Name, &b.FertilityRate, &b.InfertilityRate, &b.EggDamageRate,
		&b.HatchabilityRate, &b.HealthyChickRate, &b.UnhealthyChickRate, &b.MortalityRate,
		&b.HealthyAdultRate, &b.UnhealthyAdultRate, &b.CreatedAt, &b.UpdatedAt)
}

// Create inserts a new breed. The name is checked for uniqueness
// before the insert so a duplicate produces ErrBreedExists without
// mutating the existing record; a concurrent insert racing past the
// check is still translated. On success the breed's ID and timestamp
// fields are populated.
func (r *BreedRepo) Create(ctx context.Context, b *model.Breed) error {
	name := strings.TrimSpace(b.Name)
	var exists bool
	if err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM breeds WHERE name=?)", name).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrBreedExists
	}
	const qInsert = `INSERT INTO breeds (name, fertility_rate, infertility_rate, egg_damage_rate,
		hatchability_rate, healthy_chick_rate, unhealthy_chick_rate, mortality_rate,
		healthy_adult_rate, unhealthy_adult_rate) VALUES (?,?,?,?,?,?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, qInsert, name, b.FertilityRate, b.InfertilityRate,
		b.EggDamageRate, b.HatchabilityRate, b.HealthyChickRate, b.UnhealthyChickRate,
		b.MortalityRate, b.HealthyAdultRate, b.UnhealthyAdultRate)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrBreedExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	// Follow-up SELECT to populate default timestamp fields.
	return scanBreed(r.db.QueryRowContext(ctx, "SELECT "+breedColumns+" FROM breeds WHERE id = ?", b.ID), b)
}

// GetByID fetches a breed by its ID. It returns ErrBreedNotFound if no
// row is found.
func (r *BreedRepo) GetByID(ctx context.Context, id uint64) (*model.Breed, error) {
	var b model.Breed
	if err := scanBreed(r.db.QueryRowContext(ctx, "SELECT "+breedColumns+" FROM breeds WHERE id = ?", id), &b); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBreedNotFound
		}
		return nil, err
	}
	return &b, nil
}

// List returns all breeds ordered by name.
func (r *BreedRepo) List(ctx context.Context) ([]*model.Breed, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+breedColumns+" FROM breeds ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Breed
	for rows.Next() {
		b := new(model.Breed)
		if err := rows.Scan(&b.ID, &b.Name, &b.FertilityRate, &b.InfertilityRate, &b.EggDamageRate,
			&b.HatchabilityRate, &b.HealthyChickRate, &b.UnhealthyChickRate, &b.MortalityRate,
			&b.HealthyAdultRate, &b.UnhealthyAdultRate, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces the mutable fields of a breed. It returns
// ErrBreedNotFound when the id does not exist and ErrBreedExists when
// the new name collides with another breed.
func (r *BreedRepo) Update(ctx context.Context, b *model.Breed) error {
	const q = `UPDATE breeds
	           SET name = ?, fertility_rate = ?, infertility_rate = ?, egg_damage_rate = ?,
	               hatchability_rate = ?, healthy_chick_rate = ?, unhealthy_chick_rate = ?,
	               mortality_rate = ?, healthy_adult_rate = ?, unhealthy_adult_rate = ?,
	               updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, b.Name, b.FertilityRate, b.InfertilityRate,
		b.EggDamageRate, b.HatchabilityRate, b.HealthyChickRate, b.UnhealthyChickRate,
		b.MortalityRate, b.HealthyAdultRate, b.UnhealthyAdultRate, b.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrBreedExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Either the row is missing or the update was a no-op; a
		// follow-up existence check tells them apart.
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM breeds WHERE id=?)", b.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrBreedNotFound
		}
	}
	return scanBreed(r.db.QueryRowContext(ctx, "SELECT "+breedColumns+" FROM breeds WHERE id = ?", b.ID), b)
}

// Delete removes a breed by id. ErrBreedNotFound is returned when the
// id does not exist; ErrConflict when flocks still reference it.
func (r *BreedRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM breeds WHERE id = ?", id)
	if err != nil {
		if isRowReferenced(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBreedNotFound
	}
	return nil
}
