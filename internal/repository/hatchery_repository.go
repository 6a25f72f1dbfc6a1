// This file defines repository methods for hatchery facilities. Reads
// join the owning user so responses can embed owner details, and the
// flocks listing produces the nested hatchery -> flocks -> breed
// projection in a single query.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/hatchwise/poultry-hatchery-api/internal/model"
)

// ErrHatcheryNotFound is returned when a hatchery cannot be found.
var ErrHatcheryNotFound = errors.New("hatchery not found")

// ErrRegistrationExists is returned when the registration number
// uniqueness constraint would be violated.
var ErrRegistrationExists = errors.New("registration number already exists")

// HatcheryWithOwner pairs a hatchery with its owning user for
// responses that embed owner details. The owner's password hash is
// selected but never serialized by handlers.
type HatcheryWithOwner struct {
	Hatchery model.Hatchery
	Owner    model.User
}

// HatcheryFlocks is the nested projection for the hatcheries/flocks
// listing: one hatchery with all its flocks and each flock's breed.
type HatcheryFlocks struct {
	ID       uint64
	Name     string
	Location string
	Flocks   []FlockBreed
}

// FlockBreed is one flock row inside HatcheryFlocks.
type FlockBreed struct {
	ID           uint64
	FlockSize    uint32
	MaleChicks   uint32
	FemaleChicks uint32
	Purpose      string
	Source       string
	IntakeDate   time.Time
	BreedID      uint64
	BreedName    string
}

// HatcheryRepo encapsulates all database queries related to hatcheries.
type HatcheryRepo struct {
	db *sql.DB
}

// NewHatcheryRepo constructs a HatcheryRepo with the provided DB handle.
func NewHatcheryRepo(db *sql.DB) *HatcheryRepo {
	return &HatcheryRepo{db: db}
}

const hatcheryOwnerColumns = `h.id, h.name, h.location, h.registration_number, h.owner_id,
	h.renewal_status, h.year_established, h.created_at, h.updated_at,
	u.id, u.name, u.email, u.role, u.phone`

func scanHatcheryOwner(scan func(dest ...any) error) (*HatcheryWithOwner, error) {
	var hw HatcheryWithOwner
	err := scan(&hw.Hatchery.ID, &hw.Hatchery.Name, &hw.Hatchery.Location,
		&hw.Hatchery.RegistrationNumber, &hw.Hatchery.OwnerID, &hw.Hatchery.RenewalStatus,
		&hw.Hatchery.YearEstablished, &hw.Hatchery.CreatedAt, &hw.Hatchery.UpdatedAt,
		&hw.Owner.ID, &hw.Owner.Name, &hw.Owner.Email, &hw.Owner.Role, &hw.Owner.Phone)
	if err != nil {
		return nil, err
	}
	return &hw, nil
}

// Create inserts a new hatchery. The registration number is checked
// for uniqueness before the insert so a duplicate produces
// ErrRegistrationExists; the owner's existence and role are validated
// by the handler before this call. On success the hatchery's ID and
// timestamp fields are populated.
func (r *HatcheryRepo) Create(ctx context.Context, h *model.Hatchery) error {
	var exists bool
	if err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM hatcheries WHERE registration_number=?)",
		h.RegistrationNumber).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrRegistrationExists
	}
	const qInsert = `INSERT INTO hatcheries (name, location, registration_number, owner_id,
		renewal_status, year_established) VALUES (?,?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, qInsert, h.Name, h.Location, h.RegistrationNumber,
		h.OwnerID, h.RenewalStatus, h.YearEstablished)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrRegistrationExists
		}
		if isMissingReference(err) {
			return ErrUserNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)

	// Follow-up SELECT to populate default timestamp fields.
	const qSelect = `SELECT created_at, updated_at FROM hatcheries WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, h.ID).Scan(&h.CreatedAt, &h.UpdatedAt)
}

// GetByID fetches a hatchery with its owner. It returns
// ErrHatcheryNotFound if no row is found.
func (r *HatcheryRepo) GetByID(ctx context.Context, id uint64) (*HatcheryWithOwner, error) {
	const q = `SELECT ` + hatcheryOwnerColumns + `
	           FROM hatcheries h JOIN users u ON u.id = h.owner_id
	           WHERE h.id = ?`
	hw, err := scanHatcheryOwner(r.db.QueryRowContext(ctx, q, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHatcheryNotFound
		}
		return nil, err
	}
	return hw, nil
}

// List returns all hatcheries with their owners ordered by name.
func (r *HatcheryRepo) List(ctx context.Context) ([]*HatcheryWithOwner, error) {
	const q = `SELECT ` + hatcheryOwnerColumns + `
	           FROM hatcheries h JOIN users u ON u.id = h.owner_id
	           ORDER BY h.name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*HatcheryWithOwner
	for rows.Next() {
		hw, err := scanHatcheryOwner(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, hw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListWithFlocks returns every hatchery with its flocks and each
// flock's breed, grouped in Go from one LEFT JOIN query so hatcheries
// without flocks still appear with an empty list.
func (r *HatcheryRepo) ListWithFlocks(ctx context.Context) ([]*HatcheryFlocks, error) {
	const q = `SELECT h.id, h.name, h.location,
	                  f.id, f.flock_size, f.male_chicks, f.female_chicks,
	                  f.purpose, f.source, f.intake_date,
	                  b.id, b.name
	           FROM hatcheries h
	           LEFT JOIN flocks f ON f.hatchery_id = h.id
	           LEFT JOIN breeds b ON b.id = f.breed_id
	           ORDER BY h.id, f.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*HatcheryFlocks
	var cur *HatcheryFlocks
	for rows.Next() {
		var (
			hID                uint64
			hName, hLocation   string
			fID                sql.NullInt64
			fSize, fMale, fFem sql.NullInt64
			fPurpose, fSource  sql.NullString
			fIntake            sql.NullTime
			bID                sql.NullInt64
			bName              sql.NullString
		)
		if err := rows.Scan(&hID, &hName, &hLocation, &fID, &fSize, &fMale, &fFem,
			&fPurpose, &fSource, &fIntake, &bID, &bName); err != nil {
			return nil, err
		}
		if cur == nil || cur.ID != hID {
			cur = &HatcheryFlocks{ID: hID, Name: hName, Location: hLocation, Flocks: []FlockBreed{}}
			out = append(out, cur)
		}
		if fID.Valid {
			cur.Flocks = append(cur.Flocks, FlockBreed{
				ID:           uint64(fID.Int64),
				FlockSize:    uint32(fSize.Int64),
				MaleChicks:   uint32(fMale.Int64),
				FemaleChicks: uint32(fFem.Int64),
				Purpose:      fPurpose.String,
				Source:       fSource.String,
				IntakeDate:   fIntake.Time,
				BreedID:      uint64(bID.Int64),
				BreedName:    bName.String,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces the mutable fields of a hatchery; the handler merges
// partial input over the current row before calling this. It returns
// ErrHatcheryNotFound when the id does not exist.
func (r *HatcheryRepo) Update(ctx context.Context, h *model.Hatchery) error {
	const q = `UPDATE hatcheries
	           SET name = ?, location = ?, registration_number = ?, owner_id = ?,
	               renewal_status = ?, year_established = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, h.Name, h.Location, h.RegistrationNumber,
		h.OwnerID, h.RenewalStatus, h.YearEstablished, h.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrRegistrationExists
		}
		if isMissingReference(err) {
			return ErrUserNotFound
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM hatcheries WHERE id=?)", h.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrHatcheryNotFound
		}
	}
	return nil
}

// Delete removes a hatchery by id. ErrHatcheryNotFound is returned
// when the id does not exist; ErrConflict when flocks still reference
// the hatchery.
func (r *HatcheryRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM hatcheries WHERE id = ?", id)
	if err != nil {
		if isRowReferenced(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrHatcheryNotFound
	}
	return nil
}
