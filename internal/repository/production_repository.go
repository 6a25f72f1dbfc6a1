// This file defines repository methods for daily production records.
// The (flock_id, record_date) pair is unique: Upsert leans on MySQL's
// ON DUPLICATE KEY UPDATE so a second submission for the same pair
// replaces every measure instead of inserting a second row, and
// whichever concurrent writer commits last wins.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/hatchwise/poultry-hatchery-api/internal/model"
	"github.com/hatchwise/poultry-hatchery-api/internal/report"
)

// ProductionRepo encapsulates all database queries related to daily
// production records.
type ProductionRepo struct {
	db *sql.DB
}

// NewProductionRepo constructs a ProductionRepo with the provided DB handle.
func NewProductionRepo(db *sql.DB) *ProductionRepo {
	return &ProductionRepo{db: db}
}

// Upsert inserts the record or, when a row for the same
// (flock_id, record_date) already exists, replaces all of its measure
// columns with the supplied values — full replacement, never
// accumulation. The flock's existence is pre-checked by the handler;
// a race against flock deletion maps to ErrFlockNotFound. On success
// the record's ID and timestamp fields reflect the stored row.
func (r *ProductionRepo) Upsert(ctx context.Context, p *model.DailyProduction) error {
	const qUpsert = `INSERT INTO daily_productions
		(flock_id, record_date, eggs_collected, fertile_eggs, infertile_eggs, damaged_eggs,
		 chicks_hatched, healthy_chicks, unhealthy_chicks, deaths, healthy_adults, unhealthy_adults)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)
		ON DUPLICATE KEY UPDATE
		 eggs_collected = VALUES(eggs_collected),
		 fertile_eggs = VALUES(fertile_eggs),
		 infertile_eggs = VALUES(infertile_eggs),
		 damaged_eggs = VALUES(damaged_eggs),
		 chicks_hatched = VALUES(chicks_hatched),
		 healthy_chicks = VALUES(healthy_chicks),
		 unhealthy_chicks = VALUES(unhealthy_chicks),
		 deaths = VALUES(deaths),
		 healthy_adults = VALUES(healthy_adults),
		 unhealthy_adults = VALUES(unhealthy_adults),
		 updated_at = CURRENT_TIMESTAMP`
	_, err := r.db.ExecContext(ctx, qUpsert, p.FlockID, p.RecordDate,
		p.EggsCollected, p.FertileEggs, p.InfertileEggs, p.DamagedEggs,
		p.ChicksHatched, p.HealthyChicks, p.UnhealthyChicks, p.Deaths,
		p.HealthyAdults, p.UnhealthyAdults)
	if err != nil {
		if isMissingReference(err) {
			return ErrFlockNotFound
		}
		return err
	}

	// LastInsertId is unreliable for the update arm of an upsert, so a
	// follow-up SELECT by the natural key populates id and timestamps.
	const qSelect = `SELECT id, created_at, updated_at FROM daily_productions
	                 WHERE flock_id = ? AND record_date = ?`
	return r.db.QueryRowContext(ctx, qSelect, p.FlockID, p.RecordDate).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// ListForReport returns report records optionally filtered by flock
// and an inclusive date range, ordered by record date ascending. Each
// row is joined with its flock and the flock's breed; the breed join
// is LEFT so a removed breed yields a null name instead of dropping
// the row.
func (r *ProductionRepo) ListForReport(ctx context.Context, flockID *uint64, startDate, endDate *time.Time) ([]report.Record, error) {
	q := `SELECT p.record_date, p.eggs_collected, p.fertile_eggs, p.infertile_eggs,
	             p.damaged_eggs, p.chicks_hatched, p.healthy_chicks, p.unhealthy_chicks,
	             p.deaths, p.healthy_adults, p.unhealthy_adults,
	             f.id, f.flock_size, f.breed_id, b.name
	      FROM daily_productions p
	      JOIN flocks f ON f.id = p.flock_id
	      LEFT JOIN breeds b ON b.id = f.breed_id
	      WHERE 1=1`
	args := []any{}
	if flockID != nil {
		q += " AND p.flock_id = ?"
		args = append(args, *flockID)
	}
	if startDate != nil {
		q += " AND p.record_date >= ?"
		args = append(args, *startDate)
	}
	if endDate != nil {
		q += " AND p.record_date <= ?"
		args = append(args, *endDate)
	}
	q += " ORDER BY p.record_date ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []report.Record
	for rows.Next() {
		var rec report.Record
		var breedName sql.NullString
		if err := rows.Scan(&rec.RecordDate, &rec.EggsCollected, &rec.FertileEggs,
			&rec.InfertileEggs, &rec.DamagedEggs, &rec.ChicksHatched, &rec.HealthyChicks,
			&rec.UnhealthyChicks, &rec.Deaths, &rec.HealthyAdults, &rec.UnhealthyAdults,
			&rec.FlockID, &rec.FlockSize, &rec.BreedID, &breedName); err != nil {
			return nil, err
		}
		if breedName.Valid {
			rec.BreedName = &breedName.String
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
