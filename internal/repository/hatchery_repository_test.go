package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	"github.com/hatchwise/poultry-hatchery-api/internal/model"
)

func TestHatcheryListWithFlocksGrouping(t *testing.T) {
	mock, db := newMock(t)
	repo := NewHatcheryRepo(db)

	intake := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"h.id", "h.name", "h.location",
		"f.id", "f.flock_size", "f.male_chicks", "f.female_chicks",
		"f.purpose", "f.source", "f.intake_date",
		"b.id", "b.name",
	}).
		AddRow(int64(1), "Sunrise", "Valley Rd", int64(10), 500, 240, 260, "layer", "local", intake, int64(3), "Leghorn").
		AddRow(int64(1), "Sunrise", "Valley Rd", int64(11), 200, 100, 100, "broiler", "import", intake, int64(4), "Cobb").
		// Hatchery without flocks: every flock column comes back NULL.
		AddRow(int64(2), "Hillside", "Ridge Ln", nil, nil, nil, nil, nil, nil, nil, nil, nil)

	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN flocks f ON f.hatchery_id = h.id")).
		WillReturnRows(rows)

	out, err := repo.ListWithFlocks(context.Background())
	if err != nil {
		t.Fatalf("ListWithFlocks: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d hatcheries, want 2", len(out))
	}
	if out[0].Name != "Sunrise" || len(out[0].Flocks) != 2 {
		t.Errorf("first hatchery = %q with %d flocks", out[0].Name, len(out[0].Flocks))
	}
	if out[0].Flocks[1].BreedName != "Cobb" || out[0].Flocks[1].FlockSize != 200 {
		t.Errorf("second flock = %+v", out[0].Flocks[1])
	}
	if out[1].Name != "Hillside" || len(out[1].Flocks) != 0 {
		t.Errorf("flockless hatchery = %q with %d flocks, want empty list", out[1].Name, len(out[1].Flocks))
	}
	if out[1].Flocks == nil {
		t.Error("flockless hatchery serializes as null instead of []")
	}
}

func TestHatcheryCreateDuplicateRegistration(t *testing.T) {
	mock, db := newMock(t)
	repo := NewHatcheryRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM hatcheries WHERE registration_number=?)")).
		WithArgs("REG-001").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	h := model.Hatchery{Name: "Sunrise", RegistrationNumber: "REG-001", OwnerID: 5, RenewalStatus: true}
	if err := repo.Create(context.Background(), &h); !errors.Is(err, ErrRegistrationExists) {
		t.Fatalf("err = %v, want ErrRegistrationExists", err)
	}
}

func TestHatcheryDeleteWithFlocks(t *testing.T) {
	mock, db := newMock(t)
	repo := NewHatcheryRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM hatcheries WHERE id = ?")).
		WithArgs(uint64(1)).
		WillReturnError(&mysql.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row: a foreign key constraint fails"})

	if err := repo.Delete(context.Background(), 1); !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}
