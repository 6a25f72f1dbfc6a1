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

func breedRow(id int64, name string, now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "fertility_rate", "infertility_rate", "egg_damage_rate",
		"hatchability_rate", "healthy_chick_rate", "unhealthy_chick_rate",
		"mortality_rate", "healthy_adult_rate", "unhealthy_adult_rate",
		"created_at", "updated_at",
	}).AddRow(id, name, 85.5, 14.5, 2.0, 90.0, 95.0, 5.0, 1.5, 97.0, 3.0, now, now)
}

func TestBreedCreate(t *testing.T) {
	mock, db := newMock(t)
	repo := NewBreedRepo(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM breeds WHERE name=?)")).
		WithArgs("Leghorn").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO breeds")).
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectQuery("SELECT .+ FROM breeds WHERE id = ?").
		WithArgs(uint64(3)).
		WillReturnRows(breedRow(3, "Leghorn", now))

	b := model.Breed{Name: " Leghorn ", FertilityRate: 85.5}
	if err := repo.Create(context.Background(), &b); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if b.ID != 3 || b.Name != "Leghorn" {
		t.Errorf("breed = id:%d name:%q", b.ID, b.Name)
	}
	if b.CreatedAt.IsZero() {
		t.Error("timestamps not populated from the stored row")
	}
}

func TestBreedCreateDuplicateName(t *testing.T) {
	mock, db := newMock(t)
	repo := NewBreedRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM breeds WHERE name=?)")).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	b := model.Breed{Name: "Leghorn"}
	if err := repo.Create(context.Background(), &b); !errors.Is(err, ErrBreedExists) {
		t.Fatalf("err = %v, want ErrBreedExists", err)
	}
}

func TestBreedGetByIDNotFound(t *testing.T) {
	mock, db := newMock(t)
	repo := NewBreedRepo(db)

	mock.ExpectQuery("SELECT .+ FROM breeds WHERE id = ?").
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.GetByID(context.Background(), 404); !errors.Is(err, ErrBreedNotFound) {
		t.Fatalf("err = %v, want ErrBreedNotFound", err)
	}
}

func TestBreedUpdateMissing(t *testing.T) {
	mock, db := newMock(t)
	repo := NewBreedRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE breeds")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM breeds WHERE id=?)")).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	b := model.Breed{ID: 404, Name: "Gone"}
	if err := repo.Update(context.Background(), &b); !errors.Is(err, ErrBreedNotFound) {
		t.Fatalf("err = %v, want ErrBreedNotFound", err)
	}
}

func TestBreedDeleteReferenced(t *testing.T) {
	mock, db := newMock(t)
	repo := NewBreedRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM breeds WHERE id = ?")).
		WithArgs(uint64(3)).
		WillReturnError(&mysql.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row: a foreign key constraint fails"})

	if err := repo.Delete(context.Background(), 3); !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestBreedDeleteMissing(t *testing.T) {
	mock, db := newMock(t)
	repo := NewBreedRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM breeds WHERE id = ?")).
		WithArgs(uint64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), 404); !errors.Is(err, ErrBreedNotFound) {
		t.Fatalf("err = %v, want ErrBreedNotFound", err)
	}
}
