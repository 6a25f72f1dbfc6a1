package handler

import (
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hatchwise/poultry-hatchery-api/internal/repository"
)

func TestBreedCreateMissingName(t *testing.T) {
	_, db := newMockDB(t)
	h := NewBreedHandler(repository.NewBreedRepo(db))

	e := echo.New()
	req, rec := jsonRequest(http.MethodPost, "/api/breeds", `{"fertilityRate":85.5}`)
	require.NoError(t, h.Create(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "name is required")
}

func TestBreedCreateDuplicate(t *testing.T) {
	mock, db := newMockDB(t)
	h := NewBreedHandler(repository.NewBreedRepo(db))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM breeds WHERE name=?)")).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	e := echo.New()
	req, rec := jsonRequest(http.MethodPost, "/api/breeds", `{"name":"Leghorn"}`)
	require.NoError(t, h.Create(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Breed already exists")
}

func TestBreedDeleteReferenced(t *testing.T) {
	mock, db := newMockDB(t)
	h := NewBreedHandler(repository.NewBreedRepo(db))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM breeds WHERE id = ?")).
		WithArgs(uint64(3)).
		WillReturnError(errFK1451)

	e := echo.New()
	req, rec := jsonRequest(http.MethodDelete, "/api/breeds/3", "")
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("3")
	require.NoError(t, h.Delete(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Breed is referenced by existing flocks")
}

func TestBreedGetByIDInvalid(t *testing.T) {
	_, db := newMockDB(t)
	h := NewBreedHandler(repository.NewBreedRepo(db))

	e := echo.New()
	req, rec := jsonRequest(http.MethodGet, "/api/breeds/abc", "")
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.NoError(t, h.GetByID(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid id")
}
