package handler

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hatchwise/poultry-hatchery-api/internal/repository"
)

func newProductionHandler(t *testing.T) (sqlmock.Sqlmock, *ProductionHandler) {
	t.Helper()
	mock, db := newMockDB(t)
	return mock, NewProductionHandler(repository.NewProductionRepo(db), repository.NewFlockRepo(db))
}

func TestProductionUpsertMissingFields(t *testing.T) {
	_, h := newProductionHandler(t)

	e := echo.New()
	req, rec := jsonRequest(http.MethodPost, "/api/production", `{"eggsCollected":10}`)
	require.NoError(t, h.Upsert(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "flockId and recordDate are required")
}

func TestProductionUpsertBadDate(t *testing.T) {
	_, h := newProductionHandler(t)

	e := echo.New()
	req, rec := jsonRequest(http.MethodPost, "/api/production", `{"flockId":"7","recordDate":"10/04/2026"}`)
	require.NoError(t, h.Upsert(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "YYYY-MM-DD")
}

func TestProductionUpsertUnknownFlock(t *testing.T) {
	mock, h := newProductionHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM flocks WHERE id = ?")).
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	e := echo.New()
	req, rec := jsonRequest(http.MethodPost, "/api/production", `{"flockId":"99","recordDate":"2026-04-10"}`)
	require.NoError(t, h.Upsert(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Flock with id 99 does not exist")
}

func reportQueryRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"record_date", "eggs_collected", "fertile_eggs", "infertile_eggs",
		"damaged_eggs", "chicks_hatched", "healthy_chicks", "unhealthy_chicks",
		"deaths", "healthy_adults", "unhealthy_adults",
		"id", "flock_size", "breed_id", "name",
	})
}

func TestProductionReportEmpty(t *testing.T) {
	mock, h := newProductionHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM daily_productions p")).
		WillReturnRows(reportQueryRows())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/production/report?type=weekly", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Report(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No production data found for the given filter")
}

func TestProductionReportWeekly(t *testing.T) {
	mock, h := newProductionHandler(t)

	// Monday and Sunday of the same ISO week collapse into one bucket.
	mon := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	sun := time.Date(2026, time.January, 11, 0, 0, 0, 0, time.UTC)
	rows := reportQueryRows().
		AddRow(mon, 10, 8, 1, 1, 5, 4, 1, 0, 100, 2, int64(7), 500, int64(3), "Leghorn").
		AddRow(sun, 20, 16, 2, 2, 6, 6, 0, 1, 100, 2, int64(7), 500, int64(3), "Leghorn")

	mock.ExpectQuery(regexp.QuoteMeta("FROM daily_productions p")).
		WillReturnRows(rows)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/production/report?type=weekly", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Report(e.NewContext(req, rec)))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"type":"weekly"`)
	assert.Contains(t, body, `"period":"2026-W02"`)
	assert.Contains(t, body, `"eggsCollected":30`)
	// Both contributing records keep their flock reference.
	assert.Equal(t, 2, len(regexp.MustCompile(`"flockId":"7"`).FindAllString(body, -1)))
}

func TestProductionReportUnknownFlockFilter(t *testing.T) {
	mock, h := newProductionHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM flocks WHERE id = ?")).
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/production/report?flockId=404", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Report(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Flock not found")
}

func TestProductionReportBadDateFilter(t *testing.T) {
	_, h := newProductionHandler(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/production/report?startDate=January", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Report(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid startDate")
}
