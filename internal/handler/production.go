package handler // handler package contains daily production handlers

import (
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/hatchwise/poultry-hatchery-api/internal/model"
    "github.com/hatchwise/poultry-hatchery-api/internal/queue"
    "github.com/hatchwise/poultry-hatchery-api/internal/report"
    "github.com/hatchwise/poultry-hatchery-api/internal/repository"
    queue_publisher "github.com/hatchwise/poultry-hatchery-api/internal/service"
    "github.com/hatchwise/poultry-hatchery-api/internal/utils"
)

// ProductionHandler bundles repositories for the daily production
// endpoints: the upsert and the aggregated report.
type ProductionHandler struct {
	Productions *repository.ProductionRepo
	Flocks      *repository.FlockRepo
}

func NewProductionHandler(p *repository.ProductionRepo, f *repository.FlockRepo) *ProductionHandler {
	if p == nil || f == nil {
		panic("nil repository passed to NewProductionHandler")
	}
	return &ProductionHandler{Productions: p, Flocks: f}
}

type productionReq struct {
	FlockID         string `json:"flockId"`
	RecordDate      string `json:"recordDate"`
	EggsCollected   uint32 `json:"eggsCollected"`
	FertileEggs     uint32 `json:"fertileEggs"`
	InfertileEggs   uint32 `json:"infertileEggs"`
	DamagedEggs     uint32 `json:"damagedEggs"`
	ChicksHatched   uint32 `json:"chicksHatched"`
	HealthyChicks   uint32 `json:"healthyChicks"`
	UnhealthyChicks uint32 `json:"unhealthyChicks"`
	Deaths          uint32 `json:"deaths"`
	HealthyAdults   uint32 `json:"healthyAdults"`
	UnhealthyAdults uint32 `json:"unhealthyAdults"`
}

// productionPart is the serialized daily production shape.
type productionPart struct {
	ID              string    `json:"id"`
	FlockID         string    `json:"flockId"`
	RecordDate      string    `json:"recordDate"`
	EggsCollected   uint32    `json:"eggsCollected"`
	FertileEggs     uint32    `json:"fertileEggs"`
	InfertileEggs   uint32    `json:"infertileEggs"`
	DamagedEggs     uint32    `json:"damagedEggs"`
	ChicksHatched   uint32    `json:"chicksHatched"`
	HealthyChicks   uint32    `json:"healthyChicks"`
	UnhealthyChicks uint32    `json:"unhealthyChicks"`
	Deaths          uint32    `json:"deaths"`
	HealthyAdults   uint32    `json:"healthyAdults"`
	UnhealthyAdults uint32    `json:"unhealthyAdults"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toProductionPart(p *model.DailyProduction) productionPart {
	return productionPart{
		ID:              utils.FormatID(p.ID),
		FlockID:         utils.FormatID(p.FlockID),
		RecordDate:      formatDate(p.RecordDate),
		EggsCollected:   p.EggsCollected,
		FertileEggs:     p.FertileEggs,
		InfertileEggs:   p.InfertileEggs,
		DamagedEggs:     p.DamagedEggs,
		ChicksHatched:   p.ChicksHatched,
		HealthyChicks:   p.HealthyChicks,
		UnhealthyChicks: p.UnhealthyChicks,
		Deaths:          p.Deaths,
		HealthyAdults:   p.HealthyAdults,
		UnhealthyAdults: p.UnhealthyAdults,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// Upsert handles POST /api/production. A record already existing for
// the same (flock, day) pair has all of its measures replaced by the
// submitted values; either way the response is 200 with the stored
// row. The flock is checked first so a bad reference answers 404
// before any write.
func (h *ProductionHandler) Upsert(c echo.Context) error {
	var req productionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid body"})
	}
	if req.FlockID == "" || req.RecordDate == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "flockId and recordDate are required"})
	}
	flockID, err := utils.ParseID(req.FlockID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid flockId"})
	}
	recordDate, err := parseDate(req.RecordDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid recordDate, expected YYYY-MM-DD"})
	}

	ctx := c.Request().Context()

	if _, err := h.Flocks.GetByID(ctx, flockID); err != nil {
		if errors.Is(err, repository.ErrFlockNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Flock with id " + req.FlockID + " does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}

	p := model.DailyProduction{
		FlockID:         flockID,
		RecordDate:      recordDate,
		EggsCollected:   req.EggsCollected,
		FertileEggs:     req.FertileEggs,
		InfertileEggs:   req.InfertileEggs,
		DamagedEggs:     req.DamagedEggs,
		ChicksHatched:   req.ChicksHatched,
		HealthyChicks:   req.HealthyChicks,
		UnhealthyChicks: req.UnhealthyChicks,
		Deaths:          req.Deaths,
		HealthyAdults:   req.HealthyAdults,
		UnhealthyAdults: req.UnhealthyAdults,
	}
	if err := h.Productions.Upsert(ctx, &p); err != nil {
		if errors.Is(err, repository.ErrFlockNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Flock with id " + req.FlockID + " does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}

	// Publish the audit event best effort; a broker outage must not
	// fail the request.
	email, _ := c.Get("email").(string)
	uid, _ := principalID(c)
	_ = queue_publisher.PublishProductionRecorded(ctx, queue.ProductionRecordedEvent{
		ProductionID:  p.ID,
		FlockID:       p.FlockID,
		RecordDate:    formatDate(p.RecordDate),
		EggsCollected: p.EggsCollected,
		ChicksHatched: p.ChicksHatched,
		Deaths:        p.Deaths,
		RecordedByID:  uid,
		RecordedBy:    email,
		RecordedAt:    time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Daily production upserted successfully",
		"data":    toProductionPart(&p),
	})
}

// Report handles GET /api/production/report. Query parameters: type
// (daily|weekly|monthly|range, default daily), flockId, startDate,
// endDate (inclusive). A flockId naming a missing flock and a filter
// matching zero records both answer 404 before any aggregation runs.
// The response echoes the requested type verbatim; an unrecognized
// value still buckets daily.
func (h *ProductionHandler) Report(c echo.Context) error {
	typ := c.QueryParam("type")
	if typ == "" {
		typ = string(report.ModeDaily)
	}

	ctx := c.Request().Context()

	var flockID *uint64
	if s := c.QueryParam("flockId"); s != "" {
		id, err := utils.ParseID(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid flockId"})
		}
		if _, err := h.Flocks.GetByID(ctx, id); err != nil {
			if errors.Is(err, repository.ErrFlockNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Flock not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
		}
		flockID = &id
	}

	var startDate, endDate *time.Time
	if s := c.QueryParam("startDate"); s != "" {
		d, err := parseDate(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid startDate, expected YYYY-MM-DD"})
		}
		startDate = &d
	}
	if s := c.QueryParam("endDate"); s != "" {
		d, err := parseDate(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid endDate, expected YYYY-MM-DD"})
		}
		endDate = &d
	}

	records, err := h.Productions.ListForReport(ctx, flockID, startDate, endDate)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	if len(records) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "No production data found for the given filter"})
	}

	buckets := report.Aggregate(report.Mode(typ), records)

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"type":    typ,
		"report":  buckets,
	})
}
