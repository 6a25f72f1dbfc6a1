package handler // handler package contains flock intake handlers

import (
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/hatchwise/poultry-hatchery-api/internal/model"
    "github.com/hatchwise/poultry-hatchery-api/internal/repository"
    "github.com/hatchwise/poultry-hatchery-api/internal/utils"
)

// FlockHandler bundles repositories for flock endpoints. Hatchery and
// breed repositories are needed because both references must exist
// before a flock is created; each missing reference is reported by
// name.
type FlockHandler struct {
	Flocks     *repository.FlockRepo
	Hatcheries *repository.HatcheryRepo
	Breeds     *repository.BreedRepo
}

func NewFlockHandler(f *repository.FlockRepo, h *repository.HatcheryRepo, b *repository.BreedRepo) *FlockHandler {
	if f == nil || h == nil || b == nil {
		panic("nil repository passed to NewFlockHandler")
	}
	return &FlockHandler{Flocks: f, Hatcheries: h, Breeds: b}
}

type flockReq struct {
	HatcheryID     string  `json:"hatcheryId"`
	BreedID        string  `json:"breedId"`
	FlockSize      uint32  `json:"flockSize"`
	MaleChicks     uint32  `json:"maleChicks"`
	FemaleChicks   uint32  `json:"femaleChicks"`
	Purpose        string  `json:"purpose"`
	Source         string  `json:"source"`
	IntakeDate     string  `json:"intakeDate"`
	DateOfShipment *string `json:"dateOfShipment"`
}

// flockPart is the serialized flock shape with string ids and the
// hatchery/breed summaries embedded.
type flockPart struct {
	ID             string  `json:"id"`
	FlockSize      uint32  `json:"flockSize"`
	MaleChicks     uint32  `json:"maleChicks"`
	FemaleChicks   uint32  `json:"femaleChicks"`
	Purpose        string  `json:"purpose"`
	Source         string  `json:"source"`
	IntakeDate     string  `json:"intakeDate"`
	DateOfShipment *string `json:"dateOfShipment"`
	Hatchery       struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Location string `json:"location"`
	} `json:"hatchery"`
	Breed struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"breed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toFlockPart(f *model.Flock, hatcheryName, hatcheryLocation, breedName string) flockPart {
	p := flockPart{
		ID:             utils.FormatID(f.ID),
		FlockSize:      f.FlockSize,
		MaleChicks:     f.MaleChicks,
		FemaleChicks:   f.FemaleChicks,
		Purpose:        f.Purpose,
		Source:         f.Source,
		IntakeDate:     formatDate(f.IntakeDate),
		DateOfShipment: formatDatePtr(f.DateOfShipment),
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
	}
	p.Hatchery.ID = utils.FormatID(f.HatcheryID)
	p.Hatchery.Name = hatcheryName
	p.Hatchery.Location = hatcheryLocation
	p.Breed.ID = utils.FormatID(f.BreedID)
	p.Breed.Name = breedName
	return p
}

// Create handles POST /api/flocks. The referenced hatchery and breed
// are checked before the insert; the one that is missing is named in
// the 404 response.
func (h *FlockHandler) Create(c echo.Context) error {
	var req flockReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid body"})
	}
	if req.HatcheryID == "" || req.BreedID == "" || req.IntakeDate == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "hatcheryId, breedId and intakeDate are required"})
	}
	hatcheryID, err := utils.ParseID(req.HatcheryID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid hatcheryId"})
	}
	breedID, err := utils.ParseID(req.BreedID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid breedId"})
	}
	intake, err := parseDate(req.IntakeDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid intakeDate, expected YYYY-MM-DD"})
	}
	var shipment *time.Time
	if req.DateOfShipment != nil && *req.DateOfShipment != "" {
		d, err := parseDate(*req.DateOfShipment)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid dateOfShipment, expected YYYY-MM-DD"})
		}
		shipment = &d
	}

	ctx := c.Request().Context()

	hw, err := h.Hatcheries.GetByID(ctx, hatcheryID)
	if err != nil {
		if errors.Is(err, repository.ErrHatcheryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Hatchery not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	breed, err := h.Breeds.GetByID(ctx, breedID)
	if err != nil {
		if errors.Is(err, repository.ErrBreedNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Breed not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}

	flock := model.Flock{
		HatcheryID:     hatcheryID,
		BreedID:        breedID,
		FlockSize:      req.FlockSize,
		MaleChicks:     req.MaleChicks,
		FemaleChicks:   req.FemaleChicks,
		Purpose:        req.Purpose,
		Source:         req.Source,
		IntakeDate:     intake,
		DateOfShipment: shipment,
	}
	if err := h.Flocks.Create(ctx, &flock); err != nil {
		if errors.Is(err, repository.ErrHatcheryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Hatchery not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Flock created successfully",
		"flock":   toFlockPart(&flock, hw.Hatchery.Name, hw.Hatchery.Location, breed.Name),
	})
}

// List handles GET /api/flocks, newest intake first.
func (h *FlockHandler) List(c echo.Context) error {
	items, err := h.Flocks.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	out := make([]flockPart, 0, len(items))
	for _, d := range items {
		out = append(out, toFlockPart(&d.Flock, d.HatcheryName, d.HatcheryLocation, d.BreedName))
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "flocks": out})
}
