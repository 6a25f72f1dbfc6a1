package handler // handler package contains breed reference data handlers

import (
    "errors"   // errors compares repository sentinels
    "net/http" // http provides status code constants
    "strings"  // strings offers trimming utilities
    "time"     // time types appear in response DTOs

    "github.com/labstack/echo/v4" // echo is the web framework used for handlers

    "github.com/hatchwise/poultry-hatchery-api/internal/model"
    "github.com/hatchwise/poultry-hatchery-api/internal/repository"
    "github.com/hatchwise/poultry-hatchery-api/internal/utils"
)

// BreedHandler bundles the repository for breed endpoints. Breeds are
// reference data and every route touching them is admin-only.
type BreedHandler struct {
	Breeds *repository.BreedRepo
}

func NewBreedHandler(b *repository.BreedRepo) *BreedHandler {
	if b == nil {
		panic("nil repository passed to NewBreedHandler")
	}
	return &BreedHandler{Breeds: b}
}

// breedReq carries the mutable breed fields. Pointers distinguish an
// omitted rate from an explicit zero on update. The rates are stored
// as supplied; related rates are intentionally not cross-validated.
type breedReq struct {
	Name               *string  `json:"name"`
	FertilityRate      *float64 `json:"fertilityRate"`
	InfertilityRate    *float64 `json:"infertilityRate"`
	EggDamageRate      *float64 `json:"eggDamageRate"`
	HatchabilityRate   *float64 `json:"hatchabilityRate"`
	HealthyChickRate   *float64 `json:"healthyChickRate"`
	UnhealthyChickRate *float64 `json:"unhealthyChickRate"`
	MortalityRate      *float64 `json:"mortalityRate"`
	HealthyAdultRate   *float64 `json:"healthyAdultRate"`
	UnhealthyAdultRate *float64 `json:"unhealthyAdultRate"`
}

// apply overlays the supplied fields onto a breed record.
func (req breedReq) apply(b *model.Breed) {
	if req.Name != nil {
		b.Name = strings.TrimSpace(*req.Name)
	}
	if req.FertilityRate != nil {
		b.FertilityRate = *req.FertilityRate
	}
	if req.InfertilityRate != nil {
		b.InfertilityRate = *req.InfertilityRate
	}
	if req.EggDamageRate != nil {
		b.EggDamageRate = *req.EggDamageRate
	}
	if req.HatchabilityRate != nil {
		b.HatchabilityRate = *req.HatchabilityRate
	}
	if req.HealthyChickRate != nil {
		b.HealthyChickRate = *req.HealthyChickRate
	}
	if req.UnhealthyChickRate != nil {
		b.UnhealthyChickRate = *req.UnhealthyChickRate
	}
	if req.MortalityRate != nil {
		b.MortalityRate = *req.MortalityRate
	}
	if req.HealthyAdultRate != nil {
		b.HealthyAdultRate = *req.HealthyAdultRate
	}
	if req.UnhealthyAdultRate != nil {
		b.UnhealthyAdultRate = *req.UnhealthyAdultRate
	}
}

// breedPart is the serialized breed shape with the id as a string.
type breedPart struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	FertilityRate      float64   `json:"fertilityRate"`
	InfertilityRate    float64   `json:"infertilityRate"`
	EggDamageRate      float64   `json:"eggDamageRate"`
	HatchabilityRate   float64   `json:"hatchabilityRate"`
	HealthyChickRate   float64   `json:"healthyChickRate"`
	UnhealthyChickRate float64   `json:"unhealthyChickRate"`
	MortalityRate      float64   `json:"mortalityRate"`
	HealthyAdultRate   float64   `json:"healthyAdultRate"`
	UnhealthyAdultRate float64   `json:"unhealthyAdultRate"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func toBreedPart(b *model.Breed) breedPart {
	return breedPart{
		ID:                 utils.FormatID(b.ID),
		Name:               b.Name,
		FertilityRate:      b.FertilityRate,
		InfertilityRate:    b.InfertilityRate,
		EggDamageRate:      b.EggDamageRate,
		HatchabilityRate:   b.HatchabilityRate,
		HealthyChickRate:   b.HealthyChickRate,
		UnhealthyChickRate: b.UnhealthyChickRate,
		MortalityRate:      b.MortalityRate,
		HealthyAdultRate:   b.HealthyAdultRate,
		UnhealthyAdultRate: b.UnhealthyAdultRate,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// Create handles POST /api/breeds. A duplicate name answers 409
// without touching the existing record.
func (h *BreedHandler) Create(c echo.Context) error {
	var req breedReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid body"})
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "name is required"})
	}
	var b model.Breed
	req.apply(&b)

	if err := h.Breeds.Create(c.Request().Context(), &b); err != nil {
		if errors.Is(err, repository.ErrBreedExists) {
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "message": "Breed already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Breed created successfully",
		"breed":   toBreedPart(&b),
	})
}

// List handles GET /api/breeds and returns all breeds ordered by name.
func (h *BreedHandler) List(c echo.Context) error {
	breeds, err := h.Breeds.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	out := make([]breedPart, 0, len(breeds))
	for _, b := range breeds {
		out = append(out, toBreedPart(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "breeds": out})
}

// GetByID handles GET /api/breeds/:id.
func (h *BreedHandler) GetByID(c echo.Context) error {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid id"})
	}
	b, err := h.Breeds.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBreedNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Breed not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "breed": toBreedPart(b)})
}

// Update handles PUT /api/breeds/:id. Omitted fields keep their
// current values.
func (h *BreedHandler) Update(c echo.Context) error {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid id"})
	}
	var req breedReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid body"})
	}

	b, err := h.Breeds.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBreedNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Breed not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	req.apply(b)
	if b.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "name is required"})
	}

	if err := h.Breeds.Update(c.Request().Context(), b); err != nil {
		switch {
		case errors.Is(err, repository.ErrBreedNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Breed not found"})
		case errors.Is(err, repository.ErrBreedExists):
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "message": "Breed already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Breed updated successfully",
		"breed":   toBreedPart(b),
	})
}

// Delete handles DELETE /api/breeds/:id. A breed still referenced by
// flocks answers 409 instead of cascading.
func (h *BreedHandler) Delete(c echo.Context) error {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid id"})
	}
	if err := h.Breeds.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrBreedNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Breed not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "message": "Breed is referenced by existing flocks"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Breed deleted successfully"})
}
