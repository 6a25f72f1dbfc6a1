package handler // handler package contains hatchery facility handlers

import (
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/hatchwise/poultry-hatchery-api/internal/auth"
    "github.com/hatchwise/poultry-hatchery-api/internal/model"
    "github.com/hatchwise/poultry-hatchery-api/internal/repository"
    "github.com/hatchwise/poultry-hatchery-api/internal/utils"
)

// HatcheryHandler bundles repositories for hatchery endpoints. The
// user repository is needed to validate that an assigned owner exists
// and holds the hatchery_member role before any write happens.
type HatcheryHandler struct {
	Hatcheries *repository.HatcheryRepo
	Users      *repository.UserRepo
}

func NewHatcheryHandler(h *repository.HatcheryRepo, u *repository.UserRepo) *HatcheryHandler {
	if h == nil || u == nil {
		panic("nil repository passed to NewHatcheryHandler")
	}
	return &HatcheryHandler{Hatcheries: h, Users: u}
}

type hatcheryReq struct {
	Name               *string `json:"name"`
	Location           *string `json:"location"`
	RegistrationNumber *string `json:"registrationNumber"`
	YearEstablished    *int    `json:"yearEstablished"`
	RenewalStatus      *bool   `json:"renewalStatus"`
	OwnerID            *string `json:"ownerId"`
}

// hatcheryPart is the serialized hatchery shape with string ids and
// the owner embedded.
type hatcheryPart struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Location           string    `json:"location"`
	RegistrationNumber string    `json:"registrationNumber"`
	RenewalStatus      bool      `json:"renewalStatus"`
	YearEstablished    int       `json:"yearEstablished"`
	Owner              userPart  `json:"owner"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func toHatcheryPart(hw *repository.HatcheryWithOwner) hatcheryPart {
	return hatcheryPart{
		ID:                 utils.FormatID(hw.Hatchery.ID),
		Name:               hw.Hatchery.Name,
		Location:           hw.Hatchery.Location,
		RegistrationNumber: hw.Hatchery.RegistrationNumber,
		RenewalStatus:      hw.Hatchery.RenewalStatus,
		YearEstablished:    hw.Hatchery.YearEstablished,
		Owner:              toUserPart(hw.Owner),
		CreatedAt:          hw.Hatchery.CreatedAt,
		UpdatedAt:          hw.Hatchery.UpdatedAt,
	}
}

// validOwner loads the referenced user and checks the role. Both a
// missing user and a user with any other role are reported the same
// way: the owner of a hatchery must be a valid hatchery member.
func (h *HatcheryHandler) validOwner(c echo.Context, ownerID uint64) (bool, error) {
	owner, err := h.Users.GetByID(c.Request().Context(), ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return owner.Role == auth.RoleHatcheryMember, nil
}

// Create handles POST /api/hatcheries. The registration number must be
// unique and the owner must be an existing hatchery member; renewal
// status starts true for a newly registered facility.
func (h *HatcheryHandler) Create(c echo.Context) error {
	var req hatcheryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid body"})
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" ||
		req.RegistrationNumber == nil || strings.TrimSpace(*req.RegistrationNumber) == "" ||
		req.OwnerID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "name, registrationNumber and ownerId are required"})
	}
	ownerID, err := utils.ParseID(*req.OwnerID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid ownerId"})
	}

	ok, err := h.validOwner(c, ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Owner must be a valid hatchery member"})
	}

	hatchery := model.Hatchery{
		Name:               strings.TrimSpace(*req.Name),
		RegistrationNumber: strings.TrimSpace(*req.RegistrationNumber),
		OwnerID:            ownerID,
		RenewalStatus:      true,
	}
	if req.Location != nil {
		hatchery.Location = *req.Location
	}
	if req.YearEstablished != nil {
		hatchery.YearEstablished = *req.YearEstablished
	}

	if err := h.Hatcheries.Create(c.Request().Context(), &hatchery); err != nil {
		switch {
		case errors.Is(err, repository.ErrRegistrationExists):
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "message": "Hatchery with this registration number already exists"})
		case errors.Is(err, repository.ErrUserNotFound):
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Owner must be a valid hatchery member"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}

	created, err := h.Hatcheries.GetByID(c.Request().Context(), hatchery.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success":  true,
		"message":  "Hatchery created successfully",
		"hatchery": toHatcheryPart(created),
	})
}

// List handles GET /api/hatcheries and returns all hatcheries with
// owner info, ordered by name.
func (h *HatcheryHandler) List(c echo.Context) error {
	items, err := h.Hatcheries.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	out := make([]hatcheryPart, 0, len(items))
	for _, hw := range items {
		out = append(out, toHatcheryPart(hw))
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "hatcheries": out})
}

// GetByID handles GET /api/hatcheries/:id.
func (h *HatcheryHandler) GetByID(c echo.Context) error {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid id"})
	}
	hw, err := h.Hatcheries.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrHatcheryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Hatchery not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "hatchery": toHatcheryPart(hw)})
}

// flockBreedPart and hatcheryFlocksPart shape GET /api/hatcheries/flocks.
type flockBreedPart struct {
	FlockID      string `json:"flockId"`
	FlockSize    uint32 `json:"flockSize"`
	MaleChicks   uint32 `json:"maleChicks"`
	FemaleChicks uint32 `json:"femaleChicks"`
	Purpose      string `json:"purpose"`
	Source       string `json:"source"`
	IntakeDate   string `json:"intakeDate"`
	Breed        struct {
		BreedID string `json:"breedId"`
		Name    string `json:"name"`
	} `json:"breed"`
}

type hatcheryFlocksPart struct {
	HatcheryID   string           `json:"hatcheryId"`
	HatcheryName string           `json:"hatcheryName"`
	Location     string           `json:"location"`
	Flocks       []flockBreedPart `json:"flocks"`
}

// ListWithFlocks handles GET /api/hatcheries/flocks: every hatchery
// with its flocks and each flock's breed, nested.
func (h *HatcheryHandler) ListWithFlocks(c echo.Context) error {
	items, err := h.Hatcheries.ListWithFlocks(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to fetch hatcheries with flocks"})
	}
	data := make([]hatcheryFlocksPart, 0, len(items))
	for _, hf := range items {
		part := hatcheryFlocksPart{
			HatcheryID:   utils.FormatID(hf.ID),
			HatcheryName: hf.Name,
			Location:     hf.Location,
			Flocks:       make([]flockBreedPart, 0, len(hf.Flocks)),
		}
		for _, f := range hf.Flocks {
			fp := flockBreedPart{
				FlockID:      utils.FormatID(f.ID),
				FlockSize:    f.FlockSize,
				MaleChicks:   f.MaleChicks,
				FemaleChicks: f.FemaleChicks,
				Purpose:      f.Purpose,
				Source:       f.Source,
				IntakeDate:   formatDate(f.IntakeDate),
			}
			fp.Breed.BreedID = utils.FormatID(f.BreedID)
			fp.Breed.Name = f.BreedName
			part.Flocks = append(part.Flocks, fp)
		}
		data = append(data, part)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "count": len(data), "data": data})
}

// Update handles PUT /api/hatcheries/:id. Omitted fields keep their
// current values; a supplied ownerId is validated the same way as at
// creation.
func (h *HatcheryHandler) Update(c echo.Context) error {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid id"})
	}
	var req hatcheryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid body"})
	}

	hw, err := h.Hatcheries.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrHatcheryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Hatchery not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	hatchery := hw.Hatchery

	if req.OwnerID != nil {
		ownerID, err := utils.ParseID(*req.OwnerID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid ownerId"})
		}
		ok, err := h.validOwner(c, ownerID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
		}
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Owner must be a valid hatchery member"})
		}
		hatchery.OwnerID = ownerID
	}
	if req.Name != nil {
		hatchery.Name = strings.TrimSpace(*req.Name)
	}
	if req.Location != nil {
		hatchery.Location = *req.Location
	}
	if req.RegistrationNumber != nil {
		hatchery.RegistrationNumber = strings.TrimSpace(*req.RegistrationNumber)
	}
	if req.YearEstablished != nil {
		hatchery.YearEstablished = *req.YearEstablished
	}
	if req.RenewalStatus != nil {
		hatchery.RenewalStatus = *req.RenewalStatus
	}

	if err := h.Hatcheries.Update(c.Request().Context(), &hatchery); err != nil {
		switch {
		case errors.Is(err, repository.ErrHatcheryNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Hatchery not found"})
		case errors.Is(err, repository.ErrRegistrationExists):
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "message": "Hatchery with this registration number already exists"})
		case errors.Is(err, repository.ErrUserNotFound):
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Owner must be a valid hatchery member"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}

	updated, err := h.Hatcheries.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"message":  "Hatchery updated successfully",
		"hatchery": toHatcheryPart(updated),
	})
}

// Delete handles DELETE /api/hatcheries/:id; the route table restricts
// it to admins.
func (h *HatcheryHandler) Delete(c echo.Context) error {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid id"})
	}
	if err := h.Hatcheries.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrHatcheryNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Hatchery not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "message": "Hatchery has existing flocks"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Hatchery deleted successfully"})
}
