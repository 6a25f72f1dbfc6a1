package handler

import (
    "context"  // provides context with cancellation for DB calls
    "errors"   // sentinel comparisons against repository errors
    "net/http" // HTTP status codes and primitives
    "strings"  // string manipulation utilities
    "time"     // timeouts for DB calls and cookie expiry

    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "github.com/hatchwise/poultry-hatchery-api/internal/auth"       // authorization policy
    "github.com/hatchwise/poultry-hatchery-api/internal/config"     // app configuration
    "github.com/hatchwise/poultry-hatchery-api/internal/repository" // DB repositories
    "github.com/hatchwise/poultry-hatchery-api/internal/utils"      // helper functions (hashing, token issuing)
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

// Login: verify credentials and return a signed token. The token is
// also set as an HTTP-only cookie so browser clients keep it out of
// script reach. Bad credentials answer 400 with an identical message
// whether the email or the password was wrong.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "All fields are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Email, u.Role, h.Cfg.TokenTTLHours)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}

	c.SetCookie(&http.Cookie{
		Name:     "token",
		Value:    access.Token,
		Expires:  access.Exp,
		HttpOnly: true,
		Path:     "/",
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"token":   access.Token,
		"user":    toUserPart(u),
		"message": "Logged in successfully",
	})
}

// Register creates a new account on behalf of the authenticated
// caller. The creation matrix decides who may mint which role: admins
// create moderators and hatchery members, moderators create hatchery
// members only. A refusal reports both the requester's and the
// requested role.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" || req.Role == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "email, password and role are required"})
	}
	if !auth.ValidRole(req.Role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "unknown role"})
	}

	requesterRole, err := principalRole(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
	}
	if err := auth.CanCreateRole(requesterRole, req.Role); err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Name, req.Email, req.Password, req.Role, req.Phone, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "message": "User already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": req.Role + " account created successfully",
		"user": userPart{
			ID:    utils.FormatID(uid),
			Name:  req.Name,
			Email: req.Email,
			Role:  req.Role,
			Phone: req.Phone,
		},
	})
}
