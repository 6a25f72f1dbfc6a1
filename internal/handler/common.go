package handler // handler defines http handlers

import (
    "errors" // errors provides sentinel values used in principal helpers
    "time"   // time formats date-only fields

    "github.com/labstack/echo/v4" // echo defines request context types

    "github.com/hatchwise/poultry-hatchery-api/internal/model"
    "github.com/hatchwise/poultry-hatchery-api/internal/utils"
)

const dateLayout = "2006-01-02"

// errNoPrincipal is returned when the authenticated principal is
// missing from the context, which means the route was registered
// without JWTAuth.
var errNoPrincipal = errors.New("no principal in context")

// principalRole extracts the authenticated caller's role from the
// context populated by the JWT middleware.
func principalRole(c echo.Context) (string, error) {
    if role, ok := c.Get("role").(string); ok && role != "" {
        return role, nil
    }
    return "", errNoPrincipal
}

// principalID extracts the caller's user id. The claim travels as a
// decimal string and is parsed back to its numeric form here.
func principalID(c echo.Context) (uint64, error) {
    if s, ok := c.Get("user_id").(string); ok && s != "" {
        return utils.ParseID(s)
    }
    return 0, errNoPrincipal
}

// parseDate parses a date-only request field (YYYY-MM-DD) as UTC.
func parseDate(s string) (time.Time, error) {
    return time.ParseInLocation(dateLayout, s, time.UTC)
}

// formatDate renders a date-only response field.
func formatDate(t time.Time) string {
    return t.UTC().Format(dateLayout)
}

// formatDatePtr renders an optional date field, keeping nil as nil.
func formatDatePtr(t *time.Time) *string {
    if t == nil {
        return nil
    }
    s := formatDate(*t)
    return &s
}

// userPart is the serialized shape of a user in responses: the id as a
// decimal string and never the password hash.
type userPart struct {
    ID    string `json:"id"`
    Name  string `json:"name"`
    Email string `json:"email"`
    Role  string `json:"role"`
    Phone string `json:"phone"`
}

func toUserPart(u model.User) userPart {
    return userPart{
        ID:    utils.FormatID(u.ID),
        Name:  u.Name,
        Email: u.Email,
        Role:  u.Role,
        Phone: u.Phone,
    }
}
