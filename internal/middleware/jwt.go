package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
    "github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// JWTAuth returns an Echo middleware that validates a bearer access
// token and injects the principal (id, email, role) into the request
// context. The provided secret must match the one used when issuing
// tokens. Tokens can arrive either in the Authorization header or in
// the HTTP-only "token" cookie set at login; the header wins when both
// are present. Expired or forged tokens are rejected here — handlers
// behind this middleware never see them.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // Prefer the Authorization header; fall back to the login cookie.
            raw := ""
            if auth := c.Request().Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
                raw = strings.TrimPrefix(auth, "Bearer ")
            } else if ck, err := c.Cookie("token"); err == nil && ck.Value != "" {
                raw = ck.Value
            }
            if raw == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }

            // Parse the token using the HS256 signing method and our
            // secret. The callback supplies the signing key and rejects
            // tokens signed with a different algorithm. jwt.Parse also
            // enforces the exp claim, so an expired token fails here.
            tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
                if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
                    return nil, echo.ErrUnauthorized
                }
                return []byte(secret), nil
            })
            if err != nil || !tok.Valid {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
            }

            claims, ok := tok.Claims.(jwt.MapClaims)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
            }

            // Store the principal in the context. The id claim is a
            // decimal string; downstream consumers parse it when they
            // need the numeric form.
            c.Set("user_id", claims["id"])
            c.Set("email", claims["email"])
            c.Set("role", claims["role"])
            return next(c)
        }
    }
}
