package utils // package utils provides helper functions for tokens, hashing and id formatting

import (
    "strconv" // strconv renders numeric ids as decimal strings
    "time"    // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// AccessToken represents a signed JWT along with its expiry. The Token
// field contains the serialized JWT string and Exp its UTC expiration.
// The API issues a single long-lived token at login; there is no
// refresh credential, so when the window closes the caller logs in
// again.
type AccessToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for a user. It takes the
// signing secret, the user ID, email and role, and a TTL in hours. The
// claims carry the principal exactly as the authentication middleware
// reconstructs it: id (as a decimal string, because the numeric range
// of ids exceeds what JSON consumers handle safely), email and role,
// plus the standard exp and iat timestamps. Expired tokens fail
// verification in the middleware; expiry is never checked by hand.
func NewAccessToken(secret string, userID uint64, email, role string, ttlHours int) (AccessToken, error) {
    // Calculate the expiration time by adding the TTL to the current UTC time.
    exp := time.Now().UTC().Add(time.Duration(ttlHours) * time.Hour)
    claims := jwt.MapClaims{
        "id":    FormatID(userID),
        "email": email,
        "role":  role,
        "exp":   exp.Unix(),
        "iat":   time.Now().UTC().Unix(),
    }
    // Create a new token object specifying the signing method (HS256)
    // and include the claims, then sign with the shared secret.
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}

// FormatID renders an entity id as a decimal string. Every id that
// crosses the HTTP boundary goes through here so the serialization
// contract lives in one place instead of a global type patch.
func FormatID(id uint64) string {
    return strconv.FormatUint(id, 10)
}

// ParseID parses a decimal string id coming from a path or query
// parameter back into its numeric form.
func ParseID(s string) (uint64, error) {
    return strconv.ParseUint(s, 10, 64)
}
